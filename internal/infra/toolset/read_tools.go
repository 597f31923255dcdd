package toolset

import "yunitemcp/internal/domain"

// ReadTools lists the read-only tools in advertised order.
func ReadTools() []Definition {
	return withGroup(domain.ToolGroupRead, []Definition{
		// Users and auth
		{
			Name:        "get_my_profile",
			Description: "Get the current authenticated user's detailed profile including academic info, permissions, and college details",
			Route:       Get("/users/me", NoPayload()),
		},
		{
			Name:        "list_users",
			Description: "List all users in the system with pagination and filtering",
			Params: []Param{
				Integer("limit", "Number of users per page").WithDefault(50),
				offsetParam(),
				String("role", "Filter by role (admin, faculty, student, staff)"),
				Integer("department_id", "Filter by department ID"),
				Boolean("is_active", "Filter by active status"),
			},
			Route: Get("/users/", Filter()),
		},
		{
			Name:        "get_user_by_id",
			Description: "Get detailed information about a specific user by ID",
			Params:      []Param{idParam("user_id", "User ID")},
			Route:       Get("/users/{user_id}", NoPayload()),
		},

		// Posts and content
		{
			Name:        "list_posts",
			Description: "List posts/announcements with pagination, filtering by type, group, and more",
			Params: []Param{
				Integer("limit", "Number of posts").WithDefault(20),
				offsetParam(),
				String("post_type", "Filter by type: ANNOUNCEMENT, INFO, IMPORTANT, EVENTS, GENERAL"),
				Integer("group_id", "Filter by group ID"),
				Boolean("include_engagement", "Include like/comment counts").WithDefault(true),
			},
			Route: Get("/posts/", Filter()),
		},
		{
			Name:        "get_post_by_id",
			Description: "Get detailed information about a specific post including content, metadata, and engagement",
			Params:      []Param{idParam("post_id", "Post ID")},
			Route:       Get("/posts/{post_id}", NoPayload()),
		},
		{
			Name:        "get_posts_by_type",
			Description: "Get all posts filtered by post type",
			Params: []Param{
				String("post_type", "Post type to filter").
					WithEnum("ANNOUNCEMENT", "INFO", "IMPORTANT", "EVENTS", "GENERAL").
					AsRequired(),
				Integer("limit", "Number of posts").WithDefault(20),
				offsetParam(),
			},
			Route: Get("/posts/type/{post_type}", Project(Def("limit", 20), Def("offset", 0))),
		},
		{
			Name:        "get_post_comments",
			Description: "Get all comments for a specific post",
			Params: []Param{
				idParam("post_id", "Post ID"),
				Integer("limit", "Number of comments").WithDefault(50),
				offsetParam(),
			},
			Route: Get("/posts/{post_id}/comments", Project(Def("limit", 50), Def("offset", 0))),
		},
		{
			Name:        "get_post_likes",
			Description: "Get all users who liked a specific post",
			Params:      append([]Param{idParam("post_id", "Post ID")}, pageParams(50)...),
			Route:       Get("/posts/{post_id}/likes", Project(Def("page", 1), Def("page_size", 50))),
		},
		{
			Name:        "get_post_ignites",
			Description: "Get all ignites (special likes) for a specific post",
			Params:      append([]Param{idParam("post_id", "Post ID")}, pageParams(50)...),
			Route:       Get("/posts/{post_id}/ignites", Project(Def("page", 1), Def("page_size", 50))),
		},
		{
			Name:        "check_user_liked_post",
			Description: "Check if the current user has liked a specific post",
			Params:      []Param{idParam("post_id", "Post ID")},
			Route:       Get("/posts/{post_id}/is-liked", NoPayload()),
		},

		// Departments
		{
			Name:        "list_departments",
			Description: "List all departments with optional statistics",
			Params: []Param{
				Boolean("include_stats", "Include student/program counts").WithDefault(false),
			},
			Route: Get("/departments/", Project(Truthy("include_stats"))),
		},
		{
			Name:        "get_departments_with_stats",
			Description: "Get all departments with detailed statistics (student count, program count, etc.)",
			Route:       Get("/departments/with-stats", NoPayload()),
		},
		{
			Name:        "get_department_by_id",
			Description: "Get detailed information about a specific department",
			Params:      []Param{idParam("department_id", "Department ID")},
			Route:       Get("/departments/{department_id}", NoPayload()),
		},

		// Programs
		{
			Name:        "list_programs",
			Description: "List academic programs with filtering and statistics",
			Params: []Param{
				Integer("department_id", "Filter by department"),
				Boolean("include_stats", "Include cohort/student counts").WithDefault(false),
				Boolean("is_active", "Filter by active status"),
			},
			Route: Get("/academic/programs", Filter()),
		},
		{
			Name:        "get_program_by_id",
			Description: "Get detailed information about a specific program",
			Params:      []Param{idParam("program_id", "Program ID")},
			Route:       Get("/academic/programs/{program_id}", NoPayload()),
		},

		// Cohorts
		{
			Name:        "list_cohorts",
			Description: "List cohorts/batches with filtering by program, year, etc.",
			Params: []Param{
				Integer("program_id", "Filter by program"),
				Integer("admission_year", "Filter by admission year"),
				Boolean("include_stats", "Include student counts").WithDefault(false),
				Boolean("is_active", "Filter by active status"),
			},
			Route: Get("/academic/cohorts", Filter()),
		},
		{
			Name:        "get_cohort_by_id",
			Description: "Get detailed information about a specific cohort",
			Params:      []Param{idParam("cohort_id", "Cohort ID")},
			Route:       Get("/academic/cohorts/{cohort_id}", NoPayload()),
		},

		// Classes and sections
		{
			Name:        "list_classes",
			Description: "List classes/sections with filtering",
			Params: []Param{
				Integer("cohort_id", "Filter by cohort"),
				Integer("program_id", "Filter by program"),
				Boolean("include_stats", "Include student counts").WithDefault(false),
			},
			Route: Get("/academic/classes", Filter()),
		},
		{
			Name:        "get_class_by_id",
			Description: "Get detailed information about a specific class/section",
			Params:      []Param{idParam("class_id", "Class ID")},
			Route:       Get("/academic/classes/{class_id}", NoPayload()),
		},
		{
			Name:        "get_class_students",
			Description: "Get all students in a specific class",
			Params:      []Param{idParam("class_id", "Class ID")},
			Route:       Get("/academic/classes/{class_id}/students", NoPayload()),
		},
		{
			Name:        "get_class_teachers",
			Description: "Get all teachers assigned to a specific class",
			Params:      []Param{idParam("class_id", "Class ID")},
			Route:       Get("/academic/classes/{class_id}/teachers", NoPayload()),
		},

		// Academic years
		{
			Name:        "list_academic_years",
			Description: "List all academic years",
			Route:       Get("/academic/years", NoPayload()),
		},
		{
			Name:        "get_current_academic_year",
			Description: "Get the currently active academic year",
			Route:       Get("/academic/years/current", NoPayload()),
		},
		{
			Name:        "get_academic_year_by_id",
			Description: "Get details of a specific academic year",
			Params:      []Param{idParam("year_id", "Academic Year ID")},
			Route:       Get("/academic/years/{year_id}", NoPayload()),
		},

		// Groups
		{
			Name:        "list_groups",
			Description: "List all groups (clubs, academic groups, events, custom)",
			Params: []Param{
				String("group_type", "Filter by type: ACADEMIC, CLUB, EVENT, CUSTOM"),
				Integer("limit", "Number of groups").WithDefault(50),
				offsetParam(),
			},
			Route: Get("/groups/", Filter()),
		},
		{
			Name:        "get_my_groups",
			Description: "Get all groups the current user is a member of",
			Route:       Get("/groups/my-groups", NoPayload()),
		},
		{
			Name:        "get_group_by_id",
			Description: "Get detailed information about a specific group",
			Params:      []Param{idParam("group_id", "Group ID")},
			Route:       Get("/groups/{group_id}", NoPayload()),
		},
		{
			Name:        "get_group_members",
			Description: "Get all members of a specific group with their roles",
			Params:      []Param{idParam("group_id", "Group ID")},
			Route:       Get("/groups/{group_id}/members", NoPayload()),
		},

		// Events
		{
			Name:        "list_events",
			Description: "List all events with filtering by status, mode, date range",
			Params: []Param{
				String("status", "Filter by status: DRAFT, PUBLISHED, CANCELLED, COMPLETED"),
				String("mode", "Filter by mode: ONLINE, OFFLINE, HYBRID"),
				Integer("group_id", "Filter by group"),
				String("start_date", "Filter events starting after this date (ISO format)"),
				String("end_date", "Filter events ending before this date (ISO format)"),
				Integer("limit", "Number of events").WithDefault(50),
				offsetParam(),
			},
			Route: Get("/events/", Filter()),
		},
		{
			Name:        "get_my_events",
			Description: "Get all events created by the current user",
			Route:       Get("/events/my-events", NoPayload()),
		},
		{
			Name:        "get_my_event_registrations",
			Description: "Get all events the current user has registered for",
			Route:       Get("/events/my-registrations", NoPayload()),
		},
		eventTool("get_event_by_id", "Get detailed information about a specific event", ""),
		eventTool("get_event_attendees", "Get all attendees/registrations for an event", "/attendees"),
		eventTool("get_event_registrations", "Get all registrations for an event with status details", "/registrations"),
		eventTool("get_my_event_registration", "Get the current user's registration for a specific event", "/my-registration"),
		eventTool("get_event_check_ins", "Get all check-ins for an event", "/check-ins"),
		eventTool("get_event_custom_fields", "Get custom registration fields for an event", "/custom-fields"),
		eventTool("get_event_feedback_summary", "Get aggregated feedback/ratings for an event", "/feedback/summary"),
		eventTool("get_event_notifications", "Get all notifications sent for an event", "/notifications"),
		eventTool("get_event_updates", "Get all updates posted for an event", "/updates"),
		eventTool("get_event_analytics", "Get comprehensive analytics for an event (registrations, attendance, demographics)", "/analytics"),

		// Rewards and points
		{
			Name:        "list_rewards",
			Description: "List all rewards given/received with filtering",
			Params: []Param{
				Integer("user_id", "Filter by user ID"),
				String("reward_type", "Filter by type: HELPFUL_POST, ACADEMIC_EXCELLENCE, etc."),
				Integer("limit", "Number of rewards").WithDefault(50),
				offsetParam(),
			},
			Route: Get("/rewards/", Filter()),
		},
		{
			Name:        "get_my_rewards",
			Description: "Get reward summary for the current user (total points, given/received counts, recent rewards)",
			Route:       Get("/rewards/me", NoPayload()),
		},
		{
			Name:        "get_rewards_leaderboard",
			Description: "Get the rewards leaderboard showing top users by points",
			Params: []Param{
				Integer("limit", "Number of top users").WithDefault(50),
			},
			Route: Get("/rewards/leaderboard", Project(Def("limit", 50))),
		},
		{
			Name:        "get_user_reward_points",
			Description: "Get detailed reward points information for a specific user",
			Params:      []Param{idParam("user_id", "User ID")},
			Route:       Get("/rewards/points/{user_id}", NoPayload()),
		},
		{
			Name:        "get_reward_types",
			Description: "Get all available reward types and their descriptions",
			Route:       Get("/rewards/types", NoPayload()),
		},

		// Store and products
		{
			Name:        "list_product_categories",
			Description: "Get all product categories in the rewards store",
			Route:       Get("/rewards/store/categories", NoPayload()),
		},
		{
			Name:        "list_products",
			Description: "List products in the rewards store with filtering",
			Params: append([]Param{
				String("category", "Filter by category"),
				String("status", "Filter by status: ACTIVE, INACTIVE, OUT_OF_STOCK"),
				Integer("min_points", "Minimum points required"),
				Integer("max_points", "Maximum points required"),
				Boolean("in_stock", "Only show in-stock items"),
			}, pageParams(20)...),
			Route: Get("/rewards/store/products", Filter()),
		},
		{
			Name:        "get_product_by_id",
			Description: "Get detailed information about a specific product",
			Params:      []Param{idParam("product_id", "Product ID")},
			Route:       Get("/rewards/store/products/{product_id}", NoPayload()),
		},
		{
			Name:        "get_my_cart",
			Description: "Get the current user's shopping cart",
			Route:       Get("/rewards/store/cart", NoPayload()),
		},
		{
			Name:        "get_my_orders",
			Description: "Get all orders placed by the current user",
			Params: append([]Param{
				String("status", "Filter by order status"),
			}, pageParams(20)...),
			Route: Get("/rewards/store/orders", Filter()),
		},
		{
			Name:        "get_order_by_id",
			Description: "Get detailed information about a specific order",
			Params:      []Param{idParam("order_id", "Order ID")},
			Route:       Get("/rewards/store/orders/{order_id}", NoPayload()),
		},
		{
			Name:        "get_my_balance",
			Description: "Get the current user's point balance and account info",
			Route:       Get("/rewards/store/balance", NoPayload()),
		},
		{
			Name:        "get_balance_history",
			Description: "Get transaction history for the current user's point balance",
			Params: []Param{
				Integer("limit", "Number of transactions").WithDefault(50),
				offsetParam(),
			},
			Route: Get("/rewards/store/balance/history", Project(Def("limit", 50), Def("offset", 0))),
		},
		{
			Name:        "get_my_wishlist",
			Description: "Get the current user's wishlist of products",
			Route:       Get("/rewards/store/wishlist", NoPayload()),
		},

		// College points pool
		{
			Name:        "get_pool_balance",
			Description: "Get the college's point pool balance and status",
			Route:       Get("/pool/balance", NoPayload()),
		},
		{
			Name:        "get_pool_transactions",
			Description: "Get transaction history for the college point pool",
			Params: []Param{
				Integer("limit", "Number of transactions").WithDefault(50),
				offsetParam(),
			},
			Route: Get("/pool/transactions", Project(Def("limit", 50), Def("offset", 0))),
		},
		{
			Name:        "get_pool_analytics",
			Description: "Get comprehensive analytics for the college point pool",
			Route:       Get("/pool/analytics", NoPayload()),
		},

		// Files and folders
		{
			Name:        "list_files",
			Description: "List files uploaded to the system with filtering",
			Params: []Param{
				Integer("department_id", "Filter by department"),
				String("file_type", "Filter by file type: DOCUMENT, IMAGE, VIDEO, etc."),
				String("folder_path", "Filter by folder path").WithDefault("/"),
				Integer("limit", "Number of files").WithDefault(50),
				offsetParam(),
			},
			Route: Get("/files/", Filter()),
		},
		{
			Name:        "get_file_by_id",
			Description: "Get detailed information about a specific file",
			Params:      []Param{idParam("file_id", "File ID")},
			Route:       Get("/files/{file_id}", NoPayload()),
		},
		{
			Name:        "browse_folder",
			Description: "Browse contents of a folder (files and subfolders)",
			Params: []Param{
				String("path", "Folder path to browse").WithDefault("/"),
				Integer("department_id", "Filter by department (optional)"),
			},
			Route: Get("/files/folders/browse", Filter()),
		},
		{
			Name:        "list_file_departments",
			Description: "Get list of departments with file counts",
			Route:       Get("/files/departments/list", NoPayload()),
		},
		{
			Name:        "get_file_stats",
			Description: "Get file storage statistics summary",
			Route:       Get("/files/stats/summary", NoPayload()),
		},

		// Alerts
		{
			Name:        "list_my_alerts",
			Description: "Get all alerts for the current user",
			Params: []Param{
				Boolean("unread_only", "Only show unread alerts").WithDefault(false),
				Integer("limit", "Number of alerts").WithDefault(50),
				offsetParam(),
			},
			Route: Get("/alerts/", Filter()),
		},
		{
			Name:        "get_alert_by_id",
			Description: "Get detailed information about a specific alert",
			Params:      []Param{idParam("alert_id", "Alert ID")},
			Route:       Get("/alerts/{alert_id}", NoPayload()),
		},
		{
			Name:        "get_unread_alert_count",
			Description: "Get count of unread alerts for the current user",
			Route:       Get("/alerts/unread-count", NoPayload()),
		},

		// AI and search
		{
			Name:        "search_knowledge",
			Description: "Search through indexed content using AI semantic search",
			Params: []Param{
				String("query", "Search query").AsRequired(),
				String("content_type", "Filter by content type: post, file, user, etc."),
				Integer("limit", "Number of results").WithDefault(10),
			},
			Route: Post("/ai/search", Project(Req("query"), Opt("content_type"), Def("limit", 10))),
		},
		{
			Name:        "get_ai_stats",
			Description: "Get AI system statistics (index status, query counts, etc.)",
			Route:       Get("/ai/stats", NoPayload()),
		},
		{
			Name:        "get_my_ai_conversations",
			Description: "Get the current user's AI conversation history",
			Params: []Param{
				Integer("limit", "Number of conversations").WithDefault(20),
			},
			Route: Get("/ai/conversations", Project(Def("limit", 20))),
		},

		// News
		{
			Name:        "get_tech_headlines",
			Description: "Get latest technology news headlines",
			Params: []Param{
				Integer("limit", "Number of headlines").WithDefault(10),
			},
			Route: Get("/news/tech-headlines", Project(Def("limit", 10))),
		},
		{
			Name:        "get_news_cache_status",
			Description: "Get status of the news cache (last update, next refresh, etc.)",
			Route:       Get("/news/cache-status", NoPayload()),
		},

		// Admin
		{
			Name:        "list_all_permissions",
			Description: "Get list of all available permissions in the system",
			Route:       Get("/admin/permissions", NoPayload()),
		},
		{
			Name:        "list_all_roles",
			Description: "Get list of all available roles in the system",
			Route:       Get("/admin/roles", NoPayload()),
		},
		{
			Name:        "get_user_permissions",
			Description: "Get all permissions for a specific user",
			Params:      []Param{idParam("user_id", "User ID")},
			Route:       Get("/admin/users/{user_id}/permissions", NoPayload()),
		},

		// Names kept from the first, smaller tool listing.
		{
			Name:        "list_sections",
			Description: "List sections/classes",
			Params: []Param{
				Integer("cohort_id", "Filter by cohort ID (optional)"),
				Integer("program_id", "Filter by program ID (optional)"),
				Boolean("include_stats", "Include statistics").WithDefault(false),
			},
			Route: Get("/academic/classes", Project(Truthy("cohort_id"), Truthy("program_id"), Truthy("include_stats"))),
		},
		{
			Name:        "get_user_profile",
			Description: "Get the current user's profile information",
			Route:       Get("/users/me", NoPayload()),
		},
		{
			Name:        "get_user_groups",
			Description: "Get groups the user belongs to",
			Route:       Get("/user-groups/my-groups", NoPayload()),
		},
	})
}

func idParam(name, description string) Param {
	return Integer(name, description).AsRequired()
}

func offsetParam() Param {
	return Integer("offset", "Offset for pagination").WithDefault(0)
}

func pageParams(pageSize int) []Param {
	return []Param{
		Integer("page", "Page number").WithDefault(1),
		Integer("page_size", "Items per page").WithDefault(pageSize),
	}
}

func eventTool(name, description, suffix string) Definition {
	return Definition{
		Name:        name,
		Description: description,
		Params:      []Param{idParam("event_id", "Event ID")},
		Route:       Get("/events/{event_id}"+suffix, NoPayload()),
	}
}

func withGroup(group domain.ToolGroup, defs []Definition) []Definition {
	for i := range defs {
		defs[i].Group = group
	}
	return defs
}
