package toolset

import "yunitemcp/internal/domain"

// WriteTools lists the tools that create, update or delete backend state.
func WriteTools() []Definition {
	return withGroup(domain.ToolGroupWrite, []Definition{
		// Posts
		{
			Name:        "create_post",
			Description: "Create a new post/announcement",
			Params: []Param{
				String("content", "Post content").AsRequired(),
				String("title", "Post title (optional)"),
			},
			Route: Post("/posts/", Project(Req("content"), Opt("title"))),
		},
		{
			Name:        "update_post",
			Description: "Update an existing post",
			Params: []Param{
				idParam("post_id", "Post ID to update"),
				String("content", "Updated content"),
				String("title", "Updated title (optional)"),
			},
			Route: Put("/posts/{post_id}", Filter()),
		},
		{
			// The backend only accepts PATCH here, which the executor does
			// not issue; callers receive an unsupported-method envelope.
			Name:        "update_post_metadata",
			Description: "Update post metadata (views, shares, etc)",
			Params: []Param{
				idParam("post_id", "Post ID"),
				Object("metadata", "Metadata to update").AsRequired(),
			},
			Route: Patch("/posts/{post_id}/metadata", Raw("metadata")),
		},
		{
			Name:        "create_post_alert",
			Description: "Create an alert for a post to notify users",
			Params: []Param{
				idParam("post_id", "Post ID"),
				String("alert_title", "Alert title").AsRequired(),
				String("alert_message", "Alert message"),
			},
			Route: Post("/posts/{post_id}/alert", Project(Req("alert_title"), Opt("alert_message"))),
		},

		// Engagement
		{
			Name:        "add_comment",
			Description: "Add a comment to a post",
			Params: []Param{
				idParam("post_id", "Post ID"),
				String("content", "Comment content").AsRequired(),
			},
			Route: Post("/posts/{post_id}/comments", Project(Req("content"))),
		},
		{
			Name:        "delete_comment",
			Description: "Delete a comment from a post",
			Params: []Param{
				idParam("post_id", "Post ID"),
				idParam("comment_id", "Comment ID to delete"),
			},
			Route: Delete("/posts/{post_id}/comments/{comment_id}", NoPayload()),
		},
		{
			Name:        "toggle_like",
			Description: "Like or unlike a post",
			Params:      []Param{idParam("post_id", "Post ID to like/unlike")},
			Route:       Post("/posts/{post_id}/like", NoPayload()),
		},
		{
			Name:        "toggle_ignite",
			Description: "Ignite or un-ignite a post (super like)",
			Params:      []Param{idParam("post_id", "Post ID to ignite/un-ignite")},
			Route:       Post("/posts/{post_id}/ignite", NoPayload()),
		},

		// Departments
		{
			// college_id is advertised but is not part of the department payload.
			Name:        "create_department",
			Description: "Create a new department in the college",
			Params: []Param{
				idParam("college_id", "College ID"),
				String("name", "Department name").AsRequired(),
				String("code", "Department code (e.g., CS, EE, ME)").AsRequired(),
				String("description", "Department description (optional)"),
				Boolean("is_active", "Whether the department is active").WithDefault(true),
			},
			Route: Post("/departments/", Project(Req("name"), Req("code"), Opt("description"), Def("is_active", true))),
		},
		{
			Name:        "update_department",
			Description: "Update department information",
			Params: []Param{
				idParam("department_id", "Department ID"),
				String("name", "Department name"),
				String("code", "Department code"),
				String("description", "Department description"),
				Boolean("is_active", "Active status"),
			},
			Route: Put("/departments/{department_id}", Filter()),
		},
		{
			Name:        "deactivate_department",
			Description: "Deactivate a department",
			Params:      []Param{idParam("department_id", "Department ID to deactivate")},
			Route:       Delete("/departments/{department_id}", NoPayload()),
		},
		{
			Name:        "activate_department",
			Description: "Activate a department",
			Params:      []Param{idParam("department_id", "Department ID to activate")},
			Route:       Post("/departments/{department_id}/activate", NoPayload()),
		},

		// Academic structure
		{
			Name:        "create_academic_year",
			Description: "Create a new academic year",
			Params: []Param{
				String("year_name", "Year name (e.g., 2024-2025)").AsRequired(),
				String("start_date", "Start date (YYYY-MM-DD)").AsRequired(),
				String("end_date", "End date (YYYY-MM-DD)").AsRequired(),
				Boolean("is_active", "Active status").WithDefault(false),
			},
			Route: Post("/academic/years", Project(Req("year_name"), Req("start_date"), Req("end_date"), Def("is_active", false))),
		},
		{
			Name:        "update_academic_year",
			Description: "Update academic year information",
			Params: []Param{
				idParam("year_id", "Academic year ID"),
				String("year_name", "Year name"),
				String("start_date", "Start date"),
				String("end_date", "End date"),
				Boolean("is_active", "Active status"),
			},
			Route: Put("/academic/years/{year_id}", Filter()),
		},
		{
			Name:        "activate_academic_year",
			Description: "Activate an academic year (deactivates others)",
			Params:      []Param{idParam("year_id", "Academic year ID to activate")},
			Route:       Post("/academic/years/{year_id}/activate", NoPayload()),
		},
		{
			Name:        "create_program",
			Description: "Create an academic program under a department",
			Params: []Param{
				idParam("college_id", "College ID"),
				idParam("department_id", "Department ID"),
				String("code", "Program code (e.g., BTECH-CS, MBA)").AsRequired(),
				String("name", "Program name").AsRequired(),
				String("short_name", "Short name (optional)"),
				Integer("duration_years", "Duration in years").AsRequired(),
				String("description", "Program description (optional)"),
				Boolean("is_active", "Active status").WithDefault(true),
			},
			Route: Post("/academic/programs", Project(
				Req("college_id"),
				Req("department_id"),
				Req("code"),
				Req("name"),
				Opt("short_name"),
				Req("duration_years"),
				Opt("description"),
				Def("is_active", true),
			)),
		},
		{
			Name:        "update_program",
			Description: "Update program information",
			Params: []Param{
				idParam("program_id", "Program ID"),
				String("name", "Program name"),
				String("code", "Program code"),
				String("short_name", "Short name"),
				Integer("duration_years", "Duration in years"),
				String("description", "Description"),
				Boolean("is_active", "Active status"),
			},
			Route: Put("/academic/programs/{program_id}", Filter()),
		},
		{
			Name:        "create_cohort",
			Description: "Create a cohort (batch/year group) for a program",
			Params: []Param{
				idParam("college_id", "College ID"),
				idParam("program_id", "Program ID"),
				Integer("admission_year", "Admission year (e.g., 2024)").AsRequired(),
				String("code", "Cohort code (e.g., BTECH-CS-2024)").AsRequired(),
				String("name", "Cohort name").AsRequired(),
				Integer("expected_graduation_year", "Expected graduation year (optional)"),
				Integer("current_semester", "Current semester").WithDefault(1),
				Boolean("is_active", "Active status").WithDefault(true),
			},
			Route: Post("/academic/cohorts", Project(
				Req("college_id"),
				Req("program_id"),
				Req("admission_year"),
				Req("code"),
				Req("name"),
				Opt("expected_graduation_year"),
				Def("current_semester", 1),
				Def("is_active", true),
			)),
		},
		{
			Name:        "update_cohort",
			Description: "Update cohort information",
			Params: []Param{
				idParam("cohort_id", "Cohort ID"),
				String("name", "Cohort name"),
				String("code", "Cohort code"),
				Integer("current_semester", "Current semester"),
				Integer("expected_graduation_year", "Expected graduation year"),
				Boolean("is_active", "Active status"),
			},
			Route: Put("/academic/cohorts/{cohort_id}", Filter()),
		},
		{
			Name:        "create_class",
			Description: "Create a section/class for a cohort",
			Params: []Param{
				idParam("college_id", "College ID"),
				idParam("cohort_id", "Cohort ID"),
				idParam("program_id", "Program ID"),
				String("section_code", "Section code (e.g., A, B, C)").AsRequired(),
				String("section_name", "Section name (optional)"),
				Integer("capacity", "Maximum capacity (optional)"),
				Boolean("is_active", "Active status").WithDefault(true),
			},
			Route: Post("/academic/classes", Project(
				Req("college_id"),
				Req("cohort_id"),
				Req("program_id"),
				Req("section_code"),
				Opt("section_name"),
				Opt("capacity"),
				Def("is_active", true),
			)),
		},
		{
			Name:        "update_class",
			Description: "Update class/section information",
			Params: []Param{
				idParam("class_id", "Class ID"),
				String("section_code", "Section code"),
				String("section_name", "Section name"),
				Integer("capacity", "Maximum capacity"),
				Boolean("is_active", "Active status"),
			},
			Route: Put("/academic/classes/{class_id}", Filter()),
		},
		{
			Name:        "assign_teacher_to_class",
			Description: "Assign a teacher to a class/section",
			Params: []Param{
				idParam("class_id", "Class ID"),
				idParam("teacher_id", "Teacher user ID"),
				String("subject", "Subject being taught (optional)"),
			},
			Route: Post("/academic/class-teachers", Project(Req("class_id"), Req("teacher_id"), Opt("subject"))),
		},
		{
			Name:        "remove_teacher_from_class",
			Description: "Remove a teacher assignment from a class",
			Params:      []Param{idParam("assignment_id", "Teacher assignment ID to remove")},
			Route:       Delete("/academic/class-teachers/{assignment_id}", NoPayload()),
		},

		// Users and permissions
		{
			Name:        "create_student",
			Description: "Create a new student user",
			Params: []Param{
				String("username", "Student username").AsRequired(),
				String("email", "Student email").AsRequired(),
				String("full_name", "Student full name").AsRequired(),
				String("password", "Student password").AsRequired(),
				idParam("college_id", "College ID"),
				idParam("department_id", "Department ID"),
				idParam("program_id", "Program ID"),
				idParam("cohort_id", "Cohort ID"),
				idParam("class_id", "Section/Class ID"),
				Integer("admission_year", "Admission year").AsRequired(),
			},
			Route: Post("/admin/users", Project(
				Req("username"),
				Req("email"),
				Req("full_name"),
				Req("password"),
				Lit("role", "student"),
				Req("college_id"),
				Req("department_id"),
				Req("program_id"),
				Req("cohort_id"),
				Req("class_id"),
				Req("admission_year"),
			)),
		},
		{
			Name:        "create_staff",
			Description: "Create a new staff/faculty user",
			Params: []Param{
				String("username", "Staff username").AsRequired(),
				String("email", "Staff email").AsRequired(),
				String("full_name", "Staff full name").AsRequired(),
				String("password", "Staff password").AsRequired(),
				idParam("college_id", "College ID"),
				Integer("department_id", "Department ID (optional)"),
				String("role", "Staff role (e.g., faculty, staff, admin)").WithDefault("staff").AsRequired(),
			},
			Route: Post("/admin/users", Project(
				Req("username"),
				Req("email"),
				Req("full_name"),
				Req("password"),
				Def("role", "staff"),
				Req("college_id"),
				Opt("department_id"),
			)),
		},
		{
			Name:        "update_user_profile",
			Description: "Update a user's profile information",
			Params: []Param{
				idParam("user_id", "User ID to update"),
				String("full_name", "Full name (optional)"),
				String("email", "Email (optional)"),
				String("bio", "Bio (optional)"),
				String("profile_picture", "Profile picture URL (optional)"),
			},
			Route: Put("/users/{user_id}", Filter()),
		},
		{
			Name:        "update_user_role",
			Description: "Update a user's role",
			Params: []Param{
				idParam("user_id", "User ID"),
				String("role", "New role (student, faculty, admin, staff)").AsRequired(),
			},
			Route: Put("/admin/users/{user_id}/role", Project(Req("role"))),
		},
		{
			Name:        "update_user_status",
			Description: "Update a user's status (active/inactive/suspended)",
			Params: []Param{
				idParam("user_id", "User ID"),
				String("status", "New status (active, inactive, suspended)").AsRequired(),
			},
			Route: Put("/admin/users/{user_id}/status", Project(Req("status"))),
		},
		{
			Name:        "delete_user",
			Description: "Delete a user from the system",
			Params:      []Param{idParam("user_id", "User ID to delete")},
			Route:       Delete("/admin/users/{user_id}", NoPayload()),
		},
		{
			Name:        "grant_permission",
			Description: "Grant or revoke a permission for a user",
			Params: []Param{
				idParam("user_id", "User ID"),
				String("permission_name", "Permission name").AsRequired(),
				Boolean("grant", "True to grant, False to revoke").WithDefault(true),
			},
			Route: Post("/admin/users/{user_id}/permissions", Project(Req("permission_name"), Def("grant", true))),
		},
		{
			Name:        "remove_permission",
			Description: "Remove a custom permission from a user",
			Params: []Param{
				idParam("user_id", "User ID"),
				String("permission_name", "Permission name to remove").AsRequired(),
			},
			Route: Delete("/admin/users/{user_id}/permissions/{permission_name}", NoPayload()),
		},

		// Groups
		{
			Name:        "create_group",
			Description: "Create a new group/community",
			Params: []Param{
				String("name", "Group name").AsRequired(),
				String("description", "Group description"),
				Boolean("is_public", "Public visibility").WithDefault(true),
				String("group_type", "Group type (optional)"),
			},
			Route: Post("/groups/", Project(Req("name"), Opt("description"), Def("is_public", true), Opt("group_type"))),
		},
		{
			Name:        "update_group",
			Description: "Update group information",
			Params: []Param{
				idParam("group_id", "Group ID"),
				String("name", "Group name"),
				String("description", "Group description"),
				Boolean("is_public", "Public visibility"),
			},
			Route: Put("/groups/{group_id}", Filter()),
		},
		{
			Name:        "delete_group",
			Description: "Delete a group",
			Params:      []Param{idParam("group_id", "Group ID to delete")},
			Route:       Delete("/groups/{group_id}", NoPayload()),
		},
		{
			Name:        "join_group",
			Description: "Join a public group or request to join private group",
			Params:      []Param{idParam("group_id", "Group ID to join")},
			Route:       Post("/groups/{group_id}/join", NoPayload()),
		},
		{
			Name:        "add_group_member",
			Description: "Add a member to a group (admin action)",
			Params: []Param{
				idParam("group_id", "Group ID"),
				idParam("user_id", "User ID to add"),
				String("role", "Member role (member, moderator, admin)").WithDefault("member"),
			},
			Route: Post("/groups/{group_id}/members", Project(Req("user_id"), Def("role", "member"))),
		},
		{
			Name:        "update_group_member_role",
			Description: "Update a group member's role",
			Params: []Param{
				idParam("group_id", "Group ID"),
				idParam("user_id", "User ID"),
				String("role", "New role (member, moderator, admin)").AsRequired(),
			},
			Route: Put("/groups/{group_id}/members/{user_id}", Project(Req("role"))),
		},
		{
			Name:        "remove_group_member",
			Description: "Remove a member from a group",
			Params: []Param{
				idParam("group_id", "Group ID"),
				idParam("user_id", "User ID to remove"),
			},
			Route: Delete("/groups/{group_id}/members/{user_id}", NoPayload()),
		},

		// Alerts
		{
			Name:        "create_alert",
			Description: "Create an alert for specific users",
			Params: []Param{
				String("title", "Alert title").AsRequired(),
				String("message", "Alert message").AsRequired(),
				String("alert_type", "Alert type (info, warning, success, error)"),
				Array("user_ids", KindInteger, "List of user IDs to alert"),
			},
			Route: Post("/alerts/", Project(Req("title"), Req("message"), Opt("alert_type"), Def("user_ids", []any{}))),
		},
		{
			Name:        "create_group_alert",
			Description: "Create an alert for all members of a group",
			Params: []Param{
				String("title", "Alert title").AsRequired(),
				String("message", "Alert message").AsRequired(),
				idParam("group_id", "Group ID to alert"),
				String("alert_type", "Alert type"),
			},
			Route: Post("/alerts/group-alerts", Project(Req("title"), Req("message"), Req("group_id"), Opt("alert_type"))),
		},
		{
			Name:        "update_alert",
			Description: "Update an existing alert",
			Params: []Param{
				idParam("alert_id", "Alert ID"),
				String("title", "Alert title"),
				String("message", "Alert message"),
				Boolean("is_read", "Read status"),
			},
			Route: Put("/alerts/{alert_id}", Filter()),
		},
		{
			Name:        "delete_alert",
			Description: "Delete an alert",
			Params:      []Param{idParam("alert_id", "Alert ID to delete")},
			Route:       Delete("/alerts/{alert_id}", NoPayload()),
		},
		{
			Name:        "mark_all_alerts_read",
			Description: "Mark all alerts as read for the current user",
			Route:       Post("/alerts/mark-all-read", NoPayload()),
		},

		// Authentication
		{
			Name:        "login",
			Description: "Login to get authentication token",
			Params: []Param{
				String("username", "Username or email").AsRequired(),
				String("password", "Password").AsRequired(),
			},
			Route: Post("/auth/login", Project(Req("username"), Req("password"))),
		},
		{
			Name:        "logout",
			Description: "Logout and invalidate current session",
			Route:       Post("/auth/logout", NoPayload()),
		},
		{
			Name:        "update_password",
			Description: "Update user password",
			Params: []Param{
				String("current_password", "Current password").AsRequired(),
				String("new_password", "New password").AsRequired(),
			},
			Route: Put("/auth/update-password", Project(Req("current_password"), Req("new_password"))),
		},

		// Rewards
		{
			Name:        "give_reward",
			Description: "Give reward points to a user",
			Params: []Param{
				idParam("user_id", "User ID to reward"),
				Integer("points", "Points to award").AsRequired(),
				String("reason", "Reason for reward"),
			},
			Route: Post("/rewards/", Project(Req("user_id"), Req("points"), Opt("reason"))),
		},
		{
			Name:        "credit_pool",
			Description: "Credit points to reward pool",
			Params: []Param{
				Integer("points", "Points to credit").AsRequired(),
				String("description", "Description"),
			},
			Route: Post("/pool/credit", Project(Req("points"), Opt("description"))),
		},

		// Files
		{
			Name:        "upload_file",
			Description: "Upload a file to the system",
			Params: []Param{
				String("file_name", "File name").AsRequired(),
				String("file_data", "Base64 encoded file data").AsRequired(),
				Integer("folder_id", "Folder ID (optional)"),
			},
			Route: Post("/files/upload", Project(Req("file_name"), Req("file_data"), Opt("folder_id"))),
		},
		{
			Name:        "create_folder",
			Description: "Create a new folder",
			Params: []Param{
				String("name", "Folder name").AsRequired(),
				Integer("parent_folder_id", "Parent folder ID (optional)"),
			},
			Route: Post("/files/folders/create", Project(Req("name"), Opt("parent_folder_id"))),
		},
		{
			Name:        "delete_folder",
			Description: "Delete a folder",
			Params:      []Param{idParam("folder_id", "Folder ID to delete")},
			Route:       Delete("/files/folders/delete", Project(Req("folder_id"))),
		},
		{
			Name:        "move_folder",
			Description: "Move a folder to a new parent",
			Params: []Param{
				idParam("folder_id", "Folder ID to move"),
				idParam("new_parent_id", "New parent folder ID"),
			},
			Route: Put("/files/folders/move", Project(Req("folder_id"), Req("new_parent_id"))),
		},
		{
			Name:        "update_file",
			Description: "Update file metadata",
			Params: []Param{
				idParam("file_id", "File ID"),
				String("name", "New file name"),
				String("description", "File description"),
			},
			Route: Put("/files/{file_id}", Filter()),
		},
		{
			Name:        "delete_file",
			Description: "Delete a file",
			Params:      []Param{idParam("file_id", "File ID to delete")},
			Route:       Delete("/files/{file_id}", NoPayload()),
		},

		// AI
		{
			Name:        "ask_ai",
			Description: "Ask AI a question about the college/content",
			Params: []Param{
				String("question", "Question to ask").AsRequired(),
				String("context", "Additional context (optional)"),
			},
			Route: Post("/ai/ask", Project(Req("question"), Opt("context"))),
		},
		{
			Name:        "rewrite_content",
			Description: "Use AI to rewrite/improve content",
			Params: []Param{
				String("content", "Content to rewrite").AsRequired(),
				String("style", "Writing style (formal, casual, academic)"),
			},
			Route: Post("/ai/rewrite", Project(Req("content"), Opt("style"))),
		},

		// Devices
		{
			Name:        "register_device",
			Description: "Register a device for push notifications",
			Params: []Param{
				String("device_token", "Device FCM token").AsRequired(),
				String("device_type", "Device type (ios, android, web)").AsRequired(),
				String("device_name", "Device name (optional)"),
			},
			Route: Post("/users/devices", Project(Req("device_token"), Req("device_type"), Opt("device_name"))),
		},
		{
			Name:        "unregister_device",
			Description: "Unregister a device by device ID",
			Params:      []Param{idParam("device_id", "Device ID to unregister")},
			Route:       Delete("/users/devices/{device_id}", NoPayload()),
		},
		{
			Name:        "unregister_device_by_token",
			Description: "Unregister a device by token",
			Params: []Param{
				String("device_token", "Device token to unregister").AsRequired(),
			},
			Route: Delete("/users/devices", Project(Req("device_token"))),
		},
	})
}
