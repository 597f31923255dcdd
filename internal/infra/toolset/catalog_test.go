package toolset

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yunitemcp/internal/domain"
)

func TestNewCatalogCoversBothGroups(t *testing.T) {
	catalog, err := NewCatalog()
	require.NoError(t, err)

	reads := catalog.Group(domain.ToolGroupRead)
	writes := catalog.Group(domain.ToolGroupWrite)
	assert.Len(t, reads, 77)
	assert.Len(t, writes, 59)
	assert.Equal(t, len(reads)+len(writes), catalog.Len())

	tools := catalog.ListTools()
	assert.Equal(t, "get_my_profile", tools[0].Name)
	assert.Equal(t, "create_post", tools[len(reads)].Name)
	assert.Equal(t, "unregister_device_by_token", tools[len(tools)-1].Name)
	for i, tool := range tools {
		if i < len(reads) {
			assert.Equal(t, domain.ToolGroupRead, tool.Group, tool.Name)
		} else {
			assert.Equal(t, domain.ToolGroupWrite, tool.Group, tool.Name)
		}
	}
}

func TestCatalogNamesAreUnique(t *testing.T) {
	catalog := MustCatalog()
	seen := make(map[string]bool)
	for _, tool := range catalog.ListTools() {
		assert.False(t, seen[tool.Name], "duplicate %s", tool.Name)
		seen[tool.Name] = true
	}
	for _, name := range []string{"list_sections", "get_user_profile", "get_user_groups"} {
		assert.True(t, seen[name], name)
	}
}

func TestSearchKnowledgeResolvesToReadVariant(t *testing.T) {
	catalog := MustCatalog()

	def, ok := catalog.Lookup(domain.ToolGroupRead, "search_knowledge")
	require.True(t, ok)
	assert.Equal(t, "Search through indexed content using AI semantic search", def.Description)

	_, ok = catalog.Lookup(domain.ToolGroupWrite, "search_knowledge")
	assert.False(t, ok)
}

func TestListToolsIsDeterministic(t *testing.T) {
	catalog := MustCatalog()
	first, err := json.Marshal(catalog.ListTools())
	require.NoError(t, err)
	second, err := json.Marshal(catalog.ListTools())
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestDescriptorSchemas(t *testing.T) {
	catalog := MustCatalog()
	for _, tool := range catalog.ListTools() {
		require.NotNil(t, tool.InputSchema, tool.Name)
		assert.Equal(t, "object", tool.InputSchema.Type, tool.Name)
		for _, key := range tool.InputSchema.Required {
			assert.Contains(t, tool.InputSchema.Properties, key, tool.Name)
		}
	}
}

func TestPathParametersAreRequired(t *testing.T) {
	catalog := MustCatalog()
	for _, item := range catalog.ordered {
		schema := item.def.InputSchema()
		for _, key := range item.pathKeys {
			assert.Contains(t, schema.Required, key, item.def.Name)
		}
	}
}

func TestListPostsSchema(t *testing.T) {
	def, ok := MustCatalog().Lookup(domain.ToolGroupRead, "list_posts")
	require.True(t, ok)

	raw, err := json.Marshal(def.InputSchema())
	require.NoError(t, err)
	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))

	want := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"limit":              map[string]any{"type": "integer", "description": "Number of posts", "default": float64(20)},
			"offset":             map[string]any{"type": "integer", "description": "Offset for pagination", "default": float64(0)},
			"post_type":          map[string]any{"type": "string", "description": "Filter by type: ANNOUNCEMENT, INFO, IMPORTANT, EVENTS, GENERAL"},
			"group_id":           map[string]any{"type": "integer", "description": "Filter by group ID"},
			"include_engagement": map[string]any{"type": "boolean", "description": "Include like/comment counts", "default": true},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("schema mismatch (-want +got):\n%s", diff)
	}
}

func TestCreateAlertSchemaDescribesArrayItems(t *testing.T) {
	def, ok := MustCatalog().Lookup(domain.ToolGroupWrite, "create_alert")
	require.True(t, ok)
	schema := def.InputSchema()
	require.NotNil(t, schema.Properties["user_ids"].Items)
	assert.Equal(t, "integer", schema.Properties["user_ids"].Items.Type)
	assert.Equal(t, []string{"title", "message"}, schema.Required)
}

func TestBuildCatalogRejectsMalformedTables(t *testing.T) {
	cases := []struct {
		name  string
		table []Definition
		want  string
	}{
		{
			name: "duplicate across groups",
			table: []Definition{
				{Name: "a", Group: domain.ToolGroupRead, Route: Get("/a", NoPayload())},
				{Name: "a", Group: domain.ToolGroupWrite, Route: Post("/a", NoPayload())},
			},
			want: `duplicate tool name "a"`,
		},
		{
			name: "optional path parameter",
			table: []Definition{{
				Name:   "b",
				Group:  domain.ToolGroupRead,
				Params: []Param{Integer("id", "ID")},
				Route:  Get("/b/{id}", NoPayload()),
			}},
			want: `path parameter "id" must be required`,
		},
		{
			name: "undeclared path parameter",
			table: []Definition{{
				Name:  "c",
				Group: domain.ToolGroupRead,
				Route: Get("/c/{id}", NoPayload()),
			}},
			want: `path parameter "id" is not declared`,
		},
		{
			name: "undeclared projected field",
			table: []Definition{{
				Name:  "d",
				Group: domain.ToolGroupWrite,
				Route: Post("/d", Project(Req("name"))),
			}},
			want: `projected field "name" is not declared`,
		},
		{
			name: "missing group",
			table: []Definition{{
				Name:  "e",
				Route: Get("/e", NoPayload()),
			}},
			want: `unknown group`,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := BuildCatalog(tc.table)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
			code, ok := domain.CodeFrom(err)
			require.True(t, ok)
			assert.Equal(t, domain.CodeFailedPrecond, code)
		})
	}
}
