package toolset

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"

	"yunitemcp/internal/domain"
)

var pathParamPattern = regexp.MustCompile(`\{([A-Za-z0-9_]+)\}`)

// Descriptor is the advertised form of a tool.
type Descriptor struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Group       domain.ToolGroup   `json:"group"`
	InputSchema *jsonschema.Schema `json:"inputSchema"`
}

type entry struct {
	def      Definition
	resolved *jsonschema.Resolved
	pathKeys []string
}

// Catalog holds every tool in declaration order together with its compiled
// schema and path parameters. It is immutable once built.
type Catalog struct {
	ordered []*entry
	byGroup map[domain.ToolGroup]map[string]*entry
}

// NewCatalog builds the catalogue from the default read and write tables.
func NewCatalog() (*Catalog, error) {
	return BuildCatalog(ReadTools(), WriteTools())
}

// MustCatalog is NewCatalog for callers that treat a malformed table as a
// programming error.
func MustCatalog() *Catalog {
	catalog, err := NewCatalog()
	if err != nil {
		panic(err)
	}
	return catalog
}

// BuildCatalog concatenates the given tables in order. Names must be unique
// across all tables and every path parameter must be a required argument.
func BuildCatalog(tables ...[]Definition) (*Catalog, error) {
	catalog := &Catalog{byGroup: make(map[domain.ToolGroup]map[string]*entry)}
	seen := make(map[string]struct{})
	var problems []string

	for _, table := range tables {
		for _, def := range table {
			if _, dup := seen[def.Name]; dup {
				problems = append(problems, fmt.Sprintf("duplicate tool name %q", def.Name))
				continue
			}
			seen[def.Name] = struct{}{}

			item, errs := compile(def)
			if len(errs) > 0 {
				problems = append(problems, errs...)
				continue
			}
			group := catalog.byGroup[def.Group]
			if group == nil {
				group = make(map[string]*entry)
				catalog.byGroup[def.Group] = group
			}
			group[def.Name] = item
			catalog.ordered = append(catalog.ordered, item)
		}
	}

	if len(problems) > 0 {
		return nil, domain.E(domain.CodeFailedPrecond, "toolset.catalog", strings.Join(problems, "; "), nil)
	}
	return catalog, nil
}

func compile(def Definition) (*entry, []string) {
	var problems []string
	fail := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf("%s: ", def.Name)+fmt.Sprintf(format, args...))
	}

	if strings.TrimSpace(def.Name) == "" {
		return nil, []string{"tool name is required"}
	}
	if def.Group != domain.ToolGroupRead && def.Group != domain.ToolGroupWrite {
		fail("unknown group %q", def.Group)
	}
	if def.Route.Method == "" {
		fail("route method is required")
	}
	if !strings.HasPrefix(def.Route.Path, "/") {
		fail("route path must start with /")
	}

	params := make(map[string]Param, len(def.Params))
	for _, param := range def.Params {
		if _, dup := params[param.Name]; dup {
			fail("duplicate parameter %q", param.Name)
		}
		params[param.Name] = param
	}

	var pathKeys []string
	for _, match := range pathParamPattern.FindAllStringSubmatch(def.Route.Path, -1) {
		key := match[1]
		param, ok := params[key]
		switch {
		case !ok:
			fail("path parameter %q is not declared", key)
		case !param.Required:
			fail("path parameter %q must be required", key)
		}
		pathKeys = append(pathKeys, key)
	}

	shape := def.Route.Shape
	switch shape.Kind {
	case ShapeNone, ShapeFilter:
	case ShapeProject:
		if len(shape.Fields) == 0 {
			fail("projection has no fields")
		}
		for _, field := range shape.Fields {
			if field.Mode == FieldForced {
				continue
			}
			if _, ok := params[field.Key]; !ok {
				fail("projected field %q is not declared", field.Key)
			}
		}
	case ShapeRaw:
		if param, ok := params[shape.Source]; !ok || !param.Required {
			fail("raw body source %q must be a required parameter", shape.Source)
		}
		if def.Route.Method == http.MethodGet {
			fail("raw body is not allowed on GET")
		}
	default:
		fail("unknown shape %d", shape.Kind)
	}

	if len(problems) > 0 {
		return nil, problems
	}

	resolved, err := def.InputSchema().Resolve(nil)
	if err != nil {
		return nil, []string{fmt.Sprintf("%s: resolve schema: %v", def.Name, err)}
	}
	return &entry{
		def:      def,
		resolved: resolved,
		pathKeys: pathKeys,
	}, nil
}

// ListTools returns the advertised descriptors, read tools first.
func (c *Catalog) ListTools() []Descriptor {
	out := make([]Descriptor, 0, len(c.ordered))
	for _, item := range c.ordered {
		out = append(out, item.descriptor())
	}
	return out
}

// Group returns the descriptors of one group in declaration order.
func (c *Catalog) Group(group domain.ToolGroup) []Descriptor {
	var out []Descriptor
	for _, item := range c.ordered {
		if item.def.Group == group {
			out = append(out, item.descriptor())
		}
	}
	return out
}

func (c *Catalog) Len() int {
	return len(c.ordered)
}

// Lookup finds a tool by name within one group.
func (c *Catalog) Lookup(group domain.ToolGroup, name string) (Definition, bool) {
	item, ok := c.lookup(group, name)
	if !ok {
		return Definition{}, false
	}
	return item.def, true
}

func (c *Catalog) lookup(group domain.ToolGroup, name string) (*entry, bool) {
	items, ok := c.byGroup[group]
	if !ok {
		return nil, false
	}
	item, ok := items[name]
	return item, ok
}

func (e *entry) descriptor() Descriptor {
	return Descriptor{
		Name:        e.def.Name,
		Description: e.def.Description,
		Group:       e.def.Group,
		InputSchema: e.def.InputSchema(),
	}
}
