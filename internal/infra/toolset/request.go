package toolset

import (
	"net/http"
	"net/url"
	"strings"

	"yunitemcp/internal/domain"
)

// Request is the backend call derived from one tool invocation.
type Request struct {
	Method string
	Path   string
	Body   any
	Query  url.Values
}

// BuildRequest shapes args into a backend request for the named definition.
// Null-valued arguments are treated as absent.
func (c *Catalog) BuildRequest(group domain.ToolGroup, name string, args map[string]any) (Request, error) {
	item, ok := c.lookup(group, name)
	if !ok {
		return Request{}, domain.E(domain.CodeNotFound, "toolset.build_request", "Unknown tool: "+name, domain.ErrToolNotFound)
	}
	return item.build(StripNulls(args))
}

func (e *entry) build(args map[string]any) (Request, error) {
	route := e.def.Route
	path, err := e.expandPath(args)
	if err != nil {
		return Request{}, err
	}
	req := Request{Method: route.Method, Path: path}

	var payload map[string]any
	switch route.Shape.Kind {
	case ShapeNone:
		return req, nil
	case ShapeRaw:
		value, ok := args[route.Shape.Source]
		if !ok {
			return Request{}, missingArgument(route.Shape.Source)
		}
		req.Body = value
		return req, nil
	case ShapeFilter:
		payload = e.filter(args)
	case ShapeProject:
		payload, err = project(route.Shape.Fields, args)
		if err != nil {
			return Request{}, err
		}
	}

	if route.Method == http.MethodGet {
		req.Query = EncodeQuery(payload)
		return req, nil
	}
	req.Body = payload
	return req, nil
}

func (e *entry) expandPath(args map[string]any) (string, error) {
	path := e.def.Route.Path
	for _, key := range e.pathKeys {
		value, ok := args[key]
		if !ok {
			return "", missingArgument(key)
		}
		path = strings.ReplaceAll(path, "{"+key+"}", url.PathEscape(FormatValue(value)))
	}
	return path, nil
}

func (e *entry) filter(args map[string]any) map[string]any {
	out := make(map[string]any, len(args))
	for key, value := range args {
		if value == nil || e.isPathKey(key) {
			continue
		}
		out[key] = value
	}
	return out
}

func (e *entry) isPathKey(key string) bool {
	for _, pathKey := range e.pathKeys {
		if pathKey == key {
			return true
		}
	}
	return false
}

func project(fields []Field, args map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(fields))
	for _, field := range fields {
		value, present := args[field.Key]
		switch field.Mode {
		case FieldRequired:
			if !present {
				return nil, missingArgument(field.Key)
			}
			out[field.Key] = value
		case FieldOptional:
			out[field.Key] = value
		case FieldDefault:
			if !present {
				value = field.Value
			}
			out[field.Key] = value
		case FieldForced:
			out[field.Key] = field.Value
		case FieldTruthy:
			if present && truthy(value) {
				out[field.Key] = value
			}
		}
	}
	return out, nil
}

func missingArgument(key string) error {
	return domain.E(domain.CodeInvalidArgument, "toolset.build_request", "Missing required argument: "+key, domain.ErrMissingArgument)
}

// StripNulls returns a copy of args without null-valued keys.
func StripNulls(args map[string]any) map[string]any {
	out := make(map[string]any, len(args))
	for key, value := range args {
		if value == nil {
			continue
		}
		out[key] = value
	}
	return out
}

func truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case float64:
		return v != 0
	case int:
		return v != 0
	case int64:
		return v != 0
	case []any:
		return len(v) > 0
	case map[string]any:
		return len(v) > 0
	default:
		return true
	}
}
