package toolset

import (
	"encoding/json"

	"github.com/google/jsonschema-go/jsonschema"
)

// InputSchema renders the advertised argument schema of the definition.
func (d Definition) InputSchema() *jsonschema.Schema {
	schema := &jsonschema.Schema{
		Type:       "object",
		Properties: make(map[string]*jsonschema.Schema, len(d.Params)),
	}
	for _, param := range d.Params {
		schema.Properties[param.Name] = param.schema()
		if param.Required {
			schema.Required = append(schema.Required, param.Name)
		}
	}
	return schema
}

func (p Param) schema() *jsonschema.Schema {
	prop := &jsonschema.Schema{
		Type:        string(p.Kind),
		Description: p.Description,
	}
	if p.HasDefault {
		if raw, err := json.Marshal(p.Default); err == nil {
			prop.Default = raw
		}
	}
	for _, value := range p.Enum {
		prop.Enum = append(prop.Enum, value)
	}
	if p.Kind == KindArray && p.Items != "" {
		prop.Items = &jsonschema.Schema{Type: string(p.Items)}
	}
	return prop
}
