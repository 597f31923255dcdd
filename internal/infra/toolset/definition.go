package toolset

import (
	"net/http"

	"yunitemcp/internal/domain"
)

// ParamKind is the JSON schema type advertised for an argument.
type ParamKind string

const (
	KindString  ParamKind = "string"
	KindInteger ParamKind = "integer"
	KindBoolean ParamKind = "boolean"
	KindObject  ParamKind = "object"
	KindArray   ParamKind = "array"
)

// Param describes one argument of a tool.
type Param struct {
	Name        string
	Kind        ParamKind
	Description string
	Default     any
	HasDefault  bool
	Enum        []string
	Items       ParamKind
	Required    bool
}

func String(name, description string) Param {
	return Param{Name: name, Kind: KindString, Description: description}
}

func Integer(name, description string) Param {
	return Param{Name: name, Kind: KindInteger, Description: description}
}

func Boolean(name, description string) Param {
	return Param{Name: name, Kind: KindBoolean, Description: description}
}

func Object(name, description string) Param {
	return Param{Name: name, Kind: KindObject, Description: description}
}

func Array(name string, items ParamKind, description string) Param {
	return Param{Name: name, Kind: KindArray, Items: items, Description: description}
}

// AsRequired marks the argument as required by the schema.
func (p Param) AsRequired() Param {
	p.Required = true
	return p
}

// WithDefault records the advertised default. The default only reaches the
// backend when the route projects the field with the same default.
func (p Param) WithDefault(value any) Param {
	p.Default = value
	p.HasDefault = true
	return p
}

func (p Param) WithEnum(values ...string) Param {
	p.Enum = values
	return p
}

// ShapeKind selects how arguments become a query string or request body.
type ShapeKind int

const (
	// ShapeNone sends neither query nor body.
	ShapeNone ShapeKind = iota
	// ShapeFilter forwards every non-null argument except path parameters.
	ShapeFilter
	// ShapeProject builds the payload field by field.
	ShapeProject
	// ShapeRaw forwards a single argument as the whole body.
	ShapeRaw
)

// FieldMode controls how a projected field is filled.
type FieldMode int

const (
	// FieldRequired copies the argument; a missing argument aborts the call.
	FieldRequired FieldMode = iota
	// FieldOptional copies the argument or sends null.
	FieldOptional
	// FieldDefault copies the argument or sends the literal default.
	FieldDefault
	// FieldForced always sends the literal, ignoring caller input.
	FieldForced
	// FieldTruthy copies the argument only when it is truthy.
	FieldTruthy
)

// Field is one entry of an explicit projection.
type Field struct {
	Key   string
	Mode  FieldMode
	Value any
}

func Req(key string) Field {
	return Field{Key: key, Mode: FieldRequired}
}

func Opt(key string) Field {
	return Field{Key: key, Mode: FieldOptional}
}

func Def(key string, value any) Field {
	return Field{Key: key, Mode: FieldDefault, Value: value}
}

func Lit(key string, value any) Field {
	return Field{Key: key, Mode: FieldForced, Value: value}
}

func Truthy(key string) Field {
	return Field{Key: key, Mode: FieldTruthy}
}

// Shape describes the payload of a route.
type Shape struct {
	Kind   ShapeKind
	Fields []Field
	Source string
}

func NoPayload() Shape {
	return Shape{Kind: ShapeNone}
}

func Filter() Shape {
	return Shape{Kind: ShapeFilter}
}

func Project(fields ...Field) Shape {
	return Shape{Kind: ShapeProject, Fields: fields}
}

func Raw(source string) Shape {
	return Shape{Kind: ShapeRaw, Source: source}
}

// Route binds a tool to one backend method and path template. Path
// parameters are written as {name}.
type Route struct {
	Method string
	Path   string
	Shape  Shape
}

func Get(path string, shape Shape) Route {
	return Route{Method: http.MethodGet, Path: path, Shape: shape}
}

func Post(path string, shape Shape) Route {
	return Route{Method: http.MethodPost, Path: path, Shape: shape}
}

func Put(path string, shape Shape) Route {
	return Route{Method: http.MethodPut, Path: path, Shape: shape}
}

func Patch(path string, shape Shape) Route {
	return Route{Method: http.MethodPatch, Path: path, Shape: shape}
}

func Delete(path string, shape Shape) Route {
	return Route{Method: http.MethodDelete, Path: path, Shape: shape}
}

// Definition is the single declaration of a tool: what is advertised and
// how a call is turned into a backend request.
type Definition struct {
	Name        string
	Description string
	Group       domain.ToolGroup
	Params      []Param
	Route       Route
}
