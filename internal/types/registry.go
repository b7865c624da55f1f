package types

import "strings"

// Syntax selects the presence semantics for scalar message fields.
type Syntax int

// Supported message syntaxes.
const (
	SyntaxProto3 Syntax = iota
	SyntaxProto2
)

// FieldDesc describes one declared field of a message type.
type FieldDesc struct {
	// Name is the field name used in selection and construction.
	Name string

	// Type is the declared field type; construction coerces literal
	// values to it. A nil Type declares a dyn field.
	Type *Type

	// Wrapper marks a nullable wrapper field: unset reads as null.
	Wrapper bool

	// Message marks a message-typed field: presence is populated-ness.
	Message bool

	// Default overrides the zero value read from an unset scalar.
	Default Value
}

// defaultValue returns the declared default, or the zero value for the
// field's type.
func (fd *FieldDesc) defaultValue() Value {
	if fd.Default != nil {
		return fd.Default
	}
	switch fd.Type {
	case BoolType:
		return False
	case IntType:
		return IntZero
	case UintType:
		return UintZero
	case DoubleType:
		return Double(0)
	case StringType:
		return String("")
	case BytesType:
		return Bytes(nil)
	}
	return NullValue
}

// MessageDesc describes a registered message type: its qualified name,
// syntax, and ordered field list.
type MessageDesc struct {
	Name   string
	Syntax Syntax
	Fields []*FieldDesc

	celType *Type
	index   map[string]*FieldDesc
}

// Field resolves a field descriptor by name.
func (md *MessageDesc) Field(name string) (*FieldDesc, bool) {
	fd, ok := md.index[name]
	return fd, ok
}

// Provider resolves registered type and enum names and constructs
// message values. It extends Adapter so that adapted host data may
// carry message values through containers.
type Provider interface {
	Adapter

	// FindType returns the type descriptor value for a qualified
	// message type name.
	FindType(name string) (Value, bool)

	// FindStructType returns the message descriptor for a qualified
	// type name.
	FindStructType(name string) (*MessageDesc, bool)

	// FindEnumValue resolves a qualified enum constant name, e.g.
	// 'pkg.Color.RED', to its integer value.
	FindEnumValue(name string) (Value, bool)

	// NewValue constructs a message from field values, coercing each
	// to the declared field type.
	NewValue(typeName string, fields map[string]Value) Value
}

// Registry is the default Provider. Message and enum registration is
// a setup-time concern; lookups afterwards are read-only.
type Registry struct {
	messages map[string]*MessageDesc
	enums    map[string]Int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		messages: make(map[string]*MessageDesc),
		enums:    make(map[string]Int),
	}
}

// RegisterMessage installs a message descriptor under its qualified
// name and builds the field index.
func (r *Registry) RegisterMessage(md *MessageDesc) {
	md.celType = NewType(md.Name, IndexerTrait|FieldTesterTrait)
	md.index = make(map[string]*FieldDesc, len(md.Fields))
	for _, fd := range md.Fields {
		md.index[fd.Name] = fd
	}
	r.messages[md.Name] = md
}

// RegisterEnum installs the constants of a qualified enum type, e.g.
// RegisterEnum("pkg.Color", map[string]int64{"RED": 0}).
func (r *Registry) RegisterEnum(enumName string, values map[string]int64) {
	for name, ord := range values {
		r.enums[enumName+"."+name] = Int(ord)
	}
}

// standardTypeNames resolves the predeclared type identifiers, so
// that expressions like type(v) == int work without registration.
var standardTypeNames = map[string]*Type{
	"bool":                      BoolType,
	"bytes":                     BytesType,
	"double":                    DoubleType,
	"dyn":                       DynType,
	"int":                       IntType,
	"list":                      ListType,
	"map":                       MapType,
	"null_type":                 NullType,
	"string":                    StringType,
	"type":                      TypeType,
	"uint":                      UintType,
	"google.protobuf.Duration":  DurationType,
	"google.protobuf.Timestamp": TimestampType,
}

// FindType implements the Provider interface.
func (r *Registry) FindType(name string) (Value, bool) {
	if md, found := r.messages[name]; found {
		return md.celType, true
	}
	if t, found := standardTypeNames[name]; found {
		return t, true
	}
	return nil, false
}

// FindStructType implements the Provider interface.
func (r *Registry) FindStructType(name string) (*MessageDesc, bool) {
	md, found := r.messages[name]
	return md, found
}

// FindEnumValue implements the Provider interface.
func (r *Registry) FindEnumValue(name string) (Value, bool) {
	v, found := r.enums[name]
	return v, found
}

// NewValue implements the Provider interface. Every key must name a
// declared field; values are coerced to the declared field type with a
// conversion error on mismatch.
func (r *Registry) NewValue(typeName string, fields map[string]Value) Value {
	md, found := r.messages[typeName]
	if !found {
		return NewErr("unknown type: %s", typeName)
	}
	populated := make(map[string]Value, len(fields))
	for name, v := range fields {
		fd, declared := md.Field(name)
		if !declared {
			return NoSuchFieldErr(name)
		}
		if fd.Type != nil && fd.Type != DynType {
			v = v.ConvertToType(fd.Type)
			if IsError(v) {
				return v
			}
		}
		populated[fd.Name] = v
	}
	return &Object{desc: md, fields: populated, adapter: r}
}

// NativeToValue implements the Adapter interface, deferring to the
// default adapter for non-message data.
func (r *Registry) NativeToValue(v any) Value {
	return DefaultAdapter.NativeToValue(v)
}

// IsQualifiedTypeName reports whether the name is dotted, a cheap
// precondition before consulting the registry during identifier
// resolution.
func IsQualifiedTypeName(name string) bool {
	return strings.Contains(name, ".")
}
