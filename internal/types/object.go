package types

import (
	"fmt"
	"reflect"
	"strings"
)

// Object is a message value constructed from a registered type
// descriptor. Only explicitly populated fields are stored; reads of
// unset fields follow the descriptor's presence semantics.
type Object struct {
	desc    *MessageDesc
	fields  map[string]Value
	adapter Adapter
}

// Type implements the Value interface, returning the message type
// descriptor.
func (o *Object) Type() *Type {
	return o.desc.celType
}

// Value implements the Value interface.
func (o *Object) Value() any {
	return o.fields
}

// Equal compares messages of the same type field-by-field, reading
// defaults for unset fields.
func (o *Object) Equal(other Value) Value {
	ov, ok := other.(*Object)
	if !ok {
		return propagateOrFalse(other)
	}
	if o.desc.Name != ov.desc.Name {
		return False
	}
	for _, fd := range o.desc.Fields {
		eq := Equal(o.readField(fd), ov.readField(fd))
		if eq != True {
			return eq
		}
	}
	return True
}

// Get selects a field by name.
func (o *Object) Get(index Value) Value {
	name, ok := index.(String)
	if !ok {
		return MaybeNoSuchOverload(index)
	}
	fd, found := o.desc.Field(string(name))
	if !found {
		return NoSuchFieldErr(name)
	}
	return o.readField(fd)
}

// IsSet implements the field presence test behind has(msg.f):
//   - message-typed and wrapper fields are set iff populated;
//   - proto2 scalars are set iff explicitly assigned;
//   - proto3 scalars are set iff their value differs from the zero
//     value for the declared type.
func (o *Object) IsSet(field Value) Value {
	name, ok := field.(String)
	if !ok {
		return MaybeNoSuchOverload(field)
	}
	fd, found := o.desc.Field(string(name))
	if !found {
		return NoSuchFieldErr(name)
	}
	v, populated := o.fields[fd.Name]
	if fd.Message || fd.Wrapper {
		return Bool(populated)
	}
	if o.desc.Syntax == SyntaxProto2 {
		return Bool(populated)
	}
	if !populated {
		return False
	}
	return Bool(v.Equal(fd.defaultValue()) != True)
}

// readField returns the populated value, or the presence-appropriate
// default for an unset field.
func (o *Object) readField(fd *FieldDesc) Value {
	if v, populated := o.fields[fd.Name]; populated {
		return v
	}
	if fd.Message || fd.Wrapper {
		return NullValue
	}
	return fd.defaultValue()
}

// ConvertToType implements the Value interface.
func (o *Object) ConvertToType(t *Type) Value {
	if t == TypeType {
		return o.desc.celType
	}
	if t.TypeName() == o.desc.Name {
		return o
	}
	return conversionErr(o.desc.celType, t)
}

// ConvertToNative yields the populated field map.
func (o *Object) ConvertToNative(typeDesc reflect.Type) (any, error) {
	switch typeDesc.Kind() {
	case reflect.Map, reflect.Interface:
		out := make(map[string]any, len(o.fields))
		for k, v := range o.fields {
			out[k] = v.Value()
		}
		return out, nil
	}
	return nil, fmt.Errorf("type conversion error from '%s' to '%v'", o.desc.Name, typeDesc)
}

func (o *Object) String() string {
	var sb strings.Builder
	sb.WriteString(o.desc.Name)
	sb.WriteString("{")
	first := true
	for _, fd := range o.desc.Fields {
		v, populated := o.fields[fd.Name]
		if !populated {
			continue
		}
		if !first {
			sb.WriteString(", ")
		}
		first = false
		sb.WriteString(fmt.Sprintf("%s: %v", fd.Name, v))
	}
	sb.WriteString("}")
	return sb.String()
}
