package types

import (
	"fmt"
	"reflect"
	"strings"
)

// Map is the immutable map value variant. Keys are restricted to bool,
// int, uint, and string and are stored in their comparable Go native
// form; values are adapted on demand. Key order records literal
// insertion order for rendering and iteration.
type Map struct {
	adapter  Adapter
	entries  map[any]any
	keyOrder []any
}

// NewDynamicMap wraps a string-keyed map of host-native values.
func NewDynamicMap(adapter Adapter, m map[string]any) *Map {
	entries := make(map[any]any, len(m))
	keyOrder := make([]any, 0, len(m))
	for k, v := range m {
		entries[k] = v
		keyOrder = append(keyOrder, k)
	}
	return &Map{adapter: adapter, entries: entries, keyOrder: keyOrder}
}

// NewValueMap builds a map from parallel key/value slices, as produced
// by a map literal. A repeated key yields a duplicate_key error.
func NewValueMap(adapter Adapter, keys, vals []Value) Value {
	entries := make(map[any]any, len(keys))
	keyOrder := make([]any, 0, len(keys))
	for i, k := range keys {
		nk, ok := mapKeyNative(k)
		if !ok {
			return NoSuchOverloadErr()
		}
		if _, found := entries[nk]; found {
			return DuplicateKeyErr(k)
		}
		entries[nk] = vals[i]
		keyOrder = append(keyOrder, nk)
	}
	return &Map{adapter: adapter, entries: entries, keyOrder: keyOrder}
}

// mapKeyNative normalizes a value to its comparable native form when
// it is a legal map key type.
func mapKeyNative(k Value) (any, bool) {
	switch k := k.(type) {
	case Bool:
		return bool(k), true
	case Int:
		return int64(k), true
	case Uint:
		return uint64(k), true
	case String:
		return string(k), true
	}
	return nil, false
}

// Type implements the Value interface.
func (m *Map) Type() *Type {
	return MapType
}

// Value implements the Value interface.
func (m *Map) Value() any {
	return m.entries
}

// Len returns the entry count.
func (m *Map) Len() int {
	return len(m.entries)
}

// Find looks up a key without raising an error on a miss, supporting
// both qualifier walks and presence tests.
func (m *Map) Find(key Value) (Value, bool) {
	nk, ok := mapKeyNative(key)
	if !ok {
		return nil, false
	}
	v, found := m.entries[nk]
	if !found {
		return nil, false
	}
	return m.adapter.NativeToValue(v), true
}

// Get implements indexing; a missing key is an error value.
func (m *Map) Get(key Value) Value {
	if IsUnknownOrError(key) {
		return key
	}
	if _, legal := mapKeyNative(key); !legal {
		return NoSuchOverloadErr()
	}
	v, found := m.Find(key)
	if !found {
		return NoSuchKeyErr(key)
	}
	return v
}

// Contains implements the 'in' operator over map keys.
func (m *Map) Contains(key Value) Value {
	if IsUnknownOrError(key) {
		return key
	}
	_, found := m.Find(key)
	return Bool(found)
}

// Size implements the Sizer trait.
func (m *Map) Size() Value {
	return Int(len(m.entries))
}

// Iterator iterates the map keys in insertion order.
func (m *Map) Iterator() Iterator {
	return &mapIterator{m: m}
}

// Equal compares maps by size and per-key value equality.
func (m *Map) Equal(other Value) Value {
	o, ok := other.(*Map)
	if !ok {
		return propagateOrFalse(other)
	}
	if len(m.entries) != len(o.entries) {
		return False
	}
	for nk, v := range m.entries {
		ov, found := o.entries[nk]
		if !found {
			return False
		}
		eq := Equal(m.adapter.NativeToValue(v), o.adapter.NativeToValue(ov))
		if eq != True {
			return eq
		}
	}
	return True
}

// ConvertToType implements the Value interface.
func (m *Map) ConvertToType(t *Type) Value {
	switch t {
	case MapType:
		return m
	case TypeType:
		return MapType
	}
	return conversionErr(MapType, t)
}

// ConvertToNative yields a native map keyed by the native key forms.
func (m *Map) ConvertToNative(typeDesc reflect.Type) (any, error) {
	switch typeDesc.Kind() {
	case reflect.Map, reflect.Interface:
		out := make(map[any]any, len(m.entries))
		for k, v := range m.entries {
			out[k] = v
		}
		return out, nil
	}
	return nil, fmt.Errorf("type conversion error from 'map' to '%v'", typeDesc)
}

func (m *Map) String() string {
	var sb strings.Builder
	sb.WriteString("{")
	for i, nk := range m.keyOrder {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(fmt.Sprintf("%v: %v", nk, m.adapter.NativeToValue(m.entries[nk])))
	}
	sb.WriteString("}")
	return sb.String()
}

type mapIterator struct {
	m      *Map
	cursor int
}

// Type implements the Value interface.
func (it *mapIterator) Type() *Type {
	return IteratorType
}

// Value implements the Value interface.
func (it *mapIterator) Value() any {
	return it.cursor
}

// Equal implements the Value interface; iterators never compare equal.
func (it *mapIterator) Equal(other Value) Value {
	return propagateOrFalse(other)
}

// ConvertToType implements the Value interface.
func (it *mapIterator) ConvertToType(t *Type) Value {
	return conversionErr(IteratorType, t)
}

// ConvertToNative implements the Value interface.
func (it *mapIterator) ConvertToNative(typeDesc reflect.Type) (any, error) {
	return nil, fmt.Errorf("iterator cannot be converted to '%v'", typeDesc)
}

// HasNext implements the Iterator interface.
func (it *mapIterator) HasNext() Value {
	return Bool(it.cursor < len(it.m.keyOrder))
}

// Next implements the Iterator interface.
func (it *mapIterator) Next() Value {
	nk := it.m.keyOrder[it.cursor]
	it.cursor++
	return it.m.adapter.NativeToValue(nk)
}
