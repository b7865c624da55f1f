package types

import (
	"reflect"
	"time"
)

// Adapter converts host-native Go data into values of the algebra.
// Adaptation is recursive and on demand: lists and maps keep their
// native backing and adapt elements as they are accessed.
type Adapter interface {
	NativeToValue(v any) Value
}

// DefaultAdapter adapts the standard Go scalar, slice, and map shapes
// produced by JSON/YAML decoding and by host callers.
var DefaultAdapter Adapter = defaultAdapter{}

type defaultAdapter struct{}

// NativeToValue implements the Adapter interface.
func (a defaultAdapter) NativeToValue(v any) Value {
	switch v := v.(type) {
	case nil:
		return NullValue
	case Value:
		return v
	case bool:
		return Bool(v)
	case int:
		return Int(v)
	case int32:
		return Int(v)
	case int64:
		return Int(v)
	case uint:
		return Uint(v)
	case uint32:
		return Uint(v)
	case uint64:
		return Uint(v)
	case float32:
		return Double(v)
	case float64:
		return Double(v)
	case string:
		return String(v)
	case []byte:
		return Bytes(v)
	case time.Time:
		return TimestampOf(v)
	case time.Duration:
		return DurationOf(v)
	case []any:
		return NewDynamicList(a, v)
	case []string:
		elems := make([]any, len(v))
		for i, s := range v {
			elems[i] = s
		}
		return NewDynamicList(a, elems)
	case map[string]any:
		return NewDynamicMap(a, v)
	}
	return a.reflectToValue(v)
}

// reflectToValue covers the remaining slice and map shapes via
// reflection; anything else is unsupported host data.
func (a defaultAdapter) reflectToValue(v any) Value {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		elems := make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			elems[i] = rv.Index(i).Interface()
		}
		return NewDynamicList(a, elems)
	case reflect.Map:
		entries := make(map[any]any, rv.Len())
		keyOrder := make([]any, 0, rv.Len())
		for _, mk := range rv.MapKeys() {
			nk, ok := mapKeyNative(a.NativeToValue(mk.Interface()))
			if !ok {
				return NewErr("unsupported map key type: %v", mk.Type())
			}
			entries[nk] = rv.MapIndex(mk).Interface()
			keyOrder = append(keyOrder, nk)
		}
		return &Map{adapter: a, entries: entries, keyOrder: keyOrder}
	}
	return NewErr("unsupported conversion from %T", v)
}
