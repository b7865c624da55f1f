package types

import (
	"fmt"
	"reflect"
	"strings"
)

// List is the immutable list value variant. Elements are stored in
// their host-native form and adapted to values on demand, preserving
// literal insertion order.
type List struct {
	adapter Adapter
	elems   []any
}

// NewDynamicList wraps a slice of host-native elements.
func NewDynamicList(adapter Adapter, elems []any) *List {
	return &List{adapter: adapter, elems: elems}
}

// NewValueList wraps a slice of already-adapted values.
func NewValueList(adapter Adapter, elems []Value) *List {
	native := make([]any, len(elems))
	for i, e := range elems {
		native[i] = e
	}
	return &List{adapter: adapter, elems: native}
}

// Type implements the Value interface.
func (l *List) Type() *Type {
	return ListType
}

// Value implements the Value interface.
func (l *List) Value() any {
	return l.elems
}

// Len returns the element count.
func (l *List) Len() int {
	return len(l.elems)
}

// At adapts and returns the element at offset i.
func (l *List) At(i int) Value {
	return l.adapter.NativeToValue(l.elems[i])
}

// Equal compares element-wise; lists of differing size are unequal.
func (l *List) Equal(other Value) Value {
	o, ok := other.(*List)
	if !ok {
		return propagateOrFalse(other)
	}
	if len(l.elems) != len(o.elems) {
		return False
	}
	for i := range l.elems {
		eq := Equal(l.At(i), o.At(i))
		if eq != True {
			return eq
		}
	}
	return True
}

// Add implements list concatenation.
func (l *List) Add(other Value) Value {
	o, ok := other.(*List)
	if !ok {
		return MaybeNoSuchOverload(other)
	}
	if len(l.elems) == 0 {
		return o
	}
	if len(o.elems) == 0 {
		return l
	}
	elems := make([]any, 0, len(l.elems)+len(o.elems))
	elems = append(elems, l.elems...)
	elems = append(elems, o.elems...)
	return &List{adapter: l.adapter, elems: elems}
}

// Contains implements the 'in' operator. A true match absorbs errors
// raised by other elements; without a match the first error wins.
func (l *List) Contains(value Value) Value {
	var pending Value
	for i := range l.elems {
		eq := Equal(value, l.At(i))
		if eq == True {
			return True
		}
		if pending == nil && IsUnknownOrError(eq) {
			pending = eq
		}
	}
	if pending != nil {
		return pending
	}
	return False
}

// Get implements indexing; the index must be an int within bounds.
func (l *List) Get(index Value) Value {
	i, ok := index.(Int)
	if !ok {
		return MaybeNoSuchOverload(index)
	}
	if i < 0 || int(i) >= len(l.elems) {
		return RangeErr("index out of range: %d", int64(i))
	}
	return l.At(int(i))
}

// Size implements the Sizer trait.
func (l *List) Size() Value {
	return Int(len(l.elems))
}

// Iterator implements the Iterable trait.
func (l *List) Iterator() Iterator {
	return &listIterator{list: l}
}

// ConvertToType implements the Value interface.
func (l *List) ConvertToType(t *Type) Value {
	switch t {
	case ListType:
		return l
	case TypeType:
		return ListType
	}
	return conversionErr(ListType, t)
}

// ConvertToNative yields the native element slice.
func (l *List) ConvertToNative(typeDesc reflect.Type) (any, error) {
	switch typeDesc.Kind() {
	case reflect.Slice, reflect.Interface:
		out := make([]any, len(l.elems))
		copy(out, l.elems)
		return out, nil
	}
	return nil, fmt.Errorf("type conversion error from 'list' to '%v'", typeDesc)
}

func (l *List) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i := range l.elems {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(fmt.Sprintf("%v", l.At(i)))
	}
	sb.WriteString("]")
	return sb.String()
}

type listIterator struct {
	list   *List
	cursor int
}

// Type implements the Value interface.
func (it *listIterator) Type() *Type {
	return IteratorType
}

// Value implements the Value interface.
func (it *listIterator) Value() any {
	return it.cursor
}

// Equal implements the Value interface; iterators never compare equal.
func (it *listIterator) Equal(other Value) Value {
	return propagateOrFalse(other)
}

// ConvertToType implements the Value interface.
func (it *listIterator) ConvertToType(t *Type) Value {
	return conversionErr(IteratorType, t)
}

// ConvertToNative implements the Value interface.
func (it *listIterator) ConvertToNative(typeDesc reflect.Type) (any, error) {
	return nil, fmt.Errorf("iterator cannot be converted to '%v'", typeDesc)
}

// HasNext implements the Iterator interface.
func (it *listIterator) HasNext() Value {
	return Bool(it.cursor < it.list.Len())
}

// Next implements the Iterator interface.
func (it *listIterator) Next() Value {
	v := it.list.At(it.cursor)
	it.cursor++
	return v
}
