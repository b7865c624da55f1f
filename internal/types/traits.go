package types

// Trait bits describe the operator capabilities of a value variant.
// A variant either supports a trait or it does not; dispatching an
// operator against a value without the required trait yields a
// no_such_overload error.
const (
	// AdderTrait types support '+'.
	AdderTrait = 1 << iota

	// ComparerTrait types support ordering comparisons.
	ComparerTrait

	// ContainerTrait types support the 'in' operator.
	ContainerTrait

	// DividerTrait types support '/'.
	DividerTrait

	// FieldTesterTrait types support field presence tests, has(m.f).
	FieldTesterTrait

	// IndexerTrait types support indexing, v[k].
	IndexerTrait

	// IterableTrait types produce Iterators over their elements.
	IterableTrait

	// IteratorTrait marks iterator values themselves.
	IteratorTrait

	// MatcherTrait types support RE2 pattern matching.
	MatcherTrait

	// ModderTrait types support '%'.
	ModderTrait

	// MultiplierTrait types support '*'.
	MultiplierTrait

	// NegaterTrait types support unary '-'; on bool it backs logical
	// '!' instead.
	NegaterTrait

	// ReceiverTrait types accept member-style function calls.
	ReceiverTrait

	// SizerTrait types support size(v).
	SizerTrait

	// SubtractorTrait types support '-'.
	SubtractorTrait
)

// Adder adds the receiver to another value.
type Adder interface {
	Add(other Value) Value
}

// Subtractor subtracts another value from the receiver.
type Subtractor interface {
	Subtract(other Value) Value
}

// Multiplier multiplies the receiver by another value.
type Multiplier interface {
	Multiply(other Value) Value
}

// Divider divides the receiver by another value.
type Divider interface {
	Divide(other Value) Value
}

// Modder computes the receiver modulo another value.
type Modder interface {
	Modulo(other Value) Value
}

// Negater negates the receiver.
type Negater interface {
	Negate() Value
}

// Comparer orders the receiver against another value of the same type.
// Compare returns Int(-1), Int(0), or Int(1), or an error when the
// values are not comparable.
type Comparer interface {
	Compare(other Value) Value
}

// Indexer selects an element by key or offset.
type Indexer interface {
	Get(index Value) Value
}

// Container reports element membership for the 'in' operator.
type Container interface {
	Contains(value Value) Value
}

// Sizer reports the number of elements, code points, or bytes.
type Sizer interface {
	Size() Value
}

// Iterable produces an Iterator over the receiver's elements.
type Iterable interface {
	Iterator() Iterator
}

// Iterator steps through the elements of an Iterable value.
type Iterator interface {
	Value

	// HasNext returns True while elements remain.
	HasNext() Value

	// Next returns the next element.
	Next() Value
}

// Matcher tests the receiver against an RE2 pattern.
type Matcher interface {
	Match(pattern Value) Value
}

// Receiver accepts member-style calls, e.g. s.contains(sub). The
// overload id is supplied when the call site was type-checked and is
// empty otherwise.
type Receiver interface {
	Receive(function string, overload string, args []Value) Value
}

// FieldTester reports whether a field is set on the receiver, backing
// the has() macro.
type FieldTester interface {
	IsSet(field Value) Value
}
