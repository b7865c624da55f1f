package interp

import (
	"github.com/cwbudde/go-cel/internal/types"
)

// Attribute is a base reference plus an ordered qualifier chain that
// resolves to a value against an activation.
type Attribute interface {
	// ID returns the node id of the attribute's root expression.
	ID() int64

	// AddQualifier extends the attribute with one resolution step.
	AddQualifier(q Qualifier) (Attribute, error)

	// Resolve walks the attribute against the activation. Resolution
	// failures surface as error values; unknown pattern matches as
	// unknown values.
	Resolve(vars Activation) types.Value
}

// NamespacedAttribute is an attribute rooted at one of a frozen list
// of candidate variable names, computed from the expression container
// at plan time.
type NamespacedAttribute interface {
	Attribute

	// CandidateVariableNames returns the candidates, most qualified
	// first.
	CandidateVariableNames() []string

	// Qualifiers returns the qualifier chain applied after the base
	// variable resolves.
	Qualifiers() []Qualifier

	// TryResolve reports found=false when no candidate binds, letting
	// a less specific attribute take over.
	TryResolve(vars Activation) (types.Value, bool)
}

// Qualifier is one step in an attribute chain: a constant key or a
// dynamically computed sub-attribute.
type Qualifier interface {
	// ID returns the node id of the qualifier expression.
	ID() int64

	// KeyValue resolves the qualifier's key against the activation.
	KeyValue(vars Activation) types.Value
}

// AttributeFactory builds attributes and qualifiers bound to the
// planner's container, adapter, and provider.
type AttributeFactory interface {
	// AbsoluteAttribute creates an attribute over fixed candidate
	// names.
	AbsoluteAttribute(id int64, names ...string) NamespacedAttribute

	// MaybeAttribute creates an attribute whose namespaced candidates
	// grow as string qualifiers are appended, enabling longest-prefix
	// binding and field subsumption for unchecked expressions.
	MaybeAttribute(id int64, name string) Attribute

	// RelativeAttribute qualifies the result of a computed operand.
	RelativeAttribute(id int64, operand Interpretable) Attribute

	// NewQualifier builds a qualifier from a constant value or a
	// computed interpretable.
	NewQualifier(id int64, v any) (Qualifier, error)
}

// NewAttributeFactory creates the default factory.
func NewAttributeFactory(cont *Container, adapter types.Adapter, provider types.Provider) AttributeFactory {
	return &attrFactory{container: cont, adapter: adapter, provider: provider}
}

type attrFactory struct {
	container *Container
	adapter   types.Adapter
	provider  types.Provider
}

// AbsoluteAttribute implements the AttributeFactory interface.
func (f *attrFactory) AbsoluteAttribute(id int64, names ...string) NamespacedAttribute {
	return &absoluteAttribute{
		id:             id,
		namespaceNames: names,
		adapter:        f.adapter,
		provider:       f.provider,
	}
}

// MaybeAttribute implements the AttributeFactory interface.
func (f *attrFactory) MaybeAttribute(id int64, name string) Attribute {
	return &maybeAttribute{
		id:    id,
		attrs: []NamespacedAttribute{f.AbsoluteAttribute(id, f.container.ResolveCandidateNames(name)...)},
		fac:   f,
	}
}

// RelativeAttribute implements the AttributeFactory interface.
func (f *attrFactory) RelativeAttribute(id int64, operand Interpretable) Attribute {
	return &relativeAttribute{id: id, operand: operand, adapter: f.adapter}
}

// NewQualifier implements the AttributeFactory interface.
func (f *attrFactory) NewQualifier(id int64, v any) (Qualifier, error) {
	switch v := v.(type) {
	case Attribute:
		return &attrQualifier{id: id, attr: v}, nil
	case Interpretable:
		return &interpQualifier{id: id, interp: v}, nil
	case types.Value:
		return &constQualifier{id: id, val: v}, nil
	}
	return &constQualifier{id: id, val: f.adapter.NativeToValue(v)}, nil
}

// constQualifier holds a key known at plan time.
type constQualifier struct {
	id  int64
	val types.Value
}

// ID implements the Qualifier interface.
func (q *constQualifier) ID() int64 {
	return q.id
}

// KeyValue implements the Qualifier interface.
func (q *constQualifier) KeyValue(vars Activation) types.Value {
	return q.val
}

// attrQualifier computes its key from a nested attribute.
type attrQualifier struct {
	id   int64
	attr Attribute
}

// ID implements the Qualifier interface.
func (q *attrQualifier) ID() int64 {
	return q.id
}

// KeyValue implements the Qualifier interface.
func (q *attrQualifier) KeyValue(vars Activation) types.Value {
	return q.attr.Resolve(vars)
}

// interpQualifier computes its key from an arbitrary interpretable.
type interpQualifier struct {
	id     int64
	interp Interpretable
}

// ID implements the Qualifier interface.
func (q *interpQualifier) ID() int64 {
	return q.id
}

// KeyValue implements the Qualifier interface.
func (q *interpQualifier) KeyValue(vars Activation) types.Value {
	return q.interp.Eval(vars)
}

// absoluteAttribute resolves the longest bound candidate name, then
// applies its qualifier chain with unknown-pattern tracking.
type absoluteAttribute struct {
	id             int64
	namespaceNames []string
	qualifiers     []Qualifier
	adapter        types.Adapter
	provider       types.Provider
}

// ID implements the Attribute interface.
func (a *absoluteAttribute) ID() int64 {
	return a.id
}

// AddQualifier implements the Attribute interface.
func (a *absoluteAttribute) AddQualifier(q Qualifier) (Attribute, error) {
	a.qualifiers = append(a.qualifiers, q)
	return a, nil
}

// CandidateVariableNames implements the NamespacedAttribute interface.
func (a *absoluteAttribute) CandidateVariableNames() []string {
	return a.namespaceNames
}

// Qualifiers implements the NamespacedAttribute interface.
func (a *absoluteAttribute) Qualifiers() []Qualifier {
	return a.qualifiers
}

// Resolve implements the Attribute interface.
func (a *absoluteAttribute) Resolve(vars Activation) types.Value {
	v, found := a.TryResolve(vars)
	if !found {
		return types.NoSuchAttributeErr(a.bestName()).WithID(a.id)
	}
	return v
}

// TryResolve implements the NamespacedAttribute interface. Candidate
// names are tried most specific first; a candidate that is unbound but
// declared unknown by a partial activation yields an unknown value.
// Unbound candidates fall back to registered type and enum names.
func (a *absoluteAttribute) TryResolve(vars Activation) (types.Value, bool) {
	pa, isPartial := findPartial(vars)
	for _, name := range a.namespaceNames {
		op, found := vars.ResolveName(name)
		if found {
			obj := a.adapter.NativeToValue(op)
			return a.qualify(vars, pa, name, obj), true
		}
		if isPartial {
			if id, matched := matchPatternQualifiers(pa, name, a.id, a.qualifiers); matched {
				return types.NewUnknown(id), true
			}
		}
		if a.provider != nil {
			if t, ok := a.provider.FindType(name); ok {
				return t, true
			}
			if ev, ok := a.provider.FindEnumValue(name); ok {
				return ev, true
			}
		}
	}
	return nil, false
}

func (a *absoluteAttribute) bestName() string {
	return a.namespaceNames[0]
}

// qualify applies the qualifier chain, checking resolved key paths
// against the partial activation's unknown patterns at every step.
func (a *absoluteAttribute) qualify(vars Activation, pa PartialActivation, varName string, obj types.Value) types.Value {
	var path []any
	if pa != nil {
		if matchUnknownPath(pa, varName, path) {
			return types.NewUnknown(a.id)
		}
	}
	for _, q := range a.qualifiers {
		if types.IsUnknownOrError(obj) {
			return obj
		}
		key := q.KeyValue(vars)
		if types.IsUnknownOrError(key) {
			return key
		}
		if pa != nil {
			if nk, ok := nativeKey(key); ok {
				path = append(path, nk)
				if matchUnknownPath(pa, varName, path) {
					return types.NewUnknown(q.ID())
				}
			}
		}
		obj = applyQualifier(obj, key, q.ID())
	}
	return obj
}

// matchPatternQualifiers matches patterns against an unbound
// variable's planned qualifier chain. Constant qualifier keys must
// equal the pattern values; wildcards match any qualifier, including
// dynamic ones. The returned id names the AST node where the match
// completed.
func matchPatternQualifiers(pa PartialActivation, name string, attrID int64, quals []Qualifier) (int64, bool) {
	for _, p := range pa.UnknownAttributePatterns() {
		if !p.VariableMatches(name) || len(p.qualifiers) > len(quals) {
			continue
		}
		matched := true
		for i, qp := range p.qualifiers {
			if qp.wildcard {
				continue
			}
			cq, isConst := quals[i].(*constQualifier)
			if !isConst {
				matched = false
				break
			}
			nk, ok := nativeKey(cq.val)
			if !ok || nk != qp.value {
				matched = false
				break
			}
		}
		if !matched {
			continue
		}
		if len(p.qualifiers) == 0 {
			return attrID, true
		}
		return quals[len(p.qualifiers)-1].ID(), true
	}
	return 0, false
}

// matchUnknownPath reports whether a pattern fully covers the resolved
// key path so far.
func matchUnknownPath(pa PartialActivation, varName string, keys []any) bool {
	for _, p := range pa.UnknownAttributePatterns() {
		if !p.VariableMatches(varName) {
			continue
		}
		if len(p.qualifiers) == len(keys) && p.matchesPath(keys) {
			return true
		}
	}
	return false
}

// maybeAttribute tracks the possible interpretations of an unchecked
// identifier/select chain: each appended string qualifier both extends
// the namespaced candidate names and the qualifier chains of the less
// specific attributes. Longest names resolve first, which yields the
// field subsumption behavior.
type maybeAttribute struct {
	id    int64
	attrs []NamespacedAttribute
	fac   *attrFactory
}

// ID implements the Attribute interface.
func (a *maybeAttribute) ID() int64 {
	return a.id
}

// AddQualifier implements the Attribute interface.
func (a *maybeAttribute) AddQualifier(q Qualifier) (Attribute, error) {
	str, isConstStr := constStringQualifier(q)
	var augmented []NamespacedAttribute
	if isConstStr {
		for _, attr := range a.attrs {
			if len(attr.Qualifiers()) != 0 {
				continue
			}
			for _, name := range attr.CandidateVariableNames() {
				augmented = append(augmented, a.fac.AbsoluteAttribute(q.ID(), name+"."+str))
			}
		}
	}
	for _, attr := range a.attrs {
		if _, err := attr.AddQualifier(q); err != nil {
			return nil, err
		}
	}
	a.attrs = append(augmented, a.attrs...)
	return a, nil
}

// Resolve implements the Attribute interface: the first resolvable
// interpretation wins.
func (a *maybeAttribute) Resolve(vars Activation) types.Value {
	for _, attr := range a.attrs {
		if v, found := attr.TryResolve(vars); found {
			return v
		}
	}
	return types.NoSuchAttributeErr(a.attrs[0].CandidateVariableNames()[0]).WithID(a.id)
}

func constStringQualifier(q Qualifier) (string, bool) {
	cq, ok := q.(*constQualifier)
	if !ok {
		return "", false
	}
	s, ok := cq.val.(types.String)
	if !ok {
		return "", false
	}
	return string(s), true
}

// relativeAttribute qualifies a computed operand value.
type relativeAttribute struct {
	id         int64
	operand    Interpretable
	qualifiers []Qualifier
	adapter    types.Adapter
}

// ID implements the Attribute interface.
func (a *relativeAttribute) ID() int64 {
	return a.id
}

// AddQualifier implements the Attribute interface.
func (a *relativeAttribute) AddQualifier(q Qualifier) (Attribute, error) {
	a.qualifiers = append(a.qualifiers, q)
	return a, nil
}

// Resolve implements the Attribute interface.
func (a *relativeAttribute) Resolve(vars Activation) types.Value {
	obj := a.operand.Eval(vars)
	for _, q := range a.qualifiers {
		if types.IsUnknownOrError(obj) {
			return obj
		}
		key := q.KeyValue(vars)
		if types.IsUnknownOrError(key) {
			return key
		}
		obj = applyQualifier(obj, key, q.ID())
	}
	return obj
}

// applyQualifier performs one lookup step over the supported backing
// shapes.
func applyQualifier(obj types.Value, key types.Value, id int64) types.Value {
	switch o := obj.(type) {
	case *types.Map:
		return withID(o.Get(key), id)
	case *types.List:
		return withID(o.Get(key), id)
	case *types.Object:
		return withID(o.Get(key), id)
	}
	if idx, ok := obj.(types.Indexer); ok {
		return withID(idx.Get(key), id)
	}
	return types.NewKindErr(types.KindNoSuchAttribute,
		"type '%s' does not support field selection", obj.Type().TypeName()).WithID(id)
}

func withID(v types.Value, id int64) types.Value {
	if e, ok := v.(*types.Err); ok {
		return e.WithID(id)
	}
	return v
}

// nativeKey normalizes a key value for pattern matching.
func nativeKey(key types.Value) (any, bool) {
	switch k := key.(type) {
	case types.Bool:
		return bool(k), true
	case types.Int:
		return int64(k), true
	case types.Uint:
		return uint64(k), true
	case types.String:
		return string(k), true
	}
	return nil, false
}
