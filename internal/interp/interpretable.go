package interp

import (
	"github.com/cwbudde/go-cel/internal/types"
)

// Interpretable is a planned, directly evaluable expression node. An
// interpretable tree is immutable after planning and may be shared
// across goroutines, each supplying its own activation.
type Interpretable interface {
	// ID returns the id of the AST node this step was planned from.
	ID() int64

	// Eval produces exactly one value; errors and unknowns are values.
	Eval(vars Activation) types.Value
}

// InterpretableConst is an Interpretable backed by a constant value.
type InterpretableConst interface {
	Interpretable

	// Value returns the constant.
	Value() types.Value
}

// InterpretableAttribute is an Interpretable backed by an attribute
// whose qualifier chain may still be extended during planning.
type InterpretableAttribute interface {
	Interpretable

	// Attr returns the backing attribute.
	Attr() Attribute

	// AddQualifier extends the backing attribute.
	AddQualifier(q Qualifier) (Attribute, error)
}

// NewConstValue creates a constant interpretable.
func NewConstValue(id int64, val types.Value) InterpretableConst {
	return &evalConst{id: id, val: val}
}

type evalConst struct {
	id  int64
	val types.Value
}

// ID implements the Interpretable interface.
func (c *evalConst) ID() int64 {
	return c.id
}

// Eval implements the Interpretable interface.
func (c *evalConst) Eval(vars Activation) types.Value {
	return c.val
}

// Value implements the InterpretableConst interface.
func (c *evalConst) Value() types.Value {
	return c.val
}

// evalAttr evaluates an attribute against the activation.
type evalAttr struct {
	attr Attribute
}

// ID implements the Interpretable interface.
func (e *evalAttr) ID() int64 {
	return e.attr.ID()
}

// Eval implements the Interpretable interface.
func (e *evalAttr) Eval(vars Activation) types.Value {
	return e.attr.Resolve(vars)
}

// Attr implements the InterpretableAttribute interface.
func (e *evalAttr) Attr() Attribute {
	return e.attr
}

// AddQualifier implements the InterpretableAttribute interface.
func (e *evalAttr) AddQualifier(q Qualifier) (Attribute, error) {
	attr, err := e.attr.AddQualifier(q)
	if err != nil {
		return nil, err
	}
	e.attr = attr
	return attr, nil
}

// evalTestOnly implements the has() field presence test. The operand
// error propagates; a present field yields true, a missing field
// false.
type evalTestOnly struct {
	id    int64
	op    Interpretable
	field types.String
}

// ID implements the Interpretable interface.
func (t *evalTestOnly) ID() int64 {
	return t.id
}

// Eval implements the Interpretable interface.
func (t *evalTestOnly) Eval(vars Activation) types.Value {
	obj := t.op.Eval(vars)
	if types.IsUnknownOrError(obj) {
		return obj
	}
	if tester, ok := obj.(types.FieldTester); ok {
		return tester.IsSet(t.field)
	}
	if container, ok := obj.(types.Container); ok {
		return container.Contains(t.field)
	}
	return types.ValOrErr(obj, "invalid type for field selection")
}

// evalAnd implements the short-circuiting '&&': false dominates, and
// an error or unknown surfaces only when the other operand cannot
// resolve the result.
type evalAnd struct {
	id  int64
	lhs Interpretable
	rhs Interpretable
}

// ID implements the Interpretable interface.
func (a *evalAnd) ID() int64 {
	return a.id
}

// Eval implements the Interpretable interface.
func (a *evalAnd) Eval(vars Activation) types.Value {
	lVal := a.lhs.Eval(vars)
	if lVal == types.False {
		return types.False
	}
	rVal := a.rhs.Eval(vars)
	if rVal == types.False {
		return types.False
	}
	return logicalResult(lVal, rVal, types.True)
}

// evalOr implements the short-circuiting '||': true dominates.
type evalOr struct {
	id  int64
	lhs Interpretable
	rhs Interpretable
}

// ID implements the Interpretable interface.
func (o *evalOr) ID() int64 {
	return o.id
}

// Eval implements the Interpretable interface.
func (o *evalOr) Eval(vars Activation) types.Value {
	lVal := o.lhs.Eval(vars)
	if lVal == types.True {
		return types.True
	}
	rVal := o.rhs.Eval(vars)
	if rVal == types.True {
		return types.True
	}
	return logicalResult(lVal, rVal, types.False)
}

// logicalResult combines the operands of a logical operator once
// short-circuiting failed to resolve it: both booleans produce the
// neutral result; otherwise errors dominate unknowns, and the left
// side dominates the right.
func logicalResult(lVal, rVal, bothBool types.Value) types.Value {
	_, lok := lVal.(types.Bool)
	_, rok := rVal.(types.Bool)
	if lok && rok {
		return bothBool
	}
	if types.IsError(lVal) {
		return lVal
	}
	if types.IsError(rVal) {
		return rVal
	}
	if types.IsUnknown(lVal) {
		if types.IsUnknown(rVal) {
			return lVal.Equal(rVal)
		}
		return lVal
	}
	if types.IsUnknown(rVal) {
		return rVal
	}
	return types.NoSuchOverloadErr()
}

// evalConditional implements the ternary operator.
type evalConditional struct {
	id     int64
	expr   Interpretable
	truthy Interpretable
	falsy  Interpretable
}

// ID implements the Interpretable interface.
func (c *evalConditional) ID() int64 {
	return c.id
}

// Eval implements the Interpretable interface.
func (c *evalConditional) Eval(vars Activation) types.Value {
	condVal := c.expr.Eval(vars)
	cond, ok := condVal.(types.Bool)
	if !ok {
		return types.MaybeNoSuchOverload(condVal)
	}
	if cond {
		return c.truthy.Eval(vars)
	}
	return c.falsy.Eval(vars)
}

// evalEq implements '==' through the value algebra's equality.
type evalEq struct {
	id  int64
	lhs Interpretable
	rhs Interpretable
}

// ID implements the Interpretable interface.
func (eq *evalEq) ID() int64 {
	return eq.id
}

// Eval implements the Interpretable interface.
func (eq *evalEq) Eval(vars Activation) types.Value {
	return types.Equal(eq.lhs.Eval(vars), eq.rhs.Eval(vars))
}

// evalNe implements '!=' as the negation of equality.
type evalNe struct {
	id  int64
	lhs Interpretable
	rhs Interpretable
}

// ID implements the Interpretable interface.
func (ne *evalNe) ID() int64 {
	return ne.id
}

// Eval implements the Interpretable interface.
func (ne *evalNe) Eval(vars Activation) types.Value {
	eqVal := types.Equal(ne.lhs.Eval(vars), ne.rhs.Eval(vars))
	eq, ok := eqVal.(types.Bool)
	if !ok {
		return eqVal
	}
	return !eq
}

// evalTypeOf implements the built-in type(v) inspection.
type evalTypeOf struct {
	id  int64
	arg Interpretable
}

// ID implements the Interpretable interface.
func (t *evalTypeOf) ID() int64 {
	return t.id
}

// Eval implements the Interpretable interface.
func (t *evalTypeOf) Eval(vars Activation) types.Value {
	v := t.arg.Eval(vars)
	if types.IsUnknownOrError(v) {
		return v
	}
	return v.Type()
}

// evalZeroArity invokes a zero-argument function.
type evalZeroArity struct {
	id       int64
	function string
	overload string
	impl     FunctionOp
}

// ID implements the Interpretable interface.
func (z *evalZeroArity) ID() int64 {
	return z.id
}

// Eval implements the Interpretable interface.
func (z *evalZeroArity) Eval(vars Activation) types.Value {
	return withID(z.impl(), z.id)
}

// evalUnary invokes a unary function with trait-guarded dispatch and
// a receiver-trait fallback.
type evalUnary struct {
	id        int64
	function  string
	overload  string
	arg       Interpretable
	trait     int
	impl      UnaryOp
	nonStrict bool
}

// ID implements the Interpretable interface.
func (u *evalUnary) ID() int64 {
	return u.id
}

// Eval implements the Interpretable interface.
func (u *evalUnary) Eval(vars Activation) types.Value {
	argVal := u.arg.Eval(vars)
	if !u.nonStrict && types.IsUnknownOrError(argVal) {
		return argVal
	}
	if u.impl != nil && (u.trait == 0 || argVal.Type().HasTrait(u.trait)) {
		return withID(u.impl(argVal), u.id)
	}
	if argVal.Type().HasTrait(types.ReceiverTrait) {
		return withID(argVal.(types.Receiver).Receive(u.function, u.overload, nil), u.id)
	}
	return types.NoSuchFunctionOverloadErr(u.function).WithID(u.id)
}

// evalBinary invokes a binary function with trait-guarded dispatch and
// a receiver-trait fallback on the first operand.
type evalBinary struct {
	id        int64
	function  string
	overload  string
	lhs       Interpretable
	rhs       Interpretable
	trait     int
	impl      BinaryOp
	nonStrict bool
}

// ID implements the Interpretable interface.
func (b *evalBinary) ID() int64 {
	return b.id
}

// Eval implements the Interpretable interface.
func (b *evalBinary) Eval(vars Activation) types.Value {
	lVal := b.lhs.Eval(vars)
	rVal := b.rhs.Eval(vars)
	if !b.nonStrict {
		if types.IsError(lVal) || types.IsError(rVal) {
			if types.IsError(lVal) {
				return lVal
			}
			return rVal
		}
		if types.IsUnknown(lVal) {
			return lVal.Equal(rVal)
		}
		if types.IsUnknown(rVal) {
			return rVal
		}
	}
	if b.impl != nil && (b.trait == 0 || lVal.Type().HasTrait(b.trait)) {
		return withID(b.impl(lVal, rVal), b.id)
	}
	if lVal.Type().HasTrait(types.ReceiverTrait) {
		return withID(lVal.(types.Receiver).Receive(b.function, b.overload, []types.Value{rVal}), b.id)
	}
	return types.NoSuchFunctionOverloadErr(b.function).WithID(b.id)
}

// evalVarArgs invokes a function of three or more arguments.
type evalVarArgs struct {
	id        int64
	function  string
	overload  string
	args      []Interpretable
	trait     int
	impl      FunctionOp
	nonStrict bool
}

// ID implements the Interpretable interface.
func (f *evalVarArgs) ID() int64 {
	return f.id
}

// Eval implements the Interpretable interface.
func (f *evalVarArgs) Eval(vars Activation) types.Value {
	argVals := make([]types.Value, len(f.args))
	for i, arg := range f.args {
		argVals[i] = arg.Eval(vars)
		if !f.nonStrict && types.IsUnknownOrError(argVals[i]) {
			return argVals[i]
		}
	}
	arg0 := argVals[0]
	if f.impl != nil && (f.trait == 0 || arg0.Type().HasTrait(f.trait)) {
		return withID(f.impl(argVals...), f.id)
	}
	if arg0.Type().HasTrait(types.ReceiverTrait) {
		return withID(arg0.(types.Receiver).Receive(f.function, f.overload, argVals[1:]), f.id)
	}
	return types.NoSuchFunctionOverloadErr(f.function).WithID(f.id)
}

// evalList constructs a list literal in source order.
type evalList struct {
	id      int64
	elems   []Interpretable
	adapter types.Adapter
}

// ID implements the Interpretable interface.
func (l *evalList) ID() int64 {
	return l.id
}

// Eval implements the Interpretable interface.
func (l *evalList) Eval(vars Activation) types.Value {
	elemVals := make([]types.Value, len(l.elems))
	for i, elem := range l.elems {
		elemVal := elem.Eval(vars)
		if types.IsUnknownOrError(elemVal) {
			return elemVal
		}
		elemVals[i] = elemVal
	}
	return types.NewValueList(l.adapter, elemVals)
}

// evalMap constructs a map literal, evaluating keys and values in
// source order; duplicate keys are an error.
type evalMap struct {
	id      int64
	keys    []Interpretable
	vals    []Interpretable
	adapter types.Adapter
}

// ID implements the Interpretable interface.
func (m *evalMap) ID() int64 {
	return m.id
}

// Eval implements the Interpretable interface.
func (m *evalMap) Eval(vars Activation) types.Value {
	keyVals := make([]types.Value, len(m.keys))
	valVals := make([]types.Value, len(m.vals))
	for i, key := range m.keys {
		keyVal := key.Eval(vars)
		if types.IsUnknownOrError(keyVal) {
			return keyVal
		}
		keyVals[i] = keyVal
		valVal := m.vals[i].Eval(vars)
		if types.IsUnknownOrError(valVal) {
			return valVal
		}
		valVals[i] = valVal
	}
	return withID(types.NewValueMap(m.adapter, keyVals, valVals), m.id)
}

// evalObj constructs a message value through the type provider.
type evalObj struct {
	id       int64
	typeName string
	fields   []string
	vals     []Interpretable
	provider types.Provider
}

// ID implements the Interpretable interface.
func (o *evalObj) ID() int64 {
	return o.id
}

// Eval implements the Interpretable interface.
func (o *evalObj) Eval(vars Activation) types.Value {
	fieldVals := make(map[string]types.Value, len(o.fields))
	for i, field := range o.fields {
		val := o.vals[i].Eval(vars)
		if types.IsUnknownOrError(val) {
			return val
		}
		fieldVals[field] = val
	}
	return withID(o.provider.NewValue(o.typeName, fieldVals), o.id)
}

// evalFold executes the comprehension fold form. A child activation
// frame binds the accumulator, and a second frame the iteration
// variable; both are pooled. The loop terminates when the condition
// is literally false, the range is exhausted, or the caller interrupt
// token is set.
type evalFold struct {
	id        int64
	accuVar   string
	iterVar   string
	iterRange Interpretable
	accu      Interpretable
	cond      Interpretable
	step      Interpretable
	result    Interpretable
}

// ID implements the Interpretable interface.
func (fold *evalFold) ID() int64 {
	return fold.id
}

// Eval implements the Interpretable interface.
func (fold *evalFold) Eval(vars Activation) types.Value {
	foldRange := fold.iterRange.Eval(vars)
	if !foldRange.Type().HasTrait(types.IterableTrait) {
		return types.ValOrErr(foldRange, "got '%s', expected iterable type", foldRange.Type().TypeName())
	}
	accuCtx := varActivationPool.Get().(*varActivation)
	accuCtx.parent = vars
	accuCtx.name = fold.accuVar
	accuCtx.val = fold.accu.Eval(vars)
	iterCtx := varActivationPool.Get().(*varActivation)
	iterCtx.parent = accuCtx
	iterCtx.name = fold.iterVar
	it := foldRange.(types.Iterable).Iterator()
	for it.HasNext() == types.True {
		if interrupted(vars) {
			varActivationPool.Put(iterCtx)
			varActivationPool.Put(accuCtx)
			return types.InterruptedErr().WithID(fold.id)
		}
		iterCtx.val = it.Next()

		cond := fold.cond.Eval(iterCtx)
		condBool, ok := cond.(types.Bool)
		if !types.IsUnknown(cond) && ok && condBool != types.True {
			break
		}

		accuCtx.val = fold.step.Eval(iterCtx)
	}
	res := fold.result.Eval(accuCtx)
	varActivationPool.Put(iterCtx)
	varActivationPool.Put(accuCtx)
	return res
}

// evalSetMembership specializes constant in-list tests into a set
// lookup, installed by the optimize decorator.
type evalSetMembership struct {
	inst        Interpretable
	arg         Interpretable
	argTypeName string
	valueSet    map[any]bool
}

// ID implements the Interpretable interface.
func (e *evalSetMembership) ID() int64 {
	return e.inst.ID()
}

// Eval implements the Interpretable interface.
func (e *evalSetMembership) Eval(vars Activation) types.Value {
	val := e.arg.Eval(vars)
	if types.IsUnknownOrError(val) {
		return val
	}
	if val.Type().TypeName() != e.argTypeName {
		return types.False
	}
	key, ok := nativeKey(val)
	if !ok {
		if d, isDouble := val.(types.Double); isDouble {
			key = float64(d)
			ok = true
		}
	}
	if ok && e.valueSet[key] {
		return types.True
	}
	return types.False
}

// evalWatch records a node's value into an observer after evaluation,
// installed by the state-tracking decorator.
type evalWatch struct {
	inst     Interpretable
	observer evalObserver
}

// ID implements the Interpretable interface.
func (e *evalWatch) ID() int64 {
	return e.inst.ID()
}

// Eval implements the Interpretable interface.
func (e *evalWatch) Eval(vars Activation) types.Value {
	val := e.inst.Eval(vars)
	e.observer(e.inst.ID(), val)
	return val
}

// evalWatchAttr is the state-tracking wrapper for attribute nodes. It
// keeps the InterpretableAttribute surface so later planning steps can
// still extend the qualifier chain.
type evalWatchAttr struct {
	inst     InterpretableAttribute
	observer evalObserver
}

// ID implements the Interpretable interface.
func (e *evalWatchAttr) ID() int64 {
	return e.inst.ID()
}

// Eval implements the Interpretable interface.
func (e *evalWatchAttr) Eval(vars Activation) types.Value {
	val := e.inst.Eval(vars)
	e.observer(e.inst.ID(), val)
	return val
}

// Attr implements the InterpretableAttribute interface.
func (e *evalWatchAttr) Attr() Attribute {
	return e.inst.Attr()
}

// AddQualifier implements the InterpretableAttribute interface.
func (e *evalWatchAttr) AddQualifier(q Qualifier) (Attribute, error) {
	return e.inst.AddQualifier(q)
}

// evalExhaustiveAnd is evalAnd without short-circuiting: both operands
// always evaluate, and an error on either side surfaces even when the
// other side is literally false.
type evalExhaustiveAnd struct {
	id  int64
	lhs Interpretable
	rhs Interpretable
}

// ID implements the Interpretable interface.
func (a *evalExhaustiveAnd) ID() int64 {
	return a.id
}

// Eval implements the Interpretable interface.
func (a *evalExhaustiveAnd) Eval(vars Activation) types.Value {
	lVal := a.lhs.Eval(vars)
	rVal := a.rhs.Eval(vars)
	lBool, lok := lVal.(types.Bool)
	rBool, rok := rVal.(types.Bool)
	if lok && rok {
		return lBool && rBool
	}
	return logicalResult(lVal, rVal, types.True)
}

// evalExhaustiveOr is evalOr without short-circuiting: both operands
// always evaluate, and an error on either side surfaces even when the
// other side is literally true.
type evalExhaustiveOr struct {
	id  int64
	lhs Interpretable
	rhs Interpretable
}

// ID implements the Interpretable interface.
func (o *evalExhaustiveOr) ID() int64 {
	return o.id
}

// Eval implements the Interpretable interface.
func (o *evalExhaustiveOr) Eval(vars Activation) types.Value {
	lVal := o.lhs.Eval(vars)
	rVal := o.rhs.Eval(vars)
	lBool, lok := lVal.(types.Bool)
	rBool, rok := rVal.(types.Bool)
	if lok && rok {
		return lBool || rBool
	}
	return logicalResult(lVal, rVal, types.False)
}

// evalExhaustiveConditional evaluates both arms of the ternary before
// selecting the result.
type evalExhaustiveConditional struct {
	id     int64
	expr   Interpretable
	truthy Interpretable
	falsy  Interpretable
}

// ID implements the Interpretable interface.
func (c *evalExhaustiveConditional) ID() int64 {
	return c.id
}

// Eval implements the Interpretable interface.
func (c *evalExhaustiveConditional) Eval(vars Activation) types.Value {
	cVal := c.expr.Eval(vars)
	tVal := c.truthy.Eval(vars)
	fVal := c.falsy.Eval(vars)
	cond, ok := cVal.(types.Bool)
	if !ok {
		return types.MaybeNoSuchOverload(cVal)
	}
	if cond {
		return tVal
	}
	return fVal
}

// evalExhaustiveFold runs every iteration of the fold regardless of
// the loop condition so that all intermediate state is observable.
type evalExhaustiveFold struct {
	id        int64
	accuVar   string
	iterVar   string
	iterRange Interpretable
	accu      Interpretable
	cond      Interpretable
	step      Interpretable
	result    Interpretable
}

// ID implements the Interpretable interface.
func (fold *evalExhaustiveFold) ID() int64 {
	return fold.id
}

// Eval implements the Interpretable interface.
func (fold *evalExhaustiveFold) Eval(vars Activation) types.Value {
	foldRange := fold.iterRange.Eval(vars)
	if !foldRange.Type().HasTrait(types.IterableTrait) {
		return types.ValOrErr(foldRange, "got '%s', expected iterable type", foldRange.Type().TypeName())
	}
	accuCtx := varActivationPool.Get().(*varActivation)
	accuCtx.parent = vars
	accuCtx.name = fold.accuVar
	accuCtx.val = fold.accu.Eval(vars)
	iterCtx := varActivationPool.Get().(*varActivation)
	iterCtx.parent = accuCtx
	iterCtx.name = fold.iterVar
	it := foldRange.(types.Iterable).Iterator()
	for it.HasNext() == types.True {
		if interrupted(vars) {
			varActivationPool.Put(iterCtx)
			varActivationPool.Put(accuCtx)
			return types.InterruptedErr().WithID(fold.id)
		}
		iterCtx.val = it.Next()

		// Evaluate the condition for its observable effects only.
		fold.cond.Eval(iterCtx)

		accuCtx.val = fold.step.Eval(iterCtx)
	}
	res := fold.result.Eval(accuCtx)
	varActivationPool.Put(iterCtx)
	varActivationPool.Put(accuCtx)
	return res
}
