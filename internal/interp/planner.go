package interp

import (
	"fmt"
	"strings"

	"github.com/cwbudde/go-cel/internal/ast"
	"github.com/cwbudde/go-cel/internal/operators"
	"github.com/cwbudde/go-cel/internal/types"
)

// newPlanner creates a planner bound to a dispatcher, provider,
// adapter, attribute factory, and container. Function, type, and
// namespaced identifier resolution happens once at plan time; the
// produced tree is reusable across activations.
func newPlanner(disp Dispatcher,
	provider types.Provider,
	adapter types.Adapter,
	attrFactory AttributeFactory,
	cont *Container,
	checked *ast.AST,
	decorators ...InterpretableDecorator) *planner {
	return &planner{
		disp:        disp,
		provider:    provider,
		adapter:     adapter,
		attrFactory: attrFactory,
		container:   cont,
		refMap:      checked.References,
		decorators:  decorators,
	}
}

type planner struct {
	disp        Dispatcher
	provider    types.Provider
	adapter     types.Adapter
	attrFactory AttributeFactory
	container   *Container
	refMap      map[int64]*ast.Reference
	decorators  []InterpretableDecorator
}

// Plan lowers the AST into an Interpretable, applying the decorator
// chain to every generated node bottom-up.
func (p *planner) Plan(expr ast.Expr) (Interpretable, error) {
	switch expr := expr.(type) {
	case *ast.Const:
		return p.decorate(p.planConst(expr))
	case *ast.Ident:
		return p.decorate(p.planIdent(expr))
	case *ast.Select:
		return p.decorate(p.planSelect(expr))
	case *ast.Call:
		return p.decorate(p.planCall(expr))
	case *ast.CreateList:
		return p.decorate(p.planCreateList(expr))
	case *ast.CreateMap:
		return p.decorate(p.planCreateMap(expr))
	case *ast.CreateStruct:
		return p.decorate(p.planCreateStruct(expr))
	case *ast.Comprehension:
		return p.decorate(p.planComprehension(expr))
	}
	return nil, fmt.Errorf("unsupported expr: %T", expr)
}

// decorate applies the decorator chain to a planned node.
func (p *planner) decorate(i Interpretable, err error) (Interpretable, error) {
	if err != nil {
		return nil, err
	}
	for _, dec := range p.decorators {
		i, err = dec(i)
		if err != nil {
			return nil, err
		}
	}
	return i, nil
}

// planConst generates a constant valued Interpretable.
func (p *planner) planConst(expr *ast.Const) (Interpretable, error) {
	return NewConstValue(expr.NodeID, expr.Val), nil
}

// planIdent creates an attribute Interpretable for an identifier. The
// candidate name list is computed here and frozen.
func (p *planner) planIdent(expr *ast.Ident) (Interpretable, error) {
	if ref, found := p.refMap[expr.NodeID]; found {
		return p.planCheckedIdent(expr.NodeID, ref)
	}
	return &evalAttr{attr: p.attrFactory.MaybeAttribute(expr.NodeID, expr.Name)}, nil
}

// planCheckedIdent plans an identifier the checker already resolved:
// a constant reference (enum), a type name, or an absolute attribute.
func (p *planner) planCheckedIdent(id int64, ref *ast.Reference) (Interpretable, error) {
	if ref.Value != nil {
		return NewConstValue(id, ref.Value), nil
	}
	if t, found := p.provider.FindType(ref.Name); found {
		return NewConstValue(id, t), nil
	}
	return &evalAttr{attr: p.attrFactory.AbsoluteAttribute(id, ref.Name)}, nil
}

// planSelect merges a field selection into the operand's attribute
// when possible, preserving the namespaced-candidate machinery that
// drives subsumption. Test-only selects compile to a presence test on
// the unqualified operand.
func (p *planner) planSelect(expr *ast.Select) (Interpretable, error) {
	if ref, found := p.refMap[expr.NodeID]; found {
		return p.planCheckedIdent(expr.NodeID, ref)
	}
	op, err := p.Plan(expr.Operand)
	if err != nil {
		return nil, err
	}
	if expr.TestOnly {
		return &evalTestOnly{
			id:    expr.NodeID,
			op:    op,
			field: types.String(expr.Field),
		}, nil
	}
	attr, err := p.relativeAttr(expr.Operand.ID(), op)
	if err != nil {
		return nil, err
	}
	qual, err := p.attrFactory.NewQualifier(expr.NodeID, types.String(expr.Field))
	if err != nil {
		return nil, err
	}
	if _, err := attr.AddQualifier(qual); err != nil {
		return nil, err
	}
	return attr, nil
}

// planCall lowers a function invocation, specializing the non-strict
// operators &&, ||, ?:, the equality pair, indexing, and type().
func (p *planner) planCall(expr *ast.Call) (Interpretable, error) {
	target, fnName, oName := p.resolveFunction(expr)
	argCount := len(expr.Args)
	var offset int
	if target != nil {
		argCount++
		offset++
	}
	args := make([]Interpretable, argCount)
	if target != nil {
		arg, err := p.Plan(target)
		if err != nil {
			return nil, err
		}
		args[0] = arg
	}
	for i, argExpr := range expr.Args {
		arg, err := p.Plan(argExpr)
		if err != nil {
			return nil, err
		}
		args[i+offset] = arg
	}

	switch fnName {
	case operators.LogicalAnd:
		return &evalAnd{id: expr.NodeID, lhs: args[0], rhs: args[1]}, nil
	case operators.LogicalOr:
		return &evalOr{id: expr.NodeID, lhs: args[0], rhs: args[1]}, nil
	case operators.Conditional:
		return &evalConditional{id: expr.NodeID, expr: args[0], truthy: args[1], falsy: args[2]}, nil
	case operators.Equals:
		return &evalEq{id: expr.NodeID, lhs: args[0], rhs: args[1]}, nil
	case operators.NotEquals:
		return &evalNe{id: expr.NodeID, lhs: args[0], rhs: args[1]}, nil
	case operators.Index:
		return p.planCallIndex(expr, args)
	case "type":
		if len(args) == 1 {
			return &evalTypeOf{id: expr.NodeID, arg: args[0]}, nil
		}
	}

	var fnDef *Overload
	var found bool
	if oName != "" {
		fnDef, found = p.disp.FindOverload(oName)
		if !found {
			return nil, fmt.Errorf("unknown overload id: %s", oName)
		}
	}
	if fnDef == nil {
		fnDef, _ = p.disp.FindOverload(fnName)
	}
	switch argCount {
	case 0:
		return p.planCallZero(expr, fnName, oName, fnDef)
	case 1:
		if fnDef != nil && fnDef.Unary == nil && fnDef.Function != nil {
			return p.planCallVarArgs(expr, fnName, oName, fnDef, args)
		}
		return p.planCallUnary(expr, fnName, oName, fnDef, args)
	case 2:
		if fnDef != nil && fnDef.Binary == nil && fnDef.Function != nil {
			return p.planCallVarArgs(expr, fnName, oName, fnDef, args)
		}
		return p.planCallBinary(expr, fnName, oName, fnDef, args)
	default:
		return p.planCallVarArgs(expr, fnName, oName, fnDef, args)
	}
}

func (p *planner) planCallZero(expr *ast.Call, function, overload string, impl *Overload) (Interpretable, error) {
	if impl == nil || impl.Function == nil {
		return nil, fmt.Errorf("no such overload: %s()", function)
	}
	return &evalZeroArity{id: expr.NodeID, function: function, overload: overload, impl: impl.Function}, nil
}

func (p *planner) planCallUnary(expr *ast.Call, function, overload string, impl *Overload, args []Interpretable) (Interpretable, error) {
	var fn UnaryOp
	var trait int
	var nonStrict bool
	if impl != nil {
		fn = impl.Unary
		trait = impl.OperandTrait
		nonStrict = impl.NonStrict
	}
	return &evalUnary{
		id:        expr.NodeID,
		function:  function,
		overload:  overload,
		arg:       args[0],
		trait:     trait,
		impl:      fn,
		nonStrict: nonStrict,
	}, nil
}

func (p *planner) planCallBinary(expr *ast.Call, function, overload string, impl *Overload, args []Interpretable) (Interpretable, error) {
	var fn BinaryOp
	var trait int
	var nonStrict bool
	if impl != nil {
		fn = impl.Binary
		trait = impl.OperandTrait
		nonStrict = impl.NonStrict
	}
	return &evalBinary{
		id:        expr.NodeID,
		function:  function,
		overload:  overload,
		lhs:       args[0],
		rhs:       args[1],
		trait:     trait,
		impl:      fn,
		nonStrict: nonStrict,
	}, nil
}

func (p *planner) planCallVarArgs(expr *ast.Call, function, overload string, impl *Overload, args []Interpretable) (Interpretable, error) {
	var fn FunctionOp
	var trait int
	var nonStrict bool
	if impl != nil {
		fn = impl.Function
		trait = impl.OperandTrait
		nonStrict = impl.NonStrict
	}
	return &evalVarArgs{
		id:        expr.NodeID,
		function:  function,
		overload:  overload,
		args:      args,
		trait:     trait,
		impl:      fn,
		nonStrict: nonStrict,
	}, nil
}

// planCallIndex either extends the operand's attribute with the index
// as a qualifier, or falls back to a relative attribute over the
// computed operand.
func (p *planner) planCallIndex(expr *ast.Call, args []Interpretable) (Interpretable, error) {
	attr, err := p.relativeAttr(args[0].ID(), args[0])
	if err != nil {
		return nil, err
	}
	var qual Qualifier
	switch ind := args[1].(type) {
	case InterpretableConst:
		qual, err = p.attrFactory.NewQualifier(expr.NodeID, ind.Value())
	case InterpretableAttribute:
		qual, err = p.attrFactory.NewQualifier(expr.NodeID, ind.Attr())
	default:
		qual, err = p.attrFactory.NewQualifier(expr.NodeID, args[1])
	}
	if err != nil {
		return nil, err
	}
	if _, err := attr.AddQualifier(qual); err != nil {
		return nil, err
	}
	return attr, nil
}

// relativeAttr reuses the operand's attribute when it is one, and
// wraps any other interpretable as a relative attribute.
func (p *planner) relativeAttr(id int64, eval Interpretable) (InterpretableAttribute, error) {
	eAttr, ok := eval.(InterpretableAttribute)
	if !ok {
		eAttr = &evalAttr{attr: p.attrFactory.RelativeAttribute(id, eval)}
	}
	decAttr, err := p.decorate(eAttr, nil)
	if err != nil {
		return nil, err
	}
	eAttr, ok = decAttr.(InterpretableAttribute)
	if !ok {
		return nil, fmt.Errorf("invalid attribute decoration: %T", decAttr)
	}
	return eAttr, nil
}

// planCreateList generates a list construction Interpretable.
func (p *planner) planCreateList(expr *ast.CreateList) (Interpretable, error) {
	elems := make([]Interpretable, len(expr.Elements))
	for i, elem := range expr.Elements {
		elemVal, err := p.Plan(elem)
		if err != nil {
			return nil, err
		}
		elems[i] = elemVal
	}
	return &evalList{id: expr.NodeID, elems: elems, adapter: p.adapter}, nil
}

// planCreateMap generates a map construction Interpretable.
func (p *planner) planCreateMap(expr *ast.CreateMap) (Interpretable, error) {
	keys := make([]Interpretable, len(expr.Entries))
	vals := make([]Interpretable, len(expr.Entries))
	for i, entry := range expr.Entries {
		keyVal, err := p.Plan(entry.Key)
		if err != nil {
			return nil, err
		}
		keys[i] = keyVal
		valVal, err := p.Plan(entry.Value)
		if err != nil {
			return nil, err
		}
		vals[i] = valVal
	}
	return &evalMap{id: expr.NodeID, keys: keys, vals: vals, adapter: p.adapter}, nil
}

// planCreateStruct generates a message construction Interpretable. An
// unknown type name is a plan-time error.
func (p *planner) planCreateStruct(expr *ast.CreateStruct) (Interpretable, error) {
	typeName, defined := p.resolveTypeName(expr.TypeName)
	if !defined {
		return nil, fmt.Errorf("unknown type: %s", expr.TypeName)
	}
	fields := make([]string, len(expr.Fields))
	vals := make([]Interpretable, len(expr.Fields))
	for i, field := range expr.Fields {
		fields[i] = field.Name
		val, err := p.Plan(field.Value)
		if err != nil {
			return nil, err
		}
		vals[i] = val
	}
	return &evalObj{id: expr.NodeID, typeName: typeName, fields: fields, vals: vals, provider: p.provider}, nil
}

// planComprehension generates an Interpretable fold operation.
func (p *planner) planComprehension(expr *ast.Comprehension) (Interpretable, error) {
	accu, err := p.Plan(expr.AccuInit)
	if err != nil {
		return nil, err
	}
	iterRange, err := p.Plan(expr.IterRange)
	if err != nil {
		return nil, err
	}
	cond, err := p.Plan(expr.LoopCond)
	if err != nil {
		return nil, err
	}
	step, err := p.Plan(expr.LoopStep)
	if err != nil {
		return nil, err
	}
	result, err := p.Plan(expr.Result)
	if err != nil {
		return nil, err
	}
	return &evalFold{
		id:        expr.NodeID,
		accuVar:   expr.AccuVar,
		accu:      accu,
		iterVar:   expr.IterVar,
		iterRange: iterRange,
		cond:      cond,
		step:      step,
		result:    result,
	}, nil
}

// resolveTypeName scans the container's candidate names for a
// registered message type.
func (p *planner) resolveTypeName(typeName string) (string, bool) {
	for _, qualifiedTypeName := range p.container.ResolveCandidateNames(typeName) {
		if _, found := p.provider.FindStructType(qualifiedTypeName); found {
			return qualifiedTypeName, true
		}
	}
	return "", false
}

// resolveFunction determines the call target, function name, and
// overload id for a call. Receiver-style invocations whose target
// spells a qualified function name collapse to a global call.
func (p *planner) resolveFunction(expr *ast.Call) (ast.Expr, string, string) {
	target := expr.Target
	fnName := expr.Function

	if ref, found := p.refMap[expr.NodeID]; found && ref.OverloadID != "" {
		return target, fnName, ref.OverloadID
	}

	if target == nil {
		for _, qualifiedName := range p.container.ResolveCandidateNames(fnName) {
			if _, found := p.disp.FindOverload(qualifiedName); found {
				return nil, qualifiedName, ""
			}
		}
		return nil, stripLeadingDot(fnName), ""
	}

	if qualifiedPrefix, maybeQualified := p.toQualifiedName(target); maybeQualified {
		maybeQualifiedName := qualifiedPrefix + "." + fnName
		for _, qualifiedName := range p.container.ResolveCandidateNames(maybeQualifiedName) {
			if _, found := p.disp.FindOverload(qualifiedName); found {
				return nil, qualifiedName, ""
			}
		}
	}
	return target, fnName, ""
}

// toQualifiedName flattens an ident/select chain to a dotted name.
func (p *planner) toQualifiedName(operand ast.Expr) (string, bool) {
	switch operand := operand.(type) {
	case *ast.Ident:
		return operand.Name, true
	case *ast.Select:
		if operand.TestOnly {
			return "", false
		}
		if qual, found := p.toQualifiedName(operand.Operand); found {
			return qual + "." + operand.Field, true
		}
	}
	return "", false
}

func stripLeadingDot(name string) string {
	return strings.TrimPrefix(name, ".")
}
