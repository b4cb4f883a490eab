package evaluator

import (
	"fmt"
	"log/slog"

	"easycode/internal/ast"
	"easycode/internal/diag"
	"easycode/internal/object"
	"easycode/internal/token"
)

const DefaultMaxDepth = 1000

type Signal int

const (
	SignalNone Signal = iota
	SignalReturn
	SignalContinue
	SignalBreak
)

func (s Signal) String() string {
	switch s {
	case SignalReturn:
		return "RETURN"
	case SignalContinue:
		return "CONTINUE"
	case SignalBreak:
		return "BREAK"
	}
	return "NONE"
}

// Result is the outcome of evaluating one node: a value, an error, or a
// control signal. For SignalReturn, Value holds the returned value.
type Result struct {
	Value  object.Object
	Err    error
	Signal Signal

	origin ast.Node // the statement that raised Signal
	ctx    *diag.Context
}

func (r Result) stop() bool {
	return r.Err != nil || r.Signal != SignalNone
}

func success(v object.Object) Result { return Result{Value: v} }
func failure(err error) Result       { return Result{Err: err} }

type Evaluator struct {
	Globals  *object.Environment
	MaxDepth int

	depth int // active user function calls
}

// New creates an evaluator whose global environment encloses the built-in
// bindings for host.
func New(host IO) *Evaluator {
	return &Evaluator{
		Globals:  NewGlobals(host),
		MaxDepth: DefaultMaxDepth,
	}
}

// Run evaluates a whole program in the global environment. A control
// signal that reaches the top level is reported as a runtime error.
func (e *Evaluator) Run(program *ast.Block, ctx *diag.Context) (object.Object, error) {
	e.depth = 0
	r := e.Eval(program, e.Globals, ctx)
	if r.Err != nil {
		return nil, r.Err
	}
	if r.Signal != SignalNone {
		return nil, strayedSignal(r)
	}
	return r.Value, nil
}

func strayedSignal(r Result) error {
	details := fmt.Sprintf("'%s' outside of a loop", r.Signal)
	if r.Signal == SignalReturn {
		details = "'RETURN' outside of a function"
	}
	return diag.NewRuntime(r.origin.Pos(), r.origin.End(), details, r.ctx)
}

func (e *Evaluator) Eval(node ast.Node, env *object.Environment, ctx *diag.Context) Result {
	switch node := node.(type) {

	case *ast.Block:
		return e.evalBlock(node, env, ctx)

	case *ast.NumberLiteral:
		if node.IsFloat {
			return success(place(object.NewFloat(node.Float), node, ctx))
		}
		return success(place(object.NewInt(node.Int), node, ctx))

	case *ast.StringLiteral:
		return success(place(object.NewString(node.Value), node, ctx))

	case *ast.ListLiteral:
		elements := make([]object.Object, 0, len(node.Elements))
		for _, el := range node.Elements {
			r := e.Eval(el, env, ctx)
			if r.stop() {
				return r
			}
			elements = append(elements, r.Value)
		}
		return success(place(object.NewList(elements), node, ctx))

	case *ast.VarAccess:
		val, ok := env.Get(node.Name.Literal)
		if !ok {
			return failure(diag.NewRuntime(node.Pos(), node.End(),
				fmt.Sprintf("'%s' is not defined", node.Name.Literal), ctx))
		}
		return success(place(val.Copy(), node, ctx))

	case *ast.VarAssign:
		r := e.Eval(node.Value, env, ctx)
		if r.stop() {
			return r
		}
		env.Set(node.Name.Literal, r.Value)
		return r

	case *ast.BinaryOp:
		return e.evalBinaryOp(node, env, ctx)

	case *ast.UnaryOp:
		return e.evalUnaryOp(node, env, ctx)

	case *ast.If:
		return e.evalIf(node, env, ctx)

	case *ast.For:
		return e.evalFor(node, env, ctx)

	case *ast.While:
		return e.evalWhile(node, env, ctx)

	case *ast.FuncDef:
		fn := &object.Function{
			Body:       node.Body,
			AutoReturn: node.AutoReturn,
			Env:        env,
		}
		if node.Name != nil {
			fn.Name = node.Name.Literal
		}
		for _, p := range node.Params {
			fn.Params = append(fn.Params, p.Literal)
		}
		place(fn, node, ctx)
		if fn.Name != "" {
			env.Set(fn.Name, fn)
		}
		return success(fn)

	case *ast.Call:
		return e.evalCall(node, env, ctx)

	case *ast.Return:
		var val object.Object
		if node.Value != nil {
			r := e.Eval(node.Value, env, ctx)
			if r.stop() {
				return r
			}
			val = r.Value
		} else {
			val = null(node, ctx)
		}
		return Result{Value: val, Signal: SignalReturn, origin: node, ctx: ctx}

	case *ast.Continue:
		return Result{Signal: SignalContinue, origin: node, ctx: ctx}

	case *ast.Break:
		return Result{Signal: SignalBreak, origin: node, ctx: ctx}
	}

	return failure(diag.NewRuntime(node.Pos(), node.End(), fmt.Sprintf("cannot evaluate %T", node), ctx))
}

// place records where a value was produced.
func place(v object.Object, node ast.Node, ctx *diag.Context) object.Object {
	m := v.Meta()
	m.SetPos(node.Pos(), node.End())
	m.SetContext(ctx)
	return v
}

func null(node ast.Node, ctx *diag.Context) object.Object {
	return place(object.NewInt(0), node, ctx)
}

// evalBlock collects one value per statement into a list.
func (e *Evaluator) evalBlock(block *ast.Block, env *object.Environment, ctx *diag.Context) Result {
	values := make([]object.Object, 0, len(block.Statements))
	for _, stmt := range block.Statements {
		r := e.Eval(stmt, env, ctx)
		if r.stop() {
			return r
		}
		values = append(values, r.Value)
	}
	return success(place(object.NewList(values), block, ctx))
}

func (e *Evaluator) evalBinaryOp(node *ast.BinaryOp, env *object.Environment, ctx *diag.Context) Result {
	left := e.Eval(node.Left, env, ctx)
	if left.stop() {
		return left
	}
	right := e.Eval(node.Right, env, ctx)
	if right.stop() {
		return right
	}

	result, err := applyOperator(node.Operator.Type, left.Value, right.Value)
	if err != nil {
		return failure(err)
	}
	return success(place(result, node, ctx))
}

func applyOperator(op token.TokenType, left, right object.Object) (object.Object, error) {
	switch op {
	case token.PLUS:
		return left.Add(right)
	case token.MINUS:
		return left.Sub(right)
	case token.ASTERISK:
		return left.Mul(right)
	case token.SLASH:
		return left.Div(right)
	case token.CARET:
		return left.Pow(right)
	case token.ASSIGN, token.EQ:
		return left.Eq(right)
	case token.NOT_EQ:
		return left.Ne(right)
	case token.LT:
		return left.Lt(right)
	case token.GT:
		return left.Gt(right)
	case token.LT_EQ:
		return left.Le(right)
	case token.GT_EQ:
		return left.Ge(right)
	case token.AND:
		return left.And(right)
	case token.OR:
		return left.Or(right)
	}
	return nil, left.Meta().IllegalOperation(right)
}

func (e *Evaluator) evalUnaryOp(node *ast.UnaryOp, env *object.Environment, ctx *diag.Context) Result {
	r := e.Eval(node.Operand, env, ctx)
	if r.stop() {
		return r
	}

	val := r.Value
	var err error
	switch node.Operator.Type {
	case token.MINUS:
		minusOne := object.NewInt(-1)
		minusOne.SetPos(node.Operator.Start, node.Operator.End)
		val, err = val.Mul(minusOne)
	case token.NOT:
		val, err = val.Not()
	}
	if err != nil {
		return failure(err)
	}
	return success(place(val, node, ctx))
}

func (e *Evaluator) evalIf(node *ast.If, env *object.Environment, ctx *diag.Context) Result {
	for _, c := range node.Cases {
		cond := e.Eval(c.Condition, env, ctx)
		if cond.stop() {
			return cond
		}
		if !cond.Value.Truthy() {
			continue
		}
		body := e.Eval(c.Body, env, ctx)
		if body.stop() || !c.ReturnsNull {
			return body
		}
		return success(null(node, ctx))
	}

	if node.Else != nil {
		body := e.Eval(node.Else.Body, env, ctx)
		if body.stop() || !node.Else.ReturnsNull {
			return body
		}
	}
	return success(null(node, ctx))
}

// loopBody runs one iteration. It reports whether the loop must exit and,
// if so, the Result to hand back when that exit is not a plain BREAK.
func (e *Evaluator) loopBody(body ast.Node, env *object.Environment, ctx *diag.Context, values *[]object.Object) (exit bool, out *Result) {
	r := e.Eval(body, env, ctx)
	switch {
	case r.Err != nil, r.Signal == SignalReturn:
		return true, &r
	case r.Signal == SignalBreak:
		return true, nil
	case r.Signal == SignalContinue:
		return false, nil
	}
	*values = append(*values, r.Value)
	return false, nil
}

func (e *Evaluator) loopResult(values []object.Object, returnsNull bool, node ast.Node, ctx *diag.Context) Result {
	if returnsNull {
		return success(null(node, ctx))
	}
	return success(place(object.NewList(values), node, ctx))
}

func (e *Evaluator) evalFor(node *ast.For, env *object.Environment, ctx *diag.Context) Result {
	bounds := make([]*object.Number, 0, 3)
	for _, n := range []ast.Node{node.From, node.To, node.Step} {
		if n == nil {
			bounds = append(bounds, object.NewInt(1))
			break
		}
		r := e.Eval(n, env, ctx)
		if r.stop() {
			return r
		}
		num, ok := r.Value.(*object.Number)
		if !ok {
			return failure(r.Value.Meta().IllegalOperation(nil))
		}
		bounds = append(bounds, num)
	}
	current, end, step := bounds[0], bounds[1], bounds[2]

	within := func(i *object.Number) bool {
		var ok object.Object
		if step.Value() >= 0 {
			ok, _ = i.Lt(end)
		} else {
			ok, _ = i.Gt(end)
		}
		return ok.Truthy()
	}

	var values []object.Object
	for within(current) {
		env.Set(node.Var.Literal, current.Copy())
		next, _ := current.Add(step)
		current = next.(*object.Number)

		if exit, out := e.loopBody(node.Body, env, ctx, &values); exit {
			if out != nil {
				return *out
			}
			break
		}
	}
	return e.loopResult(values, node.ReturnsNull, node, ctx)
}

func (e *Evaluator) evalWhile(node *ast.While, env *object.Environment, ctx *diag.Context) Result {
	var values []object.Object
	for {
		cond := e.Eval(node.Condition, env, ctx)
		if cond.stop() {
			return cond
		}
		if !cond.Value.Truthy() {
			break
		}

		if exit, out := e.loopBody(node.Body, env, ctx, &values); exit {
			if out != nil {
				return *out
			}
			break
		}
	}
	return e.loopResult(values, node.ReturnsNull, node, ctx)
}

func (e *Evaluator) evalCall(node *ast.Call, env *object.Environment, ctx *diag.Context) Result {
	callee := e.Eval(node.Callee, env, ctx)
	if callee.stop() {
		return callee
	}
	fnObj := callee.Value.Copy()
	fnObj.Meta().SetPos(node.Pos(), node.End())

	args := make([]object.Object, 0, len(node.Args))
	for _, a := range node.Args {
		r := e.Eval(a, env, ctx)
		if r.stop() {
			return r
		}
		args = append(args, r.Value)
	}

	var r Result
	switch fn := fnObj.(type) {
	case *object.Function:
		r = e.applyFunction(fn, args, node)
	case *object.Builtin:
		r = e.applyBuiltin(fn, args, env, node)
	default:
		return failure(fnObj.Meta().IllegalOperation(nil))
	}
	if r.stop() {
		return r
	}
	return success(place(r.Value.Copy(), node, ctx))
}

func checkArgs(fn object.Object, params []string, args []object.Object) error {
	m := fn.Meta()
	switch {
	case len(args) > len(params):
		return diag.NewRuntime(m.Start, m.End,
			fmt.Sprintf("%d too many args passed into %s", len(args)-len(params), fn.Inspect()), m.Context)
	case len(args) < len(params):
		return diag.NewRuntime(m.Start, m.End,
			fmt.Sprintf("%d too few args passed into %s", len(params)-len(args), fn.Inspect()), m.Context)
	}
	return nil
}

func displayName(name string) string {
	if name == "" {
		return "<anonymous>"
	}
	return name
}

// bindArgs creates the call's environment and frame and binds every
// argument to its parameter name.
func bindArgs(fn object.Object, params []string, args []object.Object, outer *object.Environment, name string) (*object.Environment, *diag.Context, error) {
	if err := checkArgs(fn, params, args); err != nil {
		return nil, nil, err
	}
	m := fn.Meta()
	callCtx := diag.NewContext(displayName(name), m.Context, m.Start)
	callEnv := object.NewEnclosedEnvironment(outer)
	for i, p := range params {
		args[i].Meta().SetContext(callCtx)
		callEnv.Set(p, args[i])
	}
	return callEnv, callCtx, nil
}

func (e *Evaluator) applyFunction(fn *object.Function, args []object.Object, node *ast.Call) Result {
	if e.MaxDepth > 0 && e.depth >= e.MaxDepth {
		m := fn.Meta()
		return failure(diag.NewRuntime(m.Start, m.End, "Maximum recursion depth exceeded", m.Context))
	}

	callEnv, callCtx, err := bindArgs(fn, fn.Params, args, fn.Env, fn.Name)
	if err != nil {
		return failure(err)
	}

	slog.Debug("call function",
		slog.String("name", displayName(fn.Name)),
		slog.Int("args", len(args)),
		slog.Int("depth", e.depth+1))

	e.depth++
	r := e.Eval(fn.Body, callEnv, callCtx)
	e.depth--

	switch {
	case r.Err != nil:
		return r
	case r.Signal == SignalReturn:
		return success(r.Value)
	case r.Signal != SignalNone:
		return failure(strayedSignal(r))
	case fn.AutoReturn:
		return r
	}
	return success(null(node, callCtx))
}

func (e *Evaluator) applyBuiltin(fn *object.Builtin, args []object.Object, env *object.Environment, node *ast.Call) Result {
	callEnv, callCtx, err := bindArgs(fn, fn.Params, args, env, fn.Name)
	if err != nil {
		return failure(err)
	}

	slog.Debug("call builtin", slog.String("name", fn.Name), slog.Int("args", len(args)))

	val, err := fn.Fn(&object.Call{
		Env:     callEnv,
		Context: callCtx,
		Start:   node.Pos(),
		End:     node.End(),
	})
	if err != nil {
		return failure(err)
	}
	if val == nil {
		val = null(node, callCtx)
	}
	return success(val)
}
