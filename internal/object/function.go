package object

import (
	"fmt"

	"easycode/internal/ast"
	"easycode/internal/diag"
	"easycode/internal/token"
)

// Function is a user defined function. Env is the environment it was
// defined in; calls run in a new environment enclosed by it.
type Function struct {
	Base
	Name       string // empty for anonymous functions
	Params     []string
	Body       ast.Node
	AutoReturn bool
	Env        *Environment
}

func (f *Function) Type() ObjectType { return FUNCTION_OBJ }
func (f *Function) Truthy() bool     { return true }
func (f *Function) Display() string  { return f.Inspect() }

func (f *Function) Inspect() string {
	if f.Name == "" {
		return "<function <anonymous>>"
	}
	return fmt.Sprintf("<function %s>", f.Name)
}

func (f *Function) Copy() Object {
	c := *f
	return &c
}

// Call is what a built-in sees of its invocation: the arguments bound by
// parameter name and where the call happened.
type Call struct {
	Env     *Environment
	Context *diag.Context
	Start   token.Position
	End     token.Position
}

func (c *Call) Arg(name string) Object {
	v, _ := c.Env.GetLocal(name)
	return v
}

func (c *Call) Error(details string) error {
	return diag.NewRuntime(c.Start, c.End, details, c.Context)
}

type BuiltinFunction func(call *Call) (Object, error)

type Builtin struct {
	Base
	Name   string
	Params []string
	Fn     BuiltinFunction
}

func (b *Builtin) Type() ObjectType { return BUILTIN_OBJ }
func (b *Builtin) Truthy() bool     { return true }
func (b *Builtin) Inspect() string  { return fmt.Sprintf("<built-in function %s>", b.Name) }
func (b *Builtin) Display() string  { return b.Inspect() }

func (b *Builtin) Copy() Object {
	c := *b
	return &c
}
