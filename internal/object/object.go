package object

import (
	"easycode/internal/diag"
	"easycode/internal/token"
)

type ObjectType string

const (
	NUMBER_OBJ   = "NUMBER"
	STRING_OBJ   = "STRING"
	LIST_OBJ     = "LIST"
	FUNCTION_OBJ = "FUNCTION"
	BUILTIN_OBJ  = "BUILTIN"
)

// Operators are the binary and unary operations of the language. Each
// binary method is called on the left operand with the right one.
type Operators interface {
	Add(other Object) (Object, error)
	Sub(other Object) (Object, error)
	Mul(other Object) (Object, error)
	Div(other Object) (Object, error)
	Pow(other Object) (Object, error)
	Eq(other Object) (Object, error)
	Ne(other Object) (Object, error)
	Lt(other Object) (Object, error)
	Gt(other Object) (Object, error)
	Le(other Object) (Object, error)
	Ge(other Object) (Object, error)
	And(other Object) (Object, error)
	Or(other Object) (Object, error)
	Not() (Object, error)
}

type Object interface {
	Operators
	Type() ObjectType
	// Inspect is the REPL form, Display the form print writes.
	Inspect() string
	Display() string
	Truthy() bool
	// Copy returns a new value wrapper; lists share their elements.
	Copy() Object
	Meta() *Base
}

// Base carries the source span and call context of a value. It is only
// used for diagnostics and supplies the illegal operation defaults.
type Base struct {
	Start   token.Position
	End     token.Position
	Context *diag.Context
}

func (b *Base) Meta() *Base { return b }

func (b *Base) SetPos(start, end token.Position) {
	b.Start = start
	b.End = end
}

func (b *Base) SetContext(ctx *diag.Context) {
	b.Context = ctx
}

// IllegalOperation spans from the left operand to the right one, or covers
// only the left operand of a unary operation when right is nil.
func (b *Base) IllegalOperation(right Object) error {
	end := b.End
	if right != nil {
		end = right.Meta().End
	}
	return diag.NewRuntime(b.Start, end, "Illegal operation", b.Context)
}

func (b *Base) Add(other Object) (Object, error) { return nil, b.IllegalOperation(other) }
func (b *Base) Sub(other Object) (Object, error) { return nil, b.IllegalOperation(other) }
func (b *Base) Mul(other Object) (Object, error) { return nil, b.IllegalOperation(other) }
func (b *Base) Div(other Object) (Object, error) { return nil, b.IllegalOperation(other) }
func (b *Base) Pow(other Object) (Object, error) { return nil, b.IllegalOperation(other) }
func (b *Base) Eq(other Object) (Object, error)  { return nil, b.IllegalOperation(other) }
func (b *Base) Ne(other Object) (Object, error)  { return nil, b.IllegalOperation(other) }
func (b *Base) Lt(other Object) (Object, error)  { return nil, b.IllegalOperation(other) }
func (b *Base) Gt(other Object) (Object, error)  { return nil, b.IllegalOperation(other) }
func (b *Base) Le(other Object) (Object, error)  { return nil, b.IllegalOperation(other) }
func (b *Base) Ge(other Object) (Object, error)  { return nil, b.IllegalOperation(other) }
func (b *Base) And(other Object) (Object, error) { return nil, b.IllegalOperation(other) }
func (b *Base) Or(other Object) (Object, error)  { return nil, b.IllegalOperation(other) }
func (b *Base) Not() (Object, error)             { return nil, b.IllegalOperation(nil) }

// runtimeError reports a failure located at the given operand.
func runtimeError(at Object, ctx *diag.Context, details string) error {
	m := at.Meta()
	return diag.NewRuntime(m.Start, m.End, details, ctx)
}
