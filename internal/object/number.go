package object

import (
	"math"
	"strconv"
	"strings"
)

// Number is an integer or a float. Integer arithmetic that overflows
// int64 continues in floating point.
type Number struct {
	Base
	Int     int64
	Float   float64
	IsFloat bool
}

func NewInt(v int64) *Number     { return &Number{Int: v} }
func NewFloat(v float64) *Number { return &Number{Float: v, IsFloat: true} }

func Bool(b bool) *Number {
	if b {
		return NewInt(1)
	}
	return NewInt(0)
}

func (n *Number) Type() ObjectType { return NUMBER_OBJ }

func (n *Number) Value() float64 {
	if n.IsFloat {
		return n.Float
	}
	return float64(n.Int)
}

func (n *Number) Inspect() string {
	if n.IsFloat {
		return formatFloat(n.Float)
	}
	return strconv.FormatInt(n.Int, 10)
}

func (n *Number) Display() string { return n.Inspect() }
func (n *Number) Truthy() bool    { return n.Value() != 0 }

func (n *Number) Copy() Object {
	c := *n
	return &c
}

// IntValue returns the integer value of a non-float number.
func (n *Number) IntValue() (int64, bool) {
	return n.Int, !n.IsFloat
}

func formatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	}
	if abs := math.Abs(f); abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func (n *Number) result(v *Number) (Object, error) {
	v.Context = n.Context
	return v, nil
}

func (n *Number) arith(other Object, intOp func(a, b int64) (int64, bool), floatOp func(a, b float64) float64) (Object, error) {
	o, ok := other.(*Number)
	if !ok {
		return nil, n.IllegalOperation(other)
	}
	if !n.IsFloat && !o.IsFloat {
		if v, ok := intOp(n.Int, o.Int); ok {
			return n.result(NewInt(v))
		}
	}
	return n.result(NewFloat(floatOp(n.Value(), o.Value())))
}

func (n *Number) Add(other Object) (Object, error) {
	return n.arith(other, addInt, func(a, b float64) float64 { return a + b })
}

func (n *Number) Sub(other Object) (Object, error) {
	return n.arith(other, subInt, func(a, b float64) float64 { return a - b })
}

func (n *Number) Mul(other Object) (Object, error) {
	return n.arith(other, mulInt, func(a, b float64) float64 { return a * b })
}

func (n *Number) Div(other Object) (Object, error) {
	o, ok := other.(*Number)
	if !ok {
		return nil, n.IllegalOperation(other)
	}
	if o.Value() == 0 {
		return nil, runtimeError(o, n.Context, "Division by zero")
	}
	return n.result(NewFloat(n.Value() / o.Value()))
}

func (n *Number) Pow(other Object) (Object, error) {
	return n.arith(other, powInt, math.Pow)
}

func (n *Number) compare(other Object, cmp func(a, b float64) bool) (Object, error) {
	o, ok := other.(*Number)
	if !ok {
		return nil, n.IllegalOperation(other)
	}
	if !n.IsFloat && !o.IsFloat {
		return n.result(Bool(cmp(float64(compareInt(n.Int, o.Int)), 0)))
	}
	return n.result(Bool(cmp(n.Value(), o.Value())))
}

func (n *Number) Eq(other Object) (Object, error) {
	return n.compare(other, func(a, b float64) bool { return a == b })
}

func (n *Number) Ne(other Object) (Object, error) {
	return n.compare(other, func(a, b float64) bool { return a != b })
}

func (n *Number) Lt(other Object) (Object, error) {
	return n.compare(other, func(a, b float64) bool { return a < b })
}

func (n *Number) Gt(other Object) (Object, error) {
	return n.compare(other, func(a, b float64) bool { return a > b })
}

func (n *Number) Le(other Object) (Object, error) {
	return n.compare(other, func(a, b float64) bool { return a <= b })
}

func (n *Number) Ge(other Object) (Object, error) {
	return n.compare(other, func(a, b float64) bool { return a >= b })
}

func (n *Number) And(other Object) (Object, error) {
	o, ok := other.(*Number)
	if !ok {
		return nil, n.IllegalOperation(other)
	}
	return n.result(Bool(n.Truthy() && o.Truthy()))
}

func (n *Number) Or(other Object) (Object, error) {
	o, ok := other.(*Number)
	if !ok {
		return nil, n.IllegalOperation(other)
	}
	return n.result(Bool(n.Truthy() || o.Truthy()))
}

func (n *Number) Not() (Object, error) {
	return n.result(Bool(!n.Truthy()))
}

// compareInt avoids the precision loss of comparing large ints as floats.
func compareInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func addInt(a, b int64) (int64, bool) {
	r := a + b
	if (a > 0 && b > 0 && r < 0) || (a < 0 && b < 0 && r >= 0) {
		return 0, false
	}
	return r, true
}

func subInt(a, b int64) (int64, bool) {
	r := a - b
	if (a >= 0 && b < 0 && r < 0) || (a < 0 && b > 0 && r >= 0) {
		return 0, false
	}
	return r, true
}

func mulInt(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	r := a * b
	if r/b != a || (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, false
	}
	return r, true
}

// powInt handles non-negative exponents only; the caller falls back to
// math.Pow otherwise.
func powInt(base, exp int64) (int64, bool) {
	if exp < 0 {
		return 0, false
	}
	result := int64(1)
	for exp > 0 {
		var ok bool
		if exp&1 == 1 {
			if result, ok = mulInt(result, base); !ok {
				return 0, false
			}
		}
		exp >>= 1
		if exp > 0 {
			if base, ok = mulInt(base, base); !ok {
				return 0, false
			}
		}
	}
	return result, true
}
