package object

import (
	"errors"
	"math"
	"testing"

	"easycode/internal/diag"
)

type binaryOp func(left, right Object) (Object, error)

var (
	add = func(l, r Object) (Object, error) { return l.Add(r) }
	sub = func(l, r Object) (Object, error) { return l.Sub(r) }
	mul = func(l, r Object) (Object, error) { return l.Mul(r) }
	div = func(l, r Object) (Object, error) { return l.Div(r) }
	pow = func(l, r Object) (Object, error) { return l.Pow(r) }
	eq  = func(l, r Object) (Object, error) { return l.Eq(r) }
	ne  = func(l, r Object) (Object, error) { return l.Ne(r) }
	lt  = func(l, r Object) (Object, error) { return l.Lt(r) }
	ge  = func(l, r Object) (Object, error) { return l.Ge(r) }
	and = func(l, r Object) (Object, error) { return l.And(r) }
	or  = func(l, r Object) (Object, error) { return l.Or(r) }
)

func list(elements ...Object) *List { return NewList(elements) }

func TestOperators(t *testing.T) {
	tests := []struct {
		name     string
		op       binaryOp
		left     Object
		right    Object
		expected string
	}{
		{"int add", add, NewInt(2), NewInt(3), "5"},
		{"mixed add", add, NewInt(2), NewFloat(0.5), "2.5"},
		{"add overflow", add, NewInt(math.MaxInt64), NewInt(1), "9.223372036854776e+18"},
		{"int sub", sub, NewInt(2), NewInt(5), "-3"},
		{"int mul", mul, NewInt(6), NewInt(7), "42"},
		{"mul overflow", mul, NewInt(math.MaxInt64), NewInt(2), "1.8446744073709552e+19"},
		{"div is float", div, NewInt(4), NewInt(2), "2.0"},
		{"div fraction", div, NewInt(1), NewInt(4), "0.25"},
		{"int pow", pow, NewInt(2), NewInt(10), "1024"},
		{"negative exponent", pow, NewInt(2), NewInt(-1), "0.5"},
		{"float pow", pow, NewFloat(2), NewInt(2), "4.0"},
		{"eq", eq, NewInt(3), NewFloat(3), "1"},
		{"ne", ne, NewInt(3), NewInt(3), "0"},
		{"lt", lt, NewInt(1), NewInt(2), "1"},
		{"ge", ge, NewFloat(1.5), NewInt(2), "0"},
		{"and", and, NewInt(1), NewInt(0), "0"},
		{"or", or, NewInt(0), NewFloat(0.5), "1"},
		{"string concat", add, NewString("ab"), NewString("cd"), `"abcd"`},
		{"string repeat", mul, NewString("ab"), NewInt(3), `"ababab"`},
		{"string repeat zero", mul, NewString("ab"), NewInt(0), `""`},
		{"string repeat negative", mul, NewString("ab"), NewInt(-2), `""`},
		{"list append", add, list(NewInt(1)), NewString("x"), `[1, "x"]`},
		{"list remove", sub, list(NewInt(1), NewInt(2), NewInt(3)), NewInt(1), "[1, 3]"},
		{"list remove last", sub, list(NewInt(1), NewInt(2), NewInt(3)), NewInt(-1), "[1, 2]"},
		{"list concat", mul, list(NewInt(1)), list(NewInt(2), NewInt(3)), "[1, 2, 3]"},
		{"list index", div, list(NewInt(1), NewInt(2)), NewInt(1), "2"},
		{"list negative index", div, list(NewInt(1), NewInt(2)), NewInt(-2), "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := tt.op(tt.left, tt.right)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.Inspect() != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, result.Inspect())
			}
		})
	}
}

func TestOperatorErrors(t *testing.T) {
	tests := []struct {
		name    string
		op      binaryOp
		left    Object
		right   Object
		details string
	}{
		{"divide by zero", div, NewInt(1), NewInt(0), "Division by zero"},
		{"divide by float zero", div, NewFloat(1), NewFloat(0), "Division by zero"},
		{"number plus string", add, NewInt(1), NewString("a"), "Illegal operation"},
		{"string plus number", add, NewString("a"), NewInt(1), "Illegal operation"},
		{"string minus string", sub, NewString("a"), NewString("b"), "Illegal operation"},
		{"string times float", mul, NewString("a"), NewFloat(1.5), "Illegal operation"},
		{"string equality", eq, NewString("a"), NewString("a"), "Illegal operation"},
		{"list times number", mul, list(), NewInt(2), "Illegal operation"},
		{"list compare", lt, list(), list(), "Illegal operation"},
		{"function add", add, &Function{Name: "f"}, NewInt(1), "Illegal operation"},
		{"index out of bounds", div, list(NewInt(1), NewInt(2)), NewInt(5),
			"Element at this index could not be retrieved from list because index is out of bounds"},
		{"float index", div, list(NewInt(1)), NewFloat(0), "Element at this index could not be retrieved from list because index is out of bounds"},
		{"remove out of bounds", sub, list(), NewInt(0),
			"Element at this index could not be removed from list because index is out of bounds"},
		{"repeat overflow", mul, NewString("ab"), NewInt(math.MaxInt64), "String repetition result is too long"},
		{"repeat too long", mul, NewString("ab"), NewInt(1 << 62), "String repetition result is too long"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.op(tt.left, tt.right)
			var derr *diag.Error
			if !errors.As(err, &derr) {
				t.Fatalf("expected a runtime error, got %v", err)
			}
			if derr.Kind != diag.Runtime {
				t.Errorf("expected kind %q, got %q", diag.Runtime, derr.Kind)
			}
			if derr.Details != tt.details {
				t.Errorf("expected %q, got %q", tt.details, derr.Details)
			}
		})
	}
}

func TestNot(t *testing.T) {
	tests := []struct {
		input    Object
		expected string
	}{
		{NewInt(0), "1"},
		{NewInt(5), "0"},
		{NewFloat(0), "1"},
	}
	for _, tt := range tests {
		result, err := tt.input.Not()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Inspect() != tt.expected {
			t.Errorf("NOT %s: expected %s, got %s", tt.input.Inspect(), tt.expected, result.Inspect())
		}
	}

	if _, err := NewString("a").Not(); err == nil {
		t.Errorf("expected NOT on a string to fail")
	}
}

func TestFloatFormatting(t *testing.T) {
	tests := []struct {
		input    float64
		expected string
	}{
		{5, "5.0"},
		{0.1, "0.1"},
		{-2.5, "-2.5"},
		{123456789, "123456789.0"},
		{1e20, "1e+20"},
		{1.5e-05, "1.5e-05"},
		{math.Pi, "3.141592653589793"},
		{math.Inf(1), "inf"},
	}

	for _, tt := range tests {
		if got := NewFloat(tt.input).Inspect(); got != tt.expected {
			t.Errorf("expected %s, got %s", tt.expected, got)
		}
	}
}

func TestTruthiness(t *testing.T) {
	tests := []struct {
		input    Object
		expected bool
	}{
		{NewInt(0), false},
		{NewInt(-1), true},
		{NewFloat(0), false},
		{NewString(""), false},
		{NewString("x"), true},
		{list(), false},
		{list(NewInt(0)), true},
	}
	for _, tt := range tests {
		if tt.input.Truthy() != tt.expected {
			t.Errorf("%s: expected truthy=%t", tt.input.Inspect(), tt.expected)
		}
	}
}

func TestListOperatorsDoNotMutate(t *testing.T) {
	original := list(NewInt(1), NewInt(2))

	if _, err := original.Add(NewInt(3)); err != nil {
		t.Fatal(err)
	}
	if _, err := original.Sub(NewInt(0)); err != nil {
		t.Fatal(err)
	}
	if _, err := original.Mul(list(NewInt(9))); err != nil {
		t.Fatal(err)
	}

	if original.Inspect() != "[1, 2]" {
		t.Errorf("operators changed their operand: %s", original.Inspect())
	}
}

func TestListMutationIsShared(t *testing.T) {
	original := list(NewInt(1))
	alias := original.Copy().(*List)

	alias.Append(NewInt(2))
	alias.Extend(list(NewInt(3), NewInt(4)))
	removed, ok := alias.Remove(NewInt(0))
	if !ok || removed.Inspect() != "1" {
		t.Fatalf("expected to remove 1, got %v", removed)
	}

	if !original.Same(alias) {
		t.Errorf("copy should share storage")
	}
	if original.Inspect() != "[2, 3, 4]" {
		t.Errorf("mutation not visible through original: %s", original.Inspect())
	}
	if _, ok := original.Remove(NewInt(7)); ok {
		t.Errorf("expected out of bounds removal to fail")
	}
}

func TestDisplayForms(t *testing.T) {
	tests := []struct {
		input   Object
		inspect string
		display string
	}{
		{NewString("hi"), `"hi"`, "hi"},
		{NewString("a\nb"), "\"a\nb\"", "a\nb"},
		{list(NewString("a"), NewInt(1), list(NewFloat(2))), `["a", 1, [2.0]]`, "a, 1, 2.0"},
		{&Function{Name: "add"}, "<function add>", "<function add>"},
		{&Function{}, "<function <anonymous>>", "<function <anonymous>>"},
		{&Builtin{Name: "print"}, "<built-in function print>", "<built-in function print>"},
	}
	for _, tt := range tests {
		if got := tt.input.Inspect(); got != tt.inspect {
			t.Errorf("Inspect: expected %s, got %s", tt.inspect, got)
		}
		if got := tt.input.Display(); got != tt.display {
			t.Errorf("Display: expected %s, got %s", tt.display, got)
		}
	}
}

func TestSelfContainingList(t *testing.T) {
	l := list(NewInt(1))
	l.Append(l)

	if got := l.Inspect(); got != "[1, [...]]" {
		t.Errorf("Inspect: expected [1, [...]], got %s", got)
	}
	if got := l.Display(); got != "1, [...]" {
		t.Errorf("Display: expected 1, [...], got %s", got)
	}
}

func TestEmptyStringRepeat(t *testing.T) {
	result, err := NewString("").Mul(NewInt(math.MaxInt64))
	if err != nil {
		t.Fatal(err)
	}
	if result.Inspect() != `""` {
		t.Errorf("expected empty string, got %s", result.Inspect())
	}
}

func TestEnvironment(t *testing.T) {
	global := NewEnvironment()
	global.Set("x", NewInt(1))
	global.Set("y", NewInt(2))

	inner := NewEnclosedEnvironment(global)
	inner.Set("x", NewInt(10))

	if v, _ := inner.Get("x"); v.Inspect() != "10" {
		t.Errorf("inner x: expected 10, got %s", v.Inspect())
	}
	if v, _ := inner.Get("y"); v.Inspect() != "2" {
		t.Errorf("inner y: expected 2, got %s", v.Inspect())
	}
	if v, _ := global.Get("x"); v.Inspect() != "1" {
		t.Errorf("Set must not write through to the outer scope, got %s", v.Inspect())
	}
	if _, ok := inner.GetLocal("y"); ok {
		t.Errorf("GetLocal must not walk outer scopes")
	}
	if _, ok := inner.Get("z"); ok {
		t.Errorf("expected z to be undefined")
	}

	names := inner.Names()
	if len(names) != 2 || names[0] != "x" || names[1] != "y" {
		t.Errorf("unexpected names %v", names)
	}
}
