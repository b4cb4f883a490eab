package object

import "strings"

// maxStringLen bounds the result of string repetition.
const maxStringLen = 1 << 26

type String struct {
	Base
	Value string
}

func NewString(s string) *String { return &String{Value: s} }

func (s *String) Type() ObjectType { return STRING_OBJ }
func (s *String) Inspect() string  { return `"` + s.Value + `"` }
func (s *String) Display() string  { return s.Value }
func (s *String) Truthy() bool     { return len(s.Value) > 0 }

func (s *String) Copy() Object {
	c := *s
	return &c
}

func (s *String) Add(other Object) (Object, error) {
	o, ok := other.(*String)
	if !ok {
		return nil, s.IllegalOperation(other)
	}
	r := NewString(s.Value + o.Value)
	r.Context = s.Context
	return r, nil
}

// Mul repeats the string; counts below one give the empty string.
func (s *String) Mul(other Object) (Object, error) {
	o, ok := other.(*Number)
	if !ok || o.IsFloat {
		return nil, s.IllegalOperation(other)
	}
	if len(s.Value) > 0 && o.Int > int64(maxStringLen/len(s.Value)) {
		return nil, runtimeError(other, s.Context, "String repetition result is too long")
	}
	r := NewString("")
	if o.Int > 0 {
		r.Value = strings.Repeat(s.Value, int(o.Int))
	}
	r.Context = s.Context
	return r, nil
}
