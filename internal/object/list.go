package object

import (
	"strings"

	"src.elv.sh/pkg/persistent/vector"
)

// listCell is the element storage shared by every copy of a list value.
// append, pop and extend replace vec in place; the list operators build a
// new cell and leave their operands untouched.
type listCell struct {
	vec vector.Vector
}

type List struct {
	Base
	cell *listCell
}

func NewList(elements []Object) *List {
	vec := vector.Empty
	for _, el := range elements {
		vec = vec.Conj(el)
	}
	return &List{cell: &listCell{vec: vec}}
}

func newListFrom(vec vector.Vector) *List {
	return &List{cell: &listCell{vec: vec}}
}

func (l *List) Type() ObjectType { return LIST_OBJ }
func (l *List) Truthy() bool     { return l.Len() > 0 }
func (l *List) Len() int         { return l.cell.vec.Len() }

func (l *List) Copy() Object {
	c := *l
	return &c
}

// Same reports whether both values share their elements.
func (l *List) Same(other *List) bool { return l.cell == other.cell }

func (l *List) Elements() []Object {
	elements := make([]Object, 0, l.Len())
	for it := l.cell.vec.Iterator(); it.HasElem(); it.Next() {
		elements = append(elements, it.Elem().(Object))
	}
	return elements
}

func (l *List) Inspect() string { return l.render(map[*listCell]bool{}, false) }
func (l *List) Display() string { return l.render(map[*listCell]bool{}, true) }

// render formats the elements; a list reached again through itself prints
// as [...].
func (l *List) render(seen map[*listCell]bool, display bool) string {
	if seen[l.cell] {
		return "[...]"
	}
	seen[l.cell] = true
	defer delete(seen, l.cell)

	parts := make([]string, 0, l.Len())
	for _, el := range l.Elements() {
		inner, ok := el.(*List)
		switch {
		case ok:
			parts = append(parts, inner.render(seen, display))
		case display:
			parts = append(parts, el.Display())
		default:
			parts = append(parts, el.Inspect())
		}
	}
	if display {
		return strings.Join(parts, ", ")
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// index resolves an index value; negative indices count from the end.
func (l *List) index(idx Object) (int, bool) {
	n, ok := idx.(*Number)
	if !ok || n.IsFloat {
		return 0, false
	}
	i := n.Int
	if i < 0 {
		i += int64(l.Len())
	}
	if i < 0 || i >= int64(l.Len()) {
		return 0, false
	}
	return int(i), true
}

func (l *List) Get(i int) Object {
	el, _ := l.cell.vec.Index(i)
	return el.(Object)
}

// Append adds el to the shared storage.
func (l *List) Append(el Object) {
	l.cell.vec = l.cell.vec.Conj(el)
}

// Extend appends every element of other to the shared storage.
func (l *List) Extend(other *List) {
	for _, el := range other.Elements() {
		l.cell.vec = l.cell.vec.Conj(el)
	}
}

// Remove deletes the element at idx from the shared storage.
func (l *List) Remove(idx Object) (Object, bool) {
	i, ok := l.index(idx)
	if !ok {
		return nil, false
	}
	removed := l.Get(i)
	l.cell.vec = without(l.cell.vec, i)
	return removed, true
}

func without(vec vector.Vector, i int) vector.Vector {
	rest := vec.SubVector(i+1, vec.Len())
	vec = vec.SubVector(0, i)
	for it := rest.Iterator(); it.HasElem(); it.Next() {
		vec = vec.Conj(it.Elem())
	}
	return vec
}

func (l *List) result(r *List) (Object, error) {
	r.Context = l.Context
	return r, nil
}

// Add returns a new list with other appended.
func (l *List) Add(other Object) (Object, error) {
	return l.result(newListFrom(l.cell.vec.Conj(other)))
}

// Sub returns a new list without the element at index other.
func (l *List) Sub(other Object) (Object, error) {
	i, ok := l.index(other)
	if !ok {
		return nil, runtimeError(other, l.Context, "Element at this index could not be removed from list because index is out of bounds")
	}
	return l.result(newListFrom(without(l.cell.vec, i)))
}

// Mul concatenates two lists into a new one.
func (l *List) Mul(other Object) (Object, error) {
	o, ok := other.(*List)
	if !ok {
		return nil, l.IllegalOperation(other)
	}
	vec := l.cell.vec
	for it := o.cell.vec.Iterator(); it.HasElem(); it.Next() {
		vec = vec.Conj(it.Elem())
	}
	return l.result(newListFrom(vec))
}

// Div retrieves the element at index other.
func (l *List) Div(other Object) (Object, error) {
	i, ok := l.index(other)
	if !ok {
		return nil, runtimeError(other, l.Context, "Element at this index could not be retrieved from list because index is out of bounds")
	}
	return l.Get(i).Copy(), nil
}
