package token

import "fmt"

// Source is the named text a position points into.
type Source struct {
	Name string
	Text string
}

// Position locates a single character of a Source. Line and Column are
// zero based; Offset is a byte offset into Source.Text.
type Position struct {
	Offset int
	Line   int
	Column int
	Src    *Source
}

// NewPosition returns the position of the first character of src.
func NewPosition(src *Source) Position {
	return Position{Src: src}
}

// Advance moves past ch, which occupies width bytes.
func (p Position) Advance(ch rune, width int) Position {
	p.Offset += width
	if ch == '\n' {
		p.Line++
		p.Column = 0
	} else {
		p.Column++
	}
	return p
}

// Next is the position one column to the right, used for single character spans.
func (p Position) Next() Position {
	p.Offset++
	p.Column++
	return p
}

func (p Position) FileName() string {
	if p.Src == nil {
		return "<unknown>"
	}
	return p.Src.Name
}

func (p Position) String() string {
	return fmt.Sprintf("%s:%d:%d", p.FileName(), p.Line+1, p.Column+1)
}
