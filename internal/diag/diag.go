package diag

import (
	"bytes"
	"fmt"

	"easycode/internal/token"
	"easycode/internal/util"
)

type Kind string

const (
	IllegalChar   Kind = "Illegal Character"
	ExpectedChar  Kind = "Expected Character"
	InvalidSyntax Kind = "Invalid Syntax"
	Runtime       Kind = "Runtime Error"
)

// Error is a lexical, syntax or runtime failure of a program. Runtime errors
// also carry the call Context active when they were raised.
type Error struct {
	Kind    Kind
	Details string
	Start   token.Position
	End     token.Position
	Context *Context
}

func New(kind Kind, start, end token.Position, details string) *Error {
	return &Error{Kind: kind, Details: details, Start: start, End: end}
}

func NewRuntime(start, end token.Position, details string, ctx *Context) *Error {
	return &Error{Kind: Runtime, Details: details, Start: start, End: end, Context: ctx}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Details)
}

// Render returns the full diagnostic: the traceback for runtime errors or
// the file and line otherwise, followed by the caret excerpt.
func (e *Error) Render() string {
	var out bytes.Buffer
	if e.Kind == Runtime {
		out.WriteString(e.traceback())
		out.WriteString(e.Error())
		out.WriteString("\n\n")
	} else {
		out.WriteString(e.Error())
		out.WriteString("\n")
		fmt.Fprintf(&out, "File %s, line %d\n\n", e.Start.FileName(), e.Start.Line+1)
	}
	if e.Start.Src != nil {
		out.WriteString(util.Excerpt(e.Start.Src.Text, e.Start.Line, e.Start.Column, e.End.Line, e.End.Column))
	}
	return out.String()
}

func (e *Error) traceback() string {
	frames := make([]string, 0, 4)
	pos := e.Start
	for ctx := e.Context; ctx != nil; ctx = ctx.Parent {
		frames = append(frames, fmt.Sprintf("  File %s, line %d, in %s\n", pos.FileName(), pos.Line+1, ctx.Name))
		pos = ctx.EntryPos
	}

	var out bytes.Buffer
	out.WriteString("Traceback (most recent call last):\n")
	for i := len(frames) - 1; i >= 0; i-- {
		out.WriteString(frames[i])
	}
	return out.String()
}
