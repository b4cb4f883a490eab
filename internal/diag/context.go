package diag

import "easycode/internal/token"

// Context is one frame of the call chain used for tracebacks. EntryPos is
// where the frame was entered from, inside the Parent frame.
type Context struct {
	Name     string
	Parent   *Context
	EntryPos token.Position
}

func NewContext(name string, parent *Context, entry token.Position) *Context {
	return &Context{Name: name, Parent: parent, EntryPos: entry}
}
