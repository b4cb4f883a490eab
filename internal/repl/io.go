package repl

import (
	"errors"
	"fmt"
	"io"

	"github.com/lmorg/readline"
)

const clearScreen = "\033[H\033[2J"

// editorIO lets input() and input_int() read through the line editor.
type editorIO struct {
	editor lineEditor
	prompt string
	out    io.Writer
}

func (e *editorIO) ReadLine() (string, error) {
	e.editor.SetPrompt("")
	defer e.editor.SetPrompt(e.prompt)

	line, err := e.editor.Readline()
	if errors.Is(err, readline.ErrEOF) {
		return "", io.EOF
	}
	return line, err
}

func (e *editorIO) WriteLine(s string) error {
	_, err := fmt.Fprintln(e.out, s)
	return err
}

func (e *editorIO) Clear() error {
	_, err := io.WriteString(e.out, clearScreen)
	return err
}
