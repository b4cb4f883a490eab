package evaluator

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// IO is the host side of the built-ins: where input comes from and where
// print and clear go.
type IO interface {
	// ReadLine returns one line without its terminator, or io.EOF.
	ReadLine() (string, error)
	WriteLine(s string) error
	Clear() error
}

const clearScreen = "\033[H\033[2J"

type StdIO struct {
	in  *bufio.Reader
	out io.Writer
}

func NewStdIO(in io.Reader, out io.Writer) *StdIO {
	return &StdIO{in: bufio.NewReader(in), out: out}
}

func DefaultIO() *StdIO {
	return NewStdIO(os.Stdin, os.Stdout)
}

func (s *StdIO) ReadLine() (string, error) {
	line, err := s.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (s *StdIO) WriteLine(line string) error {
	_, err := fmt.Fprintln(s.out, line)
	return err
}

func (s *StdIO) Clear() error {
	_, err := io.WriteString(s.out, clearScreen)
	return err
}
