package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/lmorg/readline"

	"easycode/internal/history"
	"easycode/internal/runner"
)

const (
	PROMPT = "EasyCode > "
	BANNER = "Initializing EasyCode"

	// SourceName names every REPL input in diagnostics.
	SourceName = "<stdin>"
)

// lineEditor is the part of readline.Instance the REPL drives.
type lineEditor interface {
	Readline() (string, error)
	SetPrompt(string)
}

type Repl struct {
	Runner  *runner.Runner
	History *history.Store

	prompt string
	editor lineEditor
	out    io.Writer
}

// New creates a REPL reading through readline and writing to out.
func New(prompt string, out io.Writer) *Repl {
	rl := readline.NewInstance()
	r := newRepl(rl, prompt, out)
	rl.TabCompleter = r.complete
	return r
}

func newRepl(editor lineEditor, prompt string, out io.Writer) *Repl {
	if prompt == "" {
		prompt = PROMPT
	}
	r := &Repl{prompt: prompt, editor: editor, out: out}
	r.Runner = runner.New(&editorIO{editor: editor, prompt: prompt, out: out})
	return r
}

// UseHistory records every line to store and serves it for recall.
func (r *Repl) UseHistory(store *history.Store) {
	r.History = store
	if rl, ok := r.editor.(*readline.Instance); ok {
		rl.History = store
	}
}

// Start runs the loop until end of input.
func (r *Repl) Start(ctx context.Context) error {
	fmt.Fprintln(r.out, BANNER)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		r.editor.SetPrompt(r.prompt)
		line, err := r.editor.Readline()
		switch {
		case errors.Is(err, readline.ErrCtrlC):
			continue
		case errors.Is(err, readline.ErrEOF), errors.Is(err, io.EOF):
			return nil
		case err != nil:
			return err
		}

		if out, ok := r.Eval(ctx, line); ok {
			fmt.Fprintln(r.out, out)
		}
	}
}

// Eval runs one input line and returns what the REPL shows for it. ok is
// false for blank lines.
func (r *Repl) Eval(ctx context.Context, line string) (out string, ok bool) {
	if strings.TrimSpace(line) == "" {
		return "", false
	}

	val, err := r.Runner.Run(SourceName, line)
	failed := err != nil
	if failed {
		out = runner.Render(err)
	} else {
		out = runner.Summary(val)
	}

	if r.History != nil {
		if _, err := r.History.Record(ctx, history.Entry{Source: line, Outcome: out, Failed: failed}); err != nil {
			slog.Warn("history unavailable", slog.Any("error", err))
		}
	}
	return out, true
}

// complete offers keywords and bound names for the word under the cursor.
func (r *Repl) complete(line []rune, pos int, _ readline.DelayedTabContext) (string, []string, map[string]string, readline.TabDisplayType) {
	prefix := wordBefore(line, pos)
	return prefix, r.candidates(prefix), nil, readline.TabDisplayGrid
}

func (r *Repl) candidates(prefix string) []string {
	var suggestions []string
	for _, name := range names(r.Runner) {
		if strings.HasPrefix(name, prefix) && name != prefix {
			suggestions = append(suggestions, name[len(prefix):])
		}
	}
	return suggestions
}

func wordBefore(line []rune, pos int) string {
	if pos > len(line) {
		pos = len(line)
	}
	start := pos
	for start > 0 && isWordRune(line[start-1]) {
		start--
	}
	return string(line[start:pos])
}

func isWordRune(ch rune) bool {
	return ch == '_' || ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z') || ('0' <= ch && ch <= '9')
}
