// Package runner turns source text into a value: preprocess, lex, parse
// and evaluate against one long lived global environment.
package runner

import (
	"fmt"
	"io"
	"log/slog"

	"easycode/internal/diag"
	"easycode/internal/evaluator"
	"easycode/internal/lexer"
	"easycode/internal/natlang"
	"easycode/internal/object"
	"easycode/internal/parser"
	"easycode/internal/token"
)

const ProgramName = "<program>"

type Runner struct {
	Evaluator *evaluator.Evaluator

	// Preprocessor rewrites word operators before lexing; nil disables it.
	Preprocessor *natlang.Preprocessor

	// DebugAST receives the JSON rendering of every parsed program.
	DebugAST io.Writer
}

func New(host evaluator.IO) *Runner {
	return &Runner{Evaluator: evaluator.New(host)}
}

// Run evaluates src, named name in diagnostics. Errors are *diag.Error.
func (r *Runner) Run(name, src string) (object.Object, error) {
	if r.Preprocessor != nil {
		src = r.Preprocessor.Rewrite(src)
	}
	source := &token.Source{Name: name, Text: src}

	tokens, err := lexer.Tokenize(source)
	if err != nil {
		slog.Debug("lexing failed", slog.String("source", name), slog.Any("error", err))
		return nil, err
	}

	program, err := parser.New(tokens).ParseProgram()
	if err != nil {
		slog.Debug("parsing failed", slog.String("source", name), slog.Any("error", err))
		return nil, err
	}

	if r.DebugAST != nil {
		rendered, err := parser.RenderASTAsJSON(program)
		if err != nil {
			return nil, err
		}
		fmt.Fprint(r.DebugAST, rendered)
	}

	slog.Info("evaluating", slog.String("source", name), slog.Int("statements", len(program.Statements)))
	return r.Evaluator.Run(program, diag.NewContext(ProgramName, nil, token.NewPosition(source)))
}

// Render formats an error from Run the way it is shown to users.
func Render(err error) string {
	if derr, ok := err.(*diag.Error); ok {
		return derr.Render()
	}
	return err.Error()
}

// Summary is the REPL form of a program value: the single statement's
// value alone, otherwise the whole list.
func Summary(val object.Object) string {
	if list, ok := val.(*object.List); ok && list.Len() == 1 {
		return list.Get(0).Inspect()
	}
	return val.Inspect()
}
