// Package natlang rewrites English operator words written after a number
// into their symbols, so "1 plus 2" reads as "1 + 2".
package natlang

import (
	"log/slog"

	"github.com/coregx/coregex"
)

type rule struct {
	word string
	op   string
	re   *coregex.Regexp
}

// words are ordered longest first so that a shorter word never claims the
// prefix of a longer one.
var words = []struct{ word, op string }{
	{"greater-than-equal", ">="},
	{"less-than-equal", "<="},
	{"greater-than", ">"},
	{"not-equal", "!="},
	{"less-than", "<"},
	{"divide", "/"},
	{"module", "%"},
	{"minus", "-"},
	{"exact", "=="},
	{"equal", "="},
	{"plus", "+"},
}

type Preprocessor struct {
	rules []rule
}

func New() (*Preprocessor, error) {
	p := &Preprocessor{}
	for _, w := range words {
		// ${1} guards the number against being the tail of an identifier,
		// ${4} ends the word at a non identifier character.
		re, err := coregex.Compile(`(^|[^A-Za-z0-9_.])([0-9]+(?:\.[0-9]+)?)([ \t]*)` + w.word + `([^A-Za-z0-9_\-]|$)`)
		if err != nil {
			return nil, err
		}
		p.rules = append(p.rules, rule{word: w.word, op: w.op, re: re})
	}
	return p, nil
}

// Rewrite applies the rules until the text stops changing.
func (p *Preprocessor) Rewrite(text string) string {
	for {
		next := p.rewriteOnce(text)
		if next == text {
			return text
		}
		text = next
	}
}

func (p *Preprocessor) rewriteOnce(text string) string {
	for _, r := range p.rules {
		if r.re.FindStringIndex(text) == nil {
			continue
		}
		slog.Debug("natlang rewrite", slog.String("word", r.word), slog.String("op", r.op))
		return r.re.ReplaceAllString(text, "${1}${2}${3}"+r.op+"${4}")
	}
	return text
}
