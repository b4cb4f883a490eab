package lexer

import (
	"strings"

	"easycode/internal/diag"
	"easycode/internal/token"
)

var escapes = map[rune]rune{
	'n': '\n',
	't': '\t',
}

// readString reads a double quoted literal starting at the opening quote.
// Any escaped character other than n and t stands for itself.
func (l *Lexer) readString() (token.Token, error) {
	var result strings.Builder
	start := l.pos
	l.readChar() // consume the opening `"`

	for {
		if l.ch == 0 && l.position >= len(l.input) {
			return token.Token{}, diag.New(diag.ExpectedChar, l.pos, l.pos.Next(), "'\"'")
		}

		if l.ch == '"' {
			l.readChar() // consume the closing `"`
			break
		}

		if l.ch == '\\' {
			l.readChar()
			if l.ch == 0 && l.position >= len(l.input) {
				continue
			}
			if r, ok := escapes[l.ch]; ok {
				result.WriteRune(r)
			} else {
				result.WriteRune(l.ch)
			}
		} else {
			result.WriteRune(l.ch)
		}

		l.readChar()
	}

	return token.Token{Type: token.STRING, Literal: result.String(), Start: start, End: l.pos}, nil
}
