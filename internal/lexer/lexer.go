package lexer

import (
	"fmt"
	"unicode/utf8"

	"easycode/internal/diag"
	"easycode/internal/token"
)

type Lexer struct {
	input        string
	position     int            // current byte position in input (points to start of current rune)
	readPosition int            // next byte position in input (start of next rune)
	ch           rune           // current rune under examination; 0 means EOF
	pos          token.Position // line/column of ch
}

func New(src *token.Source) *Lexer {
	l := &Lexer{input: src.Text, pos: token.NewPosition(src)}
	l.readChar()
	return l
}

// Tokenize lexes the whole input. The returned slice always ends with an
// EOF token unless an error is returned.
func Tokenize(src *token.Source) ([]token.Token, error) {
	l := New(src)
	var tokens []token.Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			return tokens, nil
		}
	}
}

func (l *Lexer) handleCompoundToken(
	t token.TokenType,
	ch1 rune,
	t1 token.TokenType,
) token.Token {
	start := l.pos
	first := l.ch
	l.readChar()
	if l.ch == ch1 {
		l.readChar()
		return token.Token{Type: t1, Literal: string(first) + string(ch1), Start: start, End: l.pos}
	}
	return token.Token{Type: t, Literal: string(first), Start: start, End: l.pos}
}

// single consumes the current rune as a token of type t.
func (l *Lexer) single(t token.TokenType) token.Token {
	start := l.pos
	ch := l.ch
	l.readChar()
	return token.Token{Type: t, Literal: string(ch), Start: start, End: l.pos}
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' {
		l.readChar()
	}
}

// readChar advances by one UTF-8 rune, updating byte positions
func (l *Lexer) readChar() {
	if l.readPosition > l.position {
		l.pos = l.pos.Advance(l.ch, l.readPosition-l.position)
	}
	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = len(l.input)
		l.readPosition = len(l.input)
		return
	}
	r, size := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.position = l.readPosition
	l.readPosition += size
}

// peekChar returns the next rune without advancing; returns 0 at EOF
func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func (l *Lexer) readIdentifier() string {
	start := l.position
	for isLetter(l.ch) || isDigit(l.ch) || l.ch == '_' {
		l.readChar()
	}
	return l.input[start:l.position]
}

// readNumber consumes digits with at most one '.'; a second '.' ends the
// literal and is left for the next token.
func (l *Lexer) readNumber() (string, bool) {
	start := l.position
	dots := 0
	for isDigit(l.ch) || l.ch == '.' {
		if l.ch == '.' {
			if dots == 1 {
				break
			}
			dots++
		}
		l.readChar()
	}
	return l.input[start:l.position], dots == 1
}

func (l *Lexer) illegal() error {
	start := l.pos
	ch := l.ch
	l.readChar()
	return diag.New(diag.IllegalChar, start, l.pos, fmt.Sprintf("'%c'", ch))
}

func isLetter(ch rune) bool {
	return ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z')
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}
