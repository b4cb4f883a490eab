package lexer

import (
	"strconv"

	"easycode/internal/diag"
	"easycode/internal/token"
)

func (l *Lexer) NextToken() (token.Token, error) {
	l.skipWhitespace()

	switch l.ch {
	case ';', '\n':
		return l.single(token.NEWLINE), nil
	case '+':
		return l.single(token.PLUS), nil
	case '-':
		return l.handleCompoundToken(token.MINUS, '>', token.ARROW), nil
	case '*':
		return l.single(token.ASTERISK), nil
	case '/':
		return l.single(token.SLASH), nil
	case '^':
		return l.single(token.CARET), nil
	case '(':
		return l.single(token.LPAREN), nil
	case ')':
		return l.single(token.RPAREN), nil
	case '[':
		return l.single(token.LBRACKET), nil
	case ']':
		return l.single(token.RBRACKET), nil
	case ',':
		return l.single(token.COMMA), nil
	case '=':
		return l.handleCompoundToken(token.ASSIGN, '=', token.EQ), nil
	case '<':
		return l.handleCompoundToken(token.LT, '=', token.LT_EQ), nil
	case '>':
		return l.handleCompoundToken(token.GT, '=', token.GT_EQ), nil
	case '!':
		start := l.pos
		l.readChar()
		if l.ch != '=' {
			return token.Token{}, diag.New(diag.ExpectedChar, start, l.pos, "'=' (after '!')")
		}
		l.readChar()
		return token.Token{Type: token.NOT_EQ, Literal: "!=", Start: start, End: l.pos}, nil
	case '"':
		return l.readString()
	case 0:
		if l.position >= len(l.input) {
			return token.Token{Type: token.EOF, Start: l.pos, End: l.pos.Next()}, nil
		}
	}

	switch {
	case isDigit(l.ch):
		start := l.pos
		literal, isFloat := l.readNumber()
		tok := token.Token{Type: token.INT, Literal: literal, Start: start, End: l.pos}
		if isFloat {
			tok.Type = token.FLOAT
		} else if _, err := strconv.ParseInt(literal, 10, 64); err != nil {
			// too large for an int
			tok.Type = token.FLOAT
		}
		return tok, nil
	case isLetter(l.ch):
		start := l.pos
		literal := l.readIdentifier()
		return token.Token{Type: token.LookupIdent(literal), Literal: literal, Start: start, End: l.pos}, nil
	}

	return token.Token{}, l.illegal()
}
