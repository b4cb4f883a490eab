package parser

import (
	"errors"
	"strconv"

	"easycode/internal/ast"
	"easycode/internal/diag"
	"easycode/internal/token"
)

const (
	expectedStatement = "Expected 'RETURN', 'CONTINUE', 'BREAK', 'VAR', 'IF', 'FOR', 'WHILE', 'FUN', int, float, identifier, '+', '-', '(', '[' or 'NOT'"
	expectedExpr      = "Expected 'VAR', 'IF', 'FOR', 'WHILE', 'FUN', int, float, identifier, '+', '-', '(', '[' or 'NOT'"
	expectedOperand   = "Expected int, float, identifier, '+', '-', '(', '[', 'IF', 'FOR', 'WHILE', 'FUN' or 'NOT'"
	expectedAtom      = "Expected int, float, identifier, '+', '-', '(', '[', 'IF', 'FOR', 'WHILE' or 'FUN'"
	expectedOperator  = "Expected '+', '-', '*', '/', '^', '==', '!=', '<', '>', '<=', '>=', 'AND' or 'OR'"
	expectedArg       = "Expected ')', 'VAR', 'IF', 'FOR', 'WHILE', 'FUN', int, float, identifier, '+', '-', '(', '[' or 'NOT'"
	expectedElement   = "Expected ']', 'VAR', 'IF', 'FOR', 'WHILE', 'FUN', int, float, identifier, '+', '-', '(', '[' or 'NOT'"
)

var comparisonOps = map[token.TokenType]bool{
	token.ASSIGN: true, // '=' compares like '=='
	token.EQ:     true,
	token.NOT_EQ: true,
	token.LT:     true,
	token.GT:     true,
	token.LT_EQ:  true,
	token.GT_EQ:  true,
}

type Parser struct {
	tokens   []token.Token
	pos      int
	curToken token.Token
}

// New expects tokens as produced by lexer.Tokenize, terminated by EOF.
func New(tokens []token.Token) *Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != token.EOF {
		tokens = append(tokens, token.Token{Type: token.EOF})
	}
	p := &Parser{tokens: tokens}
	p.curToken = tokens[0]
	return p
}

func (p *Parser) nextToken() {
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	p.curToken = p.tokens[p.pos]
}

// checkpoint and restore let a statement be attempted and rolled back.
func (p *Parser) checkpoint() int { return p.pos }

func (p *Parser) restore(pos int) {
	p.pos = pos
	p.curToken = p.tokens[pos]
}

func (p *Parser) curTokenIs(t token.TokenType) bool {
	return p.curToken.Type == t
}

func (p *Parser) errorf(details string) error {
	return diag.New(diag.InvalidSyntax, p.curToken.Start, p.curToken.End, details)
}

// replaceIfStuck swaps err for a more general message when the failing
// parse did not consume any token after mark.
func (p *Parser) replaceIfStuck(err error, mark int, details string) error {
	if p.pos == mark {
		return p.errorf(details)
	}
	return err
}

// ParseProgram parses the whole token stream into a Block. An input holding
// only separators yields an empty Block.
func (p *Parser) ParseProgram() (*ast.Block, error) {
	start := p.checkpoint()
	for p.curTokenIs(token.NEWLINE) {
		p.nextToken()
	}
	if p.curTokenIs(token.EOF) {
		return &ast.Block{Span: ast.SpanOf(p.curToken)}, nil
	}
	p.restore(start)

	program, err := p.parseStatements()
	if err != nil {
		return nil, err
	}
	if !p.curTokenIs(token.EOF) {
		return nil, p.errorf(expectedOperator)
	}
	return program, nil
}

func (p *Parser) parseStatements() (*ast.Block, error) {
	for p.curTokenIs(token.NEWLINE) {
		p.nextToken()
	}

	first, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	block := &ast.Block{Statements: []ast.Node{first}}

	for {
		newlines := 0
		for p.curTokenIs(token.NEWLINE) {
			p.nextToken()
			newlines++
		}
		if newlines == 0 {
			break
		}

		mark := p.checkpoint()
		stmt, err := p.parseStatement()
		if err != nil {
			if p.pos == mark {
				p.restore(mark)
				break
			}
			return nil, err
		}
		block.Statements = append(block.Statements, stmt)
	}

	block.Start = first.Pos()
	block.Stop = block.Statements[len(block.Statements)-1].End()
	return block, nil
}

func (p *Parser) parseStatement() (ast.Node, error) {
	tok := p.curToken

	switch tok.Type {
	case token.RETURN:
		p.nextToken()
		ret := &ast.Return{Span: ast.SpanOf(tok), Token: tok}
		mark := p.checkpoint()
		value, err := p.parseExpr()
		if err != nil {
			if p.pos != mark {
				return nil, err
			}
			p.restore(mark)
			return ret, nil
		}
		ret.Value = value
		ret.Stop = value.End()
		return ret, nil
	case token.CONTINUE:
		p.nextToken()
		return &ast.Continue{Span: ast.SpanOf(tok), Token: tok}, nil
	case token.BREAK:
		p.nextToken()
		return &ast.Break{Span: ast.SpanOf(tok), Token: tok}, nil
	}

	mark := p.checkpoint()
	expr, err := p.parseExpr()
	if err != nil {
		return nil, p.replaceIfStuck(err, mark, expectedStatement)
	}
	return expr, nil
}

func (p *Parser) parseExpr() (ast.Node, error) {
	if p.curTokenIs(token.VAR) {
		varTok := p.curToken
		p.nextToken()
		if !p.curTokenIs(token.IDENT) {
			return nil, p.errorf("Expected identifier")
		}
		name := p.curToken
		p.nextToken()
		if !p.curTokenIs(token.ASSIGN) && !p.curTokenIs(token.EQ) {
			return nil, p.errorf("Expected '='")
		}
		p.nextToken()
		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &ast.VarAssign{
			Span:  ast.Span{Start: varTok.Start, Stop: value.End()},
			Token: varTok,
			Name:  name,
			Value: value,
		}, nil
	}

	mark := p.checkpoint()
	node, err := p.parseBinary(p.parseComparison, p.parseComparison, func(t token.TokenType) bool {
		return t == token.AND || t == token.OR
	})
	if err != nil {
		return nil, p.replaceIfStuck(err, mark, expectedExpr)
	}
	return node, nil
}

func (p *Parser) parseComparison() (ast.Node, error) {
	if p.curTokenIs(token.NOT) {
		op := p.curToken
		p.nextToken()
		operand, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOp{Span: ast.Span{Start: op.Start, Stop: operand.End()}, Operator: op, Operand: operand}, nil
	}

	mark := p.checkpoint()
	node, err := p.parseBinary(p.parseArith, p.parseArith, func(t token.TokenType) bool {
		return comparisonOps[t]
	})
	if err != nil {
		return nil, p.replaceIfStuck(err, mark, expectedOperand)
	}
	return node, nil
}

func (p *Parser) parseArith() (ast.Node, error) {
	return p.parseBinary(p.parseTerm, p.parseTerm, func(t token.TokenType) bool {
		return t == token.PLUS || t == token.MINUS
	})
}

func (p *Parser) parseTerm() (ast.Node, error) {
	return p.parseBinary(p.parseFactor, p.parseFactor, func(t token.TokenType) bool {
		return t == token.ASTERISK || t == token.SLASH
	})
}

func (p *Parser) parseFactor() (ast.Node, error) {
	if p.curTokenIs(token.PLUS) || p.curTokenIs(token.MINUS) {
		op := p.curToken
		p.nextToken()
		operand, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOp{Span: ast.Span{Start: op.Start, Stop: operand.End()}, Operator: op, Operand: operand}, nil
	}
	return p.parsePower()
}

// parsePower parses the right hand side with parseFactor, making '^'
// right associative.
func (p *Parser) parsePower() (ast.Node, error) {
	return p.parseBinary(p.parseCall, p.parseFactor, func(t token.TokenType) bool {
		return t == token.CARET
	})
}

func (p *Parser) parseBinary(
	left func() (ast.Node, error),
	right func() (ast.Node, error),
	isOp func(token.TokenType) bool,
) (ast.Node, error) {
	node, err := left()
	if err != nil {
		return nil, err
	}

	for isOp(p.curToken.Type) {
		op := p.curToken
		p.nextToken()
		rhs, err := right()
		if err != nil {
			return nil, err
		}
		node = &ast.BinaryOp{
			Span:     ast.Span{Start: node.Pos(), Stop: rhs.End()},
			Left:     node,
			Operator: op,
			Right:    rhs,
		}
	}
	return node, nil
}

func (p *Parser) parseCall() (ast.Node, error) {
	callee, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	if !p.curTokenIs(token.LPAREN) {
		return callee, nil
	}

	p.nextToken()
	args, err := p.parseList(token.RPAREN, expectedArg, "Expected ',' or ')'")
	if err != nil {
		return nil, err
	}
	return &ast.Call{Span: ast.Span{Start: callee.Pos(), Stop: p.tokens[p.pos-1].End}, Callee: callee, Args: args}, nil
}

// parseList parses comma separated expressions up to and including the
// closing token; the opening token has already been consumed.
func (p *Parser) parseList(closing token.TokenType, firstMsg, sepMsg string) ([]ast.Node, error) {
	var items []ast.Node
	if p.curTokenIs(closing) {
		p.nextToken()
		return items, nil
	}

	mark := p.checkpoint()
	first, err := p.parseExpr()
	if err != nil {
		return nil, p.replaceIfStuck(err, mark, firstMsg)
	}
	items = append(items, first)

	for p.curTokenIs(token.COMMA) {
		p.nextToken()
		item, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if !p.curTokenIs(closing) {
		return nil, p.errorf(sepMsg)
	}
	p.nextToken()
	return items, nil
}

func (p *Parser) parseAtom() (ast.Node, error) {
	tok := p.curToken

	switch tok.Type {
	case token.INT, token.FLOAT:
		p.nextToken()
		return parseNumber(tok)
	case token.STRING:
		p.nextToken()
		return &ast.StringLiteral{Span: ast.SpanOf(tok), Token: tok, Value: tok.Literal}, nil
	case token.IDENT:
		p.nextToken()
		return &ast.VarAccess{Span: ast.SpanOf(tok), Name: tok}, nil
	case token.LPAREN:
		p.nextToken()
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if !p.curTokenIs(token.RPAREN) {
			return nil, p.errorf("Expected ')'")
		}
		p.nextToken()
		return expr, nil
	case token.LBRACKET:
		p.nextToken()
		elements, err := p.parseList(token.RBRACKET, expectedElement, "Expected ',' or ']'")
		if err != nil {
			return nil, err
		}
		return &ast.ListLiteral{
			Span:     ast.Span{Start: tok.Start, Stop: p.tokens[p.pos-1].End},
			Token:    tok,
			Elements: elements,
		}, nil
	case token.IF:
		return p.parseIf()
	case token.FOR:
		return p.parseFor()
	case token.WHILE:
		return p.parseWhile()
	case token.FUNCTION:
		return p.parseFuncDef()
	}

	return nil, p.errorf(expectedAtom)
}

func parseNumber(tok token.Token) (ast.Node, error) {
	n := &ast.NumberLiteral{Span: ast.SpanOf(tok), Token: tok}
	if tok.Type == token.INT {
		v, err := strconv.ParseInt(tok.Literal, 10, 64)
		if err != nil {
			return nil, diag.New(diag.InvalidSyntax, tok.Start, tok.End, "Invalid number literal")
		}
		n.Int = v
		return n, nil
	}
	v, err := strconv.ParseFloat(tok.Literal, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return nil, diag.New(diag.InvalidSyntax, tok.Start, tok.End, "Invalid number literal")
	}
	n.Float = v
	n.IsFloat = true
	return n, nil
}
