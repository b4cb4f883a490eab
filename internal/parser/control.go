package parser

import (
	"easycode/internal/ast"
	"easycode/internal/token"
)

// parseBody parses what follows THEN: either one statement, or a newline,
// a statement block and END. The bool reports the block form.
func (p *Parser) parseBody() (ast.Node, bool, error) {
	if !p.curTokenIs(token.NEWLINE) {
		body, err := p.parseStatement()
		return body, false, err
	}

	p.nextToken()
	body, err := p.parseStatements()
	if err != nil {
		return nil, true, err
	}
	if !p.curTokenIs(token.END) {
		return nil, true, p.errorf("Expected 'END'")
	}
	p.nextToken()
	return body, true, nil
}

func (p *Parser) expectThen() error {
	if !p.curTokenIs(token.THEN) {
		return p.errorf("Expected 'THEN'")
	}
	p.nextToken()
	return nil
}

func (p *Parser) parseIf() (ast.Node, error) {
	node := &ast.If{Token: p.curToken}

	// curToken is IF or ELIF at the top of each pass
	for {
		p.nextToken()
		condition, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expectThen(); err != nil {
			return nil, err
		}

		if p.curTokenIs(token.NEWLINE) {
			p.nextToken()
			body, err := p.parseStatements()
			if err != nil {
				return nil, err
			}
			node.Cases = append(node.Cases, ast.Case{Condition: condition, Body: body, ReturnsNull: true})
			if p.curTokenIs(token.END) {
				p.nextToken()
				return p.finishIf(node), nil
			}
			if !p.curTokenIs(token.ELIF) && !p.curTokenIs(token.ELSE) {
				return nil, p.errorf("Expected 'END'")
			}
		} else {
			body, err := p.parseStatement()
			if err != nil {
				return nil, err
			}
			node.Cases = append(node.Cases, ast.Case{Condition: condition, Body: body})
		}

		if !p.curTokenIs(token.ELIF) {
			break
		}
	}

	if p.curTokenIs(token.ELSE) {
		p.nextToken()
		body, block, err := p.parseBody()
		if err != nil {
			return nil, err
		}
		node.Else = &ast.ElseCase{Body: body, ReturnsNull: block}
	}
	return p.finishIf(node), nil
}

func (p *Parser) finishIf(node *ast.If) *ast.If {
	node.Start = node.Token.Start
	node.Stop = p.tokens[p.pos-1].End
	return node
}

func (p *Parser) parseFor() (ast.Node, error) {
	node := &ast.For{Token: p.curToken}
	p.nextToken()

	if !p.curTokenIs(token.IDENT) {
		return nil, p.errorf("Expected identifier")
	}
	node.Var = p.curToken
	p.nextToken()

	if !p.curTokenIs(token.ASSIGN) && !p.curTokenIs(token.EQ) {
		return nil, p.errorf("Expected '='")
	}
	p.nextToken()

	from, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	node.From = from

	if !p.curTokenIs(token.TO) {
		return nil, p.errorf("Expected 'TO'")
	}
	p.nextToken()

	to, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	node.To = to

	if p.curTokenIs(token.STEP) {
		p.nextToken()
		step, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		node.Step = step
	}

	if err := p.expectThen(); err != nil {
		return nil, err
	}
	body, block, err := p.parseBody()
	if err != nil {
		return nil, err
	}
	node.Body = body
	node.ReturnsNull = block
	node.Span = ast.Span{Start: node.Token.Start, Stop: p.tokens[p.pos-1].End}
	return node, nil
}

func (p *Parser) parseWhile() (ast.Node, error) {
	node := &ast.While{Token: p.curToken}
	p.nextToken()

	condition, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	node.Condition = condition

	if err := p.expectThen(); err != nil {
		return nil, err
	}
	body, block, err := p.parseBody()
	if err != nil {
		return nil, err
	}
	node.Body = body
	node.ReturnsNull = block
	node.Span = ast.Span{Start: node.Token.Start, Stop: p.tokens[p.pos-1].End}
	return node, nil
}

func (p *Parser) parseFuncDef() (ast.Node, error) {
	node := &ast.FuncDef{Token: p.curToken}
	p.nextToken()

	if p.curTokenIs(token.IDENT) {
		name := p.curToken
		node.Name = &name
		p.nextToken()
		if !p.curTokenIs(token.LPAREN) {
			return nil, p.errorf("Expected '('")
		}
	} else if !p.curTokenIs(token.LPAREN) {
		return nil, p.errorf("Expected identifier or '('")
	}
	p.nextToken()

	if p.curTokenIs(token.IDENT) {
		node.Params = append(node.Params, p.curToken)
		p.nextToken()
		for p.curTokenIs(token.COMMA) {
			p.nextToken()
			if !p.curTokenIs(token.IDENT) {
				return nil, p.errorf("Expected identifier")
			}
			node.Params = append(node.Params, p.curToken)
			p.nextToken()
		}
		if !p.curTokenIs(token.RPAREN) {
			return nil, p.errorf("Expected ',' or ')'")
		}
	} else if !p.curTokenIs(token.RPAREN) {
		return nil, p.errorf("Expected identifier or ')'")
	}
	p.nextToken()

	switch {
	case p.curTokenIs(token.ARROW):
		p.nextToken()
		body, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		node.Body = body
		node.AutoReturn = true
	case p.curTokenIs(token.NEWLINE):
		p.nextToken()
		body, err := p.parseStatements()
		if err != nil {
			return nil, err
		}
		if !p.curTokenIs(token.END) {
			return nil, p.errorf("Expected 'END'")
		}
		p.nextToken()
		node.Body = body
	default:
		return nil, p.errorf("Expected '->' or NEWLINE")
	}

	node.Span = ast.Span{Start: node.Token.Start, Stop: p.tokens[p.pos-1].End}
	return node, nil
}
