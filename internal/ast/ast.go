package ast

import (
	"bytes"
	"strconv"
	"strings"

	"easycode/internal/token"
)

// The base Node interface. The set of nodes is closed: only the types in
// this package implement it.
type Node interface {
	TokenLiteral() string
	String() string
	Pos() token.Position
	End() token.Position
	node()
}

// Span is the source range a node was parsed from.
type Span struct {
	Start token.Position
	Stop  token.Position
}

func (s Span) Pos() token.Position { return s.Start }
func (s Span) End() token.Position { return s.Stop }

func SpanOf(tok token.Token) Span { return Span{Start: tok.Start, Stop: tok.End} }

type NumberLiteral struct {
	Span
	Token   token.Token
	Int     int64
	Float   float64
	IsFloat bool
}

func (n *NumberLiteral) node()                {}
func (n *NumberLiteral) TokenLiteral() string { return n.Token.Literal }
func (n *NumberLiteral) String() string {
	if n.IsFloat {
		return strconv.FormatFloat(n.Float, 'g', -1, 64)
	}
	return strconv.FormatInt(n.Int, 10)
}

type StringLiteral struct {
	Span
	Token token.Token
	Value string
}

func (s *StringLiteral) node()                {}
func (s *StringLiteral) TokenLiteral() string { return s.Token.Literal }
func (s *StringLiteral) String() string       { return strconv.Quote(s.Value) }

type ListLiteral struct {
	Span
	Token    token.Token // the '[' token
	Elements []Node
}

func (l *ListLiteral) node()                {}
func (l *ListLiteral) TokenLiteral() string { return l.Token.Literal }
func (l *ListLiteral) String() string {
	return "[" + joinNodes(l.Elements, ", ") + "]"
}

type VarAccess struct {
	Span
	Name token.Token
}

func (v *VarAccess) node()                {}
func (v *VarAccess) TokenLiteral() string { return v.Name.Literal }
func (v *VarAccess) String() string       { return v.Name.Literal }

type VarAssign struct {
	Span
	Token token.Token // the VAR token
	Name  token.Token
	Value Node
}

func (v *VarAssign) node()                {}
func (v *VarAssign) TokenLiteral() string { return v.Token.Literal }
func (v *VarAssign) String() string {
	return "VAR " + v.Name.Literal + " = " + v.Value.String()
}

type BinaryOp struct {
	Span
	Left     Node
	Operator token.Token
	Right    Node
}

func (b *BinaryOp) node()                {}
func (b *BinaryOp) TokenLiteral() string { return b.Operator.Literal }
func (b *BinaryOp) String() string {
	return "(" + b.Left.String() + " " + b.Operator.Literal + " " + b.Right.String() + ")"
}

type UnaryOp struct {
	Span
	Operator token.Token
	Operand  Node
}

func (u *UnaryOp) node()                {}
func (u *UnaryOp) TokenLiteral() string { return u.Operator.Literal }
func (u *UnaryOp) String() string {
	if u.Operator.Type == token.NOT {
		return "(NOT " + u.Operand.String() + ")"
	}
	return "(" + u.Operator.Literal + u.Operand.String() + ")"
}

// Case is one IF/ELIF branch. ReturnsNull is set when the body is an
// END terminated block.
type Case struct {
	Condition   Node
	Body        Node
	ReturnsNull bool
}

type ElseCase struct {
	Body        Node
	ReturnsNull bool
}

type If struct {
	Span
	Token token.Token // the IF token
	Cases []Case
	Else  *ElseCase
}

func (i *If) node()                {}
func (i *If) TokenLiteral() string { return i.Token.Literal }
func (i *If) String() string {
	var out bytes.Buffer
	for n, c := range i.Cases {
		if n == 0 {
			out.WriteString("IF ")
		} else {
			out.WriteString(" ELIF ")
		}
		out.WriteString(c.Condition.String())
		out.WriteString(" THEN")
		out.WriteString(bodyString(c.Body, c.ReturnsNull, false))
	}
	if i.Else != nil {
		out.WriteString(" ELSE")
		out.WriteString(bodyString(i.Else.Body, i.Else.ReturnsNull, false))
	}
	if i.blockForm() {
		out.WriteString("\nEND")
	}
	return out.String()
}

func (i *If) blockForm() bool {
	if i.Else != nil {
		return i.Else.ReturnsNull
	}
	return i.Cases[len(i.Cases)-1].ReturnsNull
}

type For struct {
	Span
	Token       token.Token // the FOR token
	Var         token.Token
	From        Node
	To          Node
	Step        Node // nil means 1
	Body        Node
	ReturnsNull bool
}

func (f *For) node()                {}
func (f *For) TokenLiteral() string { return f.Token.Literal }
func (f *For) String() string {
	var out bytes.Buffer
	out.WriteString("FOR " + f.Var.Literal + " = " + f.From.String() + " TO " + f.To.String())
	if f.Step != nil {
		out.WriteString(" STEP " + f.Step.String())
	}
	out.WriteString(" THEN")
	out.WriteString(bodyString(f.Body, f.ReturnsNull, true))
	return out.String()
}

type While struct {
	Span
	Token       token.Token // the WHILE token
	Condition   Node
	Body        Node
	ReturnsNull bool
}

func (w *While) node()                {}
func (w *While) TokenLiteral() string { return w.Token.Literal }
func (w *While) String() string {
	return "WHILE " + w.Condition.String() + " THEN" + bodyString(w.Body, w.ReturnsNull, true)
}

type FuncDef struct {
	Span
	Token      token.Token  // the FUN token
	Name       *token.Token // nil for anonymous functions
	Params     []token.Token
	Body       Node
	AutoReturn bool
}

func (f *FuncDef) node()                {}
func (f *FuncDef) TokenLiteral() string { return f.Token.Literal }
func (f *FuncDef) String() string {
	var out bytes.Buffer
	out.WriteString("FUN")
	if f.Name != nil {
		out.WriteString(" " + f.Name.Literal)
	}
	params := make([]string, 0, len(f.Params))
	for _, p := range f.Params {
		params = append(params, p.Literal)
	}
	out.WriteString("(" + strings.Join(params, ", ") + ")")
	if f.AutoReturn {
		out.WriteString(" -> " + f.Body.String())
	} else {
		out.WriteString("\n" + f.Body.String() + "\nEND")
	}
	return out.String()
}

type Call struct {
	Span
	Callee Node
	Args   []Node
}

func (c *Call) node()                {}
func (c *Call) TokenLiteral() string { return c.Callee.TokenLiteral() }
func (c *Call) String() string {
	return c.Callee.String() + "(" + joinNodes(c.Args, ", ") + ")"
}

type Return struct {
	Span
	Token token.Token // the RETURN token
	Value Node        // nil for a bare RETURN
}

func (r *Return) node()                {}
func (r *Return) TokenLiteral() string { return r.Token.Literal }
func (r *Return) String() string {
	if r.Value == nil {
		return "RETURN"
	}
	return "RETURN " + r.Value.String()
}

type Continue struct {
	Span
	Token token.Token
}

func (c *Continue) node()                {}
func (c *Continue) TokenLiteral() string { return c.Token.Literal }
func (c *Continue) String() string       { return "CONTINUE" }

type Break struct {
	Span
	Token token.Token
}

func (b *Break) node()                {}
func (b *Break) TokenLiteral() string { return b.Token.Literal }
func (b *Break) String() string       { return "BREAK" }

// Block is a statement sequence: the whole program, or the body of an END
// terminated construct.
type Block struct {
	Span
	Statements []Node
}

func (b *Block) node() {}
func (b *Block) TokenLiteral() string {
	if len(b.Statements) > 0 {
		return b.Statements[0].TokenLiteral()
	}
	return ""
}
func (b *Block) String() string { return joinNodes(b.Statements, "\n") }

func joinNodes(nodes []Node, sep string) string {
	parts := make([]string, 0, len(nodes))
	for _, n := range nodes {
		parts = append(parts, n.String())
	}
	return strings.Join(parts, sep)
}

func bodyString(body Node, block, end bool) string {
	if !block {
		return " " + body.String()
	}
	s := "\n" + body.String()
	if end {
		s += "\nEND"
	}
	return s
}
