package token

type TokenType string

const (
	ILLEGAL = "ILLEGAL"
	EOF     = "EOF"
	NEWLINE = "NEWLINE" // '\n' or ';'

	// Identifiers + literals
	IDENT  = "IDENT"  // add, foobar, x, y, ...
	INT    = "INT"    // 1343456
	FLOAT  = "FLOAT"  // 3.14
	STRING = "STRING" // "foobar"

	// Operators
	PLUS     = "+"
	MINUS    = "-"
	ASTERISK = "*"
	SLASH    = "/"
	CARET    = "^"
	ARROW    = "->"

	ASSIGN = "="
	EQ     = "=="
	NOT_EQ = "!="
	LT     = "<"
	LT_EQ  = "<="
	GT     = ">"
	GT_EQ  = ">="

	// Delimiters
	COMMA    = ","
	LPAREN   = "("
	RPAREN   = ")"
	LBRACKET = "["
	RBRACKET = "]"

	// Keywords
	VAR      = "VAR"
	AND      = "AND"
	OR       = "OR"
	NOT      = "NOT"
	IF       = "IF"
	THEN     = "THEN"
	ELIF     = "ELIF"
	ELSE     = "ELSE"
	FOR      = "FOR"
	TO       = "TO"
	STEP     = "STEP"
	WHILE    = "WHILE"
	FUNCTION = "FUN"
	END      = "END"
	RETURN   = "RETURN"
	CONTINUE = "CONTINUE"
	BREAK    = "BREAK"
)

type Token struct {
	Type    TokenType
	Literal string
	Start   Position
	End     Position // one past the last character
}

// Is reports whether the token has the given type.
func (t Token) Is(tt TokenType) bool {
	return t.Type == tt
}

var keywords = map[string]TokenType{
	// declarations
	"VAR": VAR,
	"FUN": FUNCTION,

	// logic
	"AND": AND,
	"OR":  OR,
	"NOT": NOT,

	// flow control
	"IF":       IF,
	"THEN":     THEN,
	"ELIF":     ELIF,
	"ELSE":     ELSE,
	"FOR":      FOR,
	"TO":       TO,
	"STEP":     STEP,
	"WHILE":    WHILE,
	"END":      END,
	"RETURN":   RETURN,
	"CONTINUE": CONTINUE,
	"BREAK":    BREAK,
}

func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// IsKeyword reports whether tt is one of the reserved words.
func IsKeyword(tt TokenType) bool {
	_, ok := keywords[string(tt)]
	return ok
}

// Keywords returns the reserved words, used by the REPL for completion.
func Keywords() []string {
	words := make([]string, 0, len(keywords))
	for k := range keywords {
		words = append(words, k)
	}
	return words
}
