package mython

import "fmt"

// TokenType represents the kind of token.
type TokenType int

const (
	// Special
	EOF TokenType = iota

	// Literals & identifiers
	NUMBER // decimal integer literal
	ID
	CHAR // single punctuation character
	STRING

	// Structure (synthesized; no literal character in the source)
	NEWLINE
	INDENT
	DEDENT

	// Keywords
	CLASS
	RETURN
	IF
	ELSE
	DEF
	PRINT
	AND
	OR
	NOT
	NONE
	TRUE
	FALSE

	// Two-character operators
	EQ         // "=="
	NEQ        // "!="
	LESS_EQ    // "<="
	GREATER_EQ // ">="
)

var tokenNames = map[TokenType]string{
	EOF:        "Eof",
	NUMBER:     "Number",
	ID:         "Id",
	CHAR:       "Char",
	STRING:     "String",
	NEWLINE:    "Newline",
	INDENT:     "Indent",
	DEDENT:     "Dedent",
	CLASS:      "Class",
	RETURN:     "Return",
	IF:         "If",
	ELSE:       "Else",
	DEF:        "Def",
	PRINT:      "Print",
	AND:        "And",
	OR:         "Or",
	NOT:        "Not",
	NONE:       "None",
	TRUE:       "True",
	FALSE:      "False",
	EQ:         "Eq",
	NEQ:        "NotEq",
	LESS_EQ:    "LessOrEq",
	GREATER_EQ: "GreaterOrEq",
}

func (tt TokenType) String() string {
	if name, ok := tokenNames[tt]; ok {
		return name
	}
	return fmt.Sprintf("TokenType(%d)", int(tt))
}

// keywords map
var keywords = map[string]TokenType{
	"class":  CLASS,
	"return": RETURN,
	"if":     IF,
	"else":   ELSE,
	"def":    DEF,
	"print":  PRINT,
	"and":    AND,
	"or":     OR,
	"not":    NOT,
	"None":   NONE,
	"True":   TRUE,
	"False":  FALSE,
}

// Token is a lexical token with an optional payload and source position.
// Line/Col are diagnostic only: Equal and String ignore them.
type Token struct {
	Type TokenType
	Num  int    // NUMBER payload
	Text string // ID and STRING payload
	Ch   byte   // CHAR payload
	Line int    // 1-based
	Col  int    // 0-based column within line
}

// Payload-bearing token constructors.

func NumberToken(n int) Token    { return Token{Type: NUMBER, Num: n} }
func IDToken(s string) Token     { return Token{Type: ID, Text: s} }
func CharToken(c byte) Token     { return Token{Type: CHAR, Ch: c} }
func StringToken(s string) Token { return Token{Type: STRING, Text: s} }

// Equal compares kind first, then payload for payload-bearing kinds.
func (t Token) Equal(o Token) bool {
	if t.Type != o.Type {
		return false
	}
	switch t.Type {
	case NUMBER:
		return t.Num == o.Num
	case ID, STRING:
		return t.Text == o.Text
	case CHAR:
		return t.Ch == o.Ch
	}
	return true
}

func (t Token) String() string {
	switch t.Type {
	case NUMBER:
		return fmt.Sprintf("Number{%d}", t.Num)
	case ID:
		return fmt.Sprintf("Id{%s}", t.Text)
	case CHAR:
		return fmt.Sprintf("Char{%c}", t.Ch)
	case STRING:
		return fmt.Sprintf("String{%s}", t.Text)
	}
	return t.Type.String()
}
