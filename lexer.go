package mython

import (
	"fmt"
	"io"
	"strconv"
)

// One indent level is exactly two spaces.
const spacesPerIndent = 2

// Lexer scans a Mython source string into tokens in one eager pass at
// construction time, then exposes cursor-based traversal over the result.
// There is no incremental re-tokenization.
type Lexer struct {
	src    string
	cur    int // current index into src
	line   int // 1-based
	col    int // 0-based column within line
	tokens []Token
	pos    int // cursor into tokens
	indent int // current indentation level; negative is a scanner defect
}

// NewLexer tokenizes src fully and immediately. A scanning failure aborts
// construction with a *LexError.
func NewLexer(src string) (*Lexer, error) {
	l := &Lexer{src: src, line: 1}
	if err := l.scan(); err != nil {
		return nil, err
	}
	return l, nil
}

// NewLexerFromReader slurps r and tokenizes its contents.
func NewLexerFromReader(r io.Reader) (*Lexer, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return NewLexer(string(src))
}

// ----- errors -----

type LexError struct {
	Line int
	Col  int
	Msg  string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("LEXICAL ERROR at %d:%d: %s", e.Line, e.Col, e.Msg)
}

func (l *Lexer) err(msg string) error {
	return &LexError{Line: l.line, Col: l.col, Msg: msg}
}

// ExpectError reports an Expect/ExpectNext mismatch. It is a lexical
// error, but distinguishable from scanning-time *LexError.
type ExpectError struct {
	Want string // rendered expectation: a kind name or a full token
	Got  Token
}

func (e *ExpectError) Error() string {
	return fmt.Sprintf("expected %s, got %s", e.Want, e.Got)
}

// ----- cursor helpers -----

func (l *Lexer) isAtEnd() bool { return l.cur >= len(l.src) }

func (l *Lexer) peek() (byte, bool) {
	if l.isAtEnd() {
		return 0, false
	}
	return l.src[l.cur], true
}

func (l *Lexer) advance() (byte, bool) {
	if l.isAtEnd() {
		return 0, false
	}
	ch := l.src[l.cur]
	l.cur++
	if ch == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
	return ch, true
}

func (l *Lexer) push(t Token, line, col int) {
	t.Line, t.Col = line, col
	l.tokens = append(l.tokens, t)
}

func (l *Lexer) lastType() (TokenType, bool) {
	if len(l.tokens) == 0 {
		return 0, false
	}
	return l.tokens[len(l.tokens)-1].Type, true
}

// helpers

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
func isAlpha(b byte) bool { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_' }
func isAlphaNum(b byte) bool {
	return (b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9') ||
		b == '_'
}

// isPunct covers printable ASCII that is neither alphanumeric nor space.
func isPunct(b byte) bool {
	return b > ' ' && b < 0x7f && !isAlphaNum(b)
}

// ----- main scanner -----

// scan drives the category dispatch in fixed priority: string literal,
// keyword-or-identifier, punctuation (including comment skip), integer,
// space run, newline-and-reindent. A quote must be checked before
// punctuation or it would be misclassified.
func (l *Lexer) scan() error {
	l.trimSpaces()
	for !l.isAtEnd() {
		ch, _ := l.peek()
		switch {
		case ch == '\'' || ch == '"':
			if err := l.scanString(); err != nil {
				return err
			}
		case isAlpha(ch):
			l.scanWord()
		case isPunct(ch):
			l.scanPunct()
		case isDigit(ch):
			if err := l.scanNumber(); err != nil {
				return err
			}
		case ch == ' ':
			l.trimSpaces()
		case ch == '\n':
			if err := l.scanNewline(); err != nil {
				return err
			}
		default:
			return l.err(fmt.Sprintf("unexpected character: %q", ch))
		}
	}
	l.finalize()
	return nil
}

// finalize terminates the stream: a trailing Newline unless one is already
// there, one Dedent per outstanding indent level, exactly one Eof. The
// cursor is reset to the first token.
func (l *Lexer) finalize() {
	if tt, ok := l.lastType(); ok && tt != NEWLINE {
		l.push(Token{Type: NEWLINE}, l.line, l.col)
	}
	for l.indent > 0 {
		l.push(Token{Type: DEDENT}, l.line, l.col)
		l.indent--
	}
	l.push(Token{Type: EOF}, l.line, l.col)
	l.pos = 0
}

// scanString parses a quoted literal; the closing delimiter must match the
// opener. Escapes recognized: \n \t \r \" \' \\ and nothing else.
func (l *Lexer) scanString() error {
	line, col := l.line, l.col
	opener, _ := l.advance()

	var out []byte
	for {
		ch, ok := l.advance()
		if !ok {
			return l.err("string was not terminated")
		}
		if ch == opener {
			break
		}
		switch ch {
		case '\\':
			esc, ok := l.advance()
			if !ok {
				return l.err("unfinished escape sequence")
			}
			switch esc {
			case 'n':
				out = append(out, '\n')
			case 't':
				out = append(out, '\t')
			case 'r':
				out = append(out, '\r')
			case '"':
				out = append(out, '"')
			case '\'':
				out = append(out, '\'')
			case '\\':
				out = append(out, '\\')
			default:
				return l.err(fmt.Sprintf("invalid escape sequence: \\%c", esc))
			}
		case '\n', '\r':
			return l.err("line break in string literal")
		default:
			out = append(out, ch)
		}
	}
	l.push(StringToken(string(out)), line, col)
	return nil
}

// scanWord parses [A-Za-z_][A-Za-z0-9_]* and classifies it against the
// keyword table; anything else is a plain identifier.
func (l *Lexer) scanWord() {
	line, col := l.line, l.col
	start := l.cur
	for {
		b, ok := l.peek()
		if !ok || !isAlphaNum(b) {
			break
		}
		l.advance()
	}
	word := l.src[start:l.cur]
	if tt, ok := keywords[word]; ok {
		l.push(Token{Type: tt}, line, col)
		return
	}
	l.push(IDToken(word), line, col)
}

// scanPunct emits a one-character token, except for '#' comments (skipped
// through, not including, end-of-line) and the four two-character
// operators.
func (l *Lexer) scanPunct() {
	line, col := l.line, l.col
	ch, _ := l.advance()

	if ch == '#' {
		for {
			b, ok := l.peek()
			if !ok || b == '\n' {
				return
			}
			l.advance()
		}
	}

	if b, ok := l.peek(); ok && b == '=' {
		switch ch {
		case '=':
			l.advance()
			l.push(Token{Type: EQ}, line, col)
			return
		case '!':
			l.advance()
			l.push(Token{Type: NEQ}, line, col)
			return
		case '<':
			l.advance()
			l.push(Token{Type: LESS_EQ}, line, col)
			return
		case '>':
			l.advance()
			l.push(Token{Type: GREATER_EQ}, line, col)
			return
		}
	}

	l.push(CharToken(ch), line, col)
}

// scanNumber parses a maximal run of decimal digits. No sign, no radix
// prefixes, no floats.
func (l *Lexer) scanNumber() error {
	line, col := l.line, l.col
	start := l.cur
	for {
		b, ok := l.peek()
		if !ok || !isDigit(b) {
			break
		}
		l.advance()
	}
	n, err := strconv.Atoi(l.src[start:l.cur])
	if err != nil {
		return l.err("invalid integer literal")
	}
	l.push(NumberToken(n), line, col)
	return nil
}

func (l *Lexer) trimSpaces() {
	for {
		b, ok := l.peek()
		if !ok || b != ' ' {
			return
		}
		l.advance()
	}
}

// scanNewline appends a Newline marker unless the previous token already
// is one (blank lines never produce duplicates), then re-measures
// indentation on the following line.
func (l *Lexer) scanNewline() error {
	line, col := l.line, l.col
	l.advance()
	if tt, ok := l.lastType(); ok && tt != NEWLINE {
		l.push(Token{Type: NEWLINE}, line, col)
	}
	return l.scanIndent()
}

// scanIndent counts leading spaces on the new line and emits one Indent or
// Dedent per two-space step away from the current level. Blank lines are
// skipped. Remainders that are not a multiple of two are absorbed by the
// stepping loop.
func (l *Lexer) scanIndent() error {
	if l.isAtEnd() {
		return nil
	}
	spaces := 0
	for {
		b, ok := l.peek()
		if !ok || b != ' ' {
			break
		}
		l.advance()
		spaces++
	}
	if b, ok := l.peek(); ok && b == '\n' {
		return nil
	}

	want := l.indent * spacesPerIndent
	if spaces > want {
		for rem := spaces - want; rem > 0; rem -= spacesPerIndent {
			l.push(Token{Type: INDENT}, l.line, l.col)
			l.indent++
		}
	} else if spaces < want {
		for rem := want - spaces; rem > 0; rem -= spacesPerIndent {
			l.push(Token{Type: DEDENT}, l.line, l.col)
			l.indent--
		}
	}
	if l.indent < 0 {
		return l.err(fmt.Sprintf("internal: reindent produced negative indent level %d", l.indent))
	}
	return nil
}

// ----- token-stream API -----

// Tokens returns the full token sequence (EOF included).
func (l *Lexer) Tokens() []Token { return l.tokens }

// CurrentToken returns the token under the cursor without advancing.
func (l *Lexer) CurrentToken() Token { return l.tokens[l.pos] }

// NextToken advances the cursor and returns the new current token. It
// saturates at the final token: once the cursor reaches the last element,
// repeated calls keep returning it.
func (l *Lexer) NextToken() Token {
	if l.pos+1 >= len(l.tokens) {
		return l.tokens[l.pos]
	}
	l.pos++
	return l.tokens[l.pos]
}

// Expect fails with an *ExpectError unless the current token has the
// requested kind.
func (l *Lexer) Expect(tt TokenType) (Token, error) {
	tok := l.CurrentToken()
	if tok.Type != tt {
		return Token{}, &ExpectError{Want: tt.String(), Got: tok}
	}
	return tok, nil
}

// ExpectToken fails unless the current token equals want (kind and
// payload; positions are ignored).
func (l *Lexer) ExpectToken(want Token) error {
	tok := l.CurrentToken()
	if !tok.Equal(want) {
		return &ExpectError{Want: want.String(), Got: tok}
	}
	return nil
}

// ExpectNext advances, then behaves like Expect.
func (l *Lexer) ExpectNext(tt TokenType) (Token, error) {
	l.NextToken()
	return l.Expect(tt)
}

// ExpectNextToken advances, then behaves like ExpectToken.
func (l *Lexer) ExpectNextToken(want Token) error {
	l.NextToken()
	return l.ExpectToken(want)
}
