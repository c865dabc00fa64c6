package liberty

import (
	"fmt"
	"strings"
)

// Lexer tokenizes liberty source text into a stream of tokens.
type Lexer struct {
	src    []byte
	pos    int // current byte offset
	line   int // current line (1-based)
	col    int // current column (1-based)
	peeked *Token
}

// NewLexer creates a new Lexer for the given source bytes.
func NewLexer(src []byte) *Lexer {
	return &Lexer{src: src, line: 1, col: 1}
}

// Peek returns the next token without consuming it.
func (l *Lexer) Peek() (Token, error) {
	if l.peeked != nil {
		return *l.peeked, nil
	}
	tok, err := l.scan()
	if err != nil {
		return Token{}, err
	}
	l.peeked = &tok
	return tok, nil
}

// Next returns the next token and advances the lexer.
func (l *Lexer) Next() (Token, error) {
	if l.peeked != nil {
		tok := *l.peeked
		l.peeked = nil
		return tok, nil
	}
	return l.scan()
}

func (l *Lexer) currentPos() Position {
	return Position{Line: l.line, Column: l.col, Offset: l.pos}
}

func (l *Lexer) atEnd() bool {
	return l.pos >= len(l.src)
}

func (l *Lexer) peek() byte {
	if l.atEnd() {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) advance() byte {
	ch := l.src[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return ch
}

// skipWhitespaceAndComments discards whitespace, block comments, and
// backslash-newline line continuations between tokens.
func (l *Lexer) skipWhitespaceAndComments() error {
	for !l.atEnd() {
		ch := l.peek()
		switch {
		case ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n':
			l.advance()
		case ch == '\\' && l.pos+1 < len(l.src) && (l.src[l.pos+1] == '\n' || l.src[l.pos+1] == '\r'):
			// Line continuation: the backslash and line break vanish
			l.advance() // consume \
			l.advance() // consume \r or \n
			if !l.atEnd() && l.src[l.pos-1] == '\r' && l.peek() == '\n' {
				l.advance()
			}
		case ch == '/' && l.pos+1 < len(l.src) && l.src[l.pos+1] == '*':
			// Block comment: skip to */
			startPos := l.currentPos()
			l.advance() // consume /
			l.advance() // consume *
			for {
				if l.atEnd() {
					return &LexError{ParseError{
						Message: "unterminated block comment",
						Pos:     startPos,
					}}
				}
				if l.peek() == '*' && l.pos+1 < len(l.src) && l.src[l.pos+1] == '/' {
					l.advance() // consume *
					l.advance() // consume /
					break
				}
				l.advance()
			}
		default:
			return nil
		}
	}
	return nil
}

func (l *Lexer) scan() (Token, error) {
	if err := l.skipWhitespaceAndComments(); err != nil {
		return Token{}, err
	}

	if l.atEnd() {
		return Token{Kind: TokenEOF, Pos: l.currentPos()}, nil
	}

	pos := l.currentPos()
	ch := l.peek()

	// Single-character tokens
	switch ch {
	case '(':
		l.advance()
		return Token{Kind: TokenLParen, Literal: "(", Pos: pos}, nil
	case ')':
		l.advance()
		return Token{Kind: TokenRParen, Literal: ")", Pos: pos}, nil
	case '{':
		l.advance()
		return Token{Kind: TokenLBrace, Literal: "{", Pos: pos}, nil
	case '}':
		l.advance()
		return Token{Kind: TokenRBrace, Literal: "}", Pos: pos}, nil
	case ':':
		l.advance()
		return Token{Kind: TokenColon, Literal: ":", Pos: pos}, nil
	case ';':
		l.advance()
		return Token{Kind: TokenSemicolon, Literal: ";", Pos: pos}, nil
	case ',':
		l.advance()
		return Token{Kind: TokenComma, Literal: ",", Pos: pos}, nil
	case '"':
		return l.scanString()
	case '-', '+':
		if l.pos+1 < len(l.src) && (isDigit(l.src[l.pos+1]) || l.src[l.pos+1] == '.') {
			return l.scanNumber()
		}
		l.advance()
		return Token{}, &LexError{ParseError{
			Message: fmt.Sprintf("unexpected character %q", ch),
			Pos:     pos,
		}}
	case '.':
		if l.pos+1 < len(l.src) && isDigit(l.src[l.pos+1]) {
			return l.scanNumber()
		}
		l.advance()
		return Token{}, &LexError{ParseError{
			Message: "unexpected character '.'",
			Pos:     pos,
		}}
	}

	if isDigit(ch) {
		return l.scanNumber()
	}

	if isIdentStart(ch) {
		return l.scanIdentifier()
	}

	l.advance()
	return Token{}, &LexError{ParseError{
		Message: fmt.Sprintf("unexpected character %q", ch),
		Pos:     pos,
	}}
}

// scanString consumes a double-quoted string. A backslash pairs with the
// character after it: \" decodes to a quote, every other pair is preserved
// verbatim so that multi-row table values keep their embedded line
// continuations. Pairing means a doubled backslash never escapes a closing
// quote. Raw newlines are legal inside the quotes.
func (l *Lexer) scanString() (Token, error) {
	pos := l.currentPos()
	l.advance() // consume opening "

	var sb strings.Builder
	for {
		if l.atEnd() {
			return Token{}, &LexError{ParseError{
				Message: "unterminated string",
				Pos:     pos,
			}}
		}
		ch := l.advance()
		if ch == '"' {
			return Token{Kind: TokenString, Literal: sb.String(), Pos: pos}, nil
		}
		if ch == '\\' && !l.atEnd() {
			next := l.advance()
			if next == '"' {
				sb.WriteByte('"')
			} else {
				sb.WriteByte(ch)
				sb.WriteByte(next)
			}
			continue
		}
		sb.WriteByte(ch)
	}
}

func (l *Lexer) scanNumber() (Token, error) {
	pos := l.currentPos()
	start := l.pos

	// Optional sign
	if l.peek() == '-' || l.peek() == '+' {
		l.advance()
	}

	// Integer part
	for !l.atEnd() && isDigit(l.peek()) {
		l.advance()
	}

	// Fraction
	if !l.atEnd() && l.peek() == '.' {
		l.advance() // consume '.'
		for !l.atEnd() && isDigit(l.peek()) {
			l.advance()
		}
	}

	// Exponent, only when the 'e' is really one
	if !l.atEnd() && (l.peek() == 'e' || l.peek() == 'E') && l.hasExponent() {
		l.advance() // consume e
		if l.peek() == '-' || l.peek() == '+' {
			l.advance()
		}
		for !l.atEnd() && isDigit(l.peek()) {
			l.advance()
		}
	}

	literal := string(l.src[start:l.pos])

	// A unit glued to the number, e.g. 1.2ns or 10mW
	unit := ""
	if !l.atEnd() && isIdentStart(l.peek()) {
		unitStart := l.pos
		for !l.atEnd() && isIdentPart(l.peek()) {
			l.advance()
		}
		unit = string(l.src[unitStart:l.pos])
	}

	return Token{Kind: TokenNumber, Literal: literal, Unit: unit, Pos: pos}, nil
}

// hasExponent reports whether the 'e' at the current position starts an
// exponent rather than a unit suffix such as the "e" in "3eV".
func (l *Lexer) hasExponent() bool {
	i := l.pos + 1
	if i < len(l.src) && (l.src[i] == '-' || l.src[i] == '+') {
		i++
	}
	return i < len(l.src) && isDigit(l.src[i])
}

func (l *Lexer) scanIdentifier() (Token, error) {
	pos := l.currentPos()
	start := l.pos

	for !l.atEnd() && isIdentPart(l.peek()) {
		l.advance()
	}

	literal := string(l.src[start:l.pos])

	if kind, ok := keywords[literal]; ok {
		return Token{Kind: kind, Literal: literal, Pos: pos}, nil
	}

	return Token{Kind: TokenIdentifier, Literal: literal, Pos: pos}, nil
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}
