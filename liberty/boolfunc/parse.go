package boolfunc

import "fmt"

// SyntaxError reports where in the expression text parsing failed.
type SyntaxError struct {
	Offset  int // byte offset into the expression
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("offset %d: %s", e.Offset, e.Message)
}

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokConst  // 0 or 1
	tokNot    // !
	tokPrime  // postfix '
	tokXor    // ^
	tokAnd    // & or *
	tokOr     // + or |
	tokLParen // (
	tokRParen // )
)

type token struct {
	kind tokenKind
	text string
	off  int
}

// lex splits the expression into tokens. Whitespace separates tokens but is
// otherwise insignificant; adjacency becomes an implicit and during parsing.
func lex(src string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(src) {
		ch := src[i]
		switch {
		case ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n':
			i++
		case ch == '!':
			toks = append(toks, token{tokNot, "!", i})
			i++
		case ch == '\'':
			toks = append(toks, token{tokPrime, "'", i})
			i++
		case ch == '^':
			toks = append(toks, token{tokXor, "^", i})
			i++
		case ch == '&' || ch == '*':
			toks = append(toks, token{tokAnd, string(ch), i})
			i++
		case ch == '+' || ch == '|':
			toks = append(toks, token{tokOr, string(ch), i})
			i++
		case ch == '(':
			toks = append(toks, token{tokLParen, "(", i})
			i++
		case ch == ')':
			toks = append(toks, token{tokRParen, ")", i})
			i++
		case ch == '0' || ch == '1':
			toks = append(toks, token{tokConst, string(ch), i})
			i++
		case isNameStart(ch):
			start := i
			for i < len(src) && isNamePart(src[i]) {
				i++
			}
			toks = append(toks, token{tokIdent, src[start:i], start})
		default:
			return nil, &SyntaxError{Offset: i, Message: fmt.Sprintf("unexpected character %q", ch)}
		}
	}
	toks = append(toks, token{tokEOF, "", len(src)})
	return toks, nil
}

// Parse parses a boolean pin-function expression.
// Returns a *SyntaxError on malformed input.
func Parse(src string) (Expr, error) {
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	expr, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.kind != tokEOF {
		return nil, &SyntaxError{Offset: tok.off, Message: fmt.Sprintf("unexpected %q", tok.text)}
	}
	return expr, nil
}

type parser struct {
	toks []token
	pos  int
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	tok := p.toks[p.pos]
	if tok.kind != tokEOF {
		p.pos++
	}
	return tok
}

// parseOr parses the loosest level: operands joined by + or |. A chain
// flattens into a single Or node over all operands.
func (p *parser) parseOr() (Expr, error) {
	first, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	operands := []Expr{first}
	for p.peek().kind == tokOr {
		p.next()
		operand, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		operands = append(operands, operand)
	}
	if len(operands) == 1 {
		return first, nil
	}
	return Or{Operands: operands}, nil
}

// parseAnd parses operands joined by &, *, or plain adjacency. A chain
// flattens into a single And node over all operands.
func (p *parser) parseAnd() (Expr, error) {
	first, err := p.parseXor()
	if err != nil {
		return nil, err
	}
	operands := []Expr{first}
	for {
		tok := p.peek()
		if tok.kind == tokAnd {
			p.next()
		} else if !startsOperand(tok.kind) {
			break
		}
		operand, err := p.parseXor()
		if err != nil {
			return nil, err
		}
		operands = append(operands, operand)
	}
	if len(operands) == 1 {
		return first, nil
	}
	return And{Operands: operands}, nil
}

// startsOperand reports whether a token can begin an operand, which makes
// adjacency after a complete operand an implicit and.
func startsOperand(kind tokenKind) bool {
	switch kind {
	case tokIdent, tokConst, tokNot, tokLParen:
		return true
	}
	return false
}

// parseXor parses operands joined by ^. A chain flattens into a single Xor
// node over all operands.
func (p *parser) parseXor() (Expr, error) {
	first, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	operands := []Expr{first}
	for p.peek().kind == tokXor {
		p.next()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		operands = append(operands, operand)
	}
	if len(operands) == 1 {
		return first, nil
	}
	return Xor{Operands: operands}, nil
}

// parseUnary parses prefix ! and postfix ' inverters around an atom.
func (p *parser) parseUnary() (Expr, error) {
	if p.peek().kind == tokNot {
		p.next()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return Not{Operand: operand}, nil
	}

	expr, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokPrime {
		p.next()
		expr = Not{Operand: expr}
	}
	return expr, nil
}

func (p *parser) parseAtom() (Expr, error) {
	tok := p.next()
	switch tok.kind {
	case tokIdent:
		return Var{Name: tok.text}, nil

	case tokConst:
		return Const{Value: tok.text == "1"}, nil

	case tokLParen:
		expr, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if closing := p.next(); closing.kind != tokRParen {
			return nil, &SyntaxError{Offset: closing.off, Message: "expected ')'"}
		}
		return expr, nil

	case tokEOF:
		return nil, &SyntaxError{Offset: tok.off, Message: "unexpected end of expression"}

	default:
		return nil, &SyntaxError{Offset: tok.off, Message: fmt.Sprintf("unexpected %q", tok.text)}
	}
}

func isNameStart(ch byte) bool {
	return ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch == '_'
}

func isNamePart(ch byte) bool {
	return isNameStart(ch) || ch >= '0' && ch <= '9'
}
