package liberty

import (
	"fmt"
	"strconv"
)

// Parse parses liberty source text and returns the root group, which in a
// well-formed file is the single top-level library(...) block.
// Returns a *SyntaxError, *LexError, or *ValueError on failure.
func Parse(src []byte) (*Group, error) {
	p := &parser{lex: NewLexer(src)}

	nameTok, err := p.expect(TokenIdentifier)
	if err != nil {
		return nil, err
	}
	root, err := p.parseGroupRest(nameTok)
	if err != nil {
		return nil, err
	}

	// Reject trailing content (one top-level group per file)
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if tok.Kind != TokenEOF {
		return nil, &SyntaxError{
			ParseError: ParseError{
				Message: "only one top-level group per file is allowed",
				Pos:     tok.Pos,
			},
			Expected: "EOF",
			Got:      fmt.Sprintf("%s (%q)", tok.Kind, tok.Literal),
		}
	}

	return root, nil
}

type parser struct {
	lex *Lexer
}

func (p *parser) peek() (Token, error) {
	return p.lex.Peek()
}

func (p *parser) next() (Token, error) {
	return p.lex.Next()
}

func (p *parser) expect(kind TokenKind) (Token, error) {
	tok, err := p.next()
	if err != nil {
		return Token{}, err
	}
	if tok.Kind != kind {
		return Token{}, &SyntaxError{
			ParseError: ParseError{Pos: tok.Pos},
			Expected:   kind.String(),
			Got:        fmt.Sprintf("%s (%q)", tok.Kind, tok.Literal),
		}
	}
	return tok, nil
}

// parseGroupRest parses the argument list and braced body of a group whose
// name token has already been consumed.
func (p *parser) parseGroupRest(nameTok Token) (*Group, error) {
	elems, err := p.parseValueList()
	if err != nil {
		return nil, err
	}
	args, err := groupArgs(elems, nameTok.Pos)
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenLBrace); err != nil {
		return nil, err
	}

	g := &Group{
		Name:       nameTok.Literal,
		Args:       args,
		Attributes: make(map[string]Value),
		Pos:        nameTok.Pos,
	}

	if err := p.parseGroupBody(g); err != nil {
		return nil, err
	}

	return g, nil
}

// parseGroupBody parses statements up to and including the closing brace.
func (p *parser) parseGroupBody(g *Group) error {
	for {
		tok, err := p.peek()
		if err != nil {
			return err
		}
		if tok.Kind == TokenRBrace || tok.Kind == TokenEOF {
			break
		}
		if err := p.parseStatement(g); err != nil {
			return err
		}
	}

	_, err := p.expect(TokenRBrace)
	return err
}

func (p *parser) parseStatement(g *Group) error {
	tok, err := p.peek()
	if err != nil {
		return err
	}

	switch tok.Kind {
	case TokenDefine:
		return p.parseDefine(g)

	case TokenIdentifier:
		return p.parseNamedStatement(g)

	default:
		return &SyntaxError{
			ParseError: ParseError{Pos: tok.Pos},
			Expected:   "statement",
			Got:        fmt.Sprintf("%s (%q)", tok.Kind, tok.Literal),
		}
	}
}

// parseNamedStatement handles an identifier at the start of a statement.
// Disambiguates between a simple attribute (name : value ;), a complex
// attribute (name (v1, v2) ;), and a nested group (name (args) { ... }).
func (p *parser) parseNamedStatement(g *Group) error {
	nameTok, _ := p.next() // consume identifier

	tok, err := p.peek()
	if err != nil {
		return err
	}

	switch tok.Kind {
	case TokenColon:
		_, _ = p.next() // consume ':'
		val, err := p.parseValue()
		if err != nil {
			return err
		}
		if _, err := p.expect(TokenSemicolon); err != nil {
			return err
		}
		g.SetAttr(nameTok.Literal, val)
		return nil

	case TokenLParen:
		elems, err := p.parseValueList()
		if err != nil {
			return err
		}

		tok, err := p.peek()
		if err != nil {
			return err
		}
		switch tok.Kind {
		case TokenLBrace:
			args, err := groupArgs(elems, nameTok.Pos)
			if err != nil {
				return err
			}
			_, _ = p.next() // consume '{'
			sub := &Group{
				Name:       nameTok.Literal,
				Args:       args,
				Attributes: make(map[string]Value),
				Pos:        nameTok.Pos,
			}
			if err := p.parseGroupBody(sub); err != nil {
				return err
			}
			g.Groups = append(g.Groups, sub)
			return nil

		case TokenSemicolon:
			_, _ = p.next() // consume ';'
			g.SetAttr(nameTok.Literal, Value{Kind: ValueList, List: elems})
			return nil

		default:
			return &SyntaxError{
				ParseError: ParseError{Pos: tok.Pos},
				Expected:   "'{' or ';'",
				Got:        fmt.Sprintf("%s (%q)", tok.Kind, tok.Literal),
			}
		}

	default:
		return &SyntaxError{
			ParseError: ParseError{Pos: tok.Pos},
			Expected:   "':' or '('",
			Got:        fmt.Sprintf("%s (%q)", tok.Kind, tok.Literal),
		}
	}
}

// parseDefine parses define(attribute_name, group_name, attribute_type) ;
func (p *parser) parseDefine(g *Group) error {
	_, _ = p.next() // consume 'define'

	if _, err := p.expect(TokenLParen); err != nil {
		return err
	}
	attrName, err := p.expect(TokenIdentifier)
	if err != nil {
		return err
	}
	if _, err := p.expect(TokenComma); err != nil {
		return err
	}
	groupName, err := p.expect(TokenIdentifier)
	if err != nil {
		return err
	}
	if _, err := p.expect(TokenComma); err != nil {
		return err
	}
	typeName, err := p.expect(TokenIdentifier)
	if err != nil {
		return err
	}
	if _, err := p.expect(TokenRParen); err != nil {
		return err
	}
	if _, err := p.expect(TokenSemicolon); err != nil {
		return err
	}

	g.Defines = append(g.Defines, Define{
		AttributeName: attrName.Literal,
		GroupName:     groupName.Literal,
		AttributeType: typeName.Literal,
	})
	return nil
}

// parseValueList parses '(' [value (',' value)*] ')'.
func (p *parser) parseValueList() ([]Value, error) {
	if _, err := p.expect(TokenLParen); err != nil {
		return nil, err
	}

	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if tok.Kind == TokenRParen {
		_, _ = p.next()
		return nil, nil
	}

	var elems []Value
	for {
		val, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		elems = append(elems, val)

		tok, err := p.next()
		if err != nil {
			return nil, err
		}
		switch tok.Kind {
		case TokenComma:
			continue
		case TokenRParen:
			return elems, nil
		default:
			return nil, &SyntaxError{
				ParseError: ParseError{Pos: tok.Pos},
				Expected:   "',' or ')'",
				Got:        fmt.Sprintf("%s (%q)", tok.Kind, tok.Literal),
			}
		}
	}
}

func (p *parser) parseValue() (Value, error) {
	tok, err := p.next()
	if err != nil {
		return Value{}, err
	}

	switch tok.Kind {
	case TokenIdentifier:
		return IdentValue(tok.Literal), nil

	case TokenString:
		return StringValue(tok.Literal), nil

	case TokenNumber:
		num, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			return Value{}, &ValueError{ParseError{
				Message: fmt.Sprintf("invalid number %q", tok.Literal),
				Pos:     tok.Pos,
				Cause:   err,
			}}
		}
		if tok.Unit != "" {
			return UnitValue(num, tok.Unit), nil
		}
		return NumberValue(num), nil

	default:
		return Value{}, &SyntaxError{
			ParseError: ParseError{Pos: tok.Pos},
			Expected:   "value",
			Got:        fmt.Sprintf("%s (%q)", tok.Kind, tok.Literal),
		}
	}
}

// groupArgs converts the parsed header elements of a group into their plain
// string form. Quoted names lose their quotes, so cell("X") and cell(X)
// produce the same argument.
func groupArgs(elems []Value, pos Position) ([]string, error) {
	if len(elems) == 0 {
		return nil, nil
	}
	args := make([]string, len(elems))
	for i, v := range elems {
		switch v.Kind {
		case ValueIdent, ValueString:
			args[i] = v.Str
		case ValueNumber, ValueUnit:
			args[i] = v.String()
		default:
			return nil, &InternalError{ParseError{
				Message: fmt.Sprintf("group argument of kind %q cannot be classified", v.Kind),
				Pos:     pos,
			}}
		}
	}
	return args, nil
}
