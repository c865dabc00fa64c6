package liberty

// TokenKind identifies the type of a lexical token.
type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenIdentifier  // [A-Za-z_][A-Za-z0-9_]*
	TokenString      // "..." with escape processing
	TokenNumber      // signed decimal with optional fraction and exponent
	TokenLParen      // (
	TokenRParen      // )
	TokenLBrace      // {
	TokenRBrace      // }
	TokenColon       // :
	TokenSemicolon   // ;
	TokenComma       // ,

	// Keywords (identifier text checked against keyword map)
	TokenDefine // define
)

var tokenNames = map[TokenKind]string{
	TokenEOF:        "EOF",
	TokenIdentifier: "identifier",
	TokenString:     "string",
	TokenNumber:     "number",
	TokenLParen:     "'('",
	TokenRParen:     "')'",
	TokenLBrace:     "'{'",
	TokenRBrace:     "'}'",
	TokenColon:      "':'",
	TokenSemicolon:  "';'",
	TokenComma:      "','",
	TokenDefine:     "'define'",
}

func (k TokenKind) String() string {
	if name, ok := tokenNames[k]; ok {
		return name
	}
	return "unknown"
}

// Token is a single lexical unit produced by the Lexer.
type Token struct {
	Kind    TokenKind
	Literal string // text content (decoded for strings, raw for others)
	Unit    string // identifier glued to a number token, e.g. the "ns" in 1.2ns
	Pos     Position
}

// keywords maps keyword strings to their token kinds.
var keywords = map[string]TokenKind{
	"define": TokenDefine,
}
