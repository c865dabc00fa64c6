package liberty

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectTokens(t *testing.T, src string) []Token {
	t.Helper()
	lex := NewLexer([]byte(src))
	var tokens []Token
	for {
		tok, err := lex.Next()
		require.NoError(t, err)
		tokens = append(tokens, tok)
		if tok.Kind == TokenEOF {
			break
		}
	}
	return tokens
}

func TestLexerPunctuation(t *testing.T) {
	tokens := collectTokens(t, "( ) { } : ; ,")
	expected := []TokenKind{
		TokenLParen, TokenRParen, TokenLBrace, TokenRBrace,
		TokenColon, TokenSemicolon, TokenComma, TokenEOF,
	}
	require.Len(t, tokens, len(expected))
	for i, tok := range tokens {
		assert.Equal(t, expected[i], tok.Kind, "token %d", i)
	}
}

func TestLexerIdentifiers(t *testing.T) {
	cases := []string{"foo", "_bar", "Cell123", "rise_transition"}
	for _, id := range cases {
		tokens := collectTokens(t, id)
		require.Len(t, tokens, 2, "input: %s", id) // identifier + EOF
		assert.Equal(t, TokenIdentifier, tokens[0].Kind, "input: %s", id)
		assert.Equal(t, id, tokens[0].Literal, "input: %s", id)
	}
}

func TestLexerDefineKeyword(t *testing.T) {
	tokens := collectTokens(t, "define")
	require.Len(t, tokens, 2)
	assert.Equal(t, TokenDefine, tokens[0].Kind)

	// Only an exact match is the keyword
	tokens = collectTokens(t, "defined")
	require.Len(t, tokens, 2)
	assert.Equal(t, TokenIdentifier, tokens[0].Kind)
}

func TestLexerNumbers(t *testing.T) {
	tests := []struct {
		input   string
		literal string
		unit    string
	}{
		{"1", "1", ""},
		{"-3.75", "-3.75", ""},
		{"+0.5", "+0.5", ""},
		{".5", ".5", ""},
		{"1.", "1.", ""},
		{"1.2e-5", "1.2e-5", ""},
		{"2E3", "2E3", ""},
		{"1.2ns", "1.2", "ns"},
		{"10mW", "10", "mW"},
		{"3eV", "3", "eV"},
		{"1e2ns", "1e2", "ns"},
	}
	for _, tt := range tests {
		tokens := collectTokens(t, tt.input)
		require.Len(t, tokens, 2, "input: %s", tt.input)
		assert.Equal(t, TokenNumber, tokens[0].Kind, "input: %s", tt.input)
		assert.Equal(t, tt.literal, tokens[0].Literal, "input: %s", tt.input)
		assert.Equal(t, tt.unit, tokens[0].Unit, "input: %s", tt.input)
	}
}

func TestLexerStrings(t *testing.T) {
	tests := []struct {
		input   string
		literal string
	}{
		{`"hello"`, "hello"},
		{`""`, ""},
		{`"say \"hi\""`, `say "hi"`},
		{`"a\b"`, `a\b`},
		{`"a\\"`, `a\\`},
		{`"(A * B) + !C"`, "(A * B) + !C"},
		{"\"line1\nline2\"", "line1\nline2"},
		{"\"0.1, \\\n0.2\"", "0.1, \\\n0.2"},
	}
	for _, tt := range tests {
		tokens := collectTokens(t, tt.input)
		require.Len(t, tokens, 2, "input: %s", tt.input)
		assert.Equal(t, TokenString, tokens[0].Kind, "input: %s", tt.input)
		assert.Equal(t, tt.literal, tokens[0].Literal, "input: %s", tt.input)
	}
}

func TestLexerBlockComments(t *testing.T) {
	tokens := collectTokens(t, "a /* skip\nme */ b")
	require.Len(t, tokens, 3)
	assert.Equal(t, "a", tokens[0].Literal)
	assert.Equal(t, "b", tokens[1].Literal)
}

func TestLexerLineContinuation(t *testing.T) {
	tokens := collectTokens(t, "\"1, 2\", \\\n\"3, 4\"")
	require.Len(t, tokens, 4)
	assert.Equal(t, TokenString, tokens[0].Kind)
	assert.Equal(t, TokenComma, tokens[1].Kind)
	assert.Equal(t, TokenString, tokens[2].Kind)
	assert.Equal(t, "3, 4", tokens[2].Literal)
}

func TestLexerPositions(t *testing.T) {
	lex := NewLexer([]byte("a\n  b"))

	tok, err := lex.Next()
	require.NoError(t, err)
	assert.Equal(t, 1, tok.Pos.Line)
	assert.Equal(t, 1, tok.Pos.Column)

	tok, err = lex.Next()
	require.NoError(t, err)
	assert.Equal(t, 2, tok.Pos.Line)
	assert.Equal(t, 3, tok.Pos.Column)
}

func TestLexerPeek(t *testing.T) {
	lex := NewLexer([]byte("pin (A)"))

	peeked, err := lex.Peek()
	require.NoError(t, err)
	again, err := lex.Peek()
	require.NoError(t, err)
	assert.Equal(t, peeked, again)

	tok, err := lex.Next()
	require.NoError(t, err)
	assert.Equal(t, peeked, tok)

	tok, err = lex.Next()
	require.NoError(t, err)
	assert.Equal(t, TokenLParen, tok.Kind)
}

func TestLexerUnterminatedString(t *testing.T) {
	lex := NewLexer([]byte(`"abc`))
	_, err := lex.Next()
	require.Error(t, err)

	var lexErr *LexError
	require.True(t, errors.As(err, &lexErr))
	assert.Contains(t, lexErr.Error(), "unterminated string")
}

func TestLexerUnterminatedComment(t *testing.T) {
	lex := NewLexer([]byte("/* never closed"))
	_, err := lex.Next()
	require.Error(t, err)

	var lexErr *LexError
	require.True(t, errors.As(err, &lexErr))
	assert.Contains(t, lexErr.Error(), "unterminated block comment")
}

func TestLexerInvalidCharacters(t *testing.T) {
	for _, src := range []string{"$", "@", "/x", "=", "[", "."} {
		lex := NewLexer([]byte(src))
		_, err := lex.Next()
		require.Error(t, err, "input: %s", src)

		var lexErr *LexError
		require.True(t, errors.As(err, &lexErr), "input: %s", src)
		assert.Contains(t, lexErr.Error(), "unexpected character", "input: %s", src)
	}
}
