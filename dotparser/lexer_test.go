package dotparser

import (
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

func lexError(t *testing.T, src string) *LexError {
	t.Helper()
	lex := NewLexer([]byte(src))
	for {
		tok, err := lex.Next()
		if err != nil {
			var lexErr *LexError
			require.ErrorAs(t, err, &lexErr)
			return lexErr
		}
		require.NotEqual(t, TokenEOF, tok.Kind, "input lexed without error: %s", src)
	}
}

func TestLexerPunctuation(t *testing.T) {
	tokens := collectTokens(t, "{ } [ ] = , ;")
	expected := []TokenKind{
		TokenLBrace, TokenRBrace, TokenLBracket, TokenRBracket,
		TokenEquals, TokenComma, TokenSemicolon, TokenEOF,
	}
	require.Len(t, tokens, len(expected))
	for i, tok := range tokens {
		assert.Equal(t, expected[i], tok.Kind, "token %d", i)
	}
}

func TestLexerEdgeOperators(t *testing.T) {
	tokens := collectTokens(t, "-> --")
	require.Len(t, tokens, 3)
	assert.Equal(t, TokenArrow, tokens[0].Kind)
	assert.Equal(t, "->", tokens[0].Literal)
	assert.Equal(t, TokenDoubleDash, tokens[1].Kind)
	assert.Equal(t, "--", tokens[1].Literal)
}

func TestLexerIdentifiers(t *testing.T) {
	cases := []string{"foo", "_bar", "Plan123", "A_b_C", "abc123"}
	for _, id := range cases {
		tokens := collectTokens(t, id)
		require.Len(t, tokens, 2, "input: %s", id) // identifier + EOF
		assert.Equal(t, TokenIdentifier, tokens[0].Kind, "input: %s", id)
		assert.Equal(t, id, tokens[0].Literal, "input: %s", id)
	}
}

func TestLexerExtendedRangeIdentifier(t *testing.T) {
	// Bytes 0x80-0xFF are valid identifier characters.
	src := "caf\xe9"
	tokens := collectTokens(t, src)
	require.Len(t, tokens, 2)
	assert.Equal(t, TokenIdentifier, tokens[0].Kind)
	assert.Equal(t, src, tokens[0].Literal)

	// Leading extended-range byte is also a valid start.
	tokens = collectTokens(t, "\xe9tude")
	require.Len(t, tokens, 2)
	assert.Equal(t, TokenIdentifier, tokens[0].Kind)
}

func TestLexerKeywords(t *testing.T) {
	tests := []struct {
		input string
		kind  TokenKind
	}{
		{"strict", TokenStrict},
		{"graph", TokenGraph},
		{"digraph", TokenDigraph},
		{"node", TokenNode},
		{"edge", TokenEdge},
		{"subgraph", TokenSubgraph},
	}
	for _, tt := range tests {
		tokens := collectTokens(t, tt.input)
		require.Len(t, tokens, 2, "input: %s", tt.input)
		assert.Equal(t, tt.kind, tokens[0].Kind, "input: %s", tt.input)
	}
}

func TestLexerKeywordsCaseInsensitive(t *testing.T) {
	for _, input := range []string{"graph", "Graph", "GRAPH", "gRaPh"} {
		tokens := collectTokens(t, input)
		require.Len(t, tokens, 2, "input: %s", input)
		assert.Equal(t, TokenGraph, tokens[0].Kind, "input: %s", input)
		// Original case is preserved in the literal.
		assert.Equal(t, input, tokens[0].Literal, "input: %s", input)
	}
}

func TestLexerQuotedKeywordIsNotKeyword(t *testing.T) {
	tokens := collectTokens(t, `"graph"`)
	require.Len(t, tokens, 2)
	assert.Equal(t, TokenString, tokens[0].Kind)
	assert.Equal(t, "graph", tokens[0].Literal)
}

func TestLexerStrings(t *testing.T) {
	tests := []struct {
		input   string
		literal string
	}{
		{`"hello"`, "hello"},
		{`""`, ""},
		{`"say \"hi\""`, `say "hi"`},
		{`"a\"b"`, `a"b`},
		{`"spaces are fine"`, "spaces are fine"},
		// Only \" is decoded; other backslash sequences pass through.
		{`"a\nb"`, `a\nb`},
		{`"a\\b"`, `a\\b`},
	}
	for _, tt := range tests {
		tokens := collectTokens(t, tt.input)
		require.Len(t, tokens, 2, "input: %s", tt.input)
		assert.Equal(t, TokenString, tokens[0].Kind, "input: %s", tt.input)
		assert.Equal(t, tt.literal, tokens[0].Literal, "input: %s", tt.input)
	}
}

func TestLexerUnterminatedString(t *testing.T) {
	for _, src := range []string{`"hello`, `"hello\`, `"trailing escape\"`} {
		lexErr := lexError(t, src)
		assert.Equal(t, UnterminatedQuotedString, lexErr.Kind, "input: %s", src)
	}
}

func TestLexerNumerals(t *testing.T) {
	tests := []string{"0", "42", "12345", "-42", "3.14", "-3.14", ".5", "-.5", "3.", "0.75"}
	for _, input := range tests {
		tokens := collectTokens(t, input)
		require.Len(t, tokens, 2, "input: %s", input)
		assert.Equal(t, TokenNumeral, tokens[0].Kind, "input: %s", input)
		assert.Equal(t, input, tokens[0].Literal, "input: %s", input)
	}
}

func TestLexerInvalidNumerals(t *testing.T) {
	for _, src := range []string{"-", "-.", ".", "-x"} {
		lexErr := lexError(t, src)
		assert.Equal(t, InvalidNumeral, lexErr.Kind, "input: %s", src)
	}
}

func TestLexerNumberFollowedByAlpha(t *testing.T) {
	// "5mm" splits into a numeral and an identifier.
	tokens := collectTokens(t, "5mm")
	require.Len(t, tokens, 3)
	assert.Equal(t, TokenNumeral, tokens[0].Kind)
	assert.Equal(t, "5", tokens[0].Literal)
	assert.Equal(t, TokenIdentifier, tokens[1].Kind)
	assert.Equal(t, "mm", tokens[1].Literal)
}

func TestLexerArrowVsNegativeNumeral(t *testing.T) {
	tokens := collectTokens(t, "A->-5")
	require.Len(t, tokens, 4)
	assert.Equal(t, TokenIdentifier, tokens[0].Kind)
	assert.Equal(t, TokenArrow, tokens[1].Kind)
	assert.Equal(t, TokenNumeral, tokens[2].Kind)
	assert.Equal(t, "-5", tokens[2].Literal)
}

func TestLexerDoubleDashBetweenIdentifiers(t *testing.T) {
	tokens := collectTokens(t, "a--b")
	require.Len(t, tokens, 4)
	assert.Equal(t, TokenIdentifier, tokens[0].Kind)
	assert.Equal(t, TokenDoubleDash, tokens[1].Kind)
	assert.Equal(t, TokenIdentifier, tokens[2].Kind)
}

func TestLexerLineComments(t *testing.T) {
	tokens := collectTokens(t, "A // comment\nB")
	require.Len(t, tokens, 3)
	assert.Equal(t, "A", tokens[0].Literal)
	assert.Equal(t, "B", tokens[1].Literal)
}

func TestLexerBlockComments(t *testing.T) {
	tokens := collectTokens(t, "A /* block\ncomment */ B")
	require.Len(t, tokens, 3)
	assert.Equal(t, "A", tokens[0].Literal)
	assert.Equal(t, "B", tokens[1].Literal)
}

func TestLexerUnterminatedBlockComment(t *testing.T) {
	lex := NewLexer([]byte("A /* unterminated"))
	_, err := lex.Next() // gets A
	require.NoError(t, err)
	_, err = lex.Next()
	require.Error(t, err)
	var lexErr *LexError
	require.ErrorAs(t, err, &lexErr)
}

func TestLexerPosition(t *testing.T) {
	tokens := collectTokens(t, "A\nB C")
	require.Len(t, tokens, 4)
	assert.Equal(t, Position{Line: 1, Column: 1, Offset: 0}, tokens[0].Pos)
	assert.Equal(t, Position{Line: 2, Column: 1, Offset: 2}, tokens[1].Pos)
	assert.Equal(t, Position{Line: 2, Column: 3, Offset: 4}, tokens[2].Pos)
}

func TestLexerEmpty(t *testing.T) {
	tokens := collectTokens(t, "")
	require.Len(t, tokens, 1)
	assert.Equal(t, TokenEOF, tokens[0].Kind)
}

func TestLexerUnexpectedCharacter(t *testing.T) {
	for _, src := range []string{"@", "#", "(", "&"} {
		lexErr := lexError(t, src)
		assert.Equal(t, UnexpectedCharacter, lexErr.Kind, "input: %s", src)
	}
}

func TestLexerFullStatement(t *testing.T) {
	tokens := collectTokens(t, `start [color=red, label="Start"]`)
	expected := []TokenKind{
		TokenIdentifier, TokenLBracket,
		TokenIdentifier, TokenEquals, TokenIdentifier, TokenComma,
		TokenIdentifier, TokenEquals, TokenString,
		TokenRBracket, TokenEOF,
	}
	require.Len(t, tokens, len(expected))
	for i, tok := range tokens {
		assert.Equal(t, expected[i], tok.Kind, "token %d: %s", i, tok.Literal)
	}
	assert.Equal(t, "start", tokens[0].Literal)
	assert.Equal(t, "color", tokens[2].Literal)
	assert.Equal(t, "red", tokens[4].Literal)
	assert.Equal(t, "label", tokens[6].Literal)
	assert.Equal(t, "Start", tokens[8].Literal)
}

func TestLexerPeek(t *testing.T) {
	lex := NewLexer([]byte("A B"))

	tok, err := lex.Peek()
	require.NoError(t, err)
	assert.Equal(t, "A", tok.Literal)

	tok2, err := lex.Peek()
	require.NoError(t, err)
	assert.Equal(t, tok, tok2)

	tok3, err := lex.Next()
	require.NoError(t, err)
	assert.Equal(t, "A", tok3.Literal)

	tok4, err := lex.Next()
	require.NoError(t, err)
	assert.Equal(t, "B", tok4.Literal)
}
