package dotparser

import "strings"

// TokenKind identifies the type of a lexical token.
type TokenKind int

const (
	TokenEOF        TokenKind = iota
	TokenIdentifier           // bare identifier: letter/underscore/0x80-0xFF, then same plus digits
	TokenString               // "..." with \" escape processing
	TokenNumeral              // -?('.'[0-9]+ | [0-9]+('.'[0-9]*)?)
	TokenArrow                // -> (directed edge operator)
	TokenDoubleDash           // -- (undirected edge operator)
	TokenLBrace               // {
	TokenRBrace               // }
	TokenLBracket             // [
	TokenRBracket             // ]
	TokenEquals               // =
	TokenComma                // ,
	TokenSemicolon            // ;

	// Keywords (bare identifier text matched case-insensitively; quoted
	// strings are never reclassified)
	TokenStrict   // strict
	TokenGraph    // graph
	TokenDigraph  // digraph
	TokenNode     // node
	TokenEdge     // edge
	TokenSubgraph // subgraph
)

var tokenNames = map[TokenKind]string{
	TokenEOF:        "EOF",
	TokenIdentifier: "identifier",
	TokenString:     "quoted string",
	TokenNumeral:    "numeral",
	TokenArrow:      "'->'",
	TokenDoubleDash: "'--'",
	TokenLBrace:     "'{'",
	TokenRBrace:     "'}'",
	TokenLBracket:   "'['",
	TokenRBracket:   "']'",
	TokenEquals:     "'='",
	TokenComma:      "','",
	TokenSemicolon:  "';'",
	TokenStrict:     "'strict'",
	TokenGraph:      "'graph'",
	TokenDigraph:    "'digraph'",
	TokenNode:       "'node'",
	TokenEdge:       "'edge'",
	TokenSubgraph:   "'subgraph'",
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
	Pos     Position
}

// IsID reports whether the token is valid in ID position: a bare
// identifier, a numeral, or a quoted string.
func (t Token) IsID() bool {
	return t.Kind == TokenIdentifier || t.Kind == TokenNumeral || t.Kind == TokenString
}

// keywords maps lowercased keyword strings to their token kinds.
var keywords = map[string]TokenKind{
	"strict":   TokenStrict,
	"graph":    TokenGraph,
	"digraph":  TokenDigraph,
	"node":     TokenNode,
	"edge":     TokenEdge,
	"subgraph": TokenSubgraph,
}

// keywordKind returns the keyword token kind for a bare identifier, or
// TokenIdentifier if the text is not a reserved word. Matching is
// case-insensitive; the caller keeps the original literal.
func keywordKind(literal string) TokenKind {
	if kind, ok := keywords[strings.ToLower(literal)]; ok {
		return kind
	}
	return TokenIdentifier
}
