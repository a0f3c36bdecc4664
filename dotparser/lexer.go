package dotparser

import (
	"fmt"
	"strings"
)

// Lexer tokenizes DOT-subset source text into a stream of tokens. It is
// strictly forward-only: tokens are produced on demand and never rescanned.
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

func (l *Lexer) peekAt(n int) byte {
	if l.pos+n >= len(l.src) {
		return 0
	}
	return l.src[l.pos+n]
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

func (l *Lexer) skipWhitespaceAndComments() error {
	for !l.atEnd() {
		ch := l.peek()
		switch {
		case ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n':
			l.advance()
		case ch == '/' && l.peekAt(1) == '/':
			// Line comment: skip to end of line
			for !l.atEnd() && l.peek() != '\n' {
				l.advance()
			}
		case ch == '/' && l.peekAt(1) == '*':
			// Block comment: skip to */
			startPos := l.currentPos()
			l.advance() // consume /
			l.advance() // consume *
			for {
				if l.atEnd() {
					return &LexError{
						ParseError: ParseError{
							Message: "unterminated block comment",
							Pos:     startPos,
						},
						Kind: UnexpectedCharacter,
					}
				}
				if l.peek() == '*' && l.peekAt(1) == '/' {
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

	switch ch {
	case '{':
		l.advance()
		return Token{Kind: TokenLBrace, Literal: "{", Pos: pos}, nil
	case '}':
		l.advance()
		return Token{Kind: TokenRBrace, Literal: "}", Pos: pos}, nil
	case '[':
		l.advance()
		return Token{Kind: TokenLBracket, Literal: "[", Pos: pos}, nil
	case ']':
		l.advance()
		return Token{Kind: TokenRBracket, Literal: "]", Pos: pos}, nil
	case '=':
		l.advance()
		return Token{Kind: TokenEquals, Literal: "=", Pos: pos}, nil
	case ',':
		l.advance()
		return Token{Kind: TokenComma, Literal: ",", Pos: pos}, nil
	case ';':
		l.advance()
		return Token{Kind: TokenSemicolon, Literal: ";", Pos: pos}, nil
	case '"':
		return l.scanString()
	case '-':
		switch l.peekAt(1) {
		case '>':
			l.advance()
			l.advance()
			return Token{Kind: TokenArrow, Literal: "->", Pos: pos}, nil
		case '-':
			l.advance()
			l.advance()
			return Token{Kind: TokenDoubleDash, Literal: "--", Pos: pos}, nil
		}
		return l.scanNumeral()
	case '.':
		return l.scanNumeral()
	}

	if isDigit(ch) {
		return l.scanNumeral()
	}

	if isIdentStart(ch) {
		return l.scanIdentifier()
	}

	l.advance()
	return Token{}, &LexError{
		ParseError: ParseError{
			Message: fmt.Sprintf("unexpected character %q", ch),
			Pos:     pos,
		},
		Kind: UnexpectedCharacter,
	}
}

// scanString consumes a double-quoted string. Only the \" escape is
// decoded; any other backslash sequence passes through verbatim so the
// accepted text stays a strict subset of the full DOT string grammar.
func (l *Lexer) scanString() (Token, error) {
	pos := l.currentPos()
	l.advance() // consume opening "

	var sb strings.Builder
	for {
		if l.atEnd() {
			return Token{}, &LexError{
				ParseError: ParseError{
					Message: "unterminated quoted string",
					Pos:     pos,
				},
				Kind: UnterminatedQuotedString,
			}
		}
		ch := l.advance()
		if ch == '"' {
			return Token{Kind: TokenString, Literal: sb.String(), Pos: pos}, nil
		}
		if ch == '\\' {
			if l.atEnd() {
				return Token{}, &LexError{
					ParseError: ParseError{
						Message: "unterminated quoted string",
						Pos:     pos,
					},
					Kind: UnterminatedQuotedString,
				}
			}
			esc := l.advance()
			if esc == '"' {
				sb.WriteByte('"')
			} else {
				sb.WriteByte('\\')
				sb.WriteByte(esc)
			}
			continue
		}
		sb.WriteByte(ch)
	}
}

// scanNumeral consumes a numeral: -?('.'[0-9]+ | [0-9]+('.'[0-9]*)?).
func (l *Lexer) scanNumeral() (Token, error) {
	pos := l.currentPos()
	start := l.pos

	if l.peek() == '-' {
		l.advance()
	}

	switch {
	case l.peek() == '.':
		// '.' form requires at least one digit after the point
		l.advance()
		if !isDigit(l.peek()) {
			return Token{}, &LexError{
				ParseError: ParseError{
					Message: fmt.Sprintf("invalid numeral %q", string(l.src[start:l.pos])),
					Pos:     pos,
				},
				Kind: InvalidNumeral,
			}
		}
		for isDigit(l.peek()) {
			l.advance()
		}
	case isDigit(l.peek()):
		for isDigit(l.peek()) {
			l.advance()
		}
		if l.peek() == '.' {
			l.advance()
			for isDigit(l.peek()) {
				l.advance()
			}
		}
	default:
		// lone '-' with nothing numeric after it
		return Token{}, &LexError{
			ParseError: ParseError{
				Message: fmt.Sprintf("invalid numeral %q", string(l.src[start:l.pos])),
				Pos:     pos,
			},
			Kind: InvalidNumeral,
		}
	}

	return Token{Kind: TokenNumeral, Literal: string(l.src[start:l.pos]), Pos: pos}, nil
}

func (l *Lexer) scanIdentifier() (Token, error) {
	pos := l.currentPos()
	start := l.pos

	for !l.atEnd() && isIdentPart(l.peek()) {
		l.advance()
	}

	literal := string(l.src[start:l.pos])
	return Token{Kind: keywordKind(literal), Literal: literal, Pos: pos}, nil
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

// isIdentStart matches ASCII letters, underscore, and the extended range
// 0x80-0xFF accepted by the DOT ID rule.
func isIdentStart(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_' || ch >= 0x80
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}
