package dotparser

import "fmt"

// Position tracks a source location for error messages.
type Position struct {
	Line   int // 1-based line number
	Column int // 1-based column number
	Offset int // 0-based byte offset into source
}

// ParseError is the base error type for all dotparser errors.
type ParseError struct {
	Message string
	Pos     Position
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Pos.Line > 0 {
		return fmt.Sprintf("line %d, col %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
	}
	return e.Message
}

func (e *ParseError) Unwrap() error { return e.Cause }

// LexErrorKind identifies the category of a lexical error.
type LexErrorKind int

const (
	UnexpectedCharacter LexErrorKind = iota
	UnterminatedQuotedString
	InvalidNumeral
)

func (k LexErrorKind) String() string {
	switch k {
	case UnexpectedCharacter:
		return "unexpected character"
	case UnterminatedQuotedString:
		return "unterminated quoted string"
	case InvalidNumeral:
		return "invalid numeral"
	default:
		return fmt.Sprintf("LexErrorKind(%d)", int(k))
	}
}

// LexError represents a lexer-level error (malformed character or token).
type LexError struct {
	ParseError
	Kind LexErrorKind
}

// SyntaxErrorKind identifies the category of a grammar error.
type SyntaxErrorKind int

const (
	UnexpectedToken SyntaxErrorKind = iota
	UnexpectedEndOfInput
	UnmatchedBrace
	WrongEdgeOperator
	NestingTooDeep
)

func (k SyntaxErrorKind) String() string {
	switch k {
	case UnexpectedToken:
		return "unexpected token"
	case UnexpectedEndOfInput:
		return "unexpected end of input"
	case UnmatchedBrace:
		return "unmatched brace"
	case WrongEdgeOperator:
		return "wrong edge operator"
	case NestingTooDeep:
		return "nesting too deep"
	default:
		return fmt.Sprintf("SyntaxErrorKind(%d)", int(k))
	}
}

// SyntaxError represents a grammar-level error. Expected holds the set of
// tokens that would have been accepted at the error position.
type SyntaxError struct {
	ParseError
	Kind     SyntaxErrorKind
	Expected string
	Got      string
}

func (e *SyntaxError) Error() string {
	if e.Message != "" {
		return e.ParseError.Error()
	}
	if e.Pos.Line > 0 {
		return fmt.Sprintf("line %d, col %d: expected %s, got %s", e.Pos.Line, e.Pos.Column, e.Expected, e.Got)
	}
	return fmt.Sprintf("expected %s, got %s", e.Expected, e.Got)
}

// AttributeErrorKind identifies the category of an attribute error.
type AttributeErrorKind int

const (
	UnknownAttribute AttributeErrorKind = iota
	WrongEntityKind
	MalformedValue
)

func (k AttributeErrorKind) String() string {
	switch k {
	case UnknownAttribute:
		return "unknown attribute"
	case WrongEntityKind:
		return "wrong entity kind"
	case MalformedValue:
		return "malformed value"
	default:
		return fmt.Sprintf("AttributeErrorKind(%d)", int(k))
	}
}

// AttributeError represents a schema violation: an attribute name outside
// the whitelist, applied to the wrong entity kind, or carrying a value that
// fails its type check.
type AttributeError struct {
	ParseError
	Kind AttributeErrorKind
	Name string // offending attribute name
}
