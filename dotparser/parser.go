package dotparser

import (
	"fmt"
	"strings"
)

// MaxNestingDepth bounds subgraph nesting so adversarial input fails with a
// deterministic error instead of exhausting the stack.
const MaxNestingDepth = 64

// Parse parses DOT-subset source text and returns a fully resolved,
// validated Graph. Returns a *LexError, *SyntaxError, or *AttributeError on
// failure; the first error aborts the parse.
func Parse(src []byte) (*Graph, error) {
	p := &parser{lex: NewLexer(src)}
	sg, err := p.parseGraph()
	if err != nil {
		return nil, err
	}
	return resolveGraph(sg, p.kind, p.strict, defaults{})
}

// --- syntax tree ---
//
// The grammar parser produces an unvalidated statement tree mirroring the
// grammar; edge expansion, default propagation, merging, and attribute
// validation all happen later in the resolver.

type stmtKind int

const (
	attrDefaultStmt stmtKind = iota // graph/node/edge [list]
	nodeStmt                        // ID [list]?
	edgeStmt                        // endpoint (edgeop endpoint)+ [list]?
	assignStmt                      // ID = ID
	subgraphStmt                    // subgraph ID? { ... } or bare { ... }
)

type rawAttr struct {
	name  string
	value string
	pos   Position
}

// endpoint is one side of an edge operator: either a node ID or an inline
// subgraph.
type endpoint struct {
	id  string
	sub *syntaxGraph
	pos Position
}

type statement struct {
	kind      stmtKind
	entity    EntityKind   // attrDefaultStmt: which default stack the list feeds
	attrs     []rawAttr    // concatenated bracket groups, unmerged
	id        string       // nodeStmt ID, assignStmt name
	value     string       // assignStmt value
	endpoints []endpoint   // edgeStmt, length >= 2
	sub       *syntaxGraph // subgraphStmt
	pos       Position
}

type syntaxGraph struct {
	name  string
	stmts []statement
	pos   Position
}

// --- grammar parser ---

type parser struct {
	lex    *Lexer
	kind   GraphKind
	strict bool
	depth  int
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
		return Token{}, p.unexpected(tok, kind.String())
	}
	return tok, nil
}

// unexpected builds a SyntaxError for tok, with UnexpectedEndOfInput when
// the offending token is EOF.
func (p *parser) unexpected(tok Token, expected string) error {
	kind := UnexpectedToken
	if tok.Kind == TokenEOF {
		kind = UnexpectedEndOfInput
	}
	return &SyntaxError{
		ParseError: ParseError{Pos: tok.Pos},
		Kind:       kind,
		Expected:   expected,
		Got:        describeToken(tok),
	}
}

func describeToken(tok Token) string {
	if tok.Kind == TokenEOF {
		return "EOF"
	}
	return fmt.Sprintf("%s (%q)", tok.Kind, tok.Literal)
}

// parseGraph parses the graph header and the top-level statement list:
// 'strict'? ('graph'|'digraph') ID? '{' statements '}' EOF.
func (p *parser) parseGraph() (*syntaxGraph, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	pos := tok.Pos
	if tok.Kind == TokenStrict {
		p.strict = true
		_, _ = p.next()
		tok, err = p.peek()
		if err != nil {
			return nil, err
		}
	}

	switch tok.Kind {
	case TokenGraph:
		p.kind = Undirected
	case TokenDigraph:
		p.kind = Directed
	default:
		_, _ = p.next()
		return nil, p.unexpected(tok, "'graph' or 'digraph'")
	}
	_, _ = p.next()

	sg := &syntaxGraph{pos: pos}

	tok, err = p.peek()
	if err != nil {
		return nil, err
	}
	if tok.IsID() {
		nameTok, _ := p.next()
		sg.name = nameTok.Literal
	}

	open, err := p.expect(TokenLBrace)
	if err != nil {
		return nil, err
	}
	sg.stmts, err = p.parseStatements(open.Pos)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenRBrace); err != nil {
		return nil, err
	}

	// One graph per input: reject trailing content.
	tok, err = p.peek()
	if err != nil {
		return nil, err
	}
	if tok.Kind != TokenEOF {
		return nil, p.unexpected(tok, "EOF")
	}

	return sg, nil
}

// parseStatements consumes statements until the matching '}' of the brace
// opened at openPos. The '}' itself is left unconsumed.
func (p *parser) parseStatements(openPos Position) ([]statement, error) {
	var stmts []statement
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		switch tok.Kind {
		case TokenRBrace:
			return stmts, nil
		case TokenEOF:
			return nil, &SyntaxError{
				ParseError: ParseError{
					Message: "unmatched '{'",
					Pos:     openPos,
				},
				Kind:     UnmatchedBrace,
				Expected: "'}'",
				Got:      "EOF",
			}
		case TokenSemicolon:
			_, _ = p.next()
		default:
			stmt, err := p.parseStatement(tok)
			if err != nil {
				return nil, err
			}
			stmts = append(stmts, stmt)
		}
	}
}

// parseStatement dispatches on the leading token. Node statements, edge
// statements, and assignments all begin with an ID; attribute-default
// statements and assignments both may begin with a reserved word. One token
// of lookahead past the leading token settles every case.
func (p *parser) parseStatement(lead Token) (statement, error) {
	switch lead.Kind {
	case TokenGraph, TokenNode, TokenEdge:
		return p.parseDefaultsOrAssign(lead.Kind)

	case TokenSubgraph, TokenLBrace:
		return p.parseSubgraphStatement()

	default:
		if !lead.IsID() {
			_, _ = p.next()
			return statement{}, p.unexpected(lead, describeExpectedStatement())
		}
		return p.parseIDStatement()
	}
}

// parseDefaultsOrAssign handles a leading 'graph', 'node', or 'edge'
// keyword: followed by '[' it declares running defaults for that entity
// kind; followed by '=' the keyword text is treated as an assignment name
// (which the resolver then checks against the whitelist).
func (p *parser) parseDefaultsOrAssign(kw TokenKind) (statement, error) {
	tok, _ := p.next() // consume keyword

	next, err := p.peek()
	if err != nil {
		return statement{}, err
	}

	switch next.Kind {
	case TokenLBracket:
		attrs, err := p.parseAttrLists()
		if err != nil {
			return statement{}, err
		}
		entity := GraphEntity
		switch kw {
		case TokenNode:
			entity = NodeEntity
		case TokenEdge:
			entity = EdgeEntity
		}
		return statement{kind: attrDefaultStmt, entity: entity, attrs: attrs, pos: tok.Pos}, nil

	case TokenEquals:
		return p.parseAssign(tok)

	default:
		_, _ = p.next()
		return statement{}, p.unexpected(next, "'[' or '='")
	}
}

// parseIDStatement handles a leading ID: assignment, edge chain, or node
// statement, resolved by one token of lookahead.
func (p *parser) parseIDStatement() (statement, error) {
	tok, _ := p.next() // consume ID

	next, err := p.peek()
	if err != nil {
		return statement{}, err
	}

	switch next.Kind {
	case TokenEquals:
		return p.parseAssign(tok)
	case TokenArrow, TokenDoubleDash:
		return p.parseEdgeChain(endpoint{id: tok.Literal, pos: tok.Pos})
	default:
		return p.parseNodeBody(tok)
	}
}

// parseAssign parses '= ID' after the name token has been consumed. An
// assignment is a single immediate graph attribute, not a running default.
func (p *parser) parseAssign(name Token) (statement, error) {
	if _, err := p.expect(TokenEquals); err != nil {
		return statement{}, err
	}
	val, err := p.expectID("attribute value")
	if err != nil {
		return statement{}, err
	}
	return statement{kind: assignStmt, id: name.Literal, value: val.Literal, pos: name.Pos}, nil
}

// parseNodeBody parses the optional attribute lists of a node statement.
func (p *parser) parseNodeBody(id Token) (statement, error) {
	stmt := statement{kind: nodeStmt, id: id.Literal, pos: id.Pos}

	tok, err := p.peek()
	if err != nil {
		return statement{}, err
	}
	if tok.Kind == TokenLBracket {
		stmt.attrs, err = p.parseAttrLists()
		if err != nil {
			return statement{}, err
		}
	}
	return stmt, nil
}

// parseSubgraphStatement parses a subgraph and then decides whether it
// stands alone as a component or is the left endpoint of an edge statement.
func (p *parser) parseSubgraphStatement() (statement, error) {
	sub, err := p.parseSubgraph()
	if err != nil {
		return statement{}, err
	}

	tok, err := p.peek()
	if err != nil {
		return statement{}, err
	}
	if tok.Kind == TokenArrow || tok.Kind == TokenDoubleDash {
		return p.parseEdgeChain(endpoint{sub: sub, pos: sub.pos})
	}
	return statement{kind: subgraphStmt, sub: sub, pos: sub.pos}, nil
}

// parseSubgraph parses 'subgraph' ID? '{' statements '}' or a bare braced
// statement list, tracking nesting depth explicitly.
func (p *parser) parseSubgraph() (*syntaxGraph, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	sub := &syntaxGraph{pos: tok.Pos}

	if tok.Kind == TokenSubgraph {
		_, _ = p.next()
		tok, err = p.peek()
		if err != nil {
			return nil, err
		}
		if tok.IsID() {
			nameTok, _ := p.next()
			sub.name = nameTok.Literal
		}
	}

	open, err := p.expect(TokenLBrace)
	if err != nil {
		return nil, err
	}

	p.depth++
	if p.depth > MaxNestingDepth {
		return nil, &SyntaxError{
			ParseError: ParseError{
				Message: fmt.Sprintf("subgraph nesting exceeds %d levels", MaxNestingDepth),
				Pos:     open.Pos,
			},
			Kind: NestingTooDeep,
		}
	}

	sub.stmts, err = p.parseStatements(open.Pos)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenRBrace); err != nil {
		return nil, err
	}
	p.depth--

	return sub, nil
}

// parseEdgeChain parses (edgeop endpoint)+ AttrLists? after the first
// endpoint. The operator must match the graph kind: '->' in digraphs, '--'
// in undirected graphs.
func (p *parser) parseEdgeChain(first endpoint) (statement, error) {
	stmt := statement{kind: edgeStmt, endpoints: []endpoint{first}, pos: first.pos}

	for {
		tok, err := p.peek()
		if err != nil {
			return statement{}, err
		}
		if tok.Kind != TokenArrow && tok.Kind != TokenDoubleDash {
			break
		}
		_, _ = p.next()
		if err := p.checkEdgeOperator(tok); err != nil {
			return statement{}, err
		}

		target, err := p.parseEndpoint()
		if err != nil {
			return statement{}, err
		}
		stmt.endpoints = append(stmt.endpoints, target)
	}

	tok, err := p.peek()
	if err != nil {
		return statement{}, err
	}
	if tok.Kind == TokenLBracket {
		stmt.attrs, err = p.parseAttrLists()
		if err != nil {
			return statement{}, err
		}
	}
	return stmt, nil
}

func (p *parser) checkEdgeOperator(op Token) error {
	want := TokenArrow
	if p.kind == Undirected {
		want = TokenDoubleDash
	}
	if op.Kind == want {
		return nil
	}
	return &SyntaxError{
		ParseError: ParseError{
			Message: fmt.Sprintf("edge operator %q is not valid in a %s", op.Literal, p.kind),
			Pos:     op.Pos,
		},
		Kind:     WrongEdgeOperator,
		Expected: want.String(),
		Got:      describeToken(op),
	}
}

// parseEndpoint parses the right side of an edge operator: a node ID or an
// inline subgraph.
func (p *parser) parseEndpoint() (endpoint, error) {
	tok, err := p.peek()
	if err != nil {
		return endpoint{}, err
	}
	if tok.Kind == TokenSubgraph || tok.Kind == TokenLBrace {
		sub, err := p.parseSubgraph()
		if err != nil {
			return endpoint{}, err
		}
		return endpoint{sub: sub, pos: sub.pos}, nil
	}
	id, err := p.expectID("node identifier or subgraph")
	if err != nil {
		return endpoint{}, err
	}
	return endpoint{id: id.Literal, pos: id.Pos}, nil
}

// expectID consumes an identifier, numeral, or quoted string.
func (p *parser) expectID(expected string) (Token, error) {
	tok, err := p.next()
	if err != nil {
		return Token{}, err
	}
	if !tok.IsID() {
		return Token{}, p.unexpected(tok, expected)
	}
	return tok, nil
}

// parseAttrLists parses one or more consecutive '[' a_list ']' groups and
// concatenates them into a single raw list. Merging happens in the
// resolver.
func (p *parser) parseAttrLists() ([]rawAttr, error) {
	var attrs []rawAttr
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if tok.Kind != TokenLBracket {
			return attrs, nil
		}
		group, err := p.parseAttrGroup()
		if err != nil {
			return nil, err
		}
		attrs = append(attrs, group...)
	}
}

// parseAttrGroup parses '[' (name '=' value (','|';')?)* ']'. Separators
// between attributes are optional.
func (p *parser) parseAttrGroup() ([]rawAttr, error) {
	if _, err := p.expect(TokenLBracket); err != nil {
		return nil, err
	}

	var attrs []rawAttr
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		switch tok.Kind {
		case TokenRBracket:
			_, _ = p.next()
			return attrs, nil
		case TokenComma, TokenSemicolon:
			_, _ = p.next()
		default:
			if !tok.IsID() {
				_, _ = p.next()
				return nil, p.unexpected(tok, "attribute name or ']'")
			}
			name, _ := p.next()
			if _, err := p.expect(TokenEquals); err != nil {
				return nil, err
			}
			val, err := p.expectID("attribute value")
			if err != nil {
				return nil, err
			}
			attrs = append(attrs, rawAttr{name: name.Literal, value: val.Literal, pos: name.Pos})
		}
	}
}

// describeExpectedStatement lists the token kinds accepted at statement
// position; used by error paths and kept close to the dispatch logic.
func describeExpectedStatement() string {
	return strings.Join([]string{
		"identifier", "numeral", "quoted string",
		"'graph'", "'node'", "'edge'", "'subgraph'", "'{'",
	}, ", ")
}
