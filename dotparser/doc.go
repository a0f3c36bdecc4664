// Package dotparser implements a parser for a constrained subset of the
// Graphviz DOT language.
//
// The subset keeps graph and digraph headers (including the strict
// modifier), node and edge statements with chained edge operators,
// subgraphs (cluster and plain), running attribute defaults, and a closed
// whitelist of rendering attributes. Ports, compass points, and HTML-like
// strings are excluded. Anything the parser accepts remains valid under the
// full DOT grammar, so standard renderers can consume re-emitted graphs
// unmodified.
//
// The parser is structured as a hand-rolled recursive-descent parser with
// four layers:
//
//   - Lexer: converts raw bytes into a token stream, stripping comments and
//     whitespace.
//   - Grammar parser: consumes tokens with bounded lookahead and builds an
//     unvalidated syntax tree.
//   - Resolver: expands edge chains, propagates running defaults, merges
//     attribute lists last-write-wins, coalesces strict multi-edges, and
//     produces the final Graph.
//   - Attribute schema and validator: the closed whitelist each resolved
//     attribute is checked against before attachment.
//
// Usage:
//
//	graph, err := dotparser.Parse(src)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(graph.Name, len(graph.Nodes()), len(graph.Edges()))
//
// Parsing is fail-fast: one call yields either a complete validated Graph
// or a single typed error (*LexError, *SyntaxError, or *AttributeError)
// carrying the source position. The returned Graph is immutable by
// convention; attribute defaults are exposed through Default rather than
// materialized into it.
package dotparser
