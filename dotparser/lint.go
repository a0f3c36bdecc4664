package dotparser

import (
	"fmt"
	"strings"
)

// Severity represents the severity level of a lint diagnostic.
type Severity int

const (
	// Error means the graph is unlikely to render as intended.
	Error Severity = iota
	// Warning means the graph renders but probably not as intended.
	Warning
	// Info is an informational note.
	Info
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "ERROR"
	case Warning:
		return "WARNING"
	case Info:
		return "INFO"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// Diagnostic is a single lint finding. Lint findings are advisory: the
// parser has already accepted the graph, and none of these abort anything.
type Diagnostic struct {
	Rule     string   // rule identifier (e.g. "parallel_edges")
	Severity Severity
	Message  string   // human-readable description
	NodeID   string   // related node ID (optional)
	Edge     *EdgeRef // related edge as (from, to) (optional)
}

// EdgeRef identifies an edge by its endpoints.
type EdgeRef struct {
	From string
	To   string
}

func (d Diagnostic) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s: %s", d.Severity, d.Rule, d.Message)
	if d.NodeID != "" {
		fmt.Fprintf(&b, " (node: %s)", d.NodeID)
	}
	if d.Edge != nil {
		fmt.Fprintf(&b, " (edge: %s, %s)", d.Edge.From, d.Edge.To)
	}
	return b.String()
}

// LintRule is the interface for a single lint rule.
type LintRule interface {
	Name() string
	Apply(g *Graph) []Diagnostic
}

// Lint runs all built-in rules (and any extra rules) against the graph and
// every nested subgraph. Returns all diagnostics regardless of severity.
func Lint(g *Graph, extraRules ...LintRule) []Diagnostic {
	rules := builtInRules()
	rules = append(rules, extraRules...)

	var diagnostics []Diagnostic
	for _, rule := range rules {
		diagnostics = append(diagnostics, rule.Apply(g)...)
	}
	for _, sub := range g.Subgraphs() {
		diagnostics = append(diagnostics, Lint(sub, extraRules...)...)
	}
	return diagnostics
}

func builtInRules() []LintRule {
	return []LintRule{
		edgeEndpointDeclaredRule{},
		emptySubgraphRule{},
		parallelEdgesRule{},
	}
}

// edge_endpoint_declared: every edge endpoint should reference a declared
// node. Implicit endpoints are legal DOT but frequently typos.
type edgeEndpointDeclaredRule struct{}

func (edgeEndpointDeclaredRule) Name() string { return "edge_endpoint_declared" }

func (edgeEndpointDeclaredRule) Apply(g *Graph) []Diagnostic {
	declared := make(map[string]bool)
	markDeclared(g, declared)

	var diags []Diagnostic
	seen := make(map[string]bool)
	for _, e := range g.Edges() {
		for _, id := range []string{e.From, e.To} {
			if declared[id] || seen[id] {
				continue
			}
			seen[id] = true
			diags = append(diags, Diagnostic{
				Rule:     "edge_endpoint_declared",
				Severity: Info,
				Message:  fmt.Sprintf("node %q is referenced by an edge but never declared", id),
				NodeID:   id,
				Edge:     &EdgeRef{From: e.From, To: e.To},
			})
		}
	}
	return diags
}

func markDeclared(g *Graph, declared map[string]bool) {
	for _, c := range g.Components {
		switch c.Kind {
		case NodeComponent:
			declared[c.Node.ID] = true
		case SubgraphComponent, ClusterSubgraphComponent:
			markDeclared(c.Subgraph, declared)
		}
	}
}

// empty_subgraph: a subgraph with no components usually indicates an
// unfinished edit.
type emptySubgraphRule struct{}

func (emptySubgraphRule) Name() string { return "empty_subgraph" }

func (emptySubgraphRule) Apply(g *Graph) []Diagnostic {
	var diags []Diagnostic
	for _, c := range g.Components {
		if c.Kind != SubgraphComponent && c.Kind != ClusterSubgraphComponent {
			continue
		}
		if len(c.Subgraph.Components) == 0 {
			name := c.Subgraph.Name
			if name == "" {
				name = "(anonymous)"
			}
			diags = append(diags, Diagnostic{
				Rule:     "empty_subgraph",
				Severity: Info,
				Message:  fmt.Sprintf("subgraph %s declares no components", name),
			})
		}
	}
	return diags
}

// parallel_edges: duplicate endpoint pairs in a non-strict graph. A strict
// graph would have coalesced these, which may be what the author wanted.
type parallelEdgesRule struct{}

func (parallelEdgesRule) Name() string { return "parallel_edges" }

func (parallelEdgesRule) Apply(g *Graph) []Diagnostic {
	if g.Strict {
		return nil
	}

	counts := make(map[edgeKey]int)
	for _, e := range g.Edges() {
		key := edgeKey{a: e.From, b: e.To}
		if g.Kind == Undirected && e.To < e.From {
			key = edgeKey{a: e.To, b: e.From}
		}
		counts[key]++
	}

	var diags []Diagnostic
	for _, e := range g.Edges() {
		key := edgeKey{a: e.From, b: e.To}
		if g.Kind == Undirected && e.To < e.From {
			key = edgeKey{a: e.To, b: e.From}
		}
		if counts[key] > 1 {
			diags = append(diags, Diagnostic{
				Rule:     "parallel_edges",
				Severity: Info,
				Message:  fmt.Sprintf("%d parallel edges between %q and %q", counts[key], key.a, key.b),
				Edge:     &EdgeRef{From: key.a, To: key.b},
			})
			counts[key] = 0 // report each pair once
		}
	}
	return diags
}
