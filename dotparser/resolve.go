package dotparser

import "strings"

// ClusterPrefix classifies a subgraph as a cluster when its name starts
// with this case-sensitive prefix, following common DOT convention.
const ClusterPrefix = "cluster"

// defaults carries the running attribute defaults for each entity kind.
// Each subgraph starts with a snapshot copy of the defaults active at its
// opening; declarations inside a subgraph never leak back out.
type defaults struct {
	node  []Attr
	edge  []Attr
	graph []Attr
}

func (d defaults) snapshot() defaults {
	return defaults{
		node:  copyAttrs(d.node),
		edge:  copyAttrs(d.edge),
		graph: copyAttrs(d.graph),
	}
}

// edgeKey identifies an endpoint pair for strict coalescing. Ordered for
// directed graphs, normalized for undirected ones.
type edgeKey struct {
	a, b string
}

// resolver builds one Graph from one syntax-tree level.
type resolver struct {
	graph    *Graph
	defaults defaults
	nodes    map[string]*Node   // dedup of direct node declarations
	edges    map[edgeKey]*Edge  // strict coalescing index
}

// resolveGraph walks a syntax graph depth-first, producing the final
// validated Graph. Kind and strict come from the root header and are fixed
// for every nesting level.
func resolveGraph(sg *syntaxGraph, kind GraphKind, strict bool, inherited defaults) (*Graph, error) {
	r := &resolver{
		graph: &Graph{
			Kind:   kind,
			Strict: strict,
			Name:   sg.name,
			Attrs:  copyAttrs(inherited.graph),
		},
		defaults: inherited.snapshot(),
		nodes:    make(map[string]*Node),
		edges:    make(map[edgeKey]*Edge),
	}

	for _, stmt := range sg.stmts {
		var err error
		switch stmt.kind {
		case attrDefaultStmt:
			err = r.applyDefaults(stmt)
		case nodeStmt:
			err = r.applyNode(stmt)
		case edgeStmt:
			err = r.applyEdge(stmt)
		case assignStmt:
			err = r.applyAssign(stmt)
		case subgraphStmt:
			_, err = r.applySubgraph(stmt.sub)
		}
		if err != nil {
			return nil, err
		}
	}

	return r.graph, nil
}

// applyDefaults handles 'graph|node|edge [list]': the list is validated for
// its entity kind and merged onto the matching default stack. Graph-kind
// defaults additionally apply to the current graph immediately.
func (r *resolver) applyDefaults(stmt statement) error {
	attrs, err := validateRawAttrs(stmt.attrs, stmt.entity)
	if err != nil {
		return err
	}
	switch stmt.entity {
	case NodeEntity:
		r.defaults.node = mergeAttrs(r.defaults.node, attrs)
	case EdgeEntity:
		r.defaults.edge = mergeAttrs(r.defaults.edge, attrs)
	case GraphEntity:
		r.defaults.graph = mergeAttrs(r.defaults.graph, attrs)
		r.graph.Attrs = mergeAttrs(r.graph.Attrs, attrs)
	}
	return nil
}

// applyNode handles a node statement. Redeclaring an ID merges the explicit
// attributes into the existing node rather than appending a second
// component.
func (r *resolver) applyNode(stmt statement) error {
	explicit, err := validateRawAttrs(stmt.attrs, NodeEntity)
	if err != nil {
		return err
	}

	if existing, ok := r.nodes[stmt.id]; ok {
		existing.Attrs = mergeAttrs(existing.Attrs, explicit)
		return nil
	}

	n := &Node{
		ID:    stmt.id,
		Attrs: mergeAttrs(r.defaults.node, explicit),
		Pos:   stmt.pos,
	}
	r.nodes[stmt.id] = n
	r.graph.Components = append(r.graph.Components, Component{Kind: NodeComponent, Node: n})
	return nil
}

// applyEdge expands an edge statement into individual edges: one per node
// pair across each consecutive endpoint pair. Subgraph endpoints resolve to
// the set of nodes they declare (and are appended as components in their
// own right). All produced edges share a copy of the statement's merged
// attribute list.
func (r *resolver) applyEdge(stmt statement) error {
	explicit, err := validateRawAttrs(stmt.attrs, EdgeEntity)
	if err != nil {
		return err
	}
	attrs := mergeAttrs(r.defaults.edge, explicit)

	groups := make([][]string, 0, len(stmt.endpoints))
	positions := make([]Position, 0, len(stmt.endpoints))
	for _, ep := range stmt.endpoints {
		if ep.sub != nil {
			child, err := r.applySubgraph(ep.sub)
			if err != nil {
				return err
			}
			groups = append(groups, collectNodeIDs(child))
		} else {
			groups = append(groups, []string{ep.id})
		}
		positions = append(positions, ep.pos)
	}

	for i := 0; i < len(groups)-1; i++ {
		for _, from := range groups[i] {
			for _, to := range groups[i+1] {
				r.addEdge(from, to, attrs, positions[i])
			}
		}
	}
	return nil
}

// addEdge appends one resolved edge, coalescing into an existing edge with
// the same endpoint pair when the graph is strict.
func (r *resolver) addEdge(from, to string, attrs []Attr, pos Position) {
	if r.graph.Strict {
		key := edgeKey{a: from, b: to}
		if r.graph.Kind == Undirected && to < from {
			key = edgeKey{a: to, b: from}
		}
		if existing, ok := r.edges[key]; ok {
			existing.Attrs = mergeAttrs(existing.Attrs, attrs)
			return
		}
		e := &Edge{From: from, To: to, Attrs: copyAttrs(attrs), Pos: pos}
		r.edges[key] = e
		r.graph.Components = append(r.graph.Components, Component{Kind: EdgeComponent, Edge: e})
		return
	}

	e := &Edge{From: from, To: to, Attrs: copyAttrs(attrs), Pos: pos}
	r.graph.Components = append(r.graph.Components, Component{Kind: EdgeComponent, Edge: e})
}

// applyAssign handles 'ID = ID': a single immediate graph attribute that
// does not join the default stack.
func (r *resolver) applyAssign(stmt statement) error {
	if err := ValidateAttr(stmt.id, GraphEntity, stmt.value, stmt.pos); err != nil {
		return err
	}
	attr := Attr{Name: stmt.id, Value: stmt.value, Pos: stmt.pos}
	r.graph.Attrs = mergeAttrs(r.graph.Attrs, []Attr{attr})
	return nil
}

// applySubgraph resolves a nested graph with a snapshot of the current
// defaults and appends it as a component, classified as a cluster when its
// name carries the cluster prefix.
func (r *resolver) applySubgraph(sub *syntaxGraph) (*Graph, error) {
	child, err := resolveGraph(sub, r.graph.Kind, r.graph.Strict, r.defaults)
	if err != nil {
		return nil, err
	}
	kind := SubgraphComponent
	if strings.HasPrefix(child.Name, ClusterPrefix) {
		kind = ClusterSubgraphComponent
	}
	r.graph.Components = append(r.graph.Components, Component{Kind: kind, Subgraph: child})
	return child, nil
}

// validateRawAttrs checks every raw attribute against the schema for the
// given entity kind and merges duplicates last-write-wins.
func validateRawAttrs(raw []rawAttr, kind EntityKind) ([]Attr, error) {
	var attrs []Attr
	for _, a := range raw {
		if err := ValidateAttr(a.name, kind, a.value, a.pos); err != nil {
			return nil, err
		}
		attrs = mergeAttrs(attrs, []Attr{{Name: a.name, Value: a.value, Pos: a.pos}})
	}
	return attrs, nil
}

// collectNodeIDs gathers the IDs of every node declared in g, including
// nested subgraphs, in declaration order.
func collectNodeIDs(g *Graph) []string {
	var ids []string
	for _, c := range g.Components {
		switch c.Kind {
		case NodeComponent:
			ids = append(ids, c.Node.ID)
		case SubgraphComponent, ClusterSubgraphComponent:
			ids = append(ids, collectNodeIDs(c.Subgraph)...)
		}
	}
	return ids
}

// mergeAttrs overlays explicit attributes onto base: entries overridden by
// a later occurrence of the same name are dropped, so the last write wins
// and survives at its later position.
func mergeAttrs(base, explicit []Attr) []Attr {
	if len(explicit) == 0 {
		return copyAttrs(base)
	}

	overridden := make(map[string]bool, len(explicit))
	for _, a := range explicit {
		overridden[a.Name] = true
	}

	result := make([]Attr, 0, len(base)+len(explicit))
	for _, a := range base {
		if !overridden[a.Name] {
			result = append(result, a)
		}
	}
	return append(result, explicit...)
}

func copyAttrs(attrs []Attr) []Attr {
	if attrs == nil {
		return nil
	}
	cp := make([]Attr, len(attrs))
	copy(cp, attrs)
	return cp
}
