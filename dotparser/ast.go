package dotparser

// GraphKind discriminates directed from undirected graphs.
type GraphKind int

const (
	Directed GraphKind = iota
	Undirected
)

func (k GraphKind) String() string {
	if k == Undirected {
		return "graph"
	}
	return "digraph"
}

// Attr is a validated name=value pair attached to a graph, node, or edge.
// Values keep their original text; typed defaults live in the schema.
type Attr struct {
	Name  string
	Value string
	Pos   Position
}

// Node represents a resolved node declaration.
type Node struct {
	ID    string
	Attrs []Attr
	Pos   Position
}

// Attr looks up a node attribute by name. Returns the value and true if found.
func (n *Node) Attr(name string) (string, bool) {
	return lookupAttr(n.Attrs, name)
}

// Edge represents a single resolved edge between two endpoints. Chained
// edge statements are expanded into one Edge per consecutive pair before
// resolution completes.
type Edge struct {
	From  string
	To    string
	Attrs []Attr
	Pos   Position
}

// Attr looks up an edge attribute by name. Returns the value and true if found.
func (e *Edge) Attr(name string) (string, bool) {
	return lookupAttr(e.Attrs, name)
}

// ComponentKind discriminates the Component tagged union.
type ComponentKind int

const (
	NodeComponent ComponentKind = iota
	EdgeComponent
	SubgraphComponent
	ClusterSubgraphComponent
)

func (k ComponentKind) String() string {
	switch k {
	case NodeComponent:
		return "node"
	case EdgeComponent:
		return "edge"
	case SubgraphComponent:
		return "subgraph"
	case ClusterSubgraphComponent:
		return "cluster subgraph"
	default:
		return "unknown"
	}
}

// Component is one entry in a graph's ordered component sequence. Kind
// determines which pointer field is populated; the other fields are nil.
// Cluster subgraphs are subgraphs whose name begins with the case-sensitive
// prefix "cluster".
type Component struct {
	Kind     ComponentKind
	Node     *Node  // populated when Kind == NodeComponent
	Edge     *Edge  // populated when Kind == EdgeComponent
	Subgraph *Graph // populated when Kind == SubgraphComponent or ClusterSubgraphComponent
}

// Graph is the fully resolved representation of a parsed graph. The same
// shape is used for subgraphs; Kind and Strict are inherited from the root
// and fixed at construction.
type Graph struct {
	Kind       GraphKind
	Strict     bool
	Name       string // empty for anonymous graphs and subgraphs
	Attrs      []Attr
	Components []Component
}

// Attr looks up a graph-level attribute by name. Returns the value and true
// if found.
func (g *Graph) Attr(name string) (string, bool) {
	return lookupAttr(g.Attrs, name)
}

// Nodes returns the graph's directly declared nodes in declaration order.
func (g *Graph) Nodes() []*Node {
	var nodes []*Node
	for _, c := range g.Components {
		if c.Kind == NodeComponent {
			nodes = append(nodes, c.Node)
		}
	}
	return nodes
}

// Edges returns the graph's directly declared edges in declaration order.
func (g *Graph) Edges() []*Edge {
	var edges []*Edge
	for _, c := range g.Components {
		if c.Kind == EdgeComponent {
			edges = append(edges, c.Edge)
		}
	}
	return edges
}

// Subgraphs returns the graph's direct subgraphs (cluster or plain) in
// declaration order.
func (g *Graph) Subgraphs() []*Graph {
	var subs []*Graph
	for _, c := range g.Components {
		if c.Kind == SubgraphComponent || c.Kind == ClusterSubgraphComponent {
			subs = append(subs, c.Subgraph)
		}
	}
	return subs
}

// NodeByID returns the directly declared node with the given ID, or nil.
func (g *Graph) NodeByID(id string) *Node {
	for _, c := range g.Components {
		if c.Kind == NodeComponent && c.Node.ID == id {
			return c.Node
		}
	}
	return nil
}

// EdgesFrom returns all directly declared edges originating from the given
// node ID.
func (g *Graph) EdgesFrom(id string) []*Edge {
	var result []*Edge
	for _, e := range g.Edges() {
		if e.From == id {
			result = append(result, e)
		}
	}
	return result
}

// EdgesTo returns all directly declared edges targeting the given node ID.
func (g *Graph) EdgesTo(id string) []*Edge {
	var result []*Edge
	for _, e := range g.Edges() {
		if e.To == id {
			result = append(result, e)
		}
	}
	return result
}

func lookupAttr(attrs []Attr, name string) (string, bool) {
	for i := len(attrs) - 1; i >= 0; i-- {
		if attrs[i].Name == name {
			return attrs[i].Value, true
		}
	}
	return "", false
}
