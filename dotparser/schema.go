package dotparser

// EntityKind identifies which kind of entity an attribute is attached to.
// Kinds combine as a bitmask in the schema table.
type EntityKind uint8

const (
	NodeEntity EntityKind = 1 << iota
	EdgeEntity
	GraphEntity
)

func (k EntityKind) String() string {
	switch k {
	case NodeEntity:
		return "node"
	case EdgeEntity:
		return "edge"
	case GraphEntity:
		return "graph"
	default:
		return "entity"
	}
}

// ValueType identifies the value grammar an attribute must satisfy.
type ValueType int

const (
	TypeString ValueType = iota
	TypeLblString
	TypeDouble
	TypeBool
	TypeBoolOrString
	TypeColor
	TypeColorList
)

// AttrSpec describes one whitelisted attribute: the entity kinds it applies
// to, its value type, and its default value.
type AttrSpec struct {
	Kinds   EntityKind
	Type    ValueType
	Default string
}

// schema is the closed attribute whitelist. The table is fixed and
// versioned with the grammar subset; names outside it are rejected.
var schema = map[string]AttrSpec{
	"bgcolor":    {Kinds: GraphEntity, Type: TypeColorList, Default: ""},
	"color":      {Kinds: EdgeEntity | NodeEntity, Type: TypeColorList, Default: "black"},
	"comment":    {Kinds: EdgeEntity | NodeEntity | GraphEntity, Type: TypeString, Default: ""},
	"fontcolor":  {Kinds: GraphEntity, Type: TypeColor, Default: "black"},
	"fontname":   {Kinds: GraphEntity, Type: TypeString, Default: "Times-Roman"},
	"fontsize":   {Kinds: GraphEntity, Type: TypeDouble, Default: "14.0"},
	"height":     {Kinds: NodeEntity, Type: TypeDouble, Default: "0.5"},
	"image":      {Kinds: NodeEntity, Type: TypeString, Default: ""},
	"imagepos":   {Kinds: NodeEntity, Type: TypeString, Default: ""},
	"imagescale": {Kinds: NodeEntity, Type: TypeBoolOrString, Default: "false"},
	"label":      {Kinds: EdgeEntity | NodeEntity | GraphEntity, Type: TypeLblString, Default: ""},
	"width":      {Kinds: NodeEntity, Type: TypeDouble, Default: "0.75"},
}

// AttributeNames returns the whitelisted attribute names. The slice is a
// fresh copy; callers may not grow the whitelist.
func AttributeNames() []string {
	names := make([]string, 0, len(schema))
	for name := range schema {
		names = append(names, name)
	}
	return names
}

// Default returns the default value for an attribute on the given entity
// kind. Defaults are never materialized into the AST; consumers that need a
// resolved value query this table when the attribute is absent. The second
// result is false for names outside the whitelist or kinds the attribute
// does not apply to.
func Default(kind EntityKind, name string) (string, bool) {
	spec, ok := schema[name]
	if !ok || spec.Kinds&kind == 0 {
		return "", false
	}
	// label is the one per-kind default in the table
	if name == "label" && kind == NodeEntity {
		return `\N`, true
	}
	return spec.Default, true
}
