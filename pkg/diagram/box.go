package diagram

import (
	"fmt"
	"strings"
)

// Shape governs how a leaf box is drawn.
type Shape string

const (
	// ShapeSquare draws a filled square. It is the default.
	ShapeSquare Shape = "square"
	// ShapeEllipse draws a filled ellipse.
	ShapeEllipse Shape = "ellipse"
	// ShapePoint draws a small dot without a visible label.
	ShapePoint Shape = "point"
)

// DefaultShape is the shape of a box without a `shape` line.
const DefaultShape = ShapeSquare

// ParseShape returns the Shape named by s and true, or DefaultShape and
// false if s is not a known shape. Matching is case-insensitive.
func ParseShape(s string) (Shape, bool) {
	switch Shape(strings.ToLower(strings.TrimSpace(s))) {
	case ShapeSquare:
		return ShapeSquare, true
	case ShapeEllipse:
		return ShapeEllipse, true
	case ShapePoint:
		return ShapePoint, true
	}
	return DefaultShape, false
}

// Identifier prefixes for synthetic Graphviz ids.
const (
	clusterPrefix = "cluster_"
	anchorPrefix  = "anchor__"
)

// Box is one component of the diagram.
//
// The zero value is not usable; create boxes with NewBox.
type Box struct {
	Name     string   // Unique identifier, also the Graphviz node or cluster id
	Shape    Shape    // Leaf rendering style
	Inputs   []string // Input port identifiers, in declaration order
	Outputs  []string // Output port identifiers, in declaration order
	Children []*Box   // Owned child boxes, in declaration order
	Line     int      // Source line of the `box` declaration (0 if unknown)

	// Top marks the root box of the document (the first box declared).
	Top bool
	// DirectConnections is set when a connection endpoint names this box
	// itself rather than one of its ports.
	DirectConnections bool

	label string
}

// NewBox creates a box with the default shape and no label.
func NewBox(name string) *Box {
	return &Box{Name: name, Shape: DefaultShape}
}

// Label returns the display label, falling back to the box name.
func (b *Box) Label() string {
	if b.label != "" {
		return b.label
	}
	return b.Name
}

// SetLabel sets the display label. An empty label restores the default.
func (b *Box) SetLabel(label string) { b.label = label }

// HasLabel reports whether an explicit label was set.
func (b *Box) HasLabel() bool { return b.label != "" }

// AddChild appends child to the box's children.
func (b *Box) AddChild(child *Box) { b.Children = append(b.Children, child) }

// IsContainer reports whether the box has ports or children and is therefore
// rendered as a cluster instead of a plain node.
func (b *Box) IsContainer() bool {
	return len(b.Inputs) > 0 || len(b.Outputs) > 0 || len(b.Children) > 0
}

// ClusterID returns the Graphviz subgraph id used when the box is a container.
func (b *Box) ClusterID() string { return clusterPrefix + b.Name }

// AnchorID returns the id of the invisible node that stands for a container
// when a connection targets the box itself.
func (b *Box) AnchorID() string { return anchorPrefix + b.Name }

// ConnectionName returns the node id used when the box is a connection
// endpoint: the anchor for containers, the box name for leaves.
func (b *Box) ConnectionName() string {
	if b.IsContainer() {
		return b.AnchorID()
	}
	return b.Name
}

// Walk calls fn for b and then for every descendant in pre-order
// (declaration order). Walk stops descending into a subtree when fn returns false.
func (b *Box) Walk(fn func(*Box) bool) {
	if !fn(b) {
		return
	}
	for _, c := range b.Children {
		c.Walk(fn)
	}
}

// String returns a multi-line dump of the box, its ports and its direct
// children. It is meant for debug logging.
func (b *Box) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "box %s", b.Name)
	if b.HasLabel() {
		fmt.Fprintf(&sb, " (%q)", b.label)
	}
	sb.WriteString("\n    inputs\n")
	for _, in := range b.Inputs {
		fmt.Fprintf(&sb, "        %s\n", in)
	}
	sb.WriteString("    outputs\n")
	for _, out := range b.Outputs {
		fmt.Fprintf(&sb, "        %s\n", out)
	}
	sb.WriteString("    children\n")
	for _, c := range b.Children {
		fmt.Fprintf(&sb, "        %s\n", c.Name)
	}
	return sb.String()
}
