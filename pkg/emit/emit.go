package emit

import (
	"strconv"
	"strings"

	"github.com/vpoulailleau/boxaro/pkg/diagram"
	"github.com/vpoulailleau/boxaro/pkg/dot"
)

// Node classes, exposed as the SVG class attribute.
const (
	ClassInput    = "input"
	ClassOutput   = "output"
	ClassLeaf     = "leaf"
	ClassSplitter = "splitter"
	ClassAnchor   = "anchor"
)

const splitterPrefix = "splitter__"

type emitter struct {
	d    *diagram.Diagram
	opts Options
	ids  map[string]bool // node ids already taken
}

// Emit builds the Graphviz document for d. It fails only when the top-level
// box cannot be resolved.
func Emit(d *diagram.Diagram, opts Options) (*dot.Graph, error) {
	top, err := d.Top()
	if err != nil {
		return nil, err
	}
	e := &emitter{d: d, opts: opts.withDefaults(), ids: nodeIDs(d)}

	g := dot.NewGraph(top.Name)
	g.Defaults("graph",
		dot.A("pad", e.opts.Pad),
		dot.A("nodesep", e.opts.NodeSep),
		dot.A("ranksep", e.opts.RankSep),
	)
	if len(top.Children) > 0 {
		g.Set("rankdir", "LR")
	}
	g.Set("splines", e.opts.Splines)
	g.Set("compound", "true")
	g.Set("newrank", "true")

	e.box(&g.Subgraph, top)
	e.connections(&g.Subgraph)
	e.alignment(&g.Subgraph, top)
	return g, nil
}

// ToDOT is Emit followed by serialization.
func ToDOT(d *diagram.Diagram, opts Options) (string, error) {
	g, err := Emit(d, opts)
	if err != nil {
		return "", err
	}
	return g.String(), nil
}

func (e *emitter) box(parent *dot.Subgraph, b *diagram.Box) {
	if !b.IsContainer() {
		parent.Node(b.Name,
			dot.A("label", b.Label()),
			dot.A("shape", string(b.Shape)),
			dot.A("style", "filled"),
			dot.A("fillcolor", e.opts.LeafFill),
			dot.A("class", ClassLeaf),
		)
		return
	}

	c := parent.AddSubgraph(b.ClusterID())
	if b.Top {
		c.Set("label", "")
		c.Set("color", "white")
		c.Set("bgcolor", "white")
	} else {
		c.Set("label", b.Label())
	}

	if b.DirectConnections {
		c.Node(b.AnchorID(),
			dot.A("shape", "point"),
			dot.A("style", "invis"),
			dot.A("width", "0"),
			dot.A("height", "0"),
			dot.A("label", ""),
			dot.A("class", ClassAnchor),
		)
	}
	ports(c, b.Inputs, ClassInput)
	ports(c, b.Outputs, ClassOutput)

	for _, child := range b.Children {
		e.box(c, child)
	}
}

// ports emits one rank=same group holding the port nodes.
func ports(c *dot.Subgraph, names []string, class string) {
	if len(names) == 0 {
		return
	}
	r := c.AddSubgraph("")
	r.Set("rank", "same")
	for _, name := range names {
		r.Node(name, dot.A("shape", "plaintext"), dot.A("class", class))
	}
}

func (e *emitter) connections(g *dot.Subgraph) {
	for _, c := range e.d.Connections.Unlabeled() {
		e.edge(g, c.SimpleStart(), c.SimpleEnd())
	}

	for _, grp := range e.d.Connections.Groups() {
		first := grp.Connections[0]
		if !grp.FanOut() {
			e.edge(g, first.SimpleStart(), first.SimpleEnd(), dot.A("label", first.Label))
			continue
		}

		split := e.uniqueID(SplitterID(grp.Start, grp.Label))
		g.Node(split,
			dot.A("shape", "point"),
			dot.A("width", "0"),
			dot.A("height", "0"),
			dot.A("class", ClassSplitter),
		)
		e.edge(g, first.SimpleStart(), split, dot.A("label", grp.Label))
		for _, c := range grp.Connections {
			e.edge(g, split, c.SimpleEnd())
		}
	}
}

// edge adds from -> to, redirecting container endpoints to their anchor and
// clipping the edge at the cluster border.
func (e *emitter) edge(g *dot.Subgraph, from, to string, attrs ...dot.Attr) *dot.Edge {
	fromNode, tail := e.d.Endpoint(from)
	toNode, head := e.d.Endpoint(to)
	ed := g.Edge(fromNode, toNode, attrs...)
	if tail != "" {
		ed.Attrs.Set("ltail", tail)
	}
	if head != "" {
		ed.Attrs.Set("lhead", head)
	}
	return ed
}

func (e *emitter) alignment(g *dot.Subgraph, top *diagram.Box) {
	weight := strconv.Itoa(e.opts.AlignWeight)
	top.Walk(func(b *diagram.Box) bool {
		if !b.IsContainer() || !b.DirectConnections {
			return true
		}
		anchor := b.AnchorID()
		for _, in := range b.Inputs {
			g.Edge(in, anchor, dot.A("style", "invis"), dot.A("weight", weight))
		}
		for _, out := range b.Outputs {
			g.Edge(anchor, out, dot.A("style", "invis"), dot.A("weight", weight))
		}
		return true
	})
}

// nodeIDs collects every id a box or port can occupy.
func nodeIDs(d *diagram.Diagram) map[string]bool {
	ids := make(map[string]bool)
	for _, b := range d.Boxes.All() {
		ids[b.Name] = true
		ids[b.AnchorID()] = true
		for _, p := range b.Inputs {
			ids[p] = true
		}
		for _, p := range b.Outputs {
			ids[p] = true
		}
	}
	return ids
}

// uniqueID returns base, or base with the first free numeric suffix, and
// reserves the result.
func (e *emitter) uniqueID(base string) string {
	id := base
	for n := 2; e.ids[id]; n++ {
		id = base + "_" + strconv.Itoa(n)
	}
	e.ids[id] = true
	return id
}

// SplitterID returns the id of the fan-out node for connections sharing start
// and label. Whitespace is dropped and dots become underscores, so the id is
// stable across runs. Distinct groups may share a base id; Emit suffixes
// later ones with _2, _3 and so on.
func SplitterID(start, label string) string {
	return splitterPrefix + sanitize(start) + "__" + sanitize(label)
}

func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '.':
			return '_'
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			return -1
		}
		return r
	}, s)
}
