package emit

import (
	"strings"
	"testing"

	"github.com/vpoulailleau/boxaro/pkg/diagram"
	"github.com/vpoulailleau/boxaro/pkg/dot"
	bxerrors "github.com/vpoulailleau/boxaro/pkg/errors"
	"github.com/vpoulailleau/boxaro/pkg/parser"
)

func emitSource(t *testing.T, src string) (*diagram.Diagram, *dot.Graph) {
	t.Helper()
	res, err := parser.ParseString(src)
	if err != nil {
		t.Fatalf("ParseString() error: %v", err)
	}
	g, err := Emit(res.Diagram, Options{})
	if err != nil {
		t.Fatalf("Emit() error: %v", err)
	}
	return res.Diagram, g
}

func findEdge(g *dot.Graph, from, to string) *dot.Edge {
	for _, e := range g.Edges() {
		if e.From == from && e.To == to {
			return e
		}
	}
	return nil
}

func visibleEdges(g *dot.Graph) []*dot.Edge {
	var out []*dot.Edge
	for _, e := range g.Edges() {
		if e.Attrs.Value("style") != "invis" {
			out = append(out, e)
		}
	}
	return out
}

func TestEmitTopExample(t *testing.T) {
	_, g := emitSource(t, `box Top
    inputs
        In1
    outputs
        Out1
    box Proc
    connections
        In1 --> Proc
        Proc -- [error] --> Out1
`)

	if g.ID != "Top" {
		t.Errorf("graph id = %q, want Top", g.ID)
	}
	cluster, ok := g.FindSubgraph("cluster_Top")
	if !ok {
		t.Fatal("missing cluster_Top")
	}
	var label string
	for _, st := range cluster.Stmts {
		if a, ok := st.(*dot.Assign); ok && a.Key == "label" {
			label = a.Value
		}
	}
	if label != "" {
		t.Errorf("top cluster label = %q, want empty", label)
	}

	ranks := cluster.Subgraphs()
	if len(ranks) != 2 {
		t.Fatalf("cluster_Top has %d rank groups, want 2", len(ranks))
	}
	if n, ok := ranks[0].FindNode("In1"); !ok || n.Attrs.Value("class") != ClassInput {
		t.Error("In1 should be in the first rank=same group with class input")
	}
	if n, ok := ranks[1].FindNode("Out1"); !ok || n.Attrs.Value("class") != ClassOutput {
		t.Error("Out1 should be in the second rank=same group with class output")
	}

	proc, ok := cluster.FindNode("Proc")
	if !ok {
		t.Fatal("missing node Proc")
	}
	if proc.Attrs.Value("shape") != "square" || proc.Attrs.Value("class") != ClassLeaf {
		t.Errorf("Proc attrs = %v", proc.Attrs)
	}

	if e := findEdge(g, "In1", "Proc"); e == nil || e.Attrs.Value("label") != "" {
		t.Errorf("In1 -> Proc = %v, want unlabeled edge", e)
	}
	if e := findEdge(g, "Proc", "Out1"); e == nil || e.Attrs.Value("label") != "error" {
		t.Errorf("Proc -> Out1 = %v, want edge labeled error", e)
	}

	out := g.String()
	for _, want := range []string{"rankdir=LR", "compound=true", "newrank=true", "splines=spline", "rank=same"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestEmitFanOut(t *testing.T) {
	_, g := emitSource(t, `box Top
    box A
    box B
    box C
    connections
        A --[x]--> B
        A --[x]--> C
`)

	split := SplitterID("A", "x")
	if split != "splitter__A__x" {
		t.Errorf("SplitterID = %q", split)
	}
	var splitters int
	for _, n := range g.Nodes() {
		if n.Attrs.Value("class") == ClassSplitter {
			splitters++
		}
	}
	if splitters != 1 {
		t.Errorf("splitter nodes = %d, want 1", splitters)
	}

	edges := visibleEdges(g)
	if len(edges) != 3 {
		t.Fatalf("edges = %d, want 3 (1 into the splitter, 2 out)", len(edges))
	}
	if edges[0].From != "A" || edges[0].To != split || edges[0].Attrs.Value("label") != "x" {
		t.Errorf("first edge = %s -> %s %v", edges[0].From, edges[0].To, edges[0].Attrs)
	}
	for i, end := range []string{"B", "C"} {
		e := edges[i+1]
		if e.From != split || e.To != end {
			t.Errorf("edge %d = %s -> %s, want %s -> %s", i+1, e.From, e.To, split, end)
		}
		if _, ok := e.Attrs.Get("label"); ok {
			t.Errorf("edge %s -> %s should be unlabeled", e.From, e.To)
		}
	}
}

func TestEmitFanOutDistinctSplitters(t *testing.T) {
	tests := []struct {
		name      string
		boxes     []string
		conns     []string
		wantSplit map[string][]string // splitter id -> ends
	}{
		{
			name:  "labels equal after whitespace removal",
			boxes: []string{"A", "B", "C", "D", "E"},
			conns: []string{"A --[x y]--> B", "A --[x y]--> C", "A --[xy]--> D", "A --[xy]--> E"},
			wantSplit: map[string][]string{
				"splitter__A__xy":   {"B", "C"},
				"splitter__A__xy_2": {"D", "E"},
			},
		},
		{
			name:  "box named like a splitter",
			boxes: []string{"A", "B", "C", "splitter__A__x"},
			conns: []string{"A --[x]--> B", "A --[x]--> C"},
			wantSplit: map[string][]string{
				"splitter__A__x_2": {"B", "C"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := "box Top\n"
			for _, b := range tt.boxes {
				src += "    box " + b + "\n"
			}
			src += "    connections\n"
			for _, c := range tt.conns {
				src += "        " + c + "\n"
			}
			_, g := emitSource(t, src)

			declared := make(map[string]int)
			for _, n := range g.Nodes() {
				declared[n.ID]++
				if n.Attrs.Value("class") == ClassSplitter {
					if _, ok := tt.wantSplit[n.ID]; !ok {
						t.Errorf("unexpected splitter %q", n.ID)
					}
				}
			}
			for id, n := range declared {
				if n > 1 {
					t.Errorf("node %q declared %d times", id, n)
				}
			}

			for id, ends := range tt.wantSplit {
				if declared[id] != 1 {
					t.Errorf("splitter %q not declared", id)
				}
				var got []string
				for _, e := range visibleEdges(g) {
					if e.From == id {
						got = append(got, e.To)
					}
				}
				if strings.Join(got, ",") != strings.Join(ends, ",") {
					t.Errorf("%s fans out to %v, want %v", id, got, ends)
				}
			}
		})
	}
}

func TestEmitGroupEdgeCounts(t *testing.T) {
	tests := []struct {
		name      string
		conns     string
		wantEdges int
		wantSplit int
	}{
		{"single labeled", "A --[x]--> B\n", 1, 0},
		{"single unlabeled", "A --> B\n", 1, 0},
		{"unlabeled duplicates are not grouped", "A --> B\nA --> B\nA --> C\n", 3, 0},
		{"fan-out of three", "A -[x]-> B\nA -[x]-> C\nA -[x]-> D\n", 4, 1},
		{"two labels", "A -[x]-> B\nA -[y]-> C\nA -[x]-> D\n", 4, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := "box Top\n    box A\n    box B\n    box C\n    box D\n    connections\n"
			for _, line := range strings.Split(strings.TrimSpace(tt.conns), "\n") {
				src += "        " + line + "\n"
			}
			_, g := emitSource(t, src)

			if got := len(visibleEdges(g)); got != tt.wantEdges {
				t.Errorf("edges = %d, want %d", got, tt.wantEdges)
			}
			var split int
			for _, n := range g.Nodes() {
				if strings.HasPrefix(n.ID, splitterPrefix) {
					split++
				}
			}
			if split != tt.wantSplit {
				t.Errorf("splitters = %d, want %d", split, tt.wantSplit)
			}
		})
	}
}

func TestEmitLeafCount(t *testing.T) {
	d, g := emitSource(t, `box Top
    box Sub
        outputs
            o
        box L1
        box L2
            shape ellipse
    box L3
        shape point
`)

	var leaves int
	for _, n := range g.Nodes() {
		if n.Attrs.Value("class") == ClassLeaf {
			leaves++
		}
	}
	if want := len(d.Boxes.Leaves()); leaves != want {
		t.Errorf("leaf nodes = %d, want %d", leaves, want)
	}
	if n, _ := g.FindNode("L2"); n.Attrs.Value("shape") != "ellipse" {
		t.Errorf("L2 shape = %q", n.Attrs.Value("shape"))
	}
	if n, _ := g.FindNode("L3"); n.Attrs.Value("shape") != "point" {
		t.Errorf("L3 shape = %q", n.Attrs.Value("shape"))
	}
}

func TestEmitChildOrder(t *testing.T) {
	_, g := emitSource(t, `box Top
    box C1
        box X
    box C2
        inputs
            i
    box C3
        box Y
`)
	top, _ := g.FindSubgraph("cluster_Top")
	var ids []string
	for _, s := range top.Subgraphs() {
		ids = append(ids, s.ID)
	}
	if got := strings.Join(ids, ","); got != "cluster_C1,cluster_C2,cluster_C3" {
		t.Errorf("child clusters = %s", got)
	}

	c1, _ := g.FindSubgraph("cluster_C1")
	if !strings.Contains(g.String(), `label=C1`) || len(c1.Nodes()) != 1 {
		t.Errorf("cluster_C1 should be labeled and contain X")
	}
}

func TestEmitContainerEndpoint(t *testing.T) {
	_, g := emitSource(t, `box Top
    box Src
    box Ctrl
        inputs
            cmd
            cfg
        outputs
            state
        box Core
    connections
        Src --> Ctrl
        Ctrl --[st]--> Src
`)

	anchor, ok := g.FindNode("anchor__Ctrl")
	if !ok {
		t.Fatal("missing anchor__Ctrl")
	}
	if anchor.Attrs.Value("style") != "invis" || anchor.Attrs.Value("shape") != "point" {
		t.Errorf("anchor attrs = %v", anchor.Attrs)
	}
	ctrl, _ := g.FindSubgraph("cluster_Ctrl")
	if ctrl.Stmts[1].(*dot.Node) != anchor {
		t.Error("anchor should be the first node of its cluster")
	}

	in := findEdge(g, "Src", "anchor__Ctrl")
	if in == nil || in.Attrs.Value("lhead") != "cluster_Ctrl" {
		t.Errorf("Src -> Ctrl = %v, want lhead=cluster_Ctrl", in)
	}
	if _, ok := in.Attrs.Get("ltail"); ok {
		t.Error("leaf start should not get ltail")
	}
	out := findEdge(g, "anchor__Ctrl", "Src")
	if out == nil || out.Attrs.Value("ltail") != "cluster_Ctrl" || out.Attrs.Value("label") != "st" {
		t.Errorf("Ctrl -> Src = %v, want ltail=cluster_Ctrl label=st", out)
	}

	for _, pair := range [][2]string{{"cmd", "anchor__Ctrl"}, {"cfg", "anchor__Ctrl"}, {"anchor__Ctrl", "state"}} {
		e := findEdge(g, pair[0], pair[1])
		if e == nil {
			t.Errorf("missing alignment edge %s -> %s", pair[0], pair[1])
			continue
		}
		if e.Attrs.Value("style") != "invis" || e.Attrs.Value("weight") != "10" {
			t.Errorf("alignment edge %s -> %s attrs = %v", pair[0], pair[1], e.Attrs)
		}
	}

	if _, ok := g.FindNode("anchor__Core"); ok {
		t.Error("leaf boxes never get an anchor")
	}
}

func TestEmitNoAnchorWithoutDirectConnections(t *testing.T) {
	_, g := emitSource(t, `box Top
    box Ctrl
        inputs
            cmd
    box Src
    connections
        Src --> Ctrl.cmd
`)
	if _, ok := g.FindNode("anchor__Ctrl"); ok {
		t.Error("Ctrl is only reached through a port and needs no anchor")
	}
	if e := findEdge(g, "Src", "cmd"); e == nil {
		t.Error("missing edge Src -> cmd")
	}
	for _, e := range g.Edges() {
		if e.Attrs.Value("style") == "invis" {
			t.Errorf("unexpected alignment edge %s -> %s", e.From, e.To)
		}
	}
}

func TestEmitLeafTop(t *testing.T) {
	_, g := emitSource(t, "box Alone\n    label Just me\n")
	out := g.String()
	if strings.Contains(out, "rankdir") {
		t.Error("rankdir should only be set when the top box has children")
	}
	n, ok := g.FindNode("Alone")
	if !ok || n.Attrs.Value("label") != "Just me" {
		t.Errorf("Alone node = %v", n)
	}
}

func TestEmitOptions(t *testing.T) {
	res, err := parser.ParseString("box Top\n    box A\n")
	if err != nil {
		t.Fatal(err)
	}
	out, err := ToDOT(res.Diagram, Options{Pad: "1", Splines: "ortho", LeafFill: "white"})
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"pad=1", "nodesep=1", "ranksep=2", "splines=ortho", "fillcolor=white"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestEmitUnknownTop(t *testing.T) {
	_, err := Emit(diagram.New(), DefaultOptions())
	if !bxerrors.Is(err, bxerrors.ErrCodeUnknownBox) {
		t.Errorf("Emit(empty) error = %v, want UNKNOWN_BOX", err)
	}
}

func TestEmitDeterministic(t *testing.T) {
	src := "box Top\n    box A\n    box B\n    connections\n        A -[x]-> B\n        A -[x]-> Top\n        B --> A\n"
	_, g1 := emitSource(t, src)
	_, g2 := emitSource(t, src)
	if g1.String() != g2.String() {
		t.Error("two emissions of the same source differ")
	}
}

func TestSplitterID(t *testing.T) {
	tests := []struct {
		start, label, want string
	}{
		{"A", "x", "splitter__A__x"},
		{"Top.Proc.out", "data bus", "splitter__Top_Proc_out__databus"},
		{"a", "v1.2", "splitter__a__v1_2"},
	}
	for _, tt := range tests {
		if got := SplitterID(tt.start, tt.label); got != tt.want {
			t.Errorf("SplitterID(%q, %q) = %q, want %q", tt.start, tt.label, got, tt.want)
		}
	}
}
