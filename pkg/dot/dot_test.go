package dot

import (
	"strings"
	"testing"
)

func TestQuote(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Proc", "Proc"},
		{"anchor__Top", "anchor__Top"},
		{"0.5", "0.5"},
		{"2", "2"},
		{"", `""`},
		{"cluster Top", `"cluster Top"`},
		{"a.b", `"a.b"`},
		{"In-1", `"In-1"`},
		{"node", `"node"`},
		{"Graph", `"Graph"`},
		{`say "hi"`, `"say \"hi\""`},
		{`back\slash`, `"back\\slash"`},
		{"two\nlines", `"two\nlines"`},
		{"Entrée", "Entrée"},
	}

	for _, tt := range tests {
		if got := Quote(tt.in); got != tt.want {
			t.Errorf("Quote(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestAttrs(t *testing.T) {
	var a Attrs
	a.Set("label", "x")
	a.Set("shape", "point")
	a.Set("label", "y")

	if len(a) != 2 {
		t.Fatalf("len = %d, want 2", len(a))
	}
	if a[0].Key != "label" || a.Value("label") != "y" {
		t.Errorf("Set should replace in place: %v", a)
	}
	if _, ok := a.Get("color"); ok {
		t.Error("Get(color) should be absent")
	}
}

func TestGraphString(t *testing.T) {
	g := NewGraph("Top")
	g.Defaults("graph", A("pad", "0.5"))
	g.Set("rankdir", "LR")
	c := g.AddSubgraph("cluster_Top")
	c.Set("label", "")
	c.Node("Proc", A("label", "Main proc"), A("shape", "square"))
	r := c.AddSubgraph("")
	r.Set("rank", "same")
	r.Node("In1")
	g.Edge("In1", "Proc", A("label", "data"))

	want := `digraph Top {
    graph [pad=0.5]
    rankdir=LR
    subgraph cluster_Top {
        label=""
        Proc [label="Main proc", shape=square]
        subgraph {
            rank=same
            In1
        }
    }
    In1 -> Proc [label=data]
}
`
	if got := g.String(); got != want {
		t.Errorf("String() =\n%s\nwant\n%s", got, want)
	}
}

func TestGraphStrict(t *testing.T) {
	g := NewGraph("")
	g.Strict = true
	if got := g.String(); got != "strict digraph {\n}\n" {
		t.Errorf("String() = %q", got)
	}
}

func TestGraphQueries(t *testing.T) {
	g := NewGraph("G")
	a := g.AddSubgraph("cluster_A")
	a.Node("x")
	b := a.AddSubgraph("cluster_B")
	b.Node("y")
	b.Edge("y", "x")
	g.Node("z")
	g.Edge("x", "z")

	if got := ids(g.Nodes()); got != "x,y,z" {
		t.Errorf("Nodes() = %s, want x,y,z", got)
	}
	if got := len(g.Edges()); got != 2 {
		t.Errorf("len(Edges()) = %d, want 2", got)
	}
	if subs := g.Subgraphs(); len(subs) != 1 || subs[0].ID != "cluster_A" {
		t.Errorf("Subgraphs() = %v", subs)
	}
	if sub, ok := g.FindSubgraph("cluster_B"); !ok || sub != b {
		t.Error("FindSubgraph(cluster_B) failed")
	}
	if _, ok := g.FindSubgraph("cluster_C"); ok {
		t.Error("FindSubgraph(cluster_C) should fail")
	}
	if n, ok := g.FindNode("y"); !ok || n.ID != "y" {
		t.Error("FindNode(y) failed")
	}
}

func TestWriteToMatchesString(t *testing.T) {
	g := NewGraph("G")
	g.Edge("a", "b")
	var sb strings.Builder
	n, err := g.WriteTo(&sb)
	if err != nil {
		t.Fatal(err)
	}
	if sb.String() != g.String() || int(n) != sb.Len() {
		t.Errorf("WriteTo wrote %d bytes %q, String() = %q", n, sb.String(), g.String())
	}
}

func ids(nodes []*Node) string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.ID
	}
	return strings.Join(out, ",")
}
