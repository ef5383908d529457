package dot

// Stmt is a statement inside a graph or subgraph body.
type Stmt interface {
	stmt()
}

// Node declares a node.
type Node struct {
	ID    string
	Attrs Attrs
}

// Edge declares a directed edge.
type Edge struct {
	From  string
	To    string
	Attrs Attrs
}

// AttrStmt sets default attributes for a kind of element: "graph", "node" or "edge".
type AttrStmt struct {
	Kind  string
	Attrs Attrs
}

// Assign is a bare graph attribute assignment such as rankdir=LR.
type Assign struct {
	Key   string
	Value string
}

// Subgraph is a nested block. Ids starting with "cluster" are drawn as
// boxed clusters by Graphviz.
type Subgraph struct {
	ID    string
	Stmts []Stmt
}

func (*Node) stmt()     {}
func (*Edge) stmt()     {}
func (*AttrStmt) stmt() {}
func (*Assign) stmt()   {}
func (*Subgraph) stmt() {}

// Graph is the root of a directed graph document.
type Graph struct {
	Subgraph
	Strict bool
}

// NewGraph creates an empty directed graph.
func NewGraph(id string) *Graph {
	return &Graph{Subgraph: Subgraph{ID: id}}
}

// Add appends statements to the body.
func (s *Subgraph) Add(stmts ...Stmt) { s.Stmts = append(s.Stmts, stmts...) }

// Set appends an assignment key=value.
func (s *Subgraph) Set(key, value string) { s.Add(&Assign{Key: key, Value: value}) }

// Defaults appends an attribute statement for kind ("graph", "node", "edge").
func (s *Subgraph) Defaults(kind string, attrs ...Attr) *AttrStmt {
	a := &AttrStmt{Kind: kind, Attrs: attrs}
	s.Add(a)
	return a
}

// Node appends a node declaration and returns it.
func (s *Subgraph) Node(id string, attrs ...Attr) *Node {
	n := &Node{ID: id, Attrs: attrs}
	s.Add(n)
	return n
}

// Edge appends an edge and returns it.
func (s *Subgraph) Edge(from, to string, attrs ...Attr) *Edge {
	e := &Edge{From: from, To: to, Attrs: attrs}
	s.Add(e)
	return e
}

// AddSubgraph appends a nested subgraph and returns it.
func (s *Subgraph) AddSubgraph(id string) *Subgraph {
	sub := &Subgraph{ID: id}
	s.Add(sub)
	return sub
}

// Walk visits every statement of s and its subgraphs in document order.
// Subgraphs are visited before their own statements.
func (s *Subgraph) Walk(fn func(Stmt)) {
	for _, st := range s.Stmts {
		fn(st)
		if sub, ok := st.(*Subgraph); ok {
			sub.Walk(fn)
		}
	}
}

// Nodes returns every node declaration, recursively, in document order.
func (s *Subgraph) Nodes() []*Node {
	var out []*Node
	s.Walk(func(st Stmt) {
		if n, ok := st.(*Node); ok {
			out = append(out, n)
		}
	})
	return out
}

// Edges returns every edge, recursively, in document order.
func (s *Subgraph) Edges() []*Edge {
	var out []*Edge
	s.Walk(func(st Stmt) {
		if e, ok := st.(*Edge); ok {
			out = append(out, e)
		}
	})
	return out
}

// Subgraphs returns the direct child subgraphs of s.
func (s *Subgraph) Subgraphs() []*Subgraph {
	var out []*Subgraph
	for _, st := range s.Stmts {
		if sub, ok := st.(*Subgraph); ok {
			out = append(out, sub)
		}
	}
	return out
}

// FindSubgraph returns the subgraph with the given id, searching recursively.
func (s *Subgraph) FindSubgraph(id string) (*Subgraph, bool) {
	var found *Subgraph
	s.Walk(func(st Stmt) {
		if sub, ok := st.(*Subgraph); ok && found == nil && sub.ID == id {
			found = sub
		}
	})
	return found, found != nil
}

// FindNode returns the first declaration of the node id, searching recursively.
func (s *Subgraph) FindNode(id string) (*Node, bool) {
	for _, n := range s.Nodes() {
		if n.ID == id {
			return n, true
		}
	}
	return nil, false
}
