// Package dot is a small in-memory model of Graphviz DOT documents.
//
// Documents are built as a tree of typed statements ([Node], [Edge],
// [Subgraph], attribute statements) and serialized in one step by
// [Graph.String]. Identifiers and attribute values are quoted and escaped
// during serialization, so labels are written exactly as given.
//
//	g := dot.NewGraph("Top")
//	g.Set("rankdir", "LR")
//	c := g.AddSubgraph("cluster_Top")
//	c.Node("Proc", dot.A("shape", "square"))
//	g.Edge("In1", "Proc", dot.A("label", "data"))
//	fmt.Print(g)
//
// The model only covers what boxaro emits: one directed root graph with
// nested subgraphs. Rendering lives in package render.
package dot
