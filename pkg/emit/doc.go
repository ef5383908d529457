// Package emit turns a parsed [diagram.Diagram] into a Graphviz document.
//
// Container boxes (boxes with ports or children) become clusters and leaf
// boxes become filled nodes. Connections are emitted after the box tree:
// unlabeled connections first, then labeled groups. A group of several
// connections sharing a start and a label is drawn through a zero-size
// splitter node so the label appears once.
//
// When a connection names a container box instead of one of its ports, the
// edge is attached to an invisible anchor node inside the cluster and
// clipped at the cluster border with ltail/lhead. Invisible weighted edges
// then tie the container's ports to the anchor to keep them aligned.
//
//	g, err := emit.Emit(d, emit.DefaultOptions())
//	if err != nil {
//	    return err
//	}
//	fmt.Print(g)
package emit
