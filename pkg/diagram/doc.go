// Package diagram holds the in-memory model of a boxaro document: boxes,
// connections and the registries that index them.
//
// # Overview
//
// A [Box] is a named component. It may declare input and output ports and
// own child boxes; a box with any of these is a container and is rendered as
// a Graphviz cluster, otherwise it is a leaf node. A [Connection] is a
// directed, optionally labeled edge between two endpoints written as dotted
// paths (`box.port`); only the last segment is used for rendering.
//
// # Registries
//
// A [Diagram] owns one [Boxes] registry and one [Connections] registry.
// Every conversion builds its own Diagram, so nothing leaks between runs:
//
//	d := diagram.New()
//	top := diagram.NewBox("Top")
//	_ = d.Boxes.Add(top)
//	d.TopName = top.Name
//
//	c, err := diagram.ParseConnection("In1 --[data]--> Proc")
//	if err == nil {
//	    d.Connections.Add(c)
//	}
//
// Box names form one flat namespace regardless of nesting. Labeled
// connections are grouped by [Connection.Key] so that several connections
// sharing a start and a label can be drawn as one fan-out.
package diagram
