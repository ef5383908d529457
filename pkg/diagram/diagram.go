package diagram

import (
	"fmt"

	bxerrors "github.com/vpoulailleau/boxaro/pkg/errors"
)

// Diagram is the parsed form of one document: a box registry, a connection
// registry and the name of the top-level box.
//
// A Diagram is built by a single parse and then only read. It is not safe
// for concurrent mutation.
type Diagram struct {
	Boxes       *Boxes
	Connections *Connections
	TopName     string
}

// New creates an empty diagram.
func New() *Diagram {
	return &Diagram{
		Boxes:       NewBoxes(),
		Connections: NewConnections(),
	}
}

// Top returns the top-level box. It fails with an UNKNOWN_BOX error when no
// box was declared or the recorded name is not registered.
func (d *Diagram) Top() (*Box, error) {
	if d.TopName == "" {
		return nil, bxerrors.New(bxerrors.ErrCodeUnknownBox, "no top-level box declared")
	}
	b, ok := d.Boxes.Get(d.TopName)
	if !ok {
		return nil, bxerrors.New(bxerrors.ErrCodeUnknownBox, "top-level box %q not found", d.TopName)
	}
	return b, nil
}

// ResolveDirectConnections marks every box whose name is the simple start or
// end of a connection. Ports are not boxes, so connections between ports
// leave their boxes unmarked.
func (d *Diagram) ResolveDirectConnections() {
	for _, c := range d.Connections.All() {
		if b, ok := d.Boxes.Get(c.SimpleStart()); ok {
			b.DirectConnections = true
		}
		if b, ok := d.Boxes.Get(c.SimpleEnd()); ok {
			b.DirectConnections = true
		}
	}
}

// Endpoint resolves a simple endpoint name to the node id an edge should
// use, and the cluster id to clip the edge at when the endpoint is a
// container box (empty otherwise).
func (d *Diagram) Endpoint(simple string) (node, cluster string) {
	b, ok := d.Boxes.Get(simple)
	if !ok || !b.IsContainer() {
		return simple, ""
	}
	return b.ConnectionName(), b.ClusterID()
}

// Stats summarizes the diagram for logging.
type Stats struct {
	Boxes       int
	Containers  int
	Leaves      int
	Connections int
	Groups      int
}

// Stats counts boxes and connections.
func (d *Diagram) Stats() Stats {
	s := Stats{
		Boxes:       d.Boxes.Len(),
		Connections: d.Connections.Len(),
		Groups:      len(d.Connections.Groups()),
	}
	for _, b := range d.Boxes.All() {
		if b.IsContainer() {
			s.Containers++
		} else {
			s.Leaves++
		}
	}
	return s
}

// String returns a short description such as "4 boxes, 3 connections".
func (s Stats) String() string {
	return fmt.Sprintf("%d boxes, %d connections", s.Boxes, s.Connections)
}
