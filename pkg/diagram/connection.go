package diagram

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// ErrUnrecognizedConnection is returned by [ParseConnection] when a line does
// not follow the `START ARROW END` grammar.
var ErrUnrecognizedConnection = errors.New("unrecognized connection")

// connectionRe splits a connection line into start, arrow and end.
// Endpoints are identifier characters and dots; the arrow is whatever lies
// between them, surrounded by whitespace.
var connectionRe = regexp.MustCompile(
	`^([\p{L}\p{N}_][\p{L}\p{N}_.]*)\s+(.+?)\s+([\p{L}\p{N}_][\p{L}\p{N}_.]*)$`,
)

// labelDelimiters maps opening to closing delimiters accepted around a label.
var labelDelimiters = map[byte]byte{'[': ']', '(': ')', '{': '}'}

// Connection is a directed edge read from one line of a `connections` block.
// It is an immutable value.
type Connection struct {
	Start string // Start endpoint as written, e.g. "Proc.out"
	End   string // End endpoint as written
	Label string // Label text, empty when the arrow carries none
	Line  int    // Source line (0 if unknown)
}

// ParseConnection parses one connection line such as
//
//	In1 -> Proc
//	Proc --[error]--> Out1
//	Proc -- [error] --> Out1
//	A [data]-> B
//
// The arrow between the endpoints may contain one bracketed label,
// delimited by [], () or {}; everything else in the arrow must be
// punctuation. Errors wrap ErrUnrecognizedConnection.
func ParseConnection(text string) (Connection, error) {
	line := strings.TrimSpace(text)
	m := connectionRe.FindStringSubmatch(line)
	if m == nil {
		return Connection{}, fmt.Errorf("%w: %q", ErrUnrecognizedConnection, line)
	}

	label, ok := parseArrow(m[2])
	if !ok {
		return Connection{}, fmt.Errorf("%w: bad arrow %q in %q", ErrUnrecognizedConnection, m[2], line)
	}

	return Connection{Start: m[1], End: m[3], Label: label}, nil
}

// parseArrow extracts the label from an arrow run. It reports false when the
// arrow contains identifier characters outside the label delimiters or more
// than one delimited label.
func parseArrow(arrow string) (string, bool) {
	if strings.TrimSpace(arrow) == "" {
		return "", false
	}
	open := strings.IndexAny(arrow, "[({")
	if open < 0 {
		return "", !containsIdentChar(arrow)
	}

	closeAt := strings.LastIndexByte(arrow, labelDelimiters[arrow[open]])
	if closeAt < open {
		return "", false
	}

	if containsIdentChar(arrow[:open]) || containsIdentChar(arrow[closeAt+1:]) {
		return "", false
	}
	label := arrow[open+1 : closeAt]
	if strings.ContainsAny(label, "[](){}") {
		return "", false
	}
	return strings.TrimSpace(label), true
}

func containsIdentChar(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool {
		return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
	}) >= 0
}

// SimpleStart returns the last dot-separated segment of Start.
func (c Connection) SimpleStart() string { return lastSegment(c.Start) }

// SimpleEnd returns the last dot-separated segment of End.
func (c Connection) SimpleEnd() string { return lastSegment(c.End) }

// Labeled reports whether the connection carries a label.
func (c Connection) Labeled() bool { return c.Label != "" }

// Key returns the grouping key shared by connections with the same start and label.
func (c Connection) Key() string { return c.Start + "#" + c.Label }

// String formats the connection back into DSL syntax.
func (c Connection) String() string {
	if c.Labeled() {
		return fmt.Sprintf("%s --[%s]--> %s", c.Start, c.Label, c.End)
	}
	return fmt.Sprintf("%s --> %s", c.Start, c.End)
}

func lastSegment(path string) string {
	if i := strings.LastIndexByte(path, '.'); i >= 0 {
		return path[i+1:]
	}
	return path
}

// Group is a set of labeled connections sharing a start endpoint and a label.
// A group with more than one connection is drawn as a fan-out.
type Group struct {
	Key         string
	Start       string
	Label       string
	Connections []Connection
}

// FanOut reports whether the group needs a splitter node.
func (g *Group) FanOut() bool { return len(g.Connections) > 1 }

// Connections is the connection registry of one diagram.
//
// Unlabeled connections are kept in source order and never grouped.
// Labeled connections are grouped by [Connection.Key]; groups keep the order
// in which their key first appeared. The zero value is not usable - use
// NewConnections.
type Connections struct {
	unlabeled []Connection
	groups    map[string]*Group
	order     []*Group
}

// NewConnections creates an empty connection registry.
func NewConnections() *Connections {
	return &Connections{groups: make(map[string]*Group)}
}

// Add registers c.
func (r *Connections) Add(c Connection) {
	if !c.Labeled() {
		r.unlabeled = append(r.unlabeled, c)
		return
	}
	g, ok := r.groups[c.Key()]
	if !ok {
		g = &Group{Key: c.Key(), Start: c.Start, Label: c.Label}
		r.groups[g.Key] = g
		r.order = append(r.order, g)
	}
	g.Connections = append(g.Connections, c)
}

// Unlabeled returns the unlabeled connections in source order.
func (r *Connections) Unlabeled() []Connection { return r.unlabeled }

// Groups returns the labeled connection groups in first-seen order.
func (r *Connections) Groups() []*Group { return r.order }

// Group returns the group for key and true, or nil and false.
func (r *Connections) Group(key string) (*Group, bool) {
	g, ok := r.groups[key]
	return g, ok
}

// All returns every connection: unlabeled ones first, then each group in order.
func (r *Connections) All() []Connection {
	out := make([]Connection, 0, r.Len())
	out = append(out, r.unlabeled...)
	for _, g := range r.order {
		out = append(out, g.Connections...)
	}
	return out
}

// Len returns the total number of registered connections.
func (r *Connections) Len() int {
	n := len(r.unlabeled)
	for _, g := range r.order {
		n += len(g.Connections)
	}
	return n
}
