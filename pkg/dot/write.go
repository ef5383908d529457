package dot

import (
	"bytes"
	"io"
	"regexp"
	"strings"
)

const indentUnit = "    "

var (
	bareIDRe  = regexp.MustCompile(`^[A-Za-z_\x{80}-\x{10FFFF}][A-Za-z0-9_\x{80}-\x{10FFFF}]*$`)
	numeralRe = regexp.MustCompile(`^-?(\.[0-9]+|[0-9]+(\.[0-9]*)?)$`)
	keywords  = map[string]bool{"node": true, "edge": true, "graph": true, "digraph": true, "subgraph": true, "strict": true}
)

// Quote returns s as a DOT identifier: bare when it is a plain identifier or
// numeral, otherwise double-quoted with backslashes, quotes and newlines escaped.
func Quote(s string) string {
	if (bareIDRe.MatchString(s) && !keywords[strings.ToLower(s)]) || numeralRe.MatchString(s) {
		return s
	}
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\r\n", `\n`, "\n", `\n`, "\r", `\n`)
	return `"` + r.Replace(s) + `"`
}

// String serializes the graph.
func (g *Graph) String() string {
	var buf bytes.Buffer
	_, _ = g.WriteTo(&buf)
	return buf.String()
}

// WriteTo serializes the graph to w.
func (g *Graph) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	if g.Strict {
		buf.WriteString("strict ")
	}
	buf.WriteString("digraph ")
	if g.ID != "" {
		buf.WriteString(Quote(g.ID))
		buf.WriteByte(' ')
	}
	buf.WriteString("{\n")
	writeStmts(&buf, g.Stmts, 1)
	buf.WriteString("}\n")
	n, err := w.Write(buf.Bytes())
	return int64(n), err
}

func writeStmts(buf *bytes.Buffer, stmts []Stmt, depth int) {
	indent := strings.Repeat(indentUnit, depth)
	for _, st := range stmts {
		buf.WriteString(indent)
		switch s := st.(type) {
		case *Node:
			buf.WriteString(Quote(s.ID))
			writeAttrs(buf, s.Attrs)
		case *Edge:
			buf.WriteString(Quote(s.From))
			buf.WriteString(" -> ")
			buf.WriteString(Quote(s.To))
			writeAttrs(buf, s.Attrs)
		case *AttrStmt:
			buf.WriteString(s.Kind)
			writeAttrs(buf, s.Attrs)
		case *Assign:
			buf.WriteString(Quote(s.Key))
			buf.WriteByte('=')
			buf.WriteString(Quote(s.Value))
		case *Subgraph:
			buf.WriteString("subgraph ")
			if s.ID != "" {
				buf.WriteString(Quote(s.ID))
				buf.WriteByte(' ')
			}
			buf.WriteString("{\n")
			writeStmts(buf, s.Stmts, depth+1)
			buf.WriteString(indent)
			buf.WriteByte('}')
		}
		buf.WriteByte('\n')
	}
}

func writeAttrs(buf *bytes.Buffer, attrs Attrs) {
	if len(attrs) == 0 {
		return
	}
	buf.WriteString(" [")
	for i, a := range attrs {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(Quote(a.Key))
		buf.WriteByte('=')
		buf.WriteString(Quote(a.Value))
	}
	buf.WriteByte(']')
}
