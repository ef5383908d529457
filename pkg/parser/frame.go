package parser

import (
	"fmt"
	"strings"

	"github.com/vpoulailleau/boxaro/pkg/diagram"
)

// frame is one open scope on the indentation stack.
type frame interface {
	depth() int
	String() string
}

// boxFrame is opened by a `box` line.
type boxFrame struct {
	indent int
	box    *diagram.Box
}

// portKind tells input and output blocks apart.
type portKind int

const (
	portInputs portKind = iota
	portOutputs
)

func (k portKind) String() string {
	if k == portOutputs {
		return "outputs"
	}
	return "inputs"
}

// portFrame is opened by an `inputs` or `outputs` line. owner is nil when
// the block was not directly inside a box.
type portFrame struct {
	indent int
	kind   portKind
	owner  *diagram.Box
}

// connectionsFrame is opened by a `connections` line.
type connectionsFrame struct {
	indent int
}

func (f boxFrame) depth() int         { return f.indent }
func (f portFrame) depth() int        { return f.indent }
func (f connectionsFrame) depth() int { return f.indent }

func (f boxFrame) String() string { return fmt.Sprintf("box %s@%d", f.box.Name, f.indent) }

func (f portFrame) String() string {
	if f.owner == nil {
		return fmt.Sprintf("%s@%d", f.kind, f.indent)
	}
	return fmt.Sprintf("%s(%s)@%d", f.kind, f.owner.Name, f.indent)
}

func (f connectionsFrame) String() string { return fmt.Sprintf("connections@%d", f.indent) }

// stack is the parser's scope stack, innermost frame last.
type stack []frame

func (s *stack) push(f frame) { *s = append(*s, f) }

// closeTo pops every frame at least as indented as depth.
func (s *stack) closeTo(depth int) {
	for len(*s) > 0 && (*s)[len(*s)-1].depth() >= depth {
		*s = (*s)[:len(*s)-1]
	}
}

func (s stack) top() frame {
	if len(s) == 0 {
		return nil
	}
	return s[len(s)-1]
}

// enclosingBox returns the box of the innermost box frame, or nil.
func (s stack) enclosingBox() *diagram.Box {
	for i := len(s) - 1; i >= 0; i-- {
		if f, ok := s[i].(boxFrame); ok {
			return f.box
		}
	}
	return nil
}

func (s stack) String() string {
	parts := make([]string, len(s))
	for i, f := range s {
		parts[i] = f.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}
