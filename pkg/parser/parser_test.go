package parser

import (
	"reflect"
	"strings"
	"testing"

	"github.com/vpoulailleau/boxaro/pkg/diagram"
	bxerrors "github.com/vpoulailleau/boxaro/pkg/errors"
)

const topExample = `box Top
    inputs
        In1
    outputs
        Out1
    box Proc
    connections
        In1 --> Proc
        Proc -- [error] --> Out1
`

func mustParse(t *testing.T, src string, opts ...Option) *Result {
	t.Helper()
	res, err := ParseString(src, opts...)
	if err != nil {
		t.Fatalf("ParseString() error: %v", err)
	}
	return res
}

func TestParseTopExample(t *testing.T) {
	res := mustParse(t, topExample)
	if len(res.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", res.Diagnostics)
	}

	d := res.Diagram
	top, err := d.Top()
	if err != nil {
		t.Fatalf("Top() error: %v", err)
	}
	if top.Name != "Top" || !top.Top {
		t.Errorf("top = %q (Top=%v), want Top marked as top", top.Name, top.Top)
	}
	if !reflect.DeepEqual(top.Inputs, []string{"In1"}) {
		t.Errorf("Inputs = %v, want [In1]", top.Inputs)
	}
	if !reflect.DeepEqual(top.Outputs, []string{"Out1"}) {
		t.Errorf("Outputs = %v, want [Out1]", top.Outputs)
	}
	if len(top.Children) != 1 || top.Children[0].Name != "Proc" {
		t.Fatalf("Children = %v, want [Proc]", top.Children)
	}
	proc := top.Children[0]
	if proc.IsContainer() {
		t.Error("Proc should be a leaf")
	}
	if !proc.DirectConnections {
		t.Error("Proc is a connection endpoint and should be marked")
	}
	if proc.Line != 6 {
		t.Errorf("Proc.Line = %d, want 6", proc.Line)
	}

	unlabeled := d.Connections.Unlabeled()
	if len(unlabeled) != 1 || unlabeled[0].Start != "In1" || unlabeled[0].End != "Proc" {
		t.Errorf("Unlabeled() = %v, want [In1 --> Proc]", unlabeled)
	}
	if unlabeled[0].Line != 8 {
		t.Errorf("connection line = %d, want 8", unlabeled[0].Line)
	}
	groups := d.Connections.Groups()
	if len(groups) != 1 || groups[0].Label != "error" || groups[0].Connections[0].End != "Out1" {
		t.Errorf("Groups() = %v, want one group labeled error ending at Out1", groups)
	}
}

func TestParseNesting(t *testing.T) {
	src := `box System
    label The system
    box Sub
        inputs
            a
            b
        box Leaf1
            shape ellipse
        box Leaf2
            label Second leaf
    box Other
        shape point
`
	res := mustParse(t, src)
	if len(res.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", res.Diagnostics)
	}
	d := res.Diagram

	top, _ := d.Top()
	if top.Label() != "The system" {
		t.Errorf("top label = %q", top.Label())
	}
	if got := names(top.Children); got != "Sub,Other" {
		t.Errorf("top children = %s, want Sub,Other", got)
	}

	sub, _ := d.Boxes.Get("Sub")
	if got := names(sub.Children); got != "Leaf1,Leaf2" {
		t.Errorf("Sub children = %s, want Leaf1,Leaf2", got)
	}
	if !reflect.DeepEqual(sub.Inputs, []string{"a", "b"}) {
		t.Errorf("Sub inputs = %v", sub.Inputs)
	}

	leaf1, _ := d.Boxes.Get("Leaf1")
	if leaf1.Shape != diagram.ShapeEllipse {
		t.Errorf("Leaf1 shape = %q, want ellipse", leaf1.Shape)
	}
	leaf2, _ := d.Boxes.Get("Leaf2")
	if leaf2.Label() != "Second leaf" || leaf2.Shape != diagram.ShapeSquare {
		t.Errorf("Leaf2 = %q/%q", leaf2.Label(), leaf2.Shape)
	}
	other, _ := d.Boxes.Get("Other")
	if other.Shape != diagram.ShapePoint {
		t.Errorf("Other shape = %q, want point", other.Shape)
	}
	if d.Boxes.Len() != 5 {
		t.Errorf("Boxes.Len() = %d, want 5", d.Boxes.Len())
	}
}

func TestParseTabsEqualFourSpaces(t *testing.T) {
	spaces := "box Top\n    box A\n        inputs\n            x\n    box B\n"
	tabs := "box Top\n\tbox A\n\t\tinputs\n\t\t\tx\n\tbox B\n"
	mixed := "box Top\n    box A\n\t    inputs\n\t\t\tx\n\tbox B\n"

	want := dump(mustParse(t, spaces).Diagram)
	for name, src := range map[string]string{"tabs": tabs, "mixed": mixed} {
		if got := dump(mustParse(t, src).Diagram); got != want {
			t.Errorf("%s: got\n%s\nwant\n%s", name, got, want)
		}
	}
}

func TestParseTabWidth(t *testing.T) {
	// With a tab of two spaces, "\t" is as deep as "  " and closes box A.
	src := "box Top\n  box A\n\tbox B\n"
	res := mustParse(t, src, WithTabWidth(2))
	top, _ := res.Diagram.Top()
	if got := names(top.Children); got != "A,B" {
		t.Errorf("children = %s, want A,B", got)
	}
}

func TestParseDeterministic(t *testing.T) {
	src := topExample + "        A --[x]--> B\n        A --[x]--> C\n"
	first := mustParse(t, src)
	second := mustParse(t, src)

	if dump(first.Diagram) != dump(second.Diagram) {
		t.Error("box trees differ between two parses")
	}
	if !reflect.DeepEqual(first.Diagram.Connections.All(), second.Diagram.Connections.All()) {
		t.Error("connections differ between two parses")
	}
	if first.Diagram.Boxes == second.Diagram.Boxes {
		t.Error("parses share a registry")
	}
}

func TestParseBlankLinesIgnored(t *testing.T) {
	src := "\nbox Top\n\n    inputs\n   \n        In1\n\n"
	res := mustParse(t, src)
	top, _ := res.Diagram.Top()
	if !reflect.DeepEqual(top.Inputs, []string{"In1"}) {
		t.Errorf("Inputs = %v, want [In1]", top.Inputs)
	}
}

func TestParseCRLF(t *testing.T) {
	res := mustParse(t, strings.ReplaceAll(topExample, "\n", "\r\n"))
	if res.Diagram.Boxes.Len() != 2 || res.Diagram.Connections.Len() != 2 {
		t.Errorf("stats = %v", res.Diagram.Stats())
	}
}

func TestParseDiagnostics(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		wantLine int
		wantCode bxerrors.Code
		wantSev  Severity
	}{
		{
			name:     "bad connection",
			src:      "box Top\n    connections\n        A B\n",
			wantLine: 3,
			wantCode: bxerrors.ErrCodeInvalidConnection,
			wantSev:  SeverityError,
		},
		{
			name:     "label under inputs",
			src:      "box Top\n    inputs\n        label oops\n",
			wantLine: 3,
			wantCode: bxerrors.ErrCodeMalformedScope,
			wantSev:  SeverityError,
		},
		{
			name:     "inputs under connections",
			src:      "box Top\n    connections\n        inputs\n            x\n",
			wantLine: 3,
			wantCode: bxerrors.ErrCodeMalformedScope,
			wantSev:  SeverityError,
		},
		{
			name:     "stray leaf line",
			src:      "box Top\n    something\n",
			wantLine: 2,
			wantCode: bxerrors.ErrCodeMalformedScope,
			wantSev:  SeverityError,
		},
		{
			name:     "unknown shape",
			src:      "box Top\n    box A\n        shape hexagon\n",
			wantLine: 3,
			wantCode: bxerrors.ErrCodeInvalidShape,
			wantSev:  SeverityWarning,
		},
		{
			name:     "duplicate box",
			src:      "box Top\n    box A\n    box A\n",
			wantLine: 3,
			wantCode: bxerrors.ErrCodeDuplicateBox,
			wantSev:  SeverityError,
		},
		{
			name:     "dotted box name",
			src:      "box Top\n    box a.b\n",
			wantLine: 2,
			wantCode: bxerrors.ErrCodeInvalidName,
			wantSev:  SeverityError,
		},
		{
			name:     "second root",
			src:      "box Top\nbox Other\n",
			wantLine: 2,
			wantCode: bxerrors.ErrCodeMalformedScope,
			wantSev:  SeverityError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := mustParse(t, tt.src)
			if len(res.Diagnostics) == 0 {
				t.Fatal("expected a diagnostic")
			}
			d := res.Diagnostics[0]
			if d.Line != tt.wantLine || d.Code() != tt.wantCode || d.Severity != tt.wantSev {
				t.Errorf("diagnostic = line %d %s %s, want line %d %s %s",
					d.Line, d.Code(), d.Severity, tt.wantLine, tt.wantCode, tt.wantSev)
			}
			if d.Text == "" || !strings.Contains(d.String(), d.Text) {
				t.Errorf("String() = %q should quote the offending text", d.String())
			}
		})
	}
}

func TestParseBadConnectionIsDropped(t *testing.T) {
	src := "box Top\n    connections\n        A --> B\n        A ?? \n        B --> C\n"
	res := mustParse(t, src)
	if got := res.Diagram.Connections.Len(); got != 2 {
		t.Errorf("Connections.Len() = %d, want 2", got)
	}
	if len(res.Errors()) != 1 {
		t.Errorf("Errors() = %v, want one", res.Errors())
	}
}

func TestParseUnknownShapeKeepsDefault(t *testing.T) {
	res := mustParse(t, "box Top\n    box A\n        shape hexagon\n")
	a, _ := res.Diagram.Boxes.Get("A")
	if a.Shape != diagram.DefaultShape {
		t.Errorf("shape = %q, want default", a.Shape)
	}
	if res.HasErrors() {
		t.Error("unknown shape should only warn")
	}
}

func TestParseDuplicateBoxIsDetached(t *testing.T) {
	src := "box Top\n    box A\n    box A\n        box Inner\n"
	res := mustParse(t, src)
	top, _ := res.Diagram.Top()
	if got := names(top.Children); got != "A" {
		t.Errorf("top children = %s, want A", got)
	}
	a, _ := res.Diagram.Boxes.Get("A")
	if len(a.Children) != 0 {
		t.Errorf("registered A gained children from its duplicate: %v", a.Children)
	}
	if _, ok := res.Diagram.Boxes.Get("Inner"); !ok {
		t.Error("Inner should still be registered")
	}
}

func TestParseStrict(t *testing.T) {
	src := "box Top\n    connections\n        A B\n"
	res, err := ParseString(src, WithStrict(true))
	if !bxerrors.Is(err, bxerrors.ErrCodeInvalidInput) {
		t.Fatalf("strict error = %v, want INVALID_INPUT", err)
	}
	if res == nil || len(res.Diagnostics) != 1 {
		t.Error("strict failure should still return the diagnostics")
	}

	if _, err := ParseString("box Top\n    box A\n        shape blob\n", WithStrict(true)); err != nil {
		t.Errorf("warnings should not fail strict mode: %v", err)
	}
}

func TestParseNoBox(t *testing.T) {
	for _, src := range []string{"", "\n\n", "connections\n    A --> B\n"} {
		_, err := ParseString(src)
		if !bxerrors.Is(err, bxerrors.ErrCodeUnknownBox) {
			t.Errorf("ParseString(%q) error = %v, want UNKNOWN_BOX", src, err)
		}
	}
}

func TestParseReader(t *testing.T) {
	res, err := ParseReader(strings.NewReader(topExample))
	if err != nil {
		t.Fatalf("ParseReader() error: %v", err)
	}
	if res.Diagram.TopName != "Top" {
		t.Errorf("TopName = %q", res.Diagram.TopName)
	}
}

func TestStackCloseTo(t *testing.T) {
	var s stack
	s.push(boxFrame{indent: 0, box: diagram.NewBox("Top")})
	s.push(portFrame{indent: 4, kind: portInputs})
	s.push(connectionsFrame{indent: 8})

	s.closeTo(8)
	if len(s) != 2 {
		t.Fatalf("closeTo(8) left %d frames, want 2", len(s))
	}
	s.closeTo(5)
	if len(s) != 2 {
		t.Errorf("closeTo(5) left %d frames, want 2", len(s))
	}
	s.closeTo(4)
	if _, ok := s.top().(boxFrame); !ok || len(s) != 1 {
		t.Errorf("closeTo(4) top = %v", s.top())
	}
	if s.enclosingBox().Name != "Top" {
		t.Error("enclosingBox() should find Top")
	}
	s.closeTo(0)
	if s.top() != nil || s.enclosingBox() != nil {
		t.Error("stack should be empty")
	}
}

func names(boxes []*diagram.Box) string {
	out := make([]string, len(boxes))
	for i, b := range boxes {
		out[i] = b.Name
	}
	return strings.Join(out, ",")
}

func dump(d *diagram.Diagram) string {
	var sb strings.Builder
	for _, b := range d.Boxes.All() {
		sb.WriteString(b.String())
	}
	return sb.String()
}
