package parser

import (
	"bufio"
	"errors"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/vpoulailleau/boxaro/pkg/diagram"
	bxerrors "github.com/vpoulailleau/boxaro/pkg/errors"
)

// DefaultTabWidth is the number of spaces a tab counts for.
const DefaultTabWidth = 4

// Keywords recognized as the first token of a line.
const (
	kwBox         = "box"
	kwInputs      = "inputs"
	kwOutputs     = "outputs"
	kwConnections = "connections"
	kwLabel       = "label"
	kwShape       = "shape"
)

// Option configures a parse.
type Option func(*parser)

// WithLogger traces every line and the scope stack at debug level.
func WithLogger(l *log.Logger) Option {
	return func(p *parser) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithTabWidth sets how many spaces a tab counts for. Values below 1 are ignored.
func WithTabWidth(n int) Option {
	return func(p *parser) {
		if n > 0 {
			p.tabWidth = n
		}
	}
}

// WithStrict makes Parse fail when any error-severity diagnostic is reported.
func WithStrict(strict bool) Option { return func(p *parser) { p.strict = strict } }

type parser struct {
	logger   *log.Logger
	tabWidth int
	strict   bool

	d     *diagram.Diagram
	scope stack
	diags []Diagnostic

	lineNo int
	text   string
}

// Parse builds a diagram from lines. Each line is one source line without
// its terminator; blank lines are skipped.
//
// The returned error is non-nil only for whole-document failures: a document
// without any box, or error diagnostics in strict mode. Line-level problems
// are reported in Result.Diagnostics.
func Parse(lines []string, opts ...Option) (*Result, error) {
	p := &parser{
		logger:   log.New(io.Discard),
		tabWidth: DefaultTabWidth,
		d:        diagram.New(),
	}
	for _, opt := range opts {
		opt(p)
	}

	tab := strings.Repeat(" ", p.tabWidth)
	for i, raw := range lines {
		p.lineNo = i + 1
		p.line(strings.ReplaceAll(raw, "\t", tab))
	}
	p.d.ResolveDirectConnections()

	res := &Result{Diagram: p.d, Diagnostics: p.diags}
	if p.d.TopName == "" {
		return res, bxerrors.New(bxerrors.ErrCodeUnknownBox, "no box declared")
	}
	if p.strict {
		if errs := res.Errors(); len(errs) > 0 {
			return res, bxerrors.New(bxerrors.ErrCodeInvalidInput,
				"%d error(s), first at %s", len(errs), errs[0])
		}
	}
	return res, nil
}

// ParseString parses a whole document.
func ParseString(src string, opts ...Option) (*Result, error) {
	return Parse(SplitLines(src), opts...)
}

// ParseReader reads r to the end and parses it. r must yield UTF-8 text.
func ParseReader(r io.Reader, opts ...Option) (*Result, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, bxerrors.Wrap(bxerrors.ErrCodeInvalidInput, err, "read source")
	}
	return Parse(lines, opts...)
}

// SplitLines splits src on "\n", "\r\n" and "\r".
func SplitLines(src string) []string {
	src = strings.ReplaceAll(src, "\r\n", "\n")
	src = strings.ReplaceAll(src, "\r", "\n")
	return strings.Split(src, "\n")
}

func indentOf(line string) int {
	rest := strings.TrimLeftFunc(line, unicode.IsSpace)
	return utf8.RuneCountInString(line[:len(line)-len(rest)])
}

func (p *parser) line(line string) {
	text := strings.TrimSpace(line)
	if text == "" {
		return
	}
	p.text = text
	depth := indentOf(line)
	p.scope.closeTo(depth)

	fields := strings.Fields(text)
	rest := strings.TrimSpace(strings.TrimPrefix(text, fields[0]))

	switch fields[0] {
	case kwBox:
		p.box(rest, depth)
	case kwInputs:
		p.ports(portInputs, depth)
	case kwOutputs:
		p.ports(portOutputs, depth)
	case kwConnections:
		p.scope.push(connectionsFrame{indent: depth})
	case kwLabel:
		if b := p.currentBox(); b != nil {
			b.SetLabel(rest)
		}
	case kwShape:
		if b := p.currentBox(); b != nil {
			p.shape(b, rest)
		}
	default:
		p.leaf(text)
	}

	p.logger.Debug("line", "n", p.lineNo, "depth", depth, "text", text, "stack", p.scope.String())
}

func (p *parser) box(name string, depth int) {
	b := diagram.NewBox(name)
	b.Line = p.lineNo
	parent := p.scope.enclosingBox()
	p.scope.push(boxFrame{indent: depth, box: b})

	if err := bxerrors.ValidateBoxName(name); err != nil {
		p.report(SeverityError, err)
		return
	}
	if err := p.d.Boxes.Add(b); err != nil {
		if errors.Is(err, diagram.ErrDuplicateBox) {
			p.report(SeverityError, bxerrors.New(bxerrors.ErrCodeDuplicateBox, "box %q already declared", name))
		} else {
			p.report(SeverityError, bxerrors.Wrap(bxerrors.ErrCodeInvalidName, err, "register box"))
		}
		return
	}

	switch {
	case parent != nil:
		parent.AddChild(b)
	case p.d.TopName == "":
		b.Top = true
		p.d.TopName = name
		p.logger.Debug("top-level box", "name", name)
	default:
		p.report(SeverityError, bxerrors.New(bxerrors.ErrCodeMalformedScope,
			"box %q is outside the top-level box %q", name, p.d.TopName))
	}
}

func (p *parser) ports(kind portKind, depth int) {
	var owner *diagram.Box
	if f, ok := p.scope.top().(boxFrame); ok {
		owner = f.box
	} else {
		p.report(SeverityError, bxerrors.New(bxerrors.ErrCodeMalformedScope, "%s block outside a box", kind))
	}
	p.scope.push(portFrame{indent: depth, kind: kind, owner: owner})
}

// currentBox returns the box of the innermost frame, reporting a malformed
// scope when that frame is not a box.
func (p *parser) currentBox() *diagram.Box {
	if f, ok := p.scope.top().(boxFrame); ok {
		return f.box
	}
	p.report(SeverityError, bxerrors.New(bxerrors.ErrCodeMalformedScope, "attribute outside a box"))
	return nil
}

func (p *parser) shape(b *diagram.Box, name string) {
	s, ok := diagram.ParseShape(name)
	if !ok {
		p.report(SeverityWarning, bxerrors.New(bxerrors.ErrCodeInvalidShape,
			"unknown shape %q, using %s", name, diagram.DefaultShape))
	}
	b.Shape = s
}

func (p *parser) leaf(text string) {
	switch f := p.scope.top().(type) {
	case portFrame:
		if f.owner == nil {
			p.report(SeverityError, bxerrors.New(bxerrors.ErrCodeMalformedScope, "port without an owning box"))
			return
		}
		if f.kind == portInputs {
			f.owner.Inputs = append(f.owner.Inputs, text)
		} else {
			f.owner.Outputs = append(f.owner.Outputs, text)
		}
	case connectionsFrame:
		c, err := diagram.ParseConnection(text)
		if err != nil {
			p.report(SeverityError, bxerrors.Wrap(bxerrors.ErrCodeInvalidConnection, err, "connection dropped"))
			return
		}
		c.Line = p.lineNo
		p.d.Connections.Add(c)
	default:
		p.report(SeverityError, bxerrors.New(bxerrors.ErrCodeMalformedScope, "line is not inside inputs, outputs or connections"))
	}
}

func (p *parser) report(sev Severity, err error) {
	d := Diagnostic{Line: p.lineNo, Text: p.text, Severity: sev, Err: err}
	p.diags = append(p.diags, d)
	if sev == SeverityError {
		p.logger.Error(bxerrors.UserMessage(err), "line", p.lineNo, "text", p.text)
	} else {
		p.logger.Warn(bxerrors.UserMessage(err), "line", p.lineNo, "text", p.text)
	}
}
