package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/rchuk/markerml/internal/ast"
	"github.com/rchuk/markerml/internal/source"
)

// FormatModulePretty dumps the syntax tree in an indented,
// human-readable form with resolved positions.
func FormatModulePretty(w io.Writer, m *ast.Module, fs *source.FileSet) error {
	p := astPrinter{w: w, fs: fs}
	p.printf(0, "module %s", p.pos(m.Span))
	for _, item := range m.Items {
		switch it := item.(type) {
		case *ast.Component:
			p.component(1, it)
		case *ast.ComponentDefinition:
			p.definition(1, it)
		}
	}
	return nil
}

type astPrinter struct {
	w  io.Writer
	fs *source.FileSet
}

func (p *astPrinter) printf(indent int, format string, args ...any) {
	fmt.Fprintf(p.w, "%s%s\n", strings.Repeat("  ", indent), fmt.Sprintf(format, args...))
}

func (p *astPrinter) pos(sp source.Span) string {
	start, end := p.fs.Resolve(sp)
	return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
}

func (p *astPrinter) component(indent int, c *ast.Component) {
	p.printf(indent, "component '%s' %s", c.Name.Name, p.pos(c.Span))
	if c.Properties != nil {
		p.printf(indent+1, "properties %s", p.pos(c.Properties.Span))
		if c.Properties.Default != nil {
			p.printf(indent+2, "default = %s", formatValue(c.Properties.Default))
		}
		for _, prop := range c.Properties.List {
			if prop.IsFlag() {
				p.printf(indent+2, "flag '%s'", prop.Key.Name)
			} else {
				p.printf(indent+2, "'%s' = %s", prop.Key.Name, formatValue(prop.Value))
			}
		}
	}
	if c.Text != nil {
		p.printf(indent+1, "text %s", formatSegments(c.Text.Segments))
	}
	if c.Children != nil {
		p.printf(indent+1, "children %s", p.pos(c.Children.Span))
		for _, child := range c.Children.List {
			p.component(indent+2, child)
		}
	}
}

func (p *astPrinter) definition(indent int, def *ast.ComponentDefinition) {
	p.printf(indent, "definition '%s' %s", def.Name.Name, p.pos(def.Span))
	if def.Properties != nil {
		p.printf(indent+1, "declarations %s", p.pos(def.Properties.Span))
		for _, decl := range def.Properties.List {
			p.declaration(indent+2, decl)
		}
	}
	if def.Children != nil {
		p.printf(indent+1, "children %s", p.pos(def.Children.Span))
		for _, child := range def.Children.List {
			p.component(indent+2, child)
		}
	}
}

func (p *astPrinter) declaration(indent int, decl ast.PropertyDefinition) {
	switch decl.Kind {
	case ast.TextDef:
		p.printf(indent, "text '%s'", decl.Name.Name)
		return
	case ast.DefaultDef:
		p.printf(indent, "default '%s': %s", decl.Name.Name, formatType(decl.Type))
	case ast.NamedDef:
		if decl.DefaultValue != nil {
			p.printf(indent, "'%s': %s = %s", decl.Name.Name, formatType(decl.Type), formatValue(decl.DefaultValue))
		} else {
			p.printf(indent, "'%s': %s", decl.Name.Name, formatType(decl.Type))
		}
	}
}

func formatType(t *ast.Type) string {
	if t == nil {
		return "?"
	}
	return t.Kind.String()
}

func formatValue(v ast.Value) string {
	switch val := v.(type) {
	case *ast.IntegerValue:
		return fmt.Sprintf("int(%d)", val.Value)
	case *ast.BoolValue:
		return fmt.Sprintf("bool(%t)", val.Value)
	case *ast.VariableValue:
		return fmt.Sprintf("var(%s)", val.Name.Name)
	case *ast.StringValue:
		return "string(" + formatSegments(val.Segments) + ")"
	}
	return "?"
}

func formatSegments(segs []ast.InterpolationSegment) string {
	if len(segs) == 0 {
		return `""`
	}
	parts := make([]string, 0, len(segs))
	for _, seg := range segs {
		if seg.IsVariable() {
			parts = append(parts, "${"+seg.Variable.Name+"}")
		} else {
			parts = append(parts, fmt.Sprintf("%q", seg.Literal))
		}
	}
	return strings.Join(parts, " ")
}
