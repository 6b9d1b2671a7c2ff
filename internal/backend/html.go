// Package backend renders the lowered IR to an HTML page. Built-in
// component names map onto HTML constructs; custom components (those
// introduced by component definitions) are not expanded yet and are
// reported as errors. Interpolated variables have no binding source at
// render time and flatten to empty strings.
package backend

import (
	"fmt"
	"html"
	"strings"

	"github.com/rchuk/markerml/internal/diag"
	"github.com/rchuk/markerml/internal/ir"
)

type generator struct {
	defs map[string]ir.ComponentDefinition
}

// Generate renders the module as a complete HTML document. Top-level
// components land inside a <main> element in source order.
func Generate(mod *ir.Module) (string, *diag.Diagnostic) {
	g := &generator{defs: mod.Definitions}
	var b strings.Builder
	b.WriteString(`<!DOCTYPE html><html><head><meta charset="utf-8"></head><body><main>`)
	for i := range mod.Components {
		if err := g.emitComponent(&b, &mod.Components[i]); err != nil {
			return "", err
		}
	}
	b.WriteString(`</main></body></html>`)
	return b.String(), nil
}

func (g *generator) emitComponent(b *strings.Builder, c *ir.Component) *diag.Diagnostic {
	switch c.Name.Name {
	case "box":
		return g.emitBox(b, c)
	case "@":
		text, err := componentText(c)
		if err != nil {
			return err
		}
		b.WriteString("<span>")
		b.WriteString(html.EscapeString(text))
		b.WriteString("</span>")
	case "#":
		return g.emitLink(b, c)
	case "paragraph":
		text, err := componentText(c)
		if err != nil {
			return err
		}
		b.WriteString("<p>")
		b.WriteString(html.EscapeString(text))
		b.WriteString("</p>")
	case "header":
		return g.emitHeader(b, c)
	case "image":
		src, err := requireString(c, "src")
		if err != nil {
			return err
		}
		fmt.Fprintf(b, `<img src="%s">`, html.EscapeString(src))
	case "list":
		return g.emitList(b, c)
	default:
		return g.unknownComponent(c)
	}
	return nil
}

// emitBox renders a flex container. Boxes lay out vertically unless
// the horizontal flag is set; x_align/y_align translate to
// justify-content/align-items depending on the direction.
func (g *generator) emitBox(b *strings.Builder, c *ir.Component) *diag.Diagnostic {
	vertical := c.Properties.HasFlag("vertical")
	horizontal := c.Properties.HasFlag("horizontal")
	if vertical && horizontal {
		return conflictingFlags(c, "vertical", "horizontal")
	}

	xAlign, err := optionalAlign(c, "x_align")
	if err != nil {
		return err
	}
	yAlign, err := optionalAlign(c, "y_align")
	if err != nil {
		return err
	}

	direction := "column"
	justify, alignItems := yAlign, xAlign
	if horizontal {
		direction = "row"
		justify, alignItems = xAlign, yAlign
	}

	style := "display: flex; flex-direction: " + direction
	if justify != "" {
		style += "; justify-content: " + justify
	}
	if alignItems != "" {
		style += "; align-items: " + alignItems
	}

	fmt.Fprintf(b, `<div style="%s">`, style)
	for i := range c.Children {
		if err := g.emitComponent(b, &c.Children[i]); err != nil {
			return err
		}
	}
	b.WriteString("</div>")
	return nil
}

func (g *generator) emitLink(b *strings.Builder, c *ir.Component) *diag.Diagnostic {
	href, err := requireString(c, "url")
	if err != nil {
		return err
	}
	text, err := componentText(c)
	if err != nil {
		return err
	}
	fmt.Fprintf(b, `<a href="%s">%s</a>`, html.EscapeString(href), html.EscapeString(text))
	return nil
}

func (g *generator) emitHeader(b *strings.Builder, c *ir.Component) *diag.Diagnostic {
	text, err := componentText(c)
	if err != nil {
		return err
	}
	level := int64(1)
	if v, ok := defaultOrNamed(c, "level"); ok {
		level, err = castInt(v)
		if err != nil {
			return err
		}
		if level < 1 || level > 6 {
			d := diag.NewError(diag.GenInvalidPropertyValue, v.GetSpan(),
				fmt.Sprintf("header level must be between 1 and 6, got %d", level))
			return &d
		}
	}
	fmt.Fprintf(b, "<h%d>%s</h%d>", level, html.EscapeString(text), level)
	return nil
}

// emitList renders an unordered list unless the ordered flag is set;
// every child is wrapped in its own <li>.
func (g *generator) emitList(b *strings.Builder, c *ir.Component) *diag.Diagnostic {
	unordered := c.Properties.HasFlag("unordered")
	ordered := c.Properties.HasFlag("ordered")
	if unordered && ordered {
		return conflictingFlags(c, "unordered", "ordered")
	}

	tag := "ul"
	if ordered {
		tag = "ol"
	}
	fmt.Fprintf(b, "<%s>", tag)
	for i := range c.Children {
		b.WriteString("<li>")
		if err := g.emitComponent(b, &c.Children[i]); err != nil {
			return err
		}
		b.WriteString("</li>")
	}
	fmt.Fprintf(b, "</%s>", tag)
	return nil
}

func (g *generator) unknownComponent(c *ir.Component) *diag.Diagnostic {
	msg := fmt.Sprintf("unknown component '%s'", c.Name.Name)
	if def, ok := g.defs[c.Name.Name]; ok {
		d := diag.NewError(diag.GenUnknownComponent, c.Name.Span,
			fmt.Sprintf("component '%s' is defined but custom component expansion is not supported", c.Name.Name)).
			WithNote(def.Name.Span, "defined here")
		return &d
	}
	d := diag.NewError(diag.GenUnknownComponent, c.Name.Span, msg)
	return &d
}

func conflictingFlags(c *ir.Component, a, b string) *diag.Diagnostic {
	d := diag.NewError(diag.GenConflictingFlags, c.Span,
		fmt.Sprintf("component '%s' carries both '%s' and '%s' flags", c.Name.Name, a, b)).
		WithNote(c.Properties.Flags[a].Span, fmt.Sprintf("'%s' is here", a)).
		WithNote(c.Properties.Flags[b].Span, fmt.Sprintf("'%s' is here", b))
	return &d
}
