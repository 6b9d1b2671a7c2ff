package backend

import (
	"fmt"
	"strings"

	"github.com/rchuk/markerml/internal/diag"
	"github.com/rchuk/markerml/internal/ir"
)

// defaultOrNamed returns the component's default value, falling back
// to the named property of the given name.
func defaultOrNamed(c *ir.Component, name string) (ir.Value, bool) {
	if c.Properties.Default != nil {
		return c.Properties.Default, true
	}
	if v := c.Properties.Get(name); v != nil {
		return v, true
	}
	return nil, false
}

// requireString fetches the default-or-named property and casts it to
// a string.
func requireString(c *ir.Component, name string) (string, *diag.Diagnostic) {
	v, ok := defaultOrNamed(c, name)
	if !ok {
		d := diag.NewError(diag.GenMissingProperty, c.Span,
			fmt.Sprintf("required default property, also known as '%s', is missing", name))
		return "", &d
	}
	return castString(v)
}

func componentText(c *ir.Component) (string, *diag.Diagnostic) {
	if c.Text == nil {
		d := diag.NewError(diag.GenMissingText, c.Span,
			fmt.Sprintf("component '%s' is missing its text", c.Name.Name))
		return "", &d
	}
	return interpolate(c.Text.Segments), nil
}

// interpolate joins literal segments. Variables have no binding source
// at render time and contribute nothing.
func interpolate(segs []ir.InterpolationSegment) string {
	var b strings.Builder
	for _, seg := range segs {
		if !seg.IsVariable() {
			b.WriteString(seg.Literal)
		}
	}
	return b.String()
}

func castString(v ir.Value) (string, *diag.Diagnostic) {
	s, ok := v.(*ir.String)
	if !ok {
		return "", typeMismatch(v, "string")
	}
	return interpolate(s.Segments), nil
}

func castInt(v ir.Value) (int64, *diag.Diagnostic) {
	i, ok := v.(*ir.Integer)
	if !ok {
		return 0, typeMismatch(v, "int")
	}
	return i.Value, nil
}

func typeMismatch(v ir.Value, expected string) *diag.Diagnostic {
	d := diag.NewError(diag.GenTypeMismatch, v.GetSpan(),
		fmt.Sprintf("type mismatch: expected '%s', got '%s'", expected, valueKindName(v)))
	return &d
}

func valueKindName(v ir.Value) string {
	switch v.(type) {
	case *ir.String:
		return "string"
	case *ir.Integer:
		return "int"
	case *ir.Bool:
		return "bool"
	case *ir.Variable:
		return "variable"
	}
	return "unknown"
}

// optionalAlign reads an optional alignment property and validates it
// against the allowed CSS keywords.
func optionalAlign(c *ir.Component, name string) (string, *diag.Diagnostic) {
	v := c.Properties.Get(name)
	if v == nil {
		return "", nil
	}
	s, err := castString(v)
	if err != nil {
		return "", err
	}
	switch s {
	case "start", "center", "end":
		return s, nil
	}
	d := diag.NewError(diag.GenInvalidPropertyValue, v.GetSpan(),
		fmt.Sprintf("%s must be one of 'start', 'center' or 'end', got '%s'", name, s))
	return "", &d
}
