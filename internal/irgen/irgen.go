// Package irgen lowers the syntax tree into the IR. This is the
// authoritative enforcement point for the duplicate-property rules:
// building the name-keyed sets is where collisions actually surface,
// so lowering re-derives them even when the validator already ran.
// Lowering stops at the first error.
package irgen

import (
	"fmt"

	"github.com/rchuk/markerml/internal/ast"
	"github.com/rchuk/markerml/internal/diag"
	"github.com/rchuk/markerml/internal/ir"
)

// Generate lowers a validated module. It returns the IR module, or the
// first lowering error.
func Generate(m *ast.Module) (*ir.Module, *diag.Diagnostic) {
	out := &ir.Module{
		Span:        m.Span,
		Definitions: make(map[string]ir.ComponentDefinition),
	}
	for _, item := range m.Items {
		switch it := item.(type) {
		case *ast.Component:
			c, err := lowerComponent(it)
			if err != nil {
				return nil, err
			}
			out.Components = append(out.Components, c)
		case *ast.ComponentDefinition:
			def, err := lowerDefinition(it)
			if err != nil {
				return nil, err
			}
			out.Definitions[def.Name.Name] = def
		}
	}
	return out, nil
}

func lowerComponent(c *ast.Component) (ir.Component, *diag.Diagnostic) {
	out := ir.Component{Span: c.Span, Name: lowerIdent(c.Name)}

	props, err := lowerProperties(c.Properties)
	if err != nil {
		return out, err
	}
	out.Properties = props

	if c.Children != nil {
		out.Children = make([]ir.Component, 0, len(c.Children.List))
		for _, child := range c.Children.List {
			lowered, err := lowerComponent(child)
			if err != nil {
				return out, err
			}
			out.Children = append(out.Children, lowered)
		}
	}
	if c.Text != nil {
		out.Text = &ir.Text{Span: c.Text.Span, Segments: lowerSegments(c.Text.Segments)}
	}
	return out, nil
}

// lowerProperties converts the ordered property list into the keyed
// sets, failing on the first name collision regardless of whether the
// colliding entries are flags, named properties, or one of each.
// A nil list lowers to empty sets.
func lowerProperties(p *ast.Properties) (ir.Properties, *diag.Diagnostic) {
	out := ir.Properties{
		Named: make(map[string]ir.Property),
		Flags: make(map[string]ir.Identifier),
	}
	if p == nil {
		return out, nil
	}
	out.Span = p.Span
	if p.Default != nil {
		out.Default = lowerValue(p.Default)
	}
	seen := make(map[string]ir.Identifier, len(p.List))
	for _, prop := range p.List {
		key := lowerIdent(prop.Key)
		if first, ok := seen[key.Name]; ok {
			return out, duplicated(key.Name, first, key)
		}
		seen[key.Name] = key
		if prop.IsFlag() {
			out.Flags[key.Name] = key
		} else {
			out.Named[key.Name] = ir.Property{
				Span:  prop.Span,
				Key:   key,
				Value: lowerValue(prop.Value),
			}
		}
	}
	return out, nil
}

func lowerDefinition(def *ast.ComponentDefinition) (ir.ComponentDefinition, *diag.Diagnostic) {
	out := ir.ComponentDefinition{Span: def.Span, Name: lowerIdent(def.Name)}

	props, err := lowerDeclarations(def.Properties)
	if err != nil {
		return out, err
	}
	out.Properties = props

	if def.Children != nil {
		out.Children = make([]ir.Component, 0, len(def.Children.List))
		for _, child := range def.Children.List {
			lowered, err := lowerComponent(child)
			if err != nil {
				return out, err
			}
			out.Children = append(out.Children, lowered)
		}
	}

	// A definition whose body instantiates the definition itself can
	// never terminate during expansion. Cycles through other
	// definitions are not detected here.
	if self := findComponent(out.Children, out.Name.Name); self != nil {
		d := diag.NewError(diag.SemaCircularDefinition, def.Name.Span,
			fmt.Sprintf("component '%s' contains itself", def.Name.Name)).
			WithNote(def.Name.Span, "defined here").
			WithNote(self.Span, "referenced here")
		return out, &d
	}
	return out, nil
}

// lowerDeclarations partitions property declarations by kind, failing
// on repeated names, repeated text or default declarations, and a
// default declaration carrying a declaration-time value.
func lowerDeclarations(p *ast.PropertiesDefinition) (ir.PropertiesDefinition, *diag.Diagnostic) {
	out := ir.PropertiesDefinition{Named: make(map[string]ir.NamedProperty)}
	if p == nil {
		return out, nil
	}
	out.Span = p.Span
	seen := make(map[string]ir.Identifier, len(p.List))

	for _, decl := range p.List {
		name := lowerIdent(decl.Name)
		if first, ok := seen[name.Name]; ok {
			return out, duplicated(name.Name, first, name)
		}
		seen[name.Name] = name

		switch decl.Kind {
		case ast.DefaultDef:
			if out.Default != nil {
				return out, multiple(diag.SemaMultipleDefaultProperties, "default",
					out.Default.Name, name)
			}
			if decl.DefaultValue != nil {
				d := diag.NewError(diag.SemaDefaultPropertyWithValue, decl.Span,
					fmt.Sprintf("default property '%s' must not declare a value", name.Name)).
					WithNote(decl.DefaultValue.GetSpan(), "value is here")
				return out, &d
			}
			out.Default = &ir.DefaultProperty{Span: decl.Span, Name: name, Type: lowerType(decl.Type)}
		case ast.TextDef:
			if out.Text != nil {
				return out, multiple(diag.SemaMultipleTextProperties, "text",
					out.Text.Name, name)
			}
			out.Text = &ir.TextProperty{Span: decl.Span, Name: name}
		case ast.NamedDef:
			named := ir.NamedProperty{Span: decl.Span, Name: name, Type: lowerType(decl.Type)}
			if decl.DefaultValue != nil {
				named.Default = lowerValue(decl.DefaultValue)
			}
			out.Named[name.Name] = named
		}
	}
	return out, nil
}

// findComponent returns the first component named name anywhere in the
// given subtrees, in source order.
func findComponent(cs []ir.Component, name string) *ir.Component {
	for i := range cs {
		if cs[i].Name.Name == name {
			return &cs[i]
		}
		if found := findComponent(cs[i].Children, name); found != nil {
			return found
		}
	}
	return nil
}

func lowerValue(v ast.Value) ir.Value {
	switch val := v.(type) {
	case *ast.StringValue:
		return &ir.String{Span: val.Span, Segments: lowerSegments(val.Segments)}
	case *ast.IntegerValue:
		return &ir.Integer{Span: val.Span, Value: val.Value}
	case *ast.BoolValue:
		return &ir.Bool{Span: val.Span, Value: val.Value}
	case *ast.VariableValue:
		return &ir.Variable{Span: val.Span, Name: lowerIdent(val.Name)}
	}
	return nil
}

func lowerSegments(segs []ast.InterpolationSegment) []ir.InterpolationSegment {
	out := make([]ir.InterpolationSegment, 0, len(segs))
	for _, seg := range segs {
		lowered := ir.InterpolationSegment{Span: seg.Span, Literal: seg.Literal}
		if seg.Variable != nil {
			id := lowerIdent(*seg.Variable)
			lowered.Variable = &id
		}
		out = append(out, lowered)
	}
	return out
}

func lowerType(t *ast.Type) ir.Type {
	if t == nil {
		return ir.Type{}
	}
	out := ir.Type{Span: t.Span}
	switch t.Kind {
	case ast.TypeString:
		out.Kind = ir.TypeString
	case ast.TypeInt:
		out.Kind = ir.TypeInt
	case ast.TypeBool:
		out.Kind = ir.TypeBool
	case ast.TypeSlot:
		out.Kind = ir.TypeSlot
	case ast.TypeSlotList:
		out.Kind = ir.TypeSlotList
	}
	return out
}

func lowerIdent(id ast.Identifier) ir.Identifier {
	return ir.Identifier{Span: id.Span, Name: id.Name}
}

func duplicated(name string, first, second ir.Identifier) *diag.Diagnostic {
	d := diag.NewError(diag.SemaDuplicatedProperty, second.Span,
		fmt.Sprintf("property '%s' is defined more than once", name)).
		WithNote(first.Span, "first defined here").
		WithNote(second.Span, "then defined here")
	return &d
}

func multiple(code diag.Code, kind string, first, second ir.Identifier) *diag.Diagnostic {
	d := diag.NewError(code, second.Span,
		fmt.Sprintf("more than one %s property is declared", kind)).
		WithNote(first.Span, "first declared here").
		WithNote(second.Span, "then declared here")
	return &d
}
