// Package validator checks the structural invariants the grammar is
// too permissive to enforce: text/children exclusivity, duplicate
// property names, and property-declaration cardinality. It walks the
// tree depth-first in source order and stops at the first violation;
// lowering re-derives the duplicate checks when it builds its keyed
// sets, so the validator exists to give early, well-located errors
// before any IR is constructed.
package validator

import (
	"fmt"

	"github.com/rchuk/markerml/internal/ast"
	"github.com/rchuk/markerml/internal/diag"
)

// Validate walks the module and returns the first structural
// violation, or nil when the tree is well-formed.
func Validate(m *ast.Module) *diag.Diagnostic {
	for _, item := range m.Items {
		switch it := item.(type) {
		case *ast.Component:
			if d := validateComponent(it); d != nil {
				return d
			}
		case *ast.ComponentDefinition:
			if d := validateDefinition(it); d != nil {
				return d
			}
		}
	}
	return nil
}

func validateComponent(c *ast.Component) *diag.Diagnostic {
	if c.Text != nil && c.Children != nil {
		d := diag.NewError(diag.SemaTextComponentWithChildren, c.Span,
			fmt.Sprintf("component '%s' has both text and children", c.Name.Name)).
			WithNote(c.Text.Span, "text is here").
			WithNote(c.Children.Span, "children are here")
		return &d
	}
	if c.Properties != nil {
		seen := make(map[string]ast.Identifier, len(c.Properties.List))
		for _, prop := range c.Properties.List {
			if first, ok := seen[prop.Key.Name]; ok {
				return duplicated(prop.Key.Name, first, prop.Key)
			}
			seen[prop.Key.Name] = prop.Key
		}
	}
	if c.Children != nil {
		for _, child := range c.Children.List {
			if d := validateComponent(child); d != nil {
				return d
			}
		}
	}
	return nil
}

func validateDefinition(def *ast.ComponentDefinition) *diag.Diagnostic {
	if def.Properties != nil {
		if d := validateDeclarations(def); d != nil {
			return d
		}
	}
	if def.Children != nil {
		for _, child := range def.Children.List {
			if d := validateComponent(child); d != nil {
				return d
			}
		}
	}
	return nil
}

// validateDeclarations enforces the cardinality rules over one
// definition's property declarations: at most one text declaration,
// one default declaration, one slot-typed and one slot[]-typed named
// declaration, never both slot kinds, and no repeated names across any
// declaration kind.
func validateDeclarations(def *ast.ComponentDefinition) *diag.Diagnostic {
	var (
		text     *ast.Identifier
		deflt    *ast.Identifier
		slot     *ast.Identifier
		slotList *ast.Identifier
	)
	seen := make(map[string]ast.Identifier, len(def.Properties.List))

	for i := range def.Properties.List {
		decl := &def.Properties.List[i]
		if first, ok := seen[decl.Name.Name]; ok {
			return duplicated(decl.Name.Name, first, decl.Name)
		}
		seen[decl.Name.Name] = decl.Name

		switch decl.Kind {
		case ast.TextDef:
			if text != nil {
				return cardinality(diag.SemaMultipleTextProperties, def, "text", *text, decl.Name)
			}
			text = &decl.Name
		case ast.DefaultDef:
			if deflt != nil {
				return cardinality(diag.SemaMultipleDefaultProperties, def, "default", *deflt, decl.Name)
			}
			deflt = &decl.Name
		case ast.NamedDef:
			if decl.Type == nil {
				continue
			}
			switch decl.Type.Kind {
			case ast.TypeSlot:
				if slot != nil {
					return cardinality(diag.SemaMultipleSlotProperties, def, "slot", *slot, decl.Name)
				}
				slot = &decl.Name
			case ast.TypeSlotList:
				if slotList != nil {
					return cardinality(diag.SemaMultipleSlotListProperties, def, "slot[]", *slotList, decl.Name)
				}
				slotList = &decl.Name
			}
		}
	}

	if slot != nil && slotList != nil {
		d := diag.NewError(diag.SemaSlotAndSlotListProperties, def.Name.Span,
			fmt.Sprintf("component '%s' declares both a slot and a slot[] property", def.Name.Name)).
			WithNote(slot.Span, "slot property is here").
			WithNote(slotList.Span, "slot[] property is here")
		return &d
	}
	return nil
}

func duplicated(name string, first, second ast.Identifier) *diag.Diagnostic {
	d := diag.NewError(diag.SemaDuplicatedProperty, second.Span,
		fmt.Sprintf("property '%s' is defined more than once", name)).
		WithNote(first.Span, "first defined here").
		WithNote(second.Span, "then defined here")
	return &d
}

func cardinality(code diag.Code, def *ast.ComponentDefinition, kind string, first, second ast.Identifier) *diag.Diagnostic {
	d := diag.NewError(code, second.Span,
		fmt.Sprintf("component '%s' declares more than one %s property", def.Name.Name, kind)).
		WithNote(first.Span, "first declared here").
		WithNote(second.Span, "then declared here")
	return &d
}
