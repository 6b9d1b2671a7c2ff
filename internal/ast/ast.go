// Package ast defines the spanned syntax tree produced by the parser.
// Nodes are immutable value trees owned by a single parse invocation;
// the grammar is deliberately permissive (a component may carry both
// text and children, property names may repeat) and semantic shape
// violations are rejected later by the validator and IR lowering.
package ast

import (
	"github.com/rchuk/markerml/internal/source"
)

// Module is the top-level sequence of components and component
// definitions.
type Module struct {
	Span  source.Span
	Items []ModuleItem
}

// ModuleItem is either *Component or *ComponentDefinition.
type ModuleItem interface {
	GetSpan() source.Span
	moduleItem()
}

// Component is an instantiated markup element: a name plus optional
// properties, children, and text.
type Component struct {
	Span       source.Span
	Name       Identifier
	Properties *Properties
	Children   *Children
	Text       *Text
}

// ComponentDefinition is a named, reusable template declaring its own
// property slots and body.
type ComponentDefinition struct {
	Span       source.Span
	Name       Identifier
	Properties *PropertiesDefinition
	Children   *Children
}

func (c *Component) GetSpan() source.Span           { return c.Span }
func (c *Component) moduleItem()                    {}
func (d *ComponentDefinition) GetSpan() source.Span { return d.Span }
func (d *ComponentDefinition) moduleItem()          {}

// Children is an ordered list of child components, spanning the braces.
type Children struct {
	Span source.Span
	List []*Component
}

// Properties is a component's bracketed property list: an optional
// unnamed default value plus ordered named/flag properties.
type Properties struct {
	Span    source.Span
	Default Value
	List    []Property
}

// Property is a single named or flag property. A nil Value means the
// property is a flag (bare identifier, presence = true).
type Property struct {
	Span  source.Span
	Key   Identifier
	Value Value
}

// IsFlag reports whether the property is a bare flag.
func (p Property) IsFlag() bool { return p.Value == nil }

// PropertiesDefinition is the bracketed declaration list of a
// component definition.
type PropertiesDefinition struct {
	Span source.Span
	List []PropertyDefinition
}

// PropertyDefKind distinguishes the three declaration forms.
type PropertyDefKind uint8

const (
	// DefaultDef declares the unnamed positional property.
	DefaultDef PropertyDefKind = iota
	// TextDef declares the component's text slot.
	TextDef
	// NamedDef declares an ordinary typed property.
	NamedDef
)

// PropertyDefinition is one property declaration. TextDef declarations
// carry no type or default value; the grammar permits a default value
// on a DefaultDef, which lowering rejects.
type PropertyDefinition struct {
	Span         source.Span
	Kind         PropertyDefKind
	Name         Identifier
	Type         *Type
	DefaultValue Value
}

// Value is a tagged union of the literal and variable value forms:
// *StringValue, *IntegerValue, *BoolValue, or *VariableValue.
type Value interface {
	GetSpan() source.Span
	value()
}

// StringValue is an interpolated string: literal chunks mixed with
// variable references. Empty literal segments are never present.
type StringValue struct {
	Span     source.Span
	Segments []InterpolationSegment
}

// IntegerValue is an integer literal value.
type IntegerValue struct {
	Span  source.Span
	Value int64
}

// BoolValue is a boolean literal value.
type BoolValue struct {
	Span  source.Span
	Value bool
}

// VariableValue is a bare identifier referencing an external binding.
type VariableValue struct {
	Span source.Span
	Name Identifier
}

func (v *StringValue) GetSpan() source.Span   { return v.Span }
func (v *StringValue) value()                 {}
func (v *IntegerValue) GetSpan() source.Span  { return v.Span }
func (v *IntegerValue) value()                {}
func (v *BoolValue) GetSpan() source.Span     { return v.Span }
func (v *BoolValue) value()                   {}
func (v *VariableValue) GetSpan() source.Span { return v.Span }
func (v *VariableValue) value()               {}

// Text is a component's parenthesized text: the same segment structure
// as StringValue.
type Text struct {
	Span     source.Span
	Segments []InterpolationSegment
}

// InterpolationSegment is one piece of a string or text value: either
// a literal chunk or a variable reference. Variable is nil for
// literal segments.
type InterpolationSegment struct {
	Span     source.Span
	Literal  string
	Variable *Identifier
}

// IsVariable reports whether the segment references a variable.
func (s InterpolationSegment) IsVariable() bool { return s.Variable != nil }

// TypeKind enumerates the property declaration types.
type TypeKind uint8

const (
	TypeString TypeKind = iota
	TypeInt
	TypeBool
	TypeSlot
	TypeSlotList
)

func (k TypeKind) String() string {
	switch k {
	case TypeString:
		return "string"
	case TypeInt:
		return "int"
	case TypeBool:
		return "bool"
	case TypeSlot:
		return "slot"
	case TypeSlotList:
		return "slot[]"
	}
	return "unknown"
}

// Type is a spanned property declaration type.
type Type struct {
	Span source.Span
	Kind TypeKind
}

// Identifier is a name with its source span. Wherever identifiers key
// maps or sets, only the name participates; the span is metadata.
type Identifier struct {
	Span source.Span
	Name string
}
