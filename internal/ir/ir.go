// Package ir defines the intermediate representation handed to
// backends. Where the syntax tree keeps properties as ordered lists
// with possible duplicates, the IR partitions them into sets keyed by
// name (named properties, flags, the unnamed default) so that
// consumers can query by name without scanning. Spans survive lowering
// so backend errors stay located in the original source.
package ir

import (
	"github.com/rchuk/markerml/internal/source"
)

// Module is the lowered compilation unit: top-level components in
// source order plus component definitions keyed by name.
type Module struct {
	Span        source.Span
	Components  []Component
	Definitions map[string]ComponentDefinition
}

// Component is a lowered component instance. Text is nil when the
// component carries no text; absent properties lower to empty sets.
type Component struct {
	Span       source.Span
	Name       Identifier
	Properties Properties
	Children   []Component
	Text       *Text
}

// Properties is the deduplicated property set of a component.
type Properties struct {
	Span    source.Span
	Default Value
	Named   map[string]Property
	Flags   map[string]Identifier
}

// Get returns the named property's value, or nil.
func (p Properties) Get(name string) Value {
	if prop, ok := p.Named[name]; ok {
		return prop.Value
	}
	return nil
}

// HasFlag reports whether the flag property is present.
func (p Properties) HasFlag(name string) bool {
	_, ok := p.Flags[name]
	return ok
}

// Property is one named key/value property.
type Property struct {
	Span  source.Span
	Key   Identifier
	Value Value
}

// ComponentDefinition is a lowered template: its declared property
// slots restructured by kind, plus the body components.
type ComponentDefinition struct {
	Span       source.Span
	Name       Identifier
	Properties PropertiesDefinition
	Children   []Component
}

// PropertiesDefinition partitions a definition's declarations: the
// optional default and text declarations, and named declarations keyed
// by name.
type PropertiesDefinition struct {
	Span    source.Span
	Default *DefaultProperty
	Text    *TextProperty
	Named   map[string]NamedProperty
}

// DefaultProperty is the single unnamed positional declaration.
type DefaultProperty struct {
	Span source.Span
	Name Identifier
	Type Type
}

// TextProperty declares the definition's text slot.
type TextProperty struct {
	Span source.Span
	Name Identifier
}

// NamedProperty is an ordinary typed declaration with an optional
// declaration-time default value.
type NamedProperty struct {
	Span    source.Span
	Name    Identifier
	Type    Type
	Default Value
}

// Value is *String, *Integer, *Bool, or *Variable.
type Value interface {
	GetSpan() source.Span
	value()
}

// String is an interpolated string value.
type String struct {
	Span     source.Span
	Segments []InterpolationSegment
}

// Integer is an integer value.
type Integer struct {
	Span  source.Span
	Value int64
}

// Bool is a boolean value.
type Bool struct {
	Span  source.Span
	Value bool
}

// Variable references an externally supplied binding.
type Variable struct {
	Span source.Span
	Name Identifier
}

func (v *String) GetSpan() source.Span   { return v.Span }
func (v *String) value()                 {}
func (v *Integer) GetSpan() source.Span  { return v.Span }
func (v *Integer) value()                {}
func (v *Bool) GetSpan() source.Span     { return v.Span }
func (v *Bool) value()                   {}
func (v *Variable) GetSpan() source.Span { return v.Span }
func (v *Variable) value()               {}

// Text is a component's lowered text content.
type Text struct {
	Span     source.Span
	Segments []InterpolationSegment
}

// InterpolationSegment is one literal chunk or variable reference of a
// string or text. Variable is nil for literal segments.
type InterpolationSegment struct {
	Span     source.Span
	Literal  string
	Variable *Identifier
}

// IsVariable reports whether the segment references a variable.
func (s InterpolationSegment) IsVariable() bool { return s.Variable != nil }

// TypeKind enumerates declaration types.
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

// Type is a spanned declaration type.
type Type struct {
	Span source.Span
	Kind TypeKind
}

// Identifier is a name with its source span; map keys use the name
// alone.
type Identifier struct {
	Span source.Span
	Name string
}
