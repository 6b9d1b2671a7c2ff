package diag

import (
	"fmt"
)

// Code identifies a diagnostic kind. Codes are grouped into numeric
// blocks per pipeline stage.
type Code uint16

const (
	UnknownCode Code = 0

	// Lexical
	LexInfo         Code = 1000
	LexInvalidToken Code = 1001

	// Syntax
	SynInfo               Code = 2000
	SynUnexpectedToken    Code = 2001
	SynUnclosedLiteral    Code = 2002
	SynExpectIdentifier   Code = 2003
	SynExpectValue        Code = 2004
	SynExpectType         Code = 2005
	SynExpectRBracket     Code = 2006
	SynExpectRBrace       Code = 2007
	SynExpectInterpIdent  Code = 2008
	SynExpectProperty     Code = 2009
	SynUnexpectedTopLevel Code = 2010

	// Semantic (validator and IR lowering)
	SemaInfo                       Code = 3000
	SemaDuplicatedProperty         Code = 3001
	SemaTextComponentWithChildren  Code = 3002
	SemaMultipleTextProperties     Code = 3003
	SemaMultipleDefaultProperties  Code = 3004
	SemaMultipleSlotProperties     Code = 3005
	SemaMultipleSlotListProperties Code = 3006
	SemaSlotAndSlotListProperties  Code = 3007
	SemaCircularDefinition         Code = 3008
	SemaDefaultPropertyWithValue   Code = 3009

	// Backend (HTML generation)
	GenInfo                 Code = 4000
	GenUnknownComponent     Code = 4001
	GenMissingProperty      Code = 4002
	GenMissingText          Code = 4003
	GenTypeMismatch         Code = 4004
	GenInvalidPropertyValue Code = 4005
	GenConflictingFlags     Code = 4006
)

var codeDescription = map[Code]string{
	UnknownCode: "unknown error",

	LexInfo:         "lexical info",
	LexInvalidToken: "unrecognized character",

	SynInfo:               "syntax info",
	SynUnexpectedToken:    "unexpected token",
	SynUnclosedLiteral:    "unclosed literal",
	SynExpectIdentifier:   "expected identifier",
	SynExpectValue:        "expected value",
	SynExpectType:         "expected type",
	SynExpectRBracket:     "expected closing bracket",
	SynExpectRBrace:       "expected closing brace",
	SynExpectInterpIdent:  "expected interpolated variable",
	SynExpectProperty:     "expected property",
	SynUnexpectedTopLevel: "unexpected top-level construct",

	SemaInfo:                       "semantic info",
	SemaDuplicatedProperty:         "duplicated property name",
	SemaTextComponentWithChildren:  "text component with children",
	SemaMultipleTextProperties:     "multiple text properties",
	SemaMultipleDefaultProperties:  "multiple default properties",
	SemaMultipleSlotProperties:     "multiple slot properties",
	SemaMultipleSlotListProperties: "multiple slot list properties",
	SemaSlotAndSlotListProperties:  "slot and slot list properties",
	SemaCircularDefinition:         "circular component definition",
	SemaDefaultPropertyWithValue:   "default property with value",

	GenInfo:                 "generation info",
	GenUnknownComponent:     "unknown component",
	GenMissingProperty:      "missing required property",
	GenMissingText:          "missing text",
	GenTypeMismatch:         "type mismatch",
	GenInvalidPropertyValue: "invalid property value",
	GenConflictingFlags:     "conflicting flag properties",
}

// ID returns a stable short identifier like SYN2001.
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("GEN%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
