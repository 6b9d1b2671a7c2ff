package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident

	// KwComponent represents the 'component' keyword.
	KwComponent // component
	// KwDefault represents the 'default' keyword.
	KwDefault // default
	// KwText represents the 'text' keyword.
	KwText // text

	// TyString represents the 'string' type name.
	TyString // string
	// TyInt represents the 'int' (or 'integer') type name.
	TyInt // int
	// TyBool represents the 'bool' type name.
	TyBool // bool
	// TySlot represents the 'slot' type name.
	TySlot // slot
	// TySlotList represents the 'slot[]' type name.
	TySlotList // slot[]

	// BoolLit represents a 'true' or 'false' literal.
	BoolLit
	// IntLit represents an integer literal.
	IntLit
	// StringSeg represents one literal chunk of a quoted string,
	// ending at the closing quote, an interpolation, or EOF.
	StringSeg
	// TextSeg represents one literal chunk of a parenthesized text,
	// ending at the closing paren, an interpolation, or EOF.
	TextSeg

	// LBracket represents '['.
	LBracket // [
	// RBracket represents ']'.
	RBracket // ]
	// LBrace represents '{'.
	LBrace // {
	// RBrace represents '}'.
	RBrace // }
	// Comma represents ','.
	Comma // ,
	// Colon represents ':'.
	Colon // :
	// Assign represents '='.
	Assign // =
	// Dollar represents '$'.
	Dollar // $
	// At represents the '@' built-in text component name.
	At // @
	// Hash represents the '#' built-in link component name.
	Hash // #
)

var kindNames = map[Kind]string{
	Invalid:     "invalid",
	EOF:         "end of file",
	Ident:       "identifier",
	KwComponent: "'component'",
	KwDefault:   "'default'",
	KwText:      "'text'",
	TyString:    "'string'",
	TyInt:       "'int'",
	TyBool:      "'bool'",
	TySlot:      "'slot'",
	TySlotList:  "'slot[]'",
	BoolLit:     "boolean literal",
	IntLit:      "integer literal",
	StringSeg:   "string literal",
	TextSeg:     "text literal",
	LBracket:    "'['",
	RBracket:    "']'",
	LBrace:      "'{'",
	RBrace:      "'}'",
	Comma:       "','",
	Colon:       "':'",
	Assign:      "'='",
	Dollar:      "'$'",
	At:          "'@'",
	Hash:        "'#'",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// IsType reports whether the token kind names a property type.
func (k Kind) IsType() bool {
	switch k {
	case TyString, TyInt, TyBool, TySlot, TySlotList:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token kind is a language keyword.
func (k Kind) IsKeyword() bool {
	switch k {
	case KwComponent, KwDefault, KwText:
		return true
	default:
		return false
	}
}

// keywords maps reserved identifier spellings to their kinds.
// Type names take precedence over keywords, keywords over boolean
// literals; the map is disjoint so the order only matters conceptually.
var keywords = map[string]Kind{
	"string":    TyString,
	"int":       TyInt,
	"integer":   TyInt,
	"bool":      TyBool,
	"slot":      TySlot,
	"component": KwComponent,
	"default":   KwDefault,
	"text":      KwText,
	"true":      BoolLit,
	"false":     BoolLit,
}

// LookupIdent classifies an identifier spelling: type name, keyword,
// boolean literal, or plain identifier.
func LookupIdent(s string) Kind {
	if k, ok := keywords[s]; ok {
		return k
	}
	return Ident
}
