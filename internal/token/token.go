package token

import (
	"github.com/rchuk/markerml/internal/source"
)

// Token represents a single source token with its location.
//
// StringSeg and TextSeg tokens carry the decoded literal content in
// Content (escapes resolved, multi-line runs joined); Text always holds
// the raw source slice. Closed is false only when the source ended
// before the literal's terminator.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Content string
	Closed  bool
	Int     int64
	Bool    bool
}

// IsLiteral reports whether the token is a boolean, integer, string,
// or text literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case BoolLit, IntLit, StringSeg, TextSeg:
		return true
	default:
		return false
	}
}

// IsPunct reports whether the token is a punctuator.
func (t Token) IsPunct() bool {
	switch t.Kind {
	case LBracket, RBracket, LBrace, RBrace, Comma, Colon, Assign, Dollar, At, Hash:
		return true
	default:
		return false
	}
}

// StartsComponent reports whether the token can begin a component:
// an identifier or one of the built-in symbolic names.
func (t Token) StartsComponent() bool {
	return t.Kind == Ident || t.Kind == At || t.Kind == Hash
}
