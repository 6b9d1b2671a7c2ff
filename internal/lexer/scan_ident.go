package lexer

import (
	"github.com/rchuk/markerml/internal/token"
)

// scanIdentOrKeyword scans an identifier run and reclassifies it as a
// type name, keyword, or boolean literal. 'slot' immediately followed
// by '[]' is consumed as the slot[] type name.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	mark := lx.cursor.Mark()
	for !lx.cursor.EOF() && isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}

	sp := lx.cursor.SpanFrom(mark)
	text := lx.text(sp)
	kind := token.LookupIdent(text)

	if kind == token.TySlot {
		if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '[' && b1 == ']' {
			lx.cursor.Bump()
			lx.cursor.Bump()
			sp = lx.cursor.SpanFrom(mark)
			return token.Token{Kind: token.TySlotList, Span: sp, Text: lx.text(sp)}
		}
	}

	tok := token.Token{Kind: kind, Span: sp, Text: text}
	if kind == token.BoolLit {
		tok.Bool = text == "true"
	}
	return tok
}
