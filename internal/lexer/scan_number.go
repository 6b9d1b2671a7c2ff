package lexer

import (
	"strconv"

	"github.com/rchuk/markerml/internal/token"
)

// scanNumber scans -?[0-9]+. A lone '-' or an out-of-range value
// produces an Invalid token.
func (lx *Lexer) scanNumber() token.Token {
	mark := lx.cursor.Mark()
	lx.cursor.Eat('-')
	for !lx.cursor.EOF() && isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}

	sp := lx.cursor.SpanFrom(mark)
	text := lx.text(sp)

	value, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return token.Token{Kind: token.Invalid, Span: sp, Text: text}
	}
	return token.Token{Kind: token.IntLit, Span: sp, Text: text, Int: value}
}
