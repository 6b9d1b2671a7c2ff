package lexer

import (
	"strings"

	"github.com/rchuk/markerml/internal/token"
)

// literalEnd describes how a literal segment scan stopped.
type literalEnd uint8

const (
	endTerminator   literalEnd = iota // the closing '"' or ')'
	endInterpolation                  // stopped at "${"
	endEOF                            // source ran out
)

// scanLiteral scans one segment of a string ("...") or text ((...))
// literal. When resume is false the cursor sits on the opening
// delimiter; when true the segment continues after an interpolation's
// closing '}'.
//
// Decoding rules:
//   - a line ending plus following horizontal whitespace collapses into
//     one space, unless the next character is the terminator or another
//     line ending (soft multi-line joining);
//   - backslash escapes '$' and the terminator;
//   - "${" ends the segment and opens an interpolation.
//
// An unterminated segment is still emitted, flagged Closed=false.
func (lx *Lexer) scanLiteral(kind literalKind, resume bool) token.Token {
	mark := lx.cursor.Mark()
	if !resume {
		lx.cursor.Bump() // opening '"' or '('
	}

	term := kind.terminator()
	var content strings.Builder
	end := endEOF

scan:
	for !lx.cursor.EOF() {
		b := lx.cursor.Bump()
		switch {
		case b == term:
			end = endTerminator
			break scan

		case isLineEnding(b):
			if b == '\r' {
				lx.cursor.Eat('\n')
			}
			for !lx.cursor.EOF() && isHorizontalSpace(lx.cursor.Peek()) {
				lx.cursor.Bump()
			}
			if next := lx.cursor.Peek(); !lx.cursor.EOF() && next != term && !isLineEnding(next) {
				content.WriteByte(' ')
			}

		case b == '\\':
			if next := lx.cursor.Peek(); !lx.cursor.EOF() && (next == '$' || next == term) {
				content.WriteByte(next)
				lx.cursor.Bump()
			} else {
				content.WriteByte('\\')
			}

		case b == '$':
			if lx.cursor.Peek() == '{' {
				// Rewind to the '$' so the interpolation punctuators
				// are emitted with their own spans.
				lx.cursor.Off--
				end = endInterpolation
				break scan
			}
			content.WriteByte('$')

		default:
			content.WriteByte(b)
		}
	}

	lx.shiftMode(kind, resume, end)

	sp := lx.cursor.SpanFrom(mark)
	tokKind := token.StringSeg
	if kind == litText {
		tokKind = token.TextSeg
	}
	return token.Token{
		Kind:    tokKind,
		Span:    sp,
		Text:    lx.text(sp),
		Content: content.String(),
		Closed:  end != endEOF,
	}
}

// shiftMode updates the interpolation stack after a segment scan.
// A fresh literal owns no stack entry; a resumed one owns the top.
func (lx *Lexer) shiftMode(kind literalKind, resume bool, end literalEnd) {
	switch end {
	case endInterpolation:
		if resume {
			lx.top().phase = phaseStart
		} else {
			lx.modes = append(lx.modes, mode{phase: phaseStart, kind: kind})
		}
	case endTerminator, endEOF:
		if resume {
			lx.modes = lx.modes[:len(lx.modes)-1]
		}
	}
}
