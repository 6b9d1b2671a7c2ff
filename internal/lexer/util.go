package lexer

import (
	"fmt"
	"unicode/utf8"

	"fortio.org/safecast"
)

func isIdentStartByte(b byte) bool {
	return b == '_' || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

func isIdentContinueByte(b byte) bool {
	return isIdentStartByte(b) || (b >= '0' && b <= '9')
}

func isDec(b byte) bool { return b >= '0' && b <= '9' }

func isHorizontalSpace(b byte) bool { return b == ' ' || b == '\t' }

func isLineEnding(b byte) bool { return b == '\n' || b == '\r' }

// bumpRune advances the cursor by a full UTF-8 rune so that an
// unrecognized multi-byte character produces a single Invalid token.
func (lx *Lexer) bumpRune() {
	if lx.cursor.EOF() {
		return
	}
	if lx.cursor.Peek() < utf8.RuneSelf {
		lx.cursor.Bump()
		return
	}
	_, sz := utf8.DecodeRune(lx.file.Content[lx.cursor.Off:])
	usz, err := safecast.Conv[uint32](sz)
	if err != nil {
		panic(fmt.Errorf("bumpRune overflow: %w", err))
	}
	lx.cursor.Off += usz
}
