package lexer

import (
	"github.com/rchuk/markerml/internal/source"
	"github.com/rchuk/markerml/internal/token"
)

// literalKind selects the delimiter family of a string or text literal.
type literalKind uint8

const (
	litString literalKind = iota // "..."
	litText                      // (...)
)

func (k literalKind) terminator() byte {
	if k == litString {
		return '"'
	}
	return ')'
}

// phase tracks where inside an interpolation the lexer currently is.
type phase uint8

const (
	// phaseStart: the literal scanner stopped at "${"; the punctuators
	// have not been emitted yet.
	phaseStart phase = iota
	// phaseInterp: ordinary tokens are lexed until the matching '}'.
	phaseInterp
	// phaseLiteral: the '}' was consumed; the literal resumes.
	phaseLiteral
)

// mode is one entry of the interpolation stack. Nested literals inside
// interpolations push further entries, so arbitrarily deep nesting works
// without recursion and string/text terminators never cross-contaminate.
type mode struct {
	phase phase
	kind  literalKind
}

// Lexer converts markerml source into a flat token stream.
// It never fails: unrecognized input becomes Invalid tokens and
// unterminated literals are emitted with Closed=false, deferring
// failure to the parser.
type Lexer struct {
	file   *source.File
	cursor Cursor
	modes  []mode
}

// New creates a lexer for the given file.
func New(file *source.File) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
	}
}

// Lex scans the whole file and returns the token stream together with
// the span at end of input. Re-lexing identical input yields an
// identical stream.
func (lx *Lexer) Lex() ([]token.Token, source.Span) {
	tokens := make([]token.Token, 0, 64)

	for !lx.cursor.EOF() {
		top := lx.top()
		switch {
		case top != nil && top.phase == phaseStart:
			tokens = lx.lexInterpolationOpen(tokens)
		case top != nil && top.phase == phaseInterp:
			if lx.cursor.Peek() == '}' {
				mark := lx.cursor.Mark()
				lx.cursor.Bump()
				tokens = append(tokens, lx.punct(token.RBrace, mark))
				top.phase = phaseLiteral
			} else if tok, ok := lx.lexDefault(); ok {
				tokens = append(tokens, tok)
			}
		case top != nil && top.phase == phaseLiteral:
			tokens = append(tokens, lx.scanLiteral(top.kind, true))
		default:
			if tok, ok := lx.lexDefault(); ok {
				tokens = append(tokens, tok)
			}
		}
	}

	// A literal waiting to resume after '}' when the source ran out
	// still owes its trailing segment, so the unterminated literal is
	// visible in the stream.
	for top := lx.top(); top != nil && top.phase == phaseLiteral; top = lx.top() {
		tokens = append(tokens, lx.scanLiteral(top.kind, true))
	}

	return tokens, lx.EmptySpan()
}

// lexDefault scans one ordinary token. It returns ok=false when only
// whitespace or a comment was consumed.
func (lx *Lexer) lexDefault() (token.Token, bool) {
	b := lx.cursor.Peek()
	switch {
	case isHorizontalSpace(b) || isLineEnding(b):
		lx.cursor.Bump()
		return token.Token{}, false
	case b == '/':
		return lx.scanCommentOrInvalid()
	case b == '(':
		return lx.scanLiteral(litText, false), true
	case b == '"':
		return lx.scanLiteral(litString, false), true
	case b == '-' || isDec(b):
		return lx.scanNumber(), true
	case isIdentStartByte(b):
		return lx.scanIdentOrKeyword(), true
	default:
		if tok, ok := lx.scanPunct(); ok {
			return tok, true
		}
		mark := lx.cursor.Mark()
		lx.bumpRune()
		return lx.invalid(mark), true
	}
}

// lexInterpolationOpen emits the '$' and '{' the literal scanner
// stopped at, then switches the top mode to interpolation.
func (lx *Lexer) lexInterpolationOpen(tokens []token.Token) []token.Token {
	mark := lx.cursor.Mark()
	lx.cursor.Bump() // '$'
	tokens = append(tokens, lx.punct(token.Dollar, mark))

	mark = lx.cursor.Mark()
	lx.cursor.Bump() // '{'
	tokens = append(tokens, lx.punct(token.LBrace, mark))

	lx.top().phase = phaseInterp
	return tokens
}

// scanCommentOrInvalid handles a '/'. A second '/' begins a comment
// running to the end of the line; inside an active interpolation the
// closing '}' also terminates it. A lone '/' is an Invalid token.
func (lx *Lexer) scanCommentOrInvalid() (token.Token, bool) {
	mark := lx.cursor.Mark()
	lx.cursor.Bump()
	if !lx.cursor.Eat('/') {
		return lx.invalid(mark), true
	}

	stopAtBrace := false
	if top := lx.top(); top != nil && top.phase == phaseInterp {
		stopAtBrace = true
	}
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if isLineEnding(b) || (stopAtBrace && b == '}') {
			break
		}
		lx.cursor.Bump()
	}
	return token.Token{}, false
}

func (lx *Lexer) scanPunct() (token.Token, bool) {
	var kind token.Kind
	switch lx.cursor.Peek() {
	case '[':
		kind = token.LBracket
	case ']':
		kind = token.RBracket
	case '{':
		kind = token.LBrace
	case '}':
		kind = token.RBrace
	case ',':
		kind = token.Comma
	case ':':
		kind = token.Colon
	case '=':
		kind = token.Assign
	case '$':
		kind = token.Dollar
	case '@':
		kind = token.At
	case '#':
		kind = token.Hash
	default:
		return token.Token{}, false
	}
	mark := lx.cursor.Mark()
	lx.cursor.Bump()
	return lx.punct(kind, mark), true
}

func (lx *Lexer) punct(kind token.Kind, mark Mark) token.Token {
	sp := lx.cursor.SpanFrom(mark)
	return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
}

func (lx *Lexer) invalid(mark Mark) token.Token {
	sp := lx.cursor.SpanFrom(mark)
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}

func (lx *Lexer) text(sp source.Span) string {
	return string(lx.file.Content[sp.Start:sp.End])
}

func (lx *Lexer) top() *mode {
	if len(lx.modes) == 0 {
		return nil
	}
	return &lx.modes[len(lx.modes)-1]
}

// EmptySpan returns a zero-length span at the current position.
func (lx *Lexer) EmptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}
