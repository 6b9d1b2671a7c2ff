// Package parser turns a token stream into a spanned syntax tree.
//
// The grammar is recursive descent with bounded backtracking: the only
// ambiguous production is a component's property list, where a bare
// identifier may open either a flag property or a default value. The
// parser tries the named-properties branch first and rewinds without
// consuming input when it fails.
//
// Errors accumulate in a diag.Bag. After a failing construct the
// parser resynchronizes and keeps going, so one pass can report
// several independent problems alongside a best-effort tree.
package parser

import (
	"fmt"

	"github.com/rchuk/markerml/internal/ast"
	"github.com/rchuk/markerml/internal/diag"
	"github.com/rchuk/markerml/internal/source"
	"github.com/rchuk/markerml/internal/token"
)

// Parser holds the cursor state over a pre-lexed token stream.
type Parser struct {
	toks []token.Token
	pos  int
	eof  source.Span
	bag  *diag.Bag
}

// New creates a parser over an already-lexed stream. eof is the empty
// span at end of input, used for diagnostics past the last token.
func New(toks []token.Token, eof source.Span, bag *diag.Bag) *Parser {
	return &Parser{toks: toks, eof: eof, bag: bag}
}

// Parse consumes the whole stream and returns the module tree.
// Diagnostics land in bag; the returned tree is best-effort and may be
// partial when bag holds errors.
func Parse(toks []token.Token, eof source.Span, bag *diag.Bag) *ast.Module {
	return New(toks, eof, bag).ParseModule()
}

// ParseModule parses 'module := (component | component_definition)*'.
func (p *Parser) ParseModule() *ast.Module {
	m := &ast.Module{Span: p.eof}
	for !p.atEOF() {
		tok := p.cur()
		var item ast.ModuleItem
		switch {
		case tok.Kind == token.KwComponent:
			def := p.parseComponentDefinition()
			if def == nil {
				p.resyncTopLevel()
				continue
			}
			item = def
		case tok.StartsComponent():
			item = p.parseComponent()
		default:
			p.errExpected(diag.SynUnexpectedTopLevel, "component or component definition")
			p.resyncTopLevel()
			continue
		}
		if len(m.Items) == 0 {
			m.Span = item.GetSpan()
		} else {
			m.Span = m.Span.Cover(item.GetSpan())
		}
		m.Items = append(m.Items, item)
	}
	return m
}

// resyncTopLevel skips past the offending token up to the next token
// that can open a module item.
func (p *Parser) resyncTopLevel() {
	p.advance()
	for !p.atEOF() {
		tok := p.cur()
		if tok.Kind == token.KwComponent || tok.StartsComponent() {
			return
		}
		p.advance()
	}
}

func (p *Parser) atEOF() bool {
	return p.pos >= len(p.toks)
}

// cur returns the current token, or a synthesized EOF token once the
// stream is exhausted.
func (p *Parser) cur() token.Token {
	if p.atEOF() {
		return token.Token{Kind: token.EOF, Span: p.eof}
	}
	return p.toks[p.pos]
}

func (p *Parser) at(kind token.Kind) bool {
	return p.cur().Kind == kind
}

func (p *Parser) advance() token.Token {
	tok := p.cur()
	if !p.atEOF() {
		p.pos++
	}
	return tok
}

// eat consumes the current token if it has the given kind.
func (p *Parser) eat(kind token.Kind) (token.Token, bool) {
	if p.at(kind) {
		return p.advance(), true
	}
	return p.cur(), false
}

// mark and resetTo implement the no-consumption backtracking the
// property-list disambiguation relies on. Diagnostics reported between
// a mark and its reset are not rolled back, so speculative branches
// must stay silent.
func (p *Parser) mark() int     { return p.pos }
func (p *Parser) resetTo(m int) { p.pos = m }

func (p *Parser) report(d diag.Diagnostic) {
	p.bag.Add(d)
}

// errExpected reports an expected-construct mismatch at the current
// token. An Invalid token is reported as the lexical error it really
// is: the lexer defers unrecognized characters to the first parse
// attempt that trips over them.
func (p *Parser) errExpected(code diag.Code, what string) {
	tok := p.cur()
	if tok.Kind == token.Invalid {
		p.report(diag.NewError(diag.LexInvalidToken, tok.Span,
			fmt.Sprintf("unrecognized token %q, expected %s", tok.Text, what)))
		return
	}
	p.report(diag.NewError(code, tok.Span,
		fmt.Sprintf("expected %s, found %s", what, tok.Kind)))
}

// expect consumes a token of the given kind or reports code at the
// current token without consuming it.
func (p *Parser) expect(kind token.Kind, code diag.Code) (token.Token, bool) {
	if p.at(kind) {
		return p.advance(), true
	}
	p.errExpected(code, kind.String())
	return p.cur(), false
}

// skipUntil advances to the next token whose kind is in kinds, or to
// end of input. The matching token itself is not consumed.
func (p *Parser) skipUntil(kinds ...token.Kind) {
	for !p.atEOF() {
		k := p.cur().Kind
		for _, want := range kinds {
			if k == want {
				return
			}
		}
		p.advance()
	}
}
