package parser

import (
	"github.com/rchuk/markerml/internal/ast"
	"github.com/rchuk/markerml/internal/diag"
	"github.com/rchuk/markerml/internal/source"
	"github.com/rchuk/markerml/internal/token"
)

// parseValue parses 'INTEGER | BOOLEAN | string | IDENTIFIER'. It
// returns nil without reporting when the current token cannot start a
// value, leaving the choice of error to the caller.
func (p *Parser) parseValue() ast.Value {
	tok := p.cur()
	switch tok.Kind {
	case token.IntLit:
		p.advance()
		return &ast.IntegerValue{Span: tok.Span, Value: tok.Int}
	case token.BoolLit:
		p.advance()
		return &ast.BoolValue{Span: tok.Span, Value: tok.Bool}
	case token.StringSeg:
		segs, sp := p.parseSegments(token.StringSeg)
		return &ast.StringValue{Span: sp, Segments: segs}
	case token.Ident:
		p.advance()
		return &ast.VariableValue{
			Span: tok.Span,
			Name: ast.Identifier{Span: tok.Span, Name: tok.Text},
		}
	}
	return nil
}

// parseType parses a property declaration type. The lexer folds
// 'slot[]' into a single token, so every type is one token wide.
func (p *Parser) parseType() (ast.Type, bool) {
	tok := p.cur()
	var kind ast.TypeKind
	switch tok.Kind {
	case token.TyString:
		kind = ast.TypeString
	case token.TyInt:
		kind = ast.TypeInt
	case token.TyBool:
		kind = ast.TypeBool
	case token.TySlot:
		kind = ast.TypeSlot
	case token.TySlotList:
		kind = ast.TypeSlotList
	default:
		p.errExpected(diag.SynExpectType, "property type")
		return ast.Type{}, false
	}
	p.advance()
	return ast.Type{Span: tok.Span, Kind: kind}, true
}

// parseText parses a parenthesized text. The caller guarantees the
// current token is a text segment.
func (p *Parser) parseText() *ast.Text {
	segs, sp := p.parseSegments(token.TextSeg)
	return &ast.Text{Span: sp, Segments: segs}
}

// parseSegments folds the lexer's segment/interpolation alternation
//
//	SEG ('$' '{' IDENTIFIER '}' SEG)*
//
// into interpolation segments, dropping empty literal chunks. The span
// accumulates over every consumed token. An unterminated segment
// (source ended before the closing delimiter) is reported here, at the
// segment's own span.
func (p *Parser) parseSegments(kind token.Kind) ([]ast.InterpolationSegment, source.Span) {
	var segs []ast.InterpolationSegment
	first := p.advance()
	sp := first.Span

	literal := func(tok token.Token) {
		if !tok.Closed {
			p.report(diag.NewError(diag.SynUnclosedLiteral, tok.Span,
				"literal is not terminated"))
		}
		if tok.Content != "" {
			segs = append(segs, ast.InterpolationSegment{Span: tok.Span, Literal: tok.Content})
		}
		sp = sp.Cover(tok.Span)
	}
	literal(first)

	for p.at(token.Dollar) {
		dollar := p.advance()
		vsp := dollar.Span
		if _, ok := p.expect(token.LBrace, diag.SynUnexpectedToken); !ok {
			break
		}
		identTok, ok := p.expect(token.Ident, diag.SynExpectInterpIdent)
		if !ok {
			p.skipUntil(token.RBrace, kind)
		}
		if rb, closed := p.expect(token.RBrace, diag.SynExpectRBrace); closed {
			vsp = vsp.Cover(rb.Span)
		}
		if ok {
			id := ast.Identifier{Span: identTok.Span, Name: identTok.Text}
			segs = append(segs, ast.InterpolationSegment{Span: vsp, Variable: &id})
		}
		sp = sp.Cover(vsp)
		if p.at(kind) {
			literal(p.advance())
		}
	}
	return segs, sp
}
