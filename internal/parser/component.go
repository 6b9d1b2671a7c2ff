package parser

import (
	"github.com/rchuk/markerml/internal/ast"
	"github.com/rchuk/markerml/internal/diag"
	"github.com/rchuk/markerml/internal/token"
)

// parseComponent parses 'component_name properties? text? children?'.
// The caller guarantees the current token can start a component.
func (p *Parser) parseComponent() *ast.Component {
	name := p.parseComponentName()
	c := &ast.Component{Span: name.Span, Name: name}
	if p.at(token.LBracket) {
		props := p.parseProperties()
		c.Properties = props
		c.Span = c.Span.Cover(props.Span)
	}
	if p.at(token.TextSeg) {
		text := p.parseText()
		c.Text = text
		c.Span = c.Span.Cover(text.Span)
	}
	if p.at(token.LBrace) {
		children := p.parseChildren()
		c.Children = children
		c.Span = c.Span.Cover(children.Span)
	}
	return c
}

// parseComponentName synthesizes identifier nodes for the built-in
// symbolic names '@' and '#' from their punctuator spans.
func (p *Parser) parseComponentName() ast.Identifier {
	tok := p.advance()
	name := tok.Text
	switch tok.Kind {
	case token.At:
		name = "@"
	case token.Hash:
		name = "#"
	}
	return ast.Identifier{Span: tok.Span, Name: name}
}

// parseChildren parses '{' component* '}'.
func (p *Parser) parseChildren() *ast.Children {
	lb := p.advance()
	ch := &ast.Children{Span: lb.Span}
	for {
		if p.atEOF() {
			p.report(diag.NewError(diag.SynExpectRBrace, p.eof,
				"expected '}' before end of input"))
			return ch
		}
		tok := p.cur()
		switch {
		case tok.Kind == token.RBrace:
			rb := p.advance()
			ch.Span = ch.Span.Cover(rb.Span)
			return ch
		case tok.StartsComponent():
			c := p.parseComponent()
			ch.List = append(ch.List, c)
			ch.Span = ch.Span.Cover(c.Span)
		default:
			p.errExpected(diag.SynUnexpectedToken, "component or '}'")
			p.advance()
		}
	}
}

// parseProperties parses the bracketed property list of a component:
//
//	'[' ( named_properties | (default_value (',' named_properties)?) )? ','? ']'
//
// The named-properties branch is tried first so that a bare identifier
// reads as a flag property, not a default variable value.
func (p *Parser) parseProperties() *ast.Properties {
	lb := p.advance()
	props := &ast.Properties{Span: lb.Span}
	if rb, ok := p.eat(token.RBracket); ok {
		props.Span = props.Span.Cover(rb.Span)
		return props
	}

	m := p.mark()
	if list, ok := p.tryNamedProperties(); ok {
		props.List = list
	} else {
		p.resetTo(m)
		val := p.parseValue()
		if val == nil {
			p.errExpected(diag.SynExpectProperty, "property or default value")
			p.skipUntil(token.RBracket, token.LBrace, token.RBrace)
		} else {
			props.Default = val
			if _, ok := p.eat(token.Comma); ok && !p.at(token.RBracket) {
				props.List = p.parseNamedProperties()
			}
		}
	}

	p.eat(token.Comma)
	if rb, ok := p.expect(token.RBracket, diag.SynExpectRBracket); ok {
		props.Span = props.Span.Cover(rb.Span)
	}
	return props
}

// tryNamedProperties speculatively parses 'property (',' property)*'
// up to (but not including) the closing ']'. It reports nothing and
// returns ok=false when the branch does not apply; the caller rewinds
// and retries the default-value branch.
func (p *Parser) tryNamedProperties() ([]ast.Property, bool) {
	var list []ast.Property
	for {
		if !p.at(token.Ident) {
			return nil, false
		}
		key := p.advance()
		prop := ast.Property{
			Span: key.Span,
			Key:  ast.Identifier{Span: key.Span, Name: key.Text},
		}
		if _, ok := p.eat(token.Assign); ok {
			val := p.parseValue()
			if val == nil {
				return nil, false
			}
			prop.Value = val
			prop.Span = prop.Span.Cover(val.GetSpan())
		}
		list = append(list, prop)
		if _, ok := p.eat(token.Comma); !ok {
			break
		}
		if p.at(token.RBracket) {
			break
		}
	}
	if !p.at(token.RBracket) {
		return nil, false
	}
	return list, true
}

// parseNamedProperties is the committed variant used after a default
// value and comma, where no ambiguity remains. Unlike
// tryNamedProperties it reports precise errors and recovers to the
// next comma.
func (p *Parser) parseNamedProperties() []ast.Property {
	var list []ast.Property
	for {
		if !p.at(token.Ident) {
			p.errExpected(diag.SynExpectProperty, "property")
			p.skipUntil(token.Comma, token.RBracket, token.LBrace, token.RBrace)
		} else {
			key := p.advance()
			prop := ast.Property{
				Span: key.Span,
				Key:  ast.Identifier{Span: key.Span, Name: key.Text},
			}
			if _, ok := p.eat(token.Assign); ok {
				val := p.parseValue()
				if val == nil {
					p.errExpected(diag.SynExpectValue, "value")
					p.skipUntil(token.Comma, token.RBracket, token.LBrace, token.RBrace)
				} else {
					prop.Value = val
					prop.Span = prop.Span.Cover(val.GetSpan())
				}
			}
			list = append(list, prop)
		}
		if _, ok := p.eat(token.Comma); !ok {
			return list
		}
		if p.at(token.RBracket) {
			return list
		}
	}
}

// parseComponentDefinition parses
// ''component' IDENTIFIER properties_definition? children?'.
// It returns nil when not even the name could be parsed.
func (p *Parser) parseComponentDefinition() *ast.ComponentDefinition {
	kw := p.advance()
	nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier)
	if !ok {
		return nil
	}
	def := &ast.ComponentDefinition{
		Span: kw.Span.Cover(nameTok.Span),
		Name: ast.Identifier{Span: nameTok.Span, Name: nameTok.Text},
	}
	if p.at(token.LBracket) {
		pd := p.parsePropertiesDefinition()
		def.Properties = pd
		def.Span = def.Span.Cover(pd.Span)
	}
	if p.at(token.LBrace) {
		children := p.parseChildren()
		def.Children = children
		def.Span = def.Span.Cover(children.Span)
	}
	return def
}

// parsePropertiesDefinition parses
// '[' (property_definition (',' property_definition)*)? ']'.
// Definition lists, unlike component property lists, admit no trailing
// comma.
func (p *Parser) parsePropertiesDefinition() *ast.PropertiesDefinition {
	lb := p.advance()
	pd := &ast.PropertiesDefinition{Span: lb.Span}
	if rb, ok := p.eat(token.RBracket); ok {
		pd.Span = pd.Span.Cover(rb.Span)
		return pd
	}
	for {
		decl, ok := p.parsePropertyDefinition()
		if ok {
			pd.List = append(pd.List, decl)
			pd.Span = pd.Span.Cover(decl.Span)
		} else {
			p.skipUntil(token.Comma, token.RBracket, token.LBrace, token.RBrace)
		}
		if _, ok := p.eat(token.Comma); !ok {
			break
		}
	}
	if rb, ok := p.expect(token.RBracket, diag.SynExpectRBracket); ok {
		pd.Span = pd.Span.Cover(rb.Span)
	}
	return pd
}

// parsePropertyDefinition parses one of the three declaration forms:
//
//	'default' IDENTIFIER ':' type ('=' value)?
//	'text' IDENTIFIER
//	IDENTIFIER ':' type ('=' value)?
func (p *Parser) parsePropertyDefinition() (ast.PropertyDefinition, bool) {
	tok := p.cur()
	switch tok.Kind {
	case token.KwDefault:
		p.advance()
		decl, ok := p.parseNamedDefinition()
		decl.Kind = ast.DefaultDef
		decl.Span = tok.Span.Cover(decl.Span)
		return decl, ok
	case token.KwText:
		p.advance()
		nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier)
		if !ok {
			return ast.PropertyDefinition{}, false
		}
		return ast.PropertyDefinition{
			Span: tok.Span.Cover(nameTok.Span),
			Kind: ast.TextDef,
			Name: ast.Identifier{Span: nameTok.Span, Name: nameTok.Text},
		}, true
	case token.Ident:
		return p.parseNamedDefinition()
	}
	p.errExpected(diag.SynExpectProperty, "property definition")
	return ast.PropertyDefinition{}, false
}

// parseNamedDefinition parses 'IDENTIFIER ':' type ('=' value)?'.
func (p *Parser) parseNamedDefinition() (ast.PropertyDefinition, bool) {
	nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier)
	if !ok {
		return ast.PropertyDefinition{}, false
	}
	decl := ast.PropertyDefinition{
		Span: nameTok.Span,
		Kind: ast.NamedDef,
		Name: ast.Identifier{Span: nameTok.Span, Name: nameTok.Text},
	}
	if _, ok := p.expect(token.Colon, diag.SynUnexpectedToken); !ok {
		return decl, false
	}
	ty, ok := p.parseType()
	if !ok {
		return decl, false
	}
	decl.Type = &ty
	decl.Span = decl.Span.Cover(ty.Span)
	if _, ok := p.eat(token.Assign); ok {
		val := p.parseValue()
		if val == nil {
			p.errExpected(diag.SynExpectValue, "value")
			return decl, false
		}
		decl.DefaultValue = val
		decl.Span = decl.Span.Cover(val.GetSpan())
	}
	return decl, true
}
