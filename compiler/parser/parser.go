// Package parser builds a concrete syntax tree from a Pact token stream
// using single-token lookahead, recovering at the enclosing delimiter after
// a syntax error instead of aborting the whole parse.
package parser

import (
	"github.com/akitaonrails/pact-lang/compiler/cst"
	"github.com/akitaonrails/pact-lang/compiler/diag"
	"github.com/akitaonrails/pact-lang/compiler/token"
)

type Parser struct {
	toks []token.Token
	pos  int
	diag *diag.Collector
}

func New(toks []token.Token, d *diag.Collector) *Parser {
	return &Parser{toks: toks, diag: d}
}

// ParseAll parses every top-level form in the token stream and returns them
// wrapped in a synthetic top-level list node, matching the whole-module
// parse entry point the driver calls.
func ParseAll(toks []token.Token, d *diag.Collector) cst.Node {
	p := New(toks, d)
	var forms []cst.Node
	for p.cur().Kind != token.EOF {
		forms = append(forms, p.parseForm())
	}
	return cst.Node{Kind: cst.KindList, Children: forms, Start: 0, End: p.cur().End}
}

func (p *Parser) cur() token.Token {
	return p.toks[p.pos]
}

func (p *Parser) advance() token.Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) parseForm() cst.Node {
	switch p.cur().Kind {
	case token.LParen:
		return p.parseSeq(token.LParen, token.RParen, cst.KindList)
	case token.LBracket:
		return p.parseSeq(token.LBracket, token.RBracket, cst.KindVector)
	case token.LBrace:
		return p.parseMap()
	case token.Symbol, token.Keyword, token.String, token.Integer, token.Boolean, token.Duration, token.Regex:
		t := p.advance()
		return cst.Node{Kind: cst.KindAtom, Atom: t, Start: t.Start, End: t.End}
	default:
		t := p.advance()
		p.diag.Errorf(diag.UnexpectedEOF, t.Start, t.End, "unexpected token %s", t.Kind)
		return cst.Node{Kind: cst.KindAtom, Atom: t, Start: t.Start, End: t.End}
	}
}

func (p *Parser) parseSeq(open, close token.Kind, kind cst.Kind) cst.Node {
	openTok := p.advance() // consume open delimiter
	var children []cst.Node
	for p.cur().Kind != close {
		if p.cur().Kind == token.EOF {
			p.diag.Errorf(diag.MismatchedDelimiter, openTok.Start, p.cur().End,
				"unterminated %s starting at %s", kind, openTok.Pos)
			return cst.Node{Kind: kind, Children: children, Start: openTok.Start, End: p.cur().End}
		}
		children = append(children, p.parseForm())
	}
	closeTok := p.advance() // consume close delimiter
	return cst.Node{Kind: kind, Children: children, Start: openTok.Start, End: closeTok.End}
}

// parseMap parses a brace-delimited map literal. Keys may be written as a
// bare keyword (`:key value`) or a symbol followed by an explicit colon
// (`key: value`); a trailing comma between entries is optional. Both Colon
// and Comma tokens are consumed as pure separators and never appear in the
// resulting tree.
func (p *Parser) parseMap() cst.Node {
	openTok := p.advance() // consume '{'
	var entries []cst.MapEntry
	for p.cur().Kind != token.RBrace {
		if p.cur().Kind == token.EOF {
			p.diag.Errorf(diag.MismatchedDelimiter, openTok.Start, p.cur().End,
				"unterminated map starting at %s", openTok.Pos)
			return cst.Node{Kind: cst.KindMap, Entries: entries, Start: openTok.Start, End: p.cur().End}
		}
		key := p.parseForm()
		if p.cur().Kind == token.Colon {
			p.advance()
		}
		if p.cur().Kind == token.RBrace || p.cur().Kind == token.EOF {
			p.diag.Errorf(diag.OddMapArity, key.Start, p.cur().End, "map entry missing value")
			entries = append(entries, cst.MapEntry{Key: key})
			break
		}
		value := p.parseForm()
		entries = append(entries, cst.MapEntry{Key: key, Value: value})
		if p.cur().Kind == token.Comma {
			p.advance()
		}
	}
	closeTok := p.advance() // consume '}'
	return cst.Node{Kind: cst.KindMap, Entries: entries, Start: openTok.Start, End: closeTok.End}
}
