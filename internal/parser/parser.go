// Package parser converts a token stream from internal/lexer into the
// ast.Term sequence the evaluator runs. It recognizes the full Joy
// grammar: bare terms, quotations, set literals, DEFINE/LIBRA/CONST
// blocks, and HIDE/IN/END blocks, emitting Definition terms inline at
// the point they occur so that code appearing before a redefinition
// keeps seeing the prior binding.
package parser

import (
	"math"
	"strconv"

	"github.com/cwbudde/go-joy/internal/ast"
	"github.com/cwbudde/go-joy/internal/errors"
	"github.com/cwbudde/go-joy/internal/lexer"
)

// Parser holds the token cursor and source metadata needed to format
// diagnostics.
type Parser struct {
	toks   []lexer.Token
	pos    int
	source string
	file   string
	errs   []*errors.SyntaxError
}

// New creates a Parser over the full token stream produced by lx.
// Scanner errors recorded on lx are not reported by the Parser; callers
// read them from lx.Errors() themselves, as Evaluator.Run does.
func New(lx *lexer.Lexer, source, file string) *Parser {
	var toks []lexer.Token
	for {
		t := lx.NextToken()
		toks = append(toks, t)
		if t.Type == lexer.EOF {
			break
		}
	}
	return &Parser{toks: toks, source: source, file: file}
}

// Errors returns the parser's accumulated syntax-error list. Parse
// returns the first error it meets directly and does not add to this
// list, and lexical errors are not folded into it, so it stays empty.
func (p *Parser) Errors() []*errors.SyntaxError { return p.errs }

func (p *Parser) current() lexer.Token { return p.toks[p.pos] }

func (p *Parser) advance() lexer.Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) atEOF() bool { return p.current().Type == lexer.EOF }

func (p *Parser) syntaxErr(pos lexer.Position, msg string) *errors.SyntaxError {
	return errors.NewSyntaxError(pos, msg, p.source, p.file)
}

// Parse consumes the whole token stream and returns the program as a
// flat sequence of terms, with DEFINE/LIBRA/CONST/HIDE blocks expanded
// into inline Definition terms at their original position.
func (p *Parser) Parse() ([]ast.Term, error) {
	var terms []ast.Term

	for !p.atEOF() {
		tok := p.current()
		switch tok.Type {
		case lexer.DEFINE, lexer.LIBRA, lexer.CONST:
			defs, err := p.parseDefinitionBlock()
			if err != nil {
				return nil, err
			}
			terms = append(terms, defs...)
		case lexer.HIDE:
			defs, err := p.parseHideBlock()
			if err != nil {
				return nil, err
			}
			terms = append(terms, defs...)
		case lexer.MODULE:
			// MODULE name . -- namespacing is not enforced; skip the clause.
			p.advance()
			for !p.atEOF() && p.current().Type != lexer.PERIOD {
				p.advance()
			}
			if !p.atEOF() {
				p.advance()
			}
		default:
			term, skip, err := p.parseTerm()
			if err != nil {
				return nil, err
			}
			if !skip {
				terms = append(terms, term)
			}
		}
	}

	return terms, nil
}

// parseTerms parses a term sequence until a token whose type is in stop.
func (p *Parser) parseTerms(stop map[lexer.TokenType]bool) ([]ast.Term, error) {
	var terms []ast.Term
	for !p.atEOF() && !stop[p.current().Type] {
		term, skip, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		if !skip {
			terms = append(terms, term)
		}
	}
	return terms, nil
}

var blockStop = map[lexer.TokenType]bool{
	lexer.SEMICOLON: true,
	lexer.PERIOD:    true,
	lexer.DEFINE:    true,
	lexer.LIBRA:     true,
	lexer.CONST:     true,
}

// parseDefinitionBlock parses a DEFINE/LIBRA/CONST block:
//
//	DEFINE name1 == body1; name2 == body2 .
//
// PUBLIC/PRIVATE modifiers are accepted and ignored: Joy has no
// enforced visibility, only documentation convention.
func (p *Parser) parseDefinitionBlock() ([]ast.Term, error) {
	start := p.advance() // DEFINE / LIBRA / CONST
	var defs []ast.Term

	for {
		tok := p.current()
		if p.atEOF() {
			break
		}

		switch tok.Type {
		case lexer.PUBLIC, lexer.PRIVATE:
			p.advance()
			continue
		case lexer.END:
			p.advance()
			return defs, nil
		case lexer.PERIOD:
			p.advance()
			return defs, nil
		}

		if tok.Type != lexer.SYMBOL {
			return nil, p.syntaxErr(tok.Pos, "expected a name in definition, got "+tok.Type.String())
		}
		name := tok.Literal
		p.advance()

		def := p.current()
		if def.Type != lexer.DEFOP {
			return nil, p.syntaxErr(start.Pos, "expected '==' after name '"+name+"' in definition")
		}
		p.advance()

		body, err := p.parseTerms(blockStop)
		if err != nil {
			return nil, err
		}
		defs = append(defs, ast.DefinitionTerm(ast.Definition{Name: name, Body: body}, tok.Pos))

		switch p.current().Type {
		case lexer.SEMICOLON:
			p.advance()
		case lexer.PERIOD:
			p.advance()
			return defs, nil
		case lexer.DEFINE, lexer.LIBRA, lexer.CONST:
			return defs, nil
		}
	}

	return defs, nil
}

var hideHiddenStop = map[lexer.TokenType]bool{
	lexer.SEMICOLON: true,
	lexer.IN:        true,
	lexer.END:       true,
	lexer.PERIOD:    true,
}

var hidePublicStop = map[lexer.TokenType]bool{
	lexer.SEMICOLON: true,
	lexer.END:       true,
	lexer.PERIOD:    true,
}

// parseHideBlock parses:
//
//	HIDE hidden == body; ... IN public == body; ... END.
//
// Hidden and public definitions are both inlined into the surrounding
// program; Joy's HIDE restricts visibility only within the block's own
// bodies, which is already respected by ordinary lexical lookup order.
func (p *Parser) parseHideBlock() ([]ast.Term, error) {
	p.advance() // HIDE
	var defs []ast.Term

	for !p.atEOF() {
		tok := p.current()
		if tok.Type == lexer.IN {
			p.advance()
			break
		}
		if tok.Type == lexer.END {
			p.advance()
			if p.current().Type == lexer.PERIOD {
				p.advance()
			}
			return defs, nil
		}
		if tok.Type != lexer.SYMBOL {
			p.advance()
			continue
		}
		name := tok.Literal
		p.advance()
		if p.current().Type != lexer.DEFOP {
			continue
		}
		p.advance()
		body, err := p.parseTerms(hideHiddenStop)
		if err != nil {
			return nil, err
		}
		defs = append(defs, ast.DefinitionTerm(ast.Definition{Name: name, Body: body}, tok.Pos))
		if p.current().Type == lexer.SEMICOLON {
			p.advance()
		}
	}

	for !p.atEOF() {
		tok := p.current()
		if tok.Type == lexer.END {
			p.advance()
			if p.current().Type == lexer.PERIOD {
				p.advance()
			}
			break
		}
		if tok.Type != lexer.SYMBOL {
			p.advance()
			continue
		}
		name := tok.Literal
		p.advance()
		if p.current().Type != lexer.DEFOP {
			continue
		}
		p.advance()
		body, err := p.parseTerms(hidePublicStop)
		if err != nil {
			return nil, err
		}
		defs = append(defs, ast.DefinitionTerm(ast.Definition{Name: name, Body: body}, tok.Pos))
		if p.current().Type == lexer.SEMICOLON {
			p.advance()
		}
	}

	return defs, nil
}

var quotationStop = map[lexer.TokenType]bool{lexer.RBRACKET: true}
var setStop = map[lexer.TokenType]bool{lexer.RBRACE: true}

// parseTerm parses exactly one term. The returned bool reports whether
// the term should be skipped (a bare separator or stray keyword with no
// stack effect) rather than appended to the enclosing sequence.
func (p *Parser) parseTerm() (ast.Term, bool, error) {
	tok := p.current()

	switch tok.Type {
	case lexer.INT:
		p.advance()
		return ast.ValueTerm(ast.Int(parseInt(tok.Literal)), tok.Pos), false, nil
	case lexer.FLOAT:
		p.advance()
		return ast.ValueTerm(ast.Flo(parseFloat(tok.Literal)), tok.Pos), false, nil
	case lexer.STRING:
		p.advance()
		return ast.ValueTerm(ast.Str(tok.Literal), tok.Pos), false, nil
	case lexer.CHAR:
		p.advance()
		r := []rune(tok.Literal)
		var ch rune
		if len(r) > 0 {
			ch = r[0]
		}
		return ast.ValueTerm(ast.Chr(ch), tok.Pos), false, nil
	case lexer.TRUE:
		p.advance()
		return ast.ValueTerm(ast.Bln(true), tok.Pos), false, nil
	case lexer.FALSE:
		p.advance()
		return ast.ValueTerm(ast.Bln(false), tok.Pos), false, nil
	case lexer.LBRACKET:
		return p.parseQuotation()
	case lexer.LBRACE:
		return p.parseSet()
	case lexer.SYMBOL:
		p.advance()
		return ast.SymbolTerm(tok.Literal, tok.Pos), false, nil
	case lexer.SHELLESCAPE:
		p.advance()
		return ast.ShellTerm(tok.Literal, tok.Pos), false, nil
	case lexer.PERIOD:
		// Outside a definition block '.' is the pop-and-print-the-top
		// operator, itself an ordinary symbol to resolve.
		p.advance()
		return ast.SymbolTerm(".", tok.Pos), false, nil
	case lexer.SEMICOLON:
		p.advance()
		return ast.Term{}, true, nil
	case lexer.DEFOP:
		p.advance()
		return ast.Term{}, true, nil
	case lexer.PUBLIC, lexer.PRIVATE, lexer.END, lexer.IN, lexer.MODULE,
		lexer.DEFINE, lexer.LIBRA, lexer.CONST, lexer.HIDE:
		// Reserved words are only meaningful at top level; nested inside a
		// quotation they carry no stack effect and are dropped.
		p.advance()
		return ast.Term{}, true, nil
	case lexer.EOF:
		return ast.Term{}, true, nil
	default:
		return ast.Term{}, false, p.syntaxErr(tok.Pos, "unexpected token: "+tok.Type.String())
	}
}

func (p *Parser) parseQuotation() (ast.Term, bool, error) {
	start := p.advance() // '['
	terms, err := p.parseTerms(quotationStop)
	if err != nil {
		return ast.Term{}, false, err
	}
	if p.current().Type != lexer.RBRACKET {
		return ast.Term{}, false, p.syntaxErr(start.Pos, "expected ']'")
	}
	p.advance()
	return ast.ValueTerm(ast.Quot(terms), start.Pos), false, nil
}

func (p *Parser) parseSet() (ast.Term, bool, error) {
	start := p.advance() // '{'
	terms, err := p.parseTerms(setStop)
	if err != nil {
		return ast.Term{}, false, err
	}
	if p.current().Type != lexer.RBRACE {
		return ast.Term{}, false, p.syntaxErr(start.Pos, "expected '}'")
	}
	p.advance()

	var bits uint64
	for _, t := range terms {
		if t.IsDefinition || t.Val.Kind != ast.Integer {
			return ast.Term{}, false, p.syntaxErr(start.Pos, "set members must be integers in range [0,63]")
		}
		n := t.Val.Int
		if n < 0 || n > 63 {
			return ast.Term{}, false, errors.NewSetMemberError(start.Pos, int(n), p.source, p.file)
		}
		bits |= 1 << uint(n)
	}
	return ast.ValueTerm(ast.SetOf(bits), start.Pos), false, nil
}

func parseInt(lit string) int64 {
	neg := false
	s := lit
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}
	var v int64
	for _, c := range s {
		v = v*10 + int64(c-'0')
	}
	if neg {
		v = -v
	}
	return v
}

func parseFloat(lit string) float64 {
	switch lit {
	case "inf":
		return math.Inf(1)
	case "-inf":
		return math.Inf(-1)
	case "nan":
		return math.NaN()
	}
	f, _ := strconv.ParseFloat(lit, 64)
	return f
}
