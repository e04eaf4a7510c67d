package parser

import (
	"slices"

	"clukc/internal/diag"
	"clukc/internal/lexer"
	"clukc/internal/semval"
	"clukc/internal/source"
	"clukc/internal/symbols"
	"clukc/internal/token"
)

// Result is the outcome of translating one file.
type Result struct {
	Program semval.Value // the whole three-address listing
	Errors  uint
}

// Parser translates one file straight into three-address code. Grammar
// actions talk to the symbol table; there is no syntax tree.
type Parser struct {
	lx       *lexer.Lexer
	table    *symbols.Table
	opts     Options
	lastSpan source.Span
	// declaration spans per open scope, innermost last; used for
	// redeclaration notes
	declared []map[symbols.SymbolRef]source.Span
}

// ParseFile translates the token stream of lx. Declarations go into table,
// which must hold only its global scope; the scope depth is restored before
// returning, even for malformed input.
func ParseFile(lx *lexer.Lexer, table *symbols.Table, opts Options) Result {
	p := Parser{
		lx:       lx,
		table:    table,
		opts:     opts,
		declared: []map[symbols.SymbolRef]source.Span{{}},
	}
	program := p.parseItems(false)
	return Result{Program: program, Errors: p.opts.CurrentErrors}
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.lx.Peek().Kind)
}

// parseItems reads items until EOF, or until '}' inside a block.
func (p *Parser) parseItems(inBlock bool) semval.Value {
	parts := make([]semval.Value, 0, 16)
	for !p.at(token.EOF) {
		if inBlock && p.at(token.RBrace) {
			break
		}
		item, ok := p.parseItem()
		if !ok {
			p.resync()
			continue
		}
		parts = append(parts, item)
	}
	return semval.Join(parts...)
}

// parseItem dispatches on the first token of a statement.
func (p *Parser) parseItem() (semval.Value, bool) {
	tok := p.lx.Peek()
	switch {
	case tok.Kind.IsTypeKeyword():
		return p.parseDecl()
	case tok.Kind == token.Ident:
		return p.parseAssign()
	case tok.Kind == token.KwPrint:
		return p.parsePrint()
	case tok.Kind == token.LBrace:
		return p.parseBlock()
	case tok.Kind == token.Semicolon:
		p.advance()
		return semval.Value{}, true
	case tok.Kind == token.RBrace:
		// only reachable outside any block
		p.advance()
		p.report(diag.SynUnexpectedToken, diag.SevError, tok.Span, "unbalanced '}'")
		return semval.Value{}, true
	case tok.Kind == token.Invalid:
		// already reported by the lexer
		p.advance()
		return semval.Value{}, false
	default:
		p.advance()
		p.report(diag.SynUnexpectedToken, diag.SevError, tok.Span, "unexpected "+describe(tok)+" at start of statement")
		return semval.Value{}, false
	}
}

// isStatementStarter reports whether k can begin an item; resync stops there.
func isStatementStarter(k token.Kind) bool {
	switch k {
	case token.KwInt, token.KwFloat, token.KwChar, token.KwVoid, token.KwPrint, token.LBrace, token.RBrace:
		return true
	default:
		return false
	}
}

func describe(tok token.Token) string {
	switch tok.Kind {
	case token.EOF:
		return "end of file"
	case token.Ident, token.IntLit, token.FloatLit, token.CharLit, token.Invalid:
		return tok.Kind.String() + " \"" + tok.Text + "\""
	default:
		return "'" + tok.Kind.String() + "'"
	}
}
