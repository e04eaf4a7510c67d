package parser

import (
	"fmt"

	"clukc/internal/diag"
	"clukc/internal/semval"
	"clukc/internal/source"
	"clukc/internal/symbols"
	"clukc/internal/tac"
	"clukc/internal/token"
	"clukc/internal/types"
)

// parseDecl handles `type IDENT ('=' expr)? ';'`. The name is bound after
// the initializer is read, so `int x = x;` refers to an outer x.
func (p *Parser) parseDecl() (semval.Value, bool) {
	typTok := p.advance()
	typ, _ := types.FromKeyword(typTok.Text)

	nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected identifier after type "+typTok.Text)
	if !ok {
		return semval.Value{}, false
	}

	var (
		init    operand
		hasInit bool
		initOK  = true
	)
	if p.at(token.Assign) {
		p.advance()
		init, initOK = p.parseExpr()
		hasInit = true
	}

	if typ == types.Void {
		p.errAt(diag.SemaVoidVariable, nameTok.Span, fmt.Sprintf("variable %q declared void", nameTok.Text))
		return semval.Value{}, false
	}
	ref := p.declare(nameTok, typ)
	if !initOK {
		return semval.Value{}, false
	}
	if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after declaration"); !ok {
		return semval.Value{}, false
	}

	code := semval.Stmt(tac.Decl(p.table.Symbol(ref)))
	if !hasInit {
		return code, true
	}
	if init.Type != typ {
		p.errAt(diag.SemaTypeMismatch, init.span,
			fmt.Sprintf("cannot initialize %s variable %q with a %s value", typ, nameTok.Text, init.Type))
		return code, true
	}
	dst := p.table.VariableOf(ref)
	return semval.Join(code, init.Value, semval.Stmt(tac.Copy(dst, init.Addr))), true
}

// declare binds name in the innermost scope, applying the redeclaration
// policy first.
func (p *Parser) declare(name token.Token, typ types.Type) symbols.SymbolRef {
	if prev, ok := p.table.LookupLocal(name.Text); ok && p.opts.Redeclare != RedeclareAllow {
		sev := diag.SevWarning
		if p.opts.Redeclare == RedeclareError {
			sev = diag.SevError
		}
		var notes []diag.Note
		if sp, ok := p.declared[prev.Depth()][prev]; ok {
			notes = append(notes, diag.Note{Span: sp, Msg: "previous declaration is here"})
		}
		p.report(diag.SemaRedeclared, sev, name.Span, fmt.Sprintf("%q is already declared in this scope", name.Text), notes...)
	}
	ref := p.table.Declare(name.Text, typ)
	p.declared[ref.Depth()][ref] = name.Span
	return ref
}

// parseAssign handles `IDENT '=' expr ';'`.
func (p *Parser) parseAssign() (semval.Value, bool) {
	nameTok := p.advance()
	dst, found := p.table.MakeVariable(nameTok.Text)
	if !found {
		p.errAt(diag.SemaUnresolvedSymbol, nameTok.Span, fmt.Sprintf("undefined name %q", nameTok.Text))
	}
	if _, ok := p.expect(token.Assign, diag.SynUnexpectedToken, "expected '=' after "+nameTok.Text); !ok {
		return semval.Value{}, false
	}
	val, ok := p.parseExpr()
	if !ok {
		return semval.Value{}, false
	}
	if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after assignment"); !ok {
		return semval.Value{}, false
	}
	if !found {
		return semval.Value{}, true
	}
	if val.Type != dst.Type() {
		p.errAt(diag.SemaTypeMismatch, val.span,
			fmt.Sprintf("cannot assign a %s value to %s variable %q", val.Type, dst.Type(), nameTok.Text))
		return semval.Value{}, true
	}
	return semval.Join(val.Value, semval.Stmt(tac.Copy(dst, val.Addr))), true
}

// parsePrint handles `'print' expr ';'`.
func (p *Parser) parsePrint() (semval.Value, bool) {
	p.advance()
	val, ok := p.parseExpr()
	if !ok {
		return semval.Value{}, false
	}
	if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after print"); !ok {
		return semval.Value{}, false
	}
	return semval.Join(val.Value, semval.Stmt(tac.Print(val.Addr))), true
}

// parseBlock handles `'{' item* '}'`, one scope per block.
func (p *Parser) parseBlock() (semval.Value, bool) {
	open := p.advance()
	p.table.Push()
	p.declared = append(p.declared, map[symbols.SymbolRef]source.Span{})
	body := p.parseItems(true)
	p.declared = p.declared[:len(p.declared)-1]
	p.table.Pop()

	if !p.at(token.RBrace) {
		p.report(diag.SynUnclosedBrace, diag.SevError, p.diagnosticSpan(), "expected '}' before end of file",
			diag.Note{Span: open.Span, Msg: "block opened here"})
		return body, true
	}
	p.advance()
	return body, true
}
