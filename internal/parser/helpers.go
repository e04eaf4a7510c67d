package parser

import (
	"clukc/internal/diag"
	"clukc/internal/source"
	"clukc/internal/token"
)

// advance consumes the next token and remembers its span.
func (p *Parser) advance() token.Token {
	tok := p.lx.Next()
	if tok.Kind != token.EOF {
		p.lastSpan = tok.Span
	}
	return tok
}

// diagnosticSpan points at the next token, or just past the last one at EOF.
func (p *Parser) diagnosticSpan() source.Span {
	peek := p.lx.Peek()
	if peek.Kind == token.EOF && p.lastSpan.End > 0 {
		return source.Span{File: p.lastSpan.File, Start: p.lastSpan.End, End: p.lastSpan.End}
	}
	return peek.Span
}

// expect consumes a token of kind k or reports code and returns false.
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	sp := p.diagnosticSpan()
	p.report(code, diag.SevError, sp, msg+", got "+describe(p.lx.Peek()))
	return token.Token{Kind: token.Invalid, Span: sp}, false
}

func (p *Parser) errAt(code diag.Code, sp source.Span, msg string) {
	p.report(code, diag.SevError, sp, msg)
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string, notes ...diag.Note) bool {
	if sev == diag.SevError {
		// past the limit errors are counted but not reported
		enough := p.opts.Enough()
		p.opts.CurrentErrors++
		if enough {
			return false
		}
	}
	if p.opts.Reporter == nil {
		return false
	}
	p.opts.Reporter.Report(code, sev, sp, msg, notes)
	return true
}

// resync skips to just past the next ';' or up to the next statement
// starter, whichever comes first.
func (p *Parser) resync() {
	for !p.at(token.EOF) {
		if p.at(token.Semicolon) {
			p.advance()
			return
		}
		if isStatementStarter(p.lx.Peek().Kind) {
			return
		}
		p.advance()
	}
}
