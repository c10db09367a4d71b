package fbp

import (
	"fmt"

	"github.com/flowc-lang/flowc/pkg/ast"
	"github.com/flowc-lang/flowc/pkg/diag"
)

// Parse reads a dataflow script and returns its AST as a Block root,
// along with any ParseError diagnostics encountered. Parsing stops at
// the first structural error; a script with only lexical problems in
// trailing, unreachable text still returns the tree parsed so far.
func Parse(src string) (*ast.Node, []diag.Diagnostic) {
	p := &parser{lex: newLexer(src)}
	p.advance()

	root := ast.NewBlock()

	for p.cur.kind != tokEOF {
		if p.parseStatement(root) == nil {
			break
		}
	}

	return root, p.diags
}

type parser struct {
	lex   *lexer
	cur   token
	diags []diag.Diagnostic
}

func (p *parser) advance() {
	tok, err := p.lex.next()
	if err != nil {
		p.errorf(p.lex.line, p.lex.col, "%s", err.Error())

		p.cur = token{kind: tokEOF}

		return
	}

	p.cur = tok
}

func (p *parser) errorf(line, col int, format string, args ...any) {
	p.diags = append(p.diags, diag.Diagnostic{
		Severity: diag.SeverityError,
		Reason:   diag.ReasonParseError,
		Message:  fmt.Sprintf(format, args...),
		Line:     line,
		Col:      col,
	})
}

func (p *parser) expect(kind tokenKind, what string) (token, bool) {
	if p.cur.kind != kind {
		p.errorf(p.cur.line, p.cur.col, "expected %s, found %q", what, p.cur.text)

		return token{}, false
	}

	tok := p.cur
	p.advance()

	return tok, true
}

// parseStatement parses one top-level or block-level statement
// (component declaration, assignment, or link) and attaches it to
// parent. It returns the parsed node, or nil on unrecoverable error.
func (p *parser) parseStatement(parent *ast.Node) *ast.Node {
	switch p.cur.kind {
	case tokKeywordComponent:
		return p.parseComponent(parent)
	case tokIdent:
		return p.parseIdentLeadStatement(parent)
	case tokDot:
		return p.parseLinkFromOutport(parent, p.parseBoundaryPort(true))
	case tokNumber, tokString, tokKeywordTrue, tokKeywordFalse, tokKeywordNull:
		return p.parseLinkFromOutport(parent, p.parseImplicitPort())
	default:
		p.errorf(p.cur.line, p.cur.col, "unexpected token %q at start of statement", p.cur.text)
		p.advance()

		return nil
	}
}

// parseIdentLeadStatement disambiguates `ident: actor(...)` (assignment)
// from `ident.port > ...` (link), both of which start with an identifier.
func (p *parser) parseIdentLeadStatement(parent *ast.Node) *ast.Node {
	ident := p.cur
	p.advance()

	if p.cur.kind == tokColon {
		return p.parseAssignment(parent, ident)
	}

	outport := p.parseActorPort(ident.text, ast.KindOutPort)

	return p.parseLinkFromOutport(parent, outport)
}

func (p *parser) parseAssignment(parent *ast.Node, ident token) *ast.Node {
	if _, ok := p.expect(tokColon, "':'"); !ok {
		return nil
	}

	actorType, ok := p.parseQualifiedIdent()
	if !ok {
		return nil
	}

	assignment := ast.NewAssignment(ident.text, actorType)
	assignment.Pos = ast.Pos{Line: ident.line, Col: ident.col}

	if p.cur.kind == tokLParen {
		p.advance()

		for p.cur.kind != tokRParen {
			if !p.parseNamedArg(assignment) {
				return nil
			}

			if p.cur.kind == tokComma {
				p.advance()
			}
		}

		p.advance() // consume ')'
	}

	if _, ok := p.expect(tokSemicolon, "';'"); !ok {
		return nil
	}

	parent.AddChild(assignment)

	return assignment
}

// parseQualifiedIdent parses a dot-joined identifier such as
// "std.Identity", used for actor type names.
func (p *parser) parseQualifiedIdent() (string, bool) {
	first, ok := p.expect(tokIdent, "actor type")
	if !ok {
		return "", false
	}

	name := first.text

	for p.cur.kind == tokDot {
		p.advance()

		next, ok := p.expect(tokIdent, "qualified identifier segment")
		if !ok {
			return "", false
		}

		name += "." + next.text
	}

	return name, true
}

func (p *parser) parseNamedArg(assignment *ast.Node) bool {
	name, ok := p.expect(tokIdent, "argument name")
	if !ok {
		return false
	}

	if _, ok := p.expect(tokEquals, "'='"); !ok {
		return false
	}

	value := p.parseValueExpr()
	if value == nil {
		return false
	}

	namedArg := ast.NewNamedArg(ast.NewID(name.text), value)
	assignment.AddChild(namedArg)

	return true
}

// parseValueExpr parses a literal constant (number, string, bool, null)
// or an identifier reference used in component argument position.
func (p *parser) parseValueExpr() *ast.Node {
	tok := p.cur

	switch tok.kind {
	case tokNumber:
		n, err := parseNumberLiteral(tok.text)
		if err != nil {
			p.errorf(tok.line, tok.col, "%s", err.Error())

			return nil
		}

		p.advance()

		v := ast.NewValue(n)
		v.Pos = ast.Pos{Line: tok.line, Col: tok.col}

		return v
	case tokString:
		p.advance()

		v := ast.NewValue(tok.text)
		v.Pos = ast.Pos{Line: tok.line, Col: tok.col}

		return v
	case tokKeywordTrue, tokKeywordFalse:
		p.advance()

		v := ast.NewValue(tok.kind == tokKeywordTrue)
		v.Pos = ast.Pos{Line: tok.line, Col: tok.col}

		return v
	case tokKeywordNull:
		p.advance()

		v := ast.NewValue(nil)
		v.Pos = ast.Pos{Line: tok.line, Col: tok.col}

		return v
	case tokIdent:
		p.advance()

		id := ast.NewID(tok.text)
		id.Pos = ast.Pos{Line: tok.line, Col: tok.col}

		return id
	default:
		p.errorf(tok.line, tok.col, "expected a value, found %q", tok.text)

		return nil
	}
}

// parseImplicitPort parses a bare literal used as a link source
// (`42 > a.in;`), wrapping it in an ImplicitPort for ImplicitPortRewrite
// to desugar later into a synthesized std.Constant.
func (p *parser) parseImplicitPort() *ast.Node {
	tok := p.cur

	literal := p.parseValueExpr()
	if literal == nil {
		return nil
	}

	ip := ast.NewImplicitPort(literal)
	ip.Pos = ast.Pos{Line: tok.line, Col: tok.col}

	return ip
}

// parseBoundaryPort parses the `.port` form of a port reference, used
// inside a component body to refer to its own declared interface. outer
// selects which marker kind it becomes: InternalInPort in the outport
// slot (an inbound interface port acting as an internal source) or
// InternalOutPort in the inport slot (an outbound interface port
// acting as an internal sink).
func (p *parser) parseBoundaryPort(outer bool) *ast.Node {
	line, col := p.cur.line, p.cur.col

	if _, ok := p.expect(tokDot, "'.'"); !ok {
		return nil
	}

	name, ok := p.expect(tokIdent, "port name")
	if !ok {
		return nil
	}

	kind := ast.KindInternalOutPort
	if outer {
		kind = ast.KindInternalInPort
	}

	port := ast.NewPort(kind, "", name.text)
	port.Pos = ast.Pos{Line: line, Col: col}

	return port
}

// parseActorPort parses the `.port` suffix of `actor.port`, given an
// already-consumed actor identifier.
func (p *parser) parseActorPort(actor string, kind ast.Kind) *ast.Node {
	line, col := p.cur.line, p.cur.col

	if _, ok := p.expect(tokDot, "'.'"); !ok {
		return nil
	}

	name, ok := p.expect(tokIdent, "port name")
	if !ok {
		return nil
	}

	port := ast.NewPort(kind, actor, name.text)
	port.Pos = ast.Pos{Line: line, Col: col}

	return port
}

// parseLinkFromOutport finishes a link statement given its
// already-parsed outport side.
func (p *parser) parseLinkFromOutport(parent *ast.Node, outport *ast.Node) *ast.Node {
	if outport == nil {
		return nil
	}

	if _, ok := p.expect(tokGT, "'>'"); !ok {
		return nil
	}

	var inport *ast.Node

	if p.cur.kind == tokDot {
		inport = p.parseBoundaryPort(false)
	} else {
		actorTok, ok := p.expect(tokIdent, "actor name")
		if !ok {
			return nil
		}

		inport = p.parseActorPort(actorTok.text, ast.KindInPort)
	}

	if inport == nil {
		return nil
	}

	if _, ok := p.expect(tokSemicolon, "';'"); !ok {
		return nil
	}

	link := ast.NewLink(outport, inport)
	parent.AddChild(link)

	return link
}

// parseComponent parses `component Name(arg1, arg2) in1,in2 -> out1,out2 { ... }`.
func (p *parser) parseComponent(parent *ast.Node) *ast.Node {
	p.advance() // consume 'component'

	name, ok := p.expect(tokIdent, "component name")
	if !ok {
		return nil
	}

	var argNames []string

	if p.cur.kind == tokLParen {
		p.advance()

		for p.cur.kind != tokRParen {
			arg, ok := p.expect(tokIdent, "component argument")
			if !ok {
				return nil
			}

			argNames = append(argNames, arg.text)

			if p.cur.kind == tokComma {
				p.advance()
			}
		}

		p.advance() // consume ')'
	}

	// Declared in/out interface names are documentation for the reader;
	// the compiler core discovers real boundary ports by walking the
	// expanded body's InternalInPort/InternalOutPort markers instead, so
	// these lists are consumed here only to advance past them.
	for p.cur.kind == tokIdent {
		p.advance()

		if p.cur.kind == tokComma {
			p.advance()
		}
	}

	if _, ok := p.expect(tokArrow, "'->'"); !ok {
		return nil
	}

	for p.cur.kind == tokIdent {
		p.advance()

		if p.cur.kind == tokComma {
			p.advance()
		}
	}

	if _, ok := p.expect(tokLBrace, "'{'"); !ok {
		return nil
	}

	body := ast.NewBlock()

	for p.cur.kind != tokRBrace && p.cur.kind != tokEOF {
		if p.parseStatement(body) == nil {
			break
		}
	}

	if _, ok := p.expect(tokRBrace, "'}'"); !ok {
		return nil
	}

	component := ast.NewComponent(name.text, argNames, body)
	component.Pos = ast.Pos{Line: name.line, Col: name.col}
	parent.AddChild(component)

	return component
}
