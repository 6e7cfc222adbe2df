package syntax

import "strings"

// precedence levels, lowest to highest.
const (
	precOr        = 1
	precAnd       = 2
	precSeq       = 3
	precIntersect = 4
)

type prefixParselet func(*Parser, token) *Node
type infixParselet func(*Parser, *Node, token) *Node

// Parser is a Pratt parser over the pattern grammar, built around
// prefix/infix parselet tables keyed by token kind.
type Parser struct {
	lexer lexer

	prefixParselets map[tokenKind]prefixParselet
	infixParselets  map[tokenKind]infixParselet
}

// NewParser builds a ready-to-use Parser.
func NewParser() *Parser {
	p := &Parser{
		prefixParselets: map[tokenKind]prefixParselet{},
		infixParselets:  map[tokenKind]infixParselet{},
	}

	p.prefixParselets[tokIdent] = (*Parser).parseIdentAtom
	p.prefixParselets[tokLparen] = (*Parser).parseParen
	p.prefixParselets[tokLbracket] = (*Parser).parseSlice
	p.prefixParselets[tokLbrace] = (*Parser).parseSlice
	p.prefixParselets[tokNot] = (*Parser).parseUnary
	p.prefixParselets[tokFirst] = (*Parser).parseUnary
	p.prefixParselets[tokLast] = (*Parser).parseUnary

	p.infixParselets[tokOr] = func(p *Parser, left *Node, tok token) *Node {
		right := p.parseExpr(precOr)
		if left.Op == OpOr {
			left.Args = append(left.Args, right)
			return left
		}
		return Or(left, right)
	}
	p.infixParselets[tokAnd] = func(p *Parser, left *Node, tok token) *Node {
		right := p.parseExpr(precAnd)
		if left.Op == OpAnd {
			left.Args = append(left.Args, right)
			return left
		}
		return And(left, right)
	}
	p.infixParselets[tokIntersect] = func(p *Parser, left *Node, tok token) *Node {
		right := p.parseExpr(precIntersect)
		if left.Op == OpIntersect {
			left.Args = append(left.Args, right)
			return left
		}
		return Intersect(left, right)
	}
	p.infixParselets[tokSeq] = func(p *Parser, left *Node, tok token) *Node {
		right := p.parseExpr(precSeq)
		return Seq(left, right)
	}
	p.infixParselets[tokLooseSeq] = func(p *Parser, left *Node, tok token) *Node {
		right := p.parseExpr(precSeq)
		return LooseSeq(left, right)
	}

	return p
}

// Parse tokenizes and parses pattern, returning its expression tree.
// Parse errors halt only this call; the Parser may be reused afterwards.
func (p *Parser) Parse(pattern string) (result *Node, err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if pe, ok := r.(*ParseError); ok {
			err = pe
			return
		}
		panic(r)
	}()

	if lexErr := p.lexer.Init(pattern); lexErr != nil {
		return nil, lexErr
	}

	if !p.lexer.HasMoreTokens() {
		throwErrorf(0, 0, "empty pattern")
	}

	root := p.parseExpr(0)

	if p.lexer.HasMoreTokens() {
		tok := p.lexer.Peek()
		throwErrorf(tok.pos.Begin, tok.pos.End, "unexpected token %q after expression", tok.text)
	}

	return root, nil
}

func (p *Parser) parseExpr(precedence int) *Node {
	tok := p.lexer.NextToken()
	prefix := p.prefixParselets[tok.kind]
	if prefix == nil {
		p.missingOperand(tok)
	}
	left := prefix(p, tok)

	for precedence < p.precedenceOf(p.lexer.Peek()) {
		tok := p.lexer.NextToken()
		infix := p.infixParselets[tok.kind]
		left = infix(p, left, tok)
	}

	return left
}

func (p *Parser) missingOperand(tok token) {
	if tok.kind == tokEOF {
		throwErrorf(tok.pos.Begin, tok.pos.End, "unexpected end of pattern: missing operand")
	}
	throwErrorf(tok.pos.Begin, tok.pos.End, "unexpected token %q", tok.text)
}

func (p *Parser) precedenceOf(tok token) int {
	switch tok.kind {
	case tokOr:
		return precOr
	case tokAnd:
		return precAnd
	case tokSeq, tokLooseSeq:
		return precSeq
	case tokIntersect:
		return precIntersect
	default:
		return 0
	}
}

// parseIdentAtom turns a bare identifier into Elem, or into InElem/OutElem
// when it carries the "In"/"Out" literal prefix.
func (p *Parser) parseIdentAtom(tok token) *Node {
	name := tok.text
	if rest, ok := stripNonEmptyPrefix(name, "In"); ok {
		return InElem(rest)
	}
	if rest, ok := stripNonEmptyPrefix(name, "Out"); ok {
		return OutElem(rest)
	}
	return Elem(name)
}

func stripNonEmptyPrefix(name, prefix string) (string, bool) {
	if !strings.HasPrefix(name, prefix) {
		return "", false
	}
	rest := name[len(prefix):]
	if rest == "" {
		return "", false
	}
	return rest, true
}

func (p *Parser) parseParen(tok token) *Node {
	if p.lexer.Peek().kind == tokRparen {
		next := p.lexer.NextToken()
		throwErrorf(tok.pos.Begin, next.pos.End, "empty group")
	}
	body := p.parseExpr(0)
	closeTok := p.lexer.NextToken()
	if closeTok.kind != tokRparen {
		throwErrorf(tok.pos.Begin, closeTok.pos.End, "unmatched '('")
	}
	return body
}

// parseSlice parses a slice atom: [...]/[...}/{...]/{...}.
func (p *Parser) parseSlice(tok token) *Node {
	openLeft := tok.kind == tokLbrace
	if k := p.lexer.Peek().kind; k == tokRbracket || k == tokRbrace {
		next := p.lexer.NextToken()
		throwErrorf(tok.pos.Begin, next.pos.End, "empty group")
	}
	body := p.parseExpr(0)
	closeTok := p.lexer.NextToken()
	if closeTok.kind != tokRbracket && closeTok.kind != tokRbrace {
		throwErrorf(tok.pos.Begin, closeTok.pos.End, "unmatched '%s'", tok.kind)
	}
	openRight := closeTok.kind == tokRbrace
	return Slice(body, openLeft, openRight)
}

// parseUnary handles ~, ^ and $, which may stack in any order; the
// operand is parsed through the prefix table only (never through the
// infix loop), so unary binds tighter than every binary operator.
func (p *Parser) parseUnary(tok token) *Node {
	operandTok := p.lexer.NextToken()
	prefix := p.prefixParselets[operandTok.kind]
	if prefix == nil {
		p.missingOperand(operandTok)
	}
	child := prefix(p, operandTok)

	switch tok.kind {
	case tokNot:
		return Not(child)
	case tokFirst:
		return First(child)
	case tokLast:
		return Last(child)
	default:
		panic("unreachable")
	}
}
