package pyparse

import (
	"strings"

	"github.com/sirkon/pyrevu/internal/pyast"
)

// Expression parsing is deliberately loose: the review rules only need
// call, attribute, and name shapes to be structurally visible anywhere in
// an expression. Operators are folded into flat BinOp nodes without
// precedence ranking, and anything unrecognized degrades into an opaque
// Constant instead of failing the parse.

type exprParser struct {
	toks []token
	pos  int
	base pyast.Base
}

// parseExprList parses a possibly comma-separated expression. A top-level
// comma produces a Container (bare tuple), a single element parses as is.
func parseExprList(toks []token, base pyast.Base) pyast.Expr {
	groups := splitTopLevel(toks, ",")
	if len(groups) > 1 {
		elts := make([]pyast.Expr, 0, len(groups))
		for _, g := range groups {
			if len(g) == 0 {
				continue // trailing comma
			}
			elts = append(elts, parseExpr(g, base))
		}
		return &pyast.Container{Base: base, Elts: elts}
	}
	return parseExpr(toks, base)
}

// parseExpr parses a single comma-free expression.
func parseExpr(toks []token, base pyast.Base) pyast.Expr {
	p := &exprParser{toks: toks, base: base}
	return p.binary()
}

func (p *exprParser) eof() bool {
	return p.pos >= len(p.toks)
}

func (p *exprParser) peek() token {
	return p.toks[p.pos]
}

func (p *exprParser) binary() pyast.Expr {
	left := p.unary()
	for !p.eof() {
		op, ok := p.binaryOp()
		if !ok {
			// Juxtaposed tokens without a known operator between them.
			// Keep consuming so that call shapes further right stay visible.
			op = ""
		}
		right := p.unary()
		left = &pyast.BinOp{Base: p.base, Left: left, Op: op, Right: right}
	}
	return left
}

var binaryOps = map[string]bool{
	"+": true, "-": true, "*": true, "/": true, "%": true, "@": true,
	"**": true, "//": true, "<<": true, ">>": true, "&": true, "|": true,
	"^": true, "<": true, ">": true, "<=": true, ">=": true, "==": true,
	"!=": true, "=": true, ":": true, ":=": true, "->": true,
}

var keywordOps = map[string]bool{
	"and": true, "or": true, "in": true, "is": true, "not": true,
	"if": true, "else": true, "as": true,
}

func (p *exprParser) binaryOp() (string, bool) {
	t := p.peek()
	switch t.kind {
	case tokOp:
		if binaryOps[t.text] {
			p.pos++
			return t.text, true
		}
	case tokKeyword:
		if keywordOps[t.text] {
			p.pos++
			return t.text, true
		}
	}
	return "", false
}

var prefixOps = map[string]bool{
	"+": true, "-": true, "~": true, "*": true, "**": true,
}

var prefixKeywords = map[string]bool{
	"not": true, "await": true, "yield": true,
}

func (p *exprParser) unary() pyast.Expr {
	for !p.eof() {
		t := p.peek()
		if t.kind == tokOp && prefixOps[t.text] {
			p.pos++
			continue
		}
		if t.kind == tokKeyword && prefixKeywords[t.text] {
			p.pos++
			continue
		}
		break
	}
	if p.eof() {
		return &pyast.Constant{Base: p.base}
	}
	if t := p.peek(); t.kind == tokKeyword && t.text == "lambda" {
		return p.lambda()
	}
	return p.postfix(p.primary())
}

// lambda skips the parameter list and keeps the body expression reachable.
func (p *exprParser) lambda() pyast.Expr {
	p.pos++ // lambda
	depth := 0
	for !p.eof() {
		t := p.peek()
		if t.kind == tokOp {
			switch t.text {
			case "(", "[", "{":
				depth++
			case ")", "]", "}":
				depth--
			case ":":
				if depth == 0 {
					p.pos++
					body := p.unary()
					return &pyast.BinOp{
						Base:  p.base,
						Left:  &pyast.Constant{Base: p.base, Text: "lambda"},
						Op:    ":",
						Right: body,
					}
				}
			}
		}
		p.pos++
	}
	return &pyast.Constant{Base: p.base, Text: "lambda"}
}

func (p *exprParser) primary() pyast.Expr {
	t := p.peek()

	switch t.kind {
	case tokIdent:
		p.pos++
		return &pyast.Name{Base: p.base, Id: t.text}

	case tokNumber, tokString:
		p.pos++
		return &pyast.Constant{Base: p.base, Text: t.text}

	case tokKeyword:
		// True/False/None and stray keywords all end up opaque.
		p.pos++
		return &pyast.Constant{Base: p.base, Text: t.text}

	case tokOp:
		switch t.text {
		case "(":
			inner := p.bracketed("(", ")")
			groups := splitTopLevel(inner, ",")
			if len(inner) == 0 {
				return &pyast.Constant{Base: p.base, Text: "()"}
			}
			if len(groups) > 1 {
				return parseExprList(inner, p.base)
			}
			return parseExpr(inner, p.base)

		case "[", "{":
			closing := "]"
			if t.text == "{" {
				closing = "}"
			}
			inner := p.bracketed(t.text, closing)
			return p.container(inner)
		}
	}

	// Anything else: consume one token as opaque text.
	p.pos++
	return &pyast.Constant{Base: p.base, Text: t.text}
}

// container parses the inside of a list/set/dict display. Dict entries
// parse as "key: value" BinOps through the loose operator set.
func (p *exprParser) container(inner []token) pyast.Expr {
	var elts []pyast.Expr
	for _, g := range splitTopLevel(inner, ",") {
		if len(g) == 0 {
			continue
		}
		elts = append(elts, parseExpr(g, p.base))
	}
	return &pyast.Container{Base: p.base, Elts: elts}
}

// bracketed consumes the opening bracket at the current position and
// returns the tokens up to its matching closer, which is consumed too.
func (p *exprParser) bracketed(open, closing string) []token {
	p.pos++ // the opener
	start := p.pos
	depth := 0
	for !p.eof() {
		t := p.peek()
		if t.kind == tokOp {
			switch t.text {
			case "(", "[", "{":
				depth++
			case ")", "]", "}":
				if depth == 0 && t.text == closing {
					inner := p.toks[start:p.pos]
					p.pos++
					return inner
				}
				depth--
			}
		}
		p.pos++
	}
	return p.toks[start:p.pos] // unbalanced, take the rest
}

func (p *exprParser) postfix(expr pyast.Expr) pyast.Expr {
	for !p.eof() {
		t := p.peek()
		if t.kind != tokOp {
			return expr
		}

		switch t.text {
		case ".":
			if p.pos+1 >= len(p.toks) || p.toks[p.pos+1].kind != tokIdent {
				return expr
			}
			attr := p.toks[p.pos+1].text
			p.pos += 2
			expr = &pyast.Attribute{Base: p.base, Value: expr, Attr: attr}

		case "(":
			inner := p.bracketed("(", ")")
			expr = &pyast.Call{Base: p.base, Func: expr, Args: p.callArgs(inner)}

		case "[":
			inner := p.bracketed("[", "]")
			expr = &pyast.BinOp{Base: p.base, Left: expr, Op: "[]", Right: parseExprList(inner, p.base)}

		default:
			return expr
		}
	}
	return expr
}

// callArgs parses a call argument list. Keyword arguments contribute their
// value expression; the keyword name itself is not part of the tree.
func (p *exprParser) callArgs(inner []token) []pyast.Expr {
	var args []pyast.Expr
	for _, g := range splitTopLevel(inner, ",") {
		if len(g) == 0 {
			continue
		}
		if i := indexTopLevel(g, "="); i > 0 && isKwargEq(g, i) {
			g = g[i+1:]
		}
		if len(g) == 0 {
			continue
		}
		args = append(args, parseExpr(g, p.base))
	}
	return args
}

// isKwargEq tells a keyword argument "name=value" from a comparison that
// merely contains "=" through the loose operator set.
func isKwargEq(g []token, i int) bool {
	return i == 1 && g[0].kind == tokIdent && g[i].kind == tokOp && g[i].text == "="
}

// splitTopLevel splits tokens on the given operator at bracket depth zero.
func splitTopLevel(toks []token, op string) [][]token {
	var out [][]token
	depth := 0
	start := 0
	for i, t := range toks {
		if t.kind != tokOp {
			continue
		}
		switch t.text {
		case "(", "[", "{":
			depth++
		case ")", "]", "}":
			depth--
		case op:
			if depth == 0 {
				out = append(out, toks[start:i])
				start = i + 1
			}
		}
	}
	out = append(out, toks[start:])
	return out
}

// indexTopLevel returns the index of the first exact occurrence of the
// operator at bracket depth zero, or -1.
func indexTopLevel(toks []token, op string) int {
	depth := 0
	for i, t := range toks {
		if t.kind != tokOp {
			continue
		}
		switch t.text {
		case "(", "[", "{":
			depth++
		case ")", "]", "}":
			depth--
		case op:
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// indexTopLevelKeyword returns the index of the first occurrence of the
// keyword at bracket depth zero, or -1.
func indexTopLevelKeyword(toks []token, kw string) int {
	depth := 0
	for i, t := range toks {
		if t.kind == tokOp {
			switch t.text {
			case "(", "[", "{":
				depth++
			case ")", "]", "}":
				depth--
			}
			continue
		}
		if depth == 0 && t.kind == tokKeyword && t.text == kw {
			return i
		}
	}
	return -1
}

// rawText re-joins tokens for opaque nodes.
func rawText(toks []token) string {
	parts := make([]string, 0, len(toks))
	for _, t := range toks {
		parts = append(parts, t.text)
	}
	return strings.Join(parts, " ")
}
