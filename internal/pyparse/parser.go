// Package pyparse parses the subset of Python the review rules inspect.
//
// The parser is indentation-driven: physical lines are joined into logical
// lines first, then suites nest by indent. Statement and expression shapes
// the rules never look at degrade into opaque nodes instead of failing, so
// that unusual but well-formed files still review. Broken block structure
// (bad indentation, a decorator without a following def, an unterminated
// suite) fails with a ParseError carrying file and line.
package pyparse

import (
	"github.com/sirkon/pyrevu/internal/pyast"
	"github.com/sirkon/pyrevu/internal/pysrc"
)

type parser struct {
	file  string
	lines []logicalLine
	pos   int
}

// Parse builds the syntax tree for one source file.
func Parse(src *pysrc.Source) (*pyast.Module, error) {
	lines, perr := splitLogical(src)
	if perr != nil {
		return nil, perr
	}

	p := &parser{file: src.Name, lines: lines}

	var body []pyast.Stmt
	for !p.eof() {
		if p.peek().indent != 0 {
			return nil, errorf(p.file, p.peek().start, "unexpected indent")
		}
		stmts, err := p.statement(0)
		if err != nil {
			return nil, err
		}
		body = append(body, stmts...)
	}

	end := src.LineCount()
	if end < 1 {
		end = 1
	}
	return &pyast.Module{Base: pyast.At(1, end), Body: body}, nil
}

func (p *parser) eof() bool {
	return p.pos >= len(p.lines)
}

func (p *parser) peek() logicalLine {
	return p.lines[p.pos]
}

func (p *parser) next() logicalLine {
	ln := p.lines[p.pos]
	p.pos++
	return ln
}

// statement consumes one logical line and whatever suites belong to it.
// A single line may carry several semicolon-separated simple statements,
// hence the slice result.
func (p *parser) statement(indent int) ([]pyast.Stmt, error) {
	ln := p.next()
	toks := tokenize(ln.text)
	if len(toks) == 0 {
		return nil, errorf(p.file, ln.start, "empty statement")
	}
	base := pyast.At(ln.start, ln.end)

	if toks[0].kind == tokOp && toks[0].text == "@" {
		st, err := p.decorated(ln, toks, indent)
		if err != nil {
			return nil, err
		}
		return []pyast.Stmt{st}, nil
	}

	if toks[0].kind == tokKeyword && toks[0].text == "async" && len(toks) > 1 {
		toks = toks[1:]
	}

	if toks[0].kind == tokKeyword {
		var (
			st  pyast.Stmt
			err error
		)
		switch toks[0].text {
		case "def":
			st, err = p.defStmt(ln, toks, indent, nil)
		case "class":
			st, err = p.classStmt(ln, toks, indent, nil)
		case "if":
			st, err = p.ifStmt(ln, toks, indent)
		case "try":
			st, err = p.tryStmt(ln, toks, indent)
		case "while":
			st, err = p.whileStmt(ln, toks, indent)
		case "for":
			st, err = p.forStmt(ln, toks, indent)
		case "with":
			st, err = p.withStmt(ln, toks, indent)
		case "elif", "else", "except", "finally":
			return nil, errorf(p.file, ln.start, "unexpected %q", toks[0].text)
		default:
			return p.simpleLine(toks, base)
		}
		if err != nil {
			return nil, err
		}
		return []pyast.Stmt{st}, nil
	}

	return p.simpleLine(toks, base)
}

// simpleLine splits a logical line into semicolon-separated simple
// statements.
func (p *parser) simpleLine(toks []token, base pyast.Base) ([]pyast.Stmt, error) {
	var out []pyast.Stmt
	for _, g := range splitTopLevel(toks, ";") {
		if len(g) == 0 {
			continue
		}
		st, err := p.simpleStmt(g, base)
		if err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	if len(out) == 0 {
		return nil, errorf(p.file, base.Loc.Start, "empty statement")
	}
	return out, nil
}

var augmentedOps = map[string]bool{
	"+=": true, "-=": true, "*=": true, "/=": true, "//=": true,
	"**=": true, "%=": true, "&=": true, "|=": true, "^=": true,
	">>=": true, "<<=": true, "@=": true,
}

// simpleStmt parses one simple (suite-free) statement.
func (p *parser) simpleStmt(toks []token, base pyast.Base) (pyast.Stmt, error) {
	if toks[0].kind == tokKeyword {
		switch toks[0].text {
		case "return":
			var value pyast.Expr
			if len(toks) > 1 {
				value = parseExprList(toks[1:], base)
			}
			return &pyast.Return{Base: base, Value: value}, nil

		case "raise":
			var value pyast.Expr
			if len(toks) > 1 {
				value = parseExprList(toks[1:], base)
			}
			return &pyast.Raise{Base: base, Value: value}, nil

		case "pass":
			return &pyast.Pass{Base: base}, nil

		case "break", "continue", "import", "from", "global", "nonlocal":
			return &pyast.ExprStmt{
				Base:  base,
				Value: &pyast.Constant{Base: base, Text: rawText(toks)},
			}, nil

		case "del", "assert", "await", "yield":
			return &pyast.ExprStmt{Base: base, Value: parseExprList(toks[1:], base)}, nil
		}
	}

	// Augmented assignment: not an Assign on purpose — its target is exempt
	// from naming checks, while the value stays walkable.
	for i, t := range atTopLevel(toks) {
		if t.kind == tokOp && augmentedOps[t.text] {
			return &pyast.ExprStmt{
				Base: base,
				Value: &pyast.BinOp{
					Base:  base,
					Left:  parseExprList(toks[:i], base),
					Op:    t.text,
					Right: parseExprList(toks[i+1:], base),
				},
			}, nil
		}
	}

	eq := indexTopLevel(toks, "=")
	if eq < 0 {
		return &pyast.ExprStmt{Base: base, Value: parseExprList(toks, base)}, nil
	}

	// Annotated assignment (x: T = value): also not an Assign.
	if colon := indexTopLevel(toks[:eq], ":"); colon >= 0 {
		return &pyast.ExprStmt{
			Base: base,
			Value: &pyast.BinOp{
				Base:  base,
				Left:  &pyast.Constant{Base: base, Text: rawText(toks[:eq])},
				Op:    "=",
				Right: parseExprList(toks[eq+1:], base),
			},
		}, nil
	}

	// Plain assignment, possibly chained: a = b = value.
	segments := splitTopLevel(toks, "=")
	value := parseExprList(segments[len(segments)-1], base)
	targets := make([]pyast.Target, 0, len(segments)-1)
	for _, seg := range segments[:len(segments)-1] {
		tgt, err := p.target(seg, base)
		if err != nil {
			return nil, err
		}
		targets = append(targets, tgt)
	}
	return &pyast.Assign{Base: base, Targets: targets, Value: value}, nil
}

// atTopLevel yields only the tokens at bracket depth zero, keeping their
// original indices.
func atTopLevel(toks []token) map[int]token {
	out := make(map[int]token)
	depth := 0
	for i, t := range toks {
		if t.kind == tokOp {
			switch t.text {
			case "(", "[", "{":
				depth++
				continue
			case ")", "]", "}":
				depth--
				continue
			}
		}
		if depth == 0 {
			out[i] = t
		}
	}
	return out
}

// target parses one assignment target shape.
func (p *parser) target(toks []token, base pyast.Base) (pyast.Target, error) {
	if len(toks) == 0 {
		return nil, errorf(p.file, base.Loc.Start, "missing assignment target")
	}

	// Parenthesised: either a grouped single target or a tuple pattern.
	if wrap := enclosedBy(toks, "(", ")"); wrap {
		inner := toks[1 : len(toks)-1]
		if len(inner) == 0 {
			return &pyast.OpaqueTarget{Base: base, Text: "()"}, nil
		}
		if indexTopLevel(inner, ",") >= 0 {
			return p.tupleTarget(inner, base)
		}
		return p.target(inner, base)
	}

	if wrap := enclosedBy(toks, "[", "]"); wrap {
		inner := toks[1 : len(toks)-1]
		elts, err := p.targetList(inner, base)
		if err != nil {
			return nil, err
		}
		return &pyast.ListTarget{Base: base, Elts: elts}, nil
	}

	if indexTopLevel(toks, ",") >= 0 {
		return p.tupleTarget(toks, base)
	}

	if toks[0].kind == tokOp && toks[0].text == "*" {
		return &pyast.OpaqueTarget{Base: base, Text: rawText(toks)}, nil
	}

	switch e := parseExpr(toks, base).(type) {
	case *pyast.Name:
		return e, nil
	case *pyast.Attribute:
		return e, nil
	default:
		return &pyast.OpaqueTarget{Base: base, Text: rawText(toks)}, nil
	}
}

func (p *parser) tupleTarget(toks []token, base pyast.Base) (pyast.Target, error) {
	elts, err := p.targetList(toks, base)
	if err != nil {
		return nil, err
	}
	return &pyast.TupleTarget{Base: base, Elts: elts}, nil
}

func (p *parser) targetList(toks []token, base pyast.Base) ([]pyast.Target, error) {
	var elts []pyast.Target
	for _, g := range splitTopLevel(toks, ",") {
		if len(g) == 0 {
			continue // trailing comma
		}
		t, err := p.target(g, base)
		if err != nil {
			return nil, err
		}
		elts = append(elts, t)
	}
	return elts, nil
}

// enclosedBy reports whether the whole token sequence is a single bracket
// group with the given opener and closer.
func enclosedBy(toks []token, open, closing string) bool {
	if len(toks) < 2 {
		return false
	}
	first, last := toks[0], toks[len(toks)-1]
	if first.kind != tokOp || first.text != open || last.kind != tokOp || last.text != closing {
		return false
	}
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
			if depth == 0 {
				return i == len(toks)-1
			}
		}
	}
	return false
}

// decorated parses a decorator stack and the def/class it must precede.
func (p *parser) decorated(ln logicalLine, toks []token, indent int) (pyast.Stmt, error) {
	decs := []pyast.Expr{parseExpr(toks[1:], pyast.At(ln.start, ln.end))}

	for {
		if p.eof() {
			return nil, errorf(p.file, ln.end, "decorator must be followed by a function or class definition")
		}
		if p.peek().indent != indent {
			return nil, errorf(p.file, p.peek().start, "decorator must be followed by a function or class definition")
		}

		ln2 := p.next()
		toks2 := tokenize(ln2.text)
		if len(toks2) == 0 {
			return nil, errorf(p.file, ln2.start, "empty statement")
		}

		if toks2[0].kind == tokOp && toks2[0].text == "@" {
			decs = append(decs, parseExpr(toks2[1:], pyast.At(ln2.start, ln2.end)))
			ln = ln2
			continue
		}
		if toks2[0].kind == tokKeyword && toks2[0].text == "async" && len(toks2) > 1 {
			toks2 = toks2[1:]
		}
		if toks2[0].kind == tokKeyword {
			switch toks2[0].text {
			case "def":
				return p.defStmt(ln2, toks2, indent, decs)
			case "class":
				return p.classStmt(ln2, toks2, indent, decs)
			}
		}
		return nil, errorf(p.file, ln2.start, "decorator must be followed by a function or class definition")
	}
}

func (p *parser) defStmt(ln logicalLine, toks []token, indent int, decs []pyast.Expr) (pyast.Stmt, error) {
	if len(toks) < 2 || toks[1].kind != tokIdent {
		return nil, errorf(p.file, ln.start, "expected function name after 'def'")
	}
	name := toks[1].text

	ci := indexTopLevel(toks, ":")
	if ci < 0 {
		return nil, errorf(p.file, ln.start, "expected ':' in function definition")
	}

	body, err := p.suiteAfterColon(ln, toks, ci, indent)
	if err != nil {
		return nil, err
	}

	return &pyast.FunctionDef{
		Base:       pyast.At(ln.start, stmtsEnd(body, ln.end)),
		Name:       name,
		Decorators: decs,
		Body:       body,
	}, nil
}

func (p *parser) classStmt(ln logicalLine, toks []token, indent int, decs []pyast.Expr) (pyast.Stmt, error) {
	if len(toks) < 2 || toks[1].kind != tokIdent {
		return nil, errorf(p.file, ln.start, "expected class name after 'class'")
	}
	name := toks[1].text

	ci := indexTopLevel(toks, ":")
	if ci < 0 {
		return nil, errorf(p.file, ln.start, "expected ':' in class definition")
	}

	body, err := p.suiteAfterColon(ln, toks, ci, indent)
	if err != nil {
		return nil, err
	}

	return &pyast.ClassDef{
		Base:       pyast.At(ln.start, stmtsEnd(body, ln.end)),
		Name:       name,
		Decorators: decs,
		Body:       body,
	}, nil
}

func (p *parser) ifStmt(ln logicalLine, toks []token, indent int) (pyast.Stmt, error) {
	base := pyast.At(ln.start, ln.end)

	ci := indexTopLevel(toks, ":")
	if ci < 0 {
		return nil, errorf(p.file, ln.start, "expected ':' after condition")
	}
	cond := parseExprList(toks[1:ci], base)

	body, err := p.suiteAfterColon(ln, toks, ci, indent)
	if err != nil {
		return nil, err
	}

	orElse, err := p.elseChain(indent)
	if err != nil {
		return nil, err
	}

	end := stmtsEnd(orElse, stmtsEnd(body, ln.end))
	return &pyast.If{
		Base:   pyast.At(ln.start, end),
		Cond:   cond,
		Body:   body,
		OrElse: orElse,
	}, nil
}

// elseChain consumes an elif/else continuation at the given indent, if any.
// An elif parses into a nested If as the sole element of the result.
func (p *parser) elseChain(indent int) ([]pyast.Stmt, error) {
	if p.eof() || p.peek().indent != indent {
		return nil, nil
	}

	switch p.peek().head {
	case "elif":
		ln := p.next()
		st, err := p.ifStmt(ln, tokenize(ln.text), indent)
		if err != nil {
			return nil, err
		}
		return []pyast.Stmt{st}, nil

	case "else":
		ln := p.next()
		toks := tokenize(ln.text)
		ci := indexTopLevel(toks, ":")
		if ci < 0 {
			return nil, errorf(p.file, ln.start, "expected ':' after 'else'")
		}
		return p.suiteAfterColon(ln, toks, ci, indent)
	}

	return nil, nil
}

func (p *parser) tryStmt(ln logicalLine, toks []token, indent int) (pyast.Stmt, error) {
	ci := indexTopLevel(toks, ":")
	if ci < 0 {
		return nil, errorf(p.file, ln.start, "expected ':' after 'try'")
	}

	body, err := p.suiteAfterColon(ln, toks, ci, indent)
	if err != nil {
		return nil, err
	}
	end := stmtsEnd(body, ln.end)

	var handlers []*pyast.ExceptHandler
	for !p.eof() && p.peek().indent == indent && p.peek().head == "except" {
		h, err := p.exceptClause(indent)
		if err != nil {
			return nil, err
		}
		handlers = append(handlers, h)
		end = h.Span().End
	}

	var orElse []pyast.Stmt
	if !p.eof() && p.peek().indent == indent && p.peek().head == "else" {
		orElse, err = p.elseChain(indent)
		if err != nil {
			return nil, err
		}
		end = stmtsEnd(orElse, end)
	}

	var final []pyast.Stmt
	if !p.eof() && p.peek().indent == indent && p.peek().head == "finally" {
		ln2 := p.next()
		toks2 := tokenize(ln2.text)
		ci2 := indexTopLevel(toks2, ":")
		if ci2 < 0 {
			return nil, errorf(p.file, ln2.start, "expected ':' after 'finally'")
		}
		final, err = p.suiteAfterColon(ln2, toks2, ci2, indent)
		if err != nil {
			return nil, err
		}
		end = stmtsEnd(final, end)
	}

	if len(handlers) == 0 && len(final) == 0 {
		return nil, errorf(p.file, ln.start, "expected 'except' or 'finally' block")
	}

	return &pyast.Try{
		Base:     pyast.At(ln.start, end),
		Body:     body,
		Handlers: handlers,
		OrElse:   orElse,
		Final:    final,
	}, nil
}

func (p *parser) exceptClause(indent int) (*pyast.ExceptHandler, error) {
	ln := p.next()
	toks := tokenize(ln.text)
	base := pyast.At(ln.start, ln.end)

	ci := indexTopLevel(toks, ":")
	if ci < 0 {
		return nil, errorf(p.file, ln.start, "expected ':' after 'except'")
	}

	between := toks[1:ci]
	if len(between) > 0 && between[0].kind == tokOp && between[0].text == "*" {
		between = between[1:] // except* groups
	}

	var name string
	if ai := indexTopLevelKeyword(between, "as"); ai >= 0 {
		if ai+1 < len(between) && between[ai+1].kind == tokIdent {
			name = between[ai+1].text
		}
		between = between[:ai]
	}

	var typ pyast.Expr
	if len(between) > 0 {
		typ = parseExprList(between, base)
	}

	body, err := p.suiteAfterColon(ln, toks, ci, indent)
	if err != nil {
		return nil, err
	}

	return &pyast.ExceptHandler{
		Base: pyast.At(ln.start, stmtsEnd(body, ln.end)),
		Type: typ,
		Name: name,
		Body: body,
	}, nil
}

func (p *parser) whileStmt(ln logicalLine, toks []token, indent int) (pyast.Stmt, error) {
	base := pyast.At(ln.start, ln.end)

	ci := indexTopLevel(toks, ":")
	if ci < 0 {
		return nil, errorf(p.file, ln.start, "expected ':' after condition")
	}
	cond := parseExprList(toks[1:ci], base)

	body, err := p.suiteAfterColon(ln, toks, ci, indent)
	if err != nil {
		return nil, err
	}
	body, err = p.loopElse(body, indent)
	if err != nil {
		return nil, err
	}

	return &pyast.While{
		Base: pyast.At(ln.start, stmtsEnd(body, ln.end)),
		Cond: cond,
		Body: body,
	}, nil
}

func (p *parser) forStmt(ln logicalLine, toks []token, indent int) (pyast.Stmt, error) {
	base := pyast.At(ln.start, ln.end)

	ci := indexTopLevel(toks, ":")
	if ci < 0 {
		return nil, errorf(p.file, ln.start, "expected ':' after loop header")
	}
	ii := indexTopLevelKeyword(toks[:ci], "in")
	if ii < 0 {
		return nil, errorf(p.file, ln.start, "expected 'in' in for statement")
	}

	tgt, err := p.target(toks[1:ii], base)
	if err != nil {
		return nil, err
	}
	iter := parseExprList(toks[ii+1:ci], base)

	body, err := p.suiteAfterColon(ln, toks, ci, indent)
	if err != nil {
		return nil, err
	}
	body, err = p.loopElse(body, indent)
	if err != nil {
		return nil, err
	}

	return &pyast.For{
		Base:   pyast.At(ln.start, stmtsEnd(body, ln.end)),
		Target: tgt,
		Iter:   iter,
		Body:   body,
	}, nil
}

// loopElse folds an optional loop else suite into the loop body: no rule
// distinguishes the two, and the statements stay walkable.
func (p *parser) loopElse(body []pyast.Stmt, indent int) ([]pyast.Stmt, error) {
	if p.eof() || p.peek().indent != indent || p.peek().head != "else" {
		return body, nil
	}
	orElse, err := p.elseChain(indent)
	if err != nil {
		return nil, err
	}
	return append(body, orElse...), nil
}

func (p *parser) withStmt(ln logicalLine, toks []token, indent int) (pyast.Stmt, error) {
	base := pyast.At(ln.start, ln.end)

	ci := indexTopLevel(toks, ":")
	if ci < 0 {
		return nil, errorf(p.file, ln.start, "expected ':' after 'with'")
	}
	item := parseExprList(toks[1:ci], base)

	body, err := p.suiteAfterColon(ln, toks, ci, indent)
	if err != nil {
		return nil, err
	}

	return &pyast.With{
		Base: pyast.At(ln.start, stmtsEnd(body, ln.end)),
		Item: item,
		Body: body,
	}, nil
}

var blockKeywords = map[string]bool{
	"def": true, "class": true, "if": true, "try": true,
	"while": true, "for": true, "with": true,
}

// suiteAfterColon parses the suite of a block header: either the inline
// statements after the colon, or an indented block on the following lines.
func (p *parser) suiteAfterColon(ln logicalLine, toks []token, ci, indent int) ([]pyast.Stmt, error) {
	inline := toks[ci+1:]
	if len(inline) == 0 {
		return p.block(indent, ln)
	}

	base := pyast.At(ln.start, ln.end)
	var out []pyast.Stmt
	for _, g := range splitTopLevel(inline, ";") {
		if len(g) == 0 {
			continue
		}
		if g[0].kind == tokKeyword && blockKeywords[g[0].text] {
			return nil, errorf(p.file, ln.start, "compound statement is not allowed on a header line")
		}
		st, err := p.simpleStmt(g, base)
		if err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	if len(out) == 0 {
		return nil, errorf(p.file, ln.start, "expected statement after ':'")
	}
	return out, nil
}

// block parses an indented suite following a block header line.
func (p *parser) block(parentIndent int, header logicalLine) ([]pyast.Stmt, error) {
	if p.eof() {
		return nil, errorf(p.file, header.end, "expected an indented block")
	}
	first := p.peek()
	if first.indent <= parentIndent {
		return nil, errorf(p.file, first.start, "expected an indented block")
	}

	ind := first.indent
	var out []pyast.Stmt
	for !p.eof() {
		ln := p.peek()
		if ln.indent < ind {
			break
		}
		if ln.indent > ind {
			return nil, errorf(p.file, ln.start, "unexpected indent")
		}
		stmts, err := p.statement(ind)
		if err != nil {
			return nil, err
		}
		out = append(out, stmts...)
	}
	return out, nil
}

func stmtsEnd(stmts []pyast.Stmt, fallback int) int {
	if len(stmts) == 0 {
		return fallback
	}
	if e := stmts[len(stmts)-1].Span().End; e > fallback {
		return e
	}
	return fallback
}
