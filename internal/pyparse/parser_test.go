package pyparse

import (
	"errors"
	"testing"

	"github.com/sirkon/pyrevu/internal/pyast"
	"github.com/sirkon/pyrevu/internal/pysrc"
)

func parse(t *testing.T, text string) *pyast.Module {
	t.Helper()

	tree, err := Parse(pysrc.New("test.py", text))
	if err != nil {
		t.Fatalf("parse: %s", err)
	}
	return tree
}

func TestParseFunctionDef(t *testing.T) {
	tree := parse(t, ""+
		"@app.route('/x')\n"+
		"@cached\n"+
		"def handler(a, b):\n"+
		"    x = 1\n"+
		"    return x\n")

	if len(tree.Body) != 1 {
		t.Fatalf("expected a single top-level statement, got %d", len(tree.Body))
	}
	fd, ok := tree.Body[0].(*pyast.FunctionDef)
	if !ok {
		t.Fatalf("expected a function definition, got %T", tree.Body[0])
	}

	if fd.Name != "handler" {
		t.Fatalf("expected function name handler, got %q", fd.Name)
	}
	if len(fd.Decorators) != 2 {
		t.Fatalf("expected 2 decorators, got %d", len(fd.Decorators))
	}
	if _, ok := fd.Decorators[0].(*pyast.Call); !ok {
		t.Fatalf("expected the first decorator to be a call, got %T", fd.Decorators[0])
	}
	if _, ok := fd.Decorators[1].(*pyast.Name); !ok {
		t.Fatalf("expected the second decorator to be a name, got %T", fd.Decorators[1])
	}

	// The span excludes decorator lines.
	want := pysrc.Span{Start: 3, End: 5}
	if fd.Span() != want {
		t.Fatalf("expected span %s, got %s", want, fd.Span())
	}
	if len(fd.Body) != 2 {
		t.Fatalf("expected 2 body statements, got %d", len(fd.Body))
	}
}

func TestParseAssignments(t *testing.T) {
	tree := parse(t, ""+
		"simple = 1\n"+
		"a = b = make()\n"+
		"x, y = pair\n"+
		"obj.field = 2\n"+
		"items[0] = 3\n"+
		"count += 1\n"+
		"total: int = 0\n")

	if len(tree.Body) != 7 {
		t.Fatalf("expected 7 statements, got %d", len(tree.Body))
	}

	asg := tree.Body[0].(*pyast.Assign)
	if name, ok := asg.Targets[0].(*pyast.Name); !ok || name.Id != "simple" {
		t.Fatalf("expected a name target simple, got %#v", asg.Targets[0])
	}

	chained := tree.Body[1].(*pyast.Assign)
	if len(chained.Targets) != 2 {
		t.Fatalf("expected 2 chained targets, got %d", len(chained.Targets))
	}
	for i, want := range []string{"a", "b"} {
		name, ok := chained.Targets[i].(*pyast.Name)
		if !ok || name.Id != want {
			t.Fatalf("expected chained target %q, got %#v", want, chained.Targets[i])
		}
	}
	if _, ok := chained.Value.(*pyast.Call); !ok {
		t.Fatalf("expected chained value to be a call, got %T", chained.Value)
	}

	tuple := tree.Body[2].(*pyast.Assign)
	if _, ok := tuple.Targets[0].(*pyast.TupleTarget); !ok {
		t.Fatalf("expected a tuple target, got %T", tuple.Targets[0])
	}

	attr := tree.Body[3].(*pyast.Assign)
	if _, ok := attr.Targets[0].(*pyast.Attribute); !ok {
		t.Fatalf("expected an attribute target, got %T", attr.Targets[0])
	}

	opaque := tree.Body[4].(*pyast.Assign)
	if _, ok := opaque.Targets[0].(*pyast.OpaqueTarget); !ok {
		t.Fatalf("expected an opaque target, got %T", opaque.Targets[0])
	}

	// Augmented and annotated assignments must not come out as Assign.
	if _, ok := tree.Body[5].(*pyast.Assign); ok {
		t.Fatal("augmented assignment parsed as a plain assignment")
	}
	if _, ok := tree.Body[6].(*pyast.Assign); ok {
		t.Fatal("annotated assignment parsed as a plain assignment")
	}
}

func TestParseTry(t *testing.T) {
	tree := parse(t, ""+
		"try:\n"+
		"    risky()\n"+
		"except ValueError as e:\n"+
		"    handle(e)\n"+
		"except:\n"+
		"    pass\n"+
		"else:\n"+
		"    celebrate()\n"+
		"finally:\n"+
		"    cleanup()\n")

	try := tree.Body[0].(*pyast.Try)
	if len(try.Handlers) != 2 {
		t.Fatalf("expected 2 handlers, got %d", len(try.Handlers))
	}
	if try.Handlers[0].Name != "e" {
		t.Fatalf("expected handler binding e, got %q", try.Handlers[0].Name)
	}
	if try.Handlers[1].Type != nil {
		t.Fatal("expected a bare except handler")
	}
	if len(try.OrElse) != 1 || len(try.Final) != 1 {
		t.Fatalf("expected else and finally suites, got %d and %d", len(try.OrElse), len(try.Final))
	}

	want := pysrc.Span{Start: 1, End: 10}
	if try.Span() != want {
		t.Fatalf("expected span %s, got %s", want, try.Span())
	}
}

func TestParseElifChain(t *testing.T) {
	tree := parse(t, ""+
		"if a:\n"+
		"    one()\n"+
		"elif b:\n"+
		"    two()\n"+
		"else:\n"+
		"    three()\n")

	first := tree.Body[0].(*pyast.If)
	if len(first.OrElse) != 1 {
		t.Fatalf("expected the elif as a single nested if, got %d statements", len(first.OrElse))
	}
	second, ok := first.OrElse[0].(*pyast.If)
	if !ok {
		t.Fatalf("expected a nested if, got %T", first.OrElse[0])
	}
	if len(second.OrElse) != 1 {
		t.Fatalf("expected the else suite on the nested if, got %d statements", len(second.OrElse))
	}
}

func TestParseInlineSuite(t *testing.T) {
	tree := parse(t, "def tiny(): return 1\n")

	fd := tree.Body[0].(*pyast.FunctionDef)
	if len(fd.Body) != 1 {
		t.Fatalf("expected a single inline statement, got %d", len(fd.Body))
	}
	if _, ok := fd.Body[0].(*pyast.Return); !ok {
		t.Fatalf("expected a return, got %T", fd.Body[0])
	}
}

func TestParseMultilineCall(t *testing.T) {
	tree := parse(t, ""+
		"result = make(\n"+
		"    first,\n"+
		"    second,\n"+
		")\n"+
		"after = 1\n")

	asg := tree.Body[0].(*pyast.Assign)
	call, ok := asg.Value.(*pyast.Call)
	if !ok {
		t.Fatalf("expected a call value, got %T", asg.Value)
	}
	if len(call.Args) != 2 {
		t.Fatalf("expected 2 arguments, got %d", len(call.Args))
	}

	want := pysrc.Span{Start: 1, End: 4}
	if asg.Span() != want {
		t.Fatalf("expected the assignment to cover the joined lines %s, got %s", want, asg.Span())
	}
	if next := tree.Body[1].(*pyast.Assign); next.Span().Start != 5 {
		t.Fatalf("expected the next statement on line 5, got %s", next.Span())
	}
}

func TestParseSemicolons(t *testing.T) {
	tree := parse(t, "a = 1; b = 2\n")

	if len(tree.Body) != 2 {
		t.Fatalf("expected 2 statements from the semicolon line, got %d", len(tree.Body))
	}
}

func TestParseClassWithMethods(t *testing.T) {
	tree := parse(t, ""+
		"class Store:\n"+
		"    def save(self):\n"+
		"        pass\n")

	cd := tree.Body[0].(*pyast.ClassDef)
	if cd.Name != "Store" {
		t.Fatalf("expected class Store, got %q", cd.Name)
	}
	if _, ok := cd.Body[0].(*pyast.FunctionDef); !ok {
		t.Fatalf("expected a method inside the class, got %T", cd.Body[0])
	}
}

func TestParseErrors(t *testing.T) {
	type test struct {
		name   string
		source string
		line   int
	}

	tests := []test{
		{
			name:   "stray else",
			source: "else:\n    pass\n",
			line:   1,
		},
		{
			name:   "def without colon",
			source: "def broken()\n    pass\n",
			line:   1,
		},
		{
			name:   "empty block",
			source: "def empty():\nx = 1\n",
			line:   2,
		},
		{
			name:   "unterminated string",
			source: "x = 'oops\n",
			line:   1,
		},
		{
			name:   "unbalanced bracket",
			source: "x = (1 + 2\n",
			line:   1,
		},
		{
			name:   "unterminated statement points at its first line",
			source: "x = 1\ny = call(\n    a,\n",
			line:   2,
		},
		{
			name:   "try without handlers",
			source: "try:\n    pass\nx = 1\n",
			line:   1,
		},
		{
			name:   "error line is reported",
			source: "x = 1\ny = 2\nelse:\n    pass\n",
			line:   3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(pysrc.New("broken.py", tt.source))
			if err == nil {
				t.Fatal("expected a parse error")
			}

			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("expected a ParseError, got %T", err)
			}
			if pe.File != "broken.py" {
				t.Fatalf("expected the file name in the error, got %q", pe.File)
			}
			if pe.Line != tt.line {
				t.Fatalf("expected the error on line %d, got %d: %s", tt.line, pe.Line, pe)
			}
		})
	}
}

func TestParseOpaqueStatements(t *testing.T) {
	// Statement kinds the rules never look at must still parse cleanly.
	tree := parse(t, ""+
		"import os\n"+
		"from typing import Any\n"+
		"assert cond, 'message'\n"+
		"del x\n"+
		"global counter\n"+
		"async def fetch():\n"+
		"    await call()\n"+
		"for i in range(10):\n"+
		"    continue\n"+
		"while running:\n"+
		"    break\n"+
		"with open(path) as f:\n"+
		"    f.read()\n")

	if len(tree.Body) != 9 {
		t.Fatalf("expected 9 statements, got %d", len(tree.Body))
	}
	if fd, ok := tree.Body[5].(*pyast.FunctionDef); !ok || fd.Name != "fetch" {
		t.Fatalf("expected async def to parse as a function definition, got %#v", tree.Body[5])
	}
}
