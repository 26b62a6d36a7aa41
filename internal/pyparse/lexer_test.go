package pyparse

import (
	"testing"

	"github.com/sirkon/pyrevu/internal/pysrc"
)

func tokTexts(toks []token) []string {
	out := make([]string, 0, len(toks))
	for _, t := range toks {
		out = append(out, t.text)
	}
	return out
}

func TestTokenize(t *testing.T) {
	type test struct {
		name  string
		text  string
		texts []string
	}

	tests := []test{
		{
			name:  "call with attribute",
			text:  "session.close()",
			texts: []string{"session", ".", "close", "(", ")"},
		},
		{
			name:  "comment dropped",
			text:  "x = 1  # the comment",
			texts: []string{"x", "=", "1"},
		},
		{
			name:  "string stays whole",
			text:  "route('/api/items')",
			texts: []string{"route", "(", "'/api/items'", ")"},
		},
		{
			name:  "prefixed string",
			text:  "f'{x}' + rb\"raw\"",
			texts: []string{"f'{x}'", "+", "rb\"raw\""},
		},
		{
			name:  "hash inside a string is not a comment",
			text:  "x = '#nope'",
			texts: []string{"x", "=", "'#nope'"},
		},
		{
			name:  "multichar operators",
			text:  "a //= b ** c != d",
			texts: []string{"a", "//=", "b", "**", "c", "!=", "d"},
		},
		{
			name:  "walrus",
			text:  "if (n := len(a)) > 10:",
			texts: []string{"if", "(", "n", ":=", "len", "(", "a", ")", ")", ">", "10", ":"},
		},
		{
			name:  "numbers",
			text:  "x = 0x1f + 1e+5 + 3.14",
			texts: []string{"x", "=", "0x1f", "+", "1e+5", "+", "3.14"},
		},
		{
			name:  "embedded newline from joined lines",
			text:  "make(\n    a,\n)",
			texts: []string{"make", "(", "a", ",", ")"},
		},
		{
			name:  "triple quoted string",
			text:  "doc = '''two\nlines'''",
			texts: []string{"doc", "=", "'''two\nlines'''"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tokTexts(tokenize(tt.text))
			if len(got) != len(tt.texts) {
				t.Fatalf("expected tokens %q, got %q", tt.texts, got)
			}
			for i := range got {
				if got[i] != tt.texts[i] {
					t.Fatalf("token %d: expected %q, got %q", i, tt.texts[i], got[i])
				}
			}
		})
	}
}

func TestTokenizeKinds(t *testing.T) {
	toks := tokenize("def f(x): return x")

	if toks[0].kind != tokKeyword {
		t.Fatal("def must lex as a keyword")
	}
	if toks[1].kind != tokIdent {
		t.Fatal("f must lex as an identifier")
	}
	if toks[2].kind != tokOp {
		t.Fatal("( must lex as an operator")
	}
}

func TestSplitLogical(t *testing.T) {
	src := pysrc.New("joined.py", ""+
		"x = call(\n"+
		"    a,\n"+
		")\n"+
		"\n"+
		"# comment only\n"+
		"y = 'semi;colon' \\\n"+
		"    + tail\n")

	lines, err := splitLogical(src)
	if err != nil {
		t.Fatalf("split: %s", err)
	}

	if len(lines) != 2 {
		t.Fatalf("expected 2 logical lines, got %d", len(lines))
	}
	if lines[0].start != 1 || lines[0].end != 3 {
		t.Fatalf("expected the first logical line on 1-3, got %d-%d", lines[0].start, lines[0].end)
	}
	if lines[1].start != 6 || lines[1].end != 7 {
		t.Fatalf("expected the second logical line on 6-7, got %d-%d", lines[1].start, lines[1].end)
	}
	if lines[1].head != "y" {
		t.Fatalf("expected head y, got %q", lines[1].head)
	}
}
