package pyparse

import (
	"strings"

	"github.com/sirkon/pyrevu/internal/pysrc"
)

// logicalLine is one statement-bearing line after joining continuations:
// open brackets, trailing backslashes, and triple-quoted strings all pull
// in following physical lines.
type logicalLine struct {
	indent int
	head   string // first word, used for block-keyword lookahead
	text   string // joined physical lines, newlines preserved
	start  int    // first physical line, 1-based
	end    int    // last physical line, 1-based
}

// joiner tracks the scan state that decides whether a physical line ends
// its logical line. It survives across physical lines of one statement.
type joiner struct {
	depth     int  // bracket nesting outside strings
	quote     byte // 0 when not inside a string literal
	triple    bool
	escaped   bool // previous char inside the string was a backslash
	backslash bool // line ended with an explicit continuation backslash
}

// feed scans one physical line. It returns whether the logical line needs
// more physical lines, or a non-empty problem description.
func (j *joiner) feed(line string) (more bool, problem string) {
	j.backslash = false

	for i := 0; i < len(line); i++ {
		c := line[i]

		if j.quote != 0 {
			switch {
			case j.escaped:
				j.escaped = false
			case c == '\\':
				j.escaped = true
			case c == j.quote:
				if !j.triple {
					j.quote = 0
				} else if i+2 < len(line) && line[i+1] == j.quote && line[i+2] == j.quote {
					j.quote = 0
					j.triple = false
					i += 2
				}
			}
			continue
		}

		switch c {
		case '#':
			i = len(line) // comment, rest of the physical line is dropped
		case '\'', '"':
			j.quote = c
			if i+2 < len(line) && line[i+1] == c && line[i+2] == c {
				j.triple = true
				i += 2
			}
		case '(', '[', '{':
			j.depth++
		case ')', ']', '}':
			j.depth--
			if j.depth < 0 {
				return false, "unbalanced closing bracket"
			}
		case '\\':
			if i == len(line)-1 {
				j.backslash = true
			}
		}
	}

	if j.quote != 0 {
		if j.triple {
			return true, ""
		}
		if j.escaped {
			// Backslash-newline inside a single-quoted string.
			j.escaped = false
			return true, ""
		}
		return false, "unterminated string literal"
	}
	if j.backslash || j.depth > 0 {
		return true, ""
	}
	return false, ""
}

// splitLogical assembles logical lines from the source. Blank and
// comment-only lines between statements are skipped.
func splitLogical(src *pysrc.Source) ([]logicalLine, *ParseError) {
	var out []logicalLine

	i := 1
	total := src.LineCount()
	for i <= total {
		first := src.Line(i)
		if isBlank(first) {
			i++
			continue
		}

		var (
			j     joiner
			parts []string
		)
		start := i
		for {
			line := src.Line(i)
			parts = append(parts, line)

			more, problem := j.feed(line)
			if problem != "" {
				return nil, errorf(src.Name, i, "%s", problem)
			}
			if !more {
				break
			}
			i++
			if i > total {
				return nil, errorf(src.Name, start, "unexpected end of file inside statement")
			}
		}

		text := strings.Join(parts, "\n")
		out = append(out, logicalLine{
			indent: indentOf(first),
			head:   headOf(first),
			text:   text,
			start:  start,
			end:    i,
		})
		i++
	}

	return out, nil
}

func isBlank(line string) bool {
	trimmed := strings.TrimSpace(line)
	return trimmed == "" || strings.HasPrefix(trimmed, "#")
}

// indentOf measures leading whitespace; a tab advances to the next multiple
// of 8, matching the tokenizer of the source language.
func indentOf(line string) int {
	ind := 0
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case ' ':
			ind++
		case '\t':
			ind = (ind/8 + 1) * 8
		default:
			return ind
		}
	}
	return ind
}

// headOf returns the first word of the line for cheap statement-kind
// lookahead, or the first character for non-word starters such as "@".
func headOf(line string) string {
	trimmed := strings.TrimLeft(line, " \t")
	if trimmed == "" {
		return ""
	}
	if !isIdentStart(trimmed[0]) {
		return trimmed[:1]
	}
	j := 1
	for j < len(trimmed) && isIdentPart(trimmed[j]) {
		j++
	}
	return trimmed[:j]
}
