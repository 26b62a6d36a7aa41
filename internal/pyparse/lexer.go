package pyparse

// The lexer works on one logical line at a time: physical lines are already
// joined by the line assembler, so newlines inside the text only occur
// within brackets, after a backslash, or inside triple-quoted strings, and
// all string literals are known to be terminated.

type tokenKind uint8

const (
	tokIdent tokenKind = iota
	tokKeyword
	tokNumber
	tokString
	tokOp
)

type token struct {
	kind tokenKind
	text string
}

var keywords = map[string]bool{
	"False": true, "None": true, "True": true,
	"and": true, "as": true, "assert": true, "async": true, "await": true,
	"break": true, "class": true, "continue": true, "def": true, "del": true,
	"elif": true, "else": true, "except": true, "finally": true, "for": true,
	"from": true, "global": true, "if": true, "import": true, "in": true,
	"is": true, "lambda": true, "nonlocal": true, "not": true, "or": true,
	"pass": true, "raise": true, "return": true, "try": true, "while": true,
	"with": true, "yield": true,
}

// stringPrefixes are identifier-looking characters that may precede a quote.
var stringPrefixes = map[byte]bool{
	'r': true, 'b': true, 'f': true, 'u': true,
	'R': true, 'B': true, 'F': true, 'U': true,
}

// multiOps lists multi-character operators, longest first.
var multiOps = []string{
	"**=", "//=", ">>=", "<<=",
	"->", ":=", "==", "!=", "<=", ">=",
	"+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "@=",
	"**", "//", "<<", ">>",
}

func isIdentStart(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || c >= 0x80
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || ('0' <= c && c <= '9')
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

// tokenize splits the text of a logical line into tokens. Comments are
// dropped, whitespace (including embedded newlines and backslash-newline
// pairs) separates tokens, string literals stay single tokens with their
// quotes kept.
func tokenize(text string) []token {
	var out []token
	i := 0
	n := len(text)

	for i < n {
		c := text[i]

		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++

		case c == '\\' && i+1 < n && (text[i+1] == '\n' || text[i+1] == '\r'):
			i += 2

		case c == '#':
			for i < n && text[i] != '\n' {
				i++
			}

		case c == '\'' || c == '"':
			j := scanString(text, i)
			out = append(out, token{kind: tokString, text: text[i:j]})
			i = j

		case isIdentStart(c):
			j := i + 1
			for j < n && isIdentPart(text[j]) {
				j++
			}
			word := text[i:j]
			// A short prefix directly followed by a quote means a string literal.
			if j < n && (text[j] == '\'' || text[j] == '"') && isStringPrefix(word) {
				k := scanString(text, j)
				out = append(out, token{kind: tokString, text: text[i:k]})
				i = k
				break
			}
			kind := tokIdent
			if keywords[word] {
				kind = tokKeyword
			}
			out = append(out, token{kind: kind, text: word})
			i = j

		case isDigit(c) || (c == '.' && i+1 < n && isDigit(text[i+1])):
			j := i + 1
			for j < n {
				cc := text[j]
				if isIdentPart(cc) || cc == '.' {
					j++
					continue
				}
				// Exponent sign: 1e+5, 2E-3.
				if (cc == '+' || cc == '-') && (text[j-1] == 'e' || text[j-1] == 'E') {
					j++
					continue
				}
				break
			}
			out = append(out, token{kind: tokNumber, text: text[i:j]})
			i = j

		default:
			matched := false
			for _, op := range multiOps {
				if len(op) <= n-i && text[i:i+len(op)] == op {
					out = append(out, token{kind: tokOp, text: op})
					i += len(op)
					matched = true
					break
				}
			}
			if !matched {
				out = append(out, token{kind: tokOp, text: text[i : i+1]})
				i++
			}
		}
	}

	return out
}

func isStringPrefix(word string) bool {
	if len(word) > 2 {
		return false
	}
	for i := 0; i < len(word); i++ {
		if !stringPrefixes[word[i]] {
			return false
		}
	}
	return true
}

// scanString returns the index just past the string literal starting at
// text[start], which must be a quote character. Both single and triple
// quoted forms are handled; the line assembler guarantees termination, but
// the scan still stops gracefully at end of text.
func scanString(text string, start int) int {
	quote := text[start]
	n := len(text)

	if start+2 < n && text[start+1] == quote && text[start+2] == quote {
		// Triple quoted.
		i := start + 3
		for i < n {
			if text[i] == '\\' {
				i += 2
				continue
			}
			if text[i] == quote && i+2 < n && text[i+1] == quote && text[i+2] == quote {
				return i + 3
			}
			i++
		}
		return n
	}

	i := start + 1
	for i < n {
		switch text[i] {
		case '\\':
			i += 2
		case quote:
			return i + 1
		case '\n':
			// Unterminated single-quoted string; the assembler rejects this
			// earlier, stop here for safety.
			return i
		default:
			i++
		}
	}
	return n
}
