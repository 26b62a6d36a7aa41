// Package pysrc holds raw source text addressed by 1-based inclusive line spans.
package pysrc

import (
	"fmt"
	"strings"
)

// Span is an inclusive range of source lines, 1-based.
// Start ≤ End holds for every span produced by the parser.
type Span struct {
	Start int
	End   int
}

// Contains reports whether the given line falls inside the span.
func (s Span) Contains(line int) bool {
	return s.Start <= line && line <= s.End
}

func (s Span) String() string {
	if s.Start == s.End {
		return fmt.Sprintf("%d", s.Start)
	}
	return fmt.Sprintf("%d-%d", s.Start, s.End)
}

// Source is the full text of a single reviewed file, split into lines.
type Source struct {
	Name  string
	Lines []string
}

// New splits text into lines. Line endings are not kept; both LF and CRLF
// inputs produce the same line content.
func New(name, text string) *Source {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return &Source{Name: name, Lines: lines}
}

// Line returns the content of the 1-based line n, or "" when out of range.
func (s *Source) Line(n int) string {
	if n < 1 || n > len(s.Lines) {
		return ""
	}
	return s.Lines[n-1]
}

// LineCount returns the number of lines in the source.
func (s *Source) LineCount() int {
	return len(s.Lines)
}

// Slice returns the text covered by the span, lines joined with "\n".
// Out-of-range parts of the span are clamped.
func (s *Source) Slice(sp Span) string {
	start := sp.Start
	if start < 1 {
		start = 1
	}
	end := sp.End
	if end > len(s.Lines) {
		end = len(s.Lines)
	}
	if start > end {
		return ""
	}
	return strings.Join(s.Lines[start-1:end], "\n")
}
