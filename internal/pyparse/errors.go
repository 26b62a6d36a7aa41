package pyparse

import "fmt"

// ParseError describes a structural failure in the reviewed source. The
// review engine never sees one: parsing happens before any rule runs, and
// the caller owns reporting.
type ParseError struct {
	File string
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Msg)
}

func errorf(file string, line int, format string, args ...any) *ParseError {
	return &ParseError{
		File: file,
		Line: line,
		Msg:  fmt.Sprintf(format, args...),
	}
}
