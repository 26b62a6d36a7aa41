package review

import (
	"fmt"
	"strings"

	"github.com/sirkon/pyrevu/internal/pyast"
	"github.com/sirkon/pyrevu/internal/pyrules"
	"github.com/sirkon/pyrevu/internal/pysrc"
)

// The session lifecycle rule is a textual heuristic layered on top of the
// tree, not derived from it. All markers are exact raw substrings: "add"
// also matches inside unrelated identifiers, comments and string literals.
// That imprecision is documented behavior — keyword- or tree-aware matching
// would change which files pass and must not sneak in.

var (
	acquireMarks = []string{"getDbSession", "create_dbsession_pg"}
	writeMarks   = []string{"add", "update", "insert"}
)

const (
	finallyMark  = "finally"
	closeMark    = ".close()"
	exceptMark   = "except"
	rollbackMark = ".rollback()"
)

// lifecycleFacts records which markers occur in a function's raw slice.
type lifecycleFacts struct {
	acquire     bool
	hasFinally  bool
	hasClose    bool
	write       bool
	hasExcept   bool
	hasRollback bool
}

// scanLifecycle locates every marker occurrence in the source once and
// attributes it to all enclosing functions through the span index. A
// marker on line L occurs in a function's raw slice iff the function span
// covers L, so this is observably the same as slicing per function.
func scanLifecycle(src *pysrc.Source, ix *funcIndex) map[*pyast.FunctionDef]*lifecycleFacts {
	facts := make(map[*pyast.FunctionDef]*lifecycleFacts)

	mark := func(line int, set func(*lifecycleFacts)) {
		for _, fd := range ix.enclosing(line) {
			f := facts[fd]
			if f == nil {
				f = &lifecycleFacts{}
				facts[fd] = f
			}
			set(f)
		}
	}

	for i, text := range src.Lines {
		line := i + 1

		for _, m := range acquireMarks {
			if strings.Contains(text, m) {
				mark(line, func(f *lifecycleFacts) { f.acquire = true })
				break
			}
		}
		for _, m := range writeMarks {
			if strings.Contains(text, m) {
				mark(line, func(f *lifecycleFacts) { f.write = true })
				break
			}
		}
		if strings.Contains(text, finallyMark) {
			mark(line, func(f *lifecycleFacts) { f.hasFinally = true })
		}
		if strings.Contains(text, closeMark) {
			mark(line, func(f *lifecycleFacts) { f.hasClose = true })
		}
		if strings.Contains(text, exceptMark) {
			mark(line, func(f *lifecycleFacts) { f.hasExcept = true })
		}
		if strings.Contains(text, rollbackMark) {
			mark(line, func(f *lifecycleFacts) { f.hasRollback = true })
		}
	}

	return facts
}

// checkSessionLifecycle flags functions that acquire a DB session without
// the cleanup and rollback conventions. Functions without an acquisition
// marker are never flagged, whatever else their text contains.
func (rv *Reviewer) checkSessionLifecycle() {
	ix := newFuncIndex(rv.tree)
	facts := scanLifecycle(rv.src, ix)

	pyast.Walk(rv.tree, func(n pyast.Node) bool {
		fd, ok := n.(*pyast.FunctionDef)
		if !ok {
			return true
		}
		f := facts[fd]
		if f == nil || !f.acquire {
			return true
		}

		if !f.hasFinally || !f.hasClose {
			rv.rep.Report(
				pyrules.SessionCloseFinally(),
				fmt.Sprintf("Function '%s' must close DB sessions in a finally block.", fd.Name),
			)
		}
		if f.write && (!f.hasExcept || !f.hasRollback) {
			rv.rep.Report(
				pyrules.WriteNeedsRollback(),
				fmt.Sprintf("Function '%s' does DB writes but is missing rollback in except block.", fd.Name),
			)
		}
		return true
	})
}
