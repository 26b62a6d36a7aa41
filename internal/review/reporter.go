package review

import (
	"sync"

	"github.com/sirkon/pyrevu/internal/pyrules"
)

// Issue is a single reported convention violation: a stable rule code and
// a human-readable message. Issues are immutable values; the engine never
// deduplicates or reorders them after creation.
type Issue struct {
	Rule    pyrules.Rule
	Message string
}

// Reporter collects issues discovered during review passes.
//
// The engine itself is single-threaded, but the accumulator is guarded so
// that a caller sharing one Reporter across goroutines stays safe.
type Reporter struct {
	mu     sync.Mutex
	issues []Issue
}

// Report appends a new violation record.
func (r *Reporter) Report(rule pyrules.Rule, message string) {
	r.mu.Lock()
	r.issues = append(r.issues, Issue{Rule: rule, Message: message})
	r.mu.Unlock()
}

// Issues returns a snapshot of all collected records in emission order.
func (r *Reporter) Issues() []Issue {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Issue, len(r.issues))
	copy(out, r.issues)
	return out
}

// Len returns the number of collected issues.
func (r *Reporter) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.issues)
}
