package review

import (
	"github.com/sirkon/pyrevu/internal/pyast"
	"github.com/sirkon/pyrevu/internal/pysrc"
)

// Reviewer runs the convention passes over one parsed file. State lives
// for exactly one Run: create, run, read issues, discard.
type Reviewer struct {
	tree *pyast.Module
	src  *pysrc.Source
	rep  *Reporter
}

// New builds a Reviewer with a fresh issue accumulator.
func New(tree *pyast.Module, src *pysrc.Source) *Reviewer {
	return &Reviewer{
		tree: tree,
		src:  src,
		rep:  &Reporter{},
	}
}

// Run executes every pass in fixed order — function names, variable names,
// endpoint conventions, session lifecycle — each as its own traversal, and
// returns the issues in emission order. The result is grouped by pass, not
// by source location; an empty result means the file passes.
func (rv *Reviewer) Run() []Issue {
	rv.checkFunctionNames()
	rv.checkVariableNames()
	rv.checkEndpoints()
	rv.checkSessionLifecycle()
	return rv.rep.Issues()
}

// Run reviews a parsed file with a fresh Reviewer.
func Run(tree *pyast.Module, src *pysrc.Source) []Issue {
	return New(tree, src).Run()
}
