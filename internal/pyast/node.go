// Package pyast defines the syntax tree the review engine works on.
//
// The taxonomy is closed: every construct the rules may inspect has its own
// node type, and anything else the parser meets is preserved as an opaque
// node. Checks are therefore exhaustive type switches, never "does this
// object happen to have this field" probes.
package pyast

import (
	"github.com/sirkon/pyrevu/internal/pysrc"
)

// Node is the base interface implemented by all syntax tree node types.
// Every node carries an inclusive 1-based source line span.
type Node interface {
	Span() pysrc.Span
	isNode()
}

// Stmt marks nodes that represent statements.
type Stmt interface {
	Node
	isStmt()
}

// Expr marks nodes that represent expressions.
type Expr interface {
	Node
	isExpr()
}

// Target marks nodes that may appear on the left side of an assignment.
// Only Name targets participate in naming checks; the other shapes are
// exempt on purpose.
type Target interface {
	Node
	isTarget()
}

// Base carries the line span shared by every node kind.
type Base struct {
	Loc pysrc.Span
}

// At builds a Base for the given inclusive line range.
func At(start, end int) Base {
	return Base{Loc: pysrc.Span{Start: start, End: end}}
}

func (b Base) Span() pysrc.Span { return b.Loc }

func (Base) isNode() {}
