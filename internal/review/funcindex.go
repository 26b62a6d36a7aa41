package review

import (
	"github.com/sirkon/rbtree"

	"github.com/sirkon/pyrevu/internal/pyast"
)

// funcSpan stores the [start,end] line span of one function definition and,
// if needed, a nested RB-tree for function spans fully contained in it.
type funcSpan struct {
	start int
	end   int

	fn       *pyast.FunctionDef
	children *rbtree.Tree[*funcSpan]
}

// Cmp defines ordering for the RB-tree as "disjoint by line range".
// - return -1 if this span is strictly before the other
// - return  1 if this span is strictly after the other
// - return  0 if the spans overlap in any way (including containment).
//
// Function spans come from one tree, so any two overlapping spans are in a
// strict containment relationship — "equal" (0) always means super/subspan.
// The RB-tree then hands back the overlapping node via InsertReturn and the
// containment fix-up is done here.
func (s *funcSpan) Cmp(other *funcSpan) int {
	if s.end < other.start {
		return -1
	}
	if s.start > other.end {
		return 1
	}
	return 0
}

func containsSpan(a, b *funcSpan) bool {
	return a.start <= b.start && a.end >= b.end
}

// funcIndex is a containment hierarchy of function line spans. It answers
// "which function definitions enclose this line", which is how raw-text
// pattern hits are attributed to functions: a substring on line L belongs
// to every function whose span covers L, exactly as if each function's raw
// slice had been searched on its own.
type funcIndex struct {
	tree *rbtree.Tree[*funcSpan]
}

// newFuncIndex collects every function definition in the tree. Walk order
// is preorder, so an enclosing function is always inserted before the ones
// nested in it.
func newFuncIndex(root pyast.Node) *funcIndex {
	ix := &funcIndex{tree: rbtree.New[*funcSpan]()}
	pyast.Walk(root, func(n pyast.Node) bool {
		if fd, ok := n.(*pyast.FunctionDef); ok {
			sp := fd.Span()
			attachInto(ix.tree, &funcSpan{start: sp.Start, end: sp.End, fn: fd})
		}
		return true
	})
	return ix
}

// attachInto inserts span s into RB-tree t, using the containment rules:
//   - no overlapping node: s becomes a sibling in t;
//   - an overlapping node r contains s: descend into r's children;
//   - s contains r: overwrite r in place to represent s and re-attach the
//     old r as its child, which avoids needing a Replace operation.
func attachInto(t *rbtree.Tree[*funcSpan], s *funcSpan) {
	r := t.InsertReturn(s)
	if r == s {
		// Disjoint: brand new top-level entry.
		return
	}

	if containsSpan(r, s) {
		if r.children == nil {
			r.children = rbtree.New[*funcSpan]()
		}
		attachInto(r.children, s)
		return
	}

	// s is the superspan. Preorder insertion makes this unreachable, kept
	// for symmetry with the containment model.
	old := *r
	*r = *s
	r.children = rbtree.New[*funcSpan]()
	attachInto(r.children, &old)
}

// enclosing returns the chain of function definitions whose spans cover
// the given line, outermost first.
func (ix *funcIndex) enclosing(line int) []*pyast.FunctionDef {
	var out []*pyast.FunctionDef

	probe := &funcSpan{start: line, end: line}
	t := ix.tree
	for t != nil {
		n := t.Search(probe)
		if n == nil {
			break
		}
		out = append(out, n.fn)
		t = n.children
	}
	return out
}
