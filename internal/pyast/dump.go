package pyast

import (
	"fmt"
	"io"
	"strings"
)

// Dump writes an indented one-node-per-line rendering of the tree. It is a
// debugging aid for the parse command and for parser tests.
func Dump(w io.Writer, n Node) {
	dump(w, n, 0)
}

func dump(w io.Writer, n Node, depth int) {
	if n == nil {
		return
	}

	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(w, "%s%s [%s]\n", indent, describe(n), n.Span())

	Walk(n, func(child Node) bool {
		if child == n {
			return true
		}
		dump(w, child, depth+1)
		return false // children recurse through dump, not Walk
	})
}

func describe(n Node) string {
	switch v := n.(type) {
	case *Module:
		return "Module"
	case *FunctionDef:
		return fmt.Sprintf("FunctionDef %s", v.Name)
	case *ClassDef:
		return fmt.Sprintf("ClassDef %s", v.Name)
	case *Assign:
		return "Assign"
	case *Try:
		return "Try"
	case *ExceptHandler:
		if v.Name != "" {
			return fmt.Sprintf("ExceptHandler as %s", v.Name)
		}
		return "ExceptHandler"
	case *If:
		return "If"
	case *While:
		return "While"
	case *For:
		return "For"
	case *With:
		return "With"
	case *Return:
		return "Return"
	case *Raise:
		return "Raise"
	case *Pass:
		return "Pass"
	case *ExprStmt:
		return "ExprStmt"
	case *Name:
		return fmt.Sprintf("Name %s", v.Id)
	case *Attribute:
		return fmt.Sprintf("Attribute .%s", v.Attr)
	case *Call:
		return "Call"
	case *Constant:
		return fmt.Sprintf("Constant %q", v.Text)
	case *BinOp:
		return fmt.Sprintf("BinOp %q", v.Op)
	case *Container:
		return "Container"
	case *TupleTarget:
		return "TupleTarget"
	case *ListTarget:
		return "ListTarget"
	case *OpaqueTarget:
		return fmt.Sprintf("OpaqueTarget %q", v.Text)
	default:
		return fmt.Sprintf("unknown(%T)", n)
	}
}
