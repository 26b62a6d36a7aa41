package pyast

// Walk traverses the tree rooted at n in deterministic preorder: the node
// itself first, then children in field declaration order. Returning false
// from fn prunes the subtree below the current node.
func Walk(n Node, fn func(Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}

	switch v := n.(type) {
	case *Module:
		walkStmts(v.Body, fn)

	case *FunctionDef:
		walkExprs(v.Decorators, fn)
		walkStmts(v.Body, fn)

	case *ClassDef:
		walkExprs(v.Decorators, fn)
		walkStmts(v.Body, fn)

	case *Assign:
		for _, t := range v.Targets {
			Walk(t, fn)
		}
		walkExpr(v.Value, fn)

	case *Try:
		walkStmts(v.Body, fn)
		for _, h := range v.Handlers {
			Walk(h, fn)
		}
		walkStmts(v.OrElse, fn)
		walkStmts(v.Final, fn)

	case *ExceptHandler:
		walkExpr(v.Type, fn)
		walkStmts(v.Body, fn)

	case *If:
		walkExpr(v.Cond, fn)
		walkStmts(v.Body, fn)
		walkStmts(v.OrElse, fn)

	case *While:
		walkExpr(v.Cond, fn)
		walkStmts(v.Body, fn)

	case *For:
		Walk(v.Target, fn)
		walkExpr(v.Iter, fn)
		walkStmts(v.Body, fn)

	case *With:
		walkExpr(v.Item, fn)
		walkStmts(v.Body, fn)

	case *Return:
		walkExpr(v.Value, fn)

	case *Raise:
		walkExpr(v.Value, fn)

	case *ExprStmt:
		walkExpr(v.Value, fn)

	case *Call:
		walkExpr(v.Func, fn)
		walkExprs(v.Args, fn)

	case *Attribute:
		walkExpr(v.Value, fn)

	case *BinOp:
		walkExpr(v.Left, fn)
		walkExpr(v.Right, fn)

	case *Container:
		walkExprs(v.Elts, fn)

	case *TupleTarget:
		for _, t := range v.Elts {
			Walk(t, fn)
		}

	case *ListTarget:
		for _, t := range v.Elts {
			Walk(t, fn)
		}

	case *Pass, *Name, *Constant, *OpaqueTarget:
		// Leaves.
	}
}

func walkStmts(stmts []Stmt, fn func(Node) bool) {
	for _, s := range stmts {
		Walk(s, fn)
	}
}

func walkExpr(e Expr, fn func(Node) bool) {
	if e == nil {
		return
	}
	Walk(e, fn)
}

func walkExprs(exprs []Expr, fn func(Node) bool) {
	for _, e := range exprs {
		walkExpr(e, fn)
	}
}
