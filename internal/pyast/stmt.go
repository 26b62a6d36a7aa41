package pyast

// Module is the root of a parsed file.
type Module struct {
	Base
	Body []Stmt
}

// FunctionDef represents a function definition. The span starts at the def
// line and ends at the last body line; decorator lines are not included,
// matching how the lifecycle rule slices raw text.
type FunctionDef struct {
	Base
	Name       string
	Decorators []Expr
	Body       []Stmt
}

// ClassDef represents a class definition. The review rules never inspect
// classes themselves, but their bodies must nest properly so that methods
// are reachable by the tree walks.
type ClassDef struct {
	Base
	Name       string
	Decorators []Expr
	Body       []Stmt
}

// Assign represents a plain assignment statement. Chained assignments
// (a = b = value) contribute one target per "=" sign. Augmented and
// annotated assignments are different statement kinds in the source
// language and are deliberately not represented as Assign.
type Assign struct {
	Base
	Targets []Target
	Value   Expr
}

// ExceptHandler is a single except clause of a Try statement.
type ExceptHandler struct {
	Base
	Type Expr // nil for a bare except
	Name string
	Body []Stmt
}

// Try represents a try statement with its handlers and optional
// else/finally suites.
type Try struct {
	Base
	Body     []Stmt
	Handlers []*ExceptHandler
	OrElse   []Stmt
	Final    []Stmt
}

// If represents an if statement. An elif chain parses into a nested If as
// the sole element of OrElse.
type If struct {
	Base
	Cond   Expr
	Body   []Stmt
	OrElse []Stmt
}

// While represents a while loop.
type While struct {
	Base
	Cond Expr
	Body []Stmt
}

// For represents a for loop.
type For struct {
	Base
	Target Target
	Iter   Expr
	Body   []Stmt
}

// With represents a with statement. Context items beyond the first
// expression are folded into it by the parser.
type With struct {
	Base
	Item Expr
	Body []Stmt
}

// Return represents a return statement; Value is nil for a bare return.
type Return struct {
	Base
	Value Expr
}

// Raise represents a raise statement; Value is nil for a bare raise.
type Raise struct {
	Base
	Value Expr
}

// Pass represents a pass statement.
type Pass struct {
	Base
}

// ExprStmt is a statement consisting of a single expression. The parser
// also uses it for statement kinds the rules never distinguish (imports,
// augmented assignments and similar), keeping any call expressions inside
// them visible to tree walks.
type ExprStmt struct {
	Base
	Value Expr
}

func (*Module) isStmt()      {}
func (*FunctionDef) isStmt() {}
func (*ClassDef) isStmt()    {}
func (*Assign) isStmt()      {}
func (*Try) isStmt()         {}
func (*If) isStmt()          {}
func (*While) isStmt()       {}
func (*For) isStmt()         {}
func (*With) isStmt()        {}
func (*Return) isStmt()      {}
func (*Raise) isStmt()       {}
func (*Pass) isStmt()        {}
func (*ExprStmt) isStmt()    {}
