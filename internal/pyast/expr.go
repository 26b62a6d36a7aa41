package pyast

// Name is a plain identifier reference. It is both an expression and an
// assignment target; only this target shape feeds the naming rule.
type Name struct {
	Base
	Id string
}

// Attribute is an attribute access: Value.Attr.
type Attribute struct {
	Base
	Value Expr
	Attr  string
}

// Call is a call expression. Args holds positional and keyword argument
// values alike; keyword names are dropped since no rule inspects them.
type Call struct {
	Base
	Func Expr
	Args []Expr
}

// Constant is an opaque leaf: literals and any expression text the parser
// does not model structurally.
type Constant struct {
	Base
	Text string
}

// BinOp is a loose binary combination of two expressions. The parser does
// not rank operator precedence — Op is kept verbatim and both operands stay
// reachable for tree walks, which is all the rules require.
type BinOp struct {
	Base
	Left  Expr
	Op    string
	Right Expr
}

// Container is a list/tuple/set/dict display. Elts holds every element
// expression; dict keys and values both contribute elements.
type Container struct {
	Base
	Elts []Expr
}

// TupleTarget is a tuple pattern on the left side of an assignment.
type TupleTarget struct {
	Base
	Elts []Target
}

// ListTarget is a list pattern on the left side of an assignment.
type ListTarget struct {
	Base
	Elts []Target
}

// OpaqueTarget is any other assignment target shape (subscripts, starred
// names and so on). Exempt from naming checks like all non-Name targets.
type OpaqueTarget struct {
	Base
	Text string
}

func (*Name) isExpr()      {}
func (*Attribute) isExpr() {}
func (*Call) isExpr()      {}
func (*Constant) isExpr()  {}
func (*BinOp) isExpr()     {}
func (*Container) isExpr() {}

func (*Name) isTarget()         {}
func (*Attribute) isTarget()    {}
func (*TupleTarget) isTarget()  {}
func (*ListTarget) isTarget()   {}
func (*OpaqueTarget) isTarget() {}
