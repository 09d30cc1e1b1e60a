package ast

import "sort"

// LiteralExpr keeps the source text of numbers in Raw next to the parsed
// value so diagnostics can quote it exactly.
type LiteralExpr struct {
	Kind   LiteralKind
	Raw    string
	Number float64
	Text   string
	Bool   bool
	Span   Span
}

type IdentExpr struct {
	Name string
	Span Span
}

type BinaryExpr struct {
	Left  Expr
	Op    BinaryOp
	Right Expr
	Span  Span
}

type UnaryExpr struct {
	Op      UnaryOp
	Operand Expr
	Span    Span
}

type PostfixExpr struct {
	Operand Expr
	Op      PostfixOp
	Span    Span
}

type AssignExpr struct {
	Target Expr
	Value  Expr
	Span   Span
}

type CallExpr struct {
	Callee Expr
	Args   []Expr
	Span   Span
}

// CrossCallExpr is `language::function(args)`.
type CrossCallExpr struct {
	Language string
	Function string
	Args     []Expr
	Span     Span
}

type MemberExpr struct {
	Object Expr
	Member string
	Span   Span
}

type IndexExpr struct {
	Object Expr
	Index  Expr
	Span   Span
}

type ArrayExpr struct {
	Elements []Expr
	Span     Span
}

// ObjectExpr maps field names to values. Key order carries no meaning;
// consumers that need a stable order use Keys.
type ObjectExpr struct {
	Fields map[string]Expr
	Span   Span
}

func (o *ObjectExpr) Keys() []string {
	keys := make([]string, 0, len(o.Fields))
	for k := range o.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

type LambdaExpr struct {
	Params []*Parameter
	Body   []Stmt
	Span   Span
}
