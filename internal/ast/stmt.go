package ast

import "utopia/internal/types"

type ExprStmt struct {
	Expr Expr
	Span Span
}

// VarDecl is `let` or `const`.
type VarDecl struct {
	Name    string
	Type    types.Type // nil when not annotated
	Value   Expr       // nil when not initialised
	IsConst bool
	Span    Span
}

type AssignStmt struct {
	Target Expr
	Value  Expr
	Span   Span
}

type IfStmt struct {
	Cond Expr
	Then *BlockStmt
	Else *BlockStmt // nil without an else branch
	Span Span
}

type WhileStmt struct {
	Cond Expr
	Body *BlockStmt
	Span Span
}

// ForStmt is the C-style three clause loop; every clause may be nil.
type ForStmt struct {
	Init   Stmt
	Cond   Expr
	Update Expr
	Body   *BlockStmt
	Span   Span
}

type ReturnStmt struct {
	Value Expr // nil for a bare return
	Span  Span
}

type ImportStmt struct {
	Module string
	Items  []string
	Span   Span
}

type ExportStmt struct {
	Name string
	Span Span
}

type BlockStmt struct {
	Stmts []Stmt
	Span  Span
}

// FunctionDecl is a function declared outside a language block.
type FunctionDecl struct {
	Function *Function
	Span     Span
}
