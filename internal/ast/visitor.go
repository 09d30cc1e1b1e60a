package ast

// Visitor has one method per node category. A node's Accept forwards to the
// matching method; the visitor decides whether to descend.
type Visitor interface {
	VisitProgram(p *Program)
	VisitLanguageBlock(b *LanguageBlock)
	VisitFunction(f *Function)
	VisitParameter(p *Parameter)
	VisitStmt(s Stmt)
	VisitExpr(e Expr)
}

func (p *Program) Accept(v Visitor)       { v.VisitProgram(p) }
func (b *LanguageBlock) Accept(v Visitor) { v.VisitLanguageBlock(b) }
func (f *Function) Accept(v Visitor)      { v.VisitFunction(f) }
func (p *Parameter) Accept(v Visitor)     { v.VisitParameter(p) }

func (s *ExprStmt) Accept(v Visitor)     { v.VisitStmt(s) }
func (s *VarDecl) Accept(v Visitor)      { v.VisitStmt(s) }
func (s *AssignStmt) Accept(v Visitor)   { v.VisitStmt(s) }
func (s *IfStmt) Accept(v Visitor)       { v.VisitStmt(s) }
func (s *WhileStmt) Accept(v Visitor)    { v.VisitStmt(s) }
func (s *ForStmt) Accept(v Visitor)      { v.VisitStmt(s) }
func (s *ReturnStmt) Accept(v Visitor)   { v.VisitStmt(s) }
func (s *ImportStmt) Accept(v Visitor)   { v.VisitStmt(s) }
func (s *ExportStmt) Accept(v Visitor)   { v.VisitStmt(s) }
func (s *BlockStmt) Accept(v Visitor)    { v.VisitStmt(s) }
func (s *FunctionDecl) Accept(v Visitor) { v.VisitStmt(s) }

func (e *LiteralExpr) Accept(v Visitor)   { v.VisitExpr(e) }
func (e *IdentExpr) Accept(v Visitor)     { v.VisitExpr(e) }
func (e *BinaryExpr) Accept(v Visitor)    { v.VisitExpr(e) }
func (e *UnaryExpr) Accept(v Visitor)     { v.VisitExpr(e) }
func (e *PostfixExpr) Accept(v Visitor)   { v.VisitExpr(e) }
func (e *AssignExpr) Accept(v Visitor)    { v.VisitExpr(e) }
func (e *CallExpr) Accept(v Visitor)      { v.VisitExpr(e) }
func (e *CrossCallExpr) Accept(v Visitor) { v.VisitExpr(e) }
func (e *MemberExpr) Accept(v Visitor)    { v.VisitExpr(e) }
func (e *IndexExpr) Accept(v Visitor)     { v.VisitExpr(e) }
func (e *ArrayExpr) Accept(v Visitor)     { v.VisitExpr(e) }
func (e *ObjectExpr) Accept(v Visitor)    { v.VisitExpr(e) }
func (e *LambdaExpr) Accept(v Visitor)    { v.VisitExpr(e) }

// Children returns the direct child nodes in source order. Object literal
// fields come back sorted by key.
func Children(node Node) []Node {
	var out []Node
	add := func(n Node) {
		if n != nil {
			out = append(out, n)
		}
	}
	addExpr := func(e Expr) {
		if e != nil {
			out = append(out, e)
		}
	}
	addStmts := func(stmts []Stmt) {
		for _, s := range stmts {
			out = append(out, s)
		}
	}

	switch n := node.(type) {
	case *Program:
		for _, b := range n.LanguageBlocks {
			add(b)
		}
		addStmts(n.Statements)
	case *LanguageBlock:
		for _, f := range n.Functions {
			add(f)
		}
		addStmts(n.Statements)
	case *Function:
		for _, p := range n.Parameters {
			add(p)
		}
		addStmts(n.Body)
	case *Parameter:
		addExpr(n.Default)

	case *ExprStmt:
		addExpr(n.Expr)
	case *VarDecl:
		addExpr(n.Value)
	case *AssignStmt:
		addExpr(n.Target)
		addExpr(n.Value)
	case *IfStmt:
		addExpr(n.Cond)
		if n.Then != nil {
			add(n.Then)
		}
		if n.Else != nil {
			add(n.Else)
		}
	case *WhileStmt:
		addExpr(n.Cond)
		if n.Body != nil {
			add(n.Body)
		}
	case *ForStmt:
		if n.Init != nil {
			add(n.Init)
		}
		addExpr(n.Cond)
		addExpr(n.Update)
		if n.Body != nil {
			add(n.Body)
		}
	case *ReturnStmt:
		addExpr(n.Value)
	case *BlockStmt:
		addStmts(n.Stmts)
	case *FunctionDecl:
		if n.Function != nil {
			add(n.Function)
		}

	case *BinaryExpr:
		addExpr(n.Left)
		addExpr(n.Right)
	case *UnaryExpr:
		addExpr(n.Operand)
	case *PostfixExpr:
		addExpr(n.Operand)
	case *AssignExpr:
		addExpr(n.Target)
		addExpr(n.Value)
	case *CallExpr:
		addExpr(n.Callee)
		for _, a := range n.Args {
			addExpr(a)
		}
	case *CrossCallExpr:
		for _, a := range n.Args {
			addExpr(a)
		}
	case *MemberExpr:
		addExpr(n.Object)
	case *IndexExpr:
		addExpr(n.Object)
		addExpr(n.Index)
	case *ArrayExpr:
		for _, e := range n.Elements {
			addExpr(e)
		}
	case *ObjectExpr:
		for _, k := range n.Keys() {
			addExpr(n.Fields[k])
		}
	case *LambdaExpr:
		for _, p := range n.Params {
			add(p)
		}
		addStmts(n.Body)
	}
	return out
}

// Inspect walks the tree depth-first in source order, calling f for each
// node. Returning false from f skips that node's children.
func Inspect(node Node, f func(Node) bool) {
	if node == nil || !f(node) {
		return
	}
	for _, child := range Children(node) {
		Inspect(child, f)
	}
}
