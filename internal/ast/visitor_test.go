package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingVisitor records which visit method each node dispatched to.
type countingVisitor struct {
	calls map[string]int
}

func (v *countingVisitor) VisitProgram(*Program)             { v.calls["program"]++ }
func (v *countingVisitor) VisitLanguageBlock(*LanguageBlock) { v.calls["block"]++ }
func (v *countingVisitor) VisitFunction(*Function)           { v.calls["function"]++ }
func (v *countingVisitor) VisitParameter(*Parameter)         { v.calls["parameter"]++ }
func (v *countingVisitor) VisitStmt(Stmt)                    { v.calls["stmt"]++ }
func (v *countingVisitor) VisitExpr(Expr)                    { v.calls["expr"]++ }

func sampleProgram() *Program {
	// @lang python { function f(a) { return python::g(a) } }
	// let x = [1, { k: y }]
	call := &CrossCallExpr{Language: "python", Function: "g", Args: []Expr{&IdentExpr{Name: "a", Span: NewSpan(44, 45, 1, 45)}}, Span: NewSpan(34, 46, 1, 35)}
	ret := &ReturnStmt{Value: call, Span: NewSpan(27, 46, 1, 28)}
	param := &Parameter{Name: "a", Span: NewSpan(26, 27, 1, 27)}
	fn := &Function{Name: "f", Parameters: []*Parameter{param}, Body: []Stmt{ret}, Language: "python", Span: NewSpan(15, 48, 1, 16)}
	block := &LanguageBlock{Language: "python", Functions: []*Function{fn}, Span: NewSpan(0, 50, 1, 1)}

	obj := &ObjectExpr{Fields: map[string]Expr{"k": &IdentExpr{Name: "y", Span: NewSpan(68, 69, 2, 18)}}, Span: NewSpan(63, 71, 2, 13)}
	arr := &ArrayExpr{Elements: []Expr{num("1", 1), obj}, Span: NewSpan(59, 72, 2, 9)}
	decl := &VarDecl{Name: "x", Value: arr, Span: NewSpan(51, 72, 2, 1)}

	program := &Program{Statements: []Stmt{decl}, Span: NewSpan(0, 72, 1, 1)}
	program.AddLanguageBlock(block)
	return program
}

func TestAcceptDispatchesByCategory(t *testing.T) {
	program := sampleProgram()
	v := &countingVisitor{calls: map[string]int{}}

	Inspect(program, func(n Node) bool {
		n.Accept(v)
		return true
	})

	assert.Equal(t, 1, v.calls["program"])
	assert.Equal(t, 1, v.calls["block"])
	assert.Equal(t, 1, v.calls["function"])
	assert.Equal(t, 1, v.calls["parameter"])
	assert.Equal(t, 2, v.calls["stmt"])
	// call, a, array, 1, object, y
	assert.Equal(t, 6, v.calls["expr"])
}

func TestChildrenOrder(t *testing.T) {
	program := sampleProgram()
	children := Children(program)
	require.Len(t, children, 2)
	assert.IsType(t, &LanguageBlock{}, children[0])
	assert.IsType(t, &VarDecl{}, children[1])

	fn := program.LanguageBlocks[0].Functions[0]
	fnChildren := Children(fn)
	require.Len(t, fnChildren, 2)
	assert.IsType(t, &Parameter{}, fnChildren[0])
	assert.IsType(t, &ReturnStmt{}, fnChildren[1])

	assert.Empty(t, Children(&ReturnStmt{}))
	assert.Empty(t, Children(&IfStmt{Cond: ident("c")})[1:])
}

func TestInspectCanSkipSubtrees(t *testing.T) {
	program := sampleProgram()

	var seen []NodeType
	Inspect(program, func(n Node) bool {
		seen = append(seen, n.NodeType())
		return n.NodeType() != FUNCTION
	})
	assert.Equal(t, []NodeType{PROGRAM, LANGUAGE_BLOCK, FUNCTION, VAR_DECL, ARRAY_EXPR, LITERAL_EXPR, OBJECT_EXPR, IDENT_EXPR}, seen)
}

func TestPathToAndNodeAt(t *testing.T) {
	program := sampleProgram()

	path := PathTo(program, 44)
	require.Len(t, path, 6)
	assert.IsType(t, &CrossCallExpr{}, path[4])
	assert.Equal(t, "a", NodeAt(program, 44).(*IdentExpr).Name)
	assert.Equal(t, "python", EnclosingLanguage(path, "utopia"))

	ident := NodeAt(program, 68)
	require.NotNil(t, ident)
	assert.Equal(t, "y", ident.(*IdentExpr).Name)
	assert.Equal(t, "utopia", EnclosingLanguage(PathTo(program, 68), "utopia"))

	assert.Nil(t, NodeAt(program, 500))
	assert.Empty(t, PathTo(program, -1))
}
