package ast

type Node interface {
	NodeSpan() Span
	NodeType() NodeType
	Accept(v Visitor)
	String() string
}

type Stmt interface {
	Node
	isStmt()
}

type Expr interface {
	Node
	isExpr()
}

func (p *Program) NodeSpan() Span      { return p.Span }
func (*Program) NodeType() NodeType    { return PROGRAM }
func (b *LanguageBlock) NodeSpan() Span { return b.Span }
func (*LanguageBlock) NodeType() NodeType { return LANGUAGE_BLOCK }
func (f *Function) NodeSpan() Span   { return f.Span }
func (*Function) NodeType() NodeType { return FUNCTION }
func (p *Parameter) NodeSpan() Span  { return p.Span }
func (*Parameter) NodeType() NodeType { return PARAMETER }

func (s *ExprStmt) NodeSpan() Span     { return s.Span }
func (*ExprStmt) NodeType() NodeType   { return EXPR_STMT }
func (s *VarDecl) NodeSpan() Span      { return s.Span }
func (*VarDecl) NodeType() NodeType    { return VAR_DECL }
func (s *AssignStmt) NodeSpan() Span   { return s.Span }
func (*AssignStmt) NodeType() NodeType { return ASSIGN_STMT }
func (s *IfStmt) NodeSpan() Span       { return s.Span }
func (*IfStmt) NodeType() NodeType     { return IF_STMT }
func (s *WhileStmt) NodeSpan() Span    { return s.Span }
func (*WhileStmt) NodeType() NodeType  { return WHILE_STMT }
func (s *ForStmt) NodeSpan() Span      { return s.Span }
func (*ForStmt) NodeType() NodeType    { return FOR_STMT }
func (s *ReturnStmt) NodeSpan() Span   { return s.Span }
func (*ReturnStmt) NodeType() NodeType { return RETURN_STMT }
func (s *ImportStmt) NodeSpan() Span   { return s.Span }
func (*ImportStmt) NodeType() NodeType { return IMPORT_STMT }
func (s *ExportStmt) NodeSpan() Span   { return s.Span }
func (*ExportStmt) NodeType() NodeType { return EXPORT_STMT }
func (s *BlockStmt) NodeSpan() Span    { return s.Span }
func (*BlockStmt) NodeType() NodeType  { return BLOCK_STMT }
func (s *FunctionDecl) NodeSpan() Span { return s.Span }
func (*FunctionDecl) NodeType() NodeType { return FUNCTION_DECL }

func (e *LiteralExpr) NodeSpan() Span     { return e.Span }
func (*LiteralExpr) NodeType() NodeType   { return LITERAL_EXPR }
func (e *IdentExpr) NodeSpan() Span       { return e.Span }
func (*IdentExpr) NodeType() NodeType     { return IDENT_EXPR }
func (e *BinaryExpr) NodeSpan() Span      { return e.Span }
func (*BinaryExpr) NodeType() NodeType    { return BINARY_EXPR }
func (e *UnaryExpr) NodeSpan() Span       { return e.Span }
func (*UnaryExpr) NodeType() NodeType     { return UNARY_EXPR }
func (e *PostfixExpr) NodeSpan() Span     { return e.Span }
func (*PostfixExpr) NodeType() NodeType   { return POSTFIX_EXPR }
func (e *AssignExpr) NodeSpan() Span      { return e.Span }
func (*AssignExpr) NodeType() NodeType    { return ASSIGN_EXPR }
func (e *CallExpr) NodeSpan() Span        { return e.Span }
func (*CallExpr) NodeType() NodeType      { return CALL_EXPR }
func (e *CrossCallExpr) NodeSpan() Span   { return e.Span }
func (*CrossCallExpr) NodeType() NodeType { return CROSS_CALL_EXPR }
func (e *MemberExpr) NodeSpan() Span      { return e.Span }
func (*MemberExpr) NodeType() NodeType    { return MEMBER_EXPR }
func (e *IndexExpr) NodeSpan() Span       { return e.Span }
func (*IndexExpr) NodeType() NodeType     { return INDEX_EXPR }
func (e *ArrayExpr) NodeSpan() Span       { return e.Span }
func (*ArrayExpr) NodeType() NodeType     { return ARRAY_EXPR }
func (e *ObjectExpr) NodeSpan() Span      { return e.Span }
func (*ObjectExpr) NodeType() NodeType    { return OBJECT_EXPR }
func (e *LambdaExpr) NodeSpan() Span      { return e.Span }
func (*LambdaExpr) NodeType() NodeType    { return LAMBDA_EXPR }

func (*ExprStmt) isStmt()     {}
func (*VarDecl) isStmt()      {}
func (*AssignStmt) isStmt()   {}
func (*IfStmt) isStmt()       {}
func (*WhileStmt) isStmt()    {}
func (*ForStmt) isStmt()      {}
func (*ReturnStmt) isStmt()   {}
func (*ImportStmt) isStmt()   {}
func (*ExportStmt) isStmt()   {}
func (*BlockStmt) isStmt()    {}
func (*FunctionDecl) isStmt() {}

func (*LiteralExpr) isExpr()   {}
func (*IdentExpr) isExpr()     {}
func (*BinaryExpr) isExpr()    {}
func (*UnaryExpr) isExpr()     {}
func (*PostfixExpr) isExpr()   {}
func (*AssignExpr) isExpr()    {}
func (*CallExpr) isExpr()      {}
func (*CrossCallExpr) isExpr() {}
func (*MemberExpr) isExpr()    {}
func (*IndexExpr) isExpr()     {}
func (*ArrayExpr) isExpr()     {}
func (*ObjectExpr) isExpr()    {}
func (*LambdaExpr) isExpr()    {}
