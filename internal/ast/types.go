package ast

type NodeType int

const (
	PROGRAM NodeType = iota
	LANGUAGE_BLOCK
	FUNCTION
	PARAMETER

	// statements
	EXPR_STMT
	VAR_DECL
	ASSIGN_STMT
	IF_STMT
	WHILE_STMT
	FOR_STMT
	RETURN_STMT
	IMPORT_STMT
	EXPORT_STMT
	BLOCK_STMT
	FUNCTION_DECL

	// expressions
	LITERAL_EXPR
	IDENT_EXPR
	BINARY_EXPR
	UNARY_EXPR
	POSTFIX_EXPR
	ASSIGN_EXPR
	CALL_EXPR
	CROSS_CALL_EXPR
	MEMBER_EXPR
	INDEX_EXPR
	ARRAY_EXPR
	OBJECT_EXPR
	LAMBDA_EXPR
)

var nodeTypeNames = [...]string{
	PROGRAM:         "Program",
	LANGUAGE_BLOCK:  "LanguageBlock",
	FUNCTION:        "Function",
	PARAMETER:       "Parameter",
	EXPR_STMT:       "ExprStmt",
	VAR_DECL:        "VarDecl",
	ASSIGN_STMT:     "AssignStmt",
	IF_STMT:         "IfStmt",
	WHILE_STMT:      "WhileStmt",
	FOR_STMT:        "ForStmt",
	RETURN_STMT:     "ReturnStmt",
	IMPORT_STMT:     "ImportStmt",
	EXPORT_STMT:     "ExportStmt",
	BLOCK_STMT:      "BlockStmt",
	FUNCTION_DECL:   "FunctionDecl",
	LITERAL_EXPR:    "LiteralExpr",
	IDENT_EXPR:      "IdentExpr",
	BINARY_EXPR:     "BinaryExpr",
	UNARY_EXPR:      "UnaryExpr",
	POSTFIX_EXPR:    "PostfixExpr",
	ASSIGN_EXPR:     "AssignExpr",
	CALL_EXPR:       "CallExpr",
	CROSS_CALL_EXPR: "CrossCallExpr",
	MEMBER_EXPR:     "MemberExpr",
	INDEX_EXPR:      "IndexExpr",
	ARRAY_EXPR:      "ArrayExpr",
	OBJECT_EXPR:     "ObjectExpr",
	LAMBDA_EXPR:     "LambdaExpr",
}

func (t NodeType) String() string {
	if int(t) >= 0 && int(t) < len(nodeTypeNames) {
		return nodeTypeNames[t]
	}
	return "NodeType(?)"
}

type BinaryOp int

const (
	Add BinaryOp = iota
	Sub
	Mul
	Div
	Mod
	Eq
	NotEq
	Less
	LessEq
	Greater
	GreaterEq
	And
	Or
)

var binaryOpSymbols = [...]string{
	Add: "+", Sub: "-", Mul: "*", Div: "/", Mod: "%",
	Eq: "==", NotEq: "!=",
	Less: "<", LessEq: "<=", Greater: ">", GreaterEq: ">=",
	And: "&&", Or: "||",
}

func (op BinaryOp) String() string {
	if int(op) >= 0 && int(op) < len(binaryOpSymbols) {
		return binaryOpSymbols[op]
	}
	return "?"
}

// Precedence follows the parser's climbing order; higher binds tighter.
func (op BinaryOp) Precedence() int {
	switch op {
	case Or:
		return 1
	case And:
		return 2
	case Eq, NotEq:
		return 3
	case Less, LessEq, Greater, GreaterEq:
		return 4
	case Add, Sub:
		return 5
	case Mul, Div, Mod:
		return 6
	}
	return 0
}

func (op BinaryOp) IsArithmetic() bool {
	return op == Add || op == Sub || op == Mul || op == Div || op == Mod
}

func (op BinaryOp) IsComparison() bool {
	return op >= Eq && op <= GreaterEq
}

func (op BinaryOp) IsLogical() bool {
	return op == And || op == Or
}

type UnaryOp int

const (
	Not UnaryOp = iota
	Neg
	Plus
)

func (op UnaryOp) String() string {
	switch op {
	case Not:
		return "!"
	case Neg:
		return "-"
	case Plus:
		return "+"
	}
	return "?"
}

type PostfixOp int

const (
	Increment PostfixOp = iota
	Decrement
)

func (op PostfixOp) String() string {
	if op == Increment {
		return "++"
	}
	return "--"
}

type LiteralKind int

const (
	NumberLiteral LiteralKind = iota
	StringLiteral
	BoolLiteral
	NullLiteral
)

func (k LiteralKind) String() string {
	switch k {
	case NumberLiteral:
		return "number"
	case StringLiteral:
		return "string"
	case BoolLiteral:
		return "boolean"
	case NullLiteral:
		return "null"
	}
	return "?"
}
