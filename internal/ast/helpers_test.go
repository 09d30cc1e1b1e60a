package ast

func ident(name string) *IdentExpr { return &IdentExpr{Name: name} }

func num(raw string, v float64) *LiteralExpr {
	return &LiteralExpr{Kind: NumberLiteral, Raw: raw, Number: v}
}

func str(s string) *LiteralExpr { return &LiteralExpr{Kind: StringLiteral, Text: s} }

func bin(l Expr, op BinaryOp, r Expr) *BinaryExpr { return &BinaryExpr{Left: l, Op: op, Right: r} }

func exprStmt(e Expr) *ExprStmt { return &ExprStmt{Expr: e} }
