package ast

import (
	"strconv"
	"strings"

	"utopia/internal/types"
)

// Printer renders a tree back to source form. Its output parses back to an
// equal tree, so printing is a fixed point after one round trip.
type Printer struct {
	sb     strings.Builder
	indent int
	Unit   string
}

func NewPrinter() *Printer {
	return &Printer{Unit: "    "}
}

// Print renders node and returns the text.
func (p *Printer) Print(node Node) string {
	p.sb.Reset()
	p.indent = 0
	node.Accept(p)
	return p.sb.String()
}

// Print is a shorthand for NewPrinter().Print(node).
func Print(node Node) string {
	return NewPrinter().Print(node)
}

func (p *Program) String() string       { return Print(p) }
func (b *LanguageBlock) String() string { return Print(b) }
func (f *Function) String() string      { return Print(f) }
func (p *Parameter) String() string     { return Print(p) }

func (s *ExprStmt) String() string     { return Print(s) }
func (s *VarDecl) String() string      { return Print(s) }
func (s *AssignStmt) String() string   { return Print(s) }
func (s *IfStmt) String() string       { return Print(s) }
func (s *WhileStmt) String() string    { return Print(s) }
func (s *ForStmt) String() string      { return Print(s) }
func (s *ReturnStmt) String() string   { return Print(s) }
func (s *ImportStmt) String() string   { return Print(s) }
func (s *ExportStmt) String() string   { return Print(s) }
func (s *BlockStmt) String() string    { return Print(s) }
func (s *FunctionDecl) String() string { return Print(s) }

func (e *LiteralExpr) String() string   { return Print(e) }
func (e *IdentExpr) String() string     { return Print(e) }
func (e *BinaryExpr) String() string    { return Print(e) }
func (e *UnaryExpr) String() string     { return Print(e) }
func (e *PostfixExpr) String() string   { return Print(e) }
func (e *AssignExpr) String() string    { return Print(e) }
func (e *CallExpr) String() string      { return Print(e) }
func (e *CrossCallExpr) String() string { return Print(e) }
func (e *MemberExpr) String() string    { return Print(e) }
func (e *IndexExpr) String() string     { return Print(e) }
func (e *ArrayExpr) String() string     { return Print(e) }
func (e *ObjectExpr) String() string    { return Print(e) }
func (e *LambdaExpr) String() string    { return Print(e) }

func (p *Printer) write(s string) { p.sb.WriteString(s) }

func (p *Printer) writeIndent() {
	for i := 0; i < p.indent; i++ {
		p.sb.WriteString(p.Unit)
	}
}

func (p *Printer) VisitProgram(prog *Program) {
	for i, block := range prog.LanguageBlocks {
		if i > 0 {
			p.write("\n")
		}
		block.Accept(p)
		p.write("\n")
	}
	if len(prog.LanguageBlocks) > 0 && len(prog.Statements) > 0 {
		p.write("\n")
	}
	for _, stmt := range prog.Statements {
		stmt.Accept(p)
		p.write("\n")
	}
}

func (p *Printer) VisitLanguageBlock(b *LanguageBlock) {
	p.write("@lang " + b.Language + " {")
	if len(b.Functions) == 0 && len(b.Statements) == 0 {
		p.write("}")
		return
	}
	p.write("\n")
	p.indent++
	for _, fn := range b.Functions {
		p.writeIndent()
		fn.Accept(p)
		p.write("\n")
	}
	for _, stmt := range b.Statements {
		p.writeIndent()
		stmt.Accept(p)
		p.write("\n")
	}
	p.indent--
	p.writeIndent()
	p.write("}")
}

func (p *Printer) VisitFunction(f *Function) {
	if f.IsExported {
		p.write("export ")
	}
	p.write("function " + f.Name + "(")
	for i, param := range f.Parameters {
		if i > 0 {
			p.write(", ")
		}
		param.Accept(p)
	}
	p.write(")")
	if f.ReturnType != nil {
		p.write(" -> " + annotation(f.ReturnType))
	}
	p.write(" ")
	p.stmts(f.Body)
}

func (p *Printer) VisitParameter(param *Parameter) {
	p.write(param.Name)
	if param.Type != nil {
		p.write(": " + annotation(param.Type))
	}
	if param.Default != nil {
		p.write(" = ")
		p.expr(param.Default, precAssign+1)
	}
}

func (p *Printer) VisitStmt(s Stmt) {
	switch n := s.(type) {
	case *ExprStmt:
		p.statementExpr(n.Expr)
		p.write(";")
	case *VarDecl:
		if n.IsConst {
			p.write("const ")
		} else {
			p.write("let ")
		}
		p.write(n.Name)
		if n.Type != nil {
			p.write(": " + annotation(n.Type))
		}
		if n.Value != nil {
			p.write(" = ")
			p.expr(n.Value, precAssign+1)
		}
		p.write(";")
	case *AssignStmt:
		p.statementExpr(n.Target)
		p.write(" = ")
		p.expr(n.Value, precAssign+1)
		p.write(";")
	case *IfStmt:
		p.write("if (")
		p.expr(n.Cond, precAssign+1)
		p.write(") ")
		p.block(n.Then)
		if n.Else != nil {
			p.write(" else ")
			p.block(n.Else)
		}
	case *WhileStmt:
		p.write("while (")
		p.expr(n.Cond, precAssign+1)
		p.write(") ")
		p.block(n.Body)
	case *ForStmt:
		p.write("for (")
		p.forInit(n.Init)
		p.write(";")
		if n.Cond != nil {
			p.write(" ")
			p.expr(n.Cond, precAssign+1)
		}
		p.write(";")
		if n.Update != nil {
			p.write(" ")
			if assign, ok := n.Update.(*AssignExpr); ok {
				p.assign(assign)
			} else {
				p.expr(n.Update, precAssign+1)
			}
		}
		p.write(") ")
		p.block(n.Body)
	case *ReturnStmt:
		p.write("return")
		if n.Value != nil {
			p.write(" ")
			p.expr(n.Value, precAssign+1)
		}
		p.write(";")
	case *ImportStmt:
		p.write("import " + n.Module + ";")
	case *ExportStmt:
		p.write("export " + n.Name + ";")
	case *BlockStmt:
		p.block(n)
	case *FunctionDecl:
		n.Function.Accept(p)
	default:
		p.write(DumpString(s))
	}
}

// forInit prints the init clause without its own terminator; the loop
// header supplies the separators.
func (p *Printer) forInit(init Stmt) {
	switch n := init.(type) {
	case nil:
	case *VarDecl, *AssignStmt, *ExprStmt:
		p.VisitStmt(n)
		p.trimSemicolon()
	default:
		p.VisitStmt(n)
	}
}

func (p *Printer) trimSemicolon() {
	s := p.sb.String()
	if strings.HasSuffix(s, ";") {
		p.sb.Reset()
		p.sb.WriteString(s[:len(s)-1])
	}
}

func (p *Printer) block(b *BlockStmt) {
	if b == nil {
		p.write("{}")
		return
	}
	p.stmts(b.Stmts)
}

func (p *Printer) stmts(stmts []Stmt) {
	if len(stmts) == 0 {
		p.write("{}")
		return
	}
	p.write("{\n")
	p.indent++
	for _, s := range stmts {
		p.writeIndent()
		s.Accept(p)
		p.write("\n")
	}
	p.indent--
	p.writeIndent()
	p.write("}")
}

// statementExpr guards expressions whose first token would otherwise start
// a block.
func (p *Printer) statementExpr(e Expr) {
	if startsWithObject(e) {
		p.write("(")
		p.expr(e, 0)
		p.write(")")
		return
	}
	p.expr(e, precAssign+1)
}

func (p *Printer) VisitExpr(e Expr) {
	p.expr(e, 0)
}

const (
	precAssign  = 0
	precUnary   = 7
	precPostfix = 8
	precPrimary = 9
)

func precedence(e Expr) int {
	switch n := e.(type) {
	case *AssignExpr:
		return precAssign
	case *BinaryExpr:
		return n.Op.Precedence()
	case *UnaryExpr:
		return precUnary
	case *PostfixExpr, *CallExpr, *MemberExpr, *IndexExpr:
		return precPostfix
	}
	return precPrimary
}

func (p *Printer) expr(e Expr, minPrec int) {
	if precedence(e) < minPrec {
		p.write("(")
		p.expr(e, 0)
		p.write(")")
		return
	}

	switch n := e.(type) {
	case *LiteralExpr:
		p.write(literalText(n))
	case *IdentExpr:
		p.write(n.Name)
	case *BinaryExpr:
		prec := n.Op.Precedence()
		p.expr(n.Left, prec)
		p.write(" " + n.Op.String() + " ")
		p.expr(n.Right, prec+1)
	case *UnaryExpr:
		p.write(n.Op.String())
		if inner, ok := n.Operand.(*UnaryExpr); ok && n.Op != Not && inner.Op != Not {
			p.write("(")
			p.expr(inner, 0)
			p.write(")")
			return
		}
		p.expr(n.Operand, precUnary)
	case *PostfixExpr:
		p.chainTarget(n.Operand)
		p.write(n.Op.String())
	case *AssignExpr:
		p.assign(n)
	case *CallExpr:
		p.chainTarget(n.Callee)
		p.args(n.Args)
	case *CrossCallExpr:
		p.write(n.Language + "::" + n.Function)
		p.args(n.Args)
	case *MemberExpr:
		// a number swallows the '.' that follows it
		if lit, ok := n.Object.(*LiteralExpr); ok && lit.Kind == NumberLiteral {
			p.write("(")
			p.expr(lit, 0)
			p.write(")")
		} else {
			p.chainTarget(n.Object)
		}
		p.write("." + n.Member)
	case *IndexExpr:
		p.chainTarget(n.Object)
		p.write("[")
		p.expr(n.Index, precAssign+1)
		p.write("]")
	case *ArrayExpr:
		p.write("[")
		for i, el := range n.Elements {
			if i > 0 {
				p.write(", ")
			}
			p.expr(el, precAssign+1)
		}
		p.write("]")
	case *ObjectExpr:
		if len(n.Fields) == 0 {
			p.write("{}")
			return
		}
		p.write("{ ")
		for i, k := range n.Keys() {
			if i > 0 {
				p.write(", ")
			}
			p.write(k + ": ")
			p.expr(n.Fields[k], precAssign+1)
		}
		p.write(" }")
	default:
		p.write(DumpString(e))
	}
}

func (p *Printer) assign(n *AssignExpr) {
	p.expr(n.Target, precAssign+1)
	p.write(" = ")
	p.expr(n.Value, precAssign+1)
}

// chainTarget prints the left side of a call, member, index or postfix.
// Cross-calls cannot be chained without parentheses.
func (p *Printer) chainTarget(e Expr) {
	if _, ok := e.(*CrossCallExpr); ok {
		p.write("(")
		p.expr(e, 0)
		p.write(")")
		return
	}
	p.expr(e, precPostfix)
}

func (p *Printer) args(args []Expr) {
	p.write("(")
	for i, a := range args {
		if i > 0 {
			p.write(", ")
		}
		p.expr(a, precAssign+1)
	}
	p.write(")")
}

func literalText(l *LiteralExpr) string {
	switch l.Kind {
	case NumberLiteral:
		if l.Raw != "" {
			return l.Raw
		}
		return strconv.FormatFloat(l.Number, 'g', -1, 64)
	case StringLiteral:
		return quote(l.Text)
	case BoolLiteral:
		if l.Bool {
			return "true"
		}
		return "false"
	}
	return "null"
}

func quote(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		case '\r':
			sb.WriteString(`\r`)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

// annotation prints a type the way it is written in source. Host-language
// placeholders print as their bare name.
func annotation(t types.Type) string {
	if ls, ok := t.(types.LanguageSpecific); ok && ls.IsPlaceholder() && len(ls.Args) == 0 {
		return ls.Name
	}
	return t.String()
}

func startsWithObject(e Expr) bool {
	for e != nil {
		switch n := e.(type) {
		case *ObjectExpr:
			return true
		case *BinaryExpr:
			e = n.Left
		case *PostfixExpr:
			e = n.Operand
		case *CallExpr:
			e = n.Callee
		case *MemberExpr:
			e = n.Object
		case *IndexExpr:
			e = n.Object
		case *AssignExpr:
			e = n.Target
		default:
			return false
		}
	}
	return false
}
