package ast

import (
	"encoding/json"
	"fmt"

	"utopia/internal/types"
)

// Dump converts a node into a tree of maps and slices suitable for JSON or
// YAML encoding. Every map carries "node" and "span" keys.
func Dump(node Node) map[string]any {
	if node == nil {
		return nil
	}
	out := map[string]any{
		"node": node.NodeType().String(),
		"span": dumpSpan(node.NodeSpan()),
	}

	switch n := node.(type) {
	case *Program:
		out["language_blocks"] = dumpList(n.LanguageBlocks)
		out["statements"] = dumpStmts(n.Statements)
		out["languages"] = n.Metadata.Languages
	case *LanguageBlock:
		out["language"] = n.Language
		out["functions"] = dumpList(n.Functions)
		out["statements"] = dumpStmts(n.Statements)
	case *Function:
		out["name"] = n.Name
		out["language"] = n.Language
		out["exported"] = n.IsExported
		out["parameters"] = dumpList(n.Parameters)
		out["return_type"] = dumpType(n.ReturnType)
		out["body"] = dumpStmts(n.Body)
	case *Parameter:
		out["name"] = n.Name
		out["type"] = dumpType(n.Type)
		out["default"] = dumpExpr(n.Default)

	case *ExprStmt:
		out["expr"] = dumpExpr(n.Expr)
	case *VarDecl:
		out["name"] = n.Name
		out["const"] = n.IsConst
		out["type"] = dumpType(n.Type)
		out["value"] = dumpExpr(n.Value)
	case *AssignStmt:
		out["target"] = dumpExpr(n.Target)
		out["value"] = dumpExpr(n.Value)
	case *IfStmt:
		out["cond"] = dumpExpr(n.Cond)
		out["then"] = dumpBlock(n.Then)
		out["else"] = dumpBlock(n.Else)
	case *WhileStmt:
		out["cond"] = dumpExpr(n.Cond)
		out["body"] = dumpBlock(n.Body)
	case *ForStmt:
		if n.Init != nil {
			out["init"] = Dump(n.Init)
		} else {
			out["init"] = nil
		}
		out["cond"] = dumpExpr(n.Cond)
		out["update"] = dumpExpr(n.Update)
		out["body"] = dumpBlock(n.Body)
	case *ReturnStmt:
		out["value"] = dumpExpr(n.Value)
	case *ImportStmt:
		out["module"] = n.Module
		out["items"] = n.Items
	case *ExportStmt:
		out["name"] = n.Name
	case *BlockStmt:
		out["statements"] = dumpStmts(n.Stmts)
	case *FunctionDecl:
		out["function"] = Dump(n.Function)

	case *LiteralExpr:
		out["kind"] = n.Kind.String()
		switch n.Kind {
		case NumberLiteral:
			out["value"] = n.Number
			out["raw"] = n.Raw
		case StringLiteral:
			out["value"] = n.Text
		case BoolLiteral:
			out["value"] = n.Bool
		default:
			out["value"] = nil
		}
	case *IdentExpr:
		out["name"] = n.Name
	case *BinaryExpr:
		out["op"] = n.Op.String()
		out["left"] = dumpExpr(n.Left)
		out["right"] = dumpExpr(n.Right)
	case *UnaryExpr:
		out["op"] = n.Op.String()
		out["operand"] = dumpExpr(n.Operand)
	case *PostfixExpr:
		out["op"] = n.Op.String()
		out["operand"] = dumpExpr(n.Operand)
	case *AssignExpr:
		out["target"] = dumpExpr(n.Target)
		out["value"] = dumpExpr(n.Value)
	case *CallExpr:
		out["callee"] = dumpExpr(n.Callee)
		out["args"] = dumpExprs(n.Args)
	case *CrossCallExpr:
		out["language"] = n.Language
		out["function"] = n.Function
		out["args"] = dumpExprs(n.Args)
	case *MemberExpr:
		out["object"] = dumpExpr(n.Object)
		out["member"] = n.Member
	case *IndexExpr:
		out["object"] = dumpExpr(n.Object)
		out["index"] = dumpExpr(n.Index)
	case *ArrayExpr:
		out["elements"] = dumpExprs(n.Elements)
	case *ObjectExpr:
		fields := make(map[string]any, len(n.Fields))
		for k, v := range n.Fields {
			fields[k] = dumpExpr(v)
		}
		out["fields"] = fields
	case *LambdaExpr:
		out["parameters"] = dumpList(n.Params)
		out["body"] = dumpStmts(n.Body)
	}
	return out
}

// DumpString renders the structural dump on one line. The printer falls back
// to it for node kinds that have no surface syntax.
func DumpString(node Node) string {
	data, err := json.Marshal(Dump(node))
	if err != nil {
		return fmt.Sprintf("<%s>", node.NodeType())
	}
	return string(data)
}

// MarshalJSON encodes a node's structural dump as indented JSON.
func MarshalJSON(node Node) ([]byte, error) {
	return json.MarshalIndent(Dump(node), "", "  ")
}

func dumpSpan(s Span) map[string]int {
	return map[string]int{"start": s.Start, "end": s.End, "line": s.Line, "column": s.Column}
}

func dumpType(t types.Type) any {
	if t == nil {
		return nil
	}
	return t.String()
}

func dumpExpr(e Expr) any {
	if e == nil {
		return nil
	}
	return Dump(e)
}

func dumpBlock(b *BlockStmt) any {
	if b == nil {
		return nil
	}
	return Dump(b)
}

func dumpExprs(exprs []Expr) []any {
	out := make([]any, len(exprs))
	for i, e := range exprs {
		out[i] = Dump(e)
	}
	return out
}

func dumpStmts(stmts []Stmt) []any {
	out := make([]any, len(stmts))
	for i, s := range stmts {
		out[i] = Dump(s)
	}
	return out
}

func dumpList[T Node](nodes []T) []any {
	out := make([]any, len(nodes))
	for i, n := range nodes {
		out[i] = Dump(n)
	}
	return out
}
