package semantic

import (
	"utopia/internal/ast"
	"utopia/internal/types"
)

// InferType computes the static type of an expression from its shape alone.
// Identifiers, calls and cross-calls are Unknown. The result is advisory.
func InferType(e ast.Expr) types.Type {
	return (&Inferrer{}).Infer(e)
}

// Inferrer infers expression types. Env and Lookup are optional; when set
// they give identifiers and cross-calls a type instead of Unknown.
type Inferrer struct {
	Env    *types.Environment
	Lookup func(language, name string) (types.Function, bool)
}

func (in *Inferrer) Infer(e ast.Expr) types.Type {
	switch n := e.(type) {
	case nil:
		return types.Unknown
	case *ast.LiteralExpr:
		return literalType(n.Kind)
	case *ast.BinaryExpr:
		return in.inferBinary(n)
	case *ast.UnaryExpr:
		if n.Op == ast.Not {
			return types.Boolean
		}
		return numericOrUnknown(in.Infer(n.Operand))
	case *ast.PostfixExpr:
		return numericOrUnknown(in.Infer(n.Operand))
	case *ast.AssignExpr:
		return in.Infer(n.Value)
	case *ast.IdentExpr:
		if in.Env != nil {
			if t, ok := in.Env.Lookup(n.Name); ok && t != nil {
				return t
			}
		}
		return types.Unknown
	case *ast.CrossCallExpr:
		if in.Lookup != nil {
			if fn, ok := in.Lookup(n.Language, n.Function); ok && fn.Return != nil {
				return fn.Return
			}
		}
		return types.Unknown
	case *ast.ArrayExpr:
		return types.Array{Elem: in.commonType(n.Elements)}
	case *ast.ObjectExpr:
		fields := make(map[string]types.Type, len(n.Fields))
		for name, value := range n.Fields {
			fields[name] = in.Infer(value)
		}
		return types.Object{Fields: fields}
	case *ast.LambdaExpr:
		params := make([]types.Type, len(n.Params))
		for i, p := range n.Params {
			params[i] = p.TypeOrUnknown()
		}
		return types.Function{Params: params, Return: types.Unknown}
	}
	// calls, member access and indexing
	return types.Unknown
}

func (in *Inferrer) inferBinary(n *ast.BinaryExpr) types.Type {
	switch {
	case n.Op.IsComparison(), n.Op.IsLogical():
		return types.Boolean
	case n.Op.IsArithmetic():
		left, right := in.Infer(n.Left), in.Infer(n.Right)
		if left.Kind() == types.KindNumber && right.Kind() == types.KindNumber {
			return types.Number
		}
	}
	return types.Unknown
}

// commonType is the element type shared by every expression, or Unknown
// when they disagree or there are none.
func (in *Inferrer) commonType(elems []ast.Expr) types.Type {
	if len(elems) == 0 {
		return types.Unknown
	}
	first := in.Infer(elems[0])
	for _, e := range elems[1:] {
		if !types.Equal(first, in.Infer(e)) {
			return types.Unknown
		}
	}
	return first
}

func literalType(kind ast.LiteralKind) types.Type {
	switch kind {
	case ast.NumberLiteral:
		return types.Number
	case ast.StringLiteral:
		return types.String
	case ast.BoolLiteral:
		return types.Boolean
	case ast.NullLiteral:
		return types.Null
	}
	return types.Unknown
}

func numericOrUnknown(t types.Type) types.Type {
	if t.Kind() == types.KindNumber {
		return types.Number
	}
	return types.Unknown
}

// MetadataLookup resolves cross-call targets against the functions recorded
// in meta, mapping their annotations the way the checker does. A nil
// registry leaves annotations as written.
func MetadataLookup(meta ast.Metadata, registry *types.Registry) func(language, name string) (types.Function, bool) {
	return func(language, name string) (types.Function, bool) {
		fi, ok := meta.LookupFunction(language, name)
		if !ok {
			return types.Function{}, false
		}
		params := make([]types.Type, len(fi.Parameters))
		for i, p := range fi.Parameters {
			params[i] = p.TypeOrUnknown()
		}
		ret := fi.ReturnType
		if ret == nil {
			ret = types.Unknown
		}
		fn := types.Function{Params: params, Return: ret}
		if registry != nil {
			fn = registry.Resolve(fn, language).(types.Function)
		}
		return erasePlaceholders(fn).(types.Function), true
	}
}
