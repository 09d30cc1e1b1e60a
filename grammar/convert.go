package grammar

import (
	"strings"

	"github.com/alecthomas/participle/v2"

	"utopia/internal/types"
)

// Type converts the syntax tree to a canonical type.
func (e *TypeExpr) Type() (types.Type, error) {
	if len(e.Members) == 1 {
		return e.Members[0].Type()
	}
	members := make([]types.Type, len(e.Members))
	for i, m := range e.Members {
		t, err := m.Type()
		if err != nil {
			return nil, err
		}
		members[i] = t
	}
	return types.Union{Members: members}, nil
}

func (p *PostfixType) Type() (types.Type, error) {
	t, err := p.Atom.Type()
	if err != nil {
		return nil, err
	}
	for _, s := range p.Suffixes {
		switch s {
		case "[]":
			t = types.Array{Elem: t}
		case "?":
			t = types.Optional{Inner: t}
		}
	}
	return t, nil
}

func (a *AtomType) Type() (types.Type, error) {
	switch {
	case a.Group != nil:
		return a.Group.Type()
	case a.Object != nil:
		return a.Object.Type()
	default:
		return a.Named.Type()
	}
}

func (g *GroupType) Type() (types.Type, error) {
	elems, err := typesOf(g.Elems)
	if err != nil {
		return nil, err
	}
	if g.Arrow {
		ret, err := g.Return.Type()
		if err != nil {
			return nil, err
		}
		return types.Function{Params: elems, Return: ret}, nil
	}
	if len(elems) != 1 {
		return nil, participle.Errorf(g.Pos, "a parenthesised list of %d types must be followed by '->'", len(elems))
	}
	return elems[0], nil
}

func (o *ObjectType) Type() (types.Type, error) {
	fields := make(map[string]types.Type, len(o.Fields))
	for _, f := range o.Fields {
		if _, dup := fields[f.Name]; dup {
			return nil, participle.Errorf(f.Pos, "duplicate field %q", f.Name)
		}
		t, err := f.Type.Type()
		if err != nil {
			return nil, err
		}
		fields[f.Name] = t
	}
	return types.Object{Fields: fields}, nil
}

// Type resolves a name. One segment is a primitive, `unknown` or a generic
// parameter; two or more are `language::Name`, where Name may itself
// contain '::' (cpp::std::string).
func (n *NamedType) Type() (types.Type, error) {
	args, err := typesOf(n.Args)
	if err != nil {
		return nil, err
	}

	if len(n.Path) == 1 {
		name := n.Path[0]
		if len(args) > 0 {
			return nil, participle.Errorf(n.Pos, "%s takes no type arguments; qualify it as language::%s", name, name)
		}
		if t, ok := types.PrimitiveByName(name); ok {
			return t, nil
		}
		if name == "unknown" {
			return types.Unknown, nil
		}
		return types.Generic{Name: name}, nil
	}

	return types.LanguageSpecific{
		Language: n.Path[0],
		Name:     strings.Join(n.Path[1:], "::"),
		Args:     args,
	}, nil
}

func typesOf(exprs []*TypeExpr) ([]types.Type, error) {
	if len(exprs) == 0 {
		return nil, nil
	}
	out := make([]types.Type, len(exprs))
	for i, e := range exprs {
		t, err := e.Type()
		if err != nil {
			return nil, err
		}
		out[i] = t
	}
	return out, nil
}
