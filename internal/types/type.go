package types

import (
	"sort"
	"strings"
)

// HostLanguage tags annotation types the parser could not attribute to a
// guest language. The checker resolves them against the enclosing block.
const HostLanguage = "utopia"

// Kind identifies the variant of a Type.
type Kind int

const (
	KindNumber Kind = iota
	KindString
	KindBoolean
	KindNull
	KindVoid
	KindArray
	KindObject
	KindFunction
	KindLanguageSpecific
	KindGeneric
	KindUnion
	KindOptional
	KindUnknown
)

var kindNames = map[Kind]string{
	KindNumber:           "Number",
	KindString:           "String",
	KindBoolean:          "Boolean",
	KindNull:             "Null",
	KindVoid:             "Void",
	KindArray:            "Array",
	KindObject:           "Object",
	KindFunction:         "Function",
	KindLanguageSpecific: "LanguageSpecific",
	KindGeneric:          "Generic",
	KindUnion:            "Union",
	KindOptional:         "Optional",
	KindUnknown:          "Unknown",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Kind(?)"
}

// Type is a canonical type. The set of implementations is closed; consumers
// switch over the concrete types below.
type Type interface {
	Kind() Kind
	String() string
	isType()
}

// Primitive covers number, string, boolean, null and void.
type Primitive struct {
	kind Kind
}

var (
	Number  Type = Primitive{kind: KindNumber}
	String  Type = Primitive{kind: KindString}
	Boolean Type = Primitive{kind: KindBoolean}
	Null    Type = Primitive{kind: KindNull}
	Void    Type = Primitive{kind: KindVoid}
	Unknown Type = UnknownType{}
)

func (p Primitive) Kind() Kind { return p.kind }
func (Primitive) isType()      {}

func (p Primitive) String() string {
	switch p.kind {
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindBoolean:
		return "boolean"
	case KindNull:
		return "null"
	case KindVoid:
		return "void"
	}
	return "unknown"
}

// PrimitiveByName maps the five reserved annotation spellings.
func PrimitiveByName(name string) (Type, bool) {
	switch name {
	case "number":
		return Number, true
	case "string":
		return String, true
	case "boolean":
		return Boolean, true
	case "void":
		return Void, true
	case "null":
		return Null, true
	}
	return nil, false
}

type Array struct {
	Elem Type
}

func (Array) Kind() Kind { return KindArray }
func (Array) isType()    {}

func (a Array) String() string {
	return wrap(a.Elem, KindUnion, KindFunction, KindOptional) + "[]"
}

// Object is a structural record type. Field order is not significant.
type Object struct {
	Fields map[string]Type
}

func (Object) Kind() Kind { return KindObject }
func (Object) isType()    {}

func (o Object) String() string {
	if len(o.Fields) == 0 {
		return "{}"
	}
	var sb strings.Builder
	sb.WriteString("{ ")
	for i, name := range o.FieldNames() {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(name)
		sb.WriteString(": ")
		sb.WriteString(o.Fields[name].String())
	}
	sb.WriteString(" }")
	return sb.String()
}

// FieldNames returns the field names in sorted order.
func (o Object) FieldNames() []string {
	names := make([]string, 0, len(o.Fields))
	for name := range o.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type Function struct {
	Params []Type
	Return Type
}

func (Function) Kind() Kind { return KindFunction }
func (Function) isType()    {}

func (f Function) String() string {
	var sb strings.Builder
	sb.WriteString("(")
	for i, p := range f.Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.String())
	}
	sb.WriteString(") -> ")
	ret := f.Return
	if ret == nil {
		ret = Void
	}
	sb.WriteString(ret.String())
	return sb.String()
}

// LanguageSpecific is an opaque type owned by a guest language, such as
// python's dict or Java's HashMap.
type LanguageSpecific struct {
	Language string
	Name     string
	Args     []Type
}

func (LanguageSpecific) Kind() Kind { return KindLanguageSpecific }
func (LanguageSpecific) isType()    {}

func (l LanguageSpecific) String() string {
	var sb strings.Builder
	sb.WriteString(l.Language)
	sb.WriteString("::")
	sb.WriteString(l.Name)
	if len(l.Args) > 0 {
		sb.WriteString("<")
		for i, arg := range l.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(arg.String())
		}
		sb.WriteString(">")
	}
	return sb.String()
}

// IsPlaceholder reports whether the type still carries the host language tag.
func (l LanguageSpecific) IsPlaceholder() bool {
	return l.Language == HostLanguage
}

type Generic struct {
	Name string
}

func (Generic) Kind() Kind       { return KindGeneric }
func (Generic) isType()          {}
func (g Generic) String() string { return g.Name }

type Union struct {
	Members []Type
}

func (Union) Kind() Kind { return KindUnion }
func (Union) isType()    {}

func (u Union) String() string {
	if len(u.Members) == 0 {
		return "never"
	}
	parts := make([]string, len(u.Members))
	for i, m := range u.Members {
		parts[i] = wrap(m, KindUnion, KindFunction)
	}
	return strings.Join(parts, " | ")
}

type Optional struct {
	Inner Type
}

func (Optional) Kind() Kind { return KindOptional }
func (Optional) isType()    {}

func (o Optional) String() string {
	return wrap(o.Inner, KindUnion, KindFunction) + "?"
}

// UnknownType is the inference placeholder; it is compatible with every type.
type UnknownType struct{}

func (UnknownType) Kind() Kind     { return KindUnknown }
func (UnknownType) isType()        {}
func (UnknownType) String() string { return "unknown" }

// wrap parenthesises t when its kind would bind looser than the surrounding
// suffix or separator.
func wrap(t Type, kinds ...Kind) string {
	if t == nil {
		return "unknown"
	}
	for _, k := range kinds {
		if t.Kind() == k {
			return "(" + t.String() + ")"
		}
	}
	return t.String()
}

// Equal compares two types structurally.
func Equal(a, b Type) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch at := a.(type) {
	case Primitive, UnknownType:
		return true
	case Array:
		return Equal(at.Elem, b.(Array).Elem)
	case Object:
		bt := b.(Object)
		if len(at.Fields) != len(bt.Fields) {
			return false
		}
		for name, ft := range at.Fields {
			other, ok := bt.Fields[name]
			if !ok || !Equal(ft, other) {
				return false
			}
		}
		return true
	case Function:
		bt := b.(Function)
		return equalAll(at.Params, bt.Params) && Equal(returnOf(at), returnOf(bt))
	case LanguageSpecific:
		bt := b.(LanguageSpecific)
		return at.Language == bt.Language && at.Name == bt.Name && equalAll(at.Args, bt.Args)
	case Generic:
		return at.Name == b.(Generic).Name
	case Union:
		return equalAll(at.Members, b.(Union).Members)
	case Optional:
		return Equal(at.Inner, b.(Optional).Inner)
	}
	return false
}

func equalAll(a, b []Type) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

func returnOf(f Function) Type {
	if f.Return == nil {
		return Void
	}
	return f.Return
}

// SizeHint is a rough in-memory size in bytes, used for display only.
func SizeHint(t Type) int {
	switch tt := t.(type) {
	case Primitive:
		switch tt.kind {
		case KindNumber:
			return 8
		case KindString:
			return 24
		case KindBoolean:
			return 1
		}
		return 0
	case Array, Object:
		return 24
	case Function, LanguageSpecific, Generic:
		return 8
	case Optional:
		return SizeHint(tt.Inner) + 1
	case Union:
		largest := 0
		for _, m := range tt.Members {
			if s := SizeHint(m); s > largest {
				largest = s
			}
		}
		return largest + 8
	}
	return 0
}
