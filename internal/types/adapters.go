package types

import (
	"sort"
	"strings"
)

// AdapterSpec describes a table-driven adapter: exact native names, prefix
// rules for parameterised spellings such as std::vector<int>, and the
// preferred native name for each canonical kind.
type AdapterSpec struct {
	Language string
	Natives  map[string]Type
	Prefixes []PrefixRule
	Reverse  map[Kind]string
}

// PrefixRule maps every native name starting with Prefix to Type.
type PrefixRule struct {
	Prefix string
	Type   Type
}

// Clone returns a deep copy of the maps so callers can extend the spec.
func (s AdapterSpec) Clone() AdapterSpec {
	out := AdapterSpec{
		Language: s.Language,
		Natives:  make(map[string]Type, len(s.Natives)),
		Prefixes: append([]PrefixRule(nil), s.Prefixes...),
		Reverse:  make(map[Kind]string, len(s.Reverse)),
	}
	for k, v := range s.Natives {
		out.Natives[k] = v
	}
	for k, v := range s.Reverse {
		out.Reverse[k] = v
	}
	return out
}

// TableAdapter implements Adapter from an AdapterSpec.
type TableAdapter struct {
	spec     AdapterSpec
	registry *Registry
}

// NewTableAdapter builds an adapter whose CanConvert defers to registry.
func NewTableAdapter(registry *Registry, spec AdapterSpec) *TableAdapter {
	return &TableAdapter{spec: spec, registry: registry}
}

func (a *TableAdapter) Language() string { return a.spec.Language }

// Spec returns a copy of the adapter's table.
func (a *TableAdapter) Spec() AdapterSpec { return a.spec.Clone() }

func (a *TableAdapter) NativeToCanonical(native string) (Type, bool) {
	native = strings.TrimSpace(native)
	if t, ok := a.spec.Natives[native]; ok {
		return t, true
	}
	for _, rule := range a.spec.Prefixes {
		if strings.HasPrefix(native, rule.Prefix) {
			return rule.Type, true
		}
	}
	return nil, false
}

func (a *TableAdapter) CanonicalToNative(t Type) (string, bool) {
	if t == nil {
		return "", false
	}
	if ls, ok := t.(LanguageSpecific); ok {
		if ls.Language == a.spec.Language {
			return ls.Name, true
		}
		return "", false
	}
	if name, ok := a.spec.Reverse[t.Kind()]; ok {
		return name, true
	}
	names := make([]string, 0, len(a.spec.Natives))
	for name := range a.spec.Natives {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if Equal(a.spec.Natives[name], t) {
			return name, true
		}
	}
	return "", false
}

func (a *TableAdapter) CanConvert(from, to Type) bool {
	return a.registry.Compatible(from, to)
}

// BuiltinAdapterSpec returns a copy of a built-in adapter table.
func BuiltinAdapterSpec(language string) (AdapterSpec, bool) {
	for _, spec := range builtinAdapters {
		if spec.Language == language {
			return spec.Clone(), true
		}
	}
	return AdapterSpec{}, false
}

func anyArray() Type  { return Array{Elem: Unknown} }
func anyObject() Type { return Object{Fields: map[string]Type{}} }

func numbers(names ...string) map[string]Type {
	m := make(map[string]Type, len(names))
	for _, n := range names {
		m[n] = Number
	}
	return m
}

func with(m map[string]Type, extra map[string]Type) map[string]Type {
	for k, v := range extra {
		m[k] = v
	}
	return m
}

var builtinAdapters = []AdapterSpec{
	{
		Language: "python",
		Natives: with(numbers("int", "float", "complex"), map[string]Type{
			"str":   String,
			"bool":  Boolean,
			"list":  anyArray(),
			"tuple": anyArray(),
			"dict":  anyObject(),
			"None":  Null,
		}),
		Reverse: map[Kind]string{
			KindNumber: "float", KindString: "str", KindBoolean: "bool",
			KindArray: "list", KindObject: "dict", KindNull: "None", KindVoid: "None",
		},
	},
	{
		Language: "javascript",
		Natives: map[string]Type{
			"number":    Number,
			"string":    String,
			"boolean":   Boolean,
			"Array":     anyArray(),
			"Object":    anyObject(),
			"null":      Null,
			"undefined": Null,
		},
		Reverse: map[Kind]string{
			KindNumber: "number", KindString: "string", KindBoolean: "boolean",
			KindArray: "Array", KindObject: "Object", KindNull: "null", KindVoid: "undefined",
		},
	},
	{
		Language: "typescript",
		Natives: map[string]Type{
			"number":    Number,
			"bigint":    Number,
			"string":    String,
			"boolean":   Boolean,
			"Array":     anyArray(),
			"object":    anyObject(),
			"Record":    anyObject(),
			"null":      Null,
			"undefined": Null,
			"void":      Void,
			"any":       Unknown,
			"unknown":   Unknown,
		},
		Prefixes: []PrefixRule{
			{Prefix: "Array<", Type: anyArray()},
			{Prefix: "Record<", Type: anyObject()},
		},
		Reverse: map[Kind]string{
			KindNumber: "number", KindString: "string", KindBoolean: "boolean",
			KindArray: "Array", KindObject: "object", KindNull: "null", KindVoid: "void",
			KindUnknown: "unknown",
		},
	},
	{
		Language: "java",
		Natives: with(numbers("int", "Integer", "long", "Long", "double", "Double", "float", "Float", "short", "byte"), map[string]Type{
			"String":    String,
			"char":      String,
			"boolean":   Boolean,
			"Boolean":   Boolean,
			"List":      anyArray(),
			"ArrayList": anyArray(),
			"Map":       anyObject(),
			"HashMap":   anyObject(),
			"void":      Void,
			"null":      Null,
		}),
		Prefixes: []PrefixRule{
			{Prefix: "List<", Type: anyArray()},
			{Prefix: "ArrayList<", Type: anyArray()},
			{Prefix: "Map<", Type: anyObject()},
			{Prefix: "HashMap<", Type: anyObject()},
		},
		Reverse: map[Kind]string{
			KindNumber: "double", KindString: "String", KindBoolean: "boolean",
			KindArray: "List", KindObject: "Map", KindNull: "null", KindVoid: "void",
		},
	},
	{
		Language: "c",
		Natives: with(numbers("int", "float", "double", "long", "short", "unsigned", "size_t"), map[string]Type{
			"char*":       String,
			"const char*": String,
			"bool":        Boolean,
			"void":        Void,
			"NULL":        Null,
		}),
		Reverse: map[Kind]string{
			KindNumber: "double", KindString: "char*", KindBoolean: "bool",
			KindVoid: "void", KindNull: "NULL",
		},
	},
	{
		Language: "cpp",
		Natives: with(numbers("int", "float", "double", "long", "short", "unsigned", "size_t"), map[string]Type{
			"string":      String,
			"std::string": String,
			"char*":       String,
			"bool":        Boolean,
			"void":        Void,
			"nullptr":     Null,
		}),
		Prefixes: []PrefixRule{
			{Prefix: "std::vector", Type: anyArray()},
			{Prefix: "vector", Type: anyArray()},
			{Prefix: "std::map", Type: anyObject()},
			{Prefix: "std::unordered_map", Type: anyObject()},
			{Prefix: "map", Type: anyObject()},
		},
		Reverse: map[Kind]string{
			KindNumber: "double", KindString: "std::string", KindBoolean: "bool",
			KindArray: "std::vector", KindObject: "std::map", KindVoid: "void", KindNull: "nullptr",
		},
	},
	{
		Language: "go",
		Natives: with(numbers("int", "int8", "int16", "int32", "int64", "uint", "uint8", "uint16", "uint32", "uint64", "float32", "float64", "byte", "rune"), map[string]Type{
			"string": String,
			"bool":   Boolean,
			"nil":    Null,
		}),
		Prefixes: []PrefixRule{
			{Prefix: "[]", Type: anyArray()},
			{Prefix: "map[", Type: anyObject()},
		},
		Reverse: map[Kind]string{
			KindNumber: "float64", KindString: "string", KindBoolean: "bool",
			KindArray: "[]any", KindObject: "map[string]any", KindNull: "nil",
		},
	},
	{
		Language: "rust",
		Natives: with(numbers("i8", "i16", "i32", "i64", "i128", "isize", "u8", "u16", "u32", "u64", "u128", "usize", "f32", "f64"), map[string]Type{
			"String": String,
			"&str":   String,
			"str":    String,
			"char":   String,
			"bool":   Boolean,
			"()":     Void,
		}),
		Prefixes: []PrefixRule{
			{Prefix: "Vec", Type: anyArray()},
			{Prefix: "HashMap", Type: anyObject()},
			{Prefix: "BTreeMap", Type: anyObject()},
		},
		Reverse: map[Kind]string{
			KindNumber: "f64", KindString: "String", KindBoolean: "bool",
			KindArray: "Vec", KindObject: "HashMap", KindVoid: "()",
		},
	},
}
