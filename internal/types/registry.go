package types

import "sort"

// Adapter translates between one guest language's native type spellings and
// canonical types.
type Adapter interface {
	Language() string
	NativeToCanonical(native string) (Type, bool)
	CanonicalToNative(t Type) (string, bool)
	CanConvert(from, to Type) bool
}

// Registry maps language names to adapters. Build it once, then share it
// read-only; Register is not safe for concurrent use.
type Registry struct {
	adapters map[string]Adapter
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{adapters: make(map[string]Adapter)}
}

// NewDefaultRegistry creates a registry holding the built-in adapters.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	for _, spec := range builtinAdapters {
		r.Register(NewTableAdapter(r, spec))
	}
	return r
}

// Register adds or replaces the adapter for its language.
func (r *Registry) Register(a Adapter) {
	r.adapters[a.Language()] = a
}

// Adapter looks up the adapter for a language.
func (r *Registry) Adapter(language string) (Adapter, bool) {
	if r == nil {
		return nil, false
	}
	a, ok := r.adapters[language]
	return a, ok
}

// Has reports whether a language has an adapter.
func (r *Registry) Has(language string) bool {
	_, ok := r.Adapter(language)
	return ok
}

// Languages returns the registered language names in sorted order.
func (r *Registry) Languages() []string {
	if r == nil {
		return nil
	}
	names := make([]string, 0, len(r.adapters))
	for name := range r.adapters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CanConvert asks the language's adapter whether from converts to to. Without
// an adapter the registry relation is used directly.
func (r *Registry) CanConvert(language string, from, to Type) bool {
	if a, ok := r.Adapter(language); ok {
		return a.CanConvert(from, to)
	}
	return r.Compatible(from, to)
}

// Resolve rewrites host-language placeholders inside t using the adapter of
// language. Names the adapter does not know become LanguageSpecific types of
// that language. Without an adapter t is returned unchanged.
func (r *Registry) Resolve(t Type, language string) Type {
	adapter, ok := r.Adapter(language)
	if !ok || t == nil {
		return t
	}
	return resolveWith(adapter, t)
}

func resolveWith(a Adapter, t Type) Type {
	switch tt := t.(type) {
	case LanguageSpecific:
		if !tt.IsPlaceholder() {
			return tt
		}
		if canonical, ok := a.NativeToCanonical(tt.Name); ok {
			return canonical
		}
		return LanguageSpecific{Language: a.Language(), Name: tt.Name, Args: resolveAll(a, tt.Args)}
	case Array:
		return Array{Elem: resolveWith(a, tt.Elem)}
	case Optional:
		return Optional{Inner: resolveWith(a, tt.Inner)}
	case Union:
		return Union{Members: resolveAll(a, tt.Members)}
	case Function:
		ret := tt.Return
		if ret != nil {
			ret = resolveWith(a, ret)
		}
		return Function{Params: resolveAll(a, tt.Params), Return: ret}
	case Object:
		fields := make(map[string]Type, len(tt.Fields))
		for name, ft := range tt.Fields {
			fields[name] = resolveWith(a, ft)
		}
		return Object{Fields: fields}
	}
	return t
}

func resolveAll(a Adapter, ts []Type) []Type {
	if ts == nil {
		return nil
	}
	out := make([]Type, len(ts))
	for i, t := range ts {
		out[i] = resolveWith(a, t)
	}
	return out
}
