package types

// Category tokens shared by every adapter. Two types from different
// languages that land in the same category are considered compatible.
const (
	CategoryNumber  = "number"
	CategoryString  = "string"
	CategoryBoolean = "boolean"
	CategoryArray   = "array"
	CategoryObject  = "object"
)

// Compatible applies the structural relation without any language adapters:
// LanguageSpecific types then only match by exact language and name.
func Compatible(a, b Type) bool {
	var r *Registry
	return r.Compatible(a, b)
}

// Compatible reports whether a value of type a may be used where b is
// expected. A nil registry is valid and disables the category fallback.
func (r *Registry) Compatible(a, b Type) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if Equal(a, b) {
		return true
	}
	if a.Kind() == KindUnknown || b.Kind() == KindUnknown {
		return true
	}

	if a.Kind() == KindNull && b.Kind() == KindOptional {
		return true
	}
	if b.Kind() == KindNull && a.Kind() == KindOptional {
		return true
	}

	if opt, ok := a.(Optional); ok {
		return r.Compatible(opt.Inner, b)
	}
	if opt, ok := b.(Optional); ok {
		return r.Compatible(a, opt.Inner)
	}

	if u, ok := a.(Union); ok {
		for _, m := range u.Members {
			if r.Compatible(m, b) {
				return true
			}
		}
		return false
	}
	if u, ok := b.(Union); ok {
		for _, m := range u.Members {
			if r.Compatible(a, m) {
				return true
			}
		}
		return false
	}

	switch at := a.(type) {
	case Array:
		if bt, ok := b.(Array); ok {
			return r.Compatible(at.Elem, bt.Elem)
		}
	case Function:
		if bt, ok := b.(Function); ok {
			if len(at.Params) != len(bt.Params) {
				return false
			}
			for i := range at.Params {
				if !r.Compatible(at.Params[i], bt.Params[i]) {
					return false
				}
			}
			return r.Compatible(returnOf(at), returnOf(bt))
		}
	case Object:
		if bt, ok := b.(Object); ok {
			for name, want := range bt.Fields {
				have, ok := at.Fields[name]
				if !ok || !r.Compatible(have, want) {
					return false
				}
			}
			return true
		}
	case LanguageSpecific:
		if bt, ok := b.(LanguageSpecific); ok && at.Language == bt.Language {
			return at.Name == bt.Name
		}
	}

	return r.sameCategory(a, b)
}

// sameCategory is the cross-language fallback. It only applies when at least
// one side is language specific; canonical pairs were decided above.
func (r *Registry) sameCategory(a, b Type) bool {
	if a.Kind() != KindLanguageSpecific && b.Kind() != KindLanguageSpecific {
		return false
	}
	ca, cb := r.Category(a), r.Category(b)
	return ca != "" && ca == cb
}

// Category maps a type to its universal category token, or "" when it has
// none. LanguageSpecific types are resolved through their adapter.
func (r *Registry) Category(t Type) string {
	switch tt := t.(type) {
	case Primitive:
		switch tt.kind {
		case KindNumber:
			return CategoryNumber
		case KindString:
			return CategoryString
		case KindBoolean:
			return CategoryBoolean
		}
	case Array:
		return CategoryArray
	case Object:
		return CategoryObject
	case LanguageSpecific:
		adapter, ok := r.Adapter(tt.Language)
		if !ok {
			return ""
		}
		canonical, ok := adapter.NativeToCanonical(tt.Name)
		if !ok || canonical.Kind() == KindLanguageSpecific {
			return ""
		}
		return r.Category(canonical)
	}
	return ""
}
