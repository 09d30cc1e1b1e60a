package types

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistryLanguages(t *testing.T) {
	reg := NewDefaultRegistry()
	assert.Equal(t,
		[]string{"c", "cpp", "go", "java", "javascript", "python", "rust", "typescript"},
		reg.Languages())
}

func TestAdapterRoundTripIsCanonicalStable(t *testing.T) {
	reg := NewDefaultRegistry()

	for _, language := range reg.Languages() {
		adapter, ok := reg.Adapter(language)
		require.True(t, ok)

		spec, ok := BuiltinAdapterSpec(language)
		require.True(t, ok)

		names := make([]string, 0, len(spec.Natives))
		for name := range spec.Natives {
			names = append(names, name)
		}
		for _, rule := range spec.Prefixes {
			names = append(names, rule.Prefix+"<int>")
		}
		sort.Strings(names)

		for _, native := range names {
			canonical, ok := adapter.NativeToCanonical(native)
			require.True(t, ok, "%s: %s", language, native)

			back, ok := adapter.CanonicalToNative(canonical)
			require.True(t, ok, "%s: %s -> %s", language, native, canonical)

			again, ok := adapter.NativeToCanonical(back)
			require.True(t, ok, "%s: %s -> %s -> %s", language, native, canonical, back)
			assert.True(t, Equal(canonical, again), "%s: %s maps to %s but %s maps to %s",
				language, native, canonical, back, again)
		}
	}
}

func TestAdapterMappings(t *testing.T) {
	reg := NewDefaultRegistry()

	tests := []struct {
		language string
		native   string
		want     Type
	}{
		{"python", "int", Number},
		{"python", "str", String},
		{"python", "None", Null},
		{"python", "list", Array{Elem: Unknown}},
		{"javascript", "undefined", Null},
		{"java", "HashMap", Object{Fields: map[string]Type{}}},
		{"java", "List<String>", Array{Elem: Unknown}},
		{"c", "char*", String},
		{"cpp", "std::vector<double>", Array{Elem: Unknown}},
		{"cpp", "nullptr", Null},
		{"go", "map[string]int", Object{Fields: map[string]Type{}}},
		{"rust", "Vec<u8>", Array{Elem: Unknown}},
		{"typescript", "any", Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.language+"/"+tt.native, func(t *testing.T) {
			adapter, ok := reg.Adapter(tt.language)
			require.True(t, ok)
			got, ok := adapter.NativeToCanonical(tt.native)
			require.True(t, ok)
			assert.True(t, Equal(tt.want, got), "got %s", got)
		})
	}
}

func TestCanonicalToNative(t *testing.T) {
	reg := NewDefaultRegistry()
	py, _ := reg.Adapter("python")

	name, ok := py.CanonicalToNative(Number)
	assert.True(t, ok)
	assert.Equal(t, "float", name)

	name, ok = py.CanonicalToNative(LanguageSpecific{Language: "python", Name: "bytes"})
	assert.True(t, ok)
	assert.Equal(t, "bytes", name)

	_, ok = py.CanonicalToNative(LanguageSpecific{Language: "java", Name: "Thread"})
	assert.False(t, ok)

	_, ok = py.CanonicalToNative(Function{})
	assert.False(t, ok)
}

func TestCanConvertDelegatesToRegistry(t *testing.T) {
	reg := NewDefaultRegistry()
	java, _ := reg.Adapter("java")

	assert.True(t, java.CanConvert(Number, LanguageSpecific{Language: "java", Name: "int"}))
	assert.False(t, java.CanConvert(String, LanguageSpecific{Language: "java", Name: "int"}))
	assert.True(t, reg.CanConvert("ruby", Null, Optional{Inner: Number}))
}

func TestResolvePlaceholders(t *testing.T) {
	reg := NewDefaultRegistry()

	placeholder := LanguageSpecific{Language: HostLanguage, Name: "int"}
	assert.Equal(t, Number, reg.Resolve(placeholder, "python"))

	unknownName := LanguageSpecific{Language: HostLanguage, Name: "Decimal"}
	assert.Equal(t, LanguageSpecific{Language: "python", Name: "Decimal"}, reg.Resolve(unknownName, "python"))

	nested := Array{Elem: Optional{Inner: LanguageSpecific{Language: HostLanguage, Name: "str"}}}
	assert.True(t, Equal(Array{Elem: Optional{Inner: String}}, reg.Resolve(nested, "python")))

	assert.Equal(t, placeholder, reg.Resolve(placeholder, "ruby"))
	assert.Equal(t, Number, reg.Resolve(Number, "python"))
}

func TestSpecCloneIsIndependent(t *testing.T) {
	spec, ok := BuiltinAdapterSpec("python")
	require.True(t, ok)
	spec.Natives["ndarray"] = Array{Elem: Number}

	again, _ := BuiltinAdapterSpec("python")
	_, present := again.Natives["ndarray"]
	assert.False(t, present)
}
