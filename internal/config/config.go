// Package config loads the project file utopia.yaml.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"utopia/grammar"
	"utopia/internal/types"
)

// Version is the version of the tool, checked against `requires`.
const Version = "0.3.0"

// FileName is the project file Find looks for.
const FileName = "utopia.yaml"

type Config struct {
	// Requires is a semver constraint on Version, such as ">= 0.3.0".
	Requires          string                     `yaml:"requires,omitempty"`
	Target            string                     `yaml:"target"`
	OptimizationLevel int                        `yaml:"optimization_level"`
	Debug             bool                       `yaml:"debug"`
	LogLevel          int                        `yaml:"log_level"`
	Languages         map[string]*LanguageConfig `yaml:"languages,omitempty"`

	// Path is the file the configuration was read from, empty for Default.
	Path string `yaml:"-"`
}

type LanguageConfig struct {
	Enabled *bool             `yaml:"enabled,omitempty"`
	Options map[string]string `yaml:"options,omitempty"`
	// Types maps native type names to canonical type expressions.
	Types map[string]string `yaml:"types,omitempty"`
}

// IsEnabled reports whether the language is enabled. Languages are enabled
// unless switched off explicitly.
func (l *LanguageConfig) IsEnabled() bool {
	return l == nil || l.Enabled == nil || *l.Enabled
}

// Error is a problem with one field of a configuration file.
type Error struct {
	Path  string
	Field string
	Err   error
}

func (e *Error) Error() string {
	prefix := e.Path
	if prefix == "" {
		prefix = FileName
	}
	if e.Field != "" {
		prefix += ": " + e.Field
	}
	return fmt.Sprintf("%s: %v", prefix, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func Default() *Config {
	return &Config{
		Target:            "native",
		OptimizationLevel: 2,
		LogLevel:          1,
		Languages:         map[string]*LanguageConfig{},
	}
}

// Load reads and validates a configuration file. Fields the file leaves out
// keep their Default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		var cerr *Error
		if errors.As(err, &cerr) {
			cerr.Path = path
			return nil, cerr
		}
		return nil, err
	}
	cfg.Path = path
	return cfg, nil
}

// Parse decodes and validates configuration YAML. Unknown keys are errors.
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, &Error{Err: err}
	}
	if cfg.Languages == nil {
		cfg.Languages = map[string]*LanguageConfig{}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Find walks up from dir looking for utopia.yaml and returns its path.
func Find(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%s not found: %w", FileName, os.ErrNotExist)
		}
		dir = parent
	}
}

// Discover loads the nearest utopia.yaml above dir, or Default when there
// is none.
func Discover(dir string) (*Config, error) {
	path, err := Find(dir)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, err
	}
	return Load(path)
}

// Validate checks the version constraint, the optimization level and every
// type mapping. The first problem is returned.
func (c *Config) Validate() error {
	if c.Requires != "" {
		constraint, err := semver.NewConstraint(c.Requires)
		if err != nil {
			return &Error{Path: c.Path, Field: "requires", Err: err}
		}
		if !constraint.Check(semver.MustParse(Version)) {
			return &Error{Path: c.Path, Field: "requires",
				Err: fmt.Errorf("utopia %s does not satisfy %q", Version, c.Requires)}
		}
	}

	if c.OptimizationLevel < 0 || c.OptimizationLevel > 3 {
		return &Error{Path: c.Path, Field: "optimization_level",
			Err: fmt.Errorf("must be between 0 and 3, got %d", c.OptimizationLevel)}
	}

	for _, lang := range c.languageNames() {
		if _, err := c.mappings(lang); err != nil {
			return err
		}
	}
	return nil
}

// DisabledLanguages returns the languages switched off, sorted.
func (c *Config) DisabledLanguages() []string {
	var out []string
	for _, lang := range c.languageNames() {
		if !c.Languages[lang].IsEnabled() {
			out = append(out, lang)
		}
	}
	return out
}

// Registry builds the adapter registry: the built-in adapters with the
// configured type mappings laid over them. A configured language without a
// built-in adapter gets a table adapter of its own.
func (c *Config) Registry() (*types.Registry, error) {
	registry := types.NewDefaultRegistry()
	for _, lang := range c.languageNames() {
		natives, err := c.mappings(lang)
		if err != nil {
			return nil, err
		}
		if len(natives) == 0 {
			continue
		}

		spec, ok := builtinSpec(registry, lang)
		if !ok {
			spec = types.AdapterSpec{
				Language: lang,
				Natives:  map[string]types.Type{},
				Reverse:  map[types.Kind]string{},
			}
		}
		for _, native := range sortedKeys(natives) {
			t := natives[native]
			spec.Natives[native] = t
			if _, taken := spec.Reverse[t.Kind()]; !taken && reversible(t) {
				spec.Reverse[t.Kind()] = native
			}
		}
		registry.Register(types.NewTableAdapter(registry, spec))
	}
	return registry, nil
}

// mappings parses the type table of one language.
func (c *Config) mappings(lang string) (map[string]types.Type, error) {
	lc := c.Languages[lang]
	if lc == nil || len(lc.Types) == 0 {
		return nil, nil
	}
	out := make(map[string]types.Type, len(lc.Types))
	for _, native := range sortedKeys(lc.Types) {
		field := fmt.Sprintf("languages.%s.types.%s", lang, native)
		t, err := grammar.ParseType(lc.Types[native])
		if err != nil {
			return nil, &Error{Path: c.Path, Field: field, Err: err}
		}
		if g, ok := t.(types.Generic); ok {
			return nil, &Error{Path: c.Path, Field: field,
				Err: fmt.Errorf("unknown type name %q", g.Name)}
		}
		out[native] = t
	}
	return out, nil
}

func (c *Config) languageNames() []string {
	return sortedKeys(c.Languages)
}

// builtinSpec returns the table of an existing adapter so it can be
// extended.
func builtinSpec(registry *types.Registry, lang string) (types.AdapterSpec, bool) {
	adapter, ok := registry.Adapter(lang)
	if !ok {
		return types.AdapterSpec{}, false
	}
	table, ok := adapter.(*types.TableAdapter)
	if !ok {
		return types.AdapterSpec{}, false
	}
	return table.Spec(), true
}

func reversible(t types.Type) bool {
	switch t.Kind() {
	case types.KindNumber, types.KindString, types.KindBoolean, types.KindNull, types.KindVoid:
		return true
	}
	return false
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
