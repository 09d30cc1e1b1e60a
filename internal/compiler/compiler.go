// Package compiler runs the front end over one source file: lexing, parsing
// and the cross-language checks.
package compiler

import (
	"fmt"
	"os"
	"time"

	"github.com/tliron/commonlog"

	"utopia/internal/ast"
	"utopia/internal/config"
	"utopia/internal/errors"
	"utopia/internal/parser"
	"utopia/internal/semantic"
	"utopia/internal/types"
)

var log = commonlog.GetLogger("utopia.compiler")

type Compiler struct {
	config   *config.Config
	registry *types.Registry
	checker  *semantic.Checker
	noCheck  bool
}

type Option func(*Compiler)

// WithRegistry replaces the registry built from the configuration.
func WithRegistry(registry *types.Registry) Option {
	return func(c *Compiler) { c.registry = registry }
}

// WithoutChecks stops Analyze after parsing.
func WithoutChecks() Option {
	return func(c *Compiler) { c.noCheck = true }
}

// New creates a compiler for cfg. A nil cfg means config.Default().
func New(cfg *config.Config, opts ...Option) (*Compiler, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	c := &Compiler{config: cfg}
	for _, opt := range opts {
		opt(c)
	}

	if c.registry == nil {
		registry, err := cfg.Registry()
		if err != nil {
			return nil, fmt.Errorf("building type adapters: %w", err)
		}
		c.registry = registry
	}
	c.checker = semantic.NewChecker(c.registry, semantic.WithDisabledLanguages(cfg.DisabledLanguages()...))
	return c, nil
}

func (c *Compiler) Config() *config.Config     { return c.config }
func (c *Compiler) Registry() *types.Registry { return c.registry }

// Result is everything Analyze learned about one source.
type Result struct {
	Name        string
	Source      string
	Tokens      []parser.Token
	Program     *ast.Program
	Diagnostics []errors.CompilerError
	Duration    time.Duration
}

// HasErrors reports whether any diagnostic is an error rather than a
// warning.
func (r *Result) HasErrors() bool {
	for _, d := range r.Diagnostics {
		if d.Level == errors.Error {
			return true
		}
	}
	return false
}

// Count returns the number of error and warning diagnostics.
func (r *Result) Count() (errs, warnings int) {
	for _, d := range r.Diagnostics {
		switch d.Level {
		case errors.Error:
			errs++
		case errors.Warning:
			warnings++
		}
	}
	return errs, warnings
}

// Analyze lexes, parses and checks source. A lexing or parsing failure
// returns a Result holding that one diagnostic together with the error.
// Checker findings never produce an error.
func (c *Compiler) Analyze(name, source string) (*Result, error) {
	start := time.Now()
	result := &Result{Name: name, Source: source}
	defer func() { result.Duration = time.Since(start) }()

	parsed := parser.ParseSourceWithTokens(source)
	result.Tokens = parsed.Tokens
	if parsed.Err != nil {
		log.Debugf("%s: %v", name, parsed.Err)
		result.Diagnostics = []errors.CompilerError{errors.FromError(parsed.Err)}
		return result, fmt.Errorf("%s: %w", name, parsed.Err)
	}
	result.Program = parsed.Program

	if !c.noCheck {
		result.Diagnostics = c.checker.Check(parsed.Program)
	}

	errs, warnings := result.Count()
	log.Infof("analyzed %s: %d language block(s), %d cross-call(s), %d error(s), %d warning(s)",
		name, len(parsed.Program.LanguageBlocks), len(parsed.Program.Metadata.CrossCalls), errs, warnings)
	return result, nil
}

// AnalyzeFile reads path and analyzes it under that name.
func (c *Compiler) AnalyzeFile(path string) (*Result, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading source: %w", err)
	}
	return c.Analyze(path, string(source))
}

// Validate reports whether source lexes, parses and passes the checks
// without error-level diagnostics.
func (c *Compiler) Validate(name, source string) bool {
	result, err := c.Analyze(name, source)
	return err == nil && !result.HasErrors()
}

// Metadata parses source and returns its program summary.
func (c *Compiler) Metadata(source string) (ast.Metadata, error) {
	program, err := parser.ParseSource(source)
	if err != nil {
		return ast.Metadata{}, err
	}
	return program.Metadata, nil
}
