package errors

import (
	"fmt"
	"sort"
	"strings"

	"utopia/internal/ast"
	"utopia/internal/types"
)

// SemanticErrorBuilder provides a fluent interface for creating semantic errors with suggestions
type SemanticErrorBuilder struct {
	err CompilerError
}

// NewSemanticError creates a new semantic error builder
func NewSemanticError(code, message string, span ast.Span) *SemanticErrorBuilder {
	return &SemanticErrorBuilder{
		err: CompilerError{
			Level:   Error,
			Code:    code,
			Message: message,
			Span:    span,
		},
	}
}

// NewSemanticWarning creates a new semantic warning builder
func NewSemanticWarning(code, message string, span ast.Span) *SemanticErrorBuilder {
	b := NewSemanticError(code, message, span)
	b.err.Level = Warning
	return b
}

// WithSuggestion adds a suggestion to the error
func (b *SemanticErrorBuilder) WithSuggestion(message string) *SemanticErrorBuilder {
	b.err.Suggestions = append(b.err.Suggestions, Suggestion{Message: message})
	return b
}

// WithReplacement adds a suggestion with replacement text
func (b *SemanticErrorBuilder) WithReplacement(message, replacement string, span ast.Span) *SemanticErrorBuilder {
	b.err.Suggestions = append(b.err.Suggestions, Suggestion{
		Message:     message,
		Replacement: replacement,
		Span:        span,
	})
	return b
}

// WithNote adds a note to the error
func (b *SemanticErrorBuilder) WithNote(note string) *SemanticErrorBuilder {
	b.err.Notes = append(b.err.Notes, note)
	return b
}

// WithHelp adds help text to the error
func (b *SemanticErrorBuilder) WithHelp(help string) *SemanticErrorBuilder {
	b.err.HelpText = help
	return b
}

// Build returns the completed compiler error
func (b *SemanticErrorBuilder) Build() CompilerError {
	return b.err
}

// withDidYouMean adds the usual "did you mean" suggestion for similar names.
func (b *SemanticErrorBuilder) withDidYouMean(similar []string) *SemanticErrorBuilder {
	switch len(similar) {
	case 0:
		return b
	case 1:
		return b.WithSuggestion(fmt.Sprintf("did you mean '%s'?", similar[0]))
	default:
		return b.WithSuggestion(fmt.Sprintf("did you mean one of: '%s'?", strings.Join(similar, "', '")))
	}
}

// UnknownLanguage reports a cross-call into a language that has no block.
func UnknownLanguage(language string, span ast.Span, known []string) CompilerError {
	builder := NewSemanticError(ErrorUnknownLanguage,
		fmt.Sprintf("no '@lang %s' block declares functions for this call", language), span).
		withDidYouMean(SimilarNames(language, known))

	if len(known) > 0 {
		builder = builder.WithNote(fmt.Sprintf("languages in this program: %s", strings.Join(known, ", ")))
	} else {
		builder = builder.WithSuggestion(fmt.Sprintf("add a block: @lang %s { ... }", language))
	}
	return builder.Build()
}

// UndefinedFunction reports a cross-call to a function its language does not declare.
func UndefinedFunction(language, name string, span ast.Span, available []string) CompilerError {
	builder := NewSemanticError(ErrorUndefinedFunction,
		fmt.Sprintf("function '%s' is not defined in language '%s'", name, language), span).
		withDidYouMean(SimilarNames(name, available))

	if len(available) > 0 {
		builder = builder.WithNote(fmt.Sprintf("functions in '%s': %s", language, strings.Join(available, ", ")))
	}
	return builder.WithHelp("cross-calls can only reach functions declared inside '@lang' blocks").Build()
}

// ArityMismatch reports a cross-call with too few or too many arguments.
// min is the number of parameters without a default.
func ArityMismatch(language, name string, min, max, got int, span ast.Span) CompilerError {
	var expected string
	switch {
	case min == max:
		expected = fmt.Sprintf("%d argument(s)", max)
	default:
		expected = fmt.Sprintf("%d to %d arguments", min, max)
	}
	return NewSemanticError(ErrorArityMismatch,
		fmt.Sprintf("%s::%s expects %s, got %d", language, name, expected, got), span).
		WithSuggestion(fmt.Sprintf("provide %s", expected)).
		WithHelp("trailing parameters with a default value may be omitted").
		Build()
}

// ArgumentTypeMismatch reports a cross-call argument whose inferred type is
// not compatible with the parameter.
func ArgumentTypeMismatch(language, name, param string, expected, actual types.Type, native string, span ast.Span) CompilerError {
	builder := NewSemanticError(ErrorArgumentType,
		fmt.Sprintf("argument '%s' of %s::%s expects %s, found %s", param, language, name, expected, actual), span)
	if native != "" {
		builder = builder.WithNote(fmt.Sprintf("'%s' is spelled %s in %s", expected, native, language))
	}
	return builder.Build()
}

// DuplicateFunction reports a second declaration of a function in one language.
func DuplicateFunction(language, name string, span, first ast.Span) CompilerError {
	return NewSemanticError(ErrorDuplicateFunction,
		fmt.Sprintf("function '%s' is already declared in language '%s'", name, language), span).
		WithNote(fmt.Sprintf("first declared at %s", first)).
		WithSuggestion(fmt.Sprintf("rename the duplicate '%s' to a unique name", name)).
		Build()
}

// TypeMismatch reports an initializer whose type contradicts the annotation.
func TypeMismatch(name string, declared, actual types.Type, span ast.Span) CompilerError {
	return NewSemanticError(ErrorTypeMismatch,
		fmt.Sprintf("cannot initialize '%s' of type %s with a value of type %s", name, declared, actual), span).
		WithSuggestion(fmt.Sprintf("change the annotation to %s or drop it", actual)).
		Build()
}

// DisabledLanguage warns about a block whose language the project disabled.
func DisabledLanguage(language string, span ast.Span) CompilerError {
	return NewSemanticWarning(WarningDisabledLanguage,
		fmt.Sprintf("language '%s' is disabled in the project configuration", language), span).
		WithHelp("enable it under 'languages' in utopia.yaml").
		Build()
}

// UnresolvedType warns about an annotation the block's adapter cannot map.
func UnresolvedType(language, name string, span ast.Span) CompilerError {
	return NewSemanticWarning(WarningUnresolvedType,
		fmt.Sprintf("type '%s' is not known to the %s adapter", name, language), span).
		WithNote("the type is treated as opaque and only matches itself").
		Build()
}

// SimilarNames returns candidates within edit distance 2 of target, closest
// first. Candidates equal to target are skipped.
func SimilarNames(target string, candidates []string) []string {
	type scored struct {
		name string
		dist int
	}
	var found []scored
	for _, candidate := range candidates {
		if candidate == target {
			continue
		}
		d := levenshteinDistance(target, candidate)
		if d <= 2 && d < len(candidate) {
			found = append(found, scored{candidate, d})
		}
	}
	sort.SliceStable(found, func(i, j int) bool {
		if found[i].dist != found[j].dist {
			return found[i].dist < found[j].dist
		}
		return found[i].name < found[j].name
	})

	out := make([]string, len(found))
	for i, s := range found {
		out[i] = s.name
	}
	return out
}

// Simple Levenshtein distance implementation for finding similar names
func levenshteinDistance(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	matrix := make([][]int, len(a)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(b)+1)
	}
	for i := 0; i <= len(a); i++ {
		matrix[i][0] = i
	}
	for j := 0; j <= len(b); j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			cost := 0
			if a[i-1] != b[j-1] {
				cost = 1
			}

			matrix[i][j] = min3(
				matrix[i-1][j]+1,      // deletion
				matrix[i][j-1]+1,      // insertion
				matrix[i-1][j-1]+cost, // substitution
			)
		}
	}

	return matrix[len(a)][len(b)]
}

func min3(a, b, c int) int {
	if a < b {
		if a < c {
			return a
		}
		return c
	}
	if b < c {
		return b
	}
	return c
}
