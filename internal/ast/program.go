package ast

import "utopia/internal/types"

// Program is the root of a parsed source file.
type Program struct {
	LanguageBlocks []*LanguageBlock
	Statements     []Stmt
	Metadata       Metadata
	Span           Span
}

// AddLanguageBlock appends a block and records its language in the
// metadata in the same step.
func (p *Program) AddLanguageBlock(block *LanguageBlock) {
	p.LanguageBlocks = append(p.LanguageBlocks, block)
	p.Metadata.addLanguage(block.Language)
}

// Functions returns every function declared in a language block, in
// source order.
func (p *Program) Functions() []*Function {
	var fns []*Function
	for _, block := range p.LanguageBlocks {
		fns = append(fns, block.Functions...)
	}
	return fns
}

// LanguageBlock is one `@lang name { ... }` section.
type LanguageBlock struct {
	Language   string
	Functions  []*Function
	Statements []Stmt
	Span       Span
}

type Function struct {
	Name       string
	Parameters []*Parameter
	ReturnType types.Type // nil when not annotated
	Body       []Stmt
	IsExported bool
	Language   string
	Span       Span
}

// Signature builds the canonical function type from the annotations.
// Missing annotations become Unknown, a missing return type Void.
func (f *Function) Signature() types.Function {
	params := make([]types.Type, len(f.Parameters))
	for i, p := range f.Parameters {
		params[i] = p.TypeOrUnknown()
	}
	ret := f.ReturnType
	if ret == nil {
		ret = types.Void
	}
	return types.Function{Params: params, Return: ret}
}

// RequiredParams is the fewest arguments a call must pass.
func (f *Function) RequiredParams() int {
	return RequiredArgs(f.Parameters)
}

// RequiredArgs returns the position after the last parameter without a
// default. Arguments bind by position, so a default that comes before a
// required parameter cannot be skipped.
func RequiredArgs(params []*Parameter) int {
	for i := len(params) - 1; i >= 0; i-- {
		if params[i].Default == nil {
			return i + 1
		}
	}
	return 0
}

type Parameter struct {
	Name    string
	Type    types.Type // nil when not annotated
	Default Expr       // nil when absent
	Span    Span
}

func (p *Parameter) TypeOrUnknown() types.Type {
	if p.Type == nil {
		return types.Unknown
	}
	return p.Type
}
