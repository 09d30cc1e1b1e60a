package semantic

import (
	"sort"

	"utopia/internal/ast"
	"utopia/internal/errors"
	"utopia/internal/types"
)

// Checker reports advisory cross-language diagnostics over a parsed
// Program. A Checker holds no per-program state and may be reused.
type Checker struct {
	registry *types.Registry
	disabled map[string]bool
}

type Option func(*Checker)

// WithDisabledLanguages makes every block of the given languages produce a
// warning.
func WithDisabledLanguages(languages ...string) Option {
	return func(c *Checker) {
		for _, l := range languages {
			c.disabled[l] = true
		}
	}
}

// NewChecker creates a checker. A nil registry means the built-in adapters.
func NewChecker(registry *types.Registry, opts ...Option) *Checker {
	if registry == nil {
		registry = types.NewDefaultRegistry()
	}
	c := &Checker{registry: registry, disabled: make(map[string]bool)}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// signature is a declared function with its annotations resolved against
// the adapter of its language.
type signature struct {
	info     ast.FunctionInfo
	params   []types.Type
	ret      types.Type
	required int
}

func (s signature) fn() types.Function {
	return types.Function{Params: s.params, Return: s.ret}
}

// Check analyzes program and returns its diagnostics ordered by position.
func (c *Checker) Check(program *ast.Program) []errors.CompilerError {
	if program == nil {
		return nil
	}
	run := &checkRun{
		Checker:   c,
		functions: make(map[string]map[string]signature),
		blocks:    make(map[string]bool),
	}
	run.collect(program)

	for _, block := range program.LanguageBlocks {
		if c.disabled[block.Language] {
			run.report(errors.DisabledLanguage(block.Language, block.Span))
		}
		run.language = block.Language
		run.env = types.NewEnvironment()
		for _, fn := range block.Functions {
			run.checkFunction(fn)
		}
		for _, stmt := range block.Statements {
			run.checkStmt(stmt)
		}
	}

	run.language = types.HostLanguage
	run.env = types.NewEnvironment()
	for _, stmt := range program.Statements {
		run.checkStmt(stmt)
	}

	sort.SliceStable(run.diagnostics, func(i, j int) bool {
		return run.diagnostics[i].Span.Start < run.diagnostics[j].Span.Start
	})
	return run.diagnostics
}

// checkRun is the state of one Check call.
type checkRun struct {
	*Checker
	functions   map[string]map[string]signature
	blocks      map[string]bool
	languages   []string
	language    string
	env         *types.Environment
	diagnostics []errors.CompilerError
}

func (r *checkRun) report(err errors.CompilerError) {
	r.diagnostics = append(r.diagnostics, err)
}

// collect builds the per-language function table from the program
// metadata. The first declaration of a name wins.
func (r *checkRun) collect(program *ast.Program) {
	meta := ast.CollectMetadata(program)
	for _, l := range meta.Languages {
		r.blocks[l] = true
	}

	for _, info := range meta.Functions {
		table, ok := r.functions[info.Language]
		if !ok {
			table = make(map[string]signature)
			r.functions[info.Language] = table
		}
		if first, dup := table[info.Name]; dup {
			r.report(errors.DuplicateFunction(info.Language, info.Name, info.Span, first.info.Span))
			continue
		}

		sig := signature{
			info:     info,
			params:   make([]types.Type, len(info.Parameters)),
			required: ast.RequiredArgs(info.Parameters),
		}
		for i, p := range info.Parameters {
			sig.params[i] = r.resolve(p.TypeOrUnknown(), info.Language)
		}
		// an unannotated return is not known to be void
		sig.ret = r.resolve(info.ReturnType, info.Language)
		if sig.ret == nil {
			sig.ret = types.Unknown
		}
		table[info.Name] = sig
	}

	seen := make(map[string]bool)
	for _, l := range meta.Languages {
		seen[l] = true
		r.languages = append(r.languages, l)
	}
	for l := range r.functions {
		if !seen[l] {
			r.languages = append(r.languages, l)
		}
	}
	sort.Strings(r.languages)
}

func (r *checkRun) lookup(language, name string) (types.Function, bool) {
	sig, ok := r.functions[language][name]
	if !ok {
		return types.Function{}, false
	}
	return sig.fn(), true
}

func (r *checkRun) inferrer() *Inferrer {
	return &Inferrer{Env: r.env, Lookup: r.lookup}
}

// resolve maps host placeholders through the language adapter. Placeholders
// no adapter can see are erased to Unknown.
func (r *checkRun) resolve(t types.Type, language string) types.Type {
	if t == nil {
		return nil
	}
	return erasePlaceholders(r.registry.Resolve(t, language))
}

func (r *checkRun) checkFunction(fn *ast.Function) {
	language := fn.Language
	if language == "" {
		language = r.language
	}
	r.warnUnresolved(fn.ReturnType, language, fn.Span)

	outer, outerLang := r.env, r.language
	r.env, r.language = outer.NewChild(), language
	defer func() { r.env, r.language = outer, outerLang }()

	for _, p := range fn.Parameters {
		r.warnUnresolved(p.Type, language, p.Span)
		if p.Default != nil {
			r.checkExpr(p.Default)
		}
		r.env.Define(p.Name, r.resolve(p.TypeOrUnknown(), language))
	}
	for _, stmt := range fn.Body {
		r.checkStmt(stmt)
	}
}

func (r *checkRun) checkStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.ExprStmt:
		r.checkExpr(s.Expr)
	case *ast.VarDecl:
		r.checkVarDecl(s)
	case *ast.AssignStmt:
		r.checkExpr(s.Target)
		r.checkExpr(s.Value)
	case *ast.IfStmt:
		r.checkExpr(s.Cond)
		r.checkBlock(s.Then)
		r.checkBlock(s.Else)
	case *ast.WhileStmt:
		r.checkExpr(s.Cond)
		r.checkBlock(s.Body)
	case *ast.ForStmt:
		outer := r.env
		r.env = outer.NewChild()
		if s.Init != nil {
			r.checkStmt(s.Init)
		}
		r.checkExpr(s.Cond)
		r.checkExpr(s.Update)
		r.checkBlock(s.Body)
		r.env = outer
	case *ast.ReturnStmt:
		r.checkExpr(s.Value)
	case *ast.BlockStmt:
		r.checkBlock(s)
	case *ast.FunctionDecl:
		if s.Function != nil {
			r.checkFunction(s.Function)
		}
	}
}

func (r *checkRun) checkBlock(block *ast.BlockStmt) {
	if block == nil {
		return
	}
	outer := r.env
	r.env = outer.NewChild()
	for _, stmt := range block.Stmts {
		r.checkStmt(stmt)
	}
	r.env = outer
}

func (r *checkRun) checkVarDecl(decl *ast.VarDecl) {
	r.warnUnresolved(decl.Type, r.language, decl.Span)

	var actual types.Type = types.Unknown
	if decl.Value != nil {
		r.checkExpr(decl.Value)
		actual = r.inferrer().Infer(decl.Value)
	}

	if decl.Type == nil {
		r.env.Define(decl.Name, actual)
		return
	}
	declared := r.resolve(decl.Type, r.language)
	if decl.Value != nil && !r.registry.Compatible(actual, declared) {
		r.report(errors.TypeMismatch(decl.Name, declared, actual, decl.Span))
	}
	r.env.Define(decl.Name, declared)
}

// checkExpr validates every cross-call nested in e.
func (r *checkRun) checkExpr(e ast.Expr) {
	if e == nil {
		return
	}
	ast.Inspect(e, func(n ast.Node) bool {
		if call, ok := n.(*ast.CrossCallExpr); ok {
			r.checkCrossCall(call)
		}
		return true
	})
}

func (r *checkRun) checkCrossCall(call *ast.CrossCallExpr) {
	table, ok := r.functions[call.Language]
	if !ok && !r.blocks[call.Language] {
		r.report(errors.UnknownLanguage(call.Language, call.Span, r.languages))
		return
	}
	sig, ok := table[call.Function]
	if !ok {
		r.report(errors.UndefinedFunction(call.Language, call.Function, call.Span, sortedNames(table)))
		return
	}

	got := len(call.Args)
	if got < sig.required || got > len(sig.params) {
		r.report(errors.ArityMismatch(call.Language, call.Function, sig.required, len(sig.params), got, call.Span))
		return
	}

	infer := r.inferrer()
	for i, arg := range call.Args {
		expected := sig.params[i]
		actual := infer.Infer(arg)
		if r.registry.Compatible(actual, expected) {
			continue
		}
		var native string
		if adapter, ok := r.registry.Adapter(call.Language); ok {
			native, _ = adapter.CanonicalToNative(expected)
		}
		r.report(errors.ArgumentTypeMismatch(call.Language, call.Function,
			sig.info.Parameters[i].Name, expected, actual, native, arg.NodeSpan()))
	}
}

// warnUnresolved flags placeholder names in an annotation that the
// language's adapter does not know. Languages without an adapter are
// silent.
func (r *checkRun) warnUnresolved(t types.Type, language string, span ast.Span) {
	if t == nil {
		return
	}
	adapter, ok := r.registry.Adapter(language)
	if !ok {
		return
	}
	for _, name := range placeholderNames(t) {
		if _, known := adapter.NativeToCanonical(name); !known {
			r.report(errors.UnresolvedType(language, name, span))
		}
	}
}

func sortedNames(table map[string]signature) []string {
	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// placeholderNames lists the host-language names inside t in the order they
// appear.
func placeholderNames(t types.Type) []string {
	var names []string
	var walk func(types.Type)
	walk = func(t types.Type) {
		switch tt := t.(type) {
		case types.LanguageSpecific:
			if tt.IsPlaceholder() {
				names = append(names, tt.Name)
			}
			for _, a := range tt.Args {
				walk(a)
			}
		case types.Array:
			walk(tt.Elem)
		case types.Optional:
			walk(tt.Inner)
		case types.Union:
			for _, m := range tt.Members {
				walk(m)
			}
		case types.Function:
			for _, p := range tt.Params {
				walk(p)
			}
			if tt.Return != nil {
				walk(tt.Return)
			}
		case types.Object:
			for _, name := range tt.FieldNames() {
				walk(tt.Fields[name])
			}
		}
	}
	walk(t)
	return names
}

func erasePlaceholders(t types.Type) types.Type {
	switch tt := t.(type) {
	case types.LanguageSpecific:
		if tt.IsPlaceholder() {
			return types.Unknown
		}
	case types.Array:
		return types.Array{Elem: erasePlaceholders(tt.Elem)}
	case types.Optional:
		return types.Optional{Inner: erasePlaceholders(tt.Inner)}
	case types.Union:
		members := make([]types.Type, len(tt.Members))
		for i, m := range tt.Members {
			members[i] = erasePlaceholders(m)
		}
		return types.Union{Members: members}
	case types.Function:
		params := make([]types.Type, len(tt.Params))
		for i, p := range tt.Params {
			params[i] = erasePlaceholders(p)
		}
		ret := tt.Return
		if ret != nil {
			ret = erasePlaceholders(ret)
		}
		return types.Function{Params: params, Return: ret}
	case types.Object:
		fields := make(map[string]types.Type, len(tt.Fields))
		for name, ft := range tt.Fields {
			fields[name] = erasePlaceholders(ft)
		}
		return types.Object{Fields: fields}
	}
	return t
}
