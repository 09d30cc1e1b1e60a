package ast

import "utopia/internal/types"

// Metadata summarises a Program for tooling. It is derived from the tree;
// call Program.RefreshMetadata after editing the tree.
type Metadata struct {
	Languages  []string
	Functions  []FunctionInfo
	CrossCalls []CrossCallSite
	Imports    []string
	Exports    []string
}

type FunctionInfo struct {
	Name       string
	Language   string
	Parameters []*Parameter
	ReturnType types.Type
	IsExported bool
	Span       Span
}

// Signature renders the function as `lang::name(a: T, b) -> R`.
func (fi FunctionInfo) Signature() string {
	s := fi.Name + "("
	for i, p := range fi.Parameters {
		if i > 0 {
			s += ", "
		}
		s += p.Name
		if p.Type != nil {
			s += ": " + annotation(p.Type)
		}
	}
	s += ")"
	if fi.ReturnType != nil {
		s += " -> " + annotation(fi.ReturnType)
	}
	if fi.Language != "" {
		s = fi.Language + "::" + s
	}
	return s
}

type CrossCallSite struct {
	Language string
	Function string
	ArgCount int
	Span     Span
}

func (m *Metadata) addLanguage(name string) {
	if m.HasLanguage(name) {
		return
	}
	m.Languages = append(m.Languages, name)
}

func (m *Metadata) HasLanguage(name string) bool {
	for _, l := range m.Languages {
		if l == name {
			return true
		}
	}
	return false
}

// FunctionsIn returns the declared functions of one language.
func (m *Metadata) FunctionsIn(language string) []FunctionInfo {
	var out []FunctionInfo
	for _, fi := range m.Functions {
		if fi.Language == language {
			out = append(out, fi)
		}
	}
	return out
}

// LookupFunction finds a function declared in a language block.
func (m *Metadata) LookupFunction(language, name string) (FunctionInfo, bool) {
	for _, fi := range m.Functions {
		if fi.Language == language && fi.Name == name {
			return fi, true
		}
	}
	return FunctionInfo{}, false
}

// RefreshMetadata recomputes the metadata from the tree.
func (p *Program) RefreshMetadata() {
	p.Metadata = CollectMetadata(p)
}

// CollectMetadata walks the program and builds its summary. Functions
// declared outside a language block are attributed to the host language.
func CollectMetadata(p *Program) Metadata {
	var m Metadata
	c := &metadataCollector{meta: &m, language: types.HostLanguage}

	for _, block := range p.LanguageBlocks {
		m.addLanguage(block.Language)
		c.language = block.Language
		Inspect(block, c.visit)
	}
	c.language = types.HostLanguage
	for _, stmt := range p.Statements {
		Inspect(stmt, c.visit)
	}
	return m
}

type metadataCollector struct {
	meta     *Metadata
	language string
}

func (c *metadataCollector) visit(node Node) bool {
	switch n := node.(type) {
	case *Function:
		language := n.Language
		if language == "" {
			language = c.language
		}
		c.meta.Functions = append(c.meta.Functions, FunctionInfo{
			Name:       n.Name,
			Language:   language,
			Parameters: n.Parameters,
			ReturnType: n.ReturnType,
			IsExported: n.IsExported,
			Span:       n.Span,
		})
		if n.IsExported {
			c.meta.Exports = append(c.meta.Exports, n.Name)
		}
	case *CrossCallExpr:
		c.meta.CrossCalls = append(c.meta.CrossCalls, CrossCallSite{
			Language: n.Language,
			Function: n.Function,
			ArgCount: len(n.Args),
			Span:     n.Span,
		})
	case *ImportStmt:
		c.meta.Imports = append(c.meta.Imports, n.Module)
	case *ExportStmt:
		c.meta.Exports = append(c.meta.Exports, n.Name)
	}
	return true
}
