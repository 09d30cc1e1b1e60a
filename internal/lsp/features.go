package lsp

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"utopia/internal/ast"
	"utopia/internal/parser"
	"utopia/internal/semantic"
	"utopia/internal/types"
)

// TextDocumentSemanticTokensFull classifies every token of the document.
// A document that does not lex yields no tokens.
func (h *Handler) TextDocumentSemanticTokensFull(ctx *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	doc, err := h.document(params.TextDocument.URI)
	if err != nil {
		return nil, err
	}
	tokens := collectSemanticTokens(doc.text, doc.result.Tokens)
	return &protocol.SemanticTokens{Data: encodeSemanticTokens(tokens)}, nil
}

// TextDocumentCompletion offers the functions of a language after `lang::`
// and keywords and language names everywhere else.
func (h *Handler) TextDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (any, error) {
	doc, err := h.document(params.TextDocument.URI)
	if err != nil {
		return nil, err
	}
	offset := offsetAt(doc.text, params.Position)

	var items []protocol.CompletionItem
	if lang, ok := crossCallPrefix(doc.text[:offset]); ok {
		items = h.functionItems(doc, lang)
	} else {
		items = append(keywordItems(), h.languageItems(doc)...)
	}
	return &protocol.CompletionList{IsIncomplete: false, Items: items}, nil
}

func (h *Handler) functionItems(doc *document, lang string) []protocol.CompletionItem {
	items := []protocol.CompletionItem{}
	if doc.lastGood == nil {
		return items
	}
	kind := protocol.CompletionItemKindFunction
	for _, fi := range doc.lastGood.Program.Metadata.FunctionsIn(lang) {
		items = append(items, protocol.CompletionItem{
			Label:      fi.Name,
			Kind:       &kind,
			Detail:     ptrString(fi.Signature()),
			InsertText: ptrString(fi.Name + "("),
		})
	}
	return items
}

func keywordItems() []protocol.CompletionItem {
	keywords := make([]string, 0, len(parser.KEYWORDS))
	for kw := range parser.KEYWORDS {
		keywords = append(keywords, kw)
	}
	sort.Strings(keywords)

	kind := protocol.CompletionItemKindKeyword
	items := make([]protocol.CompletionItem, 0, len(keywords))
	for _, kw := range keywords {
		items = append(items, protocol.CompletionItem{Label: kw, Kind: &kind})
	}
	return items
}

// languageItems lists the languages with an adapter and those the document
// already declares.
func (h *Handler) languageItems(doc *document) []protocol.CompletionItem {
	h.mu.RLock()
	seen := map[string]bool{}
	for _, l := range h.compiler.Registry().Languages() {
		seen[l] = true
	}
	h.mu.RUnlock()
	if doc.lastGood != nil {
		for _, l := range doc.lastGood.Program.Metadata.Languages {
			seen[l] = true
		}
	}

	names := make([]string, 0, len(seen))
	for l := range seen {
		names = append(names, l)
	}
	sort.Strings(names)

	kind := protocol.CompletionItemKindModule
	items := make([]protocol.CompletionItem, 0, len(names))
	for _, l := range names {
		items = append(items, protocol.CompletionItem{
			Label:  l,
			Kind:   &kind,
			Detail: ptrString("language"),
		})
	}
	return items
}

// crossCallPrefix reports the language of a `lang::` (optionally followed by
// a partial function name) that ends text.
func crossCallPrefix(text string) (string, bool) {
	text = strings.TrimRight(text, identChars)
	if !strings.HasSuffix(text, "::") {
		return "", false
	}
	text = strings.TrimSuffix(text, "::")
	lang := text[len(strings.TrimRight(text, identChars)):]
	if lang == "" || strings.ContainsAny(lang[:1], "0123456789") {
		return "", false
	}
	return lang, true
}

const identChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789_"

// TextDocumentHover shows the target signature of a cross-call, the
// signature of a declared function, or the inferred type of an expression.
func (h *Handler) TextDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	doc, err := h.document(params.TextDocument.URI)
	if err != nil {
		return nil, err
	}
	parsed := doc.parsed()
	path := parsed.PathTo(offsetAt(doc.text, params.Position))
	if len(path) == 0 {
		return nil, nil
	}

	program := parsed.Program
	var text string
	node := path[len(path)-1]
	switch n := node.(type) {
	case *ast.CrossCallExpr:
		if fi, ok := program.Metadata.LookupFunction(n.Language, n.Function); ok {
			text = codeBlock(fi.Signature())
		} else {
			text = fmt.Sprintf("`%s::%s` is not declared", n.Language, n.Function)
		}
	case *ast.Function:
		lang := ast.EnclosingLanguage(path, types.HostLanguage)
		if fi, ok := program.Metadata.LookupFunction(lang, n.Name); ok {
			text = codeBlock(fi.Signature())
		}
	case ast.Expr:
		t := h.inferrer(program).Infer(n)
		text = codeBlock(fmt.Sprintf("%s: %s", n, t))
	}
	if text == "" {
		return nil, nil
	}

	r := spanRange(doc.text, node.NodeSpan())
	return &protocol.Hover{
		Contents: protocol.MarkupContent{Kind: protocol.MarkupKindMarkdown, Value: text},
		Range:    &r,
	}, nil
}

// inferrer resolves cross-call return types through the metadata and the
// compiler's adapters.
func (h *Handler) inferrer(program *ast.Program) *semantic.Inferrer {
	h.mu.RLock()
	registry := h.compiler.Registry()
	h.mu.RUnlock()
	return &semantic.Inferrer{Lookup: semantic.MetadataLookup(program.Metadata, registry)}
}

func codeBlock(s string) string {
	return "```utopia\n" + s + "\n```"
}
