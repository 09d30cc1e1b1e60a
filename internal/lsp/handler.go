package lsp

import (
	"fmt"
	"net/url"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"utopia/internal/compiler"
	"utopia/internal/config"
	"utopia/internal/parser"
)

var log = commonlog.GetLogger("utopia.lsp")

// Supported semantic token types, in legend order
var SemanticTokenTypes = []string{
	"namespace",
	"type",
	"function",
	"variable",
	"parameter",
	"property",
	"keyword",
	"number",
	"string",
	"comment",
	"operator",
}

var SemanticTokenModifiers = []string{
	"declaration",
	"readonly",
}

// document is the server's view of one open file.
type document struct {
	uri     protocol.DocumentUri
	version protocol.Integer
	text    string
	result  *compiler.Result
	// lastGood is the most recent analysis that produced a program. It
	// keeps completion useful while the user is typing.
	lastGood *compiler.Result
}

func (d *document) parsed() *parser.ParseResult {
	return &parser.ParseResult{
		Source:  d.result.Source,
		Tokens:  d.result.Tokens,
		Program: d.result.Program,
	}
}

// Handler implements the LSP server handlers for Utopia sources
type Handler struct {
	mu        sync.RWMutex
	compiler  *compiler.Compiler
	documents map[protocol.DocumentUri]*document
}

// NewHandler creates a handler that analyzes documents with c. A nil c
// uses the default configuration.
func NewHandler(c *compiler.Compiler) (*Handler, error) {
	if c == nil {
		var err error
		if c, err = compiler.New(nil); err != nil {
			return nil, fmt.Errorf("creating default compiler: %w", err)
		}
	}
	return &Handler{
		compiler:  c,
		documents: make(map[protocol.DocumentUri]*document),
	}, nil
}

// Initialize advertises the server's capabilities. When the client names a
// workspace root, the nearest utopia.yaml above it replaces the startup
// configuration.
func (h *Handler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	log.Info("initialize")

	if params != nil && params.RootURI != nil {
		if root, err := uriToPath(*params.RootURI); err == nil {
			h.loadWorkspaceConfig(root)
		}
	}

	version := config.Version
	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: ptrBool(true),
				Change:    ptrSyncKind(protocol.TextDocumentSyncKindFull),
			},
			CompletionProvider: &protocol.CompletionOptions{
				TriggerCharacters: []string{":", "@"},
				ResolveProvider:   ptrBool(false),
			},
			HoverProvider: true,
			SemanticTokensProvider: &protocol.SemanticTokensOptions{
				Legend: protocol.SemanticTokensLegend{
					TokenTypes:     SemanticTokenTypes,
					TokenModifiers: SemanticTokenModifiers,
				},
				Full: ptrBool(true),
			},
		},
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    "utopia",
			Version: &version,
		},
	}, nil
}

func (h *Handler) loadWorkspaceConfig(root string) {
	cfg, err := config.Discover(root)
	if err != nil {
		log.Warningf("ignoring workspace configuration: %v", err)
		return
	}
	c, err := compiler.New(cfg)
	if err != nil {
		log.Warningf("ignoring workspace configuration: %v", err)
		return
	}
	if cfg.Path != "" {
		log.Infof("using configuration %s", cfg.Path)
	}

	h.mu.Lock()
	h.compiler = c
	h.mu.Unlock()
}

func (h *Handler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Info("initialized")
	return nil
}

func (h *Handler) Shutdown(ctx *glsp.Context) error {
	log.Info("shutdown")
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (h *Handler) SetTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

// TextDocumentDidOpen analyzes a newly opened document and publishes its
// diagnostics.
func (h *Handler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	item := params.TextDocument
	log.Debugf("opened %s", item.URI)
	h.update(ctx, item.URI, item.Version, item.Text)
	return nil
}

// TextDocumentDidChange applies the content changes in order. Whole-text
// changes replace the document; ranged ones are spliced in.
func (h *Handler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	uri := params.TextDocument.URI
	log.Debugf("changed %s", uri)

	h.mu.RLock()
	text := ""
	if doc, ok := h.documents[uri]; ok {
		text = doc.text
	}
	h.mu.RUnlock()

	for _, change := range params.ContentChanges {
		switch c := change.(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			text = c.Text
		case protocol.TextDocumentContentChangeEvent:
			text = applyChange(text, c)
		}
	}
	h.update(ctx, uri, params.TextDocument.Version, text)
	return nil
}

// TextDocumentDidClose forgets the document and clears its diagnostics.
func (h *Handler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	uri := params.TextDocument.URI
	log.Debugf("closed %s", uri)

	h.mu.Lock()
	delete(h.documents, uri)
	h.mu.Unlock()

	publishDiagnostics(ctx, uri, []protocol.Diagnostic{})
	return nil
}

// update analyzes text, stores the result and publishes diagnostics.
func (h *Handler) update(ctx *glsp.Context, uri protocol.DocumentUri, version protocol.Integer, text string) {
	h.mu.RLock()
	c := h.compiler
	prev := h.documents[uri]
	h.mu.RUnlock()

	name := uri
	if path, err := uriToPath(uri); err == nil {
		name = path
	}
	result, err := c.Analyze(name, text)
	if err != nil {
		log.Debugf("%v", err)
	}

	doc := &document{uri: uri, version: version, text: text, result: result}
	switch {
	case result.Program != nil:
		doc.lastGood = result
	case prev != nil:
		doc.lastGood = prev.lastGood
	}

	h.mu.Lock()
	h.documents[uri] = doc
	h.mu.Unlock()

	publishDiagnostics(ctx, uri, ConvertDiagnostics(text, result.Diagnostics))
}

func (h *Handler) document(uri protocol.DocumentUri) (*document, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	doc, ok := h.documents[uri]
	if !ok {
		return nil, fmt.Errorf("document %s is not open", uri)
	}
	return doc, nil
}

func publishDiagnostics(ctx *glsp.Context, uri protocol.DocumentUri, diagnostics []protocol.Diagnostic) {
	if ctx == nil || ctx.Notify == nil {
		return
	}
	log.Debugf("publishing %d diagnostic(s) for %s", len(diagnostics), uri)
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

// applyChange splices a ranged edit into text.
func applyChange(text string, change protocol.TextDocumentContentChangeEvent) string {
	if change.Range == nil {
		return change.Text
	}
	start := offsetAt(text, change.Range.Start)
	end := offsetAt(text, change.Range.End)
	if end < start {
		start, end = end, start
	}
	return text[:start] + change.Text + text[end:]
}

// Convert URI to platform-local file path
func uriToPath(rawURI string) (string, error) {
	u, err := url.Parse(rawURI)
	if err != nil {
		return "", fmt.Errorf("invalid URI %s: %w", rawURI, err)
	}
	if u.Scheme != "" && u.Scheme != "file" {
		return "", fmt.Errorf("unsupported URI scheme %q", u.Scheme)
	}

	path := u.Path

	// On Windows, remove leading slash (e.g., /C:/...) to C:/...
	if runtime.GOOS == "windows" && strings.HasPrefix(path, "/") && len(path) > 3 && path[2] == ':' {
		path = path[1:]
	}

	return filepath.FromSlash(path), nil
}

func ptrBool(b bool) *bool {
	return &b
}

func ptrSyncKind(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}

func ptrString(s string) *string {
	return &s
}
