package lsp

import (
	"fmt"
	"log"
	"net/url"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"pir/internal/parser"
	"pir/internal/pir"
	"pir/internal/semantic"
)

// PirHandler implements the LSP server handlers for the PIR textual
// format. Document text is taken from the client notifications, so the
// server never touches the filesystem for open buffers.
type PirHandler struct {
	mu      sync.RWMutex
	content map[string]string
}

// NewPirHandler creates and returns a new PirHandler instance
func NewPirHandler() *PirHandler {
	return &PirHandler{
		content: make(map[string]string),
	}
}

// Initialize responds to the LSP client's initialize request and advertises the server's capabilities
func (h *PirHandler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	log.Println("LSP Initialize called")

	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: ptrBool(true),
				Change:    ptrSyncKind(protocol.TextDocumentSyncKindFull),
			},
		},
	}, nil
}

// Initialized is called after the client receives the server's capabilities and completes initialization
func (h *PirHandler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Println("PIR LSP Initialized")
	return nil
}

// Shutdown handles the LSP shutdown request
func (h *PirHandler) Shutdown(ctx *glsp.Context) error {
	log.Println("PIR LSP Shutdown")
	return nil
}

// SetTrace handles trace level changes from the client
func (h *PirHandler) SetTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	return nil
}

// TextDocumentDidOpen handles file open notifications from the editor
func (h *PirHandler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	log.Printf("Opened file: %s\n", params.TextDocument.URI)

	return h.refresh(ctx, params.TextDocument.URI, params.TextDocument.Text)
}

// TextDocumentDidChange handles file change notifications from the editor
func (h *PirHandler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	log.Printf("Changed file: %s\n", params.TextDocument.URI)

	// Full sync is advertised, so the last change event carries the
	// whole document.
	text := ""
	for _, change := range params.ContentChanges {
		switch c := change.(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			text = c.Text
		case protocol.TextDocumentContentChangeEvent:
			if c.Range == nil {
				text = c.Text
			}
		}
	}

	return h.refresh(ctx, params.TextDocument.URI, text)
}

// TextDocumentDidClose handles file close notifications from the editor
func (h *PirHandler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	log.Printf("Closed file: %s\n", params.TextDocument.URI)

	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return fmt.Errorf("failed to convert URI %s: %w", params.TextDocument.URI, err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.content, path)

	return nil
}

// refresh reparses a document and publishes the full diagnostic set for
// it. An empty diagnostic list is still published so the editor clears
// stale squiggles.
func (h *PirHandler) refresh(ctx *glsp.Context, rawURI protocol.DocumentUri, text string) error {
	path, err := uriToPath(rawURI)
	if err != nil {
		return fmt.Errorf("failed to convert URI %s: %w", rawURI, err)
	}

	h.mu.Lock()
	h.content[path] = text
	h.mu.Unlock()

	sendDiagnosticNotification(ctx, rawURI, h.analyze(path, text))
	return nil
}

// analyze runs the whole pipeline best-effort: scan/parse errors are
// reported alongside whatever semantic diagnostics the recovered tree
// still supports.
func (h *PirHandler) analyze(path, text string) []protocol.Diagnostic {
	diagnostics := []protocol.Diagnostic{}

	file, parseErrors, scanErrors := parser.ParseSource(path, text)
	diagnostics = append(diagnostics, ConvertScanErrors(scanErrors)...)
	diagnostics = append(diagnostics, ConvertParseErrors(parseErrors)...)

	if file == nil {
		return diagnostics
	}

	module, err := pir.FromFile(file)
	if err != nil {
		diagnostics = append(diagnostics, protocol.Diagnostic{
			Severity: ptrSeverity(protocol.DiagnosticSeverityError),
			Source:   ptrString("pir-builder"),
			Message:  err.Error(),
		})
		return diagnostics
	}

	analyzer := semantic.NewAnalyzer()
	diagnostics = append(diagnostics, ConvertSemanticDiagnostics(analyzer.Analyze(module, file))...)

	return diagnostics
}

// Convert URI to platform-local file path
func uriToPath(rawURI string) (string, error) {
	u, err := url.Parse(rawURI)
	if err != nil {
		return "", fmt.Errorf("invalid URI %s: %w", rawURI, err)
	}

	path := u.Path

	// On Windows, remove leading slash (e.g., /C:/...) -> C:/...
	if runtime.GOOS == "windows" && strings.HasPrefix(path, "/") && len(path) > 3 && path[2] == ':' {
		path = path[1:]
	}

	return filepath.FromSlash(path), nil
}

func sendDiagnosticNotification(ctx *glsp.Context, uri protocol.URI, diagnostics []protocol.Diagnostic) {
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func ptrBool(b bool) *bool {
	return &b
}

func ptrSyncKind(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}

func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity {
	return &s
}

func ptrString(s string) *string {
	return &s
}
