package lsp

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/text/language"

	"github.com/algc-lang/algc/internal/diag"
	"github.com/algc-lang/algc/internal/messages"
	"github.com/algc-lang/algc/internal/parser"
	"github.com/algc-lang/algc/internal/types"
)

// Option configures a Server.
type Option func(*Server)

// WithStrictVariables validates documents in strict variable mode.
func WithStrictVariables(strict bool) Option {
	return func(s *Server) {
		s.strict = strict
	}
}

// WithLanguage selects the language of diagnostic messages.
func WithLanguage(tag language.Tag) Option {
	return func(s *Server) {
		s.localizer = messages.New(tag)
	}
}

// WithLogger sets the logger for protocol problems.
func WithLogger(logger *log.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Server represents the LSP server.
type Server struct {
	// Documents tracks open files by URI
	Documents map[string]*Document
	mu        sync.RWMutex

	strict    bool
	localizer *messages.Localizer
	logger    *log.Logger

	out   io.Writer
	outMu sync.Mutex

	shutdown bool
}

// NewServer creates a new LSP server.
func NewServer(opts ...Option) *Server {
	s := &Server{
		Documents: make(map[string]*Document),
		localizer: messages.New(language.English),
		logger:    log.New(os.Stderr, "algc lsp: ", 0),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run serves requests read from in and writes responses and notifications to
// out until the client sends exit, in is exhausted or ctx is done.
func (s *Server) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	reader := bufio.NewReader(in)
	s.out = out

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		body, err := readMessage(reader)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if body == nil {
			continue
		}

		var msg jsonrpcMessage
		if err := json.Unmarshal(body, &msg); err != nil {
			s.logger.Printf("failed to parse JSON-RPC message: %v", err)
			continue
		}

		if msg.Method == "exit" {
			return nil
		}

		if response := s.handleMessage(&msg); response != nil {
			if err := s.send(response); err != nil {
				s.logger.Printf("failed to send response: %v", err)
			}
		}
	}
}

// readMessage reads one framed message. It returns a nil body for a frame
// without a usable Content-Length header.
func readMessage(reader *bufio.Reader) ([]byte, error) {
	contentLength := -1
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) && line == "" {
				return nil, io.EOF
			}
			return nil, fmt.Errorf("failed to read header: %w", err)
		}
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			break
		}
		name, value, ok := strings.Cut(line, ":")
		if !ok || !strings.EqualFold(strings.TrimSpace(name), "Content-Length") {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("invalid Content-Length header %q: %w", line, err)
		}
		contentLength = n
	}
	if contentLength < 0 {
		return nil, nil
	}

	body := make([]byte, contentLength)
	if _, err := io.ReadFull(reader, body); err != nil {
		return nil, fmt.Errorf("failed to read message body: %w", err)
	}
	return body, nil
}

// jsonrpcMessage represents a JSON-RPC 2.0 message.
type jsonrpcMessage struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      any             `json:"id,omitempty"`
	Method  string          `json:"method,omitempty"`
	Params  json.RawMessage `json:"params,omitempty"`
	Result  any             `json:"result,omitempty"`
	Error   *jsonrpcError   `json:"error,omitempty"`
}

type jsonrpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

const (
	codeInvalidRequest = -32600
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
)

// handleMessage processes a JSON-RPC message and returns a response.
func (s *Server) handleMessage(msg *jsonrpcMessage) *jsonrpcMessage {
	if s.shutdown && msg.Method != "exit" && msg.ID != nil {
		return errorResponse(msg, codeInvalidRequest, "server is shut down")
	}

	switch msg.Method {
	case "initialize":
		return s.handleInitialize(msg)
	case "initialized":
		return nil
	case "textDocument/didOpen":
		s.handleDidOpen(msg)
		return nil
	case "textDocument/didChange":
		s.handleDidChange(msg)
		return nil
	case "textDocument/didClose":
		s.handleDidClose(msg)
		return nil
	case "textDocument/completion":
		return s.handleCompletion(msg)
	case "textDocument/hover":
		return s.handleHover(msg)
	case "textDocument/definition":
		return s.handleDefinition(msg)
	case "shutdown":
		s.shutdown = true
		return &jsonrpcMessage{JSONRPC: "2.0", ID: msg.ID}
	default:
		if msg.ID != nil {
			return errorResponse(msg, codeMethodNotFound, fmt.Sprintf("Method not found: %s", msg.Method))
		}
		return nil
	}
}

func errorResponse(msg *jsonrpcMessage, code int, text string) *jsonrpcMessage {
	return &jsonrpcMessage{
		JSONRPC: "2.0",
		ID:      msg.ID,
		Error:   &jsonrpcError{Code: code, Message: text},
	}
}

// decodeParams unmarshals the params of msg into v. On failure it returns the
// error response to send.
func decodeParams(msg *jsonrpcMessage, v any) *jsonrpcMessage {
	if err := json.Unmarshal(msg.Params, v); err != nil {
		return errorResponse(msg, codeInvalidParams, fmt.Sprintf("Invalid params: %v", err))
	}
	return nil
}

// send writes one framed message.
func (s *Server) send(msg *jsonrpcMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}

	s.outMu.Lock()
	defer s.outMu.Unlock()

	if _, err := fmt.Fprintf(s.out, "Content-Length: %d\r\n\r\n", len(data)); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if _, err := s.out.Write(data); err != nil {
		return fmt.Errorf("failed to write body: %w", err)
	}
	return nil
}

// InitializeResult represents the initialize response.
type InitializeResult struct {
	Capabilities ServerCapabilities `json:"capabilities"`
	ServerInfo   ServerInfo         `json:"serverInfo"`
}

type ServerCapabilities struct {
	TextDocumentSync   int            `json:"textDocumentSync"`
	CompletionProvider map[string]any `json:"completionProvider,omitempty"`
	HoverProvider      bool           `json:"hoverProvider"`
	DefinitionProvider bool           `json:"definitionProvider"`
}

type ServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Version is reported to clients in the initialize response.
const Version = "0.1.0"

func (s *Server) handleInitialize(msg *jsonrpcMessage) *jsonrpcMessage {
	result := InitializeResult{
		Capabilities: ServerCapabilities{
			TextDocumentSync: 1, // full document sync
			CompletionProvider: map[string]any{
				"triggerCharacters": []string{"(", "["},
			},
			HoverProvider:      true,
			DefinitionProvider: true,
		},
		ServerInfo: ServerInfo{
			Name:    "algc-lsp",
			Version: Version,
		},
	}

	return &jsonrpcMessage{
		JSONRPC: "2.0",
		ID:      msg.ID,
		Result:  result,
	}
}

// DidOpenTextDocumentParams represents didOpen notification parameters.
type DidOpenTextDocumentParams struct {
	TextDocument TextDocumentItem `json:"textDocument"`
}

type TextDocumentItem struct {
	URI        string `json:"uri"`
	LanguageID string `json:"languageId"`
	Version    int    `json:"version"`
	Text       string `json:"text"`
}

func (s *Server) handleDidOpen(msg *jsonrpcMessage) {
	var params DidOpenTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		s.logger.Printf("failed to parse didOpen params: %v", err)
		return
	}

	doc := &Document{
		URI:     params.TextDocument.URI,
		Content: params.TextDocument.Text,
		Version: params.TextDocument.Version,
	}
	doc.analyze(s.strict)

	s.mu.Lock()
	s.Documents[doc.URI] = doc
	s.mu.Unlock()

	s.publishDiagnostics(doc)
}

// DidChangeTextDocumentParams represents didChange notification parameters.
type DidChangeTextDocumentParams struct {
	TextDocument   VersionedTextDocumentIdentifier  `json:"textDocument"`
	ContentChanges []TextDocumentContentChangeEvent `json:"contentChanges"`
}

type VersionedTextDocumentIdentifier struct {
	URI     string `json:"uri"`
	Version int    `json:"version"`
}

type TextDocumentContentChangeEvent struct {
	Text string `json:"text"`
}

func (s *Server) handleDidChange(msg *jsonrpcMessage) {
	var params DidChangeTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		s.logger.Printf("failed to parse didChange params: %v", err)
		return
	}
	if len(params.ContentChanges) == 0 {
		return
	}

	s.mu.Lock()
	doc, ok := s.Documents[params.TextDocument.URI]
	if ok {
		// Full sync: the last change holds the whole text.
		doc.Content = params.ContentChanges[len(params.ContentChanges)-1].Text
		doc.Version = params.TextDocument.Version
		doc.analyze(s.strict)
	}
	s.mu.Unlock()

	if ok {
		s.publishDiagnostics(doc)
	}
}

type TextDocumentIdentifier struct {
	URI string `json:"uri"`
}

// TextDocumentPositionParams identifies a position in a document.
type TextDocumentPositionParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
	Position     Position               `json:"position"`
}

func (s *Server) handleDidClose(msg *jsonrpcMessage) {
	var params struct {
		TextDocument TextDocumentIdentifier `json:"textDocument"`
	}
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		s.logger.Printf("failed to parse didClose params: %v", err)
		return
	}

	s.mu.Lock()
	delete(s.Documents, params.TextDocument.URI)
	s.mu.Unlock()

	// Clear the diagnostics of the closed document.
	s.sendDiagnostics(params.TextDocument.URI, []Diagnostic{})
}

// document returns the open document at uri.
func (s *Server) document(uri string) (*Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.Documents[uri]
	return doc, ok
}

// publishDiagnostics sends the diagnostics of doc to the client.
func (s *Server) publishDiagnostics(doc *Document) {
	diagnostics := s.diagnostics(doc.Err)
	lspDiagnostics := make([]Diagnostic, 0, len(diagnostics))
	for _, d := range diagnostics {
		lspDiagnostics = append(lspDiagnostics, Diagnostic{
			Range:    spanRange(d.Span),
			Severity: diagnosticSeverity(d.Severity),
			Message:  d.Message,
			Code:     string(d.Code),
			Source:   "algc",
		})
	}
	s.sendDiagnostics(doc.URI, lspDiagnostics)
}

func (s *Server) sendDiagnostics(uri string, diagnostics []Diagnostic) {
	params, err := json.Marshal(PublishDiagnosticsParams{URI: uri, Diagnostics: diagnostics})
	if err != nil {
		s.logger.Printf("failed to marshal diagnostics: %v", err)
		return
	}
	notification := &jsonrpcMessage{
		JSONRPC: "2.0",
		Method:  "textDocument/publishDiagnostics",
		Params:  params,
	}
	if err := s.send(notification); err != nil {
		s.logger.Printf("failed to publish diagnostics: %v", err)
	}
}

// diagnostics converts the analysis error of a document, localizing semantic
// messages.
func (s *Server) diagnostics(err error) []diag.Diagnostic {
	if err == nil {
		return nil
	}

	var semErr *types.Error
	if errors.As(err, &semErr) {
		d := semErr.ToDiagnostic()
		d.Message = s.localizer.Semantic(semErr)
		return []diag.Diagnostic{d}
	}

	var parseErrs parser.ErrorList
	if errors.As(err, &parseErrs) {
		out := make([]diag.Diagnostic, 0, len(parseErrs))
		for _, e := range parseErrs {
			out = append(out, e.ToDiagnostic())
		}
		return out
	}

	return []diag.Diagnostic{{
		Stage:    diag.StageTypeCheck,
		Severity: diag.SeverityError,
		Message:  s.localizer.Internal(err),
	}}
}

// PublishDiagnosticsParams is the payload of textDocument/publishDiagnostics.
type PublishDiagnosticsParams struct {
	URI         string       `json:"uri"`
	Diagnostics []Diagnostic `json:"diagnostics"`
}

// Diagnostic represents an LSP diagnostic.
type Diagnostic struct {
	Range    Range  `json:"range"`
	Severity int    `json:"severity"`
	Message  string `json:"message"`
	Code     string `json:"code,omitempty"`
	Source   string `json:"source,omitempty"`
}

type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

// spanRange converts a single-line diag span to a 0-based LSP range.
func spanRange(span diag.Span) Range {
	if !span.IsValid() {
		return Range{}
	}
	start := Position{Line: span.Line - 1, Character: span.Column - 1}
	end := start
	if span.End > span.Start {
		end.Character += span.End - span.Start
	}
	return Range{Start: start, End: end}
}

func diagnosticSeverity(sev diag.Severity) int {
	switch sev {
	case diag.SeverityError:
		return 1 // Error
	case diag.SeverityWarning:
		return 2 // Warning
	case diag.SeverityNote:
		return 3 // Information
	default:
		return 1
	}
}

// uriToPath converts a file:// URI to a file path.
func uriToPath(uri string) string {
	if len(uri) > 7 && uri[:7] == "file://" {
		path := uri[7:]
		// Handle Windows paths
		if len(path) > 0 && path[0] == '/' && len(path) > 2 && path[2] == ':' {
			path = path[1:]
		}
		return path
	}
	return uri
}
