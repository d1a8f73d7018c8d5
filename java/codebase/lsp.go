package codebase

import (
	"context"
	"os"
	"path/filepath"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/dhamidi/javacomplete/java/completion"
)

const lsName = "javacomplete"

var tracer = otel.Tracer("github.com/dhamidi/javacomplete/java/codebase")

type LSPServer struct {
	codebase *Codebase
	handler  protocol.Handler
	server   *server.Server
	version  string
	options  completion.Options

	watch  bool
	stop   context.CancelFunc
	jdkSrc string
}

type LSPConfig struct {
	Version string
	Options completion.Options
	// Watch follows changes to files the editor has not opened.
	Watch bool
	// JDKSources is a src.zip whose sources are indexed after startup.
	JDKSources string
}

func NewLSPServer(cfg LSPConfig) *LSPServer {
	ls := &LSPServer{
		version: cfg.Version,
		options: cfg.Options,
		watch:   cfg.Watch,
		jdkSrc:  cfg.JDKSources,
	}

	ls.handler = protocol.Handler{
		Initialize:             ls.initialize,
		Initialized:            ls.initialized,
		Shutdown:               ls.shutdown,
		SetTrace:               ls.setTrace,
		TextDocumentDidOpen:    ls.textDocumentDidOpen,
		TextDocumentDidChange:  ls.textDocumentDidChange,
		TextDocumentDidClose:   ls.textDocumentDidClose,
		TextDocumentDidSave:    ls.textDocumentDidSave,
		TextDocumentCompletion: ls.textDocumentCompletion,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *LSPServer) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *LSPServer) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	rootDir := "."
	if params.RootPath != nil && *params.RootPath != "" {
		rootDir = *params.RootPath
	} else if params.RootURI != nil && *params.RootURI != "" {
		if path, err := uriToPath(*params.RootURI); err == nil {
			rootDir = path
		}
	}

	ls.codebase = New(rootDir)

	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    intPtr(int(protocol.TextDocumentSyncKindFull)),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	capabilities.CompletionProvider = &protocol.CompletionOptions{
		TriggerCharacters: []string{".", "@", ":", "("},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *LSPServer) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	bg, stop := context.WithCancel(context.Background())
	ls.stop = stop

	if err := ls.codebase.ScanAll(bg); err != nil {
		log.Warningf("scan: %s", err)
	}
	if ls.jdkSrc != "" {
		ls.scanJDKSources(ls.jdkSrc)
	}
	if ls.watch {
		w, err := NewWatcher(ls.codebase)
		if err != nil {
			log.Errorf("%s", err)
			return nil
		}
		if err := w.AddRecursive(ls.codebase.RootDir()); err != nil {
			log.Warningf("%s", err)
		}
		go func() {
			if err := w.Watch(bg); err != nil {
				log.Errorf("%s", err)
			}
		}()
	}
	return nil
}

func (ls *LSPServer) scanJDKSources(path string) {
	switch filepath.Ext(path) {
	case ".zip", ".jar":
		if err := ls.codebase.Index().ScanArchive(path); err != nil {
			log.Warningf("%s", err)
		}
	case ".java":
		if err := ls.codebase.ScanFile(path); err != nil {
			log.Warningf("%s", err)
		}
	default:
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			if err := ls.codebase.Index().ScanDir(context.Background(), path); err != nil {
				log.Warningf("%s", err)
			}
		}
	}
}

func (ls *LSPServer) shutdown(ctx *glsp.Context) error {
	if ls.stop != nil {
		ls.stop()
	}
	return nil
}

func (ls *LSPServer) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *LSPServer) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	ls.codebase.UpdateFile(path, []byte(params.TextDocument.Text))
	return nil
}

func (ls *LSPServer) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if len(params.ContentChanges) > 0 {
		change := params.ContentChanges[len(params.ContentChanges)-1]
		if textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			ls.codebase.UpdateFile(path, []byte(textChange.Text))
		}
	}
	return nil
}

func (ls *LSPServer) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	ls.codebase.CloseFile(path)
	return nil
}

func (ls *LSPServer) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if params.Text != nil {
		ls.codebase.UpdateFile(path, []byte(*params.Text))
	}
	return nil
}

func (ls *LSPServer) textDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (any, error) {
	_, span := tracer.Start(context.Background(), "textDocument/completion")
	defer span.End()

	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, nil
	}
	text, err := ls.codebase.Document(path)
	if err != nil {
		span.RecordError(err)
		return nil, nil
	}
	caret := offsetOf(text, params.Position)
	span.SetAttributes(
		attribute.String("file", path),
		attribute.Int("caret", caret),
	)

	res, err := ls.codebase.Complete(path, caret, ls.options, nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if res == nil {
		return nil, nil
	}
	items := ls.render(text, res)
	span.SetAttributes(
		attribute.Int("candidates", len(items)),
		attribute.Bool("incomplete", res.HasAdditionalItems),
	)
	return protocol.CompletionList{IsIncomplete: res.HasAdditionalItems, Items: items}, nil
}

func (ls *LSPServer) render(text []byte, res *completion.Result) []protocol.CompletionItem {
	items := completion.RenderAll[protocol.CompletionItem](newLSPItems(text, res), res.Candidates)
	if items == nil {
		items = []protocol.CompletionItem{}
	}
	return items
}

func boolPtr(b bool) *bool {
	return &b
}

func intPtr(i int) *protocol.TextDocumentSyncKind {
	v := protocol.TextDocumentSyncKind(i)
	return &v
}
