package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/commandbar"
	"github.com/aretw0/commandbar/internal/logging"
	"github.com/aretw0/commandbar/pkg/domain"
	"github.com/aretw0/commandbar/pkg/intent"
	"github.com/aretw0/commandbar/pkg/ports"
	"github.com/aretw0/commandbar/pkg/session"
	"github.com/aretw0/commandbar/pkg/toolbar"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	sessionsURI        = "commandbar://sessions"
	toolbarURITemplate = "commandbar://sessions/{id}/toolbar"
)

// ToolbarResult is the structured output of every tool yielding a toolbar.
type ToolbarResult struct {
	SessionID string         `json:"session_id" jsonschema_description:"The session the toolbar was derived for"`
	Revision  uint64         `json:"revision" jsonschema_description:"Revision of the state tree"`
	Mode      domain.Mode    `json:"mode" jsonschema_description:"Toolbar variant: normal, settings or null-document"`
	Items     []toolbar.Item `json:"items" jsonschema_description:"Primary toolbar items"`
	FarItems  []toolbar.Item `json:"far_items" jsonschema_description:"Far-side toolbar items"`
}

// ActivateResult reports the dispatched intent and the toolbar after it was reduced.
type ActivateResult struct {
	Intent  *intent.Envelope `json:"intent,omitempty" jsonschema_description:"The dispatched intent, absent for a no-op"`
	Toolbar ToolbarResult    `json:"toolbar" jsonschema_description:"The toolbar after the intent was applied"`
}

// GetToolbarArgs are the arguments of get_toolbar.
type GetToolbarArgs struct {
	SessionID string `json:"session_id"`
}

// ActivateArgs are the arguments of activate_item.
type ActivateArgs struct {
	SessionID string `json:"session_id"`
	Path      string `json:"path"`
}

// PatchArgs are the arguments of patch_state.
type PatchArgs struct {
	SessionID string `json:"session_id"`
	Patch     string `json:"patch"`
}

// Server exposes the toolbar of stored sessions as an MCP server.
type Server struct {
	engine    ports.ToolbarEngine
	sessions  *session.Manager
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(engine ports.ToolbarEngine, sessions *session.Manager, opts ...Option) *Server {
	s := &Server{
		engine:    engine,
		sessions:  sessions,
		mcpServer: server.NewMCPServer("commandbar-mcp", strings.TrimSpace(commandbar.Version)),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logging.NewNop()
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying server, e.g. for in-process clients.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves the MCP SSE transport on addr until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, addr, baseURL string) error {
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("get_toolbar",
		mcp.WithDescription("Derive the toolbar items of a stored session."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session identifier")),
		mcp.WithOutputSchema[ToolbarResult](),
	), mcp.NewStructuredToolHandler(s.handleGetToolbar))

	s.mcpServer.AddTool(mcp.NewTool("activate_item",
		mcp.WithDescription("Activate a toolbar item by key path (e.g. share/new-public-gist) and apply the resulting intent."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session identifier")),
		mcp.WithString("path", mcp.Required(), mcp.Description("Slash separated item keys")),
		mcp.WithOutputSchema[ActivateResult](),
	), mcp.NewStructuredToolHandler(s.handleActivate))

	s.mcpServer.AddTool(mcp.NewTool("patch_state",
		mcp.WithDescription("Merge a partial state tree into a session, starting it if needed."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session identifier")),
		mcp.WithString("patch", mcp.Required(), mcp.Description(`JSON object, e.g. {"screen": {"width": 320}}`)),
		mcp.WithOutputSchema[ToolbarResult](),
	), mcp.NewStructuredToolHandler(s.handlePatch))

	s.mcpServer.AddTool(mcp.NewTool("list_sessions",
		mcp.WithDescription("List stored session identifiers."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ids, err := s.sessions.List(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("list failed: %v", err)), nil
		}
		data, _ := json.Marshal(ids)
		return mcp.NewToolResultText(string(data)), nil
	})
}

func (s *Server) handleGetToolbar(ctx context.Context, request mcp.CallToolRequest, args GetToolbarArgs) (ToolbarResult, error) {
	tree, err := s.sessions.Load(ctx, args.SessionID)
	if err != nil {
		return ToolbarResult{}, fmt.Errorf("load failed: %w", err)
	}
	return s.toolbar(args.SessionID, tree)
}

func (s *Server) handleActivate(ctx context.Context, request mcp.CallToolRequest, args ActivateArgs) (ActivateResult, error) {
	in, tree, err := s.sessions.Activate(ctx, args.SessionID, s.engine, toolbar.ParsePath(args.Path)...)
	if err != nil {
		return ActivateResult{}, fmt.Errorf("activate failed: %w", err)
	}

	var res ActivateResult
	if in != nil {
		env, err := intent.Encode(in)
		if err != nil {
			return ActivateResult{}, err
		}
		res.Intent = &env
		s.logger.Debug("MCP: Item activated", "session_id", args.SessionID, "path", args.Path, "intent", in.Type())
	}

	res.Toolbar, err = s.toolbar(args.SessionID, tree)
	return res, err
}

func (s *Server) handlePatch(ctx context.Context, request mcp.CallToolRequest, args PatchArgs) (ToolbarResult, error) {
	var patch map[string]any
	if err := json.Unmarshal([]byte(args.Patch), &patch); err != nil {
		return ToolbarResult{}, fmt.Errorf("%w: %w", domain.ErrInvalidPatch, err)
	}
	tree, err := s.sessions.Patch(ctx, args.SessionID, patch)
	if err != nil {
		return ToolbarResult{}, fmt.Errorf("patch failed: %w", err)
	}
	return s.toolbar(args.SessionID, tree)
}

func (s *Server) toolbar(id string, tree *domain.Tree) (ToolbarResult, error) {
	tb, err := s.engine.Toolbar(tree)
	if err != nil {
		return ToolbarResult{}, err
	}
	mode, err := s.engine.Mode(tree)
	if err != nil {
		return ToolbarResult{}, err
	}
	return ToolbarResult{
		SessionID: id,
		Revision:  tree.Revision,
		Mode:      mode,
		Items:     tb.Items,
		FarItems:  tb.FarItems,
	}, nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(sessionsURI, "Stored sessions",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		ids, err := s.sessions.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list sessions: %w", err)
		}
		data, _ := json.Marshal(ids)
		return []mcp.ResourceContents{
			mcp.TextResourceContents{URI: sessionsURI, MIMEType: "application/json", Text: string(data)},
		}, nil
	})

	s.mcpServer.AddResourceTemplate(mcp.NewResourceTemplate(toolbarURITemplate, "Session toolbar",
		mcp.WithTemplateMIMEType("application/json"),
	), s.readToolbarResource)
}

func (s *Server) readToolbarResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uri := request.Params.URI
	id, ok := sessionFromURI(uri)
	if !ok {
		return nil, fmt.Errorf("unexpected resource uri %q", uri)
	}
	tree, err := s.sessions.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	res, err := s.toolbar(id, tree)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(res)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{URI: uri, MIMEType: "application/json", Text: string(data)},
	}, nil
}

func sessionFromURI(uri string) (string, bool) {
	rest, ok := strings.CutPrefix(uri, sessionsURI+"/")
	if !ok {
		return "", false
	}
	id, ok := strings.CutSuffix(rest, "/toolbar")
	if !ok || id == "" || strings.Contains(id, "/") {
		return "", false
	}
	return id, true
}
