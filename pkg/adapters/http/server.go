package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/commandbar"
	"github.com/aretw0/commandbar/internal/logging"
	"github.com/aretw0/commandbar/pkg/domain"
	"github.com/aretw0/commandbar/pkg/intent"
	"github.com/aretw0/commandbar/pkg/ports"
	"github.com/aretw0/commandbar/pkg/session"
	"github.com/aretw0/commandbar/pkg/toolbar"
	"github.com/go-chi/chi/v5"
)

// Server exposes session trees and their derived toolbars over HTTP.
type Server struct {
	Engine   ports.ToolbarEngine
	Sessions *session.Manager

	metrics http.Handler
	logger  *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithMetrics mounts h (usually promhttp) on GET /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// ToolbarResponse is the body returned by every endpoint that yields a toolbar.
type ToolbarResponse struct {
	SessionID string         `json:"sessionId"`
	Revision  uint64         `json:"revision"`
	Mode      domain.Mode    `json:"mode"`
	Items     []toolbar.Item `json:"items"`
	FarItems  []toolbar.Item `json:"farItems"`
}

// ActivateRequest names the item to activate by key path, e.g. "share/new-public-gist".
type ActivateRequest struct {
	Path string `json:"path"`
}

// ActivateResponse carries the dispatched intent (nil for a no-op) and the resulting toolbar.
type ActivateResponse struct {
	Intent  *intent.Envelope `json:"intent"`
	Toolbar ToolbarResponse  `json:"toolbar"`
}

// NewHandler creates the HTTP handler.
func NewHandler(engine ports.ToolbarEngine, sessions *session.Manager, opts ...Option) http.Handler {
	s := &Server{Engine: engine, Sessions: sessions}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logging.NewNop()
	}

	r := chi.NewRouter()
	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}

	r.Route("/sessions", func(r chi.Router) {
		r.Get("/", s.ListSessions)
		r.Route("/{id}", func(r chi.Router) {
			r.Delete("/", s.DeleteSession)
			r.Get("/toolbar", s.GetToolbar)
			r.Put("/state", s.PutState)
			r.Patch("/state", s.PatchState)
			r.Post("/activate", s.Activate)
			r.Get("/events", s.SubscribeEvents)
		})
	})

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":     "commandbar-http",
		"version": strings.TrimSpace(commandbar.Version),
	})
}

// ListSessions handles GET /sessions.
func (s *Server) ListSessions(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Sessions.List(r.Context())
	if err != nil {
		s.fail(w, "List sessions", err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	s.writeJSON(w, http.StatusOK, ids)
}

// DeleteSession handles DELETE /sessions/{id}.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.Sessions.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.fail(w, "Delete session", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetToolbar handles GET /sessions/{id}/toolbar.
func (s *Server) GetToolbar(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	tree, err := s.Sessions.Load(r.Context(), id)
	if err != nil {
		s.fail(w, "Load session", err)
		return
	}
	s.respondToolbar(w, id, tree)
}

// PutState handles PUT /sessions/{id}/state: the body replaces the session tree.
func (s *Server) PutState(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var tree domain.Tree
	if err := json.NewDecoder(r.Body).Decode(&tree); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("PutState: Invalid request body", "err", err)
		return
	}
	if err := s.Sessions.Save(r.Context(), id, &tree); err != nil {
		s.fail(w, "Save session", err)
		return
	}
	s.respondToolbar(w, id, &tree)
}

// PatchState handles PATCH /sessions/{id}/state: the body is a partial tree merged into the
// current one.
func (s *Server) PatchState(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var patch map[string]any
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("PatchState: Invalid request body", "err", err)
		return
	}
	tree, err := s.Sessions.Patch(r.Context(), id, patch)
	if err != nil {
		s.fail(w, "Patch session", err)
		return
	}
	s.respondToolbar(w, id, tree)
}

// Activate handles POST /sessions/{id}/activate.
func (s *Server) Activate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var body ActivateRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Path == "" {
		http.Error(w, "Invalid request body: path is required", http.StatusBadRequest)
		return
	}

	in, tree, err := s.Sessions.Activate(r.Context(), id, s.Engine, toolbar.ParsePath(body.Path)...)
	if err != nil {
		s.fail(w, "Activate item", err)
		return
	}

	var resp ActivateResponse
	if in != nil {
		env, err := intent.Encode(in)
		if err != nil {
			s.fail(w, "Encode intent", err)
			return
		}
		resp.Intent = &env
	}

	resp.Toolbar, err = s.toolbar(id, tree)
	if err != nil {
		s.fail(w, "Derive toolbar", err)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// SubscribeEvents handles GET /sessions/{id}/events (SSE). Every committed change to the
// session produces a "toolbar" event; ?watch=editor,github restricts events to changes touching
// those slices of the tree.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	id := chi.URLParam(r, "id")
	var watch []string
	if raw := r.URL.Query().Get("watch"); raw != "" {
		for _, field := range strings.Split(raw, ",") {
			watch = append(watch, strings.TrimSpace(field))
		}
	}

	changes := s.Sessions.Subscribe(r.Context())

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()
	s.logger.Info("SSE: Subscribing to session updates", "session_id", id)

	for {
		select {
		case <-r.Context().Done():
			s.logger.Info("SSE: Client disconnected", "session_id", id)
			return
		case change, ok := <-changes:
			if !ok {
				return
			}
			if change.SessionID != id || !touches(change.Diff, watch) {
				continue
			}
			tb, err := s.toolbar(id, change.Tree)
			if err != nil {
				s.logger.Error("SSE: Toolbar derivation failed", "session_id", id, "err", err)
				continue
			}
			data, err := json.Marshal(tb)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: toolbar\ndata: %s\n\n", data)
			flusher.Flush()
		}
	}
}

func touches(diff *domain.TreeDiff, watch []string) bool {
	if len(watch) == 0 {
		return true
	}
	if diff == nil {
		return false
	}
	for _, changed := range diff.Slices() {
		for _, field := range watch {
			if changed == field {
				return true
			}
		}
	}
	return false
}

func (s *Server) toolbar(id string, tree *domain.Tree) (ToolbarResponse, error) {
	tb, err := s.Engine.Toolbar(tree)
	if err != nil {
		return ToolbarResponse{}, err
	}
	mode, err := s.Engine.Mode(tree)
	if err != nil {
		return ToolbarResponse{}, err
	}
	return ToolbarResponse{
		SessionID: id,
		Revision:  tree.Revision,
		Mode:      mode,
		Items:     orEmpty(tb.Items),
		FarItems:  orEmpty(tb.FarItems),
	}, nil
}

func (s *Server) respondToolbar(w http.ResponseWriter, id string, tree *domain.Tree) {
	resp, err := s.toolbar(id, tree)
	if err != nil {
		s.fail(w, "Derive toolbar", err)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error(op+" failed", "err", err)
	} else {
		s.logger.Warn(op+" rejected", "err", err)
	}
	http.Error(w, fmt.Sprintf("%s: %v", op, err), status)
}

func statusFor(err error) int {
	var invalid *domain.InvalidModeError
	switch {
	case errors.Is(err, domain.ErrSessionNotFound), errors.Is(err, domain.ErrItemNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrNoAction):
		return http.StatusConflict
	case errors.As(err, &invalid):
		return http.StatusInternalServerError
	case errors.Is(err, domain.ErrInvalidTree), errors.Is(err, domain.ErrInvalidPatch):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Response encode failed", "err", err)
	}
}

func orEmpty(items []toolbar.Item) []toolbar.Item {
	if items == nil {
		return []toolbar.Item{}
	}
	return items
}
