// Package ingress exposes the render dispatcher over HTTP.
package ingress

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/stuxvii/lsd-thumbnail-server/engine"
	"github.com/stuxvii/lsd-thumbnail-server/engine/core"
	"github.com/stuxvii/lsd-thumbnail-server/engine/renderer/metadata"
)

// Renderer queues a render and waits for the encoded image.
type Renderer interface {
	Submit(ctx context.Context, kind metadata.JobKind, items []metadata.EquippedItem, colors *metadata.ColorProfile) (string, error)
	Health() engine.Health
}

// Repository resolves ids to render inputs.
type Repository interface {
	FetchAvatar(ctx context.Context, userID int32) (metadata.ColorProfile, []int32, error)
	FetchItems(ctx context.Context, ids []int32) ([]metadata.EquippedItem, error)
}

// Overlay returns the diagnostic overlay as PNG bytes.
type Overlay func() ([]byte, error)

type Server struct {
	renderer Renderer
	repo     Repository
	overlay  Overlay
	mux      *http.ServeMux
}

func NewServer(renderer Renderer, repo Repository, overlay Overlay) *Server {
	s := &Server{
		renderer: renderer,
		repo:     repo,
		overlay:  overlay,
		mux:      http.NewServeMux(),
	}
	s.mux.HandleFunc("/", s.handleRender)
	s.mux.HandleFunc("GET /healthz", s.handleHealth)
	s.mux.HandleFunc("GET /debug/overlay", s.handleOverlay)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() {
		core.LogInfo("listening on %s", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func text(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	if body != "" {
		_, _ = w.Write([]byte(body))
	}
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" || r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	core.LogInfo("incoming from %s", r.RemoteAddr)

	if err := r.ParseForm(); err != nil {
		text(w, http.StatusBadRequest, "")
		return
	}
	if !r.PostForm.Has("id") || !r.PostForm.Has("job_type") {
		text(w, http.StatusBadRequest, "")
		return
	}
	jobType, err := strconv.ParseInt(r.PostForm.Get("job_type"), 10, 32)
	if err != nil {
		text(w, http.StatusBadRequest, "Invalid Number")
		return
	}
	id64, err := strconv.ParseInt(r.PostForm.Get("id"), 10, 32)
	if err != nil {
		text(w, http.StatusBadRequest, "Invalid Number")
		return
	}
	id := int32(id64)
	ctx := r.Context()

	core.LogInfo("job type %d, id %d: requesting render", jobType, id)

	switch jobType {
	case int64(metadata.JobKindAvatar):
		s.renderAvatar(ctx, w, id)
	case int64(metadata.JobKindThumbnail):
		s.renderThumbnail(ctx, w, id)
	default:
		core.LogWarn("rejected job type %d", jobType)
		text(w, http.StatusBadRequest, "Invalid job type")
	}
}

func (s *Server) renderAvatar(ctx context.Context, w http.ResponseWriter, userID int32) {
	colors, itemIDs, err := s.repo.FetchAvatar(ctx, userID)
	if err != nil {
		core.LogError("db error for user %d: %v", userID, err)
		text(w, http.StatusNotFound, "User not found")
		return
	}
	items, err := s.repo.FetchItems(ctx, itemIDs)
	if err != nil {
		core.LogError("failed to fetch items for user %d: %v", userID, err)
		items = nil
	}
	s.submit(ctx, w, metadata.JobKindAvatar, items, &colors)
}

func (s *Server) renderThumbnail(ctx context.Context, w http.ResponseWriter, itemID int32) {
	items, err := s.repo.FetchItems(ctx, []int32{itemID})
	if err != nil {
		core.LogError("failed to fetch item %d: %v", itemID, err)
		items = nil
	}
	s.submit(ctx, w, metadata.JobKindThumbnail, items, nil)
}

func (s *Server) submit(ctx context.Context, w http.ResponseWriter, kind metadata.JobKind, items []metadata.EquippedItem, colors *metadata.ColorProfile) {
	result, err := s.renderer.Submit(ctx, kind, items, colors)
	if err != nil {
		s.renderError(w, err)
		return
	}
	text(w, http.StatusOK, result)
}

func (s *Server) renderError(w http.ResponseWriter, err error) {
	core.LogError("render failed: %v", err)
	switch {
	case errors.Is(err, core.ErrEmptyThumbnail):
		text(w, http.StatusNotFound, "Item not found")
	case errors.Is(err, core.ErrRenderTimeout):
		text(w, http.StatusGatewayTimeout, "Render Timed Out")
	case errors.Is(err, core.ErrEngineStopped):
		text(w, http.StatusInternalServerError, "Fatal error, server shutting down.")
	default:
		text(w, http.StatusInternalServerError, "Render Failed")
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.renderer.Health()); err != nil {
		core.LogError("failed to write health: %v", err)
	}
}

func (s *Server) handleOverlay(w http.ResponseWriter, r *http.Request) {
	if s.overlay == nil {
		http.NotFound(w, r)
		return
	}
	data, err := s.overlay()
	if err != nil {
		core.LogError("overlay: %v", err)
		text(w, http.StatusInternalServerError, "")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(data)
}
