// Package server exposes scene builds over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/scene3d/internal/fetch"
	"github.com/Faultbox/scene3d/internal/preview"
	"github.com/Faultbox/scene3d/internal/scene"
	"github.com/Faultbox/scene3d/internal/store"
	"github.com/Faultbox/scene3d/pkg/scenefile"
)

// ErrNoLoader is returned by New without a loader.
var ErrNoLoader = errors.New("scene loader is required")

// Config holds the server dependencies.
type Config struct {
	Loader   *scene.Loader
	Renderer *preview.Renderer

	// Defaults are the pipeline settings before query overrides.
	Defaults scene.Settings
	Logger   *zap.Logger
}

// Server handles scene requests.
type Server struct {
	loader   *scene.Loader
	renderer *preview.Renderer
	defaults scene.Settings
	log      *zap.Logger
}

// New creates a server.
func New(cfg Config) (*Server, error) {
	if cfg.Loader == nil {
		return nil, ErrNoLoader
	}
	s := &Server{
		loader:   cfg.Loader,
		renderer: cfg.Renderer,
		defaults: cfg.Defaults,
		log:      cfg.Logger,
	}
	if s.renderer == nil {
		s.renderer = preview.NewRenderer(0)
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	return s, nil
}

// Routes returns the HTTP handler.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/scene", s.handleScene)
	mux.HandleFunc("GET /v1/scene/preview.png", s.handlePreview)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	return mux
}

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("Listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// options applies the walls, inset, grid and mode query parameters on top of
// the defaults.
func (s *Server) options(r *http.Request) scene.Options {
	q := r.URL.Query()
	settings := s.defaults
	if v := q.Get("walls"); v != "" {
		settings.WallAlignment = v
	}
	if v := q.Get("inset"); v != "" {
		settings.FloorInset = v
	}
	if v := q.Get("mode"); v != "" {
		settings.Mode = v
	}
	if v := q.Get("grid"); v != "" {
		grid, err := strconv.ParseBool(v)
		if err != nil {
			s.log.Warn("Unrecognized grid flag, using default",
				zap.String("value", v),
				zap.Bool("default", settings.GridOverlay))
		} else {
			settings.GridOverlay = grid
		}
	}
	return scene.Resolve(settings, s.log)
}

func (s *Server) load(w http.ResponseWriter, r *http.Request) (*scene.Scene, bool) {
	src := r.URL.Query().Get("src")
	if src == "" {
		writeError(w, http.StatusBadRequest, "missing src parameter")
		return nil, false
	}

	sc, err := s.loader.Load(r.Context(), src, s.options(r))
	if err != nil {
		status := statusFor(err)
		s.log.Warn("Scene load failed",
			zap.String("src", src),
			zap.Int("status", status),
			zap.Error(err))
		writeError(w, status, publicMessage(err, status))
		return nil, false
	}
	return sc, true
}

func (s *Server) handleScene(w http.ResponseWriter, r *http.Request) {
	sc, ok := s.load(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sc)
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	sc, ok := s.load(w, r)
	if !ok {
		return
	}
	img, err := s.renderer.Render(sc)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	w.Header().Set("Content-Type", "image/png")
	if err := encodePNG(w, img); err != nil {
		s.log.Warn("Preview write failed", zap.Error(err))
	}
}

// documentErrors are the scene document failures reported as 422.
var documentErrors = []error{
	scenefile.ErrMissingCellMeters,
	scenefile.ErrInvalidUnits,
	scenefile.ErrMissingAxes,
	scenefile.ErrUnsupportedAxes,
	scenefile.ErrUnsupportedSchema,
	scenefile.ErrMalformedDocument,
}

// statusFor maps load errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, fetch.ErrOutsideRoot), errors.Is(err, fetch.ErrEmptyRef):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrNotFound), errors.Is(err, os.ErrNotExist):
		return http.StatusNotFound
	case errors.Is(err, scene.ErrFetch):
		return http.StatusBadGateway
	}
	for _, target := range documentErrors {
		if errors.Is(err, target) {
			return http.StatusUnprocessableEntity
		}
	}
	return http.StatusInternalServerError
}

// publicMessage is the error text sent to clients. Only the sentinel is
// exposed; wrapped details such as decoder output or paths stay in the log.
func publicMessage(err error, status int) string {
	switch {
	case errors.Is(err, fetch.ErrOutsideRoot):
		return fetch.ErrOutsideRoot.Error()
	case status == http.StatusUnprocessableEntity:
		for _, target := range documentErrors {
			if errors.Is(err, target) {
				return target.Error()
			}
		}
	}
	return http.StatusText(status)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
