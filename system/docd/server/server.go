package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/signadot/space/system/docd/storage"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Spec holds the runtime specification for the server.
// Config contains the serializable settings loaded from a file.
type Spec struct {
	Config *Config
	// Store overrides the backend named by Config.
	Store storage.Store
	Log   *slog.Logger
	// Registry receives the server metrics. A fresh registry is used when
	// nil.
	Registry *prometheus.Registry
}

// Server serves documents from a store.
type Server struct {
	Spec Spec

	// Hub delivers committed changes to watchers.
	Hub *WatchHub

	locks   keyLocks
	metrics *metrics
	router  chi.Router
}

// New creates a server. The store is opened from spec.Config unless
// spec.Store is set.
func New(spec Spec) (*Server, error) {
	if spec.Log == nil {
		spec.Log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slogLevel(),
		}))
	}
	if spec.Config == nil {
		spec.Config = DefaultConfig()
	}
	if spec.Store == nil {
		store, err := spec.Config.OpenStore()
		if err != nil {
			return nil, err
		}
		spec.Store = store
	}
	if spec.Registry == nil {
		spec.Registry = prometheus.NewRegistry()
	}
	m, err := newMetrics(spec.Registry)
	if err != nil {
		return nil, err
	}
	s := &Server{
		Spec:    spec,
		Hub:     NewWatchHub(),
		metrics: m,
	}
	s.router = s.routes()
	return s, nil
}

func slogLevel() slog.Level {
	if os.Getenv("DEBUG") != "" {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.instrument)

	r.Get("/metrics", promhttp.HandlerFor(s.Spec.Registry, promhttp.HandlerOpts{}).ServeHTTP)
	r.Route("/docs", func(r chi.Router) {
		r.Get("/", s.handleList)
		r.Route("/{key}", func(r chi.Router) {
			r.Get("/", s.handleGet)
			r.Put("/", s.handlePut)
			r.Patch("/", s.handlePatch)
			r.Delete("/", s.handleDelete)
			r.Post("/order", s.handleOrder)
			r.Get("/diff/{other}", s.handleDiff)
			r.Get("/watch", s.handleWatch)
		})
	})
	return r
}

// Handler returns the HTTP handler serving all routes.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on the configured address until ctx is done, then
// shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.Spec.Config.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		s.Spec.Log.Info("listening", "addr", srv.Addr)
		errc <- srv.ListenAndServe()
	}()
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.Hub.Close()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
