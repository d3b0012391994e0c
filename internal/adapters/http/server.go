// Package http serves the tour as a web page with live widgets.
package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/aretw0/terminaltour/internal/logging"
	"github.com/aretw0/terminaltour/pkg/domain"
	"github.com/aretw0/terminaltour/pkg/observability"
	"github.com/aretw0/terminaltour/pkg/playback"
	"github.com/aretw0/terminaltour/pkg/ports"
	"github.com/aretw0/terminaltour/pkg/session"
	"github.com/aretw0/terminaltour/pkg/shell"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server serves one page and the scripts it references.
type Server struct {
	Page     domain.Page
	Scripts  ports.ScriptLoader
	Sessions *session.Manager
	Metrics  *observability.Metrics

	spec        *openapi3.T
	version     string
	maxInput    int
	watcher     ports.Watchable
	logger      *slog.Logger
	sessionOpts []session.Option
}

// Option configures the Server.
type Option func(*Server)

// WithLogger configures a logger for the Server and its widget sessions.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithVersion sets the application version reported by /info.
func WithVersion(v string) Option {
	return func(s *Server) {
		s.version = strings.TrimSpace(v)
	}
}

// WithMaxInput bounds the shell input accepted by /api/shell.
func WithMaxInput(n int) Option {
	return func(s *Server) {
		s.maxInput = n
	}
}

// WithWatcher enables /api/events reload notifications.
func WithWatcher(w ports.Watchable) Option {
	return func(s *Server) {
		s.watcher = w
	}
}

// WithSessionOptions configures the widget session manager.
func WithSessionOptions(opts ...session.Option) Option {
	return func(s *Server) {
		s.sessionOpts = append(s.sessionOpts, opts...)
	}
}

// NewServer creates a Server with its own metrics and session manager.
func NewServer(page domain.Page, scripts ports.ScriptLoader, opts ...Option) (*Server, error) {
	spec, err := LoadSpec()
	if err != nil {
		return nil, err
	}
	s := &Server{
		Page:     page,
		Scripts:  scripts,
		Metrics:  observability.NewMetrics(),
		spec:     spec,
		version:  "dev",
		maxInput: shell.DefaultMaxInput,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	m := s.Metrics
	base := []session.Option{
		session.WithLogger(s.logger),
		session.WithCallbacks(m.Sessions.Inc, m.Sessions.Dec),
		session.WithPlaybackOptions(playback.WithHooks(m.PlaybackHooks())),
	}
	s.Sessions = session.NewManager(append(base, s.sessionOpts...)...)
	return s, nil
}

// Close unmounts every widget.
func (s *Server) Close() {
	s.Sessions.Shutdown()
}

// Handler returns the chi router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.instrument)
	r.Use(enableCORS)

	r.Get("/", s.GetDocument)
	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/openapi.yaml", s.GetSpec)
	r.Method(http.MethodGet, "/metrics", s.Metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/page", s.GetPage)
		r.Get("/scripts/{id}", s.GetScript)
		r.Get("/events", s.SubscribeReloads)
		r.Get("/widgets/{section}/events", s.SubscribeWidget)
		r.Post("/sessions/{id}/{action}", s.ApplyAction)
		r.Post("/shell", s.RunShell)
	})
	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// instrument records latency by route pattern, so path parameters do not explode label cardinality.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		s.Metrics.ObserveRequest(route, strconv.Itoa(status), time.Since(start))
	})
}

// GetPage handles GET /api/page.
func (s *Server) GetPage(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Page)
}

// GetScript handles GET /api/scripts/{id}.
func (s *Server) GetScript(w http.ResponseWriter, r *http.Request) {
	script, err := s.Scripts.GetScript(chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, script)
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if s.spec.Info != nil {
		apiVersion = s.spec.Info.Version
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"app":         "terminaltour-http",
		"version":     s.version,
		"api_version": apiVersion,
	})
}

// GetSpec handles GET /openapi.yaml.
func (s *Server) GetSpec(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/yaml")
	w.Write(rawSpec)
}

// fail maps domain errors to status codes.
func (s *Server) fail(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrScriptNotFound),
		errors.Is(err, domain.ErrSectionNotFound),
		errors.Is(err, domain.ErrSessionNotFound),
		errors.Is(err, domain.ErrDisposed):
		status = http.StatusNotFound
	case errors.Is(err, session.ErrUnknownAction):
		status = http.StatusBadRequest
	case errors.Is(err, session.ErrScriptNotAllowed):
		status = http.StatusConflict
	case errors.Is(err, session.ErrClosed):
		status = http.StatusServiceUnavailable
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	}
	http.Error(w, err.Error(), status)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
