// Package api exposes the HTTP interface for the catalog service.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dannyfullextent/explorer/internal/catalog"
	"github.com/dannyfullextent/explorer/internal/config"
	"github.com/dannyfullextent/explorer/internal/keywords"
	"github.com/dannyfullextent/explorer/internal/metrics"
)

// CatalogBuilder produces a fresh catalog for each request.
type CatalogBuilder interface {
	BuildCatalog(ctx context.Context) (catalog.Catalog, error)
}

// CachePurger empties the service-detail cache.
type CachePurger interface {
	Purge() int
}

// Server wires HTTP handlers to the catalog builder and cache.
type Server struct {
	router  chi.Router
	builder CatalogBuilder
	purger  CachePurger
	cfg     config.Config
	logger  *zap.Logger
}

// NewServer constructs a Server with middleware and routes.
func NewServer(builder CatalogBuilder, purger CachePurger, cfg config.Config, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	metrics.Init()
	s := &Server{
		builder: builder,
		purger:  purger,
		cfg:     cfg,
		logger:  logger,
	}
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(logger))
	r.Use(recoverMiddleware(logger))
	r.Use(timeoutMiddleware(cfg.ServerTimeout()))
	if cfg.Auth.Enabled {
		r.Use(apiKeyMiddleware(cfg.Auth.APIKey))
	}

	r.Get("/healthz", s.healthz)
	r.Get("/readyz", s.readyz)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Get("/", s.catalogPage)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/catalog", s.getCatalog)
		r.Get("/services", s.getServices)
		r.Get("/keywords", s.getKeywords)
		r.Post("/cache/purge", s.purgeCache)
	})

	s.router = r
	return s
}

// Handler returns the Router for use with http.Server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) readyz(w http.ResponseWriter, _ *http.Request) {
	// The portal is probed lazily; nothing to check until a catalog is requested.
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) getCatalog(w http.ResponseWriter, r *http.Request) {
	cat, err := s.builder.BuildCatalog(r.Context())
	if err != nil {
		s.writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, cat)
}

func (s *Server) getServices(w http.ResponseWriter, r *http.Request) {
	cat, err := s.builder.BuildCatalog(r.Context())
	if err != nil {
		s.writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"services": cat.Services})
}

func (s *Server) getKeywords(w http.ResponseWriter, r *http.Request) {
	cat, err := s.builder.BuildCatalog(r.Context())
	if err != nil {
		s.writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	counts := make(map[string]int, len(cat.Index.Keywords))
	for keyword, entities := range cat.Index.Keywords {
		counts[keyword] = len(entities)
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"keywords": counts})
}

func (s *Server) purgeCache(w http.ResponseWriter, _ *http.Request) {
	dropped := s.purger.Purge()
	s.writeJSON(w, http.StatusOK, map[string]int{"dropped": dropped})
}

func (s *Server) catalogPage(w http.ResponseWriter, r *http.Request) {
	cat, err := s.builder.BuildCatalog(r.Context())
	if err != nil {
		s.writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	rows := make([]pageRow, 0, len(cat.Services))
	for _, ent := range cat.Services {
		rows = append(rows, pageRow{
			Entity: ent,
			Tags:   keywords.MatchRow(ent, cat.Index.Keywords),
		})
	}
	s.renderPage(w, pageData{
		Rows:        rows,
		Index:       cat.Index,
		GeneratedAt: cat.GeneratedAt,
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("write JSON failed", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := uuid.NewString()
		ctx := context.WithValue(r.Context(), requestIDKey{}, reqID)
		w.Header().Set("X-Request-ID", reqID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func loggingMiddleware(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := &responseWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(ww, r)
			elapsed := time.Since(start)
			metrics.ObserveHTTPRequest(r.Method, r.URL.Path, ww.status, elapsed)
			logger.Info("request completed",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.status),
				zap.Int64("duration_ms", elapsed.Milliseconds()),
			)
		})
	}
}

func recoverMiddleware(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error("panic recovered", zap.Any("error", rec))
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_, _ = w.Write([]byte(`{"error":"internal server error"}`))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

func timeoutMiddleware(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.TimeoutHandler(next, d, "request timed out")
	}
}

func apiKeyMiddleware(expected string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get("X-API-Key")
			if key == "" {
				key = r.URL.Query().Get("api_key")
			}
			if key != expected {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				_, _ = w.Write([]byte(`{"error":"unauthorized"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

type requestIDKey struct{}
