// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the course search over HTTP.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/courses-api/internal/search"
	"github.com/pdiddy/courses-api/pkg/types"
)

// shutdownGrace bounds how long in-flight requests may run after a stop
// signal.
const shutdownGrace = 5 * time.Second

// Server handles the HTTP surface: parameter validation, aggregation
// dispatch and envelope serialization.
type Server struct {
	cfg       types.ServerConfig
	searchCfg types.SearchConfig
	providers []search.Provider
	log       *logrus.Logger
}

// New builds a Server. Configuration and providers are fixed for the
// server's lifetime; nothing is re-read per request.
func New(cfg types.ServerConfig, searchCfg types.SearchConfig, providers []search.Provider, log *logrus.Logger) *Server {
	return &Server{cfg: cfg, searchCfg: searchCfg, providers: providers, log: log}
}

// Handler returns the routed handler wrapped in CORS and request logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/resources/courses", s.handleCourses)
	mux.HandleFunc("/", s.handleRoot)
	return CORS(RequestLogger(s.log)(mux))
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port),
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("addr", srv.Addr).Info("http.listen")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info("http.shutdown")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return <-errCh
}

// handleCourses implements GET /resources/courses. Invalid parameters are a
// 400 before any provider is dispatched; provider failures never change the
// status, the degraded envelope is still a 200.
func (s *Server) handleCourses(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	query, ok := s.parseQuery(w, r)
	if !ok {
		return
	}

	out, err := search.Search(r.Context(), query, s.providers, s.searchCfg, warnWriter{s.log})
	if err != nil {
		// Only reachable through a bug: the query was validated above and
		// providers are fixed at startup.
		s.log.WithError(err).Error("search failed")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, out.Response)
}

// parseQuery validates the query parameters, writing a 400 response and
// returning ok=false on the first violation.
func (s *Server) parseQuery(w http.ResponseWriter, r *http.Request) (search.Query, bool) {
	params := r.URL.Query()

	text := strings.TrimSpace(params.Get("q"))
	if text == "" {
		writeError(w, http.StatusBadRequest, "search query cannot be empty")
		return search.Query{}, false
	}

	lang := params.Get("lang")
	if lang == "" {
		lang = "en"
	}
	if !search.SupportedLanguages[lang] {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unsupported language %q (supported: en, es)", lang))
		return search.Query{}, false
	}

	limit := s.searchCfg.DefaultItems
	if raw := params.Get("num_items"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("num_items must be an integer, got %q", raw))
			return search.Query{}, false
		}
		if n < 1 || n > s.searchCfg.MaxItems {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("num_items must be between 1 and %d, got %d", s.searchCfg.MaxItems, n))
			return search.Query{}, false
		}
		limit = n
	}

	return search.Query{Text: text, Language: lang, Limit: limit}, true
}

// handleRoot serves the welcome message on "/" and a JSON 404 elsewhere.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Welcome to the Free Courses API",
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError emits the JSON error body shape clients render: {"detail": msg}.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"detail": msg})
}

// warnWriter adapts the aggregator's warning stream onto logrus.
type warnWriter struct {
	log *logrus.Logger
}

func (w warnWriter) Write(p []byte) (int, error) {
	w.log.Warn(strings.TrimSuffix(string(p), "\n"))
	return len(p), nil
}
