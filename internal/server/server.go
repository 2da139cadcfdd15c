// Package server implements the chart preview HTTP server behind
// "minid3 serve".
//
// Routes:
//
//	GET  /healthz                 liveness probe
//	GET  /templates               registered chart templates
//	POST /charts                  store a TOML chart config, returns {"id": ...}
//	GET  /charts/{id}.{format}    render a stored chart (html, svg, png, pdf, dot)
//
// Stored charts and rendered artifacts live in the runner's cache, so
// several server instances sharing one Redis cache serve the same charts.
package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/matzehuels/minid3/pkg/cache"
	"github.com/matzehuels/minid3/pkg/chart"
	"github.com/matzehuels/minid3/pkg/errors"
	"github.com/matzehuels/minid3/pkg/pipeline"
)

const (
	// MaxConfigSize bounds POST /charts request bodies.
	MaxConfigSize = 1 << 20

	chartKeyPrefix = "chart:"
	shutdownGrace  = 5 * time.Second
)

// Server serves chart previews from a pipeline runner.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
	ttl    time.Duration
}

// New returns a server drawing charts with runner.
func New(runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, logger: logger, ttl: cache.TTLArtifact}
}

// record is a stored chart.
type record struct {
	Config  string    `json:"config"`
	Created time.Time `json:"created"`
}

type templateInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	NeedsData   bool   `json:"needs_data"`
}

type createResponse struct {
	ID    string            `json:"id"`
	Links map[string]string `json:"links"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = io.WriteString(w, "ok\n")
	})
	r.Get("/templates", s.listTemplates)
	r.Post("/charts", s.createChart)
	r.Get("/charts/{id}.{format}", s.getChart)
	return r
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	s.logger.Info("serving", "addr", addr)

	select {
	case err := <-errCh:
		return errors.Wrap(errors.ErrCodeNetwork, err, "listen on %s", addr)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) listTemplates(w http.ResponseWriter, _ *http.Request) {
	var out []templateInfo
	for _, t := range chart.All() {
		out = append(out, templateInfo{Name: t.Name(), Description: t.Description(), NeedsData: t.NeedsData()})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createChart(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxConfigSize))
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "read config"))
		return
	}
	cfg, err := chart.ParseConfig(body)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if data := r.URL.Query().Get("data"); data != "" {
		cfg.Data = data
	}
	// The server never reads its own filesystem on behalf of a client.
	if cfg.Data != "" {
		if err := errors.ValidateURL(cfg.Data); err != nil {
			s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "data must be an http(s) URL"))
			return
		}
	}
	if t, _ := chart.Lookup(cfg.Template); t.NeedsData() && cfg.Data == "" {
		s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "template %q needs a data URL", cfg.Template))
		return
	}

	canonical, err := cfg.Encode()
	if err != nil {
		s.writeError(w, err)
		return
	}
	id, err := uuid.NewV7()
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "generate id"))
		return
	}
	rec, _ := json.Marshal(record{Config: string(canonical), Created: time.Now().UTC()})
	if err := s.runner.Cache.Set(r.Context(), chartKeyPrefix+id.String(), rec, s.ttl); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "store chart"))
		return
	}

	links := make(map[string]string, len(pipeline.ValidFormats))
	for f := range pipeline.ValidFormats {
		links[f] = "/charts/" + id.String() + "." + f
	}
	s.logger.Debug("stored chart", "id", id, "template", cfg.Template)
	writeJSON(w, http.StatusCreated, createResponse{ID: id.String(), Links: links})
}

func (s *Server) getChart(w http.ResponseWriter, r *http.Request) {
	id, format := chi.URLParam(r, "id"), chi.URLParam(r, "format")
	if _, err := uuid.Parse(id); err != nil {
		s.writeError(w, errors.New(errors.ErrCodeNotFound, "chart %q not found", id))
		return
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, err)
		return
	}

	data, hit, err := s.runner.Cache.Get(r.Context(), chartKeyPrefix+id)
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "load chart"))
		return
	}
	if !hit {
		s.writeError(w, errors.New(errors.ErrCodeNotFound, "chart %q not found", id))
		return
	}
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "decode chart"))
		return
	}
	cfg, err := chart.ParseConfig([]byte(rec.Config))
	if err != nil {
		s.writeError(w, err)
		return
	}

	res, err := s.runner.Execute(r.Context(), pipeline.Options{
		Config:  cfg,
		Formats: []string{format},
		Logger:  s.logger,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", pipeline.ContentTypes[format])
	w.Header().Set("X-Cache-Hit", boolString(res.CacheInfo.RenderHit))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	}
	writeJSON(w, status, errorResponse{Error: errors.UserMessage(err), Code: string(errors.GetCode(err))})
}

// statusFor maps error codes to HTTP status codes.
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidSelector, errors.ErrCodeInvalidDomain,
		errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidTemplate, errors.ErrCodeInvalidConfig,
		errors.ErrCodeInvalidPath, errors.ErrCodeKeyNotFound:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported, errors.ErrCodeUnmaterialized:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeNetwork:
		return http.StatusBadGateway
	case errors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
