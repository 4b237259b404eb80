// Package server exposes the dashboard views and their drilldowns over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Veraticus/supplier-drilldown/internal/common"
	"github.com/Veraticus/supplier-drilldown/internal/filter"
	"github.com/Veraticus/supplier-drilldown/internal/model"
	"github.com/Veraticus/supplier-drilldown/internal/view"
)

const shutdownTimeout = 5 * time.Second

// Server serves a dashboard built over one loaded dataset.
type Server struct {
	dash *view.Dashboard
	now  func() time.Time
	asOf time.Time
}

// New creates a server. A zero asOf uses the current date for trend views
// unless a request passes as_of.
func New(dash *view.Dashboard, asOf time.Time) *Server {
	return &Server{dash: dash, asOf: asOf, now: time.Now}
}

// Routes returns the router with every endpoint mounted.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Get("/healthz", s.healthz)
	r.Get("/facets", s.facets)
	r.Get("/views", s.listViews)
	r.Get("/views/{name}", s.getView)
	r.Get("/views/{name}/drilldown/{label}", s.getDrilldown)
	r.Get("/dashboard", s.getDashboard)
	return r
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	slog.Info("Listening", "addr", addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		slog.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"records": len(s.dash.Dataset().Records),
	})
}

func (s *Server) facets(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, filter.FacetOptions(s.dash.Dataset().Records, filter.DefaultFieldPaths()))
}

func (s *Server) listViews(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.dash.Configs())
}

func (s *Server) getView(w http.ResponseWriter, r *http.Request) {
	criteria, asOf, err := s.parseQuery(r)
	if err != nil {
		writeError(w, err)
		return
	}
	res, err := s.dash.Compute(chi.URLParam(r, "name"), criteria, asOf)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) getDrilldown(w http.ResponseWriter, r *http.Request) {
	criteria, asOf, err := s.parseQuery(r)
	if err != nil {
		writeError(w, err)
		return
	}
	res, err := s.dash.Compute(chi.URLParam(r, "name"), criteria, asOf)
	if err != nil {
		writeError(w, err)
		return
	}
	d, err := res.SelectDrilldown(pathParam(r, "label"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) getDashboard(w http.ResponseWriter, r *http.Request) {
	criteria, asOf, err := s.parseQuery(r)
	if err != nil {
		writeError(w, err)
		return
	}
	results, err := s.dash.ComputeAll(r.Context(), criteria, asOf)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, results)
}

// parseQuery reads the facet selection and the trend reference date.
func (s *Server) parseQuery(r *http.Request) (model.FilterCriteria, time.Time, error) {
	q := r.URL.Query()
	criteria, err := filter.ParseCriteria(q["category"], q["location"], q["supplier"], q.Get("from"), q.Get("to"))
	if err != nil {
		return model.FilterCriteria{}, time.Time{}, err
	}

	asOf := s.asOf
	if raw := q.Get("as_of"); raw != "" {
		t, ok := filter.ParseDate(raw)
		if !ok {
			return model.FilterCriteria{}, time.Time{}, common.NewUserError("as_of must be a date", common.ErrInvalidConfig)
		}
		asOf = t
	}
	if asOf.IsZero() {
		asOf = s.now()
	}
	return criteria, asOf, nil
}

// pathParam returns a decoded URL parameter. Labels may contain an escaped
// slash, which chi leaves encoded.
func pathParam(r *http.Request, key string) string {
	raw := chi.URLParam(r, key)
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("Failed to write response", "error", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case common.IsNotFound(err):
		status = http.StatusNotFound
	case errors.Is(err, common.ErrInvalidConfig):
		status = http.StatusBadRequest
	default:
		common.LogError(err, "Request failed", nil)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		slog.Debug("Handled request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start))
	})
}
