package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/aretw0/strata/internal/logging"
	"github.com/aretw0/strata/pkg/adapters/memory"
	"github.com/aretw0/strata/pkg/domain"
	"github.com/aretw0/strata/pkg/grid"
	"github.com/aretw0/strata/pkg/observability"
	"github.com/aretw0/strata/pkg/plot"
	"github.com/aretw0/strata/pkg/ports"
	"github.com/aretw0/strata/pkg/source"
	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server serves the evaluation API.
type Server struct {
	Sampler  *grid.CachedSampler
	Scenes   ports.SceneLoader
	Renderer plot.Renderer
	Metrics  *observability.Metrics
	Gatherer prometheus.Gatherer
	Logger   *slog.Logger
	Version  string
}

// Option configures a Server.
type Option func(*Server)

// WithScenes sets the scene source for the /v1/scenes routes.
func WithScenes(l ports.SceneLoader) Option {
	return func(s *Server) { s.Scenes = l }
}

// WithSampler sets the cached grid sampler.
func WithSampler(cs *grid.CachedSampler) Option {
	return func(s *Server) { s.Sampler = cs }
}

// WithRenderer sets the figure renderer.
func WithRenderer(r plot.Renderer) Option {
	return func(s *Server) { s.Renderer = r }
}

// WithMetrics records evaluations and serves /metrics from g.
func WithMetrics(m *observability.Metrics, g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.Metrics = m
		s.Gatherer = g
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.Logger = logger }
}

// WithVersion sets the version reported by /info.
func WithVersion(v string) Option {
	return func(s *Server) { s.Version = v }
}

// NewHandler builds the HTTP handler. Missing collaborators get in-memory defaults.
func NewHandler(opts ...Option) (http.Handler, error) {
	s := &Server{
		Logger:  logging.NewNop(),
		Version: "dev",
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.Sampler == nil {
		s.Sampler = grid.NewCachedSampler(grid.NewSampler(), memory.NewFieldCache())
	}
	if s.Scenes == nil {
		s.Scenes, _ = memory.NewLoader()
	}
	if s.Renderer == nil {
		r, err := plot.NewRenderer()
		if err != nil {
			return nil, err
		}
		s.Renderer = r
	}

	router, err := newRouter()
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(enableCORS)
	r.Use(requestValidator(router))

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		_, _ = w.Write(rawSpec)
	})
	if s.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/stress", s.EvaluateStress)
		r.Post("/grid", s.SampleGrid)
		r.Get("/scenes", s.ListScenes)
		r.Get("/scenes/{id}", s.GetScene)
		r.Get("/scenes/{id}/plot/{component}", s.PlotScene)
	})

	return r, nil
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// StressRequest is the body of POST /v1/stress.
type StressRequest struct {
	Sources []domain.SourceSpec `json:"sources"`
	Points  [][]float64         `json:"points"`
}

// StressResponse lists one tensor per requested point.
type StressResponse struct {
	Stresses []domain.Stress `json:"stresses"`
}

// GridRequest is the body of POST /v1/grid.
type GridRequest = grid.Request

// FieldResponse is a sampled field with its range.
type FieldResponse struct {
	Component string          `json:"component"`
	Grid      domain.GridSpec `json:"grid"`
	Values    [][]float64     `json:"values"`
	Min       float64         `json:"min"`
	Max       float64         `json:"max"`
}

// SceneSummary is one entry of GET /v1/scenes.
type SceneSummary struct {
	ID      string `json:"id"`
	Title   string `json:"title,omitempty"`
	Sources int    `json:"sources"`
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if doc, err := GetSwagger(); err == nil && doc.Info != nil {
		apiVersion = doc.Info.Version
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"app":         "strata-http",
		"version":     s.Version,
		"api_version": apiVersion,
	})
}

// EvaluateStress handles the POST /v1/stress request.
func (s *Server) EvaluateStress(w http.ResponseWriter, r *http.Request) {
	var body StressRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	e, err := source.FromSpecs(body.Sources)
	if err != nil {
		s.fail(w, "EvaluateStress", err)
		return
	}

	points := make([]domain.Vec3, len(body.Points))
	for i, p := range body.Points {
		v, err := domain.VecFromSlice(p)
		if err != nil {
			s.fail(w, "EvaluateStress", fmt.Errorf("%w: points[%d]: %v", domain.ErrInvalidCoordinates, i, err))
			return
		}
		points[i] = v
	}

	stresses := source.EvaluateAll(e, points)
	s.Metrics.ObserveEvaluations("http", len(stresses))
	writeJSON(w, http.StatusOK, StressResponse{Stresses: stresses})
}

// SampleGrid handles the POST /v1/grid request.
func (s *Server) SampleGrid(w http.ResponseWriter, r *http.Request) {
	var body GridRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	f, err := s.Sampler.Field(r.Context(), body)
	if err != nil {
		s.fail(w, "SampleGrid", err)
		return
	}
	writeJSON(w, http.StatusOK, fieldResponse(f))
}

// ListScenes handles the GET /v1/scenes request.
func (s *Server) ListScenes(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Scenes.ListScenes(r.Context())
	if err != nil {
		s.fail(w, "ListScenes", err)
		return
	}

	out := make([]SceneSummary, 0, len(ids))
	for _, id := range ids {
		scene, err := s.Scenes.GetScene(r.Context(), id)
		if err != nil {
			s.fail(w, "ListScenes", err)
			return
		}
		out = append(out, SceneSummary{ID: scene.ID, Title: scene.Title, Sources: len(scene.Sources)})
	}
	writeJSON(w, http.StatusOK, map[string]any{"scenes": out})
}

// GetScene handles the GET /v1/scenes/{id} request.
func (s *Server) GetScene(w http.ResponseWriter, r *http.Request) {
	scene, err := s.Scenes.GetScene(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, "GetScene", err)
		return
	}
	writeJSON(w, http.StatusOK, scene)
}

// PlotScene handles the GET /v1/scenes/{id}/plot/{component} request.
// A uniform field answers 204 with no body.
func (s *Server) PlotScene(w http.ResponseWriter, r *http.Request) {
	var name string
	err := runtime.BindStyledParameterWithOptions("simple", "component", chi.URLParam(r, "component"), &name,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid format for parameter component: %w", err))
		return
	}
	c, err := domain.ParseComponent(name)
	if err != nil {
		s.fail(w, "PlotScene", err)
		return
	}

	var n *int
	if err := runtime.BindQueryParameter("form", true, false, "n", r.URL.Query(), &n); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid format for parameter n: %w", err))
		return
	}

	scene, err := s.Scenes.GetScene(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, "PlotScene", err)
		return
	}
	g := scene.GridOrDefault()
	if n != nil {
		g.N = *n
	}

	f, err := s.Sampler.Field(r.Context(), grid.Request{Sources: scene.Sources, Grid: g, Component: c})
	if err != nil {
		s.fail(w, "PlotScene", err)
		return
	}
	if f.Uniform() {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	var buf bytes.Buffer
	if err := s.Renderer.Render(&buf, f, c.String()); err != nil {
		s.fail(w, "PlotScene", err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(buf.Bytes())
}

func fieldResponse(f *domain.Field) FieldResponse {
	lo, hi := f.Range()
	return FieldResponse{
		Component: f.Component.String(),
		Grid:      f.Grid,
		Values:    f.Values,
		Min:       lo,
		Max:       hi,
	}
}

func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.Logger.Error(op+" failed", "error", err)
	} else {
		s.Logger.Warn(op+" rejected", "error", err)
	}
	writeError(w, status, err)
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrSceneNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidGrid),
		errors.Is(err, domain.ErrInvalidMaterial),
		errors.Is(err, domain.ErrInvalidSource),
		errors.Is(err, domain.ErrInvalidCoordinates),
		errors.Is(err, domain.ErrUnknownComponent),
		errors.Is(err, domain.ErrUnknownSourceType),
		errors.Is(err, domain.ErrUnsupportedQuadrature):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
