package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/strata/internal/logging"
	"github.com/aretw0/strata/pkg/adapters/memory"
	"github.com/aretw0/strata/pkg/domain"
	"github.com/aretw0/strata/pkg/grid"
	"github.com/aretw0/strata/pkg/observability"
	"github.com/aretw0/strata/pkg/ports"
	"github.com/aretw0/strata/pkg/source"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// StressResponse is the structured result of evaluate_stress.
type StressResponse struct {
	Components []string        `json:"components" jsonschema_description:"Tensor component order"`
	Stresses   []domain.Stress `json:"stresses" jsonschema_description:"One six-component tensor per point"`
}

// FieldResponse is the structured result of sample_grid.
type FieldResponse struct {
	Component string          `json:"component"`
	Grid      domain.GridSpec `json:"grid"`
	Values    [][]float64     `json:"values" jsonschema_description:"values[i][j] sampled at (x_i, y_j)"`
	Min       float64         `json:"min"`
	Max       float64         `json:"max"`
	Uniform   bool            `json:"uniform" jsonschema_description:"True when every sample is equal"`
}

// ScenesResponse is the structured result of list_scenes.
type ScenesResponse struct {
	Scenes []string `json:"scenes"`
}

// Server exposes the evaluator as MCP tools.
type Server struct {
	sampler   *grid.CachedSampler
	scenes    ports.SceneLoader
	metrics   *observability.Metrics
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures a Server.
type Option func(*Server)

// WithSampler sets the cached sampler used by sample_grid.
func WithSampler(cs *grid.CachedSampler) Option {
	return func(s *Server) { s.sampler = cs }
}

// WithMetrics counts evaluations served over MCP.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Server) { s.metrics = m }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// NewServer creates a new MCP Server instance.
func NewServer(scenes ports.SceneLoader, version string, opts ...Option) *Server {
	s := &Server{
		scenes:    scenes,
		logger:    logging.NewNop(),
		mcpServer: server.NewMCPServer("strata-mcp", strings.TrimSpace(version)),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.scenes == nil {
		s.scenes, _ = memory.NewLoader()
	}
	if s.sampler == nil {
		s.sampler = grid.NewCachedSampler(grid.NewSampler(), memory.NewFieldCache())
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops when ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("Shutdown signal received, shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: evaluate_stress
	stressTool := mcp.NewTool("evaluate_stress",
		mcp.WithDescription("Evaluate the superposed stress tensor (Sxx, Sxy, Sxz, Syy, Syz, Szz) of the given sources at each point."),
		mcp.WithString("sources", mcp.Required(), mcp.Description(`JSON array of sources, e.g. [{"type":"point","position":[0,0,0],"vector":[1,0,0]}]`)),
		mcp.WithString("points", mcp.Required(), mcp.Description("JSON array of [x,y,z] points")),
		mcp.WithOutputSchema[StressResponse](),
	)
	s.mcpServer.AddTool(stressTool, mcp.NewStructuredToolHandler(s.handleEvaluateStress))

	// TOOL: sample_grid
	gridTool := mcp.NewTool("sample_grid",
		mcp.WithDescription("Sample one stress component over a square grid on a plane of constant z."),
		mcp.WithString("sources", mcp.Required(), mcp.Description("JSON array of sources")),
		mcp.WithString("component", mcp.Required(), mcp.Description("Component name: Sxx, Sxy, Sxz, Syy, Syz or Szz")),
		mcp.WithString("grid", mcp.Description(`JSON object {"min":-5,"max":5,"n":51,"z":1} (optional)`)),
		mcp.WithOutputSchema[FieldResponse](),
	)
	s.mcpServer.AddTool(gridTool, mcp.NewStructuredToolHandler(s.handleSampleGrid))

	// TOOL: list_scenes
	s.mcpServer.AddTool(mcp.NewTool("list_scenes",
		mcp.WithDescription("List the IDs of the known scenes."),
		mcp.WithOutputSchema[ScenesResponse](),
	), mcp.NewStructuredToolHandler(s.handleListScenes))

	// TOOL: get_scene
	s.mcpServer.AddTool(mcp.NewTool("get_scene",
		mcp.WithDescription("Get a scene definition by ID."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Scene ID")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, _ := request.GetArguments()["id"].(string)
		scene, err := s.scenes.GetScene(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("get scene failed: %v", err)), nil
		}
		jsonBytes, _ := json.Marshal(scene)
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})
}

func (s *Server) handleEvaluateStress(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (StressResponse, error) {
	e, err := parseSources(args)
	if err != nil {
		return StressResponse{}, err
	}

	var raw [][]float64
	pointsStr, _ := args["points"].(string)
	if err := json.Unmarshal([]byte(pointsStr), &raw); err != nil {
		return StressResponse{}, fmt.Errorf("%w: %v", domain.ErrInvalidCoordinates, err)
	}
	points := make([]domain.Vec3, len(raw))
	for i, p := range raw {
		v, err := domain.VecFromSlice(p)
		if err != nil {
			return StressResponse{}, fmt.Errorf("%w: points[%d]: %v", domain.ErrInvalidCoordinates, i, err)
		}
		points[i] = v
	}

	stresses := source.EvaluateAll(e, points)
	s.metrics.ObserveEvaluations("mcp", len(stresses))

	names := make([]string, 0, domain.NumComponents)
	for _, c := range domain.AllComponents() {
		names = append(names, c.String())
	}
	return StressResponse{Components: names, Stresses: stresses}, nil
}

func (s *Server) handleSampleGrid(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (FieldResponse, error) {
	specs, err := parseSpecs(args)
	if err != nil {
		return FieldResponse{}, err
	}

	name, _ := args["component"].(string)
	c, err := domain.ParseComponent(name)
	if err != nil {
		return FieldResponse{}, err
	}

	g := domain.DefaultGrid
	if gridStr, ok := args["grid"].(string); ok && gridStr != "" {
		if err := json.Unmarshal([]byte(gridStr), &g); err != nil {
			return FieldResponse{}, fmt.Errorf("%w: %v", domain.ErrInvalidGrid, err)
		}
	}

	f, err := s.sampler.Field(ctx, grid.Request{Sources: specs, Grid: g, Component: c})
	if err != nil {
		s.logger.Warn("MCP sample_grid failed", "error", err)
		return FieldResponse{}, fmt.Errorf("sampling failed: %w", err)
	}

	lo, hi := f.Range()
	return FieldResponse{
		Component: c.String(),
		Grid:      f.Grid,
		Values:    f.Values,
		Min:       lo,
		Max:       hi,
		Uniform:   f.Uniform(),
	}, nil
}

func (s *Server) handleListScenes(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ScenesResponse, error) {
	ids, err := s.scenes.ListScenes(ctx)
	if err != nil {
		return ScenesResponse{}, fmt.Errorf("list scenes failed: %w", err)
	}
	if ids == nil {
		ids = []string{}
	}
	return ScenesResponse{Scenes: ids}, nil
}

func parseSpecs(args map[string]interface{}) ([]domain.SourceSpec, error) {
	raw, _ := args["sources"].(string)
	var specs []domain.SourceSpec
	if err := json.Unmarshal([]byte(raw), &specs); err != nil {
		return nil, fmt.Errorf("%w: sources: %v", domain.ErrInvalidSource, err)
	}
	return specs, nil
}

func parseSources(args map[string]interface{}) (ports.Evaluator, error) {
	specs, err := parseSpecs(args)
	if err != nil {
		return nil, err
	}
	return source.FromSpecs(specs)
}

func (s *Server) registerResources() {
	// EXPOSE: strata://scenes
	s.mcpServer.AddResource(mcp.NewResource("strata://scenes", "Known scene IDs",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		ids, err := s.scenes.ListScenes(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list scenes: %w", err)
		}
		jsonBytes, _ := json.Marshal(ids)

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "strata://scenes",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
