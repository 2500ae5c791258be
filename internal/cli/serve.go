package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/lineagekit/lineage/pkg/cache"
	lerrors "github.com/lineagekit/lineage/pkg/errors"
	"github.com/lineagekit/lineage/pkg/graph"
	"github.com/lineagekit/lineage/pkg/observability/promhooks"
	"github.com/lineagekit/lineage/pkg/pipeline"
	"github.com/lineagekit/lineage/pkg/source"
)

const (
	// defaultAddr is the default listen address for lineage serve.
	defaultAddr = ":8080"

	// defaultMaxBody bounds request bodies. Graph documents are small;
	// anything past this is a client error.
	defaultMaxBody = 10 << 20 // 10 MiB
)

// serveCommand creates the serve command exposing the layout engine over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr       string
		redisAddr  string
		noCache    bool
		maxBody    int64
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the pedigree layout engine over HTTP",
		Long: `Serve the pedigree layout engine over HTTP.

Endpoints:
  POST /api/layout   {"graph": {...}, "root": "id", "params": {...}} -> layout JSON
  POST /api/render   same body plus "format" (svg, json, dot, nodelink) -> rendered artifact
  GET  /healthz      liveness probe
  GET  /metrics      prometheus metrics

Rendered artifacts are cached by graph content hash. With --redis the cache
is shared across instances; otherwise the local file cache is used.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("addr") && cfg.Serve.Addr != "" {
				addr = cfg.Serve.Addr
			}
			if !cmd.Flags().Changed("redis") && cfg.Serve.RedisAddr != "" {
				redisAddr = cfg.Serve.RedisAddr
			}
			return c.runServe(cmd.Context(), addr, redisAddr, noCache, maxBody)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")
	cmd.Flags().StringVar(&redisAddr, "redis", "", "redis address for a shared artifact cache")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable artifact caching")
	cmd.Flags().Int64Var(&maxBody, "max-body", defaultMaxBody, "maximum request body size in bytes")
	cmd.Flags().StringVar(&configPath, "config", "", "config file (default: lineage.toml if present)")

	return cmd
}

// runServe wires the cache, metrics hooks, and router, then serves until ctx is done.
func (c *CLI) runServe(ctx context.Context, addr, redisAddr string, noCache bool, maxBody int64) error {
	store, err := c.newServeCache(ctx, redisAddr, noCache)
	if err != nil {
		return err
	}

	// Keep server-side artifacts apart from entries written by CLI runs
	// against the same backend.
	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "serve:")
	runner := pipeline.NewRunner(store, keyer, c.Logger)
	defer runner.Close()

	promhooks.Register(prometheus.DefaultRegisterer)

	srv := &http.Server{
		Addr:              addr,
		Handler:           newRouter(runner, maxBody, c.Logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Infof("listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		c.Logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return ctx.Err()
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// newServeCache picks the artifact cache backend for serve mode.
func (c *CLI) newServeCache(ctx context.Context, redisAddr string, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if redisAddr != "" {
		store, err := cache.NewRedisCache(ctx, redisAddr, "", 0)
		if err != nil {
			return nil, fmt.Errorf("connect to redis %s: %w", redisAddr, err)
		}
		return store, nil
	}
	return newCache(false)
}

// =============================================================================
// Router
// =============================================================================

// newRouter builds the HTTP route tree around a pipeline runner.
func newRouter(runner *pipeline.Runner, maxBody int64, logger *log.Logger) http.Handler {
	s := &server{runner: runner, maxBody: maxBody}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(withLogger(req.Context(), logger)))
		})
	})

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(api chi.Router) {
		api.Post("/layout", s.handleLayout)
		api.Post("/render", s.handleRender)
	})

	return r
}

// server holds per-request handler state.
type server struct {
	runner  *pipeline.Runner
	maxBody int64
}

// layoutRequest is the JSON body for /api/layout and /api/render.
type layoutRequest struct {
	Graph  graph.Graph   `json:"graph"`
	Root   string        `json:"root"`
	Params *layoutParams `json:"params,omitempty"`

	// Render-only fields, ignored by /api/layout.
	Format string `json:"format,omitempty"`
	Labels bool   `json:"labels,omitempty"`
}

// layoutParams overrides layout dimensions per request.
type layoutParams struct {
	NodeWidth     float64 `json:"node_width,omitempty"`
	NodeHeight    float64 `json:"node_height,omitempty"`
	HorizontalGap float64 `json:"horizontal_gap,omitempty"`
}

// options converts the request into pipeline options for the given formats.
func (req *layoutRequest) options(formats ...string) pipeline.Options {
	opts := pipeline.Options{
		Root:    req.Root,
		Formats: formats,
		Labels:  req.Labels,
	}
	if req.Params != nil {
		opts.NodeWidth = req.Params.NodeWidth
		opts.NodeHeight = req.Params.NodeHeight
		opts.HorizontalGap = req.Params.HorizontalGap
	}
	return opts
}

// requestSource adapts an inline graph document to the source interface.
type requestSource struct {
	g *graph.Graph
}

func (s *requestSource) Name() string { return "request" }

func (s *requestSource) Load(context.Context) (*graph.Graph, error) {
	return s.g, nil
}

var _ source.Source = (*requestSource)(nil)

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func (s *server) handleLayout(w http.ResponseWriter, r *http.Request) {
	req, err := s.decode(w, r)
	if err != nil {
		writeError(w, err)
		return
	}

	prog := newProgress(loggerFromContext(r.Context()))
	res, err := s.runner.Execute(r.Context(), &requestSource{g: &req.Graph}, req.options(pipeline.FormatJSON))
	if err != nil {
		writeError(w, err)
		return
	}
	prog.done(fmt.Sprintf("layout %s: %d people", req.Root, res.Stats.PersonCount))

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(res.Artifacts[pipeline.FormatJSON])
}

func (s *server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := s.decode(w, r)
	if err != nil {
		writeError(w, err)
		return
	}

	format := req.Format
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		writeError(w, err)
		return
	}

	prog := newProgress(loggerFromContext(r.Context()))
	res, err := s.runner.Execute(r.Context(), &requestSource{g: &req.Graph}, req.options(format))
	if err != nil {
		writeError(w, err)
		return
	}
	prog.done(fmt.Sprintf("render %s as %s", req.Root, format))

	w.Header().Set("Content-Type", contentType(format))
	_, _ = w.Write(res.Artifacts[format])
}

// decode reads and parses a bounded request body.
func (s *server) decode(w http.ResponseWriter, r *http.Request) (*layoutRequest, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBody)

	var req layoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, lerrors.New(lerrors.ErrCodeInvalidInput, "request body exceeds %d bytes", maxErr.Limit)
		}
		return nil, lerrors.Wrap(lerrors.ErrCodeInvalidInput, err, "parse request body")
	}
	return &req, nil
}

// contentType maps an output format to its MIME type.
func contentType(format string) string {
	switch format {
	case pipeline.FormatSVG, pipeline.FormatNodelink:
		return "image/svg+xml"
	case pipeline.FormatJSON:
		return "application/json"
	case pipeline.FormatDOT:
		return "text/vnd.graphviz"
	default:
		return "application/octet-stream"
	}
}

// writeError maps a pipeline error to an HTTP status and JSON body.
func writeError(w http.ResponseWriter, err error) {
	code := lerrors.GetCode(err)

	status := http.StatusInternalServerError
	switch code {
	case lerrors.ErrCodeInvalidInput, lerrors.ErrCodeInvalidPerson, lerrors.ErrCodeInvalidRelationship,
		lerrors.ErrCodeInvalidFormat, lerrors.ErrCodeInvalidParams:
		status = http.StatusBadRequest
	case lerrors.ErrCodeNotFound, lerrors.ErrCodePersonNotFound:
		status = http.StatusNotFound
	case lerrors.ErrCodeTimeout:
		status = http.StatusGatewayTimeout
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": lerrors.UserMessage(err),
		"code":  string(code),
	})
}
