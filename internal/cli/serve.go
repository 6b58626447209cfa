package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/matzehuels/flametower/pkg/buildinfo"
	ferrors "github.com/matzehuels/flametower/pkg/errors"
	traceio "github.com/matzehuels/flametower/pkg/io"
	"github.com/matzehuels/flametower/pkg/observability"
	"github.com/matzehuels/flametower/pkg/pipeline"
)

const (
	defaultAddr     = "127.0.0.1:8080"
	maxTraceBytes   = 32 << 20
	requestTimeout  = 60 * time.Second
	shutdownTimeout = 5 * time.Second
)

// contentTypes maps pipeline formats to response content types.
var contentTypes = map[string]string{
	pipeline.FormatSVG:     "image/svg+xml",
	pipeline.FormatTreeSVG: "image/svg+xml",
	pipeline.FormatPNG:     "image/png",
	pipeline.FormatPDF:     "application/pdf",
	pipeline.FormatJSON:    "application/json",
	pipeline.FormatLayout:  "application/json",
	pipeline.FormatDOT:     "text/vnd.graphviz",
}

// serveCommand creates the serve command for the HTTP layout API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve flame graph layouts over HTTP",
		Long: `Serve flame graph layouts over HTTP.

Endpoints:
  POST /v1/layout   trace JSON in the body; returns the projected layout
  GET  /healthz     liveness probe
  GET  /version     build information

Query parameters of /v1/layout:
  format      json (default), svg, png, pdf, layout, dot, tree-svg
  from, to    window bounds in ms
  width       canvas width in pixels
  strategy    relocate (default), single-pass
  theme       light (default), dark
  row_height, row_gap, min_width, visible_only, interactive

Set FLAMETOWER_REDIS_ADDR to share the cache between instances.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	srv := &http.Server{
		Addr:              addr,
		Handler:           newRouter(runner, c.Logger),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	printSuccess("Listening on %s", StyleHighlight.Render("http://"+addr))
	printDetail("POST /v1/layout with a trace body")

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	c.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// newRouter wires the HTTP routes around a pipeline runner.
func newRouter(runner *pipeline.Runner, logger *log.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(serverHooks)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok\n"))
	})
	r.Get("/version", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"version": buildinfo.Version,
			"commit":  buildinfo.Commit,
			"built":   buildinfo.Date,
		})
	})
	r.Route("/v1", func(r chi.Router) {
		r.Post("/layout", layoutHandler(runner, logger))
	})

	return r
}

// serverHooks reports every request to the registered server hooks.
func serverHooks(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		observability.Server().OnRequest(r.Context(), r.Method, r.URL.Path)

		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		observability.Server().OnResponse(r.Context(), r.Method, route, status, time.Since(start))
	})
}

func layoutHandler(runner *pipeline.Runner, logger *log.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts, err := optionsFromQuery(r.URL.Query())
		if err != nil {
			writeError(w, err)
			return
		}

		trace, err := traceio.ReadJSON(http.MaxBytesReader(w, r.Body, maxTraceBytes))
		if err != nil {
			writeError(w, err)
			return
		}

		result, err := runner.Execute(r.Context(), trace, opts)
		if err != nil {
			if ferrors.HTTPStatus(err) >= http.StatusInternalServerError {
				logger.Error("layout failed", "request_id", middleware.GetReqID(r.Context()), "error", err)
			}
			writeError(w, err)
			return
		}

		format := opts.Formats[0]
		w.Header().Set("Content-Type", contentTypes[format])
		w.Header().Set("X-Trace-Hash", result.TraceHash)
		w.Header().Set("X-Levels", strconv.Itoa(result.Stats.Levels))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(result.Artifacts[format])
	}
}

// optionsFromQuery maps query parameters onto pipeline options. The format
// defaults to json.
func optionsFromQuery(q url.Values) (pipeline.Options, error) {
	opts := pipeline.Options{
		Strategy: q.Get("strategy"),
		Theme:    q.Get("theme"),
		Formats:  []string{pipeline.FormatJSON},
	}
	if f := q.Get("format"); f != "" {
		opts.Formats = []string{f}
	}

	var err error
	intParam := func(name string, dst *int) {
		if err != nil || !q.Has(name) {
			return
		}
		v, perr := strconv.Atoi(q.Get(name))
		if perr != nil {
			err = ferrors.Wrap(ferrors.ErrCodeInvalidInput, perr, "query parameter %s", name)
			return
		}
		*dst = v
	}
	floatParam := func(name string) *float64 {
		if err != nil || !q.Has(name) {
			return nil
		}
		v, perr := strconv.ParseFloat(q.Get(name), 64)
		if perr != nil {
			err = ferrors.Wrap(ferrors.ErrCodeInvalidInput, perr, "query parameter %s", name)
			return nil
		}
		return &v
	}
	boolParam := func(name string) bool {
		if err != nil || !q.Has(name) {
			return false
		}
		v := q.Get(name)
		if v == "" {
			return true
		}
		b, perr := strconv.ParseBool(v)
		if perr != nil {
			err = ferrors.Wrap(ferrors.ErrCodeInvalidInput, perr, "query parameter %s", name)
		}
		return b
	}

	intParam("width", &opts.Width)
	intParam("row_height", &opts.RowHeight)
	intParam("min_width", &opts.MinWidth)
	if q.Has("row_gap") {
		var gap int
		intParam("row_gap", &gap)
		opts.RowGap = &gap
	}
	opts.From = floatParam("from")
	opts.To = floatParam("to")
	opts.VisibleOnly = boolParam("visible_only")
	opts.Interactive = boolParam("interactive")
	if err != nil {
		return opts, err
	}
	return opts, nil
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeError(w http.ResponseWriter, err error) {
	status := ferrors.HTTPStatus(err)
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		status = http.StatusRequestEntityTooLarge
	}
	msg := ferrors.UserMessage(err)
	if status >= http.StatusInternalServerError {
		msg = http.StatusText(status)
	}
	writeJSON(w, status, errorResponse{Error: msg, Code: string(ferrors.GetCode(err))})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
