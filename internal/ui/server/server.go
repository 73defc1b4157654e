// Package server serves the landing page, the waitlist endpoints and static assets.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Its-donkey/BuddyBreak/internal/metrics"
	"github.com/Its-donkey/BuddyBreak/internal/waitlist"
	"github.com/Its-donkey/BuddyBreak/logging"
)

// Options configures the landing HTTP server.
type Options struct {
	Listen            string
	AssetsDir         string
	SiteName          string
	BaseURL           string
	EnableWASM        bool
	SubmitTimeout     time.Duration
	ShutdownTimeout   time.Duration
	ReadHeaderTimeout time.Duration

	Sink    waitlist.Sink
	Logger  *logging.Logger
	Metrics *metrics.Metrics

	// Now is used for the footer year and signup timestamps. Defaults to time.Now.
	Now func() time.Time
}

type server struct {
	assetsDir     string
	siteName      string
	baseURL       string
	primaryHost   string
	enableWASM    bool
	submitTimeout time.Duration
	sink          waitlist.Sink
	logger        *logging.Logger
	metrics       *metrics.Metrics
	now           func() time.Time
}

// Run starts the landing server and blocks until ctx ends or the listener fails.
func Run(ctx context.Context, opts Options) error {
	opts = applyDefaults(opts)

	handler, err := NewHandler(opts)
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              opts.Listen,
		Handler:           handler,
		ReadHeaderTimeout: opts.ReadHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()

	opts.Logger.Info("server", fmt.Sprintf("Serving %s on %s", opts.SiteName, displayAddr(opts.Listen)), map[string]any{
		"assets": opts.AssetsDir,
		"wasm":   opts.EnableWASM,
	})

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), opts.ShutdownTimeout)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server shutdown: %w", err)
		}
		opts.Logger.Info("server", "Server stopped", nil)
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	}
}

// NewHandler builds the router without binding a listener.
func NewHandler(opts Options) (http.Handler, error) {
	opts = applyDefaults(opts)

	assetsPath, err := filepath.Abs(opts.AssetsDir)
	if err != nil {
		return nil, fmt.Errorf("resolve assets dir: %w", err)
	}

	srv := &server{
		assetsDir:     assetsPath,
		siteName:      opts.SiteName,
		baseURL:       opts.BaseURL,
		primaryHost:   canonicalHostFromURL(opts.BaseURL),
		enableWASM:    opts.EnableWASM,
		submitTimeout: opts.SubmitTimeout,
		sink:          opts.Sink,
		logger:        opts.Logger,
		metrics:       opts.Metrics,
		now:           opts.Now,
	}
	return srv.routes(), nil
}

func (s *server) routes() http.Handler {
	httpLogger := logging.NewHTTPLogger(s.logger)
	httpLogger.Skip = func(r *http.Request) bool {
		return strings.HasPrefix(r.URL.Path, "/static/") || r.URL.Path == "/healthz" || r.URL.Path == "/metrics"
	}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(httpLogger.Middleware)
	r.Use(middleware.Recoverer)
	r.Use(s.metrics.Middleware)

	r.Get("/", s.handleHome)
	r.Post("/waitlist", s.handleWaitlistForm)
	r.Get("/waitlist", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/#waitlist", http.StatusSeeOther)
	})
	r.Post("/api/waitlist", s.handleWaitlistAPI)
	r.Get("/healthz", s.handleHealth)
	r.Get("/robots.txt", s.handleRobots)
	r.Get("/sitemap.xml", s.handleSitemap)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}
	r.Handle("/static/*", http.StripPrefix("/static/", s.staticHandler()))
	r.Get("/favicon.ico", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/static/images/favicon.svg", http.StatusMovedPermanently)
	})
	r.NotFound(s.handleNotFound)

	return r
}

func applyDefaults(opts Options) Options {
	if strings.TrimSpace(opts.Listen) == "" {
		opts.Listen = "127.0.0.1:4173"
	}
	if strings.TrimSpace(opts.AssetsDir) == "" {
		opts.AssetsDir = "ui"
	}
	if strings.TrimSpace(opts.SiteName) == "" {
		opts.SiteName = "BuddyBreak"
	}
	if opts.SubmitTimeout <= 0 {
		opts.SubmitTimeout = 5 * time.Second
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 10 * time.Second
	}
	if opts.ReadHeaderTimeout <= 0 {
		opts.ReadHeaderTimeout = 5 * time.Second
	}
	if opts.Sink == nil {
		opts.Sink = waitlist.StubSink{}
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return opts
}

func displayAddr(listen string) string {
	if strings.HasPrefix(listen, ":") {
		return "http://localhost" + listen
	}
	return "http://" + listen
}
