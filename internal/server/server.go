// Package server is the HTTP surface of the portfolio: full pages, the
// fragment-driven view partials, the contact form endpoint and a few
// operational routes.
package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/thebestsalad/portfolio/internal/config"
	"github.com/thebestsalad/portfolio/internal/contact"
	"github.com/thebestsalad/portfolio/internal/content"
	"github.com/thebestsalad/portfolio/internal/metrics"
	"github.com/thebestsalad/portfolio/internal/visitors"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// VisitLog records views and reports aggregate counts. *visitors.Store
// implements it.
type VisitLog interface {
	Track(ctx context.Context, v visitors.Visit) error
	Stats(ctx context.Context) (*visitors.Stats, error)
}

// Options configures New. Config, Catalog and Relay are required. A nil
// Visits disables tracking and a nil Gatherer leaves /metrics out.
type Options struct {
	Config   *config.Config
	Catalog  *content.Catalog
	Relay    contact.Relay
	Visits   VisitLog
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
	Logger   *slog.Logger
}

type Server struct {
	cfg     *config.Config
	catalog *content.Catalog
	relay   contact.Relay
	meta    contact.Metadata
	visits  VisitLog
	metrics *metrics.Metrics
	logger  *slog.Logger
	limiter *ipLimiter
	engine  *gin.Engine

	// tracking counts visit writes still in flight.
	tracking sync.WaitGroup
}

func New(opts Options) (*Server, error) {
	if opts.Config == nil || opts.Catalog == nil || opts.Relay == nil {
		return nil, errors.New("server: config, catalog and relay are required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	m := opts.Metrics
	if m == nil {
		m = metrics.New(prometheus.NewRegistry())
	}

	s := &Server{
		cfg:     opts.Config,
		catalog: opts.Catalog,
		relay:   opts.Relay,
		meta: contact.Metadata{
			Subject:  opts.Config.Contact.Subject,
			Template: opts.Config.Contact.Template,
			Captcha:  opts.Config.Contact.Captcha,
		},
		visits:  opts.Visits,
		metrics: m,
		logger:  logger,
		limiter: newIPLimiter(opts.Config.Contact.RatePerMinute, time.Now),
	}

	tmpl, err := template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("loading static assets: %w", err)
	}

	r := gin.New()
	r.Use(requestLogger(logger), gin.Recovery())
	if s.visits != nil {
		r.Use(s.visitorTracking())
	}
	r.SetHTMLTemplate(tmpl)
	r.StaticFS("/static", http.FS(static))

	s.routes(r, opts.Gatherer)
	s.engine = r
	return s, nil
}

func (s *Server) routes(r *gin.Engine, gatherer prometheus.Gatherer) {
	// Pages
	r.GET("/", s.handleHome)
	r.GET("/project/:slug", s.handleProjectPage)
	r.GET("/privacy", s.handlePrivacy)

	// Partials for the fragment router and HTMX
	r.GET("/view", s.handleView)
	r.GET("/contact-form", s.handleContactForm)
	r.POST("/contact", s.handleContact)

	r.GET("/api/stats", statsAuth(s.cfg.Visitors.StatsToken), s.handleStats)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
// It returns only after pending visit writes have finished, so the caller
// may close the visit log afterwards.
func (s *Server) Run(ctx context.Context, addr string) error {
	defer s.tracking.Wait()

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("portfolio listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}

var templateFuncs = template.FuncMap{
	"markdown": content.Markdown,
	"join":     strings.Join,
	"first": func(items []string) string {
		if len(items) == 0 {
			return ""
		}
		return items[0]
	},
}
