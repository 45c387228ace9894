package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/thebestsalad/portfolio/internal/config"
	"github.com/thebestsalad/portfolio/internal/contact"
	"github.com/thebestsalad/portfolio/internal/content"
	"github.com/thebestsalad/portfolio/internal/metrics"
	"github.com/thebestsalad/portfolio/internal/server"
	"github.com/thebestsalad/portfolio/internal/visitors"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if serveAddr != "" {
			cfg.Server.Addr = serveAddr
		}
		logger := newLogger(cfg.Log)
		slog.SetDefault(logger)
		gin.SetMode(cfg.Server.Mode)

		catalog := content.Default()
		for _, r := range catalog.Check(cfg) {
			if !r.Pass {
				logger.Warn("self-check failed", "check", r.Name)
			}
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

		opts := server.Options{
			Config:   cfg,
			Catalog:  catalog,
			Relay:    newRelay(cfg),
			Metrics:  metrics.New(reg),
			Gatherer: reg,
			Logger:   logger,
		}

		if cfg.Visitors.Enabled {
			store, err := visitors.Open(cfg.Visitors.DBPath, "")
			if err != nil {
				return fmt.Errorf("opening visitor log: %w", err)
			}
			defer store.Close()
			go cleanupVisits(ctx, store, cfg.Visitors, logger)
			opts.Visits = store
			logger.Info("visitor tracking enabled with hashed IP addresses", "db", cfg.Visitors.DBPath)
		}

		srv, err := server.New(opts)
		if err != nil {
			return err
		}
		return srv.Run(ctx, cfg.Server.Addr)
	},
}

func init() {
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", "", "listen address (overrides server.addr)")
	rootCmd.AddCommand(serveCmd)
}

func newRelay(cfg *config.Config) contact.Relay {
	if cfg.Contact.Relay == config.RelaySMTP {
		return contact.NewSMTPRelay(contact.SMTPConfig{
			Host: cfg.SMTP.Host,
			Port: cfg.SMTP.Port,
			User: cfg.SMTP.User,
			Pass: cfg.SMTP.Pass,
			To:   cfg.SMTP.To,
		})
	}
	return contact.NewFormSubmitRelay(cfg.Contact.Endpoint, nil, cfg.Contact.Timeout)
}

func cleanupVisits(ctx context.Context, store *visitors.Store, cfg config.Visitors, logger *slog.Logger) {
	removed, err := store.Cleanup(ctx, cfg.Retention)
	if err != nil {
		logger.Error("cleaning up old visits", "error", err)
		return
	}
	if removed > 0 {
		logger.Info("privacy cleanup removed old visits", "count", removed)
	}
}
