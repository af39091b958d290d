package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/insightdelivered/upi-statement-parser/internal/api"
	"github.com/insightdelivered/upi-statement-parser/internal/config"
	"github.com/insightdelivered/upi-statement-parser/internal/metrics"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the upload and parse API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServer(ctx, cfg)
		},
	}
}

func runServer(ctx context.Context, cfg *config.Config) error {
	log, err := newLogger(cfg.Observability.LogLevel)
	if err != nil {
		return err
	}
	defer log.Sync()

	classifier, err := loadClassifier(cfg.Parser.TaxonomyFile)
	if err != nil {
		return err
	}
	for _, o := range classifier.Taxonomy().Overlaps() {
		log.Warn("taxonomy keyword is shadowed", zap.String("overlap", o.String()))
	}

	h := &api.Handler{
		Classifier:     classifier,
		Logger:         log,
		MaxUploadBytes: cfg.Server.MaxUploadBytes,
		StaticDir:      cfg.Server.StaticDir,
		Version:        Version,
	}
	if cfg.Observability.MetricsEnabled {
		h.Metrics = metrics.New()
	}

	app := api.NewServer(h, api.ServerOptions{
		MaxUploadBytes: cfg.Server.MaxUploadBytes,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,

		RateLimitPerSecond: cfg.Server.RateLimitPerSecond,
		RateLimitBurst:     cfg.Server.RateLimitBurst,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting",
			zap.String("addr", cfg.Server.Addr()),
			zap.Int("taxonomy_version", classifier.Taxonomy().Version),
			zap.Bool("metrics", cfg.Observability.MetricsEnabled),
		)
		errCh <- app.Listen(cfg.Server.Addr())
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
