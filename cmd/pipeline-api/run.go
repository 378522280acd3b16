package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/recruithub/hiring-pipeline/internal/config"
	"github.com/recruithub/hiring-pipeline/internal/events"
	"github.com/recruithub/hiring-pipeline/internal/service"
	"github.com/recruithub/hiring-pipeline/internal/store"
	"github.com/recruithub/hiring-pipeline/pkg/migrations"
)

const statusMetricsInterval = 30 * time.Second

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the hiring pipeline service",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.New()
		if err != nil {
			return err
		}

		sync, undo := initLogger(cfg)
		defer sync()
		defer undo()

		zap.S().Info("starting hiring pipeline service")
		defer zap.S().Info("hiring pipeline service stopped")

		zap.S().Info("initializing data store")
		db, err := store.InitDB(cfg)
		if err != nil {
			zap.S().Fatalw("initializing data store", "error", err)
		}

		s := store.NewStore(db)
		defer s.Close()

		if cfg.Service.MigrationFolder != "" {
			if err := migrations.MigrateStore(db, cfg); err != nil {
				zap.S().Fatalw("running migrations", "error", err)
			}
		} else {
			if err := s.InitialMigration(); err != nil {
				zap.S().Fatalw("running initial migration", "error", err)
			}
		}

		if err := s.Seed(); err != nil {
			zap.S().Fatalw("seeding the default posting", "error", err)
		}

		ep := events.NewEventProducer(&events.StdoutWriter{}, events.WithOutputTopic(cfg.Service.EventTopic))
		defer func() { _ = ep.Close() }()

		candidateService := service.NewCandidateService(s, ep, cfg.Lifecycle())

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGHUP, syscall.SIGTERM, syscall.SIGQUIT)
		defer cancel()

		go refreshStatusMetrics(ctx, candidateService)

		metricsServer := &http.Server{
			Addr:    cfg.Service.MetricsAddress,
			Handler: promhttp.Handler(),
		}
		go func() {
			defer cancel()
			zap.S().Infow("serving metrics", "address", cfg.Service.MetricsAddress)
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				zap.S().Errorw("metrics server failed", "error", err)
			}
		}()

		<-ctx.Done()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		_ = metricsServer.Shutdown(shutdownCtx)

		return nil
	},
}

func refreshStatusMetrics(ctx context.Context, svc *service.CandidateService) {
	ticker := time.NewTicker(statusMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := svc.UpdateStatusMetrics(ctx); err != nil {
				zap.S().Errorw("failed to refresh status metrics", "error", err)
			}
		}
	}
}
