package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/shaiso/Syncline/internal/config"
	"github.com/shaiso/Syncline/internal/crm"
	"github.com/shaiso/Syncline/internal/repo"
	"github.com/shaiso/Syncline/internal/scheduler"
	"github.com/shaiso/Syncline/internal/syncer"
	"github.com/shaiso/Syncline/internal/telemetry"
)

func main() {
	root := &cobra.Command{
		Use:           "syncline",
		Short:         "Periodic customer-to-CRM synchronization service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCmd(), newOnceCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newServeCmd — основной режим: scheduler + /healthz + /metrics.
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the sync service with the periodic scheduler",
		RunE: func(cmd *cobra.Command, args []string) error {
			// graceful shutdown
			ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			cfg := config.Load()
			logger := telemetry.SetupLogger()

			// Кривой SYNC_CRON должен падать на bootstrap, не на первом тике.
			if cfg.SyncCron != "" {
				if err := scheduler.ValidateCronExpr(cfg.SyncCron); err != nil {
					return err
				}
			}

			s, pool, err := buildSyncer(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer pool.Close()

			// HTTP mux: /healthz + /metrics
			mux := http.NewServeMux()
			mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
				w.Write([]byte("ok"))
			})
			mux.Handle("/metrics", promhttp.Handler())

			go func() {
				addr := ":" + cfg.HTTPPort
				logger.Info("http listening", "addr", addr)
				if err := http.ListenAndServe(addr, mux); err != nil {
					logger.Error("http server error", "error", err)
					cancel()
				}
			}()

			sched := scheduler.New(scheduler.Config{
				Runner:   s,
				Period:   cfg.SyncPeriod,
				CronExpr: cfg.SyncCron,
				Logger:   logger,
			})

			if err := sched.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
}

// newOnceCmd — одиночный синхронный run (операционный инструмент).
func newOnceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "once",
		Short: "Execute a single sync run and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			cfg := config.Load()
			logger := telemetry.SetupLogger()

			s, pool, err := buildSyncer(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer pool.Close()

			s.RunOnce(ctx)
			return nil
		},
	}
}

// buildSyncer собирает Syncer с его коллабораторами (БД, CRM-клиент).
func buildSyncer(ctx context.Context, cfg config.Config, logger *slog.Logger) (*syncer.Syncer, *pgxpool.Pool, error) {
	pool, err := repo.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("db connect: %w", err)
	}
	logger.Info("db connected")

	client := crm.New(crm.Config{
		BaseURL:        cfg.CrmBaseURL,
		ConnectTimeout: cfg.CrmConnectTimeout,
		ReadTimeout:    cfg.CrmReadTimeout,
	})

	s := syncer.New(syncer.Config{
		Source:      repo.NewCustomerRepo(pool),
		CRM:         client,
		Concurrency: cfg.Concurrency,
		Logger:      logger,
	})
	return s, pool, nil
}
