package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/memoelle/storefront-go/internal/catalog"
	"github.com/memoelle/storefront-go/internal/config"
	"github.com/memoelle/storefront-go/internal/db"
	"github.com/memoelle/storefront-go/internal/events"
	httpapi "github.com/memoelle/storefront-go/internal/http"
	"github.com/memoelle/storefront-go/internal/persist"
	"github.com/memoelle/storefront-go/internal/promo"
	"github.com/memoelle/storefront-go/internal/session"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP action surface",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		defer logger.Sync() //nolint:errcheck

		return serve(cmd.Context(), cfg, logger)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// --- storage ---
	adapter, pool, err := openStorage(ctx, cfg, logger)
	if err != nil {
		return err
	}
	if pool != nil {
		defer pool.Close()
	}

	registry := session.NewRegistry(adapter, session.Options{
		Policy:           cfg.IdentityPolicy,
		RehydrateTimeout: cfg.RehydrateTimeout,
	}, logger)

	persister := session.NewPersister(adapter, logger)
	registry.Observe(persister.Observe)

	// --- AMQP ---
	var (
		conn      *amqp.Connection
		publisher *events.Publisher
	)
	if cfg.RabbitMQURL != "" {
		conn, err = events.Dial(cfg.RabbitMQURL)
		if err != nil {
			return errors.Wrap(err, "connect to RabbitMQ")
		}
		defer conn.Close()

		var seq events.SequenceStore = events.NewMemorySequence()
		if pool != nil {
			seq = events.NewPostgresSequence(pool)
		}
		publisher, err = events.NewPublisher(conn, seq, logger, events.PublisherOptions{Pricing: cfg.Pricing})
		if err != nil {
			return errors.Wrap(err, "start publisher")
		}
		registry.Observe(publisher.Observe)
		logger.Info("change mirror enabled", zap.String("exchange", events.EventsExchange))
	}

	// --- HTTP ---
	h := httpapi.NewHandler(registry, catalog.Default(), promo.DefaultCatalog(), cfg.Pricing)
	httpServer := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           httpapi.NewRouter(h, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http listening",
			zap.String("addr", cfg.Addr()),
			zap.String("storage", string(cfg.Storage.Driver)),
			zap.String("identity_policy", string(cfg.IdentityPolicy)))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// --- graceful shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	var runErr error
	select {
	case sig := <-sigCh:
		logger.Info("shutdown signal", zap.String("signal", sig.String()))
	case runErr = <-errCh:
		logger.Error("http server failed", zap.Error(runErr))
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http shutdown", zap.Error(err))
	}
	if publisher != nil {
		if err := publisher.Close(shutdownCtx); err != nil {
			logger.Warn("publisher shutdown", zap.Error(err))
		}
	}
	if err := persister.Close(shutdownCtx); err != nil {
		logger.Warn("persister shutdown", zap.Error(err))
	}

	logger.Info("shutdown complete")
	return runErr
}

func openStorage(ctx context.Context, cfg *config.Config, logger *zap.Logger) (persist.Adapter, *pgxpool.Pool, error) {
	switch cfg.Storage.Driver {
	case config.StorageFile:
		adapter, err := persist.NewFileAdapter(cfg.Storage.Dir)
		if err != nil {
			return nil, nil, err
		}
		return adapter, nil, nil
	case config.StoragePostgres:
		pool, err := db.NewPool(ctx, cfg.Storage.DatabaseDSN)
		if err != nil {
			return nil, nil, errors.Wrap(err, "db connect")
		}
		if cfg.Storage.RunMigrations {
			if err := db.RunMigrations(cfg.Storage.DatabaseDSN, logger); err != nil {
				pool.Close()
				return nil, nil, errors.Wrap(err, "db migrate")
			}
		}
		return persist.NewPostgresAdapter(pool), pool, nil
	default:
		return persist.NewMemoryAdapter(), nil, nil
	}
}
