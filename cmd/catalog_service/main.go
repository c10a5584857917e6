// Package main runs the product catalog service: a NATS request/reply facade
// over the catalog command and query handlers, backed by PostgreSQL.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "net/http/pprof"

	"github.com/mkostin/catalog_service/internal/app"
	"github.com/mkostin/catalog_service/internal/config"
	"github.com/mkostin/catalog_service/pkg/bootstrap"
	"github.com/mkostin/catalog_service/pkg/config/configloader"
	natsclient "github.com/mkostin/catalog_service/pkg/nats"
	"golang.org/x/sync/errgroup"
)

const serviceName = "catalog"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Printf("application run failed: %v", err)
		os.Exit(1)
	}
	log.Println("application stopped gracefully")
}

// run loads the configuration, connects the database and the broker, and
// serves until the context is cancelled.
func run(ctx context.Context) error {
	cfg, cfgErr := configloader.Load[*config.Config](serviceName)
	if cfgErr != nil {
		return fmt.Errorf("failed to load configuration: %w", cfgErr)
	}
	log.Printf("Configuration loaded: %v", cfg)

	logger := bootstrap.NewLogger(cfg.Log.Level)
	slog.SetDefault(logger)

	dbPool, err := bootstrap.NewDbPool(ctx, cfg.Database.URL, cfg.Database.ConnectTimeout)
	if err != nil {
		return fmt.Errorf("failed to create database connection pool: %w", err)
	}
	defer dbPool.Close()
	logger.Info("Successfully connected to the database")

	if cfg.Database.MigrationsDir != "" {
		if err := bootstrap.ApplyMigrations(cfg.Database.URL, cfg.Database.MigrationsDir); err != nil {
			return fmt.Errorf("failed to apply migrations: %w", err)
		}
		logger.Info("Migrations applied", slog.String("dir", cfg.Database.MigrationsDir))
	}

	nc, err := natsclient.NewClient(cfg.NATS.URL, serviceName, cfg.NATS.DialTimeout)
	if err != nil {
		return fmt.Errorf("failed to connect to NATS: %w", err)
	}
	defer nc.Close()
	logger.Info("Successfully connected to NATS")

	deps, err := app.SetupDependencies(dbPool, logger)
	if err != nil {
		return err
	}
	messagingServer := app.SetupMessagingServer(nc, deps, cfg)
	opsServer := app.SetupOpsServer(deps, cfg, dbPool, nc)

	g, gCtx := errgroup.WithContext(ctx)

	// Messaging transport
	g.Go(func() error {
		logger.Info("Messaging server starting", slog.String("prefix", cfg.Messaging.SubjectPrefix))
		if err := messagingServer.Start(); err != nil {
			return fmt.Errorf("messaging server failed to start: %w", err)
		}
		<-gCtx.Done()
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("Draining messaging subscriptions...")
		return messagingServer.Drain()
	})

	// Ops HTTP server
	g.Go(func() error {
		logger.Info("Ops server listening", slog.String("addr", opsServer.Addr))
		if err := opsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("ops server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("Shutting down ops server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Shutdown.Timeout)
		defer cancel()
		return opsServer.Shutdown(shutdownCtx)
	})

	// Optional pprof server
	if cfg.PProf.Enabled {
		pprofServer := &http.Server{Addr: cfg.PProf.Addr}
		g.Go(func() error {
			logger.Info("Pprof server listening", slog.String("addr", pprofServer.Addr))
			if err := pprofServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("pprof server failed: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gCtx.Done()
			logger.Info("Shutting down pprof server...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Shutdown.Timeout)
			defer cancel()
			return pprofServer.Shutdown(shutdownCtx)
		})
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("errgroup encountered an error: %w", err)
	}
	return nil
}
