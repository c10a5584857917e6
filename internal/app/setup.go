// Package app contains the application setup for the catalog service.
package app

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mkostin/catalog_service/internal/catalog"
	"github.com/mkostin/catalog_service/internal/catalog/cqrs"
	"github.com/mkostin/catalog_service/internal/catalog/store"
	"github.com/mkostin/catalog_service/internal/config"
	"github.com/mkostin/catalog_service/internal/transport/messaging"
	"github.com/mkostin/catalog_service/pkg/server"
	"github.com/mkostin/catalog_service/pkg/telemetry"
	"github.com/nats-io/nats.go"
)

// Dependencies holds the wired application components.
type Dependencies struct {
	Dispatcher *cqrs.Dispatcher
	Metrics    *telemetry.Metrics
	Logger     *slog.Logger
}

// SetupDependencies builds the dispatcher over the PostgreSQL store and
// registers all command and query handlers.
func SetupDependencies(dbPool *pgxpool.Pool, logger *slog.Logger) (*Dependencies, error) {
	dispatcher := cqrs.NewDispatcher(logger)
	if err := catalog.RegisterHandlers(dispatcher, store.NewPgStore(dbPool)); err != nil {
		return nil, fmt.Errorf("failed to set up dispatcher: %w", err)
	}
	return &Dependencies{
		Dispatcher: dispatcher,
		Metrics:    telemetry.NewMetrics(),
		Logger:     logger,
	}, nil
}

// SetupMessagingServer creates the NATS transport over the dispatcher.
func SetupMessagingServer(nc *nats.Conn, deps *Dependencies, cfg *config.Config) *messaging.Server {
	return messaging.NewServer(nc, deps.Dispatcher, deps.Metrics, cfg.Messaging, deps.Logger)
}

// SetupOpsServer builds the operational HTTP server with liveness, readiness
// and metrics endpoints. Readiness requires both the database and the broker
// connection to be healthy.
func SetupOpsServer(deps *Dependencies, cfg *config.Config, dbPool *pgxpool.Pool, nc *nats.Conn) *http.Server {
	mux := server.NewChiRouter(deps.Logger)

	mux.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if err := dbPool.Ping(r.Context()); err != nil {
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		if !nc.IsConnected() {
			http.Error(w, "broker unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())

	httpCfg := server.HTTPConfig{
		Port:         cfg.Ops.Port,
		ReadTimeout:  cfg.Ops.Timeout.Read,
		WriteTimeout: cfg.Ops.Timeout.Write,
		IdleTimeout:  cfg.Ops.Timeout.Idle,
		ReadHeader:   cfg.Ops.Timeout.ReadHeader,
	}
	return server.NewHTTPServer(httpCfg, mux)
}
