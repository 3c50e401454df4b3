// Command server runs the axis coordinate service: validation, codec,
// math playground, simulation, and the coordinate catalog.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"
	"golang.org/x/sync/errgroup"

	"axisd/internal/audit"
	axishandler "axisd/internal/axis/handler"
	"axisd/internal/catalog"
	"axisd/internal/catalog/cache"
	cataloghandler "axisd/internal/catalog/handler"
	catalogstore "axisd/internal/catalog/store"
	"axisd/internal/mathops"
	mathhandler "axisd/internal/mathops/handler"
	"axisd/internal/platform/config"
	"axisd/internal/platform/httpserver"
	"axisd/internal/platform/logger"
	"axisd/internal/platform/metrics"
	platformredis "axisd/internal/platform/redis"
	"axisd/internal/simulation"
	simhandler "axisd/internal/simulation/handler"
	httptransport "axisd/internal/transport/http"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()

	if err := run(cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Server, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()
	checks := map[string]httptransport.CheckFunc{}

	// Catalog storage: PostgreSQL when a DSN is configured, in-memory
	// otherwise.
	var store catalog.Store
	if cfg.PostgresDSN != "" {
		db, err := sql.Open("postgres", cfg.PostgresDSN)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := db.PingContext(ctx); err != nil {
			return err
		}

		pg := catalogstore.NewPostgresStore(db)
		if err := pg.Migrate(ctx); err != nil {
			return err
		}
		store = pg
		checks["postgres"] = db.PingContext
		log.Info("catalog backed by postgres")
	} else {
		store = catalogstore.NewInMemoryStore()
		log.Info("catalog backed by memory store")
	}

	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
		store = cache.New(store, redisClient.Client, 0, log)
		checks["redis"] = redisClient.Health
		log.Info("catalog reads cached in redis")
	}

	auditStore := audit.NewInMemoryStore()
	publisher := audit.NewPublisher(cfg.AuditBufferSize, log, m)
	worker := audit.NewWorker(auditStore, publisher.Inbox(), log)

	catalogService := catalog.NewService(store, publisher, log, m, cfg.StrictValidate)
	simEngine := simulation.NewEngine(log, m)

	router := httptransport.NewRouter(httptransport.Dependencies{
		Logger:  log,
		Metrics: m,
		Handlers: []httptransport.Registrar{
			axishandler.New(log, m, publisher),
			mathhandler.New(mathops.NewEngine(), log),
			simhandler.New(simEngine, log, publisher),
			cataloghandler.New(catalogService, log),
		},
		Health: httptransport.NewHealthHandler(checks),
	})

	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		err := worker.Run(gctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	g.Go(func() error {
		log.Info("starting axisd", "addr", cfg.Addr, "strict_validate", cfg.StrictValidate)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
