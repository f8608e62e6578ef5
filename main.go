package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"example.com/shoecart/internal/config"
	domcart "example.com/shoecart/internal/domain/cart"
	domproduct "example.com/shoecart/internal/domain/product"
	"example.com/shoecart/internal/infra/catalogapi"
	"example.com/shoecart/internal/infra/persistence/file"
	"example.com/shoecart/internal/infra/persistence/mysql"
	"example.com/shoecart/internal/infra/persistence/postgres"
	"example.com/shoecart/internal/infra/persistence/redis"
	httpapi "example.com/shoecart/internal/interface/http"
	"example.com/shoecart/internal/logger"
	"example.com/shoecart/internal/notify"
	cartuc "example.com/shoecart/internal/usecase/cart"
	"example.com/shoecart/internal/usecase/catalog"
)

type cartStore interface {
	domcart.Store
	httpapi.Pinger
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Service:   "shoecart",
		Env:       cfg.AppEnv,
		Level:     cfg.LogLevel,
		AddSource: cfg.AppEnv != "prod",
	})
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("shoecart stopped", slog.Any("err", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	var closers []func()
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}()

	var mysqlDB *sql.DB
	if cfg.CartStore == config.StoreMySQL || cfg.CatalogSource == config.CatalogMySQL {
		db, err := mysql.Open(ctx, cfg.MySQLDSN)
		if err != nil {
			return err
		}
		mysqlDB = db
		closers = append(closers, func() { db.Close() })
	}

	var source domproduct.Repository
	switch cfg.CatalogSource {
	case config.CatalogMySQL:
		source = mysql.NewProductRepository(mysqlDB)
	default:
		source = catalogapi.NewClient(cfg.CatalogBaseURL, cfg.CatalogTimeout)
	}

	loader := catalog.NewLoader(source, log)
	loader.Start(ctx)

	store, closeStore, err := openCartStore(ctx, cfg, mysqlDB, log)
	if err != nil {
		return err
	}
	closers = append(closers, closeStore)

	engine := cartuc.NewEngine(ctx, loader, store, log)
	sink := notify.NewRequestSink(notify.NewLogSink(log))
	cartSvc := cartuc.NewService(engine, sink, log)

	api := httpapi.NewAPI(httpapi.Dependencies{
		CartService: cartSvc,
		Catalog:     loader,
		Store:       store,
		Logger:      log,
	})

	addr := ":" + cfg.Port
	server := &http.Server{
		Addr:              addr,
		Handler:           api.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server starting", slog.String("addr", addr), slog.String("store", cfg.CartStore))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	log.Info("shutdown requested")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func openCartStore(ctx context.Context, cfg config.Config, mysqlDB *sql.DB, log *slog.Logger) (cartStore, func(), error) {
	switch cfg.CartStore {
	case config.StoreRedis:
		s := redis.NewCartStore(cfg.RedisAddr, cfg.CartStorageKey, log)
		if err := s.Ping(ctx); err != nil {
			s.Close()
			return nil, nil, fmt.Errorf("redis: %w", err)
		}
		return s, func() { s.Close() }, nil

	case config.StoreMySQL:
		s := mysql.NewCartStore(mysqlDB, cfg.CartStorageKey, log)
		if err := s.EnsureSchema(ctx); err != nil {
			return nil, nil, fmt.Errorf("mysql schema: %w", err)
		}
		return s, func() {}, nil

	case config.StorePostgres:
		pool, err := postgres.Open(ctx, cfg.PGDSN)
		if err != nil {
			return nil, nil, err
		}
		s := postgres.NewCartStore(pool, cfg.CartStorageKey, log)
		if err := s.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("postgres schema: %w", err)
		}
		return s, pool.Close, nil

	default:
		return file.NewCartStore(cfg.CartFilePath, log), func() {}, nil
	}
}
