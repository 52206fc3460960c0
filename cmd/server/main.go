package main

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/rezainiet/inventory-backend/internal/cache"
	"github.com/rezainiet/inventory-backend/internal/config"
	"github.com/rezainiet/inventory-backend/internal/httpapi"
	"github.com/rezainiet/inventory-backend/internal/service"
	"github.com/rezainiet/inventory-backend/internal/store"
	"github.com/rezainiet/inventory-backend/internal/store/memory"
	"github.com/rezainiet/inventory-backend/internal/store/postgres"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var closers []io.Closer

	var repo store.Repository
	if cfg.DatabaseURL != "" {
		pg, err := postgres.New(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("postgres: %v", err)
		}
		closers = append(closers, pg)
		repo = pg
		log.Printf("store: postgres")
	} else {
		repo = memory.NewSeeded()
		log.Printf("store: in-memory (seeded); set DATABASE_URL for persistence")
	}

	var salesCache cache.SalesCache = cache.NoopSalesCache{}
	if cfg.RedisAddr != "" {
		rc := cache.NewRedisSalesCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		err := rc.Ping(pingCtx)
		cancel()
		if err != nil {
			log.Printf("redis unreachable, sales cache disabled: %v", err)
			_ = rc.Close()
		} else {
			closers = append(closers, rc)
			salesCache = rc
			log.Printf("sales cache: redis at %s", cfg.RedisAddr)
		}
	}

	svc := service.New(repo, salesCache, time.Duration(cfg.SalesCacheTTLSeconds)*time.Second)
	api := httpapi.New(svc, cfg.AllowedOrigin)

	srv := &http.Server{
		Addr:              cfg.Address(),
		Handler:           api.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("listening on %s", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Printf("shutdown signal received")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("server error: %v", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}

	for _, c := range closers {
		if err := c.Close(); err != nil {
			log.Printf("close: %v", err)
		}
	}
	log.Printf("bye")
}
