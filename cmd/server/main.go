package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-faster/errors"
	"golang.org/x/sync/errgroup"

	"github.com/jaideep-27/shophub/internal/config"
	"github.com/jaideep-27/shophub/internal/handlers"
	"github.com/jaideep-27/shophub/internal/repository"
	"github.com/jaideep-27/shophub/internal/service"
	"github.com/jaideep-27/shophub/internal/session"
	"github.com/jaideep-27/shophub/pkg/logger"
)

func main() {
	// Load configuration from CONFIG_FILE and environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	log.Info("starting storefront cart api server",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"catalog_source", cfg.Catalog.Source,
		"log_level", cfg.LogLevel,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server exited with error", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	// Initialize catalog
	productRepo, err := repository.Open(ctx, cfg.Catalog, log)
	if err != nil {
		return errors.Wrap(err, "open catalog")
	}

	// Initialize session store and services
	store := session.NewStore(cfg.Pricing, cfg.Session.TTL, log)
	productService := service.NewProductService(productRepo)
	cartService := service.NewCartService(productRepo, store, log)

	router := handlers.NewRouter(handlers.RouterConfig{
		Products:       productService,
		Carts:          cartService,
		Sessions:       store,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		RequestTimeout: time.Duration(cfg.Server.RequestTimeout) * time.Second,
		Logger:         log,
	})

	// Create HTTP server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "listen")
		}
		return nil
	})

	if cfg.Session.TTL > 0 {
		g.Go(func() error {
			log.Info("session sweeper started", "ttl", cfg.Session.TTL, "interval", cfg.Session.SweepInterval)
			return store.Run(gctx, cfg.Session.SweepInterval)
		})
	}

	// Wait for a signal, or for either goroutine to fail
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return errors.Wrap(err, "server forced to shutdown")
		}
		return nil
	})

	return g.Wait()
}
