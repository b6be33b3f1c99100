package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/RedBeret/AIChatPoweredEcommerce/internal/backend"
	"github.com/RedBeret/AIChatPoweredEcommerce/internal/catalog"
	"github.com/RedBeret/AIChatPoweredEcommerce/internal/config"
	"github.com/RedBeret/AIChatPoweredEcommerce/internal/logging"
	"github.com/RedBeret/AIChatPoweredEcommerce/internal/shell"
	"github.com/RedBeret/AIChatPoweredEcommerce/internal/web"
)

func main() {
	configPath := flag.String("config", "", "path to yaml config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logging.New(cfg.App.Name, cfg.App.LogLevel, cfg.App.LogFile)

	// Each visitor gets a fresh client so backend session cookies stay per
	// visitor. The catalog reads through a shared client of its own.
	clientFactory := func() *backend.Client {
		return backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout)
	}

	productCache := newProductCache(cfg, log)
	catalogService := catalog.NewService(clientFactory(), productCache, log)

	registry := shell.NewRegistry(clientFactory, log, cfg.Auth.AutoLoginOnRegister, cfg.Auth.VisitorTTL)
	defer registry.Close()

	router := web.NewRouter(registry, catalogService, web.RouterConfig{
		RequestTimeout: cfg.HTTP.RequestTimeout,
		CookieSecret:   cfg.Auth.CookieSecret,
		VisitorTTL:     cfg.Auth.VisitorTTL,
	})

	srv := &http.Server{
		Addr:         cfg.App.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Info("storefront starting", "addr", cfg.App.HTTPAddr, "backend", cfg.Backend.BaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", "err", err)
		os.Exit(1)
	}

	log.Info("server exited")
}

// newProductCache picks redis when configured, otherwise a no-op cache.
func newProductCache(cfg config.Config, log *slog.Logger) catalog.ProductCache {
	if cfg.Redis.Addr == "" {
		return catalog.NopCache{}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
	})
	log.Info("product cache enabled", "redis_addr", cfg.Redis.Addr)
	return catalog.NewRedisCache(client)
}
