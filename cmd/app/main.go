// File: cmd/app/main.go
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"myfatoorah-checkout/internal/config"
	"myfatoorah-checkout/internal/domain/ports/adapter"
	"myfatoorah-checkout/internal/infra/cache"
	"myfatoorah-checkout/internal/infra/logging"
	"myfatoorah-checkout/internal/infra/metrics"
	"myfatoorah-checkout/internal/infra/mfapi"
	"myfatoorah-checkout/internal/infra/sched"
	"myfatoorah-checkout/internal/infra/web"
	"myfatoorah-checkout/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Info().Msg("[DEV MODE] Enabled")
	}
	metrics.MustRegister()

	// ---- Cache store ----
	store, closeStore, err := newCacheStore(ctx, &cfg.Cache, logger)
	if err != nil {
		log.Fatalf("cache store: %v", err)
	}
	defer closeStore()

	// ---- Country endpoint resolution ----
	countries := mfapi.NewCountryResolver(store, cfg.Gateway.Timeout, cfg.Cache.CountriesTTL, logger)
	baseURL := cfg.Gateway.BaseURL
	if baseURL == "" {
		baseURL = countries.BaseURL(ctx, cfg.Gateway.CountryMode, cfg.Gateway.Test)
	}
	logger.Info().
		Str("base_url", baseURL).
		Str("country", cfg.Gateway.CountryMode).
		Str("api_key", logging.Redact(cfg.Gateway.APIKey, cfg.Runtime.Dev)).
		Msg("gateway endpoint resolved")

	client := mfapi.NewClient(baseURL, cfg.Gateway.APIKey, cfg.Gateway.Timeout, logger)

	// ---- Use cases ----
	rateUC := usecase.NewRateUseCase(client, logger)
	catalogUC := usecase.NewCatalogUseCase(client, store, cfg.Cache.MethodsTTL, logger)
	invoiceUC := usecase.NewInvoiceUseCase(client, logger)
	webhookUC := usecase.NewWebhookUseCase(cfg.Server.WebhookSecret, logger)

	walletRegistered := cfg.ApplePay.DomainRegistered
	if !walletRegistered && cfg.ApplePay.SiteURL != "" {
		if err := catalogUC.RegisterApplePayDomain(ctx, cfg.ApplePay.SiteURL); err != nil {
			logger.Warn().Err(err).Str("site_url", cfg.ApplePay.SiteURL).Msg("wallet domain registration failed; wallet entries stay in cards")
		} else {
			logger.Info().Str("site_url", cfg.ApplePay.SiteURL).Msg("wallet domain registered")
			walletRegistered = true
		}
	}
	checkoutUC := usecase.NewCheckoutUseCase(catalogUC, rateUC, walletRegistered, logger)

	// ---- Refresh worker ----
	worker := sched.NewRefreshWorker(cfg.Cache.MethodsTTL, catalogUC, countries, logger)
	go func() { _ = worker.Run(ctx) }()

	// ---- HTTP server ----
	srv := web.NewServer(checkoutUC, rateUC, invoiceUC, webhookUC, &cfg.Server, !cfg.Runtime.Dev, logger)
	server := &http.Server{Addr: fmt.Sprintf(":%d", cfg.Server.Port), Handler: srv.Router()}
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("http server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("http server error")
		}
	}()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	logger.Info().Msg("shutdown requested")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http server shutdown error")
	}
}

func newCacheStore(ctx context.Context, cfg *config.CacheConfig, logger *zerolog.Logger) (adapter.CacheStore, func(), error) {
	switch cfg.Driver {
	case "file":
		dir := cfg.Dir
		if dir == "" {
			dir = "cache"
		}
		s, err := cache.NewFileStore(dir)
		return s, func() {}, err
	case "redis":
		s, err := cache.NewRedisStore(ctx, &cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { _ = s.Close() }, nil
	case "postgres":
		s, err := cache.NewPostgresStore(ctx, cfg.PostgresURL, logger)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	default:
		return cache.NewMemoryStore(), func() {}, nil
	}
}
