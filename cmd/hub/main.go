package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"quantdesk/internal/auth"
	"quantdesk/internal/cache"
	"quantdesk/internal/config"
	"quantdesk/internal/hub"
	"quantdesk/internal/logger"
	"quantdesk/internal/marketdata"
	"quantdesk/internal/report"
)

func main() {
	cfgPath := os.Getenv("QD_CONFIG")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}

	envOnly := false
	if envOnlyRaw := os.Getenv("QD_ENV_ONLY"); envOnlyRaw != "" {
		envOnly = strings.EqualFold(envOnlyRaw, "true") || envOnlyRaw == "1"
	}

	cfg, err := config.Load(cfgPath, envOnly)
	if err != nil {
		panic(err)
	}

	logger, err := logger.New(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	jwt := auth.JWT{Secret: []byte(cfg.Hub.JWTSecret), TokenTTL: cfg.Hub.TokenTTL}
	keys := auth.NewFileKeyStore(cfg.Hub.APIKeysFile, os.Getenv("QD_HUB_BOOTSTRAP_ADMIN_KEY"))
	if err := keys.Load(); err != nil {
		logger.Fatal("api key store", zap.Error(err))
	}

	apps := []hub.App{
		{
			Name:        "quant-a",
			Title:       cfg.QuantA.Title,
			Description: cfg.QuantA.Description,
			PublicURL:   cfg.QuantA.PublicURL,
			BaseURL:     cfg.QuantA.BaseURL,
			HealthPath:  cfg.QuantA.HealthPath,
		},
		{
			Name:        "quant-b",
			Title:       cfg.QuantB.Title,
			Description: cfg.QuantB.Description,
			PublicURL:   cfg.QuantB.PublicURL,
			BaseURL:     cfg.QuantB.BaseURL,
			HealthPath:  cfg.QuantB.HealthPath,
		},
	}

	// The hub carries its own market data path so admins can trigger the
	// daily report without the reporter daemon.
	dataHTTP := &http.Client{Timeout: cfg.MarketData.Timeout}
	dataClient := marketdata.NewClient(dataHTTP, cfg.MarketData.BaseURL, cfg.MarketData.UserAgent)
	dataSvc := &marketdata.Service{
		Client: dataClient,
		Cache:  cache.New(cfg.Cache, logger),
		Logger: logger,
		TTL:    cfg.MarketData.CacheTTL,
	}
	generator := &report.Generator{
		Data:      dataSvc,
		Logger:    logger,
		Tickers:   cfg.Report.Tickers,
		Lookback:  cfg.Report.LookbackDays,
		OutputDir: cfg.Report.OutputDir,
	}

	router := hub.Router{
		Page:    hub.Page{Title: cfg.Hub.Title, Apps: apps},
		Catalog: hub.Catalog{Apps: apps, ProbeTimeout: cfg.Hub.ProbeTimeout},
		Auth:    auth.Handler{Store: keys, JWT: jwt},
		Reports: hub.Reports{Dir: cfg.Report.OutputDir, Generator: generator, Logger: logger},
		Proxy:   hub.NewProxy(apps),
		AuthMW:  auth.Middleware(jwt),
	}

	srv := &http.Server{
		Addr:              cfg.Hub.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)

	go func() {
		logger.Info("hub listening", zap.String("addr", cfg.Hub.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown requested")
	case err := <-errCh:
		logger.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
