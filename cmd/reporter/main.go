package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"quantdesk/internal/cache"
	"quantdesk/internal/config"
	cronrunner "quantdesk/internal/cron"
	"quantdesk/internal/db"
	"quantdesk/internal/logger"
	"quantdesk/internal/marketdata"
	"quantdesk/internal/report"
	"quantdesk/internal/repository"
	gormrepository "quantdesk/internal/repository/gorm"
)

func main() {
	once := flag.Bool("once", false, "generate today's report and exit")
	flag.Parse()

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

	// NewWithFile creates the log directory and the sink appends across runs.
	logPath := filepath.Join(cfg.Report.LogDir, "daily_report.log")
	logger, err := logger.NewWithFile(cfg.Log, logPath)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	var dbConn *db.DB
	var store repository.Repository
	if cfg.DB.DSN != "" {
		dbConn, err = db.Open(cfg.DB)
		if err != nil {
			logger.Fatal("db open failed", zap.Error(err))
		}
		defer db.Close(dbConn)

		if err := db.SetTimezone(dbConn, cfg.DB.Timezone); err != nil {
			logger.Warn("failed to set timezone", zap.Error(err))
		}
		if err := db.AutoMigrate(dbConn); err != nil {
			logger.Fatal("auto-migrate failed", zap.Error(err))
		}
		store = gormrepository.New(dbConn.Gorm)
	}

	dataHTTP := &http.Client{Timeout: cfg.MarketData.Timeout}
	dataClient := marketdata.NewClient(dataHTTP, cfg.MarketData.BaseURL, cfg.MarketData.UserAgent)
	dataSvc := &marketdata.Service{
		Client: dataClient,
		Cache:  cache.New(cfg.Cache, logger),
		Repo:   store,
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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *once {
		_, path, err := generator.Generate(ctx, time.Now().UTC())
		if err != nil {
			logger.Fatal("daily report failed", zap.Error(err))
		}
		logger.Info("daily report ok", zap.String("path", path))
		return
	}

	cronRunner := cronrunner.New(logger, ctx)
	_, err = cronRunner.Add(cfg.Report.Schedule, func(ctx context.Context) {
		_, path, err := generator.Generate(ctx, time.Now().UTC())
		if err != nil {
			logger.Error("scheduled daily report failed", zap.Error(err))
			return
		}
		logger.Info("scheduled daily report ok", zap.String("path", path))
	})
	if err != nil {
		logger.Fatal("cron register daily report failed", zap.Error(err))
	}
	cronRunner.Start()
	defer cronRunner.Stop()

	// One pass at boot so a fresh deployment has a report before the first
	// scheduled tick.
	if _, path, err := generator.Generate(ctx, time.Now().UTC()); err != nil {
		logger.Warn("initial daily report failed (continuing)", zap.Error(err))
	} else {
		logger.Info("initial daily report ok", zap.String("path", path))
	}

	<-ctx.Done()
	logger.Info("shutdown requested")
}
