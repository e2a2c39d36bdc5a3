package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"quantdesk/internal/cache"
	"quantdesk/internal/config"
	cronrunner "quantdesk/internal/cron"
	"quantdesk/internal/db"
	"quantdesk/internal/handler"
	"quantdesk/internal/logger"
	"quantdesk/internal/marketdata"
	"quantdesk/internal/portfolio"
	"quantdesk/internal/repository"
	gormrepository "quantdesk/internal/repository/gorm"

	_ "quantdesk/docs/quantb"
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
	} else {
		logger.Info("db.dsn empty, running without run history")
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

	pfEngine := &portfolio.Engine{
		Data:   dataSvc,
		Repo:   store,
		Logger: logger,
	}

	if strings.EqualFold(cfg.App.Env, "dev") {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(corsMiddleware())

	healthHandler := &handler.HealthHandler{}
	if dbConn != nil {
		healthHandler.DB = dbConn.Gorm
	}
	healthHandler.Register(engine)

	quoteHandler := &handler.QuoteHandler{Data: dataSvc}
	quoteHandler.Register(engine)

	portfolioHandler := &handler.PortfolioHandler{
		Engine:   pfEngine,
		Repo:     store,
		Defaults: cfg.Portfolio,
	}
	portfolioHandler.Register(engine)

	streamHandler := &handler.StreamHandler{
		Data:   dataSvc,
		Cfg:    cfg.Stream,
		Logger: logger,
	}
	streamHandler.Register(engine)

	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.InstanceName("quantb")))

	srv := &http.Server{
		Addr:    cfg.QuantB.HTTPAddr,
		Handler: engine,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cronRunner := cronrunner.New(logger, ctx)
	if store != nil {
		retention := cfg.MarketData.RetentionDays
		if retention <= 0 {
			retention = 30
		}
		_, err = cronRunner.Add("@daily", func(ctx context.Context) {
			cutoff := time.Now().UTC().AddDate(0, 0, -retention)
			n, err := store.DeleteBarsBefore(ctx, marketdata.IntradayIntervals(), cutoff)
			if err != nil {
				logger.Warn("bar retention sweep failed", zap.Error(err))
				return
			}
			if n > 0 {
				logger.Info("pruned stale intraday bars", zap.Int64("count", n))
			}
		})
		if err != nil {
			logger.Warn("cron register bar retention failed", zap.Error(err))
		}
	}
	cronRunner.Start()
	defer cronRunner.Stop()

	errCh := make(chan error, 1)

	go func() {
		logger.Info("http server starting", zap.String("addr", cfg.QuantB.HTTPAddr))
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

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type,Authorization")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
