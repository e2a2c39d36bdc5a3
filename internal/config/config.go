package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Log        LogConfig        `mapstructure:"log"`
	DB         DBConfig         `mapstructure:"db"`
	MarketData MarketDataConfig `mapstructure:"market_data"`
	Cache      CacheConfig      `mapstructure:"cache"`
	Backtest   BacktestConfig   `mapstructure:"backtest"`
	Portfolio  PortfolioConfig  `mapstructure:"portfolio"`
	Stream     StreamConfig     `mapstructure:"stream"`
	Report     ReportConfig     `mapstructure:"report"`
	QuantA     ServiceConfig    `mapstructure:"quant_a"`
	QuantB     ServiceConfig    `mapstructure:"quant_b"`
	Hub        HubConfig        `mapstructure:"hub"`
}

type AppConfig struct {
	Env string `mapstructure:"env"`
}

type LogConfig struct {
	Level             string `mapstructure:"level"`
	Encoding          string `mapstructure:"encoding"`
	Development       bool   `mapstructure:"development"`
	Sampling          bool   `mapstructure:"sampling"`
	DisableCaller     bool   `mapstructure:"disable_caller"`
	DisableStacktrace bool   `mapstructure:"disable_stacktrace"`
}

type DBConfig struct {
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	Timezone        string        `mapstructure:"timezone"`
}

type MarketDataConfig struct {
	BaseURL       string        `mapstructure:"base_url"`
	Timeout       time.Duration `mapstructure:"timeout"`
	UserAgent     string        `mapstructure:"user_agent"`
	CacheTTL      time.Duration `mapstructure:"cache_ttl"`
	RetentionDays int           `mapstructure:"retention_days"`
}

type CacheConfig struct {
	Backend       string `mapstructure:"backend"`
	RedisAddr     string `mapstructure:"redis_addr"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db"`
}

type BacktestConfig struct {
	ShortWindow    int     `mapstructure:"short_window"`
	LongWindow     int     `mapstructure:"long_window"`
	InitialCapital float64 `mapstructure:"initial_capital"`
	RiskFreeRate   float64 `mapstructure:"risk_free_rate"`
}

type PortfolioConfig struct {
	MinAssets      int     `mapstructure:"min_assets"`
	Rebalance      string  `mapstructure:"rebalance"`
	InitialCapital float64 `mapstructure:"initial_capital"`
}

type StreamConfig struct {
	RefreshInterval time.Duration `mapstructure:"refresh_interval"`
	MaxTickers      int           `mapstructure:"max_tickers"`
}

type ReportConfig struct {
	Tickers      []string `mapstructure:"tickers"`
	LookbackDays int      `mapstructure:"lookback_days"`
	OutputDir    string   `mapstructure:"output_dir"`
	LogDir       string   `mapstructure:"log_dir"`
	Schedule     string   `mapstructure:"schedule"`
}

// ServiceConfig describes one analysis app: where it listens, where the
// hub reaches it, and what the catalog page shows for it.
type ServiceConfig struct {
	HTTPAddr    string `mapstructure:"http_addr"`
	BaseURL     string `mapstructure:"base_url"`
	PublicURL   string `mapstructure:"public_url"`
	Title       string `mapstructure:"title"`
	Description string `mapstructure:"description"`
	HealthPath  string `mapstructure:"health_path"`
}

type HubConfig struct {
	HTTPAddr     string        `mapstructure:"http_addr"`
	Title        string        `mapstructure:"title"`
	JWTSecret    string        `mapstructure:"jwt_secret"`
	TokenTTL     time.Duration `mapstructure:"token_ttl"`
	APIKeysFile  string        `mapstructure:"api_keys_file"`
	ProbeTimeout time.Duration `mapstructure:"probe_timeout"`
}

func Load(path string, envOnly bool) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("QD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.AutomaticEnv()
	v.SetDefault("app.env", "dev")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "console")
	v.SetDefault("log.development", true)
	v.SetDefault("log.sampling", false)
	v.SetDefault("log.disable_caller", false)
	v.SetDefault("log.disable_stacktrace", false)
	v.SetDefault("db.dsn", "")
	v.SetDefault("db.max_open_conns", 20)
	v.SetDefault("db.max_idle_conns", 5)
	v.SetDefault("db.conn_max_lifetime", "30m")
	v.SetDefault("db.conn_max_idle_time", "5m")
	v.SetDefault("db.timezone", "UTC")
	v.SetDefault("market_data.base_url", "https://query1.finance.yahoo.com")
	v.SetDefault("market_data.timeout", "15s")
	v.SetDefault("market_data.user_agent", "quantdesk/0.1")
	v.SetDefault("market_data.cache_ttl", "5m")
	v.SetDefault("market_data.retention_days", 30)
	v.SetDefault("cache.backend", "memory")
	v.SetDefault("cache.redis_addr", "")
	v.SetDefault("cache.redis_password", "")
	v.SetDefault("cache.redis_db", 0)
	v.SetDefault("backtest.short_window", 20)
	v.SetDefault("backtest.long_window", 50)
	v.SetDefault("backtest.initial_capital", 1000)
	v.SetDefault("backtest.risk_free_rate", 0)
	v.SetDefault("portfolio.min_assets", 3)
	v.SetDefault("portfolio.rebalance", "weekly")
	v.SetDefault("portfolio.initial_capital", 10000)
	v.SetDefault("stream.refresh_interval", "5m")
	v.SetDefault("stream.max_tickers", 10)
	v.SetDefault("report.tickers", []string{"AAPL", "MSFT", "GLD"})
	v.SetDefault("report.lookback_days", 252)
	v.SetDefault("report.output_dir", "reports")
	v.SetDefault("report.log_dir", "logs")
	v.SetDefault("report.schedule", "0 0 6 * * *")
	v.SetDefault("quant_a.http_addr", ":8501")
	v.SetDefault("quant_a.base_url", "http://127.0.0.1:8501")
	v.SetDefault("quant_a.public_url", "http://127.0.0.1:8501")
	v.SetDefault("quant_a.title", "Quant A")
	v.SetDefault("quant_a.description", "Single-asset performance and strategy backtests")
	v.SetDefault("quant_a.health_path", "/healthz")
	v.SetDefault("quant_b.http_addr", ":8502")
	v.SetDefault("quant_b.base_url", "http://127.0.0.1:8502")
	v.SetDefault("quant_b.public_url", "http://127.0.0.1:8502")
	v.SetDefault("quant_b.title", "Quant B")
	v.SetDefault("quant_b.description", "Multi-asset portfolio simulation and analytics")
	v.SetDefault("quant_b.health_path", "/healthz")
	v.SetDefault("hub.http_addr", ":8500")
	v.SetDefault("hub.title", "Quantdesk")
	v.SetDefault("hub.jwt_secret", "dev-secret-change-me")
	v.SetDefault("hub.token_ttl", "24h")
	v.SetDefault("hub.api_keys_file", "data/api_keys.json")
	v.SetDefault("hub.probe_timeout", "3s")

	if !envOnly {
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
