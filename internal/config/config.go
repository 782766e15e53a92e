package config

import (
	"flag"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Загрузка конфигурации из config.yaml через cleanenv

type Config struct {
	Server            ServerConfig            `yaml:"server"`
	Scheduler         SchedulerConfig         `yaml:"schedulers"`
	Postgres          PostgresConfig          `yaml:"postgres"`
	Redis             RedisConfig             `yaml:"redis"`
	LocalCache        LocalCacheConfig        `yaml:"localcache"`
	Rates             RatesConfig             `yaml:"rates"`
	CoinGecko         CoinGeckoConfig         `yaml:"coingecko"`
	CurrencyConverter CurrencyConverterConfig `yaml:"currency_converter"`
	Midgard           MidgardConfig           `yaml:"midgard"`
	CrossChain        CrossChainConfig        `yaml:"crosschain"`
	WarmUp            WarmUpConfig            `yaml:"warmup"`
	Telegram          TelegramConfig          `yaml:"telegram"`
	Logger            LoggerConfig            `yaml:"logger"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr" env:"HTTP_ADDR" env-default:":8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env-default:"5s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env-default:"10s"`
	RequestTimeout  time.Duration `yaml:"request_timeout" env-default:"20s"`
	BodyLimit       string        `yaml:"body_limit" env-default:"1M"`
}

type SchedulerConfig struct {
	Enabled bool `yaml:"enabled" env-default:"true"`
}

type LoggerConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL" env-default:"info"` // debug|info|warn|error
	Format string `yaml:"format" env-default:"text"`                // text|json
}

type PostgresConfig struct {
	Host            string        `yaml:"host" env:"POSTGRES_HOST" env-default:"localhost"`
	Port            int           `yaml:"port" env:"POSTGRES_PORT" env-default:"5432"`
	User            string        `yaml:"user" env:"POSTGRES_USER" env-default:"postgres"`
	Password        string        `yaml:"password" env:"POSTGRES_PASSWORD" env-default:"postgres"`
	DBName          string        `yaml:"dbname" env:"POSTGRES_DB" env-default:"rates"`
	SSLMode         string        `yaml:"sslmode" env-default:"disable"`
	Timeout         time.Duration `yaml:"timeout" env-default:"5s"`
	MaxConns        int32         `yaml:"max_conns" env-default:"10"`
	MinConns        int32         `yaml:"min_conns" env-default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime" env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env-default:"30m"`
	Migrate         bool          `yaml:"migrate" env-default:"true"`
	// MaxWriteAttempts — повторы read-merge-write при конфликте ревизий
	MaxWriteAttempts int `yaml:"max_write_attempts" env-default:"3"`
}

type RedisConfig struct {
	Enabled     bool          `yaml:"enabled" env-default:"true"`
	Addr        string        `yaml:"addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	Password    string        `yaml:"password" env:"REDIS_PASSWORD"`
	DB          int           `yaml:"db" env-default:"0"`
	DialTimeout time.Duration `yaml:"dial_timeout" env-default:"3s"`
	TTL         time.Duration `yaml:"ttl" env-default:"24h"`
}

type LocalCacheConfig struct {
	Enabled   bool          `yaml:"enabled" env-default:"true"`
	SizeBytes int           `yaml:"size_bytes" env-default:"33554432"`
	TTL       time.Duration `yaml:"ttl" env-default:"10m"`
}

type RatesConfig struct {
	MaxCrypto        int           `yaml:"max_crypto" env-default:"100"`
	MaxFiat          int           `yaml:"max_fiat" env-default:"256"`
	SettlementFiat   string        `yaml:"settlement_fiat" env-default:"USD"`
	WriteBackTimeout time.Duration `yaml:"write_back_timeout" env-default:"30s"`
	CacheNamespace   string        `yaml:"cache_namespace" env-default:"rates_data"`
}

type CoinGeckoConfig struct {
	Enabled     bool              `yaml:"enabled" env-default:"true"`
	BaseURL     string            `yaml:"base_url" env-default:"https://api.coingecko.com/api/v3"`
	APIKey      string            `yaml:"api_key" env:"COINGECKO_API_KEY"`
	Timeout     time.Duration     `yaml:"timeout" env-default:"8s"`
	UserAgent   string            `yaml:"user_agent"`
	RPS         float64           `yaml:"rps" env-default:"0.5"`
	Burst       int               `yaml:"burst" env-default:"2"`
	MaxSkew     time.Duration     `yaml:"max_skew" env-default:"1h"`
	Concurrency int               `yaml:"concurrency" env-default:"4"`
	Tokens      map[string]string `yaml:"tokens"` // плоский ключ актива -> id CoinGecko
}

type CurrencyConverterConfig struct {
	Enabled   bool          `yaml:"enabled" env-default:"true"`
	BaseURL   string        `yaml:"base_url" env-default:"https://api.frankfurter.app"`
	Timeout   time.Duration `yaml:"timeout" env-default:"8s"`
	UserAgent string        `yaml:"user_agent"`
	RPS       float64       `yaml:"rps" env-default:"5"`
	Burst     int           `yaml:"burst" env-default:"5"`
}

type MidgardConfig struct {
	Enabled   bool          `yaml:"enabled" env-default:"true"`
	BaseURL   string        `yaml:"base_url" env-default:"https://midgard.ninerealms.com"`
	Timeout   time.Duration `yaml:"timeout" env-default:"8s"`
	UserAgent string        `yaml:"user_agent"`
	RPS       float64       `yaml:"rps" env-default:"2"`
	Burst     int           `yaml:"burst" env-default:"2"`
}

type CrossChainConfig struct {
	SettingsID     string        `yaml:"settings_id" env-default:"crossChainMapping"`
	ReloadInterval time.Duration `yaml:"reload_interval" env-default:"5m"`
	// Mapping — начальная таблица, пока документ настроек не загружен
	Mapping map[string]CrossChainDestination `yaml:"mapping"`
}

type CrossChainDestination struct {
	DestChain string `yaml:"dest_chain"`
	TokenID   string `yaml:"token_id"`
}

type WarmUpConfig struct {
	Enabled  bool          `yaml:"enabled" env-default:"true"`
	Interval time.Duration `yaml:"interval" env-default:"1m"`
	Assets   []string      `yaml:"assets"` // плоские ключи
	Fiat     []string      `yaml:"fiat"`
}

type TelegramConfig struct {
	Enabled         bool          `yaml:"enabled" env-default:"false"`
	Token           string        `yaml:"token" env:"TELEGRAM_BOT_TOKEN"`
	LongPollTimeout time.Duration `yaml:"long_poll_timeout" env-default:"10s"`
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}

	// Try to read from config file if specified
	configPath := fetchConfigPath()
	if configPath != "" {
		if err := cleanenv.ReadConfig(configPath, cfg); err != nil {
			return nil, err
		}
	}

	// Read from environment variables
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func fetchConfigPath() string {
	var res string
	flag.StringVar(&res, "c", "", "config file path")
	flag.Parse()
	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}
	return res
}
