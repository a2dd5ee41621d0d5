package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the full application configuration loaded from environment variables or .env file.
//
// It is composed of smaller structs that represent different concerns of the system,
// such as server settings, the quotes providers, the caches and the optional Postgres
// price cache.
//
// Example ENV equivalent:
//
//	SERVER_PORT=8080
//	QUOTES_PROVIDERS=yahoo,stooq
//	CACHE_BACKEND=memory
//	CACHE_TTL=10m
//	POSTGRES_HOST=localhost
//	POSTGRES_DB=tickerpulse
type Config struct {
	Server    ServerConfig    // HTTP server configuration
	Quotes    QuotesConfig    // Remote historical-quotes API settings
	Cache     CacheConfig     // Series and chart caching
	Postgres  PostgresConfig  // PostgreSQL connection settings (persistent cache)
	Dashboard DashboardConfig // Input defaults and limits
	Log       LogConfig       // Logger settings
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port           string        // The TCP port the HTTP server will listen on (e.g., "8080")
	RequestTimeout time.Duration // Per-request deadline applied by the router
	RateLimit      int           // Requests per minute per client IP
}

// QuotesConfig describes how daily closes are fetched.
//
// Fields:
//   - Providers: ordered provider names; the first one returning data wins.
//   - Proxy: optional HTTP proxy URL for outbound calls.
//   - Timeout: HTTP client timeout per call.
//   - Parallel: max concurrent ticker fetches per request.
//   - YahooHosts, StooqURL: optional endpoint overrides (mirrors, test servers).
type QuotesConfig struct {
	Providers  []string
	Proxy      string
	Timeout    time.Duration
	Parallel   int
	YahooHosts []string
	StooqURL   string
}

// CacheConfig selects the series cache backend.
type CacheConfig struct {
	Backend  string        // "memory" or "postgres"
	TTL      time.Duration // in-memory entry lifetime
	WarmCron string        // optional cron spec for background warm-up in api mode
}

// PostgresConfig defines connection details for PostgreSQL.
//
// Fields:
//   - Host: hostname of the database server.
//   - Port: port number of the database server (default 5432).
//   - User: username for authentication.
//   - Password: password for authentication.
//   - DBName: target database name.
//   - SSLMode: SSL mode (e.g., "disable", "require").
//   - URL: computed DSN used by database/sql to connect.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	URL      string
}

// DashboardConfig carries widget defaults.
type DashboardConfig struct {
	PresetsFile       string
	DefaultInvestment float64
	MinYear           int
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string
	Pretty bool
}

// UsesPostgres reports whether the persistent cache is enabled.
func (c Config) UsesPostgres() bool {
	return strings.EqualFold(c.Cache.Backend, "postgres")
}

// AppConfig is the globally accessible configuration instance.
//
// It is populated once via LoadConfig() and used throughout the application.
var AppConfig Config

// LoadConfig initializes the global AppConfig by reading from .env file
// or directly from environment variables.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env file (if present).
//  3. Environment variables.
//
// Fatal exit:
//   - If required variables are missing, validateConfig() will terminate the app
//     with a descriptive log message.
func LoadConfig() {
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_REQUEST_TIMEOUT", "20s")
	viper.SetDefault("SERVER_RATE_LIMIT", 120)

	viper.SetDefault("QUOTES_PROVIDERS", "yahoo,stooq")
	viper.SetDefault("QUOTES_PROXY", "")
	viper.SetDefault("QUOTES_TIMEOUT", "30s")
	viper.SetDefault("QUOTES_PARALLEL", 4)
	viper.SetDefault("QUOTES_YAHOO_HOSTS", "")
	viper.SetDefault("QUOTES_STOOQ_URL", "")

	viper.SetDefault("CACHE_BACKEND", "memory")
	viper.SetDefault("CACHE_TTL", "10m")
	viper.SetDefault("CACHE_WARM_CRON", "")

	viper.SetDefault("POSTGRES_HOST", "localhost")
	viper.SetDefault("POSTGRES_PORT", 5432)
	viper.SetDefault("POSTGRES_USER", "postgres")
	viper.SetDefault("POSTGRES_PASSWORD", "postgres")
	viper.SetDefault("POSTGRES_DB", "tickerpulse")
	viper.SetDefault("POSTGRES_SSLMODE", "disable")

	viper.SetDefault("PRESETS_FILE", "")
	viper.SetDefault("DEFAULT_INVESTMENT", 100)
	viper.SetDefault("MIN_YEAR", 1980)

	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_PRETTY", false)

	// Optionally read from .env if present (common in local dev)
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig() // ignore error if no .env

	viper.AutomaticEnv()

	AppConfig = Config{
		Server: ServerConfig{
			Port:           viper.GetString("SERVER_PORT"),
			RequestTimeout: viper.GetDuration("SERVER_REQUEST_TIMEOUT"),
			RateLimit:      viper.GetInt("SERVER_RATE_LIMIT"),
		},
		Quotes: QuotesConfig{
			Providers:  splitList(strings.ToLower(viper.GetString("QUOTES_PROVIDERS"))),
			Proxy:      viper.GetString("QUOTES_PROXY"),
			Timeout:    viper.GetDuration("QUOTES_TIMEOUT"),
			Parallel:   viper.GetInt("QUOTES_PARALLEL"),
			YahooHosts: splitList(viper.GetString("QUOTES_YAHOO_HOSTS")),
			StooqURL:   viper.GetString("QUOTES_STOOQ_URL"),
		},
		Cache: CacheConfig{
			Backend:  strings.ToLower(viper.GetString("CACHE_BACKEND")),
			TTL:      viper.GetDuration("CACHE_TTL"),
			WarmCron: viper.GetString("CACHE_WARM_CRON"),
		},
		Postgres: PostgresConfig{
			Host:     viper.GetString("POSTGRES_HOST"),
			Port:     viper.GetInt("POSTGRES_PORT"),
			User:     viper.GetString("POSTGRES_USER"),
			Password: viper.GetString("POSTGRES_PASSWORD"),
			DBName:   viper.GetString("POSTGRES_DB"),
			SSLMode:  viper.GetString("POSTGRES_SSLMODE"),
		},
		Dashboard: DashboardConfig{
			PresetsFile:       viper.GetString("PRESETS_FILE"),
			DefaultInvestment: viper.GetFloat64("DEFAULT_INVESTMENT"),
			MinYear:           viper.GetInt("MIN_YEAR"),
		},
		Log: LogConfig{
			Level:  viper.GetString("LOG_LEVEL"),
			Pretty: viper.GetBool("LOG_PRETTY"),
		},
	}

	AppConfig.Postgres.URL = fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		AppConfig.Postgres.User,
		AppConfig.Postgres.Password,
		AppConfig.Postgres.Host,
		AppConfig.Postgres.Port,
		AppConfig.Postgres.DBName,
		AppConfig.Postgres.SSLMode,
	)

	validateConfig()
}

// splitList turns "a, b,,c" into [a b c].
func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// validateConfig ensures required variables are present and terminates
// the application if they are missing.
//
// Postgres fields are only required when CACHE_BACKEND=postgres.
func validateConfig() {
	var missing []string

	if AppConfig.Server.Port == "" {
		missing = append(missing, "SERVER_PORT")
	}
	if len(AppConfig.Quotes.Providers) == 0 {
		missing = append(missing, "QUOTES_PROVIDERS")
	}
	switch AppConfig.Cache.Backend {
	case "memory", "postgres":
	default:
		missing = append(missing, "CACHE_BACKEND (memory|postgres)")
	}
	if AppConfig.UsesPostgres() {
		if AppConfig.Postgres.Host == "" {
			missing = append(missing, "POSTGRES_HOST")
		}
		if AppConfig.Postgres.Port == 0 {
			missing = append(missing, "POSTGRES_PORT")
		}
		if AppConfig.Postgres.User == "" {
			missing = append(missing, "POSTGRES_USER")
		}
		if AppConfig.Postgres.DBName == "" {
			missing = append(missing, "POSTGRES_DB")
		}
	}

	if len(missing) > 0 {
		log.Fatalf("missing or invalid required environment variables: %v\n", missing)
	}
}
