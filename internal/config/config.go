package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultEnv              = "development"
	defaultHTTPHost         = "0.0.0.0"
	defaultHTTPPort         = 8080
	defaultRedisDB          = 0
	defaultCacheTTLSeconds  = 30
	defaultWikiBaseURL      = "https://prices.runescape.wiki/api/v1/osrs"
	defaultWikiTimeout      = 15 * time.Second
	defaultFreshnessMaxAge  = 10 * time.Minute
	defaultNatureRuneName   = "Nature rune"
	defaultFireRuneName     = "Fire rune"
	defaultFireRunesPerCast = 5
	defaultRefreshExchange  = "ge.refresh"
	defaultLogLevel         = "info"
	defaultStaticDir        = "./public"
)

// Config keeps the runtime configuration for the service.
type Config struct {
	Env       string
	HTTP      HTTPConfig
	Postgres  PostgresConfig
	Redis     RedisConfig
	Cache     CacheConfig
	Wiki      WikiConfig
	Freshness FreshnessConfig
	Runes     RuneConfig
	Admin     AdminConfig
	RabbitMQ  RabbitMQConfig
	Log       LogConfig
	StaticDir string
}

// HTTPConfig holds HTTP server related settings.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr renders the listen address in host:port form.
func (h HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", h.Host, h.Port)
}

// PostgresConfig stores database connection parameters.
type PostgresConfig struct {
	DSN string
}

// RedisConfig stores Redis connection parameters. An empty Addr disables the
// response cache.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// CacheConfig stores cache behavior.
type CacheConfig struct {
	TTLSeconds int
}

// TTL returns the response cache lifetime.
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// WikiConfig describes the upstream prices API. UserAgent is mandatory: the
// provider rejects anonymous clients.
type WikiConfig struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
}

// FreshnessConfig sets the age after which a cached latest price is reported
// as stale.
type FreshnessConfig struct {
	MaxAge time.Duration
}

// RuneConfig names the catalog items whose prices make up the cost of one
// high-alchemy cast.
type RuneConfig struct {
	NatureName  string
	FireName    string
	FirePerCast int
}

type AdminConfig struct {
	CronSecret string
}

// RabbitMQConfig stores broker settings. An empty URL disables refresh events.
type RabbitMQConfig struct {
	URL             string
	RefreshExchange string
}

type LogConfig struct {
	Level string
}

// Load builds Config from environment variables.
func Load() (*Config, error) {
	host := getString("HTTP_HOST", defaultHTTPHost)
	port, err := getInt("HTTP_PORT", defaultHTTPPort)
	if err != nil {
		return nil, fmt.Errorf("parse HTTP_PORT: %w", err)
	}

	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		return nil, errors.New("DATABASE_DSN is required")
	}

	userAgent := strings.TrimSpace(os.Getenv("USER_AGENT"))
	if userAgent == "" {
		return nil, errors.New("USER_AGENT is required by the prices API")
	}

	redisDB, err := getInt("REDIS_DB", defaultRedisDB)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_DB: %w", err)
	}

	cacheTTL, err := getInt("CACHE_TTL_SECONDS", defaultCacheTTLSeconds)
	if err != nil {
		return nil, fmt.Errorf("parse CACHE_TTL_SECONDS: %w", err)
	}

	wikiTimeout, err := getDuration("WIKI_TIMEOUT", defaultWikiTimeout)
	if err != nil {
		return nil, fmt.Errorf("parse WIKI_TIMEOUT: %w", err)
	}

	maxAge, err := getDuration("FRESHNESS_MAX_AGE", defaultFreshnessMaxAge)
	if err != nil {
		return nil, fmt.Errorf("parse FRESHNESS_MAX_AGE: %w", err)
	}
	if maxAge <= 0 {
		return nil, errors.New("FRESHNESS_MAX_AGE must be positive")
	}

	firePerCast, err := getInt("FIRE_RUNES_PER_CAST", defaultFireRunesPerCast)
	if err != nil {
		return nil, fmt.Errorf("parse FIRE_RUNES_PER_CAST: %w", err)
	}

	return &Config{
		Env:  getString("APP_ENV", defaultEnv),
		HTTP: HTTPConfig{Host: host, Port: port},
		Postgres: PostgresConfig{
			DSN: dsn,
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Cache: CacheConfig{
			TTLSeconds: cacheTTL,
		},
		Wiki: WikiConfig{
			BaseURL:   strings.TrimRight(getString("WIKI_BASE_URL", defaultWikiBaseURL), "/"),
			UserAgent: userAgent,
			Timeout:   wikiTimeout,
		},
		Freshness: FreshnessConfig{MaxAge: maxAge},
		Runes: RuneConfig{
			NatureName:  getString("NATURE_RUNE_NAME", defaultNatureRuneName),
			FireName:    getString("FIRE_RUNE_NAME", defaultFireRuneName),
			FirePerCast: firePerCast,
		},
		Admin: AdminConfig{CronSecret: os.Getenv("CRON_SECRET")},
		RabbitMQ: RabbitMQConfig{
			URL:             os.Getenv("RABBITMQ_URL"),
			RefreshExchange: getString("RABBITMQ_REFRESH_EXCHANGE", defaultRefreshExchange),
		},
		Log:       LogConfig{Level: getString("LOG_LEVEL", defaultLogLevel)},
		StaticDir: getString("STATIC_DIR", defaultStaticDir),
	}, nil
}

func getString(key, fallback string) string {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	return value
}

func getInt(key string, fallback int) (int, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("convert %s value %q to int: %w", key, value, err)
	}
	return parsed, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}

	parsed, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("convert %s value %q to duration: %w", key, value, err)
	}
	return parsed, nil
}
