package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	StoreMemory   = "memory"
	StoreFile     = "file"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
)

type Config struct {
	AppEnv string `envconfig:"APP_ENV" default:"development"`

	APIBaseURL      string        `envconfig:"API_BASE_URL" required:"true"`
	APITimeout      time.Duration `envconfig:"API_TIMEOUT" default:"15s"`
	APIRateLimit    float64       `envconfig:"API_RATE_LIMIT" default:"10"`
	APIRateBurst    int           `envconfig:"API_RATE_BURST" default:"20"`
	CoalesceRefresh bool          `envconfig:"API_COALESCE_REFRESH" default:"false"`

	StoreDriver    string `envconfig:"STORE_DRIVER" default:"file"`
	StorePath      string `envconfig:"STORE_PATH" default:".storefront/state.json"`
	DBURL          string `envconfig:"DB_URL"`
	RedisURL       string `envconfig:"REDIS_URL"`
	StoreNamespace string `envconfig:"STORE_NAMESPACE" default:"storefront"`

	SearchDebounce time.Duration `envconfig:"SEARCH_DEBOUNCE" default:"400ms"`
}

// LoadConfig reads an optional .env file (or the given files) and the process
// environment into a Config.
func LoadConfig(envFiles ...string) (*Config, error) {
	_ = godotenv.Load(envFiles...)

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")
	cfg.StoreDriver = strings.ToLower(strings.TrimSpace(cfg.StoreDriver))

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production")
}

func (c *Config) validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("API_BASE_URL is required")
	}

	switch c.StoreDriver {
	case StoreMemory, StoreFile, StoreSQLite:
	case StorePostgres:
		if c.DBURL == "" {
			return fmt.Errorf("DB_URL is required for store driver %q", c.StoreDriver)
		}
	case StoreRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is required for store driver %q", c.StoreDriver)
		}
	default:
		return fmt.Errorf("unknown store driver %q", c.StoreDriver)
	}
	return nil
}
