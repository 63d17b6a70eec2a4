package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

var validate = validator.New()

type AppConfig struct {
	Port string `validate:"required,numeric"`

	// DataSource is a file path, an http(s) URL or a sqlite:// path.
	DataSource string `validate:"required"`

	// HTTPTimeout bounds outbound requests of an HTTP data source.
	HTTPTimeout time.Duration `validate:"gt=0"`
	// LoadTimeout bounds the single initial dataset load.
	LoadTimeout time.Duration `validate:"gt=0"`

	// WatchInterval controls how often the source is checked for drift (0 = off).
	WatchInterval time.Duration `validate:"gte=0"`

	// Session retention.
	SessionMaxCount int           `validate:"gte=0"` // max tracked browser sessions (0 = unlimited)
	SessionMaxAge   time.Duration `validate:"gte=0"` // idle expiry (0 = never)

	// Location is the zone display timestamps are rendered in.
	Location *time.Location `validate:"required"`
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.Port = getenvDefault("PORT", "8080")
	cfg.DataSource = getenvDefault("DATA_SOURCE", "data/weather-data.json")

	var err error
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "10s"); err != nil {
		return nil, err
	}
	if cfg.LoadTimeout, err = getenvDuration("LOAD_TIMEOUT", "30s"); err != nil {
		return nil, err
	}
	if cfg.WatchInterval, err = getenvDuration("WATCH_INTERVAL", "0"); err != nil {
		return nil, err
	}
	if cfg.SessionMaxAge, err = getenvDuration("SESSION_MAX_AGE", "24h"); err != nil {
		return nil, err
	}
	cfg.SessionMaxCount = getenvInt("SESSION_MAX_COUNT", 10000)

	tz := getenvDefault("TIMEZONE", "Local")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE: %w", err)
	}
	cfg.Location = loc

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
