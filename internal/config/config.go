package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// EnvPrefix is prepended to every variable name, e.g. MOMENTS_SECRET_KEY.
const EnvPrefix = "MOMENTS"

const minSecretKeyLength = 32

var insecureSecretKeys = map[string]bool{
	"change_me_in_production":                    true,
	"replace_with_at_least_32_random_characters": true,
}

var (
	ErrSecretKeyMissing  = errors.New("SECRET_KEY is required")
	ErrSecretKeyInsecure = errors.New("SECRET_KEY uses an example placeholder")
	ErrSecretKeyTooShort = fmt.Errorf("SECRET_KEY must be at least %d characters", minSecretKeyLength)
)

type Config struct {
	SecretKey       string `envconfig:"SECRET_KEY"`
	DBPath          string `envconfig:"DB_PATH" default:"data/moments.db"`
	Port            int    `envconfig:"PORT" default:"8080"`
	TZ              string `envconfig:"TZ" default:"UTC"`
	DefaultLanguage string `envconfig:"DEFAULT_LANGUAGE" default:"en"`

	// Byte budgets for the durable namespace and for each session namespace.
	StorageQuotaBytes int64 `envconfig:"STORAGE_QUOTA_BYTES" default:"5242880"`
	SessionQuotaBytes int64 `envconfig:"SESSION_QUOTA_BYTES" default:"5242880"`

	WatchInterval time.Duration `envconfig:"WATCH_INTERVAL" default:"2s"`
	SessionTTL    time.Duration `envconfig:"SESSION_TTL" default:"24h"`
	CookieSecure  bool          `envconfig:"COOKIE_SECURE" default:"false"`
	LogLevel      string        `envconfig:"LOG_LEVEL" default:"info"`
}

// Load reads an optional .env file and then the MOMENTS_* environment.
// Variables already set in the environment win over the file.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, path := range envFiles {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	}

	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log.Debug().
		Str("db_path", cfg.DBPath).
		Int("port", cfg.Port).
		Str("tz", cfg.TZ).
		Str("default_language", cfg.DefaultLanguage).
		Int64("storage_quota_bytes", cfg.StorageQuotaBytes).
		Dur("watch_interval", cfg.WatchInterval).
		Bool("cookie_secure", cfg.CookieSecure).
		Msg("configuration loaded")

	return &cfg, nil
}

func (c *Config) Validate() error {
	secret, err := ResolveSecretKey(c.SecretKey)
	if err != nil {
		return err
	}
	c.SecretKey = secret

	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT %d out of range", c.Port)
	}
	if c.StorageQuotaBytes <= 0 || c.SessionQuotaBytes <= 0 {
		return errors.New("storage quotas must be positive")
	}
	if c.WatchInterval <= 0 {
		return errors.New("WATCH_INTERVAL must be positive")
	}
	if strings.TrimSpace(c.DBPath) == "" {
		c.DBPath = filepath.Join("data", "moments.db")
	}
	return nil
}

// ResolveSecretKey rejects empty, placeholder and short secrets.
func ResolveSecretKey(raw string) (string, error) {
	secret := strings.TrimSpace(raw)
	switch {
	case secret == "":
		return "", ErrSecretKeyMissing
	case insecureSecretKeys[strings.ToLower(secret)]:
		return "", ErrSecretKeyInsecure
	case len(secret) < minSecretKeyLength:
		return "", ErrSecretKeyTooShort
	}
	return secret, nil
}

// Location loads TZ, falling back to UTC for unknown zone names.
func (c *Config) Location() *time.Location {
	location, err := time.LoadLocation(c.TZ)
	if err != nil {
		log.Warn().Str("tz", c.TZ).Msg("invalid TZ, falling back to UTC")
		return time.UTC
	}
	return location
}

func (c *Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}
