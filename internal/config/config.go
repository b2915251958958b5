// Package config loads service configuration from an optional YAML file with
// environment overrides. Environment always wins, so deployments can keep a
// checked-in config.yaml for defaults.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config is the fully-resolved runtime configuration.
type Config struct {
	Port    string
	GinMode string

	MetadataTTL time.Duration
	FaviconTTL  time.Duration

	FetchTimeout      time.Duration
	FetchMaxBytes     int64
	FetchMaxRedirects int

	FaviconProbeTimeout time.Duration

	TranscriptServiceURL string
	OpenAIAPIKey         string
	OpenAIBaseURL        string
	OpenAIModel          string

	RateLimitRPS   float64
	RateLimitBurst int
}

// fileConfig mirrors config.yaml. Only non-secret knobs live here.
type fileConfig struct {
	Port                 string `yaml:"port"`
	GinMode              string `yaml:"gin_mode"`
	MetadataTTL          string `yaml:"metadata_cache_ttl"`
	FaviconTTL           string `yaml:"favicon_cache_ttl"`
	FetchTimeout         string `yaml:"fetch_timeout"`
	FetchMaxBytes        int64  `yaml:"fetch_max_bytes"`
	FetchMaxRedirects    int    `yaml:"fetch_max_redirects"`
	FaviconProbeTimeout  string `yaml:"favicon_probe_timeout"`
	TranscriptServiceURL string `yaml:"transcript_service_url"`
	RateLimitRPS         float64 `yaml:"rate_limit_rps"`
	RateLimitBurst       int    `yaml:"rate_limit_burst"`
}

// LoadEnv loads .env files into the process environment if present.
func LoadEnv(logger *logrus.Logger) {
	for _, file := range []string{".env", ".env.dev"} {
		if _, err := os.Stat(file); err != nil {
			continue
		}
		if err := godotenv.Overload(file); err != nil {
			logger.WithError(err).Warnf("Failed to load %s", file)
		}
	}
}

// Load resolves configuration from the optional YAML file at path plus the
// environment.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Port:                "8080",
		GinMode:             "debug",
		MetadataTTL:         time.Hour,
		FaviconTTL:          24 * time.Hour,
		FetchTimeout:        10 * time.Second,
		FetchMaxBytes:       3 << 20,
		FetchMaxRedirects:   5,
		FaviconProbeTimeout: 3 * time.Second,
		RateLimitRPS:        10,
		RateLimitBurst:      20,
	}

	if path != "" {
		if err := applyFile(cfg, path); err != nil {
			return nil, err
		}
	}

	cfg.Port = GetEnv("PORT", cfg.Port)
	cfg.GinMode = GetEnv("GIN_MODE", cfg.GinMode)
	cfg.MetadataTTL = GetEnvDuration("METADATA_CACHE_TTL", cfg.MetadataTTL)
	cfg.FaviconTTL = GetEnvDuration("FAVICON_CACHE_TTL", cfg.FaviconTTL)
	cfg.FetchTimeout = GetEnvDuration("FETCH_TIMEOUT", cfg.FetchTimeout)
	cfg.FetchMaxBytes = int64(GetEnvInt("FETCH_MAX_BYTES", int(cfg.FetchMaxBytes)))
	cfg.FetchMaxRedirects = GetEnvInt("FETCH_MAX_REDIRECTS", cfg.FetchMaxRedirects)
	cfg.FaviconProbeTimeout = GetEnvDuration("FAVICON_PROBE_TIMEOUT", cfg.FaviconProbeTimeout)
	cfg.TranscriptServiceURL = GetEnv("TRANSCRIPT_SERVICE_URL", cfg.TranscriptServiceURL)
	cfg.OpenAIAPIKey = GetEnv("OPENAI_API_KEY", "")
	cfg.OpenAIBaseURL = GetEnv("OPENAI_BASE_URL", "")
	cfg.OpenAIModel = GetEnv("OPENAI_MODEL", "")
	cfg.RateLimitRPS = GetEnvFloat("RATE_LIMIT_RPS", cfg.RateLimitRPS)
	cfg.RateLimitBurst = GetEnvInt("RATE_LIMIT_BURST", cfg.RateLimitBurst)

	return cfg, nil
}

func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}

	if fc.Port != "" {
		cfg.Port = fc.Port
	}
	if fc.GinMode != "" {
		cfg.GinMode = fc.GinMode
	}
	if fc.FetchMaxBytes > 0 {
		cfg.FetchMaxBytes = fc.FetchMaxBytes
	}
	if fc.FetchMaxRedirects > 0 {
		cfg.FetchMaxRedirects = fc.FetchMaxRedirects
	}
	if fc.TranscriptServiceURL != "" {
		cfg.TranscriptServiceURL = fc.TranscriptServiceURL
	}
	if fc.RateLimitRPS > 0 {
		cfg.RateLimitRPS = fc.RateLimitRPS
	}
	if fc.RateLimitBurst > 0 {
		cfg.RateLimitBurst = fc.RateLimitBurst
	}
	for _, d := range []struct {
		raw string
		dst *time.Duration
	}{
		{fc.MetadataTTL, &cfg.MetadataTTL},
		{fc.FaviconTTL, &cfg.FaviconTTL},
		{fc.FetchTimeout, &cfg.FetchTimeout},
		{fc.FaviconProbeTimeout, &cfg.FaviconProbeTimeout},
	} {
		if d.raw == "" {
			continue
		}
		parsed, err := time.ParseDuration(d.raw)
		if err != nil {
			return fmt.Errorf("parse duration %q: %w", d.raw, err)
		}
		*d.dst = parsed
	}
	return nil
}

// GetEnv gets an environment variable with a default value.
func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetEnvInt gets an integer environment variable with a default value.
func GetEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// GetEnvFloat gets a float environment variable with a default value.
func GetEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// GetEnvDuration gets a duration environment variable with a default value.
func GetEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// GetLogLevel resolves the logrus level from LOG_LEVEL.
func GetLogLevel() logrus.Level {
	switch os.Getenv("LOG_LEVEL") {
	case "debug":
		return logrus.DebugLevel
	case "warn":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}
