package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Upstream Upstream
	JWT      JWTConfig
	CORS     CORSConfig
	Log      LogConfig
	Booking  BookingConfig
	Checkout CheckoutConfig
	PixWatch PixWatchConfig
}

// Upstream describes the marketplace core API this gateway fronts.
type Upstream struct {
	BaseURL string
	Timeout time.Duration
}

type JWTConfig struct {
	Secret string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// BookingConfig tunes the wizard draft store.
type BookingConfig struct {
	DraftTTL        time.Duration
	CleanupInterval time.Duration
}

// CheckoutConfig carries the summary copy shown inside the hosted checkout.
type CheckoutConfig struct {
	SummaryTitle    string
	SummarySubtitle string
}

// PixWatchConfig governs the background PIX payment watcher.
type PixWatchConfig struct {
	Enabled      bool
	PollInterval time.Duration
	MaxAttempts  int
	Workers      int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Upstream = Upstream{
		BaseURL: strings.TrimRight(v.GetString("UPSTREAM_BASE_URL"), "/"),
		Timeout: parseDuration(v.GetString("UPSTREAM_TIMEOUT"), 15*time.Second),
	}

	cfg.JWT = JWTConfig{Secret: v.GetString("JWT_SECRET")}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Booking = BookingConfig{
		DraftTTL:        parseDuration(v.GetString("DRAFT_TTL"), 2*time.Hour),
		CleanupInterval: parseDuration(v.GetString("DRAFT_CLEANUP_INTERVAL"), 10*time.Minute),
	}

	cfg.Checkout = CheckoutConfig{
		SummaryTitle:    v.GetString("CHECKOUT_SUMMARY_TITLE"),
		SummarySubtitle: v.GetString("CHECKOUT_SUMMARY_SUBTITLE"),
	}

	cfg.PixWatch = PixWatchConfig{
		Enabled:      v.GetBool("PIX_WATCH_ENABLED"),
		PollInterval: parseDuration(v.GetString("PIX_WATCH_POLL_INTERVAL"), 5*time.Second),
		MaxAttempts:  v.GetInt("PIX_WATCH_MAX_ATTEMPTS"),
		Workers:      v.GetInt("PIX_WATCH_WORKERS"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")
	v.SetDefault("UPSTREAM_TIMEOUT", "15s")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("DRAFT_TTL", "2h")
	v.SetDefault("DRAFT_CLEANUP_INTERVAL", "10m")
	v.SetDefault("CHECKOUT_SUMMARY_TITLE", "GoDrive")
	v.SetDefault("CHECKOUT_SUMMARY_SUBTITLE", "Driving lessons")
	v.SetDefault("PIX_WATCH_ENABLED", true)
	v.SetDefault("PIX_WATCH_POLL_INTERVAL", "5s")
	v.SetDefault("PIX_WATCH_MAX_ATTEMPTS", 24)
	v.SetDefault("PIX_WATCH_WORKERS", 2)
}

func (c *Config) validate() error {
	if c.Upstream.BaseURL == "" {
		return errors.New("UPSTREAM_BASE_URL is required")
	}
	if c.Env == EnvProduction && c.JWT.Secret == "" {
		return errors.New("JWT_SECRET is required in production")
	}
	return nil
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
