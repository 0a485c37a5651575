package bootstrap

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the resolved runtime configuration for the storefront backend.
// It merges file defaults and environment overrides to support both local and deployed runs.
type Config struct {
	ServiceID string

	HTTPPort       int
	AllowedOrigins []string

	DatabaseURL string
	RedisURL    string
	MaxDBConns  int32

	StripeSecretKey string
	ResendAPIKey    string
	EmailFrom       string
	EmailFromName   string

	SiteBaseURL          string
	DownloadSigningKey   string
	ProductName          string
	ProductAsset         string
	Currency             string
	BcryptCost           int
	SessionTTL           time.Duration
	FailedLoginThreshold int
	RateLimitWindow      time.Duration
	LockoutDuration      time.Duration

	SignedURLTTL   time.Duration
	DownloadTTL    time.Duration
	MaxDownloads   int
	ProcessedTTL   time.Duration
	IdempotencyTTL time.Duration

	OutboxPollInterval time.Duration
	OutboxBatchSize    int
	OutboxClaimTTL     time.Duration
	OutboxMaxRetries   int
	SessionSweepEvery  time.Duration
}

// configFile mirrors the YAML schema used by configs/default.yaml.
// It is intentionally separate from Config so runtime-only fields stay internal.
type configFile struct {
	Service struct {
		ID       string `yaml:"id"`
		HTTPPort int    `yaml:"http_port"`
	} `yaml:"service"`
	Dependencies struct {
		PostgresURL string `yaml:"postgres_url"`
		RedisURL    string `yaml:"redis_url"`
	} `yaml:"dependencies"`
	Storefront struct {
		SiteBaseURL    string   `yaml:"site_base_url"`
		AllowedOrigins []string `yaml:"allowed_origins"`
		ProductName    string   `yaml:"product_name"`
		ProductAsset   string   `yaml:"product_asset"`
		Currency       string   `yaml:"currency"`
	} `yaml:"storefront"`
}

// LoadConfig resolves configuration in priority order: defaults -> file -> env.
// A local .env file is read first so development secrets stay out of the shell.
func LoadConfig(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		ServiceID:            "luxevision-storefront",
		HTTPPort:             8080,
		AllowedOrigins:       []string{"https://luxevisionshop.com", "https://www.luxevisionshop.com"},
		MaxDBConns:           20,
		EmailFrom:            "noreply@luxevisionshop.com",
		EmailFromName:        "LuxeVision",
		SiteBaseURL:          "https://luxevisionshop.com",
		ProductName:          "LUXE Masterclass",
		ProductAsset:         "/assets/luxe-masterclass.zip",
		Currency:             "usd",
		BcryptCost:           12,
		SessionTTL:           24 * time.Hour,
		FailedLoginThreshold: 5,
		RateLimitWindow:      15 * time.Minute,
		LockoutDuration:      15 * time.Minute,
		SignedURLTTL:         time.Hour,
		DownloadTTL:          7 * 24 * time.Hour,
		MaxDownloads:         5,
		ProcessedTTL:         24 * time.Hour,
		IdempotencyTTL:       24 * time.Hour,
		OutboxPollInterval:   2 * time.Second,
		OutboxBatchSize:      100,
		OutboxClaimTTL:       30 * time.Second,
		OutboxMaxRetries:     5,
		SessionSweepEvery:    time.Hour,
	}

	raw, err := os.ReadFile(path)
	if err == nil {
		var f configFile
		if unmarshalErr := yaml.Unmarshal(raw, &f); unmarshalErr != nil {
			return Config{}, fmt.Errorf("parse config file: %w", unmarshalErr)
		}
		if f.Service.ID != "" {
			cfg.ServiceID = f.Service.ID
		}
		if f.Service.HTTPPort > 0 {
			cfg.HTTPPort = f.Service.HTTPPort
		}
		if f.Dependencies.PostgresURL != "" {
			cfg.DatabaseURL = f.Dependencies.PostgresURL
		}
		if f.Dependencies.RedisURL != "" {
			cfg.RedisURL = f.Dependencies.RedisURL
		}
		if f.Storefront.SiteBaseURL != "" {
			cfg.SiteBaseURL = f.Storefront.SiteBaseURL
		}
		if len(f.Storefront.AllowedOrigins) > 0 {
			cfg.AllowedOrigins = f.Storefront.AllowedOrigins
		}
		if f.Storefront.ProductName != "" {
			cfg.ProductName = f.Storefront.ProductName
		}
		if f.Storefront.ProductAsset != "" {
			cfg.ProductAsset = f.Storefront.ProductAsset
		}
		if f.Storefront.Currency != "" {
			cfg.Currency = f.Storefront.Currency
		}
	}

	cfg.DatabaseURL = envOrDefault("DB_URL", envOrDefault("POSTGRES_URL", cfg.DatabaseURL))
	cfg.RedisURL = envOrDefault("REDIS_URL", cfg.RedisURL)
	cfg.StripeSecretKey = envOrDefault("STRIPE_SECRET_KEY", cfg.StripeSecretKey)
	cfg.ResendAPIKey = envOrDefault("RESEND_API_KEY", cfg.ResendAPIKey)
	cfg.EmailFrom = envOrDefault("EMAIL_FROM", cfg.EmailFrom)
	cfg.EmailFromName = envOrDefault("EMAIL_FROM_NAME", cfg.EmailFromName)
	cfg.SiteBaseURL = strings.TrimRight(envOrDefault("SITE_URL", cfg.SiteBaseURL), "/")
	cfg.DownloadSigningKey = envOrDefault("DOWNLOAD_SIGNING_KEY", cfg.DownloadSigningKey)
	cfg.AllowedOrigins = envCSV("ALLOWED_ORIGINS", cfg.AllowedOrigins)
	cfg.ProductName = envOrDefault("PRODUCT_NAME", cfg.ProductName)
	cfg.ProductAsset = envOrDefault("PRODUCT_ASSET", cfg.ProductAsset)
	cfg.Currency = strings.ToLower(envOrDefault("PRODUCT_CURRENCY", cfg.Currency))

	cfg.HTTPPort = envInt("HTTP_PORT", cfg.HTTPPort)
	cfg.BcryptCost = envInt("BCRYPT_ROUNDS", cfg.BcryptCost)
	cfg.FailedLoginThreshold = envInt("FAILED_LOGIN_THRESHOLD", cfg.FailedLoginThreshold)
	cfg.MaxDownloads = envInt("MAX_DOWNLOADS", cfg.MaxDownloads)
	cfg.MaxDBConns = int32(envInt("DB_MAX_CONNS", int(cfg.MaxDBConns)))

	cfg.SessionTTL = time.Duration(envInt("SESSION_EXPIRY_HOURS", int(cfg.SessionTTL.Hours()))) * time.Hour
	cfg.RateLimitWindow = time.Duration(envInt("RATE_LIMIT_WINDOW_MINUTES", int(cfg.RateLimitWindow.Minutes()))) * time.Minute
	cfg.LockoutDuration = time.Duration(envInt("ACCOUNT_LOCKOUT_MINUTES", int(cfg.LockoutDuration.Minutes()))) * time.Minute
	cfg.SignedURLTTL = time.Duration(envInt("SIGNED_URL_TTL_MINUTES", int(cfg.SignedURLTTL.Minutes()))) * time.Minute
	cfg.DownloadTTL = time.Duration(envInt("DOWNLOAD_EXPIRY_DAYS", int(cfg.DownloadTTL.Hours()/24))) * 24 * time.Hour
	cfg.ProcessedTTL = time.Duration(envInt("PROCESSED_SESSION_TTL_HOURS", int(cfg.ProcessedTTL.Hours()))) * time.Hour
	cfg.IdempotencyTTL = time.Duration(envInt("IDEMPOTENCY_TTL_HOURS", int(cfg.IdempotencyTTL.Hours()))) * time.Hour
	cfg.OutboxPollInterval = time.Duration(envInt("OUTBOX_POLL_SECONDS", int(cfg.OutboxPollInterval.Seconds()))) * time.Second
	cfg.OutboxBatchSize = envInt("OUTBOX_BATCH_SIZE", cfg.OutboxBatchSize)
	cfg.OutboxClaimTTL = time.Duration(envInt("OUTBOX_CLAIM_TTL_SECONDS", int(cfg.OutboxClaimTTL.Seconds()))) * time.Second
	cfg.OutboxMaxRetries = envInt("OUTBOX_MAX_RETRIES", cfg.OutboxMaxRetries)
	cfg.SessionSweepEvery = time.Duration(envInt("SESSION_SWEEP_MINUTES", int(cfg.SessionSweepEvery.Minutes()))) * time.Minute

	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("missing DB_URL/POSTGRES_URL")
	}
	if cfg.RedisURL == "" {
		return Config{}, fmt.Errorf("missing REDIS_URL")
	}
	if cfg.StripeSecretKey == "" {
		return Config{}, fmt.Errorf("missing STRIPE_SECRET_KEY")
	}
	if cfg.DownloadSigningKey == "" {
		return Config{}, fmt.Errorf("missing DOWNLOAD_SIGNING_KEY")
	}

	return cfg, nil
}

// envOrDefault returns an env var when present, otherwise the provided fallback.
func envOrDefault(name, fallback string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return fallback
}

// envInt parses integer env vars with safe fallback on empty/invalid values.
func envInt(name string, fallback int) int {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

// envCSV parses comma-separated env vars and removes empty segments.
func envCSV(name string, fallback []string) []string {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	parts := make([]string, 0)
	for _, part := range strings.Split(raw, ",") {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		parts = append(parts, trimmed)
	}
	if len(parts) == 0 {
		return fallback
	}
	return parts
}
