package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Port                int    `env:"PORT" envDefault:"8080"`
	RedisURL            string `env:"REDIS_URL,required"`
	OpenAIAPIKey        string `env:"OPENAI_API_KEY"`
	OpenAIModel         string `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	CommerceAPIURL      string `env:"COMMERCE_API_URL"`
	CommerceAPIKey      string `env:"COMMERCE_API_KEY"`
	SyncIntervalMins    int    `env:"SYNC_INTERVAL_MINUTES" envDefault:"0"`
	ChatRateLimitPerMin int    `env:"CHAT_RATE_LIMIT_PER_MIN" envDefault:"60"`
	CORSAllowedOrigins  string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*"`
	LogLevel            string `env:"LOG_LEVEL" envDefault:"info"`
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func (c *Config) SyncInterval() time.Duration {
	return time.Duration(c.SyncIntervalMins) * time.Minute
}

func (c *Config) AllowedOrigins() []string {
	parts := strings.Split(c.CORSAllowedOrigins, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

func (c *Config) Validate(isProduction bool) error {
	if isProduction {
		if c.OpenAIAPIKey == "" {
			log.Warn().Msg("OPENAI_API_KEY is empty in production: assistant replies will fail")
		}
		if c.CommerceAPIURL == "" {
			log.Warn().Msg("COMMERCE_API_URL is empty in production: product sync disabled")
		}
		if strings.HasPrefix(c.RedisURL, "redis://") {
			return fmt.Errorf("REDIS_URL must use rediss:// (TLS) in production")
		}
	}

	if c.CommerceAPIURL != "" && !strings.HasPrefix(c.CommerceAPIURL, "http://") && !strings.HasPrefix(c.CommerceAPIURL, "https://") {
		return fmt.Errorf("COMMERCE_API_URL must be an absolute http(s) URL")
	}

	return nil
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
