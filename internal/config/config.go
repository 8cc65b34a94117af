package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port  string `envconfig:"PORT" default:"8080"`
	Debug bool   `envconfig:"DEBUG" default:"false"`

	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`

	TavilyAPIKey string `envconfig:"TAVILY_API_KEY"`
	OpenAIAPIKey string `envconfig:"OPENAI_API_KEY"`

	SentryDSN   string `envconfig:"SENTRY_DSN"`
	Environment string `envconfig:"ENVIRONMENT" default:"development"`

	// Symbols is the tracked ticker set scraped on every ingestion run.
	Symbols []string `envconfig:"SYMBOLS" default:"NVDA,GOOG,TSLA"`

	ScrapeInterval time.Duration `envconfig:"SCRAPE_INTERVAL" default:"6h"`
	SweepInterval  time.Duration `envconfig:"SWEEP_INTERVAL" default:"24h"`
	Retention      time.Duration `envconfig:"RETENTION" default:"24h"`

	MaxNewsResults  int           `envconfig:"MAX_NEWS_RESULTS" default:"7"`
	ProviderTimeout time.Duration `envconfig:"PROVIDER_TIMEOUT" default:"30s"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("MARKETMIND", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	return cfg
}

func (c *Config) HasTavily() bool {
	return c.TavilyAPIKey != ""
}

func (c *Config) HasOpenAI() bool {
	return c.OpenAIAPIKey != ""
}
