// Package config loads the router's runtime configuration from the
// environment, following the teacher's applyDefaults pattern (config.go)
// generalised from constructor-argument defaults to environment-variable
// defaults, since this repo is a long-running service rather than an
// embeddable library.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds every environment-derived setting the boot sequence needs.
type Config struct {
	Provider string // LLM_PROVIDER: openrouter|google|anthropic|openai|deepseek

	OpenRouterAPIKey string
	GoogleAPIKey     string
	AnthropicAPIKey  string
	OpenAIAPIKey     string
	DeepSeekAPIKey   string

	VoyageAPIKey string

	QdrantURL    string
	PineconeHost string
	PineconeKey  string

	RedisURL    string
	DatabaseURL string

	ModelsCacheDir string
	HFModelName    string

	Port string

	DumpRequests bool
}

const (
	defaultProvider       = "openrouter"
	defaultQdrantURL      = "http://localhost:6334"
	defaultRedisURL       = "redis://localhost:6379/0"
	defaultModelsCacheDir = "./.cache/models"
	defaultHFModelName    = "voyage-3.5-lite"
	defaultPort           = "3000"
)

// Load reads a .env file if present (missing is not an error, matching
// godotenv's use across the example pack) then applies defaults to
// every field not set in the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	c := &Config{
		Provider: os.Getenv("LLM_PROVIDER"),

		OpenRouterAPIKey: os.Getenv("OPENROUTER_API_KEY"),
		GoogleAPIKey:     os.Getenv("GOOGLE_API_KEY"),
		AnthropicAPIKey:  os.Getenv("ANTHROPIC_API_KEY"),
		OpenAIAPIKey:     os.Getenv("OPENAI_API_KEY"),
		DeepSeekAPIKey:   os.Getenv("DEEPSEEK_API_KEY"),

		VoyageAPIKey: os.Getenv("VOYAGE_API_KEY"),

		QdrantURL:    os.Getenv("QDRANT_URL"),
		PineconeHost: os.Getenv("PINECONE_HOST"),
		PineconeKey:  os.Getenv("PINECONE_API_KEY"),

		RedisURL:    os.Getenv("REDIS_URL"),
		DatabaseURL: os.Getenv("DATABASE_URL"),

		ModelsCacheDir: os.Getenv("MODELS_CACHE_DIR"),
		HFModelName:    os.Getenv("HF_MODEL_NAME"),

		Port: os.Getenv("PORT"),

		DumpRequests: parseBool(os.Getenv("DUMP_REQUESTS")),
	}

	c.applyDefaults()

	if c.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	return c, nil
}

// applyDefaults fills in default values for unset config fields, the same
// pattern the teacher's Config.applyDefaults follows for threshold fields.
func (c *Config) applyDefaults() {
	if c.Provider == "" {
		c.Provider = defaultProvider
	}
	if c.QdrantURL == "" {
		c.QdrantURL = defaultQdrantURL
	}
	if c.RedisURL == "" {
		c.RedisURL = defaultRedisURL
	}
	if c.ModelsCacheDir == "" {
		c.ModelsCacheDir = defaultModelsCacheDir
	}
	if c.HFModelName == "" {
		c.HFModelName = defaultHFModelName
	}
	if c.Port == "" {
		c.Port = defaultPort
	}
}

// APIKeyFor returns the API key configured for provider name.
func (c *Config) APIKeyFor(provider string) string {
	switch provider {
	case "google":
		return c.GoogleAPIKey
	case "anthropic":
		return c.AnthropicAPIKey
	case "openai":
		return c.OpenAIAPIKey
	case "deepseek":
		return c.DeepSeekAPIKey
	default:
		return c.OpenRouterAPIKey
	}
}

func parseBool(s string) bool {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false
	}
	return b
}
