// Package config loads sara-intent settings from a YAML file, SARA_*
// environment variables and the provider keys' conventional variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// FileName is the config file name without extension.
const FileName = "sara-intent"

// Config is the full CLI configuration.
type Config struct {
	Threshold float32         `mapstructure:"threshold"`
	Embedding EmbeddingConfig `mapstructure:"embedding"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Reasoner  ReasonerConfig  `mapstructure:"reasoner"`
	Pinecone  PineconeConfig  `mapstructure:"pinecone"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
}

// EmbeddingConfig selects the Tier 2 provider: ngram, openai, voyage or none.
type EmbeddingConfig struct {
	Provider  string `mapstructure:"provider"`
	Model     string `mapstructure:"model"`
	Dimension int    `mapstructure:"dimension"`
	BaseURL   string `mapstructure:"base_url"`
	APIKey    string `mapstructure:"api_key"`
}

// CacheConfig selects the embedding cache backend: file, badger, redis or none.
type CacheConfig struct {
	Backend  string        `mapstructure:"backend"`
	Path     string        `mapstructure:"path"`
	Dir      string        `mapstructure:"dir"`
	RedisURL string        `mapstructure:"redis_url"`
	Key      string        `mapstructure:"key"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// ReasonerConfig configures the OpenAI-compatible Tier 3 reasoner.
type ReasonerConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Model           string        `mapstructure:"model"`
	BaseURL         string        `mapstructure:"base_url"`
	APIKey          string        `mapstructure:"api_key"`
	SystemPrompt    string        `mapstructure:"system_prompt"`
	Temperature     *float32      `mapstructure:"temperature"`
	Timeout         time.Duration `mapstructure:"timeout"`
	BreakerFailures uint32        `mapstructure:"breaker_failures"`
	BreakerCooldown time.Duration `mapstructure:"breaker_cooldown"`
}

// PineconeConfig enables the remote vector index.
type PineconeConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	APIKey  string `mapstructure:"api_key"`
	Host    string `mapstructure:"host"`
}

// MetricsConfig configures the Prometheus endpoint of serve-metrics.
type MetricsConfig struct {
	Addr string `mapstructure:"addr"`
}

// Load reads configuration. An explicit path must exist; otherwise
// sara-intent.yaml is looked up in the working directory and in
// $HOME/.config/sara, and a missing file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "sara"))
		}
	}

	v.SetEnvPrefix("SARA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Provider keys are usually exported without the SARA_ prefix
	v.BindEnv("embedding.api_key", "SARA_EMBEDDING_API_KEY", "OPENAI_API_KEY")
	v.BindEnv("reasoner.api_key", "SARA_REASONER_API_KEY", "OPENAI_API_KEY")
	v.BindEnv("pinecone.api_key", "SARA_PINECONE_API_KEY", "PINECONE_API_KEY")
	v.BindEnv("pinecone.host", "SARA_PINECONE_HOST", "PINECONE_HOST")
	v.BindEnv("cache.redis_url", "SARA_CACHE_REDIS_URL", "REDIS_URL")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override it on Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("threshold", 0.65)
	v.SetDefault("embedding.provider", "ngram")
	v.SetDefault("embedding.model", "")
	v.SetDefault("embedding.dimension", 0)
	v.SetDefault("embedding.base_url", "")
	v.SetDefault("cache.backend", "file")
	v.SetDefault("cache.path", "./intent_embeddings.cache")
	v.SetDefault("cache.dir", "./intent_embeddings.badger")
	v.SetDefault("cache.key", "")
	v.SetDefault("cache.ttl", time.Duration(0))
	v.SetDefault("reasoner.enabled", false)
	v.SetDefault("reasoner.model", "")
	v.SetDefault("reasoner.base_url", "")
	v.SetDefault("reasoner.system_prompt", "")
	v.SetDefault("reasoner.timeout", 5*time.Second)
	v.SetDefault("reasoner.breaker_failures", 5)
	v.SetDefault("reasoner.breaker_cooldown", 30*time.Second)
	v.SetDefault("pinecone.enabled", false)
	v.SetDefault("metrics.addr", ":9464")
}

// Validate rejects unknown provider and backend names.
func (c *Config) Validate() error {
	switch c.Embedding.Provider {
	case "ngram", "openai", "voyage", "none":
	default:
		return fmt.Errorf("unknown embedding provider %q", c.Embedding.Provider)
	}

	switch c.Cache.Backend {
	case "file", "badger", "redis", "none":
	default:
		return fmt.Errorf("unknown cache backend %q", c.Cache.Backend)
	}

	if c.Cache.Backend == "redis" && c.Cache.RedisURL == "" {
		return errors.New("cache backend redis needs cache.redis_url or REDIS_URL")
	}
	return nil
}
