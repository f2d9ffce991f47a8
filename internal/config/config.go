package config

import (
	"errors"
	"fmt"
	"time"
)

const (
	defaultServerPort     = 8070
	defaultServerTimeout  = 30
	defaultElasticURL     = "http://localhost:9200"
	defaultElasticRetries = 3
	defaultRedisAddress   = "localhost:6379"
)

// Config holds the full service configuration.
type Config struct {
	Debug         bool          `env:"APP_DEBUG" yaml:"debug"`
	Server        ServerConfig  `yaml:"server"`
	Elasticsearch ElasticConfig `yaml:"elasticsearch"`
	Redis         RedisConfig   `yaml:"redis"`
}

type ServerConfig struct {
	Host         string        `env:"SERVER_HOST" yaml:"host"`
	Port         int           `env:"SERVER_PORT" yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	CORSOrigins  []string      `env:"CORS_ORIGINS" yaml:"cors_origins"`
}

// ElasticConfig holds connection settings for the document store.
type ElasticConfig struct {
	URL        string `env:"ELASTICSEARCH_URL"      yaml:"url"`
	Username   string `env:"ELASTICSEARCH_USERNAME" yaml:"username"`
	Password   string `env:"ELASTICSEARCH_PASSWORD" yaml:"password"`
	MaxRetries int    `yaml:"max_retries"`
}

// RedisConfig holds Redis connection configuration for event publishing.
type RedisConfig struct {
	Address  string `env:"REDIS_ADDRESS"        yaml:"address"`
	Password string `env:"REDIS_PASSWORD"       yaml:"password"`
	DB       int    `env:"REDIS_DB"             yaml:"db"`
	Enabled  bool   `env:"REDIS_EVENTS_ENABLED" yaml:"enabled"` // Feature flag for event publishing
}

func (c *Config) Validate() error {
	if c.Server.Host == "" {
		return errors.New("server.host is required")
	}
	if c.Server.Port <= 0 {
		return errors.New("server.port is required and must be positive")
	}
	if c.Elasticsearch.URL == "" {
		return errors.New("elasticsearch.url is required")
	}
	return nil
}

// Load reads the config file, applies defaults and env overrides, and
// validates the result.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := loadFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	setDefaults(&cfg)

	// Re-apply env overrides after defaults (env always wins)
	applyEnvOverrides(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = defaultServerPort
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = defaultServerTimeout * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = defaultServerTimeout * time.Second
	}
	if len(cfg.Server.CORSOrigins) == 0 {
		cfg.Server.CORSOrigins = []string{
			"http://localhost:3000", // Public site frontend
			"http://localhost:3001", // Admin panel frontend
		}
	}
	if cfg.Elasticsearch.URL == "" {
		cfg.Elasticsearch.URL = defaultElasticURL
	}
	if cfg.Elasticsearch.MaxRetries == 0 {
		cfg.Elasticsearch.MaxRetries = defaultElasticRetries
	}
	if cfg.Redis.Address == "" {
		cfg.Redis.Address = defaultRedisAddress
	}
	// Note: cfg.Redis.Enabled defaults to false (feature flag)
}
