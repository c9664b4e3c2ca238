package config

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config is everything the commands need, populated once in the root
// command and shared by all of them.
type Config struct {
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	Store     StoreConfig     `yaml:"store" mapstructure:"store"`
	Batch     BatchConfig     `yaml:"batch" mapstructure:"batch"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// AnthropicConfig holds Anthropic API settings for the note extractor.
type AnthropicConfig struct {
	Key         string  `yaml:"key" mapstructure:"key"`
	Model       string  `yaml:"model" mapstructure:"model"`
	MaxTokens   int64   `yaml:"max_tokens" mapstructure:"max_tokens"`
	Temperature float64 `yaml:"temperature" mapstructure:"temperature"`
	RPM         int     `yaml:"rpm" mapstructure:"rpm"`
}

// StoreConfig configures the session store backend.
type StoreConfig struct {
	Driver string `yaml:"driver" mapstructure:"driver"`
	DSN    string `yaml:"dsn" mapstructure:"dsn"`
}

// BatchConfig bounds the concurrent fan-out of batch runs.
type BatchConfig struct {
	MaxConcurrent int `yaml:"max_concurrent" mapstructure:"max_concurrent"`
}

// ServerConfig holds settings for the session HTTP server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig selects the zap level and output format.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load resolves configuration from defaults, an optional config.yaml in the
// working directory, and ROOFREPORT_* environment variables, in increasing
// precedence.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("ROOFREPORT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("anthropic.model", "claude-sonnet-4-5-20250929")
	v.SetDefault("anthropic.max_tokens", 2048)
	v.SetDefault("anthropic.temperature", 0.2)
	v.SetDefault("anthropic.rpm", 30)
	v.SetDefault("store.driver", "memory")
	v.SetDefault("store.dsn", "")
	v.SetDefault("batch.max_concurrent", 4)
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// A missing config file is fine; any other read error is not.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read config file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}
	return &cfg, nil
}

// Validate checks the configuration for the given mode ("cli" or "serve").
// The Anthropic key is deliberately not required: commands run without it
// and surface the manual-entry path instead.
func (c *Config) Validate(mode string) error {
	var problems []string

	switch mode {
	case "cli":
	case "serve":
		if c.Server.Port <= 0 || c.Server.Port > 65535 {
			problems = append(problems, "server.port must be between 1 and 65535")
		}
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if c.Store.Driver != "memory" && c.Store.Driver != "sqlite" {
		problems = append(problems, fmt.Sprintf("store.driver must be memory or sqlite, got %q", c.Store.Driver))
	}
	if c.Anthropic.MaxTokens <= 0 {
		problems = append(problems, "anthropic.max_tokens must be > 0")
	}
	if c.Anthropic.Temperature < 0 || c.Anthropic.Temperature > 1 {
		problems = append(problems, "anthropic.temperature must be between 0 and 1")
	}
	if c.Anthropic.RPM < 0 {
		problems = append(problems, "anthropic.rpm must be >= 0")
	}
	if c.Batch.MaxConcurrent < 1 || c.Batch.MaxConcurrent > 32 {
		problems = append(problems, "batch.max_concurrent must be between 1 and 32")
	}

	if len(problems) > 0 {
		return eris.Errorf("config: %s", strings.Join(problems, "; "))
	}
	return nil
}

// InitLogger installs the global zap logger described by cfg. Format
// "console" gets the development encoder; everything else logs JSON.
func InitLogger(cfg LogConfig) error {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}

	zapCfg := zap.NewProductionConfig()
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)
	return nil
}
