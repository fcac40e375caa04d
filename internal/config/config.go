package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds the runtime configuration. User preferences (credential,
// refresh interval, notifications, theme) live in the state database instead.
type Config struct {
	// github
	FetchTimeout         time.Duration `yaml:"fetch_timeout" env:"PRMONITOR_FETCH_TIMEOUT" env-default:"15s"`
	GitHubAPIURL         string        `yaml:"github_api_url" env:"PRMONITOR_GITHUB_API_URL"`
	GitHubWebHost        string        `yaml:"github_web_host" env:"PRMONITOR_GITHUB_WEB_HOST" env-default:"github.com"`
	MaxConcurrentFetches int           `yaml:"max_concurrent_fetches" env:"PRMONITOR_MAX_CONCURRENT_FETCHES" env-default:"4"`
	StopOnUnauthorized   bool          `yaml:"stop_on_unauthorized" env:"PRMONITOR_STOP_ON_UNAUTHORIZED" env-default:"false"`

	// http api
	HTTPAddr string `yaml:"http_addr" env:"PRMONITOR_HTTP_ADDR" env-default:"127.0.0.1:7878"`

	// desktop notifications
	MuteSound bool `yaml:"mute_sound" env:"PRMONITOR_MUTE_SOUND"`

	// logging
	LogLevel      string `yaml:"log_level" env:"PRMONITOR_LOG_LEVEL" env-default:"info"`
	LogMaxBackups int    `yaml:"log_max_backups" env:"PRMONITOR_LOG_MAX_BACKUPS" env-default:"5"`
	LogMaxSizeMB  int    `yaml:"log_max_size_mb" env:"PRMONITOR_LOG_MAX_SIZE_MB" env-default:"10"`

	// Home is resolved from PRMONITOR_HOME before the file is read
	Home string `yaml:"-"`
}

// Load reads the optional YAML file at path (default $PRMONITOR_HOME/config.yaml)
// and then the PRMONITOR_* environment variables.
func Load(path string) (*Config, error) {
	var cfg Config
	cfg.Home = HomeDir()

	if path == "" {
		path = ConfigPath(cfg.Home)
	}
	path = ExpandPath(path)

	if err := cleanenv.ReadConfig(path, &cfg); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Default returns the configuration obtained from env-default tags only
func Default() *Config {
	var cfg Config
	_ = cleanenv.ReadEnv(&cfg)
	cfg.Home = HomeDir()
	return &cfg
}

// Validate checks value ranges
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.FetchTimeout, validation.Required, validation.Min(time.Second)),
		validation.Field(&c.GitHubWebHost, validation.Required),
		validation.Field(&c.HTTPAddr, validation.Required),
		validation.Field(&c.LogLevel, validation.In("debug", "info", "warn", "error")),
		validation.Field(&c.MaxConcurrentFetches, validation.Required, validation.Min(1), validation.Max(8)),
	)
}
