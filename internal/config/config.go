// Package config provides configuration management for the key races
// reporter. It handles loading, validation, and access to configuration
// values from a YAML file and environment variables via Viper. Components
// receive configuration as constructor parameters and never read ambient
// environment state themselves.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/jonesrussell/keyraces/internal/logger"
)

// Behavior defaults.
const (
	defaultRequestDelay  = 1 * time.Second
	defaultMaxPages      = 40
	defaultWorkers       = 4
	defaultTargetTimeout = 20 * time.Second
	defaultRunTimeout    = 5 * time.Minute
	defaultUserAgent     = "keyraces-reporter/1.0 (+https://github.com/jonesrussell/keyraces)"
)

// SMTP defaults.
const defaultSMTPPort = 587

// Config represents the application configuration.
type Config struct {
	// App holds application-level settings.
	App AppConfig `mapstructure:"app"`
	// Logger holds logger settings.
	Logger logger.Config `mapstructure:"logger"`
	// Inputs holds paths to the two input lists.
	Inputs InputsConfig `mapstructure:"inputs"`
	// Behavior holds extraction politeness and concurrency settings.
	Behavior BehaviorConfig `mapstructure:"behavior"`
	// Provider selects the source adapter ("wikipedia" or "ballotpedia").
	Provider string `mapstructure:"provider"`
	// Ranking holds the office priority table.
	Ranking RankingConfig `mapstructure:"ranking"`
	// Aliases extends the built-in state and office normalization tables.
	Aliases AliasConfig `mapstructure:"aliases"`
	// Email holds report delivery settings.
	Email EmailConfig `mapstructure:"email"`
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Environment string `mapstructure:"environment"`
	Debug       bool   `mapstructure:"debug"`
}

// InputsConfig holds paths to the curated and target lists.
type InputsConfig struct {
	Curated string `mapstructure:"curated"`
	Targets string `mapstructure:"targets"`
}

// BehaviorConfig holds extraction politeness and concurrency settings.
type BehaviorConfig struct {
	// RequestDelay is the minimum delay between requests to one source.
	RequestDelay time.Duration `mapstructure:"request_delay"`
	// MaxPages caps the number of pages fetched in one run.
	MaxPages int `mapstructure:"max_pages"`
	// Workers bounds concurrent extractions.
	Workers int `mapstructure:"workers"`
	// TargetTimeout is the per-target extraction timeout.
	TargetTimeout time.Duration `mapstructure:"target_timeout"`
	// RunTimeout is the global deadline for the extraction phase.
	RunTimeout time.Duration `mapstructure:"run_timeout"`
	// UserAgent identifies the reporter to upstream sources.
	UserAgent string `mapstructure:"user_agent"`
}

// RankingConfig holds the office priority table used by the ranker.
type RankingConfig struct {
	// OfficePriority maps canonical office tokens to precedence values;
	// lower sorts first. Unlisted offices sort after all listed ones.
	OfficePriority map[string]int `mapstructure:"office_priority"`
}

// AliasConfig extends the built-in normalization tables.
type AliasConfig struct {
	States  map[string]string `mapstructure:"states"`
	Offices map[string]string `mapstructure:"offices"`
}

// EmailConfig holds report delivery settings.
type EmailConfig struct {
	Recipients []string   `mapstructure:"recipients"`
	Subject    string     `mapstructure:"subject"`
	SMTP       SMTPConfig `mapstructure:"smtp"`
}

// SMTPConfig holds SMTP transport settings.
type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
	StartTLS bool   `mapstructure:"starttls"`
}

// LoadConfig builds the configuration from Viper's current state.
// Call after cmd.initConfig has read the config file and environment.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	setDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// setDefaults fills zero values with defaults.
func setDefaults(cfg *Config) {
	if cfg.Behavior.RequestDelay == 0 {
		cfg.Behavior.RequestDelay = defaultRequestDelay
	}
	if cfg.Behavior.MaxPages == 0 {
		cfg.Behavior.MaxPages = defaultMaxPages
	}
	if cfg.Behavior.Workers == 0 {
		cfg.Behavior.Workers = defaultWorkers
	}
	if cfg.Behavior.TargetTimeout == 0 {
		cfg.Behavior.TargetTimeout = defaultTargetTimeout
	}
	if cfg.Behavior.RunTimeout == 0 {
		cfg.Behavior.RunTimeout = defaultRunTimeout
	}
	if cfg.Behavior.UserAgent == "" {
		cfg.Behavior.UserAgent = defaultUserAgent
	}
	if cfg.Provider == "" {
		cfg.Provider = "wikipedia"
	}
	if cfg.Inputs.Curated == "" {
		cfg.Inputs.Curated = "races.curated.yaml"
	}
	if cfg.Inputs.Targets == "" {
		cfg.Inputs.Targets = "races.targets.yaml"
	}
	if cfg.Email.Subject == "" {
		cfg.Email.Subject = "Key Races Weekly Report"
	}
	if cfg.Email.SMTP.Port == 0 {
		cfg.Email.SMTP.Port = defaultSMTPPort
		cfg.Email.SMTP.StartTLS = true
	}
}

// Validate checks configuration invariants shared by all commands.
func (c *Config) Validate() error {
	if c.Behavior.Workers < 1 {
		return errors.New("behavior.workers must be positive")
	}
	if c.Behavior.RequestDelay < 0 {
		return errors.New("behavior.request_delay must not be negative")
	}
	if c.Behavior.TargetTimeout <= 0 {
		return errors.New("behavior.target_timeout must be positive")
	}
	if c.Inputs.Curated == "" && c.Inputs.Targets == "" {
		return errors.New("at least one of inputs.curated and inputs.targets is required")
	}
	return nil
}

// ValidateSMTP checks that the SMTP configuration is complete enough to
// send mail. Only called when a command actually intends to email.
func (c *Config) ValidateSMTP() error {
	s := c.Email.SMTP
	if s.Host == "" || s.User == "" || s.Password == "" || s.From == "" {
		return errors.New("smtp config incomplete: require host, user, password, from")
	}
	return nil
}
