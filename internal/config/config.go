package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the application's configuration.
type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Database struct {
		URL             string `yaml:"url"`
		NamespacePrefix string `yaml:"namespace_prefix"`
	} `yaml:"database"`
	ADB struct {
		Path   string `yaml:"path"`
		Serial string `yaml:"serial"`
	} `yaml:"adb"`
	Analysis struct {
		WindowStart            string   `yaml:"window_start"`
		Timezone               string   `yaml:"timezone"`
		SpamPatterns           []string `yaml:"spam_patterns"`
		CorrelationConcurrency int      `yaml:"correlation_concurrency"`
		ReportCorrelationLimit int      `yaml:"report_correlation_limit"`
	} `yaml:"analysis"`
	Auth struct {
		Enabled           bool   `yaml:"enabled"`
		JWTSecret         string `yaml:"jwt_secret"`
		TokenTTLHours     int    `yaml:"token_ttl_hours"`
		BootstrapUsername string `yaml:"bootstrap_username"`
		BootstrapPassword string `yaml:"bootstrap_password"`
	} `yaml:"auth"`
	Notifier struct {
		Enabled          bool    `yaml:"enabled"`
		TelegramBotToken string  `yaml:"telegram_bot_token"`
		ChatIDs          []int64 `yaml:"chat_ids"`
	} `yaml:"notifier"`
	Log struct {
		Development bool   `yaml:"development"`
		Level       string `yaml:"level"`
	} `yaml:"log"`
}

// LoadConfig reads configuration from the specified YAML file.
func LoadConfig(configPath string) (*Config, error) {
	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	config := &Config{}
	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(config); err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) applyDefaults() {
	// Secrets may reference environment variables
	c.Database.URL = os.ExpandEnv(c.Database.URL)
	c.Auth.JWTSecret = os.ExpandEnv(c.Auth.JWTSecret)
	c.Auth.BootstrapPassword = os.ExpandEnv(c.Auth.BootstrapPassword)
	c.Notifier.TelegramBotToken = os.ExpandEnv(c.Notifier.TelegramBotToken)

	if c.Server.Port == "" {
		c.Server.Port = "3000"
	}
	if c.Database.NamespacePrefix == "" {
		c.Database.NamespacePrefix = "device_"
	}
	if c.ADB.Path == "" {
		c.ADB.Path = "adb"
	}
	if c.Analysis.WindowStart == "" {
		c.Analysis.WindowStart = "2024-01-01T00:00:00Z"
	}
	if c.Analysis.Timezone == "" {
		c.Analysis.Timezone = "Local"
	}
	if c.Analysis.SpamPatterns == nil {
		c.Analysis.SpamPatterns = []string{`example-spam-domain\.com`, `another-spam-site\.net`}
	}
	if c.Analysis.CorrelationConcurrency == 0 {
		c.Analysis.CorrelationConcurrency = 8
	}
	if c.Analysis.ReportCorrelationLimit == 0 {
		c.Analysis.ReportCorrelationLimit = 10
	}
	if c.Auth.TokenTTLHours == 0 {
		c.Auth.TokenTTLHours = 24
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// Validate checks values that cannot be defaulted.
func (c *Config) Validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("database.url is required")
	}
	if _, err := c.WindowStart(); err != nil {
		return fmt.Errorf("invalid analysis.window_start: %w", err)
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("invalid analysis.timezone: %w", err)
	}
	if c.Auth.Enabled && c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret is required when auth is enabled")
	}
	if c.Notifier.Enabled && c.Notifier.TelegramBotToken == "" {
		return fmt.Errorf("notifier.telegram_bot_token is required when the notifier is enabled")
	}
	return nil
}

// WindowStart is the lower timeline bound.
func (c *Config) WindowStart() (time.Time, error) {
	return time.Parse(time.RFC3339, c.Analysis.WindowStart)
}

// Location is the zone dates are formatted in and read back from.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Analysis.Timezone)
}

// TokenTTL is the lifetime of issued investigator tokens.
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.Auth.TokenTTLHours) * time.Hour
}
