package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the measurement server and CLI.
type Config struct {
	Database  DatabaseConfig  `mapstructure:"database"`
	Server    ServerConfig    `mapstructure:"server"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Client    ClientConfig    `mapstructure:"client"`
	Generator GeneratorConfig `mapstructure:"generator"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// DatabaseConfig holds the PostgreSQL connection string.
type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Port string `mapstructure:"port"`
}

// AuthConfig holds bearer token settings. An empty secret disables auth.
type AuthConfig struct {
	JWTSecret     string `mapstructure:"jwt_secret"`
	TokenTTLHours int    `mapstructure:"token_ttl_hours"`
}

// TokenTTL returns the lifetime of issued tokens.
func (a AuthConfig) TokenTTL() time.Duration {
	return time.Duration(a.TokenTTLHours) * time.Hour
}

// String masks the secret.
func (a AuthConfig) String() string {
	secret := "<unset>"
	if a.JWTSecret != "" {
		secret = "***"
	}
	return fmt.Sprintf("AuthConfig{JWTSecret:%s, TokenTTLHours:%d}", secret, a.TokenTTLHours)
}

// ClientConfig holds settings for measurectl talking to the API.
type ClientConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	Token          string `mapstructure:"token"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	ProjectID      string `mapstructure:"project_id"`
}

// Timeout returns the per-request timeout.
func (c ClientConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// GeneratorConfig holds location generation settings.
type GeneratorConfig struct {
	FloorPrefix string `mapstructure:"floor_prefix"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads .env (if present), an optional config file and environment variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	v := viper.New()

	v.SetDefault("database.url", "postgres://localhost:5432/obra?sslmode=disable")
	v.SetDefault("server.port", "8080")
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_ttl_hours", 24)
	v.SetDefault("client.base_url", "http://localhost:8080")
	v.SetDefault("client.token", "")
	v.SetDefault("client.timeout_seconds", 30)
	v.SetDefault("client.project_id", "")
	v.SetDefault("generator.floor_prefix", "P")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(filepath.Join(homeDir(), ".obra-measure"))
	v.AddConfigPath(".")

	v.SetEnvPrefix("OBRA")
	v.AutomaticEnv()

	_ = v.BindEnv("database.url", "DATABASE_URL")
	_ = v.BindEnv("server.port", "APP_PORT")
	_ = v.BindEnv("auth.jwt_secret", "JWT_SECRET")
	_ = v.BindEnv("client.base_url", "OBRA_API_URL")
	_ = v.BindEnv("client.token", "OBRA_TOKEN")
	_ = v.BindEnv("client.project_id", "OBRA_PROJECT_ID")
	_ = v.BindEnv("generator.floor_prefix", "OBRA_FLOOR_PREFIX")
	_ = v.BindEnv("logging.level", "OBRA_LOG_LEVEL")
	_ = v.BindEnv("logging.format", "OBRA_LOG_FORMAT")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return &cfg, nil
}

// Validate checks that required configuration fields are set and consistent.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server.port must not be empty")
	}
	if c.Auth.TokenTTLHours <= 0 {
		return fmt.Errorf("auth.token_ttl_hours must be greater than 0")
	}
	if c.Client.TimeoutSeconds <= 0 {
		return fmt.Errorf("client.timeout_seconds must be greater than 0")
	}
	if c.Generator.FloorPrefix == "" {
		return fmt.Errorf("generator.floor_prefix must not be empty")
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json, got %q", c.Logging.Format)
	}
	return nil
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
