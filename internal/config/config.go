package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	AWS      AWSConfig      `yaml:"aws"`
	Auth     AuthConfig     `yaml:"auth"`
	Session  SessionConfig  `yaml:"session"`
	CORS     CORSConfig     `yaml:"cors"`
	Cache    CacheConfig    `yaml:"cache"`
	Log      LogConfig      `yaml:"log"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port int    `yaml:"port"`
	Host string `yaml:"host"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// AWSConfig holds object storage configuration
type AWSConfig struct {
	Region     string `yaml:"region"`
	S3Bucket   string `yaml:"s3_bucket"`
	AccessKey  string `yaml:"access_key"`
	SecretKey  string `yaml:"secret_key"`
	Endpoint   string `yaml:"endpoint"` // custom S3-compatible endpoint, empty for AWS
	DisableSSL bool   `yaml:"disable_ssl"`
}

// AuthConfig holds identity provider configuration
type AuthConfig struct {
	// IssuerURL is the OIDC issuer identity tokens come from.
	IssuerURL string `yaml:"issuer_url"`
	// ClientID is the audience identity tokens must carry.
	ClientID string `yaml:"client_id"`
}

// SessionConfig holds application session token configuration
type SessionConfig struct {
	Secret  string `yaml:"secret"`
	TTLDays int    `yaml:"ttl_days"`
}

// TTL returns the session lifetime, defaulting to seven days
func (s SessionConfig) TTL() time.Duration {
	days := s.TTLDays
	if days <= 0 {
		days = 7
	}
	return time.Duration(days) * 24 * time.Hour
}

// CORSConfig holds the origin allow-list
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// CacheConfig holds client cache tuning
type CacheConfig struct {
	TTLMinutes int `yaml:"ttl_minutes"`
}

// TTL returns the cache freshness window, defaulting to five minutes
func (c CacheConfig) TTL() time.Duration {
	minutes := c.TTLMinutes
	if minutes <= 0 {
		minutes = 5
	}
	return time.Duration(minutes) * time.Minute
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.Auth.IssuerURL == "" {
		cfg.Auth.IssuerURL = "https://accounts.google.com"
	}

	return &cfg, nil
}

// DSN returns the PostgreSQL connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}
