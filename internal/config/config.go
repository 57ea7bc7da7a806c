package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the newsletter service.
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Database    DatabaseConfig    `yaml:"database"`
	Application ApplicationConfig `yaml:"application"`
	Mailer      MailerConfig      `yaml:"mailer"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port int    `yaml:"port"`
	Host string `yaml:"host"`
}

// GetHost returns the server host. Containers need to listen on all
// interfaces regardless of what the file says.
func (c ServerConfig) GetHost() string {
	if os.Getenv("ECS_CONTAINER_METADATA_URI") != "" || os.Getenv("AWS_EXECUTION_ENV") != "" {
		return "0.0.0.0"
	}
	if host := os.Getenv("SERVER_HOST"); host != "" {
		return host
	}
	return c.Host
}

// DatabaseConfig holds PostgreSQL connection configuration.
type DatabaseConfig struct {
	URL string `yaml:"url"`
}

// ApplicationConfig holds settings about the service's public identity.
type ApplicationConfig struct {
	// BaseURL is the public address confirmation links point back to.
	BaseURL string `yaml:"base_url"`
}

// MailerConfig holds outbound email configuration. Provider selects the
// backend: "ses", "postmark", or "dev" (log-only, for local runs).
type MailerConfig struct {
	Provider       string         `yaml:"provider"`
	FromEmail      string         `yaml:"from_email"`
	FromName       string         `yaml:"from_name"`
	TimeoutSeconds int            `yaml:"timeout_seconds"`
	SES            SESConfig      `yaml:"ses"`
	Postmark       PostmarkConfig `yaml:"postmark"`
}

// Timeout returns the configured send timeout as a duration.
func (c MailerConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// SESConfig holds AWS SES credentials.
type SESConfig struct {
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Region    string `yaml:"region"`
}

// PostmarkConfig holds Postmark API credentials.
type PostmarkConfig struct {
	ServerToken  string `yaml:"server_token"`
	AccountToken string `yaml:"account_token"`
}

// Load reads and parses the configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// Set defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8000
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = "127.0.0.1"
	}
	if cfg.Application.BaseURL == "" {
		cfg.Application.BaseURL = "http://127.0.0.1:8000"
	}
	if cfg.Mailer.Provider == "" {
		cfg.Mailer.Provider = "dev"
	}
	if cfg.Mailer.TimeoutSeconds == 0 {
		cfg.Mailer.TimeoutSeconds = 10
	}
	if cfg.Mailer.SES.Region == "" {
		cfg.Mailer.SES.Region = "us-east-1"
	}

	return &cfg, nil
}

// LoadFromEnv loads configuration with environment variable overrides.
// It loads a .env file first (if present) so secrets can live in .env
// locally and in real env vars in production.
func LoadFromEnv(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	if port := os.Getenv("SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Server.Port = p
		}
	}
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		cfg.Database.URL = dbURL
	}
	if baseURL := os.Getenv("APP_BASE_URL"); baseURL != "" {
		cfg.Application.BaseURL = baseURL
	}
	if provider := os.Getenv("MAILER_PROVIDER"); provider != "" {
		cfg.Mailer.Provider = provider
	}
	if from := os.Getenv("SENDER_EMAIL"); from != "" {
		cfg.Mailer.FromEmail = from
	}
	if accessKey := os.Getenv("AWS_SES_ACCESS_KEY"); accessKey != "" {
		cfg.Mailer.SES.AccessKey = accessKey
	}
	if secretKey := os.Getenv("AWS_SES_SECRET_KEY"); secretKey != "" {
		cfg.Mailer.SES.SecretKey = secretKey
	}
	if region := os.Getenv("AWS_SES_REGION"); region != "" {
		cfg.Mailer.SES.Region = region
	}
	if token := os.Getenv("POSTMARK_SERVER_TOKEN"); token != "" {
		cfg.Mailer.Postmark.ServerToken = token
	}
	if token := os.Getenv("POSTMARK_ACCOUNT_TOKEN"); token != "" {
		cfg.Mailer.Postmark.AccountToken = token
	}

	return cfg, nil
}
