package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	API      APIConfig      `yaml:"api"`
	Database DatabaseConfig `yaml:"database"`
	NATS     NATSConfig     `yaml:"nats"`
	JWT      JWTConfig      `yaml:"jwt"`
	SMTP     SMTPConfig     `yaml:"smtp"`
	Uploads  UploadsConfig  `yaml:"uploads"`
	Notify   NotifyConfig   `yaml:"notify"`
	Log      LogConfig      `yaml:"log"`
}

// ServerConfig represents server identity
type ServerConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

// APIConfig represents the REST API listener configuration
type APIConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// DatabaseConfig represents document store configuration. Driver is one of
// postgres, firestore or memory.
type DatabaseConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`

	FirestoreProjectID   string `yaml:"firestore_project_id"`
	FirestoreCredentials string `yaml:"firestore_credentials"`
}

// NATSConfig represents NATS configuration. An empty URL disables NATS and
// mail is dispatched in-process instead.
type NATSConfig struct {
	URL               string        `yaml:"url"`
	Username          string        `yaml:"username"`
	Password          string        `yaml:"password"`
	MaxReconnects     int           `yaml:"max_reconnects"`
	ReconnectInterval time.Duration `yaml:"reconnect_interval"`
}

// JWTConfig represents JWT configuration
type JWTConfig struct {
	Secret         string        `yaml:"secret"`
	AccessTokenTTL time.Duration `yaml:"access_token_ttl"`
	InviteTokenTTL time.Duration `yaml:"invite_token_ttl"`
}

// SMTPConfig represents outbound email configuration
type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

// UploadsConfig represents blob storage configuration. Driver is one of
// disk or firebase.
type UploadsConfig struct {
	Driver  string `yaml:"driver"`
	Dir     string `yaml:"dir"`
	Bucket  string `yaml:"bucket"`
	BaseURL string `yaml:"base_url"`
}

// NotifyConfig represents notification recipients
type NotifyConfig struct {
	AdminEmail string `yaml:"admin_email"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load loads configuration from file
func Load(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.applyEnvOverrides()
	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// applyEnvOverrides applies environment variable overrides
func (c *Config) applyEnvOverrides() {
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		c.Database.DSN = dsn
	}

	if natsURL := os.Getenv("NATS_URL"); natsURL != "" {
		c.NATS.URL = natsURL
	}

	if jwtSecret := os.Getenv("JWT_SECRET"); jwtSecret != "" {
		c.JWT.Secret = jwtSecret
	}

	if host := os.Getenv("SMTP_HOST"); host != "" {
		c.SMTP.Host = host
	}

	if port := os.Getenv("SMTP_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.SMTP.Port = p
		}
	}

	if user := os.Getenv("SMTP_USER"); user != "" {
		c.SMTP.Username = user
	}

	if pass := os.Getenv("SMTP_PASS"); pass != "" {
		c.SMTP.Password = pass
	}

	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		c.Log.Level = logLevel
	}
}

// applyDefaults fills unset fields with sensible defaults
func (c *Config) applyDefaults() {
	if c.Server.Name == "" {
		c.Server.Name = "consorcio-server"
	}
	if c.API.Port == 0 {
		c.API.Port = 8080
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "postgres"
	}
	if c.JWT.AccessTokenTTL == 0 {
		c.JWT.AccessTokenTTL = 24 * time.Hour
	}
	if c.JWT.InviteTokenTTL == 0 {
		c.JWT.InviteTokenTTL = time.Hour
	}
	if c.SMTP.Port == 0 {
		c.SMTP.Port = 587
	}
	if c.SMTP.From == "" {
		c.SMTP.From = c.SMTP.Username
	}
	if c.Uploads.Driver == "" {
		c.Uploads.Driver = "disk"
	}
	if c.Uploads.Dir == "" {
		c.Uploads.Dir = "uploads"
	}
	if c.NATS.MaxReconnects == 0 {
		c.NATS.MaxReconnects = 10
	}
	if c.NATS.ReconnectInterval == 0 {
		c.NATS.ReconnectInterval = 2 * time.Second
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// validate rejects configurations that cannot start
func (c *Config) validate() error {
	switch c.Database.Driver {
	case "postgres", "firestore", "memory":
	default:
		return fmt.Errorf("unknown database driver: %s", c.Database.Driver)
	}

	switch c.Uploads.Driver {
	case "disk", "firebase":
	default:
		return fmt.Errorf("unknown uploads driver: %s", c.Uploads.Driver)
	}

	if c.JWT.Secret == "" {
		return fmt.Errorf("jwt secret is required")
	}

	return nil
}
