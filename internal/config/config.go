package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage drivers
const (
	StorageFile     = "file"
	StoragePostgres = "postgres"
)

// Config holds all application configuration
type Config struct {
	BotToken        string
	Channels        []string
	AdminID         int64
	AdminURL        string
	DefaultLanguage string
	VideoDir        string
	DataDir         string
	StorageDriver   string
	HTTPAddr        string
	LogLevel        string
	Webhook         WebhookConfig
	Remote          RemoteConfig
	Database        DatabaseConfig
}

// WebhookConfig enables webhook mode when URL is set
type WebhookConfig struct {
	URL    string
	Listen string
}

// RemoteConfig holds content host settings
type RemoteConfig struct {
	APIURL  string
	APIKey  string
	Timeout time.Duration
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	cfg := &Config{
		BotToken:        getEnv("BOT_TOKEN", os.Getenv("TELEGRAM_TOKEN")),
		Channels:        splitList(os.Getenv("CHANNELS")),
		AdminURL:        getEnv("ADMIN_URL", "https://t.me/user6597938319"),
		DefaultLanguage: getEnv("DEFAULT_LANGUAGE", "uz"),
		VideoDir:        getEnv("VIDEO_DIR", "static/videos"),
		DataDir:         getEnv("DATA_DIR", "data"),
		StorageDriver:   getEnv("STORAGE_DRIVER", StorageFile),
		HTTPAddr:        getEnv("HTTP_ADDR", ":8080"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		Webhook: WebhookConfig{
			URL:    os.Getenv("WEBHOOK_URL"),
			Listen: getEnv("WEBHOOK_LISTEN", ":8443"),
		},
		Remote: RemoteConfig{
			APIURL: os.Getenv("REMOTE_API_URL"),
			APIKey: os.Getenv("REMOTE_API_KEY"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "kodbot"),
			User:     getEnv("DB_USER", "kodbot"),
			Password: os.Getenv("DB_PASSWORD"),
		},
	}

	// Validate required fields
	if cfg.BotToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN is required")
	}

	adminID, err := strconv.ParseInt(strings.TrimSpace(os.Getenv("ADMIN_ID")), 10, 64)
	if err != nil || adminID == 0 {
		return nil, fmt.Errorf("ADMIN_ID must be a non-zero user id")
	}
	cfg.AdminID = adminID

	timeout, err := time.ParseDuration(getEnv("REMOTE_TIMEOUT", "15s"))
	if err != nil || timeout <= 0 {
		return nil, fmt.Errorf("REMOTE_TIMEOUT must be a positive duration")
	}
	cfg.Remote.Timeout = timeout

	switch cfg.StorageDriver {
	case StorageFile:
	case StoragePostgres:
		if cfg.Database.Password == "" {
			return nil, fmt.Errorf("DB_PASSWORD is required for postgres storage")
		}
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}

	return cfg, nil
}

// DSN returns PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// splitList splits a comma separated list, dropping blanks
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
