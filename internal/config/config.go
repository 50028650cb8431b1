package config

import (
	"os"
	"strconv"
)

// Config holds all configuration values
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Mail     MailConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
	Env  string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// URL returns the database connection URL
func (c DatabaseConfig) URL() string {
	return "postgres://" + c.User + ":" + c.Password + "@" + c.Host + ":" + strconv.Itoa(c.Port) + "/" + c.DBName + "?sslmode=" + c.SSLMode
}

// AuthConfig holds the shared admin secret. It is injected explicitly
// into the authenticator; nothing reads it from ambient state.
type AuthConfig struct {
	AdminSecret string
}

// MailConfig holds outbound and inbound mail settings.
type MailConfig struct {
	ResendAPIKey  string
	ResendBaseURL string
	DefaultFrom   string
	SharedMailbox string
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Env:  getEnv("SERVER_ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "mercurymail"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Auth: AuthConfig{
			AdminSecret: getEnv("API_SECRET", ""),
		},
		Mail: MailConfig{
			ResendAPIKey:  getEnv("RESEND_API_KEY", ""),
			ResendBaseURL: getEnv("RESEND_BASE_URL", "https://api.resend.com"),
			DefaultFrom:   getEnv("MAIL_DEFAULT_FROM", "hello@mistystep.io"),
			SharedMailbox: getEnv("MAIL_SHARED_MAILBOX", "shared@mistystep.io"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
