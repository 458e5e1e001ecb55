package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

type RedisConfig struct {
	Addr     string
	Password string
	TTL      time.Duration
}

type AuthConfig struct {
	// JWTSecret enables HS256 validation. JWTPublicKey, when set, switches
	// the service to RS256 validation against the identity service's key.
	JWTSecret    string
	JWTPublicKey string
	Issuer       string
}

type FaceMatchConfig struct {
	APIKey  string
	BaseURL string
}

type MailConfig struct {
	APIKey  string
	BaseURL string
	From    string
}

type Config struct {
	HTTPPort    int
	DB          DatabaseConfig
	Kafka       KafkaConfig
	Redis       RedisConfig
	Auth        AuthConfig
	FaceMatch   FaceMatchConfig
	Mail        MailConfig
	LogLevel    string
	LogFormat   string
	ServiceName string
}

// Validate reports required variables that are unset. Only variable names go
// into the error, never their values.
func (c Config) Validate() error {
	var missing []string
	if c.DB.Password == "" {
		missing = append(missing, "DB_PASSWORD")
	}
	if c.Auth.JWTSecret == "" && c.Auth.JWTPublicKey == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		HTTPPort: getEnvInt("HTTP_PORT", 8080),
		DB: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "kasi"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "kasi_lending"),
			SSLMode:  getEnv("DB_SSLMODE", "require"),
		},
		Kafka: KafkaConfig{
			Brokers: splitList(getEnv("KAFKA_BROKERS", "")),
			Topic:   getEnv("KAFKA_TOPIC", "kasi.lending.events"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			TTL:      time.Duration(getEnvInt("REDIS_TTL_SECONDS", 900)) * time.Second,
		},
		Auth: AuthConfig{
			JWTSecret:    getEnv("JWT_SECRET", ""),
			JWTPublicKey: getEnv("JWT_PUBLIC_KEY", ""),
			Issuer:       getEnv("JWT_ISSUER", "kasi"),
		},
		FaceMatch: FaceMatchConfig{
			APIKey:  getEnv("FACE_MATCH_API_KEY", ""),
			BaseURL: getEnv("FACE_MATCH_BASE_URL", ""),
		},
		Mail: MailConfig{
			APIKey:  getEnv("MAIL_API_KEY", ""),
			BaseURL: getEnv("MAIL_BASE_URL", ""),
			From:    getEnv("MAIL_FROM", "no-reply@kasicash.example"),
		},
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "json"),
		ServiceName: "kasi-lending",
	}
}

func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

// DSN builds the PostgreSQL connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func splitList(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
