package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Kafka     KafkaConfig
	Auth      AuthConfig
	Razorpay  RazorpayConfig
	RateLimit RateLimitConfig
	Frontend  FrontendConfig
	Env       string
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type DatabaseConfig struct {
	DSN          string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
	DialTimeout  time.Duration
}

type RedisConfig struct {
	Addr string
}

type KafkaConfig struct {
	Brokers     []string
	OrdersTopic string
	Enabled     bool
	MockMode    bool
}

type AuthConfig struct {
	JWTSecret     string
	TokenLifetime time.Duration
	AdminEmail    string
	AdminPassword string
}

type RazorpayConfig struct {
	KeyID     string
	KeySecret string
}

type RateLimitConfig struct {
	MaxRequests int
	Window      time.Duration
}

type FrontendConfig struct {
	BaseURL        string
	BackendURL     string
	AllowedOrigins []string
}

func Load() *Config {
	// .env is optional; real deployments inject the environment directly.
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", ":8080"),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Database: DatabaseConfig{
			DSN:          databaseDSN(),
			MaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 20),
			MaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 10),
			MaxLifetime:  time.Duration(getEnvInt("DB_MAX_LIFETIME_MINUTES", 5)) * time.Minute,
			DialTimeout:  2 * time.Second,
		},
		Redis: RedisConfig{
			Addr: getEnv("REDIS_ADDR", "localhost:6379"),
		},
		Kafka: KafkaConfig{
			Brokers:     strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
			OrdersTopic: getEnv("KAFKA_TOPIC_ORDERS", "order-events"),
			Enabled:     getEnvBool("KAFKA_ENABLED", false),
			MockMode:    getEnvBool("KAFKA_MOCK_MODE", true),
		},
		Auth: AuthConfig{
			JWTSecret:     getEnv("JWT_SECRET", "summit-dev-secret"),
			TokenLifetime: 24 * time.Hour,
			AdminEmail:    getEnv("ADMIN_EMAIL", "admin@summit.local"),
			AdminPassword: getEnv("ADMIN_PASSWORD", "changeme"),
		},
		Razorpay: RazorpayConfig{
			KeyID:     getEnv("RAZORPAY_KEY_ID", ""),
			KeySecret: getEnv("RAZORPAY_KEY_SECRET", ""),
		},
		RateLimit: RateLimitConfig{
			MaxRequests: getEnvInt("RATE_LIMIT_MAX", 100),
			Window:      time.Duration(getEnvInt("RATE_LIMIT_WINDOW_MINUTES", 15)) * time.Minute,
		},
		Frontend: FrontendConfig{
			BaseURL:        strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),
			BackendURL:     strings.TrimRight(getEnv("BACKEND_URL", "http://localhost:8080"), "/"),
			AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "http://localhost:3000"), ","),
		},
		Env: getEnv("APP_ENV", "development"),
	}
}

// databaseDSN resolves the connection string from the three accepted forms:
// DATABASE_URL, POSTGRES_URL, or discrete DB_* parts.
func databaseDSN() string {
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		return dsn
	}
	if dsn := os.Getenv("POSTGRES_URL"); dsn != "" {
		return dsn
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		getEnv("DB_USERNAME", "summit"),
		getEnv("DB_PASSWORD", "summit"),
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_NAME", "summit"),
	)
}

// PaymentConfigured reports whether real Razorpay credentials are present.
// Placeholder values from .env.example keep the service in test mode.
func (c *Config) PaymentConfigured() bool {
	key, secret := c.Razorpay.KeyID, c.Razorpay.KeySecret
	if key == "" || secret == "" {
		return false
	}
	for _, placeholder := range []string{"rzp_test_xxx", "your_key_id", "your_key_secret", "changeme"} {
		if key == placeholder || secret == placeholder {
			return false
		}
	}
	return true
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
