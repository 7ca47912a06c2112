package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for our application
type Config struct {
	// Server configuration
	Port           string
	GinMode        string
	APIVersion     string
	APIPrefix      string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxHeaderBytes int

	// Database configuration
	Database DatabaseConfig

	// Redis configuration
	Redis RedisConfig

	// Payment gateway
	Payment PaymentConfig

	// Checkout sessions
	Checkout CheckoutConfig

	// Analytics
	Analytics AnalyticsConfig

	// Kafka
	Kafka KafkaConfig

	// Rate limiting
	RateLimit RateLimitConfig

	// Logging
	LogLevel string

	// Email delivery
	Email EmailConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	DSN      string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Addr     string
}

// PaymentConfig holds PIX gateway configuration
type PaymentConfig struct {
	BackendURL string
	Timeout    time.Duration
	MockMode   bool
	MockExpiry time.Duration
}

// CheckoutConfig holds checkout session configuration
type CheckoutConfig struct {
	SessionTTL       time.Duration
	SweepInterval    time.Duration
	CopiedResetAfter time.Duration
}

// AnalyticsConfig holds analytics configuration
type AnalyticsConfig struct {
	DashboardKey string
}

// KafkaConfig holds Kafka configuration
type KafkaConfig struct {
	Enabled         bool
	Brokers         []string
	Topic           string
	ConsumerGroupID string
	ConsumerWorkers int
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Enabled           bool          `json:"enabled"`
	WindowDuration    time.Duration `json:"window_duration"`
	DefaultRequests   int           `json:"default_requests"`
	PublicRequests    int           `json:"public_requests"`
	CheckoutRequests  int           `json:"checkout_requests"`
	AnalyticsRequests int           `json:"analytics_requests"`
	DashboardRequests int           `json:"dashboard_requests"`
	HealthRequests    int           `json:"health_requests"`
	WhitelistedIPs    []string      `json:"whitelisted_ips"`
}

// EmailConfig holds email configuration
type EmailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPPassword string
	FromEmail    string
	FromName     string
	MockMode     bool
}

// Load loads configuration from environment variables
func Load() *Config {
	cfg := &Config{
		// Server configuration
		Port:           getEnv("PORT", "8080"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		APIVersion:     getEnv("API_VERSION", "v1"),
		APIPrefix:      getEnv("API_PREFIX", "/api"),
		ReadTimeout:    getDurationEnv("READ_TIMEOUT", 15*time.Second),
		WriteTimeout:   getDurationEnv("WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:    getDurationEnv("IDLE_TIMEOUT", 60*time.Second),
		MaxHeaderBytes: getIntEnv("MAX_HEADER_BYTES", 1<<20), // 1 MB

		// Database configuration
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "guiche_db"),
			User:     getEnv("DB_USER", "guiche_user"),
			Password: getEnv("DB_PASSWORD", "guiche_password"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},

		// Redis configuration
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
		},

		// Payment gateway
		Payment: PaymentConfig{
			BackendURL: getEnv("PAYMENT_BACKEND_URL", ""),
			Timeout:    getDurationEnv("PAYMENT_TIMEOUT", 15*time.Second),
			MockMode:   getBoolEnv("PAYMENT_MOCK_MODE", true),
			MockExpiry: getDurationEnv("PAYMENT_MOCK_EXPIRY", 30*time.Minute),
		},

		// Checkout sessions
		Checkout: CheckoutConfig{
			SessionTTL:       getDurationEnv("CHECKOUT_SESSION_TTL", 1*time.Hour),
			SweepInterval:    getDurationEnv("CHECKOUT_SWEEP_INTERVAL", 5*time.Minute),
			CopiedResetAfter: getDurationEnv("CHECKOUT_COPIED_RESET_AFTER", 3*time.Second),
		},

		// Analytics
		Analytics: AnalyticsConfig{
			DashboardKey: getEnv("ANALYTICS_DASHBOARD_KEY", ""),
		},

		// Kafka
		Kafka: KafkaConfig{
			Enabled:         getBoolEnv("KAFKA_ENABLED", false),
			Brokers:         getStringSliceEnv("KAFKA_BROKERS", []string{"localhost:9092"}),
			Topic:           getEnv("KAFKA_ORDER_TOPIC", "order-confirmations"),
			ConsumerGroupID: getEnv("KAFKA_CONSUMER_GROUP", "guiche-ticket-mailers"),
			ConsumerWorkers: getIntEnv("KAFKA_CONSUMER_WORKERS", 2),
		},

		// Rate limiting
		RateLimit: RateLimitConfig{
			Enabled:           getBoolEnv("RATE_LIMIT_ENABLED", true),
			WindowDuration:    getDurationEnv("RATE_LIMIT_WINDOW_DURATION", 60*time.Second),
			DefaultRequests:   getIntEnv("RATE_LIMIT_DEFAULT_REQUESTS", 60),
			PublicRequests:    getIntEnv("RATE_LIMIT_PUBLIC_REQUESTS", 120),
			CheckoutRequests:  getIntEnv("RATE_LIMIT_CHECKOUT_REQUESTS", 30),
			AnalyticsRequests: getIntEnv("RATE_LIMIT_ANALYTICS_REQUESTS", 240),
			DashboardRequests: getIntEnv("RATE_LIMIT_DASHBOARD_REQUESTS", 20),
			HealthRequests:    getIntEnv("RATE_LIMIT_HEALTH_REQUESTS", 60),
			WhitelistedIPs:    getStringSliceEnv("RATE_LIMIT_WHITELISTED_IPS", []string{}),
		},

		// Logging
		LogLevel: getEnv("LOG_LEVEL", "debug"),

		// Email configuration
		Email: EmailConfig{
			SMTPHost:     getEnv("SMTP_HOST", ""),
			SMTPPort:     getIntEnv("SMTP_PORT", 587),
			SMTPPassword: getEnv("SMTP_PASSWORD", ""),
			FromEmail:    getEnv("FROM_EMAIL", "ingressos@guiche.com.br"),
			FromName:     getEnv("FROM_NAME", "Guichê Ingressos"),
			MockMode:     getBoolEnv("EMAIL_MOCK_MODE", true),
		},
	}

	// Build composite values
	cfg.Database.DSN = buildDatabaseDSN(cfg.Database)
	cfg.Redis.Addr = cfg.Redis.Host + ":" + cfg.Redis.Port

	return cfg
}

// buildDatabaseDSN builds the database connection string
func buildDatabaseDSN(db DatabaseConfig) string {
	return "host=" + db.Host +
		" port=" + db.Port +
		" user=" + db.User +
		" password=" + db.Password +
		" dbname=" + db.Name +
		" sslmode=" + db.SSLMode
}

// getEnv gets an environment variable with a fallback value
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getIntEnv gets an integer environment variable with a fallback value
func getIntEnv(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return fallback
}

// getDurationEnv gets a duration environment variable with a fallback value
func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return fallback
}

// getBoolEnv gets a boolean environment variable with a fallback value
func getBoolEnv(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return fallback
}

// getStringSliceEnv gets a comma-separated string environment variable as a slice
func getStringSliceEnv(key string, fallback []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		var result []string
		for _, part := range parts {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.GinMode == "debug"
}

// GetServerAddress returns the full server address
func (c *Config) GetServerAddress() string {
	return ":" + c.Port
}

// GetAPIBasePath returns the API base path
func (c *Config) GetAPIBasePath() string {
	return c.APIPrefix + "/" + c.APIVersion
}
