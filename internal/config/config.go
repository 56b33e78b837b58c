package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `json:"server"`
	Database  DatabaseConfig  `json:"database"`
	Cache     CacheConfig     `json:"cache"`
	CORS      CORSConfig      `json:"cors"`
	Advisor   AdvisorConfig   `json:"advisor"`
	Scheduler SchedulerConfig `json:"scheduler"`
	RateLimit RateLimitConfig `json:"rate_limit"`
	Logger    LoggerConfig    `json:"logger"`
}

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Port           int    `json:"port"`
	Host           string `json:"host"`
	Environment    string `json:"environment"`
	ReadTimeout    int    `json:"read_timeout"`
	WriteTimeout   int    `json:"write_timeout"`
	MaxHeaderBytes int    `json:"max_header_bytes"`
}

// DatabaseConfig represents MongoDB configuration
type DatabaseConfig struct {
	URI            string `json:"uri"`
	Database       string `json:"database"`
	MaxPoolSize    int    `json:"max_pool_size"`
	MinPoolSize    int    `json:"min_pool_size"`
	MaxIdleTime    int    `json:"max_idle_time"`
	ConnectTimeout int    `json:"connect_timeout"`
	SocketTimeout  int    `json:"socket_timeout"`
}

// CacheConfig represents Redis cache configuration
type CacheConfig struct {
	Enabled            bool          `json:"enabled"`
	Host               string        `json:"host"`
	Port               int           `json:"port"`
	Password           string        `json:"password"`
	DB                 int           `json:"db"`
	MaxRetries         int           `json:"max_retries"`
	PoolSize           int           `json:"pool_size"`
	MinIdleConnections int           `json:"min_idle_connections"`
	DialTimeout        time.Duration `json:"dial_timeout"`
	ReadTimeout        time.Duration `json:"read_timeout"`
	WriteTimeout       time.Duration `json:"write_timeout"`
	SummaryTTL         time.Duration `json:"summary_ttl"`
}

// CORSConfig represents cross-origin configuration
type CORSConfig struct {
	AllowedOrigin string `json:"allowed_origin"`
}

// AdvisorConfig represents the text-completion backend configuration
type AdvisorConfig struct {
	APIToken     string        `json:"-"`
	Model        string        `json:"model"`
	BaseURL      string        `json:"base_url"`
	Timeout      time.Duration `json:"timeout"`
	MaxNewTokens int           `json:"max_new_tokens"`
	Temperature  float64       `json:"temperature"`
}

// SchedulerConfig represents background job scheduling configuration
type SchedulerConfig struct {
	Enabled          bool   `json:"enabled"`
	SnapshotInterval string `json:"snapshot_interval"` // Cron expression
	TimeZone         string `json:"timezone"`
}

// RateLimitConfig represents rate limiting configuration
type RateLimitConfig struct {
	Enabled        bool          `json:"enabled"`
	RequestsPerMin int           `json:"requests_per_minute"`
	WindowSize     time.Duration `json:"window_size"`
}

// LoggerConfig represents logging configuration
type LoggerConfig struct {
	Level      string `json:"level"`
	Format     string `json:"format"`
	Output     string `json:"output"`
	Filename   string `json:"filename"`
	MaxSize    int    `json:"max_size"`
	MaxAge     int    `json:"max_age"`
	MaxBackups int    `json:"max_backups"`
	Compress   bool   `json:"compress"`
}

// Load loads configuration from environment variables
func Load() *Config {
	// Load .env file if exists
	godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Port:           getEnvInt("SERVER_PORT", 8080),
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			Environment:    getEnv("ENVIRONMENT", "development"),
			ReadTimeout:    getEnvInt("SERVER_READ_TIMEOUT", 30),
			WriteTimeout:   getEnvInt("SERVER_WRITE_TIMEOUT", 90),
			MaxHeaderBytes: getEnvInt("SERVER_MAX_HEADER_BYTES", 1048576),
		},

		Database: DatabaseConfig{
			URI:            getEnv("DATABASE_URL", "mongodb://localhost:27017"),
			Database:       getEnv("DATABASE_NAME", "appdb"),
			MaxPoolSize:    getEnvInt("MONGODB_MAX_POOL_SIZE", 100),
			MinPoolSize:    getEnvInt("MONGODB_MIN_POOL_SIZE", 5),
			MaxIdleTime:    getEnvInt("MONGODB_MAX_IDLE_TIME", 300),
			ConnectTimeout: getEnvInt("MONGODB_CONNECT_TIMEOUT", 10),
			SocketTimeout:  getEnvInt("MONGODB_SOCKET_TIMEOUT", 30),
		},

		Cache: CacheConfig{
			Enabled:            getEnvBool("REDIS_ENABLED", false),
			Host:               getEnv("REDIS_HOST", "localhost"),
			Port:               getEnvInt("REDIS_PORT", 6379),
			Password:           getEnv("REDIS_PASSWORD", ""),
			DB:                 getEnvInt("REDIS_DB", 0),
			MaxRetries:         getEnvInt("REDIS_MAX_RETRIES", 3),
			PoolSize:           getEnvInt("REDIS_POOL_SIZE", 10),
			MinIdleConnections: getEnvInt("REDIS_MIN_IDLE_CONNECTIONS", 5),
			DialTimeout:        getEnvDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:        getEnvDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout:       getEnvDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
			SummaryTTL:         getEnvDuration("CACHE_SUMMARY_TTL", 5*time.Minute),
		},

		CORS: CORSConfig{
			AllowedOrigin: getEnv("FRONTEND_URL", "*"),
		},

		Advisor: AdvisorConfig{
			APIToken:     getEnv("HF_API_TOKEN", ""),
			Model:        getEnv("HF_CHAT_MODEL", "meta-llama/Llama-3.2-1B-Instruct"),
			BaseURL:      getEnv("HF_BASE_URL", "https://api-inference.huggingface.co/models"),
			Timeout:      getEnvDuration("HF_TIMEOUT", 60*time.Second),
			MaxNewTokens: getEnvInt("HF_MAX_NEW_TOKENS", 250),
			Temperature:  getEnvFloat("HF_TEMPERATURE", 0.7),
		},

		Scheduler: SchedulerConfig{
			Enabled:          getEnvBool("SCHEDULER_ENABLED", false),
			SnapshotInterval: getEnv("SCHEDULER_SNAPSHOT_INTERVAL", "0 0 * * *"), // Daily at midnight
			TimeZone:         getEnv("SCHEDULER_TIMEZONE", "UTC"),
		},

		RateLimit: RateLimitConfig{
			Enabled:        getEnvBool("RATE_LIMIT_ENABLED", false),
			RequestsPerMin: getEnvInt("RATE_LIMIT_REQUESTS_PER_MINUTE", 100),
			WindowSize:     getEnvDuration("RATE_LIMIT_WINDOW_SIZE", time.Minute),
		},

		Logger: LoggerConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			Format:     getEnv("LOG_FORMAT", "json"),
			Output:     getEnv("LOG_OUTPUT", "stdout"),
			Filename:   getEnv("LOG_FILENAME", ""),
			MaxSize:    getEnvInt("LOG_MAX_SIZE", 100),
			MaxAge:     getEnvInt("LOG_MAX_AGE", 28),
			MaxBackups: getEnvInt("LOG_MAX_BACKUPS", 3),
			Compress:   getEnvBool("LOG_COMPRESS", true),
		},
	}
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.URI == "" {
		return fmt.Errorf("database URI is required")
	}

	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if c.Advisor.BaseURL == "" {
		return fmt.Errorf("advisor base URL is required")
	}

	return nil
}
