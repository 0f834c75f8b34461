package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// configPathEnv points at an optional YAML file applied before env overrides
const configPathEnv = "WAMUZI_CONFIG"

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig `yaml:"server"`

	// Database configuration
	Database DatabaseConfig `yaml:"database"`

	// WordPress content API
	WordPress WordPressConfig `yaml:"wordpress"`

	// Generative summary API
	Summary SummaryConfig `yaml:"summary"`

	// Optional Redis-backed summary cache
	Cache CacheConfig `yaml:"cache"`

	// Sessions and cookies
	Auth AuthConfig `yaml:"auth"`

	// Homepage / listing behaviour
	Content ContentConfig `yaml:"content"`

	// Logging configuration
	Log LogConfig `yaml:"log"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            string        `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"readTimeout"`
	WriteTimeout    time.Duration `yaml:"writeTimeout"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
	MigrationsPath  string        `yaml:"migrationsPath"`
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host         string        `yaml:"host"`
	Port         string        `yaml:"port"`
	User         string        `yaml:"user"`
	Password     string        `yaml:"password"`
	Name         string        `yaml:"name"`
	SSLMode      string        `yaml:"sslMode"`
	MaxOpenConns int           `yaml:"maxOpenConns"`
	MaxIdleConns int           `yaml:"maxIdleConns"`
	MaxLifetime  time.Duration `yaml:"maxLifetime"`

	ConnectTimeout time.Duration `yaml:"connectTimeout"`
}

// WordPressConfig describes the upstream CMS
type WordPressConfig struct {
	BaseURL string        `yaml:"baseUrl"`
	Timeout time.Duration `yaml:"timeout"`
}

// SummaryConfig defines how to reach the generateContent endpoint
type SummaryConfig struct {
	Endpoint       string        `yaml:"endpoint"`
	Model          string        `yaml:"model"`
	APIKey         string        `yaml:"apiKey"`
	MaxInputLength int           `yaml:"maxInputLength"`
	Timeout        time.Duration `yaml:"timeout"`
}

// CacheConfig enables the Redis summary store when Addr is set
type CacheConfig struct {
	RedisAddr     string `yaml:"redisAddr"`
	RedisPassword string `yaml:"redisPassword"`
	RedisDB       int    `yaml:"redisDb"`
}

// AuthConfig holds session settings
type AuthConfig struct {
	SessionTTL   time.Duration `yaml:"sessionTtl"`
	CookieName   string        `yaml:"cookieName"`
	CookieSecure bool          `yaml:"cookieSecure"`
	BcryptCost   int           `yaml:"bcryptCost"`
}

// ContentConfig holds content snapshot settings
type ContentConfig struct {
	RefreshInterval    time.Duration `yaml:"refreshInterval"`
	BreakingNewsSlug   string        `yaml:"breakingNewsSlug"`
	CategoryPageSize   int           `yaml:"categoryPageSize"`
	TickerSize         int           `yaml:"tickerSize"`
	SimulateViewCounts bool          `yaml:"simulateViewCounts"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "json" or "pretty"
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
			MigrationsPath:  "./migrations",
		},
		Database: DatabaseConfig{
			Host:         "localhost",
			Port:         "5432",
			User:         "postgres",
			Password:     "postgres",
			Name:         "wamuzi_news",
			SSLMode:      "disable",
			MaxOpenConns: 25,
			MaxIdleConns: 5,
			MaxLifetime:  5 * time.Minute,

			ConnectTimeout: 5 * time.Second,
		},
		WordPress: WordPressConfig{
			BaseURL: "https://wamuzinews.co.ke/wp-json/wp/v2",
			Timeout: 10 * time.Second,
		},
		Summary: SummaryConfig{
			Endpoint:       "https://generativelanguage.googleapis.com/v1beta",
			Model:          "gemini-3-flash-preview",
			MaxInputLength: 15000,
			Timeout:        30 * time.Second,
		},
		Auth: AuthConfig{
			SessionTTL: 7 * 24 * time.Hour,
			CookieName: "wamuzi_session",
			BcryptCost: 10,
		},
		Content: ContentConfig{
			RefreshInterval:    5 * time.Minute,
			BreakingNewsSlug:   "breaking-news",
			CategoryPageSize:   12,
			TickerSize:         10,
			SimulateViewCounts: true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads the optional YAML file, then environment variables
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv(configPathEnv); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Server.Port = getEnv("PORT", c.Server.Port)
	c.Server.ReadTimeout = getDurationEnv("SERVER_READ_TIMEOUT", c.Server.ReadTimeout)
	c.Server.WriteTimeout = getDurationEnv("SERVER_WRITE_TIMEOUT", c.Server.WriteTimeout)
	c.Server.ShutdownTimeout = getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", c.Server.ShutdownTimeout)
	c.Server.MigrationsPath = getEnv("MIGRATIONS_PATH", c.Server.MigrationsPath)

	c.Database.Host = getEnv("DB_HOST", c.Database.Host)
	c.Database.Port = getEnv("DB_PORT", c.Database.Port)
	c.Database.User = getEnv("DB_USER", c.Database.User)
	c.Database.Password = getEnv("DB_PASSWORD", c.Database.Password)
	c.Database.Name = getEnv("DB_NAME", c.Database.Name)
	c.Database.SSLMode = getEnv("DB_SSLMODE", c.Database.SSLMode)
	c.Database.MaxOpenConns = getIntEnv("DB_MAX_OPEN_CONNS", c.Database.MaxOpenConns)
	c.Database.MaxIdleConns = getIntEnv("DB_MAX_IDLE_CONNS", c.Database.MaxIdleConns)
	c.Database.MaxLifetime = getDurationEnv("DB_MAX_LIFETIME", c.Database.MaxLifetime)
	c.Database.ConnectTimeout = getDurationEnv("DB_CONNECT_TIMEOUT", c.Database.ConnectTimeout)

	c.WordPress.BaseURL = getEnv("WORDPRESS_API_URL", c.WordPress.BaseURL)
	c.WordPress.Timeout = getDurationEnv("WORDPRESS_TIMEOUT", c.WordPress.Timeout)

	c.Summary.Endpoint = getEnv("GEMINI_ENDPOINT", c.Summary.Endpoint)
	c.Summary.Model = getEnv("GEMINI_MODEL", c.Summary.Model)
	c.Summary.APIKey = getEnv("API_KEY", c.Summary.APIKey)
	c.Summary.MaxInputLength = getIntEnv("SUMMARY_MAX_INPUT", c.Summary.MaxInputLength)
	c.Summary.Timeout = getDurationEnv("SUMMARY_TIMEOUT", c.Summary.Timeout)

	c.Cache.RedisAddr = getEnv("REDIS_ADDR", c.Cache.RedisAddr)
	c.Cache.RedisPassword = getEnv("REDIS_PASSWORD", c.Cache.RedisPassword)
	c.Cache.RedisDB = getIntEnv("REDIS_DB", c.Cache.RedisDB)

	c.Auth.SessionTTL = getDurationEnv("SESSION_TTL", c.Auth.SessionTTL)
	c.Auth.CookieName = getEnv("SESSION_COOKIE", c.Auth.CookieName)
	c.Auth.CookieSecure = getBoolEnv("SESSION_COOKIE_SECURE", c.Auth.CookieSecure)
	c.Auth.BcryptCost = getIntEnv("BCRYPT_COST", c.Auth.BcryptCost)

	c.Content.RefreshInterval = getDurationEnv("CONTENT_REFRESH_INTERVAL", c.Content.RefreshInterval)
	c.Content.BreakingNewsSlug = getEnv("BREAKING_NEWS_SLUG", c.Content.BreakingNewsSlug)
	c.Content.CategoryPageSize = getIntEnv("CATEGORY_PAGE_SIZE", c.Content.CategoryPageSize)
	c.Content.TickerSize = getIntEnv("TICKER_SIZE", c.Content.TickerSize)
	c.Content.SimulateViewCounts = getBoolEnv("SIMULATE_VIEW_COUNTS", c.Content.SimulateViewCounts)

	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)
	c.Log.Format = getEnv("LOG_FORMAT", c.Log.Format)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("DB_HOST is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("DB_NAME is required")
	}
	if c.WordPress.BaseURL == "" {
		return fmt.Errorf("WORDPRESS_API_URL is required")
	}
	if c.Content.CategoryPageSize <= 0 {
		return fmt.Errorf("CATEGORY_PAGE_SIZE must be positive")
	}
	return nil
}

// GetDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
