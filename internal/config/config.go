package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	// API Configuration
	API APIConfig

	// Resolver Configuration
	Resolver ResolverConfig

	// Redirect proxy configuration
	Proxy ProxyConfig

	// Short-link store configuration
	ShortLinks ShortLinkConfig

	// Cookie file lookup configuration
	Cookies CookieConfig

	// Resolution cache configuration
	Cache CacheConfig

	// Logging Configuration
	Logger LoggerConfig
}

// APIConfig holds API server configuration
type APIConfig struct {
	Port          int
	Host          string
	ReadTimeout   time.Duration
	WriteTimeout  time.Duration
	PublicBaseURL string // Prefix for minted download URLs
	StatusMessage string // Body of GET /
}

// ResolverConfig holds media resolver (yt-dlp) configuration
type ResolverConfig struct {
	BinaryPath string
	Timeout    time.Duration
}

// ProxyConfig holds redirect-proxy fetch configuration
type ProxyConfig struct {
	FetchTimeout time.Duration
}

// ShortLinkConfig holds short-link store configuration
type ShortLinkConfig struct {
	Capacity      int           // Max entries before least-recently-issued eviction
	TTL           time.Duration // Per-entry lifetime, 0 disables expiry
	SweepInterval time.Duration // How often the janitor removes expired entries
}

// CookieConfig holds per-domain cookie file configuration
type CookieConfig struct {
	Dir string // Directory holding Netscape cookie files
}

// CacheConfig holds resolution cache configuration
type CacheConfig struct {
	Enabled bool
	Address string // Redis address
	TTL     time.Duration
}

// LoggerConfig holds logger configuration
type LoggerConfig struct {
	Level      string // debug, info, warn, error
	Format     string // json, text
	OutputPath string // stdout, file path
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		API: APIConfig{
			Port:          getEnvInt("API_PORT", 8000),
			Host:          getEnv("API_HOST", "0.0.0.0"),
			ReadTimeout:   getEnvDuration("API_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:  getEnvDuration("API_WRITE_TIMEOUT", 2*time.Minute),
			PublicBaseURL: getEnv("PUBLIC_BASE_URL", "http://localhost:8000"),
			StatusMessage: getEnv("STATUS_MESSAGE", "Auraflux API is live"),
		},
		Resolver: ResolverConfig{
			BinaryPath: getEnv("YTDLP_PATH", "yt-dlp"),
			Timeout:    getEnvDuration("YTDLP_TIMEOUT", 2*time.Minute),
		},
		Proxy: ProxyConfig{
			FetchTimeout: getEnvDuration("PROXY_FETCH_TIMEOUT", 60*time.Second),
		},
		ShortLinks: ShortLinkConfig{
			Capacity:      getEnvInt("SHORTLINK_CAPACITY", 10000),
			TTL:           getEnvDuration("SHORTLINK_TTL", 6*time.Hour),
			SweepInterval: getEnvDuration("SHORTLINK_SWEEP_INTERVAL", 10*time.Minute),
		},
		Cookies: CookieConfig{
			Dir: getEnv("COOKIES_DIR", "./cookies"),
		},
		Cache: CacheConfig{
			Enabled: getEnvBool("CACHE_ENABLED", false),
			Address: getEnv("CACHE_ADDR", "localhost:6379"),
			TTL:     getEnvDuration("CACHE_TTL", 12*time.Hour),
		},
		Logger: LoggerConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			Format:     getEnv("LOG_FORMAT", "json"),
			OutputPath: getEnv("LOG_OUTPUT", "stdout"),
		},
	}

	// Validate critical configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.API.Port < 1 || c.API.Port > 65535 {
		return fmt.Errorf("API_PORT must be between 1 and 65535, got %d", c.API.Port)
	}

	if c.API.PublicBaseURL == "" {
		return fmt.Errorf("PUBLIC_BASE_URL is required")
	}

	if c.Resolver.BinaryPath == "" {
		return fmt.Errorf("YTDLP_PATH is required")
	}

	if c.Proxy.FetchTimeout <= 0 {
		return fmt.Errorf("PROXY_FETCH_TIMEOUT must be positive")
	}

	if c.ShortLinks.Capacity < 1 {
		return fmt.Errorf("SHORTLINK_CAPACITY must be >= 1")
	}

	if c.ShortLinks.TTL > 0 && c.ShortLinks.SweepInterval <= 0 {
		return fmt.Errorf("SHORTLINK_SWEEP_INTERVAL must be positive when SHORTLINK_TTL is set")
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
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
