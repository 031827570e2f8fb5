package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig
	AWS       AWSConfig
	Checker   CheckerConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port           string
	Env            string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	AllowedOrigins []string
}

// AWSConfig holds DynamoDB connection settings.
// Credentials are never configured here; they come from the ambient AWS
// credential chain (environment variables in the container).
type AWSConfig struct {
	Region   string
	Endpoint string // optional override for local DynamoDB
	Table    string
}

// CheckerConfig holds scheme-checker portal and browser pool settings
type CheckerConfig struct {
	PortalURL      string
	InputID        string
	SubmitXPath    string
	ResultSelector string
	Timeout        time.Duration
	PoolSize       int
	CacheSize      int
	UserAgent      string
	BrowserMaxIdle time.Duration
}

// RateLimitConfig holds request rate limiting settings
type RateLimitConfig struct {
	Rate   int
	Window time.Duration
	Burst  int
}

// Load reads configuration from environment variables with sensible defaults
func Load() (*Config, error) {
	return &Config{
		Server: ServerConfig{
			Port:           getEnv("SERVER_PORT", "80"),
			Env:            getEnv("SERVER_ENV", "development"),
			ReadTimeout:    getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:   getDurationEnv("SERVER_WRITE_TIMEOUT", 30*time.Second),
			AllowedOrigins: getSliceEnv("CORS_ALLOWED_ORIGINS", []string{"*"}),
		},
		AWS: AWSConfig{
			Region:   getEnv("AWS_REGION", "ap-south-1"),
			Endpoint: getEnv("AWS_ENDPOINT_URL", ""),
			Table:    getEnv("DYNAMO_TABLE", "transcribe"),
		},
		Checker: CheckerConfig{
			PortalURL:      getEnv("CHECKER_PORTAL_URL", "https://www.sspcrs.ie/portal/checker/pub/check"),
			InputID:        getEnv("CHECKER_INPUT_ID", "schemeIdInput"),
			SubmitXPath:    getEnv("CHECKER_SUBMIT_XPATH", `//button[@type="submit"]`),
			ResultSelector: getEnv("CHECKER_RESULT_SELECTOR", "#page-content > div.main-box > div.pt-2 > div > div"),
			Timeout:        getDurationEnv("CHECKER_TIMEOUT", 10*time.Second),
			PoolSize:       getIntEnv("CHECKER_POOL_SIZE", 5),
			CacheSize:      getIntEnv("CHECKER_CACHE_SIZE", 100),
			UserAgent:      getEnv("CHECKER_USER_AGENT", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/58.0.3029.110 Safari/537.3"),
			BrowserMaxIdle: getDurationEnv("CHECKER_BROWSER_MAX_IDLE", 10*time.Minute),
		},
		RateLimit: RateLimitConfig{
			Rate:   getIntEnv("RATE_LIMIT_RATE", 60),
			Window: getDurationEnv("RATE_LIMIT_WINDOW", time.Minute),
			Burst:  getIntEnv("RATE_LIMIT_BURST", 10),
		},
	}, nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// Validate checks that all required configuration values are present and valid.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port == "" {
		errs = append(errs, errors.New("server port is required"))
	} else if _, err := strconv.Atoi(c.Server.Port); err != nil {
		errs = append(errs, fmt.Errorf("server port must be numeric: %q", c.Server.Port))
	}
	if c.AWS.Region == "" {
		errs = append(errs, errors.New("AWS region is required"))
	}
	if c.AWS.Table == "" {
		errs = append(errs, errors.New("DynamoDB table name is required"))
	}
	if c.Checker.PortalURL == "" {
		errs = append(errs, errors.New("checker portal URL is required"))
	} else if !strings.HasPrefix(c.Checker.PortalURL, "http://") && !strings.HasPrefix(c.Checker.PortalURL, "https://") {
		errs = append(errs, fmt.Errorf("checker portal URL must be http(s): %q", c.Checker.PortalURL))
	}
	if c.Checker.PoolSize < 1 {
		errs = append(errs, fmt.Errorf("checker pool size must be at least 1, got %d", c.Checker.PoolSize))
	}
	if c.Checker.CacheSize < 1 {
		errs = append(errs, fmt.Errorf("checker cache size must be at least 1, got %d", c.Checker.CacheSize))
	}
	if c.Checker.Timeout <= 0 {
		errs = append(errs, errors.New("checker timeout must be positive"))
	}
	if c.RateLimit.Rate < 1 {
		errs = append(errs, fmt.Errorf("rate limit must be at least 1, got %d", c.RateLimit.Rate))
	}

	return errors.Join(errs...)
}

// getEnv returns the environment variable value or a default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getIntEnv returns the environment variable as an int or a default
func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

// getDurationEnv returns the environment variable as a duration or a default.
// Accepts Go duration strings ("15s") or plain seconds ("15").
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}

// getSliceEnv returns the environment variable as a comma-separated slice or a default
func getSliceEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
