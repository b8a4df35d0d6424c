// ABOUTME: Configuration management for the application with environment variable support
// ABOUTME: Environment (optionally from .env) is read first, then command-line flags override it

package config

import (
	"errors"
	"fmt"
	"os"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	flag "github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"tabscribe-api/core/domain"
)

// Store backends
const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
)

// DefaultHost binds the API to loopback only
const DefaultHost = "127.0.0.1"

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Pages    StoreConfig
	Settings StoreConfig
	Redis    RedisConfig
	Browser  BrowserConfig
	Gemini   GeminiConfig
	Log      LogConfig

	// PromptsFile is a YAML file of custom prompts seeded when none are stored
	PromptsFile string
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	// Host is the listen address; the default keeps the API on loopback
	Host string
	Port string

	// AllowedOrigins may call the API from a browser besides its own origin
	AllowedOrigins []string

	// HTTPTimeout bounds every outbound request
	HTTPTimeout time.Duration

	// RateLimit requests per RateWindow per client
	RateLimit  int
	RateWindow time.Duration
}

// StoreConfig selects a key-value backend
type StoreConfig struct {
	// Type is memory, sqlite or redis
	Type string

	// Path is the SQLite database file
	Path string
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

// BrowserConfig says how to reach Chrome
type BrowserConfig struct {
	// ControlURL attaches to a running browser's DevTools endpoint
	ControlURL string

	// Bin is the browser binary launched when ControlURL is empty
	Bin string

	// ExtractionMode is innertext or readability
	ExtractionMode string
}

// GeminiConfig seeds the settings store on first start
type GeminiConfig struct {
	APIKey   string
	Endpoint string
}

// LogConfig configures the structured logger
type LogConfig struct {
	Level  string
	Format string
	File   string
}

// Addr is the listen address for http.Server
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, s.Port)
}

// LoadDotEnv loads variables from the given .env files. Missing files are
// ignored; variables already set in the environment win.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if _, err := os.Stat(p); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	dbPath := getEnvOrDefault("PAGE_STORE_PATH", "tabscribe.db")

	cfg := &Config{
		Server: ServerConfig{
			Host:           getEnvOrDefault("HOST", DefaultHost),
			Port:           getEnvOrDefault("PORT", "8000"),
			AllowedOrigins: getEnvAsListOrDefault("CORS_ALLOWED_ORIGINS", nil),
			HTTPTimeout:    getEnvAsDurationOrDefault("HTTP_TIMEOUT", 120*time.Second),
			RateLimit:      getEnvAsIntOrDefault("RATE_LIMIT", 60),
			RateWindow:     getEnvAsDurationOrDefault("RATE_WINDOW", time.Minute),
		},
		Pages: StoreConfig{
			Type: getEnvOrDefault("PAGE_STORE_TYPE", StoreSQLite),
			Path: dbPath,
		},
		Settings: StoreConfig{
			Type: getEnvOrDefault("SETTINGS_STORE_TYPE", StoreSQLite),
			Path: getEnvOrDefault("SETTINGS_STORE_PATH", dbPath),
		},
		Redis: RedisConfig{
			Address:  getEnvOrDefault("REDIS_ADDRESS", "localhost:6379"),
			Password: getEnvOrDefault("REDIS_PASSWORD", ""),
			DB:       getEnvAsIntOrDefault("REDIS_DB", 0),
		},
		Browser: BrowserConfig{
			ControlURL:     getEnvOrDefault("BROWSER_CONTROL_URL", ""),
			Bin:            getEnvOrDefault("BROWSER_BIN", ""),
			ExtractionMode: getEnvOrDefault("EXTRACTION_MODE", "innertext"),
		},
		Gemini: GeminiConfig{
			APIKey:   getEnvOrDefault("GEMINI_API_KEY", ""),
			Endpoint: getEnvOrDefault("LLM_API_ENDPOINT", ""),
		},
		Log: LogConfig{
			Level:  getEnvOrDefault("LOG_LEVEL", "info"),
			Format: getEnvOrDefault("LOG_FORMAT", "json"),
			File:   getEnvOrDefault("LOG_FILE", ""),
		},
		PromptsFile: getEnvOrDefault("PROMPTS_FILE", ""),
	}

	return cfg, nil
}

// ApplyFlags overrides values with the command-line flags that were set
func (c *Config) ApplyFlags(args []string) error {
	fs := flag.NewFlagSet("tabscribe", flag.ContinueOnError)

	host := fs.String("host", c.Server.Host, "HTTP listen host")
	port := fs.StringP("port", "p", c.Server.Port, "HTTP listen port")
	origins := fs.StringSlice("cors-origin", c.Server.AllowedOrigins, "browser origin allowed to call the API (repeatable)")
	pageStore := fs.String("page-store", c.Pages.Type, "page store backend (memory, sqlite, redis)")
	settingsStore := fs.String("settings-store", c.Settings.Type, "settings store backend (memory, sqlite, redis)")
	dbPath := fs.String("db", c.Pages.Path, "SQLite database file")
	controlURL := fs.String("browser-url", c.Browser.ControlURL, "DevTools URL of a running browser")
	mode := fs.String("extraction", c.Browser.ExtractionMode, "text extraction mode (innertext, readability)")
	prompts := fs.String("prompts", c.PromptsFile, "YAML file of custom prompts to seed")
	logLevel := fs.String("log-level", c.Log.Level, "log level (debug, info, warn, error)")
	logFile := fs.String("log-file", c.Log.File, "also write logs to this file")

	if err := fs.Parse(args); err != nil {
		return err
	}

	set := func(name string, dst *string, v string) {
		if fs.Changed(name) {
			*dst = v
		}
	}
	set("host", &c.Server.Host, *host)
	set("port", &c.Server.Port, *port)
	if fs.Changed("cors-origin") {
		c.Server.AllowedOrigins = *origins
	}
	set("page-store", &c.Pages.Type, *pageStore)
	set("settings-store", &c.Settings.Type, *settingsStore)
	set("browser-url", &c.Browser.ControlURL, *controlURL)
	set("extraction", &c.Browser.ExtractionMode, *mode)
	set("prompts", &c.PromptsFile, *prompts)
	set("log-level", &c.Log.Level, *logLevel)
	set("log-file", &c.Log.File, *logFile)
	if fs.Changed("db") {
		c.Pages.Path = *dbPath
		c.Settings.Path = *dbPath
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("port cannot be empty")
	}
	if c.Server.HTTPTimeout <= 0 {
		return errors.New("HTTP timeout must be positive")
	}
	if c.Server.RateLimit < 1 || c.Server.RateWindow <= 0 {
		return errors.New("rate limit and window must be positive")
	}

	stores := []struct {
		name  string
		store StoreConfig
	}{{"page", c.Pages}, {"settings", c.Settings}}
	for _, s := range stores {
		name, store := s.name, s.store
		switch store.Type {
		case StoreMemory:
		case StoreSQLite:
			if store.Path == "" {
				return fmt.Errorf("%s store path cannot be empty when using sqlite", name)
			}
		case StoreRedis:
			if c.Redis.Address == "" {
				return fmt.Errorf("redis address cannot be empty when the %s store uses redis", name)
			}
		default:
			return fmt.Errorf("%s store type must be 'memory', 'sqlite' or 'redis'", name)
		}
	}

	if c.Browser.ExtractionMode != "innertext" && c.Browser.ExtractionMode != "readability" {
		return errors.New("extraction mode must be 'innertext' or 'readability'")
	}

	if c.Gemini.APIKey != "" && !domain.ValidateAPIKeyFormat(c.Gemini.APIKey) {
		return errors.New("GEMINI_API_KEY does not look like a Gemini API key")
	}

	return nil
}

// promptsFile is the layout of PROMPTS_FILE
type promptsFile struct {
	Prompts []domain.CustomPrompt `yaml:"prompts"`
}

// LoadPrompts reads custom prompts from a YAML file
func LoadPrompts(path string) ([]domain.CustomPrompt, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompts file: %w", err)
	}

	var file promptsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse prompts file: %w", err)
	}
	return file.Prompts, nil
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsListOrDefault splits a comma-separated variable, dropping blank entries
func getEnvAsListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var list []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	return list
}

// getEnvAsIntOrDefault returns the environment variable as int or a default
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsDurationOrDefault accepts Go durations ("90s") or whole seconds ("90")
func getEnvAsDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
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
