package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/jakeolschewski/toolforge-ai-sub002/internal/fuzzy"
)

// Source drivers.
const (
	SourceFile     = "file"
	SourceRedis    = "redis"
	SourceSupabase = "supabase"
)

// Config holds the toolforge search API configuration.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	CORS     CORSConfig     `yaml:"cors"`
	Auth     AuthConfig     `yaml:"auth"`
	Source   SourceConfig   `yaml:"source"`
	Database DatabaseConfig `yaml:"database"`
	Search   SearchConfig   `yaml:"search"`
	Cache    CacheConfig    `yaml:"cache"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds admin API authentication settings.
type AuthConfig struct {
	AdminAPIKeys []string `yaml:"admin_api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port               int `yaml:"port"`
	ReadTimeoutSec     int `yaml:"read_timeout_sec"`
	WriteTimeoutSec    int `yaml:"write_timeout_sec"`
	ShutdownSec        int `yaml:"shutdown_timeout_sec"`
	CacheControlMaxAge int `yaml:"cache_control_max_age_sec"`
}

// CORSConfig holds the cross-origin policy for browser clients.
type CORSConfig struct {
	AllowedOrigins   []string `yaml:"allowed_origins"`
	AllowedMethods   []string `yaml:"allowed_methods"`
	AllowedHeaders   []string `yaml:"allowed_headers"`
	AllowCredentials bool     `yaml:"allow_credentials"`
	MaxAge           int      `yaml:"max_age_sec"`
}

// SourceConfig selects where candidate tools come from.
type SourceConfig struct {
	Driver      string         `yaml:"driver"` // file, redis, supabase (default: file)
	CatalogPath string         `yaml:"catalog_path"`
	Supabase    SupabaseConfig `yaml:"supabase"`
}

// SupabaseConfig holds PostgREST connection settings.
type SupabaseConfig struct {
	URL    string `yaml:"url"`
	APIKey string `yaml:"api_key"`
	Table  string `yaml:"table"`
}

// DatabaseConfig holds Redis connection settings.
type DatabaseConfig struct {
	Addrs            []string `yaml:"addrs"`
	Password         string   `yaml:"password"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// SearchConfig holds ranking and pagination settings.
type SearchConfig struct {
	MinScore        *float64 `yaml:"min_score"` // unset: 0.1; 0 keeps every positive score
	DefaultPageSize int     `yaml:"default_page_size"`
	MaxPageSize     int     `yaml:"max_page_size"`
	SuggestionLimit int     `yaml:"suggestion_limit"`
}

// CacheConfig holds result cache settings.
type CacheConfig struct {
	MaxAgeSec    int  `yaml:"max_age_sec"`
	Capacity     int  `yaml:"capacity"`
	Shared       bool `yaml:"shared"` // enable the Redis tier
	SharedTTLSec int  `yaml:"shared_ttl_sec"`
}

// UsesRedis reports whether any component needs a Redis connection.
func (c *Config) UsesRedis() bool {
	return c.Source.Driver == SourceRedis || c.Cache.Shared
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
// A .env file in the working directory, if present, is loaded first so its
// variables can be referenced from the YAML.
func Load(env string) (Config, error) {
	_ = godotenv.Load(".env")

	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	return Parse(data)
}

// Parse expands env variables in data, decodes it and validates the result.
func Parse(data []byte) (Config, error) {
	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.HTTP.CacheControlMaxAge <= 0 {
		c.HTTP.CacheControlMaxAge = 60
	}
	if len(c.CORS.AllowedOrigins) == 0 {
		c.CORS.AllowedOrigins = []string{"*"}
	}
	if len(c.CORS.AllowedMethods) == 0 {
		c.CORS.AllowedMethods = []string{"GET", "DELETE", "OPTIONS"}
	}
	if len(c.CORS.AllowedHeaders) == 0 {
		c.CORS.AllowedHeaders = []string{"Content-Type", "Authorization"}
	}
	if c.CORS.MaxAge <= 0 {
		c.CORS.MaxAge = 86400
	}
	if c.Source.Driver == "" {
		c.Source.Driver = SourceFile
	}
	if c.Source.CatalogPath == "" {
		c.Source.CatalogPath = "data/catalog.yaml"
	}
	if c.Source.Supabase.Table == "" {
		c.Source.Supabase.Table = "tools"
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Search.MinScore == nil || *c.Search.MinScore < 0 {
		minScore := fuzzy.DefaultMinScore
		c.Search.MinScore = &minScore
	}
	if c.Search.DefaultPageSize <= 0 {
		c.Search.DefaultPageSize = 12
	}
	if c.Search.MaxPageSize <= 0 {
		c.Search.MaxPageSize = 100
	}
	if c.Search.SuggestionLimit <= 0 {
		c.Search.SuggestionLimit = 10
	}
	if c.Cache.MaxAgeSec <= 0 {
		c.Cache.MaxAgeSec = 300
	}
	if c.Cache.Capacity <= 0 {
		c.Cache.Capacity = 100
	}
	if c.Cache.SharedTTLSec <= 0 {
		c.Cache.SharedTTLSec = c.Cache.MaxAgeSec
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	switch c.Source.Driver {
	case SourceFile, SourceRedis:
	case SourceSupabase:
		if c.Source.Supabase.URL == "" || c.Source.Supabase.APIKey == "" {
			return errors.New("source.supabase.url and source.supabase.api_key are required for the supabase driver")
		}
	default:
		return fmt.Errorf("source.driver must be %q, %q or %q, got %q",
			SourceFile, SourceRedis, SourceSupabase, c.Source.Driver)
	}
	if c.UsesRedis() && len(c.Database.Addrs) == 0 {
		return errors.New("database.addrs is required when the redis source or shared cache is enabled")
	}
	if c.Search.DefaultPageSize > c.Search.MaxPageSize {
		return fmt.Errorf("search.default_page_size (%d) exceeds search.max_page_size (%d)",
			c.Search.DefaultPageSize, c.Search.MaxPageSize)
	}
	if c.Search.MinScore != nil && *c.Search.MinScore >= fuzzy.MaxScore {
		return fmt.Errorf("search.min_score must be below the maximum relevance score %.2f, got %v",
			fuzzy.MaxScore, *c.Search.MinScore)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
