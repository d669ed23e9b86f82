package toolforge

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

// Source kinds.
const (
	sourceTools    = "tools"
	sourceCatalog  = "catalog"
	sourceRedis    = "redis"
	sourceSupabase = "supabase"
)

type clientConfig struct {
	source string

	tools       []Tool
	catalogPath string

	addrs    []string
	password string

	supabaseURL   string
	supabaseKey   string
	supabaseTable string

	minScore        *float64
	suggestionLimit int
	cacheMaxAge     time.Duration
	cacheCapacity   int
	sharedCache     bool
	sharedTTL       time.Duration

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithTools searches a fixed in-memory list.
func WithTools(tools ...Tool) Option {
	return optionFunc(func(c *clientConfig) {
		c.source = sourceTools
		c.tools = tools
	})
}

// WithCatalogFile searches the tools of a YAML catalog file.
func WithCatalogFile(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.source = sourceCatalog
		c.catalogPath = path
	})
}

// WithRedis connects to Redis. Unless another source option is given, tools
// are read from Redis hashes written by Upsert or the seed command.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithSupabase reads tools from a Supabase table through PostgREST.
// An empty table means "tools".
func WithSupabase(url, apiKey, table string) Option {
	return optionFunc(func(c *clientConfig) {
		c.source = sourceSupabase
		c.supabaseURL = url
		c.supabaseKey = apiKey
		c.supabaseTable = table
	})
}

// WithMinScore sets the relevance score a text match must exceed.
// Default: 0.1. Zero keeps every match with a positive score.
func WithMinScore(score float64) Option {
	return optionFunc(func(c *clientConfig) {
		c.minScore = &score
	})
}

// WithSuggestionLimit caps Suggest when it is called with limit <= 0. Default: 10.
func WithSuggestionLimit(limit int) Option {
	return optionFunc(func(c *clientConfig) {
		c.suggestionLimit = limit
	})
}

// WithCache sizes the in-process result cache.
// Defaults: 5 minutes, 100 entries.
func WithCache(maxAge time.Duration, capacity int) Option {
	return optionFunc(func(c *clientConfig) {
		c.cacheMaxAge = maxAge
		c.cacheCapacity = capacity
	})
}

// WithSharedCache also keeps results in Redis for ttl so that several
// processes reuse them. Requires WithRedis.
func WithSharedCache(ttl time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.sharedCache = true
		c.sharedTTL = ttl
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
