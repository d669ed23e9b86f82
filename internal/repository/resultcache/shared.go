package resultcache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jakeolschewski/toolforge-ai-sub002/internal/db"
	"github.com/jakeolschewski/toolforge-ai-sub002/internal/domain"
	domtool "github.com/jakeolschewski/toolforge-ai-sub002/internal/domain/tool"
)

var cacheKeyPrefix = domain.KeyPrefix + "search_cache:"

// DefaultTTL bounds how long a ranked list survives in the shared tier.
const DefaultTTL = 5 * time.Minute

// store is the consumer interface for the shared result cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Shared keeps ranked result lists in Redis so that every replica
// reuses them. Failures degrade to a miss and are only logged.
type Shared struct {
	store  store
	ttl    time.Duration
	logger *zap.Logger
}

// New creates the shared tier. A non-positive ttl uses DefaultTTL.
func New(s store, ttl time.Duration, logger *zap.Logger) *Shared {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Shared{store: s, ttl: ttl, logger: logger}
}

// Get returns the cached list for a query cache key.
func (c *Shared) Get(ctx context.Context, cacheKey string) ([]domtool.Tool, bool) {
	key := redisKey(cacheKey)

	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to get cached results", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}

	tools, err := decodeTools(data)
	if err != nil {
		c.logger.Warn("Failed to parse cached results", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return tools, true
}

// Set stores a ranked list under a query cache key.
func (c *Shared) Set(ctx context.Context, cacheKey string, tools []domtool.Tool) {
	key := redisKey(cacheKey)

	data, err := encodeTools(tools)
	if err != nil {
		c.logger.Warn("Failed to encode results", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.store.SetWithTTL(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("Failed to cache results", zap.String("key", key), zap.Error(err))
	}
}

// Reset drops every shared entry.
func (c *Shared) Reset(ctx context.Context) error {
	keys, err := c.store.Scan(ctx, cacheKeyPrefix+"*")
	if err != nil {
		return fmt.Errorf("scan search cache: %w", err)
	}
	if err := c.store.Del(ctx, keys...); err != nil {
		return fmt.Errorf("del %d search cache keys: %w", len(keys), err)
	}
	return nil
}

func redisKey(cacheKey string) string {
	h := sha256.Sum256([]byte(cacheKey))
	return cacheKeyPrefix + hex.EncodeToString(h[:])
}

// cachedTool is the JSON form of a tool inside a cached list.
type cachedTool struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Tagline     *string   `json:"tagline,omitempty"`
	Description string    `json:"description"`
	Features    []string  `json:"features,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	Category    string    `json:"category"`
	Pricing     string    `json:"pricing"`
	Price       string    `json:"price,omitempty"`
	Rating      float64   `json:"rating"`
	Views       int64     `json:"views"`
	Featured    bool      `json:"featured"`
	CreatedAt   time.Time `json:"created_at"`
}

func encodeTools(tools []domtool.Tool) ([]byte, error) {
	out := make([]cachedTool, len(tools))
	for i, t := range tools {
		a := t.Attrs()
		out[i] = cachedTool{
			ID: a.ID, Name: a.Name, Tagline: a.Tagline, Description: a.Description,
			Features: a.Features, Tags: a.Tags, Category: a.Category, Pricing: a.Pricing,
			Price: a.Price, Rating: a.Rating, Views: a.Views, Featured: a.Featured,
			CreatedAt: a.CreatedAt,
		}
	}
	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("marshal %d tools: %w", len(tools), err)
	}
	return data, nil
}

func decodeTools(data []byte) ([]domtool.Tool, error) {
	var in []cachedTool
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("unmarshal cached tools: %w", err)
	}
	tools := make([]domtool.Tool, len(in))
	for i, c := range in {
		tools[i] = domtool.Reconstruct(domtool.Attrs{
			ID: c.ID, Name: c.Name, Tagline: c.Tagline, Description: c.Description,
			Features: c.Features, Tags: c.Tags, Category: c.Category, Pricing: c.Pricing,
			Price: c.Price, Rating: c.Rating, Views: c.Views, Featured: c.Featured,
			CreatedAt: c.CreatedAt,
		})
	}
	return tools, nil
}
