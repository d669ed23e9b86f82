package tool

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/jakeolschewski/toolforge-ai-sub002/internal/db"
	"github.com/jakeolschewski/toolforge-ai-sub002/internal/domain"
	domtool "github.com/jakeolschewski/toolforge-ai-sub002/internal/domain/tool"
)

// store is the consumer interface for tool hashes (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Del(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo stores tools as Redis hashes under toolforge:tool:<id>.
// It implements usecase/search.Source.
type Repo struct {
	store store
}

// New creates a tool repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Upsert creates or updates a tool. Returns true if created.
func (r *Repo) Upsert(ctx context.Context, t domtool.Tool) (bool, error) {
	key := toolKey(t.ID())
	fields, err := buildHashFields(t)
	if err != nil {
		return false, err
	}

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return false, fmt.Errorf("check exists %s: %w", key, err)
	}

	if err := r.store.HSet(ctx, key, fields); err != nil {
		return false, fmt.Errorf("hset %s: %w", key, err)
	}
	return !exists, nil
}

// UpsertBatch writes all tools in one pipeline.
func (r *Repo) UpsertBatch(ctx context.Context, tools []domtool.Tool) error {
	items := make([]db.HashSetItem, 0, len(tools))
	for _, t := range tools {
		fields, err := buildHashFields(t)
		if err != nil {
			return err
		}
		items = append(items, db.HashSetItem{Key: toolKey(t.ID()), Fields: fields})
	}
	if err := r.store.HSetMulti(ctx, items); err != nil {
		return fmt.Errorf("hset batch of %d tools: %w", len(items), err)
	}
	return nil
}

// Get returns a tool by ID.
func (r *Repo) Get(ctx context.Context, id string) (domtool.Tool, error) {
	key := toolKey(id)
	m, err := r.store.HGetAll(ctx, key)
	if err != nil {
		return domtool.Tool{}, fmt.Errorf("hgetall %s: %w", key, err)
	}
	if len(m) == 0 {
		return domtool.Tool{}, domain.ErrNotFound
	}
	return parseHashFields(id, m), nil
}

// List returns every stored tool matching f, ordered by key.
func (r *Repo) List(ctx context.Context, f domtool.Filter) ([]domtool.Tool, error) {
	keys, err := r.store.Scan(ctx, domain.KeyPrefix+"tool:*")
	if err != nil {
		return nil, fmt.Errorf("scan tools: %w", err)
	}
	if len(keys) == 0 {
		return nil, nil
	}
	slices.Sort(keys)

	hashes, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("hgetall %d tools: %w", len(keys), err)
	}

	tools := make([]domtool.Tool, 0, len(hashes))
	for i, m := range hashes {
		// deleted between SCAN and HGETALL
		if len(m) == 0 {
			continue
		}
		t := parseHashFields(extractID(keys[i]), m)
		if t.Matches(f) {
			tools = append(tools, t)
		}
	}
	return tools, nil
}

// Delete removes a tool.
func (r *Repo) Delete(ctx context.Context, id string) error {
	key := toolKey(id)

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists %s: %w", key, err)
	}
	if !exists {
		return domain.ErrNotFound
	}

	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("del %s: %w", key, err)
	}
	return nil
}

func toolKey(id string) string {
	return domain.KeyPrefix + "tool:" + id
}

func extractID(key string) string {
	return strings.TrimPrefix(key, domain.KeyPrefix+"tool:")
}
