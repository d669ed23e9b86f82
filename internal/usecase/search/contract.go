package search

import (
	"context"

	domtool "github.com/jakeolschewski/toolforge-ai-sub002/internal/domain/tool"
)

// Source supplies the candidate set for a search.
// Implementations apply the coarse filter; ranking happens here.
type Source interface {
	List(ctx context.Context, f domtool.Filter) ([]domtool.Tool, error)
}

// LocalCache is the in-process result cache.
type LocalCache interface {
	Get(key string) ([]domtool.Tool, bool)
	Set(key string, results []domtool.Tool)
	Reset()
}

// SharedCache is the optional cross-replica result cache.
// Lookup failures are reported as misses.
type SharedCache interface {
	Get(ctx context.Context, key string) ([]domtool.Tool, bool)
	Set(ctx context.Context, key string, results []domtool.Tool)
	Reset(ctx context.Context) error
}
