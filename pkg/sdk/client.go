package toolforge

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jakeolschewski/toolforge-ai-sub002/internal/cache"
	"github.com/jakeolschewski/toolforge-ai-sub002/internal/db"
	dbRedis "github.com/jakeolschewski/toolforge-ai-sub002/internal/db/redis"
	"github.com/jakeolschewski/toolforge-ai-sub002/internal/domain/search/query"
	"github.com/jakeolschewski/toolforge-ai-sub002/internal/domain/search/sortmode"
	domtool "github.com/jakeolschewski/toolforge-ai-sub002/internal/domain/tool"
	"github.com/jakeolschewski/toolforge-ai-sub002/internal/repository/catalog"
	"github.com/jakeolschewski/toolforge-ai-sub002/internal/repository/resultcache"
	supabaserepo "github.com/jakeolschewski/toolforge-ai-sub002/internal/repository/supabase"
	toolrepo "github.com/jakeolschewski/toolforge-ai-sub002/internal/repository/tool"
	healthuc "github.com/jakeolschewski/toolforge-ai-sub002/internal/usecase/health"
	searchuc "github.com/jakeolschewski/toolforge-ai-sub002/internal/usecase/search"
)

const defaultReadinessTimeout = 10 * time.Second

// Internal interfaces, replaced by mocks in tests.
type searchUseCase interface {
	Search(ctx context.Context, q query.Query) ([]domtool.Tool, bool, error)
	Suggest(ctx context.Context, text string, limit int) ([]string, error)
	ResetCache(ctx context.Context) error
}

type toolWriter interface {
	UpsertBatch(ctx context.Context, tools []domtool.Tool) error
}

// Client is the toolforge SDK entry point.
type Client struct {
	store     db.Store // nil without WithRedis
	searchSvc searchUseCase
	healthSvc healthUseCase
	writer    toolWriter // nil unless tools live in Redis
	obs       *observer
}

// New creates a Client. With WithRedis the connection is checked using ctx
// before New returns.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}
	if cfg.source == "" && len(cfg.addrs) > 0 {
		cfg.source = sourceRedis
	}
	if cfg.source == "" {
		return nil, errors.New("toolforge: tool source required (use WithTools, WithCatalogFile, WithRedis or WithSupabase)")
	}
	if cfg.sharedCache && len(cfg.addrs) == 0 {
		return nil, errors.New("toolforge: shared cache requires WithRedis")
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	var store db.Store
	if len(cfg.addrs) > 0 {
		s, err := createStore(ctx, cfg)
		if err != nil {
			return nil, err
		}
		store = s
	}

	c, err := wireClient(store, cfg, obs)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, err
	}
	return c, nil
}

func createStore(ctx context.Context, cfg *clientConfig) (db.Store, error) {
	s, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.addrs,
		Password: cfg.password,
	})
	if err != nil {
		return nil, fmt.Errorf("toolforge: create redis store: %w", err)
	}
	if err := s.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		s.Close()
		return nil, fmt.Errorf("toolforge: database not ready: %w", err)
	}
	return s, nil
}

func createSource(store db.Store, cfg *clientConfig) (searchuc.Source, toolWriter, error) {
	switch cfg.source {
	case sourceTools:
		tools, err := toDomainTools(cfg.tools)
		if err != nil {
			return nil, nil, fmt.Errorf("toolforge: %w", err)
		}
		cat, err := catalog.FromTools(tools)
		if err != nil {
			return nil, nil, fmt.Errorf("toolforge: %w", err)
		}
		return cat, nil, nil
	case sourceCatalog:
		cat, err := catalog.Load(cfg.catalogPath)
		if err != nil {
			return nil, nil, fmt.Errorf("toolforge: %w", err)
		}
		return cat, nil, nil
	case sourceRedis:
		repo := toolrepo.New(store)
		return repo, repo, nil
	case sourceSupabase:
		repo, err := supabaserepo.New(supabaserepo.Config{
			URL:    cfg.supabaseURL,
			APIKey: cfg.supabaseKey,
			Table:  cfg.supabaseTable,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("toolforge: %w", err)
		}
		return repo, nil, nil
	default:
		return nil, nil, fmt.Errorf("toolforge: unknown source %q", cfg.source)
	}
}

func wireClient(store db.Store, cfg *clientConfig, obs *observer) (*Client, error) {
	source, writer, err := createSource(store, cfg)
	if err != nil {
		return nil, err
	}

	local := cache.NewResultCache[domtool.Tool](cfg.cacheMaxAge, cfg.cacheCapacity)
	var shared searchuc.SharedCache
	if cfg.sharedCache {
		shared = resultcache.New(store, cfg.sharedTTL, zap.NewNop())
	}

	searchSvc := searchuc.New(source, local, shared, searchuc.Options{
		MinScore:        cfg.minScore,
		SuggestionLimit: cfg.suggestionLimit,
	}, zap.NewNop())

	var dbPinger healthuc.DBPinger
	if store != nil {
		dbPinger = store
	}
	var sourceChecker healthuc.SourceChecker
	if sc, ok := source.(healthuc.SourceChecker); ok {
		sourceChecker = sc
	}

	return &Client{
		store:     store,
		searchSvc: searchSvc,
		healthSvc: healthuc.New(dbPinger, sourceChecker),
		writer:    writer,
		obs:       obs,
	}, nil
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Search runs q. Text queries are fuzzy-ranked; filter-only queries list
// every matching tool in q.SortBy order.
func (c *Client) Search(ctx context.Context, q Query) (res SearchResult, err error) {
	start := time.Now()
	defer func() { c.obs.observe("search", start, err) }()

	dq, err := query.New(q.Text, q.Category, q.Pricing, sortmode.Mode(q.SortBy), q.FeaturedOnly)
	if err != nil {
		return SearchResult{}, fmt.Errorf("search: %w", err)
	}
	tools, cached, err := c.searchSvc.Search(ctx, dq)
	if err != nil {
		return SearchResult{}, fmt.Errorf("search: %w", err)
	}
	if cached {
		c.obs.cacheHit()
	}

	out := make([]Tool, len(tools))
	for i, t := range tools {
		out[i] = fromDomainTool(t)
	}
	return SearchResult{Tools: out, Cached: cached}, nil
}

// Suggest returns up to limit autocomplete strings for text.
// limit <= 0 uses the configured suggestion limit.
func (c *Client) Suggest(ctx context.Context, text string, limit int) (s []string, err error) {
	start := time.Now()
	defer func() { c.obs.observe("suggest", start, err) }()

	s, err = c.searchSvc.Suggest(ctx, text, limit)
	if err != nil {
		return nil, fmt.Errorf("suggest: %w", err)
	}
	return s, nil
}

// Upsert stores tools in Redis and drops cached results.
// It returns ErrReadOnlySource for every other source.
func (c *Client) Upsert(ctx context.Context, tools ...Tool) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("upsert", start, err) }()

	if c.writer == nil {
		return ErrReadOnlySource
	}
	domTools, err := toDomainTools(tools)
	if err != nil {
		return fmt.Errorf("upsert: %w", err)
	}
	if err := c.writer.UpsertBatch(ctx, domTools); err != nil {
		return fmt.Errorf("upsert: %w", err)
	}
	return c.ResetCache(ctx)
}

// ResetCache drops every cached result list.
func (c *Client) ResetCache(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("reset_cache", start, err) }()

	if err = c.searchSvc.ResetCache(ctx); err != nil {
		return fmt.Errorf("reset cache: %w", err)
	}
	return nil
}
