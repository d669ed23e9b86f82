package search

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jakeolschewski/toolforge-ai-sub002/internal/domain"
	"github.com/jakeolschewski/toolforge-ai-sub002/internal/domain/search/query"
	"github.com/jakeolschewski/toolforge-ai-sub002/internal/domain/search/sortmode"
	domtool "github.com/jakeolschewski/toolforge-ai-sub002/internal/domain/tool"
	"github.com/jakeolschewski/toolforge-ai-sub002/internal/fuzzy"
	logpkg "github.com/jakeolschewski/toolforge-ai-sub002/internal/logger"
	"github.com/jakeolschewski/toolforge-ai-sub002/internal/metrics"
)

// DefaultSuggestionLimit caps autocomplete output when the caller sends none.
const DefaultSuggestionLimit = 10

// Options tunes ranking and suggestions.
type Options struct {
	// MinScore is the relevance a text match must exceed. Nil or negative
	// means fuzzy.DefaultMinScore; zero keeps every positive score.
	MinScore        *float64
	SuggestionLimit int
}

// Service ranks tools for free-text queries and lists them for filter-only queries.
type Service struct {
	source          Source
	local           LocalCache
	shared          SharedCache
	minScore        float64
	suggestionLimit int
	logger          *zap.Logger
}

// New creates a search service. shared can be nil.
func New(source Source, local LocalCache, shared SharedCache, opts Options, logger *zap.Logger) *Service {
	minScore := fuzzy.DefaultMinScore
	if opts.MinScore != nil && *opts.MinScore >= 0 {
		minScore = *opts.MinScore
	}
	if opts.SuggestionLimit <= 0 {
		opts.SuggestionLimit = DefaultSuggestionLimit
	}
	return &Service{
		source:          source,
		local:           local,
		shared:          shared,
		minScore:        minScore,
		suggestionLimit: opts.SuggestionLimit,
		logger:          logger,
	}
}

// Search returns the ordered result list for q and whether it came from a cache.
//
// With text, candidates are fuzzy-ranked and anything at or below the minimum
// score is dropped; a non-relevance sort mode then reorders the hits, keeping
// relevance order among ties. Without text, all candidates are returned in the
// requested sort order.
func (s *Service) Search(ctx context.Context, q query.Query) ([]domtool.Tool, bool, error) {
	key := q.CacheKey()

	if results, ok := s.local.Get(key); ok {
		metrics.SearchCacheTotal.WithLabelValues("local", "hit").Inc()
		return results, true, nil
	}
	metrics.SearchCacheTotal.WithLabelValues("local", "miss").Inc()

	if s.shared != nil {
		if results, ok := s.shared.Get(ctx, key); ok {
			metrics.SearchCacheTotal.WithLabelValues("shared", "hit").Inc()
			s.local.Set(key, results)
			return results, true, nil
		}
		metrics.SearchCacheTotal.WithLabelValues("shared", "miss").Inc()
	}

	candidates, err := s.source.List(ctx, q.Filter())
	if err != nil {
		metrics.CandidateFetchErrorsTotal.Inc()
		logpkg.Or(ctx, s.logger).Warn("Failed to fetch candidates",
			zap.String("query", q.Text()),
			zap.Error(err),
		)
		return nil, false, fmt.Errorf("%w: list candidates: %w", domain.ErrSourceUnavailable, err)
	}

	results := s.rank(candidates, &q)
	metrics.SearchResults.Observe(float64(len(results)))

	logpkg.Or(ctx, s.logger).Debug("Search computed",
		zap.String("query", q.Text()),
		zap.Int("candidates", len(candidates)),
		zap.Int("results", len(results)),
	)

	s.local.Set(key, results)
	if s.shared != nil {
		s.shared.Set(ctx, key, results)
	}
	return results, false, nil
}

func (s *Service) rank(candidates []domtool.Tool, q *query.Query) []domtool.Tool {
	start := time.Now()
	if !q.HasText() {
		out := sortmode.Apply(candidates, q.SortBy())
		metrics.SearchRankDuration.WithLabelValues("sort").Observe(time.Since(start).Seconds())
		return out
	}

	out := fuzzy.SearchAndRank(candidates, q.Text(), s.minScore)
	if q.SortBy() != sortmode.Relevance {
		out = sortmode.Apply(out, q.SortBy())
	}
	metrics.SearchRankDuration.WithLabelValues("fuzzy").Observe(time.Since(start).Seconds())
	return out
}

// Suggest returns autocomplete strings for text drawn from tool names, tags
// and categories. A non-positive limit uses the configured default.
func (s *Service) Suggest(ctx context.Context, text string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = s.suggestionLimit
	}
	if len([]rune(text)) > query.MaxTextLength {
		return nil, fmt.Errorf("%w: query too long (max %d chars)", domain.ErrInvalidQuery, query.MaxTextLength)
	}

	candidates, err := s.source.List(ctx, domtool.Filter{})
	if err != nil {
		metrics.CandidateFetchErrorsTotal.Inc()
		return nil, fmt.Errorf("%w: list candidates: %w", domain.ErrSourceUnavailable, err)
	}
	return fuzzy.Suggest(candidates, text, limit), nil
}

// ResetCache drops every cached result list in both tiers.
func (s *Service) ResetCache(ctx context.Context) error {
	s.local.Reset()
	if s.shared == nil {
		return nil
	}
	if err := s.shared.Reset(ctx); err != nil {
		return fmt.Errorf("reset shared cache: %w", err)
	}
	logpkg.Or(ctx, s.logger).Info("Search cache reset")
	return nil
}
