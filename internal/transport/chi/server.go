package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/jakeolschewski/toolforge-ai-sub002/internal/domain"
	"github.com/jakeolschewski/toolforge-ai-sub002/internal/domain/search/page"
	"github.com/jakeolschewski/toolforge-ai-sub002/internal/domain/search/query"
	"github.com/jakeolschewski/toolforge-ai-sub002/internal/domain/search/sortmode"
	domtool "github.com/jakeolschewski/toolforge-ai-sub002/internal/domain/tool"
	"github.com/jakeolschewski/toolforge-ai-sub002/internal/fuzzy"
	logpkg "github.com/jakeolschewski/toolforge-ai-sub002/internal/logger"
	"github.com/jakeolschewski/toolforge-ai-sub002/internal/metrics"
	healthuc "github.com/jakeolschewski/toolforge-ai-sub002/internal/usecase/health"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Searcher is the search use case consumed by the HTTP layer.
type Searcher interface {
	Search(ctx context.Context, q query.Query) ([]domtool.Tool, bool, error)
	Suggest(ctx context.Context, text string, limit int) ([]string, error)
	ResetCache(ctx context.Context) error
}

// HealthChecker aggregates dependency health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// Options holds HTTP-level search settings.
type Options struct {
	DefaultPageSize    int
	MaxPageSize        int
	CacheControlMaxAge int // seconds
}

// Server serves the tool search HTTP API.
type Server struct {
	search        Searcher
	health        HealthChecker
	opts          Options
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(search Searcher, health HealthChecker, opts Options, logger *zap.Logger) *Server {
	if opts.MaxPageSize <= 0 {
		opts.MaxPageSize = 100
	}
	if opts.DefaultPageSize <= 0 || opts.DefaultPageSize > opts.MaxPageSize {
		opts.DefaultPageSize = min(12, opts.MaxPageSize)
	}
	s := &Server{
		search: search,
		health: health,
		opts:   opts,
		logger: logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidQuery, http.StatusBadRequest, ErrorResponseCodeValidationFailed),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, ErrorResponseCodeNotFound),
		sentinelHandler(domain.ErrSourceUnavailable, http.StatusServiceUnavailable, ErrorResponseCodeSourceUnavailable),
	}
	return s
}

// SearchTools handles GET /api/tools/search.
func (s *Server) SearchTools(w http.ResponseWriter, r *http.Request) {
	params, err := bindSearchParams(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, err.Error())
		return
	}

	text := deref(params.Q, "")
	q, err := query.New(
		text,
		deref(params.Category, ""),
		deref(params.Pricing, ""),
		sortmode.Mode(deref(params.SortBy, "")),
		deref(params.Featured, false),
	)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	pg, err := page.New(deref(params.Page, 1), deref(params.Limit, s.opts.DefaultPageSize), s.opts.MaxPageSize)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	ctx := logpkg.Annotate(r.Context(),
		zap.String("q", q.Text()),
		zap.String("category", q.Category()),
		zap.String("sort", string(q.SortBy())),
		zap.Int("page", pg.Number()),
	)

	results, cached, err := s.search.Search(ctx, q)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	ctx = logpkg.Annotate(ctx, zap.Int("results", len(results)), zap.Bool("cached", cached))

	win := page.Slice(results, pg)
	resp := SearchResponse{
		Items:   make([]ToolResponse, len(win.Items)),
		Total:   win.Total,
		Page:    pg.Number(),
		Limit:   pg.Size(),
		HasMore: win.HasMore,
		Cached:  cached,
	}
	for i, t := range win.Items {
		resp.Items[i] = toolToResponse(t)
	}

	if deref(params.Suggestions, false) && len([]rune(q.Text())) >= fuzzy.MinSuggestionQueryLen {
		sugg, err := s.search.Suggest(ctx, q.Text(), 0)
		if err != nil {
			// the ranked page is still useful without autocomplete
			logpkg.FromContext(ctx).Warn("suggestions failed", zap.Error(err))
		} else {
			resp.Suggestions = sugg
		}
	}

	w.Header().Set("Cache-Control", "public, max-age="+strconv.Itoa(s.opts.CacheControlMaxAge))
	if cached {
		w.Header().Set(metrics.CacheHeader, "HIT")
	} else {
		w.Header().Set(metrics.CacheHeader, "MISS")
	}
	writeJSON(w, http.StatusOK, resp)
}

// SuggestTools handles GET /api/tools/suggestions.
func (s *Server) SuggestTools(w http.ResponseWriter, r *http.Request) {
	params, err := bindSuggestParams(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, err.Error())
		return
	}

	limit := deref(params.Limit, 0)
	if params.Limit != nil && (limit < 1 || limit > s.opts.MaxPageSize) {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeValidationFailed,
			"limit must be between 1 and "+strconv.Itoa(s.opts.MaxPageSize))
		return
	}

	text := deref(params.Q, "")
	ctx := logpkg.Annotate(r.Context(), zap.String("q", text), zap.Int("limit", limit))

	sugg, err := s.search.Suggest(ctx, text, limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	logpkg.Annotate(ctx, zap.Int("suggestions", len(sugg)))
	writeJSON(w, http.StatusOK, SuggestionsResponse{Suggestions: sugg})
}

// ResetSearchCache handles DELETE /api/admin/search/cache.
func (s *Server) ResetSearchCache(w http.ResponseWriter, r *http.Request) {
	if err := s.search.ResetCache(r.Context()); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorResponseCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a client-safe message: the wrapped detail for
// validation errors, the bare sentinel text otherwise.
func safeDomainMessage(err error) string {
	if errors.Is(err, domain.ErrInvalidQuery) {
		return err.Error()
	}
	sentinels := []error{
		domain.ErrNotFound,
		domain.ErrSourceUnavailable,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorResponseCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorResponseCodeInternalError, "internal error")
}

func toolToResponse(t domtool.Tool) ToolResponse {
	resp := ToolResponse{
		ID:          t.ID(),
		Name:        t.Name(),
		Description: t.Description(),
		Features:    nonNil(t.Features()),
		Tags:        nonNil(t.Tags()),
		Category:    t.Category(),
		Pricing:     t.Pricing(),
		Price:       t.Price(),
		Rating:      t.Rating(),
		Views:       t.Views(),
		Featured:    t.Featured(),
	}
	if tl, ok := t.Tagline(); ok {
		resp.Tagline = &tl
	}
	if ts := t.CreatedAt(); !ts.IsZero() {
		resp.CreatedAt = &ts
	}
	return resp
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
