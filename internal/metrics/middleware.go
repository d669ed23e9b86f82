package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

// CacheHeader is the response header search handlers set to HIT or MISS.
const CacheHeader = "X-Cache"

// Cache label values for routes that do or do not report a cache outcome.
const (
	cacheHit  = "hit"
	cacheMiss = "miss"
	cacheNone = "none"
)

var (
	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "toolforge",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and result cache outcome",
			Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"route", "cache"},
	)

	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "toolforge",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, status and result cache outcome",
		},
		[]string{"method", "route", "status", "cache"},
	)
)

func init() {
	prometheus.MustRegister(httpRequestDuration, httpRequestsTotal)
}

// Middleware counts requests per chi route and splits search traffic by
// whether the ranked list came from the result cache. Latency is labelled the
// same way so cached and computed searches can be compared directly.
func Middleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			route := routeLabel(r)
			cache := cacheLabel(ww.Header().Get(CacheHeader))

			httpRequestDuration.WithLabelValues(route, cache).Observe(time.Since(start).Seconds())
			httpRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(statusOf(ww)), cache).Inc()
		})
	}
}

// routeLabel uses the matched chi pattern so path parameters never become
// label values.
func routeLabel(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil || rctx.RoutePattern() == "" {
		return "unmatched"
	}
	return rctx.RoutePattern()
}

func cacheLabel(header string) string {
	switch strings.ToUpper(strings.TrimSpace(header)) {
	case "HIT":
		return cacheHit
	case "MISS":
		return cacheMiss
	default:
		return cacheNone
	}
}

// statusOf reports 200 for handlers that wrote a body without WriteHeader.
func statusOf(ww chiMiddleware.WrapResponseWriter) int {
	if ww.Status() == 0 {
		return http.StatusOK
	}
	return ww.Status()
}
