package chi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"
)

// CORSOptions is the cross-origin policy for browser clients.
type CORSOptions struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

// CORSMiddleware handles preflight requests and CORS headers via rs/cors.
func CORSMiddleware(opts CORSOptions) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   opts.AllowedMethods,
		AllowedHeaders:   opts.AllowedHeaders,
		AllowCredentials: opts.AllowCredentials,
		MaxAge:           opts.MaxAge,
	})
	return c.Handler
}

// Routes mounts the API on r. Admin routes require one of adminKeys.
func (s *Server) Routes(r chi.Router, adminKeys []string) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Route("/api", func(r chi.Router) {
		r.Get("/tools/search", s.SearchTools)
		r.Get("/tools/suggestions", s.SuggestTools)

		r.Group(func(r chi.Router) {
			r.Use(BearerAuthMiddleware(adminKeys))
			r.Delete("/admin/search/cache", s.ResetSearchCache)
		})
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, ErrorResponseCodeNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, ErrorResponseCodeBadRequest, "method not allowed")
	})
}
