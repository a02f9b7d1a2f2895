package api

import (
	"net/http"

	mw "github.com/autodiag/autodiag/internal/api/middleware"
	"github.com/autodiag/autodiag/internal/api/response"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
)

// Dependencies holds all handler and middleware dependencies for the router.
type Dependencies struct {
	RateLimit *mw.RateLimit

	RootHandler     http.HandlerFunc
	StatusHandler   http.HandlerFunc
	DiagnoseHandler http.HandlerFunc
	HistoryHandler  http.HandlerFunc
}

// NewRouter builds the Chi router with middleware stack and all routes.
func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	// Global middleware. RealIP runs first so rate limiting sees the real
	// client behind a proxy; CORS mirrors the permissive original surface.
	r.Use(middleware.RealIP)
	r.Use(mw.Logger)
	r.Use(mw.Recovery)
	r.Use(cors.New(cors.Options{
		AllowOriginFunc:  func(_ string) bool { return true },
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}).Handler)

	// Public status surface
	r.Get("/", orNotImplemented(deps.RootHandler))
	r.Get("/test", orNotImplemented(deps.StatusHandler))

	// Rate-limited API routes
	r.Group(func(r chi.Router) {
		if deps.RateLimit != nil {
			r.Use(deps.RateLimit.Limit)
		}

		r.Post("/api/diagnose", orNotImplemented(deps.DiagnoseHandler))
		r.Get("/api/history", orNotImplemented(deps.HistoryHandler))
	})

	return r
}

// orNotImplemented returns the handler if non-nil, or a 501 placeholder.
func orNotImplemented(h http.HandlerFunc) http.HandlerFunc {
	if h != nil {
		return h
	}
	return func(w http.ResponseWriter, r *http.Request) {
		response.Error(w, http.StatusNotImplemented, "NOT_IMPLEMENTED", "Endpoint not yet implemented", nil)
	}
}
