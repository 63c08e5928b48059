// Package httpapi exposes the catalog and mock-auth endpoints over HTTP.
package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter wires the API routes the storefront consumes.
func NewRouter(products *ProductsHandler, authh *AuthHandler, requestTimeout time.Duration) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", products.List)
			r.Post("/", products.Create)
			r.Get("/search", products.Search)
			r.Get("/categories", products.Categories)
			r.Get("/category/{category}", products.ByCategory)
			r.Get("/{id}", products.Get)
		})
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authh.Login)
			r.Post("/register", authh.Register)
		})
	})

	return r
}
