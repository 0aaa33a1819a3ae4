// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up the HTTP routes and middleware chain of the
// catalog API.
package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"intex/internal/handlers"
	"intex/internal/middleware"
)

// New returns the configured router. The registration endpoint is wrapped
// by limiter when it is non-nil.
func New(api *handlers.API, limiter *middleware.RateLimiter) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(chimw.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	r.NotFound(jsonError(http.StatusNotFound, "not found"))
	r.MethodNotAllowed(jsonError(http.StatusMethodNotAllowed, "method not allowed"))

	r.Get("/health", api.Health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/bootstrap", api.Bootstrap)

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", api.Categories)
			r.Get("/{slug}", api.Category)
			r.Get("/{slug}/{subSlug}", api.Subcategory)
		})

		// Static segments win over {slug} in chi, so "featured" is never
		// looked up as a course.
		r.Route("/courses", func(r chi.Router) {
			r.Get("/", api.Courses)
			r.Get("/featured", api.Featured)
			r.Get("/search", api.Search)
			r.Get("/table", api.Table)
			r.Get("/{slug}", api.Course)
		})

		r.Group(func(r chi.Router) {
			if limiter != nil {
				r.Use(limiter.Middleware)
			}
			r.Post("/registrations", api.Register)
		})

		r.Get("/site", api.Site)
		r.Get("/pages/{slug}", api.Page)
	})

	return r
}

func jsonError(status int, msg string) http.HandlerFunc {
	body, _ := json.Marshal(map[string]string{"error": msg})
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(status)
		w.Write(append(body, '\n'))
	}
}
