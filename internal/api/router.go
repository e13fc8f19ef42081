// filepath: internal/api/router.go
// Package api wires the HTTP routes and middleware for the blog.
package api

import (
	"net/http"
	"time"

	"blogapp/internal/api/handlers"
	"blogapp/internal/config"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
)

// SetupRouter builds the chi router with all page routes and the static
// file server.
func SetupRouter(h *handlers.Handlers, cfg *config.Config) *chi.Mux {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(RequestLogger)
	r.Use(httprate.LimitByIP(100, time.Minute))
	r.Use(middleware.Recoverer)

	r.Get("/", h.Index)

	r.Route("/post", func(r chi.Router) {
		r.Get("/new", h.NewPostForm)
		r.Post("/new", h.CreatePost)
		r.Get("/{postID}", h.ShowPost)
		r.Post("/{postID}", h.AddComment)
		r.Get("/{postID}/edit", h.EditPostForm)
		r.Post("/{postID}/edit", h.UpdatePost)
		r.Post("/{postID}/delete", h.DeletePost)
	})

	r.Get("/tag/{tagName}", h.TagPage)

	fileServer := http.FileServer(http.Dir(cfg.Database.StaticRoot))
	r.Handle("/static/*", http.StripPrefix("/static", fileServer))

	return r
}
