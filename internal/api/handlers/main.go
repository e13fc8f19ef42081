// filepath: internal/api/handlers/main.go
// Package handlers holds the HTTP handlers for the blog's web pages.
package handlers

import (
	"blogapp/internal/config"
	"blogapp/internal/services"
)

// Handlers holds the shared dependencies for all page handlers.
type Handlers struct {
	Posts *services.PostService
	Cfg   *config.Config
}

// NewHandlers creates a new instance of Handlers with its dependencies.
func NewHandlers(posts *services.PostService, cfg *config.Config) *Handlers {
	return &Handlers{
		Posts: posts,
		Cfg:   cfg,
	}
}
