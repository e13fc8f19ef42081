// filepath: internal/api/handlers/tag_handler.go
package handlers

import (
	"net/http"

	"blogapp/internal/models"
	"blogapp/internal/web"

	"github.com/go-chi/chi/v5"
)

type tagPageData struct {
	Tag   string
	Posts []models.Post
}

// TagPage lists all posts carrying a tag. An unknown tag renders the same
// page with an empty list rather than a 404.
func (h *Handlers) TagPage(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "tagName")

	posts, err := h.Posts.PostsForTag(name)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	web.RenderTemplate(w, "tag", tagPageData{
		Tag:   name,
		Posts: posts,
	})
}
