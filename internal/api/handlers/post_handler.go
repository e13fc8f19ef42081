// filepath: internal/api/handlers/post_handler.go
package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"blogapp/internal/models"
	"blogapp/internal/repository"
	"blogapp/internal/services"
	"blogapp/internal/web"
)

type indexPageData struct {
	Posts []models.Post
	Sort  string
	Flash string
}

type postPageData struct {
	Post           *models.Post
	Comments       []models.Comment
	Flash          string
	Author         string
	CommentContent string
}

type postFormData struct {
	IsEdit       bool
	Title        string
	Content      string
	TagsField    string
	CurrentImage string
	Flash        string
}

// Index lists all posts, ordered by the optional ?sort= query parameter.
func (h *Handlers) Index(w http.ResponseWriter, r *http.Request) {
	sort := r.URL.Query().Get("sort")
	if sort == "" {
		sort = "newest"
	}

	posts, err := h.Posts.ListPosts(repository.ParsePostOrder(sort))
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	web.RenderTemplate(w, "index", indexPageData{
		Posts: posts,
		Sort:  sort,
		Flash: popFlash(w, r),
	})
}

// ShowPost renders a single post with its comments and the comment form.
func (h *Handlers) ShowPost(w http.ResponseWriter, r *http.Request) {
	id, ok := postIDParam(r)
	if !ok {
		http.Error(w, "Post not found", http.StatusNotFound)
		return
	}

	post, comments, err := h.Posts.GetPost(id)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	if post == nil {
		http.Error(w, "Post not found", http.StatusNotFound)
		return
	}

	web.RenderTemplate(w, "post", postPageData{
		Post:     post,
		Comments: comments,
		Flash:    popFlash(w, r),
	})
}

// AddComment handles the comment form on a post page. Validation failures
// re-render the page with the entered values preserved.
func (h *Handlers) AddComment(w http.ResponseWriter, r *http.Request) {
	id, ok := postIDParam(r)
	if !ok {
		http.Error(w, "Post not found", http.StatusNotFound)
		return
	}

	post, comments, err := h.Posts.GetPost(id)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	if post == nil {
		http.Error(w, "Post not found", http.StatusNotFound)
		return
	}

	author := strings.TrimSpace(r.FormValue("author"))
	content := strings.TrimSpace(r.FormValue("content"))
	if author == "" || content == "" {
		web.RenderTemplate(w, "post", postPageData{
			Post:           post,
			Comments:       comments,
			Flash:          "Both a name and a comment are required.",
			Author:         author,
			CommentContent: content,
		})
		return
	}

	if h.Posts.AddComment(id, author, content) == 0 {
		setFlash(w, "Your comment could not be saved. Please try again.")
	}
	http.Redirect(w, r, "/post/"+strconv.FormatInt(id, 10), http.StatusSeeOther)
}

// NewPostForm renders an empty post form.
func (h *Handlers) NewPostForm(w http.ResponseWriter, r *http.Request) {
	web.RenderTemplate(w, "post_form", postFormData{})
}

// CreatePost handles the new-post form submission, including the optional
// image upload.
func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	content := strings.TrimSpace(r.FormValue("content"))
	tagsField := r.FormValue("tags")

	if title == "" || content == "" {
		web.RenderTemplate(w, "post_form", postFormData{
			Title:     title,
			Content:   content,
			TagsField: tagsField,
			Flash:     "Title and content are both required.",
		})
		return
	}

	upload, closeUpload := uploadedImage(r)
	defer closeUpload()

	id := h.Posts.CreatePost(title, content, upload, services.ParseTagList(tagsField))
	if id == 0 {
		web.RenderTemplate(w, "post_form", postFormData{
			Title:     title,
			Content:   content,
			TagsField: tagsField,
			Flash:     "The post could not be saved. Please try again.",
		})
		return
	}

	http.Redirect(w, r, "/post/"+strconv.FormatInt(id, 10), http.StatusSeeOther)
}

// EditPostForm renders the post form pre-filled with an existing post.
func (h *Handlers) EditPostForm(w http.ResponseWriter, r *http.Request) {
	id, ok := postIDParam(r)
	if !ok {
		http.Error(w, "Post not found", http.StatusNotFound)
		return
	}

	post, _, err := h.Posts.GetPost(id)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	if post == nil {
		http.Error(w, "Post not found", http.StatusNotFound)
		return
	}

	web.RenderTemplate(w, "post_form", postFormData{
		IsEdit:       true,
		Title:        post.Title,
		Content:      post.Content,
		TagsField:    joinTagNames(post.Tags),
		CurrentImage: derefOrEmpty(post.ImageFilename),
	})
}

// UpdatePost handles the edit form submission. The existing image is kept
// unless a replacement is uploaded or the remove checkbox is ticked.
func (h *Handlers) UpdatePost(w http.ResponseWriter, r *http.Request) {
	id, ok := postIDParam(r)
	if !ok {
		http.Error(w, "Post not found", http.StatusNotFound)
		return
	}

	post, _, err := h.Posts.GetPost(id)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	if post == nil {
		http.Error(w, "Post not found", http.StatusNotFound)
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	content := strings.TrimSpace(r.FormValue("content"))
	tagsField := r.FormValue("tags")
	removeImage := r.FormValue("remove_image") != ""

	if title == "" || content == "" {
		web.RenderTemplate(w, "post_form", postFormData{
			IsEdit:       true,
			Title:        title,
			Content:      content,
			TagsField:    tagsField,
			CurrentImage: derefOrEmpty(post.ImageFilename),
			Flash:        "Title and content are both required.",
		})
		return
	}

	upload, closeUpload := uploadedImage(r)
	defer closeUpload()

	if !h.Posts.UpdatePost(id, title, content, upload, removeImage, services.ParseTagList(tagsField)) {
		web.RenderTemplate(w, "post_form", postFormData{
			IsEdit:       true,
			Title:        title,
			Content:      content,
			TagsField:    tagsField,
			CurrentImage: derefOrEmpty(post.ImageFilename),
			Flash:        "The changes could not be saved. Please try again.",
		})
		return
	}

	http.Redirect(w, r, "/post/"+strconv.FormatInt(id, 10), http.StatusSeeOther)
}

// DeletePost removes a post and everything attached to it. Failures also
// redirect to the index, with a flash explaining that nothing was deleted.
func (h *Handlers) DeletePost(w http.ResponseWriter, r *http.Request) {
	id, ok := postIDParam(r)
	if ok {
		ok = h.Posts.DeletePost(id)
	}

	if ok {
		setFlash(w, "The post was deleted.")
	} else {
		setFlash(w, "The post could not be deleted.")
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func joinTagNames(tags []models.Tag) string {
	names := make([]string, 0, len(tags))
	for _, t := range tags {
		names = append(names, t.Name)
	}
	return strings.Join(names, ", ")
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
