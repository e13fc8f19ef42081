// filepath: internal/api/handlers/utils.go
package handlers

import (
	"net/http"
	"net/url"
	"strconv"

	"blogapp/internal/services"

	"github.com/go-chi/chi/v5"
)

const flashCookieName = "blog_flash"

// maxUploadBytes bounds how much of a multipart body is buffered in memory.
const maxUploadBytes = 10 << 20

// postIDParam parses the {postID} route parameter. The second return value is
// false when the parameter is not a valid id.
func postIDParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "postID"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// setFlash stores a one-shot notice shown on the next rendered page.
func setFlash(w http.ResponseWriter, message string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    url.QueryEscape(message),
		Path:     "/",
		HttpOnly: true,
	})
}

// popFlash reads the flash cookie and clears it so it renders only once.
func popFlash(w http.ResponseWriter, r *http.Request) string {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil {
		return ""
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	message, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return ""
	}
	return message
}

// uploadedImage pulls the optional "image" part out of a multipart form.
// A request without a file part is not an error. The returned cleanup func
// releases the underlying temp-file handle and must be called once the
// upload has been consumed; it is never nil.
func uploadedImage(r *http.Request) (*services.UploadedImage, func()) {
	file, header, err := r.FormFile("image")
	if err != nil || header == nil || header.Filename == "" {
		return nil, func() {}
	}
	upload := &services.UploadedImage{
		Filename: header.Filename,
		Data:     file,
	}
	return upload, func() { file.Close() }
}
