// filepath: internal/api/handlers/post_handler_test.go
package handlers_test

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"blogapp/internal/api"
	"blogapp/internal/api/handlers"
	"blogapp/internal/config"
	"blogapp/internal/db/migrations"
	"blogapp/internal/repository"
	"blogapp/internal/services"
	"blogapp/internal/storage"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupBlogServer spins up the full router over a file-backed temporary
// database. The returned client keeps cookies and does not follow redirects,
// so tests can assert on Location headers.
func setupBlogServer(t *testing.T) (*httptest.Server, *http.Client) {
	t.Helper()

	cfg := &config.Config{}
	cfg.Database.Path = filepath.Join(t.TempDir(), "test_blog.db")
	cfg.Database.StaticRoot = t.TempDir()
	cfg.Database.UploadDir = "uploads"

	repo, err := repository.NewRepository(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	goose.SetBaseFS(migrations.FS)
	require.NoError(t, goose.SetDialect("sqlite3"))
	require.NoError(t, goose.Up(repo.DB, "."))

	images := storage.NewImageStore(cfg.Database.StaticRoot, cfg.Database.UploadDir)
	h := handlers.NewHandlers(services.NewPostService(repo, images), cfg)

	server := httptest.NewServer(api.SetupRouter(h, cfg))
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return server, client
}

// multipartForm builds a multipart body from plain fields, optionally with an
// "image" file part.
func multipartForm(t *testing.T, fields map[string]string, imageName string, imageData []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for key, value := range fields {
		require.NoError(t, mw.WriteField(key, value))
	}
	if imageName != "" {
		part, err := mw.CreateFormFile("image", imageName)
		require.NoError(t, err)
		_, err = part.Write(imageData)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

// createPostViaForm submits the new-post form and returns the path of the
// created post ("/post/<id>").
func createPostViaForm(t *testing.T, server *httptest.Server, client *http.Client, title, content, tags string) string {
	t.Helper()

	body, contentType := multipartForm(t, map[string]string{
		"title":   title,
		"content": content,
		"tags":    tags,
	}, "", nil)

	resp, err := client.Post(server.URL+"/post/new", contentType, body)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	location := resp.Header.Get("Location")
	require.True(t, strings.HasPrefix(location, "/post/"), "unexpected redirect target: %s", location)
	return location
}

func getBody(t *testing.T, client *http.Client, fullURL string) (int, string) {
	t.Helper()
	resp, err := client.Get(fullURL)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(data)
}

func TestCreateAndViewPost(t *testing.T) {
	server, client := setupBlogServer(t)

	postPath := createPostViaForm(t, server, client, "Hello", "World", "norway, travel")

	status, body := getBody(t, client, server.URL+postPath)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Hello")
	assert.Contains(t, body, "World")
	assert.Contains(t, body, `href="/tag/norway"`)
	assert.Contains(t, body, `href="/tag/travel"`)
}

func TestShowPost_NotFound(t *testing.T) {
	server, client := setupBlogServer(t)

	status, _ := getBody(t, client, server.URL+"/post/99999")
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = getBody(t, client, server.URL+"/post/not-a-number")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestAddComment_OrderedOldestFirst(t *testing.T) {
	server, client := setupBlogServer(t)

	postPath := createPostViaForm(t, server, client, "Hello", "World", "")

	for _, comment := range []string{"first!", "second thoughts"} {
		form := url.Values{"author": {"Ana"}, "content": {comment}}
		resp, err := client.Post(server.URL+postPath, "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusSeeOther, resp.StatusCode)
		require.Equal(t, postPath, resp.Header.Get("Location"))
	}

	status, body := getBody(t, client, server.URL+postPath)
	assert.Equal(t, http.StatusOK, status)
	assert.Less(t, strings.Index(body, "first!"), strings.Index(body, "second thoughts"))
}

func TestAddComment_ValidationKeepsInput(t *testing.T) {
	server, client := setupBlogServer(t)

	postPath := createPostViaForm(t, server, client, "Hello", "World", "")

	form := url.Values{"author": {""}, "content": {"a comment without a name"}}
	resp, err := client.Post(server.URL+postPath, "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Both a name and a comment are required.")
	assert.Contains(t, string(data), "a comment without a name")
}

func TestCreatePost_ValidationKeepsInput(t *testing.T) {
	server, client := setupBlogServer(t)

	body, contentType := multipartForm(t, map[string]string{
		"title":   "",
		"content": "body text that should survive",
		"tags":    "draft",
	}, "", nil)

	resp, err := client.Post(server.URL+"/post/new", contentType, body)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Title and content are both required.")
	assert.Contains(t, string(data), "body text that should survive")
	assert.Contains(t, string(data), "draft")
}

func TestCreatePost_DuplicateTagsRenderedOnce(t *testing.T) {
	server, client := setupBlogServer(t)

	postPath := createPostViaForm(t, server, client, "Hello", "World", "norway, Norway, NORWAY")

	status, body := getBody(t, client, server.URL+postPath)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1, strings.Count(body, `href="/tag/norway"`))
}

func TestEditPost(t *testing.T) {
	server, client := setupBlogServer(t)

	postPath := createPostViaForm(t, server, client, "Hello", "World", "norway")

	status, body := getBody(t, client, server.URL+postPath+"/edit")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Hello")
	assert.Contains(t, body, "norway")

	form, contentType := multipartForm(t, map[string]string{
		"title":   "Hello again",
		"content": "Updated body",
		"tags":    "sweden",
	}, "", nil)
	resp, err := client.Post(server.URL+postPath+"/edit", contentType, form)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, postPath, resp.Header.Get("Location"))

	status, body = getBody(t, client, server.URL+postPath)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Hello again")
	assert.Contains(t, body, `href="/tag/sweden"`)
	assert.NotContains(t, body, `href="/tag/norway"`)
}

func TestDeletePost(t *testing.T) {
	server, client := setupBlogServer(t)

	postPath := createPostViaForm(t, server, client, "Hello", "World", "")

	resp, err := client.Post(server.URL+postPath+"/delete", "application/x-www-form-urlencoded", nil)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/", resp.Header.Get("Location"))

	// The flash cookie set by the delete shows up once on the next page.
	status, body := getBody(t, client, server.URL+"/")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "The post was deleted.")

	status, body = getBody(t, client, server.URL+"/")
	assert.Equal(t, http.StatusOK, status)
	assert.NotContains(t, body, "The post was deleted.")

	status, _ = getBody(t, client, server.URL+postPath)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestDeletePost_UnknownRedirectsWithFlash(t *testing.T) {
	server, client := setupBlogServer(t)

	resp, err := client.Post(server.URL+"/post/424242/delete", "application/x-www-form-urlencoded", nil)
	require.NoError(t, err)
	resp.Body.Close()

	// A failed delete goes back to the index like a successful one does,
	// carrying a flash instead of surfacing an error page.
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/", resp.Header.Get("Location"))

	status, body := getBody(t, client, server.URL+"/")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "The post could not be deleted.")

	status, body = getBody(t, client, server.URL+"/")
	assert.Equal(t, http.StatusOK, status)
	assert.NotContains(t, body, "The post could not be deleted.")
}

func TestIndex_SortParam(t *testing.T) {
	server, client := setupBlogServer(t)

	createPostViaForm(t, server, client, "Alpha post", "first body", "")
	createPostViaForm(t, server, client, "Beta post", "second body", "")

	status, body := getBody(t, client, server.URL+"/?sort=title")
	assert.Equal(t, http.StatusOK, status)
	assert.Less(t, strings.Index(body, "Alpha post"), strings.Index(body, "Beta post"))

	status, body = getBody(t, client, server.URL+"/?sort=title_desc")
	assert.Equal(t, http.StatusOK, status)
	assert.Less(t, strings.Index(body, "Beta post"), strings.Index(body, "Alpha post"))

	// Unknown tokens fall back to the default ordering instead of erroring.
	status, _ = getBody(t, client, server.URL+"/?sort=bogus")
	assert.Equal(t, http.StatusOK, status)
}

func TestTagPage(t *testing.T) {
	server, client := setupBlogServer(t)

	createPostViaForm(t, server, client, "Hello", "World", "norway")

	status, body := getBody(t, client, server.URL+"/tag/norway")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Hello")

	status, body = getBody(t, client, server.URL+"/tag/nonexistent")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Nothing here yet.")
}

func TestCreatePost_WithImageUpload(t *testing.T) {
	server, client := setupBlogServer(t)

	body, contentType := multipartForm(t, map[string]string{
		"title":   "Picture post",
		"content": "Look at this",
	}, "photo.PNG", []byte("fake image bytes"))

	resp, err := client.Post(server.URL+"/post/new", contentType, body)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	postPath := resp.Header.Get("Location")

	status, page := getBody(t, client, server.URL+postPath)
	assert.Equal(t, http.StatusOK, status)
	require.Contains(t, page, `src="/static/uploads/`)

	// The stored file is reachable through the static file server.
	start := strings.Index(page, `src="/static/`) + len(`src="`)
	end := strings.Index(page[start:], `"`)
	imageURL := page[start : start+end]

	status, imageBody := getBody(t, client, server.URL+imageURL)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "fake image bytes", imageBody)
}
