// filepath: internal/services/post_service.go
package services

import (
	"io"
	"strings"

	"blogapp/internal/logging"
	"blogapp/internal/models"
	"blogapp/internal/repository"
	"blogapp/internal/storage"
)

// UploadedImage carries a pending image upload from the HTTP layer. A nil
// *UploadedImage means no file was submitted.
type UploadedImage struct {
	Filename string
	Data     io.Reader
}

// PostService orchestrates the repository and the image store so that the
// repository never touches the filesystem and the handlers never touch SQL.
type PostService struct {
	repo   *repository.Repository
	images *storage.ImageStore
}

// NewPostService creates a new PostService.
func NewPostService(repo *repository.Repository, images *storage.ImageStore) *PostService {
	return &PostService{repo: repo, images: images}
}

// ListPosts returns all posts with tags in the requested order.
func (s *PostService) ListPosts(order repository.PostOrder) ([]models.Post, error) {
	return s.repo.ListPosts(order)
}

// GetPost returns a post with tags and comments, or (nil, nil, nil) when the
// id does not exist.
func (s *PostService) GetPost(id int64) (*models.Post, []models.Comment, error) {
	post, err := s.repo.GetPost(id)
	if err != nil || post == nil {
		return post, nil, err
	}
	comments, err := s.repo.CommentsForPost(id)
	if err != nil {
		return post, nil, err
	}
	return post, comments, nil
}

// PostsForTag returns the posts carrying the named tag, newest first.
func (s *PostService) PostsForTag(name string) ([]models.Post, error) {
	return s.repo.PostsForTag(name)
}

// AddComment records a visitor comment. Returns 0 on failure; the cause is
// already logged at the repository.
func (s *PostService) AddComment(postID int64, author, content string) int64 {
	id, err := s.repo.AddComment(postID, author, content)
	if err != nil {
		return 0
	}
	return id
}

// CreatePost saves the optional image, inserts the post, and links its tags.
// Returns the new post id, or 0 when the insert failed. A disallowed image
// extension is a soft skip: the post is still created, without an image.
func (s *PostService) CreatePost(title, content string, upload *UploadedImage, tags []string) int64 {
	var imageFilename *string
	if upload != nil {
		relPath, err := s.images.SaveImage(upload.Data, upload.Filename)
		if err != nil {
			logging.Log.Errorf("CreatePost: failed to save image: %v", err)
		} else if relPath != "" {
			imageFilename = &relPath
		}
	}

	id, err := s.repo.CreatePost(title, content, imageFilename)
	if err != nil {
		// The post row never landed; don't leave the file behind.
		if imageFilename != nil {
			s.images.DeleteImage(*imageFilename)
		}
		return 0
	}

	s.applyTags(id, tags)
	return id
}

// UpdatePost updates a post under the three-mode image contract: a new upload
// replaces the current image, removeImage clears it, and otherwise the image
// column stays untouched. The tag link-set is replaced wholesale. Returns
// false when the id did not exist or the update failed.
func (s *PostService) UpdatePost(id int64, title, content string, upload *UploadedImage, removeImage bool, tags []string) bool {
	current, err := s.repo.GetPost(id)
	if err != nil || current == nil {
		return false
	}

	var imageFilename *string
	applyImageChange := false

	if upload != nil {
		relPath, err := s.images.SaveImage(upload.Data, upload.Filename)
		if err != nil {
			logging.Log.Errorf("UpdatePost(%d): failed to save image: %v", id, err)
		} else if relPath != "" {
			imageFilename = &relPath
			applyImageChange = true
		}
	}
	// A rejected or failed upload must not swallow an explicit clear.
	if !applyImageChange && removeImage {
		applyImageChange = true // imageFilename stays nil: explicit clear
	}

	ok, err := s.repo.UpdatePost(id, title, content, imageFilename, applyImageChange)
	if err != nil || !ok {
		if imageFilename != nil {
			s.images.DeleteImage(*imageFilename)
		}
		return false
	}

	// Row updated; the replaced or cleared file is advisory cleanup.
	if applyImageChange && current.ImageFilename != nil {
		s.images.DeleteImage(*current.ImageFilename)
	}

	if s.repo.UnlinkAll(id) {
		s.applyTags(id, tags)
	}
	return true
}

// DeletePost removes a post row (comments and links cascade) and then
// best-effort deletes its image file. File cleanup failures never change the
// result.
func (s *PostService) DeletePost(id int64) bool {
	post, err := s.repo.GetPost(id)
	if err != nil || post == nil {
		return false
	}

	ok, err := s.repo.DeletePost(id)
	if err != nil || !ok {
		return false
	}

	if post.ImageFilename != nil {
		s.images.DeleteImage(*post.ImageFilename)
	}
	return true
}

// applyTags deduplicates, creates, and links the given tag names.
func (s *PostService) applyTags(postID int64, tags []string) {
	seen := make(map[string]bool)
	for _, raw := range tags {
		name := strings.ToLower(strings.TrimSpace(raw))
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		tagID, err := s.repo.GetOrCreateTag(name)
		if err != nil {
			logging.Log.Warnf("Skipping tag %q for post %d: %v", name, postID, err)
			continue
		}
		s.repo.LinkTag(postID, tagID)
	}
}

// ParseTagList splits a comma-separated form field into tag names.
func ParseTagList(field string) []string {
	parts := strings.Split(field, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			tags = append(tags, trimmed)
		}
	}
	return tags
}
