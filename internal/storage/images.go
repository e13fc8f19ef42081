// filepath: internal/storage/images.go
// Package storage handles the uploaded-image files referenced by posts. The
// repository only ever records the relative paths this package hands out.
package storage

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"blogapp/internal/logging"
)

// allowedExtensions is the upload allow-list, matched against the lowercased
// filename suffix.
var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

// ImageStore saves and deletes uploaded images under a fixed static root.
type ImageStore struct {
	StaticRoot string
	UploadDir  string // relative to StaticRoot
}

// NewImageStore creates an ImageStore rooted at staticRoot.
func NewImageStore(staticRoot, uploadDir string) *ImageStore {
	return &ImageStore{StaticRoot: staticRoot, UploadDir: uploadDir}
}

// IsExtensionAllowed reports whether filename has a dot and an allow-listed
// extension.
func (s *ImageStore) IsExtensionAllowed(filename string) bool {
	ext := filepath.Ext(filename)
	if ext == "" {
		return false
	}
	return allowedExtensions[strings.ToLower(ext)]
}

// SaveImage streams an upload into the upload directory under a random
// filename and returns its path relative to the static root, with forward
// slashes regardless of host OS. The name is never derived from the
// user-supplied one, which rules out traversal and collisions at once. A
// disallowed extension is a soft failure: empty path, nil error.
func (s *ImageStore) SaveImage(fileData io.Reader, originalName string) (string, error) {
	if fileData == nil || originalName == "" {
		return "", nil
	}
	if !s.IsExtensionAllowed(originalName) {
		logging.Log.Debugf("Rejected upload with disallowed extension: %s", originalName)
		return "", nil
	}

	name, err := randomFilename(strings.ToLower(filepath.Ext(originalName)))
	if err != nil {
		return "", fmt.Errorf("could not generate filename: %w", err)
	}

	dir := filepath.Join(s.StaticRoot, filepath.FromSlash(s.UploadDir))
	// Concurrent uploads can race on directory creation; MkdirAll treats an
	// already-existing directory as success.
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("could not create upload directory: %w", err)
	}

	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("could not create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, fileData); err != nil {
		return "", fmt.Errorf("could not write file: %w", err)
	}

	return path.Join(s.UploadDir, name), nil
}

// DeleteImage removes the file at relPath beneath the static root. A missing
// file counts as already clean (false); only an existing, removed file yields
// true. Paths escaping the static root are refused.
func (s *ImageStore) DeleteImage(relPath string) bool {
	if relPath == "" {
		return false
	}

	fullPath := filepath.Join(s.StaticRoot, filepath.FromSlash(relPath))
	cleanedPath := filepath.Clean(fullPath)
	cleanedRoot := filepath.Clean(s.StaticRoot)
	if !strings.HasPrefix(cleanedPath, cleanedRoot+string(os.PathSeparator)) {
		logging.Log.Warnf("Path traversal attempt blocked for: %s", relPath)
		return false
	}

	if err := os.Remove(cleanedPath); err != nil {
		if !os.IsNotExist(err) {
			logging.Log.Warnf("Failed to delete image %s: %v", relPath, err)
		}
		return false
	}
	return true
}

// randomFilename returns 128 random bits hex-encoded, plus the extension.
func randomFilename(ext string) (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf) + ext, nil
}
