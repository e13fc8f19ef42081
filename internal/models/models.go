package models

import "time"

// Post is a single blog entry. ImageFilename, when set, is a path relative to
// the static root (forward slashes), produced by the image store.
type Post struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	PublishedDate time.Time `json:"published_date"`
	ImageFilename *string   `json:"image_filename,omitempty"`

	// Tags is populated by list/detail queries, not by Scan.
	Tags []Tag `json:"tags,omitempty"`
}

// Tag is a named label, many-to-many with posts. Names are unique.
type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Comment is a reader-submitted note attached to one post.
type Comment struct {
	ID            int64     `json:"id"`
	PostID        int64     `json:"post_id"`
	Author        string    `json:"author"`
	Content       string    `json:"content"`
	PublishedDate time.Time `json:"published_date"`
}
