package domain

import (
	"time"

	"github.com/google/uuid"
)

// Post is authored content. BodyHTML is derived from Body by the
// sanitizer and is never set independently; the service layer
// recomputes it on every body mutation.
type Post struct {
	ID        uuid.UUID `json:"id"`
	Body      string    `json:"body"`
	BodyHTML  string    `json:"body_html"`
	AuthorID  uuid.UUID `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
	// Joined fields.
	AuthorUsername string `json:"author_username,omitempty"`
	CommentCount   int    `json:"comment_count"`
}

// Comment has the shape of a Post plus a moderation flag and the post
// it belongs to. Its sanitization policy is narrower (inline tags
// only).
type Comment struct {
	ID        uuid.UUID `json:"id"`
	Body      string    `json:"body"`
	BodyHTML  string    `json:"body_html"`
	AuthorID  uuid.UUID `json:"author_id"`
	PostID    uuid.UUID `json:"post_id"`
	Disabled  bool      `json:"disabled"`
	CreatedAt time.Time `json:"created_at"`
	// Joined fields.
	AuthorUsername string `json:"author_username,omitempty"`
}
