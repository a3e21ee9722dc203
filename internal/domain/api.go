package domain

import (
	"fmt"
	"strings"
	"time"
)

// Public API shapes. These are what the JSON layer serves for users,
// posts and comments; internal fields (emails, role IDs, moderation
// flags) never leave through them.

type APIUser struct {
	URL              string    `json:"url"`
	Username         string    `json:"username"`
	MemberSince      time.Time `json:"member_since"`
	LastSeen         time.Time `json:"last_seen"`
	PostsURL         string    `json:"posts_url"`
	FollowedPostsURL string    `json:"followed_posts_url"`
	PostCount        int       `json:"post_count"`
}

type APIPost struct {
	URL          string    `json:"url"`
	Body         string    `json:"body"`
	BodyHTML     string    `json:"body_html"`
	Timestamp    time.Time `json:"timestamp"`
	AuthorURL    string    `json:"author_url"`
	CommentsURL  string    `json:"comments_url"`
	CommentCount int       `json:"comment_count"`
}

type APIComment struct {
	URL       string    `json:"url"`
	PostURL   string    `json:"post_url"`
	Body      string    `json:"body"`
	BodyHTML  string    `json:"body_html"`
	Timestamp time.Time `json:"timestamp"`
	AuthorURL string    `json:"author_url"`
}

const apiPrefix = "/api/v1"

func (u *User) ToAPI(postCount int) APIUser {
	return APIUser{
		URL:              fmt.Sprintf("%s/users/%s", apiPrefix, u.ID),
		Username:         u.Username,
		MemberSince:      u.MemberSince,
		LastSeen:         u.LastSeen,
		PostsURL:         fmt.Sprintf("%s/users/%s/posts", apiPrefix, u.ID),
		FollowedPostsURL: fmt.Sprintf("%s/users/%s/timeline", apiPrefix, u.ID),
		PostCount:        postCount,
	}
}

func (p *Post) ToAPI() APIPost {
	return APIPost{
		URL:          fmt.Sprintf("%s/posts/%s", apiPrefix, p.ID),
		Body:         p.Body,
		BodyHTML:     p.BodyHTML,
		Timestamp:    p.CreatedAt,
		AuthorURL:    fmt.Sprintf("%s/users/%s", apiPrefix, p.AuthorID),
		CommentsURL:  fmt.Sprintf("%s/posts/%s/comments", apiPrefix, p.ID),
		CommentCount: p.CommentCount,
	}
}

func (c *Comment) ToAPI() APIComment {
	return APIComment{
		URL:       fmt.Sprintf("%s/comments/%s", apiPrefix, c.ID),
		PostURL:   fmt.Sprintf("%s/posts/%s", apiPrefix, c.PostID),
		Body:      c.Body,
		BodyHTML:  c.BodyHTML,
		Timestamp: c.CreatedAt,
		AuthorURL: fmt.Sprintf("%s/users/%s", apiPrefix, c.AuthorID),
	}
}

// ContentInput is the inbound shape for creating or editing a post or
// comment. Body is the only caller-settable content field; BodyHTML is
// always derived server-side.
type ContentInput struct {
	Body string `json:"body"`
}

// Validate rejects a blank body, matching the API contract that a
// post or comment without a body is malformed.
func (in ContentInput) Validate() error {
	if strings.TrimSpace(in.Body) == "" {
		return &ValidationError{Field: "body", Msg: "is required"}
	}
	return nil
}
