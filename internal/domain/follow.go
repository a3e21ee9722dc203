package domain

import (
	"time"

	"github.com/google/uuid"
)

// Follow is a directed edge meaning "follower sees followed's posts".
// The (FollowerID, FollowedID) pair is the primary key; every user
// carries a self-edge so the followed-posts feed includes their own
// posts.
type Follow struct {
	FollowerID uuid.UUID `json:"follower_id"`
	FollowedID uuid.UUID `json:"followed_id"`
	CreatedAt  time.Time `json:"created_at"`
	// Joined fields for follower/following listings.
	Username   string `json:"username,omitempty"`
	AvatarHash string `json:"avatar_hash,omitempty"`
}
