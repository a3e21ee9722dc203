package domain

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	RoleID       uuid.UUID `json:"role_id"`
	Confirmed    bool      `json:"confirmed"`
	AvatarHash   string    `json:"avatar_hash"`
	Name         string    `json:"name,omitempty"`
	Location     string    `json:"location,omitempty"`
	About        string    `json:"about,omitempty"`
	MemberSince  time.Time `json:"member_since"`
	LastSeen     time.Time `json:"last_seen"`
	// Joined field, populated by lookups that join the roles table.
	Role *Role `json:"-"`
}

// Can reports whether the user's role grants p. A user with no loaded
// role grants nothing.
func (u *User) Can(p Permission) bool {
	return u.Role != nil && u.Role.Has(p)
}

func (u *User) IsAdministrator() bool {
	return u.Can(PermAdmin)
}

// GravatarHash derives the avatar fingerprint from the lowercased
// email. md5 is required for gravatar compatibility.
func GravatarHash(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(email)))
	return hex.EncodeToString(sum[:])
}

// GravatarURL builds the avatar URL for the user at the given size.
func (u *User) GravatarURL(size int) string {
	hash := u.AvatarHash
	if hash == "" {
		hash = GravatarHash(u.Email)
	}
	return fmt.Sprintf("https://secure.gravatar.com/avatar/%s?s=%d&d=identicon&r=g", hash, size)
}

// Actor is anything that can be permission-checked: a loaded user or
// the anonymous actor standing in for unauthenticated requests.
type Actor interface {
	Can(Permission) bool
	IsAdministrator() bool
}

// Anonymous is the actor for unauthenticated requests. It holds no
// permissions.
type Anonymous struct{}

func (Anonymous) Can(Permission) bool   { return false }
func (Anonymous) IsAdministrator() bool { return false }
