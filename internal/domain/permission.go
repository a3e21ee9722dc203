package domain

import (
	"time"

	"github.com/google/uuid"
)

// Permission is a single capability bit. Permissions combine with
// bitwise OR into a role's mask.
type Permission int

const (
	PermFollow   Permission = 1
	PermComment  Permission = 2
	PermWrite    Permission = 4
	PermModerate Permission = 8
	PermAdmin    Permission = 16
)

// Role is a named bundle of permissions. Exactly one role in the
// system has Default set.
type Role struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Default     bool       `json:"default"`
	Permissions Permission `json:"permissions"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Has reports whether every bit of p is set in the role's mask.
func (r *Role) Has(p Permission) bool {
	return r.Permissions&p == p
}

// Add sets the bits of p. No-op if already set.
func (r *Role) Add(p Permission) {
	r.Permissions |= p
}

// Remove clears the bits of p. No-op if already clear.
func (r *Role) Remove(p Permission) {
	r.Permissions &^= p
}

// Reset zeroes the mask.
func (r *Role) Reset() {
	r.Permissions = 0
}

const (
	RoleNameUser          = "User"
	RoleNameModerator     = "Moderator"
	RoleNameAdministrator = "Administrator"
)

// CanonicalRoles is the fixed role table seeded at bootstrap. Masks
// are recomputed from this table on every seeding run, so seeding is
// idempotent and never additive.
func CanonicalRoles() []Role {
	return []Role{
		{
			Name:        RoleNameUser,
			Default:     true,
			Permissions: PermFollow | PermComment | PermWrite,
		},
		{
			Name:        RoleNameModerator,
			Permissions: PermFollow | PermComment | PermWrite | PermModerate,
		},
		{
			Name:        RoleNameAdministrator,
			Permissions: PermFollow | PermComment | PermWrite | PermModerate | PermAdmin,
		},
	}
}
