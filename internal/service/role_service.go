package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/scribeapp/scribe/internal/domain"
	"github.com/scribeapp/scribe/internal/repository"
)

type RoleService struct {
	roleRepo repository.RoleRepository
}

func NewRoleService(roleRepo repository.RoleRepository) *RoleService {
	return &RoleService{roleRepo: roleRepo}
}

// SeedRoles upserts the canonical role table. Each role's mask is
// taken wholesale from the table, never merged with what is already
// stored, so re-running is idempotent and permission changes in the
// table propagate. "User" is the single default role.
func (s *RoleService) SeedRoles(ctx context.Context) error {
	for _, canonical := range domain.CanonicalRoles() {
		existing, err := s.roleRepo.GetByName(ctx, canonical.Name)
		if err != nil {
			return fmt.Errorf("looking up role %s: %w", canonical.Name, err)
		}

		role := canonical
		if existing != nil {
			role.ID = existing.ID
			role.CreatedAt = existing.CreatedAt
		} else {
			role.ID = uuid.New()
			role.CreatedAt = time.Now()
		}

		if err := s.roleRepo.Upsert(ctx, &role); err != nil {
			return fmt.Errorf("seeding role %s: %w", canonical.Name, err)
		}
	}
	return nil
}
