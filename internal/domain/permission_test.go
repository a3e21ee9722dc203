package domain

import (
	"testing"
)

func TestRoleHas_MatchesMask(t *testing.T) {
	t.Parallel()

	all := []Permission{PermFollow, PermComment, PermWrite, PermModerate, PermAdmin}
	role := &Role{Permissions: PermFollow | PermWrite}

	for _, p := range all {
		want := p == PermFollow || p == PermWrite
		if got := role.Has(p); got != want {
			t.Fatalf("Has(%d) = %v, want %v", p, got, want)
		}
	}
}

func TestRoleAddRemove(t *testing.T) {
	t.Parallel()

	role := &Role{}

	role.Add(PermModerate)
	if !role.Has(PermModerate) {
		t.Fatalf("expected Moderate after Add")
	}

	// Adding twice must not change the mask.
	before := role.Permissions
	role.Add(PermModerate)
	if role.Permissions != before {
		t.Fatalf("Add is not idempotent: %d != %d", role.Permissions, before)
	}

	role.Remove(PermModerate)
	if role.Has(PermModerate) {
		t.Fatalf("expected Moderate cleared after Remove")
	}

	// Removing an absent bit is a no-op.
	role.Remove(PermAdmin)
	if role.Permissions != 0 {
		t.Fatalf("expected empty mask, got %d", role.Permissions)
	}
}

func TestRoleHas_CombinedBits(t *testing.T) {
	t.Parallel()

	role := &Role{Permissions: PermFollow | PermComment}

	if !role.Has(PermFollow | PermComment) {
		t.Fatalf("expected combined check to pass")
	}
	if role.Has(PermFollow | PermWrite) {
		t.Fatalf("combined check must require every bit")
	}
}

func TestRoleReset(t *testing.T) {
	t.Parallel()

	role := &Role{Permissions: PermFollow | PermComment | PermWrite | PermModerate | PermAdmin}
	role.Reset()
	if role.Permissions != 0 {
		t.Fatalf("expected zero mask after Reset, got %d", role.Permissions)
	}
}

func TestCanonicalRoles(t *testing.T) {
	t.Parallel()

	roles := CanonicalRoles()
	if len(roles) != 3 {
		t.Fatalf("expected 3 canonical roles, got %d", len(roles))
	}

	defaults := 0
	byName := map[string]Role{}
	for _, r := range roles {
		byName[r.Name] = r
		if r.Default {
			defaults++
			if r.Name != RoleNameUser {
				t.Fatalf("default role is %q, want %q", r.Name, RoleNameUser)
			}
		}
	}
	if defaults != 1 {
		t.Fatalf("expected exactly one default role, got %d", defaults)
	}

	user := byName[RoleNameUser]
	if !user.Has(PermFollow) || !user.Has(PermComment) || !user.Has(PermWrite) {
		t.Fatalf("User role missing base permissions: %d", user.Permissions)
	}
	if user.Has(PermModerate) || user.Has(PermAdmin) {
		t.Fatalf("User role has elevated permissions: %d", user.Permissions)
	}

	mod := byName[RoleNameModerator]
	if !mod.Has(PermModerate) || mod.Has(PermAdmin) {
		t.Fatalf("Moderator mask wrong: %d", mod.Permissions)
	}

	admin := byName[RoleNameAdministrator]
	if !admin.Has(PermFollow | PermComment | PermWrite | PermModerate | PermAdmin) {
		t.Fatalf("Administrator mask wrong: %d", admin.Permissions)
	}
}

func TestUserCan(t *testing.T) {
	t.Parallel()

	user := &User{Role: &Role{Permissions: PermFollow | PermComment | PermWrite}}
	if !user.Can(PermFollow) {
		t.Fatalf("expected Can(Follow)")
	}
	if user.Can(PermAdmin) {
		t.Fatalf("did not expect Can(Admin)")
	}
	if user.IsAdministrator() {
		t.Fatalf("did not expect administrator")
	}

	// A user whose role never loaded grants nothing.
	bare := &User{}
	if bare.Can(PermFollow) {
		t.Fatalf("roleless user must grant nothing")
	}
}

func TestAnonymousCanNothing(t *testing.T) {
	t.Parallel()

	var actor Actor = Anonymous{}
	for _, p := range []Permission{PermFollow, PermComment, PermWrite, PermModerate, PermAdmin} {
		if actor.Can(p) {
			t.Fatalf("anonymous actor must not have permission %d", p)
		}
	}
	if actor.IsAdministrator() {
		t.Fatalf("anonymous actor must not be administrator")
	}
}
