package admin

import (
	"context"
	"errors"
	"testing"

	"solecare/models"
)

type memAdmins struct {
	byEmail map[string]*models.Admin
	creates int
}

func newMemAdmins() *memAdmins {
	return &memAdmins{byEmail: make(map[string]*models.Admin)}
}

func (m *memAdmins) GetByEmail(_ context.Context, email string) (*models.Admin, error) {
	if a, ok := m.byEmail[email]; ok {
		return a, nil
	}
	return nil, errors.New("not found")
}

func (m *memAdmins) Create(_ context.Context, a *models.Admin) error {
	m.byEmail[a.Email] = a
	m.creates++
	return nil
}

func TestSeedAdmin(t *testing.T) {
	repo := newMemAdmins()
	ctx := context.Background()

	if err := SeedAdmin(ctx, repo, "ops@solecare.co.uk", "Ops", "$2a$10$hash"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	seeded, err := repo.GetByEmail(ctx, "ops@solecare.co.uk")
	if err != nil {
		t.Fatalf("seeded account missing: %v", err)
	}
	if seeded.Role != models.RoleAdmin {
		t.Fatalf("role = %q, want %q", seeded.Role, models.RoleAdmin)
	}
	if seeded.PasswordHash != "$2a$10$hash" {
		t.Fatalf("password hash = %q", seeded.PasswordHash)
	}

	// Re-running at the next startup must not create a duplicate.
	if err := SeedAdmin(ctx, repo, "ops@solecare.co.uk", "Ops", "$2a$10$other"); err != nil {
		t.Fatalf("repeat seed: %v", err)
	}
	if repo.creates != 1 {
		t.Fatalf("creates = %d, want 1", repo.creates)
	}
}
