package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/wamuzi-news/internal/models"
	"github.com/wamuzi-news/internal/service"
	"github.com/wamuzi-news/internal/validation"
)

func TestUserService_ChangeRole(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := register(t, f, "amina", "amina@test.com")
	reader := register(t, f, "brian", "brian@test.com")

	if err := f.svc.User.ChangeRole(ctx, admin, reader.ID, models.RoleAdmin); err != nil {
		t.Fatalf("ChangeRole failed: %v", err)
	}
	updated, _ := f.users.GetByID(ctx, reader.ID)
	if updated.Role != models.RoleAdmin {
		t.Errorf("Expected admin, got %s", updated.Role)
	}

	tests := []struct {
		name    string
		target  int64
		role    models.Role
		wantErr error
	}{
		{"self demotion", admin.ID, models.RoleUser, service.ErrSelfDemotion},
		{"missing user", 999, models.RoleUser, service.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := f.svc.User.ChangeRole(ctx, admin, tt.target, tt.role)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	err := f.svc.User.ChangeRole(ctx, admin, reader.ID, models.Role("editor"))
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		t.Errorf("Expected validation error for unknown role, got %v", err)
	}

	// keeping your own admin role is allowed
	if err := f.svc.User.ChangeRole(ctx, admin, admin.ID, models.RoleAdmin); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
}

func TestUserService_Delete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := register(t, f, "amina", "amina@test.com")
	reader := register(t, f, "brian", "brian@test.com")

	if err := f.svc.User.Delete(ctx, admin, admin.ID); !errors.Is(err, service.ErrSelfDeletion) {
		t.Errorf("Expected ErrSelfDeletion, got %v", err)
	}
	if err := f.svc.User.Delete(ctx, admin, reader.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := f.svc.User.Delete(ctx, admin, reader.ID); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("Expected ErrNotFound on second delete, got %v", err)
	}

	users, err := f.svc.User.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(users) != 1 || users[0].ID != admin.ID {
		t.Errorf("Expected only the admin left, got %+v", users)
	}
}
