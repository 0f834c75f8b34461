package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/wamuzi-news/internal/mocks"
	"github.com/wamuzi-news/internal/models"
	"github.com/wamuzi-news/internal/repository"
)

func TestMockUserRepository_CreateAssignsIDs(t *testing.T) {
	repo := mocks.NewMockUserRepository()
	ctx := context.Background()

	for _, email := range []string{"a@test.com", "b@test.com", "c@test.com"} {
		if err := repo.Create(ctx, &models.User{Username: email, Email: email, Role: models.RoleUser}); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	count, _ := repo.Count(ctx)
	if count != 3 {
		t.Errorf("Expected 3 users, got %d", count)
	}

	stored, err := repo.GetByID(ctx, 2)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if stored == nil || stored.Email != "b@test.com" {
		t.Errorf("Expected b@test.com at id 2, got %+v", stored)
	}

	missing, err := repo.GetByID(ctx, 99)
	if err != nil || missing != nil {
		t.Errorf("Expected nil, nil for missing user, got %v, %v", missing, err)
	}
}

func TestMockUserRepository_DuplicateEmail(t *testing.T) {
	repo := mocks.NewMockUserRepository()
	ctx := context.Background()

	if err := repo.Create(ctx, &models.User{Email: "dup@test.com"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	err := repo.Create(ctx, &models.User{Email: "DUP@test.com"})
	if !errors.Is(err, repository.ErrDuplicateEmail) {
		t.Errorf("Expected ErrDuplicateEmail, got %v", err)
	}

	exists, _ := repo.EmailExists(ctx, "Dup@Test.com")
	if !exists {
		t.Error("Email lookup should be case-insensitive")
	}
}

func TestMockUserRepository_ListFilter(t *testing.T) {
	repo := mocks.NewMockUserRepository()
	ctx := context.Background()

	repo.Create(ctx, &models.User{Username: "amina", Email: "amina@test.com", Role: models.RoleAdmin})
	repo.Create(ctx, &models.User{Username: "brian", Email: "brian@test.com", Role: models.RoleUser})
	repo.Create(ctx, &models.User{Username: "chebet", Email: "chebet@test.com", Role: models.RoleUser})

	tests := []struct {
		name   string
		filter repository.UserFilter
		want   []int64
	}{
		{"all", repository.UserFilter{}, []int64{1, 2, 3}},
		{"by role", repository.UserFilter{Role: models.RoleUser}, []int64{2, 3}},
		{"search", repository.UserFilter{Search: "CHE"}, []int64{3}},
		{"paged", repository.UserFilter{Limit: 1, Offset: 1}, []int64{2}},
		{"offset past end", repository.UserFilter{Offset: 10}, []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users, err := repo.List(ctx, tt.filter)
			if err != nil {
				t.Fatalf("List failed: %v", err)
			}
			if len(users) != len(tt.want) {
				t.Fatalf("Expected %d users, got %d", len(tt.want), len(users))
			}
			for i, u := range users {
				if u.ID != tt.want[i] {
					t.Errorf("Position %d: expected id %d, got %d", i, tt.want[i], u.ID)
				}
			}
		})
	}
}

func TestMockCommentRepository_ListByUserNewestFirst(t *testing.T) {
	repo := mocks.NewMockCommentRepository()
	ctx := context.Background()
	uid := int64(7)
	base := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

	repo.Seed(
		models.Comment{ID: 1, Post: 10, UserID: &uid, Date: base},
		models.Comment{ID: 2, Post: 11, UserID: &uid, Date: base.Add(time.Hour)},
		models.Comment{ID: 3, Post: 10, Date: base.Add(2 * time.Hour)},
	)

	got, err := repo.ListByUser(ctx, uid, 10)
	if err != nil {
		t.Fatalf("ListByUser failed: %v", err)
	}
	if len(got) != 2 || got[0].ID != 2 || got[1].ID != 1 {
		t.Errorf("Expected [2 1], got %+v", got)
	}

	limited, _ := repo.ListByUser(ctx, uid, 1)
	if len(limited) != 1 {
		t.Errorf("Expected limit to apply, got %d", len(limited))
	}

	byPost, _ := repo.ListByPost(ctx, 10)
	if len(byPost) != 2 {
		t.Errorf("Expected 2 comments on post 10, got %d", len(byPost))
	}

	c := &models.Comment{Post: 10}
	repo.Create(ctx, c)
	if c.ID != 4 {
		t.Errorf("Expected next id 4 after seeding, got %d", c.ID)
	}
}

func TestMockSettingsRepository_ResetClearsRecord(t *testing.T) {
	repo := mocks.NewMockSettingsRepository()
	ctx := context.Background()

	if data, _ := repo.Load(ctx); data != nil {
		t.Error("Expected no record initially")
	}

	repo.Save(ctx, []byte(`{"general":{}}`))
	if data, _ := repo.Load(ctx); string(data) != `{"general":{}}` {
		t.Errorf("Unexpected record %q", data)
	}

	repo.Reset(ctx)
	if data, _ := repo.Load(ctx); data != nil {
		t.Error("Expected record to be gone after reset")
	}
}

func TestMockSessionRepository_DeleteExpired(t *testing.T) {
	repo := mocks.NewMockSessionRepository()
	ctx := context.Background()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	repo.Now = func() time.Time { return now }

	repo.Create(ctx, &models.Session{ID: "old", ExpiresAt: now.Add(-time.Minute)})
	repo.Create(ctx, &models.Session{ID: "edge", ExpiresAt: now})
	repo.Create(ctx, &models.Session{ID: "live", ExpiresAt: now.Add(time.Hour)})

	n, err := repo.DeleteExpired(ctx)
	if err != nil {
		t.Fatalf("DeleteExpired failed: %v", err)
	}
	if n != 2 {
		t.Errorf("Expected 2 deleted, got %d", n)
	}
	if s, _ := repo.GetByID(ctx, "live"); s == nil {
		t.Error("Live session should survive")
	}
}
