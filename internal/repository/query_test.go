package repository

import (
	"strings"
	"testing"

	"github.com/wamuzi-news/internal/models"
)

func TestUserListQuery(t *testing.T) {
	tests := []struct {
		name     string
		filter   UserFilter
		contains []string
		excludes []string
		numArgs  int
	}{
		{
			name:     "no filter",
			filter:   UserFilter{},
			contains: []string{"FROM users", "ORDER BY created_at ASC, id ASC"},
			excludes: []string{"WHERE", "LIMIT", "OFFSET"},
			numArgs:  0,
		},
		{
			name:     "role",
			filter:   UserFilter{Role: models.RoleAdmin},
			contains: []string{"WHERE role = $1"},
			numArgs:  1,
		},
		{
			name:     "search and paging",
			filter:   UserFilter{Search: " ach ", Limit: 10, Offset: 20},
			contains: []string{"username ILIKE $1", "email ILIKE $2", "LIMIT 10", "OFFSET 20"},
			numArgs:  2,
		},
		{
			name:     "blank search ignored",
			filter:   UserFilter{Search: "   "},
			excludes: []string{"ILIKE"},
			numArgs:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := userListQuery(tt.filter)
			if err != nil {
				t.Fatalf("userListQuery failed: %v", err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(query, want) {
					t.Errorf("Expected %q in %q", want, query)
				}
			}
			for _, unwanted := range tt.excludes {
				if strings.Contains(query, unwanted) {
					t.Errorf("Did not expect %q in %q", unwanted, query)
				}
			}
			if len(args) != tt.numArgs {
				t.Errorf("Expected %d args, got %d", tt.numArgs, len(args))
			}
		})
	}

	_, args, _ := userListQuery(UserFilter{Search: " ach "})
	if args[0] != "%ach%" {
		t.Errorf("Expected trimmed pattern, got %v", args[0])
	}
}

func TestCommentQueries(t *testing.T) {
	query, args, err := postCommentsQuery(42).ToSql()
	if err != nil {
		t.Fatalf("postCommentsQuery failed: %v", err)
	}
	if !strings.Contains(query, "WHERE post_id = $1") || !strings.Contains(query, "ORDER BY created_at ASC") {
		t.Errorf("Unexpected query %q", query)
	}
	if len(args) != 1 || args[0] != int64(42) {
		t.Errorf("Unexpected args %v", args)
	}

	query, _, err = userCommentsQuery(7, 25).ToSql()
	if err != nil {
		t.Fatalf("userCommentsQuery failed: %v", err)
	}
	if !strings.Contains(query, "WHERE user_id = $1") || !strings.Contains(query, "LIMIT 25") ||
		!strings.Contains(query, "ORDER BY created_at DESC") {
		t.Errorf("Unexpected query %q", query)
	}

	query, _, _ = userCommentsQuery(7, 0).ToSql()
	if strings.Contains(query, "LIMIT") {
		t.Errorf("Zero limit should not add LIMIT: %q", query)
	}
}
