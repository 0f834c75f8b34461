package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/wamuzi-news/internal/models"
	"github.com/wamuzi-news/internal/validation"
)

func TestCommentService_PostAndThread(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	base := time.Now()
	tick := 0
	f.comments.Now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	root, err := f.svc.Comment.Post(ctx, 100, &models.CommentForm{AuthorName: " Wanjiku ", Content: "First!\n<b>bold</b>"}, nil)
	if err != nil {
		t.Fatalf("Post failed: %v", err)
	}
	if root.AuthorName != "Wanjiku" {
		t.Errorf("Expected trimmed author, got %q", root.AuthorName)
	}
	if root.Content != "<p>First!<br>&lt;b&gt;bold&lt;/b&gt;</p>" {
		t.Errorf("Unexpected rendered content %q", root.Content)
	}
	if root.UserID != nil {
		t.Error("Anonymous comment should have no user id")
	}

	reply, err := f.svc.Comment.Post(ctx, 100, &models.CommentForm{AuthorName: "Otieno", Content: "Agreed", Parent: root.ID}, nil)
	if err != nil {
		t.Fatalf("Reply failed: %v", err)
	}
	f.svc.Comment.Post(ctx, 100, &models.CommentForm{AuthorName: "Chebet", Content: "Second"}, nil)
	f.svc.Comment.Post(ctx, 200, &models.CommentForm{AuthorName: "Elsewhere", Content: "Other article"}, nil)

	tree, total, err := f.svc.Comment.Thread(ctx, 100)
	if err != nil {
		t.Fatalf("Thread failed: %v", err)
	}
	if total != 3 {
		t.Errorf("Expected 3 comments, got %d", total)
	}
	if len(tree) != 2 || tree[0].ID != root.ID {
		t.Fatalf("Unexpected roots %+v", tree)
	}
	if len(tree[0].Replies) != 1 || tree[0].Replies[0].ID != reply.ID {
		t.Errorf("Expected reply nested under root, got %+v", tree[0].Replies)
	}
}

func TestCommentService_ValidationStopsWrite(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Comment.Post(ctx, 100, &models.CommentForm{AuthorName: "   ", Content: "text"}, nil)
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		t.Fatalf("Expected validation errors, got %v", err)
	}
	if verrs.First() != "Name and comment are required." {
		t.Errorf("Unexpected message %q", verrs.First())
	}
	if len(f.comments.Comments) != 0 {
		t.Error("Invalid comment must not be stored")
	}
}

func TestCommentService_ReplyParentMustExistOnPost(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	other, _ := f.svc.Comment.Post(ctx, 200, &models.CommentForm{AuthorName: "A", Content: "elsewhere"}, nil)

	for _, parent := range []int64{999, other.ID} {
		_, err := f.svc.Comment.Post(ctx, 100, &models.CommentForm{AuthorName: "B", Content: "reply", Parent: parent}, nil)
		var verrs validation.Errors
		if !errors.As(err, &verrs) || verrs.Field("parent") == "" {
			t.Errorf("Expected parent validation error for %d, got %v", parent, err)
		}
	}
}

func TestCommentService_History(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := register(t, f, "amina", "amina@test.com")

	f.svc.Comment.Post(ctx, 100, &models.CommentForm{AuthorName: "amina", Content: "mine"}, user)
	f.svc.Comment.Post(ctx, 100, &models.CommentForm{AuthorName: "guest", Content: "not mine"}, nil)

	history, err := f.svc.Comment.History(ctx, user.ID)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(history) != 1 || history[0].UserID == nil || *history[0].UserID != user.ID {
		t.Errorf("Expected only the user's comment, got %+v", history)
	}
}
