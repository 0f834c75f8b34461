package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/wamuzi-news/internal/content"
	"github.com/wamuzi-news/internal/models"
	"github.com/wamuzi-news/internal/render"
	"github.com/wamuzi-news/internal/repository"
	"github.com/wamuzi-news/internal/validation"
)

// historyLimit caps the comments shown on a profile page
const historyLimit = 50

// commentService is the concrete implementation of CommentService
type commentService struct {
	repo      repository.CommentRepository
	validator *validation.Validator
	log       zerolog.Logger
}

func newCommentService(repo repository.CommentRepository, validator *validation.Validator, log zerolog.Logger) *commentService {
	return &commentService{
		repo:      repo,
		validator: validator,
		log:       log.With().Str("service", "comment").Logger(),
	}
}

// Thread returns the reply tree of an article and the number of comments in it
func (s *commentService) Thread(ctx context.Context, postID int64) ([]models.CommentNode, int, error) {
	comments, err := s.repo.ListByPost(ctx, postID)
	if err != nil {
		return nil, 0, fmt.Errorf("list comments: %w", err)
	}

	tree := content.BuildCommentTree(comments, models.RootParent)
	total := content.CountNodes(tree)
	if dropped := len(comments) - total; dropped > 0 {
		s.log.Warn().Int64("post_id", postID).Int("dropped", dropped).Msg("Comments with missing parents left out of thread")
	}
	return tree, total, nil
}

// Post validates and stores a comment. author is nil for anonymous readers.
func (s *commentService) Post(ctx context.Context, postID int64, form *models.CommentForm, author *models.User) (*models.Comment, error) {
	if errs := s.validator.ValidateComment(form); len(errs) > 0 {
		return nil, errs
	}

	if form.Parent != models.RootParent {
		parent, err := s.repo.GetByID(ctx, form.Parent)
		if err != nil {
			return nil, fmt.Errorf("get parent comment: %w", err)
		}
		if parent == nil || parent.Post != postID {
			return nil, validation.Errors{{
				Field:   "parent",
				Message: "The comment you replied to no longer exists.",
				Value:   form.Parent,
			}}
		}
	}

	comment := &models.Comment{
		Post:       postID,
		Parent:     form.Parent,
		AuthorName: strings.TrimSpace(form.AuthorName),
		Content:    render.Paragraph(strings.TrimSpace(form.Content)),
	}
	if author != nil {
		id := author.ID
		comment.UserID = &id
	}

	if err := s.repo.Create(ctx, comment); err != nil {
		s.log.Error().Err(err).Int64("post_id", postID).Msg("Failed to store comment")
		return nil, fmt.Errorf("create comment: %w", err)
	}

	s.log.Info().
		Int64("comment_id", comment.ID).
		Int64("post_id", postID).
		Int64("parent_id", comment.Parent).
		Msg("Comment posted")
	return comment, nil
}

// History returns the comments a user posted while logged in, newest first
func (s *commentService) History(ctx context.Context, userID int64) ([]models.Comment, error) {
	comments, err := s.repo.ListByUser(ctx, userID, historyLimit)
	if err != nil {
		return nil, fmt.Errorf("list user comments: %w", err)
	}
	return comments, nil
}
