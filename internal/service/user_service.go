package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/wamuzi-news/internal/models"
	"github.com/wamuzi-news/internal/repository"
	"github.com/wamuzi-news/internal/validation"
)

// userService is the concrete implementation of UserService
type userService struct {
	repo      repository.UserRepository
	validator *validation.Validator
	log       zerolog.Logger
}

func newUserService(repo repository.UserRepository, validator *validation.Validator, log zerolog.Logger) *userService {
	return &userService{
		repo:      repo,
		validator: validator,
		log:       log.With().Str("service", "user").Logger(),
	}
}

// List returns every account, oldest first
func (s *userService) List(ctx context.Context) ([]*models.User, error) {
	users, err := s.repo.List(ctx, repository.UserFilter{})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// ChangeRole sets a user's role. An admin cannot demote themselves.
func (s *userService) ChangeRole(ctx context.Context, actor *models.User, userID int64, role models.Role) error {
	if errs := s.validator.ValidateRole(role); len(errs) > 0 {
		return errs
	}
	if actor != nil && actor.ID == userID && role != models.RoleAdmin {
		return ErrSelfDemotion
	}

	target, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}
	if target == nil {
		return ErrNotFound
	}

	if err := s.repo.UpdateRole(ctx, userID, role); err != nil {
		return fmt.Errorf("update role: %w", err)
	}

	s.log.Info().
		Int64("actor_id", actorID(actor)).
		Int64("user_id", userID).
		Str("role", string(role)).
		Msg("User role changed")
	return nil
}

// Delete removes an account. An admin cannot delete themselves.
func (s *userService) Delete(ctx context.Context, actor *models.User, userID int64) error {
	if actor != nil && actor.ID == userID {
		return ErrSelfDeletion
	}

	target, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}
	if target == nil {
		return ErrNotFound
	}

	if err := s.repo.Delete(ctx, userID); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	s.log.Info().Int64("actor_id", actorID(actor)).Int64("user_id", userID).Msg("User deleted")
	return nil
}

func actorID(u *models.User) int64 {
	if u == nil {
		return 0
	}
	return u.ID
}
