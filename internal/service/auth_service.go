package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/wamuzi-news/internal/config"
	"github.com/wamuzi-news/internal/models"
	"github.com/wamuzi-news/internal/repository"
	"github.com/wamuzi-news/internal/validation"
)

// authService is the concrete implementation of AuthService
type authService struct {
	users     repository.UserRepository
	sessions  repository.SessionRepository
	validator *validation.Validator
	cfg       config.AuthConfig
	log       zerolog.Logger
	now       func() time.Time
}

func newAuthService(users repository.UserRepository, sessions repository.SessionRepository, validator *validation.Validator, cfg config.AuthConfig, log zerolog.Logger) *authService {
	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	return &authService{
		users:     users,
		sessions:  sessions,
		validator: validator,
		cfg:       cfg,
		log:       log.With().Str("service", "auth").Logger(),
		now:       time.Now,
	}
}

// Register creates an account. The first account ever created is an admin.
func (s *authService) Register(ctx context.Context, form *models.RegisterForm) (*models.User, error) {
	if errs := s.validator.ValidateRegister(form); len(errs) > 0 {
		return nil, errs
	}

	email := strings.TrimSpace(form.Email)
	exists, err := s.users.EmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, ErrEmailTaken
	}

	count, err := s.users.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	role := models.RoleUser
	if count == 0 {
		role = models.RoleAdmin
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(form.Password), s.cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Username:     strings.TrimSpace(form.Username),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.log.Info().Int64("user_id", user.ID).Str("role", string(user.Role)).Msg("User registered")
	return user, nil
}

// Login checks credentials and opens a session
func (s *authService) Login(ctx context.Context, form *models.LoginForm) (*models.Session, *models.User, error) {
	if errs := s.validator.ValidateLogin(form); len(errs) > 0 {
		return nil, nil, errs
	}

	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(form.Email))
	if err != nil {
		return nil, nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return nil, nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(form.Password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	now := s.now()
	session := &models.Session{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.cfg.SessionTTL),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, nil, fmt.Errorf("create session: %w", err)
	}

	s.log.Info().Int64("user_id", user.ID).Msg("User logged in")
	return session, user, nil
}

// Logout ends a session
func (s *authService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return s.sessions.Delete(ctx, sessionID)
}

// Authenticate resolves a session cookie to its user. Unknown, malformed
// and expired sessions resolve to nil without an error.
func (s *authService) Authenticate(ctx context.Context, sessionID string) (*models.User, error) {
	if _, err := uuid.Parse(sessionID); err != nil {
		return nil, nil
	}

	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	if session == nil {
		return nil, nil
	}
	if session.Expired(s.now()) {
		if err := s.sessions.Delete(ctx, session.ID); err != nil {
			s.log.Warn().Err(err).Msg("Failed to delete expired session")
		}
		return nil, nil
	}

	user, err := s.users.GetByID(ctx, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// PurgeExpiredSessions deletes sessions past their expiry
func (s *authService) PurgeExpiredSessions(ctx context.Context) error {
	n, err := s.sessions.DeleteExpired(ctx)
	if err != nil {
		return fmt.Errorf("purge sessions: %w", err)
	}
	if n > 0 {
		s.log.Info().Int64("deleted", n).Msg("Expired sessions purged")
	}
	return nil
}
