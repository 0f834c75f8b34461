package repository

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"

	"github.com/wamuzi-news/internal/database"
	"github.com/wamuzi-news/internal/models"
)

// ErrDuplicateEmail is returned when an account already uses the email
var ErrDuplicateEmail = errors.New("email already registered")

// psql builds Postgres statements with $n placeholders
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// UserFilter narrows a user listing
type UserFilter struct {
	Role   models.Role
	Search string // matched against username and email
	Limit  int
	Offset int
}

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	Count(ctx context.Context) (int, error)
	List(ctx context.Context, filter UserFilter) ([]*models.User, error)
	UpdateRole(ctx context.Context, id int64, role models.Role) error
	Delete(ctx context.Context, id int64) error
}

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id int64) (*models.Comment, error)
	ListByPost(ctx context.Context, postID int64) ([]models.Comment, error)
	ListByUser(ctx context.Context, userID int64, limit int) ([]models.Comment, error)
}

// SettingsRepository stores the theme settings record as raw JSON
type SettingsRepository interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
	Reset(ctx context.Context) error
}

// SessionRepository defines the interface for login sessions
type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	GetByID(ctx context.Context, id string) (*models.Session, error)
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context) (int64, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	User     UserRepository
	Comment  CommentRepository
	Settings SettingsRepository
	Session  SessionRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		User:     NewUserRepo(db),
		Comment:  NewCommentRepo(db),
		Settings: NewSettingsRepo(db),
		Session:  NewSessionRepo(db),
	}
}
