package mocks

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/wamuzi-news/internal/models"
	"github.com/wamuzi-news/internal/repository"
)

// Verify interface compliance
var (
	_ repository.UserRepository     = (*MockUserRepository)(nil)
	_ repository.CommentRepository  = (*MockCommentRepository)(nil)
	_ repository.SettingsRepository = (*MockSettingsRepository)(nil)
	_ repository.SessionRepository  = (*MockSessionRepository)(nil)
)

// NewRepositories returns a Repositories backed entirely by mocks
func NewRepositories() (*repository.Repositories, *MockUserRepository, *MockCommentRepository, *MockSettingsRepository, *MockSessionRepository) {
	users := NewMockUserRepository()
	comments := NewMockCommentRepository()
	settings := NewMockSettingsRepository()
	sessions := NewMockSessionRepository()
	return &repository.Repositories{
		User:     users,
		Comment:  comments,
		Settings: settings,
		Session:  sessions,
	}, users, comments, settings, sessions
}

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mu          sync.Mutex
	Users       map[int64]*models.User
	NextID      int64
	InsertError error
	CountError  error
	Now         func() time.Time
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users:  make(map[int64]*models.User),
		NextID: 1,
		Now:    time.Now,
	}
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.InsertError != nil {
		return m.InsertError
	}
	for _, u := range m.Users {
		if strings.EqualFold(u.Email, user.Email) {
			return repository.ErrDuplicateEmail
		}
	}
	user.ID = m.NextID
	user.CreatedAt = m.Now()
	m.NextID++
	stored := *user
	m.Users[user.ID] = &stored
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.Users[id]
	if !ok {
		return nil, nil
	}
	out := *u
	return &out, nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.Users {
		if strings.EqualFold(u.Email, email) {
			out := *u
			return &out, nil
		}
	}
	return nil, nil
}

func (m *MockUserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	u, err := m.GetByEmail(ctx, email)
	return u != nil, err
}

func (m *MockUserRepository) Count(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CountError != nil {
		return 0, m.CountError
	}
	return len(m.Users), nil
}

func (m *MockUserRepository) List(ctx context.Context, filter repository.UserFilter) ([]*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	users := make([]*models.User, 0, len(m.Users))
	for _, u := range m.Users {
		if filter.Role != "" && u.Role != filter.Role {
			continue
		}
		if filter.Search != "" {
			q := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(u.Username), q) && !strings.Contains(strings.ToLower(u.Email), q) {
				continue
			}
		}
		out := *u
		users = append(users, &out)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })

	if filter.Offset > 0 {
		if filter.Offset >= len(users) {
			return []*models.User{}, nil
		}
		users = users[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(users) {
		users = users[:filter.Limit]
	}
	return users, nil
}

func (m *MockUserRepository) UpdateRole(ctx context.Context, id int64, role models.Role) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.Users[id]; ok {
		u.Role = role
	}
	return nil
}

func (m *MockUserRepository) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Users, id)
	return nil
}

// MockCommentRepository is a mock implementation of CommentRepository
type MockCommentRepository struct {
	mu          sync.Mutex
	Comments    []models.Comment
	NextID      int64
	InsertError error
	Now         func() time.Time
}

func NewMockCommentRepository() *MockCommentRepository {
	return &MockCommentRepository{
		Comments: make([]models.Comment, 0),
		NextID:   1,
		Now:      time.Now,
	}
}

// Seed stores comments as-is, keeping their ids and dates
func (m *MockCommentRepository) Seed(comments ...models.Comment) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range comments {
		m.Comments = append(m.Comments, c)
		if c.ID >= m.NextID {
			m.NextID = c.ID + 1
		}
	}
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.InsertError != nil {
		return m.InsertError
	}
	comment.ID = m.NextID
	comment.Date = m.Now()
	m.NextID++
	m.Comments = append(m.Comments, *comment)
	return nil
}

func (m *MockCommentRepository) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.Comments {
		if c.ID == id {
			out := c
			return &out, nil
		}
	}
	return nil, nil
}

func (m *MockCommentRepository) ListByPost(ctx context.Context, postID int64) ([]models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Comment, 0)
	for _, c := range m.Comments {
		if c.Post == postID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *MockCommentRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Comment, 0)
	for _, c := range m.Comments {
		if c.UserID != nil && *c.UserID == userID {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// MockSettingsRepository is a mock implementation of SettingsRepository
type MockSettingsRepository struct {
	mu        sync.Mutex
	Data      []byte
	SaveError error
	LoadCalls int
	SaveCalls int
}

func NewMockSettingsRepository() *MockSettingsRepository {
	return &MockSettingsRepository{}
}

func (m *MockSettingsRepository) Load(ctx context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LoadCalls++
	if m.Data == nil {
		return nil, nil
	}
	out := make([]byte, len(m.Data))
	copy(out, m.Data)
	return out, nil
}

func (m *MockSettingsRepository) Save(ctx context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveCalls++
	if m.SaveError != nil {
		return m.SaveError
	}
	m.Data = append([]byte(nil), data...)
	return nil
}

func (m *MockSettingsRepository) Reset(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data = nil
	return nil
}

// MockSessionRepository is a mock implementation of SessionRepository
type MockSessionRepository struct {
	mu       sync.Mutex
	Sessions map[string]*models.Session
	Now      func() time.Time
}

func NewMockSessionRepository() *MockSessionRepository {
	return &MockSessionRepository{
		Sessions: make(map[string]*models.Session),
		Now:      time.Now,
	}
}

func (m *MockSessionRepository) Create(ctx context.Context, session *models.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *session
	m.Sessions[session.ID] = &stored
	return nil
}

func (m *MockSessionRepository) GetByID(ctx context.Context, id string) (*models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.Sessions[id]
	if !ok {
		return nil, nil
	}
	out := *s
	return &out, nil
}

func (m *MockSessionRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Sessions, id)
	return nil
}

func (m *MockSessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.Now()
	var n int64
	for id, s := range m.Sessions {
		if s.Expired(now) {
			delete(m.Sessions, id)
			n++
		}
	}
	return n, nil
}
