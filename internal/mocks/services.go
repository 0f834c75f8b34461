package mocks

import (
	"context"
	"errors"
	"sync"

	"github.com/wamuzi-news/internal/models"
	"github.com/wamuzi-news/internal/service"
	"github.com/wamuzi-news/internal/summary"
)

// MockContentSource is a mock implementation of ContentSource
type MockContentSource struct {
	mu         sync.Mutex
	Articles   []models.Article
	Categories []models.Category
	Tags       []models.Tag
	Pages      map[string]*models.Page
	Err        error
	Calls      int
}

// Verify interface compliance
var _ service.ContentSource = (*MockContentSource)(nil)

func NewMockContentSource() *MockContentSource {
	return &MockContentSource{
		Articles:   make([]models.Article, 0),
		Categories: make([]models.Category, 0),
		Tags:       make([]models.Tag, 0),
		Pages:      make(map[string]*models.Page),
	}
}

// Fail makes every subsequent call return err; nil restores normal operation
func (m *MockContentSource) Fail(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Err = err
}

func (m *MockContentSource) call() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	return m.Err
}

func (m *MockContentSource) GetArticles(ctx context.Context) ([]models.Article, error) {
	if err := m.call(); err != nil {
		return nil, err
	}
	out := make([]models.Article, len(m.Articles))
	copy(out, m.Articles)
	return out, nil
}

func (m *MockContentSource) GetArticleBySlug(ctx context.Context, slug string) (*models.Article, error) {
	if err := m.call(); err != nil {
		return nil, err
	}
	for i := range m.Articles {
		if m.Articles[i].Slug == slug {
			a := m.Articles[i]
			return &a, nil
		}
	}
	return nil, nil
}

func (m *MockContentSource) GetPage(ctx context.Context, slug string) (*models.Page, error) {
	if err := m.call(); err != nil {
		return nil, err
	}
	return m.Pages[slug], nil
}

func (m *MockContentSource) GetCategories(ctx context.Context) ([]models.Category, error) {
	if err := m.call(); err != nil {
		return nil, err
	}
	return m.Categories, nil
}

func (m *MockContentSource) GetTags(ctx context.Context) ([]models.Tag, error) {
	if err := m.call(); err != nil {
		return nil, err
	}
	return m.Tags, nil
}

// MockSummarizer is a mock implementation of Summarizer
type MockSummarizer struct {
	mu       sync.Mutex
	Response string
	Err      error
	Prompts  []string
}

// Verify interface compliance
var _ service.Summarizer = (*MockSummarizer)(nil)

func NewMockSummarizer(response string) *MockSummarizer {
	return &MockSummarizer{Response: response}
}

func (m *MockSummarizer) Generate(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Prompts = append(m.Prompts, prompt)
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}

// Calls returns how many prompts were sent
func (m *MockSummarizer) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Prompts)
}

// ErrStoreDown is returned by a failing MockSummaryStore
var ErrStoreDown = errors.New("summary store unavailable")

// MockSummaryStore wraps a MemoryStore and can be switched to fail
type MockSummaryStore struct {
	*summary.MemoryStore
	Failing bool
}

// Verify interface compliance
var _ summary.Store = (*MockSummaryStore)(nil)

func NewMockSummaryStore() *MockSummaryStore {
	return &MockSummaryStore{MemoryStore: summary.NewMemoryStore()}
}

func (m *MockSummaryStore) Get(ctx context.Context, articleID int64) (string, bool, error) {
	if m.Failing {
		return "", false, ErrStoreDown
	}
	return m.MemoryStore.Get(ctx, articleID)
}

func (m *MockSummaryStore) Set(ctx context.Context, articleID int64, html string) error {
	if m.Failing {
		return ErrStoreDown
	}
	return m.MemoryStore.Set(ctx, articleID, html)
}
