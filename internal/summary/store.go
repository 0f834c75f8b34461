package summary

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Store caches rendered summaries per article. Entries never expire.
type Store interface {
	Get(ctx context.Context, articleID int64) (string, bool, error)
	Set(ctx context.Context, articleID int64, html string) error
}

// MemoryStore keeps summaries for the life of the process
type MemoryStore struct {
	mu    sync.RWMutex
	items map[int64]string
}

// NewMemoryStore creates an empty in-process store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[int64]string)}
}

// Get returns the cached summary for articleID
func (s *MemoryStore) Get(_ context.Context, articleID int64) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	html, ok := s.items[articleID]
	return html, ok, nil
}

// Set stores the summary for articleID
func (s *MemoryStore) Set(_ context.Context, articleID int64, html string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[articleID] = html
	return nil
}

// RedisStore shares summaries between instances through Redis
type RedisStore struct {
	rdb *redis.Client
}

// NewRedisStore wraps an existing client
func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func redisKey(articleID int64) string {
	return fmt.Sprintf("wamuzi:summary:%d", articleID)
}

// Get returns the cached summary for articleID
func (s *RedisStore) Get(ctx context.Context, articleID int64) (string, bool, error) {
	html, err := s.rdb.Get(ctx, redisKey(articleID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get summary: %w", err)
	}
	return html, true, nil
}

// Set stores the summary for articleID with no expiry
func (s *RedisStore) Set(ctx context.Context, articleID int64, html string) error {
	if err := s.rdb.Set(ctx, redisKey(articleID), html, 0).Err(); err != nil {
		return fmt.Errorf("redis set summary: %w", err)
	}
	return nil
}

var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*RedisStore)(nil)
)
