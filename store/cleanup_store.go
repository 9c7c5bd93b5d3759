package store

import (
	"fmt"
	"sync"
	"time"

	"github.com/moxibot/moxi-yt-bot/types"
)

// RedisCleanupStore persists pending deletions of uploaded chat messages so
// a restart does not silently drop them.
type RedisCleanupStore struct {
	client *RedisClient
}

func NewRedisCleanupStore(client *RedisClient) *RedisCleanupStore {
	return &RedisCleanupStore{client: client}
}

func (s *RedisCleanupStore) PutCleanup(task types.CleanupTask) error {
	key := s.client.generateKey("cleanup", task.ID)
	// Keep the record around past its due time so an overdue deletion can
	// still be recovered after a restart.
	ttl := time.Until(task.DeleteAt) + 24*time.Hour
	return s.client.Set(key, task, ttl)
}

func (s *RedisCleanupStore) ListCleanups() ([]types.CleanupTask, error) {
	pattern := s.client.generateKey("cleanup", "*")
	keys, err := s.client.Keys(pattern)
	if err != nil {
		return nil, err
	}
	tasks := make([]types.CleanupTask, 0, len(keys))
	for _, key := range keys {
		var task types.CleanupTask
		if err := s.client.Get(key, &task); err != nil {
			continue
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

func (s *RedisCleanupStore) RemoveCleanup(id string) error {
	return s.client.Del(s.client.generateKey("cleanup", id))
}

// MemoryCleanupStore is the fallback when Redis is not reachable: pending
// deletions are tracked for the process lifetime only.
type MemoryCleanupStore struct {
	mu    sync.Mutex
	tasks map[string]types.CleanupTask
}

func NewMemoryCleanupStore() *MemoryCleanupStore {
	return &MemoryCleanupStore{tasks: make(map[string]types.CleanupTask)}
}

func (s *MemoryCleanupStore) PutCleanup(task types.CleanupTask) error {
	if task.ID == "" {
		return fmt.Errorf("cleanup task without id")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks[task.ID] = task
	return nil
}

func (s *MemoryCleanupStore) ListCleanups() ([]types.CleanupTask, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tasks := make([]types.CleanupTask, 0, len(s.tasks))
	for _, task := range s.tasks {
		tasks = append(tasks, task)
	}
	return tasks, nil
}

func (s *MemoryCleanupStore) RemoveCleanup(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tasks, id)
	return nil
}
