package sequence

import (
	"context"
	"sync"
)

// MemoryStore 进程内存储实现，互斥锁保证原子性.
// 适用于测试与无外部依赖的单机场景；计数随进程退出丢失.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]int64
}

// NewMemoryStore 创建内存存储.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]int64)}
}

// Increment 返回当前值并加一，缺失键以 start 作为当前值.
func (s *MemoryStore) Increment(_ context.Context, name string, start int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.values[name]
	if !ok {
		v = start
	}
	s.values[name] = v + 1

	return v, nil
}
