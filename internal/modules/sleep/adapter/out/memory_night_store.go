package out

import (
	"context"
	"fmt"
	"sync"

	"sleeptracker/internal/modules/sleep/domain"
	apperrors "sleeptracker/internal/platform/errors"
)

// MemoryNightStore keeps nights in process memory. Ids are never reused,
// even after Clear, matching the SQLite autoincrement column.
type MemoryNightStore struct {
	mu       sync.RWMutex
	nights   []domain.Night
	lastID   int64
	watchers watchers
}

func NewMemoryNightStore() *MemoryNightStore {
	return &MemoryNightStore{}
}

func (s *MemoryNightStore) Close() error { return nil }

func (s *MemoryNightStore) Insert(_ context.Context, night domain.Night) (domain.Night, error) {
	s.mu.Lock()
	s.lastID++
	night.ID = s.lastID
	s.nights = append(s.nights, night)
	s.mu.Unlock()
	s.watchers.notify()
	return night, nil
}

func (s *MemoryNightStore) Update(_ context.Context, night domain.Night) error {
	s.mu.Lock()
	found := false
	for i := range s.nights {
		if s.nights[i].ID == night.ID {
			s.nights[i] = night
			found = true
			break
		}
	}
	s.mu.Unlock()
	if !found {
		return fmt.Errorf("night %d: %w", night.ID, apperrors.ErrNotFound)
	}
	s.watchers.notify()
	return nil
}

func (s *MemoryNightStore) Get(_ context.Context, id int64) (domain.Night, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, n := range s.nights {
		if n.ID == id {
			return n, nil
		}
	}
	return domain.Night{}, apperrors.ErrNotFound
}

func (s *MemoryNightStore) Latest(context.Context) (domain.Night, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.nights) == 0 {
		return domain.Night{}, apperrors.ErrNotFound
	}
	return s.nights[len(s.nights)-1], nil
}

func (s *MemoryNightStore) List(context.Context) ([]domain.Night, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Night, 0, len(s.nights))
	for i := len(s.nights) - 1; i >= 0; i-- {
		out = append(out, s.nights[i])
	}
	return out, nil
}

func (s *MemoryNightStore) Clear(context.Context) (int64, error) {
	s.mu.Lock()
	n := int64(len(s.nights))
	s.nights = nil
	s.mu.Unlock()
	s.watchers.notify()
	return n, nil
}

func (s *MemoryNightStore) Watch(fn func()) func() {
	return s.watchers.add(fn)
}
