package store

import (
	"context"
	"sort"
	"sync"

	"axisd/internal/catalog"
)

// InMemoryStore keeps records in a map guarded by a RWMutex. Listing is
// ordered by creation time, then hash, so pagination is stable.
type InMemoryStore struct {
	mu      sync.RWMutex
	records map[string]catalog.Record
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{records: make(map[string]catalog.Record)}
}

func (s *InMemoryStore) Save(_ context.Context, record catalog.Record) (catalog.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.records[record.Hash]; ok {
		record.CreatedAt = existing.CreatedAt
	}
	s.records[record.Hash] = record
	return record, nil
}

func (s *InMemoryStore) Get(_ context.Context, hash string) (*catalog.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[hash]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	return &record, nil
}

func (s *InMemoryStore) List(_ context.Context, limit, offset int) ([]catalog.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]catalog.Record, 0, len(s.records))
	for _, record := range s.records {
		all = append(all, record)
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.Before(all[j].CreatedAt)
		}
		return all[i].Hash < all[j].Hash
	})

	if offset >= len(all) {
		return []catalog.Record{}, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (s *InMemoryStore) Delete(_ context.Context, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[hash]; !ok {
		return catalog.ErrNotFound
	}
	delete(s.records, hash)
	return nil
}

func (s *InMemoryStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records), nil
}
