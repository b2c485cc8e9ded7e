package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/spendlens/spendlens/internal/extraction"
)

// MemoryStore keeps the mapping table in process memory. Used for local
// development and tests; state is lost on restart.
type MemoryStore struct {
	mu       sync.RWMutex
	mappings map[string]extraction.MappingEntry
}

// NewMemoryStore returns a memory store seeded with DefaultMappings.
func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{mappings: make(map[string]extraction.MappingEntry, len(DefaultMappings))}
	for _, m := range DefaultMappings {
		key := strings.ToUpper(strings.TrimSpace(m.Keyword))
		s.mappings[key] = extraction.MappingEntry{Keyword: key, Category: extraction.CoerceCategory(m.Category)}
	}
	return s
}

func (s *MemoryStore) UpsertMapping(_ context.Context, m extraction.MappingEntry) error {
	key := strings.ToUpper(strings.TrimSpace(m.Keyword))
	if key == "" {
		return ErrEmptyKeyword
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mappings[key] = extraction.MappingEntry{Keyword: key, Category: extraction.CoerceCategory(m.Category)}
	return nil
}

func (s *MemoryStore) DeleteMapping(_ context.Context, keyword string) error {
	key := strings.ToUpper(strings.TrimSpace(keyword))
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.mappings[key]; !ok {
		return ErrMappingNotFound
	}
	delete(s.mappings, key)
	return nil
}

func (s *MemoryStore) ListMappings(_ context.Context) ([]extraction.MappingEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]extraction.MappingEntry, 0, len(s.mappings))
	for _, m := range s.mappings {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Keyword < out[j].Keyword })
	return out, nil
}

func (s *MemoryStore) Snapshot(_ context.Context) (extraction.MappingSnapshot, error) {
	s.mu.RLock()
	entries := make([]extraction.MappingEntry, 0, len(s.mappings))
	for _, m := range s.mappings {
		entries = append(entries, m)
	}
	s.mu.RUnlock()
	return extraction.NewMappingSnapshot(entries), nil
}
