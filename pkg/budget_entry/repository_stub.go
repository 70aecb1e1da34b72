package budget_entry

import (
	"context"
	"sort"
	"sync"
)

type RepositoryStub struct {
	mu      sync.Mutex
	entries map[string]Entry
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{entries: map[string]Entry{}}
}

func (s *RepositoryStub) ListForYear(ctx context.Context, year int) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := make([]Entry, 0, len(s.entries))
	for _, e := range s.entries {
		if e.Year == year {
			entries = append(entries, e)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Month != entries[j].Month {
			return entries[i].Month < entries[j].Month
		}
		return entries[i].CategoryId < entries[j].CategoryId
	})
	return entries, nil
}

func (s *RepositoryStub) Get(ctx context.Context, id string) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if !ok {
		return Entry{}, ErrEntryNotFound
	}
	return e, nil
}

func (s *RepositoryStub) Upsert(ctx context.Context, entry Entry) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, existing := range s.entries {
		if existing.Key() == entry.Key() {
			entry.Id = id
			break
		}
	}
	s.entries[entry.Id] = entry
	return entry, nil
}

func (s *RepositoryStub) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[id]; !ok {
		return false, nil
	}
	delete(s.entries, id)
	return true, nil
}

func (s *RepositoryStub) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = map[string]Entry{}
}
