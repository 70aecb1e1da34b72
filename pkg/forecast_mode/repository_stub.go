package forecast_mode

import (
	"context"
	"sort"
	"sync"
)

type RepositoryStub struct {
	mu    sync.Mutex
	modes map[[2]int]bool
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{modes: map[[2]int]bool{}}
}

func (s *RepositoryStub) GetForYear(ctx context.Context, year int) ([]MonthMode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	modes := make([]MonthMode, 0, 12)
	for key, final := range s.modes {
		if key[0] == year {
			modes = append(modes, MonthMode{Year: key[0], Month: key[1], Final: final})
		}
	}
	sort.Slice(modes, func(i, j int) bool {
		return modes[i].Month < modes[j].Month
	})
	return modes, nil
}

func (s *RepositoryStub) Store(ctx context.Context, mode MonthMode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.modes[[2]int{mode.Year, mode.Month}] = mode.Final
	return nil
}

func (s *RepositoryStub) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.modes = map[[2]int]bool{}
}
