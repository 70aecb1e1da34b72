package report

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/mattnotmatthew/budget-tracker-sub002/internal/event_bus"
	"github.com/mattnotmatthew/budget-tracker-sub002/pkg/budget_entry"
	"github.com/mattnotmatthew/budget-tracker-sub002/pkg/category"
	"github.com/mattnotmatthew/budget-tracker-sub002/pkg/forecast_mode"
	"github.com/mattnotmatthew/budget-tracker-sub002/pkg/variance"
	log "github.com/sirupsen/logrus"
)

var ErrInvalidPeriod = errors.New("invalid report period")

type Service interface {
	Monthly(ctx context.Context, year, month int) (Report, error)
	// Quarterly uses the last month with actuals in the quarter when cutoff
	// is 0 and the convention is through-actuals.
	Quarterly(ctx context.Context, year, quarter int, convention variance.Convention, cutoff int) (Report, error)
	YTD(ctx context.Context, year int) (Report, error)
	Alerts(ctx context.Context, year int) ([]variance.Alert, error)
}

// ServiceImpl keeps a per-year snapshot of entries and forecast modes. Entry
// snapshots are dropped whenever an entry of that year changes; forecast
// snapshots are updated in place when a month's mode is set.
type ServiceImpl struct {
	entries    budget_entry.Service
	forecasts  forecast_mode.Service
	registry   *category.Registry
	thresholds variance.AlertThresholds

	mu            sync.RWMutex
	entryCache    map[int][]budget_entry.Entry
	forecastCache map[int]forecast_mode.Map
	// generation changes on every invalidation; loads started before it
	// changed are not cached.
	generation uint64
}

func NewService(
	entries budget_entry.Service,
	forecasts forecast_mode.Service,
	registry *category.Registry,
	thresholds variance.AlertThresholds,
	eventBus *event_bus.EventBus,
) *ServiceImpl {
	s := &ServiceImpl{
		entries:       entries,
		forecasts:     forecasts,
		registry:      registry,
		thresholds:    thresholds,
		entryCache:    map[int][]budget_entry.Entry{},
		forecastCache: map[int]forecast_mode.Map{},
	}
	event_bus.SubscribeTyped(eventBus, event_bus.BudgetEntrySavedType, func(e event_bus.EventT[event_bus.BudgetEntrySaved]) error {
		s.invalidateEntries(e.Data.Year)
		if e.Data.PreviousYear != 0 && e.Data.PreviousYear != e.Data.Year {
			s.invalidateEntries(e.Data.PreviousYear)
		}
		return nil
	})
	event_bus.SubscribeTyped(eventBus, event_bus.BudgetEntryDeletedType, func(e event_bus.EventT[event_bus.BudgetEntryDeleted]) error {
		s.invalidateEntries(e.Data.Year)
		return nil
	})
	event_bus.SubscribeTyped(eventBus, event_bus.ForecastModeSetType, func(e event_bus.EventT[event_bus.ForecastModeSet]) error {
		s.mu.Lock()
		defer s.mu.Unlock()
		if cached, ok := s.forecastCache[e.Data.Year]; ok {
			s.forecastCache[e.Data.Year] = cached.Set(e.Data.Year, e.Data.Month, e.Data.Final)
		}
		s.generation++
		return nil
	})
	return s
}

func (s *ServiceImpl) Monthly(ctx context.Context, year, month int) (Report, error) {
	if month < 1 || month > 12 {
		return Report{}, fmt.Errorf("%w: month %d", ErrInvalidPeriod, month)
	}
	entries, modes, err := s.load(ctx, year)
	if err != nil {
		return Report{}, err
	}

	data := variance.Monthly(entries, s.registry, year, month)
	forecastMode := modes.IsForecast(year, month)
	return Report{
		Data:         data,
		Convention:   variance.Mixed,
		Tracking:     trackingOf(data, forecastMode),
		ForecastMode: forecastMode,
	}, nil
}

func (s *ServiceImpl) Quarterly(
	ctx context.Context,
	year, quarter int,
	convention variance.Convention,
	cutoff int,
) (Report, error) {
	if quarter < 1 || quarter > 4 {
		return Report{}, fmt.Errorf("%w: quarter %d", ErrInvalidPeriod, quarter)
	}
	months := budget_entry.QuarterMonths(quarter)
	if cutoff != 0 && !slices.Contains(months, cutoff) {
		return Report{}, fmt.Errorf("%w: cutoff month %d is not in Q%d", ErrInvalidPeriod, cutoff, quarter)
	}
	entries, modes, err := s.load(ctx, year)
	if err != nil {
		return Report{}, err
	}

	if convention == variance.ThroughActuals && cutoff == 0 {
		cutoff = variance.LastMonthWithActuals(entries, year, months...)
	}
	if convention != variance.ThroughActuals {
		cutoff = 0
	}

	data := variance.Quarterly(entries, s.registry, year, quarter, convention, cutoff)
	lastMonth := months[len(months)-1]
	forecastMode := modes.IsForecast(year, lastMonth)
	return Report{
		Data:         data,
		Convention:   convention,
		Tracking:     trackingOf(data, forecastMode),
		ForecastMode: forecastMode,
		Cutoff:       cutoff,
	}, nil
}

func (s *ServiceImpl) YTD(ctx context.Context, year int) (Report, error) {
	entries, modes, err := s.load(ctx, year)
	if err != nil {
		return Report{}, err
	}

	result := variance.YTD(entries, s.registry, year)
	forecastMode := modes.IsForecast(year, result.LastMonthWithActuals)
	return Report{
		Data:                 result.Data,
		Convention:           variance.ActualOnly,
		Tracking:             trackingOf(result.Data, forecastMode),
		ForecastMode:         forecastMode,
		LastMonthWithActuals: result.LastMonthWithActuals,
	}, nil
}

func (s *ServiceImpl) Alerts(ctx context.Context, year int) ([]variance.Alert, error) {
	entries, err := s.entriesFor(ctx, year)
	if err != nil {
		return nil, err
	}
	return variance.GenerateAlerts(entries, s.registry, year, s.thresholds), nil
}

func (s *ServiceImpl) load(ctx context.Context, year int) ([]budget_entry.Entry, forecast_mode.Map, error) {
	entries, err := s.entriesFor(ctx, year)
	if err != nil {
		return nil, nil, err
	}
	modes, err := s.forecastFor(ctx, year)
	if err != nil {
		return nil, nil, err
	}
	return entries, modes, nil
}

func (s *ServiceImpl) entriesFor(ctx context.Context, year int) ([]budget_entry.Entry, error) {
	s.mu.RLock()
	cached, ok := s.entryCache[year]
	generation := s.generation
	s.mu.RUnlock()
	if ok {
		return cached, nil
	}

	entries, err := s.entries.ListForYear(ctx, year)
	if err != nil {
		log.Errorf("failed to load budget entries for report: %v", err)
		return nil, err
	}
	log.Debugf("Caching %d budget entries for %d", len(entries), year)

	s.mu.Lock()
	if s.generation == generation {
		s.entryCache[year] = entries
	}
	s.mu.Unlock()
	return entries, nil
}

func (s *ServiceImpl) forecastFor(ctx context.Context, year int) (forecast_mode.Map, error) {
	s.mu.RLock()
	cached, ok := s.forecastCache[year]
	generation := s.generation
	s.mu.RUnlock()
	if ok {
		return cached, nil
	}

	modes, err := s.forecasts.GetMap(ctx, year)
	if err != nil {
		log.Errorf("failed to load forecast modes for report: %v", err)
		return nil, err
	}

	s.mu.Lock()
	if s.generation == generation {
		s.forecastCache[year] = modes
	}
	s.mu.Unlock()
	return modes, nil
}

func (s *ServiceImpl) invalidateEntries(year int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entryCache, year)
	s.generation++
}
