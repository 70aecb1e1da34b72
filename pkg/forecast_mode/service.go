package forecast_mode

import (
	"context"
	"errors"
	"fmt"

	"github.com/mattnotmatthew/budget-tracker-sub002/internal/event_bus"
	log "github.com/sirupsen/logrus"
)

var ErrInvalidMonth = errors.New("month must be between 1 and 12")

type Service interface {
	GetMap(ctx context.Context, year int) (Map, error)
	SetMode(ctx context.Context, year, month int, final bool) error
}

type ServiceImpl struct {
	repo     Repository
	eventBus *event_bus.EventBus
}

func NewService(repo Repository, eventBus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{repo: repo, eventBus: eventBus}
}

func (s *ServiceImpl) GetMap(ctx context.Context, year int) (Map, error) {
	modes, err := s.repo.GetForYear(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("failed to read forecast modes for %d: %w", year, err)
	}
	m := FromModes(modes)
	if m[year] == nil {
		m[year] = map[int]bool{}
	}
	return m, nil
}

func (s *ServiceImpl) SetMode(ctx context.Context, year, month int, final bool) error {
	if month < 1 || month > 12 {
		return fmt.Errorf("%w: %d", ErrInvalidMonth, month)
	}
	if err := s.repo.Store(ctx, MonthMode{Year: year, Month: month, Final: final}); err != nil {
		return err
	}
	log.Debugf("Forecast mode for %d-%02d set to final=%v", year, month, final)

	return s.eventBus.Publish(event_bus.NewEvent(ctx, event_bus.ForecastModeSetType, event_bus.ForecastModeSet{
		Year:  year,
		Month: month,
		Final: final,
	}))
}
