package budget_entry

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/mattnotmatthew/budget-tracker-sub002/internal/event_bus"
	log "github.com/sirupsen/logrus"
)

var ErrInvalidEntry = errors.New("invalid budget entry")

// CategoryLookup reports whether a category id is known.
type CategoryLookup func(id string) bool

type Service interface {
	ListForYear(ctx context.Context, year int) ([]Entry, error)
	Get(ctx context.Context, id string) (Entry, error)
	Save(ctx context.Context, entry Entry) (Entry, error)
	Delete(ctx context.Context, id string) error
}

type ServiceImpl struct {
	repo          Repository
	eventBus      *event_bus.EventBus
	knownCategory CategoryLookup
}

func NewService(repo Repository, eventBus *event_bus.EventBus, knownCategory CategoryLookup) *ServiceImpl {
	return &ServiceImpl{repo: repo, eventBus: eventBus, knownCategory: knownCategory}
}

func (s *ServiceImpl) ListForYear(ctx context.Context, year int) ([]Entry, error) {
	entries, err := s.repo.ListForYear(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list budget entries for %d: %w", year, err)
	}
	return Deduplicate(entries), nil
}

func (s *ServiceImpl) Get(ctx context.Context, id string) (Entry, error) {
	return s.repo.Get(ctx, id)
}

// Save validates and upserts the entry. The quarter is always derived from
// the month, and a new id is assigned when the entry has none. Saving a known
// id under another category, year or month moves the entry there.
func (s *ServiceImpl) Save(ctx context.Context, entry Entry) (Entry, error) {
	if err := s.validate(entry); err != nil {
		return Entry{}, err
	}
	entry.Quarter = QuarterOf(entry.Month)

	previousYear := 0
	if entry.Id == "" {
		entry.Id = uuid.NewString()
	} else {
		existing, err := s.repo.Get(ctx, entry.Id)
		switch {
		case errors.Is(err, ErrEntryNotFound):
		case err != nil:
			return Entry{}, err
		default:
			previousYear = existing.Year
			if existing.Key() != entry.Key() {
				log.Debugf("Moving budget entry %s from %s %d-%02d", existing.Id, existing.CategoryId, existing.Year, existing.Month)
				if _, err := s.repo.Delete(ctx, existing.Id); err != nil {
					return Entry{}, err
				}
			}
		}
	}

	stored, err := s.repo.Upsert(ctx, entry)
	if err != nil {
		return Entry{}, err
	}
	log.Debugf("Stored budget entry %s (%s %d-%02d)", stored.Id, stored.CategoryId, stored.Year, stored.Month)

	err = s.eventBus.Publish(event_bus.NewEvent(ctx, event_bus.BudgetEntrySavedType, event_bus.BudgetEntrySaved{
		Id:           stored.Id,
		CategoryId:   stored.CategoryId,
		Year:         stored.Year,
		Month:        stored.Month,
		PreviousYear: previousYear,
	}))
	if err != nil {
		log.Errorf("failed to publish budget entry saved event: %v", err)
		return Entry{}, err
	}
	return stored, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, id string) error {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrEntryNotFound
	}
	return s.eventBus.Publish(event_bus.NewEvent(ctx, event_bus.BudgetEntryDeletedType, event_bus.BudgetEntryDeleted{
		Id:   id,
		Year: existing.Year,
	}))
}

func (s *ServiceImpl) validate(entry Entry) error {
	if entry.CategoryId == "" {
		return fmt.Errorf("%w: category is required", ErrInvalidEntry)
	}
	if s.knownCategory != nil && !s.knownCategory(entry.CategoryId) {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidEntry, entry.CategoryId)
	}
	if entry.Year < 1 {
		return fmt.Errorf("%w: year must be positive", ErrInvalidEntry)
	}
	if entry.Month < 1 || entry.Month > 12 {
		return fmt.Errorf("%w: month must be between 1 and 12", ErrInvalidEntry)
	}
	if entry.Quarter != 0 && entry.Quarter != QuarterOf(entry.Month) {
		return fmt.Errorf("%w: quarter %d does not contain month %d", ErrInvalidEntry, entry.Quarter, entry.Month)
	}
	return nil
}
