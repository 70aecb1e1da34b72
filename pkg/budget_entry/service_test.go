package budget_entry

import (
	"context"
	"testing"

	"github.com/mattnotmatthew/budget-tracker-sub002/internal/event_bus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = context.Background()

var entryRepoStub = NewRepositoryStub()

var knownCategories = map[string]bool{"base-pay": true, "hosting": true}

func setup(t *testing.T) (*ServiceImpl, *event_bus.EventBus, func()) {
	bus := event_bus.NewEventBus()
	service := NewService(entryRepoStub, bus, func(id string) bool { return knownCategories[id] })
	return service, bus, func() {
		t.Log("Teardown after test")
		entryRepoStub.Cleanup()
	}
}

func TestServiceImpl_Save(t *testing.T) {
	t.Run("should assign id and quarter", func(t *testing.T) {
		service, _, teardown := setup(t)
		defer teardown()

		// when
		stored, err := service.Save(ctx, Entry{CategoryId: "base-pay", Year: 2024, Month: 5, Budget: 1000})

		// then
		require.NoError(t, err)
		assert.NotEmpty(t, stored.Id)
		assert.Equal(t, 2, stored.Quarter)
		fetched, err := service.Get(ctx, stored.Id)
		require.NoError(t, err)
		assert.Equal(t, stored, fetched)
	})

	t.Run("should replace entry with the same category and month", func(t *testing.T) {
		service, _, teardown := setup(t)
		defer teardown()

		first, err := service.Save(ctx, Entry{CategoryId: "base-pay", Year: 2024, Month: 5, Budget: 1000})
		require.NoError(t, err)

		// when
		second, err := service.Save(ctx, Entry{
			CategoryId: "base-pay",
			Year:       2024,
			Month:      5,
			Budget:     1500,
			Actual:     Entered(0),
		})

		// then
		require.NoError(t, err)
		assert.Equal(t, first.Id, second.Id)
		entries, err := service.ListForYear(ctx, 2024)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, 1500.0, entries[0].Budget)
		assert.True(t, entries[0].Actual.IsEntered())
	})

	t.Run("should publish saved event", func(t *testing.T) {
		service, bus, teardown := setup(t)
		defer teardown()
		var events []event_bus.BudgetEntrySaved
		event_bus.SubscribeTyped(bus, event_bus.BudgetEntrySavedType, func(e event_bus.EventT[event_bus.BudgetEntrySaved]) error {
			events = append(events, e.Data)
			return nil
		})

		stored, err := service.Save(ctx, Entry{CategoryId: "hosting", Year: 2024, Month: 1})

		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, stored.Id, events[0].Id)
		assert.Equal(t, 2024, events[0].Year)
		assert.Equal(t, 0, events[0].PreviousYear)
	})

	t.Run("should move entry saved under another year and month", func(t *testing.T) {
		// given
		service, bus, teardown := setup(t)
		defer teardown()
		stored, err := service.Save(ctx, Entry{CategoryId: "hosting", Year: 2024, Month: 11, Budget: 1000, Actual: Entered(900)})
		require.NoError(t, err)
		var events []event_bus.BudgetEntrySaved
		event_bus.SubscribeTyped(bus, event_bus.BudgetEntrySavedType, func(e event_bus.EventT[event_bus.BudgetEntrySaved]) error {
			events = append(events, e.Data)
			return nil
		})

		// when
		moved, err := service.Save(ctx, Entry{Id: stored.Id, CategoryId: "hosting", Year: 2025, Month: 2, Budget: 1000, Actual: Entered(900)})

		// then
		require.NoError(t, err)
		assert.Equal(t, stored.Id, moved.Id)
		assert.Equal(t, 1, moved.Quarter)
		old, err := service.ListForYear(ctx, 2024)
		require.NoError(t, err)
		assert.Empty(t, old)
		current, err := service.ListForYear(ctx, 2025)
		require.NoError(t, err)
		assert.Equal(t, []Entry{moved}, current)
		require.Len(t, events, 1)
		assert.Equal(t, 2025, events[0].Year)
		assert.Equal(t, 2024, events[0].PreviousYear)
	})

	t.Run("should keep the stored year as previous year on update in place", func(t *testing.T) {
		service, bus, teardown := setup(t)
		defer teardown()
		stored, err := service.Save(ctx, Entry{CategoryId: "base-pay", Year: 2024, Month: 6, Budget: 10})
		require.NoError(t, err)
		var events []event_bus.BudgetEntrySaved
		event_bus.SubscribeTyped(bus, event_bus.BudgetEntrySavedType, func(e event_bus.EventT[event_bus.BudgetEntrySaved]) error {
			events = append(events, e.Data)
			return nil
		})

		stored.Budget = 20
		updated, err := service.Save(ctx, stored)

		require.NoError(t, err)
		assert.Equal(t, 20.0, updated.Budget)
		require.Len(t, events, 1)
		assert.Equal(t, 2024, events[0].PreviousYear)
	})

	t.Run("should reject invalid entries", func(t *testing.T) {
		service, _, teardown := setup(t)
		defer teardown()

		invalid := []Entry{
			{Year: 2024, Month: 1},
			{CategoryId: "unknown", Year: 2024, Month: 1},
			{CategoryId: "base-pay", Year: 0, Month: 1},
			{CategoryId: "base-pay", Year: 2024, Month: 13},
			{CategoryId: "base-pay", Year: 2024, Month: 4, Quarter: 1},
		}
		for _, e := range invalid {
			_, err := service.Save(ctx, e)
			assert.ErrorIs(t, err, ErrInvalidEntry)
		}
	})
}

func TestServiceImpl_Delete(t *testing.T) {
	t.Run("should delete and publish event", func(t *testing.T) {
		service, bus, teardown := setup(t)
		defer teardown()
		var deleted []event_bus.BudgetEntryDeleted
		event_bus.SubscribeTyped(bus, event_bus.BudgetEntryDeletedType, func(e event_bus.EventT[event_bus.BudgetEntryDeleted]) error {
			deleted = append(deleted, e.Data)
			return nil
		})
		stored, err := service.Save(ctx, Entry{CategoryId: "hosting", Year: 2023, Month: 2})
		require.NoError(t, err)

		err = service.Delete(ctx, stored.Id)

		require.NoError(t, err)
		entries, _ := service.ListForYear(ctx, 2023)
		assert.Empty(t, entries)
		assert.Equal(t, []event_bus.BudgetEntryDeleted{{Id: stored.Id, Year: 2023}}, deleted)
	})

	t.Run("should return not found for unknown id", func(t *testing.T) {
		service, _, teardown := setup(t)
		defer teardown()

		err := service.Delete(ctx, "missing")

		assert.ErrorIs(t, err, ErrEntryNotFound)
	})
}
