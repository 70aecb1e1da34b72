package event_bus

const (
	BudgetEntrySavedType   EventType = "budget_entry.saved"
	BudgetEntryDeletedType EventType = "budget_entry.deleted"
	ForecastModeSetType    EventType = "forecast_mode.set"
)

type BudgetEntrySaved struct {
	Id           string
	CategoryId   string
	Year         int
	Month        int
	// PreviousYear is the year the entry was stored under before this save,
	// 0 for new entries.
	PreviousYear int
}

type BudgetEntryDeleted struct {
	Id   string
	Year int
}

type ForecastModeSet struct {
	Year  int
	Month int
	Final bool
}
