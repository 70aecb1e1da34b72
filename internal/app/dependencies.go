package app

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mattnotmatthew/budget-tracker-sub002/internal/config"
	"github.com/mattnotmatthew/budget-tracker-sub002/internal/event_bus"
	"github.com/mattnotmatthew/budget-tracker-sub002/internal/utils"
	"github.com/mattnotmatthew/budget-tracker-sub002/pkg/budget_entry"
	"github.com/mattnotmatthew/budget-tracker-sub002/pkg/category"
	"github.com/mattnotmatthew/budget-tracker-sub002/pkg/forecast_mode"
	"github.com/mattnotmatthew/budget-tracker-sub002/pkg/report"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	EventBus *event_bus.EventBus
	Clock    utils.Clock

	Registry        *category.Registry
	CategoryHandler *category.Handler

	BudgetEntryRepo    budget_entry.Repository
	BudgetEntryService *budget_entry.ServiceImpl
	BudgetEntryHandler *budget_entry.Handler

	ForecastModeRepo    forecast_mode.Repository
	ForecastModeService *forecast_mode.ServiceImpl
	ForecastModeHandler *forecast_mode.Handler

	ReportService *report.ServiceImpl
	CsvRenderer   *report.CsvRendererImpl
	ReportHandler *report.Handler
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *pgxpool.Pool, registry *category.Registry, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.EventBus = event_bus.NewEventBus()
	deps.Clock = &utils.SystemClock{}

	deps.Registry = registry
	deps.CategoryHandler = category.NewHandler(registry)

	deps.BudgetEntryRepo = budget_entry.NewRepository(db)
	deps.BudgetEntryService = budget_entry.NewService(deps.BudgetEntryRepo, deps.EventBus, func(id string) bool {
		_, ok := registry.Get(id)
		return ok
	})
	deps.BudgetEntryHandler = budget_entry.NewHandler(deps.BudgetEntryService, deps.Clock)

	deps.ForecastModeRepo = forecast_mode.NewRepository(db)
	deps.ForecastModeService = forecast_mode.NewService(deps.ForecastModeRepo, deps.EventBus)
	deps.ForecastModeHandler = forecast_mode.NewHandler(deps.ForecastModeService, deps.Clock)

	deps.ReportService = report.NewService(
		deps.BudgetEntryService,
		deps.ForecastModeService,
		registry,
		cfg.Alerts.Thresholds(),
		deps.EventBus,
	)
	deps.CsvRenderer = report.NewCsvRenderer()
	deps.ReportHandler = report.NewHandler(deps.ReportService, deps.CsvRenderer, deps.Clock)

	return deps
}
