package app

import (
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies) {

	// Categories
	r.HandleFunc("/api/category", deps.CategoryHandler.ListCategories).Methods("GET")

	// Budget entries
	r.HandleFunc("/api/entry", deps.BudgetEntryHandler.ListEntries).Methods("GET")
	r.HandleFunc("/api/entry", deps.BudgetEntryHandler.SaveEntry).Methods("PUT")
	r.HandleFunc("/api/entry/{entryId}", deps.BudgetEntryHandler.DeleteEntry).Methods("DELETE")

	// Forecast mode
	r.HandleFunc("/api/forecast-mode", deps.ForecastModeHandler.GetModes).Methods("GET")
	r.HandleFunc("/api/forecast-mode/{year}/{month}", deps.ForecastModeHandler.SetMode).Methods("PUT")

	// Reports
	r.HandleFunc("/api/report/monthly", deps.ReportHandler.GetMonthly).Methods("GET")
	r.HandleFunc("/api/report/quarterly", deps.ReportHandler.GetQuarterly).Methods("GET")
	r.HandleFunc("/api/report/ytd", deps.ReportHandler.GetYTD).Methods("GET")
	r.HandleFunc("/api/report/alerts", deps.ReportHandler.GetAlerts).Methods("GET")
}
