package report

import (
	"github.com/mattnotmatthew/budget-tracker-sub002/pkg/variance"
)

// GroupTracking holds the adjustment-netted figures of the parent totals.
type GroupTracking struct {
	CostOfSales variance.Tracking
	Opex        variance.Tracking
	Net         variance.Tracking
}

// Report is a period rollup with its tracking view. ForecastMode is the mode of
// the month tracking was evaluated for, the last month of the period.
type Report struct {
	Data         variance.PeriodData
	Convention   variance.Convention
	Tracking     GroupTracking
	ForecastMode bool
	// Cutoff is only set for through-actuals quarterly reports.
	Cutoff int
	// LastMonthWithActuals is only set for YTD reports.
	LastMonthWithActuals int
}

func trackingOf(data variance.PeriodData, isForecastMode bool) GroupTracking {
	return GroupTracking{
		CostOfSales: variance.BudgetTracking(data.CostOfSales.Total, isForecastMode),
		Opex:        variance.BudgetTracking(data.Opex.Total, isForecastMode),
		Net:         variance.BudgetTracking(data.NetTotal, isForecastMode),
	}
}
