package report

import (
	"context"
	"testing"

	"github.com/mattnotmatthew/budget-tracker-sub002/internal/event_bus"
	"github.com/mattnotmatthew/budget-tracker-sub002/pkg/budget_entry"
	"github.com/mattnotmatthew/budget-tracker-sub002/pkg/category"
	"github.com/mattnotmatthew/budget-tracker-sub002/pkg/forecast_mode"
	"github.com/mattnotmatthew/budget-tracker-sub002/pkg/variance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = context.Background()

const year = 2024

type fixture struct {
	service   *ServiceImpl
	entries   *budget_entry.ServiceImpl
	forecasts *forecast_mode.ServiceImpl
}

func testRegistry(t *testing.T) *category.Registry {
	t.Helper()
	registry, err := category.NewRegistry(
		[]category.Category{
			{Id: "hosting", Name: "Hosting", Parent: category.CostOfSales},
			{Id: "base-pay", Name: "Base Pay", Parent: category.Opex},
			{Id: "telecom", Name: "Telecom", Parent: category.Opex},
			{Id: "software", Name: "Software", Parent: category.Opex},
		},
		category.Taxonomy{
			"base-pay": category.CompAndBenefits,
			"telecom":  category.Other,
		},
	)
	require.NoError(t, err)
	return registry
}

func setup(t *testing.T) fixture {
	registry := testRegistry(t)
	bus := event_bus.NewEventBus()
	entries := budget_entry.NewService(budget_entry.NewRepositoryStub(), bus, func(id string) bool {
		_, ok := registry.Get(id)
		return ok
	})
	forecasts := forecast_mode.NewService(forecast_mode.NewRepositoryStub(), bus)
	service := NewService(entries, forecasts, registry, variance.DefaultAlertThresholds(), bus)
	return fixture{service: service, entries: entries, forecasts: forecasts}
}

func (f fixture) save(t *testing.T, e budget_entry.Entry) {
	t.Helper()
	if e.Year == 0 {
		e.Year = year
	}
	_, err := f.entries.Save(ctx, e)
	require.NoError(t, err)
}

// firstQuarter has actuals in January and February and only a reforecast in March.
func (f fixture) firstQuarter(t *testing.T) {
	f.save(t, budget_entry.Entry{CategoryId: "hosting", Month: 1, Budget: 10000, Actual: budget_entry.Entered(9000), Adjustment: budget_entry.Entered(500)})
	f.save(t, budget_entry.Entry{CategoryId: "hosting", Month: 2, Budget: 10000, Actual: budget_entry.Entered(9500)})
	f.save(t, budget_entry.Entry{CategoryId: "hosting", Month: 3, Budget: 10000, Reforecast: budget_entry.Entered(11000)})
}

func TestServiceImpl_Quarterly(t *testing.T) {
	tests := []struct {
		name       string
		convention variance.Convention
		cutoff     int
		budget     float64
		variance   float64
		wantCutoff int
	}{
		{name: "should use reforecast for months without actuals", convention: variance.Mixed, budget: 30000, variance: 500},
		{name: "should compare actuals only", convention: variance.ActualOnly, budget: 30000, variance: 11500},
		{name: "should limit budget to last month with actuals", convention: variance.ThroughActuals, budget: 20000, variance: 1500, wantCutoff: 2},
		{name: "should limit budget to explicit cutoff", convention: variance.ThroughActuals, cutoff: 1, budget: 10000, variance: -8500, wantCutoff: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// given
			f := setup(t)
			f.firstQuarter(t)

			// when
			report, err := f.service.Quarterly(ctx, year, 1, tt.convention, tt.cutoff)

			// then
			require.NoError(t, err)
			assert.Equal(t, 1, report.Data.Quarter)
			assert.Equal(t, tt.convention, report.Convention)
			assert.Equal(t, tt.wantCutoff, report.Cutoff)
			assert.Equal(t, tt.budget, report.Data.CostOfSales.Total.Budget)
			assert.Equal(t, tt.variance, report.Data.CostOfSales.Total.Variance)
			assert.Equal(t, report.Data.CostOfSales.Total, report.Data.NetTotal)
		})
	}

	t.Run("should reject cutoff outside the quarter", func(t *testing.T) {
		f := setup(t)

		_, err := f.service.Quarterly(ctx, year, 1, variance.ThroughActuals, 5)

		assert.ErrorIs(t, err, ErrInvalidPeriod)
	})

	t.Run("should reject unknown quarter", func(t *testing.T) {
		f := setup(t)

		_, err := f.service.Quarterly(ctx, year, 5, variance.Mixed, 0)

		assert.ErrorIs(t, err, ErrInvalidPeriod)
	})
}

func TestServiceImpl_Monthly(t *testing.T) {
	t.Run("should net adjustments in tracking according to forecast mode", func(t *testing.T) {
		// given
		f := setup(t)
		f.firstQuarter(t)

		// when
		forecast, err := f.service.Monthly(ctx, year, 1)
		require.NoError(t, err)
		require.NoError(t, f.forecasts.SetMode(ctx, year, 1, true))
		final, err := f.service.Monthly(ctx, year, 1)
		require.NoError(t, err)

		// then
		assert.True(t, forecast.ForecastMode)
		assert.Equal(t, 0.0, forecast.Tracking.Net.Reforecast)
		assert.Equal(t, 10000.0, forecast.Tracking.Net.Variance)

		assert.False(t, final.ForecastMode)
		assert.Equal(t, 8500.0, final.Tracking.Net.Actual)
		assert.Equal(t, 1500.0, final.Tracking.Net.Variance)
		assert.Equal(t, 1000.0, final.Data.NetTotal.Variance)
	})

	t.Run("should follow forecast mode changes of a cached year", func(t *testing.T) {
		f := setup(t)
		f.firstQuarter(t)
		require.NoError(t, f.forecasts.SetMode(ctx, year, 2, true))
		_, err := f.service.Monthly(ctx, year, 1)
		require.NoError(t, err)

		require.NoError(t, f.forecasts.SetMode(ctx, year, 1, true))
		require.NoError(t, f.forecasts.SetMode(ctx, year, 2, false))
		january, err := f.service.Monthly(ctx, year, 1)
		require.NoError(t, err)
		february, err := f.service.Monthly(ctx, year, 2)
		require.NoError(t, err)

		assert.False(t, january.ForecastMode)
		assert.True(t, february.ForecastMode)
	})

	t.Run("should reject invalid month", func(t *testing.T) {
		f := setup(t)

		_, err := f.service.Monthly(ctx, year, 13)

		assert.ErrorIs(t, err, ErrInvalidPeriod)
	})
}

func TestServiceImpl_YTD(t *testing.T) {
	t.Run("should refresh after entries change", func(t *testing.T) {
		// given
		f := setup(t)
		f.firstQuarter(t)
		before, err := f.service.YTD(ctx, year)
		require.NoError(t, err)

		// when
		f.save(t, budget_entry.Entry{CategoryId: "hosting", Month: 3, Budget: 10000, Actual: budget_entry.Entered(10000)})
		after, err := f.service.YTD(ctx, year)
		require.NoError(t, err)

		// then
		assert.Equal(t, 2, before.LastMonthWithActuals)
		assert.Equal(t, 20000.0, before.Data.NetTotal.Budget)
		assert.Equal(t, 0, before.Data.Quarter)
		assert.Equal(t, 0, before.Data.Month)

		assert.Equal(t, 3, after.LastMonthWithActuals)
		assert.Equal(t, 30000.0, after.Data.NetTotal.Budget)
		assert.Equal(t, 1500.0, after.Data.NetTotal.Variance)
	})

	t.Run("should refresh after an entry is deleted", func(t *testing.T) {
		f := setup(t)
		stored, err := f.entries.Save(ctx, budget_entry.Entry{CategoryId: "telecom", Year: year, Month: 4, Budget: 100, Actual: budget_entry.Entered(80)})
		require.NoError(t, err)
		before, err := f.service.YTD(ctx, year)
		require.NoError(t, err)

		require.NoError(t, f.entries.Delete(ctx, stored.Id))
		after, err := f.service.YTD(ctx, year)
		require.NoError(t, err)

		assert.Equal(t, 4, before.LastMonthWithActuals)
		assert.Equal(t, 0, after.LastMonthWithActuals)
		assert.Equal(t, variance.Totals{}, after.Data.NetTotal)
	})

	t.Run("should refresh both years after an entry moves to another year", func(t *testing.T) {
		// given
		f := setup(t)
		stored, err := f.entries.Save(ctx, budget_entry.Entry{CategoryId: "hosting", Year: year, Month: 6, Budget: 1000, Actual: budget_entry.Entered(900)})
		require.NoError(t, err)
		before, err := f.service.YTD(ctx, year)
		require.NoError(t, err)
		_, err = f.service.YTD(ctx, year+1)
		require.NoError(t, err)

		// when
		stored.Year = year + 1
		_, err = f.entries.Save(ctx, stored)
		require.NoError(t, err)
		previous, err := f.service.YTD(ctx, year)
		require.NoError(t, err)
		next, err := f.service.YTD(ctx, year+1)
		require.NoError(t, err)

		// then
		assert.Equal(t, 1000.0, before.Data.NetTotal.Budget)
		assert.Equal(t, variance.Totals{}, previous.Data.NetTotal)
		assert.Equal(t, 0, previous.LastMonthWithActuals)
		assert.Equal(t, 1000.0, next.Data.NetTotal.Budget)
		assert.Equal(t, 6, next.LastMonthWithActuals)
	})
}

func TestServiceImpl_Alerts(t *testing.T) {
	// given
	f := setup(t)
	for month := 1; month <= 4; month++ {
		f.save(t, budget_entry.Entry{CategoryId: "base-pay", Month: month, Budget: 100000, Actual: budget_entry.Entered(130000)})
	}
	f.save(t, budget_entry.Entry{CategoryId: "telecom", Month: 1, Budget: 1000})

	// when
	alerts, err := f.service.Alerts(ctx, year)

	// then
	require.NoError(t, err)
	require.Len(t, alerts, 2)
	assert.Equal(t, variance.Danger, alerts[0].Severity)
	assert.Equal(t, "base-pay", alerts[0].CategoryId)
	assert.Equal(t, "Base Pay is 30.0% over budget", alerts[0].Message)
	assert.Equal(t, variance.Info, alerts[1].Severity)
	assert.Equal(t, "telecom", alerts[1].CategoryId)
}
