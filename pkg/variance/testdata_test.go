package variance

import (
	"testing"

	"github.com/mattnotmatthew/budget-tracker-sub002/pkg/budget_entry"
	"github.com/mattnotmatthew/budget-tracker-sub002/pkg/category"
	"github.com/stretchr/testify/require"
)

const testYear = 2024

var (
	hosting  = category.Category{Id: "hosting", Name: "Hosting", Parent: category.CostOfSales}
	basePay  = category.Category{Id: "base-pay", Name: "Base Pay", Parent: category.Opex}
	benefits = category.Category{Id: "benefits", Name: "Benefits", Parent: category.Opex}
	telecom  = category.Category{Id: "telecom", Name: "Telecom", Parent: category.Opex}
	software = category.Category{Id: "software", Name: "Software", Parent: category.Opex, IsNegative: true}
)

func testRegistry(t *testing.T) *category.Registry {
	t.Helper()
	registry, err := category.NewRegistry(
		[]category.Category{hosting, basePay, benefits, telecom, software},
		category.Taxonomy{
			basePay.Id:  category.CompAndBenefits,
			benefits.Id: category.CompAndBenefits,
			telecom.Id:  category.Other,
		},
	)
	require.NoError(t, err)
	return registry
}

type entryOption func(e *budget_entry.Entry)

func withActual(v float64) entryOption {
	return func(e *budget_entry.Entry) { e.Actual = budget_entry.Entered(v) }
}

func withReforecast(v float64) entryOption {
	return func(e *budget_entry.Entry) { e.Reforecast = budget_entry.Entered(v) }
}

func withAdjustment(v float64) entryOption {
	return func(e *budget_entry.Entry) { e.Adjustment = budget_entry.Entered(v) }
}

func inYear(year int) entryOption {
	return func(e *budget_entry.Entry) { e.Year = year }
}

func entry(categoryId string, month int, budget float64, opts ...entryOption) budget_entry.Entry {
	e := budget_entry.Entry{
		CategoryId: categoryId,
		Year:       testYear,
		Month:      month,
		Quarter:    budget_entry.QuarterOf(month),
		Budget:     budget,
	}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

// sampleYear spreads figures over every category and most months, mixing
// months with actuals, months with only a reforecast and adjustments.
func sampleYear() []budget_entry.Entry {
	var entries []budget_entry.Entry
	for month := 1; month <= 12; month++ {
		m := float64(month)
		if month <= 7 {
			entries = append(entries,
				entry(hosting.Id, month, 10000+m, withActual(9500+m*3), withAdjustment(100)),
				entry(basePay.Id, month, 80000, withActual(82000+m*10)),
				entry(benefits.Id, month, 15000, withActual(14000), withReforecast(15500)),
				entry(telecom.Id, month, 1200, withActual(1350.25)),
				entry(software.Id, month, 5000+m*7, withActual(4800), withAdjustment(-50.5)),
			)
		} else {
			entries = append(entries,
				entry(hosting.Id, month, 10000+m, withReforecast(10100)),
				entry(basePay.Id, month, 80000, withReforecast(83000)),
				entry(benefits.Id, month, 15000),
				entry(telecom.Id, month, 1200, withReforecast(1199.99), withAdjustment(12)),
				entry(software.Id, month, 5000+m*7, withReforecast(5100)),
			)
		}
	}
	// an entry for another year never leaks into this one
	entries = append(entries, entry(hosting.Id, 3, 999999, inYear(testYear-1), withActual(1)))
	return entries
}
