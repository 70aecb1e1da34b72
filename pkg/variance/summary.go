package variance

import (
	"github.com/mattnotmatthew/budget-tracker-sub002/pkg/budget_entry"
	"github.com/mattnotmatthew/budget-tracker-sub002/pkg/category"
)

// Filter selects entries by period. Zero fields match anything.
type Filter struct {
	Year    int
	Quarter int
	Month   int
}

func (f Filter) matches(e budget_entry.Entry) bool {
	if f.Year != 0 && e.Year != f.Year {
		return false
	}
	if f.Quarter != 0 && e.Quarter != f.Quarter {
		return false
	}
	if f.Month != 0 && e.Month != f.Month {
		return false
	}
	return true
}

// sumEntries adds up the entries of one category matching the filter.
// Figures that were not entered count as zero. Variance is left unset.
func sumEntries(entries []budget_entry.Entry, categoryId string, f Filter) Totals {
	var t Totals
	for _, e := range entries {
		if e.CategoryId != categoryId || !f.matches(e) {
			continue
		}
		t.Budget += e.Budget
		t.Actual += e.Actual.Value()
		t.Reforecast += e.Reforecast.Value()
		t.Adjustments += e.Adjustment.Value()
	}
	return t
}

// SummarizeCategory reduces the entries of one category and period to a
// summary. The variance compares budget against actuals when any were
// recorded, and against the reforecast otherwise.
func SummarizeCategory(entries []budget_entry.Entry, c category.Category, f Filter) CategorySummary {
	t := sumEntries(entries, c.Id, f)
	base := t.Actual
	if base == 0 {
		base = t.Reforecast
	}
	t.Variance = varianceOf(base, t.Budget)
	return newSummary(c, t)
}

func newSummary(c category.Category, t Totals) CategorySummary {
	return CategorySummary{
		CategoryId:      c.Id,
		CategoryName:    c.Name,
		Budget:          t.Budget,
		Actual:          t.Actual,
		Reforecast:      t.Reforecast,
		Adjustments:     t.Adjustments,
		Variance:        t.Variance,
		VariancePercent: variancePercent(t.Variance, t.Budget),
		IsNegative:      c.IsNegative,
	}
}
