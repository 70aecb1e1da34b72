package variance

import (
	"errors"
	"fmt"

	"github.com/mattnotmatthew/budget-tracker-sub002/pkg/budget_entry"
	"github.com/mattnotmatthew/budget-tracker-sub002/pkg/category"
)

var ErrUnknownConvention = errors.New("unknown variance convention")

// Convention decides which figures a multi-month variance compares against
// budget.
type Convention int

const (
	// Mixed compares each month's actual, or its reforecast when the month
	// has no actual. Used when a period straddles Final and Forecast months.
	Mixed Convention = iota
	// ActualOnly compares actuals and ignores the reforecast.
	ActualOnly
	// ThroughActuals compares actuals against the budget of the months up to
	// the cutoff only.
	ThroughActuals
)

func (c Convention) String() string {
	switch c {
	case Mixed:
		return "mixed"
	case ActualOnly:
		return "actual-only"
	case ThroughActuals:
		return "through-actuals"
	}
	return fmt.Sprintf("Convention(%d)", int(c))
}

func ParseConvention(s string) (Convention, error) {
	switch s {
	case "", "mixed":
		return Mixed, nil
	case "actual-only":
		return ActualOnly, nil
	case "through-actuals":
		return ThroughActuals, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownConvention, s)
}

// Period describes which months of a year a rollup covers and how variance
// is computed over them.
type Period struct {
	Year int
	// Quarter and Month tag the result only; Months drives the selection.
	Quarter    int
	Month      int
	Months     []int
	Convention Convention
	// Cutoff is the last month whose budget counts under ThroughActuals.
	Cutoff int
}

// SummarizePeriod sums one category month by month over the period.
func SummarizePeriod(entries []budget_entry.Entry, c category.Category, p Period) CategorySummary {
	var t Totals
	var base float64
	for _, month := range p.Months {
		m := sumEntries(entries, c.Id, Filter{Year: p.Year, Month: month})

		if p.Convention != ThroughActuals || month <= p.Cutoff {
			t.Budget += m.Budget
		}
		t.Actual += m.Actual
		t.Reforecast += m.Reforecast
		t.Adjustments += m.Adjustments

		switch p.Convention {
		case Mixed:
			if m.Actual != 0 {
				base += m.Actual
			} else {
				base += m.Reforecast
			}
		default:
			base += m.Actual
		}
	}
	t.Variance = varianceOf(base, t.Budget)
	return newSummary(c, t)
}

// Rollup aggregates every category of the registry over the period.
func Rollup(entries []budget_entry.Entry, registry *category.Registry, p Period) PeriodData {
	data := Aggregate(registry, func(c category.Category) CategorySummary {
		return SummarizePeriod(entries, c, p)
	})
	data.Year = p.Year
	data.Quarter = p.Quarter
	data.Month = p.Month
	return data
}

func Monthly(entries []budget_entry.Entry, registry *category.Registry, year, month int) PeriodData {
	return Rollup(entries, registry, MonthPeriod(year, month))
}

func MonthPeriod(year, month int) Period {
	return Period{
		Year:       year,
		Quarter:    budget_entry.QuarterOf(month),
		Month:      month,
		Months:     []int{month},
		Convention: Mixed,
	}
}

// Quarterly rolls up a quarter. cutoff is only used by ThroughActuals.
func Quarterly(
	entries []budget_entry.Entry,
	registry *category.Registry,
	year, quarter int,
	convention Convention,
	cutoff int,
) PeriodData {
	return Rollup(entries, registry, QuarterPeriod(year, quarter, convention, cutoff))
}

func QuarterPeriod(year, quarter int, convention Convention, cutoff int) Period {
	return Period{
		Year:       year,
		Quarter:    quarter,
		Months:     budget_entry.QuarterMonths(quarter),
		Convention: convention,
		Cutoff:     cutoff,
	}
}

type YTDResult struct {
	Data PeriodData
	// LastMonthWithActuals is 0 when no month has actuals yet.
	LastMonthWithActuals int
}

// YTD sums January through the last month with actuals, comparing actuals
// only.
func YTD(entries []budget_entry.Entry, registry *category.Registry, year int) YTDResult {
	last := LastMonthWithActuals(entries, year)
	data := Rollup(entries, registry, YTDPeriod(year, last))
	return YTDResult{Data: data, LastMonthWithActuals: last}
}

func YTDPeriod(year, lastMonthWithActuals int) Period {
	months := make([]int, 0, lastMonthWithActuals)
	for m := 1; m <= lastMonthWithActuals; m++ {
		months = append(months, m)
	}
	return Period{
		Year:       year,
		Months:     months,
		Convention: ActualOnly,
	}
}

// LastMonthWithActuals returns the highest month with an entry whose actual is
// strictly positive, searching the given months or the whole year when none
// are given. An entered actual of zero does not count. Returns 0 when no
// month qualifies.
func LastMonthWithActuals(entries []budget_entry.Entry, year int, months ...int) int {
	inScope := func(int) bool { return true }
	if len(months) > 0 {
		allowed := make(map[int]struct{}, len(months))
		for _, m := range months {
			allowed[m] = struct{}{}
		}
		inScope = func(m int) bool {
			_, ok := allowed[m]
			return ok
		}
	}

	last := 0
	for _, e := range entries {
		if e.Year != year || e.Month < 1 || e.Month > 12 || !inScope(e.Month) {
			continue
		}
		if e.Actual.IsEntered() && e.Actual.Value() > 0 && e.Month > last {
			last = e.Month
		}
	}
	return last
}
