// Package variance rolls budget entries up into category, subgroup and period
// summaries and derives budget tracking figures and alerts from them.
//
// Every function in this package is a pure transform of its arguments: inputs
// are never mutated and no state is kept between calls, so callers may invoke
// it concurrently without coordination.
package variance

import "math"

// Totals holds the summed figures of a category, group or period.
// A positive Variance always means under budget.
type Totals struct {
	Budget      float64
	Actual      float64
	Reforecast  float64
	Adjustments float64
	Variance    float64
}

func (t Totals) Add(other Totals) Totals {
	return Totals{
		Budget:      t.Budget + other.Budget,
		Actual:      t.Actual + other.Actual,
		Reforecast:  t.Reforecast + other.Reforecast,
		Adjustments: t.Adjustments + other.Adjustments,
		Variance:    t.Variance + other.Variance,
	}
}

func (t Totals) VariancePercent() float64 {
	return variancePercent(t.Variance, t.Budget)
}

type CategorySummary struct {
	CategoryId      string
	CategoryName    string
	Budget          float64
	Actual          float64
	Reforecast      float64
	Adjustments     float64
	Variance        float64
	VariancePercent float64
	IsNegative      bool
}

func (s CategorySummary) Totals() Totals {
	return Totals{
		Budget:      s.Budget,
		Actual:      s.Actual,
		Reforecast:  s.Reforecast,
		Adjustments: s.Adjustments,
		Variance:    s.Variance,
	}
}

type SubCategoryGroup struct {
	Id         string
	Name       string
	Categories []CategorySummary
	Total      Totals
}

type OpexGroup struct {
	// Categories holds opex categories outside of any subgroup.
	Categories []CategorySummary
	SubGroups  []SubCategoryGroup
	Total      Totals
}

// PeriodData is the rollup shape shared by monthly, quarterly and YTD views.
// Quarter and Month are 0 when the period is not a single quarter or month;
// a YTD result has both set to 0.
type PeriodData struct {
	Year        int
	Quarter     int
	Month       int
	CostOfSales SubCategoryGroup
	Opex        OpexGroup
	NetTotal    Totals
}

// varianceOf returns -(base - budget). Written as budget - base so an exact
// match yields +0 rather than -0.
func varianceOf(base, budget float64) float64 {
	return budget - base
}

func variancePercent(variance, budget float64) float64 {
	if budget == 0 {
		return 0
	}
	return variance * 100 / math.Abs(budget)
}
