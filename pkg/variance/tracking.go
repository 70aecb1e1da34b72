package variance

// Tracking is the adjustment-normalized view of a total.
type Tracking struct {
	Budget     float64
	Actual     float64
	Reforecast float64
	Variance   float64
}

// BudgetTracking nets manual adjustments out of a total. Adjustments are
// always taken out of the actual, and out of the reforecast only while there
// is no actual yet. In forecast mode the variance compares the reforecast,
// otherwise the actual.
func BudgetTracking(t Totals, isForecastMode bool) Tracking {
	tracking := Tracking{
		Budget:     t.Budget,
		Actual:     t.Actual - t.Adjustments,
		Reforecast: t.Reforecast,
	}
	if t.Actual == 0 {
		tracking.Reforecast = t.Reforecast - t.Adjustments
	}

	base := tracking.Actual
	if isForecastMode {
		base = tracking.Reforecast
	}
	tracking.Variance = varianceOf(base, tracking.Budget)
	return tracking
}
