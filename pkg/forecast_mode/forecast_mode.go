package forecast_mode

// Map holds, per year and month, whether the month is Final (true, actuals are
// authoritative) or Forecast (false, the reforecast is authoritative).
// Months missing from the map are Forecast.
type Map map[int]map[int]bool

func (m Map) IsFinal(year, month int) bool {
	return m[year][month]
}

func (m Map) IsForecast(year, month int) bool {
	return !m.IsFinal(year, month)
}

// Set returns a copy of the map with the month updated.
func (m Map) Set(year, month int, final bool) Map {
	out := make(Map, len(m)+1)
	for y, months := range m {
		copied := make(map[int]bool, len(months))
		for mo, f := range months {
			copied[mo] = f
		}
		out[y] = copied
	}
	if out[year] == nil {
		out[year] = map[int]bool{}
	}
	out[year][month] = final
	return out
}

// MonthMode is one persisted flag.
type MonthMode struct {
	Year  int
	Month int
	Final bool
}

func FromModes(modes []MonthMode) Map {
	m := Map{}
	for _, mode := range modes {
		if m[mode.Year] == nil {
			m[mode.Year] = map[int]bool{}
		}
		m[mode.Year][mode.Month] = mode.Final
	}
	return m
}
