package variance

import (
	"fmt"
	"math"
	"sort"

	"github.com/mattnotmatthew/budget-tracker-sub002/pkg/budget_entry"
	"github.com/mattnotmatthew/budget-tracker-sub002/pkg/category"
)

type Severity int

const (
	Info Severity = iota
	Warning
	Danger
)

func (s Severity) String() string {
	switch s {
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Danger:
		return "danger"
	}
	return fmt.Sprintf("Severity(%d)", int(s))
}

type AlertType string

const (
	VarianceAlert  AlertType = "variance"
	NoActualsAlert AlertType = "no-actuals"
)

type Alert struct {
	Type            AlertType
	Severity        Severity
	CategoryId      string
	CategoryName    string
	Message         string
	Budget          float64
	Actual          float64
	Variance        float64
	VariancePercent float64
}

// AlertThresholds configures when a variance alert fires. Both the percent and
// the amount threshold must be exceeded.
type AlertThresholds struct {
	VariancePercent float64
	VarianceAmount  float64
	DangerPercent   float64
}

func DefaultAlertThresholds() AlertThresholds {
	return AlertThresholds{
		VariancePercent: 15,
		VarianceAmount:  50000,
		DangerPercent:   25,
	}
}

// GenerateAlerts scans the full-year summary of every category. The result is
// ordered by severity, most severe first, keeping category order within a
// severity.
func GenerateAlerts(
	entries []budget_entry.Entry,
	registry *category.Registry,
	year int,
	thresholds AlertThresholds,
) []Alert {
	var alerts []Alert
	for _, c := range registry.All() {
		s := SummarizeCategory(entries, c, Filter{Year: year})

		pct := math.Abs(s.VariancePercent)
		if pct > thresholds.VariancePercent && math.Abs(s.Variance) > thresholds.VarianceAmount {
			severity := Warning
			if pct > thresholds.DangerPercent {
				severity = Danger
			}
			alerts = append(alerts, newAlert(VarianceAlert, severity, s, varianceMessage(s)))
		}

		if s.Budget != 0 && s.Actual == 0 {
			alerts = append(alerts, newAlert(NoActualsAlert, Info, s, "No actual expenses recorded yet"))
		}
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[i].Severity > alerts[j].Severity
	})
	return alerts
}

func newAlert(alertType AlertType, severity Severity, s CategorySummary, message string) Alert {
	return Alert{
		Type:            alertType,
		Severity:        severity,
		CategoryId:      s.CategoryId,
		CategoryName:    s.CategoryName,
		Message:         message,
		Budget:          s.Budget,
		Actual:          s.Actual,
		Variance:        s.Variance,
		VariancePercent: s.VariancePercent,
	}
}

func varianceMessage(s CategorySummary) string {
	direction := "under"
	if s.Variance < 0 {
		direction = "over"
	}
	return fmt.Sprintf("%s is %.1f%% %s budget", s.CategoryName, math.Abs(s.VariancePercent), direction)
}
