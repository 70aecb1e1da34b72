package report

import (
	"bytes"
	"encoding/csv"

	"github.com/mattnotmatthew/budget-tracker-sub002/pkg/variance"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type Renderer interface {
	RenderPeriod(data variance.PeriodData) (string, error)
	RenderAlerts(alerts []variance.Alert) (string, error)
}

type CsvRendererImpl struct {
}

func NewCsvRenderer() *CsvRendererImpl {
	return &CsvRendererImpl{}
}

var periodHeader = []string{"Category", "Budget", "Actual", "Reforecast", "Adjustments", "Variance", "Variance %"}

// RenderPeriod writes one row per category followed by the total of its group,
// in display order: cost of sales, opex subgroups, remaining opex, then the
// opex and net totals.
func (r *CsvRendererImpl) RenderPeriod(data variance.PeriodData) (string, error) {
	rows := [][]string{periodHeader}
	for _, c := range data.CostOfSales.Categories {
		rows = append(rows, summaryRow(c))
	}
	rows = append(rows, totalsRow(data.CostOfSales.Name+" total", data.CostOfSales.Total))

	for _, group := range data.Opex.SubGroups {
		for _, c := range group.Categories {
			rows = append(rows, summaryRow(c))
		}
		rows = append(rows, totalsRow(group.Name+" total", group.Total))
	}
	for _, c := range data.Opex.Categories {
		rows = append(rows, summaryRow(c))
	}
	rows = append(rows, totalsRow("Opex total", data.Opex.Total))
	rows = append(rows, totalsRow("Net total", data.NetTotal))

	return writeCsv(rows)
}

func (r *CsvRendererImpl) RenderAlerts(alerts []variance.Alert) (string, error) {
	rows := [][]string{{"Severity", "Type", "Category", "Message", "Budget", "Actual", "Variance", "Variance %"}}
	for _, a := range alerts {
		rows = append(rows, []string{
			a.Severity.String(),
			string(a.Type),
			a.CategoryName,
			a.Message,
			money(a.Budget),
			money(a.Actual),
			money(a.Variance),
			percent(a.VariancePercent),
		})
	}
	return writeCsv(rows)
}

func summaryRow(s variance.CategorySummary) []string {
	return []string{
		s.CategoryName,
		money(s.Budget),
		money(s.Actual),
		money(s.Reforecast),
		money(s.Adjustments),
		money(s.Variance),
		percent(s.VariancePercent),
	}
}

func totalsRow(label string, t variance.Totals) []string {
	return []string{
		label,
		money(t.Budget),
		money(t.Actual),
		money(t.Reforecast),
		money(t.Adjustments),
		money(t.Variance),
		percent(t.VariancePercent()),
	}
}

func money(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

func percent(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(1)
}

func writeCsv(rows [][]string) (string, error) {
	var b bytes.Buffer
	writer := csv.NewWriter(&b)
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			log.Errorf("Error writing to csv: %v", err)
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Errorf("Error writing to csv: %v", err)
		return "", err
	}
	return b.String(), nil
}
