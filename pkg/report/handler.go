package report

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mattnotmatthew/budget-tracker-sub002/internal/rest"
	"github.com/mattnotmatthew/budget-tracker-sub002/internal/utils"
	"github.com/mattnotmatthew/budget-tracker-sub002/pkg/variance"
	log "github.com/sirupsen/logrus"
)

type TotalsDTO struct {
	Budget          float64 `json:"budget"`
	Actual          float64 `json:"actual"`
	Reforecast      float64 `json:"reforecast"`
	Adjustments     float64 `json:"adjustments"`
	Variance        float64 `json:"variance"`
	VariancePercent float64 `json:"variancePercent"`
}

type CategorySummaryDTO struct {
	CategoryId   string `json:"categoryId"`
	CategoryName string `json:"categoryName"`
	IsNegative   bool   `json:"isNegative"`
	TotalsDTO
}

type GroupDTO struct {
	Id         string               `json:"id"`
	Name       string               `json:"name"`
	Categories []CategorySummaryDTO `json:"categories"`
	Total      TotalsDTO            `json:"total"`
}

type OpexDTO struct {
	Categories []CategorySummaryDTO `json:"categories"`
	SubGroups  []GroupDTO           `json:"subGroups"`
	Total      TotalsDTO            `json:"total"`
}

type TrackingDTO struct {
	Budget     float64 `json:"budget"`
	Actual     float64 `json:"actual"`
	Reforecast float64 `json:"reforecast"`
	Variance   float64 `json:"variance"`
}

type GroupTrackingDTO struct {
	CostOfSales TrackingDTO `json:"costOfSales"`
	Opex        TrackingDTO `json:"opex"`
	Net         TrackingDTO `json:"net"`
}

type ReportDTO struct {
	Year                 int              `json:"year"`
	Quarter              int              `json:"quarter,omitempty"`
	Month                int              `json:"month,omitempty"`
	Convention           string           `json:"convention"`
	Cutoff               int              `json:"cutoff,omitempty"`
	LastMonthWithActuals *int             `json:"lastMonthWithActuals,omitempty"`
	ForecastMode         bool             `json:"forecastMode"`
	CostOfSales          GroupDTO         `json:"costOfSales"`
	Opex                 OpexDTO          `json:"opex"`
	NetTotal             TotalsDTO        `json:"netTotal"`
	Tracking             GroupTrackingDTO `json:"tracking"`
}

type AlertDTO struct {
	Type            string  `json:"type"`
	Severity        string  `json:"severity"`
	CategoryId      string  `json:"categoryId"`
	CategoryName    string  `json:"categoryName"`
	Message         string  `json:"message"`
	Budget          float64 `json:"budget"`
	Actual          float64 `json:"actual"`
	Variance        float64 `json:"variance"`
	VariancePercent float64 `json:"variancePercent"`
}

type Handler struct {
	service  Service
	renderer Renderer
	clock    utils.Clock
}

func NewHandler(service Service, renderer Renderer, clock utils.Clock) *Handler {
	return &Handler{service: service, renderer: renderer, clock: clock}
}

// GetMonthly godoc
// @Summary Monthly variance report
// @Tags Report
// @Produce json
// @Produce text/csv
// @Param year query int false "Year, defaults to the current year"
// @Param month query int true "Month (1-12)"
// @Success 200 {object} ReportDTO
// @Failure 400 {object} rest.ErrorResponse
// @Router /api/report/monthly [get]
func (h *Handler) GetMonthly(w http.ResponseWriter, r *http.Request) {
	year, err := utils.YearParam(r, h.clock)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid year", err.Error())
		return
	}
	month, err := utils.IntParam(r, "month", 1, 12)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid month", err.Error())
		return
	}
	log.Debugf("Monthly report for %d-%02d", year, month)

	report, err := h.service.Monthly(r.Context(), year, month)
	h.writeReport(w, r, report, err)
}

// GetQuarterly godoc
// @Summary Quarterly variance report
// @Description convention is one of mixed (default), actual-only or through-actuals.
// @Description cutoff limits the budget of through-actuals reports and defaults to the last month with actuals in the quarter.
// @Tags Report
// @Produce json
// @Produce text/csv
// @Param year query int false "Year, defaults to the current year"
// @Param quarter query int true "Quarter (1-4)"
// @Param convention query string false "Variance convention"
// @Param cutoff query int false "Last month whose budget counts"
// @Success 200 {object} ReportDTO
// @Failure 400 {object} rest.ErrorResponse
// @Router /api/report/quarterly [get]
func (h *Handler) GetQuarterly(w http.ResponseWriter, r *http.Request) {
	year, err := utils.YearParam(r, h.clock)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid year", err.Error())
		return
	}
	quarter, err := utils.IntParam(r, "quarter", 1, 4)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid quarter", err.Error())
		return
	}
	convention, err := variance.ParseConvention(r.URL.Query().Get("convention"))
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid convention", err.Error())
		return
	}
	cutoff := 0
	if r.URL.Query().Has("cutoff") {
		cutoff, err = utils.IntParam(r, "cutoff", 1, 12)
		if err != nil {
			rest.WriteError(w, http.StatusBadRequest, "Invalid cutoff", err.Error())
			return
		}
	}
	log.Debugf("Quarterly report for %d Q%d (%s)", year, quarter, convention)

	report, err := h.service.Quarterly(r.Context(), year, quarter, convention, cutoff)
	h.writeReport(w, r, report, err)
}

// GetYTD godoc
// @Summary Year to date variance report
// @Description Covers January through the last month with actuals.
// @Tags Report
// @Produce json
// @Produce text/csv
// @Param year query int false "Year, defaults to the current year"
// @Success 200 {object} ReportDTO
// @Failure 400 {object} rest.ErrorResponse
// @Router /api/report/ytd [get]
func (h *Handler) GetYTD(w http.ResponseWriter, r *http.Request) {
	year, err := utils.YearParam(r, h.clock)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid year", err.Error())
		return
	}
	log.Debugf("YTD report for %d", year)

	report, err := h.service.YTD(r.Context(), year)
	h.writeReport(w, r, report, err)
}

// GetAlerts godoc
// @Summary Budget alerts for a year
// @Tags Report
// @Produce json
// @Produce text/csv
// @Param year query int false "Year, defaults to the current year"
// @Success 200 {array} AlertDTO
// @Failure 400 {object} rest.ErrorResponse
// @Router /api/report/alerts [get]
func (h *Handler) GetAlerts(w http.ResponseWriter, r *http.Request) {
	year, err := utils.YearParam(r, h.clock)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid year", err.Error())
		return
	}

	alerts, err := h.service.Alerts(r.Context(), year)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if r.Header.Get("Accept") == "text/csv" {
		csv, err := h.renderer.RenderAlerts(alerts)
		writeCsvResponse(w, csv, err)
		return
	}

	dtos := make([]AlertDTO, 0, len(alerts))
	for _, a := range alerts {
		dtos = append(dtos, alertToDTO(a))
	}
	writeJson(w, dtos)
}

func (h *Handler) writeReport(w http.ResponseWriter, r *http.Request, report Report, err error) {
	if err != nil {
		if errors.Is(err, ErrInvalidPeriod) {
			rest.WriteError(w, http.StatusBadRequest, "Invalid period", err.Error())
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if r.Header.Get("Accept") == "text/csv" {
		csv, err := h.renderer.RenderPeriod(report.Data)
		writeCsvResponse(w, csv, err)
		return
	}
	writeJson(w, reportToDTO(report))
}

func writeCsvResponse(w http.ResponseWriter, csv string, err error) {
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(csv)); err != nil {
		log.Errorf("failed to write csv response: %v", err)
	}
}

func writeJson(w http.ResponseWriter, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func reportToDTO(report Report) ReportDTO {
	data := report.Data
	dto := ReportDTO{
		Year:         data.Year,
		Quarter:      data.Quarter,
		Month:        data.Month,
		Convention:   report.Convention.String(),
		Cutoff:       report.Cutoff,
		ForecastMode: report.ForecastMode,
		CostOfSales:  groupToDTO(data.CostOfSales),
		Opex: OpexDTO{
			Categories: summariesToDTO(data.Opex.Categories),
			SubGroups:  make([]GroupDTO, 0, len(data.Opex.SubGroups)),
			Total:      totalsToDTO(data.Opex.Total),
		},
		NetTotal: totalsToDTO(data.NetTotal),
		Tracking: GroupTrackingDTO{
			CostOfSales: trackingToDTO(report.Tracking.CostOfSales),
			Opex:        trackingToDTO(report.Tracking.Opex),
			Net:         trackingToDTO(report.Tracking.Net),
		},
	}
	for _, g := range data.Opex.SubGroups {
		dto.Opex.SubGroups = append(dto.Opex.SubGroups, groupToDTO(g))
	}
	if data.Quarter == 0 && data.Month == 0 {
		last := report.LastMonthWithActuals
		dto.LastMonthWithActuals = &last
	}
	return dto
}

func groupToDTO(g variance.SubCategoryGroup) GroupDTO {
	return GroupDTO{
		Id:         g.Id,
		Name:       g.Name,
		Categories: summariesToDTO(g.Categories),
		Total:      totalsToDTO(g.Total),
	}
}

func summariesToDTO(summaries []variance.CategorySummary) []CategorySummaryDTO {
	dtos := make([]CategorySummaryDTO, 0, len(summaries))
	for _, s := range summaries {
		dtos = append(dtos, CategorySummaryDTO{
			CategoryId:   s.CategoryId,
			CategoryName: s.CategoryName,
			IsNegative:   s.IsNegative,
			TotalsDTO: TotalsDTO{
				Budget:          s.Budget,
				Actual:          s.Actual,
				Reforecast:      s.Reforecast,
				Adjustments:     s.Adjustments,
				Variance:        s.Variance,
				VariancePercent: s.VariancePercent,
			},
		})
	}
	return dtos
}

func totalsToDTO(t variance.Totals) TotalsDTO {
	return TotalsDTO{
		Budget:          t.Budget,
		Actual:          t.Actual,
		Reforecast:      t.Reforecast,
		Adjustments:     t.Adjustments,
		Variance:        t.Variance,
		VariancePercent: t.VariancePercent(),
	}
}

func trackingToDTO(t variance.Tracking) TrackingDTO {
	return TrackingDTO{
		Budget:     t.Budget,
		Actual:     t.Actual,
		Reforecast: t.Reforecast,
		Variance:   t.Variance,
	}
}

func alertToDTO(a variance.Alert) AlertDTO {
	return AlertDTO{
		Type:            string(a.Type),
		Severity:        a.Severity.String(),
		CategoryId:      a.CategoryId,
		CategoryName:    a.CategoryName,
		Message:         a.Message,
		Budget:          a.Budget,
		Actual:          a.Actual,
		Variance:        a.Variance,
		VariancePercent: a.VariancePercent,
	}
}
