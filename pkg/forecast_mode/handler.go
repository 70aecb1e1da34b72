package forecast_mode

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/mattnotmatthew/budget-tracker-sub002/internal/rest"
	"github.com/mattnotmatthew/budget-tracker-sub002/internal/utils"
	log "github.com/sirupsen/logrus"
)

type YearModesDTO struct {
	Year int `json:"year"`
	// Months maps month number to true when the month is final.
	Months map[int]bool `json:"months"`
}

type MonthModeDTO struct {
	Final bool `json:"final"`
}

type Handler struct {
	service Service
	clock   utils.Clock
}

func NewHandler(service Service, clock utils.Clock) *Handler {
	return &Handler{service: service, clock: clock}
}

// GetModes godoc
// @Summary Get forecast modes
// @Description Final/Forecast flag of every month of a year. Missing months are Forecast.
// @Tags ForecastMode
// @Produce json
// @Param year query int false "Year, defaults to the current year"
// @Success 200 {object} YearModesDTO
// @Failure 400 {object} rest.ErrorResponse
// @Router /api/forecast-mode [get]
func (h *Handler) GetModes(w http.ResponseWriter, r *http.Request) {
	year, err := utils.YearParam(r, h.clock)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid year", err.Error())
		return
	}
	log.Debugf("Getting forecast modes for %d", year)

	modes, err := h.service.GetMap(r.Context(), year)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(YearModesDTO{Year: year, Months: modes[year]}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// SetMode godoc
// @Summary Set forecast mode of a month
// @Tags ForecastMode
// @Accept json
// @Param year path int true "Year"
// @Param month path int true "Month (1-12)"
// @Param mode body MonthModeDTO true "Mode"
// @Success 204
// @Failure 400 {object} rest.ErrorResponse
// @Router /api/forecast-mode/{year}/{month} [put]
func (h *Handler) SetMode(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	year, err := strconv.Atoi(vars["year"])
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid year", err.Error())
		return
	}
	month, err := strconv.Atoi(vars["month"])
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid month", err.Error())
		return
	}
	var dto MonthModeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	if err := h.service.SetMode(r.Context(), year, month, dto.Final); err != nil {
		if errors.Is(err, ErrInvalidMonth) {
			rest.WriteError(w, http.StatusBadRequest, "Invalid month", err.Error())
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
