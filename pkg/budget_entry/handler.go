package budget_entry

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/mattnotmatthew/budget-tracker-sub002/internal/rest"
	"github.com/mattnotmatthew/budget-tracker-sub002/internal/utils"
	log "github.com/sirupsen/logrus"
)

// EntryDTO uses null (or an absent field) for figures that were not entered.
type EntryDTO struct {
	Id               string   `json:"id,omitempty"`
	CategoryId       string   `json:"categoryId"`
	Year             int      `json:"year"`
	Month            int      `json:"month"`
	Quarter          int      `json:"quarter"`
	BudgetAmount     float64  `json:"budgetAmount"`
	ActualAmount     *float64 `json:"actualAmount,omitempty"`
	ReforecastAmount *float64 `json:"reforecastAmount,omitempty"`
	AdjustmentAmount *float64 `json:"adjustmentAmount,omitempty"`
	Notes            *string  `json:"notes,omitempty"`
}

func EntryToDTO(e Entry) EntryDTO {
	return EntryDTO{
		Id:               e.Id,
		CategoryId:       e.CategoryId,
		Year:             e.Year,
		Month:            e.Month,
		Quarter:          e.Quarter,
		BudgetAmount:     e.Budget,
		ActualAmount:     e.Actual.Ptr(),
		ReforecastAmount: e.Reforecast.Ptr(),
		AdjustmentAmount: e.Adjustment.Ptr(),
		Notes:            e.Notes,
	}
}

func DTOToEntry(dto EntryDTO) Entry {
	return Entry{
		Id:         dto.Id,
		CategoryId: dto.CategoryId,
		Year:       dto.Year,
		Month:      dto.Month,
		Quarter:    dto.Quarter,
		Budget:     dto.BudgetAmount,
		Actual:     AmountFromPtr(dto.ActualAmount),
		Reforecast: AmountFromPtr(dto.ReforecastAmount),
		Adjustment: AmountFromPtr(dto.AdjustmentAmount),
		Notes:      dto.Notes,
	}
}

type Handler struct {
	service Service
	clock   utils.Clock
}

func NewHandler(service Service, clock utils.Clock) *Handler {
	return &Handler{service: service, clock: clock}
}

// ListEntries godoc
// @Summary List budget entries
// @Tags BudgetEntry
// @Produce json
// @Param year query int false "Year, defaults to the current year"
// @Success 200 {array} EntryDTO
// @Failure 400 {object} rest.ErrorResponse
// @Router /api/entry [get]
func (h *Handler) ListEntries(w http.ResponseWriter, r *http.Request) {
	year, err := utils.YearParam(r, h.clock)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid year", err.Error())
		return
	}
	log.Debugf("Listing budget entries for %d", year)

	entries, err := h.service.ListForYear(r.Context(), year)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]EntryDTO, 0, len(entries))
	for _, e := range entries {
		dtos = append(dtos, EntryToDTO(e))
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// SaveEntry godoc
// @Summary Create or replace a budget entry
// @Description Entries are unique per category, year and month; saving an entry for an existing key replaces it.
// @Tags BudgetEntry
// @Accept json
// @Produce json
// @Param entry body EntryDTO true "Budget entry"
// @Success 200 {object} EntryDTO
// @Failure 400 {object} rest.ErrorResponse
// @Router /api/entry [put]
func (h *Handler) SaveEntry(w http.ResponseWriter, r *http.Request) {
	var dto EntryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	log.Debugf("Saving budget entry for %s %d-%02d", dto.CategoryId, dto.Year, dto.Month)

	stored, err := h.service.Save(r.Context(), DTOToEntry(dto))
	if err != nil {
		if errors.Is(err, ErrInvalidEntry) {
			rest.WriteError(w, http.StatusBadRequest, "Invalid budget entry", err.Error())
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(EntryToDTO(stored)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// DeleteEntry godoc
// @Summary Delete a budget entry
// @Tags BudgetEntry
// @Param entryId path string true "Entry ID"
// @Success 204
// @Failure 404 {string} string "Entry Not Found"
// @Router /api/entry/{entryId} [delete]
func (h *Handler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["entryId"]
	log.Debugf("Deleting budget entry %s", id)

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrEntryNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
