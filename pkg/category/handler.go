package category

import (
	"encoding/json"
	"net/http"
)

type CategoryDTO struct {
	Id         string `json:"id"`
	Name       string `json:"name"`
	Parent     string `json:"parent"`
	Subgroup   string `json:"subgroup,omitempty"`
	IsNegative bool   `json:"isNegative"`
}

type Handler struct {
	registry *Registry
}

func NewHandler(registry *Registry) *Handler {
	return &Handler{registry: registry}
}

// ListCategories godoc
// @Summary List budget categories
// @Description Categories in registry order, with the opex subgroup they are reported under.
// @Tags Category
// @Produce json
// @Success 200 {array} CategoryDTO
// @Router /api/category [get]
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories := h.registry.All()
	dtos := make([]CategoryDTO, 0, len(categories))
	for _, c := range categories {
		dto := CategoryDTO{
			Id:         c.Id,
			Name:       c.Name,
			Parent:     string(c.Parent),
			IsNegative: c.IsNegative,
		}
		if subgroup, ok := h.registry.SubgroupOf(c.Id); ok {
			dto.Subgroup = string(subgroup)
		}
		dtos = append(dtos, dto)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
