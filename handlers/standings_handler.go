package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Dosada05/sports-portal/services"
)

type StandingsHandler struct {
	standingsService services.StandingsService
}

func NewStandingsHandler(ss services.StandingsService) *StandingsHandler {
	return &StandingsHandler{standingsService: ss}
}

// GetStandings godoc
// @Summary League table for a competition
// @Tags standings
// @Param competition path string true "IRCC, PHL, BasketBrawl or IYSC"
// @Param sport query string false "required for IYSC"
// @Param year query int false "season year"
// @Success 200 {object} models.Standings
// @Failure 422 {object} map[string]map[string]string
// @Router /api/standings/{competition} [get]
func (h *StandingsHandler) GetStandings(w http.ResponseWriter, r *http.Request) {
	query := services.StandingsQuery{
		Competition: chi.URLParam(r, "competition"),
		SportType:   r.URL.Query().Get("sport"),
	}
	if raw := r.URL.Query().Get("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			badRequestResponse(w, r, fmt.Errorf("invalid year value: %q", raw))
			return
		}
		query.Year = year
	}

	standings, err := h.standingsService.GetStandings(r.Context(), query)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, standings, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
