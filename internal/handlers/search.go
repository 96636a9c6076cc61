package handlers

import (
	"net/http"
	"strings"
)

// SearchPlayers resolves player identifiers by name
// @Summary Search players by name
// @Description Case-insensitive substring match on player names, most-owned first
// @Tags Search
// @Produce json
// @Param query query string true "Name fragment"
// @Success 200 {object} map[string]interface{} "Matches"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 502 {object} map[string]string "Upstream Failure"
// @Router /search [get]
func (h *Handler) SearchPlayers(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("query"))
	if query == "" {
		h.errorResponse(w, http.StatusBadRequest, "missing query parameter")
		return
	}

	results, err := h.recommender.Search(r.Context(), query)
	if err != nil {
		h.logger.Errorw("search failed", "query", query, "error", err)
		h.errorResponse(w, http.StatusBadGateway, "upstream data unavailable")
		return
	}

	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"items": results,
		"count": len(results),
	})
}
