package handlers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/fplcentral/recommender-api/internal/logic"
	"github.com/fplcentral/recommender-api/internal/models"
)

// GetRecommendation returns a constrained roster recommendation
// @Summary Recommend players
// @Description Score the current player pool and greedily fill the requested position slots under the budget and team-cap constraints
// @Tags Recommend
// @Produce json
// @Param budget query number true "Budget ceiling in £m (e.g. 12.5)"
// @Param need query string true "Position requirements, e.g. 2:1,3:2 or DEF:1,MID:2"
// @Param exclude query string false "Comma-separated player ids to exclude"
// @Param max_from_team query int false "Max players per club (1-3)" default(3)
// @Param top_per_pos query int false "Candidate slice per position (1-100)" default(30)
// @Success 200 {object} models.Recommendation "Recommendation"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 422 {object} map[string]interface{} "No Feasible Roster"
// @Failure 502 {object} map[string]string "Upstream Failure"
// @Router /recommend [get]
func (h *Handler) GetRecommendation(w http.ResponseWriter, r *http.Request) {
	req, err := h.parseSelectionRequest(r)
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	rec, err := h.recommend(w, r, req)
	if err != nil {
		return // response already written
	}

	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"items":      rec.Items,
		"count":      len(rec.Items),
		"total_cost": rec.TotalCost,
	})
}

// GetRecommendationCSV runs the same computation and renders CSV
// @Summary Recommend players (CSV)
// @Tags Recommend
// @Produce text/csv
// @Success 200 {string} string "CSV rows"
// @Router /recommend.csv [get]
func (h *Handler) GetRecommendationCSV(w http.ResponseWriter, r *http.Request) {
	req, err := h.parseSelectionRequest(r)
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	rec, err := h.recommend(w, r, req)
	if err != nil {
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="recommendations.csv"`)
	writeRecommendationCSV(w, rec)
}

// recommend invokes the service and maps the error kinds to status codes.
// On error the response is already written and a non-nil error returned so
// callers just bail.
func (h *Handler) recommend(w http.ResponseWriter, r *http.Request, req models.SelectionRequest) (models.Recommendation, error) {
	rec, err := h.recommender.Recommend(r.Context(), req)
	if err == nil {
		return rec, nil
	}

	var infeasible *logic.InfeasibleError
	if errors.As(err, &infeasible) {
		unfilled := make(map[string]int, len(infeasible.Unfilled))
		for pos, n := range infeasible.Unfilled {
			unfilled[pos.Code()] = n
		}
		h.jsonResponse(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"error":    "no feasible roster",
			"unfilled": unfilled,
		})
		return models.Recommendation{}, err
	}

	h.logger.Errorw("recommendation failed", "error", err)
	h.errorResponse(w, http.StatusBadGateway, "upstream data unavailable")
	return models.Recommendation{}, err
}

// parseSelectionRequest parses and validates the query parameters. Anything
// malformed is rejected here, before scoring runs.
func (h *Handler) parseSelectionRequest(r *http.Request) (models.SelectionRequest, error) {
	q := r.URL.Query()

	budget, err := strconv.ParseFloat(q.Get("budget"), 64)
	if err != nil {
		return models.SelectionRequest{}, fmt.Errorf("invalid budget %q", q.Get("budget"))
	}

	need, err := models.ParseNeed(q.Get("need"))
	if err != nil {
		return models.SelectionRequest{}, err
	}

	exclude, err := models.ParseExclude(q.Get("exclude"))
	if err != nil {
		return models.SelectionRequest{}, err
	}

	req := models.SelectionRequest{
		Budget:      budget,
		Need:        need,
		Exclude:     exclude,
		MaxFromTeam: models.MaxFromTeamCap,
		TopPerPos:   models.DefaultTopPerPos,
	}

	if v := q.Get("max_from_team"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return models.SelectionRequest{}, fmt.Errorf("invalid max_from_team %q", v)
		}
		req.MaxFromTeam = n
	}
	if v := q.Get("top_per_pos"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return models.SelectionRequest{}, fmt.Errorf("invalid top_per_pos %q", v)
		}
		req.TopPerPos = n
	}

	if err := h.validator.Struct(req); err != nil {
		return models.SelectionRequest{}, fmt.Errorf("invalid request: %v", err)
	}
	return req, nil
}

func writeRecommendationCSV(w http.ResponseWriter, rec models.Recommendation) {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	cw.Write([]string{"id", "name", "team", "pos", "price", "score", "value", "form", "points_per_game", "fixture_outlook"})
	for _, item := range rec.Items {
		cw.Write([]string{
			strconv.Itoa(item.ID),
			item.Name,
			item.TeamName,
			item.PositionCode,
			strconv.FormatFloat(item.Price, 'f', 1, 64),
			strconv.FormatFloat(item.Score, 'f', 2, 64),
			strconv.FormatFloat(item.Value, 'f', 3, 64),
			strconv.FormatFloat(item.Form, 'f', 2, 64),
			strconv.FormatFloat(item.PointsPerGame, 'f', 2, 64),
			strconv.FormatFloat(item.FixtureOutlook, 'f', 2, 64),
		})
	}
}
