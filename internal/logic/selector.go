package logic

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fplcentral/recommender-api/internal/models"
)

// InfeasibleError reports that the requested roster cannot be filled under
// the budget, team-cap and pool constraints. It is distinct from an empty
// result: an empty need map yields an empty recommendation, not this error.
type InfeasibleError struct {
	Unfilled map[models.Position]int
}

func (e *InfeasibleError) Error() string {
	parts := make([]string, 0, len(e.Unfilled))
	for _, pos := range models.AllPositions {
		if n, ok := e.Unfilled[pos]; ok && n > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", pos.Code(), n))
		}
	}
	sort.Strings(parts)
	return "no feasible roster: unfilled " + strings.Join(parts, ",")
}

// Select greedily fills the requested position counts from a scored pool.
//
// Positions are processed in upstream code order (GK, DEF, MID, FWD) and the
// budget and per-team counters are shared across positions. Per position the
// pool is trimmed to the top TopPerPos candidates by score, then picks run
// in descending score order, skipping anyone who would blow the budget or
// the team cap. Before committing a pick the cheapest possible cost of every
// still-unfilled slot is reserved, so a pricey early pick cannot strand a
// later position that a cheaper alternative would have left affordable.
//
// This is a heuristic, not a global optimum: it never backtracks to swap an
// already-committed pick. Good enough for "who do I bring in this week"; a
// proper integer program is a roadmap item.
func Select(pool []models.ScoredPlayer, req models.SelectionRequest) (models.Recommendation, error) {
	rec := models.Recommendation{Items: []models.ScoredPlayer{}}
	spend := 0.0
	teamCounts := make(map[int]int)
	unfilled := make(map[models.Position]int)

	trim := req.TopPerPos
	if trim <= 0 {
		trim = models.DefaultTopPerPos
	}

	candidates := make(map[models.Position][]models.ScoredPlayer, len(models.AllPositions))
	remaining := make(map[models.Position]int, len(req.Need))
	for _, pos := range models.AllPositions {
		if req.Need[pos] > 0 {
			candidates[pos] = topForPosition(pool, pos, trim)
			remaining[pos] = req.Need[pos]
		}
	}

	for _, pos := range models.AllPositions {
		needed := remaining[pos]
		if needed <= 0 {
			continue
		}

		for _, c := range candidates[pos] {
			if needed <= 0 {
				break
			}
			remaining[pos] = needed - 1
			reserve := minRemainingCost(candidates, remaining)
			remaining[pos] = needed
			if spend+c.Price+reserve > req.Budget {
				continue
			}
			if teamCounts[c.TeamID] >= req.MaxFromTeam {
				continue
			}

			rec.Items = append(rec.Items, c)
			spend += c.Price
			teamCounts[c.TeamID]++
			needed--
			remaining[pos] = needed
		}

		if needed > 0 {
			unfilled[pos] = needed
			remaining[pos] = 0
		}
	}

	if len(unfilled) > 0 {
		return models.Recommendation{}, &InfeasibleError{Unfilled: unfilled}
	}

	rec.TotalCost = spend
	return rec, nil
}

// minRemainingCost lower-bounds the spend still required to fill every open
// slot, pricing each at the cheapest candidate for its position. Positions
// with no candidates contribute nothing; the pick loop reports them as
// unfilled on its own.
func minRemainingCost(candidates map[models.Position][]models.ScoredPlayer, remaining map[models.Position]int) float64 {
	total := 0.0
	for pos, n := range remaining {
		if n <= 0 || len(candidates[pos]) == 0 {
			continue
		}
		cheapest := candidates[pos][0].Price
		for _, c := range candidates[pos][1:] {
			if c.Price < cheapest {
				cheapest = c.Price
			}
		}
		total += cheapest * float64(n)
	}
	return total
}

// topForPosition returns the first trim pool entries for a position. The
// pool is already score-ordered, so this is the top slice.
func topForPosition(pool []models.ScoredPlayer, pos models.Position, trim int) []models.ScoredPlayer {
	out := make([]models.ScoredPlayer, 0, trim)
	for _, c := range pool {
		if c.Position != pos {
			continue
		}
		out = append(out, c)
		if len(out) == trim {
			break
		}
	}
	return out
}
