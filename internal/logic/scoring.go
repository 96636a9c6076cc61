package logic

import (
	"sort"

	"github.com/fplcentral/recommender-api/internal/models"
)

// Composite score weights. Form dominates, the fixture outlook and season
// rate refine it, and the upstream expected-points figure gets a small say
// when it is present at all.
const (
	weightForm           = 0.40
	weightPointsPerGame  = 0.25
	weightFixtureOutlook = 0.20
	weightICTIndex       = 0.10
	weightExpectedPoints = 0.05
)

// riskChanceFloor is the chance-of-playing percentage below which doubtful
// players start losing score.
const riskChanceFloor = 60.0

// Score computes the weighted composite score for one player. Scores are
// absolute weighted sums; they are not re-normalized across the candidate
// pool.
func Score(p models.Player) float64 {
	ep := 0.0
	if p.ExpectedPoints != nil {
		ep = *p.ExpectedPoints
	}

	return weightForm*p.Form +
		weightPointsPerGame*p.PointsPerGame +
		weightFixtureOutlook*p.FixtureOutlook +
		weightICTIndex*p.ICTIndex +
		weightExpectedPoints*ep +
		RiskPenalty(p)
}

// RiskPenalty is zero or negative. Only doubtful players are penalized;
// unavailable players never reach scoring at all. A doubtful player with an
// unknown chance-of-playing gets no penalty rather than a guessed one.
func RiskPenalty(p models.Player) float64 {
	if p.Availability != models.Doubtful {
		return 0
	}
	if p.ChanceOfPlaying == nil {
		return 0
	}
	short := riskChanceFloor - *p.ChanceOfPlaying
	if short <= 0 {
		return 0
	}
	return -short / riskChanceFloor
}

// Value is the bargain metric: points-per-game per price unit. Zero-priced
// players report zero rather than dividing by zero.
func Value(p models.Player) float64 {
	if p.Price <= 0 {
		return 0
	}
	return p.PointsPerGame / p.Price
}

// BuildPool scores the snapshot into a selection-ready candidate pool:
// unavailable and excluded players are dropped, everyone else is scored, and
// the pool is ordered by score descending with ties broken by lower price
// then stable input order.
func BuildPool(players []models.Player, exclude map[int]struct{}) []models.ScoredPlayer {
	pool := make([]models.ScoredPlayer, 0, len(players))
	for _, p := range players {
		if p.Availability == models.Unavailable {
			continue
		}
		if _, skip := exclude[p.ID]; skip {
			continue
		}
		pool = append(pool, models.ScoredPlayer{
			Player: p,
			Score:  Score(p),
			Value:  Value(p),
		})
	}

	sort.SliceStable(pool, func(i, j int) bool {
		if pool[i].Score != pool[j].Score {
			return pool[i].Score > pool[j].Score
		}
		return pool[i].Price < pool[j].Price
	})
	return pool
}
