package fpl

import (
	"github.com/fplcentral/recommender-api/internal/models"
)

// fixtureHorizon is how many upcoming fixtures feed the outlook score.
const fixtureHorizon = 3

// outlook blend weights: difficulty rating dominates, opponent overall
// strength refines it, home games get a small boost.
const (
	outlookFDRWeight      = 0.6
	outlookStrengthWeight = 0.3
	outlookHomeBoost      = 0.2
)

// buildPlayers maps the raw upstream payloads to normalized player records.
// All defaulting happens here so downstream scoring never sees a missing
// field. Unavailable players are kept in the snapshot; the scoring pool
// filters them.
func buildPlayers(boot bootstrapResponse, fixtures []fixture) []models.Player {
	posCodes := positionCodeMap(boot.ElementTypes)
	teamNames := make(map[int]string, len(boot.Teams))
	for _, t := range boot.Teams {
		teamNames[t.ID] = t.Name
	}
	strengths := normalizeTeamStrengths(boot.Teams)
	upcoming := upcomingByTeam(fixtures)

	players := make([]models.Player, 0, len(boot.Elements))
	for _, e := range boot.Elements {
		p := models.Player{
			ID:                e.ID,
			Name:              e.WebName,
			TeamID:            e.Team,
			TeamName:          teamNames[e.Team],
			Position:          models.Position(e.ElementType),
			Price:             e.NowCost / 10.0,
			Form:              e.Form,
			PointsPerGame:     e.PointsPerGame,
			ICTIndex:          e.ICTIndex,
			SelectedByPercent: e.SelectedByPercent,
			Minutes:           e.Minutes,
			Availability:      mapStatus(e.Status),
			ChanceOfPlaying:   e.ChanceOfPlayingNext,
			ExpectedPoints:    e.EPNext,
			FixtureOutlook:    fixtureOutlook(e.Team, upcoming[e.Team], strengths),
		}
		if code, ok := posCodes[e.ElementType]; ok {
			p.PositionCode = code
		} else {
			p.PositionCode = p.Position.Code()
		}
		if e.FirstName != "" || e.SecondName != "" {
			full := e.FirstName + " " + e.SecondName
			if e.FirstName == "" {
				full = e.SecondName
			}
			p.FullName = full
		}
		players = append(players, p)
	}
	return players
}

func positionCodeMap(types []elementType) map[int]string {
	m := make(map[int]string, len(types))
	for _, et := range types {
		if et.SingularNameShort != "" {
			m[et.ID] = et.SingularNameShort
		}
	}
	return m
}

// mapStatus collapses the upstream status flag. Only "a" and "d" survive
// scoring; injured, suspended, unavailable and departed players all map to
// unavailable.
func mapStatus(status string) models.Availability {
	switch status {
	case "a":
		return models.Available
	case "d":
		return models.Doubtful
	default:
		return models.Unavailable
	}
}

// normalizeTeamStrengths min-max scales each team's average overall strength
// onto 1..5. A degenerate range (all teams equal, or no teams) yields the
// neutral 3.
func normalizeTeamStrengths(teams []team) map[int]float64 {
	if len(teams) == 0 {
		return map[int]float64{}
	}

	raw := make(map[int]float64, len(teams))
	lo, hi := 0.0, 0.0
	for i, t := range teams {
		s := float64(t.StrengthOverallHome+t.StrengthOverallAway) / 2
		raw[t.ID] = s
		if i == 0 {
			lo, hi = s, s
			continue
		}
		if s < lo {
			lo = s
		}
		if s > hi {
			hi = s
		}
	}

	out := make(map[int]float64, len(raw))
	for id, s := range raw {
		if hi == lo {
			out[id] = 3
			continue
		}
		out[id] = 1 + 4*((s-lo)/(hi-lo))
	}
	return out
}

// upcomingByTeam collects each team's next fixtures in input order, capped at
// the horizon. The upstream feed is ordered by gameweek.
func upcomingByTeam(fixtures []fixture) map[int][]fixture {
	out := make(map[int][]fixture)
	for _, fx := range fixtures {
		if fx.Finished {
			continue
		}
		if len(out[fx.TeamH]) < fixtureHorizon {
			out[fx.TeamH] = append(out[fx.TeamH], fx)
		}
		if len(out[fx.TeamA]) < fixtureHorizon {
			out[fx.TeamA] = append(out[fx.TeamA], fx)
		}
	}
	return out
}

// fixtureOutlook averages the per-fixture ease scores for a team's upcoming
// games. Easier fixtures (low FDR, weak opponent) score higher; an empty
// schedule scores 0.
func fixtureOutlook(teamID int, upcoming []fixture, strengths map[int]float64) float64 {
	if len(upcoming) == 0 {
		return 0
	}

	total := 0.0
	for _, fx := range upcoming {
		isHome := fx.TeamH == teamID

		oppID := fx.TeamH
		fdr := fx.TeamADifficulty
		if isHome {
			oppID = fx.TeamA
			fdr = fx.TeamHDifficulty
		}

		// FDR is 1-5 with 1 easiest; invert so higher is better.
		invFDR := float64(6 - fdr)

		oppStrength, ok := strengths[oppID]
		if !ok {
			oppStrength = 3
		}
		invOpp := 6 - oppStrength

		score := invFDR*outlookFDRWeight + invOpp*outlookStrengthWeight
		if isHome {
			score += outlookHomeBoost
		}
		total += score
	}
	return total / float64(len(upcoming))
}
