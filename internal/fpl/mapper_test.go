package fpl

import (
	"math"
	"testing"

	"github.com/fplcentral/recommender-api/internal/models"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestMapStatus(t *testing.T) {
	tests := []struct {
		status string
		want   models.Availability
	}{
		{"a", models.Available},
		{"d", models.Doubtful},
		{"i", models.Unavailable},
		{"s", models.Unavailable},
		{"u", models.Unavailable},
		{"n", models.Unavailable},
		{"", models.Unavailable},
	}
	for _, tt := range tests {
		if got := mapStatus(tt.status); got != tt.want {
			t.Errorf("mapStatus(%q) = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestNormalizeTeamStrengths(t *testing.T) {
	teams := []team{
		{ID: 1, StrengthOverallHome: 1200, StrengthOverallAway: 1200},
		{ID: 2, StrengthOverallHome: 1300, StrengthOverallAway: 1300},
		{ID: 3, StrengthOverallHome: 1400, StrengthOverallAway: 1400},
	}

	got := normalizeTeamStrengths(teams)

	if !almostEqual(got[1], 1) {
		t.Errorf("weakest team = %f, want 1", got[1])
	}
	if !almostEqual(got[2], 3) {
		t.Errorf("middle team = %f, want 3", got[2])
	}
	if !almostEqual(got[3], 5) {
		t.Errorf("strongest team = %f, want 5", got[3])
	}
}

func TestNormalizeTeamStrengths_Degenerate(t *testing.T) {
	teams := []team{
		{ID: 1, StrengthOverallHome: 1300, StrengthOverallAway: 1300},
		{ID: 2, StrengthOverallHome: 1300, StrengthOverallAway: 1300},
	}

	got := normalizeTeamStrengths(teams)
	for id, s := range got {
		if s != 3 {
			t.Errorf("team %d strength = %f, want neutral 3 when all equal", id, s)
		}
	}

	if len(normalizeTeamStrengths(nil)) != 0 {
		t.Error("no teams must yield an empty map")
	}
}

func TestUpcomingByTeam(t *testing.T) {
	fixtures := []fixture{
		{TeamH: 1, TeamA: 2, Finished: true},
		{TeamH: 1, TeamA: 3},
		{TeamH: 4, TeamA: 1},
		{TeamH: 1, TeamA: 5},
		{TeamH: 6, TeamA: 1},
	}

	got := upcomingByTeam(fixtures)

	if len(got[1]) != fixtureHorizon {
		t.Errorf("team 1 has %d upcoming, want capped at %d", len(got[1]), fixtureHorizon)
	}
	// the finished fixture must not count, so the first entry is vs team 3
	if got[1][0].TeamA != 3 {
		t.Errorf("team 1 first upcoming opponent = %d, want 3 (finished game skipped)", got[1][0].TeamA)
	}
	if len(got[6]) != 1 {
		t.Errorf("team 6 has %d upcoming, want 1", len(got[6]))
	}
}

func TestFixtureOutlook(t *testing.T) {
	strengths := map[int]float64{1: 3, 2: 5, 3: 1}

	// Home game vs the weakest opponent at FDR 2:
	// 0.6*(6-2) + 0.3*(6-1) + 0.2 = 2.4 + 1.5 + 0.2 = 4.1
	home := fixtureOutlook(1, []fixture{
		{TeamH: 1, TeamA: 3, TeamHDifficulty: 2, TeamADifficulty: 4},
	}, strengths)
	if !almostEqual(home, 4.1) {
		t.Errorf("home outlook = %f, want 4.1", home)
	}

	// Away game vs the strongest opponent at FDR 5:
	// 0.6*(6-5) + 0.3*(6-5) = 0.6 + 0.3 = 0.9, no home boost
	away := fixtureOutlook(1, []fixture{
		{TeamH: 2, TeamA: 1, TeamHDifficulty: 2, TeamADifficulty: 5},
	}, strengths)
	if !almostEqual(away, 0.9) {
		t.Errorf("away outlook = %f, want 0.9", away)
	}

	// Two fixtures average.
	both := fixtureOutlook(1, []fixture{
		{TeamH: 1, TeamA: 3, TeamHDifficulty: 2, TeamADifficulty: 4},
		{TeamH: 2, TeamA: 1, TeamHDifficulty: 2, TeamADifficulty: 5},
	}, strengths)
	if !almostEqual(both, (4.1+0.9)/2) {
		t.Errorf("two-fixture outlook = %f, want %f", both, (4.1+0.9)/2)
	}

	if fixtureOutlook(1, nil, strengths) != 0 {
		t.Error("empty schedule must score 0")
	}
}

func TestFixtureOutlook_UnknownOpponentStrength(t *testing.T) {
	// Opponent missing from the strength map falls back to neutral 3:
	// 0.6*(6-3) + 0.3*(6-3) + 0.2 = 1.8 + 0.9 + 0.2 = 2.9
	got := fixtureOutlook(1, []fixture{
		{TeamH: 1, TeamA: 99, TeamHDifficulty: 3, TeamADifficulty: 3},
	}, map[int]float64{1: 3})
	if !almostEqual(got, 2.9) {
		t.Errorf("outlook = %f, want 2.9 with neutral fallback", got)
	}
}

func TestBuildPlayers(t *testing.T) {
	chance := 75.0
	boot := bootstrapResponse{
		Elements: []element{
			{
				ID: 10, WebName: "Saka", FirstName: "Bukayo", SecondName: "Saka",
				Team: 1, ElementType: 3, NowCost: 85, Status: "a",
				Form: 6.2, PointsPerGame: 5.1, SelectedByPercent: 45.3,
				ICTIndex: 12.4, Minutes: 900,
			},
			{
				ID: 11, WebName: "Raya", SecondName: "Raya",
				Team: 1, ElementType: 1, NowCost: 55, Status: "d",
				ChanceOfPlayingNext: &chance,
			},
		},
		Teams: []team{
			{ID: 1, Name: "Arsenal", StrengthOverallHome: 1400, StrengthOverallAway: 1400},
			{ID: 2, Name: "Luton", StrengthOverallHome: 1100, StrengthOverallAway: 1100},
		},
		ElementTypes: []elementType{
			{ID: 1, SingularNameShort: "GKP"},
			{ID: 3, SingularNameShort: "MID"},
		},
	}
	fixtures := []fixture{
		{TeamH: 1, TeamA: 2, TeamHDifficulty: 2, TeamADifficulty: 4},
	}

	players := buildPlayers(boot, fixtures)
	if len(players) != 2 {
		t.Fatalf("got %d players, want 2", len(players))
	}

	saka := players[0]
	if saka.Price != 8.5 {
		t.Errorf("Price = %f, want 8.5 (now_cost / 10)", saka.Price)
	}
	if saka.Position != models.Midfielder || saka.PositionCode != "MID" {
		t.Errorf("position = %v/%q, want Midfielder/MID", saka.Position, saka.PositionCode)
	}
	if saka.TeamName != "Arsenal" {
		t.Errorf("TeamName = %q, want Arsenal", saka.TeamName)
	}
	if saka.FullName != "Bukayo Saka" {
		t.Errorf("FullName = %q, want %q", saka.FullName, "Bukayo Saka")
	}
	if saka.Availability != models.Available {
		t.Errorf("Availability = %v, want available", saka.Availability)
	}
	// Home vs weakest (strength 1) at FDR 2: 0.6*4 + 0.3*5 + 0.2 = 4.1
	if !almostEqual(saka.FixtureOutlook, 4.1) {
		t.Errorf("FixtureOutlook = %f, want 4.1", saka.FixtureOutlook)
	}

	raya := players[1]
	if raya.Availability != models.Doubtful {
		t.Errorf("Availability = %v, want doubtful", raya.Availability)
	}
	if raya.ChanceOfPlaying == nil || *raya.ChanceOfPlaying != 75.0 {
		t.Errorf("ChanceOfPlaying = %v, want 75", raya.ChanceOfPlaying)
	}
	if raya.FullName != "Raya" {
		t.Errorf("FullName = %q, want bare second name when first is empty", raya.FullName)
	}
	if raya.PositionCode != "GKP" {
		t.Errorf("PositionCode = %q, want upstream short name GKP", raya.PositionCode)
	}
}

func TestBuildPlayers_UnknownElementTypeFallsBack(t *testing.T) {
	boot := bootstrapResponse{
		Elements: []element{
			{ID: 1, WebName: "X", Team: 1, ElementType: 4, Status: "a"},
		},
	}

	players := buildPlayers(boot, nil)
	if players[0].PositionCode != "FWD" {
		t.Errorf("PositionCode = %q, want FWD fallback from the position enum", players[0].PositionCode)
	}
}
