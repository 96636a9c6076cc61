package models

// Position is the FPL element type. The numeric codes are fixed by the
// upstream API: 1=GK, 2=DEF, 3=MID, 4=FWD.
type Position int

const (
	Goalkeeper Position = 1
	Defender   Position = 2
	Midfielder Position = 3
	Forward    Position = 4
)

var positionCodes = map[Position]string{
	Goalkeeper: "GK",
	Defender:   "DEF",
	Midfielder: "MID",
	Forward:    "FWD",
}

var positionsByCode = map[string]Position{
	"GK":  Goalkeeper,
	"DEF": Defender,
	"MID": Midfielder,
	"FWD": Forward,
}

// Code returns the short position label (GK/DEF/MID/FWD) or "UNK".
func (p Position) Code() string {
	if code, ok := positionCodes[p]; ok {
		return code
	}
	return "UNK"
}

// Valid reports whether p is one of the four upstream element types.
func (p Position) Valid() bool {
	_, ok := positionCodes[p]
	return ok
}

// PositionFromCode resolves a short label (case-insensitive handled by caller)
// to a Position.
func PositionFromCode(code string) (Position, bool) {
	p, ok := positionsByCode[code]
	return p, ok
}

// AllPositions lists the four positions in upstream code order. The selector
// iterates this to keep position processing deterministic.
var AllPositions = []Position{Goalkeeper, Defender, Midfielder, Forward}

// Availability is the collapsed upstream status flag.
// Upstream uses a/d/i/s/u/n; everything that is not available or doubtful is
// treated as unavailable and filtered before scoring.
type Availability string

const (
	Available   Availability = "available"
	Doubtful    Availability = "doubtful"
	Unavailable Availability = "unavailable"
)

// Player is the normalized record built from the upstream snapshot. All
// numeric fields are defaulted to zero at the ingestion boundary so scoring
// never deals with missing values; truly optional fields are pointers.
type Player struct {
	ID                int          `json:"id"`
	Name              string       `json:"name"`
	FullName          string       `json:"full_name,omitempty"`
	TeamID            int          `json:"team_id"`
	TeamName          string       `json:"team_name"`
	Position          Position     `json:"position_id"`
	PositionCode      string       `json:"pos"`
	Price             float64      `json:"price"`
	Form              float64      `json:"form"`
	PointsPerGame     float64      `json:"points_per_game"`
	ICTIndex          float64      `json:"ict_index"`
	SelectedByPercent float64      `json:"selected_by_percent"`
	Minutes           int          `json:"minutes"`
	Availability      Availability `json:"availability"`
	ChanceOfPlaying   *float64     `json:"chance_of_playing,omitempty"`
	ExpectedPoints    *float64     `json:"expected_points,omitempty"`
	FixtureOutlook    float64      `json:"fixture_outlook"`
}

// ScoredPlayer augments a Player with the computed composite score and the
// value (bargain) metric. Recomputed on every request, never persisted.
type ScoredPlayer struct {
	Player
	Score float64 `json:"score"`
	Value float64 `json:"value"`
}
