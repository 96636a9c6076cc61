package models

// SelectionRequest carries the validated inputs for one recommendation run.
// HTTP and CLI both build this after parsing; validation happens before any
// scoring runs.
type SelectionRequest struct {
	Budget      float64          `json:"budget" validate:"gt=0"`
	Need        map[Position]int `json:"need" validate:"required,min=1"`
	Exclude     map[int]struct{} `json:"-"`
	MaxFromTeam int              `json:"max_from_team" validate:"min=1,max=3"`
	TopPerPos   int              `json:"top_per_pos" validate:"min=1,max=100"`
}

// DefaultTopPerPos bounds the per-position candidate slice when the caller
// does not override it.
const DefaultTopPerPos = 30

// MaxFromTeamCap is the league rule: at most 3 players from one club.
const MaxFromTeamCap = 3

// Recommendation is the selector output: picks in selection order plus the
// aggregate spend.
type Recommendation struct {
	Items     []ScoredPlayer `json:"items"`
	TotalCost float64        `json:"total_cost"`
}

// SearchResult is one row of a name lookup.
type SearchResult struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	FullName string  `json:"full_name,omitempty"`
	TeamName string  `json:"team"`
	Position string  `json:"pos"`
	Price    float64 `json:"price"`
}
