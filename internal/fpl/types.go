package fpl

// Raw upstream payload shapes for the two endpoints we consume. Only the
// fields the recommender needs are declared; everything else in the payload
// is ignored.

type bootstrapResponse struct {
	Elements     []element     `json:"elements"`
	Teams        []team        `json:"teams"`
	ElementTypes []elementType `json:"element_types"`
}

// element is one player row from bootstrap-static. The FPL API serializes
// most of its numeric stats as quoted strings ("form": "5.2"), so decoding
// goes through the flexible unmarshaler in flex_json.go.
type element struct {
	ID                  int      `json:"id"`
	WebName             string   `json:"web_name"`
	FirstName           string   `json:"first_name"`
	SecondName          string   `json:"second_name"`
	Team                int      `json:"team"`
	ElementType         int      `json:"element_type"`
	NowCost             float64  `json:"now_cost"`
	Status              string   `json:"status"`
	Form                float64  `json:"form"`
	PointsPerGame       float64  `json:"points_per_game"`
	SelectedByPercent   float64  `json:"selected_by_percent"`
	ICTIndex            float64  `json:"ict_index"`
	Minutes             int      `json:"minutes"`
	ChanceOfPlayingNext *float64 `json:"chance_of_playing_next_round"`
	EPNext              *float64 `json:"ep_next"`
}

type team struct {
	ID                  int    `json:"id"`
	Name                string `json:"name"`
	ShortName           string `json:"short_name"`
	StrengthOverallHome int    `json:"strength_overall_home"`
	StrengthOverallAway int    `json:"strength_overall_away"`
}

type elementType struct {
	ID                int    `json:"id"`
	SingularNameShort string `json:"singular_name_short"`
}

// fixture is one row from /fixtures/. Event is null for unscheduled games.
type fixture struct {
	Event           *int `json:"event"`
	TeamH           int  `json:"team_h"`
	TeamA           int  `json:"team_a"`
	TeamHDifficulty int  `json:"team_h_difficulty"`
	TeamADifficulty int  `json:"team_a_difficulty"`
	Finished        bool `json:"finished"`
}
