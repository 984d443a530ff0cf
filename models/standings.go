package models

// StandingsRow is computed from match documents on every request and never stored.
type StandingsRow struct {
	TeamName      string `json:"teamName"`
	MatchesPlayed int    `json:"matchesPlayed"`
	Wins          int    `json:"wins"`
	Losses        int    `json:"losses"`
	Draws         int    `json:"draws"`
	Points        int    `json:"points"`
}

type Standings struct {
	MaleStandings   []StandingsRow `json:"maleStandings"`
	FemaleStandings []StandingsRow `json:"femaleStandings"`
}
