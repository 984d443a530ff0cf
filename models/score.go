package models

// RoundScore is the score of one side in one round of a round-based sport.
type RoundScore struct {
	RoundNumber int `json:"roundNumber"`
	Score       int `json:"score"`
}

// TeamScore holds every counter any sport family may use; unused fields stay zero.
type TeamScore struct {
	Runs         int          `json:"runs"`
	Wickets      int          `json:"wickets"`
	Overs        int          `json:"overs"`
	Balls        int          `json:"balls"`
	Goals        int          `json:"goals"`
	Rounds       []RoundScore `json:"rounds"`
	RoundHistory []RoundScore `json:"roundHistory"`
	CurrentRound int          `json:"currentRound"`
}

func (s TeamScore) Clone() TeamScore {
	out := s
	out.Rounds = append([]RoundScore(nil), s.Rounds...)
	out.RoundHistory = append([]RoundScore(nil), s.RoundHistory...)
	return out
}

type Scoreboard struct {
	Team1 TeamScore `json:"team1"`
	Team2 TeamScore `json:"team2"`
}

// NewScoreboard returns the zeroed score every match starts with.
func NewScoreboard() Scoreboard {
	return Scoreboard{
		Team1: TeamScore{Rounds: []RoundScore{}, RoundHistory: []RoundScore{}, CurrentRound: 1},
		Team2: TeamScore{Rounds: []RoundScore{}, RoundHistory: []RoundScore{}, CurrentRound: 1},
	}
}

func (b Scoreboard) Clone() Scoreboard {
	return Scoreboard{Team1: b.Team1.Clone(), Team2: b.Team2.Clone()}
}

// Side returns a pointer to one side's score inside b.
func (b *Scoreboard) Side(side Side) *TeamScore {
	if side == SideTeam2 {
		return &b.Team2
	}
	return &b.Team1
}
