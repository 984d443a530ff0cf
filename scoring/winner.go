package scoring

import "github.com/Dosada05/sports-portal/models"

type Result int

const (
	ResultDraw Result = iota
	ResultTeam1
	ResultTeam2
)

// Outcome is the derived winner of a head-to-head match.
type Outcome struct {
	Result Result
	Winner string
}

// DeriveWinner compares the current score of both sides. It is a pure
// function of its inputs.
//
// Cricket compares runs, goal sports compare goals, round sports compare the
// number of completed rounds each side won. Round histories are paired by
// index; entries past the shorter history have no opponent and are not
// counted for either side.
func DeriveWinner(family Family, team1, team2 models.TeamScore, team1Name, team2Name string) Outcome {
	var a, b int
	switch family {
	case FamilyCricket:
		a, b = team1.Runs, team2.Runs
	case FamilyGoals:
		a, b = team1.Goals, team2.Goals
	case FamilyRounds:
		a, b = roundsWon(team1.RoundHistory, team2.RoundHistory)
	}

	switch {
	case a > b:
		return Outcome{Result: ResultTeam1, Winner: team1Name}
	case b > a:
		return Outcome{Result: ResultTeam2, Winner: team2Name}
	}
	return Outcome{Result: ResultDraw, Winner: models.WinnerDraw}
}

// DeriveMatchWinner derives the winner for a stored match. ok is false for
// matches without a head-to-head score.
func DeriveMatchWinner(m *models.Match) (Outcome, bool) {
	strategy, ok := StrategyFor(m.Competition, m.SportType)
	if !ok {
		return Outcome{}, false
	}
	return DeriveWinner(strategy.Family(), m.Score.Team1, m.Score.Team2, m.Team1, m.Team2), true
}

func roundsWon(h1, h2 []models.RoundScore) (won1, won2 int) {
	n := min(len(h1), len(h2))
	for i := 0; i < n; i++ {
		switch {
		case h1[i].Score > h2[i].Score:
			won1++
		case h2[i].Score > h1[i].Score:
			won2++
		}
	}
	return won1, won2
}
