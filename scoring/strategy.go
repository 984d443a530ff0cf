// Package scoring holds the pure match scoring rules: per-sport score
// strategies, winner derivation and standings aggregation. Nothing here
// touches storage or the network.
package scoring

import (
	"errors"

	"github.com/Dosada05/sports-portal/models"
)

var (
	ErrUnsupportedAction = errors.New("score action is not supported for this sport")
	ErrInvalidRoundIndex = errors.New("round index out of range")
	ErrInvalidSide       = errors.New("side must be team1 or team2")
)

type Action string

const (
	// cricket
	ActionRuns    Action = "runs"
	ActionFour    Action = "four"
	ActionSix     Action = "six"
	ActionWickets Action = "wickets"
	ActionBall    Action = "ball"
	ActionNoBall  Action = "nb"
	ActionWide    Action = "wd"
	ActionOvers   Action = "overs"
	ActionBalls   Action = "balls"

	// goal and round sports
	ActionGoals         Action = "goals"
	ActionRoundScore    Action = "roundScore"
	ActionRounds        Action = "rounds"
	ActionCompleteRound Action = "completeRound"
)

// Family groups sports that share a score shape and a winner rule.
type Family string

const (
	FamilyCricket Family = "cricket"
	FamilyGoals   Family = "goals"
	FamilyRounds  Family = "rounds"
)

const (
	MaxWickets   = 10
	BallsPerOver = 6
)

// Input is one atomic scoring action.
type Input struct {
	Side       models.Side
	Action     Action
	Increment  bool
	RoundIndex int
}

// Strategy applies scoring actions for one sport family. Apply never mutates
// the board it is given; it returns an updated copy.
type Strategy interface {
	Family() Family
	Supports(action Action) bool
	Apply(board models.Scoreboard, in Input) (models.Scoreboard, error)
}

var strategies = map[Family]Strategy{
	FamilyCricket: cricketStrategy{},
	FamilyGoals:   goalsStrategy{},
	FamilyRounds:  roundsStrategy{},
}

// StrategyFor resolves the strategy for a match. BasketBrawl and PHL always
// keep a single scalar per side, IRCC is always cricket, GC has no
// head-to-head score at all. IYSC scores every sport other than cricket,
// hockey and football by rounds.
func StrategyFor(competition models.Competition, sport models.SportType) (Strategy, bool) {
	switch competition {
	case models.CompetitionGC:
		return nil, false
	case models.CompetitionIRCC:
		return strategies[FamilyCricket], true
	case models.CompetitionPHL, models.CompetitionBasketBrawl:
		return strategies[FamilyGoals], true
	}

	switch sport {
	case models.SportCricket:
		return strategies[FamilyCricket], true
	case models.SportHockey, models.SportFootball:
		return strategies[FamilyGoals], true
	}
	if competition == models.CompetitionIYSC {
		return strategies[FamilyRounds], true
	}
	return nil, false
}

// Apply resolves the strategy for the match and applies in to its score.
func Apply(m *models.Match, in Input) (models.Scoreboard, error) {
	strategy, ok := StrategyFor(m.Competition, m.SportType)
	if !ok || !strategy.Supports(in.Action) {
		return m.Score, ErrUnsupportedAction
	}
	return strategy.Apply(m.Score, in)
}

// adjust moves v by step in the requested direction, never below zero.
func adjust(v, step int, increment bool) int {
	if increment {
		return v + step
	}
	if v-step < 0 {
		return 0
	}
	return v - step
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
