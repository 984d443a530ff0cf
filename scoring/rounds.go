package scoring

import "github.com/Dosada05/sports-portal/models"

// roundsStrategy covers set/round sports (basketball, volleyball, tennis,
// table tennis under IYSC). Goals is the running score of the current round,
// RoundHistory holds the snapshots taken by completeRound.
type roundsStrategy struct{}

func (roundsStrategy) Family() Family { return FamilyRounds }

func (roundsStrategy) Supports(action Action) bool {
	switch action {
	case ActionGoals, ActionRoundScore, ActionRounds, ActionCompleteRound:
		return true
	}
	return false
}

func (r roundsStrategy) Apply(board models.Scoreboard, in Input) (models.Scoreboard, error) {
	if !r.Supports(in.Action) {
		return board, ErrUnsupportedAction
	}
	out := board.Clone()

	// completeRound moves both sides in lockstep, the side is irrelevant
	if in.Action == ActionCompleteRound {
		if in.Increment {
			completeRound(&out)
		} else {
			reopenRound(&out)
		}
		return out, nil
	}

	if !in.Side.Valid() {
		return board, ErrInvalidSide
	}
	s := out.Side(in.Side)

	switch in.Action {
	case ActionGoals:
		s.Goals = adjust(s.Goals, 1, in.Increment)
	case ActionRoundScore:
		if in.RoundIndex < 0 || in.RoundIndex >= len(s.Rounds) {
			return board, ErrInvalidRoundIndex
		}
		s.Rounds[in.RoundIndex].Score = adjust(s.Rounds[in.RoundIndex].Score, 1, in.Increment)
	case ActionRounds:
		if in.Increment {
			s.Rounds = append(s.Rounds, models.RoundScore{RoundNumber: len(s.Rounds) + 1})
		} else if len(s.Rounds) > 0 {
			s.Rounds = s.Rounds[:len(s.Rounds)-1]
		}
	}
	return out, nil
}

// currentRound is the round both sides are playing. Sides that drifted apart
// are pulled forward to the later one.
func currentRound(b *models.Scoreboard) int {
	round := max(b.Team1.CurrentRound, b.Team2.CurrentRound)
	if round < 1 {
		round = 1
	}
	return round
}

func completeRound(b *models.Scoreboard) {
	round := currentRound(b)
	for _, s := range []*models.TeamScore{&b.Team1, &b.Team2} {
		s.RoundHistory = append(s.RoundHistory, models.RoundScore{RoundNumber: round, Score: s.Goals})
		s.Goals = 0
		s.CurrentRound = round + 1
	}
}

// reopenRound undoes the last completeRound: the snapshot becomes the running
// score again. A board with no history is left unchanged.
func reopenRound(b *models.Scoreboard) {
	if len(b.Team1.RoundHistory) == 0 && len(b.Team2.RoundHistory) == 0 {
		return
	}
	round := currentRound(b) - 1
	for _, s := range []*models.TeamScore{&b.Team1, &b.Team2} {
		if n := len(s.RoundHistory); n > 0 {
			last := s.RoundHistory[n-1]
			s.RoundHistory = s.RoundHistory[:n-1]
			s.Goals = last.Score
			round = last.RoundNumber
		}
		s.CurrentRound = max(round, 1)
	}
}
