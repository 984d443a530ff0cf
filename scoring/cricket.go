package scoring

import "github.com/Dosada05/sports-portal/models"

type cricketStrategy struct{}

func (cricketStrategy) Family() Family { return FamilyCricket }

func (cricketStrategy) Supports(action Action) bool {
	switch action {
	case ActionRuns, ActionFour, ActionSix, ActionWickets, ActionBall,
		ActionNoBall, ActionWide, ActionOvers, ActionBalls:
		return true
	}
	return false
}

func (c cricketStrategy) Apply(board models.Scoreboard, in Input) (models.Scoreboard, error) {
	if !c.Supports(in.Action) {
		return board, ErrUnsupportedAction
	}
	if !in.Side.Valid() {
		return board, ErrInvalidSide
	}

	out := board.Clone()
	s := out.Side(in.Side)

	switch in.Action {
	case ActionRuns:
		s.Runs = adjust(s.Runs, 1, in.Increment)
	case ActionFour:
		s.Runs = adjust(s.Runs, 4, in.Increment)
	case ActionSix:
		s.Runs = adjust(s.Runs, 6, in.Increment)
	case ActionNoBall, ActionWide:
		// extras: a run without consuming a ball
		s.Runs = adjust(s.Runs, 1, in.Increment)
	case ActionWickets:
		s.Wickets = clamp(adjust(s.Wickets, 1, in.Increment), 0, MaxWickets)
	case ActionBall:
		stepBall(s, in.Increment)
	case ActionOvers:
		s.Overs = adjust(s.Overs, 1, in.Increment)
	case ActionBalls:
		s.Balls = clamp(adjust(s.Balls, 1, in.Increment), 0, BallsPerOver-1)
	}
	return out, nil
}

// stepBall advances or rewinds one legal delivery, rolling balls into overs.
func stepBall(s *models.TeamScore, increment bool) {
	if increment {
		s.Balls++
		if s.Balls >= BallsPerOver {
			s.Overs++
			s.Balls = 0
		}
		return
	}
	switch {
	case s.Balls > 0:
		s.Balls--
	case s.Overs > 0:
		s.Overs--
		s.Balls = BallsPerOver - 1
	}
}
