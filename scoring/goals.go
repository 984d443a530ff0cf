package scoring

import "github.com/Dosada05/sports-portal/models"

// goalsStrategy keeps a single scalar per side (hockey, football, PHL, BasketBrawl).
type goalsStrategy struct{}

func (goalsStrategy) Family() Family { return FamilyGoals }

func (goalsStrategy) Supports(action Action) bool {
	return action == ActionGoals
}

func (g goalsStrategy) Apply(board models.Scoreboard, in Input) (models.Scoreboard, error) {
	if !g.Supports(in.Action) {
		return board, ErrUnsupportedAction
	}
	if !in.Side.Valid() {
		return board, ErrInvalidSide
	}
	out := board.Clone()
	s := out.Side(in.Side)
	s.Goals = adjust(s.Goals, 1, in.Increment)
	return out, nil
}
