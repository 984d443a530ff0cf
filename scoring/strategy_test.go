package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/sports-portal/models"
)

func cricketMatch() *models.Match {
	return &models.Match{
		Competition: models.CompetitionIRCC,
		SportType:   models.SportCricket,
		Team1:       "Alpha",
		Team2:       "Bravo",
		Score:       models.NewScoreboard(),
	}
}

func apply(t *testing.T, m *models.Match, side models.Side, action Action, increment bool) {
	t.Helper()
	board, err := Apply(m, Input{Side: side, Action: action, Increment: increment})
	require.NoError(t, err)
	m.Score = board
}

func TestStrategyFor(t *testing.T) {
	tests := []struct {
		competition models.Competition
		sport       models.SportType
		want        Family
		ok          bool
	}{
		{models.CompetitionIRCC, models.SportCricket, FamilyCricket, true},
		{models.CompetitionIRCC, models.SportGeneric, FamilyCricket, true},
		{models.CompetitionPHL, models.SportHockey, FamilyGoals, true},
		{models.CompetitionBasketBrawl, models.SportBasketball, FamilyGoals, true},
		{models.CompetitionIYSC, models.SportFootball, FamilyGoals, true},
		{models.CompetitionIYSC, models.SportCricket, FamilyCricket, true},
		{models.CompetitionIYSC, models.SportVolleyball, FamilyRounds, true},
		{models.CompetitionIYSC, models.SportTableTennis, FamilyRounds, true},
		{models.CompetitionIYSC, models.SportType("badminton"), FamilyRounds, true},
		{models.CompetitionIYSC, models.SportGeneric, FamilyRounds, true},
		{models.Competition("Unknown"), models.SportVolleyball, "", false},
		{models.CompetitionGC, models.SportCricket, "", false},
	}
	for _, tt := range tests {
		t.Run(string(tt.competition)+"/"+string(tt.sport), func(t *testing.T) {
			s, ok := StrategyFor(tt.competition, tt.sport)
			assert.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.want, s.Family())
			}
		})
	}
}

func TestApply_RejectsActionOutsideSport(t *testing.T) {
	m := cricketMatch()
	_, err := Apply(m, Input{Side: models.SideTeam1, Action: ActionGoals, Increment: true})
	assert.ErrorIs(t, err, ErrUnsupportedAction)

	m.Competition = models.CompetitionGC
	_, err = Apply(m, Input{Side: models.SideTeam1, Action: ActionRuns, Increment: true})
	assert.ErrorIs(t, err, ErrUnsupportedAction)
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	m := cricketMatch()
	before := m.Score.Clone()
	_, err := Apply(m, Input{Side: models.SideTeam1, Action: ActionSix, Increment: true})
	require.NoError(t, err)
	assert.Equal(t, before, m.Score)
}

func TestApply_InvalidSide(t *testing.T) {
	m := cricketMatch()
	_, err := Apply(m, Input{Side: "team3", Action: ActionRuns, Increment: true})
	assert.ErrorIs(t, err, ErrInvalidSide)
}

func TestCricket_Runs(t *testing.T) {
	m := cricketMatch()
	apply(t, m, models.SideTeam1, ActionRuns, true)
	apply(t, m, models.SideTeam1, ActionFour, true)
	apply(t, m, models.SideTeam1, ActionSix, true)
	apply(t, m, models.SideTeam1, ActionWide, true)
	apply(t, m, models.SideTeam1, ActionNoBall, true)
	assert.Equal(t, 13, m.Score.Team1.Runs)
	assert.Equal(t, 0, m.Score.Team1.Balls, "extras do not consume a ball")
	assert.Equal(t, 0, m.Score.Team2.Runs)

	apply(t, m, models.SideTeam1, ActionSix, false)
	assert.Equal(t, 7, m.Score.Team1.Runs)
}

func TestCricket_RunDecrementsFloorAtZero(t *testing.T) {
	m := cricketMatch()
	apply(t, m, models.SideTeam2, ActionFour, true)
	apply(t, m, models.SideTeam2, ActionSix, false)
	assert.Equal(t, 0, m.Score.Team2.Runs)
	apply(t, m, models.SideTeam2, ActionRuns, false)
	assert.Equal(t, 0, m.Score.Team2.Runs)
}

func TestCricket_WicketsClamped(t *testing.T) {
	for start := 0; start <= MaxWickets; start++ {
		m := cricketMatch()
		m.Score.Team1.Wickets = start
		for i := 0; i < 15; i++ {
			apply(t, m, models.SideTeam1, ActionWickets, false)
			assert.GreaterOrEqual(t, m.Score.Team1.Wickets, 0)
		}
		assert.Equal(t, 0, m.Score.Team1.Wickets)

		m.Score.Team1.Wickets = start
		for i := 0; i < 15; i++ {
			apply(t, m, models.SideTeam1, ActionWickets, true)
			assert.LessOrEqual(t, m.Score.Team1.Wickets, MaxWickets)
		}
		assert.Equal(t, MaxWickets, m.Score.Team1.Wickets)
	}
}

func TestCricket_BallRollover(t *testing.T) {
	m := cricketMatch()
	m.Score.Team1.Balls = 5
	m.Score.Team1.Overs = 3

	apply(t, m, models.SideTeam1, ActionBall, true)
	assert.Equal(t, 0, m.Score.Team1.Balls)
	assert.Equal(t, 4, m.Score.Team1.Overs)

	apply(t, m, models.SideTeam1, ActionBall, false)
	assert.Equal(t, 5, m.Score.Team1.Balls)
	assert.Equal(t, 3, m.Score.Team1.Overs)
}

func TestCricket_BallDecrementAtZeroIsNoop(t *testing.T) {
	m := cricketMatch()
	apply(t, m, models.SideTeam1, ActionBall, false)
	assert.Equal(t, 0, m.Score.Team1.Balls)
	assert.Equal(t, 0, m.Score.Team1.Overs)
}

func TestCricket_FullOver(t *testing.T) {
	m := cricketMatch()
	for i := 0; i < 13; i++ {
		apply(t, m, models.SideTeam2, ActionBall, true)
	}
	assert.Equal(t, 2, m.Score.Team2.Overs)
	assert.Equal(t, 1, m.Score.Team2.Balls)
}

func TestCricket_DirectOversAndBalls(t *testing.T) {
	m := cricketMatch()
	apply(t, m, models.SideTeam1, ActionOvers, true)
	apply(t, m, models.SideTeam1, ActionOvers, true)
	apply(t, m, models.SideTeam1, ActionOvers, false)
	assert.Equal(t, 1, m.Score.Team1.Overs)

	for i := 0; i < 8; i++ {
		apply(t, m, models.SideTeam1, ActionBalls, true)
	}
	assert.Equal(t, BallsPerOver-1, m.Score.Team1.Balls)
	assert.Equal(t, 1, m.Score.Team1.Overs, "direct ball adjust never rolls over")
}

func TestGoals(t *testing.T) {
	m := &models.Match{
		Competition: models.CompetitionPHL,
		SportType:   models.SportHockey,
		Score:       models.NewScoreboard(),
	}
	apply(t, m, models.SideTeam1, ActionGoals, true)
	apply(t, m, models.SideTeam1, ActionGoals, true)
	apply(t, m, models.SideTeam2, ActionGoals, false)
	assert.Equal(t, 2, m.Score.Team1.Goals)
	assert.Equal(t, 0, m.Score.Team2.Goals)

	_, err := Apply(m, Input{Side: models.SideTeam1, Action: ActionRuns, Increment: true})
	assert.ErrorIs(t, err, ErrUnsupportedAction)
}

func volleyballMatch() *models.Match {
	return &models.Match{
		Competition: models.CompetitionIYSC,
		SportType:   models.SportVolleyball,
		Team1:       "Alpha",
		Team2:       "Bravo",
		Score:       models.NewScoreboard(),
	}
}

func TestRounds_AppendPopAndScore(t *testing.T) {
	m := volleyballMatch()
	apply(t, m, models.SideTeam1, ActionRounds, true)
	apply(t, m, models.SideTeam1, ActionRounds, true)
	require.Len(t, m.Score.Team1.Rounds, 2)
	assert.Equal(t, 2, m.Score.Team1.Rounds[1].RoundNumber)

	board, err := Apply(m, Input{Side: models.SideTeam1, Action: ActionRoundScore, Increment: true, RoundIndex: 1})
	require.NoError(t, err)
	m.Score = board
	assert.Equal(t, 1, m.Score.Team1.Rounds[1].Score)

	board, err = Apply(m, Input{Side: models.SideTeam1, Action: ActionRoundScore, Increment: false, RoundIndex: 0})
	require.NoError(t, err)
	assert.Equal(t, 0, board.Team1.Rounds[0].Score)

	_, err = Apply(m, Input{Side: models.SideTeam1, Action: ActionRoundScore, Increment: true, RoundIndex: 2})
	assert.ErrorIs(t, err, ErrInvalidRoundIndex)
	_, err = Apply(m, Input{Side: models.SideTeam2, Action: ActionRoundScore, Increment: true, RoundIndex: 0})
	assert.ErrorIs(t, err, ErrInvalidRoundIndex)

	apply(t, m, models.SideTeam1, ActionRounds, false)
	apply(t, m, models.SideTeam1, ActionRounds, false)
	apply(t, m, models.SideTeam1, ActionRounds, false)
	assert.Empty(t, m.Score.Team1.Rounds)
}

func TestRounds_CompleteRoundLockstep(t *testing.T) {
	m := volleyballMatch()
	for i := 0; i < 25; i++ {
		apply(t, m, models.SideTeam1, ActionGoals, true)
	}
	for i := 0; i < 18; i++ {
		apply(t, m, models.SideTeam2, ActionGoals, true)
	}
	apply(t, m, models.SideTeam1, ActionCompleteRound, true)

	assert.Equal(t, []models.RoundScore{{RoundNumber: 1, Score: 25}}, m.Score.Team1.RoundHistory)
	assert.Equal(t, []models.RoundScore{{RoundNumber: 1, Score: 18}}, m.Score.Team2.RoundHistory)
	assert.Zero(t, m.Score.Team1.Goals)
	assert.Zero(t, m.Score.Team2.Goals)
	assert.Equal(t, 2, m.Score.Team1.CurrentRound)
	assert.Equal(t, 2, m.Score.Team2.CurrentRound)
}

func TestRounds_ReopenRound(t *testing.T) {
	m := volleyballMatch()
	apply(t, m, models.SideTeam1, ActionGoals, true)
	apply(t, m, "", ActionCompleteRound, true)
	apply(t, m, "", ActionCompleteRound, false)

	assert.Empty(t, m.Score.Team1.RoundHistory)
	assert.Empty(t, m.Score.Team2.RoundHistory)
	assert.Equal(t, 1, m.Score.Team1.Goals)
	assert.Equal(t, 1, m.Score.Team1.CurrentRound)

	apply(t, m, "", ActionCompleteRound, false)
	assert.Equal(t, 1, m.Score.Team1.Goals, "reopening with no history is a no-op")
}
