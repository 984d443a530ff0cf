package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Dosada05/sports-portal/models"
)

func TestDeriveWinner_Cricket(t *testing.T) {
	t1 := models.TeamScore{Runs: 120}
	t2 := models.TeamScore{Runs: 95}

	out := DeriveWinner(FamilyCricket, t1, t2, "Alpha", "Bravo")
	assert.Equal(t, ResultTeam1, out.Result)
	assert.Equal(t, "Alpha", out.Winner)

	// same inputs, same answer
	assert.Equal(t, out, DeriveWinner(FamilyCricket, t1, t2, "Alpha", "Bravo"))

	out = DeriveWinner(FamilyCricket, t2, t1, "Alpha", "Bravo")
	assert.Equal(t, "Bravo", out.Winner)

	out = DeriveWinner(FamilyCricket, models.TeamScore{Runs: 80}, models.TeamScore{Runs: 80}, "Alpha", "Bravo")
	assert.Equal(t, ResultDraw, out.Result)
	assert.Equal(t, models.WinnerDraw, out.Winner)
}

func TestDeriveWinner_GoalsIgnoresRuns(t *testing.T) {
	out := DeriveWinner(FamilyGoals, models.TeamScore{Goals: 1, Runs: 10}, models.TeamScore{Goals: 3}, "A", "B")
	assert.Equal(t, "B", out.Winner)
}

func TestDeriveWinner_Rounds(t *testing.T) {
	t1 := models.TeamScore{RoundHistory: []models.RoundScore{{RoundNumber: 1, Score: 25}, {RoundNumber: 2, Score: 18}}}
	t2 := models.TeamScore{RoundHistory: []models.RoundScore{{RoundNumber: 1, Score: 18}, {RoundNumber: 2, Score: 25}}}

	out := DeriveWinner(FamilyRounds, t1, t2, "A", "B")
	assert.Equal(t, models.WinnerDraw, out.Winner, "one round each")

	t1.RoundHistory = append(t1.RoundHistory, models.RoundScore{RoundNumber: 3, Score: 25})
	t2.RoundHistory = append(t2.RoundHistory, models.RoundScore{RoundNumber: 3, Score: 20})
	out = DeriveWinner(FamilyRounds, t1, t2, "A", "B")
	assert.Equal(t, ResultTeam1, out.Result)
	assert.Equal(t, "A", out.Winner)
}

func TestDeriveWinner_RoundsTiedRoundCountsForNobody(t *testing.T) {
	t1 := models.TeamScore{RoundHistory: []models.RoundScore{{RoundNumber: 1, Score: 20}, {RoundNumber: 2, Score: 21}}}
	t2 := models.TeamScore{RoundHistory: []models.RoundScore{{RoundNumber: 1, Score: 20}, {RoundNumber: 2, Score: 19}}}
	out := DeriveWinner(FamilyRounds, t1, t2, "A", "B")
	assert.Equal(t, "A", out.Winner)
}

func TestDeriveWinner_RoundsUnevenHistory(t *testing.T) {
	t1 := models.TeamScore{RoundHistory: []models.RoundScore{{RoundNumber: 1, Score: 10}, {RoundNumber: 2, Score: 30}, {RoundNumber: 3, Score: 30}}}
	t2 := models.TeamScore{RoundHistory: []models.RoundScore{{RoundNumber: 1, Score: 20}}}

	assert.NotPanics(t, func() {
		out := DeriveWinner(FamilyRounds, t1, t2, "A", "B")
		assert.Equal(t, "B", out.Winner, "unpaired rounds are ignored")
	})
	assert.NotPanics(t, func() {
		out := DeriveWinner(FamilyRounds, models.TeamScore{}, t1, "A", "B")
		assert.Equal(t, models.WinnerDraw, out.Winner)
	})
}

func TestDeriveMatchWinner(t *testing.T) {
	m := cricketMatch()
	m.Score.Team2.Runs = 6
	out, ok := DeriveMatchWinner(m)
	assert.True(t, ok)
	assert.Equal(t, "Bravo", out.Winner)

	m.Competition = models.CompetitionGC
	_, ok = DeriveMatchWinner(m)
	assert.False(t, ok)
}
