package fixtures

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var start = time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC)

func pairKey(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + "|" + b
}

func TestRoundRobin_SingleLegEvenTeams(t *testing.T) {
	got, err := RoundRobin(Params{Teams: []string{"A", "B", "C", "D"}, StartDate: start})
	require.NoError(t, err)
	require.Len(t, got, 6)

	pairs := map[string]int{}
	perRound := map[int]map[string]bool{}
	for _, f := range got {
		pairs[pairKey(f.Team1, f.Team2)]++
		if perRound[f.Round] == nil {
			perRound[f.Round] = map[string]bool{}
		}
		assert.False(t, perRound[f.Round][f.Team1], "team %s plays twice in round %d", f.Team1, f.Round)
		assert.False(t, perRound[f.Round][f.Team2], "team %s plays twice in round %d", f.Team2, f.Round)
		perRound[f.Round][f.Team1] = true
		perRound[f.Round][f.Team2] = true
		assert.Equal(t, start.AddDate(0, 0, f.Round-1), f.Date)
	}
	assert.Len(t, pairs, 6)
	for k, n := range pairs {
		assert.Equal(t, 1, n, k)
	}
	assert.Len(t, perRound, 3)
}

func TestRoundRobin_OddTeamsSitOut(t *testing.T) {
	got, err := RoundRobin(Params{Teams: []string{"A", "B", "C"}, StartDate: start, DaysBetweenRounds: 7})
	require.NoError(t, err)
	require.Len(t, got, 3)

	rounds := map[int]int{}
	for _, f := range got {
		rounds[f.Round]++
		assert.NotEmpty(t, f.Team1)
		assert.NotEmpty(t, f.Team2)
	}
	assert.Equal(t, map[int]int{1: 1, 2: 1, 3: 1}, rounds)
	assert.Equal(t, start.AddDate(0, 0, 14), got[2].Date)
}

func TestRoundRobin_DoubleLegSwapsSides(t *testing.T) {
	got, err := RoundRobin(Params{Teams: []string{"A", "B", "C", "D"}, Legs: 2, StartDate: start})
	require.NoError(t, err)
	require.Len(t, got, 12)

	directed := map[string]int{}
	for _, f := range got {
		directed[f.Team1+">"+f.Team2]++
	}
	for _, a := range []string{"A", "B", "C", "D"} {
		for _, b := range []string{"A", "B", "C", "D"} {
			if a == b {
				continue
			}
			assert.Equal(t, 1, directed[a+">"+b], "%s hosting %s", a, b)
		}
	}
	assert.Equal(t, 6, got[len(got)-1].Round)
}

func TestRoundRobin_Validation(t *testing.T) {
	_, err := RoundRobin(Params{Teams: []string{"A", " "}})
	assert.ErrorIs(t, err, ErrNotEnoughTeams)

	_, err = RoundRobin(Params{Teams: []string{"A", "a"}})
	assert.ErrorIs(t, err, ErrDuplicateTeam)

	_, err = RoundRobin(Params{Teams: []string{"A", "B"}, Legs: 3})
	assert.ErrorIs(t, err, ErrInvalidLegs)
}
