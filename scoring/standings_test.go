package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/sports-portal/models"
)

var refNow = time.Date(2026, time.October, 15, 14, 30, 0, 0, time.UTC)

func day(offset int) time.Time {
	return time.Date(2026, time.October, 15+offset, 0, 0, 0, 0, time.UTC)
}

func match(gender, t1, t2, winner string, date time.Time) models.Match {
	return models.Match{
		Competition: models.CompetitionIRCC,
		SportType:   models.SportCricket,
		Gender:      gender,
		Team1:       t1,
		Team2:       t2,
		Winner:      winner,
		Date:        date,
	}
}

func rowFor(t *testing.T, rows []models.StandingsRow, team string) models.StandingsRow {
	t.Helper()
	for _, r := range rows {
		if r.TeamName == team {
			return r
		}
	}
	require.Failf(t, "team missing", "no row for %q", team)
	return models.StandingsRow{}
}

func opts() StandingsOptions {
	return StandingsOptions{Now: refNow, Location: time.UTC}
}

func TestComputeStandings_PointsRule(t *testing.T) {
	matches := []models.Match{
		match("Male", "A", "B", "A", day(-3)),
		match("male", "B", "C", "Draw", day(-2)),
		match("boys", "A", "C", "", day(-1)),
	}
	st := ComputeStandings(matches, opts())
	require.Len(t, st.MaleStandings, 3)
	assert.Empty(t, st.FemaleStandings)

	a := rowFor(t, st.MaleStandings, "A")
	assert.Equal(t, models.StandingsRow{TeamName: "A", MatchesPlayed: 2, Wins: 1, Draws: 1, Points: 3}, a)

	b := rowFor(t, st.MaleStandings, "B")
	assert.Equal(t, models.StandingsRow{TeamName: "B", MatchesPlayed: 2, Losses: 1, Draws: 1, Points: 1}, b)

	c := rowFor(t, st.MaleStandings, "C")
	assert.Equal(t, models.StandingsRow{TeamName: "C", MatchesPlayed: 2, Draws: 2, Points: 2}, c)

	assert.Equal(t, []string{"A", "C", "B"}, names(st.MaleStandings))
}

func TestComputeStandings_LiveAndUpcoming(t *testing.T) {
	matches := []models.Match{
		match("female", "X", "Y", "X", day(0)),
		match("girls", "X", "Z", "X", day(2)),
	}
	st := ComputeStandings(matches, opts())
	require.Len(t, st.FemaleStandings, 3, "upcoming teams are still seeded")

	x := rowFor(t, st.FemaleStandings, "X")
	assert.Equal(t, 1, x.MatchesPlayed)
	assert.Zero(t, x.Wins)
	assert.Zero(t, x.Points)
	assert.Zero(t, x.Draws)

	z := rowFor(t, st.FemaleStandings, "Z")
	assert.Equal(t, models.StandingsRow{TeamName: "Z"}, z)
}

func TestComputeStandings_GenderAndYearFilter(t *testing.T) {
	matches := []models.Match{
		match("mixed", "A", "B", "A", day(-1)),
		match("F", "C", "D", "C", day(-1)),
		match("M", "E", "F", "E", time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)),
	}
	st := ComputeStandings(matches, opts())
	assert.Equal(t, []string{"E", "F"}, names(st.MaleStandings))
	assert.Equal(t, []string{"C", "D"}, names(st.FemaleStandings))

	o := opts()
	o.Year = 2026
	st = ComputeStandings(matches, o)
	assert.Empty(t, st.MaleStandings)
	assert.Len(t, st.FemaleStandings, 2)
}

func TestComputeStandings_TieBreak(t *testing.T) {
	matches := []models.Match{
		match("male", "Delta", "Echo", "Draw", day(-5)),
		match("male", "Charlie", "Bravo", "Charlie", day(-4)),
		match("male", "Alpha", "Bravo", "Draw", day(-3)),
		match("male", "Alpha", "Echo", "Draw", day(-2)),
	}
	st := ComputeStandings(matches, opts())
	// Alpha 2 draws (2pts, 0w), Charlie 1 win (2pts, 1w), Echo 2 draws (2pts), Bravo 1 draw, Delta 1 draw
	assert.Equal(t, []string{"Charlie", "Alpha", "Echo", "Bravo", "Delta"}, names(st.MaleStandings))
}

func TestComputeStandings_Idempotent(t *testing.T) {
	matches := []models.Match{
		match("male", "A", "B", "A", day(-3)),
		match("male", "C", "D", "Draw", day(-3)),
		match("male", "B", "D", "D", day(-2)),
		match("female", "P", "Q", "Q", day(0)),
	}
	first := ComputeStandings(matches, opts())
	second := ComputeStandings(matches, opts())
	assert.Equal(t, first, second)
}

func TestComputeStandings_UnknownWinnerOnlyCountsPlayed(t *testing.T) {
	matches := []models.Match{match("male", "A", "B", "Renamed FC", day(-1))}
	st := ComputeStandings(matches, opts())
	a := rowFor(t, st.MaleStandings, "A")
	assert.Equal(t, 1, a.MatchesPlayed)
	assert.Zero(t, a.Points)
	assert.Zero(t, a.Losses)
}

func TestComputeStandings_SkipsGCAndSelfMatches(t *testing.T) {
	gc := match("male", "", "", "", day(-1))
	gc.Competition = models.CompetitionGC
	self := match("male", "A", "A", "A", day(-1))
	st := ComputeStandings([]models.Match{gc, self}, opts())
	assert.Empty(t, st.MaleStandings)
}

func TestComputeStandings_TodayInLocation(t *testing.T) {
	// 20:00 UTC on the 15th is already the 16th in Kolkata
	loc := time.FixedZone("IST", 5*3600+1800)
	o := StandingsOptions{Now: time.Date(2026, time.October, 15, 20, 0, 0, 0, time.UTC), Location: loc}
	st := ComputeStandings([]models.Match{match("male", "A", "B", "A", day(0))}, o)
	a := rowFor(t, st.MaleStandings, "A")
	assert.Equal(t, 1, a.Wins, "the 15th is in the past for IST")
}

func names(rows []models.StandingsRow) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.TeamName)
	}
	return out
}
