package scoring

import (
	"sort"
	"strings"
	"time"

	"github.com/Dosada05/sports-portal/models"
)

const (
	PointsWin  = 2
	PointsDraw = 1
)

// StandingsOptions control the temporal classification of matches.
type StandingsOptions struct {
	// Now is the reference instant; "today" is its calendar day in Location.
	Now      time.Time
	Location *time.Location
	// Year keeps only matches dated in that year; zero keeps all.
	Year int
}

type period int

const (
	periodUpcoming period = iota
	periodLive
	periodPast
)

// ComputeStandings builds the male and female tables from raw match
// documents. Matches whose gender normalizes to neither bucket are ignored.
// The result depends only on matches and opts, so repeated calls over the
// same input are identical.
func ComputeStandings(matches []models.Match, opts StandingsOptions) models.Standings {
	return models.Standings{
		MaleStandings:   ComputeTable(matches, models.GenderMale, opts),
		FemaleStandings: ComputeTable(matches, models.GenderFemale, opts),
	}
}

// ComputeTable builds the table for a single gender bucket.
func ComputeTable(matches []models.Match, gender models.Gender, opts StandingsOptions) []models.StandingsRow {
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	now := opts.Now.In(loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	tomorrow := today.AddDate(0, 0, 1)

	rows := make(map[string]*models.StandingsRow)
	selected := make([]*models.Match, 0, len(matches))

	for i := range matches {
		m := &matches[i]
		if !countsTowardsStandings(m, gender, opts.Year) {
			continue
		}
		selected = append(selected, m)
		for _, name := range []string{m.Team1, m.Team2} {
			if _, ok := rows[name]; !ok {
				rows[name] = &models.StandingsRow{TeamName: name}
			}
		}
	}

	for _, m := range selected {
		t1, t2 := rows[m.Team1], rows[m.Team2]
		switch classify(m.Date, today, tomorrow, loc) {
		case periodLive:
			t1.MatchesPlayed++
			t2.MatchesPlayed++
		case periodPast:
			t1.MatchesPlayed++
			t2.MatchesPlayed++
			applyResult(m, t1, t2)
		}
	}

	table := make([]models.StandingsRow, 0, len(rows))
	for _, row := range rows {
		table = append(table, *row)
	}
	sort.Slice(table, func(i, j int) bool {
		if table[i].Points != table[j].Points {
			return table[i].Points > table[j].Points
		}
		if table[i].Wins != table[j].Wins {
			return table[i].Wins > table[j].Wins
		}
		return table[i].TeamName < table[j].TeamName
	})
	return table
}

func countsTowardsStandings(m *models.Match, gender models.Gender, year int) bool {
	if !m.IsHeadToHead() || m.Team1 == "" || m.Team2 == "" || m.Team1 == m.Team2 {
		return false
	}
	if models.NormalizeGender(m.Gender) != gender {
		return false
	}
	if year != 0 && m.Date.Year() != year {
		return false
	}
	return true
}

// classify compares the match calendar day against today. Match dates are
// calendar days; their Y/M/D is read as stored, not converted to loc.
func classify(date, today, tomorrow time.Time, loc *time.Location) period {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	switch {
	case day.Before(today):
		return periodPast
	case day.Before(tomorrow):
		return periodLive
	}
	return periodUpcoming
}

// applyResult credits a completed match. An unset winner counts as a draw;
// a winner naming neither side (a renamed team) only counts as played.
func applyResult(m *models.Match, t1, t2 *models.StandingsRow) {
	switch {
	case m.Winner == "" || strings.EqualFold(m.Winner, models.WinnerDraw):
		t1.Draws++
		t2.Draws++
		t1.Points += PointsDraw
		t2.Points += PointsDraw
	case m.Winner == m.Team1:
		t1.Wins++
		t1.Points += PointsWin
		t2.Losses++
	case m.Winner == m.Team2:
		t2.Wins++
		t2.Points += PointsWin
		t1.Losses++
	}
}
