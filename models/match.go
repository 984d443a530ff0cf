package models

import (
	"strings"
	"time"
)

// Competition - тег турнира, к которому относится матч.
type Competition string

const (
	CompetitionIRCC        Competition = "IRCC"
	CompetitionPHL         Competition = "PHL"
	CompetitionBasketBrawl Competition = "BasketBrawl"
	CompetitionIYSC        Competition = "IYSC"
	CompetitionGC          Competition = "GC"
)

var competitions = []Competition{
	CompetitionIRCC,
	CompetitionPHL,
	CompetitionBasketBrawl,
	CompetitionIYSC,
	CompetitionGC,
}

// ParseCompetition matches a competition tag case-insensitively.
func ParseCompetition(s string) (Competition, bool) {
	s = strings.TrimSpace(s)
	for _, c := range competitions {
		if strings.EqualFold(s, string(c)) {
			return c, true
		}
	}
	return "", false
}

// Competitions returns all known competitions in display order.
func Competitions() []Competition {
	out := make([]Competition, len(competitions))
	copy(out, competitions)
	return out
}

type MatchStatus string

const (
	MatchStatusScheduled MatchStatus = "scheduled"
	MatchStatusLive      MatchStatus = "live"
	MatchStatusFinal     MatchStatus = "final"
)

func (s MatchStatus) Valid() bool {
	switch s {
	case MatchStatusScheduled, MatchStatusLive, MatchStatusFinal:
		return true
	}
	return false
}

// WinnerDraw is stored in Match.Winner when the score is level.
const WinnerDraw = "Draw"

type Side string

const (
	SideTeam1 Side = "team1"
	SideTeam2 Side = "team2"
)

func (s Side) Valid() bool {
	return s == SideTeam1 || s == SideTeam2
}

type CommentaryEntry struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

type EventManager struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Match struct {
	ID            string      `json:"id" db:"id"`
	Competition   Competition `json:"competition" db:"competition"`
	SportType     SportType   `json:"sport_type" db:"sport_type"`
	Gender        string      `json:"gender" db:"gender"`
	EventCategory string      `json:"event_category,omitempty" db:"event_category"`
	Date          time.Time   `json:"date" db:"match_date"`
	Time          string      `json:"time" db:"match_time"`
	Venue         string      `json:"venue" db:"venue"`
	Description   string      `json:"description,omitempty" db:"description"`

	Team1        string   `json:"team1,omitempty" db:"team1"`
	Team2        string   `json:"team2,omitempty" db:"team2"`
	Team1ID      *string  `json:"team1_id,omitempty" db:"team1_team_id"`
	Team2ID      *string  `json:"team2_id,omitempty" db:"team2_team_id"`
	Participants []string `json:"participants,omitempty" db:"participants"`

	Score         Scoreboard        `json:"score" db:"score"`
	Winner        string            `json:"winner,omitempty" db:"winner"`
	Status        MatchStatus       `json:"status" db:"status"`
	Commentary    []CommentaryEntry `json:"commentary" db:"commentary"`
	EventManagers []EventManager    `json:"event_managers" db:"event_managers"`
	Version       int               `json:"version" db:"version"`
	CreatedAt     time.Time         `json:"created_at" db:"created_at"`

	Team1Details     *Team  `json:"team1_details,omitempty" db:"-"`
	Team2Details     *Team  `json:"team2_details,omitempty" db:"-"`
	ParticipantTeams []Team `json:"participant_teams,omitempty" db:"-"`
}

// IsHeadToHead reports whether the match has exactly two scored sides.
func (m *Match) IsHeadToHead() bool {
	return m.Competition != CompetitionGC
}

// TeamName returns the display name of a side.
func (m *Match) TeamName(side Side) string {
	if side == SideTeam2 {
		return m.Team2
	}
	return m.Team1
}

// HasManager reports whether email belongs to one of the match's event managers.
// Comparison is case-insensitive and ignores surrounding whitespace.
func (m *Match) HasManager(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return false
	}
	for _, em := range m.EventManagers {
		if strings.EqualFold(strings.TrimSpace(em.Email), email) {
			return true
		}
	}
	return false
}

// TeamIDs returns every team document owned by the match.
func (m *Match) TeamIDs() []string {
	ids := make([]string, 0, 2+len(m.Participants))
	if m.Team1ID != nil && *m.Team1ID != "" {
		ids = append(ids, *m.Team1ID)
	}
	if m.Team2ID != nil && *m.Team2ID != "" {
		ids = append(ids, *m.Team2ID)
	}
	ids = append(ids, m.Participants...)
	return ids
}
