package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/Dosada05/sports-portal/models"
)

var (
	ErrMatchNotFound        = errors.New("match not found")
	ErrMatchVersionConflict = errors.New("match was modified concurrently")
	ErrMatchTeamInvalid     = errors.New("match team reference is invalid")
)

type ListMatchesFilter struct {
	Competition  *models.Competition
	Sport        *models.SportType
	Genders      []string
	Years        []int
	Search       string
	ManagerEmail string
	// Before keeps matches dated strictly before this day.
	Before *time.Time
	// Unsettled keeps matches with no winner.
	Unsettled bool
}

type MatchRepository interface {
	Create(ctx context.Context, exec SQLExecutor, match *models.Match) error
	GetByID(ctx context.Context, id string) (*models.Match, error)
	List(ctx context.Context, filter ListMatchesFilter) ([]models.Match, error)
	// Update writes every mutable field if the stored version still equals
	// match.Version, then bumps match.Version.
	Update(ctx context.Context, match *models.Match) error
	Delete(ctx context.Context, exec SQLExecutor, id string) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const matchColumns = `
	id, competition, sport_type, gender, event_category, match_date, match_time, venue, description,
	team1, team2, team1_team_id, team2_team_id, participants,
	score, winner, status, commentary, event_managers, version, created_at`

func (r *postgresMatchRepository) Create(ctx context.Context, exec SQLExecutor, m *models.Match) error {
	normalizeMatch(m)
	query := `
		INSERT INTO matches (
			id, competition, sport_type, gender, event_category, match_date, match_time, venue, description,
			team1, team2, team1_team_id, team2_team_id, participants,
			score, winner, status, commentary, event_managers, version
		) VALUES ($1, $2, $3, $4, $5, $6::date, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		RETURNING created_at`

	err := r.getExecutor(exec).QueryRowContext(ctx, query,
		m.ID, m.Competition, m.SportType, m.Gender, m.EventCategory, calendarDay(m.Date), m.Time, m.Venue, m.Description,
		m.Team1, m.Team2, m.Team1ID, m.Team2ID, pq.Array(m.Participants),
		jsonColumn{&m.Score}, nullableString(m.Winner), m.Status,
		jsonColumn{&m.Commentary}, jsonColumn{&m.EventManagers}, m.Version,
	).Scan(&m.CreatedAt)

	return r.handleMatchError(err)
}

func (r *postgresMatchRepository) scanMatch(row interface{ Scan(...interface{}) error }) (*models.Match, error) {
	var m models.Match
	var winner sql.NullString
	err := row.Scan(
		&m.ID, &m.Competition, &m.SportType, &m.Gender, &m.EventCategory, &m.Date, &m.Time, &m.Venue, &m.Description,
		&m.Team1, &m.Team2, &m.Team1ID, &m.Team2ID, pq.Array(&m.Participants),
		jsonColumn{&m.Score}, &winner, &m.Status, jsonColumn{&m.Commentary}, jsonColumn{&m.EventManagers},
		&m.Version, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	m.Winner = winner.String
	normalizeMatch(&m)
	return &m, nil
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, id string) (*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`
	return r.scanMatch(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresMatchRepository) List(ctx context.Context, filter ListMatchesFilter) ([]models.Match, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + matchColumns + ` FROM matches WHERE 1=1`)

	args := []interface{}{}
	placeholder := func(v interface{}) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if filter.Competition != nil {
		queryBuilder.WriteString(" AND competition = " + placeholder(*filter.Competition))
	}
	if filter.Sport != nil {
		queryBuilder.WriteString(" AND sport_type = " + placeholder(*filter.Sport))
	}
	if len(filter.Genders) > 0 {
		lowered := make([]string, len(filter.Genders))
		for i, g := range filter.Genders {
			lowered[i] = strings.ToLower(strings.TrimSpace(g))
		}
		queryBuilder.WriteString(" AND lower(gender) = ANY(" + placeholder(pq.Array(lowered)) + ")")
	}
	if len(filter.Years) > 0 {
		years := make([]int64, len(filter.Years))
		for i, y := range filter.Years {
			years[i] = int64(y)
		}
		queryBuilder.WriteString(" AND EXTRACT(YEAR FROM match_date)::bigint = ANY(" + placeholder(pq.Array(years)) + ")")
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		p := placeholder("%" + s + "%")
		queryBuilder.WriteString(fmt.Sprintf(
			" AND (team1 ILIKE %[1]s OR team2 ILIKE %[1]s OR venue ILIKE %[1]s OR description ILIKE %[1]s OR sport_type ILIKE %[1]s OR gender ILIKE %[1]s)", p))
	}
	if filter.ManagerEmail != "" {
		queryBuilder.WriteString(` AND EXISTS (
			SELECT 1 FROM jsonb_array_elements(event_managers) em
			WHERE lower(em->>'email') = lower(` + placeholder(strings.TrimSpace(filter.ManagerEmail)) + `))`)
	}
	if filter.Before != nil {
		queryBuilder.WriteString(" AND match_date < " + placeholder(calendarDay(*filter.Before)) + "::date")
	}
	if filter.Unsettled {
		queryBuilder.WriteString(" AND (winner IS NULL OR winner = '')")
	}

	queryBuilder.WriteString(" ORDER BY match_date DESC, match_time DESC, id ASC")

	rows, err := r.db.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := make([]models.Match, 0)
	for rows.Next() {
		m, errScan := r.scanMatch(rows)
		if errScan != nil {
			return nil, errScan
		}
		matches = append(matches, *m)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return matches, nil
}

func (r *postgresMatchRepository) Update(ctx context.Context, m *models.Match) error {
	normalizeMatch(m)
	query := `
		UPDATE matches SET
			match_date = $1::date, match_time = $2, venue = $3, description = $4,
			score = $5, winner = $6, status = $7, commentary = $8,
			version = version + 1
		WHERE id = $9 AND version = $10
		RETURNING version`

	var newVersion int
	err := r.db.QueryRowContext(ctx, query,
		calendarDay(m.Date), m.Time, m.Venue, m.Description,
		jsonColumn{&m.Score}, nullableString(m.Winner), m.Status, jsonColumn{&m.Commentary},
		m.ID, m.Version,
	).Scan(&newVersion)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return r.missingOrConflict(ctx, m.ID)
		}
		return err
	}
	m.Version = newVersion
	return nil
}

// missingOrConflict tells a deleted match apart from a stale version.
func (r *postgresMatchRepository) missingOrConflict(ctx context.Context, id string) error {
	var exists bool
	if err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM matches WHERE id = $1)`, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return ErrMatchNotFound
	}
	return ErrMatchVersionConflict
}

func (r *postgresMatchRepository) Delete(ctx context.Context, exec SQLExecutor, id string) error {
	result, err := r.getExecutor(exec).ExecContext(ctx, `DELETE FROM matches WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) handleMatchError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23503" { // foreign_key_violation
		switch pqErr.Constraint {
		case "matches_team1_team_id_fkey", "matches_team2_team_id_fkey":
			return ErrMatchTeamInvalid
		}
	}
	return err
}

// normalizeMatch keeps list fields as empty arrays rather than JSON null.
func normalizeMatch(m *models.Match) {
	if m.Commentary == nil {
		m.Commentary = []models.CommentaryEntry{}
	}
	if m.EventManagers == nil {
		m.EventManagers = []models.EventManager{}
	}
	if m.Participants == nil {
		m.Participants = []string{}
	}
	for _, s := range []*models.TeamScore{&m.Score.Team1, &m.Score.Team2} {
		if s.Rounds == nil {
			s.Rounds = []models.RoundScore{}
		}
		if s.RoundHistory == nil {
			s.RoundHistory = []models.RoundScore{}
		}
	}
	if m.Status == "" {
		m.Status = models.MatchStatusScheduled
	}
}
