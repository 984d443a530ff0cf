package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/Dosada05/sports-portal/models"
)

var ErrTeamNotFound = errors.New("team not found")

type TeamRepository interface {
	Create(ctx context.Context, exec SQLExecutor, team *models.Team) error
	GetByID(ctx context.Context, id string) (*models.Team, error)
	ListByIDs(ctx context.Context, ids []string) ([]models.Team, error)
	UpdateMembers(ctx context.Context, id string, members []models.TeamMember) error
	UpdateLogoKey(ctx context.Context, id string, logoKey *string) error
	DeleteByIDs(ctx context.Context, exec SQLExecutor, ids []string) error
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

func (r *postgresTeamRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresTeamRepository) Create(ctx context.Context, exec SQLExecutor, team *models.Team) error {
	if team.Members == nil {
		team.Members = []models.TeamMember{}
	}
	query := `
		INSERT INTO teams (id, team_name, members, logo_key)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`
	return r.getExecutor(exec).QueryRowContext(ctx, query,
		team.ID, team.TeamName, jsonColumn{&team.Members}, team.LogoKey,
	).Scan(&team.CreatedAt)
}

func (r *postgresTeamRepository) scanTeam(row interface{ Scan(...interface{}) error }) (*models.Team, error) {
	var t models.Team
	err := row.Scan(&t.ID, &t.TeamName, jsonColumn{&t.Members}, &t.LogoKey, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	if t.Members == nil {
		t.Members = []models.TeamMember{}
	}
	return &t, nil
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, id string) (*models.Team, error) {
	query := `SELECT id, team_name, members, logo_key, created_at FROM teams WHERE id = $1`
	return r.scanTeam(r.db.QueryRowContext(ctx, query, id))
}

// ListByIDs returns the teams in the order of ids; unknown ids are skipped.
func (r *postgresTeamRepository) ListByIDs(ctx context.Context, ids []string) ([]models.Team, error) {
	if len(ids) == 0 {
		return []models.Team{}, nil
	}
	query := `
		SELECT t.id, t.team_name, t.members, t.logo_key, t.created_at
		FROM unnest($1::uuid[]) WITH ORDINALITY AS ids(id, ord)
		JOIN teams t ON t.id = ids.id
		ORDER BY ids.ord`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := make([]models.Team, 0, len(ids))
	for rows.Next() {
		t, errScan := r.scanTeam(rows)
		if errScan != nil {
			return nil, errScan
		}
		teams = append(teams, *t)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return teams, nil
}

func (r *postgresTeamRepository) UpdateMembers(ctx context.Context, id string, members []models.TeamMember) error {
	if members == nil {
		members = []models.TeamMember{}
	}
	result, err := r.db.ExecContext(ctx, `UPDATE teams SET members = $1 WHERE id = $2`, jsonColumn{&members}, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) UpdateLogoKey(ctx context.Context, id string, logoKey *string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE teams SET logo_key = $1 WHERE id = $2`, logoKey, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) DeleteByIDs(ctx context.Context, exec SQLExecutor, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.getExecutor(exec).ExecContext(ctx, `DELETE FROM teams WHERE id = ANY($1::uuid[])`, pq.Array(ids))
	return err
}
