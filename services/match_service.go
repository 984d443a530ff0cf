package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Dosada05/sports-portal/fixtures"
	"github.com/Dosada05/sports-portal/live"
	"github.com/Dosada05/sports-portal/models"
	"github.com/Dosada05/sports-portal/repositories"
	"github.com/Dosada05/sports-portal/scoring"
)

type MatchService interface {
	CreateMatch(ctx context.Context, principal Principal, input CreateMatchInput) (*models.Match, error)
	CreateLeagueFixtures(ctx context.Context, principal Principal, input LeagueFixturesInput) ([]models.Match, error)
	GetMatch(ctx context.Context, id string) (*models.Match, error)
	ListMatches(ctx context.Context, input ListMatchesInput) ([]models.Match, error)
	ListManagedMatches(ctx context.Context, principal Principal) (map[models.Competition][]models.Match, error)
	UpdateMatchDetails(ctx context.Context, principal Principal, id string, input UpdateMatchDetailsInput) (*models.Match, error)
	DeleteMatch(ctx context.Context, principal Principal, id string) error
	// SettlePastResults stores the derived winner of every past head-to-head
	// match that has none yet and returns how many matches were settled.
	SettlePastResults(ctx context.Context) (int, error)
}

type TeamInput struct {
	TeamName string              `json:"team_name"`
	Members  []models.TeamMember `json:"members"`
}

type CreateMatchInput struct {
	Competition   string                `json:"competition"`
	SportType     string                `json:"sport_type"`
	Gender        string                `json:"gender"`
	EventCategory string                `json:"event_category"`
	Date          string                `json:"date"`
	Time          string                `json:"time"`
	Venue         string                `json:"venue"`
	Description   string                `json:"description"`
	Team1         string                `json:"team1"`
	Team2         string                `json:"team2"`
	Team1Details  *TeamInput            `json:"team1_details"`
	Team2Details  *TeamInput            `json:"team2_details"`
	Participants  []TeamInput           `json:"participants"`
	EventManagers []models.EventManager `json:"event_managers"`
}

type LeagueFixturesInput struct {
	Competition       string                `json:"competition"`
	SportType         string                `json:"sport_type"`
	Gender            string                `json:"gender"`
	EventCategory     string                `json:"event_category"`
	Teams             []string              `json:"teams"`
	StartDate         string                `json:"start_date"`
	Time              string                `json:"time"`
	Venue             string                `json:"venue"`
	DoubleRoundRobin  bool                  `json:"double_round_robin"`
	DaysBetweenRounds int                   `json:"days_between_rounds"`
	EventManagers     []models.EventManager `json:"event_managers"`
}

type ListMatchesInput struct {
	Competition string
	SportType   string
	Genders     []string
	Years       []int
	Search      string
}

// UpdateMatchDetailsInput changes scheduling fields; nil fields are kept.
type UpdateMatchDetailsInput struct {
	Date        *string `json:"date,omitempty"`
	Time        *string `json:"time,omitempty"`
	Venue       *string `json:"venue,omitempty"`
	Description *string `json:"description,omitempty"`
}

type matchService struct {
	matchRepo   repositories.MatchRepository
	teamRepo    repositories.TeamRepository
	txRunner    repositories.TxRunner
	teamService TeamService
	writer      matchWriter
	broadcaster live.Broadcaster
	clock       Clock
	location    *time.Location
	logger      *slog.Logger
}

func NewMatchService(
	matchRepo repositories.MatchRepository,
	teamRepo repositories.TeamRepository,
	txRunner repositories.TxRunner,
	teamService TeamService,
	broadcaster live.Broadcaster,
	clock Clock,
	location *time.Location,
	logger *slog.Logger,
) MatchService {
	if location == nil {
		location = time.UTC
	}
	return &matchService{
		matchRepo:   matchRepo,
		teamRepo:    teamRepo,
		txRunner:    txRunner,
		teamService: teamService,
		writer:      matchWriter{repo: matchRepo, logger: logger},
		broadcaster: broadcaster,
		clock:       clock,
		location:    location,
		logger:      logger,
	}
}

func (s *matchService) CreateMatch(ctx context.Context, principal Principal, input CreateMatchInput) (*models.Match, error) {
	if err := requireAdmin(principal); err != nil {
		return nil, err
	}

	m, teams, err := buildMatch(input)
	if err != nil {
		return nil, err
	}

	err = s.txRunner.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		for i := range teams {
			if err := s.teamRepo.Create(ctx, exec, &teams[i]); err != nil {
				return err
			}
		}
		return s.matchRepo.Create(ctx, exec, m)
	})
	if err != nil {
		return nil, mapRepoError(err)
	}

	s.logger.InfoContext(ctx, "match created",
		slog.String("match_id", m.ID),
		slog.String("competition", string(m.Competition)),
		slog.String("sport", string(m.SportType)),
		slog.String("created_by", principal.Email))
	return m, nil
}

// buildMatch validates input and returns the match together with the team
// documents it owns.
func buildMatch(input CreateMatchInput) (*models.Match, []models.Team, error) {
	v := newValidationError()

	competition, ok := models.ParseCompetition(input.Competition)
	if !ok {
		v.Add("competition", "must be one of IRCC, PHL, BasketBrawl, IYSC, GC")
	}
	sport := models.ParseSportType(input.SportType)
	switch competition {
	case models.CompetitionIRCC:
		sport = models.SportCricket
	case models.CompetitionPHL:
		sport = models.SportHockey
	case models.CompetitionBasketBrawl:
		sport = models.SportBasketball
	}
	if competition == models.CompetitionIYSC && strings.TrimSpace(input.SportType) == "" {
		v.Add("sport_type", "must be provided for IYSC")
	}
	if competition != models.CompetitionGC && strings.TrimSpace(input.Gender) == "" {
		v.Add("gender", "must be provided")
	}
	date, err := parseMatchDate(input.Date)
	if err != nil {
		v.Add("date", "must be a date in YYYY-MM-DD format")
	}
	if strings.TrimSpace(input.Time) == "" {
		v.Add("time", "must be provided")
	}
	if strings.TrimSpace(input.Venue) == "" {
		v.Add("venue", "must be provided")
	}
	managers := normalizeManagers(input.EventManagers)

	m := &models.Match{
		ID:            uuid.NewString(),
		Competition:   competition,
		SportType:     sport,
		Gender:        strings.TrimSpace(input.Gender),
		EventCategory: strings.TrimSpace(input.EventCategory),
		Date:          date,
		Time:          strings.TrimSpace(input.Time),
		Venue:         strings.TrimSpace(input.Venue),
		Description:   strings.TrimSpace(input.Description),
		Score:         models.NewScoreboard(),
		Status:        models.MatchStatusScheduled,
		Commentary:    []models.CommentaryEntry{},
		EventManagers: managers,
	}

	var teams []models.Team
	if competition == models.CompetitionGC {
		for i, p := range input.Participants {
			name := strings.TrimSpace(p.TeamName)
			if name == "" {
				v.Add(fmt.Sprintf("participants[%d].team_name", i), "must be provided")
				continue
			}
			team := newTeam(name, p.Members)
			teams = append(teams, team)
			m.Participants = append(m.Participants, team.ID)
		}
		return m, teams, v.Err()
	}

	m.Team1 = teamName(input.Team1, input.Team1Details)
	m.Team2 = teamName(input.Team2, input.Team2Details)
	if m.Team1 == "" {
		v.Add("team1", "must be provided")
	}
	if m.Team2 == "" {
		v.Add("team2", "must be provided")
	}
	if m.Team1 != "" && strings.EqualFold(m.Team1, m.Team2) {
		v.Add("team2", "must differ from team1")
	}
	if input.Team1Details != nil {
		team := newTeam(m.Team1, input.Team1Details.Members)
		teams = append(teams, team)
		m.Team1ID = &team.ID
	}
	if input.Team2Details != nil {
		team := newTeam(m.Team2, input.Team2Details.Members)
		teams = append(teams, team)
		m.Team2ID = &team.ID
	}
	return m, teams, v.Err()
}

func teamName(name string, details *TeamInput) string {
	name = strings.TrimSpace(name)
	if name == "" && details != nil {
		name = strings.TrimSpace(details.TeamName)
	}
	return name
}

func newTeam(name string, members []models.TeamMember) models.Team {
	if members == nil {
		members = []models.TeamMember{}
	}
	return models.Team{ID: uuid.NewString(), TeamName: name, Members: members}
}

func (s *matchService) CreateLeagueFixtures(ctx context.Context, principal Principal, input LeagueFixturesInput) ([]models.Match, error) {
	if err := requireAdmin(principal); err != nil {
		return nil, err
	}

	competition, ok := models.ParseCompetition(input.Competition)
	if !ok || competition == models.CompetitionGC {
		return nil, fieldError("competition", "must be a head-to-head competition")
	}
	start, err := parseMatchDate(input.StartDate)
	if err != nil {
		return nil, fieldError("start_date", "must be a date in YYYY-MM-DD format")
	}
	legs := 1
	if input.DoubleRoundRobin {
		legs = 2
	}
	schedule, err := fixtures.RoundRobin(fixtures.Params{
		Teams:             input.Teams,
		Legs:              legs,
		StartDate:         start,
		DaysBetweenRounds: input.DaysBetweenRounds,
	})
	if err != nil {
		return nil, fieldError("teams", err.Error())
	}

	matches := make([]models.Match, 0, len(schedule))
	for _, f := range schedule {
		m, _, err := buildMatch(CreateMatchInput{
			Competition:   string(competition),
			SportType:     input.SportType,
			Gender:        input.Gender,
			EventCategory: input.EventCategory,
			Date:          f.Date.Format(dateLayout),
			Time:          input.Time,
			Venue:         input.Venue,
			Description:   fmt.Sprintf("Round %d", f.Round),
			Team1:         f.Team1,
			Team2:         f.Team2,
			EventManagers: input.EventManagers,
		})
		if err != nil {
			return nil, err
		}
		matches = append(matches, *m)
	}

	err = s.txRunner.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		for i := range matches {
			if err := s.matchRepo.Create(ctx, exec, &matches[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, mapRepoError(err)
	}

	s.logger.InfoContext(ctx, "league fixtures created",
		slog.String("competition", string(competition)),
		slog.Int("teams", len(input.Teams)),
		slog.Int("matches", len(matches)))
	return matches, nil
}

func (s *matchService) GetMatch(ctx context.Context, id string) (*models.Match, error) {
	m, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err)
	}

	g, gCtx := errgroup.WithContext(ctx)
	if m.Team1ID != nil {
		g.Go(func() error {
			t, err := s.teamService.GetTeam(gCtx, *m.Team1ID)
			if err != nil {
				return err
			}
			m.Team1Details = t
			return nil
		})
	}
	if m.Team2ID != nil {
		g.Go(func() error {
			t, err := s.teamService.GetTeam(gCtx, *m.Team2ID)
			if err != nil {
				return err
			}
			m.Team2Details = t
			return nil
		})
	}
	if len(m.Participants) > 0 {
		g.Go(func() error {
			teams, err := s.teamService.ListTeams(gCtx, m.Participants)
			if err != nil {
				return err
			}
			m.ParticipantTeams = teams
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		// матч без ростера всё равно отдаём
		s.logger.WarnContext(ctx, "failed to load match teams", slog.String("match_id", id), slog.Any("error", err))
	}
	return m, nil
}

func (s *matchService) ListMatches(ctx context.Context, input ListMatchesInput) ([]models.Match, error) {
	filter := repositories.ListMatchesFilter{
		Genders: input.Genders,
		Years:   input.Years,
		Search:  input.Search,
	}
	if input.Competition != "" {
		c, ok := models.ParseCompetition(input.Competition)
		if !ok {
			return nil, fieldError("competition", "is not a known competition")
		}
		filter.Competition = &c
	}
	if strings.TrimSpace(input.SportType) != "" {
		sport := models.ParseSportType(input.SportType)
		filter.Sport = &sport
	}

	matches, err := s.matchRepo.List(ctx, filter)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return matches, nil
}

func (s *matchService) ListManagedMatches(ctx context.Context, principal Principal) (map[models.Competition][]models.Match, error) {
	if strings.TrimSpace(principal.Email) == "" {
		return nil, ErrAuthenticationRequired
	}
	matches, err := s.matchRepo.List(ctx, repositories.ListMatchesFilter{ManagerEmail: principal.Email})
	if err != nil {
		return nil, mapRepoError(err)
	}

	grouped := make(map[models.Competition][]models.Match)
	for _, c := range models.Competitions() {
		grouped[c] = []models.Match{}
	}
	for _, m := range matches {
		grouped[m.Competition] = append(grouped[m.Competition], m)
	}
	return grouped, nil
}

func (s *matchService) UpdateMatchDetails(ctx context.Context, principal Principal, id string, input UpdateMatchDetailsInput) (*models.Match, error) {
	v := newValidationError()
	var date time.Time
	if input.Date != nil {
		d, err := parseMatchDate(*input.Date)
		if err != nil {
			v.Add("date", "must be a date in YYYY-MM-DD format")
		}
		date = d
	}
	if input.Time != nil && strings.TrimSpace(*input.Time) == "" {
		v.Add("time", "must not be empty")
	}
	if input.Venue != nil && strings.TrimSpace(*input.Venue) == "" {
		v.Add("venue", "must not be empty")
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	return s.writer.mutate(ctx, principal, id, func(m *models.Match) error {
		if input.Date != nil {
			m.Date = date
		}
		if input.Time != nil {
			m.Time = strings.TrimSpace(*input.Time)
		}
		if input.Venue != nil {
			m.Venue = strings.TrimSpace(*input.Venue)
		}
		if input.Description != nil {
			m.Description = strings.TrimSpace(*input.Description)
		}
		return nil
	})
}

func (s *matchService) DeleteMatch(ctx context.Context, principal Principal, id string) error {
	if err := requireAdmin(principal); err != nil {
		return err
	}
	m, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		return mapRepoError(err)
	}

	err = s.txRunner.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		if err := s.matchRepo.Delete(ctx, exec, id); err != nil {
			return err
		}
		return s.teamRepo.DeleteByIDs(ctx, exec, m.TeamIDs())
	})
	if err != nil {
		return mapRepoError(err)
	}
	s.logger.InfoContext(ctx, "match deleted", slog.String("match_id", id), slog.String("deleted_by", principal.Email))
	return nil
}

func (s *matchService) SettlePastResults(ctx context.Context) (int, error) {
	today := startOfDay(s.clock(), s.location)
	matches, err := s.matchRepo.List(ctx, repositories.ListMatchesFilter{Before: &today, Unsettled: true})
	if err != nil {
		return 0, mapRepoError(err)
	}

	settled := 0
	for i := range matches {
		m := &matches[i]
		outcome, ok := scoring.DeriveMatchWinner(m)
		if !ok {
			continue
		}
		m.Winner = outcome.Winner
		if err := s.matchRepo.Update(ctx, m); err != nil {
			if errors.Is(err, repositories.ErrMatchVersionConflict) || errors.Is(err, repositories.ErrMatchNotFound) {
				// кто-то успел изменить матч, заберём на следующем проходе
				continue
			}
			return settled, mapRepoError(err)
		}
		settled++
		emit(ctx, s.broadcaster, s.logger, m.ID, live.EventWinnerUpdate, WinnerUpdate{
			MatchID: m.ID,
			Winner:  m.Winner,
			Status:  m.Status,
		})
	}
	return settled, nil
}
