package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Dosada05/sports-portal/live"
	"github.com/Dosada05/sports-portal/models"
	"github.com/Dosada05/sports-portal/repositories"
	"github.com/Dosada05/sports-portal/scoring"
)

// ScoreService handles live updates made by event managers while a match is
// being played: score actions, commentary and status changes. Every
// successful change is persisted first and then broadcast.
type ScoreService interface {
	ApplyScoreAction(ctx context.Context, principal Principal, matchID string, input ScoreActionInput) (*models.Match, error)
	AddCommentary(ctx context.Context, principal Principal, matchID string, input CommentaryInput) (*models.CommentaryEntry, error)
	DeleteCommentary(ctx context.Context, principal Principal, matchID, commentaryID string) error
	UpdateStatus(ctx context.Context, principal Principal, matchID string, input UpdateStatusInput) (*models.Match, error)
}

type ScoreActionInput struct {
	Side       models.Side `json:"side"`
	Action     string      `json:"action"`
	Increment  bool        `json:"increment"`
	RoundIndex *int        `json:"round_index,omitempty"`
}

type CommentaryInput struct {
	Text string `json:"text"`
	// Timestamp defaults to the server clock when omitted.
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

type UpdateStatusInput struct {
	Status models.MatchStatus `json:"status"`
	// Winner is only accepted for GC matches; head-to-head winners are derived.
	Winner *string `json:"winner,omitempty"`
}

// ScoreUpdate is the payload of a score-update event.
type ScoreUpdate struct {
	MatchID    string           `json:"match_id"`
	Team1Score models.TeamScore `json:"team1_score"`
	Team2Score models.TeamScore `json:"team2_score"`
	Winner     string           `json:"winner"`
}

const (
	CommentaryAdded   = "add"
	CommentaryDeleted = "delete"
)

// CommentaryUpdate is the payload of a commentary-update event.
type CommentaryUpdate struct {
	MatchID      string                  `json:"match_id"`
	Type         string                  `json:"type"`
	Comment      *models.CommentaryEntry `json:"comment,omitempty"`
	CommentaryID string                  `json:"commentary_id,omitempty"`
}

// WinnerUpdate is the payload of a winner-update event.
type WinnerUpdate struct {
	MatchID string             `json:"match_id"`
	Winner  string             `json:"winner"`
	Status  models.MatchStatus `json:"status"`
}

type scoreService struct {
	writer      matchWriter
	teamRepo    repositories.TeamRepository
	broadcaster live.Broadcaster
	clock       Clock
	logger      *slog.Logger
}

func NewScoreService(
	matchRepo repositories.MatchRepository,
	teamRepo repositories.TeamRepository,
	broadcaster live.Broadcaster,
	clock Clock,
	logger *slog.Logger,
) ScoreService {
	return &scoreService{
		writer:      matchWriter{repo: matchRepo, logger: logger},
		teamRepo:    teamRepo,
		broadcaster: broadcaster,
		clock:       clock,
		logger:      logger,
	}
}

func (s *scoreService) ApplyScoreAction(ctx context.Context, principal Principal, matchID string, input ScoreActionInput) (*models.Match, error) {
	in, err := validateScoreAction(input)
	if err != nil {
		return nil, err
	}

	m, err := s.writer.mutate(ctx, principal, matchID, func(m *models.Match) error {
		if m.Status == models.MatchStatusFinal {
			return ErrMatchFinalized
		}
		board, err := scoring.Apply(m, in)
		if err != nil {
			return mapScoringError(err)
		}
		m.Score = board
		outcome, _ := scoring.DeriveMatchWinner(m)
		m.Winner = outcome.Winner
		if m.Status == models.MatchStatusScheduled {
			m.Status = models.MatchStatusLive
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "score updated",
		slog.String("match_id", m.ID),
		slog.String("action", string(in.Action)),
		slog.String("side", string(in.Side)),
		slog.Bool("increment", in.Increment),
		slog.String("winner", m.Winner))

	emit(ctx, s.broadcaster, s.logger, m.ID, live.EventScoreUpdate, ScoreUpdate{
		MatchID:    m.ID,
		Team1Score: m.Score.Team1,
		Team2Score: m.Score.Team2,
		Winner:     m.Winner,
	})
	return m, nil
}

func validateScoreAction(input ScoreActionInput) (scoring.Input, error) {
	v := newValidationError()
	action := scoring.Action(strings.TrimSpace(input.Action))
	if action == "" {
		v.Add("action", "must be provided")
	}
	// completeRound закрывает раунд для обеих сторон сразу
	if action != scoring.ActionCompleteRound && !input.Side.Valid() {
		v.Add("side", "must be team1 or team2")
	}
	in := scoring.Input{Side: input.Side, Action: action, Increment: input.Increment}
	if action == scoring.ActionRoundScore {
		if input.RoundIndex == nil {
			v.Add("round_index", "must be provided for roundScore")
		} else {
			in.RoundIndex = *input.RoundIndex
		}
	}
	if !in.Side.Valid() {
		in.Side = models.SideTeam1
	}
	return in, v.Err()
}

func mapScoringError(err error) error {
	switch {
	case errors.Is(err, scoring.ErrUnsupportedAction):
		return ErrUnsupportedScoreAction
	case errors.Is(err, scoring.ErrInvalidRoundIndex):
		return fieldError("round_index", "does not refer to a recorded round")
	case errors.Is(err, scoring.ErrInvalidSide):
		return fieldError("side", "must be team1 or team2")
	}
	return err
}

func (s *scoreService) AddCommentary(ctx context.Context, principal Principal, matchID string, input CommentaryInput) (*models.CommentaryEntry, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return nil, fieldError("text", "must be provided")
	}

	ts := s.clock()
	if input.Timestamp != nil && !input.Timestamp.IsZero() {
		ts = *input.Timestamp
	}
	entry := models.CommentaryEntry{
		ID:        uuid.NewString(),
		Text:      text,
		Timestamp: ts.UTC(),
	}
	m, err := s.writer.mutate(ctx, principal, matchID, func(m *models.Match) error {
		// новые записи сверху
		m.Commentary = append([]models.CommentaryEntry{entry}, m.Commentary...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	emit(ctx, s.broadcaster, s.logger, m.ID, live.EventCommentaryUpdate, CommentaryUpdate{
		MatchID: m.ID,
		Type:    CommentaryAdded,
		Comment: &entry,
	})
	return &entry, nil
}

func (s *scoreService) DeleteCommentary(ctx context.Context, principal Principal, matchID, commentaryID string) error {
	m, err := s.writer.mutate(ctx, principal, matchID, func(m *models.Match) error {
		for i, c := range m.Commentary {
			if c.ID == commentaryID {
				m.Commentary = append(m.Commentary[:i:i], m.Commentary[i+1:]...)
				return nil
			}
		}
		return ErrCommentaryNotFound
	})
	if err != nil {
		return err
	}

	emit(ctx, s.broadcaster, s.logger, m.ID, live.EventCommentaryUpdate, CommentaryUpdate{
		MatchID:      m.ID,
		Type:         CommentaryDeleted,
		CommentaryID: commentaryID,
	})
	return nil
}

func (s *scoreService) UpdateStatus(ctx context.Context, principal Principal, matchID string, input UpdateStatusInput) (*models.Match, error) {
	if !input.Status.Valid() {
		return nil, fieldError("status", "must be one of scheduled, live, final")
	}

	m, err := s.writer.mutate(ctx, principal, matchID, func(m *models.Match) error {
		if m.Status == models.MatchStatusFinal && input.Status != models.MatchStatusFinal && !principal.IsAdmin() {
			return fmt.Errorf("%w: only an admin can reopen a final match", ErrUnauthorized)
		}
		if m.IsHeadToHead() {
			if input.Winner != nil {
				return fieldError("winner", "is derived from the score for head-to-head matches")
			}
			outcome, ok := scoring.DeriveMatchWinner(m)
			if ok {
				m.Winner = outcome.Winner
			}
		} else if input.Winner != nil {
			winner, err := s.participantWinner(ctx, m, *input.Winner)
			if err != nil {
				return err
			}
			m.Winner = winner
		}
		m.Status = input.Status
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "match status updated",
		slog.String("match_id", m.ID), slog.String("status", string(m.Status)), slog.String("winner", m.Winner))

	emit(ctx, s.broadcaster, s.logger, m.ID, live.EventWinnerUpdate, WinnerUpdate{
		MatchID: m.ID,
		Winner:  m.Winner,
		Status:  m.Status,
	})
	return m, nil
}

// participantWinner resolves a GC winner to the stored name of one of the
// participating teams. An empty name clears the winner.
func (s *scoreService) participantWinner(ctx context.Context, m *models.Match, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", nil
	}
	teams, err := s.teamRepo.ListByIDs(ctx, m.Participants)
	if err != nil {
		return "", mapRepoError(err)
	}
	for _, t := range teams {
		if strings.EqualFold(t.TeamName, name) {
			return t.TeamName, nil
		}
	}
	return "", fieldError("winner", "must name one of the participating teams")
}
