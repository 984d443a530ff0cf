package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/Dosada05/sports-portal/live"
	"github.com/Dosada05/sports-portal/models"
	"github.com/Dosada05/sports-portal/repositories"
)

// Clock returns the current instant. Tests inject a fixed one.
type Clock func() time.Time

const (
	maxUpdateAttempts = 3
	dateLayout        = "2006-01-02"
)

// matchWriter runs read-modify-write cycles against the match store and
// retries when another writer bumped the version in between.
type matchWriter struct {
	repo   repositories.MatchRepository
	logger *slog.Logger
}

// mutate loads the match, checks the caller may manage it, applies fn and
// persists. fn runs again on a fresh copy after a version conflict.
func (w matchWriter) mutate(ctx context.Context, principal Principal, matchID string, fn func(m *models.Match) error) (*models.Match, error) {
	for attempt := 1; ; attempt++ {
		m, err := w.repo.GetByID(ctx, matchID)
		if err != nil {
			return nil, mapRepoError(err)
		}
		if err := authorizeManager(m, principal); err != nil {
			return nil, err
		}
		if err := fn(m); err != nil {
			return nil, err
		}

		err = w.repo.Update(ctx, m)
		if err == nil {
			return m, nil
		}
		if errors.Is(err, repositories.ErrMatchVersionConflict) && attempt < maxUpdateAttempts {
			w.logger.DebugContext(ctx, "version conflict, retrying match update",
				slog.String("match_id", matchID), slog.Int("attempt", attempt))
			continue
		}
		return nil, mapRepoError(err)
	}
}

func emit(ctx context.Context, b live.Broadcaster, logger *slog.Logger, matchID, event string, payload interface{}) {
	if b == nil {
		return
	}
	if err := b.Emit(ctx, matchID, event, payload); err != nil {
		logger.WarnContext(ctx, "failed to broadcast match event",
			slog.String("match_id", matchID), slog.String("event", event), slog.Any("error", err))
	}
}

// parseMatchDate accepts a plain calendar day or an RFC 3339 timestamp; only
// the calendar day as written is kept.
func parseMatchDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if d, err := time.Parse(dateLayout, s); err == nil {
		return d, nil
	}
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC), nil
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func normalizeManagers(in []models.EventManager) []models.EventManager {
	out := make([]models.EventManager, 0, len(in))
	for _, em := range in {
		email := strings.TrimSpace(em.Email)
		if email == "" {
			continue
		}
		out = append(out, models.EventManager{Name: strings.TrimSpace(em.Name), Email: email})
	}
	return out
}
