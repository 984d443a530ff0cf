package live

import (
	"context"
	"log/slog"
)

const (
	EventScoreUpdate      = "score-update"
	EventCommentaryUpdate = "commentary-update"
	EventWinnerUpdate     = "winner-update"
)

// Broadcaster emits an event to every subscriber of a match. Delivery is
// fire-and-forget; implementations must not wait for subscribers.
type Broadcaster interface {
	Emit(ctx context.Context, matchID string, event string, payload interface{}) error
}

// Fanout emits to several broadcasters and swallows their errors.
type Fanout struct {
	targets []Broadcaster
	logger  *slog.Logger
}

func NewFanout(logger *slog.Logger, targets ...Broadcaster) *Fanout {
	nonNil := make([]Broadcaster, 0, len(targets))
	for _, t := range targets {
		if t != nil {
			nonNil = append(nonNil, t)
		}
	}
	return &Fanout{targets: nonNil, logger: logger}
}

func (f *Fanout) Emit(ctx context.Context, matchID string, event string, payload interface{}) error {
	for _, t := range f.targets {
		if err := t.Emit(ctx, matchID, event, payload); err != nil {
			f.logger.Warn("broadcast failed",
				slog.String("match_id", matchID),
				slog.String("event", event),
				slog.Any("error", err))
		}
	}
	return nil
}
