package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/Dosada05/sports-portal/models"
	"github.com/Dosada05/sports-portal/repositories"
	"github.com/Dosada05/sports-portal/storage"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

type fakeMatchRepo struct {
	mu      sync.Mutex
	matches map[string]models.Match
	// conflicts makes the next N updates fail with a version conflict.
	conflicts int
	updates   int
	listErr   error
}

func newFakeMatchRepo(matches ...models.Match) *fakeMatchRepo {
	r := &fakeMatchRepo{matches: make(map[string]models.Match)}
	for _, m := range matches {
		r.matches[m.ID] = cloneMatch(m)
	}
	return r
}

func cloneMatch(m models.Match) models.Match {
	m.Score = m.Score.Clone()
	m.Commentary = append([]models.CommentaryEntry(nil), m.Commentary...)
	m.EventManagers = append([]models.EventManager(nil), m.EventManagers...)
	m.Participants = append([]string(nil), m.Participants...)
	return m
}

func (r *fakeMatchRepo) Create(_ context.Context, _ repositories.SQLExecutor, m *models.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.matches[m.ID]; ok {
		return fmt.Errorf("duplicate match id %s", m.ID)
	}
	r.matches[m.ID] = cloneMatch(*m)
	return nil
}

func (r *fakeMatchRepo) GetByID(_ context.Context, id string) (*models.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.matches[id]
	if !ok {
		return nil, repositories.ErrMatchNotFound
	}
	out := cloneMatch(m)
	return &out, nil
}

func (r *fakeMatchRepo) List(_ context.Context, f repositories.ListMatchesFilter) ([]models.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := []models.Match{}
	for _, m := range r.matches {
		if f.Competition != nil && m.Competition != *f.Competition {
			continue
		}
		if f.Sport != nil && m.SportType != *f.Sport {
			continue
		}
		if len(f.Years) > 0 && !containsInt(f.Years, m.Date.Year()) {
			continue
		}
		if f.ManagerEmail != "" && !m.HasManager(f.ManagerEmail) {
			continue
		}
		if f.Before != nil && !m.Date.Before(*f.Before) {
			continue
		}
		if f.Unsettled && m.Winner != "" {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(m.Team1+" "+m.Team2+" "+m.Venue), strings.ToLower(f.Search)) {
			continue
		}
		out = append(out, cloneMatch(m))
	}
	return out, nil
}

func containsInt(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}

func (r *fakeMatchRepo) Update(_ context.Context, m *models.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.matches[m.ID]
	if !ok {
		return repositories.ErrMatchNotFound
	}
	if r.conflicts > 0 {
		r.conflicts--
		return repositories.ErrMatchVersionConflict
	}
	if stored.Version != m.Version {
		return repositories.ErrMatchVersionConflict
	}
	m.Version++
	r.matches[m.ID] = cloneMatch(*m)
	r.updates++
	return nil
}

func (r *fakeMatchRepo) Delete(_ context.Context, _ repositories.SQLExecutor, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.matches[id]; !ok {
		return repositories.ErrMatchNotFound
	}
	delete(r.matches, id)
	return nil
}

func (r *fakeMatchRepo) stored(id string) models.Match {
	r.mu.Lock()
	defer r.mu.Unlock()
	return cloneMatch(r.matches[id])
}

type fakeTeamRepo struct {
	mu    sync.Mutex
	teams map[string]models.Team
}

func newFakeTeamRepo(teams ...models.Team) *fakeTeamRepo {
	r := &fakeTeamRepo{teams: make(map[string]models.Team)}
	for _, t := range teams {
		r.teams[t.ID] = t
	}
	return r
}

func (r *fakeTeamRepo) Create(_ context.Context, _ repositories.SQLExecutor, t *models.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.teams[t.ID] = *t
	return nil
}

func (r *fakeTeamRepo) GetByID(_ context.Context, id string) (*models.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.teams[id]
	if !ok {
		return nil, repositories.ErrTeamNotFound
	}
	return &t, nil
}

func (r *fakeTeamRepo) ListByIDs(_ context.Context, ids []string) ([]models.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Team{}
	for _, id := range ids {
		if t, ok := r.teams[id]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTeamRepo) UpdateMembers(_ context.Context, id string, members []models.TeamMember) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.teams[id]
	if !ok {
		return repositories.ErrTeamNotFound
	}
	t.Members = members
	r.teams[id] = t
	return nil
}

func (r *fakeTeamRepo) UpdateLogoKey(_ context.Context, id string, key *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.teams[id]
	if !ok {
		return repositories.ErrTeamNotFound
	}
	t.LogoKey = key
	r.teams[id] = t
	return nil
}

func (r *fakeTeamRepo) DeleteByIDs(_ context.Context, _ repositories.SQLExecutor, ids []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range ids {
		delete(r.teams, id)
	}
	return nil
}

type fakeTxRunner struct{}

func (fakeTxRunner) WithinTx(_ context.Context, fn func(exec repositories.SQLExecutor) error) error {
	return fn(nil)
}

type emitted struct {
	MatchID string
	Event   string
	Payload interface{}
}

type recordingBroadcaster struct {
	mu     sync.Mutex
	events []emitted
	err    error
}

func (b *recordingBroadcaster) Emit(_ context.Context, matchID, event string, payload interface{}) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, emitted{MatchID: matchID, Event: event, Payload: payload})
	return b.err
}

func (b *recordingBroadcaster) all() []emitted {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]emitted(nil), b.events...)
}

type fakeUploader struct {
	mu      sync.Mutex
	objects map[string]string
	deleted []string
	failOn  string
}

func newFakeUploader() *fakeUploader {
	return &fakeUploader{objects: make(map[string]string)}
}

func (u *fakeUploader) Upload(_ context.Context, key, contentType string, reader io.Reader) (*storage.StoredObject, error) {
	if u.failOn != "" && strings.Contains(key, u.failOn) {
		return nil, errors.New("upload refused")
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	u.objects[key] = string(data)
	return &storage.StoredObject{Key: key, URL: u.GetPublicURL(key)}, nil
}

func (u *fakeUploader) Delete(_ context.Context, key string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	delete(u.objects, key)
	u.deleted = append(u.deleted, key)
	return nil
}

func (u *fakeUploader) GetPublicURL(key string) string {
	return storage.PublicURL("https://cdn.example.test", key)
}
