package services

import (
	"context"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Dosada05/sports-portal/models"
	"github.com/Dosada05/sports-portal/repositories"
	"github.com/Dosada05/sports-portal/scoring"
)

type StandingsService interface {
	GetStandings(ctx context.Context, query StandingsQuery) (*models.Standings, error)
}

type StandingsQuery struct {
	Competition string
	// SportType selects the IYSC sport; other competitions ignore it.
	SportType string
	// Year keeps matches from that year only; zero keeps all.
	Year int
}

type standingsService struct {
	matchRepo repositories.MatchRepository
	clock     Clock
	location  *time.Location
}

func NewStandingsService(matchRepo repositories.MatchRepository, clock Clock, location *time.Location) StandingsService {
	if location == nil {
		location = time.UTC
	}
	return &standingsService{matchRepo: matchRepo, clock: clock, location: location}
}

// GetStandings recomputes the tables from the stored matches on every call.
func (s *standingsService) GetStandings(ctx context.Context, query StandingsQuery) (*models.Standings, error) {
	competition, ok := models.ParseCompetition(query.Competition)
	if !ok {
		return nil, fieldError("competition", "is not a known competition")
	}
	if competition == models.CompetitionGC {
		return nil, fieldError("competition", "GC has no standings table")
	}
	if query.Year < 0 {
		return nil, fieldError("year", "must be a positive year")
	}

	filter := repositories.ListMatchesFilter{Competition: &competition}
	if competition == models.CompetitionIYSC {
		if strings.TrimSpace(query.SportType) == "" {
			return nil, fieldError("sport", "must be provided for IYSC")
		}
		sport := models.ParseSportType(query.SportType)
		filter.Sport = &sport
	}
	if query.Year > 0 {
		filter.Years = []int{query.Year}
	}

	matches, err := s.matchRepo.List(ctx, filter)
	if err != nil {
		return nil, mapRepoError(err)
	}

	opts := scoring.StandingsOptions{Now: s.clock(), Location: s.location, Year: query.Year}
	var standings models.Standings
	g := new(errgroup.Group)
	g.Go(func() error {
		standings.MaleStandings = scoring.ComputeTable(matches, models.GenderMale, opts)
		return nil
	})
	g.Go(func() error {
		standings.FemaleStandings = scoring.ComputeTable(matches, models.GenderFemale, opts)
		return nil
	})
	_ = g.Wait()
	return &standings, nil
}
