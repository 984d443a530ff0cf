// Package fixtures builds league schedules for head-to-head competitions.
package fixtures

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

var (
	ErrNotEnoughTeams = errors.New("at least two teams are required")
	ErrDuplicateTeam  = errors.New("team names must be unique")
	ErrInvalidLegs    = errors.New("legs must be 1 or 2")
)

// Fixture is one scheduled pairing. Round is 1-based; every team plays at
// most once per round.
type Fixture struct {
	Round        int
	OrderInRound int
	Team1        string
	Team2        string
	Date         time.Time
}

type Params struct {
	Teams []string
	// Legs is 1 for a single round robin, 2 for home and away.
	Legs      int
	StartDate time.Time
	// DaysBetweenRounds defaults to 1.
	DaysBetweenRounds int
}

// RoundRobin pairs every team with every other team Legs times using the
// circle method. With an odd number of teams one team sits out each round.
// The second leg repeats the first with sides swapped.
func RoundRobin(params Params) ([]Fixture, error) {
	teams := make([]string, 0, len(params.Teams))
	seen := make(map[string]bool, len(params.Teams))
	for _, t := range params.Teams {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		key := strings.ToLower(t)
		if seen[key] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateTeam, t)
		}
		seen[key] = true
		teams = append(teams, t)
	}
	if len(teams) < 2 {
		return nil, fmt.Errorf("%w (found %d)", ErrNotEnoughTeams, len(teams))
	}

	legs := params.Legs
	if legs == 0 {
		legs = 1
	}
	if legs != 1 && legs != 2 {
		return nil, ErrInvalidLegs
	}
	gap := params.DaysBetweenRounds
	if gap <= 0 {
		gap = 1
	}

	// "" - пропуск тура для нечётного числа команд
	slots := append([]string(nil), teams...)
	if len(slots)%2 == 1 {
		slots = append(slots, "")
	}
	n := len(slots)
	roundsPerLeg := n - 1

	fixtures := make([]Fixture, 0, legs*len(teams)*(len(teams)-1)/2)
	for leg := 0; leg < legs; leg++ {
		rotation := append([]string(nil), slots...)
		for r := 0; r < roundsPerLeg; r++ {
			round := leg*roundsPerLeg + r + 1
			date := params.StartDate.AddDate(0, 0, (round-1)*gap)
			order := 0
			for i := 0; i < n/2; i++ {
				home, away := rotation[i], rotation[n-1-i]
				if home == "" || away == "" {
					continue
				}
				// alternate the fixed slot's side so it is not always at home
				if i == 0 && r%2 == 1 {
					home, away = away, home
				}
				if leg == 1 {
					home, away = away, home
				}
				order++
				fixtures = append(fixtures, Fixture{
					Round:        round,
					OrderInRound: order,
					Team1:        home,
					Team2:        away,
					Date:         date,
				})
			}
			rotate(rotation)
		}
	}

	sort.SliceStable(fixtures, func(i, j int) bool {
		if fixtures[i].Round != fixtures[j].Round {
			return fixtures[i].Round < fixtures[j].Round
		}
		return fixtures[i].OrderInRound < fixtures[j].OrderInRound
	})
	return fixtures, nil
}

// rotate keeps the first slot fixed and moves the others one step clockwise.
func rotate(slots []string) {
	if len(slots) < 3 {
		return
	}
	last := slots[len(slots)-1]
	copy(slots[2:], slots[1:len(slots)-1])
	slots[1] = last
}
