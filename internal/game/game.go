package game

import (
	"fmt"
	"sort"
	"time"
)

const (
	// UnknownTeam is the placeholder for a team not yet determined upstream.
	UnknownTeam = "TBD"

	// DefaultDuration is assumed for every game; sources do not supply an
	// end time.
	DefaultDuration = 3*time.Hour + 30*time.Minute
)

// RawGame is the loosely-structured record produced by a source adapter.
// Fields other than Start are optional; a zero Start means the time could
// not be resolved and the record is dropped during normalization.
type RawGame struct {
	ID         string
	Away       string
	Home       string
	Venue      string
	Series     string
	GameNumber string
	Status     string
	Start      time.Time
	Inferred   bool // matchup was paired positionally, not read from the source
}

// Game is the canonical, deduplicated record consumed by the calendar
// builder. Immutable once created.
type Game struct {
	Identity   string
	Start      time.Time
	Duration   time.Duration
	Away       string
	Home       string
	Venue      string
	Series     string
	GameNumber string
	Status     string
	Inferred   bool
}

// End returns the game's end instant.
func (g Game) End() time.Time {
	return g.Start.Add(g.Duration)
}

// identity derives the dedup key for a raw record: the source identifier
// when one exists, otherwise the start instant plus both team names.
func identity(r RawGame, away, home string) string {
	if r.ID != "" {
		return r.ID
	}
	return fmt.Sprintf("%s-%s-%s", r.Start.Format("200601021504"), away, home)
}

// Normalize converts raw records into ordered canonical games. Records
// without a resolved start are dropped, defaults are applied, duplicates
// (first occurrence wins) are removed, and the result is sorted ascending by
// start time. The sort is stable: records with equal starts keep their input
// order.
func Normalize(raws []RawGame) []Game {
	seen := make(map[string]bool, len(raws))
	games := make([]Game, 0, len(raws))

	for _, r := range raws {
		if r.Start.IsZero() {
			continue
		}

		away := r.Away
		if away == "" {
			away = UnknownTeam
		}
		home := r.Home
		if home == "" {
			home = UnknownTeam
		}
		venue := r.Venue
		if venue == "" {
			venue = fmt.Sprintf("%s Stadium", home)
		}

		id := identity(r, away, home)
		if seen[id] {
			continue
		}
		seen[id] = true

		games = append(games, Game{
			Identity:   id,
			Start:      r.Start,
			Duration:   DefaultDuration,
			Away:       away,
			Home:       home,
			Venue:      venue,
			Series:     r.Series,
			GameNumber: r.GameNumber,
			Status:     r.Status,
			Inferred:   r.Inferred,
		})
	}

	sort.SliceStable(games, func(i, j int) bool {
		return games[i].Start.Before(games[j].Start)
	})

	return games
}
