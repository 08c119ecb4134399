package game

import (
	"testing"
	"time"
)

var loc = func() *time.Location {
	l, err := time.LoadLocation("America/New_York")
	if err != nil {
		panic(err)
	}
	return l
}()

func gameAt(day, hour int) time.Time {
	return time.Date(2025, time.October, day, hour, 8, 0, 0, loc)
}

func TestNormalize_Defaults(t *testing.T) {
	games := Normalize([]RawGame{
		{Home: "Guardians", Start: gameAt(4, 13)},
	})
	if len(games) != 1 {
		t.Fatalf("expected 1 game, got %d", len(games))
	}

	g := games[0]
	if g.Away != UnknownTeam {
		t.Errorf("expected away team %q, got %q", UnknownTeam, g.Away)
	}
	if g.Venue != "Guardians Stadium" {
		t.Errorf("expected venue derived from home team, got %q", g.Venue)
	}
	if g.Duration != DefaultDuration {
		t.Errorf("expected default duration, got %v", g.Duration)
	}
}

func TestNormalize_VenueFallbackUnknownHome(t *testing.T) {
	// Only when the home team itself is unknown does the venue fall back to
	// the literal TBD placeholder.
	games := Normalize([]RawGame{
		{Away: "Tigers", Start: gameAt(4, 13)},
	})
	if len(games) != 1 {
		t.Fatalf("expected 1 game, got %d", len(games))
	}
	if games[0].Venue != "TBD Stadium" {
		t.Errorf("expected venue %q, got %q", "TBD Stadium", games[0].Venue)
	}
}

func TestNormalize_DropsUnresolved(t *testing.T) {
	games := Normalize([]RawGame{
		{ID: "1", Away: "Tigers", Home: "Guardians"}, // no start
		{ID: "2", Away: "Phillies", Home: "Dodgers", Start: gameAt(4, 16)},
	})
	if len(games) != 1 {
		t.Fatalf("expected 1 game, got %d", len(games))
	}
	if games[0].Identity != "2" {
		t.Errorf("expected surviving game identity 2, got %q", games[0].Identity)
	}
}

func TestNormalize_DedupExplicitID(t *testing.T) {
	games := Normalize([]RawGame{
		{ID: "1", Away: "Tigers", Home: "Guardians", Venue: "Progressive Field", Start: gameAt(4, 13)},
		{ID: "1", Away: "Tigers", Home: "Guardians", Venue: "Somewhere Else", Start: gameAt(4, 13)},
	})
	if len(games) != 1 {
		t.Fatalf("expected 1 game after dedup, got %d", len(games))
	}
	if games[0].Venue != "Progressive Field" {
		t.Errorf("first occurrence should win, got venue %q", games[0].Venue)
	}
}

func TestNormalize_CompositeIdentity(t *testing.T) {
	start := gameAt(4, 13)
	games := Normalize([]RawGame{
		{Away: "Tigers", Home: "Guardians", Start: start},
		{Away: "Tigers", Home: "Guardians", Start: start},
		{Away: "Phillies", Home: "Dodgers", Start: start},
	})
	if len(games) != 2 {
		t.Fatalf("expected 2 games, got %d", len(games))
	}
}

func TestNormalize_SortsByStart(t *testing.T) {
	games := Normalize([]RawGame{
		{ID: "3", Start: gameAt(5, 13)},
		{ID: "1", Start: gameAt(4, 13)},
		{ID: "2", Start: gameAt(4, 16)},
	})
	if len(games) != 3 {
		t.Fatalf("expected 3 games, got %d", len(games))
	}
	for i := 1; i < len(games); i++ {
		if games[i].Start.Before(games[i-1].Start) {
			t.Errorf("games out of order at index %d: %v before %v",
				i, games[i].Start, games[i-1].Start)
		}
	}
	if games[0].Identity != "1" || games[1].Identity != "2" || games[2].Identity != "3" {
		t.Errorf("unexpected order: %s, %s, %s",
			games[0].Identity, games[1].Identity, games[2].Identity)
	}
}

func TestNormalize_StableOnEqualStarts(t *testing.T) {
	start := gameAt(4, 13)
	games := Normalize([]RawGame{
		{ID: "b", Away: "Phillies", Home: "Dodgers", Start: start},
		{ID: "a", Away: "Tigers", Home: "Guardians", Start: start},
	})
	if len(games) != 2 {
		t.Fatalf("expected 2 games, got %d", len(games))
	}
	if games[0].Identity != "b" || games[1].Identity != "a" {
		t.Errorf("equal starts should preserve input order, got %s then %s",
			games[0].Identity, games[1].Identity)
	}
}

func TestGameEnd(t *testing.T) {
	g := Game{Start: gameAt(4, 13), Duration: DefaultDuration}
	want := gameAt(4, 16).Add(30 * time.Minute)
	if !g.End().Equal(want) {
		t.Errorf("End() = %v, want %v", g.End(), want)
	}
}
