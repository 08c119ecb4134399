package calendar

import (
	"strings"
	"testing"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/pfrederiksen/mlb-playoff-calendar/internal/game"
)

var loc = func() *time.Location {
	l, err := time.LoadLocation("America/New_York")
	if err != nil {
		panic(err)
	}
	return l
}()

func buildNow() time.Time {
	return time.Date(2025, time.October, 1, 12, 0, 0, 0, time.UTC)
}

// twoGames is the two-game schedule used across tests: both normalized from
// API-shaped records with explicit identifiers.
func twoGames() []game.Game {
	return game.Normalize([]game.RawGame{
		{
			ID: "1", Away: "Tigers", Home: "Guardians",
			Venue: "Progressive Field", Series: "AL Wild Card", GameNumber: "1",
			Start: time.Date(2025, time.October, 4, 13, 8, 0, 0, loc),
		},
		{
			ID: "2", Away: "Phillies", Home: "Dodgers",
			Venue: "Dodger Stadium", Series: "NL Wild Card", GameNumber: "1",
			Start: time.Date(2025, time.October, 4, 16, 8, 0, 0, loc),
		},
	})
}

func TestGenerate_TwoGames(t *testing.T) {
	ics := Generate(twoGames(), 2025, buildNow())

	requiredFields := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//MLB Playoff Calendar//EN",
		"X-WR-CALNAME:MLB Playoffs 2025",
		"X-WR-TIMEZONE:America/New_York",
		"UID:1-Tigers-Guardians@mlb-playoffs",
		"UID:2-Phillies-Dodgers@mlb-playoffs",
		"SUMMARY:AL Wild Card Game 1: Tigers @ Guardians",
		"LOCATION:Progressive Field",
		"END:VCALENDAR",
	}
	for _, field := range requiredFields {
		if !strings.Contains(ics, field) {
			t.Errorf("ICS missing required field: %s", field)
		}
	}

	if got := strings.Count(ics, "BEGIN:VEVENT"); got != 2 {
		t.Errorf("expected exactly 2 BEGIN:VEVENT, got %d", got)
	}
	if got := strings.Count(ics, "END:VEVENT"); got != 2 {
		t.Errorf("expected exactly 2 END:VEVENT, got %d", got)
	}

	// 13:08 Eastern on Oct 4 is 17:08 UTC.
	if !strings.Contains(ics, "DTSTART:20251004T170800Z") {
		t.Error("first game DTSTART should be 17:08 UTC")
	}
	// End is start plus the default 3h30m duration.
	if !strings.Contains(ics, "DTEND:20251004T203800Z") {
		t.Error("first game DTEND should be 20:38 UTC")
	}

	if !strings.Contains(ics, "\r\n") {
		t.Error("ICS should use \\r\\n line endings")
	}
}

func TestGenerate_Empty(t *testing.T) {
	if ics := Generate(nil, 2025, buildNow()); ics != "" {
		t.Error("empty game list should return empty string")
	}
}

func TestGenerate_SingleDTSTAMP(t *testing.T) {
	ics := Generate(twoGames(), 2025, buildNow())

	want := "DTSTAMP:20251001T120000Z"
	if got := strings.Count(ics, want); got != 2 {
		t.Errorf("expected the run timestamp on both events, found %d of %q", got, want)
	}
	// No event may carry a different timestamp.
	if got := strings.Count(ics, "DTSTAMP:"); got != 2 {
		t.Errorf("expected exactly 2 DTSTAMP lines, got %d", got)
	}
}

func TestGenerate_SummaryFallbacks(t *testing.T) {
	tests := []struct {
		name string
		g    game.Game
		want string
	}{
		{
			name: "series and game number",
			g: game.Game{
				Identity: "1", Away: "Tigers", Home: "Guardians",
				Venue: "Progressive Field", Series: "ALDS", GameNumber: "2",
				Start: time.Date(2025, time.October, 6, 13, 8, 0, 0, loc),
			},
			want: "SUMMARY:ALDS Game 2: Tigers @ Guardians",
		},
		{
			name: "matchup only",
			g: game.Game{
				Identity: "1", Away: "Tigers", Home: "Guardians",
				Venue: "Progressive Field",
				Start: time.Date(2025, time.October, 6, 13, 8, 0, 0, loc),
			},
			want: "SUMMARY:Tigers @ Guardians",
		},
		{
			name: "both teams unknown",
			g: game.Game{
				Identity: "1", Away: game.UnknownTeam, Home: game.UnknownTeam,
				Venue: "TBD Stadium",
				Start: time.Date(2025, time.October, 6, 13, 8, 0, 0, loc),
			},
			want: "SUMMARY:" + PlaceholderSummary,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ics := Generate([]game.Game{tt.g}, 2025, buildNow())
			if !strings.Contains(ics, tt.want) {
				t.Errorf("ICS missing %q", tt.want)
			}
		})
	}
}

func TestGenerate_StatusInDescription(t *testing.T) {
	g := game.Game{
		Identity: "1", Away: "Tigers", Home: "Guardians",
		Venue: "Progressive Field", Series: "ALDS", Status: "Final",
		Start: time.Date(2025, time.October, 6, 13, 8, 0, 0, loc),
	}
	ics := Generate([]game.Game{g}, 2025, buildNow())

	if !strings.Contains(ics, "DESCRIPTION:ALDS\\nTigers at Guardians\\nStatus: Final") {
		t.Error("description should carry series, matchup, and status line")
	}
}

func TestFormatICSTime(t *testing.T) {
	testTime := time.Date(2025, time.October, 4, 17, 8, 0, 0, time.UTC)
	if got := formatICSTime(testTime); got != "20251004T170800Z" {
		t.Errorf("formatICSTime() = %q, want %q", got, "20251004T170800Z")
	}

	// Non-UTC inputs are converted, not relabeled.
	et := time.Date(2025, time.October, 4, 13, 8, 0, 0, loc)
	if got := formatICSTime(et); got != "20251004T170800Z" {
		t.Errorf("formatICSTime(Eastern) = %q, want %q", got, "20251004T170800Z")
	}
}

func TestEscapeICS(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Simple text", "Simple text"},
		{"Text with, comma", "Text with\\, comma"},
		{"Text with; semicolon", "Text with\\; semicolon"},
		{"Text with\\backslash", "Text with\\\\backslash"},
		{"Text with\nnewline", "Text with\\nnewline"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := escapeICS(tt.input); got != tt.expected {
				t.Errorf("escapeICS(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

// TestGenerate_RoundTrip parses the generated document with a real iCalendar
// library to make sure calendar apps will accept it.
func TestGenerate_RoundTrip(t *testing.T) {
	ics := Generate(twoGames(), 2025, buildNow())

	cal, err := ical.ParseCalendar(strings.NewReader(ics))
	if err != nil {
		t.Fatalf("generated ICS does not parse: %v", err)
	}

	events := cal.Events()
	if len(events) != 2 {
		t.Fatalf("expected 2 parsed events, got %d", len(events))
	}

	first := events[0]
	uid := first.GetProperty(ical.ComponentPropertyUniqueId)
	if uid == nil || uid.Value != "1-Tigers-Guardians@mlb-playoffs" {
		t.Errorf("unexpected parsed UID: %+v", uid)
	}

	start, err := first.GetStartAt()
	if err != nil {
		t.Fatalf("parsing DTSTART back: %v", err)
	}
	wantStart := time.Date(2025, time.October, 4, 17, 8, 0, 0, time.UTC)
	if !start.Equal(wantStart) {
		t.Errorf("parsed DTSTART = %v, want %v", start, wantStart)
	}

	venue := first.GetProperty(ical.ComponentPropertyLocation)
	if venue == nil || venue.Value != "Progressive Field" {
		t.Errorf("unexpected parsed LOCATION: %+v", venue)
	}
}
