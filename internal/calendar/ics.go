package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/pfrederiksen/mlb-playoff-calendar/internal/game"
)

const (
	// ProdID identifies this tool in generated calendars.
	ProdID = "-//MLB Playoff Calendar//EN"

	// UIDDomain tags every event UID.
	UIDDomain = "mlb-playoffs"

	// CalendarDesc is the fixed display description.
	CalendarDesc = "MLB Playoff Schedule - Auto-updated daily from MLB.com"

	// DisplayTimezone is the zone subscribing calendar apps show times in.
	DisplayTimezone = "America/New_York"

	// PlaceholderSummary is used when neither team is known yet.
	PlaceholderSummary = "MLB Playoff Game"
)

// Generate serializes ordered games into an iCalendar document. The DTSTAMP
// for every event is now, captured once by the caller at build start so all
// events in a run carry the same creation timestamp. An empty game list
// returns an empty string; callers write no file in that case.
func Generate(games []game.Game, season int, now time.Time) string {
	if len(games) == 0 {
		return ""
	}

	var ics strings.Builder

	ics.WriteString("BEGIN:VCALENDAR\r\n")
	ics.WriteString("VERSION:2.0\r\n")
	ics.WriteString(fmt.Sprintf("PRODID:%s\r\n", ProdID))
	ics.WriteString("CALSCALE:GREGORIAN\r\n")
	ics.WriteString("METHOD:PUBLISH\r\n")
	ics.WriteString(fmt.Sprintf("X-WR-CALNAME:MLB Playoffs %d\r\n", season))
	ics.WriteString(fmt.Sprintf("X-WR-TIMEZONE:%s\r\n", DisplayTimezone))
	ics.WriteString(fmt.Sprintf("X-WR-CALDESC:%s\r\n", escapeICS(CalendarDesc)))

	stamp := formatICSTime(now.UTC())
	for _, g := range games {
		writeEvent(&ics, g, stamp)
	}

	ics.WriteString("END:VCALENDAR\r\n")

	return ics.String()
}

// writeEvent appends one VEVENT for a game.
func writeEvent(ics *strings.Builder, g game.Game, stamp string) {
	ics.WriteString("BEGIN:VEVENT\r\n")

	uid := fmt.Sprintf("%s-%s-%s@%s", g.Identity, g.Away, g.Home, UIDDomain)
	ics.WriteString(fmt.Sprintf("UID:%s\r\n", uid))
	ics.WriteString(fmt.Sprintf("DTSTAMP:%s\r\n", stamp))
	ics.WriteString(fmt.Sprintf("DTSTART:%s\r\n", formatICSTime(g.Start)))
	ics.WriteString(fmt.Sprintf("DTEND:%s\r\n", formatICSTime(g.End())))
	ics.WriteString(fmt.Sprintf("SUMMARY:%s\r\n", escapeICS(summary(g))))
	ics.WriteString(fmt.Sprintf("DESCRIPTION:%s\r\n", escapeICS(description(g))))
	ics.WriteString(fmt.Sprintf("LOCATION:%s\r\n", escapeICS(g.Venue)))

	ics.WriteString("END:VEVENT\r\n")
}

// summary builds the event title: series and game number when both are
// known, falling back to the bare matchup, or a placeholder when neither
// team has been determined.
func summary(g game.Game) string {
	if g.Away == game.UnknownTeam && g.Home == game.UnknownTeam {
		return PlaceholderSummary
	}
	if g.Series != "" && g.GameNumber != "" {
		return fmt.Sprintf("%s Game %s: %s @ %s", g.Series, g.GameNumber, g.Away, g.Home)
	}
	return fmt.Sprintf("%s @ %s", g.Away, g.Home)
}

// description builds the event body: series context, the matchup, and a
// status line when the source supplied one.
func description(g game.Game) string {
	desc := fmt.Sprintf("%s\n%s at %s", g.Series, g.Away, g.Home)
	if g.Status != "" {
		desc += fmt.Sprintf("\nStatus: %s", g.Status)
	}
	return desc
}

// formatICSTime formats a time.Time as an iCalendar UTC datetime string.
func formatICSTime(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

// escapeICS escapes special characters according to RFC 5545.
func escapeICS(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
