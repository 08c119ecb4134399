package gametime

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrUnparseable indicates a date/time fragment that could not be resolved.
// Callers skip the record carrying the fragment and continue.
var ErrUnparseable = errors.New("unparseable time")

// WeekdayWindow bounds the forward search when mapping weekday names to
// calendar dates. 60 days comfortably covers a full postseason.
const WeekdayWindow = 60

var eastern *time.Location

func init() {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		// The zoneinfo database is required for correct output; without it
		// every converted time would be wrong.
		panic(fmt.Sprintf("loading America/New_York: %v", err))
	}
	eastern = loc
}

// Location returns the fixed target zone (US Eastern) all output times are
// expressed in.
func Location() *time.Location {
	return eastern
}

// ParseUTCInstant parses a strict ISO 8601 UTC string like
// "2025-10-14T17:08:00Z" and converts it into the Eastern zone.
func ParseUTCInstant(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02T15:04:05Z", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrUnparseable, s)
	}
	return t.In(eastern), nil
}

// IsTBD reports whether a raw time fragment is a placeholder rather than a
// real time. Records carrying these resolve to "no instant" and are dropped
// silently, not treated as parse failures.
func IsTBD(s string) bool {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TBD", "TBA", "POSTPONED", "PPD", "IF NECESSARY":
		return true
	}
	return false
}

// ParseClock parses a 12-hour clock string like "7:08 PM" into 24-hour
// components. 12 AM maps to hour 0, 12 PM stays 12, other PM hours add 12.
func ParseClock(s string) (hour, min int, err error) {
	fields := strings.Fields(strings.TrimSpace(s))
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("%w: clock %q", ErrUnparseable, s)
	}

	hm := strings.SplitN(fields[0], ":", 2)
	if len(hm) != 2 {
		return 0, 0, fmt.Errorf("%w: clock %q", ErrUnparseable, s)
	}
	hour, err = strconv.Atoi(hm[0])
	if err != nil || hour < 1 || hour > 12 {
		return 0, 0, fmt.Errorf("%w: clock %q", ErrUnparseable, s)
	}
	min, err = strconv.Atoi(hm[1])
	if err != nil || min < 0 || min > 59 {
		return 0, 0, fmt.Errorf("%w: clock %q", ErrUnparseable, s)
	}

	switch strings.ToUpper(fields[1]) {
	case "AM":
		if hour == 12 {
			hour = 0
		}
	case "PM":
		if hour != 12 {
			hour += 12
		}
	default:
		return 0, 0, fmt.Errorf("%w: clock %q", ErrUnparseable, s)
	}

	return hour, min, nil
}

// Resolver maps relative date fragments (weekday names, month/day headers)
// onto concrete Eastern-zone dates, anchored at a fixed reference instant.
type Resolver struct {
	ref      time.Time
	weekdays map[string]time.Time
}

// NewResolver builds a Resolver anchored at ref. The weekday map is filled
// forward-only over the next WeekdayWindow days; the first date matching each
// weekday name wins.
func NewResolver(ref time.Time) *Resolver {
	ref = ref.In(eastern)
	weekdays := make(map[string]time.Time, 7)
	for i := 0; i < WeekdayWindow; i++ {
		d := ref.AddDate(0, 0, i)
		name := strings.ToLower(d.Weekday().String())
		if _, ok := weekdays[name]; !ok {
			weekdays[name] = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, eastern)
		}
	}
	return &Resolver{ref: ref, weekdays: weekdays}
}

// ResolveWeekday turns a weekday name and a 12-hour clock string into an
// Eastern-zone instant on the nearest future occurrence of that weekday.
func (r *Resolver) ResolveWeekday(day, clock string) (time.Time, error) {
	date, ok := r.weekdays[strings.ToLower(strings.TrimSpace(day))]
	if !ok {
		return time.Time{}, fmt.Errorf("%w: weekday %q", ErrUnparseable, day)
	}
	hour, min, err := ParseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), hour, min, 0, 0, eastern), nil
}

// dateHeaderLayouts are tried in order; the first successful parse wins.
// Layouts without a year get one filled in by inferYear.
var dateHeaderLayouts = []struct {
	layout  string
	hasYear bool
}{
	{"Monday, January 2, 2006", true},
	{"January 2, 2006", true},
	{"Monday, January 2", false},
	{"January 2", false},
	{"Jan 2", false},
}

// ResolveDateHeader parses a section date header like "Monday, October 14"
// into a midnight Eastern date, trying several layouts in order.
func (r *Resolver) ResolveDateHeader(text string) (time.Time, error) {
	text = strings.TrimSpace(text)
	for _, l := range dateHeaderLayouts {
		t, err := time.Parse(l.layout, text)
		if err != nil {
			continue
		}
		year := t.Year()
		if !l.hasYear {
			year = r.inferYear(t.Month())
		}
		return time.Date(year, t.Month(), t.Day(), 0, 0, 0, 0, eastern), nil
	}
	return time.Time{}, fmt.Errorf("%w: date header %q", ErrUnparseable, text)
}

// inferYear picks a year for inputs that lack one. Before October the
// postseason being described is next year's; from October on it is the
// current year's. A resolved month earlier than October while the reference
// sits in October or later means the date rolled into the following spring,
// so bump the year once more.
func (r *Resolver) inferYear(month time.Month) int {
	year := r.ref.Year()
	if r.ref.Month() < time.October {
		year++
	} else if month < time.October {
		year++
	}
	return year
}

// SeasonYear returns the season a run anchored at ref should fetch. The
// upstream schedule API keys postseason games to the calendar year they are
// played in, so this is simply the reference year in Eastern time.
func SeasonYear(ref time.Time) int {
	return ref.In(eastern).Year()
}
