package source

import (
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/mlb-playoff-calendar/internal/game"
	"github.com/pfrederiksen/mlb-playoff-calendar/internal/gametime"
	"github.com/pfrederiksen/mlb-playoff-calendar/internal/logger"
)

// Pattern for time fragments like "Game 3: Saturday at 7:08 PM (FOX)".
var gameTimePattern = regexp.MustCompile(
	`Game\s+(\d+):\s+(Monday|Tuesday|Wednesday|Thursday|Friday|Saturday|Sunday)\s+at\s+(\d{1,2}:\d{2}\s*[AP]M)(?:\s*\(([A-Z0-9]+)\))?`)

// Pattern for matchup fragments like "Phillies at Dodgers" or
// "Tigers vs. Guardians". Team names are one or two capitalized words.
var matchupPattern = regexp.MustCompile(
	`([A-Z][a-z]+(?:\s[A-Z][a-z]+)?)\s+(?:at|vs\.?)\s+([A-Z][a-z]+(?:\s[A-Z][a-z]+)?)`)

// notTeams filters capitalized connector and date words the matchup pattern
// picks up as false positives.
var notTeams = map[string]bool{
	"Game": true, "Games": true, "The": true, "Watch": true, "Live": true,
	"Series": true, "Playoffs": true, "Postseason": true,
	"Monday": true, "Tuesday": true, "Wednesday": true, "Thursday": true,
	"Friday": true, "Saturday": true, "Sunday": true,
	"October": true, "November": true,
}

// TextSource extracts games from unstructured page text with two independent
// regex passes: one for game times, one for matchups. The two lists are
// paired positionally in extraction order. That pairing is a heuristic with
// no guaranteed correspondence to the real schedule, so every paired record
// is marked Inferred.
type TextSource struct {
	url      string
	client   *http.Client
	resolver *gametime.Resolver
}

// NewTextSource creates a freeform-text adapter anchored at ref for weekday
// resolution.
func NewTextSource(ref time.Time) *TextSource {
	return NewTextSourceWithURL(DefaultScheduleURL, ref)
}

// NewTextSourceWithURL creates a freeform-text adapter against a custom URL.
// Used by tests.
func NewTextSourceWithURL(url string, ref time.Time) *TextSource {
	return &TextSource{
		url:      url,
		client:   newHTTPClient(),
		resolver: gametime.NewResolver(ref),
	}
}

// Name implements Source.
func (s *TextSource) Name() string { return "text" }

// FetchGames fetches the page, flattens it to text, and extracts games.
func (s *TextSource) FetchGames() ([]game.RawGame, error) {
	logger.Info("fetching schedule page", logger.Fields{"url": s.url})

	req, err := http.NewRequest("GET", s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return s.parseText(resp.Body)
}

type matchup struct {
	away, home string
}

// parseText runs both extraction passes over the page text and pairs the
// results.
func (s *TextSource) parseText(r io.Reader) ([]game.RawGame, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	text := doc.Text()

	games := make([]game.RawGame, 0)
	for _, m := range gameTimePattern.FindAllStringSubmatch(text, -1) {
		number, weekday, clock := m[1], m[2], m[3]

		start, err := s.resolver.ResolveWeekday(weekday, clock)
		if err != nil {
			logger.Warn("skipping game time fragment", logger.Fields{
				"fragment": m[0],
				"reason":   err.Error(),
			})
			continue
		}

		games = append(games, game.RawGame{
			GameNumber: number,
			Start:      start,
		})
	}

	matchups := make([]matchup, 0)
	for _, m := range matchupPattern.FindAllStringSubmatch(text, -1) {
		away, home := m[1], m[2]
		if isExcluded(away) || isExcluded(home) {
			continue
		}
		matchups = append(matchups, matchup{away: away, home: home})
	}

	// Pair times and matchups positionally. Times beyond the matchup count
	// keep TBD teams rather than being dropped; the times are what establish
	// that a game exists.
	for i := range games {
		if i >= len(matchups) {
			break
		}
		games[i].Away = matchups[i].away
		games[i].Home = matchups[i].home
		games[i].Inferred = true
	}

	return games, nil
}

// isExcluded reports whether a candidate team name is a known false positive.
func isExcluded(name string) bool {
	for _, word := range strings.Fields(name) {
		if notTeams[word] {
			return true
		}
	}
	return false
}
