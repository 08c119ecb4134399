package source

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/mlb-playoff-calendar/internal/game"
	"github.com/pfrederiksen/mlb-playoff-calendar/internal/gametime"
	"github.com/pfrederiksen/mlb-playoff-calendar/internal/logger"
)

// DefaultScheduleURL is the schedule page scraped by the HTML adapters.
const DefaultScheduleURL = "https://www.mlb.com/postseason/schedule"

// HTMLSource scrapes a schedule page whose games are grouped under date
// section headers. The selectors below match the page as observed; when the
// markup changes the adapter degrades to zero games rather than failing the
// run.
type HTMLSource struct {
	url      string
	client   *http.Client
	resolver *gametime.Resolver
}

// NewHTMLSource creates a structured-HTML adapter anchored at ref for date
// resolution.
func NewHTMLSource(ref time.Time) *HTMLSource {
	return NewHTMLSourceWithURL(DefaultScheduleURL, ref)
}

// NewHTMLSourceWithURL creates a structured-HTML adapter against a custom
// URL. Used by tests.
func NewHTMLSourceWithURL(url string, ref time.Time) *HTMLSource {
	return &HTMLSource{
		url:      url,
		client:   newHTTPClient(),
		resolver: gametime.NewResolver(ref),
	}
}

// Name implements Source.
func (s *HTMLSource) Name() string { return "html" }

// FetchGames fetches the schedule page and extracts one raw record per game
// row.
func (s *HTMLSource) FetchGames() ([]game.RawGame, error) {
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

	return s.parseSchedule(resp.Body)
}

// parseSchedule walks the date-section groupings of the page. Sections whose
// header cannot be resolved are skipped whole; rows failing extraction are
// skipped individually without aborting their section.
func (s *HTMLSource) parseSchedule(r io.Reader) ([]game.RawGame, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	games := make([]game.RawGame, 0)

	doc.Find(".schedule__section").Each(func(i int, section *goquery.Selection) {
		header := strings.TrimSpace(section.Find(".schedule__date").First().Text())
		date, err := s.resolver.ResolveDateHeader(header)
		if err != nil {
			logger.Warn("skipping section with unresolvable date header", logger.Fields{
				"header": header,
			})
			return
		}

		section.Find(".schedule__game").Each(func(j int, row *goquery.Selection) {
			raw, err := s.parseGameRow(row, date)
			if err != nil {
				logger.Warn("skipping game row", logger.Fields{
					"section": header,
					"reason":  err.Error(),
				})
				return
			}
			if raw.Start.IsZero() {
				// TBD or postponed time: no derivable instant, drop silently.
				return
			}
			games = append(games, raw)
		})
	})

	return games, nil
}

// parseGameRow extracts the two team names and the time-of-day from one game
// row and combines them with the section date.
func (s *HTMLSource) parseGameRow(row *goquery.Selection, date time.Time) (game.RawGame, error) {
	away := strings.TrimSpace(row.Find(".team--away .team__name").First().Text())
	home := strings.TrimSpace(row.Find(".team--home .team__name").First().Text())
	if away == "" && home == "" {
		return game.RawGame{}, fmt.Errorf("no team names in row")
	}

	clock := strings.TrimSpace(row.Find(".game__time").First().Text())
	if gametime.IsTBD(clock) {
		return game.RawGame{}, nil
	}

	hour, min, err := gametime.ParseClock(clock)
	if err != nil {
		return game.RawGame{}, fmt.Errorf("parsing game time: %w", err)
	}

	series := strings.TrimSpace(row.Find(".game__series").First().Text())

	return game.RawGame{
		Away:   away,
		Home:   home,
		Series: series,
		Start: time.Date(date.Year(), date.Month(), date.Day(),
			hour, min, 0, 0, gametime.Location()),
	}, nil
}
