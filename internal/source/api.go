package source

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/pfrederiksen/mlb-playoff-calendar/internal/game"
	"github.com/pfrederiksen/mlb-playoff-calendar/internal/gametime"
	"github.com/pfrederiksen/mlb-playoff-calendar/internal/logger"
)

// DefaultAPIBaseURL is the official MLB schedule API.
const DefaultAPIBaseURL = "https://statsapi.mlb.com"

// gameTypes are the postseason schedule categories queried per run:
// F = entire postseason, D = Division Series, L = League Championship,
// W = World Series. The categories overlap; dedup by gamePk handles that.
var gameTypes = []string{"F", "D", "L", "W"}

// APISource fetches the postseason schedule from the MLB statsapi endpoint.
type APISource struct {
	baseURL string
	season  int
	client  *http.Client
}

// NewAPISource creates an API adapter for the given season year.
func NewAPISource(season int) *APISource {
	return NewAPISourceWithBaseURL(DefaultAPIBaseURL, season)
}

// NewAPISourceWithBaseURL creates an API adapter against a custom base URL.
// Used by tests to point the adapter at a local server.
func NewAPISourceWithBaseURL(baseURL string, season int) *APISource {
	return &APISource{
		baseURL: baseURL,
		season:  season,
		client:  newHTTPClient(),
	}
}

// Name implements Source.
func (s *APISource) Name() string { return "api" }

// scheduleResponse mirrors the statsapi schedule payload: a dates[] array,
// each entry holding a games[] array.
type scheduleResponse struct {
	Dates []struct {
		Games []apiGame `json:"games"`
	} `json:"dates"`
}

type apiGame struct {
	GamePk            int64  `json:"gamePk"`
	GameDate          string `json:"gameDate"`
	SeriesDescription string `json:"seriesDescription"`
	SeriesGameNumber  int    `json:"seriesGameNumber"`
	Status            struct {
		DetailedState string `json:"detailedState"`
	} `json:"status"`
	Teams struct {
		Away apiTeamSide `json:"away"`
		Home apiTeamSide `json:"home"`
	} `json:"teams"`
	Venue struct {
		Name string `json:"name"`
	} `json:"venue"`
}

type apiTeamSide struct {
	Team struct {
		Name string `json:"name"`
	} `json:"team"`
}

// FetchGames issues one request per game-type category, merges the results,
// and drops any game whose gamePk was already seen. A failing category is
// logged and skipped; the remaining categories still contribute.
func (s *APISource) FetchGames() ([]game.RawGame, error) {
	seen := make(map[int64]bool)
	games := make([]game.RawGame, 0)

	for _, gameType := range gameTypes {
		url := fmt.Sprintf("%s/api/v1/schedule?sportId=1&season=%d&gameType=%s&hydrate=team,venue",
			s.baseURL, s.season, gameType)

		logger.Info("fetching schedule", logger.Fields{
			"game_type": gameType,
			"url":       url,
		})

		resp, err := s.fetchSchedule(url)
		if err != nil {
			logger.Error("schedule fetch failed, skipping category", logger.Fields{
				"game_type": gameType,
			}, err)
			continue
		}

		for _, date := range resp.Dates {
			for _, g := range date.Games {
				if g.GamePk != 0 && seen[g.GamePk] {
					continue
				}

				raw, err := s.toRawGame(g)
				if err != nil {
					logger.Warn("skipping malformed game entry", logger.Fields{
						"game_pk": g.GamePk,
						"reason":  err.Error(),
					})
					continue
				}

				if g.GamePk != 0 {
					seen[g.GamePk] = true
				}
				games = append(games, raw)
			}
		}
	}

	return games, nil
}

// fetchSchedule GETs a schedule URL and decodes the JSON body.
func (s *APISource) fetchSchedule(url string) (*scheduleResponse, error) {
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching schedule: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var sched scheduleResponse
	if err := json.NewDecoder(resp.Body).Decode(&sched); err != nil {
		return nil, fmt.Errorf("parsing schedule response: %w", err)
	}

	return &sched, nil
}

// toRawGame converts one API game object into a raw record. Games without a
// gameDate carry no derivable instant and are rejected.
func (s *APISource) toRawGame(g apiGame) (game.RawGame, error) {
	if g.GameDate == "" {
		return game.RawGame{}, fmt.Errorf("missing gameDate")
	}

	start, err := gametime.ParseUTCInstant(g.GameDate)
	if err != nil {
		return game.RawGame{}, fmt.Errorf("parsing gameDate: %w", err)
	}

	raw := game.RawGame{
		Away:   g.Teams.Away.Team.Name,
		Home:   g.Teams.Home.Team.Name,
		Venue:  g.Venue.Name,
		Series: g.SeriesDescription,
		Status: g.Status.DetailedState,
		Start:  start,
	}
	if g.GamePk != 0 {
		raw.ID = strconv.FormatInt(g.GamePk, 10)
	}
	if g.SeriesGameNumber != 0 {
		raw.GameNumber = strconv.Itoa(g.SeriesGameNumber)
	}

	return raw, nil
}
