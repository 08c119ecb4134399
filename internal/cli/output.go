package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/pfrederiksen/mlb-playoff-calendar/internal/game"
)

// OutputFormat specifies the summary format.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// GameSummary is the per-game slice of the run summary.
type GameSummary struct {
	Start    time.Time `json:"start"`
	LocalET  string    `json:"local_et"`
	Away     string    `json:"away"`
	Home     string    `json:"home"`
	Venue    string    `json:"venue"`
	Series   string    `json:"series,omitempty"`
	Status   string    `json:"status,omitempty"`
	Inferred bool      `json:"inferred,omitempty"`
}

// OutputResult contains the data reported at the end of a run.
type OutputResult struct {
	GeneratedAt time.Time     `json:"generated_at"`
	Source      string        `json:"source"`
	Season      int           `json:"season"`
	GameCount   int           `json:"game_count"`
	OutputFile  string        `json:"output_file,omitempty"`
	Games       []GameSummary `json:"games"`
}

// summarizeGames projects normalized games into summary rows.
func summarizeGames(games []game.Game) []GameSummary {
	out := make([]GameSummary, 0, len(games))
	for _, g := range games {
		out = append(out, GameSummary{
			Start:    g.Start,
			LocalET:  formatLocalET(g.Start),
			Away:     g.Away,
			Home:     g.Home,
			Venue:    g.Venue,
			Series:   g.Series,
			Status:   g.Status,
			Inferred: g.Inferred,
		})
	}
	return out
}

// formatLocalET formats a start instant for human display in Eastern time.
func formatLocalET(t time.Time) string {
	return t.Format("2006-01-02 03:04 PM") + " ET"
}

// WriteOutput writes the result in the specified format.
func WriteOutput(w io.Writer, result *OutputResult, format OutputFormat) error {
	switch format {
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(result)
	case FormatText:
		printTextSummary(w, result, len(result.Games))
		return nil
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// printTextSummary writes the human-readable run report: totals, output file,
// and the first maxShow games with their Eastern local times.
func printTextSummary(w io.Writer, result *OutputResult, maxShow int) {
	fmt.Fprintf(w, "Found %d games\n", result.GameCount)

	if result.OutputFile != "" {
		fmt.Fprintf(w, "Calendar file created: %s\n", result.OutputFile)
	}

	if len(result.Games) == 0 {
		return
	}

	fmt.Fprintln(w, "\nGames found:")
	shown := result.Games
	if maxShow > 0 && len(shown) > maxShow {
		shown = shown[:maxShow]
	}
	for _, g := range shown {
		series := g.Series
		if series == "" {
			series = "Playoff"
		}
		line := fmt.Sprintf("  %s: %s - %s @ %s", g.LocalET, series, g.Away, g.Home)
		if g.Status != "" {
			line += fmt.Sprintf(" (%s)", g.Status)
		}
		fmt.Fprintln(w, line)
	}
	if len(result.Games) > len(shown) {
		fmt.Fprintf(w, "  ... and %d more\n", len(result.Games)-len(shown))
	}
}
