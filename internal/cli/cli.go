package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pfrederiksen/mlb-playoff-calendar/internal/calendar"
	"github.com/pfrederiksen/mlb-playoff-calendar/internal/game"
	"github.com/pfrederiksen/mlb-playoff-calendar/internal/gametime"
	"github.com/pfrederiksen/mlb-playoff-calendar/internal/logger"
	"github.com/pfrederiksen/mlb-playoff-calendar/internal/source"
	"github.com/spf13/cobra"
)

const (
	ExitSuccess = 0
	ExitError   = 1

	// DefaultOutputFile is where the calendar is written.
	DefaultOutputFile = "mlb_playoffs.ics"
)

var (
	flagSource  string
	flagSeason  int
	flagOutput  string
	flagFormat  string
	flagMaxShow int
	flagVerbose bool
)

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mlb-playoff-calendar",
		Short: "Generate an iCalendar file of the MLB playoff schedule",
		Long: `Fetches the MLB playoff schedule and writes an iCalendar (.ics) file
listing upcoming games with start times, teams, and venues. Subscribe to the
file in a calendar app to track playoff game times.`,
		RunE: runGenerate,
	}

	cmd.Flags().StringVar(&flagSource, "source", "api", "Schedule source: api, html, or text")
	cmd.Flags().IntVar(&flagSeason, "season", 0, "Season year (default: current year)")
	cmd.Flags().StringVar(&flagOutput, "output", DefaultOutputFile, "Output calendar file path")
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Summary format: text or json")
	cmd.Flags().IntVar(&flagMaxShow, "max-show", 15, "Maximum games listed in the text summary")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")

	return cmd
}

// runGenerate is the main command logic.
func runGenerate(cmd *cobra.Command, args []string) error {
	if flagVerbose {
		logger.SetDefault(logger.New(logger.LevelDebug, os.Stderr))
	}

	format := OutputFormat(strings.ToLower(flagFormat))
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}

	now := time.Now()
	season := flagSeason
	if season == 0 {
		season = gametime.SeasonYear(now)
	}

	src, err := newSource(flagSource, season, now)
	if err != nil {
		return err
	}

	if format == FormatText {
		fmt.Printf("Fetching MLB playoff schedule (source: %s)...\n", src.Name())
	}

	fetchStart := time.Now()
	raws, err := src.FetchGames()
	logger.RecordTiming("fetch", time.Since(fetchStart))
	if err != nil {
		// A failed source yields nothing this run; the run itself continues
		// and reports zero games.
		logger.Error("source yielded no games", logger.Fields{
			"source": src.Name(),
		}, err)
		raws = nil
	}

	games := game.Normalize(raws)
	logger.AddCounter("games.found", int64(len(games)))
	logger.Info("normalized schedule", logger.Fields{
		"source":  src.Name(),
		"raw":     len(raws),
		"games":   len(games),
		"metrics": logger.MetricsSnapshot(),
	})

	result := &OutputResult{
		GeneratedAt: now.UTC(),
		Source:      src.Name(),
		Season:      season,
		GameCount:   len(games),
		Games:       summarizeGames(games),
	}

	written, err := writeCalendar(games, season, flagOutput, time.Now())
	if err != nil {
		return err
	}

	if !written {
		if format == FormatText {
			fmt.Println("No games found. The playoffs may not have started yet or may be over.")
			return nil
		}
		return WriteOutput(os.Stdout, result, format)
	}
	result.OutputFile = flagOutput

	if format == FormatText {
		printTextSummary(os.Stdout, result, flagMaxShow)
		return nil
	}
	return WriteOutput(os.Stdout, result, format)
}

// writeCalendar builds the iCalendar document and writes it to path in one
// WriteFile call. A run with no games writes nothing and reports false; the
// file from any previous run is left untouched.
func writeCalendar(games []game.Game, season int, path string, now time.Time) (bool, error) {
	ics := calendar.Generate(games, season, now)
	if ics == "" {
		return false, nil
	}
	if err := os.WriteFile(path, []byte(ics), 0644); err != nil {
		return false, fmt.Errorf("writing calendar file: %w", err)
	}
	return true, nil
}

// newSource builds the adapter selected by --source.
func newSource(name string, season int, now time.Time) (source.Source, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "api":
		return source.NewAPISource(season), nil
	case "html":
		return source.NewHTMLSource(now), nil
	case "text":
		return source.NewTextSource(now), nil
	}
	return nil, fmt.Errorf("unknown source: %s (must be 'api', 'html', or 'text')", name)
}

// Execute runs the CLI.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
