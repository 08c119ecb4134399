// Package cli implements the command-line interface for
// mlb-playoff-calendar.
//
// The cli package owns the end-to-end run: pick a source adapter, fetch and
// normalize the schedule, build the iCalendar file, write it, and print a
// summary. Per-source failures degrade to an empty schedule; a run that
// finds no games writes no file and exits normally.
package cli
