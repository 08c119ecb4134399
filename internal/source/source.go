package source

import (
	"net/http"
	"time"

	"github.com/pfrederiksen/mlb-playoff-calendar/internal/game"
)

const (
	// UserAgent identifies this tool to upstream servers.
	UserAgent = "mlb-playoff-calendar/1.0 (github.com/pfrederiksen/mlb-playoff-calendar)"

	// Timeout bounds every upstream request. Nothing upstream specifies one,
	// so pick a conservative fixed value rather than block indefinitely.
	Timeout = 30 * time.Second
)

// Source is one upstream schedule shape. FetchGames performs the network
// retrieval and extraction in one pass; a returned error means this source
// yielded nothing for the run, never that the run should abort.
type Source interface {
	Name() string
	FetchGames() ([]game.RawGame, error)
}

// newHTTPClient returns the shared client configuration for all adapters.
func newHTTPClient() *http.Client {
	return &http.Client{
		Timeout: Timeout,
	}
}
