package main

import (
	"github.com/pfrederiksen/mlb-playoff-calendar/internal/cli"
)

func main() {
	cli.Execute()
}
