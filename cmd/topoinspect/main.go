// Command topoinspect runs a YAML-defined revision scenario against a
// topology engine, logging the number of distinct Ids observed and printing
// the resulting call tree — a small inspection tool grounded on the arena
// cache's own cmd/arena-cache-inspect. It reports no cache liveness counts.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/kairos-run/topoquery/diag"
	"github.com/kairos-run/topoquery/revision"
)

func main() {
	scenarioPath := flag.String("scenario", "", "path to a YAML scenario file")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if *scenarioPath == "" {
		logger.Error("missing required -scenario flag")
		os.Exit(2)
	}

	data, err := os.ReadFile(*scenarioPath)
	if err != nil {
		logger.Error("reading scenario file", "path", *scenarioPath, "error", err)
		os.Exit(1)
	}

	scenario, err := revision.LoadScenario(data)
	if err != nil {
		logger.Error("parsing scenario", "path", *scenarioPath, "error", err)
		os.Exit(1)
	}

	graphHook := diag.NewGraphHook(512, nil)
	driver := revision.NewDriver(revision.WithCallHook(graphHook))

	seenIDs := map[uint64]bool{}
	scenario.Run(driver, func(obs revision.Observation) {
		seenIDs[uint64(obs.ID)] = true
	})

	logger.Info("scenario run complete",
		"scenario", scenario.Name,
		"revisions", len(scenario.Revisions),
		"distinct_ids", len(seenIDs),
	)

	fmt.Println(graphHook.Render())
}
