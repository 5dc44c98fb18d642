package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/talgya/euro-diffusion/internal/config"
	"github.com/talgya/euro-diffusion/internal/engine"
	"github.com/talgya/euro-diffusion/internal/input"
	"github.com/talgya/euro-diffusion/internal/persistence"
	"github.com/talgya/euro-diffusion/internal/report"
)

func newRunCmd(loadConfig configLoader) *cobra.Command {
	var jsonInput bool

	cmd := &cobra.Command{
		Use:   "run [file]",
		Short: "Simulate every case of an input file (stdin when omitted)",
		Long: `Simulate every case of an input file and print, per case, each country
with the number of days it took to complete, fastest first.

A case that fails to parse or build prints its error; the remaining cases
still run.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return runCases(cmd, cfg, args, jsonInput)
		},
	}
	cmd.Flags().BoolVar(&jsonInput, "json", false, "read JSON input instead of the text format")
	return cmd
}

func runCases(cmd *cobra.Command, cfg config.Config, args []string, jsonInput bool) error {
	// ── Input ─────────────────────────────────────────────────────────
	source := "stdin"
	var r io.Reader = cmd.InOrStdin()
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		r = f
		source = args[0]
	}

	read := input.Read
	if jsonInput {
		read = input.ReadJSON
	}
	cases, err := read(r)
	if err != nil {
		return fmt.Errorf("%s: %w", source, err)
	}
	slog.Info("input loaded", "source", source, "cases", len(cases))

	// ── Simulation ────────────────────────────────────────────────────
	started := time.Now()
	out := cmd.OutOrStdout()
	results := make([]persistence.CaseResult, 0, len(cases))
	failed := 0

	for _, c := range cases {
		result, err := simulateCase(c, cfg.Params())
		if err != nil {
			failed++
			slog.Warn("case failed", "case", c.Number, "error", err)
			if werr := report.WriteError(out, c.Number, err); werr != nil {
				return werr
			}
			results = append(results, persistence.CaseResult{Number: c.Number, Error: err.Error()})
			continue
		}
		if err := report.WriteCase(out, c.Number, result); err != nil {
			return err
		}
		results = append(results, persistence.CaseResult{Number: c.Number, Results: report.Sort(result)})
	}

	// ── Storage ───────────────────────────────────────────────────────
	runID := ""
	if cfg.Storage.DBPath != "" {
		db, err := persistence.Open(cfg.Storage.DBPath)
		if err != nil {
			return err
		}
		defer db.Close()
		run, err := db.SaveRun(source, started, results)
		if err != nil {
			return fmt.Errorf("save run: %w", err)
		}
		runID = run.ID
		slog.Info("run saved", "run_id", runID, "path", cfg.Storage.DBPath)
	}

	if cfg.Storage.ExportPath != "" {
		if err := export(cfg.Storage.ExportPath, runID, results); err != nil {
			return fmt.Errorf("export: %w", err)
		}
		slog.Info("results exported", "path", cfg.Storage.ExportPath)
	}

	slog.Info("run finished",
		"cases", len(cases),
		"failed", failed,
		"elapsed", time.Since(started).String(),
	)
	return nil
}

// simulateCase builds the case's grid and runs it to completion.
func simulateCase(c input.Case, p engine.Params) (map[string]int, error) {
	territories, err := c.Territories()
	if err != nil {
		return nil, err
	}
	grid, err := engine.NewGrid(territories, p)
	if err != nil {
		return nil, err
	}

	stats := grid.Stats()
	eng := engine.NewEngine()
	eng.OnComplete = func(territory string, day int) {
		slog.Debug("country complete", "case", c.Number, "country", territory, "day", day)
	}
	result, err := eng.Run(grid)
	if err != nil {
		return nil, err
	}

	slog.Info("case simulated",
		"case", c.Number,
		"countries", stats.Territories,
		"cities", stats.Cities,
		"coins", humanize.Comma(stats.Coins),
		"days", humanize.Comma(int64(eng.Day)),
	)
	return result, nil
}

func export(path, runID string, results []persistence.CaseResult) error {
	exp, err := persistence.NewExporter(path)
	if err != nil {
		return err
	}
	for _, r := range results {
		if err := exp.Write(persistence.ExportRecord{RunID: runID, CaseResult: r}); err != nil {
			exp.Close()
			return err
		}
	}
	return exp.Close()
}
