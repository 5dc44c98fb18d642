package main

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/talgya/euro-diffusion/internal/persistence"
	"github.com/talgya/euro-diffusion/internal/report"
)

func newHistoryCmd(loadConfig configLoader) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "List stored runs, or print one run's results",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cfg.Storage.DBPath == "" {
				return errors.New("no run history: storage.db_path is not set")
			}
			db, err := persistence.Open(cfg.Storage.DBPath)
			if err != nil {
				return err
			}
			defer db.Close()

			out := cmd.OutOrStdout()
			if len(args) == 1 {
				_, cases, err := db.LoadRun(args[0])
				if err != nil {
					return err
				}
				for _, c := range cases {
					if c.Error != "" {
						err = report.WriteError(out, c.Number, errors.New(c.Error))
					} else {
						err = report.WriteCase(out, c.Number, toMap(c.Results))
					}
					if err != nil {
						return err
					}
				}
				return nil
			}

			runs, err := db.RecentRuns(limit)
			if err != nil {
				return err
			}
			for _, r := range runs {
				fmt.Fprintf(out, "%s  %-14s  %3d cases  %s\n",
					r.ID, humanize.Time(r.Started()), r.Cases, r.Source)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "number of runs to list")
	return cmd
}

func toMap(entries []report.Entry) map[string]int {
	m := make(map[string]int, len(entries))
	for _, e := range entries {
		m[e.Name] = e.Days
	}
	return m
}
