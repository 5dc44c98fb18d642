package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/talgya/euro-diffusion/internal/input"
	"github.com/talgya/euro-diffusion/internal/scenario"
)

func newGenCmd(loadConfig configLoader) *cobra.Command {
	cfg := scenario.DefaultGenConfig()
	var (
		count  int
		output string
	)

	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate random valid input cases",
		Long: `Generate cases in the text input format. Each case tiles a square map with
countries whose sizes follow simplex noise, so every case is a single
connected landmass. The same non-zero seed always produces the same file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := loadConfig(cmd); err != nil {
				return err
			}
			cases := scenario.Generate(cfg, count)
			slog.Info("cases generated", "cases", len(cases), "seed", cfg.Seed, "size", cfg.Size)
			if output == "" || output == "-" {
				return input.Write(cmd.OutOrStdout(), cases)
			}
			f, err := os.Create(output)
			if err != nil {
				return err
			}
			if err := input.Write(f, cases); err != nil {
				f.Close()
				return err
			}
			return f.Close()
		},
	}
	cmd.Flags().Int64Var(&cfg.Seed, "seed", cfg.Seed, "noise seed (0 = random)")
	cmd.Flags().IntVar(&cfg.Size, "size", cfg.Size, "map side length in cells")
	cmd.Flags().IntVar(&cfg.MaxSpan, "span", cfg.MaxSpan, "largest country side (0 = size/2)")
	cmd.Flags().IntVarP(&count, "cases", "n", 3, "number of cases")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout when empty)")
	return cmd
}
