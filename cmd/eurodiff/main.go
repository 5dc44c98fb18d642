// Command eurodiff simulates euro coin diffusion between neighboring
// countries and reports how many days each country takes to hold every
// coin motif.
package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/talgya/euro-diffusion/internal/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "eurodiff",
		Short: "Simulate coin diffusion across a map of countries",
		Long: `eurodiff reads maps of rectangular countries, gives every city a million
coins of its own country's motif, and moves a thousandth of each stock to
every neighboring city per day until every city holds every motif.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file")

	loadConfig := func(cmd *cobra.Command) (config.Config, error) {
		cfg, err := config.Load(configPath)
		if err != nil {
			return cfg, err
		}
		setupLogging(cfg.Log, cmd.ErrOrStderr())
		return cfg, nil
	}

	root.AddCommand(
		newRunCmd(loadConfig),
		newGenCmd(loadConfig),
		newHistoryCmd(loadConfig),
	)
	return root
}

type configLoader func(cmd *cobra.Command) (config.Config, error)

// setupLogging installs the default slog logger. Format "auto" picks text
// for a terminal and JSON otherwise.
func setupLogging(lc config.LogConfig, w io.Writer) {
	level, err := lc.SlogLevel()
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	format := lc.Format
	if format == "auto" {
		format = "json"
		if f, ok := w.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
			format = "text"
		}
	}

	var handler slog.Handler
	if format == "text" {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}
	slog.SetDefault(slog.New(handler))
}
