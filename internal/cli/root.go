package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rileyhilliard/bwstat/internal/errors"
	"github.com/rileyhilliard/bwstat/internal/logger"
	"github.com/rileyhilliard/bwstat/internal/ui"
	"github.com/spf13/cobra"
)

// Global flags
var (
	cfgFile string
	verbose bool
	noColor bool
)

// rootCmd is the bwstat entry point. Subcommands register themselves in init().
var rootCmd = &cobra.Command{
	Use:   "bwstat",
	Short: "Fetch and plot L3 interconnect bandwidth statistics",
	Long: `bwstat copies the sample file written by the statistics collector off the
board, prints per-initiator bandwidth figures and plots the samples.

Examples:
  bwstat snapshot                  # fetch, summarize and plot once
  bwstat snapshot -f run1.csv      # summarize a file already on disk
  bwstat watch                     # live view, refreshed every refreshrate seconds
  bwstat init                      # write config.yaml / configstat.yaml`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.SetVerbose(verbose)
		if noColor || os.Getenv("NO_COLOR") != "" || !ui.IsTerminal(os.Stdout) {
			ui.DisableColors()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: config.yaml for watch, configstat.yaml for snapshot)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}

// Execute runs the root command and exits with errors.ExitCode on failure.
// SIGINT and SIGTERM cancel the command's context.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(errors.ExitCode(err))
	}
}
