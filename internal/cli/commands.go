package cli

import (
	"os"
	"time"

	"github.com/rileyhilliard/bwstat/internal/errors"
	"github.com/rileyhilliard/bwstat/internal/ui"
	"github.com/spf13/cobra"
)

// Command-specific flags
var (
	snapshotFileFlag   string
	snapshotOutputFlag string
	snapshotXLSXFlag   string
	snapshotNoPlot     bool
	watchOutputFlag    string
	watchPlainFlag     bool
	watchIntervalFlag  string
	watchCSVFlag       string
	initFlags          InitOptions
)

// snapshotCmd fetches the sample file once, prints the table and plots it.
var snapshotCmd = &cobra.Command{
	Use:   "snapshot [OPTION FILE]",
	Short: "Print bandwidth statistics and plot every initiator once",
	Long: `Copy the sample file off the board, print the average, peak and active
average of every initiator, then draw all active initiators plus the
EMIF1_SYS+EMIF2_SYS total on one plot.

With no arguments the file is saved as <YYYYMMDD-HHMMSS>.csv. OPTION -f uses
FILE as an existing local file; any other OPTION fetches into FILE. Since -f
is also a flag, the positional form needs "--" in front of it.

Examples:
  bwstat snapshot
  bwstat snapshot -f run1.csv
  bwstat snapshot -- -f run1.csv
  bwstat snapshot -- -x today.csv
  bwstat snapshot -f run1.csv --output run1.svg --xlsx run1.xlsx`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := resolveSource(args, snapshotFileFlag, time.Now())
		if err != nil {
			return err
		}
		return Snapshot(cmd.Context(), SnapshotOptions{
			ConfigPath: cfgFile,
			Source:     src,
			Output:     snapshotOutputFlag,
			XLSX:       snapshotXLSXFlag,
			NoPlot:     snapshotNoPlot,
			Out:        cmd.OutOrStdout(),
			Live:       ui.IsTerminal(os.Stdout),
		})
	},
}

// watchCmd polls the board and redraws every column on each refresh.
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Continuously fetch and graph every initiator",
	Long: `Fetch the sample file every refreshrate seconds and graph each column on a
fixed 0-100 scale, one graph per initiator.

On a terminal this opens a live view (q quits, r refreshes now). With --plain,
or when stdout is not a terminal, each cycle prints one line per column and
optionally redraws a grid image.

Examples:
  bwstat watch
  bwstat watch --interval 2s
  bwstat watch --plain --output grid.png`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		interval, err := parseInterval(watchIntervalFlag)
		if err != nil {
			return err
		}
		return Watch(cmd.Context(), WatchOptions{
			ConfigPath: cfgFile,
			Outfile:    watchCSVFlag,
			Output:     watchOutputFlag,
			Plain:      watchPlainFlag || !ui.IsTerminal(os.Stdout),
			Interval:   interval,
			Out:        cmd.OutOrStdout(),
		})
	},
}

// initCmd writes a starter config file.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a config file for watch or snapshot",
	Long: `Create config.yaml (used by watch) or configstat.yaml (used by snapshot)
in the current directory.

Boards listed in ~/.ssh/config can be picked from a list; otherwise the
address is typed in.

Examples:
  bwstat init
  bwstat init --snapshot
  bwstat init --non-interactive --ip 192.168.1.10 --path /home/root/stats.csv`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := initFlags
		opts.Out = cmd.OutOrStdout()
		return Init(opts)
	},
}

// doctorCmd diagnoses the bench setup.
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check config files, SSH setup and the board",
	Long: `Check that the config files load, that the tools and keys the transport
needs are present, and that the board answers and has a sample file.

Examples:
  bwstat doctor
  bwstat doctor --config bench.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Doctor(DoctorOptions{ConfigPath: cfgFile, Out: cmd.OutOrStdout()})
	},
}

// completionCmd generates shell completion scripts
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion scripts for bwstat.

Examples:
  # Bash
  bwstat completion bash > /etc/bash_completion.d/bwstat

  # Zsh
  bwstat completion zsh > "${fpath[1]}/_bwstat"

  # Fish
  bwstat completion fish > ~/.config/fish/completions/bwstat.fish`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(out)
		case "zsh":
			return rootCmd.GenZshCompletion(out)
		case "fish":
			return rootCmd.GenFishCompletion(out, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletion(out)
		default:
			return errors.New(errors.ErrConfig,
				"Unknown shell: "+args[0],
				"Supported shells: bash, zsh, fish, powershell")
		}
	},
}

func init() {
	// snapshot command flags
	snapshotCmd.Flags().StringVarP(&snapshotFileFlag, "file", "f", "", "use an existing local sample file instead of fetching")
	snapshotCmd.Flags().StringVarP(&snapshotOutputFlag, "output", "o", "", "plot file; the extension picks the format (default: <csv name>.png)")
	snapshotCmd.Flags().StringVar(&snapshotXLSXFlag, "xlsx", "", "also write the table and samples to this workbook")
	snapshotCmd.Flags().BoolVar(&snapshotNoPlot, "no-plot", false, "print the table only")

	// watch command flags
	watchCmd.Flags().StringVarP(&watchOutputFlag, "output", "o", "", "redraw this grid image every cycle (plain mode)")
	watchCmd.Flags().BoolVar(&watchPlainFlag, "plain", false, "print text lines instead of the live view")
	watchCmd.Flags().StringVar(&watchIntervalFlag, "interval", "", "refresh interval, overrides core.refreshrate (e.g., 2s, 1m)")
	watchCmd.Flags().StringVar(&watchCSVFlag, "csv", "", "local copy of the sample file (default: <YYYYMMDD-HHMMSS>.csv)")

	// init command flags
	initCmd.Flags().BoolVar(&initFlags.Snapshot, "snapshot", false, "write configstat.yaml instead of config.yaml")
	initCmd.Flags().StringVar(&initFlags.IPAddress, "ip", "", "board address")
	initCmd.Flags().StringVar(&initFlags.Path, "path", "", "sample file location on the board")
	initCmd.Flags().StringVar(&initFlags.User, "user", "", "remote login (default: root)")
	initCmd.Flags().BoolVar(&initFlags.Overwrite, "force", false, "overwrite an existing config")
	initCmd.Flags().BoolVar(&initFlags.NonInteractive, "non-interactive", false, "skip prompts; --ip and --path are required")

	// Register all commands
	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(completionCmd)
}
