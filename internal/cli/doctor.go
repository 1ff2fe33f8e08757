package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/bwstat/internal/config"
	"github.com/rileyhilliard/bwstat/internal/doctor"
	"github.com/rileyhilliard/bwstat/internal/errors"
	"github.com/rileyhilliard/bwstat/internal/ui"
)

// dialBoard opens the doctor's SSH connection. Tests replace it.
var dialBoard doctor.DialFunc = doctor.DialBoard

// DoctorOptions holds options for the doctor command.
type DoctorOptions struct {
	ConfigPath string // --config; checked instead of config.* and configstat.*
	Dir        string // Search directory; empty means the working directory
	Out        io.Writer
}

// Doctor checks the config files, local tools and the board, and prints one
// line per check. It fails if any check fails.
func Doctor(opts DoctorOptions) error {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	var configChecks []*doctor.ConfigCheck
	if opts.ConfigPath != "" {
		configChecks = append(configChecks, &doctor.ConfigCheck{Base: config.WatchConfigName, Explicit: opts.ConfigPath})
	} else {
		configChecks = append(configChecks,
			&doctor.ConfigCheck{Base: config.WatchConfigName, Dir: opts.Dir},
			&doctor.ConfigCheck{Base: config.SnapshotConfigName, Dir: opts.Dir},
		)
	}

	var checks []doctor.Check
	for _, c := range configChecks {
		checks = append(checks, c)
	}
	results := doctor.RunAll(checks)

	// The board is checked with the first config that loaded.
	var cfg *config.Config
	for _, c := range configChecks {
		if c.Loaded != nil {
			cfg = c.Loaded
			break
		}
	}
	rest, board := doctor.NewChecks(cfg, dialBoard)
	results = append(results, doctor.RunAll(rest)...)
	if board != nil {
		board.Close() //nolint:errcheck // Best-effort close, error not actionable
	}

	renderResults(out, results)

	if doctor.HasFailures(results) {
		return errors.New(errors.ErrConfig,
			doctor.Summary(results),
			"Fix the failed checks above and run 'bwstat doctor' again.")
	}
	return nil
}

func renderResults(w io.Writer, results []doctor.CheckResult) {
	header := lipgloss.NewStyle().Bold(true)
	muted := lipgloss.NewStyle().Foreground(ui.ColorMuted)

	category := ""
	for _, r := range results {
		if r.Category != category {
			if category != "" {
				fmt.Fprintln(w)
			}
			category = r.Category
			fmt.Fprintln(w, header.Render(category))
		}

		symbol, color := ui.SymbolSuccess, ui.ColorSuccess
		switch r.Status {
		case doctor.StatusWarn:
			symbol, color = ui.SymbolWarning, ui.ColorWarning
		case doctor.StatusFail:
			symbol, color = ui.SymbolFail, ui.ColorError
		}
		fmt.Fprintf(w, "  %s\n", ui.FormatPhase(symbol, color, r.Message, ""))
		if r.Suggestion != "" && r.Status != doctor.StatusPass {
			fmt.Fprintf(w, "    %s\n", muted.Render(r.Suggestion))
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, ui.FormatDivider(ui.DividerWidth))
	fmt.Fprintln(w, doctor.Summary(results))
}
