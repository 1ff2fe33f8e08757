package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/rileyhilliard/bwstat/internal/config"
	"github.com/rileyhilliard/bwstat/internal/errors"
	"github.com/rileyhilliard/bwstat/internal/ui"
	"github.com/rileyhilliard/bwstat/pkg/sshutil"
)

// InitOptions holds options for the init command.
type InitOptions struct {
	Snapshot       bool   // Write configstat.yaml instead of config.yaml
	IPAddress      string // Pre-specified board address
	Path           string // Pre-specified sample file location
	User           string // Remote login; empty keeps the default
	Dir            string // Directory to write into; empty means the working directory
	Overwrite      bool   // Overwrite existing config without asking
	NonInteractive bool   // Skip prompts
	Out            io.Writer
}

// configFileName returns the file init writes.
func (o InitOptions) configFileName() string {
	if o.Snapshot {
		return config.SnapshotConfigName + ".yaml"
	}
	return config.WatchConfigName + ".yaml"
}

// Init creates a new config file.
func Init(opts InitOptions) error {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	name := opts.configFileName()
	configPath := filepath.Join(opts.Dir, name)

	// Check for existing config
	if _, err := os.Stat(configPath); err == nil && !opts.Overwrite {
		if opts.NonInteractive {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Config file already exists: %s", configPath),
				"Use --force to overwrite")
		}

		var overwrite bool
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Config file '%s' already exists. Overwrite?", name)).
					Value(&overwrite),
			),
		)
		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Try running with --force to overwrite")
		}
		if !overwrite {
			fmt.Fprintln(out, "Cancelled.")
			return nil
		}
	}

	cfg := config.DefaultConfig()
	cfg.Core.IPAddress = strings.TrimSpace(opts.IPAddress)
	cfg.Core.Path = strings.TrimSpace(opts.Path)
	if opts.User != "" {
		cfg.Core.User = opts.User
	}

	if opts.NonInteractive {
		if cfg.Core.IPAddress == "" || cfg.Core.Path == "" {
			return errors.New(errors.ErrConfig,
				"Board address and sample path are required in non-interactive mode",
				"Provide --ip and --path, or run interactively")
		}
	} else {
		cancelled, err := promptConfig(cfg)
		if err != nil {
			return err
		}
		if cancelled {
			fmt.Fprintln(out, "Cancelled.")
			return nil
		}
	}

	if err := config.Validate(cfg, config.RequireRemote()); err != nil {
		return err
	}

	if err := config.Write(configPath, cfg); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Failed to write config file: %s", configPath),
			"Check directory permissions")
	}

	fmt.Fprintf(out, "%s Created %s\n\n", ui.SymbolSuccess, configPath)
	fmt.Fprintln(out, "Next steps:")
	if opts.Snapshot {
		fmt.Fprintln(out, "  bwstat snapshot           - Fetch, summarize and plot once")
		fmt.Fprintln(out, "  bwstat snapshot -f FILE   - Summarize a file already on disk")
	} else {
		fmt.Fprintln(out, "  bwstat watch              - Live graphs of every initiator")
		fmt.Fprintln(out, "  bwstat watch --plain      - Text output, e.g. over a serial console")
	}

	return nil
}

// promptConfig fills cfg interactively. Boards from ~/.ssh/config are
// offered first; picking one pre-fills the address and login.
func promptConfig(cfg *config.Config) (cancelled bool, err error) {
	if cfg.Core.IPAddress == "" {
		// A broken ssh config only costs us the picker.
		hosts, _ := sshutil.ParseSSHConfig()
		host, cancelled, err := ui.PickBoard(hosts, os.Stdout, os.Stdin)
		if err != nil {
			return false, err
		}
		if cancelled {
			return true, nil
		}
		if host != nil {
			cfg.Core.IPAddress = host.Alias
			if host.User != "" {
				cfg.Core.User = host.User
			}
		}
	}

	refresh := strconv.Itoa(cfg.Core.RefreshRate)
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Board address").
				Description("Host name, IP address or ~/.ssh/config alias").
				Placeholder("192.168.1.10").
				Value(&cfg.Core.IPAddress).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("board address is required")
					}
					if strings.ContainsAny(s, "@ \t") {
						return fmt.Errorf("enter the address only; the login is asked next")
					}
					return nil
				}),
			huh.NewInput().
				Title("Login").
				Value(&cfg.Core.User),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Sample file on the board").
				Description("Where the statistics collector writes its CSV").
				Placeholder("/home/root/statcollector.csv").
				Value(&cfg.Core.Path).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("sample path is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Refresh rate (seconds)").
				Description("Pause between watch cycles").
				Value(&refresh).
				Validate(func(s string) error {
					n, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil || n < 0 {
						return fmt.Errorf("enter a whole number of seconds")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Transport").
				Options(
					huh.NewOption("scp (shell out to scp)", config.TransportSCP),
					huh.NewOption("ssh (built-in client)", config.TransportSSH),
				).
				Value(&cfg.Core.Transport),
		),
	)

	if err := form.Run(); err != nil {
		return false, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to get user input",
			"Check terminal compatibility or use --non-interactive flag")
	}

	cfg.Core.IPAddress = strings.TrimSpace(cfg.Core.IPAddress)
	cfg.Core.Path = strings.TrimSpace(cfg.Core.Path)
	cfg.Core.RefreshRate, _ = strconv.Atoi(strings.TrimSpace(refresh))
	return false, nil
}
