package config

import (
	"fmt"
	"strings"

	"github.com/rileyhilliard/bwstat/internal/errors"
)

// Requirement narrows validation to the keys a command actually uses.
type Requirement func(*validationContext)

type validationContext struct {
	needRemote bool
}

// RequireRemote demands core.ipaddress and core.path, which every fetch needs.
func RequireRemote() Requirement {
	return func(c *validationContext) { c.needRemote = true }
}

// Validate checks the config for errors and returns structured error messages.
func Validate(cfg *Config, reqs ...Requirement) error {
	ctx := &validationContext{}
	for _, r := range reqs {
		r(ctx)
	}

	if ctx.needRemote {
		if err := validateRemote(cfg.Core); err != nil {
			return err
		}
	}

	if cfg.Core.RefreshRate < 0 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("core.refreshrate can't be negative (got %d)", cfg.Core.RefreshRate),
			"Use 0 to poll back-to-back, or a number of seconds.")
	}

	if cfg.Core.IntervalUS <= 0 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("core.interval_us must be positive (got %d)", cfg.Core.IntervalUS),
			"The stock collector samples every 30000us.")
	}

	switch cfg.Core.Transport {
	case TransportSCP, TransportSSH:
	default:
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Unknown transport '%s'", cfg.Core.Transport),
			"Set core.transport to 'scp' or 'ssh'.")
	}

	if cfg.Plot.Width <= 0 || cfg.Plot.Height <= 0 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Plot size must be positive (got %gx%g)", cfg.Plot.Width, cfg.Plot.Height),
			"Set plot.width and plot.height in inches.")
	}

	if cfg.SSH.Timeout < 0 {
		return errors.New(errors.ErrConfig,
			"ssh.timeout can't be negative",
			"Use a duration like '10s'.")
	}

	return nil
}

func validateRemote(core CoreConfig) error {
	if core.IPAddress == "" {
		return errors.New(errors.ErrConfig,
			"core.ipaddress is not set",
			"Add the device address to the 'core' section, or set BWSTAT_CORE_IPADDRESS.")
	}
	if strings.ContainsAny(core.IPAddress, "@ \t") {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("core.ipaddress '%s' should be a bare host name or address", core.IPAddress),
			"Put the login name in core.user instead.")
	}
	if core.Path == "" {
		return errors.New(errors.ErrConfig,
			"core.path is not set",
			"Add the sample file location on the device, e.g. /home/root/statcollector.csv.")
	}
	if core.User == "" {
		return errors.New(errors.ErrConfig,
			"core.user is empty",
			"Remove the key to use 'root', or set the login name.")
	}
	return nil
}
