package doctor

import (
	stderrors "errors"
	"fmt"
	"path/filepath"

	"github.com/rileyhilliard/bwstat/internal/config"
	"github.com/rileyhilliard/bwstat/internal/errors"
)

// ConfigCheck finds, loads and validates one tool's config file. A missing
// file is only a warning since each tool has its own.
type ConfigCheck struct {
	Base     string // config.WatchConfigName or config.SnapshotConfigName
	Explicit string // --config, checked instead of searching
	Dir      string // Search directory; empty means the working directory

	// Loaded is set once Run succeeds.
	Loaded *config.Config
}

func (c *ConfigCheck) Name() string     { return "config_" + c.Base }
func (c *ConfigCheck) Category() string { return "CONFIG" }

func (c *ConfigCheck) Run() CheckResult {
	path, err := config.Find(c.Explicit, c.Dir, c.Base)
	if err != nil {
		return failFromError(err)
	}

	if path == "" {
		return CheckResult{
			Status:     StatusWarn,
			Message:    fmt.Sprintf("No %s.yaml found", c.Base),
			Suggestion: fmt.Sprintf("Run 'bwstat init%s' to create one", initFlag(c.Base)),
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return failFromError(err)
	}
	if err := config.Validate(cfg, config.RequireRemote()); err != nil {
		return failFromError(err)
	}

	c.Loaded = cfg
	return CheckResult{
		Status:  StatusPass,
		Message: fmt.Sprintf("%s: %s (%s)", filepath.Base(path), cfg.Core.Remote(), cfg.Core.Transport),
	}
}

func initFlag(base string) string {
	if base == config.SnapshotConfigName {
		return " --snapshot"
	}
	return ""
}

// failFromError turns a structured error into a failed result, keeping its
// suggestion.
func failFromError(err error) CheckResult {
	var e *errors.Error
	if stderrors.As(err, &e) {
		return CheckResult{Status: StatusFail, Message: e.Message, Suggestion: e.Suggestion}
	}
	return CheckResult{Status: StatusFail, Message: err.Error()}
}
