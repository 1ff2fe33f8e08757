package cli

import (
	"fmt"
	"time"

	"github.com/rileyhilliard/bwstat/internal/errors"
	"github.com/rileyhilliard/bwstat/internal/fetch"
)

// LocalOption is the positional OPTION that selects an existing local file.
const LocalOption = "-f"

// Source says where the snapshot sample file comes from.
type Source struct {
	// Path is the local file to read, or the file to fetch into.
	Path string

	// Local means Path already exists and nothing is fetched.
	Local bool
}

// resolveSource turns the positional OPTION FILE pair and --file into a
// Source. With neither, the file is fetched into a timestamped name.
func resolveSource(args []string, fileFlag string, now time.Time) (Source, error) {
	if fileFlag != "" {
		if len(args) > 0 {
			return Source{}, errors.New(errors.ErrConfig,
				"--file can't be combined with OPTION FILE",
				"Use either 'bwstat snapshot -f FILE' or 'bwstat snapshot -- OPTION FILE'.")
		}
		return Source{Path: fileFlag, Local: true}, nil
	}

	switch len(args) {
	case 0:
		return Source{Path: fetch.OutfileName(now)}, nil
	case 2:
		if args[1] == "" {
			return Source{}, errors.New(errors.ErrConfig,
				"FILE is empty",
				"Pass the sample file name after OPTION.")
		}
		return Source{Path: args[1], Local: args[0] == LocalOption}, nil
	default:
		return Source{}, errors.New(errors.ErrConfig,
			fmt.Sprintf("Expected OPTION FILE, got %d argument(s)", len(args)),
			"Usage: bwstat snapshot [OPTION FILE], e.g. 'bwstat snapshot -- -f run1.csv'.")
	}
}

// parseInterval parses the --interval flag. Returns zero if the flag is
// empty, meaning core.refreshrate applies.
func parseInterval(flag string) (time.Duration, error) {
	if flag == "" {
		return 0, nil
	}

	d, err := time.ParseDuration(flag)
	if err != nil {
		return 0, errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("'%s' doesn't look like a valid interval", flag),
			"Try something like 2s, 500ms, or 1m.")
	}
	if d <= 0 {
		return 0, errors.New(errors.ErrConfig,
			fmt.Sprintf("Interval must be positive (got %s)", flag),
			"Try something like 2s, 500ms, or 1m.")
	}
	return d, nil
}
