package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rileyhilliard/bwstat/internal/errors"
	"github.com/spf13/viper"
)

// Config file base names. Each tool has its own file, as on the bench.
const (
	WatchConfigName    = "config"
	SnapshotConfigName = "configstat"
)

// EnvPrefix prefixes environment overrides, e.g. BWSTAT_CORE_IPADDRESS.
const EnvPrefix = "BWSTAT"

// SupportedExtensions are tried in order by Find.
var SupportedExtensions = []string{".yaml", ".yml", ".toml", ".json", ".ini"}

// Load reads config from the specified path, applying defaults and
// environment overrides.
func Load(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Config file not found: "+path,
				"Run 'bwstat init' to create one, or point at it with --config.")
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to read config file "+path,
			"Check the file is valid YAML, TOML, JSON or INI.")
	}

	return parseConfig(v, path)
}

// Find locates a config file named base in dir, trying each supported
// extension. An explicit path wins and must exist. Returns "" if nothing
// is found.
func Find(explicit, dir, base string) (string, error) {
	if explicit != "" {
		explicit = ExpandTilde(explicit)
		if _, err := os.Stat(explicit); err != nil {
			if os.IsNotExist(err) {
				return "", errors.WrapWithCode(err, errors.ErrConfig,
					"Specified config file not found: "+explicit,
					"Check the path is correct")
			}
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot access config file: "+explicit,
				"Check file permissions")
		}
		return explicit, nil
	}

	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot determine current directory",
				"Check directory permissions")
		}
		dir = cwd
	}

	for _, ext := range SupportedExtensions {
		p := filepath.Join(dir, base+ext)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", nil
}

// LoadFor finds and loads the config for a tool. A missing file is an error
// since there is no default device address.
func LoadFor(explicit, base string) (*Config, string, error) {
	path, err := Find(explicit, "", base)
	if err != nil {
		return nil, "", err
	}
	if path == "" {
		return nil, "", errors.New(errors.ErrConfig,
			"No "+base+".yaml found in the current directory",
			"Run 'bwstat init' to create one, or point at it with --config.")
	}

	cfg, err := Load(path)
	if err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

func newViper() *viper.Viper {
	v := viper.NewWithOptions(viper.WithCodecRegistry(codecs))
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

// parseConfig converts viper config to our Config struct with defaults merged in.
func parseConfig(v *viper.Viper, path string) (*Config, error) {
	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config format",
			"Check the syntax in "+path)
	}

	cfg.Core.IPAddress = strings.TrimSpace(cfg.Core.IPAddress)
	cfg.Core.Transport = strings.ToLower(strings.TrimSpace(cfg.Core.Transport))
	return cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override keys that are
// absent from the file.
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("core.ipaddress", "")
	v.SetDefault("core.path", "")
	v.SetDefault("core.refreshrate", d.Core.RefreshRate)
	v.SetDefault("core.user", d.Core.User)
	v.SetDefault("core.interval_us", d.Core.IntervalUS)
	v.SetDefault("core.transport", d.Core.Transport)
	v.SetDefault("plot.title", d.Plot.Title)
	v.SetDefault("plot.width", d.Plot.Width)
	v.SetDefault("plot.height", d.Plot.Height)
	v.SetDefault("plot.exclude", d.Plot.Exclude)
	v.SetDefault("ssh.strict_host_key_checking", d.SSH.StrictHostKeyChecking)
	v.SetDefault("ssh.timeout", d.SSH.Timeout.String())
}
