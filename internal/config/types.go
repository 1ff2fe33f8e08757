package config

import "time"

// Transport names accepted in core.transport.
const (
	TransportSCP = "scp"
	TransportSSH = "ssh"
)

// Config is the parsed bwstat configuration file.
type Config struct {
	Core CoreConfig `yaml:"core" mapstructure:"core"`
	Plot PlotConfig `yaml:"plot" mapstructure:"plot"`
	SSH  SSHConfig  `yaml:"ssh" mapstructure:"ssh"`
}

// CoreConfig describes the device and how to reach the sample file.
type CoreConfig struct {
	// IPAddress is the device host name or address.
	IPAddress string `yaml:"ipaddress" mapstructure:"ipaddress"`

	// Path is the sample file location on the device.
	Path string `yaml:"path" mapstructure:"path"`

	// RefreshRate is the pause between watch cycles, in seconds.
	RefreshRate int `yaml:"refreshrate" mapstructure:"refreshrate"`

	// User is the remote login. The collector images only ship root.
	User string `yaml:"user" mapstructure:"user"`

	// IntervalUS is the collector's sampling interval in microseconds.
	IntervalUS int `yaml:"interval_us" mapstructure:"interval_us"`

	// Transport selects how the file is copied: "scp" or "ssh".
	Transport string `yaml:"transport" mapstructure:"transport"`
}

// PlotConfig controls rendered images.
type PlotConfig struct {
	Title string `yaml:"title" mapstructure:"title"`

	// Width and Height are in inches.
	Width  float64 `yaml:"width" mapstructure:"width"`
	Height float64 `yaml:"height" mapstructure:"height"`

	// Exclude lists initiator labels left out of the overlay plot.
	Exclude []string `yaml:"exclude" mapstructure:"exclude"`
}

// SSHConfig tunes the native ssh transport.
type SSHConfig struct {
	StrictHostKeyChecking bool          `yaml:"strict_host_key_checking" mapstructure:"strict_host_key_checking"`
	Timeout               time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// Refresh returns RefreshRate as a duration.
func (c CoreConfig) Refresh() time.Duration {
	return time.Duration(c.RefreshRate) * time.Second
}

// Remote returns the scp-style source, user@host:path.
func (c CoreConfig) Remote() string {
	return c.User + "@" + c.IPAddress + ":" + c.Path
}

// DefaultConfig returns a Config with every optional field filled in.
func DefaultConfig() *Config {
	return &Config{
		Core: CoreConfig{
			RefreshRate: 5,
			User:        "root",
			IntervalUS:  30000,
			Transport:   TransportSCP,
		},
		Plot: PlotConfig{
			Title:   "J6 L3 Bandwidth stats plot",
			Width:   10,
			Height:  10,
			Exclude: []string{},
		},
		SSH: SSHConfig{
			StrictHostKeyChecking: true,
			Timeout:               10 * time.Second,
		},
	}
}
