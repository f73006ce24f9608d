// Package config handles intcode.toml configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/chazu/intcode/amplifier"
	"github.com/chazu/intcode/intcode"
	"github.com/chazu/intcode/network"
)

// FileName is the configuration file looked up by FindAndLoad.
const FileName = "intcode.toml"

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("config: invalid value")

// Config represents an intcode.toml file.
type Config struct {
	Machine   Machine   `toml:"machine"`
	Amplifier Amplifier `toml:"amplifier"`
	Network   Network   `toml:"network"`
	ASCII     ASCII     `toml:"ascii"`
	Log       Log       `toml:"log"`

	// Path is the file the configuration was loaded from, empty for defaults.
	Path string `toml:"-"`
}

// Machine configures every machine the tool creates.
type Machine struct {
	StepLimit   uint64 `toml:"step-limit"`
	MemoryLimit int64  `toml:"memory-limit"`
	Trace       bool   `toml:"trace"`
}

// Amplifier configures the amp command.
type Amplifier struct {
	Phases  []int64 `toml:"phases"`
	Loop    bool    `toml:"loop"`
	Workers int     `toml:"workers"`
}

// Network configures the network command.
type Network struct {
	Size          int      `toml:"size"`
	NATAddress    int      `toml:"nat-address"`
	Mode          string   `toml:"mode"`
	PollBackoff   Duration `toml:"poll-backoff"`
	IdleThreshold int      `toml:"idle-threshold"`
}

// ASCII configures the ascii command.
type ASCII struct {
	Prompt      string `toml:"prompt"`
	HistoryFile string `toml:"history-file"`
}

// Log configures logging.
type Log struct {
	Verbosity int    `toml:"verbosity"`
	File      string `toml:"file"`
}

// Duration is a time.Duration written as a string such as "200ms".
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText formats the duration.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	return &Config{
		Amplifier: Amplifier{
			Phases: []int64{0, 1, 2, 3, 4},
		},
		Network: Network{
			Size:          network.DefaultSize,
			NATAddress:    network.DefaultNATAddress,
			Mode:          "first",
			PollBackoff:   Duration{network.DefaultPollBackoff},
			IdleThreshold: network.DefaultIdleThreshold,
		},
		ASCII: ASCII{
			Prompt: "> ",
		},
	}
}

// Load parses intcode.toml from the given directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, FileName))
}

// LoadFile parses the configuration file at path on top of the defaults.
// Unknown keys are rejected.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	c := Default()
	md, err := toml.Decode(string(data), c)
	if err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	c.Path, err = filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// FindAndLoad walks up from startDir to find an intcode.toml file, then
// loads it. Returns the defaults if no file is found.
func FindAndLoad(startDir string) (*Config, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return Default(), nil
		}
		dir = parent
	}
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	switch {
	case c.Machine.MemoryLimit < 0:
		return fmt.Errorf("%w: machine.memory-limit %d", ErrInvalid, c.Machine.MemoryLimit)
	case len(c.Amplifier.Phases) == 0:
		return fmt.Errorf("%w: amplifier.phases is empty", ErrInvalid)
	case c.Network.Size < 1:
		return fmt.Errorf("%w: network.size %d", ErrInvalid, c.Network.Size)
	case c.Network.IdleThreshold < 1:
		return fmt.Errorf("%w: network.idle-threshold %d", ErrInvalid, c.Network.IdleThreshold)
	case c.Network.PollBackoff.Duration < 0:
		return fmt.Errorf("%w: network.poll-backoff %s", ErrInvalid, c.Network.PollBackoff)
	case c.Log.Verbosity < 0:
		return fmt.Errorf("%w: log.verbosity %d", ErrInvalid, c.Log.Verbosity)
	}
	if _, err := c.NetworkMode(); err != nil {
		return err
	}
	return nil
}

// NetworkMode parses network.mode.
func (c *Config) NetworkMode() (network.Mode, error) {
	switch c.Network.Mode {
	case "", "first":
		return network.FirstNAT, nil
	case "idle":
		return network.IdleNAT, nil
	}
	return 0, fmt.Errorf("%w: network.mode %q (want first or idle)", ErrInvalid, c.Network.Mode)
}

// AmplifierMode returns the circuit topology.
func (c *Config) AmplifierMode() amplifier.Mode {
	if c.Amplifier.Loop {
		return amplifier.ModeLoop
	}
	return amplifier.ModeChain
}

// MachineOptions converts the [machine] table to machine options.
func (c *Config) MachineOptions() []intcode.Option {
	var opts []intcode.Option
	if c.Machine.StepLimit > 0 {
		opts = append(opts, intcode.WithStepLimit(c.Machine.StepLimit))
	}
	if c.Machine.MemoryLimit > 0 {
		opts = append(opts, intcode.WithMemoryLimit(c.Machine.MemoryLimit))
	}
	return opts
}

// NetworkOptions converts the [network] and [machine] tables to network
// options.
func (c *Config) NetworkOptions() ([]network.Option, error) {
	mode, err := c.NetworkMode()
	if err != nil {
		return nil, err
	}
	return []network.Option{
		network.WithSize(c.Network.Size),
		network.WithNATAddress(c.Network.NATAddress),
		network.WithMode(mode),
		network.WithPollBackoff(c.Network.PollBackoff.Duration),
		network.WithIdleThreshold(c.Network.IdleThreshold),
		network.WithMachineOptions(c.MachineOptions()...),
	}, nil
}
