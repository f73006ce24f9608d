package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/chazu/intcode/amplifier"
	"github.com/chazu/intcode/network"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o644))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
[machine]
step-limit = 100000
memory-limit = 65536

[amplifier]
phases = [5, 6, 7, 8, 9]
loop = true
workers = 2

[network]
size = 10
mode = "idle"
poll-backoff = "5ms"
idle-threshold = 4

[ascii]
history-file = "/tmp/intcode_history"

[log]
verbosity = 2
`)

	c, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, uint64(100000), c.Machine.StepLimit)
	assert.Equal(t, int64(65536), c.Machine.MemoryLimit)
	assert.Equal(t, []int64{5, 6, 7, 8, 9}, c.Amplifier.Phases)
	assert.Equal(t, amplifier.ModeLoop, c.AmplifierMode())
	assert.Equal(t, 2, c.Amplifier.Workers)
	assert.Equal(t, 10, c.Network.Size)
	assert.Equal(t, 5*time.Millisecond, c.Network.PollBackoff.Duration)
	assert.Equal(t, 4, c.Network.IdleThreshold)
	assert.Equal(t, "/tmp/intcode_history", c.ASCII.HistoryFile)
	assert.Equal(t, 2, c.Log.Verbosity)
	assert.Equal(t, filepath.Join(dir, FileName), c.Path)

	// Keys not in the file keep their defaults.
	assert.Equal(t, network.DefaultNATAddress, c.Network.NATAddress)
	assert.Equal(t, "> ", c.ASCII.Prompt)

	mode, err := c.NetworkMode()
	require.NoError(t, err)
	assert.Equal(t, network.IdleNAT, mode)
	assert.Len(t, c.MachineOptions(), 2)

	opts, err := c.NetworkOptions()
	require.NoError(t, err)
	assert.Len(t, opts, 6)
}

func TestDefault(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())
	assert.Equal(t, amplifier.ModeChain, c.AmplifierMode())
	assert.Equal(t, network.DefaultSize, c.Network.Size)
	assert.Equal(t, network.DefaultPollBackoff, c.Network.PollBackoff.Duration)
	assert.Empty(t, c.MachineOptions())
	assert.Empty(t, c.Path)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"syntax", "[machine\n", "parse error"},
		{"unknown key", "[machine]\nspeed = 3\n", "unknown keys: machine.speed"},
		{"bad duration", "[network]\npoll-backoff = \"soon\"\n", "parse error"},
		{"bad mode", "[network]\nmode = \"ring\"\n", "network.mode"},
		{"zero size", "[network]\nsize = 0\n", "network.size"},
		{"empty phases", "[amplifier]\nphases = []\n", "amplifier.phases"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, tt.content)
			_, err := Load(dir)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	_, err := Load(t.TempDir())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFindAndLoad(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "[network]\nsize = 7\n")
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	c, err := FindAndLoad(nested)
	require.NoError(t, err)
	assert.Equal(t, 7, c.Network.Size)
	assert.Equal(t, filepath.Join(root, FileName), c.Path)
}
