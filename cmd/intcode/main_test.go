package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the CLI with an empty configuration file so the result
// does not depend on the working directory.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cfg := filepath.Join(t.TempDir(), "intcode.toml")
	require.NoError(t, os.WriteFile(cfg, nil, 0o644))

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(append([]string{"--config", cfg}, args...))
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeProgram(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "program.txt")
	require.NoError(t, os.WriteFile(path, []byte(text+"\n"), 0o644))
	return path
}

func TestRunCommand(t *testing.T) {
	prog := writeProgram(t, "3,9,8,9,10,9,4,9,99,-1,8")

	out, _, err := execute(t, "", "run", prog, "--input", "8")
	require.NoError(t, err)
	assert.Equal(t, "1\n", out)

	_, _, err = execute(t, "", "run", prog)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "input exhausted")
}

func TestRunSetAndDump(t *testing.T) {
	prog := writeProgram(t, "1,0,0,0,99")

	out, _, err := execute(t, "", "run", prog, "--set", "1=4", "--set", "2=4", "--dump")
	require.NoError(t, err)
	assert.Equal(t, "198,4,4,0,99\n", out)

	_, _, err = execute(t, "", "run", prog, "--set", "nonsense")
	assert.ErrorContains(t, err, "ADDR=VALUE")
}

func TestRunTraceAndStepLimit(t *testing.T) {
	prog := writeProgram(t, "1105,1,0")

	_, stderr, err := execute(t, "", "run", prog, "--step-limit", "3", "--trace")
	assert.ErrorContains(t, err, "step limit 3")
	assert.Equal(t, 3, strings.Count(stderr, "0000 jnz  1, 0\n"))
}

func TestDisasmCommand(t *testing.T) {
	prog := writeProgram(t, "109,-3,204,0,99")

	out, _, err := execute(t, "", "disasm", prog)
	require.NoError(t, err)
	assert.Equal(t, "0000 arb  -3\n0002 out  [base]\n0004 hlt\n", out)
}

func TestAmpCommand(t *testing.T) {
	prog := writeProgram(t, "3,15,3,16,1002,16,10,16,1,16,15,15,4,15,99,0,0")

	out, _, err := execute(t, "", "amp", prog, "--workers", "2")
	require.NoError(t, err)
	assert.Equal(t, "signal: 43210\nphases: 4,3,2,1,0\n", out)

	out, _, err = execute(t, "", "amp", prog, "--order", "--phases", "4,3,2,1,0")
	require.NoError(t, err)
	assert.Equal(t, "signal: 43210\n", out)
}

func TestNetworkCommand(t *testing.T) {
	// Machine 0 sends (7, 8) to the NAT; the rest poll forever.
	prog := writeProgram(t, "3,100,1005,100,11,104,255,104,7,104,8,3,101,1105,1,11")

	out, _, err := execute(t, "", "network", prog, "--size", "3", "--backoff", "1ms", "--timeout", "10s")
	require.NoError(t, err)
	assert.Equal(t, "packet: 0->255 (7, 8)\nY: 8\n", out)
}

func TestASCIICommand(t *testing.T) {
	// Echo one line, then report 1000.
	prog := writeProgram(t, "3,100,4,100,1008,100,10,101,1006,101,0,104,1000,99")

	out, _, err := execute(t, "", "ascii", prog, "--line", "hey")
	require.NoError(t, err)
	assert.Equal(t, "hey\nresult: 1000\n", out)

	out, _, err = execute(t, "from stdin\n", "ascii", prog)
	require.NoError(t, err)
	assert.Equal(t, "from stdin\nresult: 1000\n", out)
}

func TestConfigErrors(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "intcode.toml")
	require.NoError(t, os.WriteFile(bad, []byte("[network]\nsize = -1\n"), 0o644))

	cmd := newRootCmd()
	cmd.SetArgs([]string{"--config", bad, "disasm", writeProgram(t, "99")})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	assert.ErrorContains(t, cmd.Execute(), "network.size")
}

func TestParseAssignment(t *testing.T) {
	addr, value, err := parseAssignment(" 12 = -3 ")
	require.NoError(t, err)
	assert.Equal(t, int64(12), addr)
	assert.Equal(t, int64(-3), value)

	_, _, err = parseAssignment("x=1")
	assert.Error(t, err)
}
