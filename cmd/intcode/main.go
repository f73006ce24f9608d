// Intcode CLI - runs, inspects and composes Intcode programs
package main

import (
	"fmt"
	"os"

	"github.com/chazu/intcode/config"
	"github.com/spf13/cobra"
)

var (
	Version = "dev"
	Commit  = "none"
)

// app holds state shared by every subcommand.
type app struct {
	configPath string
	verbose    int
	logFile    string

	cfg *config.Config
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "intcode",
		Short: "Run and inspect Intcode programs",
		Long: `intcode runs Intcode programs (comma-separated integer files) on the
Intcode machine, prints disassembly listings, and drives the multi-machine
setups: amplifier circuits, packet networks and ASCII terminals.

Settings are read from intcode.toml, searched upward from the current
directory unless --config is given. Command line flags override the file.`,
		Version:      fmt.Sprintf("%s (%s)", Version, Commit),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Configuration file (default: intcode.toml in the current or a parent directory)")
	rootCmd.PersistentFlags().CountVarP(&a.verbose, "verbose", "v", "Increase log verbosity (repeatable)")
	rootCmd.PersistentFlags().StringVar(&a.logFile, "log-file", "", "Write logs to this file instead of stderr")

	rootCmd.AddCommand(
		newRunCmd(a),
		newDisasmCmd(a),
		newAmpCmd(a),
		newNetworkCmd(a),
		newASCIICmd(a),
	)
	return rootCmd
}

// setup loads the configuration and configures logging.
func (a *app) setup() error {
	var err error
	if a.configPath != "" {
		a.cfg, err = config.LoadFile(a.configPath)
	} else {
		a.cfg, err = config.FindAndLoad(".")
	}
	if err != nil {
		return err
	}

	verbosity := a.cfg.Log.Verbosity
	if a.verbose > verbosity {
		verbosity = a.verbose
	}
	logFile := a.cfg.Log.File
	if a.logFile != "" {
		logFile = a.logFile
	}
	configureLogging(verbosity, logFile)

	if a.cfg.Path != "" {
		log.Infof("using configuration %s", a.cfg.Path)
	}
	return nil
}
