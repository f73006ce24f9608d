package main

import (
	"fmt"

	"github.com/chazu/intcode/amplifier"
	"github.com/chazu/intcode/intcode"
	"github.com/spf13/cobra"
)

func newAmpCmd(a *app) *cobra.Command {
	var (
		phases  string
		loop    bool
		workers int
		seed    int64
		order   bool
	)

	cmd := &cobra.Command{
		Use:   "amp PROGRAM",
		Short: "Find the phase ordering with the highest amplifier signal",
		Long: `Amp loads PROGRAM into one amplifier per phase setting and searches every
ordering of the phases for the highest output signal. With --loop the last
amplifier feeds back into the first until it halts.

With --order the phases are used as given and only that ordering runs.`,
		Example: `  intcode amp day07.txt
  intcode amp day07.txt --loop --phases 5,6,7,8,9`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			program, err := intcode.LoadProgram(args[0])
			if err != nil {
				return err
			}

			settings := a.cfg.Amplifier.Phases
			if cmd.Flags().Changed("phases") {
				if settings, err = parseValues(phases); err != nil {
					return fmt.Errorf("--phases: %w", err)
				}
			}
			mode := a.cfg.AmplifierMode()
			if cmd.Flags().Changed("loop") {
				mode = amplifier.ModeChain
				if loop {
					mode = amplifier.ModeLoop
				}
			}
			if !cmd.Flags().Changed("workers") {
				workers = a.cfg.Amplifier.Workers
			}

			out := cmd.OutOrStdout()
			if order {
				signal, err := amplifier.Run(program, settings, seed, mode, a.cfg.MachineOptions()...)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "signal: %d\n", signal)
				return nil
			}

			res, err := amplifier.MaxSignal(cmd.Context(), program, settings, mode,
				amplifier.WithWorkers(workers),
				amplifier.WithSeed(seed),
				amplifier.WithMachineOptions(a.cfg.MachineOptions()...),
			)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "signal: %d\nphases: %s\n", res.Signal, intcode.Format(res.Phases))
			return nil
		},
	}

	cmd.Flags().StringVar(&phases, "phases", "0,1,2,3,4", "Comma-separated phase settings")
	cmd.Flags().BoolVar(&loop, "loop", false, "Run the amplifiers as a feedback loop")
	cmd.Flags().IntVar(&workers, "workers", 0, "Orderings evaluated concurrently (0 = GOMAXPROCS)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Signal fed to the first amplifier")
	cmd.Flags().BoolVar(&order, "order", false, "Run the phases in the given order only")
	return cmd
}
