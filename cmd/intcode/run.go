package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chazu/intcode/intcode"
	"github.com/spf13/cobra"
)

func newRunCmd(a *app) *cobra.Command {
	var (
		input     string
		sets      []string
		stepLimit uint64
		trace     bool
		dump      bool
	)

	cmd := &cobra.Command{
		Use:   "run PROGRAM",
		Short: "Run a program to completion and print its outputs",
		Long: `Run loads PROGRAM, runs it until it halts and prints every output value on
its own line. Input values are given with --input; a program that asks for
more input than provided stops with an "input exhausted" error.`,
		Example: `  intcode run day05.txt --input 5
  intcode run day02.txt --set 1=12 --set 2=2 --dump`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			program, err := intcode.LoadProgram(args[0])
			if err != nil {
				return err
			}
			inputs, err := parseValues(input)
			if err != nil {
				return fmt.Errorf("--input: %w", err)
			}

			opts := a.cfg.MachineOptions()
			if cmd.Flags().Changed("step-limit") {
				opts = append(opts, intcode.WithStepLimit(stepLimit))
			}
			if trace || a.cfg.Machine.Trace {
				stderr := cmd.ErrOrStderr()
				opts = append(opts, intcode.WithTrace(func(in intcode.Instruction) {
					fmt.Fprintln(stderr, in)
				}))
			}

			m := intcode.New(program, opts...)
			for _, s := range sets {
				addr, value, err := parseAssignment(s)
				if err != nil {
					return fmt.Errorf("--set: %w", err)
				}
				if err := m.Poke(addr, value); err != nil {
					return fmt.Errorf("--set: %w", err)
				}
			}

			out := cmd.OutOrStdout()
			err = m.Run(intcode.Values(inputs...), func(v int64) {
				fmt.Fprintln(out, v)
			})
			log.Debugf("%s after %d steps", m.Status(), m.Steps())
			if err != nil {
				return err
			}

			if dump {
				fmt.Fprintln(out, intcode.Format(m.Memory()))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "Comma-separated input values")
	cmd.Flags().StringArrayVar(&sets, "set", nil, "Set a memory cell before running (ADDR=VALUE, repeatable)")
	cmd.Flags().Uint64Var(&stepLimit, "step-limit", 0, "Stop after this many instructions (0 = unlimited)")
	cmd.Flags().BoolVar(&trace, "trace", false, "Print every instruction to stderr before it executes")
	cmd.Flags().BoolVar(&dump, "dump", false, "Print the final memory after the program halts")
	return cmd
}

// parseValues parses a comma-separated list of integers. An empty string
// is an empty list.
func parseValues(s string) ([]int64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	return intcode.Parse(s)
}

// parseAssignment parses ADDR=VALUE.
func parseAssignment(s string) (int64, int64, error) {
	addrText, valueText, ok := strings.Cut(s, "=")
	if !ok {
		return 0, 0, fmt.Errorf("%q is not ADDR=VALUE", s)
	}
	addr, err := strconv.ParseInt(strings.TrimSpace(addrText), 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("bad address in %q: %w", s, err)
	}
	value, err := strconv.ParseInt(strings.TrimSpace(valueText), 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("bad value in %q: %w", s, err)
	}
	return addr, value, nil
}
