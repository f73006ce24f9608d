package main

import (
	"github.com/chazu/intcode/intcode"
	"github.com/spf13/cobra"
)

func newDisasmCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "disasm PROGRAM",
		Short: "Print a disassembly listing without running the program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			program, err := intcode.LoadProgram(args[0])
			if err != nil {
				return err
			}
			return intcode.WriteListing(cmd.OutOrStdout(), program)
		},
	}
}
