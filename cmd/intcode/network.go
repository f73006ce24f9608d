package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/chazu/intcode/intcode"
	"github.com/chazu/intcode/network"
	"github.com/spf13/cobra"
)

func newNetworkCmd(a *app) *cobra.Command {
	var (
		size    int
		nat     bool
		backoff time.Duration
		timeout time.Duration
		packets bool
	)

	cmd := &cobra.Command{
		Use:   "network PROGRAM",
		Short: "Run a packet network of machines and print the NAT result",
		Long: `Network boots one machine per address, each loaded with PROGRAM, and routes
the packets they send. Without --nat it stops at the first packet sent to
the NAT address. With --nat the NAT wakes address 0 whenever the network
is idle and the run stops when it sends the same Y value twice in a row.`,
		Example: `  intcode network day23.txt
  intcode network day23.txt --nat --backoff 10ms`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			program, err := intcode.LoadProgram(args[0])
			if err != nil {
				return err
			}

			opts, err := a.cfg.NetworkOptions()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("size") {
				opts = append(opts, network.WithSize(size))
			}
			if cmd.Flags().Changed("nat") {
				mode := network.FirstNAT
				if nat {
					mode = network.IdleNAT
				}
				opts = append(opts, network.WithMode(mode))
			}
			if cmd.Flags().Changed("backoff") {
				opts = append(opts, network.WithPollBackoff(backoff))
			}
			out := cmd.OutOrStdout()
			if packets {
				opts = append(opts, network.WithObserver(func(p network.Packet) {
					fmt.Fprintln(out, p)
				}))
			}

			n, err := network.New(program, opts...)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			p, err := n.Run(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "packet: %s\nY: %d\n", p, p.Y)
			return nil
		},
	}

	cmd.Flags().IntVar(&size, "size", network.DefaultSize, "Number of machines")
	cmd.Flags().BoolVar(&nat, "nat", false, "Run until the NAT repeats a Y value while waking an idle network")
	cmd.Flags().DurationVar(&backoff, "backoff", network.DefaultPollBackoff, "Sleep before a machine polling an empty queue gets -1")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Give up after this long (0 = no limit)")
	cmd.Flags().BoolVar(&packets, "packets", false, "Print every routed packet")
	return cmd
}
