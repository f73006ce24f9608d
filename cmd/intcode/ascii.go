package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/chazu/intcode/ascii"
	"github.com/chazu/intcode/intcode"
	"github.com/spf13/cobra"
)

func newASCIICmd(a *app) *cobra.Command {
	var (
		script      string
		lines       []string
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "ascii PROGRAM",
		Short: "Run a program that reads and prints ASCII text",
		Long: `ASCII runs PROGRAM with text input and prints its character output. Input
lines come from --line flags, then from --script, then (with --interactive)
from the terminal; without --interactive standard input is read once the
other lines run out. Output values outside 0..255 are the program's
answer and are printed after the program halts.`,
		Example: `  intcode ascii day21.txt --script springscript.txt
  intcode ascii day25.txt --interactive`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			program, err := intcode.LoadProgram(args[0])
			if err != nil {
				return err
			}

			readers := []ascii.LineReader{&sliceReader{lines: lines}}
			if script != "" {
				f, err := os.Open(script)
				if err != nil {
					return fmt.Errorf("failed to open script: %w", err)
				}
				defer f.Close()
				readers = append(readers, newScanReader(f))
			}

			w := cmd.OutOrStdout()
			if interactive {
				history := a.cfg.ASCII.HistoryFile
				if history == "" {
					if home, err := os.UserHomeDir(); err == nil {
						history = filepath.Join(home, ".intcode_history")
					}
				}
				console, err := ascii.NewConsole(a.cfg.ASCII.Prompt, history)
				if err != nil {
					return err
				}
				defer console.Close()
				readers = append(readers, console)
				w = console.Stdout()
			} else {
				readers = append(readers, newScanReader(cmd.InOrStdin()))
			}

			out := ascii.NewOutput(w)
			m := intcode.New(program, a.cfg.MachineOptions()...)
			_, err = m.Execute(ascii.NewPrompt(&chainReader{readers: readers}), out)
			if err != nil {
				return err
			}
			if err := out.Err(); err != nil {
				return err
			}
			for _, v := range out.Results() {
				fmt.Fprintf(w, "result: %d\n", v)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&script, "script", "", "File with input lines")
	cmd.Flags().StringArrayVar(&lines, "line", nil, "Input line (repeatable)")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Read input lines from the terminal")
	return cmd
}

// sliceReader reads lines from memory.
type sliceReader struct {
	lines []string
}

func (r *sliceReader) Readline() (string, error) {
	if len(r.lines) == 0 {
		return "", io.EOF
	}
	line := r.lines[0]
	r.lines = r.lines[1:]
	return line, nil
}

// scanReader reads lines from an io.Reader.
type scanReader struct {
	s *bufio.Scanner
}

func newScanReader(r io.Reader) *scanReader {
	return &scanReader{s: bufio.NewScanner(r)}
}

func (r *scanReader) Readline() (string, error) {
	if r.s.Scan() {
		return r.s.Text(), nil
	}
	if err := r.s.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

// chainReader reads from each reader in turn until it reports io.EOF.
type chainReader struct {
	readers []ascii.LineReader
}

func (r *chainReader) Readline() (string, error) {
	for len(r.readers) > 0 {
		line, err := r.readers[0].Readline()
		if err == io.EOF {
			r.readers = r.readers[1:]
			continue
		}
		return line, err
	}
	return "", io.EOF
}
