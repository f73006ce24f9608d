// Package amplifier composes Intcode machines into amplifier circuits.
//
// A circuit is one machine per phase setting, all loaded with the same
// program. In a chain each amplifier runs to completion and hands its
// output to the next. In a feedback loop the last amplifier's output goes
// back to the first, and the machines are resumed in round-robin order
// through the suspendable execution contract until the last one halts.
package amplifier

import (
	"errors"
	"fmt"

	"github.com/chazu/intcode/intcode"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("intcode.amplifier")

var (
	// ErrNoPhases is returned for a circuit without amplifiers.
	ErrNoPhases = errors.New("amplifier: no phase settings")

	// ErrNoOutput is returned when an amplifier halts without emitting a
	// signal.
	ErrNoOutput = errors.New("amplifier: amplifier produced no output")
)

// Mode selects the circuit topology.
type Mode int

const (
	ModeChain Mode = iota // Amplifiers run once, in series
	ModeLoop              // Last amplifier feeds the first until it halts
)

func (m Mode) String() string {
	switch m {
	case ModeChain:
		return "chain"
	case ModeLoop:
		return "loop"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// StageError reports a failure of one amplifier in a circuit.
type StageError struct {
	Stage int   // 0-based amplifier index
	Phase int64 // Phase setting of the amplifier
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("amplifier %s (phase %d): %v", stageName(e.Stage), e.Phase, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// stageName returns A, B, C... for the first 26 amplifiers and a number
// after that.
func stageName(i int) string {
	if i < 26 {
		return string(rune('A' + i))
	}
	return fmt.Sprintf("#%d", i)
}

// Chain runs one fresh machine per phase in series. Each machine receives
// its phase setting followed by the previous amplifier's signal (seed for
// the first) and the last value it emits becomes the next signal.
func Chain(program []int64, phases []int64, seed int64, opts ...intcode.Option) (int64, error) {
	if len(phases) == 0 {
		return 0, ErrNoPhases
	}
	signal := seed
	for i, phase := range phases {
		var out intcode.Collector
		m := intcode.New(program, machineOptions(i, opts)...)
		if _, err := m.Execute(intcode.Values(phase, signal), &out); err != nil {
			return 0, &StageError{Stage: i, Phase: phase, Err: err}
		}
		v, ok := out.Last()
		if !ok {
			return 0, &StageError{Stage: i, Phase: phase, Err: ErrNoOutput}
		}
		signal = v
	}
	log.Debugf("chain %v: signal %d", phases, signal)
	return signal, nil
}

// Loop runs the amplifiers as a feedback loop. The first amplifier starts
// with its phase and seed, every other amplifier with its phase only. Each
// output is queued as input to the next amplifier, wrapping around, and
// the loop ends when the last amplifier halts. The result is the last
// signal the last amplifier emitted.
func Loop(program []int64, phases []int64, seed int64, opts ...intcode.Option) (int64, error) {
	n := len(phases)
	if n == 0 {
		return 0, ErrNoPhases
	}

	machines := make([]*intcode.Machine, n)
	queues := make([]*intcode.Queue, n)
	for i, phase := range phases {
		machines[i] = intcode.New(program, machineOptions(i, opts)...)
		queues[i] = intcode.NewQueue(phase)
	}
	queues[0].Push(seed)

	var (
		latch  intcode.Latch
		signal int64
		seen   bool
	)
	for round := 0; ; round++ {
		for i, m := range machines {
			status, err := m.Execute(queues[i], &latch)
			if err != nil {
				return 0, &StageError{Stage: i, Phase: phases[i], Err: err}
			}
			if v, ok := latch.Take(); ok {
				queues[(i+1)%n].Push(v)
				if i == n-1 {
					signal, seen = v, true
				}
			}
			if status == intcode.StatusHalted && i == n-1 {
				if !seen {
					return 0, &StageError{Stage: i, Phase: phases[i], Err: ErrNoOutput}
				}
				log.Debugf("loop %v: signal %d after %d rounds", phases, signal, round+1)
				return signal, nil
			}
		}
	}
}

// Run evaluates one phase ordering in the given mode.
func Run(program []int64, phases []int64, seed int64, mode Mode, opts ...intcode.Option) (int64, error) {
	if mode == ModeLoop {
		return Loop(program, phases, seed, opts...)
	}
	return Chain(program, phases, seed, opts...)
}

func machineOptions(stage int, opts []intcode.Option) []intcode.Option {
	all := make([]intcode.Option, 0, len(opts)+1)
	all = append(all, intcode.WithName("amp-"+stageName(stage)))
	return append(all, opts...)
}
