package amplifier

import (
	"context"
	"runtime"
	"slices"

	"github.com/chazu/intcode/intcode"
	"golang.org/x/sync/errgroup"
)

// Result is the best phase ordering found by MaxSignal.
type Result struct {
	Signal int64
	Phases []int64
}

// SearchOption configures MaxSignal.
type SearchOption func(*search)

type search struct {
	workers int
	seed    int64
	machine []intcode.Option
}

// WithWorkers bounds the number of orderings evaluated concurrently.
// Values below 1 mean GOMAXPROCS.
func WithWorkers(n int) SearchOption {
	return func(s *search) {
		s.workers = n
	}
}

// WithSeed sets the signal fed to the first amplifier. The default is 0.
func WithSeed(seed int64) SearchOption {
	return func(s *search) {
		s.seed = seed
	}
}

// WithMachineOptions applies opts to every machine in every circuit.
func WithMachineOptions(opts ...intcode.Option) SearchOption {
	return func(s *search) {
		s.machine = append(s.machine, opts...)
	}
}

// MaxSignal tries every ordering of phases and returns the one producing
// the highest signal. Orderings are independent and are evaluated on a
// bounded pool of goroutines. Ties go to the ordering generated first.
func MaxSignal(ctx context.Context, program []int64, phases []int64, mode Mode, opts ...SearchOption) (Result, error) {
	if len(phases) == 0 {
		return Result{}, ErrNoPhases
	}
	s := search{workers: runtime.GOMAXPROCS(0)}
	for _, opt := range opts {
		opt(&s)
	}
	if s.workers < 1 {
		s.workers = runtime.GOMAXPROCS(0)
	}

	orders := Permutations(phases)
	signals := make([]int64, len(orders))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, order := range orders {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			v, err := Run(program, order, s.seed, mode, s.machine...)
			if err != nil {
				return err
			}
			signals[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	best := 0
	for i := range signals {
		if signals[i] > signals[best] {
			best = i
		}
	}
	log.Infof("best %s signal %d with phases %v (%d orderings)", mode, signals[best], orders[best], len(orders))
	return Result{Signal: signals[best], Phases: slices.Clone(orders[best])}, nil
}

// Permutations returns every ordering of values, generated with Heap's
// algorithm. The first ordering is values itself.
func Permutations(values []int64) [][]int64 {
	a := slices.Clone(values)
	out := [][]int64{slices.Clone(a)}
	c := make([]int, len(a))
	for i := 1; i < len(a); {
		if c[i] < i {
			if i%2 == 0 {
				a[0], a[i] = a[i], a[0]
			} else {
				a[c[i]], a[i] = a[i], a[c[i]]
			}
			out = append(out, slices.Clone(a))
			c[i]++
			i = 1
		} else {
			c[i] = 0
			i++
		}
	}
	return out
}
