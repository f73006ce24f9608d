// Package network runs a network of Intcode machines exchanging packets.
//
// Every machine runs on its own goroutine with a network interface (NIC)
// holding a queue of inbound packets. A machine boots by reading its own
// address. After that each input instruction pops the next queued value,
// or gets -1 after a short sleep when nothing is queued; the -1 is
// meaningful only to the Intcode program. Output values are framed in
// threes (destination, X, Y) and the packet is appended to the
// destination's queue.
//
// Packets addressed to the NAT are captured instead of delivered. In
// FirstNAT mode the first such packet ends the run. In IdleNAT mode the
// NAT keeps only the latest packet and, whenever the network looks idle,
// sends it to address 0; the run ends when it sends the same Y twice in a
// row. Idle detection is a heuristic: every queue is empty and every
// machine has polled empty a number of times in a row.
package network

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/chazu/intcode/intcode"
	"github.com/tliron/commonlog"
	"golang.org/x/sync/errgroup"
)

var log = commonlog.GetLogger("intcode.network")

var (
	// ErrNoResult is returned when every machine halted before the NAT
	// produced a result.
	ErrNoResult = errors.New("network: all machines halted without a result")

	// ErrInvalidConfig is returned by New for unusable options.
	ErrInvalidConfig = errors.New("network: invalid configuration")
)

// Mode selects when a network run stops.
type Mode int

const (
	// FirstNAT stops at the first packet addressed to the NAT.
	FirstNAT Mode = iota

	// IdleNAT stops when the NAT wakes address 0 with the same Y twice in
	// a row.
	IdleNAT
)

func (m Mode) String() string {
	switch m {
	case FirstNAT:
		return "first"
	case IdleNAT:
		return "idle"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// Packet is a routed (X, Y) pair.
type Packet struct {
	Src  int
	Dest int
	X, Y int64
}

func (p Packet) String() string {
	return fmt.Sprintf("%d->%d (%d, %d)", p.Src, p.Dest, p.X, p.Y)
}

// RouteError reports a packet sent to an address with no machine.
type RouteError struct {
	Packet Packet
}

func (e *RouteError) Error() string {
	return fmt.Sprintf("network: no machine at address %d (packet %s)", e.Packet.Dest, e.Packet)
}

// Network is a set of machines running the same program.
type Network struct {
	program []int64

	size          int
	natAddr       int
	mode          Mode
	backoff       time.Duration
	idleThreshold int
	observer      func(Packet)
	machineOpts   []intcode.Option

	nics []*nic

	// mu guards the NAT and the result. Lock order: mu, then nic.mu.
	mu       sync.Mutex
	nat      Packet
	hasNAT   bool
	lastY    int64
	hasLastY bool
	result   Packet
	done     bool
	cancel   context.CancelFunc
}

// New creates a network of machines loaded with program.
func New(program []int64, opts ...Option) (*Network, error) {
	n := &Network{
		program:       program,
		size:          DefaultSize,
		natAddr:       DefaultNATAddress,
		mode:          FirstNAT,
		backoff:       DefaultPollBackoff,
		idleThreshold: DefaultIdleThreshold,
	}
	for _, opt := range opts {
		opt(n)
	}

	switch {
	case n.size < 1:
		return nil, fmt.Errorf("%w: size %d", ErrInvalidConfig, n.size)
	case n.natAddr >= 0 && n.natAddr < n.size:
		return nil, fmt.Errorf("%w: NAT address %d collides with a machine", ErrInvalidConfig, n.natAddr)
	case n.idleThreshold < 1:
		return nil, fmt.Errorf("%w: idle threshold %d", ErrInvalidConfig, n.idleThreshold)
	case n.backoff < 0:
		return nil, fmt.Errorf("%w: negative poll backoff", ErrInvalidConfig)
	}
	return n, nil
}

// Run boots every machine and blocks until the NAT produces a result,
// a machine fails, every machine halts, or ctx is done. A Network runs
// once.
func (n *Network) Run(ctx context.Context) (Packet, error) {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	n.mu.Lock()
	if n.nics != nil {
		n.mu.Unlock()
		return Packet{}, errors.New("network: already run")
	}
	n.cancel = cancel
	n.nics = make([]*nic, n.size)
	for i := range n.nics {
		n.nics[i] = &nic{addr: i, net: n}
	}
	n.mu.Unlock()

	log.Infof("starting %d machines (%s NAT mode)", n.size, n.mode)

	g, gctx := errgroup.WithContext(runCtx)
	var running atomic.Int64
	running.Store(int64(n.size))
	for _, c := range n.nics {
		g.Go(func() error {
			defer func() {
				if running.Add(-1) == 0 {
					cancel()
				}
			}()
			return n.work(gctx, c)
		})
	}
	if n.mode == IdleNAT {
		g.Go(func() error {
			n.monitor(gctx)
			return nil
		})
	}
	err := g.Wait()

	n.mu.Lock()
	result, done := n.result, n.done
	n.mu.Unlock()

	switch {
	case done:
		log.Infof("result: %s", result)
		return result, nil
	case err != nil:
		return Packet{}, err
	case ctx.Err() != nil:
		return Packet{}, ctx.Err()
	}
	return Packet{}, ErrNoResult
}

// work drives one machine until it halts or the run ends.
func (n *Network) work(ctx context.Context, c *nic) error {
	opts := append([]intcode.Option{intcode.WithName(fmt.Sprintf("nic-%d", c.addr))}, n.machineOpts...)
	m := intcode.New(n.program, opts...)
	in := c.source(ctx, n.backoff)

	for {
		status, err := m.Execute(in, c)
		if err != nil {
			if n.finished() {
				return nil
			}
			return fmt.Errorf("network: machine %d: %w", c.addr, err)
		}
		if c.err != nil {
			return c.err
		}
		if status == intcode.StatusHalted {
			log.Debugf("machine %d halted", c.addr)
			c.halt()
			return nil
		}
		if n.finished() {
			return nil
		}
	}
}

// route delivers p. It reports whether the sender should stop.
func (n *Network) route(p Packet) (bool, error) {
	if n.observer != nil {
		n.observer(p)
	}

	if p.Dest == n.natAddr {
		n.mu.Lock()
		defer n.mu.Unlock()
		if n.done {
			return true, nil
		}
		if n.mode == FirstNAT {
			n.finishLocked(p)
			return true, nil
		}
		n.nat, n.hasNAT = p, true
		log.Debugf("NAT holds %s", p)
		return false, nil
	}

	if p.Dest < 0 || p.Dest >= len(n.nics) {
		return true, &RouteError{Packet: p}
	}
	log.Debugf("route %s", p)
	n.nics[p.Dest].push(p.X, p.Y)
	return n.finished(), nil
}

// monitor wakes address 0 with the NAT packet whenever the network is
// idle.
func (n *Network) monitor(ctx context.Context) {
	interval := n.backoff
	if interval <= 0 {
		interval = time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		if p, ok := n.wake(); ok && n.observer != nil {
			n.observer(p)
		}
	}
}

// wake sends the NAT packet to address 0 if the network is idle. It
// returns the delivered packet.
func (n *Network) wake() (Packet, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.done || !n.hasNAT {
		return Packet{}, false
	}
	for _, c := range n.nics {
		if !c.quiet(n.idleThreshold) {
			return Packet{}, false
		}
	}

	p := Packet{Src: n.natAddr, Dest: 0, X: n.nat.X, Y: n.nat.Y}
	for _, c := range n.nics {
		c.resetIdle()
	}
	n.nics[0].push(p.X, p.Y)
	log.Infof("network idle, NAT sends %s", p)

	if n.hasLastY && n.lastY == p.Y {
		n.finishLocked(p)
	}
	n.lastY, n.hasLastY = p.Y, true
	return p, true
}

func (n *Network) finished() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.done
}

// finishLocked records the result and stops every machine. Callers hold
// n.mu.
func (n *Network) finishLocked(p Packet) {
	if n.done {
		return
	}
	n.result, n.done = p, true
	n.cancel()
}
