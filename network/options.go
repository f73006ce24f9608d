package network

import (
	"time"

	"github.com/chazu/intcode/intcode"
)

// Defaults used when the corresponding option is not given.
const (
	DefaultSize          = 50
	DefaultNATAddress    = 255
	DefaultPollBackoff   = 200 * time.Millisecond
	DefaultIdleThreshold = 2
)

// Option configures a Network.
type Option func(*Network)

// WithSize sets the number of machines. Machines get addresses 0..size-1.
func WithSize(size int) Option {
	return func(n *Network) {
		n.size = size
	}
}

// WithNATAddress sets the address captured by the NAT.
func WithNATAddress(addr int) Option {
	return func(n *Network) {
		n.natAddr = addr
	}
}

// WithMode selects when the network stops.
func WithMode(mode Mode) Option {
	return func(n *Network) {
		n.mode = mode
	}
}

// WithPollBackoff sets how long a machine sleeps after finding its queue
// empty, before it is handed the -1 "no packet" value.
func WithPollBackoff(d time.Duration) Option {
	return func(n *Network) {
		n.backoff = d
	}
}

// WithIdleThreshold sets how many consecutive empty polls every machine
// must make before the network counts as idle.
func WithIdleThreshold(polls int) Option {
	return func(n *Network) {
		n.idleThreshold = polls
	}
}

// WithObserver registers a callback invoked for every routed packet,
// including packets the NAT delivers. It is called from the sending
// machine's goroutine and must be safe for concurrent use.
func WithObserver(fn func(Packet)) Option {
	return func(n *Network) {
		n.observer = fn
	}
}

// WithMachineOptions applies opts to every machine.
func WithMachineOptions(opts ...intcode.Option) Option {
	return func(n *Network) {
		n.machineOpts = append(n.machineOpts, opts...)
	}
}
