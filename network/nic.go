package network

import (
	"context"
	"sync"
	"time"

	"github.com/chazu/intcode/intcode"
)

// nic is a machine's network interface: an inbound packet queue shared
// with every sender, plus the framing state of the owning machine.
type nic struct {
	addr int

	mu     sync.Mutex
	queue  []int64 // flattened X, Y pairs
	idle   int     // consecutive empty polls
	halted bool

	// Owned by the machine's goroutine.
	booted bool
	frame  [3]int64
	framed int
	net    *Network
	err    error
}

func (c *nic) push(x, y int64) {
	c.mu.Lock()
	c.queue = append(c.queue, x, y)
	c.mu.Unlock()
}

// quiet reports whether the queue is empty and the machine has polled
// empty at least threshold times in a row. A halted machine never polls
// again and is always quiet. Callers hold net.mu.
func (c *nic) quiet(threshold int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.halted || len(c.queue) == 0 && c.idle >= threshold
}

func (c *nic) halt() {
	c.mu.Lock()
	c.halted = true
	c.mu.Unlock()
}

func (c *nic) resetIdle() {
	c.mu.Lock()
	c.idle = 0
	c.mu.Unlock()
}

// source returns the machine's input. The first value is the machine's
// address; after that it pops queued packet values, or sleeps for backoff
// and returns -1 when nothing is queued.
func (c *nic) source(ctx context.Context, backoff time.Duration) intcode.Source {
	return intcode.SourceFunc(func() (int64, error) {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		if !c.booted {
			c.booted = true
			return int64(c.addr), nil
		}

		c.mu.Lock()
		if len(c.queue) > 0 {
			v := c.queue[0]
			c.queue = c.queue[1:]
			c.idle = 0
			c.mu.Unlock()
			return v, nil
		}
		c.idle++
		c.mu.Unlock()

		if backoff > 0 {
			t := time.NewTimer(backoff)
			defer t.Stop()
			select {
			case <-t.C:
			case <-ctx.Done():
				return 0, ctx.Err()
			}
		}
		return -1, nil
	})
}

// Emit collects output into (dest, X, Y) frames and routes each complete
// frame. It suspends the machine when routing failed or the network is
// done.
func (c *nic) Emit(v int64) bool {
	c.frame[c.framed] = v
	c.framed++
	if c.framed < len(c.frame) {
		return false
	}
	c.framed = 0

	p := Packet{Src: c.addr, Dest: int(c.frame[0]), X: c.frame[1], Y: c.frame[2]}
	stop, err := c.net.route(p)
	if err != nil {
		c.err = err
		return true
	}
	return stop
}
