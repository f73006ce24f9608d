package intcode

import (
	"context"
	"fmt"
)

// Source produces one input value per input instruction.
//
// Next is called exactly once for every input instruction the machine
// executes. A Source with nothing to offer returns an error (typically
// wrapping ErrInputExhausted); the machine then returns that error from
// Execute without consuming the instruction.
type Source interface {
	Next() (int64, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func() (int64, error)

// Next calls f.
func (f SourceFunc) Next() (int64, error) {
	return f()
}

// Sink consumes output values. Returning true suspends the machine right
// after the output instruction; returning false lets it continue.
type Sink interface {
	Emit(v int64) bool
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(int64) bool

// Emit calls f.
func (f SinkFunc) Emit(v int64) bool {
	return f(v)
}

// Consume adapts a pure consumer to a Sink that never suspends.
func Consume(fn func(int64)) Sink {
	return SinkFunc(func(v int64) bool {
		if fn != nil {
			fn(v)
		}
		return false
	})
}

// Discard is a Sink that drops every value and never suspends.
var Discard Sink = SinkFunc(func(int64) bool { return false })

// NoInput is a Source that is always exhausted.
var NoInput Source = SourceFunc(func() (int64, error) { return 0, ErrInputExhausted })

// ---------------------------------------------------------------------------
// Queue
// ---------------------------------------------------------------------------

// Queue is a FIFO Source that orchestrators append to. It is not safe for
// concurrent use; the machine and its driver are expected to share a
// goroutine.
type Queue struct {
	values []int64
	head   int
}

// NewQueue returns a Queue holding values in order.
func NewQueue(values ...int64) *Queue {
	q := &Queue{}
	q.Push(values...)
	return q
}

// Values is shorthand for NewQueue, for fixed inputs.
func Values(values ...int64) *Queue {
	return NewQueue(values...)
}

// Push appends values to the back of the queue.
func (q *Queue) Push(values ...int64) {
	if q.head > 0 && q.head == len(q.values) {
		q.values = q.values[:0]
		q.head = 0
	}
	q.values = append(q.values, values...)
}

// Len returns the number of values not yet consumed.
func (q *Queue) Len() int {
	return len(q.values) - q.head
}

// Next pops the front value, or reports ErrInputExhausted when empty.
func (q *Queue) Next() (int64, error) {
	if q.head >= len(q.values) {
		return 0, ErrInputExhausted
	}
	v := q.values[q.head]
	q.head++
	return v, nil
}

// ---------------------------------------------------------------------------
// Channel source
// ---------------------------------------------------------------------------

// Chan returns a Source that blocks on ch until a value arrives. A closed
// channel reports ErrInputExhausted; a done context reports ctx.Err().
func Chan(ctx context.Context, ch <-chan int64) Source {
	return SourceFunc(func() (int64, error) {
		select {
		case v, ok := <-ch:
			if !ok {
				return 0, fmt.Errorf("channel closed: %w", ErrInputExhausted)
			}
			return v, nil
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	})
}

// ---------------------------------------------------------------------------
// Collecting sinks
// ---------------------------------------------------------------------------

// Collector records every output value and never suspends.
type Collector struct {
	values []int64
}

// Emit appends v.
func (c *Collector) Emit(v int64) bool {
	c.values = append(c.values, v)
	return false
}

// Values returns the collected values.
func (c *Collector) Values() []int64 {
	return c.values
}

// Last returns the most recent value, if any.
func (c *Collector) Last() (int64, bool) {
	if len(c.values) == 0 {
		return 0, false
	}
	return c.values[len(c.values)-1], true
}

// Reset forgets all collected values.
func (c *Collector) Reset() {
	c.values = c.values[:0]
}

// Latch holds the last output value and suspends the machine after every
// output, giving run-to-next-output behavior.
type Latch struct {
	Value int64
	Set   bool
}

// Emit stores v and requests suspension.
func (l *Latch) Emit(v int64) bool {
	l.Value = v
	l.Set = true
	return true
}

// Take returns the held value and clears the latch.
func (l *Latch) Take() (int64, bool) {
	v, ok := l.Value, l.Set
	l.Value, l.Set = 0, false
	return v, ok
}
