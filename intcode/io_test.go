package intcode

import (
	"context"
	"errors"
	"slices"
	"testing"
)

func TestQueue(t *testing.T) {
	q := NewQueue(1, 2)
	if q.Len() != 2 {
		t.Errorf("Len = %d, want 2", q.Len())
	}
	for _, want := range []int64{1, 2} {
		if v, err := q.Next(); err != nil || v != want {
			t.Errorf("Next = %d, %v; want %d", v, err, want)
		}
	}
	if _, err := q.Next(); !errors.Is(err, ErrInputExhausted) {
		t.Errorf("empty Next error = %v", err)
	}

	q.Push(3)
	if v, err := q.Next(); err != nil || v != 3 {
		t.Errorf("Next after Push = %d, %v; want 3", v, err)
	}
}

func TestChan(t *testing.T) {
	ch := make(chan int64, 2)
	ch <- 7
	close(ch)
	src := Chan(context.Background(), ch)

	if v, err := src.Next(); err != nil || v != 7 {
		t.Errorf("Next = %d, %v; want 7", v, err)
	}
	if _, err := src.Next(); !errors.Is(err, ErrInputExhausted) {
		t.Errorf("closed channel error = %v", err)
	}
}

func TestCollectorAndLatch(t *testing.T) {
	var c Collector
	if _, ok := c.Last(); ok {
		t.Error("empty collector has no last value")
	}
	c.Emit(1)
	if c.Emit(2) {
		t.Error("Collector should never suspend")
	}
	if v, ok := c.Last(); !ok || v != 2 {
		t.Errorf("Last = %d, %v", v, ok)
	}
	if !slices.Equal(c.Values(), []int64{1, 2}) {
		t.Errorf("Values = %v", c.Values())
	}
	c.Reset()
	if len(c.Values()) != 0 {
		t.Errorf("Values after Reset = %v", c.Values())
	}

	var l Latch
	if !l.Emit(5) {
		t.Error("Latch should suspend")
	}
	if v, ok := l.Take(); !ok || v != 5 {
		t.Errorf("Take = %d, %v", v, ok)
	}
	if _, ok := l.Take(); ok {
		t.Error("Take should clear the latch")
	}
}
