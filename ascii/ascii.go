// Package ascii adapts Intcode machines that talk in ASCII.
//
// Such programs read one character code per input instruction and print
// one character per output instruction. A value that does not fit in a
// byte is not text but the program's answer, so Output keeps those apart.
package ascii

import (
	"io"

	"github.com/chazu/intcode/intcode"
)

// Input returns a source feeding the bytes of text in order.
func Input(text string) *intcode.Queue {
	q := intcode.NewQueue()
	for i := 0; i < len(text); i++ {
		q.Push(int64(text[i]))
	}
	return q
}

// Lines returns a source feeding every line followed by a newline.
func Lines(lines ...string) *intcode.Queue {
	q := intcode.NewQueue()
	for _, line := range lines {
		for i := 0; i < len(line); i++ {
			q.Push(int64(line[i]))
		}
		q.Push('\n')
	}
	return q
}

// Output is a sink that writes character codes to a writer and records
// every other value as a result. It never suspends the machine.
type Output struct {
	w       io.Writer
	results []int64
	err     error
	buf     [1]byte
}

// NewOutput returns an Output writing to w. A nil w discards text.
func NewOutput(w io.Writer) *Output {
	if w == nil {
		w = io.Discard
	}
	return &Output{w: w}
}

// Emit writes v as a byte when it is in 0..255 and records it otherwise.
// After a failed write text is dropped; see Err.
func (o *Output) Emit(v int64) bool {
	if v < 0 || v > 255 {
		o.results = append(o.results, v)
		return false
	}
	if o.err != nil {
		return false
	}
	o.buf[0] = byte(v)
	if _, err := o.w.Write(o.buf[:]); err != nil {
		o.err = err
	}
	return false
}

// Results returns the non-character values in emission order.
func (o *Output) Results() []int64 {
	return o.results
}

// Result returns the last non-character value.
func (o *Output) Result() (int64, bool) {
	if len(o.results) == 0 {
		return 0, false
	}
	return o.results[len(o.results)-1], true
}

// Err returns the first write error.
func (o *Output) Err() error {
	return o.err
}
