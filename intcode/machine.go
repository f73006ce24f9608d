package intcode

import "fmt"

// Status is the execution state of a Machine.
type Status int

const (
	StatusReady     Status = iota // Constructed or reset, nothing executed yet
	StatusSuspended               // Paused after an output; Execute resumes
	StatusHalted                  // Executed opcode 99; terminal until Reset
	StatusFaulted                 // Stopped on a corrupt program; terminal until Reset
)

func (s Status) String() string {
	switch s {
	case StatusReady:
		return "ready"
	case StatusSuspended:
		return "suspended"
	case StatusHalted:
		return "halted"
	case StatusFaulted:
		return "faulted"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// Machine is a single Intcode interpreter instance. It is not safe for
// concurrent use; orchestrators that run machines on several goroutines
// give each machine its own goroutine.
type Machine struct {
	name string
	mem  tape
	ip   int64
	base int64

	status Status
	fault  error // sticky fault while status == StatusFaulted
	steps  uint64

	stepLimit uint64
	trace     func(Instruction)
}

// New creates a machine whose tape is a copy of program. The caller's
// slice is never modified.
func New(program []int64, opts ...Option) *Machine {
	m := &Machine{mem: newTape(program, 0)}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Execute runs the decode/dispatch loop until the program halts, the sink
// requests suspension, or an error occurs.
//
// It returns StatusHalted after opcode 99 and StatusSuspended when out
// returned true. Calling Execute on a halted machine returns StatusHalted
// without running anything. A nil in behaves like NoInput and a nil out
// like Discard.
//
// Errors matching ErrCorruptProgram leave the machine faulted. Errors
// matching ErrCallerContract leave it at the instruction that could not
// complete, so Execute may be called again once the caller has fixed the
// cause (for example by queuing more input).
func (m *Machine) Execute(in Source, out Sink) (Status, error) {
	switch m.status {
	case StatusHalted:
		return StatusHalted, nil
	case StatusFaulted:
		return StatusFaulted, m.fault
	}
	if in == nil {
		in = NoInput
	}
	if out == nil {
		out = Discard
	}

	var n uint64
	for {
		if m.stepLimit > 0 && n >= m.stepLimit {
			return m.status, &StepLimitError{Machine: m.name, IP: m.ip, Limit: m.stepLimit}
		}

		inst, err := m.fetch()
		if err != nil {
			return m.fail(err)
		}
		if m.trace != nil {
			m.trace(inst)
		}
		n++
		m.steps++

		switch inst.Op {
		case OpAdd:
			err = m.execAdd(inst)
		case OpMul:
			err = m.execMul(inst)
		case OpInput:
			err = m.execInput(inst, in)
		case OpOutput:
			var v int64
			v, err = m.execOutput(inst)
			if err == nil && out.Emit(v) {
				m.status = StatusSuspended
				log.Debugf("%s: suspended at ip=%d after output %d", m.label(), m.ip, v)
				return StatusSuspended, nil
			}
		case OpJumpTrue:
			err = m.execJump(inst, true)
		case OpJumpFalse:
			err = m.execJump(inst, false)
		case OpLessThan:
			err = m.execLessThan(inst)
		case OpEquals:
			err = m.execEquals(inst)
		case OpAdjustBase:
			err = m.execAdjustBase(inst)
		case OpHalt:
			m.status = StatusHalted
			log.Debugf("%s: halted at ip=%d (%d steps)", m.label(), m.ip, m.steps)
			return StatusHalted, nil
		}
		if err != nil {
			return m.fail(err)
		}
	}
}

// Run executes the program to completion, handing every output to out.
// It is the run-to-completion form of Execute.
func (m *Machine) Run(in Source, out func(int64)) error {
	_, err := m.Execute(in, Consume(out))
	return err
}

// Reset rewinds the instruction pointer and relative base to 0 and clears
// a halted or faulted status. Memory is left untouched.
func (m *Machine) Reset() {
	m.ip = 0
	m.base = 0
	m.status = StatusReady
	m.fault = nil
}

// Clone returns an independent copy of the machine, including its memory,
// registers, status and options.
func (m *Machine) Clone() *Machine {
	c := *m
	c.mem = m.mem.clone()
	return &c
}

// fail records a fault or passes through a caller contract error.
func (m *Machine) fail(err error) (Status, error) {
	if f, ok := err.(*Fault); ok {
		f.Machine = m.name
		m.status = StatusFaulted
		m.fault = f
		log.Debugf("%s: %v", m.label(), f)
		return StatusFaulted, f
	}
	return m.status, err
}

func (m *Machine) label() string {
	if m.name == "" {
		return "machine"
	}
	return m.name
}

// ---------------------------------------------------------------------------
// Debug accessors
// ---------------------------------------------------------------------------

// Name returns the name given with WithName.
func (m *Machine) Name() string { return m.name }

// Status returns the current execution status.
func (m *Machine) Status() Status { return m.status }

// IP returns the instruction pointer.
func (m *Machine) IP() int64 { return m.ip }

// RelativeBase returns the relative base.
func (m *Machine) RelativeBase() int64 { return m.base }

// Steps returns the number of instructions dispatched since construction.
func (m *Machine) Steps() uint64 { return m.steps }

// Len returns the current tape length in cells.
func (m *Machine) Len() int64 { return m.mem.len() }

// Memory returns a copy of the tape.
func (m *Machine) Memory() []int64 {
	out := make([]int64, len(m.mem.cells))
	copy(out, m.mem.cells)
	return out
}

// Peek reads a cell without growing the tape. Cells past the end read as
// zero.
func (m *Machine) Peek(addr int64) (int64, error) {
	v, err := m.mem.peek(addr)
	if err != nil {
		return 0, fmt.Errorf("peek %d: %w", addr, err)
	}
	return v, nil
}

// Poke writes a cell, growing the tape as needed.
func (m *Machine) Poke(addr, value int64) error {
	if err := m.mem.write(addr, value); err != nil {
		return fmt.Errorf("poke %d: %w", addr, err)
	}
	return nil
}
