package intcode

// Option configures a Machine.
type Option func(*Machine)

// WithName sets the name used in log lines and error messages.
func WithName(name string) Option {
	return func(m *Machine) {
		m.name = name
	}
}

// WithStepLimit bounds the number of instructions a single Execute call
// may dispatch. Zero (the default) means unlimited. When the budget runs
// out Execute returns an error matching ErrStepLimit and the machine stays
// resumable at the next instruction.
func WithStepLimit(steps uint64) Option {
	return func(m *Machine) {
		m.stepLimit = steps
	}
}

// WithMemoryLimit bounds the tape length in cells. Zero (the default)
// and values above MaxMemory mean MaxMemory. Addresses at or beyond the limit fault with
// ErrMemoryLimit.
func WithMemoryLimit(cells int64) Option {
	return func(m *Machine) {
		m.mem.limit = cells
	}
}

// WithTrace registers a hook called with every instruction right before it
// is dispatched.
func WithTrace(fn func(Instruction)) Option {
	return func(m *Machine) {
		m.trace = fn
	}
}
