package intcode

import (
	"errors"
	"fmt"
)

// Error categories. Every error returned by Execute matches exactly one of
// them through errors.Is.
var (
	// ErrCorruptProgram indicates the program itself is malformed. The
	// machine cannot continue and stays faulted until Reset.
	ErrCorruptProgram = errors.New("intcode: corrupt program")

	// ErrCallerContract indicates the caller did not honor the execution
	// contract (no input available, failing source, exhausted step budget).
	// The machine is left resumable at the current instruction.
	ErrCallerContract = errors.New("intcode: caller contract violation")
)

// Fault kinds, carried by *Fault.
var (
	// ErrUnknownOpcode indicates an instruction whose opcode is outside {1..9, 99}.
	ErrUnknownOpcode = errors.New("intcode: unknown opcode")

	// ErrUnknownMode indicates a parameter mode outside {0, 1, 2}.
	ErrUnknownMode = errors.New("intcode: unknown parameter mode")

	// ErrImmediateWrite indicates a write target encoded in immediate mode.
	ErrImmediateWrite = errors.New("intcode: write to immediate-mode parameter")

	// ErrNegativeAddress indicates an address that resolved below zero.
	ErrNegativeAddress = errors.New("intcode: index out of bounds")

	// ErrMemoryLimit indicates an address beyond the configured memory limit.
	ErrMemoryLimit = errors.New("intcode: memory limit exceeded")
)

// Caller contract violations.
var (
	// ErrInputExhausted indicates an input instruction ran with no value
	// available. Sources return it (possibly wrapped) when they are empty.
	ErrInputExhausted = errors.New("intcode: input exhausted")

	// ErrStepLimit indicates Execute ran out of its per-call step budget.
	ErrStepLimit = errors.New("intcode: step limit reached")
)

// ErrEmptyProgram is returned by Parse for text without any cells.
var ErrEmptyProgram = errors.New("intcode: empty program")

// Fault reports a malformed program detected while executing.
type Fault struct {
	Machine string // Machine name, empty if unnamed
	IP      int64  // Address of the faulting instruction
	Raw     int64  // Raw instruction cell
	Op      Opcode // Decoded opcode
	Param   int    // 1-based parameter index, 0 if the fault is not parameter-specific
	Addr    int64  // Resolved address for address faults
	Err     error  // One of the fault kinds
}

func (f *Fault) Error() string {
	prefix := "intcode"
	if f.Machine != "" {
		prefix = "intcode[" + f.Machine + "]"
	}
	var detail string
	switch {
	case errors.Is(f.Err, ErrNegativeAddress), errors.Is(f.Err, ErrMemoryLimit):
		detail = fmt.Sprintf("%s (param %d, address %d)", trimPrefix(f.Err), f.Param, f.Addr)
	case f.Param > 0:
		detail = fmt.Sprintf("%s (param %d)", trimPrefix(f.Err), f.Param)
	default:
		detail = trimPrefix(f.Err)
	}
	return fmt.Sprintf("%s: fault at ip=%d (instr %d, %s): %s", prefix, f.IP, f.Raw, f.Op, detail)
}

func (f *Fault) Unwrap() []error {
	return []error{ErrCorruptProgram, f.Err}
}

// InputError reports a failed input instruction. It wraps the source's
// error so errors.Is works for both ErrInputExhausted and
// context cancellation.
type InputError struct {
	Machine string
	IP      int64
	Err     error
}

func (e *InputError) Error() string {
	if e.Machine != "" {
		return fmt.Sprintf("intcode[%s]: input at ip=%d: %v", e.Machine, e.IP, e.Err)
	}
	return fmt.Sprintf("intcode: input at ip=%d: %v", e.IP, e.Err)
}

func (e *InputError) Unwrap() []error {
	return []error{ErrCallerContract, e.Err}
}

// StepLimitError reports that Execute used up its step budget.
type StepLimitError struct {
	Machine string
	IP      int64  // Next instruction to execute on resume
	Limit   uint64 // Budget per Execute call
}

func (e *StepLimitError) Error() string {
	if e.Machine != "" {
		return fmt.Sprintf("intcode[%s]: step limit %d reached at ip=%d", e.Machine, e.Limit, e.IP)
	}
	return fmt.Sprintf("intcode: step limit %d reached at ip=%d", e.Limit, e.IP)
}

func (e *StepLimitError) Unwrap() []error {
	return []error{ErrCallerContract, ErrStepLimit}
}

// ParseError reports a program token that is not a signed integer.
type ParseError struct {
	Index int    // 0-based cell index
	Token string // Offending token after trimming
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("intcode: cell %d: invalid value %q: %v", e.Index, e.Token, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func trimPrefix(err error) string {
	const p = "intcode: "
	s := err.Error()
	if len(s) > len(p) && s[:len(p)] == p {
		return s[len(p):]
	}
	return s
}
