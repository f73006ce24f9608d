// Package intcode implements the Intcode virtual machine: a small,
// self-modifying, stored-program interpreter over a tape of signed
// 64-bit integer cells.
//
// # Machine model
//
// A Machine owns three pieces of state:
//
//   - the tape, a zero-indexed slice of int64 cells that grows (zero
//     filled) whenever an instruction reads or writes past its end
//   - the instruction pointer, which starts at 0
//   - the relative base, which starts at 0 and only changes through the
//     adjust-relative-base instruction
//
// Each instruction is a single cell packing a two-digit opcode and up to
// three parameter modes:
//
//	opcode + 100*mode1 + 1000*mode2 + 10000*mode3
//
// Parameters are resolved in position (0), immediate (1) or relative (2)
// mode. Write targets never accept immediate mode.
//
// # Execution contract
//
// Execute drives the decode/dispatch loop with a Source for input and a
// Sink for output. A Sink that returns true suspends the machine right
// after the output instruction; the next call to Execute resumes from the
// following instruction. Run is the run-to-completion form for callers
// that only consume output. Reset rewinds the instruction pointer and the
// relative base without touching memory.
//
// # Errors
//
// Malformed programs (unknown opcode or mode, writes to immediate
// parameters, negative addresses) stop the machine with a *Fault that
// matches ErrCorruptProgram. Input problems (an exhausted or failing
// Source) match ErrCallerContract and leave the machine resumable at the
// input instruction, so an orchestrator can supply more input and call
// Execute again.
//
// # Diagnostics
//
// Disassemble decodes a program without executing it and renders each
// instruction the way a listing tool would:
//
//	0000 in   [12]
//	0002 jz   [12], [15]
//	0005 add  [13], [14], [13]
package intcode
