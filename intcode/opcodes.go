package intcode

import "fmt"

// Opcode selects the operation a decoded instruction performs.
// It is the value of the two low decimal digits of an instruction cell.
type Opcode int64

const (
	OpAdd        Opcode = 1  // dst = a + b
	OpMul        Opcode = 2  // dst = a * b
	OpInput      Opcode = 3  // dst = next input value
	OpOutput     Opcode = 4  // emit a
	OpJumpTrue   Opcode = 5  // if a != 0 { ip = target }
	OpJumpFalse  Opcode = 6  // if a == 0 { ip = target }
	OpLessThan   Opcode = 7  // dst = a < b ? 1 : 0
	OpEquals     Opcode = 8  // dst = a == b ? 1 : 0
	OpAdjustBase Opcode = 9  // relative base += a
	OpHalt       Opcode = 99 // stop
)

// OpcodeInfo provides metadata about each opcode for decoding, listing and
// validation.
type OpcodeInfo struct {
	Name   string // Listing mnemonic
	Params int    // Number of parameter cells following the instruction
	Write  int    // 1-based index of the write-target parameter, 0 if none
}

// opcodeInfoTable maps opcodes to their metadata.
var opcodeInfoTable = map[Opcode]OpcodeInfo{
	OpAdd:        {"add", 3, 3},
	OpMul:        {"mul", 3, 3},
	OpInput:      {"in", 1, 1},
	OpOutput:     {"out", 1, 0},
	OpJumpTrue:   {"jnz", 2, 0},
	OpJumpFalse:  {"jz", 2, 0},
	OpLessThan:   {"lt", 3, 3},
	OpEquals:     {"eq", 3, 3},
	OpAdjustBase: {"arb", 1, 0},
	OpHalt:       {"hlt", 0, 0},
}

// GetOpcodeInfo returns metadata for an opcode.
// The second result is false if the opcode is not part of the instruction set.
func GetOpcodeInfo(op Opcode) (OpcodeInfo, bool) {
	info, ok := opcodeInfoTable[op]
	return info, ok
}

// Valid reports whether op is part of the instruction set.
func (op Opcode) Valid() bool {
	_, ok := opcodeInfoTable[op]
	return ok
}

// String returns the listing mnemonic of an opcode.
func (op Opcode) String() string {
	if info, ok := opcodeInfoTable[op]; ok {
		return info.Name
	}
	return fmt.Sprintf("op(%d)", int64(op))
}

// Params returns the number of parameter cells for this opcode.
func (op Opcode) Params() int {
	return opcodeInfoTable[op].Params
}

// Width returns the total number of cells an instruction occupies
// (the instruction cell plus its parameters).
func (op Opcode) Width() int {
	return 1 + op.Params()
}

// IsJump reports whether the opcode may set the instruction pointer directly.
func (op Opcode) IsJump() bool {
	return op == OpJumpTrue || op == OpJumpFalse
}

// AllOpcodes returns every opcode of the instruction set in ascending order.
func AllOpcodes() []Opcode {
	return []Opcode{
		OpAdd, OpMul, OpInput, OpOutput, OpJumpTrue,
		OpJumpFalse, OpLessThan, OpEquals, OpAdjustBase, OpHalt,
	}
}

// Mode is the addressing mode of a single parameter.
type Mode int8

const (
	ModePosition  Mode = 0 // value at tape[param]
	ModeImmediate Mode = 1 // the literal param
	ModeRelative  Mode = 2 // value at tape[base+param]
)

// Valid reports whether m is a known addressing mode.
func (m Mode) Valid() bool {
	return m >= ModePosition && m <= ModeRelative
}

func (m Mode) String() string {
	switch m {
	case ModePosition:
		return "position"
	case ModeImmediate:
		return "immediate"
	case ModeRelative:
		return "relative"
	}
	return fmt.Sprintf("mode(%d)", int8(m))
}
