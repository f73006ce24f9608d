package intcode

import "fmt"

// Instruction is a decoded instruction cell together with its raw
// parameter cells.
type Instruction struct {
	Addr   int64   // Address of the instruction cell
	Raw    int64   // Raw instruction cell
	Op     Opcode  // Decoded opcode
	Modes  [3]Mode // Parameter modes, in parameter order
	Params []int64 // Raw parameter cells, len == Op.Params() unless truncated
}

// Width returns the number of cells the instruction occupies.
func (in Instruction) Width() int {
	return in.Op.Width()
}

// Truncated reports whether the program ended before all parameter cells.
func (in Instruction) Truncated() bool {
	return len(in.Params) < in.Op.Params()
}

// splitInstruction extracts the opcode and the three parameter modes from
// an instruction cell. Modes beyond the opcode's arity are returned as
// found and never validated.
func splitInstruction(raw int64) (Opcode, [3]Mode) {
	op := Opcode(raw % 100)
	rest := raw / 100
	var modes [3]Mode
	for i := range modes {
		modes[i] = Mode(rest % 10)
		rest /= 10
	}
	return op, modes
}

// checkInstruction validates the opcode and the modes of the parameters it
// uses. On failure it returns the 1-based parameter index (0 for opcode
// faults) and the fault kind.
func checkInstruction(op Opcode, modes [3]Mode) (int, error) {
	info, ok := opcodeInfoTable[op]
	if !ok {
		return 0, ErrUnknownOpcode
	}
	for i := 0; i < info.Params; i++ {
		if !modes[i].Valid() {
			return i + 1, ErrUnknownMode
		}
	}
	if info.Write > 0 && modes[info.Write-1] == ModeImmediate {
		return info.Write, ErrImmediateWrite
	}
	return 0, nil
}

// Decode decodes the instruction at addr without executing it. Parameter
// cells that lie past the end of program are omitted (see Truncated).
// A malformed instruction yields a *Fault.
func Decode(program []int64, addr int64) (Instruction, error) {
	if addr < 0 {
		return Instruction{}, &Fault{IP: addr, Addr: addr, Err: ErrNegativeAddress}
	}
	if addr >= int64(len(program)) {
		return Instruction{}, fmt.Errorf("intcode: address %d past end of program (%d cells)", addr, len(program))
	}
	raw := program[addr]
	op, modes := splitInstruction(raw)
	inst := Instruction{Addr: addr, Raw: raw, Op: op, Modes: modes}
	if param, kind := checkInstruction(op, modes); kind != nil {
		return inst, &Fault{IP: addr, Raw: raw, Op: op, Param: param, Err: kind}
	}
	n := op.Params()
	end := addr + 1 + int64(n)
	if end > int64(len(program)) {
		end = int64(len(program))
	}
	inst.Params = append([]int64(nil), program[addr+1:end]...)
	return inst, nil
}
