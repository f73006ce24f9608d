package intcode

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Line is one entry of a disassembly listing.
type Line struct {
	Addr     int64    // Address of the first cell
	Cells    []int64  // Cells covered by the line
	Mnemonic string   // Opcode mnemonic, or "data" for a cell that does not decode
	Operands []string // Rendered operands; "?" for cells past the end of the program
}

// String renders the line as "aaaa mnem operand, operand".
func (l Line) String() string {
	s := fmt.Sprintf("%04x %-5s%s", l.Addr, l.Mnemonic, strings.Join(l.Operands, ", "))
	return strings.TrimRight(s, " ")
}

// Disassemble decodes program linearly from address 0 without executing
// it. Cells that do not decode as an instruction become one-cell "data"
// lines, and decoding resumes at the next cell.
func Disassemble(program []int64) []Line {
	var lines []Line
	for addr := int64(0); addr < int64(len(program)); {
		inst, err := Decode(program, addr)
		if err != nil {
			lines = append(lines, Line{
				Addr:     addr,
				Cells:    program[addr : addr+1],
				Mnemonic: "data",
				Operands: []string{strconv.FormatInt(program[addr], 10)},
			})
			addr++
			continue
		}

		line := inst.line()
		line.Cells = program[addr : addr+1+int64(len(inst.Params))]
		lines = append(lines, line)
		addr += int64(inst.Width())
	}
	return lines
}

// WriteListing writes the disassembly of program to w, one line per
// instruction.
func WriteListing(w io.Writer, program []int64) error {
	for _, line := range Disassemble(program) {
		if _, err := fmt.Fprintln(w, line.String()); err != nil {
			return err
		}
	}
	return nil
}

// String renders the instruction the way a listing line shows it.
func (in Instruction) String() string {
	return in.line().String()
}

func (in Instruction) line() Line {
	l := Line{Addr: in.Addr, Mnemonic: in.Op.String()}
	for i := 0; i < in.Op.Params(); i++ {
		if i >= len(in.Params) {
			l.Operands = append(l.Operands, "?")
			continue
		}
		l.Operands = append(l.Operands, formatOperand(in.Params[i], in.Modes[i]))
	}
	return l
}

func formatOperand(value int64, mode Mode) string {
	switch mode {
	case ModeImmediate:
		return strconv.FormatInt(value, 10)
	case ModeRelative:
		switch {
		case value > 0:
			return fmt.Sprintf("[base+%d]", value)
		case value < 0:
			return fmt.Sprintf("[base%d]", value)
		}
		return "[base]"
	}
	return fmt.Sprintf("[%d]", value)
}
