package intcode

import (
	"bytes"
	"slices"
	"testing"
)

func TestWriteListing(t *testing.T) {
	program := MustParse("3,12,6,12,15,1,13,14,13,4,13,99,-1,0,1,9")
	want := `0000 in   [12]
0002 jz   [12], [15]
0005 add  [13], [14], [13]
0009 out  [13]
000b hlt
000c data -1
000d data 0
000e add  [9], ?, ?
`
	var buf bytes.Buffer
	if err := WriteListing(&buf, program); err != nil {
		t.Fatalf("WriteListing failed: %v", err)
	}
	if buf.String() != want {
		t.Errorf("listing:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestDisassembleOperands(t *testing.T) {
	program := []int64{109, -3, 204, 0, 22201, 5, -2, 1, 1108, 7, 8, 0, 99}
	want := []string{
		"0000 arb  -3",
		"0002 out  [base]",
		"0004 add  [base+5], [base-2], [base+1]",
		"0008 eq   7, 8, [0]",
		"000c hlt",
	}

	lines := Disassemble(program)
	var got []string
	for _, l := range lines {
		got = append(got, l.String())
	}
	if !slices.Equal(got, want) {
		t.Errorf("Disassemble =\n%v\nwant\n%v", got, want)
	}
	if len(lines[2].Cells) != 4 {
		t.Errorf("add covers %d cells, want 4", len(lines[2].Cells))
	}
}

func TestDisassembleBadModes(t *testing.T) {
	// 11101 writes through an immediate; 304 has an unknown mode.
	lines := Disassemble([]int64{11101, 304, 99})
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	if lines[0].Mnemonic != "data" || lines[1].Mnemonic != "data" || lines[2].Mnemonic != "hlt" {
		t.Errorf("mnemonics = %s %s %s", lines[0].Mnemonic, lines[1].Mnemonic, lines[2].Mnemonic)
	}
}

func TestDisassembleDoesNotMutate(t *testing.T) {
	program := MustParse("1,0,0,0,99")
	before := slices.Clone(program)
	Disassemble(program)
	if !slices.Equal(program, before) {
		t.Errorf("program changed to %v", program)
	}
}

func TestOpcodeInfo(t *testing.T) {
	widths := map[Opcode]int{
		OpAdd: 4, OpMul: 4, OpInput: 2, OpOutput: 2, OpJumpTrue: 3,
		OpJumpFalse: 3, OpLessThan: 4, OpEquals: 4, OpAdjustBase: 2, OpHalt: 1,
	}
	for _, op := range AllOpcodes() {
		if !op.Valid() {
			t.Errorf("%s should be valid", op)
		}
		if op.Width() != widths[op] {
			t.Errorf("%s width = %d, want %d", op, op.Width(), widths[op])
		}
	}
	if Opcode(42).Valid() {
		t.Error("opcode 42 should be invalid")
	}
	if Opcode(42).String() != "op(42)" {
		t.Errorf("String = %q", Opcode(42).String())
	}
	if info, ok := GetOpcodeInfo(OpInput); !ok || info.Write != 1 {
		t.Errorf("GetOpcodeInfo(in) = %+v, %v", info, ok)
	}
	if !OpJumpFalse.IsJump() || OpAdd.IsJump() {
		t.Error("IsJump mismatch")
	}
}

func TestDecodeTruncated(t *testing.T) {
	in, err := Decode([]int64{1101, 2}, 0)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !in.Truncated() || len(in.Params) != 1 {
		t.Errorf("Params = %v, Truncated = %v", in.Params, in.Truncated())
	}
	if in.Modes[0] != ModeImmediate || in.Modes[2] != ModePosition {
		t.Errorf("Modes = %v", in.Modes)
	}
	if _, err := Decode([]int64{99}, 5); err == nil {
		t.Error("Decode past the end should fail")
	}
}
