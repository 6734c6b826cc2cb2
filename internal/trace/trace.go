// Package trace renders nestest-style disassembly lines for conformance
// testing. It never advances CPU state: every memory access it performs
// is a direct bus peek, never routed through the CPU's own read/write
// (which would charge cycles the instruction hasn't actually spent yet).
package trace

import (
	"fmt"
	"strings"

	"gones/internal/cpu"
)

// Memory is the read-only view the tracer needs. *memory.Memory and
// *memory.PPUMemory already satisfy this by virtue of satisfying
// cpu.MemoryInterface.
type Memory interface {
	Read(address uint16) uint8
}

// Entry captures CPU-visible state immediately before one instruction
// executes.
type Entry struct {
	PC       uint16
	Opcode   uint8
	Operand1 uint8
	Operand2 uint8
	A, X, Y  uint8
	SP       uint8
	P        uint8
	Cycle    uint64

	name         string
	mode         cpu.AddressingMode
	undocumented bool
}

// Capture snapshots the CPU and bus state for the instruction about to
// execute at c.PC. Call this immediately before cpu.Step().
func Capture(c *cpu.CPU, mem Memory) Entry {
	name, mode, undocumented := c.Lookup(mem.Read(c.PC))
	return Entry{
		PC:           c.PC,
		Opcode:       mem.Read(c.PC),
		Operand1:     mem.Read(c.PC + 1),
		Operand2:     mem.Read(c.PC + 2),
		A:            c.A,
		X:            c.X,
		Y:            c.Y,
		SP:           c.SP,
		P:            c.GetStatusByte(),
		Cycle:        c.Cycles,
		name:         name,
		mode:         mode,
		undocumented: undocumented,
	}
}

// readOnIndirect reproduces the 6502 indirect-addressing page-wrap bug
// via a direct bus peek, matching cpu.CPU's own unexported version but
// without charging any cycles.
func readOnIndirect(mem Memory, pointer uint16) uint16 {
	low := uint16(mem.Read(pointer))
	hiAddr := (pointer & 0xFF00) | ((pointer + 1) & 0x00FF)
	high := uint16(mem.Read(hiAddr))
	return (high << 8) | low
}

func (e Entry) operand16() uint16 {
	return uint16(e.Operand1) | uint16(e.Operand2)<<8
}

// instructionLength returns the total byte count of the instruction
// (opcode + operand bytes), used to decide how many machine-code bytes
// to print.
func instructionLength(mode cpu.AddressingMode) int {
	switch mode {
	case cpu.Immediate, cpu.ZeroPage, cpu.ZeroPageX, cpu.ZeroPageY,
		cpu.Relative, cpu.IndirectIndexed, cpu.IndexedIndirect:
		return 2
	case cpu.Indirect, cpu.Absolute, cpu.AbsoluteX, cpu.AbsoluteY:
		return 3
	default:
		return 1
	}
}

// decodeAddress resolves the address an instruction reads or writes,
// using only the entry's snapshotted operand bytes and registers (never
// the live CPU, which may have already moved on).
func (e Entry) decodeAddress(mem Memory) uint16 {
	switch e.mode {
	case cpu.Immediate, cpu.Relative:
		return e.PC
	case cpu.ZeroPage:
		return uint16(e.Operand1)
	case cpu.ZeroPageX:
		return uint16(e.Operand1+e.X) & 0xFF
	case cpu.ZeroPageY:
		return uint16(e.Operand1+e.Y) & 0xFF
	case cpu.Absolute:
		return e.operand16()
	case cpu.AbsoluteX:
		return e.operand16() + uint16(e.X)
	case cpu.AbsoluteY:
		return e.operand16() + uint16(e.Y)
	case cpu.Indirect:
		return readOnIndirect(mem, e.operand16())
	case cpu.IndexedIndirect:
		return readOnIndirect(mem, uint16(e.Operand1+e.X)&0xFF)
	case cpu.IndirectIndexed:
		return readOnIndirect(mem, uint16(e.Operand1)) + uint16(e.Y)
	default:
		return 0
	}
}

// String renders the entry in the nestest log convention:
//
//	PPPP  OP O1 O2  *MNE operand-text                A:AA X:XX Y:YY P:PP SP:SS CYC:nnn
func (e Entry) String(mem Memory) string {
	var machineCode string
	switch instructionLength(e.mode) {
	case 3:
		machineCode = fmt.Sprintf("%02X %02X %02X", e.Opcode, e.Operand1, e.Operand2)
	case 2:
		machineCode = fmt.Sprintf("%02X %02X   ", e.Opcode, e.Operand1)
	default:
		machineCode = fmt.Sprintf("%02X      ", e.Opcode)
	}

	registers := fmt.Sprintf("A:%02X X:%02X Y:%02X P:%02X SP:%02X",
		e.A, e.X, e.Y, e.P, e.SP)

	return fmt.Sprintf("%04X  %s %-32s CYC:%d",
		e.PC, machineCode, e.assembly(mem)+registers, e.Cycle)
}

func (e Entry) assembly(mem Memory) string {
	prefix := " "
	if e.undocumented {
		prefix = "*"
	}

	var operand string
	switch {
	case (e.name == "JMP" || e.name == "JSR") && e.mode == cpu.Absolute:
		operand = fmt.Sprintf("$%04X", e.decodeAddress(mem))

	case (e.name == "LSR" || e.name == "ASL" || e.name == "ROR" || e.name == "ROL") && e.mode == cpu.Accumulator:
		operand = "A"

	default:
		switch e.mode {
		case cpu.Implied, cpu.Accumulator:
			operand = ""
		case cpu.Immediate:
			operand = fmt.Sprintf("#$%02X", e.Operand1)
		case cpu.ZeroPage:
			operand = fmt.Sprintf("$%02X = %02X", e.Operand1, mem.Read(e.decodeAddress(mem)))
		case cpu.ZeroPageX:
			operand = fmt.Sprintf("$%02X,X @ %02X = %02X", e.Operand1, e.Operand1+e.X, mem.Read(e.decodeAddress(mem)))
		case cpu.ZeroPageY:
			operand = fmt.Sprintf("$%02X,Y @ %02X = %02X", e.Operand1, e.Operand1+e.Y, mem.Read(e.decodeAddress(mem)))
		case cpu.Absolute:
			operand = fmt.Sprintf("$%04X = %02X", e.operand16(), mem.Read(e.decodeAddress(mem)))
		case cpu.AbsoluteX:
			addr := e.operand16() + uint16(e.X)
			operand = fmt.Sprintf("$%04X,X @ %04X = %02X", e.operand16(), addr, mem.Read(addr))
		case cpu.AbsoluteY:
			addr := e.operand16() + uint16(e.Y)
			operand = fmt.Sprintf("$%04X,Y @ %04X = %02X", e.operand16(), addr, mem.Read(addr))
		case cpu.Relative:
			target := int32(e.PC) + 2 + int32(int8(e.Operand1))
			operand = fmt.Sprintf("$%04X", uint16(target))
		case cpu.Indirect:
			operand = fmt.Sprintf("($%04X) = %04X", e.operand16(), readOnIndirect(mem, e.operand16()))
		case cpu.IndexedIndirect:
			operandX := e.Operand1 + e.X
			addr := readOnIndirect(mem, uint16(operandX))
			operand = fmt.Sprintf("($%02X,X) @ %02X = %04X = %02X", e.Operand1, operandX, addr, mem.Read(addr))
		case cpu.IndirectIndexed:
			base := readOnIndirect(mem, uint16(e.Operand1))
			addr := base + uint16(e.Y)
			operand = fmt.Sprintf("($%02X),Y = %04X @ %04X = %02X", e.Operand1, base, addr, mem.Read(addr))
		}
	}

	return fmt.Sprintf("%s%s %-28s", prefix, e.name, strings.TrimRight(operand, " "))
}
