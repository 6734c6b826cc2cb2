// Package cpu implements the 6502-variant CPU core used by the NES.
package cpu

// AddressingMode identifies how an opcode obtains its operand.
type AddressingMode int

const (
	Implied AddressingMode = iota
	Accumulator
	Immediate
	ZeroPage
	ZeroPageX
	ZeroPageY
	Relative
	Absolute
	AbsoluteX
	AbsoluteY
	Indirect
	IndexedIndirect // (zp,X)
	IndirectIndexed // (zp),Y
)

const (
	stackBase = 0x0100

	nFlagMask  = 0x80
	vFlagMask  = 0x40
	unusedMask = 0x20
	bFlagMask  = 0x10
	dFlagMask  = 0x08
	iFlagMask  = 0x04
	zFlagMask  = 0x02
	cFlagMask  = 0x01

	zeroPageMask = 0xFF
	pageMask     = 0xFF00

	nmiVector   = 0xFFFA
	resetVector = 0xFFFC
	irqVector   = 0xFFFE
)

// access classifies how an instruction's memory access affects the
// absolute-indexed and indirect-indexed page-cross penalty: a plain
// read only pays the extra cycle when the page actually changes, while
// a write or read-modify-write always pays it (the CPU performs a dummy
// read from the unfixed address either way).
type access int

const (
	accessRead access = iota
	accessWrite
	accessRMW
)

// opcodeInfo maps a single opcode byte to its mnemonic and addressing
// mode. Deliberately carries no cycle count: total cycles are derived
// from actual bus accesses plus the handful of intra-instruction dummy
// cycles coded into each instruction body, not looked up from a table.
type opcodeInfo struct {
	Name         string
	Mode         AddressingMode
	Access       access
	Undocumented bool
}

// MemoryInterface is the bus the CPU core talks to.
type MemoryInterface interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

// CPU is the 6502-variant processor core.
type CPU struct {
	A  uint8
	X  uint8
	Y  uint8
	SP uint8
	PC uint16

	C bool
	Z bool
	I bool
	D bool
	B bool
	V bool
	N bool

	memory MemoryInterface

	// Cycles is the running CPU cycle counter; every bus access through
	// read/write advances it by exactly one.
	Cycles uint64

	instructions [256]*opcodeInfo
}

// Lookup returns the mnemonic, addressing mode, and undocumented-opcode
// flag for an opcode byte, without executing it. Used by conformance
// tooling (internal/trace) that needs to decode an instruction before
// it runs.
func (cpu *CPU) Lookup(opcode uint8) (name string, mode AddressingMode, undocumented bool) {
	info := cpu.instructions[opcode]
	return info.Name, info.Mode, info.Undocumented
}

// New creates a CPU driving the given bus.
func New(memory MemoryInterface) *CPU {
	cpu := &CPU{memory: memory}
	cpu.initOpcodeTable()
	return cpu
}

func (cpu *CPU) read(address uint16) uint8 {
	cpu.Cycles++
	return cpu.memory.Read(address)
}

func (cpu *CPU) write(address uint16, value uint8) {
	cpu.Cycles++
	cpu.memory.Write(address, value)
}

func (cpu *CPU) readWord(address uint16) uint16 {
	low := uint16(cpu.read(address))
	high := uint16(cpu.read(address + 1))
	return (high << 8) | low
}

// readOnIndirect reproduces the 6502 indirect-addressing page-wrap bug:
// the high byte of the pointer is fetched from the same page as the low
// byte, wrapping instead of crossing into the next page.
func (cpu *CPU) readOnIndirect(pointer uint16) uint16 {
	low := uint16(cpu.read(pointer))
	hiAddr := (pointer & pageMask) | ((pointer + 1) & zeroPageMask)
	high := uint16(cpu.read(hiAddr))
	return (high << 8) | low
}

// PowerOn sets the register file to its documented power-up values.
func (cpu *CPU) PowerOn() {
	cpu.A = 0
	cpu.X = 0
	cpu.Y = 0
	cpu.SP = 0xFD
	cpu.SetStatusByte(0x34)
}

// Reset performs the 6502 reset sequence: 7 cycles total, 5 of them
// dummy bus activity folded into the stack-pointer adjustment, the last
// 2 the vector read.
func (cpu *CPU) Reset() {
	cpu.SP -= 3
	cpu.Cycles += 5
	cpu.I = true
	cpu.PC = cpu.readWord(resetVector)
}

// Step fetches, decodes, and executes exactly one instruction.
// Interrupt polling happens in the scheduler, not here: the scheduler
// owns the pre-fetch poll so RESET/NMI/IRQ/BRK priority is a scheduler
// concern, not a CPU-core one.
func (cpu *CPU) Step() {
	opcode := cpu.read(cpu.PC)
	cpu.PC++

	info := cpu.instructions[opcode]
	address, pageCrossed := cpu.operandAddress(info.Mode, info.Access)
	cpu.execute(opcode, address, pageCrossed)
}

// operandAddress evaluates the addressing mode, advancing PC and
// charging cycles exactly as a real 6502 would.
func (cpu *CPU) operandAddress(mode AddressingMode, acc access) (uint16, bool) {
	switch mode {
	case Implied, Accumulator:
		return 0, false

	case Immediate:
		address := cpu.PC
		cpu.PC++
		return address, false

	case ZeroPage:
		address := uint16(cpu.read(cpu.PC))
		cpu.PC++
		return address, false

	case ZeroPageX:
		base := cpu.read(cpu.PC)
		cpu.PC++
		cpu.Cycles++ // dummy read of the unindexed zero-page address
		return uint16(base+cpu.X) & zeroPageMask, false

	case ZeroPageY:
		base := cpu.read(cpu.PC)
		cpu.PC++
		cpu.Cycles++
		return uint16(base+cpu.Y) & zeroPageMask, false

	case Relative:
		offset := int8(cpu.read(cpu.PC))
		cpu.PC++
		target := uint16(int32(cpu.PC) + int32(offset))
		crossed := (cpu.PC & pageMask) != (target & pageMask)
		return target, crossed

	case Absolute:
		address := cpu.readWord(cpu.PC)
		cpu.PC += 2
		return address, false

	case AbsoluteX:
		base := cpu.readWord(cpu.PC)
		cpu.PC += 2
		address := base + uint16(cpu.X)
		crossed := (base & pageMask) != (address & pageMask)
		if acc != accessRead || crossed {
			cpu.Cycles++
		}
		return address, crossed

	case AbsoluteY:
		base := cpu.readWord(cpu.PC)
		cpu.PC += 2
		address := base + uint16(cpu.Y)
		crossed := (base & pageMask) != (address & pageMask)
		if acc != accessRead || crossed {
			cpu.Cycles++
		}
		return address, crossed

	case Indirect: // JMP only
		pointer := cpu.readWord(cpu.PC)
		cpu.PC += 2
		return cpu.readOnIndirect(pointer), false

	case IndexedIndirect:
		base := cpu.read(cpu.PC)
		cpu.PC++
		cpu.Cycles++ // dummy read before indexing
		pointer := uint16(base+cpu.X) & zeroPageMask
		return cpu.readOnIndirect(pointer), false

	case IndirectIndexed:
		pointer := uint16(cpu.read(cpu.PC))
		cpu.PC++
		base := cpu.readOnIndirect(pointer)
		address := base + uint16(cpu.Y)
		crossed := (base & pageMask) != (address & pageMask)
		if acc != accessRead || crossed {
			cpu.Cycles++
		}
		return address, crossed

	default:
		return 0, false
	}
}

func (cpu *CPU) push(value uint8) {
	cpu.write(stackBase+uint16(cpu.SP), value)
	cpu.SP--
}

func (cpu *CPU) pop() uint8 {
	cpu.SP++
	return cpu.read(stackBase + uint16(cpu.SP))
}

func (cpu *CPU) pushWord(value uint16) {
	cpu.push(uint8(value >> 8))
	cpu.push(uint8(value & 0xFF))
}

func (cpu *CPU) popWord() uint16 {
	low := uint16(cpu.pop())
	high := uint16(cpu.pop())
	return (high << 8) | low
}

func (cpu *CPU) setZN(value uint8) {
	cpu.Z = value == 0
	cpu.N = (value & nFlagMask) != 0
}

// GetStatusByte packs the discrete flag booleans into P, with bit 5
// (R) always set to 1. B reflects the live in-register field, which
// SetStatusByte clears; BRK/NMI/IRQ entry sets or clears the B bit only
// in the pushed copy (entryWithVector), never in the field itself.
func (cpu *CPU) GetStatusByte() uint8 {
	var status uint8
	if cpu.N {
		status |= nFlagMask
	}
	if cpu.V {
		status |= vFlagMask
	}
	status |= unusedMask
	if cpu.B {
		status |= bFlagMask
	}
	if cpu.D {
		status |= dFlagMask
	}
	if cpu.I {
		status |= iFlagMask
	}
	if cpu.Z {
		status |= zFlagMask
	}
	if cpu.C {
		status |= cFlagMask
	}
	return status
}

// SetStatusByte unpacks P into the flag booleans. B is not retained as
// live state: PLP/RTI pull it into nothing observable, matching the
// rule that the on-CPU P never exposes B or R outside of a push.
func (cpu *CPU) SetStatusByte(status uint8) {
	cpu.N = status&nFlagMask != 0
	cpu.V = status&vFlagMask != 0
	cpu.D = status&dFlagMask != 0
	cpu.I = status&iFlagMask != 0
	cpu.Z = status&zFlagMask != 0
	cpu.C = status&cFlagMask != 0
	cpu.B = false
}

// entryWithVector is the shared tail of NMI/IRQ/BRK entry: push PC,
// push P (with the given B-bit policy), set I, and load the vector.
func (cpu *CPU) entryWithVector(vector uint16, pushB bool) {
	cpu.pushWord(cpu.PC)
	status := cpu.GetStatusByte() &^ uint8(bFlagMask)
	if pushB {
		status |= bFlagMask
	}
	cpu.push(status)
	cpu.I = true
	cpu.PC = cpu.readWord(vector)
}

// NMI services a non-maskable interrupt: two throwaway reads to mimic
// the opcode-fetch cycles a real interrupt sequence burns before the
// push sequence, then entry with B cleared (hardware interrupt).
func (cpu *CPU) NMI() {
	cpu.read(cpu.PC)
	cpu.read(cpu.PC)
	cpu.entryWithVector(nmiVector, false)
}

// IRQ services a maskable interrupt. Caller must already have checked I.
func (cpu *CPU) IRQ() {
	cpu.read(cpu.PC)
	cpu.read(cpu.PC)
	cpu.entryWithVector(irqVector, false)
}

// BreakInterrupt executes BRK: the byte after the opcode is fetched and
// discarded (real hardware reads it even though BRK has no operand), PC
// advances past it so RTI resumes one byte later, and B is set on the
// pushed status (software interrupt).
func (cpu *CPU) BreakInterrupt() {
	cpu.read(cpu.PC)
	cpu.PC++
	cpu.entryWithVector(irqVector, true)
}
