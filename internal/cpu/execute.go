package cpu

// execute dispatches a decoded opcode to its implementation. Branch and
// register-only instructions charge their own dummy cycles directly;
// everything else accrues cycles purely from the read/write calls its
// addressing mode and body made.
func (cpu *CPU) execute(opcode uint8, address uint16, pageCrossed bool) {
	switch opcode {
	case 0xA9, 0xA5, 0xB5, 0xAD, 0xBD, 0xB9, 0xA1, 0xB1:
		cpu.lda(address)
	case 0xA2, 0xA6, 0xB6, 0xAE, 0xBE:
		cpu.ldx(address)
	case 0xA0, 0xA4, 0xB4, 0xAC, 0xBC:
		cpu.ldy(address)
	case 0x85, 0x95, 0x8D, 0x9D, 0x99, 0x81, 0x91:
		cpu.sta(address)
	case 0x86, 0x96, 0x8E:
		cpu.stx(address)
	case 0x84, 0x94, 0x8C:
		cpu.sty(address)

	case 0x69, 0x65, 0x75, 0x6D, 0x7D, 0x79, 0x61, 0x71:
		cpu.adc(address)
	case 0xE9, 0xEB, 0xE5, 0xF5, 0xED, 0xFD, 0xF9, 0xE1, 0xF1:
		cpu.sbc(address)

	case 0x29, 0x25, 0x35, 0x2D, 0x3D, 0x39, 0x21, 0x31:
		cpu.and(address)
	case 0x09, 0x05, 0x15, 0x0D, 0x1D, 0x19, 0x01, 0x11:
		cpu.ora(address)
	case 0x49, 0x45, 0x55, 0x4D, 0x5D, 0x59, 0x41, 0x51:
		cpu.eor(address)

	case 0x0A:
		cpu.aslAccumulator()
	case 0x06, 0x16, 0x0E, 0x1E:
		cpu.asl(address)
	case 0x4A:
		cpu.lsrAccumulator()
	case 0x46, 0x56, 0x4E, 0x5E:
		cpu.lsr(address)
	case 0x2A:
		cpu.rolAccumulator()
	case 0x26, 0x36, 0x2E, 0x3E:
		cpu.rol(address)
	case 0x6A:
		cpu.rorAccumulator()
	case 0x66, 0x76, 0x6E, 0x7E:
		cpu.ror(address)

	case 0xC9, 0xC5, 0xD5, 0xCD, 0xDD, 0xD9, 0xC1, 0xD1:
		cpu.compare(cpu.A, address)
	case 0xE0, 0xE4, 0xEC:
		cpu.compare(cpu.X, address)
	case 0xC0, 0xC4, 0xCC:
		cpu.compare(cpu.Y, address)

	case 0xE6, 0xF6, 0xEE, 0xFE:
		cpu.inc(address)
	case 0xC6, 0xD6, 0xCE, 0xDE:
		cpu.dec(address)
	case 0xE8:
		cpu.Cycles++
		cpu.X++
		cpu.setZN(cpu.X)
	case 0xCA:
		cpu.Cycles++
		cpu.X--
		cpu.setZN(cpu.X)
	case 0xC8:
		cpu.Cycles++
		cpu.Y++
		cpu.setZN(cpu.Y)
	case 0x88:
		cpu.Cycles++
		cpu.Y--
		cpu.setZN(cpu.Y)

	case 0xAA:
		cpu.Cycles++
		cpu.X = cpu.A
		cpu.setZN(cpu.X)
	case 0x8A:
		cpu.Cycles++
		cpu.A = cpu.X
		cpu.setZN(cpu.A)
	case 0xA8:
		cpu.Cycles++
		cpu.Y = cpu.A
		cpu.setZN(cpu.Y)
	case 0x98:
		cpu.Cycles++
		cpu.A = cpu.Y
		cpu.setZN(cpu.A)
	case 0xBA:
		cpu.Cycles++
		cpu.X = cpu.SP
		cpu.setZN(cpu.X)
	case 0x9A:
		cpu.Cycles++
		cpu.SP = cpu.X

	case 0x48:
		cpu.Cycles++
		cpu.push(cpu.A)
	case 0x68:
		cpu.Cycles += 2
		cpu.A = cpu.pop()
		cpu.setZN(cpu.A)
	case 0x08:
		cpu.Cycles++
		cpu.push(cpu.GetStatusByte() | bFlagMask)
	case 0x28:
		cpu.Cycles += 2
		cpu.SetStatusByte(cpu.pop())

	case 0x18:
		cpu.Cycles++
		cpu.C = false
	case 0x38:
		cpu.Cycles++
		cpu.C = true
	case 0x58:
		cpu.Cycles++
		cpu.I = false
	case 0x78:
		cpu.Cycles++
		cpu.I = true
	case 0xB8:
		cpu.Cycles++
		cpu.V = false
	case 0xD8:
		cpu.Cycles++
		cpu.D = false
	case 0xF8:
		cpu.Cycles++
		cpu.D = true

	case 0x4C, 0x6C:
		cpu.PC = address
	case 0x20:
		cpu.Cycles++
		cpu.pushWord(cpu.PC - 1)
		cpu.PC = address
	case 0x60:
		cpu.Cycles += 3
		cpu.PC = cpu.popWord() + 1
	case 0x40:
		cpu.Cycles += 2
		cpu.SetStatusByte(cpu.pop())
		cpu.PC = cpu.popWord()

	case 0x90:
		cpu.branch(!cpu.C, address, pageCrossed)
	case 0xB0:
		cpu.branch(cpu.C, address, pageCrossed)
	case 0xD0:
		cpu.branch(!cpu.Z, address, pageCrossed)
	case 0xF0:
		cpu.branch(cpu.Z, address, pageCrossed)
	case 0x10:
		cpu.branch(!cpu.N, address, pageCrossed)
	case 0x30:
		cpu.branch(cpu.N, address, pageCrossed)
	case 0x50:
		cpu.branch(!cpu.V, address, pageCrossed)
	case 0x70:
		cpu.branch(cpu.V, address, pageCrossed)

	case 0x24, 0x2C:
		cpu.bit(address)
	case 0x00:
		cpu.BreakInterrupt()
	case 0xEA:
		cpu.Cycles++

	case 0xA3, 0xA7, 0xAF, 0xB3, 0xB7, 0xBF:
		cpu.lax(address)
	case 0x83, 0x87, 0x8F, 0x97:
		cpu.sax(address)
	case 0xC3, 0xC7, 0xCF, 0xD3, 0xD7, 0xDF, 0xDB:
		cpu.dcp(address)
	case 0xE3, 0xE7, 0xEF, 0xF3, 0xF7, 0xFF, 0xFB:
		cpu.isb(address)
	case 0x03, 0x07, 0x0F, 0x13, 0x17, 0x1F, 0x1B:
		cpu.slo(address)
	case 0x23, 0x27, 0x2F, 0x33, 0x37, 0x3F, 0x3B:
		cpu.rla(address)
	case 0x43, 0x47, 0x4F, 0x53, 0x57, 0x5F, 0x5B:
		cpu.sre(address)
	case 0x63, 0x67, 0x6F, 0x73, 0x77, 0x7F, 0x7B:
		cpu.rra(address)

	case 0x1A, 0x3A, 0x5A, 0x7A, 0xDA, 0xFA:
		cpu.Cycles++
	case 0x04, 0x44, 0x64, 0x14, 0x34, 0x54, 0x74, 0xD4, 0xF4,
		0x0C, 0x1C, 0x3C, 0x5C, 0x7C, 0xDC, 0xFC:
		cpu.read(address)

	default:
		// Undocumented NOP family (0x80, 0x89, ...): Immediate mode
		// already charged its one operand-fetch cycle in operandAddress;
		// nothing more to do.
	}
}

// branch applies the taken/not-taken/page-crossed cycle rule common to
// every conditional branch: the operand fetch already happened, so a
// taken branch costs one more cycle, and two more if it also crosses a
// page.
func (cpu *CPU) branch(condition bool, target uint16, pageCrossed bool) {
	if !condition {
		return
	}
	cpu.Cycles++
	if pageCrossed {
		cpu.Cycles++
	}
	cpu.PC = target
}

func (cpu *CPU) lda(address uint16) {
	cpu.A = cpu.read(address)
	cpu.setZN(cpu.A)
}

func (cpu *CPU) ldx(address uint16) {
	cpu.X = cpu.read(address)
	cpu.setZN(cpu.X)
}

func (cpu *CPU) ldy(address uint16) {
	cpu.Y = cpu.read(address)
	cpu.setZN(cpu.Y)
}

func (cpu *CPU) sta(address uint16) { cpu.write(address, cpu.A) }
func (cpu *CPU) stx(address uint16) { cpu.write(address, cpu.X) }
func (cpu *CPU) sty(address uint16) { cpu.write(address, cpu.Y) }

// addWithCarry implements ADC's canonical flag rules; SBC reuses it by
// feeding the one's complement of the operand.
func (cpu *CPU) addWithCarry(value uint8) {
	carry := uint16(0)
	if cpu.C {
		carry = 1
	}
	sum := uint16(cpu.A) + uint16(value) + carry
	result := uint8(sum)
	cpu.V = (cpu.A^result)&(value^result)&0x80 != 0
	cpu.C = sum > 0xFF
	cpu.A = result
	cpu.setZN(cpu.A)
}

func (cpu *CPU) adc(address uint16) {
	cpu.addWithCarry(cpu.read(address))
}

func (cpu *CPU) sbc(address uint16) {
	cpu.addWithCarry(cpu.read(address) ^ 0xFF)
}

func (cpu *CPU) and(address uint16) {
	cpu.A &= cpu.read(address)
	cpu.setZN(cpu.A)
}

func (cpu *CPU) ora(address uint16) {
	cpu.A |= cpu.read(address)
	cpu.setZN(cpu.A)
}

func (cpu *CPU) eor(address uint16) {
	cpu.A ^= cpu.read(address)
	cpu.setZN(cpu.A)
}

func (cpu *CPU) aslAccumulator() {
	cpu.Cycles++
	cpu.C = cpu.A&0x80 != 0
	cpu.A <<= 1
	cpu.setZN(cpu.A)
}

// Read-modify-write primitives charge one extra dummy cycle beyond
// their read+write bus accesses, standing in for the real 6502's
// write-back of the unmodified value; per the single-write invariant,
// only the final value is ever actually written to the bus.
func (cpu *CPU) asl(address uint16) uint8 {
	value := cpu.read(address)
	cpu.Cycles++
	cpu.C = value&0x80 != 0
	value <<= 1
	cpu.write(address, value)
	cpu.setZN(value)
	return value
}

func (cpu *CPU) lsrAccumulator() {
	cpu.Cycles++
	cpu.C = cpu.A&0x01 != 0
	cpu.A >>= 1
	cpu.setZN(cpu.A)
}

func (cpu *CPU) lsr(address uint16) uint8 {
	value := cpu.read(address)
	cpu.Cycles++
	cpu.C = value&0x01 != 0
	value >>= 1
	cpu.write(address, value)
	cpu.setZN(value)
	return value
}

func (cpu *CPU) rolAccumulator() {
	cpu.Cycles++
	oldCarry := cpu.C
	cpu.C = cpu.A&0x80 != 0
	cpu.A <<= 1
	if oldCarry {
		cpu.A |= 0x01
	}
	cpu.setZN(cpu.A)
}

func (cpu *CPU) rol(address uint16) uint8 {
	value := cpu.read(address)
	cpu.Cycles++
	oldCarry := cpu.C
	cpu.C = value&0x80 != 0
	value <<= 1
	if oldCarry {
		value |= 0x01
	}
	cpu.write(address, value)
	cpu.setZN(value)
	return value
}

func (cpu *CPU) rorAccumulator() {
	cpu.Cycles++
	oldCarry := cpu.C
	cpu.C = cpu.A&0x01 != 0
	cpu.A >>= 1
	if oldCarry {
		cpu.A |= 0x80
	}
	cpu.setZN(cpu.A)
}

func (cpu *CPU) ror(address uint16) uint8 {
	value := cpu.read(address)
	cpu.Cycles++
	oldCarry := cpu.C
	cpu.C = value&0x01 != 0
	value >>= 1
	if oldCarry {
		value |= 0x80
	}
	cpu.write(address, value)
	cpu.setZN(value)
	return value
}

func (cpu *CPU) compare(register uint8, address uint16) {
	value := cpu.read(address)
	result := register - value
	cpu.C = register >= value
	cpu.setZN(result)
}

func (cpu *CPU) inc(address uint16) {
	value := cpu.read(address) + 1
	cpu.Cycles++
	cpu.write(address, value)
	cpu.setZN(value)
}

func (cpu *CPU) dec(address uint16) {
	value := cpu.read(address) - 1
	cpu.Cycles++
	cpu.write(address, value)
	cpu.setZN(value)
}

func (cpu *CPU) bit(address uint16) {
	value := cpu.read(address)
	cpu.N = value&nFlagMask != 0
	cpu.V = value&vFlagMask != 0
	cpu.Z = cpu.A&value == 0
}

// Undocumented combo opcodes: each fuses a read-modify-write primitive
// with a load or accumulator operation, reusing the same primitives as
// their documented counterparts so any fix to e.g. asl/addWithCarry
// propagates automatically.

func (cpu *CPU) lax(address uint16) {
	cpu.A = cpu.read(address)
	cpu.X = cpu.A
	cpu.setZN(cpu.A)
}

func (cpu *CPU) sax(address uint16) {
	cpu.write(address, cpu.A&cpu.X)
}

func (cpu *CPU) dcp(address uint16) {
	value := cpu.read(address) - 1
	cpu.Cycles++
	cpu.write(address, value)
	result := cpu.A - value
	cpu.C = cpu.A >= value
	cpu.setZN(result)
}

func (cpu *CPU) isb(address uint16) {
	value := cpu.read(address) + 1
	cpu.Cycles++
	cpu.write(address, value)
	cpu.addWithCarry(value ^ 0xFF)
}

func (cpu *CPU) slo(address uint16) {
	value := cpu.asl(address)
	cpu.A |= value
	cpu.setZN(cpu.A)
}

func (cpu *CPU) rla(address uint16) {
	value := cpu.rol(address)
	cpu.A &= value
	cpu.setZN(cpu.A)
}

func (cpu *CPU) sre(address uint16) {
	value := cpu.lsr(address)
	cpu.A ^= value
	cpu.setZN(cpu.A)
}

func (cpu *CPU) rra(address uint16) {
	value := cpu.ror(address)
	cpu.addWithCarry(value)
}
