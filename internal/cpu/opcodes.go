package cpu

// initOpcodeTable builds the 256-entry opcode-byte to (mnemonic,
// addressing mode) table. Unlisted bytes decode as (NOP, Implied).
func (cpu *CPU) initOpcodeTable() {
	for i := range cpu.instructions {
		cpu.instructions[i] = &opcodeInfo{Name: "NOP", Mode: Implied, Undocumented: true}
	}

	set := func(op uint8, name string, mode AddressingMode, acc access) {
		cpu.instructions[op] = &opcodeInfo{Name: name, Mode: mode, Access: acc}
	}
	setU := func(op uint8, name string, mode AddressingMode, acc access) {
		cpu.instructions[op] = &opcodeInfo{Name: name, Mode: mode, Access: acc, Undocumented: true}
	}

	// Load/Store
	set(0xA9, "LDA", Immediate, accessRead)
	set(0xA5, "LDA", ZeroPage, accessRead)
	set(0xB5, "LDA", ZeroPageX, accessRead)
	set(0xAD, "LDA", Absolute, accessRead)
	set(0xBD, "LDA", AbsoluteX, accessRead)
	set(0xB9, "LDA", AbsoluteY, accessRead)
	set(0xA1, "LDA", IndexedIndirect, accessRead)
	set(0xB1, "LDA", IndirectIndexed, accessRead)

	set(0xA2, "LDX", Immediate, accessRead)
	set(0xA6, "LDX", ZeroPage, accessRead)
	set(0xB6, "LDX", ZeroPageY, accessRead)
	set(0xAE, "LDX", Absolute, accessRead)
	set(0xBE, "LDX", AbsoluteY, accessRead)

	set(0xA0, "LDY", Immediate, accessRead)
	set(0xA4, "LDY", ZeroPage, accessRead)
	set(0xB4, "LDY", ZeroPageX, accessRead)
	set(0xAC, "LDY", Absolute, accessRead)
	set(0xBC, "LDY", AbsoluteX, accessRead)

	set(0x85, "STA", ZeroPage, accessWrite)
	set(0x95, "STA", ZeroPageX, accessWrite)
	set(0x8D, "STA", Absolute, accessWrite)
	set(0x9D, "STA", AbsoluteX, accessWrite)
	set(0x99, "STA", AbsoluteY, accessWrite)
	set(0x81, "STA", IndexedIndirect, accessWrite)
	set(0x91, "STA", IndirectIndexed, accessWrite)

	set(0x86, "STX", ZeroPage, accessWrite)
	set(0x96, "STX", ZeroPageY, accessWrite)
	set(0x8E, "STX", Absolute, accessWrite)

	set(0x84, "STY", ZeroPage, accessWrite)
	set(0x94, "STY", ZeroPageX, accessWrite)
	set(0x8C, "STY", Absolute, accessWrite)

	// Arithmetic
	set(0x69, "ADC", Immediate, accessRead)
	set(0x65, "ADC", ZeroPage, accessRead)
	set(0x75, "ADC", ZeroPageX, accessRead)
	set(0x6D, "ADC", Absolute, accessRead)
	set(0x7D, "ADC", AbsoluteX, accessRead)
	set(0x79, "ADC", AbsoluteY, accessRead)
	set(0x61, "ADC", IndexedIndirect, accessRead)
	set(0x71, "ADC", IndirectIndexed, accessRead)

	set(0xE9, "SBC", Immediate, accessRead)
	setU(0xEB, "SBC", Immediate, accessRead)
	set(0xE5, "SBC", ZeroPage, accessRead)
	set(0xF5, "SBC", ZeroPageX, accessRead)
	set(0xED, "SBC", Absolute, accessRead)
	set(0xFD, "SBC", AbsoluteX, accessRead)
	set(0xF9, "SBC", AbsoluteY, accessRead)
	set(0xE1, "SBC", IndexedIndirect, accessRead)
	set(0xF1, "SBC", IndirectIndexed, accessRead)

	// Logical
	set(0x29, "AND", Immediate, accessRead)
	set(0x25, "AND", ZeroPage, accessRead)
	set(0x35, "AND", ZeroPageX, accessRead)
	set(0x2D, "AND", Absolute, accessRead)
	set(0x3D, "AND", AbsoluteX, accessRead)
	set(0x39, "AND", AbsoluteY, accessRead)
	set(0x21, "AND", IndexedIndirect, accessRead)
	set(0x31, "AND", IndirectIndexed, accessRead)

	set(0x09, "ORA", Immediate, accessRead)
	set(0x05, "ORA", ZeroPage, accessRead)
	set(0x15, "ORA", ZeroPageX, accessRead)
	set(0x0D, "ORA", Absolute, accessRead)
	set(0x1D, "ORA", AbsoluteX, accessRead)
	set(0x19, "ORA", AbsoluteY, accessRead)
	set(0x01, "ORA", IndexedIndirect, accessRead)
	set(0x11, "ORA", IndirectIndexed, accessRead)

	set(0x49, "EOR", Immediate, accessRead)
	set(0x45, "EOR", ZeroPage, accessRead)
	set(0x55, "EOR", ZeroPageX, accessRead)
	set(0x4D, "EOR", Absolute, accessRead)
	set(0x5D, "EOR", AbsoluteX, accessRead)
	set(0x59, "EOR", AbsoluteY, accessRead)
	set(0x41, "EOR", IndexedIndirect, accessRead)
	set(0x51, "EOR", IndirectIndexed, accessRead)

	// Shifts / rotates
	set(0x0A, "ASL", Accumulator, accessRead)
	set(0x06, "ASL", ZeroPage, accessRMW)
	set(0x16, "ASL", ZeroPageX, accessRMW)
	set(0x0E, "ASL", Absolute, accessRMW)
	set(0x1E, "ASL", AbsoluteX, accessRMW)

	set(0x4A, "LSR", Accumulator, accessRead)
	set(0x46, "LSR", ZeroPage, accessRMW)
	set(0x56, "LSR", ZeroPageX, accessRMW)
	set(0x4E, "LSR", Absolute, accessRMW)
	set(0x5E, "LSR", AbsoluteX, accessRMW)

	set(0x2A, "ROL", Accumulator, accessRead)
	set(0x26, "ROL", ZeroPage, accessRMW)
	set(0x36, "ROL", ZeroPageX, accessRMW)
	set(0x2E, "ROL", Absolute, accessRMW)
	set(0x3E, "ROL", AbsoluteX, accessRMW)

	set(0x6A, "ROR", Accumulator, accessRead)
	set(0x66, "ROR", ZeroPage, accessRMW)
	set(0x76, "ROR", ZeroPageX, accessRMW)
	set(0x6E, "ROR", Absolute, accessRMW)
	set(0x7E, "ROR", AbsoluteX, accessRMW)

	// Comparisons
	set(0xC9, "CMP", Immediate, accessRead)
	set(0xC5, "CMP", ZeroPage, accessRead)
	set(0xD5, "CMP", ZeroPageX, accessRead)
	set(0xCD, "CMP", Absolute, accessRead)
	set(0xDD, "CMP", AbsoluteX, accessRead)
	set(0xD9, "CMP", AbsoluteY, accessRead)
	set(0xC1, "CMP", IndexedIndirect, accessRead)
	set(0xD1, "CMP", IndirectIndexed, accessRead)

	set(0xE0, "CPX", Immediate, accessRead)
	set(0xE4, "CPX", ZeroPage, accessRead)
	set(0xEC, "CPX", Absolute, accessRead)

	set(0xC0, "CPY", Immediate, accessRead)
	set(0xC4, "CPY", ZeroPage, accessRead)
	set(0xCC, "CPY", Absolute, accessRead)

	// Increment/decrement
	set(0xE6, "INC", ZeroPage, accessRMW)
	set(0xF6, "INC", ZeroPageX, accessRMW)
	set(0xEE, "INC", Absolute, accessRMW)
	set(0xFE, "INC", AbsoluteX, accessRMW)

	set(0xC6, "DEC", ZeroPage, accessRMW)
	set(0xD6, "DEC", ZeroPageX, accessRMW)
	set(0xCE, "DEC", Absolute, accessRMW)
	set(0xDE, "DEC", AbsoluteX, accessRMW)

	set(0xE8, "INX", Implied, accessRead)
	set(0xCA, "DEX", Implied, accessRead)
	set(0xC8, "INY", Implied, accessRead)
	set(0x88, "DEY", Implied, accessRead)

	// Transfers
	set(0xAA, "TAX", Implied, accessRead)
	set(0x8A, "TXA", Implied, accessRead)
	set(0xA8, "TAY", Implied, accessRead)
	set(0x98, "TYA", Implied, accessRead)
	set(0xBA, "TSX", Implied, accessRead)
	set(0x9A, "TXS", Implied, accessRead)

	// Stack
	set(0x48, "PHA", Implied, accessRead)
	set(0x68, "PLA", Implied, accessRead)
	set(0x08, "PHP", Implied, accessRead)
	set(0x28, "PLP", Implied, accessRead)

	// Flags
	set(0x18, "CLC", Implied, accessRead)
	set(0x38, "SEC", Implied, accessRead)
	set(0x58, "CLI", Implied, accessRead)
	set(0x78, "SEI", Implied, accessRead)
	set(0xB8, "CLV", Implied, accessRead)
	set(0xD8, "CLD", Implied, accessRead)
	set(0xF8, "SED", Implied, accessRead)

	// Control flow
	set(0x4C, "JMP", Absolute, accessRead)
	set(0x6C, "JMP", Indirect, accessRead)
	set(0x20, "JSR", Absolute, accessRead)
	set(0x60, "RTS", Implied, accessRead)
	set(0x40, "RTI", Implied, accessRead)

	// Branches
	set(0x90, "BCC", Relative, accessRead)
	set(0xB0, "BCS", Relative, accessRead)
	set(0xD0, "BNE", Relative, accessRead)
	set(0xF0, "BEQ", Relative, accessRead)
	set(0x10, "BPL", Relative, accessRead)
	set(0x30, "BMI", Relative, accessRead)
	set(0x50, "BVC", Relative, accessRead)
	set(0x70, "BVS", Relative, accessRead)

	set(0x24, "BIT", ZeroPage, accessRead)
	set(0x2C, "BIT", Absolute, accessRead)
	set(0x00, "BRK", Implied, accessRead)
	set(0xEA, "NOP", Implied, accessRead)

	// Undocumented NOPs, all treated as reads of their operand for
	// cycle purposes (they still fetch and may pay a page-cross).
	setU(0x1A, "NOP", Implied, accessRead)
	setU(0x3A, "NOP", Implied, accessRead)
	setU(0x5A, "NOP", Implied, accessRead)
	setU(0x7A, "NOP", Implied, accessRead)
	setU(0xDA, "NOP", Implied, accessRead)
	setU(0xFA, "NOP", Implied, accessRead)
	setU(0x80, "NOP", Immediate, accessRead)
	setU(0x82, "NOP", Immediate, accessRead)
	setU(0x89, "NOP", Immediate, accessRead)
	setU(0xC2, "NOP", Immediate, accessRead)
	setU(0xE2, "NOP", Immediate, accessRead)
	setU(0x04, "NOP", ZeroPage, accessRead)
	setU(0x44, "NOP", ZeroPage, accessRead)
	setU(0x64, "NOP", ZeroPage, accessRead)
	setU(0x14, "NOP", ZeroPageX, accessRead)
	setU(0x34, "NOP", ZeroPageX, accessRead)
	setU(0x54, "NOP", ZeroPageX, accessRead)
	setU(0x74, "NOP", ZeroPageX, accessRead)
	setU(0xD4, "NOP", ZeroPageX, accessRead)
	setU(0xF4, "NOP", ZeroPageX, accessRead)
	setU(0x0C, "NOP", Absolute, accessRead)
	setU(0x1C, "NOP", AbsoluteX, accessRead)
	setU(0x3C, "NOP", AbsoluteX, accessRead)
	setU(0x5C, "NOP", AbsoluteX, accessRead)
	setU(0x7C, "NOP", AbsoluteX, accessRead)
	setU(0xDC, "NOP", AbsoluteX, accessRead)
	setU(0xFC, "NOP", AbsoluteX, accessRead)

	// Undocumented combo opcodes
	laxModes := []struct {
		op   uint8
		mode AddressingMode
	}{
		{0xA3, IndexedIndirect}, {0xA7, ZeroPage}, {0xAF, Absolute},
		{0xB3, IndirectIndexed}, {0xB7, ZeroPageY}, {0xBF, AbsoluteY},
	}
	for _, m := range laxModes {
		setU(m.op, "LAX", m.mode, accessRead)
	}

	saxModes := []struct {
		op   uint8
		mode AddressingMode
	}{
		{0x83, IndexedIndirect}, {0x87, ZeroPage}, {0x8F, Absolute}, {0x97, ZeroPageY},
	}
	for _, m := range saxModes {
		setU(m.op, "SAX", m.mode, accessWrite)
	}

	rmwCombo := []struct {
		op   uint8
		name string
		mode AddressingMode
	}{
		{0xC3, "DCP", IndexedIndirect}, {0xC7, "DCP", ZeroPage}, {0xCF, "DCP", Absolute},
		{0xD3, "DCP", IndirectIndexed}, {0xD7, "DCP", ZeroPageX}, {0xDB, "DCP", AbsoluteY}, {0xDF, "DCP", AbsoluteX},

		{0xE3, "ISB", IndexedIndirect}, {0xE7, "ISB", ZeroPage}, {0xEF, "ISB", Absolute},
		{0xF3, "ISB", IndirectIndexed}, {0xF7, "ISB", ZeroPageX}, {0xFB, "ISB", AbsoluteY}, {0xFF, "ISB", AbsoluteX},

		{0x03, "SLO", IndexedIndirect}, {0x07, "SLO", ZeroPage}, {0x0F, "SLO", Absolute},
		{0x13, "SLO", IndirectIndexed}, {0x17, "SLO", ZeroPageX}, {0x1B, "SLO", AbsoluteY}, {0x1F, "SLO", AbsoluteX},

		{0x23, "RLA", IndexedIndirect}, {0x27, "RLA", ZeroPage}, {0x2F, "RLA", Absolute},
		{0x33, "RLA", IndirectIndexed}, {0x37, "RLA", ZeroPageX}, {0x3B, "RLA", AbsoluteY}, {0x3F, "RLA", AbsoluteX},

		{0x43, "SRE", IndexedIndirect}, {0x47, "SRE", ZeroPage}, {0x4F, "SRE", Absolute},
		{0x53, "SRE", IndirectIndexed}, {0x57, "SRE", ZeroPageX}, {0x5B, "SRE", AbsoluteY}, {0x5F, "SRE", AbsoluteX},

		{0x63, "RRA", IndexedIndirect}, {0x67, "RRA", ZeroPage}, {0x6F, "RRA", Absolute},
		{0x73, "RRA", IndirectIndexed}, {0x77, "RRA", ZeroPageX}, {0x7B, "RRA", AbsoluteY}, {0x7F, "RRA", AbsoluteX},
	}
	for _, m := range rmwCombo {
		setU(m.op, m.name, m.mode, accessRMW)
	}
}
