package cpu

import "testing"

// TestResetSequence tests the CPU reset sequence.
func TestResetSequence(t *testing.T) {
	t.Run("sets PC from vector and SP/I", func(t *testing.T) {
		helper := NewCPUTestHelper()
		helper.Memory.SetBytes(0xFFFC, 0x00, 0x80) // reset vector -> $8000

		helper.CPU.A = 0x55
		helper.CPU.X = 0xAA
		helper.CPU.Y = 0xFF
		helper.CPU.SP = 0x00
		helper.CPU.PC = 0x1234
		helper.CPU.I = false

		cyclesBefore := helper.CPU.Cycles
		helper.CPU.Reset()
		cycles := helper.CPU.Cycles - cyclesBefore

		if helper.CPU.PC != 0x8000 {
			t.Errorf("expected PC=0x8000, got 0x%04X", helper.CPU.PC)
		}
		if helper.CPU.SP != 0xFD {
			t.Errorf("expected SP=0xFD, got 0x%02X", helper.CPU.SP)
		}
		if !helper.CPU.I {
			t.Error("expected I set after reset")
		}
		if cycles != 7 {
			t.Errorf("expected 7 cycles for reset, got %d", cycles)
		}
		// Reset doesn't touch A/X/Y.
		if helper.CPU.A != 0x55 || helper.CPU.X != 0xAA || helper.CPU.Y != 0xFF {
			t.Error("reset should not modify A/X/Y")
		}
	})

	t.Run("different vector address", func(t *testing.T) {
		helper := NewCPUTestHelper()
		helper.Memory.SetBytes(0xFFFC, 0x34, 0x12)
		helper.CPU.Reset()
		if helper.CPU.PC != 0x1234 {
			t.Errorf("expected PC=0x1234, got 0x%04X", helper.CPU.PC)
		}
	})
}

// TestNMISequence tests the NMI entry sequence.
func TestNMISequence(t *testing.T) {
	t.Run("jumps to NMI vector and pushes state", func(t *testing.T) {
		helper := NewCPUTestHelper()
		helper.Memory.SetBytes(0xFFFA, 0x00, 0xB0) // NMI vector -> $B000
		helper.CPU.PC = 0x8ABC
		helper.CPU.SP = 0xFF
		helper.CPU.SetStatusByte(0x42)
		helper.CPU.I = false

		cyclesBefore := helper.CPU.Cycles
		helper.CPU.NMI()
		cycles := helper.CPU.Cycles - cyclesBefore

		if helper.CPU.PC != 0xB000 {
			t.Errorf("expected PC=0xB000, got 0x%04X", helper.CPU.PC)
		}
		if helper.CPU.SP != 0xFC {
			t.Errorf("expected SP=0xFC, got 0x%02X", helper.CPU.SP)
		}
		if !helper.CPU.I {
			t.Error("expected I set after NMI")
		}
		if cycles != 7 {
			t.Errorf("expected 7 cycles for NMI, got %d", cycles)
		}
		if got := helper.Memory.Read(0x01FF); got != 0x8A {
			t.Errorf("expected PC high 0x8A on stack, got 0x%02X", got)
		}
		if got := helper.Memory.Read(0x01FE); got != 0xBC {
			t.Errorf("expected PC low 0xBC on stack, got 0x%02X", got)
		}
		if got := helper.Memory.Read(0x01FD); got != 0x62 { // 0x42 | unused(0x20), B clear
			t.Errorf("expected status 0x62 on stack, got 0x%02X", got)
		}
	})

	t.Run("ignores the I flag", func(t *testing.T) {
		helper := NewCPUTestHelper()
		helper.Memory.SetBytes(0xFFFA, 0x34, 0x12)
		helper.CPU.PC = 0x8DEF
		helper.CPU.SP = 0xFF
		helper.CPU.I = true

		helper.CPU.NMI()

		if helper.CPU.PC != 0x1234 {
			t.Errorf("expected NMI to fire despite I set, got PC=0x%04X", helper.CPU.PC)
		}
	})
}

// TestIRQSequence tests the IRQ entry sequence. The CPU itself doesn't
// check the I flag before servicing IRQ(); that gate belongs to the
// caller (the scheduler), matching the package doc on IRQ.
func TestIRQSequence(t *testing.T) {
	helper := NewCPUTestHelper()
	helper.Memory.SetBytes(0xFFFE, 0x00, 0x90) // IRQ vector -> $9000
	helper.CPU.PC = 0x8123
	helper.CPU.SP = 0xFF
	helper.CPU.SetStatusByte(0x24)
	helper.CPU.I = false

	cyclesBefore := helper.CPU.Cycles
	helper.CPU.IRQ()
	cycles := helper.CPU.Cycles - cyclesBefore

	if helper.CPU.PC != 0x9000 {
		t.Errorf("expected PC=0x9000, got 0x%04X", helper.CPU.PC)
	}
	if helper.CPU.SP != 0xFC {
		t.Errorf("expected SP=0xFC, got 0x%02X", helper.CPU.SP)
	}
	if !helper.CPU.I {
		t.Error("expected I set after IRQ")
	}
	if cycles != 7 {
		t.Errorf("expected 7 cycles for IRQ, got %d", cycles)
	}
	if got := helper.Memory.Read(0x01FD); got != 0x20 { // B clear, unused set, no other flags
		t.Errorf("expected status 0x20 on stack, got 0x%02X", got)
	}
}

// TestBRKInstruction tests the BRK instruction, which is dispatched
// through Step() rather than called directly like NMI/IRQ.
func TestBRKInstruction(t *testing.T) {
	t.Run("jumps to IRQ/BRK vector with B set", func(t *testing.T) {
		helper := NewCPUTestHelper()
		helper.SetupResetVector(0x8000)
		helper.Memory.SetBytes(0xFFFE, 0x00, 0xD0) // shared IRQ/BRK vector -> $D000
		helper.LoadProgram(0x8000, 0x00)           // BRK
		helper.CPU.SP = 0xFF
		helper.CPU.SetStatusByte(0x24)
		helper.CPU.PC = 0x8000

		cyclesBefore := helper.CPU.Cycles
		helper.CPU.Step()
		cycles := helper.CPU.Cycles - cyclesBefore

		if helper.CPU.PC != 0xD000 {
			t.Errorf("expected PC=0xD000, got 0x%04X", helper.CPU.PC)
		}
		if helper.CPU.SP != 0xFC {
			t.Errorf("expected SP=0xFC, got 0x%02X", helper.CPU.SP)
		}
		if !helper.CPU.I {
			t.Error("expected I set after BRK")
		}
		if cycles != 7 {
			t.Errorf("expected 7 cycles for BRK, got %d", cycles)
		}
		if got := helper.Memory.Read(0x01FF); got != 0x80 {
			t.Errorf("expected PC+2 high byte 0x80 on stack, got 0x%02X", got)
		}
		if got := helper.Memory.Read(0x01FE); got != 0x02 {
			t.Errorf("expected PC+2 low byte 0x02 on stack, got 0x%02X", got)
		}
		if got := helper.Memory.Read(0x01FD); got != 0x34 { // 0x24 (I set) with unused and B forced on
			t.Errorf("expected status 0x34 on stack, got 0x%02X", got)
		}
	})

	t.Run("B flag forced set regardless of live B", func(t *testing.T) {
		helper := NewCPUTestHelper()
		helper.SetupResetVector(0x8000)
		helper.Memory.SetBytes(0xFFFE, 0x56, 0x78)
		helper.LoadProgram(0x8000, 0x00)
		helper.CPU.SP = 0xFF
		helper.CPU.B = false
		helper.CPU.I = false
		helper.CPU.PC = 0x8000

		helper.CPU.Step()

		if helper.CPU.PC != 0x7856 {
			t.Errorf("expected PC=0x7856, got 0x%04X", helper.CPU.PC)
		}
		if got := helper.Memory.Read(0x01FD); got&bFlagMask == 0 {
			t.Errorf("expected B set in pushed status, got 0x%02X", got)
		}
	})
}

// TestRTIInstruction tests RTI, the return path out of NMI/IRQ/BRK.
func TestRTIInstruction(t *testing.T) {
	t.Run("restores PC and SP", func(t *testing.T) {
		helper := NewCPUTestHelper()
		helper.SetupResetVector(0x8000)

		helper.CPU.SP = 0xFC
		helper.Memory.SetByte(0x01FD, 0x42)
		helper.Memory.SetByte(0x01FE, 0x34)
		helper.Memory.SetByte(0x01FF, 0x12)
		helper.LoadProgram(0x8000, 0x40) // RTI
		helper.CPU.PC = 0x8000

		cyclesBefore := helper.CPU.Cycles
		helper.CPU.Step()
		cycles := helper.CPU.Cycles - cyclesBefore

		if helper.CPU.PC != 0x1234 {
			t.Errorf("expected PC=0x1234, got 0x%04X", helper.CPU.PC)
		}
		if helper.CPU.SP != 0xFF {
			t.Errorf("expected SP=0xFF, got 0x%02X", helper.CPU.SP)
		}
		if cycles != 6 {
			t.Errorf("expected 6 cycles for RTI, got %d", cycles)
		}
	})

	t.Run("ignores the pulled B flag", func(t *testing.T) {
		helper := NewCPUTestHelper()
		helper.SetupResetVector(0x8000)

		helper.CPU.SP = 0xFC
		helper.Memory.SetByte(0x01FD, 0x30) // B set in the pulled byte
		helper.Memory.SetByte(0x01FE, 0x00)
		helper.Memory.SetByte(0x01FF, 0x90)
		helper.CPU.B = false
		helper.LoadProgram(0x8000, 0x40)
		helper.CPU.PC = 0x8000

		helper.CPU.Step()

		if helper.CPU.PC != 0x9000 {
			t.Errorf("expected PC=0x9000, got 0x%04X", helper.CPU.PC)
		}
		if helper.CPU.B {
			t.Error("RTI should not surface the pulled B flag as live state")
		}
	})
}

// TestInterruptStackWrap tests stack pointer wraparound during an
// interrupt entry with an already-low stack pointer.
func TestInterruptStackWrap(t *testing.T) {
	helper := NewCPUTestHelper()
	helper.Memory.SetBytes(0xFFFE, 0x00, 0xE0)
	helper.CPU.PC = 0x8789
	helper.CPU.SP = 0x02

	helper.CPU.IRQ()

	if helper.CPU.SP != 0xFF {
		t.Errorf("expected SP to wrap to 0xFF, got 0x%02X", helper.CPU.SP)
	}
	if got := helper.Memory.Read(0x0102); got != 0x87 {
		t.Errorf("expected PC high 0x87 at wrapped stack location, got 0x%02X", got)
	}
	if got := helper.Memory.Read(0x0101); got != 0x89 {
		t.Errorf("expected PC low 0x89 at wrapped stack location, got 0x%02X", got)
	}
}
