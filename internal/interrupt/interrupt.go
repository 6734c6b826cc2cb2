// Package interrupt implements the prioritized pending-interrupt latch
// shared between the scheduler and the CPU core.
package interrupt

// Kind is a bit within the latch. RESET outranks NMI outranks IRQ
// outranks BRK.
type Kind uint8

const (
	RESET Kind = 1 << 3
	NMI   Kind = 1 << 2
	IRQ   Kind = 1 << 1
	BRK   Kind = 1 << 0

	None Kind = 0
)

// Latch is a bit-set over the four interrupt sources.
type Latch struct {
	bits uint8
}

// Set raises the given source.
func (l *Latch) Set(kind Kind) {
	l.bits |= uint8(kind)
}

// Clear lowers the given source. RESET and NMI are edge-latched, so the
// caller clears them immediately after servicing; IRQ is level
// sensitive and the caller must clear it only when the external source
// actually deasserts.
func (l *Latch) Clear(kind Kind) {
	l.bits &^= uint8(kind)
}

// IsSet reports whether the given source is currently pending.
func (l *Latch) IsSet(kind Kind) bool {
	return l.bits&uint8(kind) == uint8(kind)
}

// Pending returns the highest-priority pending source, or None.
func (l *Latch) Pending() Kind {
	switch {
	case l.IsSet(RESET):
		return RESET
	case l.IsSet(NMI):
		return NMI
	case l.IsSet(IRQ):
		return IRQ
	case l.IsSet(BRK):
		return BRK
	default:
		return None
	}
}
