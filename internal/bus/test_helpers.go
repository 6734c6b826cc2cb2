package bus

// SetFrameBufferForTesting sets a frame buffer for testing purposes.
func (b *Bus) SetFrameBufferForTesting(frameBuffer [256 * 240]uint32) {
	if b.PPU != nil {
		b.PPU.SetFrameBufferForTesting(frameBuffer)
	}
}

// StepWithError executes one emulation step and returns any error,
// exposed for tests that want an error-returning Step signature.
func (b *Bus) StepWithError() error {
	b.Step()
	return nil
}
