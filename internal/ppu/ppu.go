// Package ppu implements the Picture Processing Unit for the NES.
package ppu

import (
	"gones/internal/memory"
)

// SpritePixel is a resolved pixel from either the background or sprite
// pipeline, carried through compositing.
type SpritePixel struct {
	transparent bool
	colorIndex  uint8
	palette     uint8
	priority    uint8 // 0 = in front of background
	isSpriteZero bool
}

// PPU represents the NES Picture Processing Unit (2C02), stepped one
// dot at a time.
type PPU struct {
	// PPU Registers (CPU-visible)
	ppuCtrl   uint8 // $2000 - PPUCTRL
	ppuMask   uint8 // $2001 - PPUMASK
	ppuStatus uint8 // $2002 - PPUSTATUS
	oamAddr   uint8 // $2003 - OAMADDR

	// Internal PPU state
	v uint16 // Current VRAM address (15 bits)
	t uint16 // Temporary VRAM address (15 bits) - address latch
	x uint8  // Fine X scroll (3 bits)
	w bool   // Write latch (toggles between first/second write)

	openBus uint8 // last byte driven onto $2000-$2007, for open-bus reads

	memory *memory.PPUMemory

	// Rendering position
	scanline   int // -1 (pre-render) .. 260
	cycle      int // 0..340
	frameCount uint64
	oddFrame   bool
	readBuffer uint8 // PPU read buffer for $2007

	// Background pipeline: each dot shifts these registers one bit/pair
	// left; the MSB feeds the current pixel.
	bgPatternShiftLow  uint16
	bgPatternShiftHigh uint16
	bgAttrShiftLow     uint16
	bgAttrShiftHigh    uint16

	// Latches loaded every 8 dots, shifted into the registers above at
	// the tile boundary.
	nextTileID   uint8
	nextAttr     uint8
	nextPatternLow  uint8
	nextPatternHigh uint8

	// Sprite data
	oam          [256]uint8
	secondaryOAM [32]uint8
	spriteCount  int
	spriteIndexes [8]uint8 // original OAM index per secondary-OAM slot
	spritePatternLow  [8]uint8
	spritePatternHigh [8]uint8
	spriteAttr   [8]uint8
	spriteX      [8]uint8
	spriteZeroOnLine      bool
	spriteOverflow        bool

	// Frame buffer
	frameBuffer [256 * 240]uint32 // RGB

	// NMICallback, when set, is invoked at the dot /NMI is asserted
	// (scanline 241 dot 1), mirroring the scheduler wiring a real NES
	// board would use for the PPU's NMI line.
	nmiCallback           func()
	frameCompleteCallback func()

	// suppressVBlank is set when PPUSTATUS is read on the exact dot
	// VBlank would be flagged, racing the hardware flag-set: the read
	// sees it clear, and the pending set (and its NMI) for this frame
	// never happens.
	suppressVBlank bool
}

// New creates a new PPU instance.
func New() *PPU {
	p := &PPU{
		scanline: -1,
	}
	return p
}

// Reset returns the PPU to its power-up state.
func (p *PPU) Reset() {
	p.ppuCtrl = 0
	p.ppuMask = 0
	p.ppuStatus = 0
	p.oamAddr = 0

	p.v = 0
	p.t = 0
	p.x = 0
	p.w = false

	p.scanline = -1
	p.cycle = 0
	p.frameCount = 0
	p.oddFrame = false
	p.readBuffer = 0
	p.suppressVBlank = false

	p.spriteCount = 0
	p.spriteOverflow = false
	p.spriteZeroOnLine = false

	for i := range p.oam {
		p.oam[i] = 0
	}
	for i := range p.frameBuffer {
		p.frameBuffer[i] = 0
	}
}

// SetMemory sets the PPU memory interface.
func (p *PPU) SetMemory(m *memory.PPUMemory) {
	p.memory = m
}

// SetNMICallback sets the function invoked when /NMI is asserted.
func (p *PPU) SetNMICallback(callback func()) {
	p.nmiCallback = callback
}

// SetFrameCompleteCallback sets the function invoked once per frame,
// after the last dot of the post-render scanline.
func (p *PPU) SetFrameCompleteCallback(callback func()) {
	p.frameCompleteCallback = callback
}

func (p *PPU) backgroundEnabled() bool { return p.ppuMask&maskBackground != 0 }
func (p *PPU) spritesEnabled() bool    { return p.ppuMask&maskSprite != 0 }
func (p *PPU) renderingEnabled() bool  { return p.backgroundEnabled() || p.spritesEnabled() }

func (p *PPU) backgroundEnabledAt(x int) bool {
	return p.backgroundEnabled() && !(x < 8 && p.ppuMask&maskBGLeft == 0)
}

func (p *PPU) spritesEnabledAt(x int) bool {
	return p.spritesEnabled() && !(x < 8 && p.ppuMask&maskSpriteLeft == 0)
}

func (p *PPU) spriteHeight() int {
	if p.ppuCtrl&ctrlSpriteSize != 0 {
		return 16
	}
	return 8
}

// ReadRegister reads from a PPU register (CPU $2000-$2007). Unreadable
// ports return the last byte latched onto the bus instead of zero,
// matching real open-bus behavior.
func (p *PPU) ReadRegister(address uint16) uint8 {
	switch address & 7 {
	case 0: // PPUCTRL - write only
		return p.openBus
	case 1: // PPUMASK - write only
		return p.openBus
	case 2: // PPUSTATUS
		if p.scanline == vblankLine && p.cycle == 1 {
			// Reading on the exact dot VBlank would be set races the
			// flag: this read sees it clear, and suppresses the set
			// (and its NMI) for the rest of this frame.
			p.suppressVBlank = true
		}
		status := (p.ppuStatus & 0xE0) | (p.openBus & 0x1F)
		p.ppuStatus &^= statusVBlank
		p.w = false
		p.openBus = status
		return status
	case 3: // OAMADDR - write only
		return p.openBus
	case 4: // OAMDATA
		if p.scanline >= preRenderLine && p.scanline < postRenderLine &&
			p.cycle >= 1 && p.cycle <= 64 && p.renderingEnabled() {
			// Secondary OAM is being cleared to $FF during sprite
			// evaluation's init window; reads observe that, not
			// primary OAM.
			p.openBus = 0xFF
			return 0xFF
		}
		value := p.oam[p.oamAddr]
		p.openBus = value
		return value
	case 5, 6: // PPUSCROLL / PPUADDR - write only
		return p.openBus
	case 7: // PPUDATA
		value := p.readPPUData()
		p.openBus = value
		return value
	default:
		return p.openBus
	}
}

// WriteRegister writes to a PPU register (CPU $2000-$2007).
func (p *PPU) WriteRegister(address uint16, value uint8) {
	p.openBus = value
	switch address & 7 {
	case 0: // PPUCTRL
		wasNMIEnabled := p.ppuCtrl&ctrlNMIEnable != 0
		p.ppuCtrl = value
		p.t = (p.t & 0xF3FF) | ((uint16(value) & 0x03) << 10)
		// Toggling NMI enable on while VBlank is already set fires a
		// second NMI immediately, matching the 2C02's edge behavior.
		if !wasNMIEnabled && value&ctrlNMIEnable != 0 && p.ppuStatus&statusVBlank != 0 {
			if p.nmiCallback != nil {
				p.nmiCallback()
			}
		}
	case 1: // PPUMASK
		p.ppuMask = value
	case 2: // PPUSTATUS - read only
	case 3: // OAMADDR
		p.oamAddr = value
	case 4: // OAMDATA
		p.oam[p.oamAddr] = value
		p.oamAddr++
	case 5: // PPUSCROLL
		p.writePPUScroll(value)
	case 6: // PPUADDR
		p.writePPUAddr(value)
	case 7: // PPUDATA
		p.writePPUData(value)
	}
}

// WriteOAM writes to OAM at the specified address, used by OAM DMA.
func (p *PPU) WriteOAM(address uint8, value uint8) {
	p.oam[address] = value
}

func (p *PPU) writePPUScroll(value uint8) {
	if !p.w {
		p.t = (p.t & 0xFFE0) | (uint16(value) >> 3)
		p.x = value & 0x07
	} else {
		p.t = (p.t & 0x8FFF) | ((uint16(value) & 0x07) << 12)
		p.t = (p.t & 0xFC1F) | ((uint16(value) & 0xF8) << 2)
	}
	p.w = !p.w
}

func (p *PPU) writePPUAddr(value uint8) {
	if !p.w {
		p.t = (p.t & 0x00FF) | ((uint16(value) & 0x3F) << 8)
	} else {
		p.t = (p.t & 0xFF00) | uint16(value)
		p.v = p.t
	}
	p.w = !p.w
}

func (p *PPU) vramIncrement() uint16 {
	if p.ppuCtrl&ctrlVRAMIncrement != 0 {
		return 32
	}
	return 1
}

func (p *PPU) readPPUData() uint8 {
	address := p.v & 0x3FFF
	var value uint8
	if address >= 0x3F00 {
		value = p.memory.Read(address)
		p.readBuffer = p.memory.Read(address - 0x1000)
	} else {
		value = p.readBuffer
		p.readBuffer = p.memory.Read(address)
	}
	p.v += p.vramIncrement()
	return value
}

func (p *PPU) writePPUData(value uint8) {
	p.memory.Write(p.v&0x3FFF, value)
	p.v += p.vramIncrement()
}

// GetFrameBuffer returns a copy of the current RGB frame buffer.
func (p *PPU) GetFrameBuffer() [256 * 240]uint32 { return p.frameBuffer }
func (p *PPU) GetFrameCount() uint64             { return p.frameCount }
func (p *PPU) SetFrameCount(count uint64)        { p.frameCount = count }
func (p *PPU) GetScanline() int                  { return p.scanline }
func (p *PPU) GetCycle() int                     { return p.cycle }
func (p *PPU) IsRenderingEnabled() bool           { return p.renderingEnabled() }
func (p *PPU) IsVBlank() bool                     { return p.ppuStatus&statusVBlank != 0 }
func (p *PPU) IsSpriteZeroHit() bool              { return p.ppuStatus&statusSpriteZeroHit != 0 }
func (p *PPU) IsNMIEnabled() bool                 { return p.ppuCtrl&ctrlNMIEnable != 0 }

// ClearFrameBuffer fills the frame buffer with a single RGB color.
func (p *PPU) ClearFrameBuffer(color uint32) {
	for i := range p.frameBuffer {
		p.frameBuffer[i] = color
	}
}

// NESColorToRGB converts a NES palette index to an RGB888 value.
func NESColorToRGB(colorIndex uint8) uint32 {
	if colorIndex >= 64 {
		return 0
	}
	return nesColorPalette[colorIndex] & 0x00FFFFFF
}

func (p *PPU) NESColorToRGB(colorIndex uint8) uint32 { return NESColorToRGB(colorIndex) }
