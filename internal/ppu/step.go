package ppu

const (
	lastDot  = 340
	lastLine = 260

	preRenderLine  = -1
	postRenderLine = 240
	vblankLine     = 241
)

// Step advances the PPU by exactly one dot (1/3 of a CPU cycle on NTSC
// hardware). The caller (the scheduler) is responsible for the 1:3
// CPU:PPU stepping ratio.
func (p *PPU) Step() {
	p.processDot()
	p.advanceDot()
}

func (p *PPU) processDot() {
	renderLine := p.scanline >= preRenderLine && p.scanline < postRenderLine
	if renderLine {
		p.renderDot()
	}

	if p.scanline == vblankLine && p.cycle == 1 {
		if p.suppressVBlank {
			p.suppressVBlank = false
		} else {
			p.ppuStatus |= statusVBlank
			if p.ppuCtrl&ctrlNMIEnable != 0 && p.nmiCallback != nil {
				p.nmiCallback()
			}
		}
	}

	if p.scanline == preRenderLine && p.cycle == 1 {
		p.ppuStatus &^= statusVBlank | statusSpriteZeroHit | statusSpriteOverflow
	}
}

// renderDot runs the background/sprite pipeline for one dot of a
// visible or pre-render scanline.
func (p *PPU) renderDot() {
	fetching := (p.cycle >= 1 && p.cycle <= 256) || (p.cycle >= 321 && p.cycle <= 336)

	if p.renderingEnabled() {
		if fetching {
			p.shiftBackgroundRegisters()
			p.tileFetchStep()
		}
		if p.cycle == 256 {
			p.incrementY()
		}
		if p.cycle == 257 {
			p.copyHorizontalBits()
			p.loadSpritesForNextLine()
		}
		if p.scanline == preRenderLine && p.cycle >= 280 && p.cycle <= 304 {
			p.copyVerticalBits()
		}
	}

	if p.scanline >= 0 && p.scanline < postRenderLine && p.cycle >= 1 && p.cycle <= 256 {
		p.composePixel(p.cycle-1, p.scanline)
	}
}

// tileFetchStep performs the 8-dot nametable/attribute/pattern fetch
// sequence: the fetch completes at the group's last dot, and the
// fetched tile is loaded into the shift registers' low byte on the
// first dot of the following group, alongside the coarse-X increment.
func (p *PPU) tileFetchStep() {
	switch p.cycle % 8 {
	case 1:
		p.loadShiftRegisters()
		p.incrementCoarseX()
	case 0:
		p.fetchTile()
	}
}

func (p *PPU) fetchTile() {
	ntAddress := 0x2000 | (p.v & 0x0FFF)
	p.nextTileID = p.memory.Read(ntAddress)

	attrAddress := 0x23C0 | (p.v & 0x0C00) | ((p.v >> 4) & 0x38) | ((p.v >> 2) & 0x07)
	attrByte := p.memory.Read(attrAddress)
	shift := uint(((p.v >> 4) & 4) | (p.v & 2))
	p.nextAttr = (attrByte >> shift) & 0x03

	patternBase := p.backgroundPatternTableBase()
	fineY := uint16(p.fineY())
	tileAddr := patternBase + uint16(p.nextTileID)*16 + fineY
	p.nextPatternLow = p.memory.Read(tileAddr)
	p.nextPatternHigh = p.memory.Read(tileAddr + 8)
}

func (p *PPU) loadShiftRegisters() {
	p.bgPatternShiftLow = (p.bgPatternShiftLow & 0xFF00) | uint16(p.nextPatternLow)
	p.bgPatternShiftHigh = (p.bgPatternShiftHigh & 0xFF00) | uint16(p.nextPatternHigh)

	var attrLow, attrHigh uint16
	if p.nextAttr&0x01 != 0 {
		attrLow = 0xFF
	}
	if p.nextAttr&0x02 != 0 {
		attrHigh = 0xFF
	}
	p.bgAttrShiftLow = (p.bgAttrShiftLow & 0xFF00) | attrLow
	p.bgAttrShiftHigh = (p.bgAttrShiftHigh & 0xFF00) | attrHigh
}

func (p *PPU) shiftBackgroundRegisters() {
	p.bgPatternShiftLow <<= 1
	p.bgPatternShiftHigh <<= 1
	p.bgAttrShiftLow <<= 1
	p.bgAttrShiftHigh <<= 1
}

// backgroundPixel samples the shift registers at the current fine-X
// offset.
func (p *PPU) backgroundPixel() (colorIndex uint8, palette uint8, opaque bool) {
	bit := uint(15 - p.x)
	low := (p.bgPatternShiftLow >> bit) & 1
	high := (p.bgPatternShiftHigh >> bit) & 1
	colorIndex = uint8(low | (high << 1))
	alow := (p.bgAttrShiftLow >> bit) & 1
	ahigh := (p.bgAttrShiftHigh >> bit) & 1
	palette = uint8(alow | (ahigh << 1))
	opaque = colorIndex != 0
	return
}

func (p *PPU) composePixel(x, y int) {
	var bg SpritePixel
	if p.backgroundEnabledAt(x) {
		colorIndex, palette, opaque := p.backgroundPixel()
		bg = SpritePixel{transparent: !opaque, colorIndex: colorIndex, palette: palette}
	} else {
		bg = SpritePixel{transparent: true}
	}

	var sp SpritePixel
	if p.spritesEnabledAt(x) {
		sp = p.spritePixelAt(x)
	} else {
		sp = SpritePixel{transparent: true}
	}

	if !bg.transparent && !sp.transparent && sp.isSpriteZero && x != 255 &&
		p.backgroundEnabledAt(x) && p.spritesEnabledAt(x) {
		p.ppuStatus |= statusSpriteZeroHit
	}

	var out SpritePixel
	switch {
	case sp.transparent && bg.transparent:
		out = SpritePixel{colorIndex: 0, palette: 0}
	case bg.transparent:
		out = sp
	case sp.transparent:
		out = bg
	case sp.priority == 0:
		out = sp
	default:
		out = bg
	}

	paletteAddr := uint16(0x3F00)
	if out.colorIndex != 0 {
		paletteAddr = 0x3F00 | uint16(out.palette)<<2 | uint16(out.colorIndex)
	}
	if !sp.transparent && out.colorIndex == sp.colorIndex && out.palette == sp.palette && (bg.transparent || sp.priority == 0) {
		paletteAddr = 0x3F10 | uint16(sp.palette)<<2 | uint16(sp.colorIndex)
	}
	nesColor := p.memory.Read(paletteAddr) & 0x3F
	p.frameBuffer[y*256+x] = NESColorToRGB(nesColor)
}

func (p *PPU) advanceDot() {
	if p.scanline == preRenderLine && p.cycle == 339 && p.oddFrame && p.renderingEnabled() {
		p.cycle = 0
		p.scanline = 0
		p.endFrame()
		return
	}

	p.cycle++
	if p.cycle > lastDot {
		p.cycle = 0
		p.scanline++
		if p.scanline > lastLine {
			p.scanline = preRenderLine
			p.endFrame()
		}
	}
}

func (p *PPU) endFrame() {
	p.frameCount++
	p.oddFrame = !p.oddFrame
	if p.frameCompleteCallback != nil {
		p.frameCompleteCallback()
	}
}
