package ppu

// loadSpritesForNextLine evaluates primary OAM against the scanline
// about to be rendered and fetches pattern data for up to 8 sprites
// into the per-sprite shift state, exactly as the real PPU would have
// it ready by the first visible dot of that line.
func (p *PPU) loadSpritesForNextLine() {
	targetLine := p.scanline + 1

	p.spriteCount = 0
	p.spriteZeroOnLine = false
	p.spriteOverflow = false
	height := p.spriteHeight()

	for i := 0; i < 64 && p.spriteCount < 8; i++ {
		y := int(p.oam[i*4])
		row := targetLine - y
		if row < 0 || row >= height {
			continue
		}
		slot := p.spriteCount
		p.secondaryOAM[slot*4] = p.oam[i*4]
		tileIndex := p.oam[i*4+1]
		attr := p.oam[i*4+2]
		x := p.oam[i*4+3]
		p.secondaryOAM[slot*4+1] = tileIndex
		p.secondaryOAM[slot*4+2] = attr
		p.secondaryOAM[slot*4+3] = x
		p.spriteIndexes[slot] = uint8(i)
		p.spriteAttr[slot] = attr
		p.spriteX[slot] = x
		if i == 0 {
			p.spriteZeroOnLine = true
		}

		if attr&0x80 != 0 {
			row = height - 1 - row
		}

		var patternAddr uint16
		if height == 16 {
			table := uint16(tileIndex&1) * 0x1000
			tile := uint16(tileIndex &^ 1)
			if row >= 8 {
				tile++
				row -= 8
			}
			patternAddr = table + tile*16 + uint16(row)
		} else {
			patternAddr = p.spritePatternTableBase() + uint16(tileIndex)*16 + uint16(row)
		}

		low := p.memory.Read(patternAddr)
		high := p.memory.Read(patternAddr + 8)
		if attr&0x40 != 0 {
			low = reverseBits(low)
			high = reverseBits(high)
		}
		p.spritePatternLow[slot] = low
		p.spritePatternHigh[slot] = high

		p.spriteCount++
	}

	// Real hardware's sprite-overflow detection follows a buggy
	// diagonal OAM scan past the 8th match; this reproduces only the
	// flag's observable effect (count > 8), not the corrupted scan.
	if p.countSpritesOnLine(targetLine, height) > 8 {
		p.spriteOverflow = true
		p.ppuStatus |= statusSpriteOverflow
	}
}

func (p *PPU) countSpritesOnLine(line, height int) int {
	count := 0
	for i := 0; i < 64; i++ {
		y := int(p.oam[i*4])
		row := line - y
		if row >= 0 && row < height {
			count++
		}
	}
	return count
}

func reverseBits(b uint8) uint8 {
	var r uint8
	for i := 0; i < 8; i++ {
		r <<= 1
		r |= b & 1
		b >>= 1
	}
	return r
}

// spritePixelAt samples the active sprites' shift state for column x,
// returning the first (highest-priority-by-OAM-order) opaque hit.
func (p *PPU) spritePixelAt(x int) SpritePixel {
	for slot := 0; slot < p.spriteCount; slot++ {
		offset := x - int(p.spriteX[slot])
		if offset < 0 || offset > 7 {
			continue
		}
		bit := uint(7 - offset)
		low := (p.spritePatternLow[slot] >> bit) & 1
		high := (p.spritePatternHigh[slot] >> bit) & 1
		colorIndex := low | (high << 1)
		if colorIndex == 0 {
			continue
		}
		attr := p.spriteAttr[slot]
		return SpritePixel{
			transparent:  false,
			colorIndex:   colorIndex,
			palette:      attr & 0x03,
			priority:     (attr >> 5) & 1,
			isSpriteZero: p.spriteZeroOnLine && p.spriteIndexes[slot] == 0,
		}
	}
	return SpritePixel{transparent: true}
}
