package ppu

// Scroll/VRAM-address helpers operating on the v register's loopy
// layout: yyy NN YYYYY XXXXX (fine Y, nametable, coarse Y, coarse X).

func (p *PPU) coarseX() int { return int(p.v & 0x001F) }
func (p *PPU) coarseY() int { return int((p.v >> 5) & 0x001F) }
func (p *PPU) fineY() int   { return int((p.v >> 12) & 0x0007) }
func (p *PPU) nametableSelect() int { return int((p.v >> 10) & 0x0003) }

// incrementCoarseX increments coarse X, wrapping into the adjacent
// horizontal nametable at the tile-row boundary.
func (p *PPU) incrementCoarseX() {
	if (p.v & 0x001F) == 31 {
		p.v &= ^uint16(0x001F)
		p.v ^= 0x0400
	} else {
		p.v++
	}
}

// incrementY increments fine Y, carrying into coarse Y and then into
// the vertical nametable, skipping the two-row attribute area at the
// bottom of the nametable per the well-known loopy quirk.
func (p *PPU) incrementY() {
	if (p.v & 0x7000) != 0x7000 {
		p.v += 0x1000
		return
	}
	p.v &= ^uint16(0x7000)
	y := (p.v & 0x03E0) >> 5
	switch y {
	case 29:
		y = 0
		p.v ^= 0x0800
	case 31:
		y = 0
	default:
		y++
	}
	p.v = (p.v & ^uint16(0x03E0)) | (y << 5)
}

// copyHorizontalBits copies the horizontal scroll bits from t to v,
// done at dot 257 of every rendering scanline.
func (p *PPU) copyHorizontalBits() {
	p.v = (p.v & 0xFBE0) | (p.t & 0x041F)
}

// copyVerticalBits copies the vertical scroll bits from t to v, done
// across dots 280-304 of the pre-render scanline.
func (p *PPU) copyVerticalBits() {
	p.v = (p.v & 0x841F) | (p.t & 0x7BE0)
}
