package render

import "image/color"

// Palette maps a cell's energy byte to a colour. Index 0 is the dead colour.
type Palette []color.RGBA

// Ramp returns a 256-entry palette with dead mapped to off and energies 1..255
// interpolated from dim to on.
func Ramp(off, dim, on color.RGBA) Palette {
	p := make(Palette, 256)
	p[0] = off
	for i := 1; i < 256; i++ {
		t := float64(i-1) / 254
		p[i] = color.RGBA{
			R: lerp(dim.R, on.R, t),
			G: lerp(dim.G, on.G, t),
			B: lerp(dim.B, on.B, t),
			A: lerp(dim.A, on.A, t),
		}
	}
	return p
}

// Indexed returns a palette with the given colours for energies 0..n-1.
func Indexed(cols ...color.RGBA) Palette {
	return append(Palette(nil), cols...)
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t + 0.5)
}

// Fill writes RGBA pixels for cells into buf, which must hold 4 bytes per
// cell. A nil palette draws every non-zero cell in on and the rest in off.
func Fill(buf []byte, cells []uint8, p Palette, on, off color.Color) {
	if p == nil {
		fillBinaryRGBA(buf, cells, on, off)
		return
	}
	fillPaletteRGBA(buf, cells, p)
}

// fillBinaryRGBA converts binary cell data (0/1) into RGBA pixels in buf.
func fillBinaryRGBA(buf []byte, cells []uint8, on, off color.Color) {
	rOn, gOn, bOn, aOn := on.RGBA()
	rOff, gOff, bOff, aOff := off.RGBA()
	for i, c := range cells {
		base := i * 4
		if c != 0 {
			buf[base+0] = uint8(rOn >> 8)
			buf[base+1] = uint8(gOn >> 8)
			buf[base+2] = uint8(bOn >> 8)
			buf[base+3] = uint8(aOn >> 8)
			continue
		}
		buf[base+0] = uint8(rOff >> 8)
		buf[base+1] = uint8(gOff >> 8)
		buf[base+2] = uint8(bOff >> 8)
		buf[base+3] = uint8(aOff >> 8)
	}
}

// fillPaletteRGBA converts cell values into RGBA pixels using a palette. When
// the palette is empty the buffer is cleared to transparent black. Values past
// the end of the palette use its last entry.
func fillPaletteRGBA(buf []byte, cells []uint8, palette Palette) {
	if len(palette) == 0 {
		clear(buf[:4*len(cells)])
		return
	}

	last := len(palette) - 1
	for i, c := range cells {
		idx := int(c)
		if idx > last {
			idx = last
		}
		base := i * 4
		col := palette[idx]
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}
