package dsp

import "math"

// BT.601 limited-range YUV to RGB conversion.
//
// Y is remapped from the studio range 16..235 to full range, Cb and Cr from
// 16..240 to signed offsets around zero, and the per-channel contributions
// are folded into five lookup tables in 12.4 fixed point. A pixel then
// costs four table reads, three adds per channel and a rounding shift.
const (
	lumaScale   = 255.0 / 219.0 // Y spans 16..235
	chromaScale = 255.0 / 224.0 // Cb and Cr span 16..240, centred on 128

	crToRCoeff = 1.370705
	crToGCoeff = -0.698001
	cbToGCoeff = -0.337633
	cbToBCoeff = 1.732446

	lutShift = 4 // fractional bits
	lutRound = 1 << (lutShift - 1)
)

// ColorLUT holds the precomputed conversion tables, indexed by the raw
// sample value. Build one with NewColorLUT and share it by reference;
// lookups never mutate the tables, so concurrent use is safe.
type ColorLUT struct {
	yToGray [256]int32
	crToR   [256]int32
	crToG   [256]int32
	cbToG   [256]int32
	cbToB   [256]int32
}

// NewColorLUT builds the conversion tables.
func NewColorLUT() *ColorLUT {
	l := new(ColorLUT)
	for i := 0; i < 256; i++ {
		gray := (float64(i) - 16) * lumaScale
		// The remap keeps the neutral sample 128 at exactly zero.
		chroma := (float64(i) - 128) * chromaScale
		l.yToGray[i] = fix(gray)
		l.crToR[i] = fix(chroma * crToRCoeff)
		l.crToG[i] = fix(chroma * crToGCoeff)
		l.cbToG[i] = fix(chroma * cbToGCoeff)
		l.cbToB[i] = fix(chroma * cbToBCoeff)
	}
	return l
}

// fix converts v to rounded 12.4 fixed point.
func fix(v float64) int32 {
	return int32(math.Round(v * (1 << lutShift)))
}

// RGB converts a single sample triple.
func (l *ColorLUT) RGB(y, cb, cr uint8) (r, g, b uint8) {
	gray := l.yToGray[y]
	r = Clip8b(int(gray+l.crToR[cr]+lutRound) >> lutShift)
	g = Clip8b(int(gray+l.crToG[cr]+l.cbToG[cb]+lutRound) >> lutShift)
	b = Clip8b(int(gray+l.cbToB[cb]+lutRound) >> lutShift)
	return
}

// StoreRGBA converts a sample triple and writes one RGBA pixel to dst[:4]
// with full alpha.
func (l *ColorLUT) StoreRGBA(dst []byte, y, cb, cr uint8) {
	gray := l.yToGray[y]
	dst[0] = Clip8b(int(gray+l.crToR[cr]+lutRound) >> lutShift)
	dst[1] = Clip8b(int(gray+l.crToG[cr]+l.cbToG[cb]+lutRound) >> lutShift)
	dst[2] = Clip8b(int(gray+l.cbToB[cb]+lutRound) >> lutShift)
	dst[3] = 0xff
}
