package dsp

import "github.com/deepteams/postproc/internal/assert"

// 4:2:0 chroma upsampling fused with the RGBA conversion.
//
// Each chroma sample sits at the shared corner of a 2x2 luma quad, so a
// luma pixel lies a quarter or three quarters of the way between two chroma
// samples along each axis. The interior walks the chroma grid cell by cell
// and reconstructs the four enclosed pixels with 3:1 bilinear weights in a
// single rounding step; border pixels, which lack a full 2x2 chroma
// neighbourhood, fall back to per-pixel sampling with clamped indices.

// packUV packs a Cb sample into the low 16 bits of a word and Cr into the
// high 16 so one multiply-add interpolates both channels. Weighted sums
// stay below 1<<12, so the lanes cannot carry into each other.
func packUV(cbS, crS byte) uint32 {
	return uint32(cbS) | uint32(crS)<<16
}

// packedRound is the rounding term for both lanes of a packed word.
const packedRound = 0x00080008

// YUV420ToRGBA converts planar 4:2:0 YCbCr to interleaved RGBA, writing
// 4*len(y) bytes to dst. The luma plane is yWidth wide, both chroma planes
// brWidth; row counts follow from the slice lengths. An empty luma plane
// writes nothing.
func YUV420ToRGBA(lut *ColorLUT, y, cb, cr []byte, yWidth, brWidth int, dst []byte) {
	if len(y) == 0 {
		if assert.Enabled && (len(cb) != 0 || len(cr) != 0 || len(dst) != 0) {
			assert.Failf("empty luma plane with %d+%d chroma and %d RGBA bytes",
				len(cb), len(cr), len(dst))
		}
		return
	}
	if assert.Enabled {
		switch {
		case yWidth <= 0 || len(y)%yWidth != 0:
			assert.Failf("luma plane of %d bytes not divisible by width %d", len(y), yWidth)
		case brWidth != (yWidth+1)/2:
			assert.Failf("chroma width %d does not match luma width %d", brWidth, yWidth)
		case len(cb) != len(cr):
			assert.Failf("chroma planes differ in size: %d vs %d", len(cb), len(cr))
		case len(cb)%brWidth != 0 || len(cb)/brWidth != (len(y)/yWidth+1)/2:
			assert.Failf("chroma plane of %d bytes does not cover %dx%d luma",
				len(cb), yWidth, len(y)/yWidth)
		case len(dst) != 4*len(y):
			assert.Failf("RGBA buffer of %d bytes for %d luma samples", len(dst), len(y))
		}
	}

	yHeight := len(y) / yWidth
	brHeight := len(cb) / brWidth
	convertInterior(lut, y, cb, cr, yWidth, brWidth, brHeight, dst)
	convertBorders(lut, y, cb, cr, yWidth, yHeight, brWidth, brHeight, dst)
}

// convertInterior handles luma pixels with a full 2x2 chroma neighbourhood:
// rows 1..2*brHeight-2 and columns 1..2*brWidth-2. The cell between chroma
// samples (cx,cy) and (cx+1,cy+1) encloses the luma quad at columns 2cx+1,
// 2cx+2 and rows 2cy+1, 2cy+2; each corner takes weight 9 for its nearest
// chroma sample, 3 for the two adjacent ones and 1 for the opposite corner.
func convertInterior(lut *ColorLUT, y, cb, cr []byte, yWidth, brWidth, brHeight int, dst []byte) {
	dstStride := yWidth * 4
	for cy := 0; cy+1 < brHeight; cy++ {
		top := cy * brWidth
		bot := top + brWidth
		yTop := (2*cy + 1) * yWidth
		yBot := yTop + yWidth
		dTop := (2*cy + 1) * dstStride
		dBot := dTop + dstStride
		tl := packUV(cb[top], cr[top])
		bl := packUV(cb[bot], cr[bot])
		for cx := 0; cx+1 < brWidth; cx++ {
			tr := packUV(cb[top+cx+1], cr[top+cx+1])
			br := packUV(cb[bot+cx+1], cr[bot+cx+1])

			uv00 := (9*tl + 3*tr + 3*bl + br + packedRound) >> 4
			uv10 := (3*tl + 9*tr + bl + 3*br + packedRound) >> 4
			uv01 := (3*tl + tr + 9*bl + 3*br + packedRound) >> 4
			uv11 := (tl + 3*tr + 3*bl + 9*br + packedRound) >> 4

			lx := 2*cx + 1
			lut.StoreRGBA(dst[dTop+lx*4:], y[yTop+lx], uint8(uv00), uint8(uv00>>16))
			lut.StoreRGBA(dst[dTop+(lx+1)*4:], y[yTop+lx+1], uint8(uv10), uint8(uv10>>16))
			lut.StoreRGBA(dst[dBot+lx*4:], y[yBot+lx], uint8(uv01), uint8(uv01>>16))
			lut.StoreRGBA(dst[dBot+(lx+1)*4:], y[yBot+lx+1], uint8(uv11), uint8(uv11>>16))

			tl, bl = tr, br
		}
	}
}

// convertBorders handles the pixels the interior pass cannot reach: luma
// row 0, column 0, and the last row and column when the luma extent is even
// and the chroma grid has no sample past the edge. Chroma neighbours out of
// range are clamped to the grid, which degrades the interpolation to the
// edge sample itself. Where both formulations apply they agree exactly.
func convertBorders(lut *ColorLUT, y, cb, cr []byte, yWidth, yHeight, brWidth, brHeight int, dst []byte) {
	borderPixel := func(lx, ly int) {
		cbS := sampleChroma(cb, brWidth, brHeight, lx, ly)
		crS := sampleChroma(cr, brWidth, brHeight, lx, ly)
		off := ly*yWidth + lx
		lut.StoreRGBA(dst[off*4:], y[off], cbS, crS)
	}

	for lx := 0; lx < yWidth; lx++ {
		borderPixel(lx, 0)
	}
	bottom := yHeight - 1
	if yHeight%2 == 0 {
		if yHeight > 1 {
			for lx := 0; lx < yWidth; lx++ {
				borderPixel(lx, yHeight-1)
			}
		}
		bottom = yHeight - 2
	}
	for ly := 1; ly <= bottom; ly++ {
		borderPixel(0, ly)
		if yWidth%2 == 0 && yWidth > 1 {
			borderPixel(yWidth-1, ly)
		}
	}
}

// sampleChroma interpolates one chroma plane at luma coordinates (lx, ly)
// with the 3:1 weights implied by the sample parity, clamping neighbour
// indices to the grid.
func sampleChroma(plane []byte, w, h, lx, ly int) uint8 {
	x0, x1, wx0, wx1 := chromaTaps(lx, w)
	y0, y1, wy0, wy1 := chromaTaps(ly, h)
	row0 := plane[y0*w:]
	row1 := plane[y1*w:]
	sum := wy0*(wx0*int(row0[x0])+wx1*int(row0[x1])) +
		wy1*(wx0*int(row1[x0])+wx1*int(row1[x1]))
	return uint8((sum + 8) >> 4)
}

// chromaTaps returns the two chroma indices bracketing luma coordinate l
// and their weights. Even coordinates sit past their nearest sample, odd
// ones before the next; either way the nearer sample weighs 3, the farther
// 1. Out-of-grid neighbours clamp to the edge.
func chromaTaps(l, size int) (i0, i1, w0, w1 int) {
	near := l >> 1
	if l&1 == 0 {
		i0, i1, w0, w1 = near-1, near, 1, 3
	} else {
		i0, i1, w0, w1 = near, near+1, 3, 1
	}
	if i0 < 0 {
		i0 = 0
	}
	if i1 > size-1 {
		i1 = size - 1
	}
	return
}
