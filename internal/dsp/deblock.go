package dsp

// H.263 Annex J deblocking filter, applied after decoding across the 8x8
// block grid of a plane. Each filtered edge updates the two pixels on either
// side of the block boundary: with samples A, B above (or left of) the
// boundary and C, D below (or right of) it, B and C receive the full
// correction d1 and A and D a smaller counter-correction d2.
//
// The scalar routines in this file are the reference the lane-batched
// implementations are checked against.

// QuantStrength maps a quantizer index to the filter strength, per
// Table J.2/H.263. Index 0 is unused by the standard and maps to zero,
// which turns the filter into a no-op.
var QuantStrength = [32]uint8{
	0, 1, 1, 2, 2, 3, 3, 4,
	4, 4, 5, 5, 6, 6, 7, 7,
	7, 8, 8, 8, 9, 9, 9, 10,
	10, 10, 11, 11, 11, 12, 12, 12,
}

// upDownRamp is the filtering function of Figure J.2/H.263. The response
// follows |x| up to strength, falls back to zero by 2*strength and stays
// zero beyond, preserving the sign of x. Strength 0 yields 0 everywhere.
func upDownRamp(x, strength int) int {
	ax := x
	if ax < 0 {
		ax = -ax
	}
	over := 2 * (ax - strength)
	if over < 0 {
		over = 0
	}
	v := ax - over
	if v < 0 {
		v = 0
	}
	if x < 0 {
		return -v
	}
	return v
}

// clipDelta clips x to the range [-|lim|, |lim|].
func clipDelta(x, lim int) int {
	if lim < 0 {
		lim = -lim
	}
	if x < -lim {
		return -lim
	}
	if x > lim {
		return lim
	}
	return x
}

// filterEdge runs the edge kernel on four samples straddling a block
// boundary, a and b on one side and c and d on the other, and returns them
// filtered. Divisions truncate toward zero. a and d need no final clamp:
// d2 carries the sign of a-d with |d2| <= |a-d|/4, so a-d2 and d+d2 stay
// between the original sample values.
func filterEdge(a, b, c, d uint8, strength int) (uint8, uint8, uint8, uint8) {
	av, bv, cv, dv := int(a), int(b), int(c), int(d)

	diff := (av - 4*bv + 4*cv - dv) / 8
	d1 := upDownRamp(diff, strength)
	d2 := clipDelta((av-dv)/4, d1/2)

	return uint8(av - d2), Clip8b(bv + d1), Clip8b(cv - d1), uint8(dv + d2)
}

// deblockHorizGo filters every horizontal block edge of pix. The edge above
// row y exists for y = 8, 16, ... as long as row y+1 is still inside the
// plane, so planes shorter than 10 rows are left untouched.
func deblockHorizGo(pix []byte, width, strength int) {
	if width <= 0 {
		return
	}
	height := len(pix) / width
	for edge := 8; edge <= height-2; edge += 8 {
		rowA := pix[(edge-2)*width : (edge-1)*width]
		rowB := pix[(edge-1)*width : edge*width]
		rowC := pix[edge*width : (edge+1)*width]
		rowD := pix[(edge+1)*width : (edge+2)*width]
		for x := 0; x < width; x++ {
			rowA[x], rowB[x], rowC[x], rowD[x] = filterEdge(rowA[x], rowB[x], rowC[x], rowD[x], strength)
		}
	}
}

// deblockVertGo filters every vertical block edge of pix. The edge left of
// column x exists for x = 8, 16, ... as long as column x+1 is still inside
// the plane, so planes narrower than 10 pixels are left untouched.
func deblockVertGo(pix []byte, width, strength int) {
	if width < 10 {
		return
	}
	height := len(pix) / width
	for y := 0; y < height; y++ {
		row := pix[y*width : (y+1)*width]
		for edge := 8; edge <= width-2; edge += 8 {
			row[edge-2], row[edge-1], row[edge], row[edge+1] =
				filterEdge(row[edge-2], row[edge-1], row[edge], row[edge+1], strength)
		}
	}
}
