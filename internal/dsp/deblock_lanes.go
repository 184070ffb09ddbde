package dsp

// Lane-batched deblocking. The kernel processes laneWidth edge positions at
// a time as int32 lanes with branch-free arithmetic, so every lane follows
// the same instruction stream and the batch stays in registers. Results are
// bit-exact with filterEdge; the truncating divisions are reproduced with
// sign-corrected shifts.

// laneWidth is the number of edge positions carried per kernel call.
const laneWidth = 8

// filterEdgeLanes applies the edge kernel to laneWidth sample quadruples.
func filterEdgeLanes(a, b, c, d *[laneWidth]int32, strength int32) {
	for i := 0; i < laneWidth; i++ {
		av, bv, cv, dv := a[i], b[i], c[i], d[i]

		// diff = (a - 4b + 4c - d) / 8, truncating toward zero.
		diff := av - 4*bv + 4*cv - dv
		diff = (diff + ((diff >> 31) & 7)) >> 3

		// d1 = upDownRamp(diff, strength); sign holds the sign of diff,
		// and of d1 whenever d1 is nonzero.
		sign := diff >> 31
		ax := (diff ^ sign) - sign
		over := 2 * (ax - strength)
		over &^= over >> 31
		d1 := ax - over
		d1 &^= d1 >> 31
		d1 = (d1 ^ sign) - sign

		// d2 = (a - d)/4 clipped to [-|d1/2|, |d1/2|].
		ad := av - dv
		ad = (ad + ((ad >> 31) & 3)) >> 2
		lim := ((d1 ^ sign) - sign) >> 1
		m := (lim - ad) >> 31
		d2 := ad ^ ((ad ^ lim) & m)
		nlim := -lim
		m = (d2 - nlim) >> 31
		d2 ^= (d2 ^ nlim) & m

		a[i] = av - d2
		d[i] = dv + d2

		bv += d1
		bv &^= bv >> 31
		m = (255 - bv) >> 31
		b[i] = bv ^ ((bv ^ 255) & m)

		cv -= d1
		cv &^= cv >> 31
		m = (255 - cv) >> 31
		c[i] = cv ^ ((cv ^ 255) & m)
	}
}

// deblockHorizLanes filters horizontal block edges a batch of columns at a
// time, falling back to the scalar kernel for the rightmost columns when
// the width is not a multiple of laneWidth.
func deblockHorizLanes(pix []byte, width, strength int) {
	if width <= 0 {
		return
	}
	height := len(pix) / width
	s := int32(strength)
	var a, b, c, d [laneWidth]int32
	for edge := 8; edge <= height-2; edge += 8 {
		rowA := pix[(edge-2)*width : (edge-1)*width]
		rowB := pix[(edge-1)*width : edge*width]
		rowC := pix[edge*width : (edge+1)*width]
		rowD := pix[(edge+1)*width : (edge+2)*width]
		x := 0
		for ; x+laneWidth <= width; x += laneWidth {
			for i := 0; i < laneWidth; i++ {
				a[i] = int32(rowA[x+i])
				b[i] = int32(rowB[x+i])
				c[i] = int32(rowC[x+i])
				d[i] = int32(rowD[x+i])
			}
			filterEdgeLanes(&a, &b, &c, &d, s)
			for i := 0; i < laneWidth; i++ {
				rowA[x+i] = uint8(a[i])
				rowB[x+i] = uint8(b[i])
				rowC[x+i] = uint8(c[i])
				rowD[x+i] = uint8(d[i])
			}
		}
		for ; x < width; x++ {
			rowA[x], rowB[x], rowC[x], rowD[x] = filterEdge(rowA[x], rowB[x], rowC[x], rowD[x], strength)
		}
	}
}

// deblockVertLanes filters vertical block edges a batch of rows at a time.
// Edge columns are at least four samples apart, so gathering rows per edge
// touches disjoint pixels and produces the same result as the scalar
// row-major order.
func deblockVertLanes(pix []byte, width, strength int) {
	if width < 10 {
		return
	}
	height := len(pix) / width
	s := int32(strength)
	var a, b, c, d [laneWidth]int32
	for edge := 8; edge <= width-2; edge += 8 {
		y := 0
		for ; y+laneWidth <= height; y += laneWidth {
			off := y*width + edge
			for i := 0; i < laneWidth; i++ {
				a[i] = int32(pix[off-2])
				b[i] = int32(pix[off-1])
				c[i] = int32(pix[off])
				d[i] = int32(pix[off+1])
				off += width
			}
			filterEdgeLanes(&a, &b, &c, &d, s)
			off = y*width + edge
			for i := 0; i < laneWidth; i++ {
				pix[off-2] = uint8(a[i])
				pix[off-1] = uint8(b[i])
				pix[off] = uint8(c[i])
				pix[off+1] = uint8(d[i])
				off += width
			}
		}
		for ; y < height; y++ {
			off := y*width + edge
			pix[off-2], pix[off-1], pix[off], pix[off+1] =
				filterEdge(pix[off-2], pix[off-1], pix[off], pix[off+1], strength)
		}
	}
}
