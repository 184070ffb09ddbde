// Package dsp provides the low-level pixel routines of the post-decode
// pipeline: the H.263 Annex J deblocking filter and the BT.601 YUV-to-RGB
// conversion with 4:2:0 chroma upsampling.
package dsp

// Deblocking pass function variables for dispatch. Init installs the
// lane-batched implementations; the scalar *Go versions stay as references
// for the parity tests. Both passes filter pix in place; pix holds
// len(pix)/width rows.
var (
	DeblockHoriz func(pix []byte, width, strength int)
	DeblockVert  func(pix []byte, width, strength int)
)

// Init installs the implementations for the current platform. It is called
// automatically on package load and is idempotent.
func Init() {
	DeblockHoriz = deblockHorizLanes
	DeblockVert = deblockVertLanes
}

func init() {
	Init()
}

// Clip8b clips v to the range [0, 255].
func Clip8b(v int) uint8 {
	if uint(v) <= 255 {
		return uint8(v)
	}
	// Arithmetic right shift: v>>63 is 0 for positive, -1 for negative.
	return uint8(^(v >> 63) & 255)
}
