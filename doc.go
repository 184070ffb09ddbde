// Package postproc implements the post-decode pixel pipeline of a video
// player: deblocking of 8x8 block-transform artifacts and conversion of
// planar YCbCr 4:2:0 frames into interleaved RGBA.
//
// The package supports:
//   - H.263 Annex J deblocking, horizontal and vertical passes, in place
//   - Strength control, directly or derived from the codec quantizer
//   - BT.601 studio-range YCbCr to full-range RGBA
//   - Bilinear 4:2:0 chroma upsampling with edge clamping
//   - Odd plane sizes, down to a single pixel
//
// Basic usage:
//
//	frame, err := postproc.FrameFromYCbCr(img)
//	if err != nil {
//		return err
//	}
//	postproc.Deblock(frame, postproc.StrengthForQuant(quant))
//	img := postproc.ToNRGBA(frame)
package postproc
