package postproc

import "testing"

// benchFrame builds a deterministic 640x480 frame with gradients and a
// visible 8x8 block structure, so the deblocker has edges to chew on.
func benchFrame() *Frame {
	const w, h = 640, 480
	f := NewFrame(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			f.Y.Pix[y*w+x] = byte((x/8)*8 + (y/8)*4)
		}
	}
	cw, ch := f.Cb.Width, f.Cb.Height()
	for y := 0; y < ch; y++ {
		for x := 0; x < cw; x++ {
			f.Cb.Pix[y*cw+x] = byte(64 + x/3)
			f.Cr.Pix[y*cw+x] = byte(192 - y/3)
		}
	}
	return f
}

func BenchmarkDeblock(b *testing.B) {
	f := benchFrame()
	b.SetBytes(int64(len(f.Y.Pix)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Deblock(f, 10)
	}
}

func BenchmarkDeblockChroma(b *testing.B) {
	f := benchFrame()
	b.SetBytes(int64(len(f.Y.Pix) + 2*len(f.Cb.Pix)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		DeblockWithOptions(f, DeblockOptions{Strength: 10, Chroma: true})
	}
}

func BenchmarkToRGBA(b *testing.B) {
	f := benchFrame()
	c := NewConverter()
	b.SetBytes(int64(4 * len(f.Y.Pix)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.ToRGBA(f)
	}
}

func BenchmarkPipeline(b *testing.B) {
	f := benchFrame()
	c := NewConverter()
	b.SetBytes(int64(4 * len(f.Y.Pix)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Deblock(f, 10)
		c.ToRGBA(f)
	}
}
