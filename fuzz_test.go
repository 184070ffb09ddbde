package postproc

import (
	"bytes"
	"testing"
)

// FuzzPipeline drives the whole deblock-and-convert path with arbitrary
// plane contents and geometries derived from the fuzz input.
func FuzzPipeline(f *testing.F) {
	f.Add(4, 8, bytes.Repeat([]byte{125}, 24), bytes.Repeat([]byte{128}, 6), bytes.Repeat([]byte{128}, 6))
	f.Add(1, 0, []byte{125}, []byte{128}, []byte{128})
	f.Add(16, 12, bytes.Repeat([]byte{200}, 256), bytes.Repeat([]byte{100}, 64), bytes.Repeat([]byte{50}, 64))
	f.Add(10, 5, bytes.Repeat([]byte{77}, 110), bytes.Repeat([]byte{10}, 30), bytes.Repeat([]byte{245}, 30))

	f.Fuzz(func(t *testing.T, width, strength int, y, cb, cr []byte) {
		if width <= 0 || width > 1024 {
			t.Skip()
		}
		h := len(y) / width
		if h == 0 || h > 1024 {
			t.Skip()
		}
		cw := (width + 1) / 2
		ch := (h + 1) / 2
		if len(cb) < cw*ch || len(cr) < cw*ch {
			t.Skip()
		}

		frame := &Frame{
			Y:  Plane{Pix: bytes.Clone(y[:h*width]), Width: width},
			Cb: Plane{Pix: bytes.Clone(cb[:cw*ch]), Width: cw},
			Cr: Plane{Pix: bytes.Clone(cr[:cw*ch]), Width: cw},
		}
		if err := frame.Validate(); err != nil {
			t.Fatalf("trimmed frame does not validate: %v", err)
		}

		DeblockWithOptions(frame, DeblockOptions{Strength: strength % 13, Chroma: true})

		rgba := ToRGBA(frame)
		if len(rgba) != 4*len(frame.Y.Pix) {
			t.Fatalf("got %d RGBA bytes for %d luma samples", len(rgba), len(frame.Y.Pix))
		}
		for i := 3; i < len(rgba); i += 4 {
			if rgba[i] != 255 {
				t.Fatalf("alpha at pixel %d is %d", i/4, rgba[i])
			}
		}
	})
}
