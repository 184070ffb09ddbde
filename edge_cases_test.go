package postproc

import (
	"bytes"
	"sync"
	"testing"
)

func TestEmptyFrame(t *testing.T) {
	for _, f := range []*Frame{{}, NewFrame(0, 0)} {
		Deblock(f, 12)
		rgba := ToRGBA(f)
		if len(rgba) != 0 {
			t.Errorf("empty frame converted to %d bytes", len(rgba))
		}
		img := ToNRGBA(f)
		if !img.Bounds().Empty() {
			t.Errorf("empty frame produced bounds %v", img.Bounds())
		}
	}
}

func TestSinglePixelFrame(t *testing.T) {
	f := NewFrame(1, 1)
	f.Y.Pix[0] = 125
	f.Cb.Pix[0] = 128
	f.Cr.Pix[0] = 128

	Deblock(f, 12)
	if f.Y.Pix[0] != 125 {
		t.Errorf("deblocking changed a single-pixel plane to %d", f.Y.Pix[0])
	}
	got := ToRGBA(f)
	want := []byte{127, 127, 127, 255}
	if !bytes.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

// Blocks only get filtered when two pixels exist on both sides of an edge,
// so an 8x8 frame has no edge to filter at all, and planes below 10 pixels
// in one direction skip that direction's pass.
func TestDeblockBelowEdgeThreshold(t *testing.T) {
	sizes := []struct{ w, h int }{
		{8, 8}, {9, 9}, {1, 64}, {64, 1}, {4, 128}, {128, 4},
	}
	for _, sz := range sizes {
		// A step right at the block boundary, guaranteed to trip the filter
		// wherever an edge exists.
		f := NewFrame(sz.w, sz.h)
		for y := 0; y < sz.h; y++ {
			for x := 0; x < sz.w; x++ {
				v := byte(100)
				if x >= 8 || y >= 8 {
					v = 140
				}
				f.Y.Pix[y*sz.w+x] = v
			}
		}
		orig := cloneFrame(f)
		Deblock(f, 12)
		changed := !bytes.Equal(f.Y.Pix, orig.Y.Pix)
		wantChange := sz.w >= 10 || sz.h >= 10
		if changed != wantChange {
			t.Errorf("%dx%d: changed = %v, want %v", sz.w, sz.h, changed, wantChange)
		}
	}
}

func TestConvertOddSizes(t *testing.T) {
	for _, sz := range []struct{ w, h int }{
		{1, 7}, {7, 1}, {3, 5}, {5, 3}, {15, 15}, {31, 17},
	} {
		f := makeTestFrame(sz.w, sz.h, 99)
		rgba := ToRGBA(f)
		if len(rgba) != 4*sz.w*sz.h {
			t.Fatalf("%dx%d: got %d bytes, want %d", sz.w, sz.h, len(rgba), 4*sz.w*sz.h)
		}
		for i := 3; i < len(rgba); i += 4 {
			if rgba[i] != 255 {
				t.Fatalf("%dx%d: alpha at pixel %d is %d", sz.w, sz.h, i/4, rgba[i])
			}
		}
	}
}

func TestConcurrentConversion(t *testing.T) {
	c := NewConverter()
	frames := make([]*Frame, 8)
	want := make([][]byte, len(frames))
	for i := range frames {
		frames[i] = makeTestFrame(33, 21, int64(i))
		want[i] = c.ToRGBA(frames[i])
	}

	var wg sync.WaitGroup
	for round := 0; round < 4; round++ {
		for i := range frames {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				if !bytes.Equal(c.ToRGBA(frames[i]), want[i]) {
					t.Errorf("concurrent conversion of frame %d differs", i)
				}
			}(i)
		}
	}
	wg.Wait()
}

func TestConcurrentDefaultConverter(t *testing.T) {
	f := makeTestFrame(16, 16, 77)
	want := NewConverter().ToRGBA(f)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if !bytes.Equal(ToRGBA(f), want) {
				t.Error("default converter produced a different result")
			}
		}()
	}
	wg.Wait()
}
