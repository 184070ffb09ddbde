package postproc

import (
	"errors"
	"fmt"
	"image"
)

// ErrSubsampleRatio is returned when a source image does not carry 4:2:0
// chroma.
var ErrSubsampleRatio = errors.New("postproc: source image must be 4:2:0")

// A Plane is one tightly packed sample plane. Rows follow each other
// without padding, so the row count is len(Pix)/Width.
type Plane struct {
	Pix   []byte
	Width int
}

// Height returns the number of rows in the plane.
func (p Plane) Height() int {
	if p.Width <= 0 {
		return 0
	}
	return len(p.Pix) / p.Width
}

// A Frame is a decoded 4:2:0 picture: a full-resolution luma plane and two
// chroma planes at half resolution, rounded up. Both filtering and
// conversion read the planes directly, so callers may fill Pix themselves
// as long as Validate holds.
type Frame struct {
	Y  Plane
	Cb Plane
	Cr Plane
}

// NewFrame allocates a zeroed frame for a width x height picture. The
// chroma planes cover half the luma extent in each direction, rounded up.
// Non-positive dimensions yield an empty frame.
func NewFrame(width, height int) *Frame {
	if width <= 0 || height <= 0 {
		return &Frame{}
	}
	cw := (width + 1) / 2
	ch := (height + 1) / 2
	return &Frame{
		Y:  Plane{Pix: make([]byte, width*height), Width: width},
		Cb: Plane{Pix: make([]byte, cw*ch), Width: cw},
		Cr: Plane{Pix: make([]byte, cw*ch), Width: cw},
	}
}

// Width returns the picture width in pixels.
func (f *Frame) Width() int { return f.Y.Width }

// Height returns the picture height in pixels.
func (f *Frame) Height() int { return f.Y.Height() }

// Validate checks the plane geometry. It returns nil for an empty frame;
// otherwise every plane length must be a multiple of its width and the
// chroma planes must cover exactly half the luma extent, rounded up.
func (f *Frame) Validate() error {
	if len(f.Y.Pix) == 0 {
		if len(f.Cb.Pix) != 0 || len(f.Cr.Pix) != 0 {
			return errors.New("postproc: chroma planes present on an empty frame")
		}
		return nil
	}
	if f.Y.Width <= 0 || len(f.Y.Pix)%f.Y.Width != 0 {
		return fmt.Errorf("postproc: luma plane of %d bytes not divisible by width %d",
			len(f.Y.Pix), f.Y.Width)
	}
	cw := (f.Y.Width + 1) / 2
	if f.Cb.Width != cw || f.Cr.Width != cw {
		return fmt.Errorf("postproc: chroma widths %d and %d, want %d for luma width %d",
			f.Cb.Width, f.Cr.Width, cw, f.Y.Width)
	}
	if len(f.Cb.Pix) != len(f.Cr.Pix) {
		return fmt.Errorf("postproc: chroma planes differ in size: %d vs %d",
			len(f.Cb.Pix), len(f.Cr.Pix))
	}
	if len(f.Cb.Pix)%cw != 0 {
		return fmt.Errorf("postproc: chroma plane of %d bytes not divisible by width %d",
			len(f.Cb.Pix), cw)
	}
	ch := (f.Height() + 1) / 2
	if len(f.Cb.Pix)/cw != ch {
		return fmt.Errorf("postproc: chroma plane has %d rows, want %d for %d luma rows",
			len(f.Cb.Pix)/cw, ch, f.Height())
	}
	return nil
}

// FrameFromYCbCr copies img into a tightly packed Frame. Only 4:2:0
// subsampling is accepted; other ratios return ErrSubsampleRatio.
func FrameFromYCbCr(img *image.YCbCr) (*Frame, error) {
	if img.SubsampleRatio != image.YCbCrSubsampleRatio420 {
		return nil, ErrSubsampleRatio
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	f := NewFrame(w, h)
	for y := 0; y < h; y++ {
		off := img.YOffset(b.Min.X, b.Min.Y+y)
		copy(f.Y.Pix[y*w:(y+1)*w], img.Y[off:off+w])
	}
	cw := f.Cb.Width
	for y := 0; y < f.Cb.Height(); y++ {
		off := img.COffset(b.Min.X, b.Min.Y+2*y)
		copy(f.Cb.Pix[y*cw:(y+1)*cw], img.Cb[off:off+cw])
		copy(f.Cr.Pix[y*cw:(y+1)*cw], img.Cr[off:off+cw])
	}
	return f, nil
}
