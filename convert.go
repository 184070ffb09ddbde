package postproc

import (
	"image"
	"sync"

	"github.com/deepteams/postproc/internal/assert"
	"github.com/deepteams/postproc/internal/dsp"
)

// A Converter turns frames into RGBA pixels. It holds the BT.601 lookup
// tables, so build one with NewConverter and reuse it; a Converter is safe
// for concurrent use.
type Converter struct {
	lut *dsp.ColorLUT
}

// NewConverter builds a Converter with freshly computed tables.
func NewConverter() *Converter {
	return &Converter{lut: dsp.NewColorLUT()}
}

// ToRGBA converts f into a freshly allocated buffer of interleaved RGBA
// pixels, 4*len(f.Y.Pix) bytes in row-major order with opaque alpha. The
// caller owns the returned buffer.
func (c *Converter) ToRGBA(f *Frame) []byte {
	if assert.Enabled {
		if err := f.Validate(); err != nil {
			assert.Failf("%v", err)
		}
	}
	dst := make([]byte, len(f.Y.Pix)*4)
	dsp.YUV420ToRGBA(c.lut, f.Y.Pix, f.Cb.Pix, f.Cr.Pix, f.Y.Width, f.Cb.Width, dst)
	return dst
}

// ToNRGBA converts f into an *image.NRGBA backed by a fresh buffer. With
// alpha fully opaque the premultiplied and straight interpretations agree.
func (c *Converter) ToNRGBA(f *Frame) *image.NRGBA {
	return &image.NRGBA{
		Pix:    c.ToRGBA(f),
		Stride: f.Y.Width * 4,
		Rect:   image.Rect(0, 0, f.Width(), f.Height()),
	}
}

var (
	defaultConverter     *Converter
	defaultConverterOnce sync.Once
)

// DefaultConverter returns the shared process-wide Converter, building its
// tables on first use.
func DefaultConverter() *Converter {
	defaultConverterOnce.Do(func() {
		defaultConverter = NewConverter()
	})
	return defaultConverter
}

// ToRGBA converts f with the shared default Converter.
func ToRGBA(f *Frame) []byte {
	return DefaultConverter().ToRGBA(f)
}

// ToNRGBA converts f with the shared default Converter.
func ToNRGBA(f *Frame) *image.NRGBA {
	return DefaultConverter().ToNRGBA(f)
}
