package postproc

import (
	"github.com/deepteams/postproc/internal/assert"
	"github.com/deepteams/postproc/internal/dsp"
)

// DeblockOptions control which planes and edge directions are filtered.
// The zero value filters nothing because the strength is zero.
type DeblockOptions struct {
	// Strength is the filter strength, 0 to 12. Zero disables filtering;
	// use StrengthForQuant to derive it from the codec quantizer.
	Strength int

	// NoHorizontal skips the pass over horizontal block edges.
	NoHorizontal bool

	// NoVertical skips the pass over vertical block edges.
	NoVertical bool

	// Chroma extends filtering to the Cb and Cr planes at the same
	// strength.
	Chroma bool
}

// StrengthForQuant maps a quantizer index to the deblocking strength per
// Table J.2/H.263. Indices outside 0..31 are clamped into the table.
func StrengthForQuant(quant int) int {
	if quant < 0 {
		quant = 0
	}
	if quant > 31 {
		quant = 31
	}
	return int(dsp.QuantStrength[quant])
}

// Deblock smooths the 8x8 block edges of the luma plane in place, running
// the horizontal pass and then the vertical pass at the given strength.
func Deblock(f *Frame, strength int) {
	DeblockWithOptions(f, DeblockOptions{Strength: strength})
}

// DeblockWithOptions filters f in place as directed by o.
func DeblockWithOptions(f *Frame, o DeblockOptions) {
	if assert.Enabled {
		if err := f.Validate(); err != nil {
			assert.Failf("%v", err)
		}
		if o.Strength > 12 {
			assert.Failf("deblock strength %d beyond table range", o.Strength)
		}
	}
	if o.Strength <= 0 {
		return
	}

	planes := []Plane{f.Y}
	if o.Chroma {
		planes = append(planes, f.Cb, f.Cr)
	}
	for _, p := range planes {
		if len(p.Pix) == 0 {
			continue
		}
		// Horizontal edges first; the vertical pass reads its output.
		if !o.NoHorizontal {
			dsp.DeblockHoriz(p.Pix, p.Width, o.Strength)
		}
		if !o.NoVertical {
			dsp.DeblockVert(p.Pix, p.Width, o.Strength)
		}
	}
}
