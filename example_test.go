package postproc_test

import (
	"fmt"

	"github.com/deepteams/postproc"
)

func ExampleDeblock() {
	// Two flat 8-row bands meeting at a block boundary.
	frame := postproc.NewFrame(16, 16)
	for y := 0; y < 16; y++ {
		v := byte(100)
		if y >= 8 {
			v = 140
		}
		for x := 0; x < 16; x++ {
			frame.Y.Pix[y*16+x] = v
		}
	}

	postproc.Deblock(frame, postproc.StrengthForQuant(24))

	// The two rows on each side of the boundary moved toward each other.
	fmt.Println(frame.Y.Pix[6*16], frame.Y.Pix[7*16], frame.Y.Pix[8*16], frame.Y.Pix[9*16])
	// Output: 102 105 135 138
}

func ExampleToRGBA() {
	frame := postproc.NewFrame(2, 2)
	for i := range frame.Y.Pix {
		frame.Y.Pix[i] = 235 // studio-range white
	}
	for i := range frame.Cb.Pix {
		frame.Cb.Pix[i] = 128
		frame.Cr.Pix[i] = 128
	}

	rgba := postproc.ToRGBA(frame)
	fmt.Println(rgba[:4])
	// Output: [255 255 255 255]
}

func ExampleConverter_ToNRGBA() {
	frame := postproc.NewFrame(2, 2)
	for i := range frame.Y.Pix {
		frame.Y.Pix[i] = 81
	}
	for i := range frame.Cb.Pix {
		frame.Cb.Pix[i] = 90
		frame.Cr.Pix[i] = 240
	}

	img := postproc.NewConverter().ToNRGBA(frame)
	r, g, b, _ := img.At(0, 0).RGBA()
	fmt.Println(img.Bounds().Dx(), img.Bounds().Dy())
	fmt.Println(r>>8, g>>8, b>>8)
	// Output:
	// 2 2
	// 250 1 1
}
