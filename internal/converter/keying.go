package converter

import (
	"image"

	"keyout/pkg/imgutil"
)

// ApplyKey makes every pixel whose RGB equals key fully transparent white,
// in place, and returns how many pixels changed. Input alpha is not part
// of the comparison; unmatched pixels keep all four channels.
func ApplyKey(img *image.NRGBA, key imgutil.RGB) int {
	b := img.Bounds()
	width := b.Dx() * 4
	keyed := 0

	for y := 0; y < b.Dy(); y++ {
		off := y * img.Stride
		row := img.Pix[off : off+width : off+width]
		for i := 0; i < len(row); i += 4 {
			if row[i] == key.R && row[i+1] == key.G && row[i+2] == key.B {
				row[i], row[i+1], row[i+2], row[i+3] = 255, 255, 255, 0
				keyed++
			}
		}
	}

	return keyed
}
