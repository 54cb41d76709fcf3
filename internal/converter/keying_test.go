package converter

import (
	"image"
	"image/color"
	"testing"

	"keyout/pkg/imgutil"
)

func TestApplyKeyExactMatchOnly(t *testing.T) {
	key := imgutil.RGB{R: 10, G: 20, B: 30}
	pixels := []color.NRGBA{
		{R: 10, G: 20, B: 30, A: 255},
		{R: 11, G: 20, B: 30, A: 255},
		{R: 10, G: 21, B: 30, A: 255},
		{R: 10, G: 20, B: 31, A: 255},
		{R: 9, G: 20, B: 30, A: 255},
		{R: 10, G: 19, B: 30, A: 255},
		{R: 10, G: 20, B: 29, A: 255},
		{R: 10, G: 20, B: 30, A: 128},
		{R: 1, G: 2, B: 3, A: 77},
	}

	img := image.NewNRGBA(image.Rect(0, 0, len(pixels), 1))
	for x, p := range pixels {
		img.SetNRGBA(x, 0, p)
	}

	keyed := ApplyKey(img, key)
	if keyed != 2 {
		t.Fatalf("expected 2 keyed pixels, got %d", keyed)
	}

	transparent := color.NRGBA{R: 255, G: 255, B: 255, A: 0}
	for x, want := range pixels {
		got := img.NRGBAAt(x, 0)
		if want.R == key.R && want.G == key.G && want.B == key.B {
			if got != transparent {
				t.Errorf("pixel %d: expected %v, got %v", x, transparent, got)
			}
			continue
		}
		if got != want {
			t.Errorf("pixel %d changed: expected %v, got %v", x, want, got)
		}
	}
}

func TestApplyKeyIsDeterministic(t *testing.T) {
	build := func() *image.NRGBA {
		img := image.NewNRGBA(image.Rect(0, 0, 16, 16))
		for y := 0; y < 16; y++ {
			for x := 0; x < 16; x++ {
				img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 16), G: uint8(y * 16), B: 0, A: 255})
			}
		}
		return img
	}

	key := imgutil.RGB{R: 32, G: 48, B: 0}
	a, b := build(), build()
	ApplyKey(a, key)
	ApplyKey(b, key)

	if string(a.Pix) != string(b.Pix) {
		t.Fatal("expected identical buffers for identical input")
	}

	again := ApplyKey(a, key)
	if again != 0 {
		t.Fatalf("expected second pass to key nothing, keyed %d", again)
	}
}

func TestApplyKeySubImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.SetNRGBA(x, y, color.NRGBA{A: 255})
		}
	}

	sub := img.SubImage(image.Rect(1, 1, 3, 3)).(*image.NRGBA)
	if keyed := ApplyKey(sub, imgutil.RGB{}); keyed != 4 {
		t.Fatalf("expected 4 keyed pixels, got %d", keyed)
	}
	if img.NRGBAAt(0, 0).A != 255 || img.NRGBAAt(3, 3).A != 255 {
		t.Fatal("pixels outside the sub-image were modified")
	}
	if img.NRGBAAt(1, 1).A != 0 || img.NRGBAAt(2, 2).A != 0 {
		t.Fatal("pixels inside the sub-image were not keyed")
	}
}
