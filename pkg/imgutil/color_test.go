package imgutil

import "testing"

func TestParseHex(t *testing.T) {
	cases := map[string]RGB{
		"#000000":   {},
		"FF00ff":    {R: 255, B: 255},
		" #0a1B2c ": {R: 0x0a, G: 0x1b, B: 0x2c},
	}
	for in, want := range cases {
		got, err := ParseHex(in)
		if err != nil {
			t.Fatalf("%q: %v", in, err)
		}
		if got != want {
			t.Errorf("%q: expected %v, got %v", in, want, got)
		}
	}

	for _, bad := range []string{"", "#FFF", "#GGGGGG", "#1234567", "+12345"} {
		if _, err := ParseHex(bad); err == nil {
			t.Errorf("%q: expected error", bad)
		}
	}
}

func TestRGBString(t *testing.T) {
	if got := (RGB{R: 255, G: 8, B: 171}).String(); got != "#FF08AB" {
		t.Fatalf("expected #FF08AB, got %s", got)
	}
}
