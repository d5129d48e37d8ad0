package helpers

import "testing"

func TestParseColorNamed(t *testing.T) {
	color, ok := ParseColor("red")
	if !ok {
		t.Fatal("expected \"red\" to parse")
	}
	if color != 0xed4245 {
		t.Fatalf("unexpected color value: %#x", color)
	}

	if _, ok := ParseColor("Green"); !ok {
		t.Fatal("named colors should be case-insensitive")
	}
}

func TestParseColorHex(t *testing.T) {
	color, ok := ParseColor("#ff0000")
	if !ok || color != 0xff0000 {
		t.Fatalf("ParseColor(\"#ff0000\") = %#x, %t", color, ok)
	}

	color, ok = ParseColor("00ff00")
	if !ok || color != 0x00ff00 {
		t.Fatalf("ParseColor(\"00ff00\") = %#x, %t", color, ok)
	}
}

func TestParseColorInvalid(t *testing.T) {
	if _, ok := ParseColor("not a color"); ok {
		t.Fatal("garbage input should not parse")
	}
	if _, ok := ParseColor(""); ok {
		t.Fatal("empty input should not parse")
	}
}
