package helpers

import (
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

var namedColors = map[string]int{
	"red":    0xed4245,
	"green":  0x57f287,
	"blue":   0x3498db,
	"yellow": 0xfee75c,
	"orange": 0xe67e22,
	"purple": 0x9b59b6,
	"white":  0xffffff,
	"black":  0x000000,
}

// ParseColor turns a user supplied color string (named color or hex code)
// into a discord embed color value
func ParseColor(value string) (color int, ok bool) {
	if value == "" {
		return 0, false
	}

	if c, found := namedColors[strings.ToLower(value)]; found {
		return c, true
	}

	hex := value
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return 0, false
	}

	r, g, b := c.RGB255()
	return int(r)<<16 | int(g)<<8 | int(b), true
}
