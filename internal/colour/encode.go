package colour

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

var channelNames = [3]string{"red", "green", "blue"}

// EncodeHex formats a centroid as "#rrggbb". Each channel is truncated toward
// zero, not rounded, so 16.9 encodes as 0x10.
func EncodeHex(c Centroid) (string, error) {
	var rgb [3]uint8
	for i, v := range c {
		t := math.Trunc(v)
		if math.IsNaN(t) || t < 0 || t > 255 {
			return "", &InvalidColorError{Channel: channelNames[i], Value: v}
		}
		rgb[i] = uint8(t)
	}
	return RGB{R: rgb[0], G: rgb[1], B: rgb[2]}.Hex(), nil
}

// ParseHex parses a "#rrggbb" string (either case) into an RGB value.
func ParseHex(s string) (RGB, error) {
	if len(s) != 7 || s[0] != '#' {
		return RGB{}, fmt.Errorf("invalid hex colour %q: want #rrggbb", s)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid hex colour %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return RGB{R: r, G: g, B: b}, nil
}
