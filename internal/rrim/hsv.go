package rrim

import (
	"math"
)

// hsvToRGB converts one HSV triplet (h in degrees, s and v in [0,1]) to
// 8-bit RGB. From https://en.wikipedia.org/wiki/HSL_and_HSV#HSV_to_RGB_alternative
func hsvToRGB(h, s, v float64) (r, g, b uint8) {
	f := func(n float64) uint8 {
		k := math.Mod(n+h/60.0, 6.0)
		c := v - v*s*math.Max(0, math.Min(math.Min(k, 4.0-k), 1.0))
		return uint8(math.Round(c * 255))
	}

	return f(5), f(3), f(1)
}
