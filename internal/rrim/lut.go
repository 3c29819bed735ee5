package rrim

import (
	"math"
)

// ColorTable is the HSV saturation/brightness lookup table the composite
// is gathered from. Row i carries HSV saturation round(255*i/(sat-1)),
// column j carries HSV value round(255*j/(bri-1)), hue is fixed at 0
// (pure red) for every cell. Built once per run, immutable afterwards.
type ColorTable struct {
	sat, bri int
	rgb      [][3]uint8 // row-major, sat*bri entries
}

// ColorScheme builds the lookup table for the given axis sizes.
func ColorScheme(saturation, brightness int) *ColorTable {
	ct := &ColorTable{
		sat: saturation,
		bri: brightness,
		rgb: make([][3]uint8, saturation*brightness),
	}

	for i := 0; i < saturation; i++ {
		s := float64(axisValue(i, saturation)) / 255
		for j := 0; j < brightness; j++ {
			v := float64(axisValue(j, brightness)) / 255
			r, g, b := hsvToRGB(0, s, v)
			ct.rgb[i*brightness+j] = [3]uint8{r, g, b}
		}
	}

	return ct
}

// axisValue maps index i of an n-sized LUT axis onto an 8-bit channel.
// A single-entry axis gets the channel maximum, there is no gradient to
// spread.
func axisValue(i, n int) uint8 {
	if n <= 1 {
		return 255
	}
	return uint8(math.Round(255 * float64(i) / float64(n-1)))
}

// At returns the RGB triplet at saturation row i and brightness column j.
func (ct *ColorTable) At(i, j int) [3]uint8 {
	return ct.rgb[i*ct.bri+j]
}

// Size returns the axis sizes of the table.
func (ct *ColorTable) Size() (saturation, brightness int) {
	return ct.sat, ct.bri
}
