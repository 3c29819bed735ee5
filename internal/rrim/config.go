// Package rrim assembles a Red Relief Image Map from a DEM: slope drives
// the red saturation, differential openness drives the brightness, and a
// fixed-hue HSV lookup table turns the two into RGB.
package rrim

import (
	"fmt"
)

// Config enumerates every option of the pipeline with its default.
type Config struct {
	DEMPath string // input DEM, required

	NoDataValue     float64 // sentinel for missing elevation
	FillDepressions bool    // run depression filling before slope/openness

	Directions int // openness directional sampling count
	Radius     int // openness search radius, pixels
	Noise      int // openness noise removal level, 0-3

	Saturation int // LUT saturation axis size
	Brightness int // LUT brightness axis size

	SaveIntermediate bool // persist slope/openness rasters
	KeepCached       bool // reuse previously saved slope/openness instead of recomputing
	Smooth           bool // resample the brightness grid before compositing
}

// DefaultConfig returns the pipeline defaults for the given DEM.
func DefaultConfig(demPath string) Config {
	return Config{
		DEMPath:          demPath,
		NoDataValue:      -9999,
		FillDepressions:  false,
		Directions:       8,
		Radius:           10,
		Noise:            0,
		Saturation:       90,
		Brightness:       150,
		SaveIntermediate: true,
		KeepCached:       false,
		Smooth:           false,
	}
}

// Validate checks the ranges of every option before any computation runs.
func (c Config) Validate() error {
	if c.DEMPath == "" {
		return fmt.Errorf("no input DEM given")
	}
	if c.Saturation < 2 {
		return fmt.Errorf("saturation must be at least 2, got %d", c.Saturation)
	}
	if c.Brightness < 2 {
		return fmt.Errorf("brightness must be at least 2, got %d", c.Brightness)
	}
	if c.Saturation > 256 {
		return fmt.Errorf("saturation must fit an 8-bit index, got %d", c.Saturation)
	}
	if c.Brightness > 256 {
		return fmt.Errorf("brightness must fit an 8-bit index, got %d", c.Brightness)
	}
	if c.Noise < 0 || c.Noise > 3 {
		return fmt.Errorf("noise level must be 0-3, got %d", c.Noise)
	}
	if c.Directions < 1 {
		return fmt.Errorf("openness needs at least one direction, got %d", c.Directions)
	}
	if c.Radius < 1 {
		return fmt.Errorf("openness search radius must be at least 1 pixel, got %d", c.Radius)
	}
	return nil
}
