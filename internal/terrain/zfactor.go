// Package terrain computes the per-pixel attributes the RRIM composite is
// built from: slope in degrees and topographic openness.
package terrain

import (
	"fmt"
	"math"
	"strings"
)

// one degree of longitude at the equator, in meters
const metersPerDegree = 111320

// ZFactor returns the vertical exaggeration factor that makes slope come
// out in degrees when the horizontal units of the raster differ from its
// vertical units. Geographic (degree-based) rasters get
// 1/(111320*cos(lat)) with lat taken from the geotransform's origin Y;
// projected rasters get exactly 1.
func ZFactor(projection string, geoTransform [6]float64) (float64, error) {
	if !strings.Contains(projection, "degree") || strings.Contains(projection, "PROJECTION") {
		return 1, nil
	}

	lat := math.Abs(geoTransform[3])
	c := math.Cos(lat * math.Pi / 180)
	if c < 1e-9 {
		return 0, fmt.Errorf("raster origin latitude %g is polar, cell size in meters is undefined", geoTransform[3])
	}
	return 1 / (metersPerDegree * c), nil
}
