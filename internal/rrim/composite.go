package rrim

import (
	"fmt"
	"math"

	"github.com/reliefmap/rrim-utils/internal/raster"
)

// SlopeIndex quantizes a slope raster (degrees) into LUT row indices:
// clamp(round(|slope|), 0, saturation-1). The sign is discarded, only the
// magnitude drives saturation.
func SlopeIndex(slope *raster.Raster, saturation int) []uint8 {
	idx := make([]uint8, len(slope.Data))
	for i, v := range slope.Data {
		idx[i] = clampIndex(math.Round(math.Abs(float64(v))), saturation)
	}
	return idx
}

// OpennessIndex quantizes a differential-openness raster into LUT column
// indices: clamp(round((openness+brightness)/2), 0, brightness-1).
// Differential openness is expected roughly in [-brightness, +brightness];
// anything outside saturates, which is lossy by design.
func OpennessIndex(openness *raster.Raster, brightness int) []uint8 {
	idx := make([]uint8, len(openness.Data))
	for i, v := range openness.Data {
		idx[i] = clampIndex(math.Round((float64(v)+float64(brightness))/2), brightness)
	}
	return idx
}

func clampIndex(v float64, size int) uint8 {
	i := int(v)
	if !(i > 0) { // catches negatives and NaN
		return 0
	}
	if i >= size {
		i = size - 1
	}
	return uint8(i)
}

// Composite gathers the final RGB image: pixel (r,c) is
// LUT[slopeIndex[r,c], opennessIndex[r,c]]. The returned buffer is
// interleaved RGB, Width*Height*3 bytes, same shape as the inputs.
func Composite(slope, openness *raster.Raster, ct *ColorTable) ([]uint8, error) {
	if slope.Width != openness.Width || slope.Height != openness.Height {
		return nil, fmt.Errorf("slope is %dx%d but openness is %dx%d",
			slope.Width, slope.Height, openness.Width, openness.Height)
	}

	sat, bri := ct.Size()
	slopeIdx := SlopeIndex(slope, sat)
	opnsIdx := OpennessIndex(openness, bri)

	pix := make([]uint8, len(slopeIdx)*3)
	for i := range slopeIdx {
		rgb := ct.At(int(slopeIdx[i]), int(opnsIdx[i]))
		pix[i*3] = rgb[0]
		pix[i*3+1] = rgb[1]
		pix[i*3+2] = rgb[2]
	}

	return pix, nil
}

// GenImage builds the composite from the slope and differential-openness
// rasters and persists it as a geotiff georeferenced like the slope
// raster.
func GenImage(slope, openness *raster.Raster, saturation, brightness int, outPath string) error {
	ct := ColorScheme(saturation, brightness)

	pix, err := Composite(slope, openness, ct)
	if err != nil {
		return err
	}

	return raster.SaveRGB(outPath, pix, slope.Width, slope.Height, slope)
}
