package rrim_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reliefmap/rrim-utils/internal/raster"
	"github.com/reliefmap/rrim-utils/internal/rrim"
	"github.com/reliefmap/rrim-utils/internal/terrain"
)

func gridOf(t *testing.T, width, height int, values []float32) *raster.Raster {
	t.Helper()
	require.Len(t, values, width*height)
	return &raster.Raster{
		Width:        width,
		Height:       height,
		GeoTransform: [6]float64{0, 1, 0, 0, 0, -1},
		NoData:       -9999,
		HasNoData:    true,
		Data:         values,
	}
}

func TestSlopeIndexClamps(t *testing.T) {
	slope := gridOf(t, 6, 1, []float32{-5.4, 0, 0.5, 89.6, 300, -300})

	idx := rrim.SlopeIndex(slope, 90)

	// sign discarded, rounded, clamped to [0, 89]; never wraps
	assert.Equal(t, []uint8{5, 0, 1, 89, 89, 89}, idx)
}

func TestOpennessIndexAffineMap(t *testing.T) {
	tests := []struct {
		openness float32
		want     uint8
	}{
		{0, 75},     // round(brightness/2)
		{-150, 0},   // -brightness floors to 0
		{-400, 0},   // anything below saturates to 0
		{150, 149},  // +brightness caps at brightness-1
		{400, 149},  // anything above saturates to brightness-1
		{1, 76},     // round((1+150)/2)
		{-1, 75},    // round(74.5), half rounds away from zero
	}

	for _, tt := range tests {
		opns := gridOf(t, 1, 1, []float32{tt.openness})
		idx := rrim.OpennessIndex(opns, 150)
		assert.Equal(t, tt.want, idx[0], "openness %g", tt.openness)
	}
}

func TestCompositeGather(t *testing.T) {
	slope := gridOf(t, 2, 2, []float32{0, 10, 45.4, 200})
	opns := gridOf(t, 2, 2, []float32{0, -150, 150, 20})
	ct := rrim.ColorScheme(90, 150)

	pix, err := rrim.Composite(slope, opns, ct)
	require.NoError(t, err)
	require.Len(t, pix, 2*2*3)

	wants := [][3]uint8{
		ct.At(0, 75),
		ct.At(10, 0),
		ct.At(45, 149),
		ct.At(89, 85),
	}
	for i, want := range wants {
		got := [3]uint8{pix[i*3], pix[i*3+1], pix[i*3+2]}
		assert.Equal(t, want, got, "pixel %d", i)
	}
}

func TestCompositeShapeMismatch(t *testing.T) {
	slope := gridOf(t, 2, 2, make([]float32, 4))
	opns := gridOf(t, 3, 2, make([]float32, 6))

	_, err := rrim.Composite(slope, opns, rrim.ColorScheme(90, 150))
	assert.Error(t, err)
}

// Flat terrain end to end: zero slope everywhere, positive and negative
// openness both exactly 90, so the composite is uniform LUT[0][75].
func TestFlatTerrainComposite(t *testing.T) {
	data := make([]float32, 100)
	for i := range data {
		data[i] = 100
	}
	dem := gridOf(t, 10, 10, data)

	zFactor, err := terrain.ZFactor(`PROJCS["metric",UNIT["Meter",1]]`, dem.GeoTransform)
	require.NoError(t, err)
	require.Equal(t, 1.0, zFactor)

	slope := terrain.Slope(dem, zFactor)
	for _, v := range slope.Data {
		assert.Zero(t, v)
	}

	result := rrim.CombineOpenness(dem, terrain.OpennessOptions{Directions: 8, Radius: 10}, nil)
	for _, v := range result.Differential.Data {
		assert.Zero(t, v)
	}

	ct := rrim.ColorScheme(90, 150)
	pix, err := rrim.Composite(slope, result.Differential, ct)
	require.NoError(t, err)

	want := ct.At(0, 75)
	for i := 0; i < len(pix); i += 3 {
		require.Equal(t, want, [3]uint8{pix[i], pix[i+1], pix[i+2]}, "pixel %d", i/3)
	}
}
