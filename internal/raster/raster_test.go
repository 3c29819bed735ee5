package raster_test

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"

	"github.com/reliefmap/rrim-utils/internal/raster"
)

func sample() *raster.Raster {
	return &raster.Raster{
		Width:        3,
		Height:       2,
		GeoTransform: [6]float64{100, 10, 0, 500, 0, -10},
		Projection:   "",
		NoData:       -9999,
		HasNoData:    true,
		Data:         []float32{1, 2, 3, 4, -9999, 6},
	}
}

func TestResolutionIsAbsolute(t *testing.T) {
	r := sample()

	x, y := r.Resolution()
	assert.Equal(t, 10.0, x)
	assert.Equal(t, 10.0, y)
}

func TestBounds(t *testing.T) {
	r := sample()

	b := r.Bounds()
	assert.Equal(t, orb.Point{100, 480}, b.Min)
	assert.Equal(t, orb.Point{130, 500}, b.Max)
}

func TestNegatedSkipsNoData(t *testing.T) {
	r := sample()

	n := r.Negated()
	assert.Equal(t, []float32{-1, -2, -3, -4, -9999, -6}, n.Data)
	// original untouched
	assert.Equal(t, float32(1), r.Z(0, 0))
}

func TestMinMaxIgnoresNoData(t *testing.T) {
	r := sample()

	zMin, zMax := r.MinMax()
	assert.Equal(t, float32(1), zMin)
	assert.Equal(t, float32(6), zMax)
}

func TestNewLikeCopiesMetadata(t *testing.T) {
	r := sample()

	out := raster.NewLike(r)
	assert.Equal(t, r.Width, out.Width)
	assert.Equal(t, r.Height, out.Height)
	assert.Equal(t, r.GeoTransform, out.GeoTransform)
	assert.Equal(t, r.NoData, out.NoData)
	assert.Len(t, out.Data, 6)
	assert.Zero(t, out.Data[0])
}
