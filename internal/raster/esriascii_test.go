package raster_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reliefmap/rrim-utils/internal/raster"
)

const grid = `ncols 3
nrows 2
xllcorner 100
yllcorner 200
cellsize 10
NODATA_value -32768
1 2 3
4 -32768 6
`

func TestParseEsriASCII(t *testing.T) {
	r, err := raster.ParseEsriASCII(strings.NewReader(grid), -9999)
	require.NoError(t, err)

	assert.Equal(t, 3, r.Width)
	assert.Equal(t, 2, r.Height)
	// top-left origin: yllcorner plus nrows*cellsize, negative pixel height
	assert.Equal(t, [6]float64{100, 10, 0, 220, 0, -10}, r.GeoTransform)
	assert.Empty(t, r.Projection)

	// the file's sentinel is remapped onto the requested one
	assert.Equal(t, []float32{1, 2, 3, 4, -9999, 6}, r.Data)
	assert.Equal(t, -9999.0, r.NoData)
}

func TestParseEsriASCIICenterRegistration(t *testing.T) {
	centered := strings.ReplaceAll(grid, "llcorner", "llcenter")

	r, err := raster.ParseEsriASCII(strings.NewReader(centered), -9999)
	require.NoError(t, err)

	// center registration shifts the origin by half a cell
	assert.Equal(t, 95.0, r.GeoTransform[0])
	assert.Equal(t, 215.0, r.GeoTransform[3])
}

func TestParseEsriASCIIMissingHeader(t *testing.T) {
	_, err := raster.ParseEsriASCII(strings.NewReader("ncols 2\n1 2\n"), -9999)
	assert.Error(t, err)
}

func TestParseEsriASCIITruncatedData(t *testing.T) {
	truncated := strings.TrimSuffix(grid, "4 -32768 6\n")

	_, err := raster.ParseEsriASCII(strings.NewReader(truncated), -9999)
	assert.Error(t, err)
}
