package rrim_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reliefmap/rrim-utils/internal/raster"
	"github.com/reliefmap/rrim-utils/internal/rrim"
)

func TestMemCacheRoundTrip(t *testing.T) {
	cache := rrim.NewMemCache()
	cfg := rrim.DefaultConfig("dem.tif")

	_, ok, err := cache.Lookup(cfg)
	require.NoError(t, err)
	assert.False(t, ok)

	slope := gridOf(t, 2, 2, []float32{1, 2, 3, 4})
	diff := gridOf(t, 2, 2, []float32{-1, 0, 1, 2})
	require.NoError(t, cache.Store(cfg, slope, diff))

	cached, ok, err := cache.Lookup(cfg)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, slope.Data, cached.Slope.Data)
	assert.Equal(t, diff.Data, cached.DiffOpenness.Data)
}

// the key covers the terrain parameters but not the color parameters:
// changing saturation/brightness must still hit, changing the openness
// parameters must miss
func TestMemCacheKeying(t *testing.T) {
	cache := rrim.NewMemCache()
	cfg := rrim.DefaultConfig("dem.tif")

	slope := gridOf(t, 1, 1, []float32{1})
	diff := gridOf(t, 1, 1, []float32{0})
	require.NoError(t, cache.Store(cfg, slope, diff))

	recolored := cfg
	recolored.Saturation = 60
	recolored.Brightness = 40
	_, ok, err := cache.Lookup(recolored)
	require.NoError(t, err)
	assert.True(t, ok, "color parameters must not invalidate the cache")

	resampled := cfg
	resampled.Radius = 20
	_, ok, err = cache.Lookup(resampled)
	require.NoError(t, err)
	assert.False(t, ok, "terrain parameters must invalidate the cache")
}

// Rerunning against the stored intermediates must feed the composite the
// exact samples a from-scratch run would: Store writes the rasters as
// geotiffs, the manifest records DEM mtime plus the terrain parameters,
// and Lookup only hits while both still match.
func TestFileCacheRoundTrip(t *testing.T) {
	demPath := filepath.Join(t.TempDir(), "dem.tif")

	dem := gridOf(t, 2, 2, []float32{100, 101, 102, 103})
	if err := raster.SaveGrid(demPath, dem, dem); err != nil {
		t.Skipf("GDAL not available: %v", err)
	}

	cache := rrim.NewFileCache()
	cfg := rrim.DefaultConfig(demPath)

	_, ok, err := cache.Lookup(cfg)
	require.NoError(t, err)
	assert.False(t, ok)

	slope := gridOf(t, 2, 2, []float32{0, 10, 20, 30})
	diff := gridOf(t, 2, 2, []float32{-4, -2, 2, 4})
	require.NoError(t, cache.Store(cfg, slope, diff))

	cached, ok, err := cache.Lookup(cfg)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, slope.Data, cached.Slope.Data)
	assert.Equal(t, diff.Data, cached.DiffOpenness.Data)
	assert.Equal(t, slope.GeoTransform, cached.Slope.GeoTransform)

	recolored := cfg
	recolored.Saturation = 60
	_, ok, err = cache.Lookup(recolored)
	require.NoError(t, err)
	assert.True(t, ok, "color parameters must not invalidate the cache")
}

func TestFileCacheInvalidatesOnDEMChange(t *testing.T) {
	demPath := filepath.Join(t.TempDir(), "dem.tif")

	dem := gridOf(t, 2, 2, []float32{100, 101, 102, 103})
	if err := raster.SaveGrid(demPath, dem, dem); err != nil {
		t.Skipf("GDAL not available: %v", err)
	}

	cache := rrim.NewFileCache()
	cfg := rrim.DefaultConfig(demPath)

	slope := gridOf(t, 2, 2, []float32{0, 10, 20, 30})
	diff := gridOf(t, 2, 2, []float32{-4, -2, 2, 4})
	require.NoError(t, cache.Store(cfg, slope, diff))

	// a touched DEM must miss even though the artifacts still exist
	later := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(demPath, later, later))

	_, ok, err := cache.Lookup(cfg)
	require.NoError(t, err)
	assert.False(t, ok)

	resampled := cfg
	resampled.Noise = 2
	_, ok, err = cache.Lookup(resampled)
	require.NoError(t, err)
	assert.False(t, ok, "terrain parameters must invalidate the cache")
}
