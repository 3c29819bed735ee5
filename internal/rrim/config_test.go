package rrim_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/reliefmap/rrim-utils/internal/rrim"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := rrim.DefaultConfig("dem.tif")
	assert.NoError(t, cfg.Validate())

	assert.Equal(t, -9999.0, cfg.NoDataValue)
	assert.Equal(t, 8, cfg.Directions)
	assert.Equal(t, 10, cfg.Radius)
	assert.Equal(t, 0, cfg.Noise)
	assert.Equal(t, 90, cfg.Saturation)
	assert.Equal(t, 150, cfg.Brightness)
	assert.True(t, cfg.SaveIntermediate)
	assert.False(t, cfg.KeepCached)
}

func TestConfigValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*rrim.Config)
	}{
		{"no dem", func(c *rrim.Config) { c.DEMPath = "" }},
		{"saturation too small", func(c *rrim.Config) { c.Saturation = 1 }},
		{"saturation too large", func(c *rrim.Config) { c.Saturation = 300 }},
		{"brightness too small", func(c *rrim.Config) { c.Brightness = 0 }},
		{"brightness too large", func(c *rrim.Config) { c.Brightness = 257 }},
		{"negative noise", func(c *rrim.Config) { c.Noise = -1 }},
		{"noise too high", func(c *rrim.Config) { c.Noise = 4 }},
		{"no directions", func(c *rrim.Config) { c.Directions = 0 }},
		{"no radius", func(c *rrim.Config) { c.Radius = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := rrim.DefaultConfig("dem.tif")
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
