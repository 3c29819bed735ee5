package raster

import (
	"github.com/paulmach/orb"
)

// Raster is a single-band grid of float32 samples plus the geospatial
// metadata needed to place it: an affine geotransform (GDAL order, element
// [1] is pixel width, [5] is pixel height), a projection WKT string (empty
// for unreferenced grids) and an optional no-data sentinel.
type Raster struct {
	Width, Height int
	GeoTransform  [6]float64
	Projection    string
	NoData        float64
	HasNoData     bool
	Data          []float32 // row-major, Width*Height values
}

// NewLike returns an empty raster with the same shape and geospatial
// metadata as ref.
func NewLike(ref *Raster) *Raster {
	return &Raster{
		Width:        ref.Width,
		Height:       ref.Height,
		GeoTransform: ref.GeoTransform,
		Projection:   ref.Projection,
		NoData:       ref.NoData,
		HasNoData:    ref.HasNoData,
		Data:         make([]float32, ref.Width*ref.Height),
	}
}

// Z returns the sample at (col, row).
// It will panic if col or row are out of bounds for the grid.
func (r *Raster) Z(col, row int) float32 {
	return r.Data[row*r.Width+col]
}

// SetZ sets the sample at (col, row).
func (r *Raster) SetZ(col, row int, v float32) {
	r.Data[row*r.Width+col] = v
}

// IsNoData reports whether v equals the raster's no-data sentinel.
func (r *Raster) IsNoData(v float32) bool {
	return r.HasNoData && float64(v) == r.NoData
}

// Resolution returns the absolute pixel width and height from the
// geotransform.
func (r *Raster) Resolution() (x, y float64) {
	x = r.GeoTransform[1]
	if x < 0 {
		x = -x
	}
	y = r.GeoTransform[5]
	if y < 0 {
		y = -y
	}
	return x, y
}

// Bounds returns the geographic extent of the raster as an orb.Bound.
func (r *Raster) Bounds() orb.Bound {
	gt := r.GeoTransform
	x0, y0 := gt[0], gt[3]
	x1 := gt[0] + float64(r.Width)*gt[1]
	y1 := gt[3] + float64(r.Height)*gt[5]
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	return orb.Bound{Min: orb.Point{x0, y0}, Max: orb.Point{x1, y1}}
}

// Negated returns a copy of the raster with every sample multiplied by -1.
// No-data samples are left untouched.
func (r *Raster) Negated() *Raster {
	out := NewLike(r)
	for i, v := range r.Data {
		if r.IsNoData(v) {
			out.Data[i] = v
			continue
		}
		out.Data[i] = -v
	}
	return out
}

// MinMax returns the smallest and largest samples, ignoring no-data cells.
func (r *Raster) MinMax() (zMin, zMax float32) {
	first := true
	for _, v := range r.Data {
		if r.IsNoData(v) {
			continue
		}
		if first {
			zMin, zMax = v, v
			first = false
			continue
		}
		if v < zMin {
			zMin = v
		}
		if v > zMax {
			zMax = v
		}
	}
	return zMin, zMax
}
