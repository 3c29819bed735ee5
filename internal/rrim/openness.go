package rrim

import (
	"github.com/reliefmap/rrim-utils/internal/raster"
	"github.com/reliefmap/rrim-utils/internal/terrain"
)

// OpennessResult carries the three openness rasters of one run.
type OpennessResult struct {
	Positive     *raster.Raster
	Negative     *raster.Raster
	Differential *raster.Raster
}

// CombineOpenness computes positive openness on the DEM, negative
// openness on the negated DEM (identical parameters for both) and their
// difference: (positive - negative) / 2. The pixel resolution is the
// absolute width of a DEM cell. step, if non-nil, is called after each of
// the three sub-steps so a caller can drive a progress bar.
func CombineOpenness(dem *raster.Raster, opt terrain.OpennessOptions, step func()) *OpennessResult {
	if step == nil {
		step = func() {}
	}
	resolution, _ := dem.Resolution()

	pos := terrain.Openness(dem, resolution, opt)
	step()
	neg := terrain.Openness(dem.Negated(), resolution, opt)
	step()

	diff := raster.NewLike(dem)
	for i := range diff.Data {
		p, n := pos.Data[i], neg.Data[i]
		if dem.IsNoData(dem.Data[i]) {
			diff.Data[i] = dem.Data[i]
			continue
		}
		diff.Data[i] = (p - n) / 2
	}
	step()

	return &OpennessResult{Positive: pos, Negative: neg, Differential: diff}
}

// Save persists the three openness rasters next to the DEM, georeferenced
// like ref.
func (o *OpennessResult) Save(demPath string, ref *raster.Raster) error {
	if err := raster.SaveGrid(PosOpennessPath(demPath), o.Positive, ref); err != nil {
		return err
	}
	if err := raster.SaveGrid(NegOpennessPath(demPath), o.Negative, ref); err != nil {
		return err
	}
	return raster.SaveGrid(DiffOpennessPath(demPath), o.Differential, ref)
}
