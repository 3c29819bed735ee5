package rrim

import (
	"errors"
	"fmt"

	"github.com/gosuri/uiprogress"

	"github.com/reliefmap/rrim-utils/internal/fill"
	"github.com/reliefmap/rrim-utils/internal/raster"
	"github.com/reliefmap/rrim-utils/internal/terrain"
	"github.com/reliefmap/rrim-utils/internal/utils"
)

// ErrMissingDEM is returned before any computation when the input DEM
// does not exist or cannot be read.
var ErrMissingDEM = errors.New("input DEM does not exist or is not readable")

// Generate runs the whole pipeline for cfg: load, optional depression
// fill, slope + openness (or a cache hit on both), composite, write.
// cache may be nil to disable reuse and persistence of intermediates.
func Generate(cfg Config, cache Cache) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	// fail fast, nothing below should run against a missing input
	if !utils.IsReadableFile(cfg.DEMPath) {
		return fmt.Errorf("%w: %s", ErrMissingDEM, cfg.DEMPath)
	}

	defer utils.Timed("Total running time")()

	dem, err := raster.Load(cfg.DEMPath, cfg.NoDataValue)
	if err != nil {
		return err
	}

	zFactor, err := terrain.ZFactor(dem.Projection, dem.GeoTransform)
	if err != nil {
		return err
	}

	printBanner(cfg, dem, zFactor)

	var slope, diffOpns *raster.Raster

	cached := lookupCache(cfg, cache)
	if cached != nil {
		fmt.Println("✔️  Reusing saved slope and differential openness rasters")
		slope, diffOpns = cached.Slope, cached.DiffOpenness
	} else {
		if cfg.FillDepressions {
			fmt.Println("▶️  Filling depressions")
			dem = fill.Depressions(dem)
		}

		progress := uiprogress.New()
		progress.Start()

		slopeBar := stageBar(progress, "Processing Slope", 1)
		slope = terrain.Slope(dem, zFactor)
		slopeBar.Incr()

		opnsBar := stageBar(progress, "Processing Openness", 3)
		result := CombineOpenness(dem, terrain.OpennessOptions{
			Directions: cfg.Directions,
			Radius:     cfg.Radius,
			Noise:      cfg.Noise,
		}, func() { opnsBar.Incr() })
		progress.Stop()

		diffOpns = result.Differential

		if cfg.SaveIntermediate {
			if err := raster.SaveGrid(PosOpennessPath(cfg.DEMPath), result.Positive, slope); err != nil {
				return err
			}
			if err := raster.SaveGrid(NegOpennessPath(cfg.DEMPath), result.Negative, slope); err != nil {
				return err
			}
			if cache != nil {
				// the cache backing persists slope and differential
				// openness under the usual filename convention
				if err := cache.Store(cfg, slope, diffOpns); err != nil {
					return err
				}
			} else {
				if err := raster.SaveGrid(SlopePath(cfg.DEMPath), slope, slope); err != nil {
					return err
				}
				if err := raster.SaveGrid(DiffOpennessPath(cfg.DEMPath), diffOpns, slope); err != nil {
					return err
				}
			}
		}
	}

	if cfg.Smooth {
		diffOpns = SmoothOpenness(diffOpns)
	}

	fmt.Println("▶️  Processing RRIM composite")
	if err := GenImage(slope, diffOpns, cfg.Saturation, cfg.Brightness, RRIMPath(cfg.DEMPath)); err != nil {
		return err
	}

	fmt.Println("✔️  Wrote", RRIMPath(cfg.DEMPath))
	return nil
}

// lookupCache returns the cached rasters when reuse is enabled and the
// lookup hits; any cache error only disables reuse, the run continues
// from scratch.
func lookupCache(cfg Config, cache Cache) *CachedRasters {
	if cache == nil || !cfg.KeepCached {
		return nil
	}
	cached, ok, err := cache.Lookup(cfg)
	if err != nil {
		fmt.Println("⚠️  Cache lookup failed, recomputing:", err)
		return nil
	}
	if !ok {
		return nil
	}
	return cached
}

func printBanner(cfg Config, dem *raster.Raster, zFactor float64) {
	zMin, zMax := dem.MinMax()
	bounds := dem.Bounds()

	fmt.Println("##################################################")
	fmt.Println("              RRIM computation")
	fmt.Println("##################################################")
	fmt.Println("    DEM file     :", cfg.DEMPath)
	fmt.Printf("    shape        : %d x %d\n", dem.Width, dem.Height)
	fmt.Printf("    z range      : %.0f - %.0f\n", zMin, zMax)
	fmt.Printf("    extent       : %v - %v\n", bounds.Min, bounds.Max)
	fmt.Printf("    cell size (m): %g\n", dem.GeoTransform[1]/zFactor)
	fmt.Printf("    search radius: %d px / %g m\n", cfg.Radius, float64(cfg.Radius)*dem.GeoTransform[1]/zFactor)
	fmt.Println()
}

func stageBar(progress *uiprogress.Progress, title string, total int) *uiprogress.Bar {
	return progress.AddBar(total).AppendCompleted().PrependFunc(func(*uiprogress.Bar) string {
		return title
	})
}
