package terrain

import (
	"context"
	"log"
	"runtime"
	"sync"

	"github.com/chewxy/math32"
	"golang.org/x/sync/semaphore"

	"github.com/reliefmap/rrim-utils/internal/raster"
)

const radToDeg = 180 / math32.Pi

var sem = semaphore.NewWeighted(int64(runtime.NumCPU()))

// Slope computes the slope of dem in degrees using Horn's 3x3 kernel.
// veFactor is the vertical exaggeration from ZFactor; edge cells reuse the
// nearest in-grid neighbours, no-data cells stay no-data.
func Slope(dem *raster.Raster, veFactor float64) *raster.Raster {
	out := raster.NewLike(dem)
	resX, resY := dem.Resolution()
	ve := float32(veFactor)

	wg := sync.WaitGroup{}
	for row := 0; row < dem.Height; row++ {
		wg.Add(1)
		go func(row int) {
			defer wg.Done()
			if err := sem.Acquire(context.Background(), 1); err != nil {
				log.Fatal(err)
			}
			defer sem.Release(1)

			for col := 0; col < dem.Width; col++ {
				out.SetZ(col, row, slopeAt(dem, col, row, float32(resX), float32(resY), ve))
			}
		}(row)
	}
	wg.Wait()

	return out
}

func slopeAt(dem *raster.Raster, col, row int, resX, resY, ve float32) float32 {
	center := dem.Z(col, row)
	if dem.IsNoData(center) {
		return center
	}

	// clamp to the grid, fall back to the center for no-data neighbours
	z := func(dc, dr int) float32 {
		c, r := col+dc, row+dr
		if c < 0 {
			c = 0
		} else if c >= dem.Width {
			c = dem.Width - 1
		}
		if r < 0 {
			r = 0
		} else if r >= dem.Height {
			r = dem.Height - 1
		}
		v := dem.Z(c, r)
		if dem.IsNoData(v) {
			return center
		}
		return v
	}

	dzdx := ((z(1, -1) + 2*z(1, 0) + z(1, 1)) - (z(-1, -1) + 2*z(-1, 0) + z(-1, 1))) / (8 * resX)
	dzdy := ((z(-1, 1) + 2*z(0, 1) + z(1, 1)) - (z(-1, -1) + 2*z(0, -1) + z(1, -1))) / (8 * resY)

	return math32.Atan(ve*math32.Sqrt(dzdx*dzdx+dzdy*dzdy)) * radToDeg
}
