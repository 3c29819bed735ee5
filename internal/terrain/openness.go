package terrain

import (
	"context"
	"log"
	"sync"

	"github.com/chewxy/math32"

	"github.com/reliefmap/rrim-utils/internal/raster"
)

// OpennessOptions bundle the sampling parameters of the horizon search.
type OpennessOptions struct {
	Directions int // azimuthal sampling count
	Radius     int // max search radius in pixels
	Noise      int // noise removal level, 0 (off) to 3: drops that many of the highest horizon angles per direction
}

// Openness computes positive topographic openness in degrees: for each
// cell the horizon elevation angle is searched along Directions azimuths
// out to Radius pixels, and openness is the mean zenith angle
// (90deg - horizon angle) over all directions. Computing it on a negated
// DEM yields negative openness. resolution is the ground size of one
// pixel step.
func Openness(dem *raster.Raster, resolution float64, opt OpennessOptions) *raster.Raster {
	out := raster.NewLike(dem)

	// per-direction unit steps
	dx := make([]float32, opt.Directions)
	dy := make([]float32, opt.Directions)
	for d := 0; d < opt.Directions; d++ {
		az := 2 * math32.Pi * float32(d) / float32(opt.Directions)
		dx[d] = math32.Sin(az)
		dy[d] = -math32.Cos(az) // row 0 is north
	}

	res := float32(resolution)

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
				out.SetZ(col, row, opennessAt(dem, col, row, res, dx, dy, opt))
			}
		}(row)
	}
	wg.Wait()

	return out
}

func opennessAt(dem *raster.Raster, col, row int, res float32, dx, dy []float32, opt OpennessOptions) float32 {
	center := dem.Z(col, row)
	if dem.IsNoData(center) {
		return center
	}

	var sum float32
	for d := range dx {
		sum += 90 - horizonAngle(dem, col, row, center, res, dx[d], dy[d], opt)
	}
	return sum / float32(len(dx))
}

// horizonAngle walks outward along one azimuth and returns the horizon
// elevation angle in degrees. With Noise > 0 that many of the highest angles
// along the profile are discarded before taking the maximum.
func horizonAngle(dem *raster.Raster, col, row int, center, res, dx, dy float32, opt OpennessOptions) float32 {
	// top holds the Noise+1 largest tangents seen so far, descending
	var top [4]float32
	count := 0
	keep := opt.Noise + 1

	for t := 1; t <= opt.Radius; t++ {
		c := col + int(math32.Round(float32(t)*dx))
		r := row + int(math32.Round(float32(t)*dy))
		if c < 0 || c >= dem.Width || r < 0 || r >= dem.Height {
			break
		}
		z := dem.Z(c, r)
		if dem.IsNoData(z) {
			continue
		}

		tan := (z - center) / (float32(t) * res)
		if count < keep {
			top[count] = tan
			count++
			// insertion sort, keep is at most 4
			for i := count - 1; i > 0 && top[i] > top[i-1]; i-- {
				top[i], top[i-1] = top[i-1], top[i]
			}
		} else if tan > top[keep-1] {
			top[keep-1] = tan
			for i := keep - 1; i > 0 && top[i] > top[i-1]; i-- {
				top[i], top[i-1] = top[i-1], top[i]
			}
		}
	}

	if count == 0 {
		// nothing visible along this azimuth, flat horizon
		return 0
	}
	// after noise removal the horizon is the smallest kept tangent
	return math32.Atan(top[count-1]) * radToDeg
}
