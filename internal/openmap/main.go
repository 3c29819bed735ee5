// Package openmap is the standalone openness subcommand: DEM in,
// positive/negative/differential openness geotiffs out.
package openmap

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/reliefmap/rrim-utils/internal/fill"
	"github.com/reliefmap/rrim-utils/internal/raster"
	"github.com/reliefmap/rrim-utils/internal/rrim"
	"github.com/reliefmap/rrim-utils/internal/terrain"
	"github.com/reliefmap/rrim-utils/internal/utils"
)

// Run is the entrypoint of the openness subcommand
func Run(flagSet *flag.FlagSet) {
	demPtr := flagSet.String("in", "", "Path to input DEM (geotiff or Esri ASCII grid)")
	nodataPtr := flagSet.Float64("nodata", -9999, "Value used to describe no data")
	fillPtr := flagSet.Bool("fill", false, "Fill depressions first")
	dirPtr := flagSet.Int("ndir", 8, "Number of directions")
	radiusPtr := flagSet.Int("rmax", 10, "Max search radius in pixels")
	noisePtr := flagSet.Int("noise", 0, "Level of noise removal (0-3)")

	flagSet.Parse(os.Args[2:])

	if *demPtr == "" {
		flagSet.PrintDefaults()
		os.Exit(1)
	}
	if !utils.IsReadableFile(*demPtr) {
		log.Fatal(fmt.Errorf("%w: %s", rrim.ErrMissingDEM, *demPtr))
	}

	timer := time.Now()
	fmt.Println("▶️  Loading DEM")
	dem, err := raster.Load(*demPtr, *nodataPtr)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("✔️  Loaded DEM in", time.Since(timer).String())

	if *fillPtr {
		fmt.Println("▶️  Filling depressions")
		dem = fill.Depressions(dem)
	}

	timer = time.Now()
	fmt.Println("▶️  Processing openness")
	result := rrim.CombineOpenness(dem, terrain.OpennessOptions{
		Directions: *dirPtr,
		Radius:     *radiusPtr,
		Noise:      *noisePtr,
	}, nil)
	fmt.Println("✔️  Processed openness in", time.Since(timer).String())

	if err := result.Save(*demPtr, dem); err != nil {
		log.Fatal(err)
	}
	fmt.Println("✔️  Wrote", rrim.PosOpennessPath(*demPtr))
	fmt.Println("✔️  Wrote", rrim.NegOpennessPath(*demPtr))
	fmt.Println("✔️  Wrote", rrim.DiffOpennessPath(*demPtr))
}
