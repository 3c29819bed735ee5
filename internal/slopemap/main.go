// Package slopemap is the standalone slope subcommand: DEM in, slope
// geotiff (degrees) out.
package slopemap

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

// Run is the entrypoint of the slope subcommand
func Run(flagSet *flag.FlagSet) {
	demPtr := flagSet.String("in", "", "Path to input DEM (geotiff or Esri ASCII grid)")
	outPtr := flagSet.String("out", "", "Output path (default <dem>_slope.tif)")
	nodataPtr := flagSet.Float64("nodata", -9999, "Value used to describe no data")
	fillPtr := flagSet.Bool("fill", false, "Fill depressions first")

	flagSet.Parse(os.Args[2:])

	if *demPtr == "" {
		flagSet.PrintDefaults()
		os.Exit(1)
	}
	if !utils.IsReadableFile(*demPtr) {
		log.Fatal(fmt.Errorf("%w: %s", rrim.ErrMissingDEM, *demPtr))
	}

	outPath := *outPtr
	if outPath == "" {
		outPath = rrim.SlopePath(*demPtr)
	}

	timer := time.Now()
	fmt.Println("▶️  Loading DEM")
	dem, err := raster.Load(*demPtr, *nodataPtr)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("✔️  Loaded DEM in", time.Since(timer).String())

	zFactor, err := terrain.ZFactor(dem.Projection, dem.GeoTransform)
	if err != nil {
		log.Fatal(err)
	}

	if *fillPtr {
		fmt.Println("▶️  Filling depressions")
		dem = fill.Depressions(dem)
	}

	timer = time.Now()
	fmt.Println("▶️  Processing slope")
	slope := terrain.Slope(dem, zFactor)
	fmt.Println("✔️  Processed slope in", time.Since(timer).String())

	if err := raster.SaveGrid(outPath, slope, dem); err != nil {
		log.Fatal(err)
	}
	fmt.Println("✔️  Wrote", outPath)
}
