package rrim

import (
	"flag"
	"log"
	"os"
)

// Run is the entrypoint of the rrim subcommand
func Run(flagSet *flag.FlagSet) {
	demPtr := flagSet.String("in", "", "Path to input DEM (geotiff or Esri ASCII grid)")
	nodataPtr := flagSet.Float64("nodata", -9999, "Value used to describe no data")
	fillPtr := flagSet.Bool("fill", false, "Fill depressions before slope/openness")
	dirPtr := flagSet.Int("ndir", 8, "Number of directions for openness")
	radiusPtr := flagSet.Int("rmax", 10, "Max search radius in pixels for openness")
	noisePtr := flagSet.Int("noise", 0, "Level of noise removal for openness (0-3)")
	satPtr := flagSet.Int("saturation", 90, "Red saturation axis size of the color scale")
	briPtr := flagSet.Int("brightness", 150, "Brightness axis size of the color scale")
	savePtr := flagSet.Bool("save", true, "Persist intermediate rasters (slope, openness)")
	keepPtr := flagSet.Bool("keep", false, "Reuse previously saved slope and openness rasters")
	smoothPtr := flagSet.Bool("smooth", false, "Resample the brightness grid before compositing")

	flagSet.Parse(os.Args[2:])

	if *demPtr == "" {
		flagSet.PrintDefaults()
		os.Exit(1)
	}

	cfg := Config{
		DEMPath:          *demPtr,
		NoDataValue:      *nodataPtr,
		FillDepressions:  *fillPtr,
		Directions:       *dirPtr,
		Radius:           *radiusPtr,
		Noise:            *noisePtr,
		Saturation:       *satPtr,
		Brightness:       *briPtr,
		SaveIntermediate: *savePtr,
		KeepCached:       *keepPtr,
		Smooth:           *smoothPtr,
	}

	if err := Generate(cfg, NewFileCache()); err != nil {
		log.Fatal(err)
	}
}
