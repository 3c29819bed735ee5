// Package preview renders quick-look PNGs of a written raster (typically
// the RRIM composite) at a ladder of resolutions.
package preview

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/nfnt/resize"

	"github.com/reliefmap/rrim-utils/internal/raster"
	"github.com/reliefmap/rrim-utils/internal/utils"
)

var sizes = []uint{128, 256, 512, 1024}

// Run is the entrypoint of the preview subcommand
func Run(flagSet *flag.FlagSet) {

	var timer time.Time
	start := time.Now()

	inputPtr := flagSet.String("in", "", "Path to raster to preview (e.g. the _rrim.tif output)")
	outputPtr := flagSet.String("out", "", "Path to output directory")

	flagSet.Parse(os.Args[2:])

	// make sure both flags are present
	if *outputPtr == "" || *inputPtr == "" {
		flagSet.PrintDefaults()
		os.Exit(1)
	}

	// make sure given output directory is a valid directory
	if !utils.IsDirectory(*outputPtr) {
		log.Fatal(errors.New("output directory doesn't exist"))
	}
	if !utils.IsReadableFile(*inputPtr) {
		log.Fatal(fmt.Errorf("%s does not exist or is not readable", *inputPtr))
	}

	timer = time.Now()
	fmt.Println("▶️  Loading raster")

	img, err := raster.LoadImage(*inputPtr)
	if err != nil {
		log.Fatal(err)
	}

	width := img.Bounds().Dx()
	height := img.Bounds().Dy()

	fmt.Println("✔️  Loaded raster in", time.Since(timer).String())

	name := strings.TrimSuffix(filepath.Base(*inputPtr), filepath.Ext(*inputPtr))

	timer = time.Now()
	fmt.Println("▶️  Writing full resolution preview")
	saveImage(path.Join(*outputPtr, name+".png"), img)
	fmt.Println("✔️  Wrote full resolution preview in", time.Since(timer).String())

	for _, size := range sizes {
		if int(size) >= height {
			continue
		}

		timer = time.Now()
		fmt.Printf("▶️  Building x%d preview\n", size)

		factor := float64(size) / float64(height)
		w := uint(float64(width) * factor)

		small := resize.Resize(w, size, img, resize.MitchellNetravali)
		saveImage(path.Join(*outputPtr, fmt.Sprintf("%s_%d.png", name, size)), small)

		fmt.Printf("✔️  Built x%d in %s\n", size, time.Since(timer).String())
	}

	fmt.Printf("\n    🎉  Finished in %s\n", time.Since(start).String())
}

func saveImage(path string, img image.Image) {
	out, err := os.Create(path)
	if err != nil {
		log.Fatal(err)
	}

	if err := png.Encode(out, img); err != nil {
		log.Fatal(err)
	}

	err = out.Close()
	if err != nil {
		log.Fatal(err)
	}
}
