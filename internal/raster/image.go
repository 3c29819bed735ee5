package raster

import (
	"fmt"
	"image"

	"github.com/airbusgeo/godal"
)

// LoadImage reads a GDAL-readable raster as a displayable image: three or
// more bands become an RGBA image from the first three bands, a single
// band is stretched over its value range into a grayscale image.
func LoadImage(path string) (image.Image, error) {
	ds, err := godal.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer ds.Close()

	st := ds.Structure()
	if st.NBands >= 3 {
		return loadRGBA(ds, st.SizeX, st.SizeY)
	}
	if st.NBands == 1 {
		return loadGray(ds, st.SizeX, st.SizeY)
	}
	return nil, fmt.Errorf("open %s: raster has no bands", path)
}

func loadRGBA(ds *godal.Dataset, w, h int) (image.Image, error) {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	plane := make([]uint8, w*h)

	for b, band := range ds.Bands()[:3] {
		if err := band.Read(0, 0, plane, w, h); err != nil {
			return nil, fmt.Errorf("read band %d: %w", b+1, err)
		}
		for i, v := range plane {
			img.Pix[i*4+b] = v
			img.Pix[i*4+3] = 255
		}
	}

	return img, nil
}

func loadGray(ds *godal.Dataset, w, h int) (image.Image, error) {
	band := ds.Bands()[0]
	data := make([]float32, w*h)
	if err := band.Read(0, 0, data, w, h); err != nil {
		return nil, fmt.Errorf("read band 1: %w", err)
	}

	noData, hasNoData := band.NoData()

	lo, hi := float32(0), float32(0)
	first := true
	for _, v := range data {
		if hasNoData && float64(v) == noData {
			continue
		}
		if first {
			lo, hi = v, v
			first = false
			continue
		}
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	span := hi - lo
	if span == 0 {
		span = 1
	}

	img := image.NewGray(image.Rect(0, 0, w, h))
	for i, v := range data {
		if hasNoData && float64(v) == noData {
			continue
		}
		img.Pix[i] = uint8((v - lo) / span * 255)
	}

	return img, nil
}
