package raster

import (
	"fmt"

	"github.com/airbusgeo/godal"
)

func init() {
	godal.RegisterAll()
}

// LoadGeoTIFF reads the first band of a GDAL-readable raster into a Raster.
// noData overrides the sentinel stored in the file; pass it as the value
// the caller expects missing samples to carry.
func LoadGeoTIFF(path string, noData float64) (*Raster, error) {
	ds, err := godal.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer ds.Close()

	st := ds.Structure()
	if st.NBands < 1 {
		return nil, fmt.Errorf("open %s: raster has no bands", path)
	}

	r := &Raster{
		Width:     st.SizeX,
		Height:    st.SizeY,
		NoData:    noData,
		HasNoData: true,
		Data:      make([]float32, st.SizeX*st.SizeY),
	}

	band := ds.Bands()[0]
	if err := band.Read(0, 0, r.Data, st.SizeX, st.SizeY); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	// remap the file's own sentinel onto the requested one
	if fileND, ok := band.NoData(); ok && fileND != noData {
		for i, v := range r.Data {
			if float64(v) == fileND {
				r.Data[i] = float32(noData)
			}
		}
	}

	if gt, err := ds.GeoTransform(); err == nil {
		r.GeoTransform = gt
	} else {
		// unreferenced file, identity transform keeps the math sane
		r.GeoTransform = [6]float64{0, 1, 0, 0, 0, -1}
	}
	r.Projection = ds.Projection()

	return r, nil
}

// SaveGrid writes grid as a single-band Float32 geotiff at path, then
// stamps ref's geotransform and projection onto it. The stamp runs as a
// separate reopen-in-update-mode pass; without it the file would render
// fine but carry no spatial reference.
func SaveGrid(path string, grid *Raster, ref *Raster) error {
	ds, err := godal.Create(godal.GTiff, path, 1, godal.Float32, grid.Width, grid.Height)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	band := ds.Bands()[0]
	if grid.HasNoData {
		if err := band.SetNoData(grid.NoData); err != nil {
			ds.Close()
			return fmt.Errorf("set nodata on %s: %w", path, err)
		}
	}
	if err := band.Write(0, 0, grid.Data, grid.Width, grid.Height); err != nil {
		ds.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := ds.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}

	return Stamp(path, ref)
}

// SaveRGB writes an interleaved RGB buffer (Width*Height*3 bytes) as a
// 3-band Byte geotiff at path and stamps ref's georeferencing onto it.
func SaveRGB(path string, pix []uint8, width, height int, ref *Raster) error {
	if len(pix) != width*height*3 {
		return fmt.Errorf("write %s: pixel buffer is %d bytes, want %d", path, len(pix), width*height*3)
	}

	ds, err := godal.Create(godal.GTiff, path, 3, godal.Byte, width, height)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	interps := []godal.ColorInterp{godal.CIRed, godal.CIGreen, godal.CIBlue}
	plane := make([]uint8, width*height)
	for b, band := range ds.Bands() {
		for i := range plane {
			plane[i] = pix[i*3+b]
		}
		if err := band.SetColorInterp(interps[b]); err != nil {
			ds.Close()
			return fmt.Errorf("set color interp on %s: %w", path, err)
		}
		if err := band.Write(0, 0, plane, width, height); err != nil {
			ds.Close()
			return fmt.Errorf("write band %d of %s: %w", b+1, path, err)
		}
	}
	if err := ds.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}

	return Stamp(path, ref)
}

// Stamp reopens the file at path in update mode and sets ref's
// geotransform and projection on it, so the output aligns with the raster
// it was derived from.
func Stamp(path string, ref *Raster) error {
	ds, err := godal.Open(path, godal.Update())
	if err != nil {
		return fmt.Errorf("reopen %s for georeferencing: %w", path, err)
	}
	if err := ds.SetGeoTransform(ref.GeoTransform); err != nil {
		ds.Close()
		return fmt.Errorf("set geotransform on %s: %w", path, err)
	}
	// an unreferenced input stays unreferenced, GDAL rejects an empty WKT
	if ref.Projection != "" {
		if err := ds.SetProjection(ref.Projection); err != nil {
			ds.Close()
			return fmt.Errorf("set projection on %s: %w", path, err)
		}
	}
	if err := ds.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
