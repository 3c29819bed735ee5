package raster

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ParseEsriASCII reads an ESRI ASCII Grid from reader. The header order is
// free, XLLCENTER/YLLCENTER and XLLCORNER/YLLCORNER are mutually
// exclusive and NODATA_VALUE is optional (noData is used when absent).
func ParseEsriASCII(reader io.Reader, noData float64) (*Raster, error) {
	var (
		ncols, nrows   int
		xll, yll       float64
		centered       bool
		cellSize       float64
		fileND         = noData
		remaining      = []string{"NCOLS", "NROWS", "XLLCENTER", "XLLCORNER", "YLLCENTER", "YLLCORNER", "CELLSIZE", "NODATA_VALUE"}
		stillIsHeader  = true
		data           []float32
		samplesWritten int
	)

	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)

	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		keyword := strings.ToUpper(fields[0])

		if stillIsHeader && contains(remaining, keyword) {
			remaining = remove(remaining, keyword)

			// there can either be corner or center, not both
			switch keyword {
			case "XLLCENTER", "YLLCENTER":
				remaining = remove(remaining, "XLLCORNER")
				remaining = remove(remaining, "YLLCORNER")
			case "XLLCORNER", "YLLCORNER":
				remaining = remove(remaining, "XLLCENTER")
				remaining = remove(remaining, "YLLCENTER")
			}

			if len(fields) != 2 {
				return nil, fmt.Errorf("header line %q must have exactly two fields", fields[0])
			}
			val, err := strconv.ParseFloat(fields[1], 64)
			if err != nil {
				return nil, fmt.Errorf("header %s: %w", keyword, err)
			}

			switch keyword {
			case "NCOLS":
				ncols = int(val)
			case "NROWS":
				nrows = int(val)
			case "XLLCENTER":
				xll, centered = val, true
			case "XLLCORNER":
				xll = val
			case "YLLCENTER":
				yll, centered = val, true
			case "YLLCORNER":
				yll = val
			case "CELLSIZE":
				if val <= 0 {
					return nil, fmt.Errorf("CELLSIZE must be greater than 0")
				}
				cellSize = val
			case "NODATA_VALUE":
				fileND = val
			}
			continue
		}

		if stillIsHeader {
			// first data line; NODATA_VALUE is optional
			remaining = remove(remaining, "NODATA_VALUE")
			if len(remaining) > 0 {
				return nil, fmt.Errorf("grid is missing mandatory headers: %s", strings.Join(remaining, ", "))
			}
			stillIsHeader = false
			data = make([]float32, ncols*nrows)
		}

		for _, field := range fields {
			if samplesWritten >= len(data) {
				return nil, fmt.Errorf("grid has more than %d samples", len(data))
			}
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("sample %d: %w", samplesWritten, err)
			}
			if v == fileND {
				v = noData
			}
			data[samplesWritten] = float32(v)
			samplesWritten++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if stillIsHeader || samplesWritten < ncols*nrows {
		return nil, fmt.Errorf("grid ended after %d of %d samples", samplesWritten, ncols*nrows)
	}

	// center registration shifts the origin by half a cell
	if centered {
		xll -= cellSize / 2
		yll -= cellSize / 2
	}

	return &Raster{
		Width:  ncols,
		Height: nrows,
		// top-left origin, north-up
		GeoTransform: [6]float64{xll, cellSize, 0, yll + float64(nrows)*cellSize, 0, -cellSize},
		NoData:       noData,
		HasNoData:    true,
		Data:         data,
	}, nil
}

// LoadEsriASCII reads an ESRI ASCII Grid file, transparently unpacking
// .gz compressed grids.
func LoadEsriASCII(path string, noData float64) (*Raster, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var reader io.Reader = file
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(file)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		defer gz.Close()
		reader = gz
	}

	return ParseEsriASCII(reader, noData)
}

// Load reads a raster from path: ESRI ASCII grids by extension
// (.asc, .asc.gz, .txt), anything else through GDAL.
func Load(path string, noData float64) (*Raster, error) {
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".asc") || strings.HasSuffix(lower, ".asc.gz") || strings.HasSuffix(lower, ".txt") {
		return LoadEsriASCII(path, noData)
	}
	return LoadGeoTIFF(path, noData)
}

func contains(list []string, s string) bool {
	for _, el := range list {
		if el == s {
			return true
		}
	}
	return false
}

func remove(list []string, s string) []string {
	for i, el := range list {
		if el == s {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}
