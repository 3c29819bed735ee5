package rrim

import (
	"path/filepath"
	"strings"
)

// stem strips the file extension, whatever its length, so that test.tiff
// becomes test and not test_ (a four-character slice would mangle it).
// Compressed grids lose both suffixes: test.asc.gz becomes test.
func stem(demPath string) string {
	s := strings.TrimSuffix(demPath, ".gz")
	return strings.TrimSuffix(s, filepath.Ext(s))
}

// Derived output paths, by convention next to the input DEM.

func SlopePath(demPath string) string        { return stem(demPath) + "_slope.tif" }
func PosOpennessPath(demPath string) string  { return stem(demPath) + "_pos_opns.tif" }
func NegOpennessPath(demPath string) string  { return stem(demPath) + "_neg_opns.tif" }
func DiffOpennessPath(demPath string) string { return stem(demPath) + "_diff_opns.tif" }
func RRIMPath(demPath string) string         { return stem(demPath) + "_rrim.tif" }
