package utils

import (
	"fmt"
	"time"
)

// Timed starts a stopwatch and returns the function that stops it and
// prints the elapsed wall-clock time. Meant to bracket a whole run:
//
//	defer utils.Timed("Total running time")()
func Timed(label string) func() {
	start := time.Now()
	return func() {
		fmt.Printf("\n%s: %s\n", label, time.Since(start).Round(time.Millisecond))
	}
}
