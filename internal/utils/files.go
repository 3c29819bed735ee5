package utils

import (
	"os"
)

// IsFile tests wether given path exists and is a file
func IsFile(filePath string) bool {
	file, err := os.Stat(filePath)

	if err != nil {
		return false
	}

	return !file.IsDir()
}

// IsReadableFile tests wether given path is a file that can be opened for
// reading.
func IsReadableFile(filePath string) bool {
	if !IsFile(filePath) {
		return false
	}

	file, err := os.Open(filePath)
	if err != nil {
		return false
	}
	file.Close()

	return true
}

// IsDirectory tests wether given path exists and is a directory
func IsDirectory(dirPath string) bool {
	dir, err := os.Stat(dirPath)

	if err != nil {
		return false
	}

	return dir.IsDir()
}
