package pkg

import (
	"fmt"
	"math"
	"os"
	"unsafe"
)

// BytesToString converts bytes slice to a string without extra allocation
func BytesToString(buf []byte) string {
	return *(*string)(unsafe.Pointer(&buf))
}

// PathExists returns whether the given file or directory exists
func PathExists(path string, isDir bool) (bool, error) {
	stat, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	if isDir && !stat.IsDir() {
		return false, fmt.Errorf("%s is not a directory", path)
	}
	if !isDir && stat.IsDir() {
		return false, fmt.Errorf("%s is a directory", path)
	}
	return true, nil
}

// FileSizeMB returns the size of the file at path in megabytes, rounded to
// two decimals. Missing files count as zero.
func FileSizeMB(path string) float64 {
	stat, err := os.Stat(path)
	if err != nil {
		return 0
	}
	sizeMB := float64(stat.Size()) / (1024 * 1024)
	return math.Round(sizeMB*100) / 100
}
