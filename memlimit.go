package main

import (
	"math"
	"os"
	"path/filepath"
	"strconv"
)

var memLimit int = calcMemLimit()

func calcMemLimit() int {
	if e := os.Getenv("HUFFGB"); e != "" {
		f, err := strconv.ParseFloat(e, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
			panic("malformed HUFFGB environment variable, should be a number of gigabytes: " + e)
		}
		return int(f * 1024 * 1024 * 1024)
	}
	return 1024 * 1024 * 1024 // fall back on 1GiB
}

// statDir is where the stats database lives, or "" if there should be none.
func statDir() string {
	switch e := os.Getenv("HUFFCACHE"); e {
	case "off":
		return ""
	case "":
		base, err := os.UserCacheDir()
		if err != nil {
			return ""
		}
		return filepath.Join(base, "huff")
	default:
		return e
	}
}
