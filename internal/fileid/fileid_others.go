// Copyright (c) Elliot Nunn
// Licensed under the MIT license

//go:build !linux

package fileid

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
)

// Get identifies a file by absolute path, size and modification time.
func Get(name string) (ID, error) {
	inf, err := os.Stat(name)
	if err != nil {
		return 0, err
	}
	if !inf.Mode().IsRegular() {
		return 0, &fs.PathError{Op: "fileid", Path: name, Err: ErrNotRegular}
	}
	abs, err := filepath.Abs(name)
	if err != nil {
		return 0, err
	}
	mt := inf.ModTime()
	return fromStat(0, xxhash.Sum64String(abs), inf.Size(), mt.Unix(), int64(mt.Nanosecond())), nil
}
