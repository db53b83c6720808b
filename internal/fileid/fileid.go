// Copyright (c) Elliot Nunn
// Licensed under the MIT license

// Package fileid names a file version with a 64-bit number that changes
// whenever the file is replaced or modified, for use as a cache key.
package fileid

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/cespare/xxhash/v2"
)

type ID uint64

func (id ID) String() string { return fmt.Sprintf("%016x", uint64(id)) }

var ErrNotRegular = errors.New("not a regular file")

// Content names data by hashing all of it, for streams that have no file behind them.
func Content(r io.Reader) (ID, error) {
	h := xxhash.New()
	h.WriteString("content\x00")
	if _, err := io.Copy(h, r); err != nil {
		return 0, err
	}
	return ID(h.Sum64()), nil
}

// Derive names something computed from the data that id names.
func (id ID) Derive(label string) ID {
	h := xxhash.New()
	binary.Write(h, binary.BigEndian, uint64(id))
	h.WriteString(label)
	return ID(h.Sum64())
}

func fromStat(dev, ino uint64, size, mtimeSec, mtimeNsec int64) ID {
	h := xxhash.New()
	h.WriteString("stat\x00")
	binary.Write(h, binary.BigEndian, [5]uint64{dev, ino, uint64(size), uint64(mtimeSec), uint64(mtimeNsec)})
	return ID(h.Sum64())
}
