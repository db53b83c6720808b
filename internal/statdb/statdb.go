// Copyright (c) Elliot Nunn
// Licensed under the MIT license

// Package statdb remembers compression statistics across runs, keyed by file identity.
package statdb

import (
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cockroachdb/pebble/v2"
	"github.com/cockroachdb/pebble/v2/vfs"
	"github.com/elliotnunn/huff/internal/fileid"
	"github.com/elliotnunn/huff/internal/huffman"
)

const (
	recordVersion = 1
	recordLen     = 1 + 5*8
)

var ErrCorrupt = errors.New("corrupt stats record")

type DB struct {
	db *pebble.DB
}

func Open(dir string) (*DB, error) {
	return OpenFS(dir, vfs.Default)
}

func OpenFS(dir string, fs vfs.FS) (*DB, error) {
	db, err := pebble.Open(dir, &pebble.Options{
		FS:     fs,
		Logger: logger{},
	})
	if err != nil {
		return nil, err
	}
	return &DB{db: db}, nil
}

func key(id fileid.ID) []byte {
	return binary.BigEndian.AppendUint64([]byte("stat/"), uint64(id))
}

// Get reports whether stats are recorded for id.
func (d *DB) Get(id fileid.ID) (huffman.Stats, bool, error) {
	val, closer, err := d.db.Get(key(id))
	if errors.Is(err, pebble.ErrNotFound) {
		return huffman.Stats{}, false, nil
	} else if err != nil {
		return huffman.Stats{}, false, err
	}
	defer closer.Close()

	if len(val) != recordLen || val[0] != recordVersion {
		return huffman.Stats{}, false, fmt.Errorf("%w: %s", ErrCorrupt, id)
	}
	u := func(i int) int64 { return int64(binary.BigEndian.Uint64(val[1+8*i:])) }
	return huffman.Stats{
		InputBytes:      u(0),
		DistinctSymbols: int(u(1)),
		HeaderBits:      u(2),
		BodyBits:        u(3),
		OutputBytes:     u(4),
	}, true, nil
}

func (d *DB) Put(id fileid.ID, st huffman.Stats) error {
	val := make([]byte, 1, recordLen)
	val[0] = recordVersion
	for _, n := range [...]int64{st.InputBytes, int64(st.DistinctSymbols), st.HeaderBits, st.BodyBits, st.OutputBytes} {
		val = binary.BigEndian.AppendUint64(val, uint64(n))
	}
	// losing a record only costs a recomputation
	return d.db.Set(key(id), val, pebble.NoSync)
}

func (d *DB) Close() error {
	return d.db.Close()
}

type logger struct{}

func (logger) Infof(format string, args ...any) {
	slog.Debug("pebble", "msg", fmt.Sprintf(format, args...))
}

func (logger) Errorf(format string, args ...any) {
	slog.Error("pebble", "msg", fmt.Sprintf(format, args...))
}

func (logger) Fatalf(format string, args ...any) {
	panic("pebble: " + fmt.Sprintf(format, args...))
}
