// Copyright (c) Elliot Nunn
// Licensed under the MIT license

// Package decompressioncache gives random access to the output of a sequential decompressor.
//
// The decompressor is expressed as a chain of [Stepper] closures. Each call
// produces the next block of output and the closure that continues from
// there, so any block can be regenerated from the checkpoint before it.
// Blocks are kept in a small in-process front cache and a larger bigcache.
package decompressioncache

import (
	"context"
	"errors"
	"fmt"
	"hash/maphash"
	"io"
	"log/slog"
	"sort"
	"sync"

	"github.com/allegro/bigcache/v3"
	"github.com/dgryski/go-tinylfu"
)

// Stepper returns the next block of output and the Stepper for the block after it.
// Calling the same Stepper twice must give the same block.
// The last block comes with io.EOF.
type Stepper func() (Stepper, []byte, error)

// New returns a ReaderAt over the output of stepper.
// id identifies the compressed data: readers sharing an id share cached blocks.
func New(stepper Stepper, id uint64, debugName string) *ReaderAt {
	return &ReaderAt{
		id:          id,
		debugName:   debugName,
		checkpoints: []checkpoint{{stepper: stepper, offset: 0}},
		size:        -1,
	}
}

type ReaderAt struct {
	mu          sync.Mutex
	id          uint64
	debugName   string
	checkpoints []checkpoint
	size        int64 // -1 until the last block has been produced
}

type checkpoint struct {
	stepper Stepper
	offset  int64
	stepped bool // n and err are valid, and the next checkpoint exists unless err != nil
	n       int
	err     error
}

var errOffset = errors.New("ReadAt: negative offset")

// Size is the total length of the output. It may have to decompress everything.
func (r *ReaderAt) Size() (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.checkpoints) - 1; r.size < 0; i++ {
		if _, err := r.block(i); err != nil && err != io.EOF {
			return 0, err
		}
	}
	return r.size, nil
}

// KnownSize is the total length of the output if it has been found yet.
func (r *ReaderAt) KnownSize() (int64, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.size, r.size >= 0
}

func (r *ReaderAt) ReadAt(p []byte, off int64) (n int, err error) {
	if off < 0 {
		return 0, errOffset
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	// start with the highest checkpoint that starts <= the request
	i := sort.Search(len(r.checkpoints), func(i int) bool {
		return r.checkpoints[i].offset > off
	}) - 1

	for n < len(p) {
		blob, err := r.block(i)
		cp := r.checkpoints[i]
		if pos := off + int64(n); pos < cp.offset+int64(len(blob)) {
			n += copy(p[n:], blob[pos-cp.offset:])
		}
		if n == len(p) {
			break
		} else if err != nil {
			return n, err
		}
		i++
	}
	return n, nil
}

func (r *ReaderAt) block(i int) ([]byte, error) {
	cp := &r.checkpoints[i]
	key := blockKey{r.id, cp.offset}
	if cp.stepped {
		if blob, ok := cacheGet(key); ok {
			return blob, cp.err
		}
	}

	slog.Debug("decompressionCacheMiss", "name", r.debugName, "offset", cp.offset)
	next, blob, err := cp.stepper()
	if cp.stepped && len(blob) != cp.n {
		panic(fmt.Sprintf("%s: stepper at %d gave %d bytes, previously %d", r.debugName, cp.offset, len(blob), cp.n))
	}
	if err == nil && len(blob) == 0 {
		panic(fmt.Sprintf("%s: stepper at %d made no progress", r.debugName, cp.offset))
	}
	cacheSet(key, r.debugName, blob)

	if !cp.stepped {
		cp.stepped, cp.n, cp.err = true, len(blob), err
		end := cp.offset + int64(len(blob))
		if err == nil {
			r.checkpoints = append(r.checkpoints, checkpoint{stepper: next, offset: end})
		} else if err == io.EOF {
			r.size = end
		}
	}
	return blob, err
}

type blockKey struct {
	id     uint64
	offset int64
}

var (
	cacheOnce sync.Once
	cacheMu   sync.Mutex // tinylfu is not safe for concurrent use
	front     *tinylfu.T[blockKey, []byte]
	bulk      *bigcache.BigCache
	seed      = maphash.MakeSeed()

	limit = 256 << 20
)

const typicalBlock = 4096

// SetLimit sets the approximate memory budget in bytes. It has no effect after the first read.
func SetLimit(bytes int) {
	limit = bytes
}

func cacheInit() {
	frontN := max(64, limit/typicalBlock/16)
	front = tinylfu.New[blockKey, []byte](frontN, frontN*10, func(k blockKey) uint64 {
		return maphash.Comparable(seed, k)
	})

	c, err := bigcache.New(context.Background(), bigcache.Config{
		HardMaxCacheSize: max(1, limit>>20), // megabytes
		Shards:           1024,
	})
	if err != nil {
		panic(err)
	}
	bulk = c
}

func (k blockKey) String() string {
	return fmt.Sprintf("%016x_%d", k.id, k.offset)
}

func cacheGet(k blockKey) ([]byte, bool) {
	cacheOnce.Do(cacheInit)
	cacheMu.Lock()
	blob, ok := front.Get(k)
	cacheMu.Unlock()
	if ok {
		return blob, true
	}

	blob, err := bulk.Get(k.String())
	if err != nil {
		return nil, false
	}
	cacheMu.Lock()
	front.Add(k, blob)
	cacheMu.Unlock()
	return blob, true
}

func cacheSet(k blockKey, debugName string, blob []byte) {
	cacheOnce.Do(cacheInit)
	cacheMu.Lock()
	front.Add(k, blob)
	cacheMu.Unlock()
	if err := bulk.Set(k.String(), blob); err != nil {
		slog.Debug("decompressionCacheSetError", "name", debugName, "offset", k.offset, "err", err)
	}
}
