// Copyright (c) Elliot Nunn
// Licensed under the MIT license

// Package bitstream adapts byte-oriented readers and writers to the
// fixed-width, most-significant-bit-first bit groups that the Huffman codec
// consumes and produces.
package bitstream

import (
	"errors"
	"io"
	"math"

	"github.com/icza/bitio"
)

// ErrEOD is returned by [Source.ReadBits] when fewer bits remain than were asked for.
// It is never returned alongside a valid value.
var ErrEOD = errors.New("end of bit data")

var errNotRewindable = errors.New("bit source cannot be rewound")

// Source yields bit groups on demand.
type Source struct {
	under  io.Reader
	br     *bitio.Reader
	origin int64 // byte offset that Reset returns to
	off    int64 // bits consumed, counted from the start of under
}

// NewSource reads bits from r. Reset works only if r is also an [io.Seeker].
func NewSource(r io.Reader) *Source {
	return &Source{under: r, br: bitio.NewReader(r)}
}

// NewSourceAt reads bits from r starting bitOff bits into it.
// Reset returns to bitOff rounded down to a byte boundary.
func NewSourceAt(r io.ReaderAt, bitOff int64) (*Source, error) {
	if bitOff < 0 {
		return nil, errors.New("negative bit offset")
	}
	byteOff := bitOff / 8
	s := &Source{
		under:  io.NewSectionReader(r, byteOff, math.MaxInt64-byteOff),
		origin: byteOff,
		off:    byteOff * 8,
	}
	s.br = bitio.NewReader(s.under)
	if skip := uint8(bitOff % 8); skip != 0 {
		if _, err := s.ReadBits(skip); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// ReadBits returns the next n bits (n <= 64) as a right-aligned value.
func (s *Source) ReadBits(n uint8) (uint64, error) {
	u, err := s.br.ReadBits(n)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return 0, ErrEOD
		}
		return 0, err
	}
	s.off += int64(n)
	return u, nil
}

// Reset rewinds to the start of the underlying byte data.
func (s *Source) Reset() error {
	seeker, ok := s.under.(io.Seeker)
	if !ok {
		return errNotRewindable
	}
	// a section made by NewSourceAt already begins at origin
	if _, err := seeker.Seek(0, io.SeekStart); err != nil {
		return err
	}
	s.br = bitio.NewReader(s.under)
	s.off = s.origin * 8
	return nil
}

// Offset is the absolute position of the next unread bit.
func (s *Source) Offset() int64 { return s.off }

// Sink accepts bit groups and packs them into bytes, most significant bit first.
type Sink struct {
	bw *bitio.Writer
	n  int64
}

func NewSink(w io.Writer) *Sink {
	return &Sink{bw: bitio.NewWriter(w)}
}

// WriteBits appends the low n bits of v.
func (s *Sink) WriteBits(n uint8, v uint64) error {
	if n < 64 {
		v &= 1<<n - 1
	}
	if err := s.bw.WriteBits(v, n); err != nil {
		return err
	}
	s.n += int64(n)
	return nil
}

// WriteCode appends a code spelled out as '0' and '1' characters.
func (s *Sink) WriteCode(code string) error {
	for len(code) > 0 {
		chunk := code[:min(len(code), 64)]
		code = code[len(chunk):]
		var v uint64
		for i := 0; i < len(chunk); i++ {
			v = v<<1 | uint64(chunk[i]-'0')
		}
		if err := s.WriteBits(uint8(len(chunk)), v); err != nil {
			return err
		}
	}
	return nil
}

// Bits counts the bits written so far, excluding padding.
func (s *Sink) Bits() int64 { return s.n }

// Close pads the last partial byte with zeros and flushes.
// It does not close the underlying writer.
func (s *Sink) Close() error {
	return s.bw.Close()
}
