// Copyright (c) Elliot Nunn
// Licensed under the MIT license

package huffman

import (
	"io"

	"github.com/elliotnunn/huff/internal/bitstream"
	"github.com/elliotnunn/huff/internal/decompressioncache"
)

// NewStepper reads the magic number and header of a compressed stream,
// then returns a Stepper that decodes the body stepSymbols bytes at a time.
// Each step opens its own bit source at a saved symbol boundary, so a step
// can be repeated at any time.
func NewStepper(r io.ReaderAt) (decompressioncache.Stepper, error) {
	src, err := bitstream.NewSourceAt(r, 0)
	if err != nil {
		return nil, err
	}
	d, err := NewDecoder(src)
	if err != nil {
		return nil, err
	}
	return stepFrom(r, d.root, src.Offset()), nil
}

func stepFrom(r io.ReaderAt, root *Node, bitOff int64) decompressioncache.Stepper {
	return func() (decompressioncache.Stepper, []byte, error) {
		src, err := bitstream.NewSourceAt(r, bitOff)
		if err != nil {
			return nil, nil, eod2formaterr(err, "body before the terminator")
		}
		d := &Decoder{root: root, src: src}
		accum := make([]byte, stepSymbols)
		n, err := d.Read(accum)
		accum = accum[:n]
		if err == io.EOF {
			return stepEOF, accum, io.EOF
		} else if err != nil {
			return nil, accum, err
		}
		return stepFrom(r, root, src.Offset()), accum, nil
	}
}

func stepEOF() (decompressioncache.Stepper, []byte, error) {
	return stepEOF, nil, io.EOF
}
