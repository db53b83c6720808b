// Copyright (c) Elliot Nunn
// Licensed under the MIT license

package huffman

import (
	"io"

	"github.com/elliotnunn/huff/internal/bitstream"
)

// Inspect decodes a whole stream without keeping the output, to describe it.
func Inspect(in io.Reader) (Stats, error) {
	var st Stats
	src := bitstream.NewSource(in)
	d, err := NewDecoder(src)
	if err != nil {
		return st, err
	}
	st.HeaderBits = src.Offset()

	var seen [AlphabetSize]bool
	buf := make([]byte, stepSymbols)
	for {
		n, err := d.Read(buf)
		for _, c := range buf[:n] {
			seen[c] = true
		}
		st.InputBytes += int64(n)
		if err == io.EOF {
			break
		} else if err != nil {
			return st, err
		}
	}

	for _, ok := range seen {
		if ok {
			st.DistinctSymbols++
		}
	}
	st.BodyBits = src.Offset() - st.HeaderBits
	st.OutputBytes = (src.Offset() + 7) / 8
	return st, nil
}
