// Copyright (c) Elliot Nunn
// Licensed under the MIT license

package huffman

import (
	"errors"

	"github.com/elliotnunn/huff/internal/bitstream"
)

// Counts maps each symbol value, including [Terminator], to its number of occurrences.
type Counts [AlphabetSize + 1]int64

// CountSymbols reads WordBits-wide symbols from src until it runs dry.
// The terminator always ends up with a count of 1, so it is always a leaf.
func CountSymbols(src *bitstream.Source) (*Counts, error) {
	c := new(Counts)
	for {
		sym, err := src.ReadBits(WordBits)
		if errors.Is(err, bitstream.ErrEOD) {
			break
		} else if err != nil {
			return nil, err
		}
		c[sym]++
	}
	c[Terminator] = 1
	return c, nil
}

// Total is the number of real input symbols counted.
func (c *Counts) Total() int64 {
	var n int64
	for _, v := range c[:AlphabetSize] {
		n += v
	}
	return n
}

// Distinct is the number of symbols, terminator included, with a non-zero count.
func (c *Counts) Distinct() int {
	n := 0
	for _, v := range c {
		if v > 0 {
			n++
		}
	}
	return n
}
