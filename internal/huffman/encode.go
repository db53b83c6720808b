// Copyright (c) Elliot Nunn
// Licensed under the MIT license

package huffman

import (
	"errors"
	"fmt"

	"github.com/elliotnunn/huff/internal/bitstream"
)

// packedCode is a code ready for the sink: right-aligned bits when it fits
// in a word, the code string otherwise.
type packedCode struct {
	v    uint64
	n    uint8
	long string
}

func packCodes(t *CodeTable) *[AlphabetSize + 1]packedCode {
	packed := new([AlphabetSize + 1]packedCode)
	for sym, code := range t.codes {
		if len(code) > 64 {
			packed[sym].long = code
			continue
		}
		for i := 0; i < len(code); i++ {
			packed[sym].v = packed[sym].v<<1 | uint64(code[i]-'0')
		}
		packed[sym].n = uint8(len(code))
	}
	return packed
}

func (c *packedCode) write(dst *bitstream.Sink) error {
	if c.long != "" {
		return dst.WriteCode(c.long)
	}
	return dst.WriteBits(c.n, c.v)
}

// encodeBody rewinds src and writes the code of every symbol, then the terminator's.
func encodeBody(t *CodeTable, src *bitstream.Source, dst *bitstream.Sink) error {
	if err := src.Reset(); err != nil {
		return err
	}
	packed := packCodes(t)
	for {
		sym, err := src.ReadBits(WordBits)
		if errors.Is(err, bitstream.ErrEOD) {
			break
		} else if err != nil {
			return err
		}
		c := &packed[sym]
		if c.n == 0 && c.long == "" {
			return fmt.Errorf("%w: no code for symbol %#02x", ErrInvariant, sym)
		}
		if err := c.write(dst); err != nil {
			return err
		}
	}

	c := &packed[Terminator]
	if c.n == 0 && c.long == "" {
		return fmt.Errorf("%w: no code for the terminator", ErrInvariant)
	}
	return c.write(dst)
}
