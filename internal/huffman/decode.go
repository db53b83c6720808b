// Copyright (c) Elliot Nunn
// Licensed under the MIT license

package huffman

import (
	"fmt"
	"io"

	"github.com/elliotnunn/huff/internal/bitstream"
)

// Decoder walks the tree one bit at a time and implements [io.Reader] over the decoded bytes.
// Read returns io.EOF once the terminator has been decoded.
type Decoder struct {
	root *Node
	src  *bitstream.Source
	err  error
}

// NewDecoder checks the magic number and reads the tree header from src.
func NewDecoder(src *bitstream.Source) (*Decoder, error) {
	if err := ReadMagic(src); err != nil {
		return nil, err
	}
	root, err := ReadHeader(src)
	if err != nil {
		return nil, err
	}
	return &Decoder{root: root, src: src}, nil
}

// Tree is the tree read from the header.
func (d *Decoder) Tree() *Node { return d.root }

func (d *Decoder) Read(p []byte) (n int, err error) {
	if d.err != nil {
		return 0, d.err
	}
	for n < len(p) {
		var sym int
		sym, err = d.next()
		if err != nil {
			break
		}
		if sym == Terminator {
			err = io.EOF
			break
		}
		p[n] = byte(sym)
		n++
	}
	d.err = err
	return n, err
}

// next decodes one symbol, starting and ending at the root.
func (d *Decoder) next() (int, error) {
	cur := d.root
	for {
		bit, err := d.src.ReadBits(1)
		if err != nil {
			return 0, eod2formaterr(err, "body before the terminator")
		}
		if bit == 0 {
			cur = cur.Left
		} else {
			cur = cur.Right
		}
		if cur == nil {
			return 0, fmt.Errorf("%w: internal node with a missing child", ErrFormat)
		}
		if cur.IsLeaf() {
			return cur.Symbol, nil
		}
	}
}

// decodeBody copies every decoded symbol to dst as a WordBits-wide group.
func decodeBody(d *Decoder, dst *bitstream.Sink) (int64, error) {
	var n int64
	for {
		sym, err := d.next()
		if err != nil {
			return n, err
		}
		if sym == Terminator {
			return n, nil
		}
		if err := dst.WriteBits(WordBits, uint64(sym)); err != nil {
			return n, err
		}
		n++
	}
}
