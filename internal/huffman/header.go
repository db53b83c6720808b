// Copyright (c) Elliot Nunn
// Licensed under the MIT license

package huffman

import (
	"errors"
	"fmt"

	"github.com/elliotnunn/huff/internal/bitstream"
)

func WriteMagic(dst *bitstream.Sink) error {
	return dst.WriteBits(MagicBits, Magic)
}

// ReadMagic consumes exactly MagicBits bits and nothing more.
func ReadMagic(src *bitstream.Source) error {
	m, err := src.ReadBits(MagicBits)
	if err != nil {
		return eod2formaterr(err, "magic number")
	}
	if m != Magic {
		return fmt.Errorf("%w: illegal header starts with %#08x", ErrFormat, m)
	}
	return nil
}

// WriteHeader serializes the shape of the tree in pre-order:
// a 0 bit for an internal node, or a 1 bit and a SymbolBits-wide value for a leaf.
// Weights are not stored.
func WriteHeader(n *Node, dst *bitstream.Sink) error {
	if n.IsLeaf() {
		if err := dst.WriteBits(1, 1); err != nil {
			return err
		}
		return dst.WriteBits(SymbolBits, uint64(n.Symbol))
	}
	if err := dst.WriteBits(1, 0); err != nil {
		return err
	}
	if err := WriteHeader(n.Left, dst); err != nil {
		return err
	}
	return WriteHeader(n.Right, dst)
}

// ReadHeader rebuilds a tree written by [WriteHeader]. Every node has weight 0.
func ReadHeader(src *bitstream.Source) (*Node, error) {
	hr := headerReader{src: src}
	root, err := hr.node(0)
	if err != nil {
		return nil, err
	}
	switch {
	case root.IsLeaf():
		return nil, fmt.Errorf("%w: tree is a lone leaf", ErrFormat)
	case !hr.seen[Terminator]:
		return nil, fmt.Errorf("%w: tree has no terminator leaf", ErrFormat)
	}
	return root, nil
}

// headerReader rejects repeated leaf values, which also caps the leaf count at maxLeaves.
type headerReader struct {
	src  *bitstream.Source
	seen [maxLeaves]bool
}

func (hr *headerReader) node(depth int) (*Node, error) {
	if depth > maxDepth {
		return nil, fmt.Errorf("%w: tree deeper than %d", ErrFormat, maxDepth)
	}
	bit, err := hr.src.ReadBits(1)
	if err != nil {
		return nil, eod2formaterr(err, "tree header")
	}

	if bit == 0 {
		left, err := hr.node(depth + 1)
		if err != nil {
			return nil, err
		}
		right, err := hr.node(depth + 1)
		if err != nil {
			return nil, err
		}
		return &Node{Left: left, Right: right}, nil
	}

	v, err := hr.src.ReadBits(SymbolBits)
	if err != nil {
		return nil, eod2formaterr(err, "tree header")
	}
	switch {
	case v > Terminator:
		return nil, fmt.Errorf("%w: leaf value %d out of range", ErrFormat, v)
	case hr.seen[v]:
		return nil, fmt.Errorf("%w: leaf value %d appears twice", ErrFormat, v)
	}
	hr.seen[v] = true
	return &Node{Symbol: int(v)}, nil
}

func eod2formaterr(err error, where string) error {
	if errors.Is(err, bitstream.ErrEOD) {
		return fmt.Errorf("%w: data ends inside %s", ErrFormat, where)
	}
	return err
}
