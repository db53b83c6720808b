// Copyright (c) Elliot Nunn
// Licensed under the MIT license

// Package huffman is a lossless byte-stream codec using a static Huffman code.
//
// A compressed stream is a 32-bit magic number, the code tree in pre-order,
// the code of every input byte, the code of a terminator symbol, and zero
// padding to the next byte boundary. Because the tree travels with the data,
// the decoder never recomputes symbol frequencies.
package huffman

import (
	"bytes"
	"io"

	"github.com/elliotnunn/huff/internal/bitstream"
)

// Stats describes one compressed stream.
type Stats struct {
	InputBytes      int64 // uncompressed size
	DistinctSymbols int   // byte values present in the input
	HeaderBits      int64 // magic and tree
	BodyBits        int64 // codes including the terminator
	OutputBytes     int64 // compressed size after padding
}

// Ratio is the compressed size as a fraction of the uncompressed size.
func (s Stats) Ratio() float64 {
	if s.InputBytes == 0 {
		return 0
	}
	return float64(s.OutputBytes) / float64(s.InputBytes)
}

// Compress reads in twice, once to count symbols and once to encode them.
func Compress(in io.ReadSeeker, out io.Writer) (Stats, error) {
	var st Stats
	src := bitstream.NewSource(in)

	counts, err := CountSymbols(src)
	if err != nil {
		return st, err
	}
	st.InputBytes = counts.Total()
	st.DistinctSymbols = counts.Distinct() - 1

	root := BuildTree(counts)
	codes, err := NewCodeTable(root)
	if err != nil {
		return st, err
	}

	dst := bitstream.NewSink(out)
	if err := WriteMagic(dst); err != nil {
		return st, err
	}
	if err := WriteHeader(root, dst); err != nil {
		return st, err
	}
	st.HeaderBits = dst.Bits()

	if err := encodeBody(codes, src, dst); err != nil {
		return st, err
	}
	st.BodyBits = dst.Bits() - st.HeaderBits
	st.OutputBytes = (dst.Bits() + 7) / 8
	return st, dst.Close()
}

// Decompress writes the decoded bytes of in to out and returns how many there were.
// Any error leaves out holding unusable partial data.
func Decompress(in io.Reader, out io.Writer) (int64, error) {
	d, err := NewDecoder(bitstream.NewSource(in))
	if err != nil {
		return 0, err
	}
	dst := bitstream.NewSink(out)
	n, err := decodeBody(d, dst)
	if err != nil {
		return n, err
	}
	return n, dst.Close()
}

func CompressBytes(p []byte) ([]byte, error) {
	var buf bytes.Buffer
	_, err := Compress(bytes.NewReader(p), &buf)
	return buf.Bytes(), err
}

func DecompressBytes(p []byte) ([]byte, error) {
	var buf bytes.Buffer
	_, err := Decompress(bytes.NewReader(p), &buf)
	return buf.Bytes(), err
}
