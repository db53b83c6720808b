package main

import (
	"bufio"
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"

	"github.com/elliotnunn/huff/internal/huffman"
	"github.com/klauspost/compress/zstd"
	"github.com/therootcompany/xz"
)

const huffMagic = "\xfa\xce\x82\x01"

// probe finds the huff stream in r, looking through at most one layer of
// general-purpose compression (gzip, bzip2, xz or zstd). The returned reader starts at the magic number.
func probe(r io.Reader) (stream io.Reader, container string, err error) {
	return probeDepth(r, 1)
}

func probeDepth(r io.Reader, depth int) (io.Reader, string, error) {
	br := bufio.NewReader(r)
	var accessError error
	matchAt := func(s string, offset int) bool {
		header, err := br.Peek(offset + len(s))
		if err != nil && err != io.EOF && accessError == nil {
			accessError = err
		}
		return len(header) >= offset+len(s) && string(header[offset:][:len(s)]) == s
	}

	var inner io.Reader
	var container string
	switch {
	case matchAt(huffMagic, 0):
		return br, "", nil
	case depth == 0:
	case matchAt("\x1f\x8b", 0):
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, "", err
		}
		inner, container = zr, "gzip"
	case matchAt("BZh", 0):
		inner, container = bzip2.NewReader(br), "bzip2"
	case matchAt("\xfd7zXZ\x00", 0):
		xr, err := xz.NewReader(br, xz.DefaultDictMax)
		if err != nil {
			return nil, "", err
		}
		inner, container = xr, "xz"
	case matchAt("\x28\xb5\x2f\xfd", 0):
		zr, err := zstd.NewReader(br, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, "", err
		}
		inner, container = zr.IOReadCloser(), "zstd"
	}

	if inner != nil {
		stream, _, err := probeDepth(inner, depth-1)
		if err != nil {
			return nil, "", fmt.Errorf("inside %s: %w", container, err)
		}
		return stream, container, nil
	}
	if accessError != nil {
		return nil, "", accessError
	}
	return nil, "", fmt.Errorf("%w: not a huff stream", huffman.ErrFormat)
}
