// Copyright (c) Elliot Nunn
// Licensed under the MIT license

package huffman

import "errors"

var (
	// ErrFormat reports a stream that is not valid huff data: bad magic,
	// data ending inside the header or body, or a malformed tree.
	ErrFormat = errors.New("not a valid huff stream")

	// ErrInvariant reports an internal bug, such as a symbol with no code.
	ErrInvariant = errors.New("huff internal invariant violated")
)
