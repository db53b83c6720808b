// Copyright (c) Elliot Nunn
// Licensed under the MIT license

package huffman

const (
	WordBits     = 8             // width of a raw input or output symbol
	AlphabetSize = 1 << WordBits // number of real symbols
	Terminator   = AlphabetSize  // end-of-data symbol, never found in real input
	SymbolBits   = WordBits + 1  // width of a verbatim symbol in the header
	MagicBits    = 32
	Magic        = 0xface8200 | 1 // precedes the header

	maxLeaves   = AlphabetSize + 1 // every symbol plus the terminator
	maxDepth    = maxLeaves - 1    // a degenerate tree is a chain
	stepSymbols = 4096             // symbols decoded per Stepper call
)
