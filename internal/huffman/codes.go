// Copyright (c) Elliot Nunn
// Licensed under the MIT license

package huffman

import "fmt"

// CodeTable holds the root-to-leaf path of every leaf, '0' for left and '1' for right.
type CodeTable struct {
	codes [AlphabetSize + 1]string
}

func NewCodeTable(root *Node) (*CodeTable, error) {
	if root.IsLeaf() {
		return nil, fmt.Errorf("%w: tree is a lone leaf (symbol %d)", ErrInvariant, root.Symbol)
	}
	t := new(CodeTable)
	t.walk(root, make([]byte, 0, maxDepth))
	return t, nil
}

func (t *CodeTable) walk(n *Node, path []byte) {
	if n.IsLeaf() {
		t.codes[n.Symbol] = string(path)
		return
	}
	t.walk(n.Left, append(path, '0'))
	t.walk(n.Right, append(path, '1'))
}

// Code returns the code for sym, or false if sym was not a leaf.
func (t *CodeTable) Code(sym int) (string, bool) {
	if sym < 0 || sym > Terminator || t.codes[sym] == "" {
		return "", false
	}
	return t.codes[sym], true
}

// Len is the length in bits of the code for sym, zero if there is none.
func (t *CodeTable) Len(sym int) int {
	c, _ := t.Code(sym)
	return len(c)
}
