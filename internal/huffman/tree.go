// Copyright (c) Elliot Nunn
// Licensed under the MIT license

package huffman

import "container/heap"

// Node is a leaf (both children nil) or an internal node (both children set).
// Each node belongs to exactly one parent.
type Node struct {
	Symbol      int   // meaningless for internal nodes
	Weight      int64 // zero for trees read back from a header
	Left, Right *Node
}

func (n *Node) IsLeaf() bool { return n.Left == nil && n.Right == nil }

// Leaves calls f for every leaf, left to right, with its depth.
func (n *Node) Leaves(f func(leaf *Node, depth int)) {
	n.leaves(f, 0)
}

func (n *Node) leaves(f func(*Node, int), depth int) {
	if n.IsLeaf() {
		f(n, depth)
		return
	}
	n.Left.leaves(f, depth+1)
	n.Right.leaves(f, depth+1)
}

// BuildTree merges the two lightest nodes until one is left.
//
// Ties on weight go to the node created first. Leaves are created in
// ascending symbol order and every merged node is newer than all leaves,
// so the same counts always give the same tree.
func BuildTree(c *Counts) *Node {
	var q queue
	for sym, w := range c {
		if w > 0 {
			q.push(&Node{Symbol: sym, Weight: w})
		}
	}

	switch len(q.items) {
	case 0:
		q.push(&Node{Symbol: Terminator, Weight: 1})
		fallthrough
	case 1:
		// A lone leaf has no non-empty path, so give it a partner that is never used
		lone := q.items[0].n
		partner := 0
		if lone.Symbol == 0 {
			partner = 1
		}
		return &Node{Weight: lone.Weight, Left: lone, Right: &Node{Symbol: partner}}
	}

	for len(q.items) > 1 {
		left := q.pop()
		right := q.pop()
		q.push(&Node{Weight: left.Weight + right.Weight, Left: left, Right: right})
	}
	return q.pop()
}

type queue struct {
	items []queueItem
	seq   int
}

type queueItem struct {
	n   *Node
	seq int
}

func (q *queue) push(n *Node) {
	heap.Push((*queueHeap)(q), queueItem{n, q.seq})
	q.seq++
}

func (q *queue) pop() *Node {
	return heap.Pop((*queueHeap)(q)).(queueItem).n
}

// queueHeap implements heap.Interface
type queueHeap queue

func (h *queueHeap) Len() int { return len(h.items) }

func (h *queueHeap) Less(i, j int) bool {
	a, b := h.items[i], h.items[j]
	if a.n.Weight != b.n.Weight {
		return a.n.Weight < b.n.Weight
	}
	return a.seq < b.seq
}

func (h *queueHeap) Swap(i, j int) { h.items[i], h.items[j] = h.items[j], h.items[i] }

func (h *queueHeap) Push(x any) { h.items = append(h.items, x.(queueItem)) }

func (h *queueHeap) Pop() any {
	last := h.items[len(h.items)-1]
	h.items = h.items[:len(h.items)-1]
	return last
}
