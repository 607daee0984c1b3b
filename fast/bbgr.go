// Copyright 2015 Auburn University. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fast

import "sort"

// BasicBlock is an ordered sequence of AST-blocks that execute as a
// straight-line run: control can enter only at the first AST-block and
// leave only after the last.
type BasicBlock struct {
	Blocks []Block
}

// BBGr is the basic-block graph for one program unit. Nodes are dense
// integers starting at 0; node 0 is always the unit's entry block. BBGr is
// intentionally opaque to generic structural traversal (package
// fastutil): it is stored inside an Analysis annotation, but traversal
// never descends into it, since its AST-blocks are already reachable
// through the program unit's own Body.
type BBGr struct {
	EntryNode int
	Blocks    map[int]*BasicBlock
	SuccsOf   map[int][]int
	PredsOf   map[int][]int
}

// NewBBGr returns an empty graph with the conventional entry node 0
// already present (with no AST-blocks and no edges).
func NewBBGr() *BBGr {
	g := &BBGr{
		EntryNode: 0,
		Blocks:    map[int]*BasicBlock{},
		SuccsOf:   map[int][]int{},
		PredsOf:   map[int][]int{},
	}
	g.Blocks[0] = &BasicBlock{}
	return g
}

// AddNode inserts a new node holding bb and returns its id.
func (g *BBGr) AddNode(bb *BasicBlock) int {
	id := len(g.Blocks)
	g.Blocks[id] = bb
	return id
}

// AddEdge records a control transfer from src to dst.
func (g *BBGr) AddEdge(src, dst int) {
	g.SuccsOf[src] = append(g.SuccsOf[src], dst)
	g.PredsOf[dst] = append(g.PredsOf[dst], src)
}

// Nodes returns every node id in the graph, in ascending order.
func (g *BBGr) Nodes() []int {
	nodes := make([]int, 0, len(g.Blocks))
	for n := range g.Blocks {
		nodes = append(nodes, n)
	}
	sort.Ints(nodes)
	return nodes
}

// Succs returns the successors of node n.
func (g *BBGr) Succs(n int) []int { return g.SuccsOf[n] }

// Preds returns the predecessors of node n.
func (g *BBGr) Preds(n int) []int { return g.PredsOf[n] }
