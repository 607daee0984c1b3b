// Copyright 2015 Auburn University. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataflow

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/fortran-analysis/fcore/fast"
	"github.com/fortran-analysis/fcore/graph"
	"github.com/fortran-analysis/fcore/semantics"
)

// foldLiveGenKill folds a basic block's AST-blocks, left to right, into one
// (GEN, KILL) pair: a name is generated by the block if some AST-block
// uses it before any earlier AST-block in the same basic block kills it.
func foldLiveGenKill(bb *fast.BasicBlock) (gen, kill semantics.NameSet) {
	gen, kill = semantics.NameSet{}, semantics.NameSet{}
	for _, b := range bb.Blocks {
		uses := semantics.BlockVarUses(b)
		defs := semantics.BlockVarDefs(b)
		gen = uses.Minus(kill).Union(gen)
		kill = defs.Union(kill)
	}
	return gen, kill
}

// LiveVars runs backward live-variable analysis over g: in(n) is the set
// of names that may be read before being redefined starting from n;
// out(n) is the union of in(s) over n's successors.
func LiveVars(g *fast.BBGr) (in, out map[int]semantics.NameSet) {
	ni := newNameIndex()
	gen := map[int]*bitset.BitSet{}
	kill := map[int]*bitset.BitSet{}
	for _, n := range g.Nodes() {
		genN, killN := foldLiveGenKill(g.Blocks[n])
		gen[n] = ni.toBitSet(genN)
		kill[n] = ni.toBitSet(killN)
	}

	result := DataFlowSolver[*bitset.BitSet](
		g,
		func(n int) (*bitset.BitSet, *bitset.BitSet) { return new(bitset.BitSet), new(bitset.BitSet) },
		graph.RevPreOrder,
		func(outLookup func(int) *bitset.BitSet) func(int) *bitset.BitSet {
			return func(n int) *bitset.BitSet {
				return outLookup(n).Difference(kill[n]).Union(gen[n])
			}
		},
		func(inLookup func(int) *bitset.BitSet) func(int) *bitset.BitSet {
			return func(n int) *bitset.BitSet {
				out := new(bitset.BitSet)
				for _, s := range g.Succs(n) {
					out = out.Union(inLookup(s))
				}
				return out
			}
		},
		func(a, b *bitset.BitSet) bool { return a.Equal(b) },
	)

	in, out = map[int]semantics.NameSet{}, map[int]semantics.NameSet{}
	for _, n := range g.Nodes() {
		in[n] = ni.toNameSet(result[n].In)
		out[n] = ni.toNameSet(result[n].Out)
	}
	return in, out
}
