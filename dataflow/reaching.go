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

// DefMap returns, for every name defined anywhere in g, the set of
// AST-block labels that define it: the injection from variable name to
// the reaching-definition labels a reaching-definitions analysis can
// produce for that name.
func DefMap(g *fast.BBGr) map[fast.Name]graph.IntSet {
	defs := map[fast.Name]graph.IntSet{}
	for _, n := range g.Nodes() {
		for _, b := range g.Blocks[n].Blocks {
			label := b.Annotation().InsLabel
			for name := range semantics.BlockVarDefs(b) {
				if defs[name] == nil {
					defs[name] = graph.IntSet{}
				}
				defs[name].Add(label)
			}
		}
	}
	return defs
}

// genKillOfBlock returns the (GEN, KILL) pair for one AST-block b in
// terms of reaching-definition labels: GEN is {label(b)} if b defines
// anything, and KILL is every other label in defMap that defines one of
// the same names.
func genKillOfBlock(b fast.Block, defMap map[fast.Name]graph.IntSet) (gen, kill graph.IntSet) {
	gen, kill = graph.IntSet{}, graph.IntSet{}
	defs := semantics.BlockVarDefs(b)
	if len(defs) == 0 {
		return gen, kill
	}
	label := b.Annotation().InsLabel
	gen.Add(label)
	for name := range defs {
		for l := range defMap[name] {
			if l != label {
				kill.Add(l)
			}
		}
	}
	return gen, kill
}

// foldReachingGenKill folds a basic block's AST-blocks, left to right,
// into one (GEN, KILL) pair over reaching-definition labels, using the
// same accumulation law foldLiveGenKill uses over names.
func foldReachingGenKill(bb *fast.BasicBlock, defMap map[fast.Name]graph.IntSet) (gen, kill graph.IntSet) {
	gen, kill = graph.IntSet{}, graph.IntSet{}
	for _, b := range bb.Blocks {
		genB, killB := genKillOfBlock(b, defMap)
		gen = gen.Minus(killB).Union(genB)
		kill = kill.Minus(genB).Union(killB)
	}
	return gen, kill
}

// ReachingDefs runs forward reaching-definitions analysis over g: out(n)
// is the set of definition labels that may reach the end of n without
// being killed by a later definition of the same name; in(n) is the
// union of out(p) over n's predecessors.
func ReachingDefs(g *fast.BBGr) (in, out map[int]graph.IntSet) {
	defMap := DefMap(g)
	li := newLabelIndex()
	gen := map[int]*bitset.BitSet{}
	kill := map[int]*bitset.BitSet{}
	for _, n := range g.Nodes() {
		genN, killN := foldReachingGenKill(g.Blocks[n], defMap)
		gen[n] = li.toBitSet(genN)
		kill[n] = li.toBitSet(killN)
	}

	result := DataFlowSolver[*bitset.BitSet](
		g,
		func(n int) (*bitset.BitSet, *bitset.BitSet) { return new(bitset.BitSet), new(bitset.BitSet) },
		graph.RevPostOrder,
		func(outLookup func(int) *bitset.BitSet) func(int) *bitset.BitSet {
			return func(n int) *bitset.BitSet {
				in := new(bitset.BitSet)
				for _, p := range g.Preds(n) {
					in = in.Union(outLookup(p))
				}
				return in
			}
		},
		func(inLookup func(int) *bitset.BitSet) func(int) *bitset.BitSet {
			return func(n int) *bitset.BitSet {
				return inLookup(n).Difference(kill[n]).Union(gen[n])
			}
		},
		func(a, b *bitset.BitSet) bool { return a.Equal(b) },
	)

	in, out = map[int]graph.IntSet{}, map[int]graph.IntSet{}
	for _, n := range g.Nodes() {
		in[n] = li.toIntSet(result[n].In)
		out[n] = li.toIntSet(result[n].Out)
	}
	return in, out
}
