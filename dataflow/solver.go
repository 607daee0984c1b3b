// Copyright 2015 Auburn University. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dataflow implements the iterative fixed-point solver and the
// concrete analyses built on top of it: live variables, reaching
// definitions, def-use and use-def chains, the flows-to graph, back edges,
// natural loops, and the call map. The concrete analyses follow the same
// bitset-indexed idiom godoctor's own analysis/dataflow package uses for
// live variables and reaching definitions on Go source, retargeted to the
// fast AST's basic-block graphs.
package dataflow

import "github.com/fortran-analysis/fcore/graph"

// State is one node's current (in, out) lattice pair.
type State[L any] struct {
	In  L
	Out L
}

// DataFlowSolver runs the classical iterative dataflow algorithm over gr:
// starting from initF's values, it repeatedly revisits every node in the
// order order(gr) produces, updating in and out in place (a node's update
// can see any other node already updated earlier in the same sweep), until
// a full sweep leaves every node's (in, out) pair unchanged under equal.
//
// The lattice element type L is left to the caller; equal must be a sound
// equality test over it (two bitsets, two name sets, …). The solver itself
// does not check monotonicity — callers are responsible for choosing a
// lattice of finite height and monotone inF/outF.
func DataFlowSolver[L any](
	gr graph.Graph,
	initF func(n int) (L, L),
	order func(graph.Graph) []int,
	inF func(outLookup func(int) L) func(n int) L,
	outF func(inLookup func(int) L) func(n int) L,
	equal func(a, b L) bool,
) map[int]State[L] {
	current := make(map[int]State[L])
	for _, n := range gr.Nodes() {
		in0, out0 := initF(n)
		current[n] = State[L]{In: in0, Out: out0}
	}

	outLookup := func(n int) L { return current[n].Out }
	inLookup := func(n int) L { return current[n].In }

	visiting := order(gr)
	for {
		changed := false
		for _, n := range visiting {
			old := current[n]
			newIn := inF(outLookup)(n)
			newOut := outF(inLookup)(n)
			if !equal(old.In, newIn) || !equal(old.Out, newOut) {
				changed = true
			}
			current[n] = State[L]{In: newIn, Out: newOut}
		}
		if !changed {
			break
		}
	}
	return current
}
