// Copyright 2015 Auburn University. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataflow

import (
	"github.com/fortran-analysis/fcore/fast"
	"github.com/fortran-analysis/fcore/graph"
	"github.com/fortran-analysis/fcore/semantics"
)

func overlaps(a, b semantics.NameSet) bool {
	for n := range a {
		if b.Contains(n) {
			return true
		}
	}
	return false
}

// DUMap returns, for every definition label, the set of use labels it may
// reach: starting from in(n) (the reaching-definitions analysis's
// per-node "in" sets), it walks the basic block's AST-blocks in order,
// simulating the running reaching-definitions set block by block, and
// records def -> use whenever a use AST-block reads a name one of the
// currently-reaching definitions defines.
func DUMap(g *fast.BBGr, in map[int]graph.IntSet) map[int]graph.IntSet {
	defMap := DefMap(g)
	du := map[int]graph.IntSet{}

	for _, n := range g.Nodes() {
		I := graph.IntSet{}
		for l := range in[n] {
			I.Add(l)
		}
		for _, b := range g.Blocks[n].Blocks {
			uses := semantics.BlockVarUses(b)
			useLabel := b.Annotation().InsLabel
			for i := range I {
				if overlaps(defNamesOf(defMap, i), uses) {
					if du[i] == nil {
						du[i] = graph.IntSet{}
					}
					du[i].Add(useLabel)
				}
			}
			gen, kill := genKillOfBlock(b, defMap)
			I = I.Minus(kill).Union(gen)
		}
	}
	return du
}

func defNamesOf(defMap map[fast.Name]graph.IntSet, label int) semantics.NameSet {
	names := semantics.NameSet{}
	for name, labels := range defMap {
		if labels.Contains(label) {
			names.Add(name)
		}
	}
	return names
}

// UDMap returns the use-def chains implied by du: for every use label,
// the set of definition labels that may reach it. It is exactly the
// edge-reversal of du.
func UDMap(du map[int]graph.IntSet) map[int]graph.IntSet {
	ud := map[int]graph.IntSet{}
	for def, uses := range du {
		for use := range uses {
			if ud[use] == nil {
				ud[use] = graph.IntSet{}
			}
			ud[use].Add(def)
		}
	}
	return ud
}
