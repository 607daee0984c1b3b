// Copyright 2015 Auburn University. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataflow

import (
	"github.com/fortran-analysis/fcore/fast"
	"github.com/fortran-analysis/fcore/graph"
)

// labelGraph adapts a def-use map into a graph.Graph over AST-block
// labels, so FlowsTo can reuse graph.TransitiveClosure rather than
// reimplementing the same fixed-point loop.
type labelGraph struct {
	nodes []int
	succs map[int][]int
	preds map[int][]int
}

func newLabelGraph(g *fast.BBGr, du map[int]graph.IntSet) *labelGraph {
	lg := &labelGraph{succs: map[int][]int{}, preds: map[int][]int{}}
	seen := graph.IntSet{}
	addNode := func(l int) {
		if !seen.Contains(l) {
			seen.Add(l)
			lg.nodes = append(lg.nodes, l)
		}
	}
	for _, n := range g.Nodes() {
		for _, b := range g.Blocks[n].Blocks {
			addNode(b.Annotation().InsLabel)
		}
	}
	for def, uses := range du {
		for use := range uses {
			lg.succs[def] = append(lg.succs[def], use)
			lg.preds[use] = append(lg.preds[use], def)
		}
	}
	return lg
}

func (lg *labelGraph) Nodes() []int      { return lg.nodes }
func (lg *labelGraph) Succs(n int) []int { return lg.succs[n] }
func (lg *labelGraph) Preds(n int) []int { return lg.preds[n] }

// FlowsTo returns the reflexive-transitive closure of the def-use
// relation du: for every AST-block label l, the set of labels a value
// computed at l may eventually flow into, following any number of
// def-use hops.
func FlowsTo(g *fast.BBGr, du map[int]graph.IntSet) map[int]graph.IntSet {
	return graph.TransitiveClosure(newLabelGraph(g, du))
}
