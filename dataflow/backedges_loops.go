// Copyright 2015 Auburn University. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataflow

import "github.com/fortran-analysis/fcore/graph"

// BackEdges returns every back edge in g, as tail -> head: an edge n -> h
// is a back edge exactly when h dominates n.
func BackEdges(g graph.Graph) map[int]int {
	doms := graph.Dominators(g, 0)
	edges := map[int]int{}
	for _, n := range g.Nodes() {
		for _, s := range g.Succs(n) {
			if doms[n].Contains(s) {
				edges[n] = s
			}
		}
	}
	return edges
}

// removeNodeGraph is gr with one node, and every edge touching it,
// excluded.
type removeNodeGraph struct {
	gr      graph.Graph
	exclude int
}

func (r removeNodeGraph) Nodes() []int {
	var out []int
	for _, n := range r.gr.Nodes() {
		if n != r.exclude {
			out = append(out, n)
		}
	}
	return out
}

func (r removeNodeGraph) Succs(n int) []int { return r.filtered(r.gr.Succs(n)) }
func (r removeNodeGraph) Preds(n int) []int { return r.filtered(r.gr.Preds(n)) }

func (r removeNodeGraph) filtered(ns []int) []int {
	var out []int
	for _, n := range ns {
		if n != r.exclude {
			out = append(out, n)
		}
	}
	return out
}

func collectTreeNodes(trees []*graph.Tree, out graph.IntSet) {
	for _, t := range trees {
		out.Add(t.Root)
		collectTreeNodes(t.Children, out)
	}
}

func sccContaining(gr graph.Graph, m int) graph.IntSet {
	for _, comp := range graph.SCC(gr) {
		for _, n := range comp {
			if n == m {
				return graph.NewIntSet(comp...)
			}
		}
	}
	return graph.NewIntSet(m)
}

// LoopNodes returns the natural loop of the back edge tail -> head (the
// same tail/head convention BackEdges returns): head itself, plus every
// node that can reach tail without passing through head, restricted to
// tail's strongly connected component as a guard against a caller
// passing a (tail, head) pair that is not actually a back edge of g.
func LoopNodes(g graph.Graph, tail, head int) graph.IntSet {
	rm := removeNodeGraph{gr: g, exclude: head}
	forest := graph.RDFS(rm, []int{tail})

	reached := graph.IntSet{}
	collectTreeNodes(forest, reached)
	reached.Add(head)

	scc := sccContaining(g, tail)
	out := graph.IntSet{}
	for node := range reached {
		if scc.Contains(node) {
			out.Add(node)
		}
	}
	return out
}
