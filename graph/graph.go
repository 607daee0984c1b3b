// Copyright 2015 Auburn University. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package graph implements the directed-graph primitives the dataflow
// package's solver and the loop/call-graph analyses are built on: depth
// first forests, strongly connected components, topological order,
// transitive closure, and dominance. No third-party directed-graph
// library appears anywhere in this module's dependency family, so these
// are implemented directly, using the same iterative fixed-point idiom
// the bitset-backed dataflow solver uses.
//
// Graph nodes are dense, non-negative integers. fast.BBGr satisfies Graph
// directly: a basic-block graph is exactly the kind of graph these
// algorithms operate on.
package graph

import (
	"fmt"
	"sort"
)

// Graph is the minimal interface the algorithms in this package need.
type Graph interface {
	// Nodes returns every node id in the graph.
	Nodes() []int
	// Succs returns the successors of node n.
	Succs(n int) []int
	// Preds returns the predecessors of node n.
	Preds(n int) []int
}

// IntSet is an unordered collection of node ids.
type IntSet map[int]struct{}

// NewIntSet returns an IntSet containing ns.
func NewIntSet(ns ...int) IntSet {
	s := make(IntSet, len(ns))
	for _, n := range ns {
		s[n] = struct{}{}
	}
	return s
}

// Add inserts n into s.
func (s IntSet) Add(n int) { s[n] = struct{}{} }

// Contains reports whether n is in s.
func (s IntSet) Contains(n int) bool {
	_, ok := s[n]
	return ok
}

// Union returns a new IntSet holding every member of s or other.
func (s IntSet) Union(other IntSet) IntSet {
	out := make(IntSet, len(s)+len(other))
	for n := range s {
		out[n] = struct{}{}
	}
	for n := range other {
		out[n] = struct{}{}
	}
	return out
}

// Minus returns a new IntSet holding every member of s that is not in other.
func (s IntSet) Minus(other IntSet) IntSet {
	out := make(IntSet, len(s))
	for n := range s {
		if !other.Contains(n) {
			out[n] = struct{}{}
		}
	}
	return out
}

// Equal reports whether s and other contain exactly the same members.
func (s IntSet) Equal(other IntSet) bool {
	if len(s) != len(other) {
		return false
	}
	for n := range s {
		if !other.Contains(n) {
			return false
		}
	}
	return true
}

// Slice returns s's members in ascending order.
func (s IntSet) Slice() []int {
	out := make([]int, 0, len(s))
	for n := range s {
		out = append(out, n)
	}
	sort.Ints(out)
	return out
}

// Pre returns the predecessors of n in gr.
func Pre(gr Graph, n int) []int { return gr.Preds(n) }

// Suc returns the successors of n in gr.
func Suc(gr Graph, n int) []int { return gr.Succs(n) }

// Tree is one tree of a depth-first forest.
type Tree struct {
	Root     int
	Children []*Tree
}

// DFF returns the depth-first forest obtained by running a depth-first
// search from each of roots, in order, skipping roots already visited by
// an earlier tree.
func DFF(gr Graph, roots []int) []*Tree {
	return dff(gr, roots, Graph.Succs)
}

// RDFS returns the depth-first forest obtained by running a depth-first
// search against gr's edges reversed, from each of roots in order.
func RDFS(gr Graph, roots []int) []*Tree {
	return dff(gr, roots, Graph.Preds)
}

func dff(gr Graph, roots []int, neighbors func(Graph, int) []int) []*Tree {
	visited := IntSet{}
	var visit func(n int) *Tree
	visit = func(n int) *Tree {
		visited.Add(n)
		t := &Tree{Root: n}
		for _, m := range neighbors(gr, n) {
			if !visited.Contains(m) {
				t.Children = append(t.Children, visit(m))
			}
		}
		return t
	}

	var forest []*Tree
	for _, r := range roots {
		if !visited.Contains(r) {
			forest = append(forest, visit(r))
		}
	}
	return forest
}

func postOrder(t *Tree, out *[]int) {
	for _, c := range t.Children {
		postOrder(c, out)
	}
	*out = append(*out, t.Root)
}

func preOrder(t *Tree, out *[]int) {
	*out = append(*out, t.Root)
	for _, c := range t.Children {
		preOrder(c, out)
	}
}

func reversed(ns []int) []int {
	out := make([]int, len(ns))
	for i, n := range ns {
		out[len(ns)-1-i] = n
	}
	return out
}

// PostOrder returns the postorder traversal of the first tree of
// DFF(gr, [0]).
func PostOrder(gr Graph) []int {
	forest := DFF(gr, []int{0})
	if len(forest) == 0 {
		return nil
	}
	var out []int
	postOrder(forest[0], &out)
	return out
}

// RevPostOrder returns the reverse of PostOrder(gr).
func RevPostOrder(gr Graph) []int { return reversed(PostOrder(gr)) }

// PreOrder returns the preorder traversal of the first tree of
// DFF(gr, [0]).
func PreOrder(gr Graph) []int {
	forest := DFF(gr, []int{0})
	if len(forest) == 0 {
		return nil
	}
	var out []int
	preOrder(forest[0], &out)
	return out
}

// RevPreOrder returns the reverse of PreOrder(gr).
func RevPreOrder(gr Graph) []int { return reversed(PreOrder(gr)) }

// SCC returns gr's strongly connected components, computed with Tarjan's
// algorithm. Components are returned in the order their root is popped
// off Tarjan's stack, which is a reverse topological order of the
// condensation.
func SCC(gr Graph) [][]int {
	t := &tarjan{
		index:   map[int]int{},
		lowlink: map[int]int{},
		onStack: IntSet{},
	}
	for _, n := range gr.Nodes() {
		if _, ok := t.index[n]; !ok {
			t.strongconnect(gr, n)
		}
	}
	return t.components
}

type tarjan struct {
	next       int
	index      map[int]int
	lowlink    map[int]int
	stack      []int
	onStack    IntSet
	components [][]int
}

func (t *tarjan) strongconnect(gr Graph, v int) {
	t.index[v] = t.next
	t.lowlink[v] = t.next
	t.next++
	t.stack = append(t.stack, v)
	t.onStack.Add(v)

	for _, w := range gr.Succs(v) {
		if _, ok := t.index[w]; !ok {
			t.strongconnect(gr, w)
			if t.lowlink[w] < t.lowlink[v] {
				t.lowlink[v] = t.lowlink[w]
			}
		} else if t.onStack.Contains(w) {
			if t.index[w] < t.lowlink[v] {
				t.lowlink[v] = t.index[w]
			}
		}
	}

	if t.lowlink[v] == t.index[v] {
		var comp []int
		for {
			w := t.stack[len(t.stack)-1]
			t.stack = t.stack[:len(t.stack)-1]
			t.onStack = deleteInt(t.onStack, w)
			comp = append(comp, w)
			if w == v {
				break
			}
		}
		t.components = append(t.components, comp)
	}
}

func deleteInt(s IntSet, n int) IntSet {
	delete(s, n)
	return s
}

// Topsort returns a topological order of gr's nodes. It returns an error
// if gr (restricted to the nodes reachable from the nodes it is asked to
// sort) contains a cycle; callers that need a topological order of a
// cyclic graph should sort the DAG of its SCCs instead.
func Topsort(gr Graph) ([]int, error) {
	const (
		white = iota
		gray
		black
	)
	color := map[int]int{}
	var order []int
	var cycleErr error

	var visit func(n int)
	visit = func(n int) {
		if cycleErr != nil {
			return
		}
		color[n] = gray
		for _, m := range gr.Succs(n) {
			switch color[m] {
			case white:
				visit(m)
			case gray:
				cycleErr = fmt.Errorf("graph: cycle detected through node %d", m)
				return
			}
			if cycleErr != nil {
				return
			}
		}
		color[n] = black
		order = append(order, n)
	}

	for _, n := range gr.Nodes() {
		if color[n] == white {
			visit(n)
			if cycleErr != nil {
				return nil, cycleErr
			}
		}
	}
	return reversed(order), nil
}

// TransitiveClosure returns gr's reflexive-transitive closure: for every
// node n, the set of nodes reachable from n in zero or more steps.
func TransitiveClosure(gr Graph) map[int]IntSet {
	closure := map[int]IntSet{}
	for _, n := range gr.Nodes() {
		closure[n] = NewIntSet(n)
	}

	changed := true
	for changed {
		changed = false
		for _, n := range gr.Nodes() {
			for m := range closure[n] {
				for _, s := range gr.Succs(m) {
					if !closure[n].Contains(s) {
						closure[n].Add(s)
						changed = true
					}
				}
			}
		}
	}
	return closure
}

// IDominators returns, for every node reachable from root, its immediate
// dominator, computed with the iterative algorithm of Cooper, Harvey &
// Kennedy ("A Simple, Fast Dominance Algorithm"). root dominates itself.
func IDominators(gr Graph, root int) map[int]int {
	rpo := revPostOrderFrom(gr, root)
	order := map[int]int{}
	for i, n := range rpo {
		order[n] = i
	}

	idom := map[int]int{root: root}
	changed := true
	for changed {
		changed = false
		for _, n := range rpo {
			if n == root {
				continue
			}
			var newIdom int
			found := false
			for _, p := range gr.Preds(n) {
				if _, ok := idom[p]; !ok {
					continue
				}
				if !found {
					newIdom, found = p, true
					continue
				}
				newIdom = intersect(idom, order, newIdom, p)
			}
			if !found {
				continue
			}
			if cur, ok := idom[n]; !ok || cur != newIdom {
				idom[n] = newIdom
				changed = true
			}
		}
	}
	return idom
}

func intersect(idom, order map[int]int, a, b int) int {
	for a != b {
		for order[a] > order[b] {
			a = idom[a]
		}
		for order[b] > order[a] {
			b = idom[b]
		}
	}
	return a
}

func revPostOrderFrom(gr Graph, root int) []int {
	forest := DFF(gr, []int{root})
	if len(forest) == 0 {
		return nil
	}
	var out []int
	postOrder(forest[0], &out)
	return reversed(out)
}

// Dominators returns, for every node reachable from root, the set of
// nodes that dominate it (including itself).
func Dominators(gr Graph, root int) map[int]IntSet {
	idom := IDominators(gr, root)
	memo := map[int]IntSet{}

	var domSet func(n int) IntSet
	domSet = func(n int) IntSet {
		if s, ok := memo[n]; ok {
			return s
		}
		var s IntSet
		if n == root {
			s = NewIntSet(root)
		} else {
			s = NewIntSet(n)
			for m := range domSet(idom[n]) {
				s.Add(m)
			}
		}
		memo[n] = s
		return s
	}

	doms := map[int]IntSet{}
	for n := range idom {
		doms[n] = domSet(n)
	}
	return doms
}
