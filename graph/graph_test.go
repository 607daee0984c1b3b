// Copyright 2015 Auburn University. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package graph

import (
	"reflect"
	"testing"
)

// adjList is the smallest possible Graph implementation, used only by
// these tests: a plain map from node to its successor list, with
// predecessors derived from it.
type adjList map[int][]int

func (g adjList) Nodes() []int {
	seen := IntSet{}
	for n, succs := range g {
		seen.Add(n)
		for _, s := range succs {
			seen.Add(s)
		}
	}
	return seen.Slice()
}

func (g adjList) Succs(n int) []int { return g[n] }

func (g adjList) Preds(n int) []int {
	var preds []int
	for _, m := range g.Nodes() {
		for _, s := range g[m] {
			if s == n {
				preds = append(preds, m)
			}
		}
	}
	return preds
}

// naturalLoopGraph is scenario S5: 0 -> 1 -> 2 -> 1, back edge (2,1).
func naturalLoopGraph() adjList {
	return adjList{0: {1}, 1: {2}, 2: {1}}
}

func TestDominatorsNaturalLoop(t *testing.T) {
	g := naturalLoopGraph()
	doms := Dominators(g, 0)

	want := map[int]IntSet{
		0: NewIntSet(0),
		1: NewIntSet(0, 1),
		2: NewIntSet(0, 1, 2),
	}
	for n, w := range want {
		if got := doms[n]; !reflect.DeepEqual(got.Slice(), w.Slice()) {
			t.Errorf("Dominators[%d] = %v, want %v", n, got.Slice(), w.Slice())
		}
	}
}

func TestBackEdgeCharacterization(t *testing.T) {
	g := naturalLoopGraph()
	doms := Dominators(g, 0)

	isBackEdge := func(s, t int) bool { return doms[s].Contains(t) }

	if !isBackEdge(2, 1) {
		t.Errorf("(2,1) should be a back edge: 1 dominates 2")
	}
	if isBackEdge(0, 1) {
		t.Errorf("(0,1) should not be a back edge: 1 does not dominate 0")
	}
	if isBackEdge(1, 2) {
		t.Errorf("(1,2) should not be a back edge: 2 does not dominate 1")
	}
}

func TestSCCFindsTheLoop(t *testing.T) {
	g := naturalLoopGraph()
	comps := SCC(g)

	var loopComp []int
	for _, c := range comps {
		if len(c) > 1 {
			loopComp = c
		}
	}
	if loopComp == nil {
		t.Fatalf("SCC did not find a nontrivial component in %v", comps)
	}
	got := NewIntSet(loopComp...)
	if !got.Equal(NewIntSet(1, 2)) {
		t.Errorf("nontrivial SCC = %v, want {1,2}", got.Slice())
	}
}

func TestTopsortAcyclic(t *testing.T) {
	g := adjList{0: {1, 2}, 1: {3}, 2: {3}, 3: {}}
	order, err := Topsort(g)
	if err != nil {
		t.Fatalf("Topsort returned error on an acyclic graph: %v", err)
	}

	pos := map[int]int{}
	for i, n := range order {
		pos[n] = i
	}
	for n, succs := range g {
		for _, s := range succs {
			if pos[n] >= pos[s] {
				t.Errorf("Topsort order %v violates edge %d -> %d", order, n, s)
			}
		}
	}
}

func TestTopsortDetectsCycle(t *testing.T) {
	g := naturalLoopGraph()
	if _, err := Topsort(g); err == nil {
		t.Fatalf("Topsort did not detect the cycle in %v", g)
	}
}

func TestTransitiveClosureIsReflexiveAndTransitive(t *testing.T) {
	g := adjList{0: {1}, 1: {2}, 2: {}}
	closure := TransitiveClosure(g)

	if !closure[0].Contains(0) {
		t.Errorf("closure is not reflexive at 0: %v", closure[0].Slice())
	}
	if !closure[0].Contains(2) {
		t.Errorf("closure[0] should reach 2 transitively: %v", closure[0].Slice())
	}
	if closure[2].Contains(0) {
		t.Errorf("closure[2] should not reach 0: %v", closure[2].Slice())
	}
}

func TestPostOrderAndRevPostOrderAreReverses(t *testing.T) {
	g := adjList{0: {1, 2}, 1: {3}, 2: {3}, 3: {}}
	post := PostOrder(g)
	revPost := RevPostOrder(g)

	if len(post) != len(revPost) {
		t.Fatalf("PostOrder and RevPostOrder have different lengths: %d vs %d", len(post), len(revPost))
	}
	for i := range post {
		if post[i] != revPost[len(revPost)-1-i] {
			t.Errorf("RevPostOrder is not the reverse of PostOrder: %v vs %v", post, revPost)
		}
	}
	if post[len(post)-1] != 0 {
		t.Errorf("PostOrder should visit the root 0 last, got %v", post)
	}
}

func TestDFFSkipsAlreadyVisitedRoots(t *testing.T) {
	g := adjList{0: {1}, 1: {}, 2: {1}}
	forest := DFF(g, []int{0, 2})
	if len(forest) != 2 {
		t.Fatalf("DFF produced %d trees, want 2 (one per root)", len(forest))
	}
	if forest[1].Root != 2 || len(forest[1].Children) != 0 {
		t.Errorf("second tree should be a lone node 2 (1 already visited): %+v", forest[1])
	}
}
