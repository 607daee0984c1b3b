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

// nameIndex assigns each distinct variable name encountered a dense
// bitset bit position, in first-seen order, so the solver's lattice
// elements can be *bitset.BitSet rather than semantics.NameSet: exactly
// the var-to-bit mapping godoctor's liveVarBuilder.buildDefUse builds for
// Go source, here built for fast.Name instead of *types.Var.
type nameIndex struct {
	pos   map[fast.Name]uint
	names []fast.Name
}

func newNameIndex() *nameIndex { return &nameIndex{pos: map[fast.Name]uint{}} }

func (ni *nameIndex) bitOf(n fast.Name) uint {
	if i, ok := ni.pos[n]; ok {
		return i
	}
	i := uint(len(ni.names))
	ni.pos[n] = i
	ni.names = append(ni.names, n)
	return i
}

func (ni *nameIndex) toBitSet(set semantics.NameSet) *bitset.BitSet {
	bs := new(bitset.BitSet)
	for n := range set {
		bs.Set(ni.bitOf(n))
	}
	return bs
}

func (ni *nameIndex) toNameSet(bs *bitset.BitSet) semantics.NameSet {
	out := semantics.NameSet{}
	for i, ok := uint(0), true; ok; i++ {
		if i, ok = bs.NextSet(i); ok {
			out.Add(ni.names[i])
		}
	}
	return out
}

// labelIndex is the same mapping, for AST-block labels instead of names.
type labelIndex struct {
	pos    map[int]uint
	labels []int
}

func newLabelIndex() *labelIndex { return &labelIndex{pos: map[int]uint{}} }

func (li *labelIndex) bitOf(l int) uint {
	if i, ok := li.pos[l]; ok {
		return i
	}
	i := uint(len(li.labels))
	li.pos[l] = i
	li.labels = append(li.labels, l)
	return i
}

func (li *labelIndex) toBitSet(set graph.IntSet) *bitset.BitSet {
	bs := new(bitset.BitSet)
	for l := range set {
		bs.Set(li.bitOf(l))
	}
	return bs
}

func (li *labelIndex) toIntSet(bs *bitset.BitSet) graph.IntSet {
	out := graph.IntSet{}
	for i, ok := uint(0), true; ok; i++ {
		if i, ok = bs.NextSet(i); ok {
			out.Add(li.labels[i])
		}
	}
	return out
}
