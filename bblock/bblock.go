// Copyright 2015 Auburn University. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bblock partitions a program unit's AST-blocks into a basic-block
// graph: straight-line runs of AST-blocks become single nodes, and
// conditionals and loops introduce the branch, join, and back edges that
// make the result usable by the dataflow and graph packages. Every
// AST-block visited is also assigned a unique integer label, the unit of
// reference for DefMap, DUMap, and UDMap.
package bblock

import "github.com/fortran-analysis/fcore/fast"

// Partition builds and returns unit's basic-block graph. It also attaches
// an InsLabel to every AST-block reachable from unit.Body(), so later
// passes never need to run their own labeling pass.
func Partition(unit fast.ProgramUnit) (*fast.BBGr, error) {
	b := &builder{g: fast.NewBBGr()}
	b.buildList(b.g.EntryNode, unit.Body())
	return b.g, nil
}

// BlockMap returns the injection from AST-block label to AST-block for
// every labeled block in g.
func BlockMap(g *fast.BBGr) map[int]fast.Block {
	m := map[int]fast.Block{}
	for _, n := range g.Nodes() {
		for _, blk := range g.Blocks[n].Blocks {
			ann := blk.Annotation()
			if ann.HasInsLabel {
				m[ann.InsLabel] = blk
			}
		}
	}
	return m
}

type builder struct {
	g        *fast.BBGr
	labelSeq int
}

func (b *builder) freshLabel() int {
	b.labelSeq++
	return b.labelSeq
}

// buildList appends blocks to the basic-block graph starting at node cur,
// and returns the node control falls through to once the whole list has
// executed.
func (b *builder) buildList(cur int, blocks []fast.Block) int {
	for _, blk := range blocks {
		cur = b.buildOne(cur, blk)
	}
	return cur
}

func (b *builder) buildOne(cur int, blk fast.Block) int {
	ann := blk.Annotation()
	ann.HasInsLabel = true
	ann.InsLabel = b.freshLabel()

	switch v := blk.(type) {
	case *fast.IfBlock:
		b.append(cur, blk)

		thenEntry := b.g.AddNode(&fast.BasicBlock{})
		b.g.AddEdge(cur, thenEntry)
		thenExit := b.buildList(thenEntry, v.Then)

		join := b.g.AddNode(&fast.BasicBlock{})
		b.g.AddEdge(thenExit, join)

		if len(v.Else) > 0 {
			elseEntry := b.g.AddNode(&fast.BasicBlock{})
			b.g.AddEdge(cur, elseEntry)
			elseExit := b.buildList(elseEntry, v.Else)
			b.g.AddEdge(elseExit, join)
		} else {
			b.g.AddEdge(cur, join)
		}
		return join

	case *fast.DoBlock:
		header := b.g.AddNode(&fast.BasicBlock{})
		b.g.AddEdge(cur, header)
		b.append(header, blk)

		bodyEntry := b.g.AddNode(&fast.BasicBlock{})
		b.g.AddEdge(header, bodyEntry)
		bodyExit := b.buildList(bodyEntry, v.Body)
		b.g.AddEdge(bodyExit, header)

		exit := b.g.AddNode(&fast.BasicBlock{})
		b.g.AddEdge(header, exit)
		return exit

	case *fast.DoWhileBlock:
		header := b.g.AddNode(&fast.BasicBlock{})
		b.g.AddEdge(cur, header)
		b.append(header, blk)

		bodyEntry := b.g.AddNode(&fast.BasicBlock{})
		b.g.AddEdge(header, bodyEntry)
		bodyExit := b.buildList(bodyEntry, v.Body)
		b.g.AddEdge(bodyExit, header)

		exit := b.g.AddNode(&fast.BasicBlock{})
		b.g.AddEdge(header, exit)
		return exit

	default:
		b.append(cur, blk)
		return cur
	}
}

func (b *builder) append(node int, blk fast.Block) {
	bb := b.g.Blocks[node]
	bb.Blocks = append(bb.Blocks, blk)
}
