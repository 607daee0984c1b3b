// Copyright 2015 Auburn University. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package report formats the dataflow package's analyses for human
// consumption: one relation dump per program unit, written to an
// io.Writer, column-aligned with text/tabwriter.
package report

import (
	"context"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"golang.org/x/sync/errgroup"

	"github.com/fortran-analysis/fcore/bblock"
	"github.com/fortran-analysis/fcore/dataflow"
	"github.com/fortran-analysis/fcore/fast"
	"github.com/fortran-analysis/fcore/graph"
)

// unitReport holds every relation computed for one program unit.
type unitReport struct {
	name fast.Name
	bbgr *fast.BBGr

	postOrder    []int
	revPostOrder []int
	revPreOrder  []int
	dominators   map[int]graph.IntSet
	iDominators  map[int]int
	topsort      []int
	topsortErr   error
	scc          [][]int

	liveIn   map[int]interface{ Slice() []fast.Name }
	liveOut  map[int]interface{ Slice() []fast.Name }
	reachIn  map[int]graph.IntSet
	reachOut map[int]graph.IntSet
	defMap   map[fast.Name]graph.IntSet
	duMap    map[int]graph.IntSet
	udMap    map[int]graph.IntSet
	flowsTo  map[int]graph.IntSet

	backEdges map[int]int
	loopNodes map[int]graph.IntSet
}

func analyzeUnit(u fast.ProgramUnit) (*unitReport, error) {
	g, err := bblock.Partition(u)
	if err != nil {
		return nil, fmt.Errorf("partitioning %s: %w", fast.PUName(u), err)
	}

	liveIn, liveOut := dataflow.LiveVars(g)
	reachIn, reachOut := dataflow.ReachingDefs(g)
	defMap := dataflow.DefMap(g)
	duMap := dataflow.DUMap(g, reachIn)
	udMap := dataflow.UDMap(duMap)
	backEdges := dataflow.BackEdges(g)

	loopNodes := make(map[int]graph.IntSet, len(backEdges))
	for tail, head := range backEdges {
		loopNodes[tail] = dataflow.LoopNodes(g, tail, head)
	}

	topsort, topsortErr := graph.Topsort(g)

	r := &unitReport{
		name: fast.PUName(u),
		bbgr: g,

		postOrder:    graph.PostOrder(g),
		revPostOrder: graph.RevPostOrder(g),
		revPreOrder:  graph.RevPreOrder(g),
		dominators:   graph.Dominators(g, 0),
		iDominators:  graph.IDominators(g, 0),
		topsort:      topsort,
		topsortErr:   topsortErr,
		scc:          graph.SCC(g),

		reachIn:  reachIn,
		reachOut: reachOut,
		defMap:   defMap,
		duMap:    duMap,
		udMap:    udMap,
		flowsTo:  dataflow.FlowsTo(g, duMap),

		backEdges: backEdges,
		loopNodes: loopNodes,
	}
	r.liveIn = wrapNameSets(liveIn)
	r.liveOut = wrapNameSets(liveOut)
	return r, nil
}

func wrapNameSets[M interface{ Slice() []fast.Name }](m map[int]M) map[int]interface{ Slice() []fast.Name } {
	out := make(map[int]interface{ Slice() []fast.Name }, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// ShowDataFlow analyzes every program unit in pf — concurrently, since
// the analyses are independent across units — and writes a column
// aligned, deterministically ordered summary of every relation named in
// the reporting facade: callMap, postOrder, revPostOrder, revPreOrder,
// dominators, iDominators, live variables, reaching definitions, back
// edges, topsort, scc, loop nodes, def-use/use-def chains, flows-to, and
// the def map.
func ShowDataFlow(pf fast.ProgramFile, out io.Writer) error {
	reports := make([]*unitReport, len(pf.Units))

	g, ctx := errgroup.WithContext(context.Background())
	for i, u := range pf.Units {
		i, u := i, u
		g.Go(func() error {
			r, err := analyzeUnit(u)
			if err != nil {
				return err
			}
			reports[i] = r
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
				return nil
			}
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, r := range reports {
		writeUnitReport(tw, r)
	}

	callMap := dataflow.CallMap(pf)
	fmt.Fprintln(tw, "call map:")
	for _, caller := range sortedNameKeys(callMap) {
		fmt.Fprintf(tw, "\t%s\t-> %v\n", caller, callMap[caller].Slice())
	}

	return tw.Flush()
}

func writeUnitReport(tw *tabwriter.Writer, r *unitReport) {
	fmt.Fprintf(tw, "unit %s:\n", r.name)

	fmt.Fprintf(tw, "\tpostOrder\t%v\n", r.postOrder)
	fmt.Fprintf(tw, "\trevPostOrder\t%v\n", r.revPostOrder)
	fmt.Fprintf(tw, "\trevPreOrder\t%v\n", r.revPreOrder)

	for _, n := range sortedIntKeys(r.dominators) {
		fmt.Fprintf(tw, "\tdominators[%d]\t%v\n", n, r.dominators[n].Slice())
	}
	for _, n := range sortedIntKeys(r.iDominators) {
		fmt.Fprintf(tw, "\tiDominators[%d]\t%d\n", n, r.iDominators[n])
	}

	if r.topsortErr != nil {
		fmt.Fprintf(tw, "\ttopsort\terror: %v\n", r.topsortErr)
	} else {
		fmt.Fprintf(tw, "\ttopsort\t%v\n", r.topsort)
	}

	sortedSCC := make([][]int, len(r.scc))
	copy(sortedSCC, r.scc)
	for i, comp := range sortedSCC {
		c := make([]int, len(comp))
		copy(c, comp)
		sort.Ints(c)
		sortedSCC[i] = c
	}
	sort.Slice(sortedSCC, func(i, j int) bool {
		return firstOrZero(sortedSCC[i]) < firstOrZero(sortedSCC[j])
	})
	fmt.Fprintf(tw, "\tscc\t%v\n", sortedSCC)

	for _, n := range r.bbgr.Nodes() {
		fmt.Fprintf(tw, "\tnode %d\tlive-in\t%v\tlive-out\t%v\n", n, r.liveIn[n].Slice(), r.liveOut[n].Slice())
		fmt.Fprintf(tw, "\tnode %d\treach-in\t%v\treach-out\t%v\n", n, r.reachIn[n].Slice(), r.reachOut[n].Slice())
	}

	if len(r.backEdges) == 0 {
		fmt.Fprintf(tw, "\tback edge\t(none)\n")
	}
	for _, tail := range sortedIntKeys(r.backEdges) {
		fmt.Fprintf(tw, "\tback edge\t%d -> %d\n", tail, r.backEdges[tail])
	}
	if len(r.loopNodes) == 0 {
		fmt.Fprintf(tw, "\tloopNodes[]\t(none)\n")
	}
	for _, tail := range sortedIntKeys(r.loopNodes) {
		fmt.Fprintf(tw, "\tloopNodes[%d]\t%v\n", tail, r.loopNodes[tail].Slice())
	}

	for _, name := range sortedNameKeys(r.defMap) {
		fmt.Fprintf(tw, "\tdefMap[%s]\t%v\n", name, r.defMap[name].Slice())
	}
	if len(r.duMap) == 0 {
		fmt.Fprintf(tw, "\tduMap[]\t(none)\n")
	}
	for _, def := range sortedIntKeys(r.duMap) {
		fmt.Fprintf(tw, "\tduMap[%d]\t%v\n", def, r.duMap[def].Slice())
	}
	if len(r.udMap) == 0 {
		fmt.Fprintf(tw, "\tudMap[]\t(none)\n")
	}
	for _, use := range sortedIntKeys(r.udMap) {
		fmt.Fprintf(tw, "\tudMap[%d]\t%v\n", use, r.udMap[use].Slice())
	}
	for _, l := range sortedIntKeys(r.flowsTo) {
		fmt.Fprintf(tw, "\tflowsTo[%d]\t%v\n", l, r.flowsTo[l].Slice())
	}
}

func firstOrZero(ns []int) int {
	if len(ns) == 0 {
		return 0
	}
	return ns[0]
}

func sortedIntKeys[V any](m map[int]V) []int {
	out := make([]int, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}

func sortedNameKeys[V any](m map[fast.Name]V) []fast.Name {
	out := make([]fast.Name, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
