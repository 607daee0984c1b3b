// Copyright 2015 Auburn University. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fastutil

import (
	"testing"

	"github.com/fortran-analysis/fcore/fast"
)

func sample() *fast.AssignBlock {
	return &fast.AssignBlock{
		Lhs: &fast.Var{SourceName: "i"},
		Rhs: &fast.BinOp{
			Op: "+",
			X:  &fast.Var{SourceName: "i"},
			Y:  &fast.FuncCall{Callee: "f", Args: []fast.Expr{&fast.Var{SourceName: "j"}}},
		},
	}
}

func TestUniverseBiGathersNestedVars(t *testing.T) {
	names := map[string]bool{}
	for _, v := range UniverseBi[*fast.Var](sample()) {
		names[v.SourceName] = true
	}
	want := []string{"i", "j"}
	for _, n := range want {
		if !names[n] {
			t.Errorf("UniverseBi did not find variable %q, got %v", n, names)
		}
	}
	if len(names) != len(want) {
		t.Errorf("UniverseBi found %d distinct names, want %d: %v", len(names), len(want), names)
	}
}

func TestUniverseBiIncludesRootWhenItMatches(t *testing.T) {
	v := &fast.Var{SourceName: "x"}
	got := UniverseBi[*fast.Var](v)
	if len(got) != 1 || got[0] != v {
		t.Fatalf("UniverseBi on a matching root = %v, want [root]", got)
	}
}

func TestDescendBiMOnlyRewritesImmediateChildren(t *testing.T) {
	root := sample()
	rewritten, err := DescendBiM[*fast.Var](func(v *fast.Var) (*fast.Var, error) {
		return &fast.Var{SourceName: v.SourceName + "$"}, nil
	}, root)
	if err != nil {
		t.Fatalf("DescendBiM returned error: %v", err)
	}
	ab := rewritten.(*fast.AssignBlock)
	if got, want := ab.Lhs.(*fast.Var).SourceName, "i$"; got != want {
		t.Errorf("immediate child Lhs = %q, want %q", got, want)
	}
	// Rhs is a *BinOp, not a *Var, so DescendBiM leaves it (and everything
	// nested inside it) untouched at this level.
	inner := ab.Rhs.(*fast.BinOp).X.(*fast.Var)
	if got, want := inner.SourceName, "i"; got != want {
		t.Errorf("nested var was rewritten by a one-level DescendBiM: got %q, want %q", got, want)
	}
}

func TestTransformBiMRewritesEveryMatchingNode(t *testing.T) {
	root := sample()
	rewritten, err := TransformBiM[*fast.Var](func(v *fast.Var) (*fast.Var, error) {
		return &fast.Var{SourceName: v.SourceName + "$"}, nil
	}, root)
	if err != nil {
		t.Fatalf("TransformBiM returned error: %v", err)
	}
	for _, v := range UniverseBi[*fast.Var](rewritten) {
		if v.SourceName == "i" || v.SourceName == "j" {
			t.Errorf("TransformBiM left a variable unrewritten: %q", v.SourceName)
		}
	}
}

func TestTransformBiMPropagatesError(t *testing.T) {
	boom := errBoom{}
	_, err := TransformBiM[*fast.Var](func(v *fast.Var) (*fast.Var, error) {
		return nil, boom
	}, sample())
	if err != boom {
		t.Fatalf("TransformBiM error = %v, want %v", err, boom)
	}
}

type errBoom struct{}

func (errBoom) Error() string { return "boom" }
