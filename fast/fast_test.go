// Copyright 2015 Auburn University. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fast

import (
	"reflect"
	"testing"
)

func sampleUnit() *Subroutine {
	return &Subroutine{
		NameV:      Named("solve"),
		ParamNames: []Name{"n", "x"},
		Stmts: []Block{
			&DeclBlock{Declarators: []Declarator{{Name: "i"}}},
			&AssignBlock{
				Lhs: &Var{SourceName: "i"},
				Rhs: &BinOp{Op: "+", X: &Var{SourceName: "i"}, Y: &IntLit{Value: 1}},
			},
			&IfBlock{
				Cond: &BinOp{Op: ">", X: &Var{SourceName: "i"}, Y: &IntLit{Value: 0}},
				Then: []Block{&CallBlock{Callee: "report", Args: []Expr{&Var{SourceName: "i"}}}},
			},
			&DoBlock{
				LoopVar: &Var{SourceName: "i"},
				Start:   &IntLit{Value: 1},
				End:     &Var{SourceName: "n"},
				Body: []Block{
					&AssignBlock{
						Lhs: &Subscript{Base: &Var{SourceName: "x"}, Indices: []Expr{&Var{SourceName: "i"}}},
						Rhs: &RealLit{Value: 0},
					},
				},
			},
		},
	}
}

func TestInitStripRoundTrip(t *testing.T) {
	pf := ProgramFile{Units: []ProgramUnit{sampleUnit()}}
	initialized := InitAnalysis(pf)

	for _, v := range UniverseVars(initialized) {
		if v.Ann.HasUniqueName {
			t.Fatalf("freshly initialized node already has a unique name: %+v", v)
		}
	}

	stripped := StripAnalysis(initialized)
	if !reflect.DeepEqual(pf, stripped) {
		t.Fatalf("StripAnalysis(InitAnalysis(pf)) != pf\n got: %#v\nwant: %#v", stripped, pf)
	}
}

func TestInitAnalysisIsIdempotentlyReversible(t *testing.T) {
	pf := ProgramFile{Units: []ProgramUnit{sampleUnit()}}
	twice := InitAnalysis(InitAnalysis(pf))
	once := StripAnalysis(twice)
	if !reflect.DeepEqual(once, InitAnalysis(pf)) {
		t.Fatalf("stripping one layer of InitAnalysis applied twice did not recover one layer")
	}
}

func TestPUNameFallsBackToSourceName(t *testing.T) {
	u := sampleUnit()
	if got, want := PUName(u), "solve"; got != want {
		t.Fatalf("PUName() = %q, want %q", got, want)
	}
	u.Ann.HasUniqueName = true
	u.Ann.UniqueName = "solve$1"
	if got, want := PUName(u), "solve$1"; got != want {
		t.Fatalf("PUName() = %q, want %q", got, want)
	}
}

func TestVarNamePanicsOnNonVariable(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("VarName did not panic on a non-variable expression")
		}
	}()
	VarName(&IntLit{Value: 1})
}

func TestIsLExpr(t *testing.T) {
	cases := []struct {
		e    Expr
		want bool
	}{
		{&Var{SourceName: "x"}, true},
		{&Subscript{Base: &Var{SourceName: "x"}}, true},
		{&IntLit{Value: 1}, false},
		{&BinOp{Op: "+"}, false},
	}
	for _, c := range cases {
		if got := IsLExpr(c.e); got != c.want {
			t.Errorf("IsLExpr(%T) = %v, want %v", c.e, got, c.want)
		}
	}
}

// UniverseVars walks n's subtree, collecting every *Var without depending
// on package fastutil (kept dependency-free so fast's own tests do not
// import its consumer).
func UniverseVars(n Node) []*Var {
	var out []*Var
	if v, ok := n.(*Var); ok {
		out = append(out, v)
	}
	for _, c := range n.Children() {
		out = append(out, UniverseVars(c)...)
	}
	return out
}
