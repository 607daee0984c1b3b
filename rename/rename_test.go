// Copyright 2015 Auburn University. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rename

import (
	"reflect"
	"strings"
	"testing"

	"github.com/fortran-analysis/fcore/fast"
	"github.com/fortran-analysis/fcore/fastutil"
)

// foo(x): x = x + 1
func fooSubroutine() *fast.Subroutine {
	return &fast.Subroutine{
		NameV:      fast.Named("foo"),
		ParamNames: []fast.Name{"x"},
		Stmts: []fast.Block{
			&fast.AssignBlock{
				Lhs: &fast.Var{SourceName: "x"},
				Rhs: &fast.BinOp{Op: "+", X: &fast.Var{SourceName: "x"}, Y: &fast.IntLit{Value: 1}},
			},
		},
	}
}

// TestTrivialRename is scenario S1.
func TestTrivialRename(t *testing.T) {
	pf := fast.ProgramFile{Units: []fast.ProgramUnit{fooSubroutine()}}

	renamed, _, err := Rename(pf)
	if err != nil {
		t.Fatalf("Rename returned error: %v", err)
	}

	unit := renamed.Units[0]
	if got, want := unit.Annotation().UniqueName, "__foo1"; got != want {
		t.Errorf("unit unique name = %q, want %q", got, want)
	}

	assign := unit.Body()[0].(*fast.AssignBlock)
	lhs := assign.Lhs.(*fast.Var)
	if got, want := lhs.Ann.UniqueName, "__foo1_x2"; got != want {
		t.Errorf("Lhs unique name = %q, want %q", got, want)
	}
	rhsX := assign.Rhs.(*fast.BinOp).X.(*fast.Var)
	if got, want := rhsX.Ann.UniqueName, "__foo1_x2"; got != want {
		t.Errorf("Rhs.X unique name = %q, want %q", got, want)
	}
}

func subroutineWithLocalI(name string) *fast.Subroutine {
	return &fast.Subroutine{
		NameV: fast.Named(name),
		Stmts: []fast.Block{
			&fast.DeclBlock{Declarators: []fast.Declarator{{Name: "i"}}},
			&fast.AssignBlock{Lhs: &fast.Var{SourceName: "i"}, Rhs: &fast.IntLit{Value: 1}},
		},
	}
}

// TestCollisionFreeSiblings is scenario S2.
func TestCollisionFreeSiblings(t *testing.T) {
	foo := subroutineWithLocalI("foo")
	bar := subroutineWithLocalI("bar")
	pf := fast.ProgramFile{Units: []fast.ProgramUnit{foo, bar}}

	renamed, _, err := Rename(pf)
	if err != nil {
		t.Fatalf("Rename returned error: %v", err)
	}

	fooI := renamed.Units[0].Body()[1].(*fast.AssignBlock).Lhs.(*fast.Var)
	barI := renamed.Units[1].Body()[1].(*fast.AssignBlock).Lhs.(*fast.Var)

	if !fooI.Ann.HasUniqueName || !barI.Ann.HasUniqueName {
		t.Fatalf("expected both locals to be renamed: foo.i=%+v bar.i=%+v", fooI.Ann, barI.Ann)
	}
	if fooI.Ann.UniqueName == barI.Ann.UniqueName {
		t.Errorf("sibling locals collided on unique name %q", fooI.Ann.UniqueName)
	}
}

// TestRenameIdempotence is property 2: renaming an already-renamed file
// again produces the same result.
func TestRenameIdempotence(t *testing.T) {
	pf := fast.ProgramFile{Units: []fast.ProgramUnit{subroutineWithLocalI("foo")}}

	once, _, err := Rename(pf)
	if err != nil {
		t.Fatalf("first Rename returned error: %v", err)
	}
	twice, _, err := Rename(once)
	if err != nil {
		t.Fatalf("second Rename returned error: %v", err)
	}
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("Rename is not idempotent:\n once: %#v\ntwice: %#v", once, twice)
	}
}

// TestAlreadyRenamedGuardSkipsUnderscorePrefixedNames exercises the
// §4.3.1 guard directly: a variable reference whose source name already
// begins with "_" is never looked up, even if the environment happens to
// contain a matching key.
func TestAlreadyRenamedGuardSkipsUnderscorePrefixedNames(t *testing.T) {
	s := newState()
	s.pushEnv(map[fast.Name]fast.UniqueName{"_tmp1": "should_not_be_used"})
	defer s.popEnv()

	v := &fast.Var{SourceName: "_tmp1"}
	renameVarRef(s, v)

	if v.Ann.HasUniqueName {
		t.Fatalf("guard did not skip an already-renamed variable: %+v", v.Ann)
	}
}

// TestUniqueNameInjectivity is property 3.
func TestUniqueNameInjectivity(t *testing.T) {
	pf := fast.ProgramFile{Units: []fast.ProgramUnit{
		subroutineWithLocalI("foo"),
		subroutineWithLocalI("bar"),
		fooSubroutine(),
	}}

	renamed, _, err := Rename(pf)
	if err != nil {
		t.Fatalf("Rename returned error: %v", err)
	}

	// Every reference to one binding carries that binding's unique name
	// (x = x + 1 references x twice), so a duplicate is the same unique
	// name reached from two different bindings: a different unit, or a
	// different source name within the same unit.
	type binding struct {
		unit int
		name fast.Name
	}
	seen := map[string]binding{}
	for i, u := range renamed.Units {
		ann := u.Annotation()
		if ann.HasUniqueName {
			b := binding{i, u.UnitName().Munge()}
			if prev, ok := seen[ann.UniqueName]; ok && prev != b {
				t.Errorf("duplicate unit unique name %q", ann.UniqueName)
			}
			seen[ann.UniqueName] = b
		}
		for _, blk := range u.Body() {
			for _, v := range fastutil.UniverseBi[*fast.Var](blk) {
				if !v.Ann.HasUniqueName {
					continue
				}
				b := binding{i, v.SourceName}
				if prev, ok := seen[v.Ann.UniqueName]; ok && prev != b {
					t.Errorf("duplicate variable unique name %q", v.Ann.UniqueName)
				}
				seen[v.Ann.UniqueName] = b
			}
		}
	}
}

// TestScopeBalance is property 4.
func TestScopeBalance(t *testing.T) {
	pf := fast.ProgramFile{Units: []fast.ProgramUnit{fooSubroutine(), subroutineWithLocalI("bar")}}

	_, final, err := Rename(pf)
	if err != nil {
		t.Fatalf("Rename returned error: %v", err)
	}

	if got, want := final.ScopeStack, []fast.Name{"_"}; !reflect.DeepEqual(got, want) {
		t.Errorf("final ScopeStack = %v, want %v", got, want)
	}
	if len(final.EnvStack) != 1 {
		t.Fatalf("final EnvStack has %d frames, want 1", len(final.EnvStack))
	}
	if len(final.EnvStack[0]) != 0 {
		t.Errorf("final EnvStack's single frame is not empty: %v", final.EnvStack[0])
	}
}

func TestArrayDeclaratorBoundsUseEnclosingEnvironment(t *testing.T) {
	// subroutine foo(n): real a(n); a(1) = 0.0
	unit := &fast.Subroutine{
		NameV:      fast.Named("foo"),
		ParamNames: []fast.Name{"n"},
		Stmts: []fast.Block{
			&fast.DeclBlock{Declarators: []fast.Declarator{{Name: "a", Bounds: []fast.Expr{&fast.Var{SourceName: "n"}}}}},
			&fast.AssignBlock{
				Lhs: &fast.Subscript{Base: &fast.Var{SourceName: "a"}, Indices: []fast.Expr{&fast.IntLit{Value: 1}}},
				Rhs: &fast.RealLit{Value: 0},
			},
		},
	}
	pf := fast.ProgramFile{Units: []fast.ProgramUnit{unit}}

	renamed, _, err := Rename(pf)
	if err != nil {
		t.Fatalf("Rename returned error: %v", err)
	}

	decl := renamed.Units[0].Body()[0].(*fast.DeclBlock)
	boundVar := decl.Declarators[0].Bounds[0].(*fast.Var)

	if !boundVar.Ann.HasUniqueName {
		t.Fatalf("array bound expression referencing parameter n was not renamed")
	}

	assign := renamed.Units[0].Body()[1].(*fast.AssignBlock)
	base := assign.Lhs.(*fast.Subscript).Base
	if !base.Ann.HasUniqueName {
		t.Fatalf("array base name was not bound by its own declarator")
	}
	if base.Ann.UniqueName == boundVar.Ann.UniqueName {
		t.Errorf("array name and its bound expression resolved to the same unique name: %q", base.Ann.UniqueName)
	}
}

func TestRenameLogsArrayBoundsIgnoredForLiveness(t *testing.T) {
	// subroutine foo(n): real a(n)
	unit := &fast.Subroutine{
		NameV:      fast.Named("foo"),
		ParamNames: []fast.Name{"n"},
		Stmts: []fast.Block{
			&fast.DeclBlock{Declarators: []fast.Declarator{{Name: "a", Bounds: []fast.Expr{&fast.Var{SourceName: "n"}}}}},
		},
	}
	pf := fast.ProgramFile{Units: []fast.ProgramUnit{unit}}

	_, final, err := Rename(pf)
	if err != nil {
		t.Fatalf("Rename returned error: %v", err)
	}

	if final.Log == nil || len(final.Log.Entries) == 0 {
		t.Fatalf("expected a logged diagnostic for the array-bounds declarator, got none")
	}
	found := false
	for _, e := range final.Log.Entries {
		if strings.Contains(e.Message, "array bounds") {
			found = true
		}
	}
	if !found {
		t.Errorf("Log entries = %v, want one mentioning array bounds", final.Log.Entries)
	}
}

func TestRenameLogsDeclarationShadowingOuterParameter(t *testing.T) {
	// subroutine foo(x): real x; x = 1
	unit := &fast.Subroutine{
		NameV:      fast.Named("foo"),
		ParamNames: []fast.Name{"x"},
		Stmts: []fast.Block{
			&fast.DeclBlock{Declarators: []fast.Declarator{{Name: "x"}}},
			&fast.AssignBlock{Lhs: &fast.Var{SourceName: "x"}, Rhs: &fast.IntLit{Value: 1}},
		},
	}
	pf := fast.ProgramFile{Units: []fast.ProgramUnit{unit}}

	_, final, err := Rename(pf)
	if err != nil {
		t.Fatalf("Rename returned error: %v", err)
	}

	found := false
	for _, e := range final.Log.Entries {
		if strings.Contains(e.Message, "shadows an outer parameter") {
			found = true
		}
	}
	if !found {
		t.Errorf("Log entries = %v, want one about shadowing an outer parameter", final.Log.Entries)
	}
}
