// Copyright 2015 Auburn University. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package semantics provides the variable-use/variable-definition queries
// that the dataflow package's GEN/KILL computation is built from: which
// expressions occupy an assignment position, which names they bind, and
// which names a single AST-block reads or writes.
package semantics

import (
	"sort"

	"github.com/fortran-analysis/fcore/fast"
	"github.com/fortran-analysis/fcore/fastutil"
)

// NameSet is an unordered collection of variable names.
type NameSet map[fast.Name]struct{}

// NewNameSet returns a NameSet containing names.
func NewNameSet(names ...fast.Name) NameSet {
	s := make(NameSet, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

// Add inserts n into s.
func (s NameSet) Add(n fast.Name) { s[n] = struct{}{} }

// Contains reports whether n is in s.
func (s NameSet) Contains(n fast.Name) bool {
	_, ok := s[n]
	return ok
}

// Union returns a new NameSet holding every name in s or other.
func (s NameSet) Union(other NameSet) NameSet {
	out := make(NameSet, len(s)+len(other))
	for n := range s {
		out[n] = struct{}{}
	}
	for n := range other {
		out[n] = struct{}{}
	}
	return out
}

// Minus returns a new NameSet holding every name in s that is not in other.
func (s NameSet) Minus(other NameSet) NameSet {
	out := make(NameSet, len(s))
	for n := range s {
		if !other.Contains(n) {
			out[n] = struct{}{}
		}
	}
	return out
}

// Equal reports whether s and other contain exactly the same names.
func (s NameSet) Equal(other NameSet) bool {
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

// Slice returns s's names in sorted order, for deterministic output.
func (s NameSet) Slice() []fast.Name {
	out := make([]fast.Name, 0, len(s))
	for n := range s {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// IsLExpr reports whether e is a variable reference or a subscript access
// — the two syntactic shapes that can occupy an assignment position.
func IsLExpr(e fast.Expr) bool { return fast.IsLExpr(e) }

// LhsExprs returns every expression that syntactically occupies an
// assignment position within x: the left-hand side of every assignment
// statement, plus every call argument (subroutine-call or function-call)
// that itself satisfies IsLExpr, since a call-by-reference actual may be
// written by the callee.
func LhsExprs(x fast.Node) []fast.Expr {
	var out []fast.Expr
	for _, a := range fastutil.UniverseBi[*fast.AssignBlock](x) {
		out = append(out, a.Lhs)
	}
	for _, c := range fastutil.UniverseBi[*fast.CallBlock](x) {
		out = append(out, lExprArgs(c.Args)...)
	}
	for _, f := range fastutil.UniverseBi[*fast.FuncCall](x) {
		out = append(out, lExprArgs(f.Args)...)
	}
	return out
}

func lExprArgs(args []fast.Expr) []fast.Expr {
	var out []fast.Expr
	for _, a := range args {
		if IsLExpr(a) {
			out = append(out, a)
		}
	}
	return out
}

// AllVars returns every variable or array name appearing anywhere in x.
func AllVars(x fast.Node) NameSet {
	set := NameSet{}
	for _, v := range fastutil.UniverseBi[*fast.Var](x) {
		set.Add(fast.VarName(v))
	}
	return set
}

// AllLhsVars returns every variable or array name bound by an expression
// in LhsExprs(x): the name itself for a plain variable reference, or the
// base name for a subscript access.
func AllLhsVars(x fast.Node) NameSet {
	set := NameSet{}
	for _, e := range LhsExprs(x) {
		switch le := e.(type) {
		case *fast.Var:
			set.Add(fast.VarName(le))
		case *fast.Subscript:
			set.Add(fast.VarName(le.Base))
		}
	}
	return set
}

// BlockVarUses returns the names read by AST-block b.
func BlockVarUses(b fast.Block) NameSet {
	switch blk := b.(type) {
	case *fast.DeclBlock:
		return NameSet{}
	case *fast.AssignBlock:
		uses := AllVars(blk.Rhs)
		if sub, ok := blk.Lhs.(*fast.Subscript); ok {
			for _, idx := range sub.Indices {
				uses = uses.Union(AllVars(idx))
			}
		}
		return uses
	case *fast.DoBlock:
		uses := AllVars(blk.Start).Union(AllVars(blk.End))
		if blk.Step != nil {
			uses = uses.Union(AllVars(blk.Step))
		}
		return uses
	case *fast.DoWhileBlock:
		return AllVars(blk.Cond)
	case *fast.IfBlock:
		return AllVars(blk.Cond)
	default:
		return AllVars(b)
	}
}

// BlockVarDefs returns the names written by AST-block b.
func BlockVarDefs(b fast.Block) NameSet {
	switch blk := b.(type) {
	case *fast.AssignBlock, *fast.CallBlock:
		return AllLhsVars(b)
	case *fast.DoBlock:
		return NewNameSet(fast.VarName(blk.LoopVar))
	default:
		return NameSet{}
	}
}
