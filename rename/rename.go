// Copyright 2015 Auburn University. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rename implements the lexical scope analysis that assigns every
// program unit and every variable binding in a fast.ProgramFile a name
// that is unique across the whole file. It is the renamer referenced
// throughout the dataflow and call-graph packages: every later pass
// queries fast.VarName/fast.PUName rather than re-deriving scope.
package rename

import (
	"strconv"
	"strings"

	"github.com/fortran-analysis/fcore/diagnostics"
	"github.com/fortran-analysis/fcore/fast"
	"github.com/fortran-analysis/fcore/fastutil"
)

// State is the renamer's threaded, internally-scoped mutable state. A
// caller never constructs one directly; Rename returns the state it ended
// with, chiefly so tests can assert scope balance.
type State struct {
	// ScopeStack holds the currently open scope names, innermost first.
	// The bottom entry is always the root sentinel "_".
	ScopeStack []fast.Name

	// UniqSeq is the unbounded monotonic source of fresh integers used to
	// build unique names. Rename zeroes it in the state it returns: the
	// sequence position itself is not part of the renamer's externally
	// visible contract.
	UniqSeq int

	// EnvStack holds the currently open renaming environments, innermost
	// first, each mapping a source name to the unique name it resolved to
	// in that scope.
	EnvStack []map[fast.Name]fast.UniqueName

	// Log collects informational diagnostics produced while renaming:
	// array bounds ignored for liveness purposes, declarations that
	// shadow an outer parameter, and the like. Never fatal.
	Log *diagnostics.Log
}

func newState() *State {
	return &State{
		ScopeStack: []fast.Name{"_"},
		UniqSeq:    1,
		EnvStack:   []map[fast.Name]fast.UniqueName{{}},
		Log:        diagnostics.NewLog(),
	}
}

func (s *State) fresh() int {
	k := s.UniqSeq
	s.UniqSeq++
	return k
}

func (s *State) topScope() fast.Name {
	return s.ScopeStack[len(s.ScopeStack)-1]
}

func (s *State) pushScope(name fast.Name) {
	s.ScopeStack = append(s.ScopeStack, name)
}

func (s *State) popScope() {
	s.ScopeStack = s.ScopeStack[:len(s.ScopeStack)-1]
}

func (s *State) topEnv() map[fast.Name]fast.UniqueName {
	return s.EnvStack[len(s.EnvStack)-1]
}

func (s *State) pushEnv(env map[fast.Name]fast.UniqueName) {
	s.EnvStack = append(s.EnvStack, env)
}

func (s *State) popEnv() {
	s.EnvStack = s.EnvStack[:len(s.EnvStack)-1]
}

// Rename assigns unique names throughout pf: every program unit header and
// every resolvable variable reference carries one in its annotation when
// Rename returns. The returned State reflects the balance the algorithm
// ended at (ScopeStack == ["_"], exactly one empty EnvStack frame); its
// UniqSeq is zeroed, since the fresh-name sequence itself is not part of
// the renamer's externally visible contract.
func Rename(pf fast.ProgramFile) (fast.ProgramFile, State, error) {
	s := newState()
	units := make([]fast.ProgramUnit, len(pf.Units))
	for i, u := range pf.Units {
		ru, err := renameUnit(s, u)
		if err != nil {
			return pf, State{}, err
		}
		units[i] = ru
	}
	final := *s
	final.UniqSeq = 0
	return fast.ProgramFile{Units: units, Ann: pf.Ann}, final, nil
}

func renameUnit(s *State, pu fast.ProgramUnit) (fast.ProgramUnit, error) {
	k := s.fresh()
	name := s.topScope() + "_" + pu.UnitName().Munge() + strconv.Itoa(k)

	s.pushScope(name)
	env := map[fast.Name]fast.UniqueName{}
	for _, p := range pu.Params() {
		env[p] = name + "_" + p + strconv.Itoa(s.fresh())
	}
	if rb := pu.ResultBinding(); rb != "" {
		env[rb] = name
	}
	s.pushEnv(env)

	newBody, err := renameBlockList(s, pu.Body())
	if err != nil {
		s.popEnv()
		s.popScope()
		return nil, err
	}
	s.popEnv()
	s.popScope()

	pu.SetBody(newBody)
	ann := pu.Annotation()
	ann.HasUniqueName = true
	ann.UniqueName = name
	return pu, nil
}

// renameBlockList renames one block list: if it opens with a declaration
// statement, the declarator bounds are renamed in the enclosing
// environment (they are evaluated before the declared names come into
// scope), a declaration-scoped environment is pushed, and the remainder of
// the list is renamed under it before it is popped.
func renameBlockList(s *State, blocks []fast.Block) ([]fast.Block, error) {
	if len(blocks) == 0 {
		return blocks, nil
	}

	result := make([]fast.Block, len(blocks))
	start := 0
	if decl, ok := blocks[0].(*fast.DeclBlock); ok {
		renamedDecl, err := renameDeclBounds(s, decl)
		if err != nil {
			return nil, err
		}
		result[0] = renamedDecl
		s.pushEnv(declEnv(s, renamedDecl))
		defer s.popEnv()
		start = 1
	}

	for i := start; i < len(blocks); i++ {
		rb, err := renameBlock(s, blocks[i])
		if err != nil {
			return nil, err
		}
		result[i] = rb
	}
	return result, nil
}

func declEnv(s *State, decl *fast.DeclBlock) map[fast.Name]fast.UniqueName {
	env := make(map[fast.Name]fast.UniqueName, len(decl.Declarators))
	for _, d := range decl.Declarators {
		if _, shadowed := s.topEnv()[d.Name]; shadowed {
			s.Log.WarnfUnit(s.topScope(), "declaration of %q shadows an outer parameter", d.Name)
		}
		env[d.Name] = s.topScope() + "_" + d.Name + strconv.Itoa(s.fresh())
	}
	return env
}

func renameDeclBounds(s *State, decl *fast.DeclBlock) (*fast.DeclBlock, error) {
	for i, d := range decl.Declarators {
		if len(d.Bounds) > 0 {
			s.Log.InfofUnit(s.topScope(), "array bounds for %q ignored for liveness purposes", d.Name)
		}
		bounds := make([]fast.Expr, len(d.Bounds))
		for j, b := range d.Bounds {
			rb, err := renameExpr(s, b)
			if err != nil {
				return nil, err
			}
			bounds[j] = rb
		}
		decl.Declarators[i].Bounds = bounds
	}
	return decl, nil
}

func renameBlock(s *State, b fast.Block) (fast.Block, error) {
	switch blk := b.(type) {
	case *fast.DeclBlock:
		return renameDeclBounds(s, blk)
	case *fast.AssignBlock:
		lhs, err := renameExpr(s, blk.Lhs)
		if err != nil {
			return nil, err
		}
		rhs, err := renameExpr(s, blk.Rhs)
		if err != nil {
			return nil, err
		}
		blk.Lhs, blk.Rhs = lhs, rhs
		return blk, nil
	case *fast.CallBlock:
		args, err := renameExprs(s, blk.Args)
		if err != nil {
			return nil, err
		}
		blk.Args = args
		return blk, nil
	case *fast.IfBlock:
		cond, err := renameExpr(s, blk.Cond)
		if err != nil {
			return nil, err
		}
		then, err := renameBlockList(s, blk.Then)
		if err != nil {
			return nil, err
		}
		els, err := renameBlockList(s, blk.Else)
		if err != nil {
			return nil, err
		}
		blk.Cond, blk.Then, blk.Else = cond, then, els
		return blk, nil
	case *fast.DoBlock:
		loopVar, err := renameExpr(s, blk.LoopVar)
		if err != nil {
			return nil, err
		}
		start, err := renameExpr(s, blk.Start)
		if err != nil {
			return nil, err
		}
		end, err := renameExpr(s, blk.End)
		if err != nil {
			return nil, err
		}
		var step fast.Expr
		if blk.Step != nil {
			step, err = renameExpr(s, blk.Step)
			if err != nil {
				return nil, err
			}
		}
		body, err := renameBlockList(s, blk.Body)
		if err != nil {
			return nil, err
		}
		blk.LoopVar = loopVar.(*fast.Var)
		blk.Start, blk.End, blk.Step = start, end, step
		blk.Body = body
		return blk, nil
	case *fast.DoWhileBlock:
		cond, err := renameExpr(s, blk.Cond)
		if err != nil {
			return nil, err
		}
		body, err := renameBlockList(s, blk.Body)
		if err != nil {
			return nil, err
		}
		blk.Cond, blk.Body = cond, body
		return blk, nil
	default:
		return b, nil
	}
}

// renameExpr rewrites every variable reference nested anywhere inside e.
// Expressions introduce no sub-scope of their own, so every *fast.Var
// within e resolves against the same, currently innermost environment.
func renameExpr(s *State, e fast.Expr) (fast.Expr, error) {
	n, err := fastutil.TransformBiM[*fast.Var](func(v *fast.Var) (*fast.Var, error) {
		return renameVarRef(s, v), nil
	}, e)
	if err != nil {
		return nil, err
	}
	return n.(fast.Expr), nil
}

func renameExprs(s *State, exprs []fast.Expr) ([]fast.Expr, error) {
	out := make([]fast.Expr, len(exprs))
	for i, e := range exprs {
		re, err := renameExpr(s, e)
		if err != nil {
			return nil, err
		}
		out[i] = re
	}
	return out, nil
}

// renameVarRef implements the §4.3.1 rewrite rule: a name already
// beginning with "_" is treated as already renamed, otherwise it is looked
// up in the innermost environment only.
func renameVarRef(s *State, v *fast.Var) *fast.Var {
	if strings.HasPrefix(v.SourceName, "_") {
		return v
	}
	if uniq, ok := s.topEnv()[v.SourceName]; ok {
		v.Ann.HasUniqueName = true
		v.Ann.UniqueName = uniq
	}
	return v
}
