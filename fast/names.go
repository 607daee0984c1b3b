// Copyright 2015 Auburn University. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fast

import "fmt"

// Name is a source-level identifier spelling.
type Name = string

// UniqueName is a Name guaranteed injective across a whole program file
// once Rename has run over it.
type UniqueName = string

// ProgramUnitKind distinguishes the two shapes a ProgramUnitName can take.
type ProgramUnitKind int

const (
	// NamedUnit is a program unit introduced with an explicit source name
	// (function, subroutine, module, block-data).
	NamedUnit ProgramUnitKind = iota
	// MainProgramUnit is the distinguished, unnamed main program.
	MainProgramUnit
)

// ProgramUnitName is either Named("foo") or Main(), the two forms a
// program unit header can take.
type ProgramUnitName struct {
	Kind Kind
	Text string // meaningful only when Kind == NamedUnit
}

// Kind is an alias kept for readability at call sites (ProgramUnitName.Kind).
type Kind = ProgramUnitKind

// Named returns the ProgramUnitName for a function, subroutine, module, or
// block-data unit declared with the given source name.
func Named(name string) ProgramUnitName {
	return ProgramUnitName{Kind: NamedUnit, Text: name}
}

// Main returns the distinguished ProgramUnitName of an unnamed main
// program.
func Main() ProgramUnitName {
	return ProgramUnitName{Kind: MainProgramUnit}
}

// Munge renders a ProgramUnitName as printable text: a Named name quotes
// its inner string verbatim; Main renders as the literal text "main".
func (n ProgramUnitName) Munge() string {
	if n.Kind == MainProgramUnit {
		return "main"
	}
	return n.Text
}

func (n ProgramUnitName) String() string { return n.Munge() }

// VarName returns e's unique name if one has been attached by Rename,
// otherwise its source name. It panics if e is not a variable reference;
// callers must establish that e is a *Var (or a Subscript's base) before
// calling it, matching the renamer's own invariant that VarName is never
// applied to a non-variable expression.
func VarName(e Expr) string {
	v, ok := e.(*Var)
	if !ok {
		panic(fmt.Sprintf("fast: VarName called on non-variable expression %T", e))
	}
	if v.Ann.HasUniqueName {
		return v.Ann.UniqueName
	}
	return v.SourceName
}

// GenVar synthesizes a variable expression whose source name and unique
// name are both n. It is used to manufacture intermediate code (e.g. a
// temporary introduced by a later pass) that must already look renamed.
func GenVar(prev any, n Name) *Var {
	return &Var{
		SourceName: n,
		Ann: Analysis{
			Prev:          prev,
			HasUniqueName: true,
			UniqueName:    n,
		},
	}
}

// PUName returns pu's unique name if Rename has run over it, otherwise its
// source name rendered via Munge.
func PUName(pu ProgramUnit) string {
	ann := pu.Annotation()
	if ann.HasUniqueName {
		return ann.UniqueName
	}
	return pu.UnitName().Munge()
}
