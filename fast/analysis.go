// Copyright 2015 Auburn University. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fast

// BaseType classifies the intrinsic type of a declared identifier, when
// known. The core never infers a BaseType; it only carries one forward if
// the parser (or a later pass) attaches one.
type BaseType int

const (
	BaseTypeUnknown BaseType = iota
	BaseTypeInteger
	BaseTypeReal
	BaseTypeDoublePrecision
	BaseTypeComplex
	BaseTypeLogical
	BaseTypeCharacter
)

// ConstructType classifies what kind of entity an identifier names.
type ConstructType int

const (
	ConstructVariable ConstructType = iota
	ConstructArray
	ConstructParameter
	ConstructFunction
	ConstructSubroutine
)

// IDType pairs an optional BaseType with a required ConstructType.
type IDType struct {
	HasBase   bool
	Base      BaseType
	Construct ConstructType
}

// Analysis is the annotation every AST node carries. It layers the
// renamer's and dataflow framework's derived metadata over whatever
// annotation a node already had.
//
// The zero Analysis is the annotation a freshly parsed node starts with:
// no unique name, no basic-block graph, no label, no module environment,
// no identifier classification.
type Analysis struct {
	// Prev holds the node's annotation prior to the most recent call to
	// InitAnalysis. It is opaque to this package: it may itself be an
	// Analysis (when InitAnalysis is called more than once) or any value
	// supplied by an external parser.
	Prev any

	HasUniqueName bool
	UniqueName    UniqueName

	BBlocks *BBGr

	HasInsLabel bool
	InsLabel    int

	ModuleEnv map[Name]UniqueName

	IDType *IDType
}

// clone returns a shallow copy of a, safe to attach to a different node.
func (a Analysis) clone() Analysis {
	b := a
	if a.ModuleEnv != nil {
		b.ModuleEnv = make(map[Name]UniqueName, len(a.ModuleEnv))
		for k, v := range a.ModuleEnv {
			b.ModuleEnv[k] = v
		}
	}
	return b
}

// InitAnalysis returns a copy of pf in which every node's annotation has
// been reset to a fresh Analysis whose Prev field holds the node's
// previous annotation. It is the entry point for any analysis pipeline:
// callers should not inspect UniqueName, BBlocks, InsLabel, ModuleEnv, or
// IDType on a tree that has not been passed through InitAnalysis.
func InitAnalysis(pf ProgramFile) ProgramFile {
	units := make([]ProgramUnit, len(pf.Units))
	for i, u := range pf.Units {
		units[i] = initUnit(u)
	}
	return ProgramFile{Units: units, Ann: Analysis{Prev: pf.Ann.clone()}}
}

func initUnit(pu ProgramUnit) ProgramUnit {
	n := transformAnn(pu, func(ann Analysis) Analysis {
		return Analysis{Prev: ann.clone()}
	})
	return n.(ProgramUnit)
}

// StripAnalysis is the exact inverse of InitAnalysis: every node's
// annotation is replaced by the Analysis value held in its Prev field (or
// the zero Analysis, if Prev does not hold one).
func StripAnalysis(pf ProgramFile) ProgramFile {
	units := make([]ProgramUnit, len(pf.Units))
	for i, u := range pf.Units {
		units[i] = stripUnit(u)
	}
	return ProgramFile{Units: units, Ann: unwrap(pf.Ann)}
}

func stripUnit(pu ProgramUnit) ProgramUnit {
	n := transformAnn(pu, unwrap)
	return n.(ProgramUnit)
}

func unwrap(ann Analysis) Analysis {
	if prev, ok := ann.Prev.(Analysis); ok {
		return prev
	}
	return Analysis{}
}

// transformAnn rewrites every node's annotation in the subtree rooted at n
// (bottom-up, matching TransformBiM's order) by applying f.
func transformAnn(n Node, f func(Analysis) Analysis) Node {
	children := n.Children()
	newChildren := make([]Node, len(children))
	for i, c := range children {
		newChildren[i] = transformAnn(c, f)
	}
	n = n.WithChildren(newChildren)
	if a, ok := n.(annotated); ok {
		a.setAnnotation(f(*a.Annotation()))
	}
	return n
}

// annotated is implemented by every concrete node type; it exposes the
// node's Analysis slot for the generic Init/Strip helpers above.
type annotated interface {
	Annotation() *Analysis
	setAnnotation(Analysis)
}
