// Copyright 2015 Auburn University. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fast

// ProgramFile is the root of the AST: an ordered sequence of program
// units as they appear in one source file.
type ProgramFile struct {
	Units []ProgramUnit
	Ann   Analysis
}

func (pf ProgramFile) Children() []Node {
	children := make([]Node, len(pf.Units))
	for i, u := range pf.Units {
		children[i] = u
	}
	return children
}

func (pf ProgramFile) WithChildren(newChildren []Node) Node {
	units := make([]ProgramUnit, len(newChildren))
	for i, c := range newChildren {
		units[i] = c.(ProgramUnit)
	}
	pf.Units = units
	return pf
}

// ProgramUnit is implemented by every top-level Fortran scope: a main
// program, function, subroutine, module, or block-data unit.
type ProgramUnit interface {
	Node
	annotated

	// UnitName returns the unit's source-level name.
	UnitName() ProgramUnitName

	// Params returns the unit's formal parameter names, in declaration
	// order. Empty for MainProgram, Module, and BlockData.
	Params() []Name

	// ResultBinding returns the name that should resolve to the unit's
	// own unique name within its body — the function-result rule of
	// §4.3 step 2c. Empty for everything but Function.
	ResultBinding() Name

	// Body returns the unit's top-level AST-blocks.
	Body() []Block

	// SetBody replaces the unit's top-level AST-blocks.
	SetBody([]Block)
}

// MainProgram is the distinguished, unnamed main program unit.
type MainProgram struct {
	Stmts []Block
	Ann   Analysis
}

// Function is a program unit that returns a value; its own name is bound
// to its unit scope so that an assignment to it inside the body is
// recognized as a write to the unit's return value.
type Function struct {
	NameV      ProgramUnitName
	ParamNames []Name
	Stmts      []Block
	Ann        Analysis
}

// Subroutine is a program unit with no return value.
type Subroutine struct {
	NameV      ProgramUnitName
	ParamNames []Name
	Stmts      []Block
	Ann        Analysis
}

// Module groups declarations and program units under a shared namespace.
type Module struct {
	NameV ProgramUnitName
	Stmts []Block
	Ann   Analysis
}

// BlockData declares initialized common-block storage.
type BlockData struct {
	NameV ProgramUnitName
	Stmts []Block
	Ann   Analysis
}

func (u *MainProgram) UnitName() ProgramUnitName { return Main() }
func (u *MainProgram) Params() []Name            { return nil }
func (u *MainProgram) ResultBinding() Name       { return "" }
func (u *MainProgram) Body() []Block             { return u.Stmts }
func (u *MainProgram) SetBody(b []Block)         { u.Stmts = b }
func (u *MainProgram) Annotation() *Analysis     { return &u.Ann }
func (u *MainProgram) setAnnotation(a Analysis)  { u.Ann = a }
func (u *MainProgram) Children() []Node          { return blocksToNodes(u.Stmts) }
func (u *MainProgram) WithChildren(c []Node) Node {
	u.Stmts = nodesToBlocks(c)
	return u
}

func (u *Function) UnitName() ProgramUnitName { return u.NameV }
func (u *Function) Params() []Name            { return u.ParamNames }
func (u *Function) ResultBinding() Name       { return u.NameV.Munge() }
func (u *Function) Body() []Block             { return u.Stmts }
func (u *Function) SetBody(b []Block)         { u.Stmts = b }
func (u *Function) Annotation() *Analysis     { return &u.Ann }
func (u *Function) setAnnotation(a Analysis)  { u.Ann = a }
func (u *Function) Children() []Node          { return blocksToNodes(u.Stmts) }
func (u *Function) WithChildren(c []Node) Node {
	u.Stmts = nodesToBlocks(c)
	return u
}

func (u *Subroutine) UnitName() ProgramUnitName { return u.NameV }
func (u *Subroutine) Params() []Name            { return u.ParamNames }
func (u *Subroutine) ResultBinding() Name       { return "" }
func (u *Subroutine) Body() []Block             { return u.Stmts }
func (u *Subroutine) SetBody(b []Block)         { u.Stmts = b }
func (u *Subroutine) Annotation() *Analysis     { return &u.Ann }
func (u *Subroutine) setAnnotation(a Analysis)  { u.Ann = a }
func (u *Subroutine) Children() []Node          { return blocksToNodes(u.Stmts) }
func (u *Subroutine) WithChildren(c []Node) Node {
	u.Stmts = nodesToBlocks(c)
	return u
}

func (u *Module) UnitName() ProgramUnitName { return u.NameV }
func (u *Module) Params() []Name            { return nil }
func (u *Module) ResultBinding() Name       { return "" }
func (u *Module) Body() []Block             { return u.Stmts }
func (u *Module) SetBody(b []Block)         { u.Stmts = b }
func (u *Module) Annotation() *Analysis     { return &u.Ann }
func (u *Module) setAnnotation(a Analysis)  { u.Ann = a }
func (u *Module) Children() []Node          { return blocksToNodes(u.Stmts) }
func (u *Module) WithChildren(c []Node) Node {
	u.Stmts = nodesToBlocks(c)
	return u
}

func (u *BlockData) UnitName() ProgramUnitName { return u.NameV }
func (u *BlockData) Params() []Name            { return nil }
func (u *BlockData) ResultBinding() Name       { return "" }
func (u *BlockData) Body() []Block             { return u.Stmts }
func (u *BlockData) SetBody(b []Block)         { u.Stmts = b }
func (u *BlockData) Annotation() *Analysis     { return &u.Ann }
func (u *BlockData) setAnnotation(a Analysis)  { u.Ann = a }
func (u *BlockData) Children() []Node          { return blocksToNodes(u.Stmts) }
func (u *BlockData) WithChildren(c []Node) Node {
	u.Stmts = nodesToBlocks(c)
	return u
}

func blocksToNodes(blocks []Block) []Node {
	nodes := make([]Node, len(blocks))
	for i, b := range blocks {
		nodes[i] = b
	}
	return nodes
}

func nodesToBlocks(nodes []Node) []Block {
	blocks := make([]Block, len(nodes))
	for i, n := range nodes {
		blocks[i] = n.(Block)
	}
	return blocks
}
