// Copyright 2015 Auburn University. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fast

// Declarator binds one name in a declaration statement. Bounds is nil for
// a scalar declarator and holds one expression per dimension for an array
// declarator.
type Declarator struct {
	Name   Name
	Bounds []Expr
}

// Block is an AST-block: a statement-level unit carrying a unique integer
// label once the basic-block pass has run over it.
type Block interface {
	Node
	annotated
}

// DeclBlock declares one or more local variables or arrays. Declarations
// never use names; see BlockVarUses.
type DeclBlock struct {
	Declarators []Declarator
	Ann         Analysis
}

// AssignBlock is a simple assignment statement, Lhs = Rhs.
type AssignBlock struct {
	Lhs Expr
	Rhs Expr
	Ann Analysis
}

// CallBlock is a subroutine call statement. Call-by-reference actual
// arguments that are themselves l-expressions are definitions; see
// semantics.LhsExprs.
type CallBlock struct {
	Callee Name
	Args   []Expr
	Ann    Analysis
}

// IfBlock is a conditional with its Then/Else arms inlined as nested
// block lists (no separate basic-block boundary is implied by this type
// alone; see package bblock).
type IfBlock struct {
	Cond Expr
	Then []Block
	Else []Block
	Ann  Analysis
}

// DoBlock is a counted do-loop: do LoopVar = Start, End[, Step].
type DoBlock struct {
	LoopVar *Var
	Start   Expr
	End     Expr
	Step    Expr // nil if unspecified (defaults to 1)
	Body    []Block
	Ann     Analysis
}

// DoWhileBlock is a condition-guarded loop: do while (Cond).
type DoWhileBlock struct {
	Cond Expr
	Body []Block
	Ann  Analysis
}

func (b *DeclBlock) Annotation() *Analysis    { return &b.Ann }
func (b *DeclBlock) setAnnotation(a Analysis) { b.Ann = a }
func (b *DeclBlock) Children() []Node {
	var children []Node
	for _, d := range b.Declarators {
		children = append(children, exprsToNodes(d.Bounds)...)
	}
	return children
}
func (b *DeclBlock) WithChildren(c []Node) Node {
	i := 0
	for di, d := range b.Declarators {
		n := len(d.Bounds)
		bounds := make([]Expr, n)
		for k := 0; k < n; k++ {
			bounds[k] = c[i].(Expr)
			i++
		}
		b.Declarators[di].Bounds = bounds
	}
	return b
}

func (b *AssignBlock) Annotation() *Analysis    { return &b.Ann }
func (b *AssignBlock) setAnnotation(a Analysis) { b.Ann = a }
func (b *AssignBlock) Children() []Node         { return []Node{b.Lhs, b.Rhs} }
func (b *AssignBlock) WithChildren(c []Node) Node {
	b.Lhs = c[0].(Expr)
	b.Rhs = c[1].(Expr)
	return b
}

func (b *CallBlock) Annotation() *Analysis    { return &b.Ann }
func (b *CallBlock) setAnnotation(a Analysis) { b.Ann = a }
func (b *CallBlock) Children() []Node         { return exprsToNodes(b.Args) }
func (b *CallBlock) WithChildren(c []Node) Node {
	b.Args = nodesToExprs(c)
	return b
}

func (b *IfBlock) Annotation() *Analysis    { return &b.Ann }
func (b *IfBlock) setAnnotation(a Analysis) { b.Ann = a }
func (b *IfBlock) Children() []Node {
	children := []Node{b.Cond}
	children = append(children, blocksToNodes(b.Then)...)
	children = append(children, blocksToNodes(b.Else)...)
	return children
}
func (b *IfBlock) WithChildren(c []Node) Node {
	b.Cond = c[0].(Expr)
	rest := c[1:]
	b.Then = nodesToBlocks(rest[:len(b.Then)])
	b.Else = nodesToBlocks(rest[len(b.Then):])
	return b
}

func (b *DoBlock) Annotation() *Analysis    { return &b.Ann }
func (b *DoBlock) setAnnotation(a Analysis) { b.Ann = a }
func (b *DoBlock) Children() []Node {
	children := []Node{b.LoopVar, b.Start, b.End}
	if b.Step != nil {
		children = append(children, b.Step)
	}
	children = append(children, blocksToNodes(b.Body)...)
	return children
}
func (b *DoBlock) WithChildren(c []Node) Node {
	b.LoopVar = c[0].(*Var)
	b.Start = c[1].(Expr)
	b.End = c[2].(Expr)
	rest := c[3:]
	if b.Step != nil {
		b.Step = rest[0].(Expr)
		rest = rest[1:]
	}
	b.Body = nodesToBlocks(rest)
	return b
}

func (b *DoWhileBlock) Annotation() *Analysis    { return &b.Ann }
func (b *DoWhileBlock) setAnnotation(a Analysis) { b.Ann = a }
func (b *DoWhileBlock) Children() []Node {
	children := []Node{b.Cond}
	children = append(children, blocksToNodes(b.Body)...)
	return children
}
func (b *DoWhileBlock) WithChildren(c []Node) Node {
	b.Cond = c[0].(Expr)
	b.Body = nodesToBlocks(c[1:])
	return b
}
