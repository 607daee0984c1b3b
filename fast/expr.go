// Copyright 2015 Auburn University. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fast

// Expr is an expression node.
type Expr interface {
	Node
	annotated
}

// Var is a reference to a scalar variable, array name, function name, or
// subroutine name.
type Var struct {
	SourceName Name
	Ann        Analysis
}

// Subscript is an array element access, Base(Indices...).
type Subscript struct {
	Base    *Var
	Indices []Expr
	Ann     Analysis
}

// BinOp is a binary operator application.
type BinOp struct {
	Op  string
	X   Expr
	Y   Expr
	Ann Analysis
}

// FuncCall is a function-call expression (as opposed to CallBlock, which
// is a subroutine-call statement).
type FuncCall struct {
	Callee Name
	Args   []Expr
	Ann    Analysis
}

// IntLit is an integer literal.
type IntLit struct {
	Value int64
	Ann   Analysis
}

// RealLit is a floating-point literal.
type RealLit struct {
	Value float64
	Ann   Analysis
}

func (e *Var) Annotation() *Analysis    { return &e.Ann }
func (e *Var) setAnnotation(a Analysis) { e.Ann = a }
func (e *Var) Children() []Node         { return nil }
func (e *Var) WithChildren([]Node) Node { return e }

func (e *Subscript) Annotation() *Analysis    { return &e.Ann }
func (e *Subscript) setAnnotation(a Analysis) { e.Ann = a }
func (e *Subscript) Children() []Node {
	children := []Node{e.Base}
	children = append(children, exprsToNodes(e.Indices)...)
	return children
}
func (e *Subscript) WithChildren(c []Node) Node {
	e.Base = c[0].(*Var)
	e.Indices = nodesToExprs(c[1:])
	return e
}

func (e *BinOp) Annotation() *Analysis    { return &e.Ann }
func (e *BinOp) setAnnotation(a Analysis) { e.Ann = a }
func (e *BinOp) Children() []Node         { return []Node{e.X, e.Y} }
func (e *BinOp) WithChildren(c []Node) Node {
	e.X = c[0].(Expr)
	e.Y = c[1].(Expr)
	return e
}

func (e *FuncCall) Annotation() *Analysis    { return &e.Ann }
func (e *FuncCall) setAnnotation(a Analysis) { e.Ann = a }
func (e *FuncCall) Children() []Node         { return exprsToNodes(e.Args) }
func (e *FuncCall) WithChildren(c []Node) Node {
	e.Args = nodesToExprs(c)
	return e
}

func (e *IntLit) Annotation() *Analysis     { return &e.Ann }
func (e *IntLit) setAnnotation(a Analysis)  { e.Ann = a }
func (e *IntLit) Children() []Node          { return nil }
func (e *IntLit) WithChildren([]Node) Node  { return e }
func (e *RealLit) Annotation() *Analysis    { return &e.Ann }
func (e *RealLit) setAnnotation(a Analysis) { e.Ann = a }
func (e *RealLit) Children() []Node         { return nil }
func (e *RealLit) WithChildren([]Node) Node { return e }

// IsLExpr reports whether e is a variable reference or a subscript
// access — the two syntactic shapes that can appear in an assignment
// position.
func IsLExpr(e Expr) bool {
	switch e.(type) {
	case *Var, *Subscript:
		return true
	default:
		return false
	}
}

func exprsToNodes(exprs []Expr) []Node {
	nodes := make([]Node, len(exprs))
	for i, e := range exprs {
		nodes[i] = e
	}
	return nodes
}

func nodesToExprs(nodes []Node) []Expr {
	exprs := make([]Expr, len(nodes))
	for i, n := range nodes {
		exprs[i] = n.(Expr)
	}
	return exprs
}
