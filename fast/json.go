// Copyright 2015 Auburn University. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fast

import (
	"encoding/json"
	"fmt"
)

// This file gives ProgramFile a JSON encoding, tagged by a "kind" field on
// every polymorphic node (program unit, AST-block, expression), so a
// fixture can be read back into the sum types Children/WithChildren
// otherwise navigate structurally. It round-trips freshly built ASTs
// only: Ann is never serialized, since a JSON fixture is always meant to
// be run through InitAnalysis from scratch.

type jsonExpr struct {
	Kind string `json:"kind"`

	Name string `json:"name,omitempty"` // Var

	Base    *jsonExpr   `json:"base,omitempty"` // Subscript
	Indices []*jsonExpr `json:"indices,omitempty"`

	Op string    `json:"op,omitempty"` // BinOp
	X  *jsonExpr `json:"x,omitempty"`
	Y  *jsonExpr `json:"y,omitempty"`

	Callee string      `json:"callee,omitempty"` // FuncCall
	Args   []*jsonExpr `json:"args,omitempty"`

	IntValue  *int64   `json:"intValue,omitempty"`  // IntLit
	RealValue *float64 `json:"realValue,omitempty"` // RealLit
}

func exprToJSON(e Expr) *jsonExpr {
	if e == nil {
		return nil
	}
	switch v := e.(type) {
	case *Var:
		return &jsonExpr{Kind: "Var", Name: v.SourceName}
	case *Subscript:
		indices := make([]*jsonExpr, len(v.Indices))
		for i, idx := range v.Indices {
			indices[i] = exprToJSON(idx)
		}
		return &jsonExpr{Kind: "Subscript", Base: exprToJSON(v.Base), Indices: indices}
	case *BinOp:
		return &jsonExpr{Kind: "BinOp", Op: v.Op, X: exprToJSON(v.X), Y: exprToJSON(v.Y)}
	case *FuncCall:
		args := make([]*jsonExpr, len(v.Args))
		for i, a := range v.Args {
			args[i] = exprToJSON(a)
		}
		return &jsonExpr{Kind: "FuncCall", Callee: v.Callee, Args: args}
	case *IntLit:
		val := v.Value
		return &jsonExpr{Kind: "IntLit", IntValue: &val}
	case *RealLit:
		val := v.Value
		return &jsonExpr{Kind: "RealLit", RealValue: &val}
	default:
		panic(fmt.Sprintf("fast: exprToJSON: unhandled Expr type %T", e))
	}
}

func exprFromJSON(j *jsonExpr) (Expr, error) {
	if j == nil {
		return nil, nil
	}
	switch j.Kind {
	case "Var":
		return &Var{SourceName: j.Name}, nil
	case "Subscript":
		base, err := exprFromJSON(j.Base)
		if err != nil {
			return nil, err
		}
		baseVar, ok := base.(*Var)
		if !ok {
			return nil, fmt.Errorf("fast: Subscript base must be a Var, got %T", base)
		}
		indices, err := exprsFromJSON(j.Indices)
		if err != nil {
			return nil, err
		}
		return &Subscript{Base: baseVar, Indices: indices}, nil
	case "BinOp":
		x, err := exprFromJSON(j.X)
		if err != nil {
			return nil, err
		}
		y, err := exprFromJSON(j.Y)
		if err != nil {
			return nil, err
		}
		return &BinOp{Op: j.Op, X: x, Y: y}, nil
	case "FuncCall":
		args, err := exprsFromJSON(j.Args)
		if err != nil {
			return nil, err
		}
		return &FuncCall{Callee: j.Callee, Args: args}, nil
	case "IntLit":
		if j.IntValue == nil {
			return nil, fmt.Errorf("fast: IntLit missing intValue")
		}
		return &IntLit{Value: *j.IntValue}, nil
	case "RealLit":
		if j.RealValue == nil {
			return nil, fmt.Errorf("fast: RealLit missing realValue")
		}
		return &RealLit{Value: *j.RealValue}, nil
	default:
		return nil, fmt.Errorf("fast: unknown expression kind %q", j.Kind)
	}
}

type jsonDeclarator struct {
	Name   string      `json:"name"`
	Bounds []*jsonExpr `json:"bounds,omitempty"`
}

type jsonBlock struct {
	Kind string `json:"kind"`

	Declarators []jsonDeclarator `json:"declarators,omitempty"` // DeclBlock

	Lhs *jsonExpr `json:"lhs,omitempty"` // AssignBlock
	Rhs *jsonExpr `json:"rhs,omitempty"`

	Callee string      `json:"callee,omitempty"` // CallBlock
	Args   []*jsonExpr `json:"args,omitempty"`

	Cond *jsonExpr    `json:"cond,omitempty"` // IfBlock / DoWhileBlock
	Then []*jsonBlock `json:"then,omitempty"`
	Else []*jsonBlock `json:"else,omitempty"`

	LoopVar *jsonExpr    `json:"loopVar,omitempty"` // DoBlock
	Start   *jsonExpr    `json:"start,omitempty"`
	End     *jsonExpr    `json:"end,omitempty"`
	Step    *jsonExpr    `json:"step,omitempty"`
	Body    []*jsonBlock `json:"body,omitempty"` // DoBlock / DoWhileBlock
}

func blockToJSON(b Block) *jsonBlock {
	switch v := b.(type) {
	case *DeclBlock:
		decls := make([]jsonDeclarator, len(v.Declarators))
		for i, d := range v.Declarators {
			bounds := make([]*jsonExpr, len(d.Bounds))
			for j, bound := range d.Bounds {
				bounds[j] = exprToJSON(bound)
			}
			decls[i] = jsonDeclarator{Name: d.Name, Bounds: bounds}
		}
		return &jsonBlock{Kind: "DeclBlock", Declarators: decls}
	case *AssignBlock:
		return &jsonBlock{Kind: "AssignBlock", Lhs: exprToJSON(v.Lhs), Rhs: exprToJSON(v.Rhs)}
	case *CallBlock:
		args := make([]*jsonExpr, len(v.Args))
		for i, a := range v.Args {
			args[i] = exprToJSON(a)
		}
		return &jsonBlock{Kind: "CallBlock", Callee: v.Callee, Args: args}
	case *IfBlock:
		return &jsonBlock{
			Kind: "IfBlock",
			Cond: exprToJSON(v.Cond),
			Then: blocksToJSON(v.Then),
			Else: blocksToJSON(v.Else),
		}
	case *DoBlock:
		return &jsonBlock{
			Kind:    "DoBlock",
			LoopVar: exprToJSON(v.LoopVar),
			Start:   exprToJSON(v.Start),
			End:     exprToJSON(v.End),
			Step:    exprToJSON(v.Step),
			Body:    blocksToJSON(v.Body),
		}
	case *DoWhileBlock:
		return &jsonBlock{Kind: "DoWhileBlock", Cond: exprToJSON(v.Cond), Body: blocksToJSON(v.Body)}
	default:
		panic(fmt.Sprintf("fast: blockToJSON: unhandled Block type %T", b))
	}
}

func blocksToJSON(blocks []Block) []*jsonBlock {
	if len(blocks) == 0 {
		return nil
	}
	out := make([]*jsonBlock, len(blocks))
	for i, b := range blocks {
		out[i] = blockToJSON(b)
	}
	return out
}

func blockFromJSON(j *jsonBlock) (Block, error) {
	switch j.Kind {
	case "DeclBlock":
		decls := make([]Declarator, len(j.Declarators))
		for i, d := range j.Declarators {
			bounds, err := exprsFromJSON(d.Bounds)
			if err != nil {
				return nil, err
			}
			decls[i] = Declarator{Name: d.Name, Bounds: bounds}
		}
		return &DeclBlock{Declarators: decls}, nil
	case "AssignBlock":
		lhs, err := exprFromJSON(j.Lhs)
		if err != nil {
			return nil, err
		}
		rhs, err := exprFromJSON(j.Rhs)
		if err != nil {
			return nil, err
		}
		return &AssignBlock{Lhs: lhs, Rhs: rhs}, nil
	case "CallBlock":
		args, err := exprsFromJSON(j.Args)
		if err != nil {
			return nil, err
		}
		return &CallBlock{Callee: j.Callee, Args: args}, nil
	case "IfBlock":
		cond, err := exprFromJSON(j.Cond)
		if err != nil {
			return nil, err
		}
		then, err := blocksFromJSON(j.Then)
		if err != nil {
			return nil, err
		}
		els, err := blocksFromJSON(j.Else)
		if err != nil {
			return nil, err
		}
		return &IfBlock{Cond: cond, Then: then, Else: els}, nil
	case "DoBlock":
		loopVar, err := exprFromJSON(j.LoopVar)
		if err != nil {
			return nil, err
		}
		lv, ok := loopVar.(*Var)
		if !ok {
			return nil, fmt.Errorf("fast: DoBlock loopVar must be a Var, got %T", loopVar)
		}
		start, err := exprFromJSON(j.Start)
		if err != nil {
			return nil, err
		}
		end, err := exprFromJSON(j.End)
		if err != nil {
			return nil, err
		}
		step, err := exprFromJSON(j.Step)
		if err != nil {
			return nil, err
		}
		body, err := blocksFromJSON(j.Body)
		if err != nil {
			return nil, err
		}
		return &DoBlock{LoopVar: lv, Start: start, End: end, Step: step, Body: body}, nil
	case "DoWhileBlock":
		cond, err := exprFromJSON(j.Cond)
		if err != nil {
			return nil, err
		}
		body, err := blocksFromJSON(j.Body)
		if err != nil {
			return nil, err
		}
		return &DoWhileBlock{Cond: cond, Body: body}, nil
	default:
		return nil, fmt.Errorf("fast: unknown block kind %q", j.Kind)
	}
}

func blocksFromJSON(js []*jsonBlock) ([]Block, error) {
	if len(js) == 0 {
		return nil, nil
	}
	out := make([]Block, len(js))
	for i, j := range js {
		b, err := blockFromJSON(j)
		if err != nil {
			return nil, err
		}
		out[i] = b
	}
	return out, nil
}

func exprsFromJSON(js []*jsonExpr) ([]Expr, error) {
	if len(js) == 0 {
		return nil, nil
	}
	out := make([]Expr, len(js))
	for i, j := range js {
		e, err := exprFromJSON(j)
		if err != nil {
			return nil, err
		}
		out[i] = e
	}
	return out, nil
}

type jsonUnit struct {
	Kind   string       `json:"kind"`
	Name   string       `json:"name,omitempty"`
	Params []string     `json:"params,omitempty"`
	Stmts  []*jsonBlock `json:"stmts,omitempty"`
}

func unitToJSON(u ProgramUnit) *jsonUnit {
	switch v := u.(type) {
	case *MainProgram:
		return &jsonUnit{Kind: "MainProgram", Stmts: blocksToJSON(v.Stmts)}
	case *Function:
		return &jsonUnit{Kind: "Function", Name: v.NameV.Text, Params: v.ParamNames, Stmts: blocksToJSON(v.Stmts)}
	case *Subroutine:
		return &jsonUnit{Kind: "Subroutine", Name: v.NameV.Text, Params: v.ParamNames, Stmts: blocksToJSON(v.Stmts)}
	case *Module:
		return &jsonUnit{Kind: "Module", Name: v.NameV.Text, Stmts: blocksToJSON(v.Stmts)}
	case *BlockData:
		return &jsonUnit{Kind: "BlockData", Name: v.NameV.Text, Stmts: blocksToJSON(v.Stmts)}
	default:
		panic(fmt.Sprintf("fast: unitToJSON: unhandled ProgramUnit type %T", u))
	}
}

func unitFromJSON(j *jsonUnit) (ProgramUnit, error) {
	stmts, err := blocksFromJSON(j.Stmts)
	if err != nil {
		return nil, err
	}
	switch j.Kind {
	case "MainProgram":
		return &MainProgram{Stmts: stmts}, nil
	case "Function":
		return &Function{NameV: Named(j.Name), ParamNames: j.Params, Stmts: stmts}, nil
	case "Subroutine":
		return &Subroutine{NameV: Named(j.Name), ParamNames: j.Params, Stmts: stmts}, nil
	case "Module":
		return &Module{NameV: Named(j.Name), Stmts: stmts}, nil
	case "BlockData":
		return &BlockData{NameV: Named(j.Name), Stmts: stmts}, nil
	default:
		return nil, fmt.Errorf("fast: unknown program unit kind %q", j.Kind)
	}
}

type jsonProgramFile struct {
	Units []*jsonUnit `json:"units"`
}

// MarshalJSON encodes pf as a sequence of kind-tagged program units.
func (pf ProgramFile) MarshalJSON() ([]byte, error) {
	units := make([]*jsonUnit, len(pf.Units))
	for i, u := range pf.Units {
		units[i] = unitToJSON(u)
	}
	return json.Marshal(jsonProgramFile{Units: units})
}

// UnmarshalJSON decodes a kind-tagged program file, the inverse of
// MarshalJSON.
func (pf *ProgramFile) UnmarshalJSON(data []byte) error {
	var wire jsonProgramFile
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	units := make([]ProgramUnit, len(wire.Units))
	for i, j := range wire.Units {
		u, err := unitFromJSON(j)
		if err != nil {
			return err
		}
		units[i] = u
	}
	pf.Units = units
	return nil
}
