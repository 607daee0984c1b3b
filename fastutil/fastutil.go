// Copyright 2015 Auburn University. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fastutil provides generic structural traversal over the fast
// AST: gathering every subterm of a chosen type nested inside a tree, and
// rewriting subterms of a chosen type either one level at a time or
// bottom-up to a fixed point. These three combinators are what the
// renamer and the semantic helper queries are built from, so that neither
// has to hand-roll a type switch over every fast.Node variant at each call
// site — the same shape of walk godoctor's own analysis/dataflow package
// repeats by hand in defs, uses, and extractExprIdents.
package fastutil

import "github.com/fortran-analysis/fcore/fast"

// UniverseBi returns every subterm of type T nested to any depth within x,
// in pre-order (parent before child, left before right). If x itself has
// type T, it is included first.
func UniverseBi[T fast.Node](x fast.Node) []T {
	var out []T
	if t, ok := x.(T); ok {
		out = append(out, t)
	}
	for _, c := range x.Children() {
		out = append(out, UniverseBi[T](c)...)
	}
	return out
}

// DescendBiM rewrites each immediate subterm of x that has type T by
// applying f, top-down, one level. Subterms not of type T, and subterms
// nested more than one level below x, are left untouched by this call
// (callers recurse explicitly when they want scope state to change around
// a particular level, which is exactly what the renamer does).
func DescendBiM[T fast.Node](f func(T) (T, error), x fast.Node) (fast.Node, error) {
	children := x.Children()
	newChildren := make([]fast.Node, len(children))
	for i, c := range children {
		if t, ok := c.(T); ok {
			nt, err := f(t)
			if err != nil {
				return nil, err
			}
			newChildren[i] = fast.Node(nt)
		} else {
			newChildren[i] = c
		}
	}
	return x.WithChildren(newChildren), nil
}

// TransformBiM rewrites every subterm of type T within x, bottom-up: each
// node's children are transformed first, then f is applied to the node
// itself if it has type T. Every node is visited exactly once.
func TransformBiM[T fast.Node](f func(T) (T, error), x fast.Node) (fast.Node, error) {
	children := x.Children()
	newChildren := make([]fast.Node, len(children))
	for i, c := range children {
		nc, err := TransformBiM[T](f, c)
		if err != nil {
			return nil, err
		}
		newChildren[i] = nc
	}
	y := x.WithChildren(newChildren)
	if t, ok := y.(T); ok {
		nt, err := f(t)
		if err != nil {
			return nil, err
		}
		return fast.Node(nt), nil
	}
	return y, nil
}
