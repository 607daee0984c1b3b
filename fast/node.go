// Copyright 2015 Auburn University. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fast defines the in-memory AST that the core analyses consume:
// program files, program units, AST-blocks, expressions, and the Analysis
// annotation every node carries. No lexer or parser lives here; fast only
// describes the shape a parser would hand to the renamer and dataflow
// packages.
package fast

// Node is implemented by every AST type that participates in generic
// structural traversal (package fastutil).
type Node interface {
	// Children returns this node's immediate children, left to right.
	// A leaf node returns nil.
	Children() []Node

	// WithChildren returns this node with its immediate children replaced
	// by newChildren, which must have the same length and order as
	// Children(). Implementations mutate and return the receiver.
	WithChildren(newChildren []Node) Node
}
