// Copyright 2015 Auburn University. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataflow

import (
	"github.com/fortran-analysis/fcore/fast"
	"github.com/fortran-analysis/fcore/fastutil"
	"github.com/fortran-analysis/fcore/semantics"
)

// CallMap returns, for every program unit in pf, the set of callee names
// it calls (subroutine-call statements and function-call expressions,
// uniformly). A unit's entry is the union over every call site it
// contains, however many times a callee is invoked.
func CallMap(pf fast.ProgramFile) map[fast.Name]semantics.NameSet {
	calls := map[fast.Name]semantics.NameSet{}
	for _, u := range pf.Units {
		caller := fast.PUName(u)
		callees := calls[caller]
		if callees == nil {
			callees = semantics.NameSet{}
		}
		for _, c := range fastutil.UniverseBi[*fast.CallBlock](u) {
			callees.Add(c.Callee)
		}
		for _, f := range fastutil.UniverseBi[*fast.FuncCall](u) {
			callees.Add(f.Callee)
		}
		calls[caller] = callees
	}
	return calls
}
