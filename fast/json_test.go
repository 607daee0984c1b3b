// Copyright 2015 Auburn University. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fast

import (
	"encoding/json"
	"reflect"
	"testing"
)

func samplePF() ProgramFile {
	return ProgramFile{Units: []ProgramUnit{
		&Subroutine{
			NameV:      Named("foo"),
			ParamNames: []Name{"n"},
			Stmts: []Block{
				&DeclBlock{Declarators: []Declarator{
					{Name: "a", Bounds: []Expr{&Var{SourceName: "n"}}},
				}},
				&AssignBlock{
					Lhs: &Subscript{Base: &Var{SourceName: "a"}, Indices: []Expr{&IntLit{Value: 1}}},
					Rhs: &BinOp{Op: "+", X: &Var{SourceName: "n"}, Y: &RealLit{Value: 1.5}},
				},
				&IfBlock{
					Cond: &Var{SourceName: "n"},
					Then: []Block{&CallBlock{Callee: "bar", Args: []Expr{&Var{SourceName: "a"}}}},
				},
				&DoBlock{
					LoopVar: &Var{SourceName: "i"},
					Start:   &IntLit{Value: 1},
					End:     &Var{SourceName: "n"},
					Body:    []Block{&AssignBlock{Lhs: &Var{SourceName: "i"}, Rhs: &FuncCall{Callee: "inc", Args: []Expr{&Var{SourceName: "i"}}}}},
				},
				&DoWhileBlock{
					Cond: &Var{SourceName: "n"},
					Body: []Block{&AssignBlock{Lhs: &Var{SourceName: "n"}, Rhs: &IntLit{Value: 0}}},
				},
			},
		},
	}}
}

func TestProgramFileJSONRoundTrip(t *testing.T) {
	pf := samplePF()

	data, err := json.Marshal(pf)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var got ProgramFile
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if !reflect.DeepEqual(pf, got) {
		t.Errorf("round trip mismatch:\nwant %#v\ngot  %#v", pf, got)
	}
}

func TestUnmarshalRejectsUnknownKind(t *testing.T) {
	var pf ProgramFile
	err := json.Unmarshal([]byte(`{"units":[{"kind":"Bogus"}]}`), &pf)
	if err == nil {
		t.Fatalf("expected an error for an unknown unit kind")
	}
}
