// Copyright 2015 Auburn University. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// fcore-report is a demonstration command line tool: it reads a
// JSON-encoded program file, runs it through renaming and the dataflow
// analyses, and prints a report. It exists to give the reporting facade
// a caller; it is not a Fortran front end.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/fortran-analysis/fcore/fast"
	"github.com/fortran-analysis/fcore/rename"
	"github.com/fortran-analysis/fcore/report"
)

var (
	inFlag = flag.String("i", "",
		"Path to a JSON-encoded program file fixture (required)")

	outFlag = flag.String("o", "",
		"Write the report to this file instead of stdout")
)

func usage() {
	fmt.Fprintf(os.Stderr, `Usage of %s:
  %s -i <fixture.json> [-o <report.txt>]

`, os.Args[0], os.Args[0])
	flag.PrintDefaults()
	os.Exit(1)
}

func main() {
	flag.Parse()

	if *inFlag == "" {
		usage()
	}

	data, err := os.ReadFile(*inFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	var pf fast.ProgramFile
	if err := json.Unmarshal(data, &pf); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	pf = fast.InitAnalysis(pf)

	pf, renameState, err := rename.Rename(pf)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	out := os.Stdout
	if *outFlag != "" {
		f, err := os.Create(*outFlag)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		defer f.Close()
		out = f
	}

	if renameState.Log != nil && len(renameState.Log.Entries) > 0 {
		fmt.Fprint(out, renameState.Log.String())
	}

	if err := report.ShowDataFlow(pf, out); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
}
