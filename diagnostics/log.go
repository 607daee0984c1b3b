// Copyright 2015 Auburn University. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package diagnostics collects informational messages, warnings, and
// errors produced while renaming or analyzing a program file, so they can
// be presented to a caller before (or instead of) the program file's
// results.
package diagnostics

import (
	"bytes"
	"fmt"

	"github.com/fortran-analysis/fcore/fast"
)

// Severity indicates whether an Entry describes an informational
// message, a warning, or an error.
type Severity int

const (
	Info    Severity = iota // informational message
	Warning                 // something worth flagging, not necessarily wrong
	Error                   // the requested analysis is invalid or could not run
)

func (s Severity) String() string {
	switch s {
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Entry is a single logged message. Unit, when non-empty, names the
// program unit the message is about.
type Entry struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	Unit     fast.Name `json:"unit,omitempty"`
}

func (e *Entry) String() string {
	var buf bytes.Buffer
	switch e.Severity {
	case Warning:
		buf.WriteString("Warning: ")
	case Error:
		buf.WriteString("Error: ")
	}
	if e.Unit != "" {
		buf.WriteString(e.Unit)
		buf.WriteString(": ")
	}
	buf.WriteString(e.Message)
	return buf.String()
}

// Log accumulates Entries produced while processing a program file.
type Log struct {
	Entries []*Entry `json:"entries"`
}

// NewLog returns a new Log with no entries.
func NewLog() *Log { return &Log{} }

// Infof adds an informational entry.
func (l *Log) Infof(format string, v ...interface{}) { l.log("", Info, format, v...) }

// Warnf adds a warning entry.
func (l *Log) Warnf(format string, v ...interface{}) { l.log("", Warning, format, v...) }

// Errorf adds an error entry.
func (l *Log) Errorf(format string, v ...interface{}) { l.log("", Error, format, v...) }

// InfofUnit, WarnfUnit, and ErrorfUnit are the Unit-associated forms of
// Infof, Warnf, and Errorf, for messages about a specific program unit.
func (l *Log) InfofUnit(unit fast.Name, format string, v ...interface{}) {
	l.log(unit, Info, format, v...)
}
func (l *Log) WarnfUnit(unit fast.Name, format string, v ...interface{}) {
	l.log(unit, Warning, format, v...)
}
func (l *Log) ErrorfUnit(unit fast.Name, format string, v ...interface{}) {
	l.log(unit, Error, format, v...)
}

func (l *Log) log(unit fast.Name, severity Severity, format string, v ...interface{}) {
	l.Entries = append(l.Entries, &Entry{
		Severity: severity,
		Message:  fmt.Sprintf(format, v...),
		Unit:     unit,
	})
}

// ContainsErrors reports whether l holds at least one Error entry.
func (l *Log) ContainsErrors() bool {
	for _, e := range l.Entries {
		if e.Severity == Error {
			return true
		}
	}
	return false
}

func (l *Log) String() string {
	var buf bytes.Buffer
	for _, e := range l.Entries {
		buf.WriteString(e.String())
		buf.WriteString("\n")
	}
	return buf.String()
}
