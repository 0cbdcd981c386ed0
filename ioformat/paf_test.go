// Copyright ©2024 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ioformat

import (
	"strings"
	"testing"

	"github.com/biogo/weave/graph"
)

func TestPAFScannerParsesS1Record(t *testing.T) {
	const line = "R1\t1000\t500\t1000\t+\tR2\t1000\t0\t500\t490\t500\t60\n"
	sc := NewPAFScanner(strings.NewReader(line), nil)
	if !sc.Next() {
		t.Fatalf("expected one record, got none (err=%v)", sc.Err())
	}
	a := sc.Alignment()
	if a.QueryName != "R1" || a.TargetName != "R2" {
		t.Fatalf("unexpected names: %+v", a)
	}
	if a.QueryStart != 500 || a.QueryEnd != 1000 || a.TargetStart != 0 || a.TargetEnd != 500 {
		t.Fatalf("unexpected coordinates: %+v", a)
	}
	if a.Strand != graph.Plus {
		t.Fatalf("expected plus strand, got %v", a.Strand)
	}
	if a.Matches != 490 || a.BlockLen != 500 || a.MapQ != 60 {
		t.Fatalf("unexpected tail fields: %+v", a)
	}
	if sc.Next() {
		t.Fatalf("expected no further records")
	}
}

func TestPAFScannerSkipsMalformedAndCommentLines(t *testing.T) {
	const input = "# comment\n\nshort\tline\nR1\t1000\t500\t1000\t+\tR2\t1000\t0\t500\t490\t500\t60\n"
	var warnings int
	sc := NewPAFScanner(strings.NewReader(input), func(string, ...interface{}) { warnings++ })

	if !sc.Next() {
		t.Fatalf("expected to find the one well-formed record")
	}
	if warnings == 0 {
		t.Fatalf("expected a warning for the malformed short line")
	}
	if sc.Next() {
		t.Fatalf("expected exactly one record total")
	}
}
