// Copyright ©2024 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ioformat

import (
	"bytes"
	"testing"

	"github.com/biogo/weave/graph"
	"github.com/biogo/weave/readset"
	"github.com/biogo/weave/unitig"
)

func singleMemberUnitig(id int, reads *readset.Set, name string, bases string) *unitig.Unitig {
	r := reads.GetOrCreate(name, len(bases))
	r.Sequence = readset.NewDNA(name, []byte(bases))
	return &unitig.Unitig{
		ID:      id,
		Members: []unitig.Member{{Node: graph.NodeID{Read: r.ID, Strand: graph.Plus}}},
	}
}

func TestSummarizeComputesBasicStats(t *testing.T) {
	reads := readset.NewSet()
	units := []*unitig.Unitig{
		singleMemberUnitig(0, reads, "a", "AAAAAAAAAA"),  // len 10
		singleMemberUnitig(1, reads, "b", "CCCCCCCCCCCCCCCCCCCC"), // len 20
		singleMemberUnitig(2, reads, "c", "GGGGG"), // len 5
	}

	s, err := Summarize(units, reads)
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if s.NumUnitigs != 3 || s.TotalLen != 35 || s.Min != 5 || s.Max != 20 {
		t.Fatalf("unexpected summary: %+v", s)
	}
}

func TestWriteUnitigFASTAFormatsHeader(t *testing.T) {
	reads := readset.NewSet()
	units := []*unitig.Unitig{singleMemberUnitig(7, reads, "a", "ACGTACGTAC")}

	var buf bytes.Buffer
	if err := WriteUnitigFASTA(&buf, units, reads); err != nil {
		t.Fatalf("WriteUnitigFASTA failed: %v", err)
	}
	out := buf.String()
	if !bytes.Contains(buf.Bytes(), []byte(">unitig_7")) {
		t.Fatalf("missing expected header in output: %q", out)
	}
}
