// Copyright ©2024 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package align

import (
	"testing"

	"github.com/biogo/weave/graph"
	"github.com/biogo/weave/readset"
)

func defaultConfig() Config {
	return Config{
		MinOverlapLength:   100,
		MinOverlapCount:    0,
		MinPercentIdentity: 90,
		OverhangRatio:      0.1,
	}
}

// fullWindow returns a Read whose coverage window spans its entire length,
// the common case once enough alignments have accumulated coverage; this
// isolates classifyOne from the coverage-accumulation machinery tested
// separately in readset.
func fullWindow(id readset.ID, length int) *readset.Read {
	return &readset.Read{ID: id, Length: length, CoverageStart: 0, CoverageEnd: length, MaxCoverage: 10}
}

// S1 from spec.md §8: two reads, a clean 5'-to-3' overlap.
func TestClassifyCleanOverlap(t *testing.T) {
	q := fullWindow(0, 1000)
	tg := fullWindow(1, 1000)
	a := &Alignment{
		QueryName: "R1", QueryLen: 1000, QueryStart: 500, QueryEnd: 1000,
		Strand:     graph.Plus,
		TargetName: "R2", TargetLen: 1000, TargetStart: 0, TargetEnd: 500,
		Matches: 490, BlockLen: 500, MapQ: 60,
	}

	kind, ov, _, _ := classifyOne(a, q, tg, defaultConfig())
	if kind != KindProper {
		t.Fatalf("kind = %v, want KindProper", kind)
	}
	wantSource := graph.NodeID{Read: 0, Strand: graph.Plus}
	wantSink := graph.NodeID{Read: 1, Strand: graph.Plus}
	if ov.Source != wantSource || ov.Sink != wantSink {
		t.Fatalf("got source/sink %v/%v, want %v/%v", ov.Source, ov.Sink, wantSource, wantSink)
	}
	if ov.EdgeLen != 500 || ov.RCEdgeLen != 500 {
		t.Fatalf("EdgeLen/RCEdgeLen = %d/%d, want 500/500", ov.EdgeLen, ov.RCEdgeLen)
	}
	if ov.RCSource != wantSink.RC() || ov.RCSink != wantSource.RC() {
		t.Fatalf("RC twin ids are wrong: %v/%v", ov.RCSource, ov.RCSink)
	}
}

// S2 from spec.md §8: a contained read.
func TestClassifyContainedRead(t *testing.T) {
	q := fullWindow(0, 500)
	tg := fullWindow(1, 2000)
	a := &Alignment{
		QueryName: "R2", QueryLen: 500, QueryStart: 0, QueryEnd: 500,
		Strand:     graph.Plus,
		TargetName: "R1", TargetLen: 2000, TargetStart: 700, TargetEnd: 1200,
		Matches: 495, BlockLen: 500, MapQ: 60,
	}

	kind, _, containedQuery, containedTarget := classifyOne(a, q, tg, defaultConfig())
	if kind != KindFirstContained {
		t.Fatalf("kind = %v, want KindFirstContained", kind)
	}
	if !containedQuery || containedTarget {
		t.Fatalf("expected the query (R2) to be marked contained")
	}
}

func TestClassifyInternalMatch(t *testing.T) {
	q := fullWindow(0, 5000)
	tg := fullWindow(1, 5000)
	a := &Alignment{
		QueryName: "R1", QueryLen: 5000, QueryStart: 2000, QueryEnd: 2600,
		Strand:     graph.Plus,
		TargetName: "R2", TargetLen: 5000, TargetStart: 2000, TargetEnd: 2600,
		Matches: 590, BlockLen: 600, MapQ: 60,
	}
	kind, _, _, _ := classifyOne(a, q, tg, defaultConfig())
	if kind != KindInternal {
		t.Fatalf("kind = %v, want KindInternal", kind)
	}
}

func TestFilterRejectsSelfAlignment(t *testing.T) {
	f := NewFilter(defaultConfig(), nil)
	f.Add(&Alignment{
		QueryName: "R1", QueryLen: 1000, QueryStart: 0, QueryEnd: 500,
		Strand:     graph.Plus,
		TargetName: "R1", TargetLen: 1000, TargetStart: 500, TargetEnd: 1000,
		Matches: 490, BlockLen: 500,
	})
	if f.Reads.Len() != 0 {
		t.Fatalf("self alignment should not create any reads")
	}
}

func TestFilterDedupKeepsLongestBlock(t *testing.T) {
	f := NewFilter(defaultConfig(), nil)
	short := &Alignment{
		QueryName: "R1", QueryLen: 1000, QueryStart: 500, QueryEnd: 900,
		Strand:     graph.Plus,
		TargetName: "R2", TargetLen: 1000, TargetStart: 0, TargetEnd: 400,
		Matches: 380, BlockLen: 400,
	}
	long := &Alignment{
		QueryName: "R1", QueryLen: 1000, QueryStart: 500, QueryEnd: 1000,
		Strand:     graph.Plus,
		TargetName: "R2", TargetLen: 1000, TargetStart: 0, TargetEnd: 500,
		Matches: 490, BlockLen: 500,
	}
	f.Add(short)
	f.Add(long)

	key := normalize(0, 1)
	if f.kept[key] != long {
		t.Fatalf("dedup should have kept the alignment with the larger block length")
	}
}

func TestFilterDropsShortAndLowIdentity(t *testing.T) {
	f := NewFilter(defaultConfig(), nil)
	f.Add(&Alignment{
		QueryName: "R1", QueryLen: 1000, QueryStart: 0, QueryEnd: 50,
		TargetName: "R2", TargetLen: 1000, TargetStart: 0, TargetEnd: 50,
		Matches: 49, BlockLen: 50,
	})
	f.Add(&Alignment{
		QueryName: "R3", QueryLen: 1000, QueryStart: 0, QueryEnd: 500,
		TargetName: "R4", TargetLen: 1000, TargetStart: 0, TargetEnd: 500,
		Matches: 200, BlockLen: 500,
	})
	if f.Reads.Len() != 0 {
		t.Fatalf("both records should have been rejected before any read was created, got %d reads", f.Reads.Len())
	}
}

func TestPostFilterOrderContainedBeforeLowCoverage(t *testing.T) {
	f := NewFilter(defaultConfig(), nil)
	r1 := f.Reads.GetOrCreate("R1", 1000)
	r2 := f.Reads.GetOrCreate("R2", 1000)
	r1.Contained = true
	r1.MaxCoverage = 0
	r2.MaxCoverage = 10

	ov := Overlap{
		Source: graph.NodeID{Read: r1.ID, Strand: graph.Plus},
		Sink:   graph.NodeID{Read: r2.ID, Strand: graph.Plus},
	}
	out := f.postFilter([]Overlap{ov})
	if len(out) != 0 {
		t.Fatalf("overlap touching a contained read must be removed")
	}
}
