// Copyright ©2024 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package readset

import "testing"

func TestGetOrCreateAssignsDenseIDs(t *testing.T) {
	s := NewSet()
	a := s.GetOrCreate("r1", 1000)
	b := s.GetOrCreate("r2", 500)
	again := s.GetOrCreate("r1", 1000)

	if a.ID != 0 || b.ID != 1 {
		t.Fatalf("got ids %d,%d want 0,1", a.ID, b.ID)
	}
	if again != a {
		t.Fatalf("GetOrCreate did not return the existing read")
	}
	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}
}

func TestComputeWindowFindsLongestRun(t *testing.T) {
	r := &Read{Length: 20}
	// Coverage 3 over [0,5), 1 over [5,8), 4 over [8,15), 0 over [15,20).
	r.AddCoverage(0, 5)
	r.AddCoverage(0, 5)
	r.AddCoverage(0, 5)
	r.AddCoverage(5, 8)
	for i := 0; i < 4; i++ {
		r.AddCoverage(8, 15)
	}

	r.ComputeWindow(1)

	if r.CoverageStart != 8 || r.CoverageEnd != 15 {
		t.Fatalf("window = [%d,%d), want [8,15)", r.CoverageStart, r.CoverageEnd)
	}
	if r.MaxCoverage != 4 {
		t.Fatalf("MaxCoverage = %d, want 4", r.MaxCoverage)
	}
	if r.cov != nil {
		t.Fatalf("coverage vector was not released")
	}
}

func TestComputeWindowMergesAdjacentAboveThresholdRuns(t *testing.T) {
	r := &Read{Length: 10}
	for i := 0; i < 5; i++ {
		r.AddCoverage(0, 4)
	}
	for i := 0; i < 2; i++ {
		r.AddCoverage(4, 10)
	}
	// Coverage is 5 over [0,4) and 2 over [4,10); both exceed threshold 1
	// and must merge into a single [0,10) run even though the step.Vector
	// stores them as two distinct runs.
	r.ComputeWindow(1)

	if r.CoverageStart != 0 || r.CoverageEnd != 10 {
		t.Fatalf("window = [%d,%d), want [0,10)", r.CoverageStart, r.CoverageEnd)
	}
}

func TestComputeWindowNoneFound(t *testing.T) {
	r := &Read{Length: 10}
	r.AddCoverage(0, 10)
	r.ComputeWindow(5)

	if r.CoverageStart != 0 || r.CoverageEnd != 0 {
		t.Fatalf("window = [%d,%d), want zero-length", r.CoverageStart, r.CoverageEnd)
	}
}
