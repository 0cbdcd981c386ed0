// Copyright ©2024 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package align

import "github.com/biogo/weave/graph"

// BuildGraph materializes the bidirected overlap graph (C2) from a set of
// proper overlaps: for every Overlap it inserts the forward edge and its
// RC counterpart, then verifies the result satisfies the symmetry
// invariant of spec.md §3.
func BuildGraph(overlaps []Overlap) (*graph.Graph, error) {
	g := graph.New()
	for _, ov := range overlaps {
		g.AddEdge(ov.Source, ov.Sink, ov.EdgeLen, ov.OverlapLen, ov.Identity)
		g.AddEdge(ov.RCSource, ov.RCSink, ov.RCEdgeLen, ov.OverlapLen, ov.Identity)
	}
	if problems := g.CheckSymmetry(); len(problems) > 0 {
		return g, &SyncError{Problems: problems}
	}
	return g, nil
}

// SyncError reports a failed post-build synchronization check (spec.md
// §4.2, §7). Callers running in a strict mode may treat it as fatal;
// otherwise the reported problems should be logged as warnings.
type SyncError struct {
	Problems []string
}

func (e *SyncError) Error() string {
	if len(e.Problems) == 1 {
		return "overlap graph synchronization check failed: " + e.Problems[0]
	}
	return "overlap graph synchronization check failed with multiple problems"
}
