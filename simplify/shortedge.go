// Copyright ©2024 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package simplify

import (
	"github.com/biogo/weave/graph"
)

// PruneShortEdges implements the Short-Edge Pruner (C4). At every node with
// two or more outgoing edges, it computes the best outgoing overlap length
// and removes (RC-aware) any outgoing edge whose overlap length falls below
// round(best * dropRatio).
//
// The open question of round(max*dropRatio) vs (max*dropRatio+0.499)
// truncation is resolved in favor of round-to-nearest, matching Go's own
// math.Round semantics and avoiding the asymmetric bias of truncation.
func PruneShortEdges(g *graph.Graph, dropRatio float64) {
	type removal struct{ u, v graph.NodeID }
	var toRemove []removal

	for _, u := range g.Snapshot() {
		n := g.Node(u)
		if n == nil || len(n.Out) < 2 {
			continue
		}

		best := 0
		for _, e := range n.Out {
			if e.OverlapLen > best {
				best = e.OverlapLen
			}
		}
		threshold := roundToInt(float64(best) * dropRatio)

		for _, e := range n.Out {
			if e.OverlapLen < threshold {
				toRemove = append(toRemove, removal{u, e.Target})
			}
		}
	}

	for _, r := range toRemove {
		g.RemoveEdgePair(r.u, r.v)
	}
}

func roundToInt(v float64) int {
	if v < 0 {
		return int(v - 0.5)
	}
	return int(v + 0.5)
}
