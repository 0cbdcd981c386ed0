// Copyright ©2024 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package simplify implements the graph-cleanup passes (C3-C6, C8): Myers-
// style transitive reduction, short-edge pruning, bubble popping, tip
// trimming, and the fixed-order driver that runs them, together with the
// graph package's small-component removal (C7), for a configured number
// of iterations.
package simplify

import (
	"sort"

	"github.com/biogo/weave/graph"
)

// mark is the in-play/eliminated state transitive reduction assigns to a
// node's neighbors during a single source node's scan.
type mark int8

const (
	markVacant mark = iota
	markInPlay
	markEliminated
)

// TransitiveReduce removes redundant edges u→w when a path u→v→w exists
// whose total edge length is at most u's longest outgoing edge plus fuzz
// (C3, Myers-style transitive reduction). A neighbor w is also eliminated
// when some neighbor v reaches it by an edge shorter than fuzz or by v's
// shortest outgoing edge.
func TransitiveReduce(g *graph.Graph, fuzz int) {
	type removal struct{ u, v graph.NodeID }
	var toRemove []removal

	for _, u := range g.Snapshot() {
		un := g.Node(u)
		if un == nil || len(un.Out) < 2 {
			continue
		}

		edges := append([]graph.Edge(nil), un.Out...)
		sort.Slice(edges, func(i, j int) bool { return edges[i].EdgeLen < edges[j].EdgeLen })

		longest := edges[len(edges)-1].EdgeLen + fuzz

		marks := make(map[graph.NodeID]mark, len(edges))
		for _, e := range edges {
			marks[e.Target] = markInPlay
		}

		for _, e := range edges {
			v := e.Target
			if marks[v] != markInPlay {
				continue
			}
			vn := g.Node(v)
			if vn == nil {
				continue
			}
			for _, ve := range vn.Out {
				w := ve.Target
				if m, ok := marks[w]; ok && m == markInPlay && e.EdgeLen+ve.EdgeLen <= longest {
					marks[w] = markEliminated
				}
			}
		}

		for _, e := range edges {
			v := e.Target
			vn := g.Node(v)
			if vn == nil || len(vn.Out) == 0 {
				continue
			}
			vMin := vn.Out[0].EdgeLen
			for _, ve := range vn.Out {
				if ve.EdgeLen < vMin {
					vMin = ve.EdgeLen
				}
			}
			for _, ve := range vn.Out {
				w := ve.Target
				if m, ok := marks[w]; ok && m == markInPlay && (ve.EdgeLen < fuzz || ve.EdgeLen == vMin) {
					marks[w] = markEliminated
				}
			}
		}

		for _, e := range edges {
			if marks[e.Target] == markEliminated {
				toRemove = append(toRemove, removal{u, e.Target})
			}
		}
	}

	for _, r := range toRemove {
		g.RemoveEdgePair(r.u, r.v)
	}
}
