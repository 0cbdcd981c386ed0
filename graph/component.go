// Copyright ©2024 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package graph

import (
	bgraph "github.com/biogo/graph"
)

// ccNode adapts an oriented NodeID into a biogo/graph.Node so the
// Component Pruner can reuse biogo/graph's undirected connectivity
// search, the same idiom igor/stitcher/main.go uses to group matching
// features into connected components.
type ccNode struct {
	bgraph.Node
	id NodeID
}

func pairKey(a, b NodeID) [2]NodeID {
	if less(a, b) {
		return [2]NodeID{a, b}
	}
	return [2]NodeID{b, a}
}

func less(a, b NodeID) bool {
	if a.Read != b.Read {
		return a.Read < b.Read
	}
	return a.Strand < b.Strand
}

// PruneSmallComponents implements the Component Pruner (C7): the graph is
// treated as undirected (the union of outgoing edges in both directions),
// weakly connected components are found, and every component with fewer
// than minSize nodes is deleted, RC-aware.
func (g *Graph) PruneSmallComponents(minSize int) {
	ids := g.Snapshot()
	if len(ids) == 0 {
		return
	}

	ug := bgraph.NewUndirected()
	byID := make(map[NodeID]*ccNode, len(ids))
	for _, id := range ids {
		n := &ccNode{Node: ug.NewNode(), id: id}
		ug.Add(n)
		byID[id] = n
	}

	seen := make(map[[2]NodeID]bool)
	for _, id := range ids {
		for _, e := range g.nodes[id].Out {
			key := pairKey(id, e.Target)
			if seen[key] {
				continue
			}
			seen[key] = true
			na, ok1 := byID[id]
			nb, ok2 := byID[e.Target]
			if !ok1 || !ok2 {
				continue
			}
			ug.ConnectWith(na, nb, bgraph.NewEdge())
		}
	}

	components := ug.ConnectedComponents(bgraph.EdgeFilter(func(bgraph.Edge) bool { return true }))

	var dead []NodeID
	for _, comp := range components {
		if len(comp) >= minSize {
			continue
		}
		for _, n := range comp {
			dead = append(dead, n.(*ccNode).id)
		}
	}
	g.RemoveNodesRCAware(dead)
}
