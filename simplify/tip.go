// Copyright ©2024 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package simplify

import "github.com/biogo/weave/graph"

func isTip(g *graph.Graph, id graph.NodeID) bool {
	return g.InDegree(id) == 0 && g.OutDegree(id) == 1
}

func isMergeable(g *graph.Graph, id graph.NodeID) bool {
	return g.InDegree(id) == 1 && g.OutDegree(id) == 1
}

// TrimTips implements the Tip Trimmer (C6). Starting from every node with
// no incoming edges and exactly one outgoing edge, it walks forward while
// the chain stays mergeable, up to maxTipLen steps. Chains that terminate
// within budget are dead ends and are deleted, RC-aware; chains that
// exhaust the budget are treated as part of a longer linear stretch and
// kept.
func TrimTips(g *graph.Graph, maxTipLen int) {
	var dead []graph.NodeID

	for _, start := range g.Snapshot() {
		if !isTip(g, start) {
			continue
		}

		// chain holds only nodes that belong to the tip itself; the node
		// where the walk stops (because it is not mergeable, i.e. it is
		// the branch the tip attaches to) is never included.
		chain := []graph.NodeID{start}
		cur := start
		ranOutOfBudget := false
		for {
			if len(chain) >= maxTipLen {
				ranOutOfBudget = true
				break
			}
			n := g.Node(cur)
			if n == nil || len(n.Out) != 1 {
				break
			}
			next := n.Out[0].Target
			if !isMergeable(g, next) {
				break
			}
			chain = append(chain, next)
			cur = next
		}
		if ranOutOfBudget {
			continue
		}
		dead = append(dead, chain...)
	}

	g.RemoveNodesRCAware(dead)
}
