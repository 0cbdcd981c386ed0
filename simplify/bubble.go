// Copyright ©2024 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package simplify

import (
	"gonum.org/v1/gonum/stat"

	"github.com/biogo/weave/graph"
)

// bubbleState is the per-node record kept while exploring one side of a
// candidate bubble: how we got here, and the path metrics needed to score
// it against the other side.
type bubbleState struct {
	pred          graph.NodeID
	depth         int
	readCount     int
	totalOverlap  int
	identities    []float64
	weights       []float64
}

// exploreBubbleSide runs a breadth-first search rooted at start, bounded to
// maxDepth hops, recording reach metrics for every visited node.
func exploreBubbleSide(g *graph.Graph, u, start graph.NodeID, maxDepth int) map[graph.NodeID]bubbleState {
	reached := make(map[graph.NodeID]bubbleState)
	type item struct {
		node  graph.NodeID
		state bubbleState
	}

	startEdge := findEdge(g, u, start)
	if startEdge == nil {
		return reached
	}
	initial := bubbleState{
		pred:         u,
		depth:        1,
		readCount:    1,
		totalOverlap: startEdge.OverlapLen,
		identities:   []float64{startEdge.Identity},
		weights:      []float64{float64(startEdge.OverlapLen)},
	}
	reached[start] = initial
	queue := []item{{start, initial}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur.state.depth >= maxDepth {
			continue
		}
		n := g.Node(cur.node)
		if n == nil {
			continue
		}
		for _, e := range n.Out {
			if _, ok := reached[e.Target]; ok {
				continue
			}
			next := bubbleState{
				pred:         cur.node,
				depth:        cur.state.depth + 1,
				readCount:    cur.state.readCount + 1,
				totalOverlap: cur.state.totalOverlap + e.OverlapLen,
				identities:   append(append([]float64(nil), cur.state.identities...), e.Identity),
				weights:      append(append([]float64(nil), cur.state.weights...), float64(e.OverlapLen)),
			}
			reached[e.Target] = next
			queue = append(queue, item{e.Target, next})
		}
	}
	return reached
}

func findEdge(g *graph.Graph, u, v graph.NodeID) *graph.Edge {
	n := g.Node(u)
	if n == nil {
		return nil
	}
	for i := range n.Out {
		if n.Out[i].Target == v {
			return &n.Out[i]
		}
	}
	return nil
}

func pathScore(s bubbleState) float64 {
	avgIdentity := stat.Mean(s.identities, s.weights)
	return float64(s.totalOverlap)*1.0 + avgIdentity*bubbleIdentityWeight + float64(s.readCount)*1.5
}

// bubbleIdentityWeight is the identity-weight factor spec.md flags as
// ad-hoc (2.0 x 100); exposed here rather than buried in the formula.
var bubbleIdentityWeight = 200.0

// SetBubbleIdentityWeight overrides the default identity-weight factor used
// by PopBubbles' path scoring.
func SetBubbleIdentityWeight(w float64) { bubbleIdentityWeight = w }

// PopBubbles implements the Bubble Remover (C5). For every node with
// outdegree >= 2, each unordered pair of outgoing neighbors is explored by
// bounded BFS; if both sides reconverge within maxBubbleLen, the weaker
// path is deleted unless its score is too close to the stronger one
// (minSupportRatio).
func PopBubbles(g *graph.Graph, maxBubbleLen int, minSupportRatio float64) {
	for _, u := range g.Snapshot() {
		n := g.Node(u)
		if n == nil || len(n.Out) < 2 {
			continue
		}

		neighbors := make([]graph.NodeID, len(n.Out))
		for i, e := range n.Out {
			neighbors[i] = e.Target
		}

		mutated := false
		for i := 0; i < len(neighbors) && !mutated; i++ {
			for j := i + 1; j < len(neighbors) && !mutated; j++ {
				a, b := neighbors[i], neighbors[j]
				if popOnePair(g, u, a, b, maxBubbleLen, minSupportRatio) {
					mutated = true
				}
			}
		}
	}
}

func popOnePair(g *graph.Graph, u, a, b graph.NodeID, maxBubbleLen int, minSupportRatio float64) bool {
	reachA := exploreBubbleSide(g, u, a, maxBubbleLen)
	reachB := exploreBubbleSide(g, u, b, maxBubbleLen)

	var conv graph.NodeID
	bestSum := -1
	found := false
	for _, id := range g.Snapshot() {
		sa, okA := reachA[id]
		sb, okB := reachB[id]
		if !okA || !okB {
			continue
		}
		sum := sa.depth + sb.depth
		if !found || sum < bestSum {
			bestSum = sum
			conv = id
			found = true
		}
	}
	if !found {
		return false
	}

	stateA := reachA[conv]
	stateB := reachB[conv]
	scoreA := pathScore(stateA)
	scoreB := pathScore(stateB)

	// Higher score wins; a score tie is broken by lower depth; a tie on both
	// score and depth is an exact tie and the bubble is skipped.
	var winner, loser bubbleState
	var loserHead graph.NodeID
	switch {
	case scoreA > scoreB:
		winner, loser, loserHead = stateA, stateB, b
	case scoreB > scoreA:
		winner, loser, loserHead = stateB, stateA, a
	case stateA.depth < stateB.depth:
		winner, loser, loserHead = stateA, stateB, b
	case stateB.depth < stateA.depth:
		winner, loser, loserHead = stateB, stateA, a
	default:
		return false
	}
	_ = winner

	if loser.totalOverlap == 0 {
		return false
	}
	loserScore := pathScore(loser)
	winnerScore := pathScore(winner)
	if loserScore*minSupportRatio > winnerScore {
		return false
	}

	dead := reconstructPath(loserHead, conv, reachAOrB(loserHead, reachA, reachB))
	if len(dead) == 0 {
		return false
	}
	g.RemoveNodesRCAware(dead)
	return true
}

func reachAOrB(head graph.NodeID, reachA, reachB map[graph.NodeID]bubbleState) map[graph.NodeID]bubbleState {
	if _, ok := reachA[head]; ok {
		return reachA
	}
	return reachB
}

// reconstructPath walks predecessor links from conv back to head (the
// first node after u on the losing side), returning every node strictly
// between u and conv, i.e. excluding conv itself.
func reconstructPath(head, conv graph.NodeID, reach map[graph.NodeID]bubbleState) []graph.NodeID {
	var path []graph.NodeID
	cur := conv
	for cur != head {
		s, ok := reach[cur]
		if !ok {
			return nil
		}
		if cur != conv {
			path = append(path, cur)
		}
		cur = s.pred
	}
	if head != conv {
		path = append(path, head)
	}
	return path
}
