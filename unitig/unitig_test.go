// Copyright ©2024 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package unitig

import (
	"testing"

	check "gopkg.in/check.v1"

	"github.com/biogo/weave/graph"
	"github.com/biogo/weave/readset"
)

func Test(t *testing.T) { check.TestingT(t) }

type S struct{}

var _ = check.Suite(&S{})

func addSym(g *graph.Graph, u, v graph.NodeID, edgeLen, rcEdgeLen, overlapLen int, identity float64) {
	g.AddEdge(u, v, edgeLen, overlapLen, identity)
	g.AddEdge(v.RC(), u.RC(), rcEdgeLen, overlapLen, identity)
}

// TestLinearPair reproduces spec.md's S1 scenario: two 1000bp reads overlap
// by 500bp; the cleaned graph should compress to a single 1500bp unitig
// per orientation.
func (s *S) TestLinearPair(c *check.C) {
	g := graph.New()
	reads := readset.NewSet()
	r1 := reads.GetOrCreate("R1", 1000)
	r2 := reads.GetOrCreate("R2", 1000)

	n1 := graph.NodeID{Read: r1.ID, Strand: graph.Plus}
	n2 := graph.NodeID{Read: r2.ID, Strand: graph.Plus}
	addSym(g, n1, n2, 500, 500, 500, 98)

	units := Compress(g)
	if len(units) != 2 {
		c.Fatalf("expected 2 unitigs (one per strand), got %d", len(units))
	}
	for _, u := range units {
		if u.Len() != 2 {
			c.Fatalf("expected 2 members per unitig, got %d", u.Len())
		}
		if u.Circular {
			c.Fatalf("linear overlap should not produce a circular unitig")
		}
	}
}

// TestCircularGenome reproduces spec.md's S6 scenario: six reads forming a
// pure cycle compress to one circular unitig per strand, each containing
// all six oriented nodes of that strand.
func (s *S) TestCircularGenome(c *check.C) {
	g := graph.New()
	ids := make([]graph.NodeID, 6)
	for i := range ids {
		ids[i] = graph.NodeID{Read: readset.ID(i), Strand: graph.Plus}
	}
	for i := range ids {
		next := ids[(i+1)%len(ids)]
		addSym(g, ids[i], next, 100, 100, 500, 99)
	}

	units := Compress(g)
	var circular []*Unitig
	for _, u := range units {
		if u.Circular {
			circular = append(circular, u)
		}
	}
	if len(circular) != 2 {
		c.Fatalf("expected one circular unitig per strand, got %d", len(circular))
	}
	for _, u := range circular {
		if u.Len() != 6 {
			c.Fatalf("expected all 6 oriented nodes on the cycle, got %d", u.Len())
		}
	}
}

// TestInterUnitigEdgesFoldBestMetrics exercises the boundary-edge folding
// across two adjacent unitigs joined by two crossing read-edges with
// different metrics; only the best-per-metric combination should survive.
func (s *S) TestInterUnitigEdgesFoldBestMetrics(c *check.C) {
	g := graph.New()
	a := &Unitig{ID: 0, Members: []Member{
		{Node: graph.NodeID{Read: 0, Strand: graph.Plus}},
		{Node: graph.NodeID{Read: 2, Strand: graph.Plus}},
	}}
	b := &Unitig{ID: 1, Members: []Member{
		{Node: graph.NodeID{Read: 1, Strand: graph.Plus}},
		{Node: graph.NodeID{Read: 3, Strand: graph.Plus}},
	}}

	u0 := a.Members[0].Node
	u1 := b.Members[0].Node
	u2 := a.Members[1].Node
	u3 := b.Members[1].Node
	g.EnsureNode(u0)
	g.EnsureNode(u1)
	g.AddEdge(u0, u1, 50, 400, 95)
	g.AddEdge(u2, u3, 80, 600, 90)

	edges := InterUnitigEdges(g, []*Unitig{a, b})
	if len(edges) != 1 {
		c.Fatalf("expected exactly one folded boundary edge, got %d", len(edges))
	}
	if edges[0].From != 0 || edges[0].To != 1 {
		c.Fatalf("unexpected edge endpoints: %+v", edges[0])
	}
	if edges[0].EdgeLen != 50 || edges[0].OverlapLen != 600 || edges[0].Identity != 95 {
		c.Fatalf("expected EdgeLen=50, OverlapLen=600, Identity=95, got %+v", edges[0])
	}
}
