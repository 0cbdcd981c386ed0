// Copyright ©2024 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package unitig implements the Unitig Compressor (C9): it extracts
// maximal non-branching walks — linear and circular — from a cleaned
// overlap graph, folds crossing edges into unitig-level edges, and
// reconstructs each unitig's nucleotide sequence by stitching read
// prefixes in walk order.
package unitig

import (
	"errors"
	"fmt"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/seq/linear"
	"github.com/biogo/biogo/seq/sequtils"

	"github.com/biogo/weave/graph"
	"github.com/biogo/weave/readset"
)

// Member is one step of a unitig's walk: an oriented node, and (unless it
// is the walk's last entry) the next node and the non-overlapping prefix
// length contributed before reaching it.
type Member struct {
	Node    graph.NodeID
	HasNext bool
	Next    graph.NodeID
	EdgeLen int
}

// Unitig is a maximal non-branching walk through the overlap graph.
type Unitig struct {
	ID       int
	Members  []Member
	Circular bool
}

// Len returns the number of member nodes in the unitig.
func (u *Unitig) Len() int { return len(u.Members) }

// Compress runs the Unitig Compressor (C9) over g: Phase A walks out from
// every branching or terminal node; Phase B sweeps up whatever remains
// into circular unitigs.
func Compress(g *graph.Graph) []*Unitig {
	visited := make(map[graph.NodeID]bool)
	var unitigs []*Unitig
	nextID := 0

	for _, u := range g.Snapshot() {
		if g.InDegree(u) == 1 && g.OutDegree(u) == 1 {
			continue
		}
		n := g.Node(u)
		for _, e := range n.Out {
			ut := &Unitig{ID: nextID}
			nextID++
			ut.Members = append(ut.Members, Member{Node: u, HasNext: true, Next: e.Target, EdgeLen: e.EdgeLen})
			visited[u] = true

			cur := e.Target
			for {
				if visited[cur] || g.InDegree(cur) != 1 {
					break
				}
				cn := g.Node(cur)
				if cn == nil || len(cn.Out) != 1 {
					break
				}
				nxt := cn.Out[0]
				if g.InDegree(nxt.Target) != 1 || visited[nxt.Target] {
					break
				}
				ut.Members = append(ut.Members, Member{Node: cur, HasNext: true, Next: nxt.Target, EdgeLen: nxt.EdgeLen})
				visited[cur] = true
				cur = nxt.Target
			}
			ut.Members = append(ut.Members, Member{Node: cur})
			visited[cur] = true
			unitigs = append(unitigs, ut)
		}
	}

	for _, start := range g.Snapshot() {
		if visited[start] {
			continue
		}
		ut := &Unitig{ID: nextID, Circular: true}
		nextID++
		cur := start
		for {
			visited[cur] = true
			n := g.Node(cur)
			if n == nil || len(n.Out) == 0 {
				break
			}
			e := n.Out[0]
			ut.Members = append(ut.Members, Member{Node: cur, HasNext: true, Next: e.Target, EdgeLen: e.EdgeLen})
			cur = e.Target
			if cur == start {
				break
			}
		}
		unitigs = append(unitigs, ut)
	}

	return unitigs
}

// Edge is a unitig-level edge, folded from every underlying read-node edge
// crossing the two unitigs' boundary.
type Edge struct {
	From, To   int
	EdgeLen    int
	OverlapLen int
	Identity   float64
}

// InterUnitigEdges folds every read-node edge of g whose endpoints lie in
// different unitigs into at most one Edge per ordered unitig pair, taking
// the minimum edge_len, maximum overlap_len and maximum identity across
// all crossing edges.
func InterUnitigEdges(g *graph.Graph, unitigs []*Unitig) []Edge {
	owner := make(map[graph.NodeID]int, len(unitigs)*4)
	for _, ut := range unitigs {
		for _, m := range ut.Members {
			owner[m.Node] = ut.ID
		}
	}

	type key struct{ from, to int }
	folded := make(map[key]*Edge)
	for _, id := range g.Snapshot() {
		n := g.Node(id)
		fromUt, ok := owner[id]
		if !ok {
			continue
		}
		for _, e := range n.Out {
			toUt, ok := owner[e.Target]
			if !ok || toUt == fromUt {
				continue
			}
			k := key{fromUt, toUt}
			cur, ok := folded[k]
			if !ok {
				folded[k] = &Edge{From: fromUt, To: toUt, EdgeLen: e.EdgeLen, OverlapLen: e.OverlapLen, Identity: e.Identity}
				continue
			}
			if e.EdgeLen < cur.EdgeLen {
				cur.EdgeLen = e.EdgeLen
			}
			if e.OverlapLen > cur.OverlapLen {
				cur.OverlapLen = e.OverlapLen
			}
			if e.Identity > cur.Identity {
				cur.Identity = e.Identity
			}
		}
	}

	out := make([]Edge, 0, len(folded))
	for _, e := range folded {
		out = append(out, *e)
	}
	return out
}

// ErrInconsistent reports a unitig whose recorded edge_len exceeds the
// length of the source member's oriented sequence.
var ErrInconsistent = errors.New("unitig: member edge length exceeds source sequence length")

// Sequence reconstructs a unitig's nucleotide sequence: each member
// contributes its oriented (possibly reverse-complemented) sequence
// truncated to the non-overlapping prefix edge_len bases; the final
// member of a non-circular unitig contributes its full sequence.
func Sequence(u *Unitig, reads *readset.Set) (*linear.Seq, error) {
	out := linear.NewSeq(fmt.Sprintf("unitig_%d", u.ID), nil, alphabet.DNA)

	for i, m := range u.Members {
		r := reads.ByID(m.Node.Read)
		if r.Sequence == nil {
			return nil, fmt.Errorf("unitig: read %q has no loaded sequence", r.Name)
		}

		oriented := orient(r, m.Node.Strand)

		if !m.HasNext {
			if i != len(u.Members)-1 {
				return nil, ErrInconsistent
			}
			appendSeq(out, oriented)
			continue
		}

		if m.EdgeLen > oriented.Len() {
			return nil, fmt.Errorf("%w: read %q, edge_len=%d, len=%d", ErrInconsistent, r.Name, m.EdgeLen, oriented.Len())
		}
		prefix := linear.NewSeq("", nil, alphabet.DNA)
		if err := sequtils.Truncate(prefix, oriented, 0, m.EdgeLen); err != nil {
			return nil, fmt.Errorf("unitig: truncate prefix of %q: %w", r.Name, err)
		}
		appendSeq(out, prefix)
	}

	return out, nil
}

// orient returns a copy of r's sequence in the orientation s calls for,
// following the pattern igor/seqer.go uses for feature-strand sequences:
// copy the value, then RevComp in place when the orientation is reversed.
// The backing letter slice is copied too, since RevComp mutates in place
// and r.Sequence must survive untouched for the next member that needs it.
func orient(r *readset.Read, s graph.Strand) *linear.Seq {
	src := r.Sequence.(*linear.Seq)
	cp := *src
	cp.Seq = append(cp.Seq[:0:0], src.Seq...)
	if s == graph.Minus {
		cp.RevComp()
	}
	return &cp
}

func appendSeq(dst, src *linear.Seq) {
	dst.Seq = append(dst.Seq, src.Seq...)
}
