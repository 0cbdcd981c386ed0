// Copyright ©2024 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package align implements the Alignment Filter (C1): it ingests raw
// pairwise alignments, computes per-read coverage, derives each read's
// high-coverage window, classifies every surviving alignment as an
// internal match, a containment, or a proper overlap, and emits the
// proper overlaps as Overlap records ready for the graph builder.
package align

import (
	"fmt"
	"math"

	"github.com/biogo/weave/graph"
	"github.com/biogo/weave/readset"
)

// Alignment is one raw pairwise alignment record, following the PAF-style
// field layout of spec.md §6.
type Alignment struct {
	QueryName   string
	QueryLen    int
	QueryStart  int
	QueryEnd    int
	Strand      graph.Strand
	TargetName  string
	TargetLen   int
	TargetStart int
	TargetEnd   int
	Matches     int
	BlockLen    int
	MapQ        uint8
}

// Identity returns the percent identity of the alignment.
func (a *Alignment) Identity() float64 {
	if a.BlockLen == 0 {
		return 0
	}
	return float64(a.Matches) / float64(a.BlockLen) * 100
}

// Config holds the Alignment Filter's tunables (spec.md §6).
type Config struct {
	MinOverlapLength   int
	MinOverlapCount    uint32
	MinPercentIdentity float64
	OverhangRatio      float64
}

// Overlap is the output of classification: a proper overlap between two
// reads, expressed as a forward oriented edge and its RC twin.
type Overlap struct {
	Source, Sink     graph.NodeID
	RCSource, RCSink graph.NodeID

	EdgeLen, RCEdgeLen         int
	EdgeLenOrig, RCEdgeLenOrig int

	OverlapLen int
	Identity   float64
}

// Kind classifies a single alignment under the decision tree of spec.md
// §4.1.
type Kind int

const (
	KindInternal Kind = iota
	KindFirstContained
	KindSecondContained
	KindTooShort
	KindRejectedNonPositive
	KindProper
)

// Filter runs the Alignment Filter end to end: ingestion and dedup,
// coverage accumulation, window derivation, classification, and the
// contained/low-coverage post-filter.
type Filter struct {
	cfg   Config
	Reads *readset.Set

	kept map[pairKey]*Alignment
	log  func(format string, args ...interface{})
}

type pairKey struct {
	a, b readset.ID
}

func normalize(q, t readset.ID) pairKey {
	if q < t {
		return pairKey{q, t}
	}
	return pairKey{t, q}
}

// NewFilter returns a Filter over a fresh read set. log receives a warning
// for every alignment Classify discards (internal, too short, or
// non-positive under raw coordinates); records rejected by Add are dropped
// without a warning. If log is nil, warnings are discarded.
func NewFilter(cfg Config, log func(format string, args ...interface{})) *Filter {
	if log == nil {
		log = func(string, ...interface{}) {}
	}
	return &Filter{
		cfg:   cfg,
		Reads: readset.NewSet(),
		kept:  make(map[pairKey]*Alignment),
		log:   log,
	}
}

// Add ingests one alignment record (Pass 1 of spec.md §4.1): self and
// short/low-identity alignments are rejected, reads are created on first
// sight, coverage is accumulated over the aligned spans, and the
// alignment is deduplicated to the best-per-pair by alignment block
// length.
func (f *Filter) Add(a *Alignment) {
	if a.QueryName == a.TargetName {
		return
	}
	if a.QueryEnd-a.QueryStart < f.cfg.MinOverlapLength || a.TargetEnd-a.TargetStart < f.cfg.MinOverlapLength {
		return
	}
	if a.Identity() < f.cfg.MinPercentIdentity {
		return
	}

	q := f.Reads.GetOrCreate(a.QueryName, a.QueryLen)
	t := f.Reads.GetOrCreate(a.TargetName, a.TargetLen)

	q.AddCoverage(a.QueryStart, a.QueryEnd)
	t.AddCoverage(a.TargetStart, a.TargetEnd)

	key := normalize(q.ID, t.ID)
	if existing, ok := f.kept[key]; ok {
		if a.BlockLen > existing.BlockLen {
			f.kept[key] = a
		}
		return
	}
	f.kept[key] = a
}

// Classify runs Pass 2 (coverage windows) and Pass 3 (classification plus
// the contained/low-coverage post-filter) and returns the surviving
// proper overlaps.
func (f *Filter) Classify() []Overlap {
	f.Reads.Each(func(r *readset.Read) { r.ComputeWindow(f.cfg.MinOverlapCount) })

	overlaps := make([]Overlap, 0, len(f.kept))
	for _, a := range f.kept {
		q, _ := f.Reads.Lookup(a.QueryName)
		t, _ := f.Reads.Lookup(a.TargetName)
		kind, ov, containedQuery, containedTarget := classifyOne(a, q, t, f.cfg)
		switch kind {
		case KindInternal:
			f.log("internal match discarded: %s vs %s", a.QueryName, a.TargetName)
		case KindFirstContained:
			q.Contained = true
		case KindSecondContained:
			t.Contained = true
		case KindTooShort:
			f.log("overlap too short, discarded: %s vs %s", a.QueryName, a.TargetName)
		case KindRejectedNonPositive:
			f.log("non-positive edge length under raw coordinates, discarded: %s vs %s", a.QueryName, a.TargetName)
		case KindProper:
			overlaps = append(overlaps, *ov)
		}
		_ = containedQuery
		_ = containedTarget
	}

	return f.postFilter(overlaps)
}

// postFilter applies spec.md §4.1's post-filter: contained-read removal
// strictly before low-coverage removal (spec.md §9 resolves the ordering
// ambiguity this way).
func (f *Filter) postFilter(overlaps []Overlap) []Overlap {
	out := overlaps[:0]
	for _, ov := range overlaps {
		qr := f.Reads.ByID(ov.Source.Read)
		tr := f.Reads.ByID(ov.Sink.Read)
		if qr.Contained || tr.Contained {
			continue
		}
		out = append(out, ov)
	}
	overlaps = out

	out = overlaps[:0]
	for _, ov := range overlaps {
		qr := f.Reads.ByID(ov.Source.Read)
		tr := f.Reads.ByID(ov.Sink.Read)
		if qr.MaxCoverage < f.cfg.MinOverlapCount || tr.MaxCoverage < f.cfg.MinOverlapCount {
			continue
		}
		out = append(out, ov)
	}
	return out
}

func ceilDiv(v float64) int {
	return int(math.Ceil(v))
}

// classifyOne implements the decision tree of spec.md §4.1 for a single
// alignment, given its two reads' coverage-refined windows.
func classifyOne(a *Alignment, q, t *readset.Read, cfg Config) (kind Kind, ov *Overlap, containedQuery, containedTarget bool) {
	b1 := max(a.QueryStart, q.CoverageStart)
	e1 := min(a.QueryEnd, q.CoverageEnd)
	l1 := q.CoverageEnd - q.CoverageStart

	var b2, e2, l2 int
	var rawB2, rawE2, rawL2 int
	if a.Strand == graph.Minus {
		rawB2, rawE2 = a.TargetLen-a.TargetEnd, a.TargetLen-a.TargetStart
	} else {
		rawB2, rawE2 = a.TargetStart, a.TargetEnd
	}
	rawL2 = t.CoverageEnd - t.CoverageStart
	b2 = max(rawB2, t.CoverageStart)
	e2 = min(rawE2, t.CoverageEnd)
	l2 = rawL2

	overhang := min(b1, b2) + min(l1-e1, l2-e2)
	overlapLength := max(e1-b1, e2-b2)
	allowed := ceilDiv(float64(overlapLength) * cfg.OverhangRatio)

	switch {
	case overhang > allowed:
		return KindInternal, nil, false, false
	case b1 <= b2 && (l1-e1) <= (l2-e2):
		return KindFirstContained, nil, true, false
	case b1 >= b2 && (l1-e1) >= (l2-e2):
		return KindSecondContained, nil, false, true
	case e1-b1+overhang < cfg.MinOverlapLength || e2-b2+overhang < cfg.MinOverlapLength:
		return KindTooShort, nil, false, false
	}

	queryFirst := b1 > b2
	var edgeLen, rcEdgeLen int
	if queryFirst {
		edgeLen = b1 - b2
		rcEdgeLen = (l2 - e2) - (l1 - e1)
	} else {
		edgeLen = b2 - b1
		rcEdgeLen = (l1 - e1) - (l2 - e2)
	}

	rawB1, rawE1, rawL1 := a.QueryStart, a.QueryEnd, a.QueryLen
	rawL2Full := a.TargetLen
	var edgeLenOrig, rcEdgeLenOrig int
	if queryFirst {
		edgeLenOrig = rawB1 - rawB2
		rcEdgeLenOrig = (rawL2Full - rawE2) - (rawL1 - rawE1)
	} else {
		edgeLenOrig = rawB2 - rawB1
		rcEdgeLenOrig = (rawL1 - rawE1) - (rawL2Full - rawE2)
	}
	if edgeLenOrig <= 0 || rcEdgeLenOrig <= 0 {
		return KindRejectedNonPositive, nil, false, false
	}

	qNode := graph.NodeID{Read: q.ID, Strand: graph.Plus}
	tNode := graph.NodeID{Read: t.ID, Strand: graph.Plus}
	if a.Strand == graph.Minus {
		tNode.Strand = graph.Minus
	}

	var source, sink graph.NodeID
	if queryFirst {
		source, sink = qNode, tNode
	} else {
		source, sink = tNode, qNode
	}

	result := &Overlap{
		Source:        source,
		Sink:          sink,
		RCSource:      sink.RC(),
		RCSink:        source.RC(),
		EdgeLen:       edgeLen,
		RCEdgeLen:     rcEdgeLen,
		EdgeLenOrig:   edgeLenOrig,
		RCEdgeLenOrig: rcEdgeLenOrig,
		OverlapLen:    overlapLength,
		Identity:      a.Identity(),
	}
	return KindProper, result, false, false
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func (f *Filter) String() string {
	return fmt.Sprintf("Filter{reads=%d, pairs=%d}", f.Reads.Len(), len(f.kept))
}
