// Copyright ©2024 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package readset holds the set of reads seen during alignment filtering,
// their dense identifiers, and the per-base coverage accounting used to
// derive each read's high-coverage window.
package readset

import (
	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/seq"
	"github.com/biogo/biogo/seq/linear"
	"github.com/biogo/store/step"
)

// ID is a dense, zero-based read identifier assigned in order of first
// appearance in the alignment stream.
type ID int

// Read describes one input long read: its name, length, accumulated
// per-base coverage and the coverage-refined window derived from it.
type Read struct {
	ID     ID
	Name   string
	Length int

	// Sequence holds the read's bases, set by LoadSequences. It is nil
	// until sequences are loaded from a FASTQ/FASTA source.
	Sequence seq.Sequence

	// CoverageStart and CoverageEnd bound the longest contiguous run of
	// bases whose coverage strictly exceeds the configured threshold.
	// They are zero-length until ComputeWindow has run.
	CoverageStart, CoverageEnd int

	// MaxCoverage is the highest per-base coverage depth observed for
	// this read, retained after the coverage vector itself is released.
	MaxCoverage uint32

	// Contained marks a read whose aligned region was found, during
	// classification, to lie entirely within another read.
	Contained bool

	cov *step.Vector
}

// coverageCount is the per-base accumulator stored in the coverage vector.
// It satisfies step.Equaler.
type coverageCount uint32

func (c coverageCount) Equal(e step.Equaler) bool { return c == e.(coverageCount) }

func newCoverage(length int) *step.Vector {
	if length <= 0 {
		length = 1
	}
	v, err := step.New(0, length, coverageCount(0))
	if err != nil {
		// step.New only errors on an inverted range, which cannot
		// happen given the guard above.
		panic(err)
	}
	return v
}

// AddCoverage increments the per-base coverage of the read over [start,end).
// Coordinates are clamped to the read's length.
func (r *Read) AddCoverage(start, end int) {
	if r.cov == nil {
		r.cov = newCoverage(r.Length)
	}
	if start < 0 {
		start = 0
	}
	if end > r.Length {
		end = r.Length
	}
	if start >= end {
		return
	}
	err := r.cov.ApplyRange(start, end, func(e step.Equaler) step.Equaler {
		return e.(coverageCount) + 1
	})
	if err != nil {
		// Out of range requests are a caller bug, not an input error;
		// clamping above should make this unreachable.
		panic(err)
	}
}

// ComputeWindow finds the longest contiguous run of bases whose coverage
// strictly exceeds minOverlapCount and records it as [CoverageStart,
// CoverageEnd). It also records MaxCoverage. The coverage vector is
// released afterwards so memory does not accumulate across the read set.
func (r *Read) ComputeWindow(minOverlapCount uint32) {
	if r.cov == nil {
		r.CoverageStart, r.CoverageEnd = 0, 0
		return
	}

	var (
		curStart, curEnd   = -1, -1
		bestStart, bestEnd int
		max                uint32
	)
	flush := func() {
		if curEnd-curStart > bestEnd-bestStart {
			bestStart, bestEnd = curStart, curEnd
		}
		curStart, curEnd = -1, -1
	}
	r.cov.Do(func(start, end int, e step.Equaler) {
		v := uint32(e.(coverageCount))
		if v > max {
			max = v
		}
		if v > minOverlapCount {
			if curStart == -1 {
				curStart = start
			}
			curEnd = end
		} else {
			flush()
		}
	})
	flush()

	r.CoverageStart, r.CoverageEnd = bestStart, bestEnd
	r.MaxCoverage = max
	r.cov = nil
}

// Set is the collection of reads seen so far, keyed by name, with dense
// identifiers assigned on first sight.
type Set struct {
	byName map[string]ID
	reads  []*Read
}

// NewSet returns an empty read set.
func NewSet() *Set {
	return &Set{byName: make(map[string]ID)}
}

// GetOrCreate returns the Read for name, creating it with the given length
// if this is the first time name has been seen. An existing read's length
// is never altered by a later call.
func (s *Set) GetOrCreate(name string, length int) *Read {
	if id, ok := s.byName[name]; ok {
		return s.reads[id]
	}
	id := ID(len(s.reads))
	r := &Read{ID: id, Name: name, Length: length}
	s.byName[name] = id
	s.reads = append(s.reads, r)
	return r
}

// Lookup returns the Read for name, if one has been created.
func (s *Set) Lookup(name string) (*Read, bool) {
	id, ok := s.byName[name]
	if !ok {
		return nil, false
	}
	return s.reads[id], true
}

// ByID returns the Read for a previously assigned identifier.
func (s *Set) ByID(id ID) *Read {
	return s.reads[id]
}

// Len returns the number of distinct reads seen.
func (s *Set) Len() int { return len(s.reads) }

// Each calls fn for every read in identifier order.
func (s *Set) Each(fn func(*Read)) {
	for _, r := range s.reads {
		fn(r)
	}
}

// LoadSequences attaches nucleotide sequences to reads already present in
// the set, looked up by name. Names with no matching read are ignored;
// reads with no matching sequence are left with a nil Sequence.
func (s *Set) LoadSequences(seqs map[string]seq.Sequence) {
	for name, sq := range seqs {
		if r, ok := s.Lookup(name); ok {
			r.Sequence = sq
		}
	}
}

// NewDNA wraps raw bases as a linear DNA sequence, the representation
// used throughout the assembler for read and unitig sequences.
func NewDNA(name string, bases []byte) *linear.Seq {
	return linear.NewSeq(name, alphabet.BytesToLetters(bases), alphabet.DNA)
}
