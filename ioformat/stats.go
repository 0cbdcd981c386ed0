// Copyright ©2024 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ioformat

import (
	"fmt"
	"io"
	"sort"

	"github.com/biogo/weave/readset"
	"github.com/biogo/weave/unitig"
)

// Summary reports assembly-level statistics over a set of unitigs, in the
// same shape seqstats.go computes for a multi-FASTA file.
type Summary struct {
	NumUnitigs int
	TotalLen   int
	Min        int
	Max        int
	Avg        int
	N50        int
}

// Summarize reconstructs every unitig's sequence length and computes the
// total/min/max/avg/N50 statistics seqstats.go reports for a FASTA file,
// applied here directly to the assembly's own unitigs.
func Summarize(unitigs []*unitig.Unitig, reads *readset.Set) (Summary, error) {
	var s Summary
	if len(unitigs) == 0 {
		return s, nil
	}

	lens := make([]int, 0, len(unitigs))
	for _, u := range unitigs {
		seq, err := unitig.Sequence(u, reads)
		if err != nil {
			return s, fmt.Errorf("ioformat: reconstruct unitig_%d: %w", u.ID, err)
		}
		l := seq.Len()
		lens = append(lens, l)
		s.TotalLen += l
	}

	s.NumUnitigs = len(lens)
	s.Min = lens[0]
	s.Max = lens[0]
	for _, l := range lens {
		if l < s.Min {
			s.Min = l
		}
		if l > s.Max {
			s.Max = l
		}
	}
	s.Avg = s.TotalLen / s.NumUnitigs

	sort.Sort(sort.Reverse(sort.IntSlice(lens)))
	csum := 0
	for _, l := range lens {
		csum += l
		if csum >= s.TotalLen/2 {
			s.N50 = l
			break
		}
	}

	return s, nil
}

// WriteSummary prints a Summary as key-value pairs, matching seqstats.go's
// own "%+v" report.
func WriteSummary(w io.Writer, s Summary) error {
	_, err := fmt.Fprintf(w, "%+v\n", s)
	return err
}
