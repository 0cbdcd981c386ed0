// Copyright ©2024 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ioformat

import (
	"bufio"
	"fmt"
	"io"

	"github.com/biogo/weave/readset"
	"github.com/biogo/weave/unitig"
)

// WriteUnitigGraph emits the unitig-level graph description of spec.md
// §6: a header line, one segment line per unitig carrying its
// reconstructed sequence, and one link line per inter-unitig edge with
// the overlap length rendered as a CIGAR-style "<N>M" string. There is no
// GFA-aware library anywhere in the pack (bíogo has no graph-format
// writer), so this writes through a plain bufio.Writer, in the same
// hand-rolled style as the PAF reader's bufio.Scanner parser.
func WriteUnitigGraph(w io.Writer, unitigs []*unitig.Unitig, edges []unitig.Edge, reads *readset.Set) error {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprint(bw, "H\tVN:Z:1.0\n"); err != nil {
		return err
	}

	for _, u := range unitigs {
		seq, err := unitig.Sequence(u, reads)
		if err != nil {
			return fmt.Errorf("ioformat: reconstruct unitig_%d: %w", u.ID, err)
		}
		if _, err := fmt.Fprintf(bw, "S\tunitig_%d\t%s\n", u.ID, seq); err != nil {
			return err
		}
	}

	for _, e := range edges {
		if _, err := fmt.Fprintf(bw, "L\tunitig_%d\t+\tunitig_%d\t+\t%dM\n", e.From, e.To, e.OverlapLen); err != nil {
			return err
		}
	}

	return bw.Flush()
}
