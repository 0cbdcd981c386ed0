// Copyright ©2024 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ioformat

import (
	"fmt"
	"io"

	"github.com/biogo/biogo/io/seqio/fasta"

	"github.com/biogo/weave/readset"
	"github.com/biogo/weave/unitig"
)

// unwrapped is large enough that fasta.Writer never wraps a unitig
// sequence onto a second line, matching spec.md §6's single-line FASTA
// output contract.
const unwrapped = 1 << 30

// WriteUnitigFASTA writes one FASTA record per unitig (header
// `>unitig_<id> len=<member_count>` followed by its reconstructed
// sequence), in the idiom of seqlen.go/SplitGenome.go's fasta.Writer use.
func WriteUnitigFASTA(w io.Writer, unitigs []*unitig.Unitig, reads *readset.Set) error {
	fw := fasta.NewWriter(w, unwrapped)
	for _, u := range unitigs {
		seq, err := unitig.Sequence(u, reads)
		if err != nil {
			return fmt.Errorf("ioformat: reconstruct %s: %w", fmt.Sprintf("unitig_%d", u.ID), err)
		}
		seq.ID = fmt.Sprintf("unitig_%d", u.ID)
		seq.Desc = fmt.Sprintf("len=%d", u.Len())
		if _, err := fw.Write(seq); err != nil {
			return fmt.Errorf("ioformat: write %s: %w", seq.ID, err)
		}
	}
	return nil
}
