// Copyright ©2024 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ioformat

import (
	"fmt"
	"io"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fastq"
	"github.com/biogo/biogo/seq"
	"github.com/biogo/biogo/seq/linear"
)

// ReadFASTQSequences reads every four-line FASTQ record from r (spec.md §6)
// and returns the read sequences keyed by name, ready for
// readset.Set.LoadSequences. It follows the same seqio.Scanner idiom the
// teacher uses for FASTA input (seqlen.go, seqstats.go), applied to
// io/seqio/fastq's sibling reader.
func ReadFASTQSequences(r io.Reader) (map[string]seq.Sequence, error) {
	fr := fastq.NewReader(r, linear.NewSeq("", nil, alphabet.DNA))
	sc := seqio.NewScanner(fr)

	out := make(map[string]seq.Sequence)
	for sc.Next() {
		s := sc.Seq()
		out[s.Name()] = s
	}
	if err := sc.Error(); err != nil {
		return nil, fmt.Errorf("ioformat: read FASTQ: %w", err)
	}
	return out, nil
}
