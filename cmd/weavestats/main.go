// Copyright ©2024 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// weavestats reports assembly summary statistics (total size, min, max,
// average and N50) for an existing unitig FASTA file, the way seqstats
// does for any multi-FASTA assembly.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
)

const maxInt = int(^uint(0) >> 1)

type stats struct {
	NumSeqs int
	Size    int
	Min     int
	Max     int
	Avg     int
	N50     int
}

var (
	fastaName = flag.String("fasta", "", "Filename for unitig FASTA input. Defaults to stdin.")
	help      = flag.Bool("help", false, "Print usage message.")
)

func main() {
	flag.Parse()
	if *help {
		flag.Usage()
		os.Exit(0)
	}

	var in *fasta.Reader
	if *fastaName == "" {
		in = fasta.NewReader(os.Stdin, linear.NewSeq("", nil, alphabet.DNA))
	} else if f, err := os.Open(*fastaName); err != nil {
		log.Fatalf("failed to open %q: %v", *fastaName, err)
	} else {
		defer f.Close()
		in = fasta.NewReader(f, linear.NewSeq("", nil, alphabet.DNA))
	}

	var s stats
	s.Min = maxInt
	var lens []int

	sc := seqio.NewScanner(in)
	for sc.Next() {
		l := sc.Seq().Len()
		s.NumSeqs++
		s.Size += l
		lens = append(lens, l)
		if l < s.Min {
			s.Min = l
		}
		if l > s.Max {
			s.Max = l
		}
	}
	if err := sc.Error(); err != nil {
		log.Fatalf("failed reading FASTA: %v", err)
	}
	if s.NumSeqs == 0 {
		log.Fatal("no sequences found")
	}
	s.Avg = s.Size / s.NumSeqs

	sort.Sort(sort.Reverse(sort.IntSlice(lens)))
	csum := 0
	for _, l := range lens {
		csum += l
		if csum >= s.Size/2 {
			s.N50 = l
			break
		}
	}

	fmt.Printf("%+v\n", s)
}
