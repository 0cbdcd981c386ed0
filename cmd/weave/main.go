// Copyright ©2024 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// weave assembles a set of long reads de novo from their pairwise
// alignments, using the Overlap-Layout-Consensus paradigm: alignments are
// filtered and classified into an overlap graph, the graph is simplified
// by a fixed number of cleanup passes, and the result is compressed into
// unitigs written out
// as FASTA and a unitig-level graph description.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/biogo/weave/align"
	"github.com/biogo/weave/graph"
	"github.com/biogo/weave/ioformat"
	"github.com/biogo/weave/simplify"
	"github.com/biogo/weave/unitig"
)

var (
	pafName   string
	fastqName string
	fastaOut  string
	graphOut  string
	statsOut  string

	minOverlapLength   int
	minOverlapCount    uint
	minPercentIdentity float64
	overhangRatio      float64

	fuzz             int
	shortEdgeRatio   float64
	maxBubbleLength  int
	minSupportRatio  float64
	maxTipLen        int
	minComponentSize int
	cleanupIters     int

	bubbleIdentityWeight float64

	debug bool
)

func init() {
	flag.StringVar(&pafName, "paf", "", "Filename for PAF-style pairwise alignments. Required.")
	flag.StringVar(&fastqName, "fastq", "", "Filename for FASTQ read sequences. Required.")
	flag.StringVar(&fastaOut, "fasta-out", "", "Filename for unitig FASTA output. Defaults to stdout.")
	flag.StringVar(&graphOut, "graph-out", "", "Filename for unitig-level graph output.")
	flag.StringVar(&statsOut, "stats-out", "", "Filename for assembly summary statistics.")

	flag.IntVar(&minOverlapLength, "min-overlap-length", 1000, "Minimum aligned span, in bases, to consider an alignment.")
	flag.UintVar(&minOverlapCount, "min-overlap-count", 3, "Per-base coverage threshold for a read's high-coverage window.")
	flag.Float64Var(&minPercentIdentity, "min-percent-identity", 90, "Minimum percent identity to keep an alignment.")
	flag.Float64Var(&overhangRatio, "overhang-ratio", 0.1, "Allowed overhang as a fraction of overlap length.")

	flag.IntVar(&fuzz, "fuzz", 10, "Length tolerance for transitive reduction.")
	flag.Float64Var(&shortEdgeRatio, "short-edge-ratio", 0.8, "Outgoing overlap-length drop ratio for the short-edge pruner.")
	flag.IntVar(&maxBubbleLength, "max-bubble-length", 50000, "Maximum depth explored by the bubble remover's bounded search.")
	flag.Float64Var(&minSupportRatio, "min-support-ratio", 1.1, "Minimum score ratio required to pop a bubble.")
	flag.IntVar(&maxTipLen, "max-tip-len", 4, "Maximum chain length removed by the tip trimmer.")
	flag.IntVar(&minComponentSize, "min-component-size", 2, "Minimum weakly connected component size kept by the component pruner.")
	flag.IntVar(&cleanupIters, "cleanup-iterations", 2, "Number of C3-C7 cleanup passes to run.")

	flag.Float64Var(&bubbleIdentityWeight, "bubble-identity-weight", 200.0, "Identity weight factor in bubble path scoring.")

	flag.BoolVar(&debug, "debug", false, "Print graph node and edge counts before and after cleanup.")

	help := flag.Bool("help", false, "Print usage message.")

	flag.Parse()
	if *help {
		flag.Usage()
		os.Exit(0)
	}

	if pafName == "" || fastqName == "" {
		log.Println("both -paf and -fastq are required")
		flag.Usage()
		os.Exit(1)
	}
}

func main() {
	simplify.SetBubbleIdentityWeight(bubbleIdentityWeight)

	pafFile, err := os.Open(pafName)
	if err != nil {
		log.Fatalf("failed to open %q: %v", pafName, err)
	}
	defer pafFile.Close()

	fastqFile, err := os.Open(fastqName)
	if err != nil {
		log.Fatalf("failed to open %q: %v", fastqName, err)
	}
	defer fastqFile.Close()

	log.Println("filtering alignments ... C1")
	cfg := align.Config{
		MinOverlapLength:   minOverlapLength,
		MinOverlapCount:    uint32(minOverlapCount),
		MinPercentIdentity: minPercentIdentity,
		OverhangRatio:      overhangRatio,
	}
	filter := align.NewFilter(cfg, log.Printf)

	sc := ioformat.NewPAFScanner(pafFile, log.Printf)
	var nRecords int
	for sc.Next() {
		a := sc.Alignment()
		filter.Add(&a)
		nRecords++
	}
	if err := sc.Err(); err != nil {
		log.Fatalf("failed reading %q: %v", pafName, err)
	}
	log.Printf("ingested %d alignment records, %d reads seen\n", nRecords, filter.Reads.Len())

	overlaps := filter.Classify()
	log.Printf("classified %d proper overlaps\n", len(overlaps))

	log.Println("loading read sequences")
	seqs, err := ioformat.ReadFASTQSequences(fastqFile)
	if err != nil {
		log.Fatalf("failed reading %q: %v", fastqName, err)
	}
	filter.Reads.LoadSequences(seqs)

	log.Println("building overlap graph ... C2")
	g, err := align.BuildGraph(overlaps)
	if err != nil {
		log.Printf("warning: %v", err)
	}
	log.Printf("graph has %d oriented nodes\n", g.NumNodes())

	log.Println("simplifying graph ... C8{C3,C4,C5,C6,C7}")
	if debug {
		debugDump(g)
	}
	simplify.Run(g, simplify.Config{
		Fuzz:              fuzz,
		ShortEdgeRatio:    shortEdgeRatio,
		MaxBubbleLength:   maxBubbleLength,
		MinSupportRatio:   minSupportRatio,
		MaxTipLen:         maxTipLen,
		MinComponentSize:  minComponentSize,
		CleanupIterations: cleanupIters,
	})
	if debug {
		debugDump(g)
	}

	log.Println("compressing unitigs ... C9")
	unitigs := unitig.Compress(g)
	edges := unitig.InterUnitigEdges(g, unitigs)
	log.Printf("produced %d unitigs, %d inter-unitig edges\n", len(unitigs), len(edges))

	var fastaW = os.Stdout
	if fastaOut != "" {
		f, err := os.Create(fastaOut)
		if err != nil {
			log.Fatalf("failed to create %q: %v", fastaOut, err)
		}
		defer f.Close()
		fastaW = f
	}
	if err := ioformat.WriteUnitigFASTA(fastaW, unitigs, filter.Reads); err != nil {
		log.Fatalf("failed writing FASTA output: %v", err)
	}

	if graphOut != "" {
		f, err := os.Create(graphOut)
		if err != nil {
			log.Fatalf("failed to create %q: %v", graphOut, err)
		}
		defer f.Close()
		if err := ioformat.WriteUnitigGraph(f, unitigs, edges, filter.Reads); err != nil {
			log.Fatalf("failed writing graph output: %v", err)
		}
	}

	summary, err := ioformat.Summarize(unitigs, filter.Reads)
	if err != nil {
		log.Fatalf("failed computing summary statistics: %v", err)
	}
	if statsOut != "" {
		f, err := os.Create(statsOut)
		if err != nil {
			log.Fatalf("failed to create %q: %v", statsOut, err)
		}
		defer f.Close()
		if err := ioformat.WriteSummary(f, summary); err != nil {
			log.Fatalf("failed writing summary statistics: %v", err)
		}
	} else {
		ioformat.WriteSummary(os.Stderr, summary)
	}
}

func debugDump(g *graph.Graph) {
	ids := g.Snapshot()
	var edges int
	for _, id := range ids {
		edges += g.OutDegree(id)
	}
	log.Printf("debug: graph has %d nodes, %d directed edges\n", len(ids), edges)
}
