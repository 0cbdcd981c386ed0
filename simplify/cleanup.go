// Copyright ©2024 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package simplify

import "github.com/biogo/weave/graph"

// Config collects the tunables for the Cleanup Driver (C8) and the passes
// it invokes.
type Config struct {
	Fuzz              int
	ShortEdgeRatio    float64
	MaxBubbleLength   int
	MinSupportRatio   float64
	MaxTipLen         int
	MinComponentSize  int
	CleanupIterations int
}

// Run executes C3 through C7 in the fixed order spec.md mandates, repeated
// for cfg.CleanupIterations passes. It does not check for convergence; the
// iteration count is the only control knob.
func Run(g *graph.Graph, cfg Config) {
	for i := 0; i < cfg.CleanupIterations; i++ {
		TransitiveReduce(g, cfg.Fuzz)
		g.DeduplicateEdges()
		PruneShortEdges(g, cfg.ShortEdgeRatio)
		PopBubbles(g, cfg.MaxBubbleLength, cfg.MinSupportRatio)
		g.PruneSmallComponents(cfg.MinComponentSize)
		TrimTips(g, cfg.MaxTipLen)
	}
}
