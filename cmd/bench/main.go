// Command bench runs the search core over a fixed suite of positions and
// reports timing and node-count statistics, merging what the teacher split
// across cmd/benchrun (test-suite driver) and cmd/searchbench (single-search
// profiling harness) into one tool.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/goosecorp/laserchess/engine"
	"github.com/goosecorp/laserchess/position"
)

// suite is a small, fixed set of positions exercising the opening, a sharp
// middlegame and an endgame, in the spirit of the teacher's Kiwipete-style
// benchrun fixtures.
var suite = []struct {
	label string
	fen   string
}{
	{"startpos", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"},
	{"kiwipete", "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"},
	{"endgame-rook", "8/8/8/8/8/2k5/8/R3K3 w - - 0 1"},
}

type outcome struct {
	label   string
	depth   int
	elapsed time.Duration
	nodes   uint64
	best    string
}

func main() {
	depth := flag.Int("depth", 8, "search depth in plies for every position in the suite")
	cpuProfile := flag.String("cpuprofile", "", "write CPU profile to file")
	flag.Parse()

	if *depth <= 0 {
		log.Fatalf("depth must be positive, got %d", *depth)
	}

	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			log.Fatalf("could not create CPU profile: %v", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatalf("could not start CPU profile: %v", err)
		}
		defer pprof.StopCPUProfile()
		defer f.Close()
	}

	// Each position gets its own single-threaded Searcher; running the
	// independent searches concurrently only parallelizes the benchmark
	// harness, never a single search tree.
	g, _ := errgroup.WithContext(context.Background())
	results := make([]outcome, len(suite))
	var mu sync.Mutex

	for i, pos := range suite {
		i, pos := i, pos
		g.Go(func() error {
			board, err := position.FromFEN(pos.fen)
			if err != nil {
				return fmt.Errorf("%s: %w", pos.label, err)
			}
			searcher := engine.NewSearcher(16)

			start := time.Now()
			res := searcher.StartSearch(board, engine.ModeDepth, *depth)
			elapsed := time.Since(start)

			mu.Lock()
			results[i] = outcome{
				label:   pos.label,
				depth:   *depth,
				elapsed: elapsed,
				nodes:   res.Nodes,
				best:    res.Best.String(),
			}
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		log.Fatal(err)
	}

	sort.Slice(results, func(i, j int) bool { return results[i].label < results[j].label })

	fmt.Println("LABEL \t\tDEPTH \tBESTMOVE \tNODES \tTIME")
	for _, r := range results {
		fmt.Printf("%s \t\t%d \t%s \t\t%d \t%s\n", r.label, r.depth, r.best, r.nodes, r.elapsed)
	}
}
