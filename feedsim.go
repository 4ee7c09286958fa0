// Copyright (c) 2026 The Treap-vs-BST-Comparison developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"io"
	"math/rand"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"github.com/ZakiNabeel/Treap-vs-BST-Comparison/feedtree"
	"github.com/ZakiNabeel/Treap-vs-BST-Comparison/stream"
)

var cfg *config

// feedsimMain is the real main function for feedsim.  It is necessary to work
// around the fact that deferred functions do not run when os.Exit() is
// called.
func feedsimMain() error {
	// Load configuration and parse command line.  This function also
	// initializes logging and configures it accordingly.
	tcfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	cfg = tcfg
	defer func() {
		if logRotator != nil {
			logRotator.Close()
		}
	}()

	// Show version at startup.
	feedLog.Infof("Version %s", version())

	// Write cpu profile if requested.
	if cfg.CPUProfile != "" {
		f, err := os.Create(cfg.CPUProfile)
		if err != nil {
			feedLog.Errorf("Unable to create cpu profile: %v", err)
			return err
		}
		pprof.StartCPUProfile(f)
		defer f.Close()
		defer pprof.StopCPUProfile()
	}

	if cfg.Scenario {
		runScenario()
		return nil
	}

	return runSimulation(interruptListener())
}

// runSimulation streams posts from the configured input file into the
// selected index(es), interleaving simulated likes on already-seen posts, and
// prints the comparison report once the stream is exhausted, the configured
// limit is reached, or the run is interrupted.
func runSimulation(interrupt <-chan struct{}) error {
	reader, err := stream.Open(cfg.Input)
	if err != nil {
		feedLog.Errorf("Failed to open %v: %v", cfg.Input, err)
		return err
	}
	defer reader.Close()

	var bst *feedtree.BST
	var treap *feedtree.Treap
	if cfg.Tree == "bst" || cfg.Tree == "both" {
		bst = feedtree.NewBST()
	}
	if cfg.Tree == "treap" || cfg.Tree == "both" {
		treap = feedtree.NewTreap()
	}

	// The like simulation draws from the ids seen so far, so the same seed
	// over the same input replays the identical update sequence.
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	feedLog.Debugf("Like simulation seeded with %d", seed)

	feedLog.Infof("Streaming posts from %v", cfg.Input)
	var seenIDs []string
	var bstInsert, treapInsert time.Duration
	var count int64
	start := time.Now()

	for cfg.Limit == 0 || count < cfg.Limit {
		if interruptRequested(interrupt) {
			feedLog.Warnf("Ingest interrupted after %d posts", count)
			break
		}

		post, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			feedLog.Errorf("Failed to read post stream: %v", err)
			return err
		}

		count++
		seenIDs = append(seenIDs, post.ID)
		if bst != nil {
			t0 := time.Now()
			bst.Insert(post)
			bstInsert += time.Since(t0)
		}
		if treap != nil {
			t0 := time.Now()
			treap.Insert(post)
			treapInsert += time.Since(t0)
		}

		// Periodically simulate a batch of likes on random posts that
		// are already indexed.  The score change is where the two
		// structures diverge: the baseline tree only bumps a counter
		// while the treap restructures to keep its heap order.
		if cfg.LikeInterval > 0 && count%int64(cfg.LikeInterval) == 0 {
			for i := 0; i < cfg.LikeCount; i++ {
				id := seenIDs[rng.Intn(len(seenIDs))]
				if bst != nil {
					bst.UpdateScore(id, 1)
				}
				if treap != nil {
					treap.UpdateScore(id, 1)
				}
			}
		}

		if count%10000 == 0 {
			feedLog.Infof("Inserted %d posts...", count)
		}
	}

	elapsed := time.Since(start)
	feedLog.Infof("Ingested %d posts in %v (%d undecodable lines skipped)",
		count, elapsed.Round(time.Millisecond), reader.Skipped())

	res := &simResult{
		posts:   count,
		skipped: reader.Skipped(),
		elapsed: elapsed,
	}
	if bst != nil {
		res.bst = collectBST(bst, bstInsert, cfg.Recent)
	}
	if treap != nil {
		res.treap = collectTreap(treap, treapInsert, cfg.Recent)
	}
	printReport(os.Stdout, res)
	return nil
}

// runScenario executes the fixed five-post walkthrough on both indexes: a
// batch of inserts with one late high-timestamp post, two likes on that post,
// one delete, and the two queries.  The sequence is small enough to check the
// resulting structures by hand, which is exactly what the debug-level tree
// dumps are for.
func runScenario() {
	posts := []feedtree.Post{
		{ID: "a", Timestamp: 100, Score: 55},
		{ID: "b", Timestamp: 100, Score: 12},
		{ID: "c", Timestamp: 100, Score: 27},
		{ID: "d", Timestamp: 100, Score: 14},
		{ID: "e", Timestamp: 109, Score: 13},
	}

	bst := feedtree.NewBST()
	treap := feedtree.NewTreap()
	for _, post := range posts {
		bst.Insert(post)
		treap.Insert(post)
		feedLog.Infof("Inserted %v", &post)
	}

	feedLog.Info("Liking post e twice")
	treap.UpdateScore("e", 1)
	treap.UpdateScore("e", 1)
	bst.UpdateScore("e", 1)
	bst.UpdateScore("e", 1)

	feedLog.Info("Deleting post b")
	treap.Delete("b")
	bst.Delete("b")

	feedLog.Debugf("BST structure:\n%v",
		newLogClosure(func() string { return bst.Dump() }))
	feedLog.Debugf("Treap structure:\n%v",
		newLogClosure(func() string { return treap.Dump() }))

	feedLog.Infof("Most popular (BST, full scan):   %v", bst.MostPopular())
	feedLog.Infof("Most popular (treap, root read): %v", treap.MostPopular())
	for _, post := range treap.MostRecent(1) {
		feedLog.Infof("Most recent: %v", post)
	}
	feedLog.Infof("Treap rotations performed: %d", treap.Rotations())
}

func main() {
	// Use all processor cores.
	runtime.GOMAXPROCS(runtime.NumCPU())

	// Work around defer not working after os.Exit()
	if err := feedsimMain(); err != nil {
		os.Exit(1)
	}
}
