// Copyright (c) 2026 The Treap-vs-BST-Comparison developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"io"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/btcsuite/btclog"
	"golang.org/x/sync/errgroup"

	"github.com/ZakiNabeel/Treap-vs-BST-Comparison/feedtree"
	"github.com/ZakiNabeel/Treap-vs-BST-Comparison/stream"
)

var (
	cfg *config
	log btclog.Logger
)

// donor is one partition's treap along with the time it took to build, ready
// to be folded into the master tree.
type donor struct {
	tree      *feedtree.Treap
	buildTime time.Duration
}

// partitionResults houses the stats of a completed partition run.
type partitionResults struct {
	partitions int
	posts      int64
	buildTime  time.Duration
	mergeTime  time.Duration
}

// interruptListener returns a channel that is closed when SIGINT (Ctrl+C) is
// received so the run can finalize its metrics instead of discarding them.
func interruptListener() <-chan struct{} {
	c := make(chan struct{})

	go func() {
		interruptChannel := make(chan os.Signal, 1)
		signal.Notify(interruptChannel, os.Interrupt)

		sig := <-interruptChannel
		log.Infof("Received signal (%s).  Finalizing metrics...", sig)

		close(c)
	}()

	return c
}

// interruptRequested returns true when the channel returned by
// interruptListener was closed.
func interruptRequested(interrupted <-chan struct{}) bool {
	select {
	case <-interrupted:
		return true
	default:
	}

	return false
}

// importPartitions pulls fixed-size chunks from the stream, builds one fresh
// treap per chunk, and folds each into the master tree via Union.  The stages
// run concurrently so the next partition is being read and built while the
// previous one merges, but the master tree itself is only ever touched by
// this goroutine.  Peak memory stays at roughly one chunk plus the master.
func importPartitions(reader *stream.Reader, master *feedtree.Treap,
	interrupt <-chan struct{}) (*partitionResults, error) {

	chunks := make(chan []feedtree.Post, 1)
	donors := make(chan donor, 1)

	var g errgroup.Group

	// Read the stream into chunk slices.
	g.Go(func() error {
		defer close(chunks)

		var total int64
		for !interruptRequested(interrupt) {
			posts := make([]feedtree.Post, 0, cfg.ChunkSize)
			for len(posts) < cfg.ChunkSize {
				if cfg.Limit > 0 && total >= cfg.Limit {
					break
				}
				post, err := reader.Next()
				if err == io.EOF {
					break
				}
				if err != nil {
					return err
				}
				posts = append(posts, post)
				total++
			}
			if len(posts) == 0 {
				return nil
			}
			chunks <- posts
		}
		return nil
	})

	// Build an independent treap per chunk.
	g.Go(func() error {
		defer close(donors)

		for posts := range chunks {
			t0 := time.Now()
			tree := feedtree.NewTreap()
			for _, post := range posts {
				tree.Insert(post)
			}
			donors <- donor{tree: tree, buildTime: time.Since(t0)}
		}
		return nil
	})

	// Fold each partition into the master.  Union consumes the donor tree,
	// which is exactly what bounds the memory: after the merge only the
	// master retains the nodes.
	res := &partitionResults{}
	for d := range donors {
		merged := d.tree.Len()

		t0 := time.Now()
		master.Union(d.tree)
		mergeTime := time.Since(t0)

		res.partitions++
		res.posts += int64(merged)
		res.buildTime += d.buildTime
		res.mergeTime += mergeTime

		log.Infof("Partition %d: built %v, merged %v, %d posts "+
			"(total %d)", res.partitions,
			d.buildTime.Round(time.Millisecond),
			mergeTime.Round(time.Millisecond), merged, res.posts)

		if res.posts/1000000 > (res.posts-int64(merged))/1000000 {
			log.Infof("Milestone: %dM posts indexed",
				res.posts/1000000)
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}

// realMain is the real main function for feedpart.  It is necessary to work
// around the fact that deferred functions do not run when os.Exit() is
// called.
func realMain() error {
	// Load configuration and parse command line.
	tcfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	cfg = tcfg

	// Setup logging.
	backendLogger := btclog.NewBackend(os.Stdout)
	defer os.Stdout.Sync()
	log = backendLogger.Logger("PART")
	strmLog := backendLogger.Logger("STRM")
	stream.UseLogger(strmLog)
	level, _ := btclog.LevelFromString(cfg.DebugLevel)
	log.SetLevel(level)
	strmLog.SetLevel(level)

	reader, err := stream.Open(cfg.InFile)
	if err != nil {
		log.Errorf("Failed to open %v: %v", cfg.InFile, err)
		return err
	}
	defer reader.Close()

	log.Infof("Partitioning %v into treaps of %d posts", cfg.InFile,
		cfg.ChunkSize)

	master := feedtree.NewTreap()
	start := time.Now()
	res, err := importPartitions(reader, master, interruptListener())
	if err != nil {
		log.Errorf("%v", err)
		return err
	}
	elapsed := time.Since(start)

	log.Infof("Processed %d posts in %d partitions in %v (build %v, "+
		"merge %v, %d lines skipped)", res.posts, res.partitions,
		elapsed.Round(time.Millisecond),
		res.buildTime.Round(time.Millisecond),
		res.mergeTime.Round(time.Millisecond), reader.Skipped())

	// The final structural metrics are the payoff of the whole run: they
	// show whether folding many independently built treaps into one kept
	// the logarithmic height.
	metrics := master.StructuralMetrics()
	log.Infof("Final tree: %d posts, height %d, avg balance factor %.2f, "+
		"%d total rotations", metrics.Nodes, metrics.Height,
		metrics.AvgBalance(), master.Rotations())

	return nil
}

func main() {
	// Use all processor cores.
	runtime.GOMAXPROCS(runtime.NumCPU())

	// Work around defer not working after os.Exit()
	if err := realMain(); err != nil {
		os.Exit(1)
	}
}
