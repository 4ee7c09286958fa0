// Copyright (c) 2026 The Treap-vs-BST-Comparison developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/davecgh/go-spew/spew"

	"github.com/ZakiNabeel/Treap-vs-BST-Comparison/feedtree"
)

// treeResult captures the final measurements for one index.
type treeResult struct {
	len         int
	insertTime  time.Duration
	comparisons int64
	rotations   int64
	popular     *feedtree.Post
	popularTime time.Duration
	metrics     feedtree.StructuralMetrics
	recent      []*feedtree.Post
}

// simResult aggregates the measurements of a simulation run.  One of the tree
// results may be nil when the run only exercised a single index.
type simResult struct {
	posts   int64
	skipped int64
	elapsed time.Duration
	bst     *treeResult
	treap   *treeResult
}

// collectBST runs the final queries against the baseline tree and packages
// the measurements for the report.
func collectBST(t *feedtree.BST, insertTime time.Duration, k int) *treeResult {
	t0 := time.Now()
	popular := t.MostPopular()
	popularTime := time.Since(t0)

	res := &treeResult{
		len:         t.Len(),
		insertTime:  insertTime,
		comparisons: t.Comparisons(),
		popular:     popular,
		popularTime: popularTime,
		metrics:     t.StructuralMetrics(),
		recent:      t.MostRecent(k),
	}
	feedLog.Debugf("BST metrics: %v",
		newLogClosure(func() string { return spew.Sdump(res.metrics) }))
	return res
}

// collectTreap runs the final queries against the treap and packages the
// measurements for the report.
func collectTreap(t *feedtree.Treap, insertTime time.Duration, k int) *treeResult {
	t0 := time.Now()
	popular := t.MostPopular()
	popularTime := time.Since(t0)

	res := &treeResult{
		len:         t.Len(),
		insertTime:  insertTime,
		comparisons: t.Comparisons(),
		rotations:   t.Rotations(),
		popular:     popular,
		popularTime: popularTime,
		metrics:     t.StructuralMetrics(),
		recent:      t.MostRecent(k),
	}
	feedLog.Debugf("Treap metrics: %v",
		newLogClosure(func() string { return spew.Sdump(res.metrics) }))
	return res
}

// printReport writes the final comparison table.  Columns for an index that
// was not part of the run are filled with a dash.
func printReport(w io.Writer, res *simResult) {
	cell := func(tr *treeResult, format func(*treeResult) string) string {
		if tr == nil {
			return "-"
		}
		return format(tr)
	}

	fmt.Fprintf(w, "\n=== FINAL RESULTS ===\n")
	fmt.Fprintf(w, "Posts streamed: %d (skipped %d), total time %v\n\n",
		res.posts, res.skipped, res.elapsed.Round(time.Millisecond))

	row := func(label, bstVal, treapVal string) {
		fmt.Fprintf(w, "%-25s | %-17s | %-17s\n", label, bstVal, treapVal)
	}
	row("Metric", "BST", "Treap")
	fmt.Fprintln(w, strings.Repeat("-", 65))
	row("Posts indexed",
		cell(res.bst, func(tr *treeResult) string {
			return fmt.Sprintf("%d", tr.len)
		}),
		cell(res.treap, func(tr *treeResult) string {
			return fmt.Sprintf("%d", tr.len)
		}))
	row("Insert time",
		cell(res.bst, func(tr *treeResult) string {
			return tr.insertTime.Round(time.Microsecond).String()
		}),
		cell(res.treap, func(tr *treeResult) string {
			return tr.insertTime.Round(time.Microsecond).String()
		}))
	row("Total comparisons",
		cell(res.bst, func(tr *treeResult) string {
			return fmt.Sprintf("%d", tr.comparisons)
		}),
		cell(res.treap, func(tr *treeResult) string {
			return fmt.Sprintf("%d", tr.comparisons)
		}))
	row("Total rotations",
		cell(res.bst, func(tr *treeResult) string { return "0" }),
		cell(res.treap, func(tr *treeResult) string {
			return fmt.Sprintf("%d", tr.rotations)
		}))
	row("MostPopular time",
		cell(res.bst, func(tr *treeResult) string {
			return tr.popularTime.String()
		}),
		cell(res.treap, func(tr *treeResult) string {
			return tr.popularTime.String()
		}))
	row("Tree height",
		cell(res.bst, func(tr *treeResult) string {
			return fmt.Sprintf("%d", tr.metrics.Height)
		}),
		cell(res.treap, func(tr *treeResult) string {
			return fmt.Sprintf("%d", tr.metrics.Height)
		}))
	row("Avg balance factor",
		cell(res.bst, func(tr *treeResult) string {
			return fmt.Sprintf("%.2f", tr.metrics.AvgBalance())
		}),
		cell(res.treap, func(tr *treeResult) string {
			return fmt.Sprintf("%.2f", tr.metrics.AvgBalance())
		}))
	fmt.Fprintln(w, strings.Repeat("-", 65))

	if res.treap != nil && res.treap.popular != nil {
		fmt.Fprintf(w, "Most popular post (treap): %v\n", res.treap.popular)
	}
	if res.bst != nil && res.bst.popular != nil {
		fmt.Fprintf(w, "Most popular post (BST):   %v\n", res.bst.popular)
	}

	recent := res.treap
	if recent == nil {
		recent = res.bst
	}
	if recent != nil && len(recent.recent) > 0 {
		fmt.Fprintf(w, "Most recent posts:\n")
		for _, post := range recent.recent {
			fmt.Fprintf(w, "  %v\n", post)
		}
	}
}
