// Copyright (c) 2026 The Treap-vs-BST-Comparison developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package feedtree

import (
	"math/rand"
	"testing"
)

// TestStructuralMetricsAgainstNaive checks the single-pass metrics against
// independent quadratic recomputations for both tree types over randomized
// content.
func TestStructuralMetricsAgainstNaive(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(20))
	posts := randomPosts(rng, 200, 100000)

	bst := NewBST()
	tr := NewTreap()
	for _, p := range posts {
		bst.Insert(p)
		tr.Insert(p)
	}

	tests := []struct {
		name string
		root *node
		got  StructuralMetrics
	}{
		{name: "bst", root: bst.root, got: bst.StructuralMetrics()},
		{name: "treap", root: tr.root, got: tr.StructuralMetrics()},
	}
	for _, test := range tests {
		if wantHeight := naiveHeight(test.root); test.got.Height != wantHeight {
			t.Fatalf("%s: unexpected height - got %d, want %d",
				test.name, test.got.Height, wantHeight)
		}
		if wantBalance := naiveTotalBalance(test.root); test.got.TotalBalance != wantBalance {
			t.Fatalf("%s: unexpected total balance - got %d, "+
				"want %d", test.name, test.got.TotalBalance,
				wantBalance)
		}
		if test.got.Nodes != len(posts) {
			t.Fatalf("%s: unexpected node count - got %d, want %d",
				test.name, test.got.Nodes, len(posts))
		}

		wantAvg := float64(test.got.TotalBalance) / float64(len(posts))
		if gotAvg := test.got.AvgBalance(); gotAvg != wantAvg {
			t.Fatalf("%s: unexpected average balance - got %v, "+
				"want %v", test.name, gotAvg, wantAvg)
		}
	}
}

// TestStructuralMetricsChain ensures the metrics of a pure chain are exactly
// what the geometry dictates.
func TestStructuralMetricsChain(t *testing.T) {
	t.Parallel()

	const numPosts = 64
	bst := NewBST()
	for i := 0; i < numPosts; i++ {
		bst.Insert(Post{ID: string(rune('a' + i%26)), Timestamp: int64(i)})
	}

	metrics := bst.StructuralMetrics()
	if metrics.Height != numPosts {
		t.Fatalf("Height: unexpected value - got %d, want %d",
			metrics.Height, numPosts)
	}
	if metrics.Nodes != numPosts {
		t.Fatalf("Nodes: unexpected value - got %d, want %d",
			metrics.Nodes, numPosts)
	}

	// Node i counted from the bottom has a right subtree of height i and
	// no left subtree, so the balance factors sum to 0+1+...+(n-1).
	wantBalance := int64(numPosts * (numPosts - 1) / 2)
	if metrics.TotalBalance != wantBalance {
		t.Fatalf("TotalBalance: unexpected value - got %d, want %d",
			metrics.TotalBalance, wantBalance)
	}
}
