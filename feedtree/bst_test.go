// Copyright (c) 2026 The Treap-vs-BST-Comparison developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package feedtree

import (
	"fmt"
	"math/rand"
	"testing"
)

// TestBSTEmpty ensures all operations behave sensibly against an empty tree.
func TestBSTEmpty(t *testing.T) {
	t.Parallel()

	bst := NewBST()
	if gotLen := bst.Len(); gotLen != 0 {
		t.Fatalf("Len: unexpected length - got %d, want 0", gotLen)
	}
	if got := bst.MostPopular(); got != nil {
		t.Fatalf("MostPopular: unexpected post - got %v, want nil", got)
	}
	if got := bst.MostRecent(5); len(got) != 0 {
		t.Fatalf("MostRecent: unexpected posts - got %d, want 0",
			len(got))
	}
	if bst.UpdateScore("nonexistent", 1) {
		t.Fatalf("UpdateScore: reported success on empty tree")
	}
	if bst.Delete("nonexistent") {
		t.Fatalf("Delete: reported success on empty tree")
	}
	metrics := bst.StructuralMetrics()
	if metrics.Height != 0 || metrics.Nodes != 0 || metrics.TotalBalance != 0 {
		t.Fatalf("StructuralMetrics: unexpected metrics - got %+v, "+
			"want zero values", metrics)
	}
	if got := metrics.AvgBalance(); got != 0 {
		t.Fatalf("AvgBalance: unexpected value - got %v, want 0", got)
	}
	bst.ForEach(func(p *Post) bool {
		t.Fatalf("ForEach: unexpected post %v on empty tree", p)
		return false
	})
}

// TestBSTSequentialStick ensures chronologically ordered inserts degrade the
// tree into a right-leaning chain with the expected quadratic comparison
// cost.
func TestBSTSequentialStick(t *testing.T) {
	t.Parallel()

	const numPosts = 250
	bst := NewBST()
	for i := 0; i < numPosts; i++ {
		bst.Insert(Post{
			ID:        fmt.Sprintf("p%04d", i),
			Timestamp: int64(i),
			Score:     int64(i % 17),
		})
	}

	if gotLen := bst.Len(); gotLen != numPosts {
		t.Fatalf("Len: unexpected length - got %d, want %d", gotLen,
			numPosts)
	}

	// Every node but the final one has exactly one child, so the height
	// equals the node count and every balance factor along the spine is
	// the height of the subtree below it.
	metrics := bst.StructuralMetrics()
	if metrics.Height != numPosts {
		t.Fatalf("StructuralMetrics: unexpected height - got %d, "+
			"want %d", metrics.Height, numPosts)
	}

	// Inserting into a chain of i nodes visits all i of them.
	wantCmp := int64(numPosts * (numPosts - 1) / 2)
	if gotCmp := bst.Comparisons(); gotCmp != wantCmp {
		t.Fatalf("Comparisons: unexpected count - got %d, want %d",
			gotCmp, wantCmp)
	}

	checkOrdered(t, collectPosts(bst))
	checkSizes(t, bst.root)
}

// TestBSTUpdateScore ensures score updates modify the post in place without
// changing the shape of the tree.
func TestBSTUpdateScore(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(1))
	bst := NewBST()
	posts := randomPosts(rng, 50, 1000)
	for _, p := range posts {
		bst.Insert(p)
	}
	beforeMetrics := bst.StructuralMetrics()

	if !bst.UpdateScore("p0007", 42) {
		t.Fatalf("UpdateScore: failed to find existing post")
	}
	if bst.UpdateScore("missing", 1) {
		t.Fatalf("UpdateScore: reported success for unknown id")
	}

	var got *Post
	bst.ForEach(func(p *Post) bool {
		if p.ID == "p0007" {
			got = p
			return false
		}
		return true
	})
	if got == nil {
		t.Fatalf("ForEach: updated post disappeared from tree")
	}
	if want := posts[7].Score + 42; got.Score != want {
		t.Fatalf("UpdateScore: unexpected score - got %d, want %d",
			got.Score, want)
	}

	// Unchanged metrics prove no nodes moved.
	if afterMetrics := bst.StructuralMetrics(); afterMetrics != beforeMetrics {
		t.Fatalf("StructuralMetrics: unexpected change - got %+v, "+
			"want %+v", afterMetrics, beforeMetrics)
	}
	if gotLen := bst.Len(); gotLen != len(posts) {
		t.Fatalf("Len: unexpected length - got %d, want %d", gotLen,
			len(posts))
	}
}

// TestBSTDelete exercises the leaf, single-child, and two-children removal
// cases along with deleting the root and an unknown id.
func TestBSTDelete(t *testing.T) {
	t.Parallel()

	// Build a known shape:
	//
	//        50
	//       /  \
	//     30    70
	//    /  \     \
	//  20    40    90
	//             /
	//           80
	bst := NewBST()
	for _, ts := range []int64{50, 30, 70, 20, 40, 90, 80} {
		bst.Insert(Post{
			ID:        fmt.Sprintf("t%d", ts),
			Timestamp: ts,
			Score:     ts,
		})
	}

	tests := []struct {
		name    string
		id      string
		want    bool
		wantLen int
	}{
		{name: "unknown id", id: "missing", want: false, wantLen: 7},
		{name: "leaf", id: "t20", want: true, wantLen: 6},
		{name: "single child", id: "t90", want: true, wantLen: 5},
		{name: "two children", id: "t30", want: true, wantLen: 4},
		{name: "root", id: "t50", want: true, wantLen: 3},
	}
	for _, test := range tests {
		if got := bst.Delete(test.id); got != test.want {
			t.Fatalf("%s: unexpected delete result - got %v, "+
				"want %v", test.name, got, test.want)
		}
		if gotLen := bst.Len(); gotLen != test.wantLen {
			t.Fatalf("%s: unexpected length - got %d, want %d",
				test.name, gotLen, test.wantLen)
		}
		checkOrdered(t, collectPosts(bst))
		checkSizes(t, bst.root)

		// The deleted post must no longer be reachable.
		if test.want {
			bst.ForEach(func(p *Post) bool {
				if p.ID == test.id {
					t.Fatalf("%s: deleted post %q still "+
						"present", test.name, test.id)
				}
				return true
			})
		}
	}
}

// TestBSTQueries ensures MostPopular and MostRecent agree with brute-force
// scans over randomized content.
func TestBSTQueries(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(2))
	bst := NewBST()
	posts := randomPosts(rng, 200, 100000)
	for _, p := range posts {
		bst.Insert(p)
	}

	var wantPopular Post
	for _, p := range posts {
		if p.Score > wantPopular.Score {
			wantPopular = p
		}
	}
	gotPopular := bst.MostPopular()
	if gotPopular == nil || gotPopular.Score != wantPopular.Score {
		t.Fatalf("MostPopular: unexpected post - got %v, want %v",
			gotPopular, wantPopular)
	}

	const k = 7
	recent := bst.MostRecent(k)
	if len(recent) != k {
		t.Fatalf("MostRecent: unexpected count - got %d, want %d",
			len(recent), k)
	}
	for i := 1; i < len(recent); i++ {
		if recent[i].Timestamp > recent[i-1].Timestamp {
			t.Fatalf("MostRecent: posts out of order - %d after %d",
				recent[i].Timestamp, recent[i-1].Timestamp)
		}
	}

	// Asking for more posts than the tree holds returns everything.
	all := bst.MostRecent(len(posts) * 2)
	if len(all) != len(posts) {
		t.Fatalf("MostRecent: unexpected count - got %d, want %d",
			len(all), len(posts))
	}
}
