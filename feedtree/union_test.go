// Copyright (c) 2026 The Treap-vs-BST-Comparison developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package feedtree

import (
	"fmt"
	"math/rand"
	"reflect"
	"sort"
	"testing"
)

// buildTreap inserts the passed posts into a fresh treap.
func buildTreap(posts []Post) *Treap {
	tr := NewTreap()
	for _, p := range posts {
		tr.Insert(p)
	}
	return tr
}

// TestSplitPartition ensures a split cleanly partitions the posts around the
// threshold and consumes the original treap.
func TestSplitPartition(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(10))
	posts := randomPosts(rng, 300, 1000)
	tr := buildTreap(posts)
	wantKeys := sortedKeys(collectPosts(tr))

	const threshold = 500
	left, right := tr.Split(threshold)

	// The source treap is consumed.
	if gotLen := tr.Len(); gotLen != 0 {
		t.Fatalf("Len: source not consumed - got %d, want 0", gotLen)
	}
	if got := tr.MostPopular(); got != nil {
		t.Fatalf("MostPopular: unexpected post in consumed source - "+
			"got %v, want nil", got)
	}

	left.ForEach(func(p *Post) bool {
		if p.Timestamp > threshold {
			t.Fatalf("Split: left side holds timestamp %d beyond "+
				"threshold %d", p.Timestamp, threshold)
		}
		return true
	})
	right.ForEach(func(p *Post) bool {
		if p.Timestamp <= threshold {
			t.Fatalf("Split: right side holds timestamp %d at or "+
				"below threshold %d", p.Timestamp, threshold)
		}
		return true
	})

	if gotLen := left.Len() + right.Len(); gotLen != len(posts) {
		t.Fatalf("Len: sides do not cover source - got %d, want %d",
			gotLen, len(posts))
	}
	for _, side := range []*Treap{left, right} {
		checkOrdered(t, collectPosts(side))
		checkHeapOrder(t, side)
		checkSizes(t, side.root)
	}

	// No records are created or lost.
	gotKeys := sortedKeys(append(collectPosts(left), collectPosts(right)...))
	if !reflect.DeepEqual(gotKeys, wantKeys) {
		t.Fatalf("Split: record multiset changed - got %d keys, "+
			"want %d", len(gotKeys), len(wantKeys))
	}
}

// TestSplitBoundaries ensures splitting outside the timestamp range pushes
// everything onto one side.
func TestSplitBoundaries(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(11))
	posts := randomPosts(rng, 50, 1000)

	left, right := buildTreap(posts).Split(-1)
	if left.Len() != 0 || right.Len() != len(posts) {
		t.Fatalf("Split below range: unexpected sizes - got %d/%d, "+
			"want 0/%d", left.Len(), right.Len(), len(posts))
	}

	left, right = buildTreap(posts).Split(1000)
	if left.Len() != len(posts) || right.Len() != 0 {
		t.Fatalf("Split above range: unexpected sizes - got %d/%d, "+
			"want %d/0", left.Len(), right.Len(), len(posts))
	}
}

// TestSplitUnionRoundTrip ensures splitting a treap and merging the halves
// back together preserves the record multiset and both invariants.
func TestSplitUnionRoundTrip(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(12))
	posts := randomPosts(rng, 400, 5000)
	tr := buildTreap(posts)
	wantKeys := sortedKeys(collectPosts(tr))

	left, right := tr.Split(2500)
	left.Union(right)

	if gotLen := left.Len(); gotLen != len(posts) {
		t.Fatalf("Len: unexpected length after round trip - got %d, "+
			"want %d", gotLen, len(posts))
	}
	if gotLen := right.Len(); gotLen != 0 {
		t.Fatalf("Len: donor not consumed - got %d, want 0", gotLen)
	}
	checkOrdered(t, collectPosts(left))
	checkHeapOrder(t, left)
	checkSizes(t, left.root)

	gotKeys := sortedKeys(collectPosts(left))
	if !reflect.DeepEqual(gotKeys, wantKeys) {
		t.Fatalf("Union: record multiset changed - got %d keys, "+
			"want %d", len(gotKeys), len(wantKeys))
	}
}

// TestUnionOverlapping merges treaps whose timestamp ranges interleave,
// including duplicate timestamps, and ensures no records are dropped.
func TestUnionOverlapping(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(13))
	a := make([]Post, 150)
	b := make([]Post, 150)
	for i := range a {
		a[i] = Post{
			ID:        fmt.Sprintf("a%03d", i),
			Timestamp: rng.Int63n(200),
			Score:     rng.Int63n(1 << 40),
		}
		b[i] = Post{
			ID:        fmt.Sprintf("b%03d", i),
			Timestamp: rng.Int63n(200),
			Score:     rng.Int63n(1 << 40),
		}
	}

	ta, tb := buildTreap(a), buildTreap(b)
	wantKeys := sortedKeys(append(collectPosts(ta), collectPosts(tb)...))
	wantCmp := ta.Comparisons() + tb.Comparisons()
	wantRot := ta.Rotations() + tb.Rotations()

	ta.Union(tb)

	if gotLen := ta.Len(); gotLen != len(a)+len(b) {
		t.Fatalf("Len: unexpected length - got %d, want %d", gotLen,
			len(a)+len(b))
	}
	checkOrdered(t, collectPosts(ta))
	checkHeapOrder(t, ta)
	checkSizes(t, ta.root)

	gotKeys := sortedKeys(collectPosts(ta))
	if !reflect.DeepEqual(gotKeys, wantKeys) {
		t.Fatalf("Union: record multiset changed - got %d keys, "+
			"want %d", len(gotKeys), len(wantKeys))
	}

	// The donor's counters fold into the receiver.
	if gotCmp := ta.Comparisons(); gotCmp < wantCmp {
		t.Fatalf("Comparisons: donor counters lost - got %d, want at "+
			"least %d", gotCmp, wantCmp)
	}
	if gotRot := ta.Rotations(); gotRot < wantRot {
		t.Fatalf("Rotations: donor counters lost - got %d, want at "+
			"least %d", gotRot, wantRot)
	}
	if tb.Comparisons() != 0 || tb.Rotations() != 0 {
		t.Fatalf("donor counters not reset - got %d/%d, want 0/0",
			tb.Comparisons(), tb.Rotations())
	}
}

// TestUnionAssociative ensures merging three treaps yields the same record
// multiset and valid invariants regardless of grouping.
func TestUnionAssociative(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(16))
	chunks := [][]Post{
		randomPosts(rng, 80, 3000),
		randomPosts(rng, 80, 3000),
		randomPosts(rng, 80, 3000),
	}
	for c := range chunks {
		for i := range chunks[c] {
			chunks[c][i].ID = fmt.Sprintf("c%dp%03d", c, i)
		}
	}

	// (a+b)+c built from fresh copies of the same posts.
	leftAssoc := buildTreap(chunks[0])
	leftAssoc.Union(buildTreap(chunks[1]))
	leftAssoc.Union(buildTreap(chunks[2]))

	// a+(b+c).
	bc := buildTreap(chunks[1])
	bc.Union(buildTreap(chunks[2]))
	rightAssoc := buildTreap(chunks[0])
	rightAssoc.Union(bc)

	for _, tr := range []*Treap{leftAssoc, rightAssoc} {
		if gotLen := tr.Len(); gotLen != 240 {
			t.Fatalf("Len: unexpected length - got %d, want 240",
				gotLen)
		}
		checkOrdered(t, collectPosts(tr))
		checkHeapOrder(t, tr)
		checkSizes(t, tr.root)
	}

	gotKeys := sortedKeys(collectPosts(leftAssoc))
	wantKeys := sortedKeys(collectPosts(rightAssoc))
	if !reflect.DeepEqual(gotKeys, wantKeys) {
		t.Fatalf("Union: groupings disagree - got %d keys, want %d",
			len(gotKeys), len(wantKeys))
	}
}

// TestUnionEmpty covers merging with empty treaps on either side.
func TestUnionEmpty(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(14))
	posts := randomPosts(rng, 40, 1000)

	// Empty donor leaves the receiver untouched.
	tr := buildTreap(posts)
	tr.Union(NewTreap())
	if gotLen := tr.Len(); gotLen != len(posts) {
		t.Fatalf("Len: unexpected length after empty donor - got %d, "+
			"want %d", gotLen, len(posts))
	}

	// Empty receiver adopts the donor wholesale.
	empty := NewTreap()
	donor := buildTreap(posts)
	empty.Union(donor)
	if gotLen := empty.Len(); gotLen != len(posts) {
		t.Fatalf("Len: unexpected length after adopting donor - got "+
			"%d, want %d", gotLen, len(posts))
	}
	if gotLen := donor.Len(); gotLen != 0 {
		t.Fatalf("Len: donor not consumed - got %d, want 0", gotLen)
	}
	checkOrdered(t, collectPosts(empty))
	checkHeapOrder(t, empty)
	checkSizes(t, empty.root)
}

// TestUnionManyPartitions merges a stream of chunk treaps one by one the way
// the partition workflow does and checks the end state.
func TestUnionManyPartitions(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(15))
	const numChunks = 8
	const chunkSize = 64

	master := NewTreap()
	var want []string
	for c := 0; c < numChunks; c++ {
		chunk := make([]Post, chunkSize)
		for i := range chunk {
			chunk[i] = Post{
				ID:        fmt.Sprintf("c%dp%03d", c, i),
				Timestamp: rng.Int63n(10000),
				Score:     rng.Int63n(1 << 40),
			}
		}
		donor := buildTreap(chunk)
		want = append(want, sortedKeys(collectPosts(donor))...)
		master.Union(donor)
	}

	if gotLen := master.Len(); gotLen != numChunks*chunkSize {
		t.Fatalf("Len: unexpected length - got %d, want %d", gotLen,
			numChunks*chunkSize)
	}
	checkOrdered(t, collectPosts(master))
	checkHeapOrder(t, master)
	checkSizes(t, master.root)

	gotKeys := sortedKeys(collectPosts(master))
	wantKeys := append([]string(nil), want...)
	sort.Strings(wantKeys)
	if !reflect.DeepEqual(gotKeys, wantKeys) {
		t.Fatalf("Union: record multiset changed - got %d keys, "+
			"want %d", len(gotKeys), len(wantKeys))
	}
}
