// Copyright (c) 2026 The Treap-vs-BST-Comparison developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package feedtree

// Split partitions the treap into two treaps by the passed timestamp: the
// left result holds every post with a timestamp at or before the key and the
// right result holds every post after it.  Both halves satisfy the search
// tree and heap orders.  Splitting only reassigns subtree pointers along the
// path to the boundary; it never rotates.
//
// The receiver is consumed: it is left empty and must not be used again other
// than to start over.  The left result inherits the receiver's operation
// counters and the right result starts at zero.
func (t *Treap) Split(key int64) (left, right *Treap) {
	l, r := splitNode(t.root, key)
	left = &Treap{root: l, comparisons: t.comparisons, rotations: t.rotations}
	right = &Treap{root: r}
	t.root = nil
	t.comparisons = 0
	t.rotations = 0
	return left, right
}

// splitNode partitions the subtree so the left result holds timestamps <= key
// and the right result holds timestamps > key.  When the root belongs to the
// left half its right subtree straddles the boundary, so that subtree is
// split and the pieces are stitched back on; the other case mirrors it.
func splitNode(n *node, key int64) (left, right *node) {
	if n == nil {
		return nil, nil
	}

	if n.post.Timestamp <= key {
		l, r := splitNode(n.right, key)
		n.right = l
		n.recalcSize()
		return n, r
	}

	l, r := splitNode(n.left, key)
	n.left = r
	n.recalcSize()
	return l, n
}

// Union merges the other treap into the receiver.  The timestamp ranges may
// overlap arbitrarily.  Whichever root has the higher priority becomes the
// merged root (the receiver wins ties), the other tree is split by that
// root's timestamp, and the halves are united with the root's children
// recursively.  The expected cost of merging a tree of m posts into one of n
// posts is O(m log(n/m)) while priorities remain independent of the insertion
// order.
//
// The donor tree is consumed: its nodes are re-owned by the receiver, its
// comparison and rotation counters are folded additively into the receiver's,
// and it is left empty.
func (t *Treap) Union(other *Treap) {
	if other == nil || other.root == nil {
		return
	}

	t.root = t.unionNode(t.root, other.root)
	t.comparisons += other.comparisons
	t.rotations += other.rotations
	other.root = nil
	other.comparisons = 0
	other.rotations = 0
}

func (t *Treap) unionNode(a, b *node) *node {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}

	// Make a the higher-priority root.  On a tie a is kept, so merging
	// the same trees again produces the same shape.
	if a.priority < b.priority {
		a, b = b, a
	}

	l, r := splitNode(b, a.post.Timestamp)
	a.left = t.unionNode(a.left, l)
	a.right = t.unionNode(a.right, r)
	a.recalcSize()
	return a
}
