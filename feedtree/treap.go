// Copyright (c) 2026 The Treap-vs-BST-Comparison developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package feedtree

// Treap is the primary feed index.  It keeps the binary search tree order on
// post timestamps and simultaneously a max-heap order on post scores, so the
// highest-scored post is always at the root.  The heap priority of every node
// is kept numerically equal to its post's score: any score change moves the
// node to where the heap order says it now belongs, using O(1) rotations.
//
// Since the priorities come from the data instead of an independent random
// source, the expected logarithmic height holds only while scores are not
// correlated with insertion order.  See the package documentation for the
// discussion of that trade.
type Treap struct {
	root *node

	// comparisons counts timestamp comparisons made while descending on
	// insert and rotations counts every rotation performed, including the
	// ones triggered by score updates and deletes.  Union folds a donor
	// tree's counters into the receiver's.
	comparisons int64
	rotations   int64
}

// NewTreap returns a new empty treap ready for use.
func NewTreap() *Treap {
	return &Treap{}
}

// Len returns the number of posts stored in the treap.
func (t *Treap) Len() int {
	if t.root == nil {
		return 0
	}
	return t.root.size
}

// Comparisons returns the total number of timestamp comparisons performed by
// inserts since the treap was created, including counters folded in by Union.
func (t *Treap) Comparisons() int64 {
	return t.comparisons
}

// Rotations returns the total number of rotations performed since the treap
// was created, including counters folded in by Union.  It measures the
// structural volatility of the index.
func (t *Treap) Rotations() int64 {
	return t.rotations
}

// rotateRight makes the left child the new root of the subtree rooted at y.
// y becomes the child's right child and the child's former right subtree
// becomes y's new left subtree.  The binary search tree order is preserved by
// construction; the caller is responsible for choosing rotations that restore
// the heap order.
func (t *Treap) rotateRight(y *node) *node {
	t.rotations++
	x := y.left
	y.left = x.right
	x.right = y
	y.recalcSize()
	x.recalcSize()
	return x
}

// rotateLeft is the mirror of rotateRight.
func (t *Treap) rotateLeft(x *node) *node {
	t.rotations++
	y := x.right
	x.right = y.left
	y.left = x
	x.recalcSize()
	y.recalcSize()
	return y
}

// Insert adds the passed post to the treap.  It performs a standard binary
// search tree insert by timestamp and then, as the recursion unwinds, rotates
// the current node down whenever a child's priority exceeds its own.  A post
// inserted with a high score therefore migrates toward the root immediately.
func (t *Treap) Insert(post Post) {
	t.root = t.insert(t.root, &post)
}

func (t *Treap) insert(n *node, post *Post) *node {
	if n == nil {
		return newNode(post)
	}

	t.comparisons++
	if post.Timestamp < n.post.Timestamp {
		n.left = t.insert(n.left, post)
		n.recalcSize()
		if n.left.priority > n.priority {
			n = t.rotateRight(n)
		}
	} else {
		n.right = t.insert(n.right, post)
		n.recalcSize()
		if n.right.priority > n.priority {
			n = t.rotateLeft(n)
		}
	}
	return n
}

// UpdateScore adds delta to the score of the first post found with the given
// id and returns whether a post was found.  The score and the heap priority
// are changed together, then the heap order is repaired: an increase bubbles
// the node toward the root as the recursion unwinds, while a decrease pushes
// it toward the leaves before the unwind begins.  As with the baseline tree,
// the id lookup is an unrestricted traversal.
func (t *Treap) UpdateScore(id string, delta int64) bool {
	var found bool
	t.root, found = t.update(t.root, id, delta)
	return found
}

func (t *Treap) update(n *node, id string, delta int64) (*node, bool) {
	if n == nil {
		return nil, false
	}

	if n.post.ID == id {
		n.post.Score += delta
		n.priority += delta
		if delta < 0 {
			n = t.pushDown(n)
		}
		return n, true
	}

	if left, found := t.update(n.left, id, delta); found {
		n.left = left
		n.recalcSize()
		if n.left.priority > n.priority {
			n = t.rotateRight(n)
		}
		return n, true
	}

	right, found := t.update(n.right, id, delta)
	if found {
		n.right = right
		n.recalcSize()
		if n.right.priority > n.priority {
			n = t.rotateLeft(n)
		}
	}
	return n, found
}

// pushDown restores the heap order below a node whose priority just dropped
// by rotating it toward the leaves while either child outranks it, always
// lifting the higher-priority child.
func (t *Treap) pushDown(n *node) *node {
	leftWins := n.left != nil && n.left.priority > n.priority
	rightWins := n.right != nil && n.right.priority > n.priority
	if !leftWins && !rightWins {
		return n
	}

	if leftWins && (n.right == nil || n.left.priority >= n.right.priority) {
		n = t.rotateRight(n)
		n.right = t.pushDown(n.right)
	} else {
		n = t.rotateLeft(n)
		n.left = t.pushDown(n.left)
	}
	n.recalcSize()
	return n
}

// Delete removes the first post found with the given id and returns whether a
// post was found.  The target node is rotated toward its higher-priority
// child until it becomes a leaf and is then detached, which keeps the heap
// order intact at every intermediate step.
func (t *Treap) Delete(id string) bool {
	var found bool
	t.root, found = t.delete(t.root, id)
	return found
}

func (t *Treap) delete(n *node, id string) (*node, bool) {
	if n == nil {
		return nil, false
	}

	if n.post.ID == id {
		return t.deleteNode(n), true
	}

	var found bool
	if n.left, found = t.delete(n.left, id); !found {
		n.right, found = t.delete(n.right, id)
	}
	n.recalcSize()
	return n, found
}

// deleteNode rotates the node toward its higher-priority child until it is a
// leaf, then detaches it.  Each rotation leaves the target as a child of the
// lifted node, so the recursion descends into the side that now contains it.
func (t *Treap) deleteNode(n *node) *node {
	if n.left == nil && n.right == nil {
		return nil
	}

	if n.right == nil || (n.left != nil && n.left.priority > n.right.priority) {
		n = t.rotateRight(n)
		n.right = t.deleteNode(n.right)
	} else {
		n = t.rotateLeft(n)
		n.left = t.deleteNode(n.left)
	}
	n.recalcSize()
	return n
}

// MostPopular returns the post with the highest score, or nil when the treap
// is empty.  The heap order guarantees the maximum-score post is the root, so
// this is O(1).
func (t *Treap) MostPopular() *Post {
	if t.root == nil {
		return nil
	}
	return t.root.post
}

// MostRecent returns up to k posts in newest-first order via a reverse
// in-order traversal.  It returns an empty slice when the treap is empty or k
// is not positive.
func (t *Treap) MostRecent(k int) []*Post {
	if k <= 0 {
		return nil
	}
	return reverseInOrder(t.root, k, nil)
}

// ForEach invokes the passed function with every post in the treap in
// ascending timestamp order until the function returns false.
func (t *Treap) ForEach(fn func(*Post) bool) {
	forEachNode(t.root, fn)
}

// Dump returns an ASCII rendering of the treap structure for debug output.
func (t *Treap) Dump() string {
	return dumpTree(t.root)
}
