// Copyright (c) 2026 The Treap-vs-BST-Comparison developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package feedtree

// BST is the baseline chronological index.  It orders posts strictly by
// timestamp and never rebalances, so feeding it posts in timestamp order
// degrades it into a stick whose height equals its node count.  That failure
// mode is the point: the structure exists to be measured against the treap,
// not to hide the weakness.
type BST struct {
	root *node

	// comparisons counts the timestamp comparisons performed while
	// descending on insert.  It is surfaced in the final report.
	comparisons int64
}

// NewBST returns a new empty baseline tree ready for use.
func NewBST() *BST {
	return &BST{}
}

// Len returns the number of posts stored in the tree.
func (t *BST) Len() int {
	if t.root == nil {
		return 0
	}
	return t.root.size
}

// Comparisons returns the total number of timestamp comparisons performed by
// inserts since the tree was created.
func (t *BST) Comparisons() int64 {
	return t.comparisons
}

// Insert adds the passed post to the tree.  It descends by timestamp and
// appends a new leaf at the first empty slot encountered.  No rebalancing is
// ever performed.
func (t *BST) Insert(post Post) {
	t.root = t.insert(t.root, &post)
}

func (t *BST) insert(n *node, post *Post) *node {
	if n == nil {
		return newNode(post)
	}

	t.comparisons++
	if post.Timestamp < n.post.Timestamp {
		n.left = t.insert(n.left, post)
	} else {
		// Equal timestamps go right, so a chronological feed builds
		// the degenerate stick shape under study.
		n.right = t.insert(n.right, post)
	}
	n.recalcSize()
	return n
}

// UpdateScore adds delta to the score of the first post found with the given
// id and returns whether a post was found.  The id is unrelated to the
// ordering key, so the lookup is an unrestricted traversal of the whole tree.
// The tree structure is not changed.
func (t *BST) UpdateScore(id string, delta int64) bool {
	n := searchByID(t.root, id)
	if n == nil {
		return false
	}
	n.post.Score += delta
	return true
}

// Delete removes the first post found with the given id and returns whether a
// post was found.  Deleting an id that does not exist is a no-op.
func (t *BST) Delete(id string) bool {
	var found bool
	t.root, found = t.delete(t.root, id)
	return found
}

// delete searches for the target id and removes its node once found: a leaf
// is simply dropped, a node with one child is replaced by that child, and a
// node with two children adopts its in-order successor's post before the
// successor is removed from the right subtree.  The search and the removal
// happen in the same pass rather than probing for containment first.
func (t *BST) delete(n *node, id string) (*node, bool) {
	if n == nil {
		return nil, false
	}

	if n.post.ID == id {
		switch {
		case n.left == nil && n.right == nil:
			return nil, true
		case n.left == nil:
			return n.right, true
		case n.right == nil:
			return n.left, true
		}

		// Two children.  Adopt the in-order successor's post, which is
		// the minimum of the right subtree, then splice the successor
		// out of the right subtree's left spine.
		succ := minNode(n.right)
		n.post = succ.post
		n.priority = succ.priority
		n.right = spliceMin(n.right, succ)
		n.recalcSize()
		return n, true
	}

	var found bool
	if n.left, found = t.delete(n.left, id); !found {
		n.right, found = t.delete(n.right, id)
	}
	n.recalcSize()
	return n, found
}

// minNode returns the leftmost node of the subtree.
func minNode(n *node) *node {
	for n.left != nil {
		n = n.left
	}
	return n
}

// spliceMin removes the target node from the left spine rooted at n.  The
// target is an in-order successor, so it never has a left child and its right
// child, if any, takes its place.
func spliceMin(n, target *node) *node {
	if n == target {
		return n.right
	}
	n.left = spliceMin(n.left, target)
	n.recalcSize()
	return n
}

// MostPopular returns the post with the highest score, or nil when the tree
// is empty.  The maximum score can be anywhere in a timestamp-ordered tree,
// so this is a full O(N) scan.  The treap exists to make this O(1).
func (t *BST) MostPopular() *Post {
	if t.root == nil {
		return nil
	}
	return maxScorePost(t.root, t.root.post)
}

func maxScorePost(n *node, best *Post) *Post {
	if n == nil {
		return best
	}
	if n.post.Score > best.Score {
		best = n.post
	}
	best = maxScorePost(n.left, best)
	return maxScorePost(n.right, best)
}

// MostRecent returns up to k posts in newest-first order via a reverse
// in-order traversal.  It returns an empty slice when the tree is empty or k
// is not positive.
func (t *BST) MostRecent(k int) []*Post {
	if k <= 0 {
		return nil
	}
	return reverseInOrder(t.root, k, nil)
}

// ForEach invokes the passed function with every post in the tree in
// ascending timestamp order until the function returns false.
func (t *BST) ForEach(fn func(*Post) bool) {
	forEachNode(t.root, fn)
}

// Dump returns an ASCII rendering of the tree structure for debug output.
func (t *BST) Dump() string {
	return dumpTree(t.root)
}
