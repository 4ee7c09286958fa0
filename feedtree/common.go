// Copyright (c) 2026 The Treap-vs-BST-Comparison developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package feedtree

import "fmt"

const (
	// staticDepth is the size of the static array to use for keeping track
	// of the parent stack during tree iteration.  Since a treap has a very
	// high probability that the tree height is logarithmic, it is
	// exceedingly unlikely that the parent stack will ever exceed this
	// size for treap iteration.  The baseline tree can degenerate into a
	// stick, however, so the overflow case is a real possibility there.
	staticDepth = 128
)

// Post is a single feed entry.  The ID is unique and immutable, the timestamp
// is the immutable ordering key, and the score is the only mutable field.
type Post struct {
	ID        string
	Timestamp int64
	Score     int64
}

// String returns the post in the compact ('id', timestamp, score) form used
// throughout the logs and reports.
func (p *Post) String() string {
	return fmt.Sprintf("('%s', %d, %d)", p.ID, p.Timestamp, p.Score)
}

// node represents a node in either tree.  Each node exclusively owns its
// children, the size field counts the nodes in the subtree rooted here
// including the node itself, and the priority mirrors the post score for
// treap nodes.  The baseline tree ignores the priority.
type node struct {
	post     *Post
	priority int64
	size     int
	left     *node
	right    *node
}

// newNode returns a new node for the given post.  The node is not initially
// linked to any others.
func newNode(post *Post) *node {
	return &node{post: post, priority: post.Score, size: 1}
}

// recalcSize recomputes the node's subtree size from its children.  It must
// be called on the way back up any recursion that changes a child pointer.
func (n *node) recalcSize() {
	n.size = 1
	if n.left != nil {
		n.size += n.left.size
	}
	if n.right != nil {
		n.size += n.right.size
	}
}

// searchByID returns the first node holding the given post id, searching the
// node itself, then its left subtree, then its right subtree.  The id is
// unrelated to the ordering key, so this is a full traversal with an O(N)
// worst case for both trees.
func searchByID(n *node, id string) *node {
	if n == nil {
		return nil
	}
	if n.post.ID == id {
		return n
	}
	if match := searchByID(n.left, id); match != nil {
		return match
	}
	return searchByID(n.right, id)
}

// reverseInOrder walks the subtree newest-first (right, node, left) and
// appends posts to results until k entries have been collected.
func reverseInOrder(n *node, k int, results []*Post) []*Post {
	if n == nil || len(results) >= k {
		return results
	}
	results = reverseInOrder(n.right, k, results)
	if len(results) < k {
		results = append(results, n.post)
	}
	return reverseInOrder(n.left, k, results)
}

// forEachNode invokes the passed function with every post in the subtree in
// ascending timestamp order until the function returns false.
func forEachNode(root *node, fn func(*Post) bool) {
	// Add the root node and all children to the left of it to the list of
	// nodes to traverse and loop until they, and all of their child nodes,
	// have been traversed.
	var parents parentStack
	for n := root; n != nil; n = n.left {
		parents.Push(n)
	}
	for parents.Len() > 0 {
		n := parents.Pop()
		if !fn(n.post) {
			return
		}

		// Extend the nodes to traverse by all children to the left of
		// the current node's right child.
		for n := n.right; n != nil; n = n.left {
			parents.Push(n)
		}
	}
}

// parentStack represents a stack of parent tree nodes that are used during
// iteration.  It consists of a static array for holding the parents and a
// dynamic overflow slice.  It is extremely unlikely the overflow will ever be
// hit during treap iteration, however, the baseline tree's height is bounded
// only by its node count, so the overflow case needs to be handled properly.
// This approach is used because it is much more efficient for the majority
// case than dynamically allocating heap space every time a tree is iterated.
type parentStack struct {
	index    int
	items    [staticDepth]*node
	overflow []*node
}

// Len returns the current number of items in the stack.
func (s *parentStack) Len() int {
	return s.index
}

// Pop removes the top item from the stack.  It returns nil if the stack is
// empty.
func (s *parentStack) Pop() *node {
	if s.index == 0 {
		return nil
	}

	s.index--
	if s.index < staticDepth {
		n := s.items[s.index]
		s.items[s.index] = nil
		return n
	}

	n := s.overflow[s.index-staticDepth]
	s.overflow[s.index-staticDepth] = nil
	return n
}

// Push pushes the passed item onto the top of the stack.
func (s *parentStack) Push(n *node) {
	if s.index < staticDepth {
		s.items[s.index] = n
		s.index++
		return
	}

	// This approach is used over append because reslicing the slice to pop
	// the item causes the compiler to make unneeded allocations.  Also,
	// since the max number of items is related to the tree depth which
	// requires expontentially more items to increase, only increase the cap
	// one item at a time.  This is more intelligent than the generic append
	// expansion algorithm which often doubles the cap.
	index := s.index - staticDepth
	if index+1 > cap(s.overflow) {
		overflow := make([]*node, index+1)
		copy(overflow, s.overflow)
		s.overflow = overflow
	}
	s.overflow[index] = n
	s.index++
}
