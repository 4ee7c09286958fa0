// Copyright (c) 2026 The Treap-vs-BST-Comparison developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package feedtree

// StructuralMetrics describes the shape of a tree: its height, the sum of the
// absolute balance factors of every node, and the node count.  It is computed
// in a single bottom-up pass, so measuring even a fully degenerate stick is
// O(N) rather than the O(N²) a per-node height recomputation would cost.
type StructuralMetrics struct {
	// Height is the number of nodes on the longest root-to-leaf path.  An
	// empty tree has height 0.
	Height int

	// TotalBalance is the sum over all nodes of |leftHeight - rightHeight|.
	TotalBalance int64

	// Nodes is the number of nodes in the tree.
	Nodes int
}

// AvgBalance returns the mean absolute balance factor per node, or 0 for an
// empty tree.
func (m StructuralMetrics) AvgBalance() float64 {
	if m.Nodes == 0 {
		return 0
	}
	return float64(m.TotalBalance) / float64(m.Nodes)
}

// StructuralMetrics measures the tree in one O(N) traversal.
func (t *BST) StructuralMetrics() StructuralMetrics {
	return measureTree(t.root)
}

// StructuralMetrics measures the treap in one O(N) traversal.
func (t *Treap) StructuralMetrics() StructuralMetrics {
	return measureTree(t.root)
}

func measureTree(root *node) StructuralMetrics {
	height, balance, count := measureNode(root)
	return StructuralMetrics{Height: height, TotalBalance: balance, Nodes: count}
}

// measureNode combines the children's triples on the way back up so each node
// is visited exactly once.
func measureNode(n *node) (height int, balance int64, count int) {
	if n == nil {
		return 0, 0, 0
	}

	lh, lb, lc := measureNode(n.left)
	rh, rb, rc := measureNode(n.right)

	height = lh
	if rh > height {
		height = rh
	}
	height++

	bf := lh - rh
	if bf < 0 {
		bf = -bf
	}

	return height, lb + rb + int64(bf), lc + rc + 1
}
