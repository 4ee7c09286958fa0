// Copyright (c) 2026 The Treap-vs-BST-Comparison developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package feedtree implements the ordered index structures used to study how a
social feed behaves under real-time score changes: a plain binary search tree
that serves as the degenerate baseline and a treap that stays balanced under
arbitrary insertion order using a combination of binary search tree and heap
semantics.

Both structures order posts by their timestamp, with equal timestamps breaking
to the right.  The treap additionally maintains a max-heap over post scores, so
the most popular post is always at the root and retrieving it is O(1), while
the baseline tree must scan every node.  Because the heap priority is the post
score itself rather than an independent random value, the treap's logarithmic
height guarantee holds only while scores are uncorrelated with insertion
order; a dataset whose scores track its timestamps can degrade the balance.
That trade is deliberate and is part of what the package is built to measure.

The treap also supports splitting by a timestamp threshold and merging (union)
of two treaps, which allows an index over a dataset far larger than memory to
be assembled by building many small treaps independently and folding them into
one.  A union consumes the donor tree: its nodes are re-owned by the receiver
and the donor is left empty.

None of the structures are safe for concurrent access.  Every operation runs
to completion before the next is accepted, and operations on an empty tree
return empty results rather than errors.
*/
package feedtree
