// Copyright (c) 2026 The Treap-vs-BST-Comparison developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package feedtree

import (
	"bytes"
	"fmt"
)

// dumpTree renders the subtree as an ASCII diagram with one node per line,
// left children first.  It is intended for debug logging of small trees; the
// output for a large tree is as unreadable as it is long.
func dumpTree(root *node) string {
	if root == nil {
		return "(empty)\n"
	}

	var buf bytes.Buffer
	dumpNode(&buf, root, "", true)
	return buf.String()
}

func dumpNode(buf *bytes.Buffer, n *node, prefix string, isLeft bool) {
	if n == nil {
		return
	}

	connector, childPrefix := "`-- ", prefix+"    "
	if isLeft {
		connector, childPrefix = "|-- ", prefix+"|   "
	}
	fmt.Fprintf(buf, "%s%s[%s ts=%d score=%d]\n", prefix, connector,
		n.post.ID, n.post.Timestamp, n.post.Score)
	dumpNode(buf, n.left, childPrefix, true)
	dumpNode(buf, n.right, childPrefix, false)
}
