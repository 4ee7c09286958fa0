// Copyright (c) 2026 The Treap-vs-BST-Comparison developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
feedsim replays a submissions dump through two feed indexes and reports how
they compare.

Both indexes key posts by creation timestamp.  The plain binary search tree
keeps no balance at all, so the chronological order real dumps arrive in
degrades it into a linked list.  The treap additionally orders nodes as a
max-heap on score, which keeps the expected height logarithmic under the same
input and makes the most popular post readable from the root.

Usage:

	feedsim [OPTIONS]

Use the -h or --help flag to get a full list of the supported options.  The
typical invocation points -i/--input at a line-delimited JSON dump, optionally
zstandard compressed, and bounds the run with -n/--limit.  The --scenario flag
runs a small fixed five post walkthrough instead of reading a dump, which is
handy for eyeballing rotation behavior at trace level.
*/
package main
