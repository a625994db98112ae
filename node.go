// node.go: intrusive region lists shared by the eviction engines
//
// Copyright (c) 2026 evictlab
// SPDX-License-Identifier: MPL-2.0

package windsim

// regionStatus tags the region that currently owns a node.
type regionStatus uint8

const (
	statusEden regionStatus = iota
	statusProbation
	statusProtected
	statusMain
)

func (s regionStatus) String() string {
	switch s {
	case statusEden:
		return "eden"
	case statusProbation:
		return "probation"
	case statusProtected:
		return "protected"
	case statusMain:
		return "main"
	default:
		return "unknown"
	}
}

// node is one resident key. Every node is a member of exactly one region
// ring while it is in the key index; sentinels anchor the rings and never
// enter the index.
type node struct {
	key uint64

	status regionStatus

	// level is the main-space tier of the N-tier engine, 0 = lowest.
	level int

	// recencyMove is the reorder counter snapshot taken the last time the
	// two-tier engine moved this node to the protected tail.
	recencyMove int

	prev, next *node
}

// newSentinel returns the anchor of an empty ring: prev and next point at
// the sentinel itself.
func newSentinel() *node {
	n := &node{}
	n.prev = n
	n.next = n
	return n
}

// isLinked reports whether the node is currently a member of a ring.
func (n *node) isLinked() bool {
	return n.next != nil
}

// appendToTail links the node in front of head (the MRU position).
func (n *node) appendToTail(head *node) {
	tail := head.prev
	head.prev = n
	tail.next = n
	n.next = head
	n.prev = tail
}

// appendToHead links the node directly after head (the LRU position).
// Used when window resizing relinks entries that must keep their eviction
// seniority.
func (n *node) appendToHead(head *node) {
	first := head.next
	head.next = n
	first.prev = n
	n.prev = head
	n.next = first
}

// remove unlinks the node and clears its links, so that isLinked can
// observe the transition and stale back-links cannot survive.
func (n *node) remove() {
	n.prev.next = n.next
	n.next.prev = n.prev
	n.next = nil
	n.prev = nil
}

// moveToTail relinks the node at the MRU position of head's ring.
func (n *node) moveToTail(head *node) {
	n.remove()
	n.appendToTail(head)
}
