package parscan

/*
BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the License file in the repository root.

*/

import (
	"fmt"
	"math/bits"
	"strings"

	"github.com/npillmayer/parscan/scantree"
)

// Emitted is one finished aggregate result together with the base data of
// the batch that produced it, in admission order.
type Emitted[A, D any] struct {
	Result A
	Data   []D
}

// State is the live forest of in-flight trees plus round bookkeeping. The
// tree at index 0 is the current (newest, least complete) tree; older
// trees follow in order of age.
//
// State values are persistent: Update returns a fresh state and never
// mutates its receiver.
type State[A, D any] struct {
	trees          []*scantree.Tree[A, D]
	acc            *Emitted[A, D]
	currJobSeqNo   uint64
	recentTreeData []D
	otherTreesData [][]D
	maxBaseJobs    int
	delay          int
	depth          int
}

// Empty creates a one-tree forest of all-empty slots. maxBaseJobs is the
// hard cap on base jobs admitted per tree and should be a power of two;
// other values are rounded up to the enclosing tree capacity, so a tree
// then fills over more than one maximal batch. delay is the number of
// rounds of work slack between successive trees.
func Empty[A, D any](maxBaseJobs, delay int) (*State[A, D], error) {
	if maxBaseJobs < 1 || delay < 0 {
		return nil, fmt.Errorf("%w: maxBaseJobs=%d delay=%d", ErrIllegalArguments, maxBaseJobs, delay)
	}
	depth := ceilLog2(maxBaseJobs)
	if depth < 1 {
		depth = 1
	}
	tree, err := scantree.New[A, D](depth)
	if err != nil {
		return nil, err
	}
	return &State[A, D]{
		trees:       []*scantree.Tree[A, D]{tree},
		maxBaseJobs: maxBaseJobs,
		delay:       delay,
		depth:       depth,
	}, nil
}

// ceilLog2 returns the smallest k with 2^k >= n, for n >= 1.
func ceilLog2(n int) int {
	return bits.Len(uint(n - 1))
}

// MaxBaseJobs returns the per-tree cap on admitted base jobs.
func (s *State[A, D]) MaxBaseJobs() int {
	return s.maxBaseJobs
}

// Delay returns the configured work slack between successive trees.
func (s *State[A, D]) Delay() int {
	return s.delay
}

// Depth returns the depth of every tree in the forest.
func (s *State[A, D]) Depth() int {
	return s.depth
}

// MaxTrees returns the bound on simultaneously in-flight trees,
// (depth+1)·(delay+1) + 1.
func (s *State[A, D]) MaxTrees() int {
	return (s.depth+1)*(s.delay+1) + 1
}

// CurrentJobSequenceNumber returns the per-round monotonic counter
// stamped on every slot mutated in a round.
func (s *State[A, D]) CurrentJobSequenceNumber() uint64 {
	return s.currJobSeqNo
}

// FreeSpace returns the maximum data count acceptable in a single round,
// which equals maxBaseJobs.
func (s *State[A, D]) FreeSpace() int {
	return s.maxBaseJobs
}

// LastEmittedResult returns the most recently emitted result together
// with the base data that produced it, or nil before the first emission.
func (s *State[A, D]) LastEmittedResult() *Emitted[A, D] {
	return s.acc
}

// NextOnNewTree reports whether the next data batch will start on a fresh
// tree, i.e. the head tree has its full capacity of free base slots.
func (s *State[A, D]) NextOnNewTree() bool {
	head := s.trees[0]
	return head.RequiredJobCount() == head.Capacity()
}

// BaseJobsOnLatestTree returns the data of the head tree's still
// schedulable base jobs, left to right.
func (s *State[A, D]) BaseJobsOnLatestTree() []D {
	var out []D
	for _, job := range s.trees[0].ToData() {
		out = append(out, job.Base)
	}
	return out
}

// SpacePartition describes how an incoming maximal data batch would be
// split across trees: First slots land on the head tree; Second is the
// capacity spilling onto a freshly spawned tree, or 0 when the head can
// absorb a full batch.
type SpacePartition struct {
	First  int
	Second int
}

// PartitionIfOverflowing computes the split of a maximal data batch
// between the head tree and its successor.
func (s *State[A, D]) PartitionIfOverflowing() SpacePartition {
	free := s.trees[0].RequiredJobCount()
	first := min(free, s.maxBaseJobs)
	if free < s.maxBaseJobs {
		return SpacePartition{First: first, Second: s.maxBaseJobs - free}
	}
	return SpacePartition{First: first}
}

// Trees returns the in-flight trees, newest first. The slice is a copy;
// the trees themselves are shared and must be treated as immutable.
func (s *State[A, D]) Trees() []*scantree.Tree[A, D] {
	return append([]*scantree.Tree[A, D](nil), s.trees...)
}

// clone copies the forest containers. Trees are shared: all tree-level
// operations are persistent, so a clone may replace but never mutate
// them.
func (s *State[A, D]) clone() *State[A, D] {
	ns := *s
	ns.trees = append([]*scantree.Tree[A, D](nil), s.trees...)
	ns.recentTreeData = append([]D(nil), s.recentTreeData...)
	ns.otherTreesData = make([][]D, len(s.otherTreesData))
	copy(ns.otherTreesData, s.otherTreesData)
	return &ns
}

// View renders a human-readable dump of the forest, head tree first.
// showA and showD stringify the opaque payloads; either may be nil.
func (s *State[A, D]) View(showA func(A) string, showD func(D) string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "scan state: %d tree(s), seq %d, max %d, delay %d\n",
		len(s.trees), s.currJobSeqNo, s.maxBaseJobs, s.delay)
	for i, tr := range s.trees {
		fmt.Fprintf(&sb, "tree %d (required %d):\n", i, tr.RequiredJobCount())
		sb.WriteString(tr.View(showA, showD))
	}
	return sb.String()
}
