package parscan

/*
BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the License file in the repository root.

*/

import "github.com/npillmayer/parscan/scantree"

// workForRound enumerates the jobs due on a tree list under the staggered
// decimation: every (delay+1)-th tree is selected, and the j-th selected
// tree contributes its jobs at level depth-j. Trees between selections
// are in their slack window and contribute nothing.
func workForRound[A, D any](trees []*scantree.Tree[A, D], depth, delay int) []scantree.AvailableJob[A, D] {
	stride := delay + 1
	var out []scantree.AvailableJob[A, D]
	for i, tr := range trees {
		if i%stride != stride-1 {
			continue
		}
		j := i / stride
		if j > depth {
			break
		}
		jobs, err := tr.JobsOnLevel(depth - j)
		assert(err == nil, "workForRound: level within depth")
		out = append(out, jobs...)
	}
	return out
}

// workForCurrentRound returns the jobs that must be completed so the next
// Update can advance every tail tree in lockstep.
func (s *State[A, D]) workForCurrentRound() []scantree.AvailableJob[A, D] {
	return workForRound(s.trees[1:], s.depth, s.delay)
}

// WorkForCurrentTree returns the jobs that must be completed before data
// can be added to the current tree, i.e. the due work of the tail.
func (s *State[A, D]) WorkForCurrentTree() []scantree.AvailableJob[A, D] {
	return s.workForCurrentRound()
}

// JobsForNextUpdate returns the work an external scheduler must have
// completed before the next Update that will carry dataCount data items.
// When the batch overflows the head tree, the list is extended by up to
// 2·(dataCount - freeSlots) jobs enumerated over all trees, because the
// overflow will seed a second tree within the same round.
func (s *State[A, D]) JobsForNextUpdate(dataCount int) []scantree.AvailableJob[A, D] {
	out := s.workForCurrentRound()
	free := s.trees[0].RequiredJobCount()
	if dataCount > free {
		extra := workForRound(s.trees, s.depth, s.delay)
		n := min(2*(dataCount-free), len(extra))
		out = append(out, extra[:n]...)
	}
	return out
}

// NextJobs returns the full list of jobs currently pending anywhere in
// the forest: the due work of the tail decimation, the delayed trees'
// frontiers at progressively tighter strides, and finally the head
// tree's base row.
func (s *State[A, D]) NextJobs() []scantree.AvailableJob[A, D] {
	var out []scantree.AvailableJob[A, D]
	remaining := s.trees[1:]
	stride := s.delay + 1
	for len(remaining) > s.depth+1 {
		var selected, rest []*scantree.Tree[A, D]
		for i, tr := range remaining {
			if i%stride == stride-1 && len(selected) <= s.depth {
				selected = append(selected, tr)
			} else {
				rest = append(rest, tr)
			}
		}
		if len(selected) == 0 {
			// Stride exceeds the remaining list; everything is still in
			// its slack window and gets gathered below.
			break
		}
		out = append(out, staggeredJobs(selected, s.depth)...)
		remaining = rest
		stride = max(2, stride-1)
	}
	out = append(out, staggeredJobs(remaining, s.depth)...)
	jobs, err := s.trees[0].JobsOnLevel(s.depth)
	assert(err == nil, "NextJobs: base level must exist")
	return append(out, jobs...)
}

// staggeredJobs gathers all pending jobs of the given trees. The j-th
// tree's frontier sits at level depth-j; levels below it are already
// Done and levels above not yet Full, so scanning every level simply
// collects whatever is pending per tree.
func staggeredJobs[A, D any](trees []*scantree.Tree[A, D], depth int) []scantree.AvailableJob[A, D] {
	var out []scantree.AvailableJob[A, D]
	for _, tr := range trees {
		for level := depth; level >= 0; level-- {
			jobs, err := tr.JobsOnLevel(level)
			assert(err == nil, "staggeredJobs: level within depth")
			out = append(out, jobs...)
		}
	}
	return out
}

// NextKJobs returns the first k pending jobs in scheduling order and
// fails with ErrInsufficientWork if fewer than k are pending.
func (s *State[A, D]) NextKJobs(k int) ([]scantree.AvailableJob[A, D], error) {
	all := s.NextJobs()
	if k < 0 || k > len(all) {
		return nil, ErrInsufficientWork
	}
	return all[:k], nil
}

func assert(cond bool, msg string) {
	if !cond {
		panic("parscan: assertion failed: " + msg)
	}
}
