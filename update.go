package parscan

/*
BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the License file in the repository root.

*/

import (
	"fmt"

	"github.com/npillmayer/parscan/scantree"
)

// Update applies one round to the forest: completed jobs advance the tail
// trees, data fills the head tree, and a finalized root merge is emitted.
// It returns the emitted result (nil while the pipeline is filling) and
// the successor state. The receiver is never mutated; on error the
// returned state is nil and the receiver remains valid.
func (s *State[A, D]) Update(data []D, completedJobs []A) (*Emitted[A, D], *State[A, D], error) {
	if len(data) > s.maxBaseJobs {
		return nil, nil, fmt.Errorf("%w: got %d, max %d", ErrDataCountExceeded, len(data), s.maxBaseJobs)
	}
	ns := s.clone()
	ns.currJobSeqNo++

	free := ns.trees[0].RequiredJobCount()
	dataHead, dataOverflow := splitAt(data, free)
	required := len(ns.workForCurrentRound())
	jobsHead, jobsOverflow := splitAt(completedJobs, required)

	emitted, err := ns.addMergeJobs(jobsHead, required)
	if err != nil {
		return nil, nil, err
	}
	if err := ns.addData(dataHead); err != nil {
		return nil, nil, err
	}

	// The overflow seeds the freshly prepended tree and shifts the tail
	// decimation by one, so the second pass recomputes the due work.
	if len(dataOverflow) > 0 || len(jobsOverflow) > 0 {
		required2 := len(ns.workForCurrentRound())
		em2, err := ns.addMergeJobs(jobsOverflow, required2)
		if err != nil {
			return nil, nil, err
		}
		if emitted == nil {
			emitted = em2
		}
		if err := ns.addData(dataOverflow); err != nil {
			return nil, nil, err
		}
	}

	if len(ns.trees) > ns.MaxTrees() {
		return nil, nil, fmt.Errorf("%w: %d trees, max %d", ErrForestOverflow, len(ns.trees), ns.MaxTrees())
	}
	tracer().Debugf("parscan round %d: %d data, %d jobs, emitted=%v",
		ns.currJobSeqNo, len(data), len(completedJobs), emitted != nil)
	return emitted, ns, nil
}

// addMergeJobs distributes completions over the tail trees due this pass.
// Every selected tree consumes a slice sized by its required job count
// and is updated at level depth - j, where j is its selection ordinal.
// The tree completing its root emits; it is dropped from the tail
// together with its bookkeeping data, and no further merges are
// delivered. Afterwards the tail weights are reset for the next round
// when a tree emitted, or when this pass received exactly its required
// completions and the forest is below its tree bound; otherwise the tail
// keeps its decremented weights.
func (s *State[A, D]) addMergeJobs(jobs []A, required int) (*Emitted[A, D], error) {
	stride := s.delay + 1
	tail := s.trees[1:]
	updated := make([]*scantree.Tree[A, D], 0, len(tail))
	updatedData := make([][]D, 0, len(s.otherTreesData))
	var emitted *Emitted[A, D]
	consumed := 0
	for i, tr := range tail {
		selected := i%stride == stride-1 && i/stride <= s.depth
		if emitted != nil || !selected {
			updated = append(updated, tr)
			updatedData = append(updatedData, s.otherTreesData[i])
			continue
		}
		hi := min(consumed+tr.RequiredJobCount(), len(jobs))
		slice := jobs[consumed:hi]
		consumed = hi
		level := s.depth - i/stride
		ntr, em, err := tr.Update(wrapMerges[A, D](slice), level, s.currJobSeqNo)
		if err != nil {
			return nil, err
		}
		if em != nil {
			emitted = &Emitted[A, D]{Result: *em, Data: s.otherTreesData[i]}
			continue
		}
		updated = append(updated, ntr)
		updatedData = append(updatedData, s.otherTreesData[i])
	}
	if emitted != nil || (len(updated)+1 < s.MaxTrees() && len(jobs) == required) {
		for i, tr := range updated {
			updated[i] = tr.ResetWeights()
		}
	}
	s.trees = append(s.trees[:1:1], updated...)
	s.otherTreesData = updatedData
	if emitted != nil {
		s.acc = emitted
	}
	return emitted, nil
}

// addData fills the head tree's base row. When the batch fills the last
// free slot, the head is weight-reset, demoted to position 1, and a fresh
// empty tree is prepended; the accumulated batch data moves into the
// per-tree bookkeeping log.
func (s *State[A, D]) addData(data []D) error {
	if len(data) == 0 {
		return nil
	}
	head := s.trees[0]
	free := head.RequiredJobCount()
	nhead, _, err := head.Update(wrapBases[A, D](data), s.depth, s.currJobSeqNo)
	if err != nil {
		return err
	}
	s.recentTreeData = append(s.recentTreeData, data...)
	if len(data) == free {
		fresh, err := scantree.New[A, D](s.depth)
		if err != nil {
			return err
		}
		s.trees = append([]*scantree.Tree[A, D]{fresh, nhead.ResetWeights()}, s.trees[1:]...)
		s.otherTreesData = append([][]D{s.recentTreeData}, s.otherTreesData...)
		s.recentTreeData = nil
		return nil
	}
	s.trees[0] = nhead
	return nil
}

func wrapMerges[A, D any](jobs []A) []scantree.NewJob[A, D] {
	out := make([]scantree.NewJob[A, D], len(jobs))
	for i, a := range jobs {
		out[i] = scantree.MergeJob[A, D](a)
	}
	return out
}

func wrapBases[A, D any](data []D) []scantree.NewJob[A, D] {
	out := make([]scantree.NewJob[A, D], len(data))
	for i, d := range data {
		out[i] = scantree.BaseJob[A, D](d)
	}
	return out
}

func splitAt[T any](xs []T, n int) (head, rest []T) {
	if n >= len(xs) {
		return xs, nil
	}
	return xs[:n], xs[n:]
}
