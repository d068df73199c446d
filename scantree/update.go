package scantree

import "fmt"

// Update applies one round of arriving jobs to the tree and returns the
// updated tree plus the emitted root result, if the root merge finalized.
//
// updateLevel selects the level whose Todo slots the arrivals complete;
// the same arrivals seed new merge entries one level above. Jobs are
// routed down from the root using the current weights as cut points: at a
// merge slot with weights (L, R) the first L jobs descend left and the
// next R descend right. Levels above updateLevel-1 only account for jobs
// passing through by decrementing weights; nothing descends below
// updateLevel.
//
// The receiver is left untouched; on error the returned tree is nil and
// no partial mutation is observable.
func (t *Tree[A, D]) Update(jobs []NewJob[A, D], updateLevel int, seqNo uint64) (*Tree[A, D], *A, error) {
	if updateLevel < 0 || updateLevel > t.depth {
		return nil, nil, fmt.Errorf("%w: update level %d of depth %d", ErrInvalidLevel, updateLevel, t.depth)
	}
	nt := t.Clone()
	var emitted *A

	// slices[i] holds the jobs routed to slot i of the current level.
	slices := make([][]NewJob[A, D], 1, 2)
	slices[0] = jobs
	for level := 0; level < nt.depth; level++ {
		off := levelOffset(level)
		next := make([][]NewJob[A, D], levelWidth(level+1))
		for i, js := range slices {
			slot := &nt.merges[off+i]
			wl, wr := int(slot.WeightLeft), int(slot.WeightRight)
			em, err := nt.applyMerge(slot, js, level, updateLevel, seqNo)
			if err != nil {
				return nil, nil, fmt.Errorf("%w (level %d, slot %d)", err, level, i)
			}
			if em != nil {
				emitted = em
			}
			if level >= updateLevel {
				continue // arrivals are consumed at this level
			}
			toLeft := min(len(js), wl)
			toRight := min(len(js)-toLeft, wr)
			next[2*i] = js[:toLeft]
			next[2*i+1] = js[toLeft : toLeft+toRight]
		}
		slices = next
	}
	for i, js := range slices {
		if err := nt.applyBase(&nt.bases[i], js, seqNo); err != nil {
			return nil, nil, fmt.Errorf("%w (base %d)", err, i)
		}
	}
	return nt, emitted, nil
}

// applyMerge dispatches the per-level rules for one merge slot.
func (t *Tree[A, D]) applyMerge(slot *MergeSlot[A], js []NewJob[A, D], level, updateLevel int, seqNo uint64) (*A, error) {
	switch {
	case level == updateLevel-1:
		return nil, t.seedMerge(slot, js, seqNo)
	case level == updateLevel:
		return t.completeMerge(slot, js, level)
	case level < updateLevel-1:
		// Accounting only: jobs pass through on their way down.
		sentLeft := min(len(js), int(slot.WeightLeft))
		slot.WeightLeft -= uint32(sentLeft)
		sentRight := min(len(js)-sentLeft, int(slot.WeightRight))
		slot.WeightRight -= uint32(sentRight)
		return nil, nil
	default:
		return nil, nil
	}
}

// seedMerge pairs arrivals with the slot state one level above the update
// level, creating new merge entries.
func (t *Tree[A, D]) seedMerge(slot *MergeSlot[A], js []NewJob[A, D], seqNo uint64) error {
	switch {
	case len(js) == 0:
		return nil
	case len(js) == 2 && js[0].Kind == JobMerge && js[1].Kind == JobMerge && slot.State == MergeEmpty:
		slot.Left, slot.Right = js[0].Merge, js[1].Merge
		slot.State = MergeFull
		slot.SeqNo = seqNo
		slot.Status = Todo
		slot.WeightLeft--
		slot.WeightRight--
	case len(js) == 1 && js[0].Kind == JobMerge && slot.State == MergeEmpty:
		slot.Left = js[0].Merge
		slot.State = MergePart
		slot.WeightLeft--
	case len(js) == 1 && js[0].Kind == JobMerge && slot.State == MergePart:
		slot.Right = js[0].Merge
		slot.State = MergeFull
		slot.SeqNo = seqNo
		slot.Status = Todo
		slot.WeightRight--
	case len(js) == 1 && js[0].Kind == JobBase && slot.State == MergeEmpty:
		if slot.WeightLeft > 0 {
			slot.WeightLeft--
		} else if slot.WeightRight > 0 {
			slot.WeightRight--
		}
	case len(js) == 2 && js[0].Kind == JobBase && js[1].Kind == JobBase && slot.State == MergeEmpty:
		if slot.WeightLeft > 0 {
			slot.WeightLeft--
		}
		if slot.WeightRight > 0 {
			slot.WeightRight--
		}
	default:
		return fmt.Errorf("%w: %d arrival(s) on %s slot", ErrInvalidMergeJob, len(js), slot.State)
	}
	return nil
}

// completeMerge marks a Todo merge Done; at the root it yields the
// emitted result and zeroes the root weights.
func (t *Tree[A, D]) completeMerge(slot *MergeSlot[A], js []NewJob[A, D], level int) (*A, error) {
	switch {
	case len(js) == 0:
		return nil, nil
	case len(js) == 1 && js[0].Kind == JobMerge && slot.State == MergeFull && slot.Status == Todo:
		slot.Status = Done
		if level == 0 {
			a := js[0].Merge
			slot.WeightLeft, slot.WeightRight = 0, 0
			return &a, nil
		}
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: cannot complete %s slot with %d arrival(s)", ErrInvalidMergeJob, slot.State, len(js))
	}
}

// applyBase pairs arrivals with one base slot.
func (t *Tree[A, D]) applyBase(slot *BaseSlot[D], js []NewJob[A, D], seqNo uint64) error {
	switch {
	case len(js) == 0:
		return nil
	case len(js) == 1 && js[0].Kind == JobBase && slot.State == BaseEmpty:
		slot.Job = js[0].Base
		slot.State = BaseFull
		slot.SeqNo = seqNo
		slot.Status = Todo
		slot.Weight = 0
	case len(js) == 1 && js[0].Kind == JobMerge && slot.State == BaseFull:
		slot.Status = Done
	default:
		return fmt.Errorf("%w: %d arrival(s) on %s slot", ErrInvalidBaseJob, len(js), slot.State)
	}
	return nil
}
