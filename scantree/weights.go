package scantree

// ResetWeights recomputes every weight bottom-up from the current slot
// statuses and returns the reweighted tree. A Todo base contributes one
// owed job; a Todo merge is forced to weights (1, 0) regardless of its
// subtree, signalling that it needs exactly one completion next round.
// All other slots adopt the summed contributions of their children.
//
// ResetWeights is idempotent: applying it twice yields the same tree.
func (t *Tree[A, D]) ResetWeights() *Tree[A, D] {
	nt := t.Clone()
	contrib := make([][2]uint32, len(nt.bases))
	for i := range nt.bases {
		b := &nt.bases[i]
		if b.State == BaseFull && b.Status == Todo {
			b.Weight = 1
			contrib[i] = [2]uint32{1, 0}
		} else {
			b.Weight = 0
			contrib[i] = [2]uint32{0, 0}
		}
	}
	for level := nt.depth - 1; level >= 0; level-- {
		off := levelOffset(level)
		width := levelWidth(level)
		up := make([][2]uint32, width)
		for i := 0; i < width; i++ {
			slot := &nt.merges[off+i]
			if slot.State == MergeFull && slot.Status == Todo {
				slot.WeightLeft, slot.WeightRight = 1, 0
			} else {
				left, right := contrib[2*i], contrib[2*i+1]
				slot.WeightLeft = left[0] + left[1]
				slot.WeightRight = right[0] + right[1]
			}
			up[i] = [2]uint32{slot.WeightLeft, slot.WeightRight}
		}
		contrib = up
	}
	return nt
}
