package scantree

import (
	"fmt"
	"strings"
)

// maxDepth bounds tree depth so slot counts stay well inside int range.
const maxDepth = 30

// Tree is a perfect binary tree of fixed depth d ≥ 1 with 2^d base slots
// and 2^d - 1 merge slots. The zero value is not usable; create trees
// with New or FromSnapshot.
type Tree[A, D any] struct {
	depth  int
	merges []MergeSlot[A]
	bases  []BaseSlot[D]
}

// New creates an all-empty tree of the given depth with level-derived
// initial weights: a merge slot at level ℓ starts with
// (2^(d-ℓ-1), 2^(d-ℓ-1)), a base slot with weight 1.
func New[A, D any](depth int) (*Tree[A, D], error) {
	if depth < 1 || depth > maxDepth {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDepth, depth)
	}
	t := &Tree[A, D]{
		depth:  depth,
		merges: make([]MergeSlot[A], (1<<depth)-1),
		bases:  make([]BaseSlot[D], 1<<depth),
	}
	for level := 0; level < depth; level++ {
		w := uint32(1) << (depth - level - 1)
		off := levelOffset(level)
		for i := 0; i < levelWidth(level); i++ {
			t.merges[off+i].WeightLeft = w
			t.merges[off+i].WeightRight = w
		}
	}
	for i := range t.bases {
		t.bases[i].Weight = 1
	}
	return t, nil
}

// levelOffset returns the index of the first merge slot of a level.
func levelOffset(level int) int {
	return (1 << level) - 1
}

// levelWidth returns the number of slots at a level.
func levelWidth(level int) int {
	return 1 << level
}

// Depth returns the tree depth.
func (t *Tree[A, D]) Depth() int {
	return t.depth
}

// Capacity returns the number of base slots, 2^depth.
func (t *Tree[A, D]) Capacity() int {
	return len(t.bases)
}

// Clone returns a deep copy of the tree.
func (t *Tree[A, D]) Clone() *Tree[A, D] {
	nt := &Tree[A, D]{
		depth:  t.depth,
		merges: append([]MergeSlot[A](nil), t.merges...),
		bases:  append([]BaseSlot[D](nil), t.bases...),
	}
	return nt
}

// MergeAt returns a copy of the merge slot at (level, idx).
func (t *Tree[A, D]) MergeAt(level, idx int) MergeSlot[A] {
	assert(level >= 0 && level < t.depth, "MergeAt level out of range")
	assert(idx >= 0 && idx < levelWidth(level), "MergeAt index out of range")
	return t.merges[levelOffset(level)+idx]
}

// BaseAt returns a copy of the base slot at idx.
func (t *Tree[A, D]) BaseAt(idx int) BaseSlot[D] {
	assert(idx >= 0 && idx < len(t.bases), "BaseAt index out of range")
	return t.bases[idx]
}

// RequiredJobCount returns the sum of the root weights: the number of
// base-equivalent jobs the tree still owes before its root can finalize.
func (t *Tree[A, D]) RequiredJobCount() int {
	return int(t.merges[0].weightSum())
}

// JobsOnLevel enumerates the schedulable jobs of one level, left to right.
// level == depth selects the base row; interior levels yield merge jobs
// for every Full slot still in Todo status.
func (t *Tree[A, D]) JobsOnLevel(level int) ([]AvailableJob[A, D], error) {
	if level < 0 || level > t.depth {
		return nil, fmt.Errorf("%w: %d of depth %d", ErrInvalidLevel, level, t.depth)
	}
	var jobs []AvailableJob[A, D]
	if level == t.depth {
		for i := range t.bases {
			b := &t.bases[i]
			if b.State == BaseFull && b.Status == Todo {
				jobs = append(jobs, AvailableBase[A, D](b.Job))
			}
		}
		return jobs, nil
	}
	off := levelOffset(level)
	for i := 0; i < levelWidth(level); i++ {
		m := &t.merges[off+i]
		if m.State == MergeFull && m.Status == Todo {
			jobs = append(jobs, AvailableMerge[A, D](m.Left, m.Right))
		}
	}
	return jobs, nil
}

// ToData enumerates the schedulable base jobs of this tree, an alias for
// JobsOnLevel(depth).
func (t *Tree[A, D]) ToData() []AvailableJob[A, D] {
	jobs, err := t.JobsOnLevel(t.depth)
	assert(err == nil, "ToData: base level must exist")
	return jobs
}

// BaseData returns the data admitted into the base row so far, in slot
// order, regardless of status. Used to package an emitted result with the
// batch that produced it.
func (t *Tree[A, D]) BaseData() []D {
	var out []D
	for i := range t.bases {
		if t.bases[i].State == BaseFull {
			out = append(out, t.bases[i].Job)
		}
	}
	return out
}

// TodoCount returns the number of slots in Todo status across all levels.
func (t *Tree[A, D]) TodoCount() int {
	n := 0
	for i := range t.merges {
		if t.merges[i].State == MergeFull && t.merges[i].Status == Todo {
			n++
		}
	}
	for i := range t.bases {
		if t.bases[i].State == BaseFull && t.bases[i].Status == Todo {
			n++
		}
	}
	return n
}

// MapDepth maps slot payloads level by level, preserving weights, states,
// statuses and sequence numbers. fMerge receives the level of each merge
// payload it transforms.
func MapDepth[A, D, B, C any](t *Tree[A, D], fMerge func(level int, a A) B, fBase func(d D) C) *Tree[B, C] {
	nt := &Tree[B, C]{
		depth:  t.depth,
		merges: make([]MergeSlot[B], len(t.merges)),
		bases:  make([]BaseSlot[C], len(t.bases)),
	}
	for level := 0; level < t.depth; level++ {
		off := levelOffset(level)
		for i := 0; i < levelWidth(level); i++ {
			m := t.merges[off+i]
			nm := MergeSlot[B]{
				WeightLeft:  m.WeightLeft,
				WeightRight: m.WeightRight,
				State:       m.State,
				SeqNo:       m.SeqNo,
				Status:      m.Status,
			}
			switch m.State {
			case MergePart:
				nm.Left = fMerge(level, m.Left)
			case MergeFull:
				nm.Left = fMerge(level, m.Left)
				nm.Right = fMerge(level, m.Right)
			}
			nt.merges[off+i] = nm
		}
	}
	for i, b := range t.bases {
		nb := BaseSlot[C]{
			Weight: b.Weight,
			State:  b.State,
			SeqNo:  b.SeqNo,
			Status: b.Status,
		}
		if b.State == BaseFull {
			nb.Job = fBase(b.Job)
		}
		nt.bases[i] = nb
	}
	return nt
}

// FoldDepth folds over all slots deterministically: merge levels from the
// root down, left to right within a level, then the base row left to
// right.
func FoldDepth[A, D, T any](
	t *Tree[A, D],
	fMerge func(level int, m MergeSlot[A]) T,
	fBase func(b BaseSlot[D]) T,
	combine func(acc, v T) T,
	init T,
) T {
	acc := init
	for level := 0; level < t.depth; level++ {
		off := levelOffset(level)
		for i := 0; i < levelWidth(level); i++ {
			acc = combine(acc, fMerge(level, t.merges[off+i]))
		}
	}
	for i := range t.bases {
		acc = combine(acc, fBase(t.bases[i]))
	}
	return acc
}

// View renders a human-readable dump of the tree, one line per level.
// showA and showD stringify the opaque payloads; either may be nil to
// suppress payloads.
func (t *Tree[A, D]) View(showA func(A) string, showD func(D) string) string {
	var sb strings.Builder
	for level := 0; level < t.depth; level++ {
		off := levelOffset(level)
		fmt.Fprintf(&sb, "L%d:", level)
		for i := 0; i < levelWidth(level); i++ {
			m := &t.merges[off+i]
			fmt.Fprintf(&sb, " [%d,%d %s", m.WeightLeft, m.WeightRight, m.State)
			if m.State == MergeFull {
				sb.WriteString("/" + m.Status.String())
				if showA != nil {
					fmt.Fprintf(&sb, " %s·%s", showA(m.Left), showA(m.Right))
				}
			} else if m.State == MergePart && showA != nil {
				fmt.Fprintf(&sb, " %s", showA(m.Left))
			}
			sb.WriteString("]")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("B:")
	for i := range t.bases {
		b := &t.bases[i]
		fmt.Fprintf(&sb, " [%d %s", b.Weight, b.State)
		if b.State == BaseFull {
			sb.WriteString("/" + b.Status.String())
			if showD != nil {
				sb.WriteString(" " + showD(b.Job))
			}
		}
		sb.WriteString("]")
	}
	sb.WriteString("\n")
	return sb.String()
}
