package scantree

import (
	"reflect"
	"testing"
)

func TestResetWeightsFreshTreeIsFixpoint(t *testing.T) {
	tree := newIntTree(t, 3)
	// An all-empty tree owes nothing; reset zeroes the initial weights.
	reset := tree.ResetWeights()
	if got := reset.RequiredJobCount(); got != 0 {
		t.Errorf("empty tree owes %d after reset, want 0", got)
	}
	if !reflect.DeepEqual(reset, reset.ResetWeights()) {
		t.Errorf("reset not idempotent on empty tree")
	}
}

func TestResetWeightsFullBaseRow(t *testing.T) {
	tree := newIntTree(t, 3)
	data := []int{1, 2, 3, 4, 5, 6, 7, 8}
	tree, _, err := tree.Update(baseJobs(data...), 3, 1)
	if err != nil {
		t.Fatalf("fill failed: %v", err)
	}
	reset := tree.ResetWeights()
	// A full Todo base row reproduces the level-derived initial weights.
	for level := 0; level < 3; level++ {
		want := uint32(1) << (3 - level - 1)
		for i := 0; i < 1<<level; i++ {
			m := reset.MergeAt(level, i)
			if m.WeightLeft != want || m.WeightRight != want {
				t.Errorf("level %d slot %d weights (%d,%d), want (%d,%d)",
					level, i, m.WeightLeft, m.WeightRight, want, want)
			}
		}
	}
	if got := reset.RequiredJobCount(); got != 8 {
		t.Errorf("reset full tree owes %d, want 8", got)
	}
}

func TestResetWeightsForcesTodoMerges(t *testing.T) {
	tree := fillTree(t, newIntTree(t, 2), 1, 2, 3, 4)
	tree, _, err := tree.Update(mergeJobs(1, 2, 3, 4), 2, 2)
	if err != nil {
		t.Fatalf("completion failed: %v", err)
	}
	reset := tree.ResetWeights()
	for i := 0; i < 2; i++ {
		m := reset.MergeAt(1, i)
		if m.WeightLeft != 1 || m.WeightRight != 0 {
			t.Errorf("Todo merge (1,%d) weights (%d,%d), want forced (1,0)",
				i, m.WeightLeft, m.WeightRight)
		}
	}
	if root := reset.MergeAt(0, 0); root.WeightLeft != 1 || root.WeightRight != 1 {
		t.Errorf("root weights (%d,%d), want summed (1,1)", root.WeightLeft, root.WeightRight)
	}
}

func TestResetWeightsPartAdoptsChildSums(t *testing.T) {
	tree := fillTree(t, newIntTree(t, 2), 1, 2, 3, 4)
	tree, _, err := tree.Update(mergeJobs(1, 2, 3), 2, 2)
	if err != nil {
		t.Fatalf("completion failed: %v", err)
	}
	reset := tree.ResetWeights()
	// The Part slot owes exactly the completion of its Todo right base.
	if right := reset.MergeAt(1, 1); right.WeightLeft != 0 || right.WeightRight != 1 {
		t.Errorf("Part slot weights (%d,%d), want (0,1)", right.WeightLeft, right.WeightRight)
	}
	if got := reset.RequiredJobCount(); got != 2 {
		t.Errorf("tree owes %d, want 2 (one Todo merge, one Todo base)", got)
	}
}

func TestResetWeightsIdempotent(t *testing.T) {
	stages := []*Tree[int, int]{}
	tree := fillTree(t, newIntTree(t, 2), 1, 2, 3, 4)
	stages = append(stages, tree)
	tree, _, err := tree.Update(mergeJobs(1, 2, 3, 4), 2, 2)
	if err != nil {
		t.Fatalf("completion failed: %v", err)
	}
	stages = append(stages, tree.ResetWeights())
	tree, _, err = stages[1].Update(mergeJobs(3, 7), 1, 3)
	if err != nil {
		t.Fatalf("completion failed: %v", err)
	}
	stages = append(stages, tree.ResetWeights())
	for i, st := range stages {
		if !reflect.DeepEqual(st.ResetWeights(), st.ResetWeights().ResetWeights()) {
			t.Errorf("stage %d: reset not idempotent", i)
		}
	}
}

func TestRequiredEqualsTodoCountAfterReset(t *testing.T) {
	tree := fillTree(t, newIntTree(t, 2), 1, 2, 3, 4)
	if got, want := tree.ResetWeights().RequiredJobCount(), tree.TodoCount(); got != want {
		t.Errorf("required %d != todo count %d", got, want)
	}
	tree, _, err := tree.Update(mergeJobs(1, 2, 3), 2, 2)
	if err != nil {
		t.Fatalf("completion failed: %v", err)
	}
	if got, want := tree.ResetWeights().RequiredJobCount(), tree.TodoCount(); got != want {
		t.Errorf("required %d != todo count %d", got, want)
	}
}
