/*
Package scantree implements the weighted perfect binary tree underlying a
parallel scan pipeline.

A tree of depth d carries 2^d base slots (the leaf row) and 2^d - 1 merge
slots (the interior levels). Base slots accept one datum each; merge slots
combine the results of their two children. Every slot carries a weight: the
number of base-equivalent jobs its subtree still owes before the slot can
finalize. Weights are decremented as jobs flow through a round and
recomputed from slot statuses between rounds.

Trees are persistent: Update and ResetWeights return a new tree and leave
the receiver untouched. Clients that treat tree values as immutable may
read them concurrently.

The representation is flat: one slice of merge slots indexed level by level
(level ℓ occupies indices 2^ℓ-1 … 2^(ℓ+1)-2) and one slice of base slots.
Parent/child relationships reduce to index arithmetic, which keeps the
partial-update walk free of per-node allocation.
*/
package scantree

// assert panics on violated internal invariants.
//
// Failures indicate a tree algorithm bug, not an input error.
func assert(cond bool, msg string) {
	if !cond {
		panic("scantree: assertion failed: " + msg)
	}
}
