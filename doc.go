/*
Package parscan implements a parallel scan state machine: a pipelined data
structure that accepts a bounded stream of base work items, recursively
combines them pairwise through merge work, and emits one aggregated result
per admitted batch, in admission order.

# Forest of trees

Work lives in a forest of perfect binary trees at staggered stages of
completion. A tree is born empty at the head of the forest, fills its base
row left to right, then its merges fill level by level bottom-up over
subsequent rounds; when the root merge completes, its value is emitted and
the tree is dropped from the tail. The scheduler's staggered decimation
guarantees that at steady state exactly 2·maxBaseJobs - 1 jobs are pending
per round: enough to keep a new tree's base row filled and every older
tree's next merge row one level higher than its predecessor.

# Rounds

One round is one call to Update(data, completedJobs). The caller obtains
the work due for the next round from JobsForNextUpdate, hands it to
external workers, and feeds the results back in the same order. Update is
a pure transition: it validates, applies, and returns a fresh state; the
receiver is never mutated, and a failed round leaves the caller's state
untouched. A state value treated as immutable may be read concurrently;
concurrent Update on the same value is the caller's responsibility to
avoid.

The payload types A (merge result) and D (base datum) are opaque to the
package.
*/
package parscan

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to a global core-tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}

// tracer traces to a global core-tracer.
func tracer() tracing.Trace {
	return gtrace.CoreTracer
}

// ScanError is an error type for the parscan module
type ScanError string

func (e ScanError) Error() string {
	return string(e)
}

// ErrIllegalArguments is flagged whenever function parameters are invalid.
const ErrIllegalArguments = ScanError("illegal arguments")

// ErrRoundCompleted signals that a round builder has already been applied
// and it's illegal to further add data or completions.
const ErrRoundCompleted = ScanError("forbidden to add work; round has been applied")
