package scantree

// JobKind discriminates base work from merge work.
type JobKind uint8

const (
	// JobBase tags a unit of base work (a datum awaiting processing).
	JobBase JobKind = iota
	// JobMerge tags a unit of merge work (a pair of child results, or a
	// completed result flowing back in).
	JobMerge
)

func (k JobKind) String() string {
	if k == JobMerge {
		return "Merge"
	}
	return "Base"
}

// AvailableJob is a unit of work externally schedulable: either a base
// datum awaiting processing (Kind == JobBase, payload in Base) or a pair
// of child results awaiting combination (Kind == JobMerge, payloads in
// Left and Right).
type AvailableJob[A, D any] struct {
	Kind  JobKind
	Base  D
	Left  A
	Right A
}

// AvailableBase wraps a datum as a schedulable base job.
func AvailableBase[A, D any](d D) AvailableJob[A, D] {
	return AvailableJob[A, D]{Kind: JobBase, Base: d}
}

// AvailableMerge wraps a pair of child results as a schedulable merge job.
func AvailableMerge[A, D any](left, right A) AvailableJob[A, D] {
	return AvailableJob[A, D]{Kind: JobMerge, Left: left, Right: right}
}

// NewJob is a unit of work arriving at a tree during an update: either a
// fresh datum for the base row (Kind == JobBase) or a completed result
// (Kind == JobMerge).
type NewJob[A, D any] struct {
	Kind  JobKind
	Base  D
	Merge A
}

// BaseJob wraps a datum as an arriving base job.
func BaseJob[A, D any](d D) NewJob[A, D] {
	return NewJob[A, D]{Kind: JobBase, Base: d}
}

// MergeJob wraps a completed result as an arriving merge job.
func MergeJob[A, D any](a A) NewJob[A, D] {
	return NewJob[A, D]{Kind: JobMerge, Merge: a}
}
