package parscan

import (
	"errors"

	"github.com/npillmayer/parscan/scantree"
)

var (
	// ErrDataCountExceeded signals a data batch larger than maxBaseJobs.
	ErrDataCountExceeded = errors.New("parscan: data count exceeds max base jobs")
	// ErrForestOverflow signals that a transition would leave more trees
	// in flight than the forest bound allows.
	ErrForestOverflow = errors.New("parscan: forest overflow")
	// ErrInsufficientWork signals a request for more jobs than are
	// currently pending.
	ErrInsufficientWork = errors.New("parscan: insufficient pending work")

	// ErrInvalidMergeJob re-exports the tree-level pairing failure.
	ErrInvalidMergeJob = scantree.ErrInvalidMergeJob
	// ErrInvalidBaseJob re-exports the tree-level leaf failure.
	ErrInvalidBaseJob = scantree.ErrInvalidBaseJob
)
