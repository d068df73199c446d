package scantree

import "errors"

var (
	// ErrInvalidDepth signals a tree depth outside the supported range.
	ErrInvalidDepth = errors.New("scantree: invalid tree depth")
	// ErrInvalidLevel signals a level index outside 0 … depth.
	ErrInvalidLevel = errors.New("scantree: level out of range")
	// ErrInvalidMergeJob signals arrivals at a merge slot that match no
	// entry of the pairing table.
	ErrInvalidMergeJob = errors.New("scantree: invalid merge job")
	// ErrInvalidBaseJob signals arrivals at a base slot that match no
	// entry of the leaf table.
	ErrInvalidBaseJob = errors.New("scantree: invalid base job")
	// ErrInvalidSnapshot signals a snapshot whose slot counts do not
	// describe a perfect binary tree.
	ErrInvalidSnapshot = errors.New("scantree: invalid snapshot")
)
