package parscan

// RoundBuilder incrementally stages the inputs of one round and applies
// them in a single transition.
//
// RoundBuilder collects base data and job completions in arrival order
// and hands them to Update only when ApplyTo is called. This keeps the
// staging logic in one place for callers that assemble a round from
// several worker responses.
//
// The empty instance is a valid builder, but clients may use NewRound.
type RoundBuilder[A, D any] struct {
	data []D
	jobs []A

	done bool
}

// NewRound creates a new and empty round builder.
func NewRound[A, D any]() *RoundBuilder[A, D] {
	return &RoundBuilder[A, D]{}
}

// AppendData stages base data for the round.
func (b *RoundBuilder[A, D]) AppendData(data ...D) error {
	if b == nil {
		return ErrIllegalArguments
	}
	if b.done {
		return ErrRoundCompleted
	}
	b.data = append(b.data, data...)
	return nil
}

// AppendCompletions stages completed job results for the round. Results
// must arrive in the order of the job list the round was scheduled from.
func (b *RoundBuilder[A, D]) AppendCompletions(results ...A) error {
	if b == nil {
		return ErrIllegalArguments
	}
	if b.done {
		return ErrRoundCompleted
	}
	b.jobs = append(b.jobs, results...)
	return nil
}

// DataCount returns the number of staged base data items.
func (b *RoundBuilder[A, D]) DataCount() int {
	if b == nil {
		return 0
	}
	return len(b.data)
}

// ApplyTo runs the staged round against a state and returns the emitted
// result and the successor state. The builder is sealed afterwards; it is
// illegal to stage further work, but ApplyTo may be retried against
// another state after a failed transition.
func (b *RoundBuilder[A, D]) ApplyTo(s *State[A, D]) (*Emitted[A, D], *State[A, D], error) {
	if b == nil || s == nil {
		return nil, nil, ErrIllegalArguments
	}
	em, ns, err := s.Update(b.data, b.jobs)
	if err != nil {
		return nil, nil, err
	}
	b.done = true
	return em, ns, nil
}

// Reset drops the staged round and prepares the builder for a fresh one.
func (b *RoundBuilder[A, D]) Reset() {
	b.data = nil
	b.jobs = nil
	b.done = false
}
