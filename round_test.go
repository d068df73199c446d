package parscan

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoundBuilderStagesAndApplies(t *testing.T) {
	teardown := redirectTracing(t)
	defer teardown()
	s, err := Empty[uint64, uint64](2, 0)
	require.NoError(t, err)

	b := NewRound[uint64, uint64]()
	require.NoError(t, b.AppendData(3))
	require.NoError(t, b.AppendData(5))
	require.Equal(t, 2, b.DataCount())
	_, s, err = b.ApplyTo(s)
	require.NoError(t, err)
	require.EqualValues(t, 1, s.CurrentJobSequenceNumber())

	require.ErrorIs(t, b.AppendData(7), ErrRoundCompleted, "builder is sealed after apply")

	b.Reset()
	for _, job := range s.JobsForNextUpdate(2) {
		require.NoError(t, b.AppendCompletions(job.Base))
	}
	require.NoError(t, b.AppendData(10, 20))
	_, s, err = b.ApplyTo(s)
	require.NoError(t, err)
	require.EqualValues(t, 2, s.CurrentJobSequenceNumber())
}

func TestRoundBuilderRetriesAfterFailure(t *testing.T) {
	teardown := redirectTracing(t)
	defer teardown()
	s, err := Empty[uint64, uint64](2, 0)
	require.NoError(t, err)

	b := NewRound[uint64, uint64]()
	require.NoError(t, b.AppendData(1, 2, 3))
	_, _, err = b.ApplyTo(s)
	require.ErrorIs(t, err, ErrDataCountExceeded)

	// A failed transition does not seal the builder.
	b.Reset()
	require.NoError(t, b.AppendData(1, 2))
	_, ns, err := b.ApplyTo(s)
	require.NoError(t, err)
	require.Len(t, ns.Trees(), 2)
}

func TestRoundBuilderNilReceiver(t *testing.T) {
	var b *RoundBuilder[uint64, uint64]
	require.ErrorIs(t, b.AppendData(1), ErrIllegalArguments)
	require.Equal(t, 0, b.DataCount())
	_, _, err := b.ApplyTo(nil)
	require.ErrorIs(t, err, ErrIllegalArguments)
}
