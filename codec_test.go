package parscan

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestCodecRoundTrip serializes a mid-pipeline forest and expects a
// structurally identical state back.
func TestCodecRoundTrip(t *testing.T) {
	teardown := redirectTracing(t)
	defer teardown()
	s, err := Empty[uint64, uint64](4, 1)
	require.NoError(t, err)
	for round := 1; round <= 17; round++ {
		_, s = driveRound(t, s, batch(uint64(round), 3))
	}

	blob, err := Encode(s)
	require.NoError(t, err)
	back, err := Decode[uint64, uint64](blob)
	require.NoError(t, err)
	require.True(t, reflect.DeepEqual(s, back), "decode(encode(state)) differs")

	// Determinism: equal states encode to equal bytes.
	blob2, err := Encode(back)
	require.NoError(t, err)
	require.Equal(t, blob, blob2)

	// The decoded state continues the pipeline identically.
	em1, next1, err := s.Update(batch(50, 3), completeJobs(s.JobsForNextUpdate(3)))
	require.NoError(t, err)
	em2, next2, err := back.Update(batch(50, 3), completeJobs(back.JobsForNextUpdate(3)))
	require.NoError(t, err)
	require.Equal(t, em1, em2)
	require.True(t, reflect.DeepEqual(next1, next2))
}

func TestCodecRejectsGarbage(t *testing.T) {
	_, err := Decode[uint64, uint64]([]byte{0xff, 0x00, 0x01})
	require.Error(t, err)
	_, err = Decode[uint64, uint64](nil)
	require.Error(t, err)
}

func TestEncodeNilState(t *testing.T) {
	_, err := Encode[uint64, uint64](nil)
	require.ErrorIs(t, err, ErrIllegalArguments)
}
